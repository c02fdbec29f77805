// Package volio reads and writes raw little-endian float32 volumes, the
// interchange format used to move residual and weight data in and out of the
// reconstruction pipeline.
package volio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"tomorings/internal/models"
)

// ReadVolume loads a raw float32 volume and validates its size against the
// geometry.
func ReadVolume(path string, geom models.Geometry) ([]float32, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open volume file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat volume file: %w", err)
	}

	n := geom.Voxels()
	expected := int64(n) * 4
	if info.Size() != expected {
		return nil, fmt.Errorf("volume file %s holds %d bytes, expected %d for geometry %dx%dx%d",
			path, info.Size(), expected, geom.Angles, geom.Detectors, geom.Slices)
	}

	data := make([]float32, n)
	if err := binary.Read(bufio.NewReader(f), binary.LittleEndian, data); err != nil {
		return nil, fmt.Errorf("failed to read volume data: %w", err)
	}

	return data, nil
}

// WriteVolume saves a volume as raw little-endian float32 data.
func WriteVolume(path string, data []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create volume file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, data); err != nil {
		return fmt.Errorf("failed to write volume data: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush volume data: %w", err)
	}

	return nil
}
