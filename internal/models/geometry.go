package models

import (
	"fmt"
)

// Geometry describes the extents of a residual volume in acquisition order.
// Data is stored flat and row-major with slices outermost, angles in the
// middle and detectors innermost. A 2D sinogram is a volume with Slices == 1.
type Geometry struct {
	// Angles is the number of projection angles (rows of a sinogram)
	Angles int

	// Detectors is the number of detector elements (columns of a sinogram)
	Detectors int

	// Slices is the number of independent sinograms in a 3D stack.
	// Slices == 1 selects the 2D case.
	Slices int
}

// Voxels returns the total number of elements in a volume with this geometry.
func (g Geometry) Voxels() int {
	return g.Angles * g.Detectors * g.Slices
}

// Is2D reports whether the geometry describes a single sinogram.
func (g Geometry) Is2D() bool {
	return g.Slices == 1
}

// Validate checks that all extents are positive.
func (g Geometry) Validate() error {
	if g.Angles <= 0 || g.Detectors <= 0 || g.Slices <= 0 {
		return fmt.Errorf("invalid geometry: extents must be positive, got %dx%dx%d (angles x detectors x slices)",
			g.Angles, g.Detectors, g.Slices)
	}
	return nil
}

// HalfSizes holds the half-window radii for the median background estimate
// along each axis. A half-size of 0 disables filtering along that axis; the
// full window length along an active axis is 2*halfsize + 1.
type HalfSizes struct {
	// Detectors is the half-window across detector elements. This roughly
	// matches the thickness of the rings in the reconstruction (stripes in
	// the sinogram).
	Detectors int

	// Angles is the half-window across projection angles
	Angles int

	// Slices is the half-window across the sinogram stack, meaningful only
	// for 3D input
	Slices int
}

// Validate checks that the half-sizes are usable with the given geometry.
func (h HalfSizes) Validate(g Geometry) error {
	if h.Detectors < 0 || h.Angles < 0 || h.Slices < 0 {
		return fmt.Errorf("invalid window half-sizes: must be non-negative, got (%d,%d,%d) (detectors,angles,slices)",
			h.Detectors, h.Angles, h.Slices)
	}
	if g.Is2D() && h.Slices != 0 {
		return fmt.Errorf("invalid window half-sizes: slice half-size %d requires a 3D stack", h.Slices)
	}
	return nil
}

// Axis identifies one axis of a residual volume.
type Axis int

const (
	AxisDetectors Axis = iota
	AxisAngles
	AxisSlices
)

// String returns the axis name for diagnostics.
func (a Axis) String() string {
	switch a {
	case AxisDetectors:
		return "detectors"
	case AxisAngles:
		return "angles"
	case AxisSlices:
		return "slices"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}
