// Package huber derives per-voxel data-fidelity multipliers for a Huber-type
// robust loss. The ring-weight offsets are added to the residual before the
// threshold test, so voxels whose residual is explained by ring artifacts are
// down-weighted in the reconstruction.
package huber

import (
	"fmt"
	"math"
)

// Multipliers returns the Huber influence multipliers for a residual with the
// ring-weight offsets added. Where |residual+offset| stays within threshold
// the multiplier is 1 (quadratic regime); beyond it the multiplier is
// threshold/|residual+offset| (linear regime).
//
// offsets may be nil, in which case the plain residual is thresholded.
func Multipliers(residual, offsets []float32, threshold float32) ([]float32, error) {
	if threshold <= 0 {
		return nil, fmt.Errorf("invalid huber threshold %g: must be positive", threshold)
	}
	if offsets != nil && len(offsets) != len(residual) {
		return nil, fmt.Errorf("offsets length %d does not match residual length %d", len(offsets), len(residual))
	}

	mult := make([]float32, len(residual))
	for i, r := range residual {
		if offsets != nil {
			r += offsets[i]
		}
		if abs := float32(math.Abs(float64(r))); abs > threshold {
			mult[i] = threshold / abs
		} else {
			mult[i] = 1
		}
	}
	return mult, nil
}

// Apply multiplies a residual elementwise by its Huber multipliers, producing
// the weighted residual consumed by the data fidelity gradient.
func Apply(residual, mult []float32) ([]float32, error) {
	if len(mult) != len(residual) {
		return nil, fmt.Errorf("multipliers length %d does not match residual length %d", len(mult), len(residual))
	}

	weighted := make([]float32, len(residual))
	for i, r := range residual {
		weighted[i] = r * mult[i]
	}
	return weighted, nil
}
