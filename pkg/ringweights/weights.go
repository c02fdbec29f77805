package ringweights

import (
	"fmt"
	"sync"

	"tomorings/internal/models"
)

// axisSet enumerates which window half-sizes are active (nonzero) for a call.
// The zero/nonzero pattern of the three half-sizes, together with the 2D/3D
// split, selects exactly one combination formula.
type axisSet int

const (
	// noAxes means every half-size is zero; the weights are identically zero
	// (the degenerate single-element median is the identity, so the residual
	// cancels itself).
	noAxes axisSet = iota

	// detectorsOnly2D covers the 2D case with the angle window disabled
	detectorsOnly2D

	// anglesDetectors2D covers the 2D case with the angle window enabled
	anglesDetectors2D

	// slicesOnly3D: only the slice window is active
	slicesOnly3D

	// detectorsOnly3D: only the detector window is active
	detectorsOnly3D

	// allAxes3D: detector, angle and slice windows are all active
	allAxes3D

	// anglesSlices3D: angle and slice windows active, detector disabled
	anglesSlices3D

	// anglesDetectors3D: angle and detector windows active, slice disabled
	anglesDetectors3D

	// slicesDetectors3D: slice and detector windows active, angle disabled
	slicesDetectors3D
)

// classify maps the half-size pattern to its combination case. The eight
// zero/nonzero combinations per dimensionality form a true partition; every
// pattern lands in exactly one case.
func classify(geom models.Geometry, win models.HalfSizes) axisSet {
	if geom.Is2D() {
		switch {
		case win.Angles == 0 && win.Detectors == 0:
			return noAxes
		case win.Angles == 0:
			return detectorsOnly2D
		default:
			return anglesDetectors2D
		}
	}

	hd, ha, hp := win.Detectors != 0, win.Angles != 0, win.Slices != 0
	switch {
	case !ha && !hp && !hd:
		return noAxes
	case ha && !hp && !hd:
		// An angle window alone has no 3D combination formula; the
		// reference leaves the caller's zeroed weights untouched, so this
		// degenerates to the no-axes case.
		return noAxes
	case !ha && !hd:
		return slicesOnly3D
	case !ha && !hp:
		return detectorsOnly3D
	case ha && hp && hd:
		return allAxes3D
	case ha && hp:
		return anglesSlices3D
	case ha && hd:
		return anglesDetectors3D
	default: // !ha && hp && hd
		return slicesDetectors3D
	}
}

// Compute estimates the ring-artifact weights for a residual volume.
//
// residual is flat row-major data matching geom (slices outermost, angles in
// the middle, detectors innermost; a 2D sinogram has geom.Slices == 1). win
// holds the median window half-sizes per axis and numCores bounds the number
// of goroutines used per estimator pass.
//
// The returned weights volume has the same shape as the residual. Adding it
// to the residual gives the input for the non-linear response of a robust
// (Huber-type) data fidelity term.
func Compute(residual []float32, geom models.Geometry, win models.HalfSizes, numCores int) ([]float32, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}
	if err := win.Validate(geom); err != nil {
		return nil, err
	}
	if len(residual) != geom.Voxels() {
		return nil, fmt.Errorf("residual length %d does not match geometry %dx%dx%d (%d voxels)",
			len(residual), geom.Angles, geom.Detectors, geom.Slices, geom.Voxels())
	}

	n := geom.Voxels()
	weights := make([]float32, n)

	// Scratch buffers for the background estimates. They are owned by this
	// call and unreachable after it returns.
	var estA, estP, estD []float32

	runPass := func(dst []float32, axis models.Axis, half int) {
		medianPass(residual, dst, geom, axis, half, numCores)
	}

	// Passes that read only the residual are independent and run
	// concurrently; the combination loop runs after all of them complete.
	runConcurrent := func(passes ...func()) {
		var wg sync.WaitGroup
		for _, pass := range passes {
			wg.Add(1)
			go func(p func()) {
				defer wg.Done()
				p()
			}(pass)
		}
		wg.Wait()
	}

	switch classify(geom, win) {
	case noAxes:
		// No active axis: the weights stay zero.

	case detectorsOnly2D, detectorsOnly3D:
		estD = make([]float32, n)
		runPass(estD, models.AxisDetectors, win.Detectors)
		for i := range weights {
			weights[i] = residual[i] - estD[i]
		}

	case anglesDetectors2D, anglesDetectors3D:
		estA = make([]float32, n)
		estD = make([]float32, n)
		runConcurrent(
			func() { runPass(estA, models.AxisAngles, win.Angles) },
			func() { runPass(estD, models.AxisDetectors, win.Detectors) },
		)
		for i := range weights {
			weights[i] = estA[i] - estD[i]
		}

	case slicesOnly3D:
		estP = make([]float32, n)
		runPass(estP, models.AxisSlices, win.Slices)
		for i := range weights {
			weights[i] = residual[i] - estP[i]
		}

	case allAxes3D:
		estA = make([]float32, n)
		estP = make([]float32, n)
		estD = make([]float32, n)
		runConcurrent(
			func() { runPass(estA, models.AxisAngles, win.Angles) },
			func() { runPass(estP, models.AxisSlices, win.Slices) },
			func() { runPass(estD, models.AxisDetectors, win.Detectors) },
		)
		for i := range weights {
			weights[i] = estA[i] - 0.5*(estP[i]+estD[i])
		}

	case anglesSlices3D:
		estA = make([]float32, n)
		estP = make([]float32, n)
		runConcurrent(
			func() { runPass(estA, models.AxisAngles, win.Angles) },
			func() { runPass(estP, models.AxisSlices, win.Slices) },
		)
		for i := range weights {
			weights[i] = estA[i] - estP[i]
		}

	case slicesDetectors3D:
		estP = make([]float32, n)
		estD = make([]float32, n)
		runConcurrent(
			func() { runPass(estP, models.AxisSlices, win.Slices) },
			func() { runPass(estD, models.AxisDetectors, win.Detectors) },
		)
		for i := range weights {
			weights[i] = residual[i] - 0.5*(estP[i]+estD[i])
		}
	}

	return weights, nil
}

// BackgroundEstimate runs a single median pass along one axis and returns the
// result. It exposes the estimator for callers that want the raw background
// level rather than the combined weights.
func BackgroundEstimate(residual []float32, geom models.Geometry, axis models.Axis, half, numCores int) ([]float32, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}
	if half < 0 {
		return nil, fmt.Errorf("invalid window half-size %d for %s axis: must be non-negative", half, axis)
	}
	if len(residual) != geom.Voxels() {
		return nil, fmt.Errorf("residual length %d does not match geometry %dx%dx%d (%d voxels)",
			len(residual), geom.Angles, geom.Detectors, geom.Slices, geom.Voxels())
	}

	est := make([]float32, geom.Voxels())
	medianPass(residual, est, geom, axis, half, numCores)
	return est, nil
}
