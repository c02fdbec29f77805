// Package ringweights computes per-voxel weights that suppress ring and
// stripe artifacts in tomographic reconstructions. Given a residual between a
// reconstruction and a model, it estimates the local background with sliding
// median windows along the detector, angle and slice axes and combines the
// estimates into a weights volume of the same shape. The weights feed the
// non-linear response of a Huber-type data fidelity term in the surrounding
// reconstruction pipeline.
package ringweights

import (
	"slices"
	"sync"

	"tomorings/internal/models"
)

// axisSpan describes how to walk one axis of a flat row-major volume:
// the extent of the axis and the stride between consecutive elements.
func axisSpan(geom models.Geometry, axis models.Axis) (extent, stride int) {
	switch axis {
	case models.AxisDetectors:
		return geom.Detectors, 1
	case models.AxisAngles:
		return geom.Angles, geom.Detectors
	case models.AxisSlices:
		return geom.Slices, geom.Detectors * geom.Angles
	default:
		panic("ringweights: unknown axis")
	}
}

// windowMedian returns the median of the 2h+1 samples centered on the element
// at flat index idx, stepping along an axis with the given stride. coord is
// the coordinate of idx along that axis and extent the axis length. Taps that
// fall outside [0, extent) substitute the center sample, so the window keeps
// its full length at the boundaries and the median stays the exact middle
// rank. win is a scratch buffer with capacity for the full window.
func windowMedian(src []float32, idx, coord, extent, stride, half int, win []float32) float32 {
	win = win[:0]
	for k := -half; k <= half; k++ {
		c := coord + k
		if c >= 0 && c < extent {
			win = append(win, src[idx+k*stride])
		} else {
			win = append(win, src[idx])
		}
	}
	slices.Sort(win)
	return win[half]
}

// medianPass fills dst with the sliding median of src along one axis. src and
// dst must not alias: every output depends on unfiltered neighbor values, so
// the pass reads only src and writes only dst. Rows (slice, angle pairs) are
// split into contiguous chunks across numCores goroutines; each worker owns a
// private window buffer.
func medianPass(src, dst []float32, geom models.Geometry, axis models.Axis, half, numCores int) {
	extent, stride := axisSpan(geom, axis)

	numRows := geom.Slices * geom.Angles
	if numCores < 1 {
		numCores = 1
	}
	if numCores > numRows {
		numCores = numRows
	}
	rowsPerCore := (numRows + numCores - 1) / numCores

	var wg sync.WaitGroup
	for c := 0; c < numCores; c++ {
		wg.Add(1)

		go func(coreID int) {
			defer wg.Done()

			startRow := coreID * rowsPerCore
			endRow := (coreID + 1) * rowsPerCore
			if endRow > numRows {
				endRow = numRows
			}
			if startRow >= numRows {
				return
			}

			win := make([]float32, 0, 2*half+1)

			for row := startRow; row < endRow; row++ {
				k := row / geom.Angles
				i := row % geom.Angles
				base := row * geom.Detectors

				for j := 0; j < geom.Detectors; j++ {
					idx := base + j

					var coord int
					switch axis {
					case models.AxisDetectors:
						coord = j
					case models.AxisAngles:
						coord = i
					case models.AxisSlices:
						coord = k
					}

					dst[idx] = windowMedian(src, idx, coord, extent, stride, half, win)
				}
			}
		}(c)
	}
	wg.Wait()
}
