// Package quality provides summary statistics for comparing residual and
// weight volumes, used to report the effect of the ring model.
package quality

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Summary holds descriptive statistics for a volume.
type Summary struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize computes descriptive statistics for a volume.
func Summarize(data []float32) Summary {
	if len(data) == 0 {
		return Summary{}
	}

	v := toFloat64(data)

	s := Summary{
		Mean: stat.Mean(v, nil),
		Min:  v[0],
		Max:  v[0],
	}
	s.StdDev = math.Sqrt(stat.Variance(v, nil))

	for _, x := range v {
		if x < s.Min {
			s.Min = x
		}
		if x > s.Max {
			s.Max = x
		}
	}

	return s
}

// RMSE computes the root mean square error between two volumes of equal size.
func RMSE(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("volume sizes differ: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, nil
	}

	mse := 0.0
	for i := range a {
		diff := float64(a[i]) - float64(b[i])
		mse += diff * diff
	}
	mse /= float64(len(a))

	return math.Sqrt(mse), nil
}

// Correlation computes the Pearson correlation between two volumes of equal
// size. A strong correlation between the residual and the estimated weights
// indicates that most of the residual is attributable to ring artifacts.
func Correlation(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("volume sizes differ: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, nil
	}

	return stat.Correlation(toFloat64(a), toFloat64(b), nil), nil
}

func toFloat64(data []float32) []float64 {
	v := make([]float64, len(data))
	for i, x := range data {
		v[i] = float64(x)
	}
	return v
}
