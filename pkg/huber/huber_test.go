package huber

import (
	"math"
	"testing"
)

// TestMultipliers verifies the quadratic and linear regimes of the Huber
// influence function, with the ring offsets added to the residual.
func TestMultipliers(t *testing.T) {
	residual := []float32{0, 1, -1, 5, -10}
	offsets := []float32{0, 0, 0, 0, 4}

	mult, err := Multipliers(residual, offsets, 2)
	if err != nil {
		t.Fatalf("Multipliers failed: %v", err)
	}

	// |r+o| values are [0, 1, 1, 5, 6]; threshold 2 keeps the first three at
	// 1 and scales the last two by 2/|r+o|
	expected := []float32{1, 1, 1, 2.0 / 5.0, 2.0 / 6.0}
	for i := range expected {
		if math.Abs(float64(mult[i]-expected[i])) > 1e-7 {
			t.Errorf("index %d: expected multiplier %g, got %g", i, expected[i], mult[i])
		}
	}
}

// TestMultipliersNilOffsets verifies that a nil offsets slice thresholds the
// plain residual.
func TestMultipliersNilOffsets(t *testing.T) {
	residual := []float32{3, -4, 1}

	mult, err := Multipliers(residual, nil, 2)
	if err != nil {
		t.Fatalf("Multipliers failed: %v", err)
	}

	expected := []float32{2.0 / 3.0, 0.5, 1}
	for i := range expected {
		if math.Abs(float64(mult[i]-expected[i])) > 1e-7 {
			t.Errorf("index %d: expected multiplier %g, got %g", i, expected[i], mult[i])
		}
	}
}

// TestMultipliersValidation verifies rejection of malformed arguments.
func TestMultipliersValidation(t *testing.T) {
	if _, err := Multipliers([]float32{1}, nil, 0); err == nil {
		t.Error("expected an error for a zero threshold, got nil")
	}
	if _, err := Multipliers([]float32{1}, nil, -1); err == nil {
		t.Error("expected an error for a negative threshold, got nil")
	}
	if _, err := Multipliers([]float32{1, 2}, []float32{1}, 1); err == nil {
		t.Error("expected an error for mismatched lengths, got nil")
	}
}

// TestApply verifies the elementwise weighting of a residual.
func TestApply(t *testing.T) {
	residual := []float32{2, -4, 6}
	mult := []float32{1, 0.5, 0}

	weighted, err := Apply(residual, mult)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	expected := []float32{2, -2, 0}
	for i := range expected {
		if weighted[i] != expected[i] {
			t.Errorf("index %d: expected %g, got %g", i, expected[i], weighted[i])
		}
	}

	if _, err := Apply(residual, mult[:2]); err == nil {
		t.Error("expected an error for mismatched lengths, got nil")
	}
}
