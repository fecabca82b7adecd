package sma

import (
	"errors"
	"math"
	"testing"

	"github.com/juv/sma-tracker/internal/apperr"
)

func fill(n int, v float64) []*float64 {
	out := make([]*float64, n)
	for i := range out {
		val := v
		out[i] = &val
	}
	return out
}

func TestComputeExactWindowIdenticalValues(t *testing.T) {
	avg, err := Compute(fill(200, 4400.0))
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if avg != 4400.0 {
		t.Fatalf("expected exactly 4400.0, got %v", avg)
	}
}

func TestComputeInsufficientData(t *testing.T) {
	_, err := Compute(fill(199, 4400.0))
	if !errors.Is(err, apperr.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestComputeGapsDoNotCount(t *testing.T) {
	// 199 present values plus any number of gaps is still insufficient.
	closes := fill(199, 4400.0)
	for i := 0; i < 50; i++ {
		closes = append(closes, nil)
	}
	_, err := Compute(closes)
	if !errors.Is(err, apperr.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData with gaps interspersed, got %v", err)
	}
}

func TestComputeGapPositionsIrrelevant(t *testing.T) {
	leading := append(make([]*float64, 0, 210), nil, nil, nil)
	leading = append(leading, fill(200, 100.0)...)

	trailing := fill(200, 100.0)
	trailing = append(trailing, nil, nil, nil)

	interspersed := make([]*float64, 0, 210)
	for i, c := range fill(200, 100.0) {
		interspersed = append(interspersed, c)
		if i%50 == 0 {
			interspersed = append(interspersed, nil)
		}
	}

	for name, closes := range map[string][]*float64{
		"leading": leading, "trailing": trailing, "interspersed": interspersed,
	} {
		avg, err := Compute(closes)
		if err != nil {
			t.Fatalf("%s: Compute returned error: %v", name, err)
		}
		if avg != 100.0 {
			t.Fatalf("%s: expected 100.0, got %v", name, avg)
		}
	}
}

func TestComputeAveragesAllValidValues(t *testing.T) {
	// More than 200 valid closes: every one of them contributes, not just
	// the most recent 200.
	closes := fill(200, 100.0)
	closes = append(closes, fill(100, 400.0)...)

	avg, err := Compute(closes)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	expected := (200*100.0 + 100*400.0) / 300.0
	if math.Abs(avg-expected) > 1e-9 {
		t.Fatalf("expected %v, got %v", expected, avg)
	}
}

func TestComputeEmptyInput(t *testing.T) {
	_, err := Compute(nil)
	if !errors.Is(err, apperr.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData for empty input, got %v", err)
	}
}
