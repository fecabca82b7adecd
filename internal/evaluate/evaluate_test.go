package evaluate

import (
	"errors"
	"strings"
	"testing"

	"github.com/juv/sma-tracker/internal/apperr"
)

func TestEvaluateTwoFactor(t *testing.T) {
	cases := []struct {
		name            string
		current, sma, y float64
		expected        Classification
	}{
		{"yesterday below sma wins regardless of price", 5000.0, 4400.0, 4300.0, BuyOpportunity},
		{"yesterday below sma with cheap price", 4000.0, 4400.0, 4300.0, BuyOpportunity},
		{"yesterday above and price above", 4500.0, 4400.0, 4450.0, TooExpensive},
		{"yesterday above and price below", 4300.0, 4400.0, 4450.0, Wait},
		{"yesterday above and price equal", 4400.0, 4400.0, 4450.0, Indeterminate},
		{"yesterday equals sma", 4500.0, 4400.0, 4400.0, Anomalous},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Evaluate(ModeTwoFactor, tc.current, tc.sma, tc.y)
			if r.Classification != tc.expected {
				t.Fatalf("expected %s, got %s", tc.expected, r.Classification)
			}
		})
	}
}

func TestEvaluateSimple(t *testing.T) {
	cases := []struct {
		name         string
		current, sma float64
		expected     Classification
	}{
		{"above", 4500.0, 4400.0, CrossedAbove},
		{"below", 4300.0, 4400.0, CrossedBelow},
		{"equal", 4400.0, 4400.0, Equal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Yesterday's close must not influence simple mode.
			r := Evaluate(ModeSimple, tc.current, tc.sma, 1.0)
			if r.Classification != tc.expected {
				t.Fatalf("expected %s, got %s", tc.expected, r.Classification)
			}
		})
	}
}

func TestEvaluateMessageFormatting(t *testing.T) {
	r := Evaluate(ModeTwoFactor, 4500.0, 4400.0, 4300.0)
	lines := strings.Split(r.Message, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 message lines, got %d: %q", len(lines), r.Message)
	}
	if lines[1] != "Current price: 4500.00" {
		t.Fatalf("unexpected price line: %q", lines[1])
	}
	if lines[2] != "SMA 200: 4400.00 (-2.22%)" {
		t.Fatalf("unexpected sma line: %q", lines[2])
	}
	if lines[3] != "Yesterday close: 4300.00" {
		t.Fatalf("unexpected yesterday line: %q", lines[3])
	}
}

func TestEvaluateZeroPriceDeviationGuard(t *testing.T) {
	r := Evaluate(ModeTwoFactor, 0.0, 4400.0, 4300.0)
	if !strings.Contains(r.Message, "(n/a)") {
		t.Fatalf("expected n/a deviation for zero price, got %q", r.Message)
	}
	if strings.Contains(r.Message, "Inf") || strings.Contains(r.Message, "NaN") {
		t.Fatalf("deviation must never render as Inf/NaN: %q", r.Message)
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode(""); err != nil || m != ModeTwoFactor {
		t.Fatalf("expected two-factor default, got %s (%v)", m, err)
	}
	if m, err := ParseMode("Simple"); err != nil || m != ModeSimple {
		t.Fatalf("expected simple, got %s (%v)", m, err)
	}
	if _, err := ParseMode("hybrid"); !errors.Is(err, apperr.ErrConfig) {
		t.Fatalf("expected ErrConfig for unknown mode, got %v", err)
	}
}
