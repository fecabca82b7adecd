// Package evaluate derives a trading classification and a rendered report
// from the current price, yesterday's close, and the SMA200.
package evaluate

import (
	"fmt"
	"strings"

	"github.com/juv/sma-tracker/internal/apperr"
)

// Classification is the discrete signal produced by one evaluation.
type Classification int

const (
	// Simple mode outcomes.
	CrossedAbove Classification = iota
	CrossedBelow
	Equal
	// Two-factor mode outcomes.
	BuyOpportunity
	TooExpensive
	Wait
	Indeterminate
	Anomalous
)

// String returns a stable identifier for logs and metrics labels.
func (c Classification) String() string {
	switch c {
	case CrossedAbove:
		return "crossed-above"
	case CrossedBelow:
		return "crossed-below"
	case Equal:
		return "equal"
	case BuyOpportunity:
		return "buy-opportunity"
	case TooExpensive:
		return "too-expensive"
	case Wait:
		return "wait"
	case Indeterminate:
		return "indeterminate"
	case Anomalous:
		return "anomalous"
	default:
		return "unknown"
	}
}

func (c Classification) label() string {
	switch c {
	case CrossedAbove:
		return "📈 Crossed above the SMA 200"
	case CrossedBelow:
		return "📉 Crossed below the SMA 200"
	case Equal:
		return "Price equals the SMA 200"
	case BuyOpportunity:
		return "🚀🚀🚀 Buy opportunity 🚀🚀🚀"
	case TooExpensive:
		return "🫰 Too expensive"
	case Wait:
		return "🧘 Wait and have a ☕"
	case Indeterminate:
		return "🤔 Consider other signals"
	case Anomalous:
		return "🤷 Unexpected data relationship"
	default:
		return "Unknown"
	}
}

// Mode selects which decision tree classifies an evaluation. The two trees
// are alternatives, never blended.
type Mode string

const (
	// ModeSimple compares the current price against the SMA only.
	ModeSimple Mode = "simple"
	// ModeTwoFactor consults yesterday's close before the current price.
	ModeTwoFactor Mode = "two-factor"
)

// ParseMode maps a configured strategy name onto a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ModeTwoFactor):
		return ModeTwoFactor, nil
	case string(ModeSimple):
		return ModeSimple, nil
	default:
		return "", fmt.Errorf("%w: unknown evaluation mode %q", apperr.ErrConfig, s)
	}
}

// Report is the rendered outcome of one evaluation.
type Report struct {
	Classification Classification
	CurrentPrice   float64
	SMA200         float64
	YesterdayClose float64
	Message        string
}

// Evaluate classifies the price/SMA relationship under the given mode and
// renders the report message. Pure function; delivery is the caller's job.
func Evaluate(mode Mode, currentPrice, sma200, yesterdayClose float64) Report {
	var cls Classification
	switch mode {
	case ModeSimple:
		switch {
		case currentPrice > sma200:
			cls = CrossedAbove
		case currentPrice < sma200:
			cls = CrossedBelow
		default:
			cls = Equal
		}
	default:
		switch {
		case yesterdayClose < sma200:
			// A discount signal fired yesterday; the current price does not matter.
			cls = BuyOpportunity
		case yesterdayClose > sma200:
			switch {
			case currentPrice > sma200:
				cls = TooExpensive
			case currentPrice < sma200:
				cls = Wait
			default:
				cls = Indeterminate
			}
		default:
			cls = Anomalous
		}
	}

	r := Report{
		Classification: cls,
		CurrentPrice:   currentPrice,
		SMA200:         sma200,
		YesterdayClose: yesterdayClose,
	}
	r.Message = renderMessage(r)
	return r
}

func renderMessage(r Report) string {
	// A zero current price would make the deviation infinite; report it as
	// undefined instead.
	deviation := "n/a"
	if r.CurrentPrice != 0 {
		deviation = fmt.Sprintf("%.2f%%", (r.SMA200-r.CurrentPrice)/r.CurrentPrice*100)
	}
	return fmt.Sprintf("%s\nCurrent price: %.2f\nSMA 200: %.2f (%s)\nYesterday close: %.2f",
		r.Classification.label(), r.CurrentPrice, r.SMA200, deviation, r.YesterdayClose)
}
