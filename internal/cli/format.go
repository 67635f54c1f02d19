// Package cli provides the command-line interface for the stock evaluation application.
package cli

import (
	"fmt"

	"stock-evaluator/internal/models"
)

// FormatPrice formats a price with two decimal places.
func FormatPrice(price float64) string {
	return fmt.Sprintf("%.2f", price)
}

// FormatChange formats a change percentage with an explicit sign.
func FormatChange(changePercent float64) string {
	return fmt.Sprintf("%+.2f%%", changePercent)
}

// FormatScore formats a 0-100 score as a percentage.
func FormatScore(score int) string {
	return fmt.Sprintf("%d%%", score)
}

// SignalColor returns the output color for a trading signal.
func SignalColor(signal models.Signal) string {
	switch signal {
	case models.SignalBuy:
		return ColorGreen
	case models.SignalSell:
		return ColorRed
	default:
		return ColorYellow
	}
}

// RiskColor returns the output color for a risk level.
func RiskColor(level models.RiskLevel) string {
	switch level {
	case models.RiskLow:
		return ColorGreen
	case models.RiskHigh:
		return ColorRed
	default:
		return ColorYellow
	}
}

// Truncate shortens a string to max runes, appending an ellipsis when
// anything was cut.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
