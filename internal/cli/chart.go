package cli

import (
	"strings"

	"stock-evaluator/internal/models"
)

// chartHeight is the number of price rows in the rendered chart.
const chartHeight = 16

// RenderChart draws the simulated candle series as an ASCII candlestick
// chart, one column per candle. Candle bodies span open-close, wicks
// span high-low. Bullish candles render green, bearish red.
func RenderChart(o *Output, candles []models.Candle) {
	if len(candles) == 0 {
		o.Dim("  (no chart data)")
		return
	}

	lo, hi := candles[0].Low, candles[0].High
	for _, c := range candles {
		if c.Low < lo {
			lo = c.Low
		}
		if c.High > hi {
			hi = c.High
		}
	}
	if hi == lo {
		hi = lo + 1
	}

	// Map a price to a row, row 0 at the top.
	row := func(price float64) int {
		r := int((hi - price) / (hi - lo) * float64(chartHeight-1))
		if r < 0 {
			r = 0
		}
		if r >= chartHeight {
			r = chartHeight - 1
		}
		return r
	}

	grid := make([][]string, chartHeight)
	for i := range grid {
		grid[i] = make([]string, len(candles))
		for j := range grid[i] {
			grid[i][j] = " "
		}
	}

	for j, c := range candles {
		bodyTop := row(maxF(c.Open, c.Close))
		bodyBot := row(minF(c.Open, c.Close))
		wickTop := row(c.High)
		wickBot := row(c.Low)

		color := ColorRed
		if c.Bullish() {
			color = ColorGreen
		}

		for r := wickTop; r <= wickBot; r++ {
			ch := "│"
			if r >= bodyTop && r <= bodyBot {
				ch = "█"
			}
			grid[r][j] = o.ColoredString(color, ch)
		}
	}

	for r, line := range grid {
		label := "        "
		switch r {
		case 0:
			label = alignPrice(hi)
		case chartHeight - 1:
			label = alignPrice(lo)
		}
		o.Printf("  %s %s\n", o.DimText(label), strings.Join(line, ""))
	}

	// Date labels every few candles, aligned under their columns.
	var dates strings.Builder
	step := 7
	for j := 0; j < len(candles); j += step {
		pos := j + 11 // 2 indent + 8 label + 1 space
		for dates.Len() < pos {
			dates.WriteByte(' ')
		}
		dates.WriteString(candles[j].Date)
	}
	o.Dim("%s", dates.String())
}

func alignPrice(price float64) string {
	s := FormatPrice(price)
	for len(s) < 8 {
		s = " " + s
	}
	return s
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
