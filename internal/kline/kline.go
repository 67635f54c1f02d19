// Package kline generates simulated candlestick series for the dashboard chart.
//
// The series is synthetic: it is anchored to one real price (the latest
// close) and walks backward in time with a small directional bias, so the
// chart looks plausible for the stock's current trend without any real
// historical data.
package kline

import (
	"math/rand"
	"time"

	"stock-evaluator/internal/models"
)

// DateFormat is the candle date label layout (month-day).
const DateFormat = "01-02"

const (
	// volatilityFactor scales the per-day price swing to 2% of the
	// running price.
	volatilityFactor = 0.02
	// trendBias shifts the uniform change draw. The walk runs backward
	// from today with price = open at each step, so a positive bias
	// pushes earlier days lower and the on-screen series upward.
	trendBias = 0.2
	// jitterFactor bounds the random wick extension beyond the candle
	// body, as a fraction of the day's volatility.
	jitterFactor = 0.5
)

// Generator produces simulated candle series.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a generator seeded from the clock. Series from
// the same generator are not reproducible across calls.
func NewGenerator() *Generator {
	return NewSeededGenerator(time.Now().UnixNano())
}

// NewSeededGenerator creates a generator with a fixed seed, producing
// reproducible series for a given seed and anchor time.
func NewSeededGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// WithNow overrides the generator's clock. Used by tests to anchor the
// date labels.
func (g *Generator) WithNow(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate produces an ordered series of days candles covering the most
// recent calendar days ending today, oldest first. The walk starts at
// price (today's close) and steps backward: each earlier day's close is
// the later day's open. Every candle satisfies
// low <= min(open, close) and high >= max(open, close).
// days <= 0 yields an empty series.
func (g *Generator) Generate(days int, price float64, trend models.Trend) []models.Candle {
	if days <= 0 {
		return []models.Candle{}
	}

	data := make([]models.Candle, days)
	today := g.now()

	var bias float64
	switch trend {
	case models.TrendUp:
		bias = trendBias
	case models.TrendDown:
		bias = -trendBias
	}

	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, -i)

		volatility := price * volatilityFactor
		change := (g.rng.Float64() - 0.5 + bias) * volatility

		close := price
		open := price - change
		high := max(open, close) + g.rng.Float64()*volatility*jitterFactor
		low := min(open, close) - g.rng.Float64()*volatility*jitterFactor

		// Fill back-to-front so the result is oldest first.
		data[days-1-i] = models.Candle{
			Date:  date.Format(DateFormat),
			Open:  open,
			Close: close,
			High:  high,
			Low:   low,
		}

		price = open
	}

	return data
}

// Generate produces a series with a one-off clock-seeded generator.
// Convenience for callers that do not need reproducibility.
func Generate(days int, price float64, trend models.Trend) []models.Candle {
	return NewGenerator().Generate(days, price, trend)
}
