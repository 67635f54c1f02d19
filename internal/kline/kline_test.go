package kline

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"stock-evaluator/internal/models"
)

// Property: For all days > 0 and positive anchor prices, the generator
// returns exactly days candles, oldest first, with date labels ending
// today.
func TestProperty_SeriesLengthAndOrder(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	anchor := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	properties.Property("series has exactly days candles ending today", prop.ForAll(
		func(days int, price float64, seed int64) bool {
			g := NewSeededGenerator(seed).WithNow(func() time.Time { return anchor })
			series := g.Generate(days, price, models.TrendFlat)

			if len(series) != days {
				return false
			}

			// Oldest first: candle i is (days-1-i) days before the anchor.
			for i, c := range series {
				want := anchor.AddDate(0, 0, -(days - 1 - i)).Format(DateFormat)
				if c.Date != want {
					return false
				}
			}
			return series[days-1].Date == anchor.Format(DateFormat)
		},
		gen.IntRange(1, 120),
		gen.Float64Range(0.5, 5000),
		gen.Int64(),
	))

	properties.TestingRun(t)
}

// Property: Every generated candle satisfies low <= open <= high and
// low <= close <= high, for any trend.
func TestProperty_CandleInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	trends := []models.Trend{models.TrendUp, models.TrendDown, models.TrendFlat}

	properties.Property("low <= open,close <= high for every candle", prop.ForAll(
		func(days int, price float64, seed int64, trendIdx int) bool {
			g := NewSeededGenerator(seed)
			series := g.Generate(days, price, trends[trendIdx])

			for _, c := range series {
				if c.Low > c.Open || c.Low > c.Close {
					return false
				}
				if c.High < c.Open || c.High < c.Close {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 90),
		gen.Float64Range(0.5, 5000),
		gen.Int64(),
		gen.IntRange(0, 2),
	))

	properties.TestingRun(t)
}

// The drift test is statistical: over many seeded runs, an "up" series
// closes above where it started more often than not, "down" below, and
// "flat" shows no strong lean either way.
func TestTrendDrift(t *testing.T) {
	const (
		trials = 400
		days   = 30
		price  = 1800.0
	)

	drift := func(trend models.Trend) (rises int) {
		for seed := int64(0); seed < trials; seed++ {
			g := NewSeededGenerator(seed)
			series := g.Generate(days, price, trend)
			if series[len(series)-1].Close > series[0].Close {
				rises++
			}
		}
		return rises
	}

	if rises := drift(models.TrendUp); rises < trials*3/4 {
		t.Errorf("up trend rose in only %d/%d runs", rises, trials)
	}
	if rises := drift(models.TrendDown); rises > trials/4 {
		t.Errorf("down trend rose in %d/%d runs", rises, trials)
	}
	if rises := drift(models.TrendFlat); rises < trials*3/10 || rises > trials*7/10 {
		t.Errorf("flat trend rose in %d/%d runs, expected no strong lean", rises, trials)
	}
}

func TestGenerateNonPositiveDays(t *testing.T) {
	g := NewSeededGenerator(1)

	for _, days := range []int{0, -1, -30} {
		if series := g.Generate(days, 100, models.TrendFlat); len(series) != 0 {
			t.Errorf("Generate(%d) returned %d candles, want 0", days, len(series))
		}
	}
}

func TestSeededGeneratorReproducible(t *testing.T) {
	anchor := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return anchor }

	a := NewSeededGenerator(42).WithNow(now).Generate(30, 250, models.TrendUp)
	b := NewSeededGenerator(42).WithNow(now).Generate(30, 250, models.TrendUp)

	if len(a) != len(b) {
		t.Fatalf("series lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("candle %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
