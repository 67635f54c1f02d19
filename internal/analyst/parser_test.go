package analyst

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/rs/zerolog"

	"stock-evaluator/internal/config"
	"stock-evaluator/internal/models"
)

func testDefaults() config.ParseDefaults {
	return config.ParseDefaults{
		Price:  100,
		Score:  80,
		Signal: "Hold",
		Risk:   "Medium",
	}
}

func newTestParser() *Parser {
	return NewParser(testDefaults(), zerolog.Nop())
}

// buildTemplate renders a well-formed response template from known
// values, for round-trip tests.
func buildTemplate(data *models.StockData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "||NAME||: %s\n", data.Name)
	fmt.Fprintf(&b, "||SYMBOL||: %s\n", data.Symbol)
	fmt.Fprintf(&b, "||PRICE||: %.2f\n", data.Price)
	fmt.Fprintf(&b, "||CHANGE||: %.2f\n", data.ChangePercent)
	fmt.Fprintf(&b, "||NEWS||: %s\n", data.RecentSituation)
	fmt.Fprintf(&b, "||RISK||: %s\n", data.RiskLevel)

	for i, p := range data.Platforms {
		n := i + 1
		fmt.Fprintf(&b, "||P%d_NAME||: %s\n", n, p.Name)
		fmt.Fprintf(&b, "||P%d_MATCH||: %d\n", n, p.MatchRate)
		fmt.Fprintf(&b, "||P%d_ACC||: %d\n", n, p.AccuracyScore)
		fmt.Fprintf(&b, "||P%d_WISDOM||: %d\n", n, p.CommunityWisdom)
		fmt.Fprintf(&b, "||P%d_IMPACT||: %d\n", n, p.MarketImpact)
		fmt.Fprintf(&b, "||P%d_FIT||: %d\n", n, p.UserFit)
		fmt.Fprintf(&b, "||P%d_DESC||: %s\n", n, p.Description)
		fmt.Fprintf(&b, "||P%d_SIG||: %s\n", n, p.RecentSignal)
	}

	for i, s := range data.Sources {
		fmt.Fprintf(&b, "||SRC%d_TITLE||: %s\n", i+1, s.Title)
		fmt.Fprintf(&b, "||SRC%d_URI||: %s\n", i+1, s.URI)
	}

	return b.String()
}

func samplePlatform(n int, signal models.Signal) models.PlatformMetric {
	return models.PlatformMetric{
		ID:              fmt.Sprintf("p-%d", n),
		Name:            fmt.Sprintf("Platform%d", n),
		MatchRate:       90 - n,
		AccuracyScore:   85,
		CommunityWisdom: 70 + n,
		MarketImpact:    65,
		UserFit:         88,
		Description:     fmt.Sprintf("Reason %d", n),
		RecentSignal:    signal,
	}
}

func TestParseRoundTrip(t *testing.T) {
	want := &models.StockData{
		Symbol:          "600519",
		Name:            "Kweichow Moutai",
		Price:           1823.45,
		ChangePercent:   -1.25,
		RiskLevel:       models.RiskLow,
		RecentSituation: "Sector recovering. Channel inventory improving. Dealers stable.",
		Platforms: []models.PlatformMetric{
			samplePlatform(1, models.SignalBuy),
			samplePlatform(2, models.SignalHold),
			samplePlatform(3, models.SignalSell),
		},
		Sources: []models.GroundingSource{
			{Title: "Market Daily", URI: "https://example.com/a"},
			{Title: "Finance Wire", URI: "https://example.com/b"},
		},
	}

	got := newTestParser().Parse(buildTemplate(want), "600519")

	if got.Symbol != want.Symbol || got.Name != want.Name {
		t.Errorf("identity mismatch: got %s/%s", got.Symbol, got.Name)
	}
	if got.Price != want.Price || got.ChangePercent != want.ChangePercent {
		t.Errorf("price mismatch: got %.2f %.2f", got.Price, got.ChangePercent)
	}
	if got.RiskLevel != want.RiskLevel {
		t.Errorf("risk level mismatch: got %s", got.RiskLevel)
	}
	if got.RecentSituation != want.RecentSituation {
		t.Errorf("news mismatch: got %q", got.RecentSituation)
	}
	if len(got.Platforms) != len(want.Platforms) {
		t.Fatalf("platform count mismatch: got %d", len(got.Platforms))
	}
	for i := range want.Platforms {
		if got.Platforms[i] != want.Platforms[i] {
			t.Errorf("platform %d mismatch:\n got %+v\nwant %+v", i, got.Platforms[i], want.Platforms[i])
		}
	}
	if len(got.Sources) != len(want.Sources) {
		t.Fatalf("source count mismatch: got %d", len(got.Sources))
	}
	for i := range want.Sources {
		if got.Sources[i] != want.Sources[i] {
			t.Errorf("source %d mismatch: got %+v", i, got.Sources[i])
		}
	}
}

// Property: a template built from any in-range values parses back to
// exactly those values.
func TestProperty_ParseRoundTripScores(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	parser := newTestParser()

	properties.Property("platform scores survive the round trip", prop.ForAll(
		func(match, acc, wisdom, impact, fit int, sigIdx int) bool {
			signals := []models.Signal{models.SignalBuy, models.SignalHold, models.SignalSell}
			want := &models.StockData{
				Symbol:          "TEST",
				Name:            "Test Corp",
				Price:           250,
				ChangePercent:   1.5,
				RiskLevel:       models.RiskMedium,
				RecentSituation: "steady",
				Platforms: []models.PlatformMetric{
					{ID: "p-1", Name: "A", MatchRate: match, AccuracyScore: acc, CommunityWisdom: wisdom,
						MarketImpact: impact, UserFit: fit, Description: "d", RecentSignal: signals[sigIdx]},
					samplePlatform(2, models.SignalHold),
					samplePlatform(3, models.SignalHold),
				},
			}

			got := parser.Parse(buildTemplate(want), "TEST")
			p := got.Platforms[0]
			return p.MatchRate == match && p.AccuracyScore == acc &&
				p.CommunityWisdom == wisdom && p.MarketImpact == impact &&
				p.UserFit == fit && p.RecentSignal == signals[sigIdx]
		},
		gen.IntRange(0, 100),
		gen.IntRange(0, 100),
		gen.IntRange(0, 100),
		gen.IntRange(0, 100),
		gen.IntRange(0, 100),
		gen.IntRange(0, 2),
	))

	properties.TestingRun(t)
}

func TestParseMissingFieldsDefaults(t *testing.T) {
	// Only the identity fields are present; everything else must fall
	// back to its documented default, with present fields untouched.
	text := "||NAME||: Acme Corp\n||SYMBOL||: ACME\n"

	got := newTestParser().Parse(text, "acme")

	if got.Name != "Acme Corp" || got.Symbol != "ACME" {
		t.Errorf("present fields changed: %s/%s", got.Name, got.Symbol)
	}
	if got.Price != 100 {
		t.Errorf("price default: got %.2f, want 100", got.Price)
	}
	if got.ChangePercent != 0 {
		t.Errorf("change default: got %.2f, want 0", got.ChangePercent)
	}
	if got.RiskLevel != models.RiskMedium {
		t.Errorf("risk default: got %s, want Medium", got.RiskLevel)
	}
	if got.RecentSituation != defaultNews {
		t.Errorf("news default: got %q", got.RecentSituation)
	}
	if len(got.Platforms) != 3 {
		t.Fatalf("platform count: got %d, want 3", len(got.Platforms))
	}
	for i, p := range got.Platforms {
		if p.MatchRate != 80 || p.AccuracyScore != 80 || p.CommunityWisdom != 80 ||
			p.MarketImpact != 80 || p.UserFit != 80 {
			t.Errorf("platform %d score defaults: %+v", i, p)
		}
		if p.RecentSignal != models.SignalHold {
			t.Errorf("platform %d signal default: got %s", i, p.RecentSignal)
		}
		if p.Description != defaultDescription {
			t.Errorf("platform %d description default: got %q", i, p.Description)
		}
	}
	if len(got.Sources) != 0 {
		t.Errorf("sources: got %d, want 0", len(got.Sources))
	}
}

func TestParseEmptyResponseAllDefaults(t *testing.T) {
	got := newTestParser().Parse("", "600519")

	if got.Name != "600519" {
		t.Errorf("name fallback: got %q, want query", got.Name)
	}
	if got.Symbol != defaultSymbol {
		t.Errorf("symbol fallback: got %q", got.Symbol)
	}
	if got.Price != 100 || got.ChangePercent != 0 {
		t.Errorf("numeric fallbacks: %.2f %.2f", got.Price, got.ChangePercent)
	}
}

func TestParseSanitizesDecoratedNumbers(t *testing.T) {
	cases := []struct {
		raw        string
		wantPrice  float64
		wantChange float64
	}{
		{"||PRICE||: $1,823.45\n||CHANGE||: +1.2%\n", 1823.45, 1.2},
		{"||PRICE||: 1800 CNY\n||CHANGE||: -0.75%\n", 1800, -0.75},
		{"||PRICE||: approx. garbage\n||CHANGE||: n/a\n", 100, 0},
	}

	parser := newTestParser()
	for _, tc := range cases {
		got := parser.Parse(tc.raw, "q")
		if got.Price != tc.wantPrice {
			t.Errorf("%q: price %.2f, want %.2f", tc.raw, got.Price, tc.wantPrice)
		}
		if got.ChangePercent != tc.wantChange {
			t.Errorf("%q: change %.2f, want %.2f", tc.raw, got.ChangePercent, tc.wantChange)
		}
	}
}

func TestParseSourcesSkipsPlaceholders(t *testing.T) {
	text := strings.Join([]string{
		"||SRC1_TITLE||: Good Source",
		"||SRC1_URI||: https://example.com/good",
		"||SRC2_TITLE||: Placeholder",
		"||SRC2_URI||: [Source URL]",
		"||SRC3_TITLE||: Broken",
		"||SRC3_URI||: #",
		"||SRC4_TITLE||:",
		"||SRC4_URI||:",
	}, "\n")

	got := newTestParser().Parse(text, "q")

	if len(got.Sources) != 1 {
		t.Fatalf("sources: got %d, want 1", len(got.Sources))
	}
	if got.Sources[0].Title != "Good Source" || got.Sources[0].URI != "https://example.com/good" {
		t.Errorf("source mismatch: %+v", got.Sources[0])
	}
}

func TestParseUnknownSignalAndRiskDefault(t *testing.T) {
	text := "||RISK||: Extreme\n||P1_SIG||: Maybe\n"

	got := newTestParser().Parse(text, "q")

	if got.RiskLevel != models.RiskMedium {
		t.Errorf("risk: got %s, want Medium", got.RiskLevel)
	}
	if got.Platforms[0].RecentSignal != models.SignalHold {
		t.Errorf("signal: got %s, want Hold", got.Platforms[0].RecentSignal)
	}
}
