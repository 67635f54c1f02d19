// Package models provides domain models for the stock evaluation application.
package models

// Signal represents a platform's most recent trading signal.
type Signal string

const (
	SignalBuy  Signal = "Buy"
	SignalHold Signal = "Hold"
	SignalSell Signal = "Sell"
)

// ParseSignal parses a signal string, defaulting to Hold for anything
// that is not a recognized signal.
func ParseSignal(s string) Signal {
	switch Signal(s) {
	case SignalBuy, SignalSell:
		return Signal(s)
	default:
		return SignalHold
	}
}

// RiskLevel represents a qualitative volatility assessment.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// ParseRiskLevel parses a risk level string, defaulting to Medium for
// anything that is not a recognized level.
func ParseRiskLevel(s string) RiskLevel {
	switch RiskLevel(s) {
	case RiskLow, RiskHigh:
		return RiskLevel(s)
	default:
		return RiskMedium
	}
}

// Trend represents the direction bias used by the simulated chart.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// TrendFromChange derives a chart trend from a daily change percentage.
// Changes within ±0.5% are treated as flat.
func TrendFromChange(changePercent float64) Trend {
	switch {
	case changePercent > 0.5:
		return TrendUp
	case changePercent < -0.5:
		return TrendDown
	default:
		return TrendFlat
	}
}

// UserProfile holds the questionnaire answers for the active session.
// Capital and RiskTolerance are ordinal buckets:
//
//	Capital:       0 (<100k), 1 (100k-500k), 2 (500k-2M), 3 (>2M)
//	RiskTolerance: 0 (conservative), 1 (balanced), 2 (aggressive)
type UserProfile struct {
	Name          string `json:"name"`
	Capital       int    `json:"capital"`
	RiskTolerance int    `json:"risk_tolerance"`
	Experience    int    `json:"experience"` // years
}

// RiskToleranceLabel returns the human-readable tolerance label for the
// profile's risk bucket.
func (p UserProfile) RiskToleranceLabel() string {
	switch p.RiskTolerance {
	case 0:
		return "Conservative"
	case 2:
		return "Aggressive"
	default:
		return "Balanced"
	}
}

// DefaultProfile returns the profile preloaded before the questionnaire
// has been answered.
func DefaultProfile() UserProfile {
	return UserProfile{
		Name:          "Investor",
		Capital:       1,
		RiskTolerance: 1,
		Experience:    3,
	}
}

// PlatformMetric holds the synthesized fit scores for one commentary
// platform. Scores are conventionally 0-100 but are not validated; they
// come straight from the parsed analysis response.
type PlatformMetric struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MatchRate       int    `json:"match_rate"`
	AccuracyScore   int    `json:"accuracy_score"`
	CommunityWisdom int    `json:"community_wisdom"`
	MarketImpact    int    `json:"market_impact"`
	UserFit         int    `json:"user_fit"`
	Description     string `json:"description"`
	RecentSignal    Signal `json:"recent_signal"`
}

// GroundingSource is a citation returned alongside an AI-generated
// answer, indicating where supporting information was found.
type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// StockData is the full result of one analysis. It is constructed
// atomically per search and superseded wholesale by the next search;
// it is never merged or patched incrementally.
type StockData struct {
	Symbol          string            `json:"symbol"`
	Name            string            `json:"name"`
	Price           float64           `json:"price"`
	ChangePercent   float64           `json:"change_percent"`
	RiskLevel       RiskLevel         `json:"risk_level"`
	RiskReport      string            `json:"risk_report"`
	RecentSituation string            `json:"recent_situation"`
	GeneratedImage  string            `json:"generated_image,omitempty"` // base64 PNG
	Platforms       []PlatformMetric  `json:"platforms"`
	Sources         []GroundingSource `json:"sources"`
}

// Trend returns the chart trend implied by the stock's daily change.
func (s *StockData) Trend() Trend {
	return TrendFromChange(s.ChangePercent)
}

// Candle represents one simulated OHLC entry of the price chart.
// Low <= min(Open, Close) and High >= max(Open, Close) hold for every
// generated candle.
type Candle struct {
	Date  string  `json:"date"` // MM-DD label
	Open  float64 `json:"open"`
	Close float64 `json:"close"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
}

// Bullish reports whether the candle closed at or above its open.
func (c Candle) Bullish() bool {
	return c.Close >= c.Open
}
