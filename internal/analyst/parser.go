package analyst

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"stock-evaluator/internal/config"
	"stock-evaluator/internal/logging"
	"stock-evaluator/internal/models"
)

// Fallbacks for fields with no configured default.
const (
	defaultSymbol      = "UNKNOWN"
	defaultNews        = "No recent news available."
	defaultDescription = "Suited to your investing style."
)

// platformCount is the number of platform metric blocks in the template.
const platformCount = 3

// nonNumeric matches everything that cannot appear in a parsed number,
// so decorated values like "$1,800.50" or "+1.2%" sanitize cleanly.
var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

// Parser extracts a StockData record from the delimiter-tagged analysis
// response. Each field is matched independently; a missing field falls
// back to its default silently (logged at debug) rather than failing
// the parse. A garbled response therefore still yields a fully
// populated record, which callers must accept as a known weakness of
// the template contract.
type Parser struct {
	defaults config.ParseDefaults
	logger   zerolog.Logger
}

// NewParser creates a parser with the given fallback defaults.
func NewParser(defaults config.ParseDefaults, logger zerolog.Logger) *Parser {
	return &Parser{
		defaults: defaults,
		logger:   logger,
	}
}

// Parse extracts all template fields from the raw response text. The
// query is the fallback for a missing stock name. RiskReport and
// GeneratedImage are filled by the analyzer's secondary calls, not here.
func (p *Parser) Parse(text, query string) *models.StockData {
	data := &models.StockData{
		Symbol:          p.getValue(text, "SYMBOL", defaultSymbol),
		Name:            p.getValue(text, "NAME", query),
		Price:           p.getFloat(text, "PRICE", p.defaults.Price),
		ChangePercent:   p.getFloat(text, "CHANGE", 0),
		RiskLevel:       models.ParseRiskLevel(p.getValue(text, "RISK", p.defaults.Risk)),
		RecentSituation: p.getValue(text, "NEWS", defaultNews),
		Platforms:       make([]models.PlatformMetric, 0, platformCount),
	}

	for i := 1; i <= platformCount; i++ {
		data.Platforms = append(data.Platforms, models.PlatformMetric{
			ID:              fmt.Sprintf("p-%d", i),
			Name:            p.getValue(text, fmt.Sprintf("P%d_NAME", i), platformHints[i-1].Name),
			MatchRate:       p.getScore(text, fmt.Sprintf("P%d_MATCH", i)),
			AccuracyScore:   p.getScore(text, fmt.Sprintf("P%d_ACC", i)),
			CommunityWisdom: p.getScore(text, fmt.Sprintf("P%d_WISDOM", i)),
			MarketImpact:    p.getScore(text, fmt.Sprintf("P%d_IMPACT", i)),
			UserFit:         p.getScore(text, fmt.Sprintf("P%d_FIT", i)),
			Description:     p.getValue(text, fmt.Sprintf("P%d_DESC", i), defaultDescription),
			RecentSignal:    models.ParseSignal(p.getValue(text, fmt.Sprintf("P%d_SIG", i), p.defaults.Signal)),
		})
	}

	data.Sources = p.parseSources(text)

	return data
}

// getValue extracts the raw value for one ||KEY||: marker, substituting
// fallback when the marker is absent or empty.
func (p *Parser) getValue(text, key, fallback string) string {
	re := regexp.MustCompile(`\|\|` + regexp.QuoteMeta(key) + `\|\|:\s*(.*)`)
	m := re.FindStringSubmatch(text)
	if m == nil {
		logging.LogParseMiss(p.logger, key, fallback)
		return fallback
	}
	v := strings.TrimSpace(m[1])
	if v == "" {
		logging.LogParseMiss(p.logger, key, fallback)
		return fallback
	}
	return v
}

// getFloat extracts a numeric field, stripping currency symbols, commas
// and percent signs before parsing.
func (p *Parser) getFloat(text, key string, fallback float64) float64 {
	raw := p.getValue(text, key, "")
	if raw == "" {
		return fallback
	}
	cleaned := nonNumeric.ReplaceAllString(raw, "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		logging.LogParseMiss(p.logger, key, strconv.FormatFloat(fallback, 'f', -1, 64))
		return fallback
	}
	return v
}

// getScore extracts a 0-100 platform score, substituting the configured
// default score when the field is missing or unparseable. Fractional
// values are truncated.
func (p *Parser) getScore(text, key string) int {
	raw := p.getValue(text, key, "")
	if raw == "" {
		return p.defaults.Score
	}
	cleaned := nonNumeric.ReplaceAllString(raw, "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		logging.LogParseMiss(p.logger, key, strconv.Itoa(p.defaults.Score))
		return p.defaults.Score
	}
	return int(v)
}

// parseSources collects the SRCn_TITLE/SRCn_URI pairs, dropping entries
// without a usable URI and capping the list at maxSources.
func (p *Parser) parseSources(text string) []models.GroundingSource {
	sources := make([]models.GroundingSource, 0, maxSources)
	for i := 1; i <= maxSources; i++ {
		uri := p.getValue(text, fmt.Sprintf("SRC%d_URI", i), "")
		if uri == "" || uri == "#" || strings.HasPrefix(uri, "[") {
			continue
		}
		title := p.getValue(text, fmt.Sprintf("SRC%d_TITLE", i), "Source")
		sources = append(sources, models.GroundingSource{Title: title, URI: uri})
	}
	return sources
}
