package analyst

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"stock-evaluator/internal/config"
	apperrors "stock-evaluator/internal/errors"
	"stock-evaluator/internal/logging"
	"stock-evaluator/internal/models"
)

// Degraded placeholder strings for failed secondary enrichment calls.
const (
	reportMissingKey  = "API key missing. Cannot generate report."
	reportUnavailable = "Unable to generate risk report at this time due to network or API issues."
)

// Analyzer issues the analysis calls and assembles a StockData record.
// One Analyze call triggers up to three requests against the same
// backend: the combined template analysis, a dedicated prose risk
// report, and an illustrative image. Failures of the latter two degrade
// gracefully without failing the primary result. Nothing is retried.
type Analyzer struct {
	client LLMClient
	cfg    config.AnalysisConfig
	parser *Parser
	logger zerolog.Logger
}

// NewAnalyzer creates an analyzer. A nil client means no API key is
// configured; every call then short-circuits with ErrMissingAPIKey.
func NewAnalyzer(client LLMClient, cfg config.AnalysisConfig, logger zerolog.Logger) *Analyzer {
	return &Analyzer{
		client: client,
		cfg:    cfg,
		parser: NewParser(cfg.Defaults, logger),
		logger: logger,
	}
}

// Available reports whether the analyzer has a usable backend client.
func (a *Analyzer) Available() bool {
	return a.client != nil
}

// Analyze runs the full analysis for a search query. The returned
// StockData is constructed atomically; the caller replaces any previous
// result wholesale. A nil result with an error means the caller should
// surface a retry prompt to the user.
func (a *Analyzer) Analyze(ctx context.Context, query string, profile models.UserProfile) (*models.StockData, error) {
	if a.client == nil {
		return nil, apperrors.ErrMissingAPIKey
	}
	if query == "" {
		return nil, apperrors.ErrEmptyQuery
	}

	logger := logging.WithOperation(a.logger, "analyze")

	start := time.Now()
	text, err := a.client.Complete(ctx, BuildAnalysisPrompt(query, profile))
	logging.LogAPICall(logger, "analysis", a.cfg.Model, time.Since(start), err)
	if err != nil {
		return nil, apperrors.NewAnalysisError("analysis", query, err)
	}
	if text == "" {
		return nil, apperrors.NewAnalysisError("analysis", query, apperrors.ErrEmptyResponse)
	}

	data := a.parser.Parse(text, query)

	// Secondary enrichment. Either call failing degrades the field and
	// is isolated from the primary result.
	if a.cfg.GenerateReport {
		data.RiskReport = a.GenerateRiskReport(ctx, data.Name, profile.RiskToleranceLabel())
	}
	if a.cfg.GenerateImage {
		data.GeneratedImage = a.GenerateIllustration(ctx, data.Name)
	}

	logging.LogSearch(logger, query, data.Symbol, data.Price, len(data.Platforms))

	return data, nil
}

// GenerateRiskReport requests the dedicated prose risk report. On any
// failure it returns an apology placeholder instead of an error.
func (a *Analyzer) GenerateRiskReport(ctx context.Context, stockName, riskTolerance string) string {
	if a.client == nil {
		return reportMissingKey
	}

	start := time.Now()
	report, err := a.client.Complete(ctx, BuildRiskReportPrompt(stockName, riskTolerance))
	logging.LogAPICall(a.logger, "risk_report", a.cfg.Model, time.Since(start), err)
	if err != nil || report == "" {
		a.logger.Warn().Err(err).Str("stock", stockName).Msg("Risk report generation failed")
		return reportUnavailable
	}
	return report
}

// GenerateIllustration requests the illustrative image. On any failure
// it returns an empty string, leaving the image absent.
func (a *Analyzer) GenerateIllustration(ctx context.Context, stockName string) string {
	if a.client == nil {
		return ""
	}

	start := time.Now()
	image, err := a.client.CreateIllustration(ctx, BuildIllustrationPrompt(stockName))
	logging.LogAPICall(a.logger, "illustration", a.cfg.ImageModel, time.Since(start), err)
	if err != nil {
		a.logger.Warn().Err(err).Str("stock", stockName).Msg("Illustration generation failed")
		return ""
	}
	return image
}
