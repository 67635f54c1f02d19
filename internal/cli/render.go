package cli

import (
	"strconv"

	"github.com/olekukonko/tablewriter"

	"stock-evaluator/internal/models"
)

// RenderDashboard renders the loaded analysis result: price header,
// narratives, the simulated chart, the platform table and the source
// list.
func RenderDashboard(o *Output, stock *models.StockData, candles []models.Candle) {
	o.Println()
	o.Bold("%s (%s)", stock.Name, stock.Symbol)

	changeColor := ColorGreen
	if stock.ChangePercent < 0 {
		changeColor = ColorRed
	}
	o.Printf("  %s  %s  risk %s\n",
		o.BoldText(FormatPrice(stock.Price)),
		o.ColoredString(changeColor, FormatChange(stock.ChangePercent)),
		o.ColoredString(RiskColor(stock.RiskLevel), string(stock.RiskLevel)))
	o.Println()

	o.Info("Recent situation")
	o.Printf("  %s\n\n", stock.RecentSituation)

	o.Info("Risk report")
	o.Printf("  %s\n\n", stock.RiskReport)

	if stock.GeneratedImage != "" {
		o.Dim("  [illustration: %d bytes of base64 image data]", len(stock.GeneratedImage))
		o.Println()
	}

	o.Info("Simulated %d-day chart (%s trend)", len(candles), stock.Trend())
	RenderChart(o, candles)
	o.Println()

	RenderPlatformTable(o, stock.Platforms)

	if len(stock.Sources) > 0 {
		o.Println()
		o.Info("Sources")
		for _, src := range stock.Sources {
			o.Printf("  - %s  %s\n", src.Title, o.DimText(src.URI))
		}
	}
}

// RenderPlatformTable renders the platform metric rows.
func RenderPlatformTable(o *Output, platforms []models.PlatformMetric) {
	table := tablewriter.NewTable(o.Writer(),
		tablewriter.WithHeader([]string{"#", "Platform", "Match", "Accuracy", "Wisdom", "Impact", "Fit", "Signal"}),
	)

	for i, p := range platforms {
		table.Append([]string{
			strconv.Itoa(i + 1),
			Truncate(p.Name, 18),
			FormatScore(p.MatchRate),
			FormatScore(p.AccuracyScore),
			FormatScore(p.CommunityWisdom),
			FormatScore(p.MarketImpact),
			FormatScore(p.UserFit),
			string(p.RecentSignal),
		})
	}

	table.Render()
}

// RenderPlatformDetail renders the drill-down view for one platform.
func RenderPlatformDetail(o *Output, stock *models.StockData, platform *models.PlatformMetric) {
	o.Println()
	o.Bold("%s — %s (%s)", platform.Name, stock.Name, stock.Symbol)
	o.Println()

	table := tablewriter.NewTable(o.Writer(),
		tablewriter.WithHeader([]string{"Dimension", "Score"}),
	)
	table.Append([]string{"Match rate", FormatScore(platform.MatchRate)})
	table.Append([]string{"Prediction accuracy", FormatScore(platform.AccuracyScore)})
	table.Append([]string{"Community wisdom", FormatScore(platform.CommunityWisdom)})
	table.Append([]string{"Market impact", FormatScore(platform.MarketImpact)})
	table.Append([]string{"Personal fit", FormatScore(platform.UserFit)})
	table.Render()

	o.Println()
	o.Printf("  Recent signal: %s\n",
		o.ColoredString(SignalColor(platform.RecentSignal), string(platform.RecentSignal)))
	o.Printf("  %s\n", platform.Description)
}
