package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apperrors "stock-evaluator/internal/errors"
	"stock-evaluator/internal/kline"
	"stock-evaluator/internal/models"
)

func newAnalyzeCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "analyze <query>",
		Short: "Run a one-shot stock analysis",
		Long: `Analyze a stock by name or symbol without the interactive session,
using the default investor profile. Prints the dashboard rendering, or the
full result as JSON with --json.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			query := strings.Join(args, " ")

			stop := startSpinner(output, "Analyzing "+query)
			stock, err := app.Analyzer.Analyze(cmd.Context(), query, models.DefaultProfile())
			stop()

			if err != nil {
				if apperrors.Is(err, apperrors.ErrMissingAPIKey) {
					output.Warning(msgNoAPIKey)
					return err
				}
				app.Logger.Error().Err(err).Str("query", query).Msg("Analysis failed")
				output.Error(msgSearchFailed)
				return err
			}

			if days <= 0 {
				days = app.Config.Chart.Days
			}
			candles := app.Generator.Generate(days, stock.Price, stock.Trend())

			if output.IsJSON() {
				return output.JSON(struct {
					Stock   *models.StockData `json:"stock"`
					Candles []models.Candle   `json:"candles"`
				}{stock, candles})
			}

			RenderDashboard(output, stock, candles)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "simulated chart window in days (default: config chart.days)")

	return cmd
}

func newChartCmd(app *App) *cobra.Command {
	var (
		days  int
		trend string
		seed  int64
	)

	cmd := &cobra.Command{
		Use:   "chart <price>",
		Short: "Render a simulated candle chart",
		Long: `Render the simulated candle chart for a given anchor price without
calling the analysis backend. With --seed the chart is reproducible.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			price, err := parsePrice(args[0])
			if err != nil {
				return err
			}

			t := models.Trend(trend)
			switch t {
			case models.TrendUp, models.TrendDown, models.TrendFlat:
			default:
				return apperrors.NewValidationError("trend", trend, "must be up, down or flat")
			}

			generator := app.Generator
			if cmd.Flags().Changed("seed") {
				generator = kline.NewSeededGenerator(seed)
			}
			candles := generator.Generate(days, price, t)

			if output.IsJSON() {
				return output.JSON(candles)
			}

			output.Println()
			output.Info("Simulated %d-day chart (%s trend, anchor %s)", len(candles), t, FormatPrice(price))
			RenderChart(output, candles)
			output.Println()
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "number of candles")
	cmd.Flags().StringVar(&trend, "trend", "flat", "trend bias: up, down or flat")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for a reproducible chart")

	return cmd
}

func parsePrice(arg string) (float64, error) {
	price, err := strconv.ParseFloat(arg, 64)
	if err != nil || price <= 0 {
		return 0, apperrors.NewValidationError("price", arg, "must be a positive number")
	}
	return price, nil
}
