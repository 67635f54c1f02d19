// Package cli provides the command-line interface for the stock evaluation application.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"stock-evaluator/internal/analyst"
	"stock-evaluator/internal/config"
	"stock-evaluator/internal/kline"
	"stock-evaluator/internal/logging"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2024-06-01"
)

// App holds the application dependencies.
type App struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Analyzer  *analyst.Analyzer
	Generator *kline.Generator
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config:    cfg,
		Logger:    logger,
		Generator: kline.NewGenerator(),
	}

	// Initialize the LLM client if an API key is available. Without it
	// the analyzer stays unavailable and AI-dependent operations
	// degrade instead of crashing.
	var client analyst.LLMClient
	if cfg.HasAPIKey() {
		client = analyst.NewOpenAIClient(
			cfg.Credentials.OpenAI.APIKey,
			cfg.Analysis.Model,
			cfg.Analysis.ImageModel,
			cfg.Analysis.Temperature,
			cfg.Analysis.MaxTokens,
		)
		logger.Debug().Str("model", cfg.Analysis.Model).Msg("OpenAI LLM client initialized")
	} else {
		logger.Warn().Msg("No API key configured, analysis is unavailable")
	}
	app.Analyzer = analyst.NewAnalyzer(client, cfg.Analysis, logger)

	rootCmd := &cobra.Command{
		Use:   "stockeval",
		Short: "Stock Evaluator - AI-assisted stock evaluation dashboard",
		Long: `Stock Evaluator is a terminal dashboard for AI-assisted stock evaluation.

It walks through a short investor questionnaire, then analyzes a searched
stock with a generative-AI backend: price and news summary, a qualitative
risk report, per-platform commentary fit scores and a simulated candle
chart.

Use 'stockeval run' for the interactive session or 'stockeval analyze'
for a one-shot analysis.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Handle debug flag
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/stock-evaluator)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newRunCmd(app))
	rootCmd.AddCommand(newAnalyzeCmd(app))
	rootCmd.AddCommand(newChartCmd(app))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Stock Evaluator v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Analysis Configuration")
	output.Printf("  Model:           %s\n", cfg.Analysis.Model)
	output.Printf("  Image Model:     %s\n", cfg.Analysis.ImageModel)
	output.Printf("  Temperature:     %.1f\n", cfg.Analysis.Temperature)
	output.Printf("  Max Tokens:      %d\n", cfg.Analysis.MaxTokens)
	output.Printf("  Generate Image:  %v\n", cfg.Analysis.GenerateImage)
	output.Printf("  Generate Report: %v\n", cfg.Analysis.GenerateReport)
	output.Printf("  API Key Set:     %v\n", cfg.HasAPIKey())
	output.Println()

	output.Bold("Parse Defaults")
	output.Printf("  Price:           %.1f\n", cfg.Analysis.Defaults.Price)
	output.Printf("  Score:           %d\n", cfg.Analysis.Defaults.Score)
	output.Printf("  Signal:          %s\n", cfg.Analysis.Defaults.Signal)
	output.Printf("  Risk:            %s\n", cfg.Analysis.Defaults.Risk)
	output.Println()

	output.Bold("Chart")
	output.Printf("  Days:            %d\n", cfg.Chart.Days)

	return nil
}
