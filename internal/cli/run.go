package cli

import (
	"bufio"
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	apperrors "stock-evaluator/internal/errors"
	"stock-evaluator/internal/models"
	"stock-evaluator/internal/session"
)

// User-facing strings for the interactive screens.
const (
	msgSearchFailed = "Sorry, unable to fetch data for this stock right now. Check the spelling or try again later."
	msgNoAPIKey     = "No API key configured. Set OPENAI_API_KEY or fill in credentials.toml, then try again."
)

func newRunCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the interactive evaluation session",
		Long: `Run the four-screen interactive session: login, investor
questionnaire, search dashboard and platform drill-down.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			reader := bufio.NewScanner(cmd.InOrStdin())
			sess := session.New(app.Logger)
			runLoop(cmd.Context(), app, output, reader, sess)
			return nil
		},
	}
}

// runLoop drives the session until the user quits or input ends. All
// session mutation happens here, one completed action at a time; the
// analysis call is the only suspension point and the prompt stays
// blocked for its duration, so a second search cannot start while one
// is in flight.
func runLoop(ctx context.Context, app *App, o *Output, reader *bufio.Scanner, sess *session.Session) {
	for {
		switch sess.EffectiveView() {
		case session.ViewLogin:
			if !loginScreen(o, reader, sess) {
				return
			}
		case session.ViewProfile:
			if !profileScreen(o, reader, sess) {
				return
			}
		case session.ViewDashboard:
			if !dashboardScreen(ctx, app, o, reader, sess) {
				return
			}
		case session.ViewPlatformDetail:
			if !detailScreen(o, reader, sess) {
				return
			}
		}
	}
}

func loginScreen(o *Output, reader *bufio.Scanner, sess *session.Session) bool {
	o.Println()
	o.Bold("  ┌─────────────────────────────────┐")
	o.Bold("  │        STOCK  EVALUATOR         │")
	o.Bold("  │  AI-assisted market evaluation  │")
	o.Bold("  └─────────────────────────────────┘")
	o.Println()
	o.Dim("  Press enter to continue, q to quit.")

	line, ok := readLine(reader)
	if !ok || strings.EqualFold(line, "q") {
		return false
	}
	sess.Continue()
	return true
}

func profileScreen(o *Output, reader *bufio.Scanner, sess *session.Session) bool {
	o.Println()
	o.Bold("Investor profile")
	o.Dim("  Your answers tune the platform match scores.")
	o.Println()

	current := sess.Profile()

	name, ok := promptString(o, reader, "Name", current.Name)
	if !ok {
		return false
	}
	capital, ok := promptInt(o, reader, "Capital bucket (0 <100k, 1 100k-500k, 2 500k-2M, 3 >2M)", current.Capital, 0, 3)
	if !ok {
		return false
	}
	risk, ok := promptInt(o, reader, "Risk tolerance (0 conservative, 1 balanced, 2 aggressive)", current.RiskTolerance, 0, 2)
	if !ok {
		return false
	}
	experience, ok := promptInt(o, reader, "Years of experience", current.Experience, 0, 80)
	if !ok {
		return false
	}

	profile := models.UserProfile{
		Name:          name,
		Capital:       capital,
		RiskTolerance: risk,
		Experience:    experience,
	}
	if err := sess.SubmitProfile(profile); err != nil {
		o.Error("Invalid profile: %v", err)
		return true // re-render the questionnaire
	}

	o.Success("Welcome, %s.", profile.Name)
	return true
}

func dashboardScreen(ctx context.Context, app *App, o *Output, reader *bufio.Scanner, sess *session.Session) bool {
	o.Println()
	if sess.Stock() == nil {
		o.Dim("  Search a stock name or symbol to begin.")
	}
	o.Print("search> ")

	line, ok := readLine(reader)
	if !ok {
		return false
	}
	line = strings.TrimSpace(line)

	switch {
	case line == "":
		return true
	case strings.EqualFold(line, "q") || strings.EqualFold(line, "quit"):
		return false
	default:
		// A bare in-range row number selects a platform from the last
		// result. Anything else, including numeric stock codes like
		// 600519, is a new search.
		if n, err := strconv.Atoi(line); err == nil && sess.Stock() != nil &&
			n >= 1 && n <= len(sess.Stock().Platforms) {
			if err := sess.SelectPlatform(n - 1); err != nil {
				o.Warning("No such platform row: %d", n)
			}
			return true
		}
		doSearch(ctx, app, o, sess, line)
		return true
	}
}

// doSearch runs the analysis for a query and replaces the session
// result wholesale on success.
func doSearch(ctx context.Context, app *App, o *Output, sess *session.Session, query string) {
	stop := startSpinner(o, "Analyzing "+query)
	stock, err := app.Analyzer.Analyze(ctx, query, sess.Profile())
	stop()

	if err != nil {
		if apperrors.Is(err, apperrors.ErrMissingAPIKey) {
			o.Warning(msgNoAPIKey)
			return
		}
		app.Logger.Error().Err(err).Str("query", query).Msg("Search failed")
		o.Error(msgSearchFailed)
		return
	}

	candles := app.Generator.Generate(app.Config.Chart.Days, stock.Price, stock.Trend())
	sess.SetResult(stock, candles)

	RenderDashboard(o, stock, candles)
	o.Dim("  Type a row number for platform detail, a new query to search again, q to quit.")
}

func detailScreen(o *Output, reader *bufio.Scanner, sess *session.Session) bool {
	RenderPlatformDetail(o, sess.Stock(), sess.SelectedPlatform())
	o.Println()
	o.Dim("  Press enter to go back, q to quit.")

	line, ok := readLine(reader)
	if !ok || strings.EqualFold(strings.TrimSpace(line), "q") {
		return false
	}
	sess.Back()
	return true
}

// startSpinner shows an indeterminate spinner while the analysis call
// is in flight. It returns a stop function that clears the spinner.
// In JSON mode or without a terminal it is a no-op.
func startSpinner(o *Output, description string) func() {
	if o.IsJSON() || !isTerminal() {
		return func() {}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				bar.Add(1)
			}
		}
	}()

	return func() {
		close(done)
		bar.Finish()
	}
}

func readLine(reader *bufio.Scanner) (string, bool) {
	if !reader.Scan() {
		return "", false
	}
	return reader.Text(), true
}

func promptString(o *Output, reader *bufio.Scanner, label, fallback string) (string, bool) {
	o.Print("%s [%s]: ", label, fallback)
	line, ok := readLine(reader)
	if !ok {
		return "", false
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback, true
	}
	return line, true
}

func promptInt(o *Output, reader *bufio.Scanner, label string, fallback, lo, hi int) (int, bool) {
	for {
		o.Print("%s [%d]: ", label, fallback)
		line, ok := readLine(reader)
		if !ok {
			return 0, false
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return fallback, true
		}
		v, err := strconv.Atoi(line)
		if err != nil || v < lo || v > hi {
			o.Warning("Enter a number between %d and %d.", lo, hi)
			continue
		}
		return v, true
	}
}
