package analyst

import (
	"fmt"
	"strings"

	"stock-evaluator/internal/models"
)

// maxSources is the maximum number of source citations requested in the
// analysis template and kept after parsing.
const maxSources = 5

// platformHints describes the three commentary platforms the analysis
// covers and the audience each one fits.
var platformHints = []struct {
	Name     string
	Audience string
}{
	{"EastMoney", "fits retail/hot money (high market impact)"},
	{"Xueqiu", "fits value investors (high community wisdom)"},
	{"Tonghuashun", "fits technical traders"},
}

// BuildAnalysisPrompt builds the combined analysis prompt. The service
// is instructed to answer in a strict plain-text template of
// ||KEY||: value lines which the parser extracts field by field.
func BuildAnalysisPrompt(query string, profile models.UserProfile) string {
	var b strings.Builder

	fmt.Fprintf(&b, `Perform a real-time analysis for stock: %q.
Using the most recent information you have, find:
1. The exact stock name and symbol.
2. The latest price and change percentage (e.g. +1.2).
3. A recent news summary (last 3-5 days).

Then simulate an analysis of 3 commentary platforms based on the actual news sentiment you found.

Output the data in this STRICT format (no markdown code blocks, just plain text with delimiters):

||NAME||: [Stock Name]
||SYMBOL||: [Stock Symbol]
||PRICE||: [Price Number]
||CHANGE||: [Change Percent Number]
||NEWS||: [A 3 sentence summary of recent news/situation]
||RISK||: [Low/Medium/High based on volatility]

For the platforms, provide metrics (0-100) based on this logic:
`, query)

	for _, p := range platformHints {
		fmt.Fprintf(&b, "- %q %s.\n", p.Name, p.Audience)
	}

	fmt.Fprintf(&b, `
Adjust MATCH based on the user profile: Capital=%d (0=Low, 3=High), Risk=%d (0=Low, 2=High), Experience=%d years.

`, profile.Capital, profile.RiskTolerance, profile.Experience)

	for i, p := range platformHints {
		n := i + 1
		fmt.Fprintf(&b, `||P%d_NAME||: %s
||P%d_MATCH||: [0-100]
||P%d_ACC||: [0-100]
||P%d_WISDOM||: [0-100]
||P%d_IMPACT||: [0-100]
||P%d_FIT||: [0-100]
||P%d_DESC||: [Reason]
||P%d_SIG||: [Buy/Hold/Sell]

`, n, p.Name, n, n, n, n, n, n, n)
	}

	fmt.Fprintf(&b, `Finally list up to %d sources you relied on (leave unused entries blank):

`, maxSources)

	for i := 1; i <= maxSources; i++ {
		fmt.Fprintf(&b, "||SRC%d_TITLE||: [Source Title]\n||SRC%d_URI||: [Source URL]\n", i, i)
	}

	return b.String()
}

// BuildRiskReportPrompt builds the prompt for the dedicated prose risk
// report, tailored to the user's risk tolerance label.
func BuildRiskReportPrompt(stockName, riskTolerance string) string {
	return fmt.Sprintf(`Generate a concise, professional financial risk assessment report (approx 150 words) for the stock %q.
Consider a user with a %q risk tolerance.
Focus on market volatility, recent sentiment analysis, and potential downside risks.
Do not give financial advice, but assess the "noise" in community comments.`, stockName, riskTolerance)
}

// BuildIllustrationPrompt builds the prompt for the illustrative stock
// image shown on the dashboard.
func BuildIllustrationPrompt(stockName string) string {
	return fmt.Sprintf(`A professional 3d render icon for a finance app representing stock %q.
Minimalist, high tech, blue and gold, rising trend, reliable. White background.
Aspect ratio 16:9.`, stockName)
}
