// Package renderer builds the markdown views of the journal: the current
// bias set, the trade log, and the analytics summary. It is pure string
// building; terminal styling is the caller's concern.
package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/etnz/macrojournal"
)

// Biases renders the current bias set, one section per asset.
func Biases(biases []macrojournal.MonthlyBias, lastSync time.Time) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# Monthly Macro Bias\n\n")
	if !lastSync.IsZero() {
		fmt.Fprintf(&b, "Last sync: %s\n\n", lastSync.Format(time.RFC3339))
	}
	for _, bias := range biases {
		fmt.Fprintf(&b, "## %s: %s (%d%%)\n\n", bias.Asset, bias.Bias, bias.Confidence)
		fmt.Fprintf(&b, "Month: %s | Validity: %s\n\n", bias.Month, bias.ValidityPeriod)
		for _, d := range bias.Drivers {
			fmt.Fprintf(&b, "* **%s**: %s\n", d.Title, d.Description)
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "| Central Bank | Inflation | Employment | Growth | Risk |\n")
		fmt.Fprintf(&b, "|---|---|---|---|---|\n")
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n\n",
			bias.CentralBankStance, bias.InflationTrend, bias.EmploymentTrend,
			bias.GrowthOutlook, bias.RiskSentiment)
		if bias.InvalidationConditions != "" {
			fmt.Fprintf(&b, "Invalidation: %s\n\n", bias.InvalidationConditions)
		}
		for _, s := range bias.Sources {
			fmt.Fprintf(&b, "* [%s](%s)\n", s.Title, s.URI)
		}
		if len(bias.Sources) > 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Trades renders the trade log as a table, in the given order (the journal
// keeps it newest first).
func Trades(trades []macrojournal.Trade) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# Trade Journal\n\n")
	if len(trades) == 0 {
		fmt.Fprintf(&b, "No trades recorded yet.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "| Date | Asset | Dir | TF | Entry | Exit | R | Alignment | ID |\n")
	fmt.Fprintf(&b, "|---|---|---|---|---|---|---|---|---|\n")
	for _, t := range trades {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %+.2f | %s | %s |\n",
			t.Time().Format("2006-01-02"), t.Asset, t.Direction, t.Timeframe,
			t.EntryPrice, t.ExitPrice, t.ResultR, t.Alignment, t.ID)
	}
	return b.String()
}

// Trade renders a single trade in full, including its frozen bias snapshot.
func Trade(t macrojournal.Trade) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# Trade %s\n\n", t.ID)
	fmt.Fprintf(&b, "%s %s %s (%s) entry %s exit %s result %+.2fR, **%s**\n\n",
		t.Time().Format("2006-01-02 15:04"), t.Direction, t.Asset, t.Timeframe,
		t.EntryPrice, t.ExitPrice, t.ResultR, t.Alignment)
	if t.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n\n", t.Notes)
	}
	fmt.Fprintf(&b, "Bias at entry: %s (%d%%) for %s\n",
		t.SnapshotBias.Bias, t.SnapshotBias.Confidence, t.SnapshotBias.Month)
	return b.String()
}

// Summary renders the analytics summary.
func Summary(s macrojournal.Summary) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# Performance Summary\n\n")
	if s.TotalTrades == 0 {
		fmt.Fprintf(&b, "No trades recorded yet.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "| Trades | Wins | Win Rate | Avg R | Alignment Rate |\n")
	fmt.Fprintf(&b, "|---|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %d | %d | %.1f%% | %+.2f | %.1f%% |\n\n",
		s.TotalTrades, s.Wins, s.WinRate, s.AvgR, s.AlignmentRate)

	if len(s.WinRateByAlignment) > 0 {
		fmt.Fprintf(&b, "Win rate by alignment:\n\n")
		for _, a := range []macrojournal.Alignment{macrojournal.Aligned, macrojournal.Against, macrojournal.NeutralAlignment} {
			if rate, ok := s.WinRateByAlignment[a]; ok {
				fmt.Fprintf(&b, "* %s: %.1f%%\n", a, rate)
			}
		}
	}
	return b.String()
}
