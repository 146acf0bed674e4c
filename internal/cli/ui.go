package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/netscore/pkg/metrics"
	"github.com/matzehuels/netscore/pkg/scoring"
)

// uiOut receives human-facing output. Stdout is reserved for records.
var uiOut io.Writer = os.Stderr

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
	styleGood   = styleCell.Foreground(colorGreen)
	styleFair   = styleCell.Foreground(colorYellow)
	stylePoor   = styleCell.Foreground(colorRed)
	styleNA     = styleCell.Foreground(colorDim)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(uiOut, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(uiOut, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(uiOut, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(msg))
}

// =============================================================================
// Score Tables
// =============================================================================

// printSummary prints one row per record with the net score and the number
// of unavailable metrics.
func printSummary(s scoring.Summary) {
	rows := make([][]string, 0, len(s.Records))
	for _, rec := range s.Records {
		missing := 0
		for _, name := range metrics.Names {
			if !rec.Metric(name).Score.IsValid() {
				missing++
			}
		}
		rows = append(rows, []string{rec.URL, formatScore(rec.NetScore), strconv.Itoa(missing)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("PACKAGE", "NET", "N/A").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if col == 1 && row < len(s.Records) {
				return scoreStyle(s.Records[row].NetScore)
			}
			return styleCell
		})

	fmt.Fprintln(uiOut, t.Render())
	printDetail("run %s · %d scored · %d failed · %s", s.RunID, s.Total, s.Failed, s.Duration.Round(time.Millisecond))
}

// printRecord prints the metric breakdown of a single record.
func printRecord(rec scoring.Record) {
	scores := make([]metrics.Score, 0, len(metrics.Names)+1)
	rows := make([][]string, 0, len(metrics.Names)+1)
	for _, name := range metrics.Names {
		m := rec.Metric(name)
		scores = append(scores, m.Score)
		rows = append(rows, []string{string(name), formatScore(m.Score), formatLatency(m.Latency.Seconds())})
	}
	scores = append(scores, rec.NetScore)
	rows = append(rows, []string{"NetScore", formatScore(rec.NetScore), formatLatency(rec.NetScoreLatency.Seconds())})

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("METRIC", "SCORE", "LATENCY").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if col == 1 && row < len(scores) {
				return scoreStyle(scores[row])
			}
			return styleCell
		})

	fmt.Fprintln(uiOut, StyleTitle.Render(rec.URL))
	fmt.Fprintln(uiOut, t.Render())
}

func formatScore(s metrics.Score) string {
	if !s.IsValid() {
		return "n/a"
	}
	v, _ := s.Value()
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func formatLatency(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64) + "s"
}

func scoreStyle(s metrics.Score) lipgloss.Style {
	v, _ := s.Value()
	switch {
	case !s.IsValid():
		return styleNA
	case v >= 0.7:
		return styleGood
	case v >= 0.4:
		return styleFair
	default:
		return stylePoor
	}
}
