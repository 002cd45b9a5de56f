package style

import (
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

// Status of a recorded print job, as shown in history listings.
type Status string

const (
	StatusPrinted Status = "printed" // Document reached the printer
	StatusFailed  Status = "failed"  // Transport or device error
)

// StatusStyle returns the appropriate pterm style for a job status
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusPrinted:
		return pterm.NewStyle(pterm.FgGreen)
	case StatusFailed:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// JobLine is one row of the history listing.
type JobLine struct {
	When     time.Time
	Template string
	Target   string
	Status   Status
	Error    string // Set on failed jobs
}

// RenderJobLine renders a single history row. Failed jobs carry the
// error message on an indented second line.
func RenderJobLine(line JobLine) string {
	// pad before styling so ANSI codes don't skew the columns
	status := StatusStyle(line.Status).Sprint(fmt.Sprintf("%-7s", string(line.Status)))

	row := fmt.Sprintf("%s  %s  %-14s %s",
		line.When.Local().Format("2006-01-02 15:04"),
		status,
		line.Template,
		line.Target)
	if line.Error != "" {
		row += "\n" + Indent(MutedStyle.Render(line.Error), 2)
	}
	return row
}

// RenderHistory renders the complete listing, one row per job in the
// order given.
func RenderHistory(lines []JobLine) string {
	if len(lines) == 0 {
		return MutedStyle.Render("No print jobs recorded yet.")
	}

	var result strings.Builder
	for _, line := range lines {
		result.WriteString(RenderJobLine(line) + "\n")
	}
	return strings.TrimRight(result.String(), "\n")
}
