package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/handiism/ytbatch/internal/download"
	"github.com/handiism/ytbatch/internal/model"
	"github.com/handiism/ytbatch/internal/report"
)

// RenderEvent formats a progress event as one styled line.
func RenderEvent(event download.ProgressEvent) string {
	var style = dimStyle
	prefix := "•"
	switch event.Level {
	case download.LevelError:
		style = errorStyle
		prefix = "✗"
	case download.LevelWarning:
		style = warningStyle
		prefix = "!"
	case download.LevelSuccess:
		style = successStyle
		prefix = "✓"
	case download.LevelInfo:
		style = infoStyle
		prefix = "›"
	}
	return style.Render(prefix + " " + event.Message)
}

// RenderResult formats the outcome of a single download.
func RenderResult(res model.DownloadResult) string {
	switch res.Outcome {
	case model.OutcomeSuccess:
		return successStyle.Render("✓ Download complete: " + res.DisplayTitle())
	case model.OutcomeSkipped:
		return warningStyle.Render("! File already exists: " + res.ExistingFile)
	default:
		return errorStyle.Render("✗ Download failed: " + res.Error)
	}
}

// RenderSummary formats the counts of a finished batch in a box.
func RenderSummary(r *model.BatchReport) string {
	var b strings.Builder

	heading := "Batch complete"
	if r.Interrupted {
		heading = "Batch interrupted (partial results)"
	}
	b.WriteString(subtitleStyle.Render(heading))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Total:      %d\n", r.Total)
	b.WriteString(successStyle.Render(fmt.Sprintf("Successful: %d", r.Successful)))
	b.WriteString("\n")
	b.WriteString(warningStyle.Render(fmt.Sprintf("Skipped:    %d", r.Skipped)))
	b.WriteString("\n")
	b.WriteString(errorStyle.Render(fmt.Sprintf("Failed:     %d", r.Failed)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Success rate: %.1f%%", r.SuccessRate()*100)
	if d := r.Duration(); d > 0 {
		fmt.Fprintf(&b, "\nDuration: %s", d.Round(100*time.Millisecond))
	}

	return boxStyle.Render(b.String())
}

// RenderFailures lists failed results under the summary.
func RenderFailures(r *model.BatchReport) string {
	failed := report.FailedOf(r)
	if len(failed) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(errorStyle.Render(fmt.Sprintf("%d download(s) failed:", len(failed))))
	b.WriteString("\n")
	for i, res := range failed {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, itemStyle.Render(res.DisplayTitle()))
		b.WriteString(dimStyle.Render("     " + res.URL))
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("     " + res.Error))
		b.WriteString("\n")
	}
	return b.String()
}
