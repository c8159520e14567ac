// Package report selects and persists the results of a batch run.
package report

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	ioutils "github.com/handiism/ytbatch/internal/io"
	"github.com/handiism/ytbatch/internal/model"
)

// DefaultFileName is the failure report's name inside the download directory.
const DefaultFileName = "failed_downloads.txt"

const unknownTitle = "(unknown title)"

// PathIn returns the failure report path inside dir.
func PathIn(dir string) string {
	return filepath.Join(dir, DefaultFileName)
}

// FailedOf returns the failed results in report order.
func FailedOf(r *model.BatchReport) []model.DownloadResult {
	return filter(r, model.DownloadResult.IsFailed)
}

// SuccessfulOf returns the successful results in report order.
func SuccessfulOf(r *model.BatchReport) []model.DownloadResult {
	return filter(r, model.DownloadResult.IsSuccess)
}

// SkippedOf returns the skipped results in report order.
func SkippedOf(r *model.BatchReport) []model.DownloadResult {
	return filter(r, model.DownloadResult.IsSkipped)
}

func filter(r *model.BatchReport, keep func(model.DownloadResult) bool) []model.DownloadResult {
	if r == nil {
		return nil
	}
	var out []model.DownloadResult
	for _, res := range r.Results {
		if keep(res) {
			out = append(out, res)
		}
	}
	return out
}

// Render formats failed results as the plain-text failure report.
func Render(failed []model.DownloadResult) string {
	var b strings.Builder

	b.WriteString("FAILED DOWNLOADS REPORT\n")
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n\n")

	for i, res := range failed {
		title := res.Title
		if title == "" {
			title = unknownTitle
		}
		fmt.Fprintf(&b, "[%d] Kind: %s\n", i+1, strings.ToUpper(res.Kind.String()))
		fmt.Fprintf(&b, "URL: %s\n", res.URL)
		fmt.Fprintf(&b, "Title: %s\n", title)
		fmt.Fprintf(&b, "Error: %s\n", res.Error)
		b.WriteString(strings.Repeat("-", 40))
		b.WriteString("\n\n")
	}

	return b.String()
}

// Persist writes the rendered report to path, replacing any previous file.
// It returns false on any I/O error.
func Persist(failed []model.DownloadResult, path string) bool {
	if dir := filepath.Dir(path); dir != "" {
		if err := ioutils.EnsureDir(dir); err != nil {
			return false
		}
	}
	return ioutils.WriteFile(context.Background(), path, []byte(Render(failed))) == nil
}
