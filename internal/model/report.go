package model

import "time"

// BatchReport aggregates the results of one batch run.
//
// Results are kept in completion order. Counts are derived from Results in a
// single pass by NewBatchReport and always satisfy
// Successful + Failed + Skipped == Total == len(Results).
type BatchReport struct {
	// ID identifies the batch in logs and in the failure report.
	ID string

	Kind       DownloadKind
	Total      int
	Successful int
	Failed     int
	Skipped    int
	Results    []DownloadResult

	// Interrupted is set when the batch was cancelled before every item
	// was collected. Such a report is partial.
	Interrupted bool

	StartedAt  time.Time
	FinishedAt time.Time
}

// NewBatchReport builds a report from the collected results. A result that
// is still pending is recorded as failed, so no pending item ever appears in
// a report.
func NewBatchReport(id string, kind DownloadKind, results []DownloadResult, interrupted bool) *BatchReport {
	report := &BatchReport{
		ID:          id,
		Kind:        kind,
		Results:     make([]DownloadResult, 0, len(results)),
		Interrupted: interrupted,
	}

	for _, res := range results {
		if !res.Outcome.IsTerminal() {
			res = NewFailed(res.URL, res.Kind, res.Title, "download did not complete")
		}
		switch res.Outcome {
		case OutcomeSuccess:
			report.Successful++
		case OutcomeFailed:
			report.Failed++
		case OutcomeSkipped:
			report.Skipped++
		}
		report.Results = append(report.Results, res)
	}
	report.Total = len(report.Results)

	return report
}

// SuccessRate returns (successful + skipped) / total, or 0 for an empty batch.
func (r *BatchReport) SuccessRate() float64 {
	if r.Total == 0 {
		return 0.0
	}
	return float64(r.Successful+r.Skipped) / float64(r.Total)
}

// HasFailures reports whether any item failed.
func (r *BatchReport) HasFailures() bool {
	return r.Failed > 0
}

// Duration returns how long the batch took, zero if the timestamps are unset.
func (r *BatchReport) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
