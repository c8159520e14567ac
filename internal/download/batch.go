package download

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/ytbatch/internal/logger"
	"github.com/handiism/ytbatch/internal/model"
)

// Batch runs many downloads with bounded parallelism.
type Batch struct {
	downloader ItemDownloader
	log        *zap.SugaredLogger

	// OnResult is called once per collected result, from a single goroutine.
	OnResult func(res model.DownloadResult, done, total int)

	// OnProgress receives user-facing progress messages.
	OnProgress func(ProgressEvent)
}

// NewBatch creates a Batch around downloader.
func NewBatch(downloader ItemDownloader, log *zap.SugaredLogger) *Batch {
	return &Batch{downloader: downloader, log: logger.OrNop(log)}
}

// Run downloads urls as kind with at most limit downloads in flight and
// returns the report. Results are in completion order.
//
// When ctx is cancelled no further item is started, and items that end
// because of the cancellation are left out of the report, which is then
// marked Interrupted.
func (b *Batch) Run(ctx context.Context, urls []string, kind model.DownloadKind, limit int) *model.BatchReport {
	if limit < 1 {
		limit = 1
	}

	id := newBatchID()
	started := time.Now()
	total := len(urls)

	b.log.Infow("Starting batch", "batch", id, "kind", kind.String(), "items", total, "parallel", limit)
	b.progress(ProgressEvent{Message: fmt.Sprintf("Downloading %d item(s) as %s, %d at a time", total, kind, limit), Level: LevelInfo})

	results := make(chan model.DownloadResult)
	collected := make(chan []model.DownloadResult, 1)

	go func() {
		out := make([]model.DownloadResult, 0, total)
		for res := range results {
			out = append(out, res)
			b.report(res, len(out), total)
		}
		collected <- out
	}()

	var g errgroup.Group
	g.SetLimit(limit)

	for _, u := range urls {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			res := b.runOne(ctx, u, kind)
			if ctx.Err() != nil && res.IsFailed() {
				return nil
			}
			results <- res
			return nil
		})
	}

	_ = g.Wait()
	close(results)
	out := <-collected

	interrupted := ctx.Err() != nil && len(out) < total
	report := model.NewBatchReport(id, kind, out, interrupted)
	report.StartedAt = started
	report.FinishedAt = time.Now()

	b.log.Infow("Batch finished",
		"batch", id,
		"total", report.Total,
		"successful", report.Successful,
		"failed", report.Failed,
		"skipped", report.Skipped,
		"interrupted", report.Interrupted,
		"duration", report.Duration().Round(time.Millisecond).String(),
	)

	return report
}

// runOne shields the batch from a panicking downloader.
func (b *Batch) runOne(ctx context.Context, url string, kind model.DownloadKind) (res model.DownloadResult) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Errorw("Download panicked", "url", url, "panic", r)
			res = model.NewFailed(url, kind, "", fmt.Sprintf("unexpected error: %v", r))
		}
	}()

	return b.downloader.DownloadOne(ctx, url, kind)
}

func (b *Batch) report(res model.DownloadResult, done, total int) {
	if b.OnResult != nil {
		b.OnResult(res, done, total)
	}

	prefix := fmt.Sprintf("[%d/%d]", done, total)
	switch res.Outcome {
	case model.OutcomeSuccess:
		b.progress(ProgressEvent{Message: fmt.Sprintf("%s Downloaded: %s", prefix, res.DisplayTitle()), Level: LevelSuccess})
	case model.OutcomeSkipped:
		b.progress(ProgressEvent{Message: fmt.Sprintf("%s Already exists: %s", prefix, res.ExistingFile), Level: LevelWarning})
	default:
		b.progress(ProgressEvent{Message: fmt.Sprintf("%s Failed: %s (%s)", prefix, res.URL, res.Error), Level: LevelError})
	}
}

func (b *Batch) progress(event ProgressEvent) {
	if b.OnProgress != nil {
		b.OnProgress(event)
	}
}

func newBatchID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
