package download

import (
	"context"
	"math"
	"time"

	"github.com/handiism/ytbatch/internal/model"
)

// RetryDownloader re-runs a failed download with an exponential cooldown.
// Only FAILED results are retried; SUCCESS and SKIPPED are returned as is.
type RetryDownloader struct {
	next       ItemDownloader
	maxRetries int
	cooldown   time.Duration
	exponent   float64

	// OnRetry is called before each retry with the failed attempt's result.
	OnRetry func(res model.DownloadResult, attempt, maxRetries int)
}

// WithRetry wraps d. The wait before retry n (from 0) is
// cooldown * exponent^n. maxRetries <= 0 returns d unchanged.
func WithRetry(d ItemDownloader, maxRetries int, cooldown time.Duration, exponent float64) ItemDownloader {
	if maxRetries <= 0 {
		return d
	}
	return &RetryDownloader{next: d, maxRetries: maxRetries, cooldown: cooldown, exponent: exponent}
}

// DownloadOne implements ItemDownloader.
func (r *RetryDownloader) DownloadOne(ctx context.Context, url string, kind model.DownloadKind) model.DownloadResult {
	res := r.next.DownloadOne(ctx, url, kind)

	for tries := 0; tries < r.maxRetries && res.IsFailed(); tries++ {
		if r.OnRetry != nil {
			r.OnRetry(res, tries+1, r.maxRetries)
		}
		if !r.waitForRetry(ctx, tries) {
			break
		}
		res = r.next.DownloadOne(ctx, url, kind)
	}

	return res
}

// waitForRetry sleeps for the cooldown of the given try. It returns false
// if ctx ended first.
func (r *RetryDownloader) waitForRetry(ctx context.Context, tries int) bool {
	cooldown := time.Duration(float64(r.cooldown) * math.Pow(r.exponent, float64(tries)))

	timer := time.NewTimer(cooldown)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
