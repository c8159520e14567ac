package download

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/handiism/ytbatch/internal/media"
	"github.com/handiism/ytbatch/internal/model"
)

// ProbeError is returned when an item's metadata cannot be retrieved.
// Reason is meant for humans; callers do not branch on it.
type ProbeError struct {
	URL    string
	Reason string
	Err    error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s: %s", e.URL, e.Reason)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// Prober queries item metadata without downloading any media.
type Prober struct {
	extractor media.Extractor
	timeout   time.Duration
}

// NewProber creates a Prober. A non-positive timeout disables the deadline.
func NewProber(extractor media.Extractor, timeout time.Duration) *Prober {
	return &Prober{extractor: extractor, timeout: timeout}
}

// Probe returns the metadata of a single item. A URL that resolves to a
// playlist is rejected; it has to be expanded first.
func (p *Prober) Probe(ctx context.Context, url string) (model.VideoInfo, error) {
	pctx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	info, err := p.extractor.Probe(pctx, url)
	if err != nil {
		return model.VideoInfo{}, &ProbeError{
			URL:    url,
			Reason: failureReason(ctx, pctx, err, p.timeout),
			Err:    err,
		}
	}

	if info.IsCollection() {
		return model.VideoInfo{}, &ProbeError{URL: url, Reason: "is a playlist, not a single item"}
	}

	title := strings.TrimSpace(info.Title)
	if title == "" {
		return model.VideoInfo{}, &ProbeError{URL: url, Reason: "no title in metadata"}
	}

	return model.VideoInfo{
		ID:        info.ID,
		Title:     title,
		URL:       url,
		Duration:  info.DurationValue(),
		Thumbnail: info.Thumbnail,
		Uploader:  info.Author(),
	}, nil
}

// ErrTimeout marks an operation that ran past its own deadline.
var ErrTimeout = errors.New("timed out")

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// failureReason describes err for a result. parent is the caller's context
// and op the one carrying the operation's own deadline.
func failureReason(parent, op context.Context, err error, timeout time.Duration) string {
	switch {
	case parent.Err() != nil:
		return "cancelled"
	case errors.Is(err, ErrTimeout),
		errors.Is(op.Err(), context.DeadlineExceeded),
		errors.Is(err, context.DeadlineExceeded):
		return timeoutReason(timeout)
	}

	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return "unknown error"
	}
	return msg
}

func timeoutReason(d time.Duration) string {
	return fmt.Sprintf("%v after %gs", ErrTimeout, d.Seconds())
}
