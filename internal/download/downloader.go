package download

import (
	"context"
	"errors"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/handiism/ytbatch/internal/config"
	ioutils "github.com/handiism/ytbatch/internal/io"
	"github.com/handiism/ytbatch/internal/logger"
	"github.com/handiism/ytbatch/internal/media"
	"github.com/handiism/ytbatch/internal/model"
)

// ItemDownloader downloads a single item. Implementations capture every
// failure in the returned result.
type ItemDownloader interface {
	DownloadOne(ctx context.Context, url string, kind model.DownloadKind) model.DownloadResult
}

// ItemDownloaderFunc adapts a function to ItemDownloader.
type ItemDownloaderFunc func(ctx context.Context, url string, kind model.DownloadKind) model.DownloadResult

func (f ItemDownloaderFunc) DownloadOne(ctx context.Context, url string, kind model.DownloadKind) model.DownloadResult {
	return f(ctx, url, kind)
}

// PostProcessor runs after a successful fetch, e.g. to tag the file.
type PostProcessor interface {
	Process(ctx context.Context, result model.DownloadResult, info model.VideoInfo) error
}

// Downloader probes, checks for an existing file and fetches one item.
type Downloader struct {
	settings  *config.Settings
	extractor media.Extractor
	prober    *Prober
	locks     *titleLocks
	log       *zap.SugaredLogger

	// PostProcessor is optional. Its errors are logged, never reported.
	PostProcessor PostProcessor
}

// NewDownloader creates a Downloader writing into settings.DownloadDir.
func NewDownloader(settings *config.Settings, extractor media.Extractor, log *zap.SugaredLogger) *Downloader {
	return &Downloader{
		settings:  settings,
		extractor: extractor,
		prober:    NewProber(extractor, settings.RequestTimeoutDuration()),
		locks:     newTitleLocks(),
		log:       logger.OrNop(log),
	}
}

// DownloadOne downloads url as kind. It never returns an error: probe and
// fetch failures become a FAILED result and an existing file a SKIPPED one.
func (d *Downloader) DownloadOne(ctx context.Context, url string, kind model.DownloadKind) model.DownloadResult {
	info, err := d.prober.Probe(ctx, url)
	if err != nil {
		reason := err.Error()
		var probeErr *ProbeError
		if errors.As(err, &probeErr) {
			reason = probeErr.Reason
		}
		d.log.Debugw("Probe failed", "url", url, "reason", reason)
		return model.NewFailed(url, kind, "", reason)
	}

	title := info.Title
	dir := d.settings.DownloadDir

	unlock := d.locks.Lock(ioutils.SanitizeFileName(title))
	defer unlock()

	if ok, name := ioutils.FindExisting(title, kind.Extensions(), dir); ok {
		return model.NewSkipped(url, kind, title, name)
	}

	opts := d.settings.FetchOptions(kind, title)
	timeout := d.settings.FetchTimeoutDuration()

	fctx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	fetched, err := d.extractor.Fetch(fctx, url, opts)
	if err != nil {
		reason := failureReason(ctx, fctx, err, timeout)
		d.log.Debugw("Fetch failed", "url", url, "title", title, "reason", reason)
		return model.NewFailed(url, kind, title, reason)
	}

	result := model.NewSuccess(url, kind, title, d.outputPath(fetched, title, kind))

	if d.PostProcessor != nil && result.OutputPath != "" {
		if err := d.PostProcessor.Process(ctx, result, info); err != nil {
			d.log.Warnw("Post-processing failed", "file", result.OutputPath, "error", err)
		}
	}

	return result
}

// outputPath prefers the path reported by the extractor and falls back to
// looking the title up in the download directory.
func (d *Downloader) outputPath(fetched *media.FetchResult, title string, kind model.DownloadKind) string {
	if fetched != nil && fetched.Filename != "" {
		return fetched.Filename
	}
	dir := d.settings.DownloadDir
	if ok, name := ioutils.FindExisting(title, kind.Extensions(), dir); ok {
		return filepath.Join(dir, name)
	}
	return ""
}
