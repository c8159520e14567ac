// Package app wires settings, tools and the download core together for the
// command-line and terminal front ends.
package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/handiism/ytbatch/internal/audio"
	"github.com/handiism/ytbatch/internal/config"
	"github.com/handiism/ytbatch/internal/download"
	"github.com/handiism/ytbatch/internal/http"
	"github.com/handiism/ytbatch/internal/logger"
	"github.com/handiism/ytbatch/internal/media"
	"github.com/handiism/ytbatch/internal/model"
	"github.com/handiism/ytbatch/internal/report"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInterrupted = 130
)

// App is a fully wired ytbatch instance.
type App struct {
	Settings   *config.Settings
	Expander   *download.Expander
	Downloader download.ItemDownloader
	Log        *zap.SugaredLogger
}

// New prepares the download and tool directories, locates ffmpeg and wires
// the yt-dlp extractor. Missing tools are returned as media.ErrYTDLPNotFound
// or media.ErrFFmpegNotFound.
func New(ctx context.Context, s *config.Settings, log *zap.SugaredLogger) (*App, error) {
	log = logger.OrNop(log)

	tools := &media.Tools{
		ToolsDir:       s.ToolsDir,
		FFmpegLocation: s.FFmpegLocation,
		AutoInstall:    s.AutoInstallYTDLP,
		Log:            log,
	}
	ffmpeg, err := tools.Prepare(ctx, s.DownloadDir)
	if err != nil {
		return nil, err
	}
	s.FFmpegLocation = ffmpeg

	return NewWithExtractor(s, media.NewYTDLP(log), log), nil
}

// NewWithExtractor wires the download core around x without touching the
// filesystem or looking for tools.
func NewWithExtractor(s *config.Settings, x media.Extractor, log *zap.SugaredLogger) *App {
	log = logger.OrNop(log)

	d := download.NewDownloader(s, x, log)
	if s.ModifyTags || s.SaveCoverArtInTags {
		tagCfg := audio.DefaultTagConfig()
		tagCfg.ModifyTags = s.ModifyTags

		var client *http.Client
		if s.SaveCoverArtInTags {
			client = http.NewClient(s.RequestTimeoutDuration())
		}
		proc := audio.NewTagProcessor(audio.NewTagger(tagCfg), client, log)
		proc.CoverArtMaxSize = s.CoverArtInTagsMaxSize
		d.PostProcessor = proc
	}

	var item download.ItemDownloader = d
	if s.DownloadMaxRetries > 0 {
		retry := download.WithRetry(d, s.DownloadMaxRetries, s.RetryCooldownDuration(), s.DownloadRetryExponent).(*download.RetryDownloader)
		retry.OnRetry = func(res model.DownloadResult, attempt, max int) {
			log.Warnw("Retrying download", "url", res.URL, "attempt", attempt, "max", max, "error", res.Error)
		}
		item = retry
	}

	return &App{
		Settings:   s,
		Expander:   download.NewExpander(x, s.RequestTimeoutDuration(), log),
		Downloader: item,
		Log:        log,
	}
}

// Hooks receive progress from a running batch.
type Hooks struct {
	OnProgress func(download.ProgressEvent)
	OnResult   func(res model.DownloadResult, done, total int)
}

// Run downloads urls with the configured parallelism and writes the failure
// report when anything failed. The report path is empty when nothing was
// written.
func (a *App) Run(ctx context.Context, urls []string, kind model.DownloadKind, hooks Hooks) (*model.BatchReport, string) {
	b := download.NewBatch(a.Downloader, a.Log)
	b.OnProgress = hooks.OnProgress
	b.OnResult = hooks.OnResult

	r := b.Run(ctx, urls, kind, a.Settings.MaxParallelDownloads)
	return r, a.SaveFailures(r)
}

// SaveFailures persists the failure report of r, if it has failures, and
// returns its path. Persist errors are logged and yield "".
func (a *App) SaveFailures(r *model.BatchReport) string {
	failed := report.FailedOf(r)
	if len(failed) == 0 {
		return ""
	}

	path := a.Settings.ReportPath(report.DefaultFileName)
	if !report.Persist(failed, path) {
		a.Log.Warnw("Could not save the failure report", "path", path)
		return ""
	}
	a.Log.Infow("Failure report saved", "path", path, "failed", len(failed))
	return path
}

// ExitCode maps a report to the process exit status.
func ExitCode(r *model.BatchReport) int {
	switch {
	case r == nil:
		return ExitFailure
	case r.Interrupted:
		return ExitInterrupted
	case r.HasFailures():
		return ExitFailure
	}
	return ExitOK
}
