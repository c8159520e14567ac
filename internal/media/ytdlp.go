package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"

	"github.com/handiism/ytbatch/internal/logger"
)

// afterMovePrint makes yt-dlp print the final file path once all
// post-processing is done.
const afterMovePrint = "after_move:filepath"

// YTDLP implements Extractor on top of the yt-dlp executable.
type YTDLP struct {
	log *zap.SugaredLogger
}

// NewYTDLP creates a new yt-dlp backed extractor.
func NewYTDLP(log *zap.SugaredLogger) *YTDLP {
	return &YTDLP{log: logger.OrNop(log)}
}

// Probe implements Extractor.
func (y *YTDLP) Probe(ctx context.Context, url string) (*Info, error) {
	dl := ytdlp.New().
		SkipDownload().
		DumpSingleJSON().
		NoPlaylist().
		NoWarnings()

	res, err := dl.Run(ctx, url)
	if err != nil {
		return nil, describeFailure(res, err)
	}

	return decodeInfo(res.Stdout)
}

// ListFlat implements Extractor.
func (y *YTDLP) ListFlat(ctx context.Context, url string) (*Info, error) {
	dl := ytdlp.New().
		FlatPlaylist().
		SkipDownload().
		DumpSingleJSON().
		NoWarnings()

	res, err := dl.Run(ctx, url)
	if err != nil {
		return nil, describeFailure(res, err)
	}

	return decodeInfo(res.Stdout)
}

// Fetch implements Extractor.
func (y *YTDLP) Fetch(ctx context.Context, url string, opts FetchOptions) (*FetchResult, error) {
	dl := ytdlp.New().
		Format(opts.Format).
		Output(opts.OutputTemplate).
		NoProgress().
		NoWarnings().
		Print(afterMovePrint)

	if opts.SingleItemOnly {
		dl = dl.NoPlaylist()
	}
	if opts.FFmpegLocation != "" {
		dl = dl.FFmpegLocation(opts.FFmpegLocation)
	}
	if opts.SocketTimeout > 0 {
		dl = dl.SocketTimeout(opts.SocketTimeout.Seconds())
	}
	if pp := opts.PostProcess; pp != nil {
		dl = dl.ExtractAudio().AudioFormat(pp.Codec)
		if pp.Quality != "" {
			dl = dl.AudioQuality(pp.Quality)
		}
	}

	y.log.Debugw("Running yt-dlp", "url", url, "format", opts.Format, "output", opts.OutputTemplate)

	res, err := dl.Run(ctx, url)
	if err != nil {
		return nil, describeFailure(res, err)
	}

	return &FetchResult{Filename: lastLine(res.Stdout)}, nil
}

// decodeInfo parses a single JSON info document.
func decodeInfo(stdout string) (*Info, error) {
	stdout = strings.TrimSpace(stdout)
	if stdout == "" {
		return nil, errors.New("extractor returned no metadata")
	}

	var info Info
	if err := json.Unmarshal([]byte(stdout), &info); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	return &info, nil
}

// describeFailure turns a failed run into an error carrying the
// extractor's own message when one was printed.
func describeFailure(res *ytdlp.Result, err error) error {
	if ctxErr := contextError(err); ctxErr != nil {
		return ctxErr
	}
	if res != nil {
		if msg := lastErrorLine(res.Stderr); msg != "" {
			return errors.New(msg)
		}
	}
	return err
}

func contextError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return context.DeadlineExceeded
	case errors.Is(err, context.Canceled):
		return context.Canceled
	}
	return nil
}

// lastErrorLine returns the last "ERROR:" line of yt-dlp's stderr without
// the prefix.
func lastErrorLine(stderr string) string {
	lines := strings.Split(stderr, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if rest, ok := strings.CutPrefix(line, "ERROR:"); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
