package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/handiism/ytbatch/internal/config"
	"github.com/handiism/ytbatch/internal/download"
	"github.com/handiism/ytbatch/internal/media"
	"github.com/handiism/ytbatch/internal/model"
	"github.com/handiism/ytbatch/internal/report"
)

// stubExtractor knows a fixed set of titles; everything else is private.
type stubExtractor struct {
	titles map[string]string
}

func (s *stubExtractor) Probe(ctx context.Context, url string) (*media.Info, error) {
	title, ok := s.titles[url]
	if !ok {
		return nil, errors.New("Private video")
	}
	return &media.Info{ID: url, Title: title}, nil
}

func (s *stubExtractor) Fetch(ctx context.Context, url string, opts media.FetchOptions) (*media.FetchResult, error) {
	path := strings.TrimSuffix(opts.OutputTemplate, ".%(ext)s") + ".mp4"
	return &media.FetchResult{Filename: path}, os.WriteFile(path, []byte("v"), 0644)
}

func (s *stubExtractor) ListFlat(ctx context.Context, url string) (*media.Info, error) {
	return &media.Info{Type: "video"}, nil
}

func testApp(t *testing.T) *App {
	t.Helper()
	s := config.DefaultSettings()
	s.DownloadDir = t.TempDir()
	s.SaveCoverArtInTags = false
	x := &stubExtractor{titles: map[string]string{"https://youtu.be/a": "A"}}
	return NewWithExtractor(s, x, nil)
}

func TestRunWritesFailureReport(t *testing.T) {
	a := testApp(t)

	var events int
	r, path := a.Run(context.Background(), []string{"https://youtu.be/a", "https://youtu.be/b"}, model.KindVideo, Hooks{
		OnProgress: func(download.ProgressEvent) { events++ },
	})

	if r.Total != 2 || r.Successful != 1 || r.Failed != 1 {
		t.Fatalf("report = %+v", r)
	}
	if events == 0 {
		t.Error("no progress events")
	}

	if path != filepath.Join(a.Settings.DownloadDir, report.DefaultFileName) {
		t.Errorf("report path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failure report not written: %v", err)
	}
	if !strings.Contains(string(data), "URL: https://youtu.be/b") || !strings.Contains(string(data), "Error: Private video") {
		t.Errorf("unexpected report:\n%s", data)
	}
	if ExitCode(r) != ExitFailure {
		t.Errorf("ExitCode() = %d, want %d", ExitCode(r), ExitFailure)
	}
}

func TestRunWithoutFailuresWritesNoReport(t *testing.T) {
	a := testApp(t)

	r, path := a.Run(context.Background(), []string{"https://youtu.be/a"}, model.KindVideo, Hooks{})

	if ExitCode(r) != ExitOK {
		t.Errorf("ExitCode() = %d, want 0", ExitCode(r))
	}
	if path != "" {
		t.Errorf("report path = %q, want empty", path)
	}
	if _, err := os.Stat(filepath.Join(a.Settings.DownloadDir, report.DefaultFileName)); !os.IsNotExist(err) {
		t.Errorf("failure report should not exist, stat err = %v", err)
	}
}

func TestRetryIsWired(t *testing.T) {
	s := config.DefaultSettings()
	s.DownloadDir = t.TempDir()
	s.DownloadMaxRetries = 2

	a := NewWithExtractor(s, &stubExtractor{}, nil)
	if _, ok := a.Downloader.(*download.RetryDownloader); !ok {
		t.Errorf("Downloader = %T, want *download.RetryDownloader", a.Downloader)
	}
}

func TestExitCode(t *testing.T) {
	ok := model.NewBatchReport("1", model.KindAudio, []model.DownloadResult{
		model.NewSkipped("u", model.KindAudio, "t", "t.mp3"),
	}, false)
	failed := model.NewBatchReport("2", model.KindAudio, []model.DownloadResult{
		model.NewFailed("u", model.KindAudio, "", "x"),
	}, false)
	interrupted := model.NewBatchReport("3", model.KindAudio, nil, true)

	tests := []struct {
		name string
		r    *model.BatchReport
		want int
	}{
		{"all skipped", ok, ExitOK},
		{"failure", failed, ExitFailure},
		{"interrupted", interrupted, ExitInterrupted},
		{"nil", nil, ExitFailure},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.r); got != tt.want {
			t.Errorf("%s: ExitCode() = %d, want %d", tt.name, got, tt.want)
		}
	}
}
