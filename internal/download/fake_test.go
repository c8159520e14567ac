package download

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/handiism/ytbatch/internal/media"
)

// fakeExtractor serves canned metadata and writes a small file on fetch.
type fakeExtractor struct {
	mu sync.Mutex

	infos     map[string]*media.Info
	probeErr  map[string]error
	fetchErr  map[string]error
	lists     map[string]*media.Info
	listErr   error
	fetchWait time.Duration

	// ext is the extension written by Fetch, ".mp4" when empty.
	ext string

	probes  int
	fetches int32
	opts    []media.FetchOptions
}

func newFakeExtractor() *fakeExtractor {
	return &fakeExtractor{
		infos:    make(map[string]*media.Info),
		probeErr: make(map[string]error),
		fetchErr: make(map[string]error),
		lists:    make(map[string]*media.Info),
	}
}

func (f *fakeExtractor) withVideo(url, title string) *fakeExtractor {
	f.infos[url] = &media.Info{ID: strings.TrimPrefix(url, "url"), Title: title, Uploader: "uploader"}
	return f
}

func (f *fakeExtractor) Probe(ctx context.Context, url string) (*media.Info, error) {
	f.mu.Lock()
	f.probes++
	err := f.probeErr[url]
	info := f.infos[url]
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, errors.New("video unavailable")
	}
	return info, ctx.Err()
}

func (f *fakeExtractor) Fetch(ctx context.Context, url string, opts media.FetchOptions) (*media.FetchResult, error) {
	atomic.AddInt32(&f.fetches, 1)

	f.mu.Lock()
	f.opts = append(f.opts, opts)
	err := f.fetchErr[url]
	f.mu.Unlock()

	if f.fetchWait > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.fetchWait):
		}
	}
	if err != nil {
		return nil, err
	}

	ext := f.ext
	if ext == "" {
		ext = ".mp4"
	}
	base := strings.TrimSuffix(opts.OutputTemplate, ".%(ext)s")
	path := strings.ReplaceAll(base, "%%", "%") + ext
	if err := os.WriteFile(path, []byte("media"), 0644); err != nil {
		return nil, err
	}
	return &media.FetchResult{Filename: filepath.Clean(path)}, nil
}

func (f *fakeExtractor) ListFlat(ctx context.Context, url string) (*media.Info, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if info, ok := f.lists[url]; ok {
		return info, nil
	}
	return &media.Info{ID: url, Type: "video", Title: "single"}, nil
}

func (f *fakeExtractor) fetchCount() int {
	return int(atomic.LoadInt32(&f.fetches))
}
