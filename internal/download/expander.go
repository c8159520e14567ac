package download

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/handiism/ytbatch/internal/logger"
	"github.com/handiism/ytbatch/internal/media"
)

// watchURL is the canonical form single items are rebuilt in.
const watchURL = "https://www.youtube.com/watch?v=%s"

const (
	untitledPlaylist = "Untitled playlist"
	unknownPlaylist  = "Unknown playlist"
)

// Playlist is the flattened view of a URL.
type Playlist struct {
	Title        string
	IsCollection bool
	URLs         []string
}

// Expander turns collection URLs into per-item URLs.
type Expander struct {
	extractor media.Extractor
	timeout   time.Duration
	log       *zap.SugaredLogger
}

// NewExpander creates an Expander. A non-positive timeout disables the
// deadline on listing requests.
func NewExpander(extractor media.Extractor, timeout time.Duration, log *zap.SugaredLogger) *Expander {
	return &Expander{extractor: extractor, timeout: timeout, log: logger.OrNop(log)}
}

// Describe lists u. A URL that is not a collection, or cannot be listed,
// yields itself as the only entry.
func (e *Expander) Describe(ctx context.Context, u string) Playlist {
	lctx, cancel := withTimeout(ctx, e.timeout)
	defer cancel()

	info, err := e.extractor.ListFlat(lctx, u)
	if err != nil {
		e.log.Warnw("Failed to list playlist, treating as single item",
			"url", u, "reason", failureReason(ctx, lctx, err, e.timeout))
		return Playlist{Title: unknownPlaylist, URLs: []string{u}}
	}

	if !info.IsCollection() {
		return Playlist{Title: info.Title, URLs: []string{u}}
	}

	p := Playlist{Title: info.Title, IsCollection: true, URLs: make([]string, 0, len(info.Entries))}
	if strings.TrimSpace(p.Title) == "" {
		p.Title = untitledPlaylist
	}
	for _, entry := range info.Entries {
		if entry == nil || entry.ID == "" {
			continue
		}
		p.URLs = append(p.URLs, fmt.Sprintf(watchURL, url.QueryEscape(entry.ID)))
	}
	return p
}

// Expand returns one URL per collection entry, or [u] when u is not a
// collection or the listing fails. It never fails.
func (e *Expander) Expand(ctx context.Context, u string) []string {
	return e.Describe(ctx, u).URLs
}

// Title returns the collection title, or a placeholder.
func (e *Expander) Title(ctx context.Context, u string) string {
	return e.Describe(ctx, u).Title
}

// ExpandAll flattens urls, expanding the ones carrying a playlist
// parameter. Order is preserved.
func (e *Expander) ExpandAll(ctx context.Context, urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if ctx.Err() != nil {
			break
		}
		if !IsPlaylistURL(u) {
			out = append(out, u)
			continue
		}

		p := e.Describe(ctx, u)
		if p.IsCollection {
			e.log.Infow("Expanded playlist", "url", u, "title", p.Title, "items", len(p.URLs))
		}
		out = append(out, p.URLs...)
	}
	return out
}

// IsPlaylistURL reports whether u carries a list= query parameter.
func IsPlaylistURL(u string) bool {
	parsed, err := url.Parse(strings.TrimSpace(u))
	if err != nil {
		return false
	}
	return parsed.Query().Has("list")
}
