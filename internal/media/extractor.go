package media

import (
	"context"
	"time"
)

// Extractor is the media extraction and fetch collaborator.
type Extractor interface {
	// Probe returns metadata for a single item without downloading it.
	Probe(ctx context.Context, url string) (*Info, error)

	// Fetch downloads and post-processes exactly one item.
	Fetch(ctx context.Context, url string, opts FetchOptions) (*FetchResult, error)

	// ListFlat returns collection metadata with one shallow entry per item.
	// For a URL that is not a collection it returns the item itself.
	ListFlat(ctx context.Context, url string) (*Info, error)
}

// Info is the subset of the extractor's info document that ytbatch uses.
type Info struct {
	ID        string   `json:"id"`
	Type      string   `json:"_type"`
	Title     string   `json:"title"`
	Duration  *float64 `json:"duration"` // seconds
	Thumbnail string   `json:"thumbnail"`
	Uploader  string   `json:"uploader"`
	Channel   string   `json:"channel"`
	URL       string   `json:"url"`
	Entries   []*Info  `json:"entries"`
}

// IsCollection reports whether the info describes a playlist-like resource.
func (i *Info) IsCollection() bool {
	return i != nil && (i.Type == "playlist" || i.Type == "multi_video")
}

// DurationValue converts Duration to a time.Duration, nil when unknown.
func (i *Info) DurationValue() *time.Duration {
	if i == nil || i.Duration == nil {
		return nil
	}
	d := time.Duration(*i.Duration * float64(time.Second))
	return &d
}

// Author returns the uploader, falling back to the channel name.
func (i *Info) Author() string {
	if i.Uploader != "" {
		return i.Uploader
	}
	return i.Channel
}

// PostProcess asks the extractor to transcode the fetched stream to an
// audio-only file.
type PostProcess struct {
	Codec   string // mp3, m4a, opus, ...
	Quality string // e.g. "192" (kbit/s) or "0".."10" (VBR)
}

// FetchOptions is the typed form of the options handed to the extractor.
type FetchOptions struct {
	// Format is the stream format selector, e.g. "best[ext=mp4]/best".
	Format string

	// OutputTemplate is the output path pattern. "%(ext)s" is replaced by
	// the extractor; literal percent signs must be doubled.
	OutputTemplate string

	// PostProcess, when set, extracts and transcodes the audio.
	PostProcess *PostProcess

	// SingleItemOnly disables collection expansion even when the URL
	// references a playlist.
	SingleItemOnly bool

	// FFmpegLocation is the ffmpeg binary or its directory. Empty means
	// the extractor looks it up itself.
	FFmpegLocation string

	// SocketTimeout bounds each network read. Zero keeps the default.
	SocketTimeout time.Duration
}

// FetchResult describes a completed fetch.
type FetchResult struct {
	// Filename is the final file path reported by the extractor, if any.
	Filename string
}
