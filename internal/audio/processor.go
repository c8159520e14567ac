package audio

import (
	"context"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/handiism/ytbatch/internal/http"
	ioutils "github.com/handiism/ytbatch/internal/io"
	"github.com/handiism/ytbatch/internal/logger"
	"github.com/handiism/ytbatch/internal/model"
)

// TagProcessor tags finished MP3 downloads with the video metadata and,
// optionally, the thumbnail as cover art. Other file types are ignored.
type TagProcessor struct {
	tagger *Tagger
	client *http.Client
	images *ioutils.ImageService
	log    *zap.SugaredLogger

	// CoverArt enables thumbnail embedding.
	CoverArt bool

	// CoverArtMaxSize bounds the embedded image in pixels per side.
	CoverArtMaxSize int
}

// NewTagProcessor creates a TagProcessor. A nil client disables cover art.
func NewTagProcessor(tagger *Tagger, client *http.Client, log *zap.SugaredLogger) *TagProcessor {
	return &TagProcessor{
		tagger:          tagger,
		client:          client,
		images:          ioutils.NewImageService(),
		log:             logger.OrNop(log),
		CoverArt:        client != nil,
		CoverArtMaxSize: 500,
	}
}

// Process tags result.OutputPath. It is a no-op for anything but a
// successful MP3 download.
func (p *TagProcessor) Process(ctx context.Context, result model.DownloadResult, info model.VideoInfo) error {
	if !result.IsSuccess() || !strings.EqualFold(filepath.Ext(result.OutputPath), ".mp3") {
		return nil
	}

	if info.URL == "" {
		info.URL = result.URL
	}

	return p.tagger.SaveTags(result.OutputPath, info, p.coverArt(ctx, info))
}

// coverArt returns the thumbnail as a JPEG no larger than CoverArtMaxSize,
// or nil.
func (p *TagProcessor) coverArt(ctx context.Context, info model.VideoInfo) []byte {
	if !p.CoverArt || p.client == nil || info.Thumbnail == "" {
		return nil
	}

	data, err := p.client.DownloadBytes(ctx, info.Thumbnail)
	if err != nil {
		p.log.Warnw("Failed to download thumbnail", "url", info.Thumbnail, "error", err)
		return nil
	}

	var cover []byte
	if p.CoverArtMaxSize > 0 {
		cover, err = p.images.ResizeImage(ctx, data, p.CoverArtMaxSize, p.CoverArtMaxSize)
	} else {
		cover, err = p.images.ConvertToJPEG(ctx, data)
	}
	if err != nil {
		p.log.Warnw("Failed to prepare thumbnail", "url", info.Thumbnail, "error", err)
		return nil
	}
	return cover
}
