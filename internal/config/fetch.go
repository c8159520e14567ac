package config

import (
	"path/filepath"
	"strings"

	ioutils "github.com/handiism/ytbatch/internal/io"
	"github.com/handiism/ytbatch/internal/media"
	"github.com/handiism/ytbatch/internal/model"
)

// FetchOptions derives the extractor options for one item of the given
// kind. The output file is named after the sanitized title so that the
// existence checker finds it on the next run.
func (s *Settings) FetchOptions(kind model.DownloadKind, title string) media.FetchOptions {
	opts := media.FetchOptions{
		Format:         s.VideoFormat,
		OutputTemplate: OutputTemplate(s.DownloadDir, title),
		SingleItemOnly: true,
		FFmpegLocation: s.FFmpegLocation,
		SocketTimeout:  s.RequestTimeoutDuration(),
	}

	if kind == model.KindAudio {
		opts.Format = s.AudioFormat
		opts.PostProcess = &media.PostProcess{
			Codec:   strings.ToLower(s.AudioCodec),
			Quality: s.AudioQuality,
		}
	}

	return opts
}

// OutputTemplate returns "{dir}/{sanitized title}.%(ext)s" with literal
// percent signs escaped for the extractor's template syntax.
func OutputTemplate(dir, title string) string {
	name := ioutils.SanitizeFileName(title)
	return escapeTemplate(filepath.Join(dir, name)) + ".%(ext)s"
}

func escapeTemplate(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
