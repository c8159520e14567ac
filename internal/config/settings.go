package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/handiism/ytbatch/internal/model"
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "YTBATCH"

// Settings holds all configuration options.
type Settings struct {
	// Download settings
	DownloadDir           string  `mapstructure:"download_dir" json:"download_dir"`
	ToolsDir              string  `mapstructure:"tools_dir" json:"tools_dir"`
	FFmpegLocation        string  `mapstructure:"ffmpeg_location" json:"ffmpeg_location"`
	AutoInstallYTDLP      bool    `mapstructure:"auto_install_ytdlp" json:"auto_install_ytdlp"`
	MaxParallelDownloads  int     `mapstructure:"max_parallel_downloads" json:"max_parallel_downloads"`
	RequestTimeout        float64 `mapstructure:"request_timeout" json:"request_timeout"` // seconds
	FetchTimeout          float64 `mapstructure:"fetch_timeout" json:"fetch_timeout"`     // seconds
	DownloadMaxRetries    int     `mapstructure:"download_max_retries" json:"download_max_retries"`
	DownloadRetryCooldown float64 `mapstructure:"download_retry_cooldown" json:"download_retry_cooldown"`
	DownloadRetryExponent float64 `mapstructure:"download_retry_exponent" json:"download_retry_exponent"`

	// Format selection
	AudioFormat  string `mapstructure:"audio_format" json:"audio_format"`
	VideoFormat  string `mapstructure:"video_format" json:"video_format"`
	AudioCodec   string `mapstructure:"audio_codec" json:"audio_codec"`
	AudioQuality string `mapstructure:"audio_quality" json:"audio_quality"`

	// Tag settings
	ModifyTags            bool `mapstructure:"modify_tags" json:"modify_tags"`
	SaveCoverArtInTags    bool `mapstructure:"save_cover_art_in_tags" json:"save_cover_art_in_tags"`
	CoverArtInTagsMaxSize int  `mapstructure:"cover_art_in_tags_max_size" json:"cover_art_in_tags_max_size"`

	// Logging
	LogLevel  string `mapstructure:"log_level" json:"log_level"`
	LogFormat string `mapstructure:"log_format" json:"log_format"` // console, json
}

// audioCodecExtensions maps each accepted audio codec to the extension of the
// file it produces. Only codecs whose output is found by the existence check
// are accepted, so a re-run skips what was already extracted.
var audioCodecExtensions = map[string]string{
	"mp3":  ".mp3",
	"m4a":  ".m4a",
	"opus": ".opus",
}

// AudioExtension returns the extension of files produced by the configured
// audio codec, or "" for an unsupported codec.
func (s *Settings) AudioExtension() string {
	return audioCodecExtensions[strings.ToLower(s.AudioCodec)]
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		DownloadDir:           "./downloads",
		ToolsDir:              "./tools",
		FFmpegLocation:        "",
		AutoInstallYTDLP:      false,
		MaxParallelDownloads:  5,
		RequestTimeout:        30,
		FetchTimeout:          1800,
		DownloadMaxRetries:    0,
		DownloadRetryCooldown: 0.2,
		DownloadRetryExponent: 4.0,

		AudioFormat:  "bestaudio/best",
		VideoFormat:  "best[ext=mp4]/best",
		AudioCodec:   "mp3",
		AudioQuality: "192",

		ModifyTags:            true,
		SaveCoverArtInTags:    true,
		CoverArtInTagsMaxSize: 500,

		LogLevel:  "info",
		LogFormat: "console",
	}
}

// Load reads settings from a YAML or JSON file, applying defaults and
// YTBATCH_* environment overrides. An empty path or a missing file yields
// the defaults with environment overrides applied.
func Load(path string) (*Settings, error) {
	v := newViper()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if filepath.Ext(path) == "" {
				v.SetConfigType("yaml")
			}
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return settings, nil
}

// newViper returns a viper instance primed with defaults and environment
// bindings.
func newViper() *viper.Viper {
	v := viper.New()

	d := DefaultSettings()
	v.SetDefault("download_dir", d.DownloadDir)
	v.SetDefault("tools_dir", d.ToolsDir)
	v.SetDefault("ffmpeg_location", d.FFmpegLocation)
	v.SetDefault("auto_install_ytdlp", d.AutoInstallYTDLP)
	v.SetDefault("max_parallel_downloads", d.MaxParallelDownloads)
	v.SetDefault("request_timeout", d.RequestTimeout)
	v.SetDefault("fetch_timeout", d.FetchTimeout)
	v.SetDefault("download_max_retries", d.DownloadMaxRetries)
	v.SetDefault("download_retry_cooldown", d.DownloadRetryCooldown)
	v.SetDefault("download_retry_exponent", d.DownloadRetryExponent)
	v.SetDefault("audio_format", d.AudioFormat)
	v.SetDefault("video_format", d.VideoFormat)
	v.SetDefault("audio_codec", d.AudioCodec)
	v.SetDefault("audio_quality", d.AudioQuality)
	v.SetDefault("modify_tags", d.ModifyTags)
	v.SetDefault("save_cover_art_in_tags", d.SaveCoverArtInTags)
	v.SetDefault("cover_art_in_tags_max_size", d.CoverArtInTagsMaxSize)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Validate checks the settings for values that would make every download
// fail. It is run by Load and should be run again after flag overrides.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.DownloadDir) == "" {
		return fmt.Errorf("download_dir is required")
	}
	if s.MaxParallelDownloads < 1 {
		return fmt.Errorf("max_parallel_downloads must be at least 1, got %d", s.MaxParallelDownloads)
	}
	if s.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	if s.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive")
	}
	if s.DownloadMaxRetries < 0 {
		return fmt.Errorf("download_max_retries must not be negative")
	}
	if ext := s.AudioExtension(); ext == "" || !slices.Contains(model.KindAudio.Extensions(), ext) {
		return fmt.Errorf("unsupported audio_codec %q (use mp3, m4a or opus)", s.AudioCodec)
	}
	if s.AudioFormat == "" || s.VideoFormat == "" {
		return fmt.Errorf("audio_format and video_format must not be empty")
	}
	return nil
}

// RequestTimeoutDuration returns the per-request timeout for probing and
// playlist listing.
func (s *Settings) RequestTimeoutDuration() time.Duration {
	return seconds(s.RequestTimeout)
}

// FetchTimeoutDuration returns the deadline for one fetch-and-process call.
func (s *Settings) FetchTimeoutDuration() time.Duration {
	return seconds(s.FetchTimeout)
}

// RetryCooldownDuration returns the base delay between retries.
func (s *Settings) RetryCooldownDuration() time.Duration {
	return seconds(s.DownloadRetryCooldown)
}

// ReportPath returns where the failure report is written.
func (s *Settings) ReportPath(fileName string) string {
	return filepath.Join(s.DownloadDir, fileName)
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
