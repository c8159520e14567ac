package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.MaxParallelDownloads != 5 {
		t.Errorf("MaxParallelDownloads = %d, want 5", s.MaxParallelDownloads)
	}
	if s.AudioQuality != "192" || s.AudioCodec != "mp3" {
		t.Errorf("audio = %s/%s, want mp3/192", s.AudioCodec, s.AudioQuality)
	}
	if s.DownloadMaxRetries != 0 {
		t.Errorf("DownloadMaxRetries = %d, want 0", s.DownloadMaxRetries)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
	if s.RequestTimeoutDuration() != 30*time.Second {
		t.Errorf("RequestTimeoutDuration() = %v, want 30s", s.RequestTimeoutDuration())
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.DownloadDir != DefaultSettings().DownloadDir {
		t.Errorf("DownloadDir = %q, want default", s.DownloadDir)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ytbatch.yaml")
	content := strings.Join([]string{
		"download_dir: /srv/media",
		"max_parallel_downloads: 3",
		"audio_codec: opus",
		"request_timeout: 12.5",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.DownloadDir != "/srv/media" {
		t.Errorf("DownloadDir = %q", s.DownloadDir)
	}
	if s.MaxParallelDownloads != 3 {
		t.Errorf("MaxParallelDownloads = %d, want 3", s.MaxParallelDownloads)
	}
	if s.AudioCodec != "opus" {
		t.Errorf("AudioCodec = %q, want opus", s.AudioCodec)
	}
	if s.RequestTimeoutDuration() != 12500*time.Millisecond {
		t.Errorf("RequestTimeoutDuration() = %v", s.RequestTimeoutDuration())
	}
	// Unset keys keep their defaults.
	if s.VideoFormat != "best[ext=mp4]/best" {
		t.Errorf("VideoFormat = %q, want default", s.VideoFormat)
	}
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ytbatch.json")
	if err := os.WriteFile(path, []byte(`{"tools_dir": "/opt/tools", "modify_tags": false}`), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.ToolsDir != "/opt/tools" || s.ModifyTags {
		t.Errorf("got tools_dir=%q modify_tags=%v", s.ToolsDir, s.ModifyTags)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("YTBATCH_MAX_PARALLEL_DOWNLOADS", "9")

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.MaxParallelDownloads != 9 {
		t.Errorf("MaxParallelDownloads = %d, want 9", s.MaxParallelDownloads)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("max_parallel_downloads: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected validation error for zero parallelism")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"empty download dir", func(s *Settings) { s.DownloadDir = " " }},
		{"zero request timeout", func(s *Settings) { s.RequestTimeout = 0 }},
		{"negative fetch timeout", func(s *Settings) { s.FetchTimeout = -1 }},
		{"negative retries", func(s *Settings) { s.DownloadMaxRetries = -1 }},
		{"unknown codec", func(s *Settings) { s.AudioCodec = "mid" }},
		{"flac is not re-detected", func(s *Settings) { s.AudioCodec = "flac" }},
		{"wav is not re-detected", func(s *Settings) { s.AudioCodec = "wav" }},
		{"vorbis is not re-detected", func(s *Settings) { s.AudioCodec = "vorbis" }},
		{"empty format", func(s *Settings) { s.VideoFormat = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(s)
			if err := s.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestAudioExtension(t *testing.T) {
	tests := []struct {
		codec string
		want  string
	}{
		{"mp3", ".mp3"},
		{"M4A", ".m4a"},
		{"opus", ".opus"},
		{"flac", ""},
		{"aac", ""},
	}

	for _, tt := range tests {
		t.Run(tt.codec, func(t *testing.T) {
			s := DefaultSettings()
			s.AudioCodec = tt.codec
			if got := s.AudioExtension(); got != tt.want {
				t.Errorf("AudioExtension() = %q, want %q", got, tt.want)
			}
			if tt.want != "" {
				if err := s.Validate(); err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
			}
		})
	}
}

func TestReportPath(t *testing.T) {
	s := DefaultSettings()
	s.DownloadDir = "/data"
	if got := s.ReportPath("failed_downloads.txt"); got != filepath.Join("/data", "failed_downloads.txt") {
		t.Errorf("ReportPath() = %q", got)
	}
}
