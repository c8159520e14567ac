package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"

	ioutils "github.com/handiism/ytbatch/internal/io"
	"github.com/handiism/ytbatch/internal/logger"
)

var (
	// ErrFFmpegNotFound is returned when no ffmpeg binary can be located.
	ErrFFmpegNotFound = errors.New("ffmpeg not found")

	// ErrYTDLPNotFound is returned when yt-dlp is not on the PATH and
	// automatic installation is disabled.
	ErrYTDLPNotFound = errors.New("yt-dlp not found")
)

// Tools provisions the directories and external binaries ytbatch needs.
type Tools struct {
	// ToolsDir holds bundled binaries, e.g. tools/ffmpeg/bin/ffmpeg.
	ToolsDir string

	// FFmpegLocation is an explicit ffmpeg path; it must exist when set.
	FFmpegLocation string

	// AutoInstall downloads yt-dlp into the user cache if it is missing.
	AutoInstall bool

	Log *zap.SugaredLogger

	// lookPath is exec.LookPath, replaceable in tests.
	lookPath func(string) (string, error)
}

// Prepare creates the download and tool directories, installs or locates
// yt-dlp and returns the ffmpeg location to hand to the extractor.
func (t *Tools) Prepare(ctx context.Context, downloadDir string) (string, error) {
	log := logger.OrNop(t.Log)

	for _, dir := range []string{downloadDir, t.ToolsDir} {
		if dir == "" {
			continue
		}
		if err := ioutils.EnsureDir(dir); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if t.AutoInstall {
		if _, err := ytdlp.Install(ctx, nil); err != nil {
			return "", fmt.Errorf("failed to install yt-dlp: %w", err)
		}
		log.Debug("yt-dlp is installed")
	} else {
		ytdlpPath, err := t.LocateYTDLP()
		if err != nil {
			return "", err
		}
		log.Debugw("Using yt-dlp", "path", ytdlpPath)
	}

	ffmpeg, err := t.LocateFFmpeg()
	if err != nil {
		return "", err
	}
	log.Debugw("Using ffmpeg", "path", ffmpeg)

	return ffmpeg, nil
}

// LocateFFmpeg finds the ffmpeg binary. An explicit FFmpegLocation wins,
// then the bundled copy under ToolsDir, then the PATH.
func (t *Tools) LocateFFmpeg() (string, error) {
	if t.FFmpegLocation != "" {
		if _, err := os.Stat(t.FFmpegLocation); err != nil {
			return "", fmt.Errorf("%w at %s: %v", ErrFFmpegNotFound, t.FFmpegLocation, err)
		}
		return t.FFmpegLocation, nil
	}

	if t.ToolsDir != "" {
		bundled := filepath.Join(t.ToolsDir, "ffmpeg", "bin", ffmpegBinary())
		if info, err := os.Stat(bundled); err == nil && info.Mode().IsRegular() {
			return bundled, nil
		}
	}

	path, err := t.look(ffmpegBinary())
	if err != nil {
		return "", fmt.Errorf("%w in %s or PATH", ErrFFmpegNotFound, t.ToolsDir)
	}
	return path, nil
}

// LocateYTDLP finds the yt-dlp executable on the PATH.
func (t *Tools) LocateYTDLP() (string, error) {
	path, err := t.look("yt-dlp")
	if err != nil {
		return "", fmt.Errorf("%w in PATH (install it or set auto_install_ytdlp)", ErrYTDLPNotFound)
	}
	return path, nil
}

func (t *Tools) look(name string) (string, error) {
	if t.lookPath != nil {
		return t.lookPath(name)
	}
	return exec.LookPath(name)
}

func ffmpegBinary() string {
	if runtime.GOOS == "windows" {
		return "ffmpeg.exe"
	}
	return "ffmpeg"
}
