package model

import (
	"fmt"
	"strings"
)

// DownloadKind is the target format of a download.
type DownloadKind int

const (
	// KindAudio extracts the audio track and transcodes it.
	KindAudio DownloadKind = iota

	// KindVideo downloads the video with its audio.
	KindVideo
)

var (
	audioExtensions = []string{".mp3", ".m4a", ".webm", ".opus"}
	videoExtensions = []string{".mp4", ".mkv", ".webm", ".avi"}
)

// String returns the lower-case name of the kind.
func (k DownloadKind) String() string {
	switch k {
	case KindAudio:
		return "audio"
	case KindVideo:
		return "video"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Extensions returns the file extensions that satisfy a download of this
// kind, in the order they are checked. The returned slice is a copy.
func (k DownloadKind) Extensions() []string {
	var exts []string
	switch k {
	case KindAudio:
		exts = audioExtensions
	default:
		exts = videoExtensions
	}
	out := make([]string, len(exts))
	copy(out, exts)
	return out
}

// ParseKind converts "audio" or "video" (any case) to a DownloadKind.
func ParseKind(s string) (DownloadKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "audio", "a", "mp3":
		return KindAudio, nil
	case "video", "v", "mp4":
		return KindVideo, nil
	}
	return KindVideo, fmt.Errorf("unknown download kind %q (want audio or video)", s)
}
