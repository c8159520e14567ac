package download

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/handiism/ytbatch/internal/media"
)

const playlistURL = "https://www.youtube.com/playlist?list=PL123"

func playlistFixture() *media.Info {
	return &media.Info{
		Type:  "playlist",
		Title: "Mix",
		Entries: []*media.Info{
			{ID: "a1", Type: "url"},
			nil,
			{Type: "url", Title: "no id"},
			{ID: "b2", Type: "url"},
		},
	}
}

func TestExpand(t *testing.T) {
	x := newFakeExtractor()
	x.lists[playlistURL] = playlistFixture()
	e := NewExpander(x, 0, nil)

	got := e.Expand(context.Background(), playlistURL)
	want := []string{
		"https://www.youtube.com/watch?v=a1",
		"https://www.youtube.com/watch?v=b2",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand() = %v, want %v", got, want)
	}

	single := "https://youtu.be/xyz"
	if got := e.Expand(context.Background(), single); !reflect.DeepEqual(got, []string{single}) {
		t.Errorf("Expand(non-collection) = %v", got)
	}
}

func TestExpand_FailureFallsBack(t *testing.T) {
	x := newFakeExtractor()
	x.listErr = errors.New("network unreachable")
	e := NewExpander(x, 0, nil)

	if got := e.Expand(context.Background(), playlistURL); !reflect.DeepEqual(got, []string{playlistURL}) {
		t.Errorf("Expand() = %v, want [%s]", got, playlistURL)
	}
	if got := e.Title(context.Background(), playlistURL); got != unknownPlaylist {
		t.Errorf("Title() = %q, want %q", got, unknownPlaylist)
	}
}

func TestTitle(t *testing.T) {
	x := newFakeExtractor()
	x.lists[playlistURL] = playlistFixture()
	untitled := "https://www.youtube.com/playlist?list=PLempty"
	x.lists[untitled] = &media.Info{Type: "playlist"}
	e := NewExpander(x, 0, nil)

	if got := e.Title(context.Background(), playlistURL); got != "Mix" {
		t.Errorf("Title() = %q", got)
	}
	if got := e.Title(context.Background(), untitled); got != untitledPlaylist {
		t.Errorf("Title(untitled) = %q", got)
	}
}

func TestExpandAll(t *testing.T) {
	x := newFakeExtractor()
	x.lists[playlistURL] = playlistFixture()
	e := NewExpander(x, 0, nil)

	in := []string{
		"https://www.youtube.com/watch?v=first",
		playlistURL,
		"https://youtu.be/last",
	}
	got := e.ExpandAll(context.Background(), in)
	want := []string{
		"https://www.youtube.com/watch?v=first",
		"https://www.youtube.com/watch?v=a1",
		"https://www.youtube.com/watch?v=b2",
		"https://youtu.be/last",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandAll() = %v, want %v", got, want)
	}
}

func TestIsPlaylistURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.youtube.com/playlist?list=PL1", true},
		{"https://www.youtube.com/watch?v=abc&list=PL1", true},
		{"https://www.youtube.com/watch?v=abc", false},
		{"https://youtu.be/abc", false},
		{"https://www.youtube.com/watch?v=abc&playlist=x", false},
		{"::not a url", false},
	}

	for _, tt := range tests {
		if got := IsPlaylistURL(tt.url); got != tt.want {
			t.Errorf("IsPlaylistURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}
