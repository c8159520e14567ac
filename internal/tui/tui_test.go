package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/ytbatch/internal/app"
	"github.com/handiism/ytbatch/internal/config"
	"github.com/handiism/ytbatch/internal/download"
	"github.com/handiism/ytbatch/internal/media"
	"github.com/handiism/ytbatch/internal/model"
)

type stubExtractor struct{}

func (stubExtractor) Probe(ctx context.Context, url string) (*media.Info, error) {
	if strings.HasSuffix(url, "bad") {
		return nil, errors.New("Video unavailable")
	}
	return &media.Info{ID: url, Title: "T " + url[len(url)-1:]}, nil
}

func (stubExtractor) Fetch(ctx context.Context, url string, opts media.FetchOptions) (*media.FetchResult, error) {
	return &media.FetchResult{}, nil
}

func (stubExtractor) ListFlat(ctx context.Context, url string) (*media.Info, error) {
	return &media.Info{Type: "playlist", Title: "P", Entries: []*media.Info{{ID: "x"}, {ID: "y"}}}, nil
}

func testModel(t *testing.T) Model {
	t.Helper()
	s := config.DefaultSettings()
	s.DownloadDir = t.TempDir()
	s.ModifyTags = false
	s.SaveCoverArtInTags = false
	return NewModel(app.NewWithExtractor(s, stubExtractor{}, nil), model.KindAudio)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModel_Options(t *testing.T) {
	m := testModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.kind != model.KindVideo {
		t.Errorf("kind = %v after tab, want video", m.kind)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	if m.playlist {
		t.Error("ctrl+p did not toggle playlist expansion")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlV})
	if !m.verbose {
		t.Error("ctrl+v did not toggle verbose")
	}

	view := m.View()
	if !strings.Contains(view, "VIDEO") || !strings.Contains(view, "Enter URL(s)") {
		t.Errorf("unexpected view:\n%s", view)
	}
}

func TestModel_RejectsEmptyInput(t *testing.T) {
	m := testModel(t)
	m.textInput.SetValue("not a link")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.state != StateError || m.err == nil {
		t.Errorf("state = %v err = %v, want error state", m.state, m.err)
	}
	if !strings.Contains(m.View(), "no supported URL") {
		t.Error("error not shown")
	}
}

func TestModel_Flow(t *testing.T) {
	m := testModel(t)
	m.textInput.SetValue("https://www.youtube.com/playlist?list=PL1 https://example.com/x")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != StateExpanding {
		t.Fatalf("state = %v, want expanding", m.state)
	}
	if len(m.logs) != 1 || m.logs[0].Level != download.LevelWarning {
		t.Errorf("rejected URL not logged: %+v", m.logs)
	}

	msg := m.expand([]string{"https://www.youtube.com/playlist?list=PL1"})()
	expanded, ok := msg.(ExpandedMsg)
	if !ok || len(expanded.URLs) != 2 {
		t.Fatalf("expand() = %#v", msg)
	}

	m, _ = update(t, m, expanded)
	if m.state != StateDownloading {
		t.Fatalf("state = %v, want downloading", m.state)
	}

	go m.runBatch()()

	timeout := time.After(5 * time.Second)
	for m.state != StateComplete {
		select {
		case msg := <-m.events:
			m, _ = update(t, m, msg)
		case <-timeout:
			t.Fatal("batch did not finish")
		}
	}

	if m.report == nil || m.report.Total != 2 || m.report.Successful != 2 {
		t.Errorf("report = %+v", m.report)
	}
	if m.done != 2 || m.counts[model.OutcomeSuccess] != 2 {
		t.Errorf("done = %d counts = %v", m.done, m.counts)
	}
	if !strings.Contains(m.View(), "Batch complete") {
		t.Errorf("summary not shown:\n%s", m.View())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if m.state != StateInput || m.report != nil || m.done != 0 {
		t.Errorf("reset failed: state=%v", m.state)
	}
}

func TestModel_ProgressFiltersVerbose(t *testing.T) {
	m := testModel(t)

	m, _ = update(t, m, ProgressMsg{Event: download.ProgressEvent{Message: "debug", Level: download.LevelVerbose}})
	if len(m.logs) != 0 {
		t.Error("verbose event shown without verbose mode")
	}

	for i := 0; i < maxLogs+5; i++ {
		m, _ = update(t, m, ProgressMsg{Event: download.ProgressEvent{Message: "info", Level: download.LevelInfo}})
	}
	if len(m.logs) != maxLogs {
		t.Errorf("logs = %d, want %d", len(m.logs), maxLogs)
	}
}
