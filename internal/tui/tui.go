// Package tui provides the Bubble Tea terminal user interface for ytbatch
// and the lipgloss rendering shared with the command-line output.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/ytbatch/internal/app"
	"github.com/handiism/ytbatch/internal/download"
	"github.com/handiism/ytbatch/internal/model"
)

// maxLogs is how many progress lines stay on screen.
const maxLogs = 10

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateExpanding
	StateDownloading
	StateComplete
	StateError
)

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	app       *app.App
	logs      []download.ProgressEvent
	err       error

	ctx    context.Context
	cancel context.CancelFunc

	// events carries messages from the running batch to Update.
	events chan tea.Msg

	urls       []string
	done       int
	counts     map[model.DownloadOutcome]int
	report     *model.BatchReport
	reportPath string

	// Options
	kind     model.DownloadKind
	playlist bool
	verbose  bool

	width int
}

// NewModel creates a new TUI model around a wired app.
func NewModel(a *app.App, kind model.DownloadKind) Model {
	ti := textinput.New()
	ti.Placeholder = "https://www.youtube.com/watch?v=... (several: separate with spaces)"
	ti.Focus()
	ti.CharLimit = 4000
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		app:       a,
		ctx:       ctx,
		cancel:    cancel,
		counts:    make(map[model.DownloadOutcome]int),
		kind:      kind,
		playlist:  true,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent for every progress event of the batch.
	ProgressMsg struct {
		Event download.ProgressEvent
	}

	// ResultMsg is sent when one item finished.
	ResultMsg struct {
		Result model.DownloadResult
		Done   int
		Total  int
	}

	// ExpandedMsg carries the flattened URL list.
	ExpandedMsg struct {
		URLs []string
	}

	// DoneMsg is sent when the batch finished or was interrupted.
	DoneMsg struct {
		Report     *model.BatchReport
		ReportPath string
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateExpanding || m.state == StateDownloading {
				m.cancel()
				m.logs = appendLog(m.logs, download.ProgressEvent{Message: "Cancelling...", Level: download.LevelWarning})
			}
			return m, nil

		case "enter":
			if m.state == StateInput {
				return m.start()
			}

		case "tab":
			if m.state == StateInput {
				m.kind = toggleKind(m.kind)
				return m, nil
			}

		case "ctrl+p":
			if m.state == StateInput {
				m.playlist = !m.playlist
				return m, nil
			}

		case "ctrl+v":
			if m.state == StateInput {
				m.verbose = !m.verbose
				return m, nil
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				return m.reset(), textinput.Blink
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ExpandedMsg:
		if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
			return m, nil
		}
		m.urls = msg.URLs
		m.state = StateDownloading
		cmds = append(cmds, m.runBatch(), m.listen())

	case ProgressMsg:
		if msg.Event.Level != download.LevelVerbose || m.verbose {
			m.logs = appendLog(m.logs, msg.Event)
		}
		cmds = append(cmds, m.listen())

	case ResultMsg:
		m.done = msg.Done
		m.counts[msg.Result.Outcome]++
		var percent float64
		if msg.Total > 0 {
			percent = float64(msg.Done) / float64(msg.Total)
		}
		cmds = append(cmds, m.progress.SetPercent(percent), m.listen())

	case DoneMsg:
		m.report = msg.Report
		m.reportPath = msg.ReportPath
		m.state = StateComplete

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// start validates the input and kicks off playlist expansion.
func (m Model) start() (tea.Model, tea.Cmd) {
	valid, rejected := app.Validate(app.SplitURLs(m.textInput.Value()))
	if len(valid) == 0 {
		m.state = StateError
		m.err = fmt.Errorf("no supported URL in input")
		return m, nil
	}
	for _, u := range rejected {
		m.logs = appendLog(m.logs, download.ProgressEvent{Message: "Ignoring unsupported URL: " + u, Level: download.LevelWarning})
	}

	m.events = make(chan tea.Msg, 64)
	m.state = StateExpanding
	return m, tea.Batch(m.expand(valid), m.spinner.Tick)
}

func (m Model) reset() Model {
	m.cancel()
	m.state = StateInput
	m.logs = nil
	m.err = nil
	m.urls = nil
	m.done = 0
	m.counts = make(map[model.DownloadOutcome]int)
	m.report = nil
	m.reportPath = ""
	m.events = nil
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.progress.SetPercent(0)
	m.textInput.SetValue("")
	m.textInput.Focus()
	return m
}

func (m Model) expand(urls []string) tea.Cmd {
	ctx, expander, playlist := m.ctx, m.app.Expander, m.playlist
	return func() tea.Msg {
		if playlist {
			urls = expander.ExpandAll(ctx, urls)
		}
		return ExpandedMsg{URLs: urls}
	}
}

// runBatch runs the batch in the background. Its messages, DoneMsg last,
// arrive through the events channel.
func (m Model) runBatch() tea.Cmd {
	ctx, a, urls, kind, events := m.ctx, m.app, m.urls, m.kind, m.events
	return func() tea.Msg {
		r, path := a.Run(ctx, urls, kind, app.Hooks{
			OnProgress: func(event download.ProgressEvent) {
				events <- ProgressMsg{Event: event}
			},
			OnResult: func(res model.DownloadResult, done, total int) {
				events <- ResultMsg{Result: res, Done: done, Total: total}
			},
		})
		events <- DoneMsg{Report: r, ReportPath: path}
		return nil
	}
}

// listen waits for the next batch message.
func (m Model) listen() tea.Cmd {
	events := m.events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		return <-events
	}
}

func appendLog(logs []download.ProgressEvent, event download.ProgressEvent) []download.ProgressEvent {
	logs = append(logs, event)
	if len(logs) > maxLogs {
		logs = logs[len(logs)-maxLogs:]
	}
	return logs
}

func toggleKind(k model.DownloadKind) model.DownloadKind {
	if k == model.KindAudio {
		return model.KindVideo
	}
	return model.KindAudio
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ytbatch"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Download audio or video in batches"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateExpanding:
		b.WriteString(m.viewExpanding())
	case StateDownloading:
		b.WriteString(m.viewDownloading())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter URL(s):"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Kind: %s (tab)\n", itemStyle.Render(strings.ToUpper(m.kind.String())))
	fmt.Fprintf(&b, "  %s Expand playlists (ctrl+p)\n", checkbox(m.playlist))
	fmt.Fprintf(&b, "  %s Verbose output (ctrl+v)\n", checkbox(m.verbose))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Download path: %s | parallel: %d",
		m.app.Settings.DownloadDir, m.app.Settings.MaxParallelDownloads)))
	b.WriteString("\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (m Model) viewExpanding() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Resolving playlists..."))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewDownloading() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Downloading %d item(s) as %s", len(m.urls), m.kind)))
	b.WriteString("\n\n")

	var percent float64
	if len(m.urls) > 0 {
		percent = float64(m.done) / float64(len(m.urls))
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Done: %d/%d | ok: %d | skipped: %d | failed: %d",
		m.done, len(m.urls),
		m.counts[model.OutcomeSuccess],
		m.counts[model.OutcomeSkipped],
		m.counts[model.OutcomeFailed],
	)))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	if m.report == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(RenderSummary(m.report))
	b.WriteString("\n")
	if failures := RenderFailures(m.report); failures != "" {
		b.WriteString("\n")
		b.WriteString(failures)
	}
	if m.reportPath != "" {
		b.WriteString(dimStyle.Render("Failure report: " + m.reportPath))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		fmt.Fprintf(&b, "  %s", m.err.Error())
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder
	for _, event := range m.logs {
		b.WriteString(RenderEvent(event))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) helpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • tab: audio/video • ctrl+p: playlists • ctrl+v: verbose • esc: quit"
	case StateExpanding, StateDownloading:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new download • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run(a *app.App, kind model.DownloadKind) error {
	p := tea.NewProgram(NewModel(a, kind), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
