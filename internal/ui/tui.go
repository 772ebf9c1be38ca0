// Package ui provides an optional terminal viewer for task documents.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/checkpointer/internal/taskdoc"
)

// ErrNotTTY is returned when the viewer is started without a terminal.
var ErrNotTTY = errors.New("tui requires a TTY")

// DefaultRefreshInterval is how often the document is re-read.
const DefaultRefreshInterval = time.Second

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	subtitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	phaseStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	doneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	commitStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	currentStyle   = lipgloss.NewStyle().Bold(true).Reverse(true)
	statusBarStyle = lipgloss.NewStyle().Padding(0, 1)
)

// Option configures the viewer.
type Option func(*Model)

// WithRefreshInterval sets how often the document is re-read.
func WithRefreshInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.tickInterval = d
		}
	}
}

// RunTUI shows the outline of the task document at path until the user quits.
func RunTUI(ctx context.Context, path string, scan taskdoc.Options, opts ...Option) error {
	if !IsTTY(os.Stdout) {
		return ErrNotTTY
	}
	model := NewModel(path, scan, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// Model is the bubbletea model of the outline viewer.
type Model struct {
	path         string
	scan         taskdoc.Options
	keys         KeyMap
	help         help.Model
	viewport     viewport.Model
	ready        bool
	tickInterval time.Duration

	doc        *taskdoc.Document
	outline    *taskdoc.Outline
	checkpoint *taskdoc.Checkpoint
	locateErr  error
	loadErr    error
}

type tickMsg time.Time

// NewModel creates a viewer for the task document at path.
func NewModel(path string, scan taskdoc.Options, opts ...Option) *Model {
	m := &Model{
		path:         path,
		scan:         scan,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		viewport:     viewport.New(80, 20),
		tickInterval: DefaultRefreshInterval,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize(m.viewport.Width, m.totalHeight())
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.resize(msg.Width, msg.Height)
		m.ready = true
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header(),
		m.viewport.View(),
		statusBarStyle.Render(m.help.View(m.keys)),
	)
}

func (m *Model) header() string {
	title := titleStyle.Render("checkpointer")
	sub := subtitleStyle.Render(m.path)
	return lipgloss.JoinVertical(lipgloss.Left, title, sub, m.summary(), "")
}

// summary is the one-line answer to "which checkpoint would be updated".
func (m *Model) summary() string {
	switch {
	case m.loadErr != nil:
		return errorStyle.Render("Error loading task document: " + m.loadErr.Error())
	case m.locateErr != nil:
		return errorStyle.Render("No checkpoint: " + m.locateErr.Error())
	case m.checkpoint == nil:
		return subtitleStyle.Render("Loading...")
	case !m.checkpoint.Complete:
		return pendingStyle.Render(fmt.Sprintf("Current checkpoint: %s (pending)", m.checkpoint.Label))
	default:
		return doneStyle.Render(fmt.Sprintf("Current checkpoint: %s (line %d)", m.checkpoint.Label, m.checkpoint.Line+1))
	}
}

// chromeHeight is the number of lines the header and footer take.
func (m *Model) chromeHeight() int {
	return lipgloss.Height(m.header()) + lipgloss.Height(m.help.View(m.keys))
}

func (m *Model) totalHeight() int {
	return m.viewport.Height + m.chromeHeight()
}

func (m *Model) resize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height - m.chromeHeight()
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
}

func (m *Model) refresh() {
	doc, err := taskdoc.Load(m.path)
	if err != nil {
		m.loadErr = err
		m.doc, m.outline, m.checkpoint = nil, nil, nil
		m.viewport.SetContent("")
		return
	}
	m.loadErr = nil
	m.doc = doc
	m.outline = doc.Scan(m.scan)
	m.checkpoint, m.locateErr = m.outline.Checkpoint()
	m.viewport.SetContent(renderOutline(doc, m.outline, m.checkpoint))
}

// renderOutline lists phases, tasks, checkpoints and recorded commits,
// marking the located checkpoint.
func renderOutline(doc *taskdoc.Document, outline *taskdoc.Outline, current *taskdoc.Checkpoint) string {
	var b strings.Builder
	inCheckpoint := false
	for _, blk := range outline.Blocks {
		line := strings.TrimSpace(doc.Lines[blk.Line])
		switch blk.Kind {
		case taskdoc.KindPhase:
			inCheckpoint = false
			b.WriteString("\n" + phaseStyle.Render(line) + "\n")
		case taskdoc.KindTask:
			inCheckpoint = false
			mark := "[ ]"
			style := lipgloss.NewStyle()
			if blk.Complete {
				mark = "[x]"
				style = doneStyle
			}
			b.WriteString("  " + style.Render(mark+" "+strings.TrimPrefix(line, "### ")) + "\n")
		case taskdoc.KindCheckpoint:
			inCheckpoint = true
			state := pendingStyle.Render("pending")
			if blk.Complete {
				state = doneStyle.Render("complete")
			}
			text := fmt.Sprintf("%s %s", strings.TrimPrefix(line, "## "), state)
			if current != nil && current.Line == blk.Line {
				text = currentStyle.Render("> "+strings.TrimPrefix(line, "## ")) + " " + state
			}
			b.WriteString("  " + text + "\n")
		case taskdoc.KindGitCommits, taskdoc.KindCommitBullet:
			if inCheckpoint {
				b.WriteString("      " + commitStyle.Render(line) + "\n")
			}
		case taskdoc.KindRule:
			inCheckpoint = false
		}
	}
	return strings.TrimLeft(b.String(), "\n")
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
