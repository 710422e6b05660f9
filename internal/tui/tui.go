// Package tui provides a Bubble Tea terminal user interface for cuesplit.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renard/cue-splitter/internal/config"
	"github.com/renard/cue-splitter/internal/split"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	sheetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateScanning
	StateSplitting
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   split.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	sheets    []string
	err       error

	// Split context
	ctx    context.Context
	cancel context.CancelFunc

	// Split manager reference
	manager *split.Manager

	// Split progress
	totalJobs int32
	doneJobs  int32

	// Options
	playlist bool
	dryRun   bool
	verbose  bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings) Model {
	ti := textinput.New()
	ti.Placeholder = "/music/rips or /music/rips/album.cue"
	ti.Focus()
	ti.CharLimit = 500
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
		settings:  settings,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent when split progress updates.
	ProgressMsg struct {
		Event split.ProgressEvent
	}

	// ScanDoneMsg is sent when scanning and planning complete.
	ScanDoneMsg struct {
		Sheets  []string
		Manager *split.Manager
		Err     error
	}

	// SplitDoneMsg is sent when all jobs complete.
	SplitDoneMsg struct {
		Done  int32
		Total int32
		Err   error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
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
			if m.state == StateSplitting || m.state == StateScanning {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && m.textInput.Value() != "" {
				m.state = StateScanning
				return m, tea.Batch(m.scanSheets(), m.spinner.Tick)
			}

		case "p":
			if m.state == StateInput {
				m.playlist = !m.playlist
			}

		case "d":
			if m.state == StateInput {
				m.dryRun = !m.dryRun
			}

		case "v":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for another run
				if m.manager != nil {
					m.manager.Close()
				}
				m.state = StateInput
				m.logs = nil
				m.sheets = nil
				m.err = nil
				m.doneJobs = 0
				m.totalJobs = 0
				m.manager = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.SetValue("")
				m.textInput.Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		// Filter verbose messages if not in verbose mode
		if msg.Event.Level == split.LevelVerbose && !m.verbose {
			return m, nil
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		// Keep only last 10 logs
		if len(m.logs) > 10 {
			m.logs = m.logs[len(m.logs)-10:]
		}

	case ScanDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.sheets = msg.Sheets
			m.manager = msg.Manager
			m.state = StateSplitting
			// Start the actual split and tick for progress updates
			cmds = append(cmds, m.startSplit(), m.tickProgress())
		}

	case SplitDoneMsg:
		m.doneJobs = msg.Done
		m.totalJobs = msg.Total
		if msg.Err != nil && m.ctx.Err() == nil {
			m.state = StateError
			m.err = msg.Err
		} else if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		// Update progress from manager
		if m.manager != nil && m.state == StateSplitting {
			done, total := m.manager.GetProgress()
			m.doneJobs = done
			m.totalJobs = total

			// Calculate percentage and animate progress bar
			var percent float64
			if total > 0 {
				percent = float64(done) / float64(total)
			}
			progressCmd := m.progress.SetPercent(percent)
			cmds = append(cmds, progressCmd, m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("cuesplit"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Split cue sheet + image albums into tracks"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateScanning:
		b.WriteString(m.viewScanning())
	case StateSplitting:
		b.WriteString(m.viewSplitting())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter a cue sheet or directory path:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	// Options
	playlistCheck := "[ ]"
	if m.playlist {
		playlistCheck = "[x]"
	}
	dryRunCheck := "[ ]"
	if m.dryRun {
		dryRunCheck = "[x]"
	}
	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[x]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Create playlists (p)\n", playlistCheck))
	b.WriteString(fmt.Sprintf("  %s Dry run (d)\n", dryRunCheck))
	b.WriteString(fmt.Sprintf("  %s Verbose output (v)\n", verboseCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Template: %s", m.settings.Template)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewScanning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Scanning for cue sheets..."))
	b.WriteString("\n\n")

	// Show logs
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewSplitting() string {
	var b strings.Builder

	// Sheets found
	if len(m.sheets) > 0 {
		b.WriteString(successStyle.Render(fmt.Sprintf("Found %d cue sheet(s):", len(m.sheets))))
		b.WriteString("\n")
		for _, sheet := range m.sheets {
			b.WriteString(sheetStyle.Render(fmt.Sprintf("  - %s", sheet)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Progress bar
	var percent float64
	if m.totalJobs > 0 {
		percent = float64(m.doneJobs) / float64(m.totalJobs)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf("Discs: %d/%d", m.doneJobs, m.totalJobs)))
	b.WriteString("\n\n")

	// Logs
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	verb := "Split"
	if m.dryRun {
		verb = "Planned"
	}

	box := boxStyle.Render(fmt.Sprintf(
		"Done!\n\n"+
			"Cue sheets: %d\n"+
			"%s discs: %d",
		len(m.sheets),
		verb,
		m.totalJobs,
	))
	b.WriteString(box)

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "*"
		switch log.Level {
		case split.LevelError:
			style = errorStyle
			prefix = "x"
		case split.LevelWarning:
			style = warningStyle
			prefix = "!"
		case split.LevelSuccess:
			style = successStyle
			prefix = "+"
		case split.LevelInfo:
			style = infoStyle
			prefix = ">"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start - p: playlists - d: dry run - v: verbose - esc: quit"
	case StateScanning, StateSplitting:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: split more - q: quit"
	}
	return ""
}

// scanSheets discovers and plans the split jobs.
func (m *Model) scanSheets() tea.Cmd {
	return func() tea.Msg {
		path := m.textInput.Value()

		// Apply options
		settings := *m.settings
		settings.CreatePlaylist = settings.CreatePlaylist || m.playlist
		settings.DryRun = settings.DryRun || m.dryRun
		if settings.Overwrite == config.OverwriteAsk {
			// ffmpeg's overwrite prompt would fight the TUI for the
			// terminal, so existing files are skipped instead.
			settings.Overwrite = config.OverwriteNever
		}

		// Create manager with progress callback
		manager, err := split.NewManager(&settings, func(event split.ProgressEvent) {
			// Progress events are collected but not sent directly
			// The TUI polls for progress via TickMsg
		})
		if err != nil {
			return ScanDoneMsg{Err: err}
		}

		// Initialize - this parses sheets and plans jobs
		if err := manager.Initialize(m.ctx, path); err != nil {
			manager.Close()
			return ScanDoneMsg{Err: err}
		}

		return ScanDoneMsg{
			Sheets:  manager.SheetNames(),
			Manager: manager,
			Err:     nil,
		}
	}
}

// startSplit runs the planned jobs in the background.
func (m *Model) startSplit() tea.Cmd {
	return func() tea.Msg {
		if m.manager == nil {
			return SplitDoneMsg{Err: fmt.Errorf("no manager")}
		}

		err := m.manager.Run(m.ctx)
		done, total := m.manager.GetProgress()

		return SplitDoneMsg{
			Done:  done,
			Total: total,
			Err:   err,
		}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
