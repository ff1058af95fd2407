// Package tui provides a Bubble Tea terminal user interface for imgresize.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/aagbemuko/imgresize/internal/config"
	"github.com/aagbemuko/imgresize/internal/dirs"
	ioutils "github.com/aagbemuko/imgresize/internal/io"
	"github.com/aagbemuko/imgresize/internal/model"
	"github.com/aagbemuko/imgresize/internal/prompt"
	"github.com/aagbemuko/imgresize/internal/resize"
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
)

// State represents the current UI state.
type State int

const (
	StateMenu State = iota
	StateSource
	StateSameDir
	StateDestination
	StateFormatChange
	StateFormat
	StatePercent
	StateWidth
	StateHeight
	StateResizing
	StateComplete
	StateError
)

// asking reports whether the state waits for typed input.
func (s State) asking() bool {
	return s < StateResizing
}

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   resize.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	codec     resize.Codec
	logger    *log.Logger
	logs      []LogEntry
	notice    string
	err       error

	// Resize context
	ctx    context.Context
	cancel context.CancelFunc
	events chan tea.Msg

	// Collected answers
	kind  model.ModeKind
	src   string
	dst   string
	files []string
	job   resize.Job
	width int

	// Invalid answers in the current state; directory syntax errors are
	// counted separately because missing directories do not reset them.
	failures       int
	syntaxFailures int

	percent float64
	stats   resize.Stats

	termWidth int
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings, codec resize.Codec, logger *log.Logger) Model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		state:     StateMenu,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		codec:     codec,
		logger:    logger,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
	}
	m.setPlaceholder()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries one engine progress event.
	ProgressMsg struct {
		Event resize.ProgressEvent
	}

	// ResizeDoneMsg is sent when the engine returns.
	ResizeDoneMsg struct {
		Stats resize.Stats
		Err   error
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
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
			if m.state.asking() || m.state == StateComplete || m.state == StateError {
				m.cancel()
				return m, tea.Quit
			}
			if m.state == StateResizing {
				m.cancel()
			}

		case "enter":
			if m.state.asking() {
				value := m.textInput.Value()
				m.textInput.SetValue("")
				var cmd tea.Cmd
				m, cmd = m.submit(value)
				m.setPlaceholder()
				return m, cmd
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		m.addLog(msg.Event.Message, msg.Event.Level)
		if msg.Event.Percent >= 0 {
			m.percent = msg.Event.Percent / 100
			cmds = append(cmds, m.progress.SetPercent(m.percent))
		}
		cmds = append(cmds, waitForMsg(m.events))

	case ResizeDoneMsg:
		m.stats = msg.Stats
		if msg.Err != nil {
			m.state = StateError
			if errors.Is(msg.Err, context.Canceled) {
				m.err = fmt.Errorf("cancelled by user")
			} else {
				m.err = msg.Err
			}
		} else {
			m.state = StateComplete
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state.asking() {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// submit validates an answer for the current state and moves on.
func (m Model) submit(value string) (Model, tea.Cmd) {
	m.notice = ""
	r := m.settings.Retries

	switch m.state {
	case StateMenu:
		key, ok := m.settings.MenuOptions.Resolve(value)
		if !ok {
			return m.reject(errors.New("Invalid selection. Menu selection must be as instructed."), r.Menu)
		}
		kind, err := m.settings.ModeFor(key)
		if err != nil {
			return m.fail(err), nil
		}
		m.kind = kind
		m.advance(StateSource)

	case StateSource, StateDestination:
		if err := dirs.ValidateRaw(value); err != nil {
			m.syntaxFailures++
			m.notice = err.Error()
			if prompt.Exhausted(m.syntaxFailures, r.DirectorySyntax) {
				return m.fail(prompt.Exhaust(m.syntaxFailures)), nil
			}
			return m, nil
		}
		if m.state == StateSource {
			if err := dirs.CheckSource(value); err != nil {
				m.notice = dirs.Describe(err)
				m.syntaxFailures = 0
				return m, nil
			}
			m.src = value
			m.syntaxFailures = 0
			m.advance(StateSameDir)
			return m, nil
		}
		created, err := dirs.PrepareDestination(value)
		if err != nil {
			m.notice = dirs.Describe(err)
			m.syntaxFailures = 0
			return m, nil
		}
		if created {
			m.addLog("Created "+value, resize.LevelVerbose)
		}
		m.dst = value
		m.syntaxFailures = 0
		return m.listFiles()

	case StateSameDir:
		same, ok := prompt.ParseYesNo(value)
		if !ok {
			return m.reject(errors.New("Please enter 'Y' or 'N'."), r.YesNo)
		}
		if !same {
			m.advance(StateDestination)
			return m, nil
		}
		m.dst = m.src
		return m.listFiles()

	case StateFormatChange:
		change, ok := prompt.ParseYesNo(value)
		if !ok {
			return m.reject(errors.New("Please enter 'Y' or 'N'."), r.YesNo)
		}
		if change {
			m.advance(StateFormat)
		} else {
			m.advanceToSizing()
		}

	case StateFormat:
		if err := prompt.ValidateFormat(value, m.settings.SupportedFormats); err != nil {
			return m.reject(err, r.Format)
		}
		m.job.Format = value
		m.advanceToSizing()

	case StatePercent, StateWidth, StateHeight:
		n, err := prompt.ParsePositiveInt(value)
		if err != nil {
			return m.reject(err, r.Number)
		}
		switch m.state {
		case StatePercent:
			m.job.Mode = model.Percentage(n)
			return m.startResize()
		case StateWidth:
			m.width = n
			m.advance(StateHeight)
		case StateHeight:
			m.job.Mode = model.Fixed(m.width, n)
			return m.startResize()
		}
	}

	return m, nil
}

func (m Model) reject(err error, limit int) (Model, tea.Cmd) {
	m.failures++
	m.notice = err.Error()
	if prompt.Exhausted(m.failures, limit) {
		return m.fail(prompt.Exhaust(m.failures)), nil
	}
	return m, nil
}

func (m Model) fail(err error) Model {
	m.state = StateError
	m.err = err
	m.textInput.Blur()
	return m
}

func (m *Model) advance(next State) {
	m.state = next
	m.failures = 0
}

func (m *Model) advanceToSizing() {
	if m.kind == model.KindFixed {
		m.advance(StateWidth)
	} else {
		m.advance(StatePercent)
	}
}

// listFiles enumerates the source directory once both directories are known.
func (m Model) listFiles() (Model, tea.Cmd) {
	files, err := ioutils.ListImages(m.src, m.settings.SupportedFormats)
	if err != nil {
		return m.fail(fmt.Errorf("list images in %s: %w", m.src, err)), nil
	}
	m.files = files
	if len(files) == 0 {
		m.addLog("No image files found in the source directory. Nothing to resize.", resize.LevelWarning)
		m.state = StateComplete
		m.textInput.Blur()
		return m, nil
	}
	m.addLog(fmt.Sprintf("Found %d image(s) in %s", len(files), m.src), resize.LevelInfo)
	m.advance(StateFormatChange)
	return m, nil
}

// startResize runs the engine in the background. Progress events and the
// final result travel through one channel so they arrive in order.
func (m Model) startResize() (Model, tea.Cmd) {
	m.state = StateResizing
	m.textInput.Blur()
	m.events = make(chan tea.Msg, 64)

	ch := m.events
	engine := resize.NewEngine(m.settings, m.codec, m.logger, func(event resize.ProgressEvent) {
		ch <- ProgressMsg{Event: event}
	})
	ctx, files, dst, job := m.ctx, m.files, m.dst, m.job

	run := func() tea.Msg {
		stats, err := engine.Resize(ctx, files, dst, job)
		ch <- ResizeDoneMsg{Stats: stats, Err: err}
		close(ch)
		return nil
	}

	return m, tea.Batch(run, waitForMsg(ch), m.spinner.Tick)
}

func waitForMsg(ch <-chan tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (m *Model) addLog(message string, level resize.ProgressLevel) {
	m.logs = append(m.logs, LogEntry{Message: message, Level: level})
	// Keep only last 10 logs
	if len(m.logs) > 10 {
		m.logs = m.logs[len(m.logs)-10:]
	}
}

func (m *Model) setPlaceholder() {
	switch m.state {
	case StateMenu:
		m.textInput.Placeholder = "1a"
	case StateSource:
		m.textInput.Placeholder = "/home/user/Pictures"
	case StateDestination:
		m.textInput.Placeholder = "/home/user/Pictures/resized"
	case StateSameDir, StateFormatChange:
		m.textInput.Placeholder = "y/n"
	case StateFormat:
		m.textInput.Placeholder = strings.Join(m.settings.SupportedFormats, ", ")
	case StatePercent:
		m.textInput.Placeholder = "50"
	case StateWidth:
		m.textInput.Placeholder = "800"
	case StateHeight:
		m.textInput.Placeholder = "600"
	}
}

// question returns the text shown above the input for an asking state.
func (m Model) question() string {
	switch m.state {
	case StateMenu:
		return "Enter the menu option of choice:"
	case StateSource:
		return dirs.Source.Question()
	case StateSameDir:
		return "Source and destination directory are the same?"
	case StateDestination:
		return dirs.Destination.Question()
	case StateFormatChange:
		return "Should the output image format differ from the source format?"
	case StateFormat:
		return "Enter the output format:"
	case StatePercent:
		return "Enter the resize percentage (e.g. 50 for half size):"
	case StateWidth:
		return "Enter the target width in pixels:"
	case StateHeight:
		return "Enter the target height in pixels:"
	}
	return ""
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("Image Resize"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Batch-resize the images of a folder"))
	b.WriteString("\n\n")

	switch {
	case m.state.asking():
		b.WriteString(m.viewAsk())
	case m.state == StateResizing:
		b.WriteString(m.viewResizing())
	case m.state == StateComplete:
		b.WriteString(m.viewComplete())
	case m.state == StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewAsk() string {
	var b strings.Builder

	if m.state == StateMenu {
		b.WriteString(infoStyle.Render("Menu options:"))
		b.WriteString("\n")
		b.WriteString("  1. Image resize\n")
		b.WriteString("     a. by a percentage of the source dimensions (1, 1a, a1)\n")
		b.WriteString("     b. to a fixed width and height (1b, b1)\n\n")
	}

	b.WriteString(subtitleStyle.Render(m.question()))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewResizing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Resizing %d image(s) (%s) into %s", len(m.files), m.job.Mode, m.dst)))
	b.WriteString("\n\n")
	b.WriteString(m.progress.ViewAs(m.percent))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	box := boxStyle.Render(fmt.Sprintf(
		"Resize Complete!\n\n"+
			"Resized: %d of %d\n"+
			"Skipped: %d\n"+
			"Failed: %d\n"+
			"Destination: %s",
		m.stats.Processed,
		len(m.files),
		m.stats.Skipped,
		m.stats.Failed,
		m.dst,
	))
	b.WriteString(box)
	b.WriteString("\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, entry := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch entry.Level {
		case resize.LevelError:
			style = errorStyle
			prefix = "✗"
		case resize.LevelWarning:
			style = warningStyle
			prefix = "!"
		case resize.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case resize.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + entry.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch {
	case m.state.asking():
		return "enter: submit • esc: quit"
	case m.state == StateResizing:
		return "esc: cancel"
	default:
		return "q: quit"
	}
}

// Result returns the final stats and error of the session.
func (m Model) Result() (resize.Stats, error) {
	return m.stats, m.err
}

// Run starts the TUI application.
func Run(settings *config.Settings, logger *log.Logger) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	codec, err := ioutils.NewImageService(settings.ImageOptions())
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal; keep diagnostics off it.
	logger.SetOutput(io.Discard)

	p := tea.NewProgram(NewModel(settings, codec, logger), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		if _, err := fm.Result(); err != nil {
			return err
		}
	}
	return nil
}
