package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/rastreo/internal/prefs"
	"github.com/five82/rastreo/internal/tracking"
)

// Controller is the subset of *tracking.Controller the UI drives.
type Controller interface {
	TrackPackage(trackingNumber string) error
	ViewHistoryDetail(entry tracking.HistoryEntry) error
	LoadHistory()
	ClearHistory()
}

// focusArea is the pane receiving keys.
type focusArea int

const (
	focusInput focusArea = iota
	focusHistory
)

// Options configures the UI.
type Options struct {
	// Context, when set, stops the program once it is cancelled.
	Context    context.Context
	Controller Controller
	Events     <-chan tracking.Event
	ThemeName  string
	APIURL     string

	// PrefsPath is where a cycled theme is saved. Empty disables saving.
	PrefsPath string

	// Logger records failures the operator is not shown. Defaults to a no-op.
	Logger *zerolog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctrl      Controller
	events    <-chan tracking.Event
	apiURL    string
	prefsPath string
	log       zerolog.Logger

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	width    int
	height   int
	ready    bool
	focus    focusArea
	showHelp bool

	// Query pane
	input      textinput.Model
	resultView viewport.Model
	resultText string

	// History pane
	history    []tracking.HistoryEntry
	selected   int
	detailView viewport.Model
	detailText string

	// Status
	loading bool
	spinner spinner.Model
	errors  []string // pending alerts, oldest first
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeOrder[0]
	}
	theme := GetTheme(themeName)

	input := textinput.New()
	input.Placeholder = "Ingrese número de rastreo"
	input.Prompt = "› "
	input.CharLimit = 64
	input.Focus()

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = theme.Styles().Spinner

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "ui").Logger()
	}

	return Model{
		ctrl:      opts.Controller,
		events:    opts.Events,
		apiURL:    opts.APIURL,
		prefsPath: opts.PrefsPath,
		log:       log,
		theme:     theme,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		input:     input,
		spinner:   spin,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		waitForEvent(m.events),
		m.loadHistoryCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		return m, nil

	case eventMsg:
		cmd := m.applyEvent(msg.event)
		return m, tea.Batch(cmd, waitForEvent(m.events))

	case eventsClosedMsg:
		return m, tea.Quit

	case prefsSavedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Str("theme", msg.theme).Msg("save theme preference")
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Cargando..."
	}
	if len(m.errors) > 0 {
		return m.renderError()
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// applyEvent folds a controller event into the model.
func (m *Model) applyEvent(ev tracking.Event) tea.Cmd {
	switch e := ev.(type) {
	case tracking.DisplayText:
		if e.Surface == tracking.SurfaceDetail {
			m.detailText = e.Text
			m.detailView.SetContent(e.Text)
			m.detailView.GotoTop()
		} else {
			m.resultText = e.Text
			m.resultView.SetContent(e.Text)
			m.resultView.GotoTop()
		}
	case tracking.ErrorEvent:
		m.errors = append(m.errors, e.Message())
	case tracking.LoadingState:
		wasLoading := m.loading
		m.loading = e.Visible
		if m.loading && !wasLoading {
			return m.spinner.Tick
		}
	case tracking.HistoryUpdated:
		m.history = e.Entries
		m.selected = clamp(m.selected, 0, len(m.history)-1)
	case tracking.InputCleared:
		m.input.Reset()
	}
	return nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Error alerts: acknowledge each before anything else
	if len(m.errors) > 0 {
		if key.Matches(msg, m.keys.Dismiss) {
			m.errors = m.errors[1:]
		}
		return m, nil
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Tab):
		m.toggleFocus()
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, m.loadHistoryCmd()
	case key.Matches(msg, m.keys.Clear):
		return m, m.clearHistoryCmd()
	case key.Matches(msg, m.keys.PageUp):
		m.detailView.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.detailView.HalfViewDown()
		return m, nil
	}

	if m.focus == focusInput {
		return m.handleInputKey(msg)
	}
	return m.handleHistoryKey(msg)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Submit) {
		return m, m.trackCmd(m.input.Value())
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.QuitLetter):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.spinner.Style = m.theme.Styles().Spinner
		return m, saveThemeCmd(m.prefsPath, m.theme.Name)
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.history)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = max(len(m.history)-1, 0)
	case key.Matches(msg, m.keys.Open):
		if entry, ok := m.selectedEntry(); ok {
			return m, m.detailCmd(entry)
		}
	}
	return m, nil
}

func (m *Model) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusHistory
		m.input.Blur()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

func (m Model) selectedEntry() (tracking.HistoryEntry, bool) {
	if m.selected < 0 || m.selected >= len(m.history) {
		return tracking.HistoryEntry{}, false
	}
	return m.history[m.selected], true
}

// Messages

type eventMsg struct {
	event tracking.Event
}

type eventsClosedMsg struct{}

type prefsSavedMsg struct {
	theme string
	err   error
}

// Commands

// waitForEvent blocks on the controller's event channel. It is re-armed
// after every event so the channel is drained one message at a time.
func waitForEvent(events <-chan tracking.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg{event: ev}
	}
}

func (m Model) trackCmd(number string) tea.Cmd {
	ctrl := m.ctrl
	if ctrl == nil {
		return nil
	}
	return func() tea.Msg {
		// Failures arrive as ErrorEvents.
		_ = ctrl.TrackPackage(number)
		return nil
	}
}

func (m Model) detailCmd(entry tracking.HistoryEntry) tea.Cmd {
	ctrl := m.ctrl
	if ctrl == nil {
		return nil
	}
	return func() tea.Msg {
		_ = ctrl.ViewHistoryDetail(entry)
		return nil
	}
}

func (m Model) loadHistoryCmd() tea.Cmd {
	ctrl := m.ctrl
	if ctrl == nil {
		return nil
	}
	return func() tea.Msg {
		ctrl.LoadHistory()
		return nil
	}
}

func (m Model) clearHistoryCmd() tea.Cmd {
	ctrl := m.ctrl
	if ctrl == nil {
		return nil
	}
	return func() tea.Msg {
		ctrl.ClearHistory()
		return nil
	}
}

func saveThemeCmd(path, name string) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		return prefsSavedMsg{theme: name, err: prefs.Save(path, prefs.Prefs{Theme: name})}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		progOpts = append(progOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, progOpts...)
	_, err := p.Run()
	return err
}
