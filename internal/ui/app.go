package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"stackwatch/internal/config"
	"stackwatch/internal/dockerd"
	"stackwatch/internal/prefs"
	"stackwatch/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewTable View = iota
	ViewLogs
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Daemon    dockerd.Daemon
	Store     *state.Store
	Config    config.Config
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
	Debug     bool
	Version   string

	// RefreshNow runs one poll cycle out of band, so a restart or stop
	// shows up without waiting for the next tick. Optional.
	RefreshNow func()
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	daemon     dockerd.Daemon
	store      *state.Store
	cfg        config.Config
	prefsPath  string
	pollTick   time.Duration
	debug      bool
	version    string
	refreshNow func()

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool

	// Data state
	view    state.View
	diff    state.Result
	hadPrev bool // false until a second snapshot arrives; suppresses the first-frame flash

	// Table state
	rows        []dockerd.Container // flattened display order
	selectedRow int
	selectedID  string
	scroll      int // first visible table line

	// Log view state
	session      *logSession
	pendingLogID string // container whose stream is being opened
	attachSeq    int    // bumped per attach; stale attach results get cancelled
	logViewport  viewport.Model
	logFollow    bool
	search       searchState

	// Overlays
	showHelp bool
	confirm  *pendingAction
	notice   string // transient action result shown in the header
	noticeAt time.Time
}

// noticeTTL is how long a transient notice survives poll refreshes.
const noticeTTL = 4 * time.Second

func (m *Model) setNotice(text string) {
	m.notice = text
	m.noticeAt = time.Now()
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = 2 * time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Harbor"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return Model{
		ctx:         ctx,
		daemon:      opts.Daemon,
		store:       opts.Store,
		cfg:         opts.Config,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		debug:       opts.Debug,
		version:     opts.Version,
		refreshNow:  opts.RefreshNow,
		theme:       GetTheme(themeName),
		currentView: ViewTable,
		logFollow:   true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	// Fetch the snapshot immediately on start
	if m.store != nil {
		cmds = append(cmds, fetchViewCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initLogViewport()
			m.initSearchInput()
		}
		m.ready = true
		m.resizeLogViewport()
		m.ensureVisible()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case viewMsg:
		m.applyView(state.View(msg))
		return m, nil

	case logStartedMsg:
		return m.handleLogStarted(msg)

	case logStartFailedMsg:
		return m.handleLogStartFailed(msg)

	case logLinesMsg:
		return m.handleLogLines(msg)

	case logEndedMsg:
		return m.handleLogEnded(msg)

	case actionDoneMsg:
		m.setNotice(msg.describe())
		return m, m.pollNowCmd()
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.confirm != nil {
		return m.renderConfirm()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes the help overlay
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.confirm != nil {
		return m.handleConfirmKey(msg)
	}

	if m.currentView == ViewLogs && m.search.active {
		return m.handleSearchInput(msg)
	}

	// Global keys
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?", "h":
		m.showHelp = true
		return m, nil

	case "T":
		// Cycle theme and persist the choice
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		m.refreshLogContent()
		return m, nil
	}

	switch m.currentView {
	case ViewLogs:
		return m.handleLogsKey(msg)
	default:
		return m.handleTableKey(msg)
	}
}

// handleTableKey processes keyboard input for the container table.
func (m Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.moveSelection(1)
	case "k", "up":
		m.moveSelection(-1)
	case "g", "home":
		m.moveSelectionTo(0)
	case "G", "end":
		m.moveSelectionTo(len(m.rows) - 1)
	case "enter":
		return m.openLogs()
	case "r":
		if c := m.selectedContainer(); c != nil {
			m.confirm = &pendingAction{verb: actionRestart, target: *c}
		}
	case "x":
		if c := m.selectedContainer(); c != nil {
			m.confirm = &pendingAction{verb: actionStop, target: *c}
		}
	}
	return m, nil
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchViewCmd(m.store))
	}
	return m, tea.Batch(cmds...)
}

// applyView installs a fresh store view: recompute the change set against the
// previous snapshot, rebuild display rows, and reconcile the selection.
func (m *Model) applyView(v state.View) {
	if v.HasSnapshot {
		if m.view.HasSnapshot {
			prev := m.view.Snapshot
			m.diff = state.Diff(&prev, v.Snapshot)
			m.hadPrev = true
		} else {
			m.diff = state.Diff(nil, v.Snapshot)
			m.hadPrev = false
		}
	}
	m.view = v
	if m.notice != "" && time.Since(m.noticeAt) > noticeTTL {
		m.notice = ""
	}
	m.rebuildRows()
	m.resizeLogViewport() // the stale banner changes the content height

	// A container that vanished takes its log session down with it.
	if m.session != nil && m.diff.Removed.Contains(m.session.id) {
		m.closeSession()
		m.currentView = ViewTable
	}
}

// rebuildRows flattens the snapshot into display order and keeps the
// selection pinned to the same container where possible.
func (m *Model) rebuildRows() {
	m.rows = nil
	if m.view.HasSnapshot {
		m.rows = m.view.Snapshot.Flatten()
	}

	if len(m.rows) == 0 {
		m.selectedRow = 0
		m.selectedID = ""
		m.scroll = 0
		return
	}

	if m.selectedID != "" {
		for i := range m.rows {
			if m.rows[i].ID == m.selectedID {
				m.selectedRow = i
				m.ensureVisible()
				return
			}
		}
	}

	// Selected container is gone: clamp to the nearest row.
	if m.selectedRow >= len(m.rows) {
		m.selectedRow = len(m.rows) - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
	m.selectedID = m.rows[m.selectedRow].ID
	m.ensureVisible()
}

func (m *Model) moveSelection(delta int) {
	m.moveSelectionTo(m.selectedRow + delta)
}

func (m *Model) moveSelectionTo(row int) {
	if len(m.rows) == 0 {
		return
	}
	if row < 0 {
		row = 0
	}
	if row >= len(m.rows) {
		row = len(m.rows) - 1
	}
	m.selectedRow = row
	m.selectedID = m.rows[row].ID
	m.ensureVisible()
}

// selectedContainer returns the currently selected container, or nil.
func (m *Model) selectedContainer() *dockerd.Container {
	if m.selectedRow < 0 || m.selectedRow >= len(m.rows) {
		return nil
	}
	c := m.rows[m.selectedRow]
	return &c
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	if banner := m.renderStaleBanner(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}

	switch m.currentView {
	case ViewLogs:
		b.WriteString(m.renderLogs())
	default:
		b.WriteString(m.renderTable())
	}

	return b.String()
}

// contentHeight returns the rows available below the header chrome.
func (m Model) contentHeight() int {
	h := m.height - 2
	if m.view.Degraded() {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// Messages

type tickMsg time.Time

type viewMsg state.View

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchViewCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return viewMsg(store.View())
	}
}

// pollNowCmd forces a poll cycle and fetches the result, so container
// actions are reflected immediately instead of on the next tick.
func (m Model) pollNowCmd() tea.Cmd {
	if m.store == nil {
		return nil
	}
	refresh := m.refreshNow
	store := m.store
	return func() tea.Msg {
		if refresh != nil {
			refresh()
		}
		return viewMsg(store.View())
	}
}

// Run starts the Bubble Tea program and blocks until quit.
func Run(opts Options) error {
	if opts.Debug {
		f, err := tea.LogToFile("stackwatch-debug.log", "debug")
		if err == nil {
			defer f.Close()
		}
	}

	m := New(opts)
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		progOpts = append(progOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, progOpts...)
	if _, err := p.Run(); err != nil {
		// A cancelled context is a signal-driven shutdown, not a failure.
		if opts.Context != nil && opts.Context.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
