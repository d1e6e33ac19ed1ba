package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "studytrack/internal/modules/session/dto"
	streakdto "studytrack/internal/modules/streak/dto"
	apperrors "studytrack/internal/platform/errors"
	"studytrack/internal/ui/components"
	"studytrack/internal/ui/theme"
)

const (
	tickInterval     = time.Second
	noticeLifetime   = 3 * time.Second
	defaultDailyGoal = 60
)

// ─── ports ───────────────────────────────────────────────────────────────────

type sessionPort interface {
	Start(ctx context.Context) (sessiondto.StartOutput, error)
	GetActive(ctx context.Context) (sessiondto.ActiveSessionOutput, error)
	TogglePause(ctx context.Context) (sessiondto.ActiveSessionOutput, error)
	Discard(ctx context.Context) error
	BeginStop(ctx context.Context, userID string) (sessiondto.StopOutput, error)
	CommitPending(ctx context.Context) (sessiondto.StopOutput, error)
	Retry(ctx context.Context) (sessiondto.StopOutput, error)
	Dismiss(ctx context.Context) error
	Reconcile(ctx context.Context, userID string) (sessiondto.RollupsOutput, error)
}

type streakPort interface {
	Get(ctx context.Context, userID string) (streakdto.StreakOutput, error)
}

// ─── async messages ───────────────────────────────────────────────────────────

type tickMsg time.Time

// activeLoadedMsg carries the generation it was requested in; results from
// before a stop, start or discard are dropped.
type activeLoadedMsg struct {
	gen    int
	active sessiondto.ActiveSessionOutput
	err    error
}

type startedMsg struct{ err error }

type stopBegunMsg struct {
	out sessiondto.StopOutput
	err error
}

type saveSettledMsg struct {
	out sessiondto.StopOutput
	err error
}

type dismissedMsg struct{ err error }

type discardedMsg struct{ err error }

type overviewMsg struct {
	rollups sessiondto.RollupsOutput
	streak  streakdto.StreakOutput
	err     error
}

type clearNoticeMsg struct{ id int }

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Toggle  key.Binding
	Pause   key.Binding
	Retry   key.Binding
	Dismiss key.Binding
	Discard key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/stop")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause/resume")),
		Retry:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry save")),
		Dismiss: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dismiss save")),
		Discard: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "discard")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Pause, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Pause, k.Discard},
		{k.Retry, k.Dismiss},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the study timer. The displayed time is always recomputed from the
// stored active session; the model keeps no running counter of its own.
type Model struct {
	session   sessionPort
	streaks   streakPort
	userID    string
	email     string
	dailyGoal int

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	goal    components.GoalBar

	active    sessiondto.ActiveSessionOutput
	hasActive bool
	activeGen int
	saving    bool
	failure   *sessiondto.StopOutput
	rollups   sessiondto.RollupsOutput
	streak    streakdto.StreakOutput

	notice   string
	noticeID int
	status   string
	width    int
}

func NewModel(session sessionPort, streaks streakPort, userID, email string, dailyGoal int) Model {
	if dailyGoal <= 0 {
		dailyGoal = defaultDailyGoal
	}
	return Model{
		session:   session,
		streaks:   streaks,
		userID:    userID,
		email:     email,
		dailyGoal: dailyGoal,
		keys:      defaultKeys(),
		help:      help.New(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(theme.Hot)),
		goal:      components.NewGoalBar(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadActiveCmd(), m.overviewCmd(), tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.goal.SetWidth(min(msg.Width-20, 48))
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.loadActiveCmd(), tickCmd())

	case activeLoadedMsg:
		if msg.gen != m.activeGen {
			return m, nil
		}
		if msg.err != nil {
			if !errors.Is(msg.err, apperrors.ErrNoActiveSession) {
				m.status = "active session: " + msg.err.Error()
			}
			m.hasActive = false
			m.active = sessiondto.ActiveSessionOutput{}
			return m, nil
		}
		m.hasActive = true
		m.active = msg.active
		return m, nil

	case startedMsg:
		if msg.err != nil {
			m.status = "start: " + msg.err.Error()
			return m, nil
		}
		m.status = ""
		m.activeGen++
		return m, m.loadActiveCmd()

	case stopBegunMsg:
		return m.handleStopBegun(msg)

	case saveSettledMsg:
		return m.handleSaveSettled(msg)

	case dismissedMsg:
		if msg.err != nil {
			m.status = "dismiss: " + msg.err.Error()
			return m, nil
		}
		m.failure = nil
		return m.showNotice("Session discarded.")

	case discardedMsg:
		if msg.err != nil {
			m.status = "discard: " + msg.err.Error()
			return m, nil
		}
		m.activeGen++
		m.hasActive = false
		m.active = sessiondto.ActiveSessionOutput{}
		return m.showNotice("Timer discarded.")

	case overviewMsg:
		if msg.err != nil {
			m.status = "stats: " + msg.err.Error()
			return m, nil
		}
		m.rollups = msg.rollups
		m.streak = msg.streak
		return m, nil

	case clearNoticeMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}
		return m, nil

	case spinner.TickMsg:
		if !m.saving {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	// Stop, retry and dismiss stay disabled while a write is in flight.
	if m.saving {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Toggle):
		if m.hasActive {
			m.activeGen++
			return m, m.beginStopCmd()
		}
		return m, m.startCmd()
	case key.Matches(msg, m.keys.Pause):
		if m.hasActive {
			return m, m.togglePauseCmd()
		}
	case key.Matches(msg, m.keys.Discard):
		if m.hasActive {
			m.activeGen++
			return m, m.discardCmd()
		}
	case key.Matches(msg, m.keys.Retry):
		if m.failure != nil {
			m.saving = true
			m.status = ""
			return m, tea.Batch(m.retryCmd(), m.spinner.Tick)
		}
	case key.Matches(msg, m.keys.Dismiss):
		if m.failure != nil {
			return m, m.dismissCmd()
		}
	}
	return m, nil
}

func (m Model) handleStopBegun(msg stopBegunMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = "stop: " + msg.err.Error()
		return m, nil
	}
	m.activeGen++
	m.hasActive = false
	m.active = sessiondto.ActiveSessionOutput{}
	switch msg.out.Outcome {
	case sessiondto.OutcomeTooShort:
		return m.showNotice(msg.out.Message)
	case sessiondto.OutcomeSaving:
		m.saving = true
		m.status = ""
		return m, tea.Batch(m.commitCmd(), m.spinner.Tick)
	}
	return m, nil
}

func (m Model) handleSaveSettled(msg saveSettledMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	if msg.err != nil {
		m.status = "save: " + msg.err.Error()
		return m, nil
	}
	m.rollups = msg.out.Rollups
	if msg.out.Outcome == sessiondto.OutcomeFailed {
		out := msg.out
		m.failure = &out
		return m, nil
	}
	m.failure = nil
	if msg.out.StreakWarning == "" {
		m.streak.Current = msg.out.CurrentStreak
		m.streak.Longest = msg.out.LongestStreak
	} else {
		m.status = msg.out.StreakWarning
	}
	return m.showNotice(msg.out.Message)
}

// showNotice displays a transient message that clears itself.
func (m Model) showNotice(text string) (tea.Model, tea.Cmd) {
	m.noticeID++
	m.notice = text
	id := m.noticeID
	return m, tea.Tick(noticeLifetime, func(time.Time) tea.Msg {
		return clearNoticeMsg{id: id}
	})
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	var b strings.Builder
	header := theme.Title.Render("studytrack")
	if m.email != "" {
		header += theme.Muted.Render("  " + m.email)
	}
	b.WriteString(header + "\n\n")
	b.WriteString(m.renderTimer() + "\n\n")

	todayMinutes := m.rollups.TodayMinutes
	b.WriteString("Daily goal  " + m.goal.View(todayMinutes, m.dailyGoal) + "\n")
	b.WriteString(fmt.Sprintf("Today %s   This week %s   Streak %s\n",
		theme.Hot.Render(fmt.Sprintf("%d min", todayMinutes)),
		theme.Hot.Render(fmt.Sprintf("%d sessions", m.rollups.WeeklyCount)),
		theme.Hot.Render(fmt.Sprintf("🔥 %d", m.streak.Current))+theme.Muted.Render(fmt.Sprintf(" (best %d)", m.streak.Longest)),
	))

	if line := m.renderSaveState(); line != "" {
		b.WriteString("\n" + line + "\n")
	}
	if m.notice != "" {
		b.WriteString("\n" + theme.Success.Render(m.notice) + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + theme.Warning.Render(m.status) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return theme.App.Render(b.String())
}

func (m Model) renderTimer() string {
	card := theme.Card
	label := theme.Muted.Render("not running")
	if m.hasActive {
		card = theme.CardRunning
		label = theme.Success.Render("● studying")
		if m.active.Paused {
			card = theme.CardPaused
			label = theme.Warning.Render("❚❚ paused")
		}
		if m.active.GoalMinutes != nil {
			label += theme.Muted.Render(fmt.Sprintf("  goal %d min", *m.active.GoalMinutes))
		}
	}
	clock := theme.Clock.Render(components.FormatElapsed(m.active.ElapsedSeconds))
	return card.Render(lipgloss.JoinVertical(lipgloss.Center, clock, label))
}

func (m Model) renderSaveState() string {
	switch {
	case m.saving:
		return m.spinner.View() + " Saving session…"
	case m.failure != nil:
		return theme.Danger.Render(m.failure.Message) + "\n" +
			theme.Muted.Render(fmt.Sprintf("%d min session kept.  r: retry  d: dismiss", m.failure.DurationMinutes))
	}
	return ""
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadActiveCmd() tea.Cmd {
	gen := m.activeGen
	return func() tea.Msg {
		active, err := m.session.GetActive(context.Background())
		return activeLoadedMsg{gen: gen, active: active, err: err}
	}
}

func (m Model) startCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := m.session.Start(context.Background())
		return startedMsg{err: err}
	}
}

func (m Model) togglePauseCmd() tea.Cmd {
	gen := m.activeGen
	return func() tea.Msg {
		active, err := m.session.TogglePause(context.Background())
		return activeLoadedMsg{gen: gen, active: active, err: err}
	}
}

func (m Model) discardCmd() tea.Cmd {
	return func() tea.Msg {
		return discardedMsg{err: m.session.Discard(context.Background())}
	}
}

func (m Model) beginStopCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.BeginStop(context.Background(), m.userID)
		return stopBegunMsg{out: out, err: err}
	}
}

func (m Model) commitCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.CommitPending(context.Background())
		return saveSettledMsg{out: out, err: err}
	}
}

func (m Model) retryCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Retry(context.Background())
		return saveSettledMsg{out: out, err: err}
	}
}

func (m Model) dismissCmd() tea.Cmd {
	return func() tea.Msg {
		return dismissedMsg{err: m.session.Dismiss(context.Background())}
	}
}

func (m Model) overviewCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		rollups, err := m.session.Reconcile(ctx, m.userID)
		if err != nil {
			return overviewMsg{err: err}
		}
		streak, err := m.streaks.Get(ctx, m.userID)
		return overviewMsg{rollups: rollups, streak: streak, err: err}
	}
}
