package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	alarmdto "holoalarm/internal/modules/alarm/dto"
	profiledto "holoalarm/internal/modules/profile/dto"
	wakedto "holoalarm/internal/modules/wake/dto"
	"holoalarm/internal/ui/components"
	"holoalarm/internal/ui/theme"
	alarmingview "holoalarm/internal/ui/views/alarming"
	dashboardview "holoalarm/internal/ui/views/dashboard"
	settingsview "holoalarm/internal/ui/views/settings"
)

// ─── ports ───────────────────────────────────────────────────────────────────

// WakePort is everything the TUI asks of the application. The view-state
// calls are cheap and run inline; the rest run as tea.Cmds.
type WakePort interface {
	Snapshot(ctx context.Context) (wakedto.Snapshot, error)
	Tick(ctx context.Context, now time.Time) (wakedto.TickOutput, error)
	AddAlarm(ctx context.Context, hm, label string) (alarmdto.AlarmOutput, error)
	DeleteAlarm(ctx context.Context, id string) (alarmdto.DeleteOutput, error)
	ToggleAlarm(ctx context.Context, id string) (alarmdto.ToggleOutput, error)
	SaveSettings(ctx context.Context, name string, photoBase64 *string, voice string) (profiledto.ProfileOutput, error)
	StylizePhoto(ctx context.Context) (profiledto.StylizeOutput, error)
	StylizeDraft(ctx context.Context, photoBase64 string) (profiledto.DraftOutput, error)
	Announce(ctx context.Context, alarm alarmdto.AlarmOutput, profile profiledto.ProfileOutput) (wakedto.AnnounceOutput, error)
	PreviewVoice(ctx context.Context, voice string) (wakedto.AnnounceOutput, error)
	OpenSettings()
	CloseSettings()
	Dismiss()
}

type VoicePort interface {
	Voices() []profiledto.VoiceOutput
}

// ─── async messages ───────────────────────────────────────────────────────────

type tickMsg time.Time

type tickedMsg struct {
	out  wakedto.TickOutput
	snap wakedto.Snapshot
	err  error
}

type snapshotMsg struct {
	snap wakedto.Snapshot
	err  error
}

type actionDoneMsg struct {
	status string
	err    error
}

type announcedMsg struct {
	alarmID string
	out     wakedto.AnnounceOutput
	err     error
}

type previewedMsg struct {
	out wakedto.AnnounceOutput
	err error
}

type stylizedMsg struct {
	out profiledto.StylizeOutput
	err error
}

type draftStylizedMsg struct {
	out profiledto.DraftOutput
	err error
}

type settingsSavedMsg struct {
	profile profiledto.ProfileOutput
	err     error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Add      key.Binding
	Delete   key.Binding
	Toggle   key.Binding
	Settings key.Binding
	Dismiss  key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Add:      key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add alarm")),
		Delete:   key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "t"), key.WithHelp("space", "toggle")),
		Settings: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
		Dismiss:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "dismiss alarm")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Settings, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Delete, k.Toggle},
		{k.Settings, k.Dismiss},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It polls the controller once per
// tick, routes input to the view the controller reports, and runs every
// slow call as a command so the clock never stalls.
type Model struct {
	port      WakePort
	interval  time.Duration
	aiTimeout time.Duration

	dashView dashboardview.Model
	setView  settingsview.Model
	alarm    alarmingview.Model

	snap     wakedto.Snapshot
	loaded   bool
	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	status   string
	width    int
	height   int
}

func NewModel(port WakePort, voices VoicePort, interval, aiTimeout time.Duration) Model {
	if interval <= 0 {
		interval = time.Second
	}
	var voiceList []profiledto.VoiceOutput
	if voices != nil {
		voiceList = voices.Voices()
	}
	return Model{
		port:      port,
		interval:  interval,
		aiTimeout: aiTimeout,
		dashView:  dashboardview.New(),
		setView:   settingsview.New(voiceList),
		alarm:     alarmingview.New(),
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "systems online",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSnapshotCmd(), m.scheduleTick())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.scheduleTick(), m.tickCmd(time.Time(msg)))

	case tickedMsg:
		var cmd tea.Cmd
		if msg.err != nil {
			m.status = "tick: " + msg.err.Error()
		} else {
			cmd = m.applySnapshot(msg.snap)
		}
		if !msg.out.Triggered {
			return m, cmd
		}
		if msg.err != nil {
			// The controller is already alarming; mirror it until the next snapshot.
			active := msg.out.Alarm
			m.snap.View = wakedto.ViewAlarming
			m.snap.Active = &active
		}
		m.showHelp = false
		m.status = fmt.Sprintf("ALARM %s %s", msg.out.Alarm.Time, msg.out.Alarm.Label)
		show := m.alarm.Show(msg.out.Alarm, m.snap.Profile, msg.out.Message)
		return m, tea.Batch(cmd, show, m.announceCmd(msg.out.Alarm, m.snap.Profile))

	case snapshotMsg:
		if msg.err != nil {
			m.status = "load: " + msg.err.Error()
			return m, nil
		}
		cmd := m.applySnapshot(msg.snap)
		return m, cmd

	case actionDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = msg.status
		}
		return m, m.loadSnapshotCmd()

	case announcedMsg:
		detail := ""
		if msg.err == nil {
			detail = fmt.Sprintf("%.1fs", msg.out.Seconds)
			if !msg.out.Played {
				detail += " saved to " + msg.out.AudioPath
			}
		} else {
			m.status = "voice: " + msg.err.Error()
		}
		if m.snap.Active != nil && m.snap.Active.ID == msg.alarmID {
			m.alarm.SpeechFinished(msg.err, detail)
		}
		return m, nil

	case previewedMsg:
		if msg.err != nil {
			m.status = "voice preview: " + msg.err.Error()
		} else {
			m.status = "voice preview: " + msg.out.Message
		}
		return m, nil

	case stylizedMsg:
		switch {
		case msg.err != nil:
			m.status = "hologram: " + msg.err.Error()
		case !msg.out.Stylized:
			m.status = "hologram: " + msg.out.Reason
		default:
			m.status = "hologram projected"
		}
		return m, m.loadSnapshotCmd()

	case draftStylizedMsg:
		m.setView.SetBusy(false)
		switch {
		case msg.err != nil:
			m.setView.SetError(msg.err)
			m.status = "hologram: " + msg.err.Error()
		case !msg.out.Stylized:
			m.status = "hologram: " + msg.out.Reason
		default:
			photo := msg.out.PhotoBase64
			m.setView.SetPhoto(&photo)
			m.status = "hologram projected; enter to sync"
		}
		return m, nil

	case settingsSavedMsg:
		if msg.err != nil {
			m.setView.SetError(msg.err)
			m.status = "profile: " + msg.err.Error()
			return m, nil
		}
		m.status = "profile synced: " + msg.profile.Name
		return m, m.loadSnapshotCmd()

	case components.PaletteSubmitMsg:
		return m.executePalette(msg)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case dashboardview.AddAlarmMsg:
		return m, m.addAlarmCmd(msg.Time, msg.Label)
	case dashboardview.DeleteAlarmMsg:
		return m, m.deleteAlarmCmd(msg.ID)
	case dashboardview.ToggleAlarmMsg:
		return m, m.toggleAlarmCmd(msg.ID)
	case dashboardview.OpenSettingsMsg:
		return m.openSettings()

	case settingsview.BackMsg:
		m.port.CloseSettings()
		return m, m.loadSnapshotCmd()
	case settingsview.SaveMsg:
		return m, m.saveSettingsCmd(msg)
	case settingsview.StylizeMsg:
		m.status = "hologram: processing"
		busy := m.setView.SetBusy(true)
		return m, tea.Batch(busy, m.stylizeDraftCmd(msg.PhotoBase64))
	case settingsview.PreviewVoiceMsg:
		m.status = "voice preview: " + msg.Voice
		return m, m.previewCmd(msg.Voice)

	case alarmingview.DismissMsg:
		return m.dismiss()

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.view() == wakedto.ViewMain && !m.dashView.Editing() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			case ":":
				cmd := m.palette.Open()
				return m, cmd
			}
		}
	}

	return m.routeToView(msg)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case !m.loaded:
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("establishing neural link…"))
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) activeView() string {
	switch m.view() {
	case wakedto.ViewSettings:
		return m.setView.View()
	case wakedto.ViewAlarming:
		return m.alarm.View()
	}
	return m.dashView.View()
}

func (m Model) renderHeader() string {
	title := theme.Title.Render("HOLO") + theme.Hot.Render("ALARM")
	right := theme.Muted.Render(strings.ToLower(m.view()))
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	bar := " " + title + strings.Repeat(" ", gap) + right + " "
	return lipgloss.NewStyle().Background(theme.Panel).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.snap.Active != nil {
		left = theme.Warn.Render("● "+m.snap.Active.Label) + "  " + left
	}
	var hints string
	switch m.view() {
	case wakedto.ViewAlarming:
		hints = "enter:dismiss"
	case wakedto.ViewSettings:
		hints = "enter:save  esc:back"
	default:
		hints = "a:add  space:toggle  d:delete  s:settings  ?:help  q:quit"
	}
	right := theme.Muted.Render(hints)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Panel).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

// executePalette runs a command the palette has already validated.
func (m Model) executePalette(msg components.PaletteSubmitMsg) (tea.Model, tea.Cmd) {
	args := msg.Args
	selected, _ := m.dashView.SelectedID()

	switch msg.Command {
	case "alarm:add":
		return m, m.addAlarmCmd(args[0], strings.Join(args[1:], " "))

	case "alarm:delete":
		if selected == "" {
			m.status = "no alarm selected"
			return m, nil
		}
		return m, m.deleteAlarmCmd(selected)

	case "alarm:toggle":
		if selected == "" {
			m.status = "no alarm selected"
			return m, nil
		}
		return m, m.toggleAlarmCmd(selected)

	case "settings":
		return m.openSettings()

	case "dismiss":
		return m.dismiss()

	case "voice:preview":
		voice := m.snap.Profile.VoiceName
		if len(args) > 0 {
			voice = args[0]
		}
		return m, m.previewCmd(voice)

	case "avatar:stylize":
		if !m.snap.Profile.HasPhoto() {
			m.status = "hologram: load a photo in settings first"
			return m, nil
		}
		m.status = "hologram: processing"
		return m, m.stylizeCmd()
	}
	m.status = "unknown command: " + msg.Command
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) view() string {
	if m.snap.View == "" {
		return wakedto.ViewMain
	}
	return m.snap.View
}

func (m Model) routeToView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view() {
	case wakedto.ViewSettings:
		m.setView, cmd = m.setView.Update(msg)
	case wakedto.ViewAlarming:
		m.alarm, cmd = m.alarm.Update(msg)
	default:
		m.dashView, cmd = m.dashView.Update(msg)
	}
	return m, cmd
}

func (m *Model) applySnapshot(snap wakedto.Snapshot) tea.Cmd {
	m.snap = snap
	m.loaded = true
	m.alarm.SetNow(snap.Now)
	return m.dashView.SetSnapshot(snap)
}

func (m Model) openSettings() (tea.Model, tea.Cmd) {
	m.port.OpenSettings()
	if m.view() == wakedto.ViewMain {
		m.snap.View = wakedto.ViewSettings
	}
	load := m.setView.Load(m.snap.Profile)
	return m, tea.Batch(load, m.loadSnapshotCmd())
}

func (m Model) dismiss() (tea.Model, tea.Cmd) {
	m.port.Dismiss()
	m.snap.View = wakedto.ViewMain
	m.snap.Active = nil
	m.status = "alarm dismissed"
	return m, m.loadSnapshotCmd()
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.dashView, _ = m.dashView.Update(sz)
	m.setView, _ = m.setView.Update(sz)
	m.alarm, _ = m.alarm.Update(sz)
}

func (m Model) aiContext() (context.Context, context.CancelFunc) {
	if m.aiTimeout > 0 {
		return context.WithTimeout(context.Background(), m.aiTimeout)
	}
	return context.WithCancel(context.Background())
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) tickCmd(now time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		out, err := m.port.Tick(ctx, now)
		if err != nil {
			return tickedMsg{err: err}
		}
		snap, err := m.port.Snapshot(ctx)
		return tickedMsg{out: out, snap: snap, err: err}
	}
}

func (m Model) loadSnapshotCmd() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.port.Snapshot(context.Background())
		return snapshotMsg{snap: snap, err: err}
	}
}

func (m Model) addAlarmCmd(hm, label string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.AddAlarm(context.Background(), hm, label)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: fmt.Sprintf("alarm set for %s (%s)", out.Time, out.Label)}
	}
}

func (m Model) deleteAlarmCmd(id string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.DeleteAlarm(context.Background(), id)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		if !out.Removed {
			return actionDoneMsg{status: "alarm already gone"}
		}
		return actionDoneMsg{status: "alarm deleted"}
	}
}

func (m Model) toggleAlarmCmd(id string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.ToggleAlarm(context.Background(), id)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		if !out.Found {
			return actionDoneMsg{status: "alarm already gone"}
		}
		state := "disabled"
		if out.Alarm.Enabled {
			state = "enabled"
		}
		return actionDoneMsg{status: fmt.Sprintf("alarm %s %s", out.Alarm.Time, state)}
	}
}

func (m Model) saveSettingsCmd(msg settingsview.SaveMsg) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.SaveSettings(context.Background(), msg.Name, msg.PhotoBase64, msg.VoiceName)
		return settingsSavedMsg{profile: out, err: err}
	}
}

func (m Model) stylizeCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.aiContext()
		defer cancel()
		out, err := m.port.StylizePhoto(ctx)
		return stylizedMsg{out: out, err: err}
	}
}

func (m Model) stylizeDraftCmd(photoBase64 string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.aiContext()
		defer cancel()
		out, err := m.port.StylizeDraft(ctx, photoBase64)
		return draftStylizedMsg{out: out, err: err}
	}
}

func (m Model) announceCmd(alarm alarmdto.AlarmOutput, profile profiledto.ProfileOutput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.aiContext()
		defer cancel()
		out, err := m.port.Announce(ctx, alarm, profile)
		return announcedMsg{alarmID: alarm.ID, out: out, err: err}
	}
}

func (m Model) previewCmd(voice string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.aiContext()
		defer cancel()
		out, err := m.port.PreviewVoice(ctx, voice)
		return previewedMsg{out: out, err: err}
	}
}
