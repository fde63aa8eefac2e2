package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	alarmdto "holoalarm/internal/modules/alarm/dto"
	wakedto "holoalarm/internal/modules/wake/dto"
	"holoalarm/internal/ui/components"
	"holoalarm/internal/ui/theme"
)

// ─── messages ────────────────────────────────────────────────────────────────

type AddAlarmMsg struct {
	Time  string
	Label string
}

type DeleteAlarmMsg struct{ ID string }

type ToggleAlarmMsg struct{ ID string }

type OpenSettingsMsg struct{}

// ─── list item ───────────────────────────────────────────────────────────────

type alarmItem struct {
	alarm alarmdto.AlarmOutput
	now   time.Time
}

func (i alarmItem) Title() string {
	state := theme.Good.Render("● ON ")
	if !i.alarm.Enabled {
		state = theme.Muted.Render("○ OFF")
	}
	return fmt.Sprintf("%s  %s  %s", i.alarm.Time, state, i.alarm.Label)
}

func (i alarmItem) Description() string {
	parts := []string{}
	if len(i.alarm.Repeat) > 0 {
		parts = append(parts, strings.Join(i.alarm.Repeat, " "))
	}
	if i.alarm.Enabled && !i.alarm.NextRing.IsZero() {
		parts = append(parts, "rings in "+until(i.now, i.alarm.NextRing))
	}
	if len(parts) == 0 {
		return "standby"
	}
	return strings.Join(parts, "  ·  ")
}

func (i alarmItem) FilterValue() string { return i.alarm.Label }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	list   list.Model
	snap   wakedto.Snapshot
	form   addForm
	width  int
	height int
}

func New() Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Cyan).BorderForeground(theme.Cyan)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Glow).BorderForeground(theme.Cyan)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Scheduled Wakeups"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("alarm", "alarms")

	return Model{list: l, form: newAddForm()}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if m.form.open {
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(msg)
			m.resize()
			return m, cmd
		}
		switch msg.String() {
		case "a", "n":
			cmd := m.form.Open()
			m.resize()
			return m, cmd
		case "d", "x", "delete":
			if id, ok := m.SelectedID(); ok {
				return m, func() tea.Msg { return DeleteAlarmMsg{ID: id} }
			}
			return m, nil
		case " ", "t":
			if id, ok := m.SelectedID(); ok {
				return m, func() tea.Msg { return ToggleAlarmMsg{ID: id} }
			}
			return m, nil
		case "s":
			return m, func() tea.Msg { return OpenSettingsMsg{} }
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// SetSnapshot refreshes the alarm list, keeping the cursor where it was.
func (m *Model) SetSnapshot(snap wakedto.Snapshot) tea.Cmd {
	m.snap = snap
	idx := m.list.Index()
	items := make([]list.Item, len(snap.Alarms))
	for i, a := range snap.Alarms {
		items[i] = alarmItem{alarm: a, now: snap.Now}
	}
	cmd := m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
	return cmd
}

// Editing reports whether the add form owns the keyboard.
func (m Model) Editing() bool { return m.form.open }

func (m Model) SelectedID() (string, bool) {
	if item, ok := m.list.SelectedItem().(alarmItem); ok {
		return item.alarm.ID, true
	}
	return "", false
}

func (m Model) View() string {
	leftW := m.width * 4 / 10
	if leftW < 26 {
		leftW = 26
	}
	rightW := m.width - leftW

	left := lipgloss.JoinVertical(lipgloss.Left,
		theme.Label.Render("NEURAL LINK ESTABLISHED"),
		"",
		theme.Title.Render(components.BigClock(m.snap.Now.Format("15:04"))),
		theme.Muted.Render(m.snap.Now.Format("Monday, 2 January  :05")),
		"",
		components.Avatar(m.snap.Profile.Name, m.snap.Profile.PhotoBase64),
		"",
		theme.Hot.Render(m.snap.Profile.Name)+"  "+theme.Muted.Render("voice "+m.snap.Profile.VoiceName),
	)
	leftPane := lipgloss.NewStyle().Width(leftW).Height(m.height).Padding(1, 2).Render(left)

	var right string
	switch {
	case m.form.open:
		right = lipgloss.JoinVertical(lipgloss.Left, m.list.View(), "", m.form.View())
	case len(m.snap.Alarms) == 0:
		right = theme.Title.Render("Scheduled Wakeups") + "\n\n" +
			theme.Muted.Render("No alarms yet. Press a to schedule one.")
	default:
		right = m.list.View()
	}
	rightPane := theme.Pane.Width(rightW - 4).Height(m.height - 2).Render(right)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	leftW := m.width * 4 / 10
	if leftW < 26 {
		leftW = 26
	}
	listH := m.height - 4
	if m.form.open {
		listH -= 6
	}
	if listH < 3 {
		listH = 3
	}
	m.list.SetSize(m.width-leftW-6, listH)
}

func until(now, next time.Time) string {
	d := next.Sub(now).Round(time.Minute)
	if d < time.Minute {
		return "<1m"
	}
	h := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh %02dm", h, mins)
}

// ─── add form ────────────────────────────────────────────────────────────────

type addForm struct {
	open  bool
	focus int
	time  textinput.Model
	label textinput.Model
}

func newAddForm() addForm {
	t := textinput.New()
	t.Placeholder = "07:30"
	t.CharLimit = 5
	t.Prompt = "time  "
	l := textinput.New()
	l.Placeholder = "Alarm"
	l.CharLimit = 64
	l.Prompt = "label "
	return addForm{time: t, label: l}
}

func (f *addForm) Open() tea.Cmd {
	f.open = true
	f.focus = 0
	f.time.SetValue("")
	f.label.SetValue("")
	f.label.Blur()
	return f.time.Focus()
}

func (f addForm) Update(msg tea.KeyMsg) (addForm, tea.Cmd) {
	switch msg.String() {
	case "esc":
		f.open = false
		f.time.Blur()
		f.label.Blur()
		return f, nil
	case "tab", "shift+tab", "up", "down":
		f.focus = 1 - f.focus
		var cmd tea.Cmd
		if f.focus == 0 {
			f.label.Blur()
			cmd = f.time.Focus()
		} else {
			f.time.Blur()
			cmd = f.label.Focus()
		}
		return f, cmd
	case "enter":
		if f.focus == 0 {
			f.focus = 1
			f.time.Blur()
			cmd := f.label.Focus()
			return f, cmd
		}
		out := AddAlarmMsg{Time: strings.TrimSpace(f.time.Value()), Label: strings.TrimSpace(f.label.Value())}
		f.open = false
		f.time.Blur()
		f.label.Blur()
		return f, func() tea.Msg { return out }
	}
	var cmd tea.Cmd
	if f.focus == 0 {
		f.time, cmd = f.time.Update(msg)
	} else {
		f.label, cmd = f.label.Update(msg)
	}
	return f, cmd
}

func (f addForm) View() string {
	return theme.Label.Render("NEW WAKEUP") + "\n" +
		f.time.View() + "\n" +
		f.label.View() + "\n" +
		theme.Muted.Render("enter: next/confirm  tab: switch  esc: cancel")
}
