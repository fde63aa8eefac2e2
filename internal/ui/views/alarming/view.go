package alarming

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	alarmdto "holoalarm/internal/modules/alarm/dto"
	profiledto "holoalarm/internal/modules/profile/dto"
	"holoalarm/internal/ui/components"
	"holoalarm/internal/ui/theme"
)

type DismissMsg struct{}

// Speech states shown under the overlay.
const (
	SpeechIdle = iota
	SpeechPending
	SpeechDone
	SpeechFailed
)

type Model struct {
	alarm   alarmdto.AlarmOutput
	profile profiledto.ProfileOutput
	message string
	now     time.Time
	speech  int
	detail  string
	spinner spinner.Model
	width   int
	height  int
}

func New() Model {
	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = lipgloss.NewStyle().Foreground(theme.Cyan)
	return Model{spinner: sp}
}

// Show arms the overlay for a freshly triggered alarm.
func (m *Model) Show(alarm alarmdto.AlarmOutput, profile profiledto.ProfileOutput, message string) tea.Cmd {
	m.alarm = alarm
	m.profile = profile
	m.message = message
	m.speech = SpeechPending
	m.detail = ""
	return m.spinner.Tick
}

func (m *Model) SetNow(now time.Time) { m.now = now }

// SpeechFinished records the outcome of the announcement.
func (m *Model) SpeechFinished(err error, detail string) {
	if err != nil {
		m.speech = SpeechFailed
		m.detail = err.Error()
		return
	}
	m.speech = SpeechDone
	m.detail = detail
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case spinner.TickMsg:
		if m.speech != SpeechPending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", " ", "esc", "d":
			return m, func() tea.Msg { return DismissMsg{} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	pulse := theme.Warn
	if m.now.Second()%2 == 1 {
		pulse = theme.Hot
	}

	var sb strings.Builder
	sb.WriteString(pulse.Render("◢◤  WAKE PROTOCOL ENGAGED  ◢◤") + "\n\n")
	sb.WriteString(components.Avatar(m.profile.Name, m.profile.PhotoBase64) + "\n\n")
	sb.WriteString(theme.Title.Render(components.BigClock(m.alarm.Time)) + "\n\n")
	sb.WriteString(theme.Hot.Render(strings.ToUpper(m.alarm.Label)) + "\n")
	sb.WriteString(theme.Muted.Render("Good morning, "+m.profile.Name) + "\n\n")

	wrap := m.width - 12
	if wrap < 30 {
		wrap = 30
	}
	sb.WriteString(lipgloss.NewStyle().Width(wrap).Foreground(theme.Glow).Render("“"+m.message+"”") + "\n\n")

	switch m.speech {
	case SpeechPending:
		sb.WriteString(m.spinner.View() + theme.Muted.Render(" synthesizing voice ("+m.profile.VoiceName+")") + "\n")
	case SpeechDone:
		sb.WriteString(theme.Good.Render("voice transmitted") + " " + theme.Muted.Render(m.detail) + "\n")
	case SpeechFailed:
		sb.WriteString(theme.Warn.Render("voice offline: ") + theme.Muted.Render(m.detail) + "\n")
	}
	sb.WriteString("\n" + theme.Title.Render("[ enter ] DISMISS"))

	box := theme.PaneAlert.Padding(1, 4).Render(lipgloss.NewStyle().Align(lipgloss.Center).Render(sb.String()))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
