package settings

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	profiledto "holoalarm/internal/modules/profile/dto"
	"holoalarm/internal/ui/components"
	"holoalarm/internal/ui/theme"
)

// ─── messages ────────────────────────────────────────────────────────────────

// SaveMsg carries the edited profile; it replaces the stored one wholesale.
type SaveMsg struct {
	Name        string
	PhotoBase64 *string
	VoiceName   string
}

type BackMsg struct{}

// StylizeMsg asks for the form's current photo to be stylized. The result
// comes back through SetPhoto and is only stored on save.
type StylizeMsg struct{ PhotoBase64 string }

type PreviewVoiceMsg struct{ Voice string }

// ─── model ───────────────────────────────────────────────────────────────────

const (
	fieldName = iota
	fieldPhoto
	fieldVoice
	fieldCount
)

type Model struct {
	voices  []profiledto.VoiceOutput
	name    textinput.Model
	photo   textinput.Model
	current *string
	voice   string
	focus   int
	busy    bool
	spinner spinner.Model
	err     string
	width   int
	height  int
}

func New(voices []profiledto.VoiceOutput) Model {
	name := textinput.New()
	name.Placeholder = "Your Name"
	name.CharLimit = 64
	name.Prompt = ""

	photo := textinput.New()
	photo.Placeholder = "path to an image file"
	photo.CharLimit = 512
	photo.Prompt = ""

	sp := spinner.New()
	sp.Spinner = spinner.Pulse
	sp.Style = lipgloss.NewStyle().Foreground(theme.Violet)

	return Model{voices: voices, name: name, photo: photo, spinner: sp}
}

// Load resets the form to profile.
func (m *Model) Load(profile profiledto.ProfileOutput) tea.Cmd {
	m.name.SetValue(profile.Name)
	m.photo.SetValue("")
	m.current = profile.PhotoBase64
	m.voice = profile.VoiceName
	m.busy = false
	m.err = ""
	m.focus = fieldName
	m.photo.Blur()
	return m.name.Focus()
}

// SetPhoto replaces the form's photo, e.g. with a stylized one, and clears
// the typed path it was read from.
func (m *Model) SetPhoto(photoBase64 *string) {
	m.current = photoBase64
	m.photo.SetValue("")
}

// SetBusy toggles the processing indicator shown during stylization.
func (m *Model) SetBusy(busy bool) tea.Cmd {
	m.busy = busy
	if busy {
		return m.spinner.Tick
	}
	return nil
}

func (m *Model) SetError(err error) {
	m.err = ""
	if err != nil {
		m.err = err.Error()
	}
}

// HasPhoto reports whether the form holds a photo, stored or typed as a path.
func (m Model) HasPhoto() bool {
	return m.photoPath() != "" || (m.current != nil && *m.current != "")
}

// Photo returns the photo the form would save, without reading typed paths.
func (m Model) Photo() *string { return m.current }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return BackMsg{} }
		case "tab", "down":
			cmd := m.setFocus((m.focus + 1) % fieldCount)
			return m, cmd
		case "shift+tab", "up":
			cmd := m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, cmd
		case "ctrl+g":
			return m.stylize()
		case "ctrl+p":
			voice := m.voice
			return m, func() tea.Msg { return PreviewVoiceMsg{Voice: voice} }
		case "ctrl+x":
			m.current = nil
			m.photo.SetValue("")
			return m, nil
		case "enter":
			return m.submit()
		}
		if m.focus == fieldVoice {
			switch msg.String() {
			case "left", "h":
				m.voice = m.cycleVoice(-1)
			case "right", "l", " ":
				m.voice = m.cycleVoice(1)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldName:
		m.name, cmd = m.name.Update(msg)
	case fieldPhoto:
		m.photo, cmd = m.photo.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("PROFILE SETTINGS") + "\n\n")
	sb.WriteString(components.Avatar(m.name.Value(), m.current) + "\n")
	if m.HasPhoto() {
		if m.busy {
			sb.WriteString(m.spinner.View() + " " + theme.Hot.Render("Processing...") + "\n")
		} else {
			sb.WriteString(theme.Muted.Render("ctrl+g: AI hologramify  ctrl+x: remove photo") + "\n")
		}
	}
	sb.WriteString("\n")

	sb.WriteString(m.fieldLabel(fieldName, "IDENTITY") + "\n")
	sb.WriteString("  " + m.name.View() + "\n\n")
	sb.WriteString(m.fieldLabel(fieldPhoto, "LOAD PHOTO") + "\n")
	sb.WriteString("  " + m.photo.View() + "\n\n")
	sb.WriteString(m.fieldLabel(fieldVoice, "AI VOICE MODULATION") + "\n")
	sb.WriteString("  " + m.renderVoices() + "\n\n")

	if m.err != "" {
		sb.WriteString(theme.Warn.Render(m.err) + "\n\n")
	}
	sb.WriteString(theme.Muted.Render("enter: sync profile  esc: back  tab: next field  ctrl+p: preview voice"))

	w := m.width - 4
	if w < 40 {
		w = 40
	}
	return theme.PaneActive.Width(w).Render(sb.String())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) setFocus(field int) tea.Cmd {
	m.focus = field
	m.name.Blur()
	m.photo.Blur()
	switch field {
	case fieldName:
		return m.name.Focus()
	case fieldPhoto:
		return m.photo.Focus()
	}
	return nil
}

func (m Model) cycleVoice(step int) string {
	if len(m.voices) == 0 {
		return m.voice
	}
	idx := 0
	for i, v := range m.voices {
		if v.Name == m.voice {
			idx = (i + step + len(m.voices)) % len(m.voices)
			return m.voices[idx].Name
		}
	}
	return m.voices[idx].Name
}

func (m Model) fieldLabel(field int, text string) string {
	if m.focus == field {
		return theme.Title.Render("▸ " + text)
	}
	return theme.Label.Render("  " + text)
}

func (m Model) renderVoices() string {
	parts := make([]string, 0, len(m.voices))
	known := false
	for _, v := range m.voices {
		label := fmt.Sprintf("%s (%s)", v.Name, v.Description)
		if v.Name == m.voice {
			known = true
			parts = append(parts, theme.Hot.Render("["+label+"]"))
		} else {
			parts = append(parts, theme.Muted.Render(label))
		}
	}
	if !known && m.voice != "" {
		parts = append(parts, theme.Hot.Render("["+m.voice+"]"))
	}
	return strings.Join(parts, "  ")
}

func (m Model) photoPath() string {
	return strings.TrimSpace(m.photo.Value())
}

// formPhoto is the typed file when a path is present, else the held photo.
func (m Model) formPhoto() (*string, error) {
	path := m.photoPath()
	if path == "" {
		return m.current, nil
	}
	encoded, err := EncodePhotoFile(path)
	if err != nil {
		return nil, err
	}
	return &encoded, nil
}

func (m Model) stylize() (Model, tea.Cmd) {
	if m.busy || !m.HasPhoto() {
		return m, nil
	}
	photo, err := m.formPhoto()
	if err != nil {
		m.err = err.Error()
		return m, nil
	}
	m.err = ""
	out := StylizeMsg{PhotoBase64: *photo}
	return m, func() tea.Msg { return out }
}

func (m Model) submit() (Model, tea.Cmd) {
	photo, err := m.formPhoto()
	if err != nil {
		m.err = err.Error()
		return m, nil
	}
	out := SaveMsg{Name: strings.TrimSpace(m.name.Value()), PhotoBase64: photo, VoiceName: m.voice}
	return m, func() tea.Msg { return out }
}

// EncodePhotoFile reads an image file into the stored base64 form.
func EncodePhotoFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read photo: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("read photo: %s is empty", path)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
