package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"holoalarm/internal/ui/theme"
)

// PaletteSubmitMsg carries a known command whose required arguments are present.
type PaletteSubmitMsg struct {
	Command string
	Args    []string
}

// PaletteCancelMsg is emitted on esc or an empty submit.
type PaletteCancelMsg struct{}

// PaletteCommand describes one palette verb.
type PaletteCommand struct {
	Name    string
	Args    string
	MinArgs int
	About   string
}

func (c PaletteCommand) Usage() string {
	if c.Args == "" {
		return c.Name
	}
	return c.Name + " " + c.Args
}

// PaletteCommands is the verb table; app/model.go executes each Name.
var PaletteCommands = []PaletteCommand{
	{Name: "alarm:add", Args: "<HH:MM> [label]", MinArgs: 1, About: "schedule an enabled alarm"},
	{Name: "alarm:delete", About: "delete the selected alarm"},
	{Name: "alarm:toggle", About: "enable or disable the selected alarm"},
	{Name: "settings", About: "open profile settings"},
	{Name: "dismiss", About: "silence the ringing alarm"},
	{Name: "voice:preview", Args: "[voice]", About: "speak a sample line"},
	{Name: "avatar:stylize", About: "hologramify the stored photo"},
}

const maxPaletteHints = 5

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(theme.Violet).
			Background(theme.Panel).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().Foreground(theme.Dim)
)

func findPaletteCommand(name string) (PaletteCommand, bool) {
	for _, c := range PaletteCommands {
		if c.Name == name {
			return c, true
		}
	}
	return PaletteCommand{}, false
}

// Palette is the command uplink overlay. It validates verbs and argument
// counts before submitting, so a bad line keeps the palette open.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	err     string
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "alarm:add 07:30 Gym"
	ti.CharLimit = 256
	ti.Prompt = "› "
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette with an empty line and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.err = ""
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			return p.submit()
		case "tab":
			p.complete()
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		p.err = ""
	}
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Uplink") + "\n")
	sb.WriteString(p.input.View() + "\n\n")

	exact := false
	if fields := strings.Fields(p.input.Value()); len(fields) > 0 {
		if c, ok := findPaletteCommand(strings.ToLower(fields[0])); ok {
			exact = true
			sb.WriteString(theme.Hot.Render(c.Usage()) + "\n")
			sb.WriteString(hintStyle.Render(c.About) + "\n")
		}
	}
	if !exact {
		for _, c := range p.matches() {
			sb.WriteString(hintStyle.Render("  "+padRight(c.Usage(), 28)+c.About) + "\n")
		}
	}
	if p.err != "" {
		sb.WriteString("\n" + theme.Warn.Render(p.err) + "\n")
	}
	return p.frame(sb.String())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (p *Palette) close() {
	p.visible = false
	p.err = ""
	p.input.Blur()
}

func (p Palette) submit() (Palette, tea.Cmd) {
	fields := strings.Fields(p.input.Value())
	if len(fields) == 0 {
		p.close()
		return p, func() tea.Msg { return PaletteCancelMsg{} }
	}
	name := strings.ToLower(fields[0])
	c, ok := findPaletteCommand(name)
	if !ok {
		p.err = "unknown command: " + fields[0]
		return p, nil
	}
	args := fields[1:]
	if len(args) < c.MinArgs {
		p.err = "usage: " + c.Usage()
		return p, nil
	}
	p.close()
	out := PaletteSubmitMsg{Command: c.Name, Args: args}
	return p, func() tea.Msg { return out }
}

// matches lists commands whose name starts with the first typed word.
func (p Palette) matches() []PaletteCommand {
	prefix := ""
	if fields := strings.Fields(p.input.Value()); len(fields) > 0 {
		prefix = strings.ToLower(fields[0])
	}
	var out []PaletteCommand
	for _, c := range PaletteCommands {
		if strings.HasPrefix(c.Name, prefix) {
			out = append(out, c)
			if len(out) == maxPaletteHints {
				break
			}
		}
	}
	return out
}

// complete fills in the verb when exactly one command matches.
func (p *Palette) complete() {
	if strings.Contains(strings.TrimSpace(p.input.Value()), " ") {
		return
	}
	if m := p.matches(); len(m) == 1 {
		p.input.SetValue(m[0].Name + " ")
		p.input.CursorEnd()
	}
}

func (p Palette) frame(body string) string {
	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(strings.TrimRight(body, "\n"))
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s + " "
	}
	return s + strings.Repeat(" ", n-len(s))
}
