package components

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"holoalarm/internal/ui/theme"
)

var avatarStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(theme.Cyan).
	Foreground(theme.Glow).
	Padding(0, 1)

// Avatar renders a scanline bust with the user's initials. photoBase64 only
// changes the caption; terminals cannot show the image itself.
func Avatar(name string, photoBase64 *string) string {
	initials := Initials(name)
	rows := []string{
		"░▒▓▓▓▓▒░",
		"▒▓ " + initials + " ▓▒",
		"░▒▓▓▓▓▒░",
		" ▔▔▔▔▔▔ ",
	}
	for i := range rows {
		if i%2 == 1 {
			rows[i] = theme.Hot.Render(rows[i])
		} else {
			rows[i] = theme.Title.Render(rows[i])
		}
	}
	caption := theme.Muted.Render("no image")
	if photoBase64 != nil && *photoBase64 != "" {
		caption = theme.Good.Render(fmt.Sprintf("photo %s", photoSize(*photoBase64)))
	}
	return avatarStyle.Render(strings.Join(rows, "\n")) + "\n" + caption
}

// Initials returns up to two upper-case initials, padded to two cells.
func Initials(name string) string {
	fields := strings.Fields(name)
	var out []rune
	for _, f := range fields {
		r := []rune(f)
		out = append(out, []rune(strings.ToUpper(string(r[0])))...)
		if len(out) == 2 {
			break
		}
	}
	switch len(out) {
	case 0:
		return "??"
	case 1:
		return string(out) + " "
	}
	return string(out[:2])
}

func photoSize(encoded string) string {
	n := base64.StdEncoding.DecodedLen(len(encoded))
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%d KB", n/1024)
}
