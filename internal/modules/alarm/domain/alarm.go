package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "holoalarm/internal/platform/errors"
)

const (
	DefaultLabel = "Alarm"
	// TimeLayout is the 24-hour "HH:MM" form alarms are stored and matched in.
	TimeLayout = "15:04"
)

type Alarm struct {
	ID      string   `json:"id"`
	Time    string   `json:"time"`
	Label   string   `json:"label"`
	Enabled bool     `json:"enabled"`
	Repeat  []string `json:"repeat"`
}

// New builds an enabled alarm. The label falls back to DefaultLabel.
func New(id, hm, label string, repeat []string) (Alarm, error) {
	if strings.TrimSpace(id) == "" {
		return Alarm{}, fmt.Errorf("%w: alarm id is required", apperrors.ErrInvalidInput)
	}
	normalized, err := NormalizeTime(hm)
	if err != nil {
		return Alarm{}, err
	}
	days, err := NormalizeRepeat(repeat)
	if err != nil {
		return Alarm{}, err
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = DefaultLabel
	}
	return Alarm{ID: id, Time: normalized, Label: label, Enabled: true, Repeat: days}, nil
}

// NormalizeTime accepts "H:MM" or "HH:MM" in 24-hour form and returns "HH:MM".
func NormalizeTime(hm string) (string, error) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(hm))
	if err != nil {
		return "", fmt.Errorf("%w: time %q is not HH:MM", apperrors.ErrInvalidInput, hm)
	}
	return t.Format(TimeLayout), nil
}

// FormatHM truncates t to the minute-granular key used for matching.
func FormatHM(t time.Time) string {
	return t.Format(TimeLayout)
}

func (a Alarm) Clone() Alarm {
	out := a
	if a.Repeat != nil {
		out.Repeat = append([]string{}, a.Repeat...)
	}
	return out
}

func CloneAll(alarms []Alarm) []Alarm {
	out := make([]Alarm, len(alarms))
	for i, a := range alarms {
		out[i] = a.Clone()
	}
	return out
}

func Contains(alarms []Alarm, id string) bool {
	for _, a := range alarms {
		if a.ID == id {
			return true
		}
	}
	return false
}

// Remove returns a copy of alarms without id and whether anything was removed.
func Remove(alarms []Alarm, id string) ([]Alarm, bool) {
	out := make([]Alarm, 0, len(alarms))
	removed := false
	for _, a := range alarms {
		if a.ID == id && !removed {
			removed = true
			continue
		}
		out = append(out, a.Clone())
	}
	return out, removed
}

// Toggle returns a copy of alarms with id's enabled flag flipped.
func Toggle(alarms []Alarm, id string) ([]Alarm, Alarm, bool) {
	out := CloneAll(alarms)
	for i := range out {
		if out[i].ID == id {
			out[i].Enabled = !out[i].Enabled
			return out, out[i].Clone(), true
		}
	}
	return out, Alarm{}, false
}
