package domain

import (
	"errors"
	"reflect"
	"testing"
	"time"

	apperrors "holoalarm/internal/platform/errors"
)

func TestNewDefaultsLabelAndEnables(t *testing.T) {
	t.Parallel()
	a, err := New("a1", "7:05", "   ", nil)
	if err != nil {
		t.Fatalf("new alarm: %v", err)
	}
	if a.Time != "07:05" || a.Label != DefaultLabel || !a.Enabled {
		t.Fatalf("unexpected alarm: %+v", a)
	}
	if a.Repeat == nil || len(a.Repeat) != 0 {
		t.Fatalf("expected empty non-nil repeat, got %#v", a.Repeat)
	}
}

func TestNormalizeTimeRejectsInvalid(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"", "24:00", "7:5", "07:60", "seven", "07:30:00"} {
		if _, err := NormalizeTime(in); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("NormalizeTime(%q): expected ErrInvalidInput, got %v", in, err)
		}
	}
	got, err := NormalizeTime(" 23:59 ")
	if err != nil || got != "23:59" {
		t.Fatalf("NormalizeTime trimmed: got %q, %v", got, err)
	}
}

func TestFormatHMTruncatesSeconds(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 10, 19, 7, 30, 45, 0, time.Local)
	if got := FormatHM(now); got != "07:30" {
		t.Fatalf("expected 07:30, got %s", got)
	}
}

func TestNormalizeRepeat(t *testing.T) {
	t.Parallel()
	got, err := NormalizeRepeat([]string{"fri", "MON", "Fri", " "})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Mon", "Fri"}) {
		t.Fatalf("unexpected repeat: %v", got)
	}
	if _, err := NormalizeRepeat([]string{"Funday"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid weekday error, got %v", err)
	}
}

func TestRemoveAndToggle(t *testing.T) {
	t.Parallel()
	list := []Alarm{
		{ID: "a", Time: "07:00", Label: "A", Enabled: true, Repeat: []string{}},
		{ID: "b", Time: "08:00", Label: "B", Enabled: true, Repeat: []string{"Mon"}},
	}

	same, removed := Remove(list, "missing")
	if removed || !reflect.DeepEqual(same, list) {
		t.Fatalf("removing a missing id must be a no-op")
	}
	rest, removed := Remove(list, "a")
	if !removed || len(rest) != 1 || rest[0].ID != "b" {
		t.Fatalf("unexpected remove result: %+v", rest)
	}

	once, toggled, ok := Toggle(list, "b")
	if !ok || toggled.Enabled || once[1].Enabled {
		t.Fatalf("expected b disabled, got %+v", once)
	}
	if !list[1].Enabled {
		t.Fatalf("toggle must not mutate its input")
	}
	twice, _, _ := Toggle(once, "b")
	if !reflect.DeepEqual(twice, list) {
		t.Fatalf("toggle twice must restore the list")
	}
	if _, _, ok := Toggle(list, "missing"); ok {
		t.Fatalf("toggle of a missing id must report not found")
	}
}
