package slug

import (
	"strings"
	"testing"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Morning Run!":  "morning-run",
		"  ":            "alarm",
		"☀️ wake up ☀️": "wake-up",
		"Gym @ 6":       "gym-6",
	}
	for in, want := range cases {
		if got := Make(in); got != want {
			t.Fatalf("Make(%q) = %q, want %q", in, got, want)
		}
	}
	long := Make(strings.Repeat("standup ", 20))
	if len(long) > maxLen || strings.HasSuffix(long, "-") {
		t.Fatalf("long slug not trimmed: %q", long)
	}
}
