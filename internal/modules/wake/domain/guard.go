package domain

import "time"

const (
	minuteKeyLayout = "2006-01-02 15:04"
	hmLayout        = "15:04"
)

// Candidate is the part of an alarm the trigger check looks at.
type Candidate struct {
	ID      string
	Time    string
	Label   string
	Enabled bool
}

// Guard decides whether a tick raises a trigger. It remembers which alarm
// ids already fired during the current calendar minute so a dismissal
// inside that minute does not fire the same alarm again.
type Guard struct {
	minuteKey string
	fired     map[string]bool
}

func NewGuard() *Guard {
	return &Guard{fired: map[string]bool{}}
}

// Evaluate returns the first enabled candidate matching now's HH:MM that has
// not fired this minute. Nothing triggers while an alarm is active or the
// view is Alarming.
func (g *Guard) Evaluate(now time.Time, candidates []Candidate, view View, hasActive bool) (Candidate, bool) {
	key := now.Format(minuteKeyLayout)
	if key != g.minuteKey {
		g.minuteKey = key
		g.fired = map[string]bool{}
	}
	if hasActive || view == ViewAlarming {
		return Candidate{}, false
	}
	hm := now.Format(hmLayout)
	for _, c := range candidates {
		if !c.Enabled || c.Time != hm || g.fired[c.ID] {
			continue
		}
		g.fired[c.ID] = true
		return c, true
	}
	return Candidate{}, false
}
