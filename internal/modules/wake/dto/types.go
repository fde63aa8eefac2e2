package dto

import (
	"time"

	alarmdto "holoalarm/internal/modules/alarm/dto"
	profiledto "holoalarm/internal/modules/profile/dto"
)

const (
	ViewMain     = "MAIN"
	ViewSettings = "SETTINGS"
	ViewAlarming = "ALARMING"
)

// Snapshot is a copy of the controller state for rendering.
type Snapshot struct {
	View    string
	Now     time.Time
	Alarms  []alarmdto.AlarmOutput
	Profile profiledto.ProfileOutput
	Active  *alarmdto.AlarmOutput
}

type TickOutput struct {
	Triggered bool
	Alarm     alarmdto.AlarmOutput
	// Message is the wake-up sentence for Alarm, set when Triggered.
	Message string
}

type AnnounceInput struct {
	AlarmID string
	Time    string
	Label   string
	Name    string
	Voice   string
}

type PreviewInput struct {
	Text  string
	Voice string
}

type AnnounceOutput struct {
	Message   string
	AudioPath string
	Seconds   float64
	Played    bool
}
