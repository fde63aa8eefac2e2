package domain

// View is the screen the application currently shows.
type View string

const (
	ViewMain     View = "MAIN"
	ViewSettings View = "SETTINGS"
	// ViewAlarming is only entered by a trigger and only left by dismissal.
	ViewAlarming View = "ALARMING"
)
