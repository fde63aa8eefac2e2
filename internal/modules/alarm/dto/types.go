package dto

import "time"

type AlarmOutput struct {
	ID       string
	Time     string
	Label    string
	Enabled  bool
	Repeat   []string
	NextRing time.Time
}

type AddInput struct {
	Time   string
	Label  string
	Repeat []string
}

type DeleteOutput struct {
	ID      string
	Removed bool
}

type ToggleOutput struct {
	Alarm AlarmOutput
	Found bool
}

type ExportInput struct {
	IncludeDisabled bool
}

type ExportOutput struct {
	Data  []byte
	Count int
}
