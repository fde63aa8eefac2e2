package dto

type ProfileOutput struct {
	Name        string
	PhotoBase64 *string
	VoiceName   string
}

func (p ProfileOutput) HasPhoto() bool {
	return p.PhotoBase64 != nil && *p.PhotoBase64 != ""
}

// UpdateInput replaces the profile wholesale.
type UpdateInput struct {
	Name        string
	PhotoBase64 *string
	VoiceName   string
}

type StylizeOutput struct {
	Profile ProfileOutput
	// Stylized is false when the service returned no image; the profile is unchanged then.
	Stylized bool
	Reason   string
}

type VoiceOutput struct {
	Name        string
	Description string
}

// DraftOutput is a stylized photo that has not been saved.
type DraftOutput struct {
	PhotoBase64 string
	Stylized    bool
	Reason      string
}
