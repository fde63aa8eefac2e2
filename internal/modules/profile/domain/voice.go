package domain

type Voice struct {
	Name        string
	Description string
}

// Voices lists the prebuilt speech voices offered in the settings form.
var Voices = []Voice{
	{Name: "Kore", Description: "Authoritative"},
	{Name: "Puck", Description: "Cheerful"},
	{Name: "Charon", Description: "Calm"},
	{Name: "Zephyr", Description: "Soft"},
	{Name: "Fenrir", Description: "Deep"},
}

// NextVoice cycles through Voices by step. An unknown name starts at the
// first voice.
func NextVoice(current string, step int) string {
	idx := -1
	for i, v := range Voices {
		if v.Name == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Voices[0].Name
	}
	n := len(Voices)
	return Voices[((idx+step)%n+n)%n].Name
}

func DescribeVoice(name string) string {
	for _, v := range Voices {
		if v.Name == name {
			return v.Description
		}
	}
	return "Custom"
}
