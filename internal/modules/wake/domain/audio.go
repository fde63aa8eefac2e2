package domain

const (
	SpeechSampleRate    = 24000
	SpeechChannels      = 1
	SpeechBitsPerSample = 16
)

// Audio is raw little-endian PCM.
type Audio struct {
	PCM           []byte
	SampleRate    int
	Channels      int
	BitsPerSample int
}

// NewSpeechAudio wraps PCM as returned by the speech model.
func NewSpeechAudio(pcm []byte) Audio {
	return Audio{PCM: pcm, SampleRate: SpeechSampleRate, Channels: SpeechChannels, BitsPerSample: SpeechBitsPerSample}
}

func (a Audio) Duration() float64 {
	bytesPerSecond := a.SampleRate * a.Channels * a.BitsPerSample / 8
	if bytesPerSecond == 0 {
		return 0
	}
	return float64(len(a.PCM)) / float64(bytesPerSecond)
}
