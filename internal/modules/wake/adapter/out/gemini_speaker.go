package out

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"holoalarm/internal/modules/wake/domain"
	wakeout "holoalarm/internal/modules/wake/port/out"
	"holoalarm/internal/platform/gemini"
)

type GeminiSpeaker struct {
	models  gemini.ContentGenerator
	model   string
	timeout time.Duration
	log     *zap.Logger
}

func NewGeminiSpeaker(models gemini.ContentGenerator, model string, timeout time.Duration, log *zap.Logger) wakeout.Speaker {
	return &GeminiSpeaker{models: models, model: model, timeout: timeout, log: log}
}

func (s *GeminiSpeaker) Synthesize(ctx context.Context, text, voice string) (domain.Audio, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		},
	}
	started := time.Now()
	resp, err := s.models.GenerateContent(ctx, s.model, genai.Text(text), cfg)
	if err != nil {
		return domain.Audio{}, fmt.Errorf("synthesize speech: %w", err)
	}
	blob, err := gemini.FirstInlineData(resp)
	if err != nil {
		return domain.Audio{}, fmt.Errorf("synthesize speech: %w", err)
	}
	audio := domain.NewSpeechAudio(blob.Data)
	if rate := sampleRate(blob.MIMEType); rate > 0 {
		audio.SampleRate = rate
	}
	s.log.Debug("speech synthesized",
		zap.String("model", s.model),
		zap.String("voice", voice),
		zap.String("mime", blob.MIMEType),
		zap.Int("bytes", len(blob.Data)),
		zap.Duration("took", time.Since(started)),
	)
	return audio, nil
}

// sampleRate reads the rate parameter of a MIME type such as
// "audio/L16;codec=pcm;rate=24000".
func sampleRate(mime string) int {
	for _, param := range strings.Split(mime, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || key != "rate" {
			continue
		}
		var rate int
		if _, err := fmt.Sscanf(value, "%d", &rate); err == nil {
			return rate
		}
	}
	return 0
}
