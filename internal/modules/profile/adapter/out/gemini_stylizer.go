package out

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	profileout "holoalarm/internal/modules/profile/port/out"
	"holoalarm/internal/platform/gemini"
)

const stylizePrompt = "Transform this face into a high-tech 3D holographic avatar bust with cyan glowing highlights and scanlines. Keep the facial features recognizable but stylized as a futuristic digital projection."

type GeminiStylizer struct {
	models  gemini.ContentGenerator
	model   string
	timeout time.Duration
	log     *zap.Logger
}

func NewGeminiStylizer(models gemini.ContentGenerator, model string, timeout time.Duration, log *zap.Logger) profileout.Stylizer {
	return &GeminiStylizer{models: models, model: model, timeout: timeout, log: log}
}

func (s *GeminiStylizer) Stylize(ctx context.Context, image []byte, mime string) ([]byte, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, mime),
			genai.NewPartFromText(stylizePrompt),
		}, genai.RoleUser),
	}
	started := time.Now()
	resp, err := s.models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("generate avatar: %w", err)
	}
	blob, err := gemini.FirstInlineData(resp)
	if err != nil {
		return nil, fmt.Errorf("generate avatar: %w", err)
	}
	s.log.Debug("avatar generated",
		zap.String("model", s.model),
		zap.String("mime", blob.MIMEType),
		zap.Duration("took", time.Since(started)),
	)
	return blob.Data, nil
}
