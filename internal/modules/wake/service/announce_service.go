package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"holoalarm/internal/modules/wake/domain"
	"holoalarm/internal/modules/wake/dto"
	wakeout "holoalarm/internal/modules/wake/port/out"
	apperrors "holoalarm/internal/platform/errors"
)

// AnnounceService synthesizes a message, stores it as a sound file and
// plays it. A nil player only skips playback.
type AnnounceService struct {
	speaker wakeout.Speaker
	store   wakeout.AudioStore
	player  wakeout.Player
	log     *zap.Logger
}

func NewAnnounceService(speaker wakeout.Speaker, store wakeout.AudioStore, player wakeout.Player, log *zap.Logger) *AnnounceService {
	return &AnnounceService{speaker: speaker, store: store, player: player, log: log}
}

func (s *AnnounceService) Announce(ctx context.Context, input dto.AnnounceInput) (dto.AnnounceOutput, error) {
	message := domain.WakeMessage(input.Name, input.Time, input.Label)
	name := input.AlarmID + "-" + strings.ReplaceAll(input.Time, ":", "")
	out, err := s.say(ctx, message, input.Voice, name)
	if err != nil {
		s.log.Warn("wake announcement failed", zap.String("alarm_id", input.AlarmID), zap.Error(err))
		return out, err
	}
	s.log.Info("wake announcement played",
		zap.String("alarm_id", input.AlarmID),
		zap.String("voice", input.Voice),
		zap.String("path", out.AudioPath),
	)
	return out, nil
}

// Preview speaks text with voice; an empty text introduces the voice.
func (s *AnnounceService) Preview(ctx context.Context, input dto.PreviewInput) (dto.AnnounceOutput, error) {
	voice := strings.TrimSpace(input.Voice)
	if voice == "" {
		return dto.AnnounceOutput{}, fmt.Errorf("%w: voice is required", apperrors.ErrInvalidInput)
	}
	text := strings.TrimSpace(input.Text)
	if text == "" {
		text = fmt.Sprintf("Voice check. This is %s.", voice)
	}
	out, err := s.say(ctx, text, voice, "preview-"+voice)
	if err != nil {
		s.log.Warn("voice preview failed", zap.String("voice", voice), zap.Error(err))
	}
	return out, err
}

func (s *AnnounceService) say(ctx context.Context, message, voice, name string) (dto.AnnounceOutput, error) {
	out := dto.AnnounceOutput{Message: message}
	if s.speaker == nil {
		return out, fmt.Errorf("%w: speech is not configured", apperrors.ErrServiceUnavailable)
	}
	audio, err := s.speaker.Synthesize(ctx, domain.SpeechPrompt(message), voice)
	if err != nil {
		return out, err
	}
	out.Seconds = audio.Duration()
	path, err := s.store.Write(ctx, name, audio)
	if err != nil {
		return out, err
	}
	out.AudioPath = path
	if s.player == nil {
		return out, nil
	}
	if err := s.player.Play(ctx, path); err != nil {
		return out, err
	}
	out.Played = true
	return out, nil
}
