package in

import (
	"context"

	"holoalarm/internal/modules/profile/dto"
)

type Usecase interface {
	Get(ctx context.Context) (dto.ProfileOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.ProfileOutput, error)
	Stylize(ctx context.Context) (dto.StylizeOutput, error)
	// StylizeDraft renders photoBase64 without touching the stored profile.
	StylizeDraft(ctx context.Context, photoBase64 string) (dto.DraftOutput, error)
	Voices() []dto.VoiceOutput
}
