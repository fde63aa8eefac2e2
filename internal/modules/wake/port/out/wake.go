package out

import (
	"context"

	"holoalarm/internal/modules/wake/domain"
)

type Speaker interface {
	Synthesize(ctx context.Context, text, voice string) (domain.Audio, error)
}

// AudioStore persists synthesized audio and returns a playable path.
type AudioStore interface {
	Write(ctx context.Context, name string, audio domain.Audio) (string, error)
}

type Player interface {
	Play(ctx context.Context, path string) error
}
