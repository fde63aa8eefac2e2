package out

import (
	"context"

	"holoalarm/internal/modules/profile/domain"
)

type Repository interface {
	Load(ctx context.Context) (domain.Profile, error)
	Save(ctx context.Context, profile domain.Profile) error
}

// Stylizer turns a portrait into a holographic avatar image.
type Stylizer interface {
	Stylize(ctx context.Context, image []byte, mime string) ([]byte, error)
}
