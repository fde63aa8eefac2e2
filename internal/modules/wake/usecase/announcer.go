package usecase

import (
	"context"

	"holoalarm/internal/modules/wake/dto"
	wakein "holoalarm/internal/modules/wake/port/in"
	"holoalarm/internal/modules/wake/service"
)

type Announcer struct {
	svc *service.AnnounceService
}

func NewAnnouncer(svc *service.AnnounceService) wakein.Announcer {
	return &Announcer{svc: svc}
}

func (a *Announcer) Announce(ctx context.Context, input dto.AnnounceInput) (dto.AnnounceOutput, error) {
	return a.svc.Announce(ctx, input)
}

func (a *Announcer) Preview(ctx context.Context, input dto.PreviewInput) (dto.AnnounceOutput, error) {
	return a.svc.Preview(ctx, input)
}
