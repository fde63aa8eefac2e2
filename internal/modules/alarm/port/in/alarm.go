package in

import (
	"context"

	"holoalarm/internal/modules/alarm/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.AlarmOutput, error)
	Add(ctx context.Context, input dto.AddInput) (dto.AlarmOutput, error)
	Delete(ctx context.Context, id string) (dto.DeleteOutput, error)
	Toggle(ctx context.Context, id string) (dto.ToggleOutput, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
