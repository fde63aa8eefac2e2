package in

import (
	"context"

	alarmdto "holoalarm/internal/modules/alarm/dto"
	alarmin "holoalarm/internal/modules/alarm/port/in"
)

type CLIHandler struct {
	usecase alarmin.Usecase
}

func NewCLIHandler(usecase alarmin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]alarmdto.AlarmOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Add(ctx context.Context, hm, label string, repeat []string) (alarmdto.AlarmOutput, error) {
	return h.usecase.Add(ctx, alarmdto.AddInput{Time: hm, Label: label, Repeat: repeat})
}

func (h CLIHandler) Delete(ctx context.Context, id string) (alarmdto.DeleteOutput, error) {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) Toggle(ctx context.Context, id string) (alarmdto.ToggleOutput, error) {
	return h.usecase.Toggle(ctx, id)
}

func (h CLIHandler) Export(ctx context.Context, includeDisabled bool) (alarmdto.ExportOutput, error) {
	return h.usecase.Export(ctx, alarmdto.ExportInput{IncludeDisabled: includeDisabled})
}
