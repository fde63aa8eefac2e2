package usecase

import (
	"context"

	"holoalarm/internal/modules/alarm/domain"
	alarmdto "holoalarm/internal/modules/alarm/dto"
	alarmin "holoalarm/internal/modules/alarm/port/in"
	"holoalarm/internal/modules/alarm/service"
)

type Interactor struct {
	svc *service.AlarmService
}

func NewInteractor(svc *service.AlarmService) alarmin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]alarmdto.AlarmOutput, error) {
	alarms, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]alarmdto.AlarmOutput, 0, len(alarms))
	for _, a := range alarms {
		out = append(out, i.toOutput(a))
	}
	return out, nil
}

func (i *Interactor) Add(ctx context.Context, input alarmdto.AddInput) (alarmdto.AlarmOutput, error) {
	alarm, err := i.svc.Add(ctx, input.Time, input.Label, input.Repeat)
	if err != nil {
		return alarmdto.AlarmOutput{}, err
	}
	return i.toOutput(alarm), nil
}

func (i *Interactor) Delete(ctx context.Context, id string) (alarmdto.DeleteOutput, error) {
	removed, err := i.svc.Delete(ctx, id)
	if err != nil {
		return alarmdto.DeleteOutput{}, err
	}
	return alarmdto.DeleteOutput{ID: id, Removed: removed}, nil
}

func (i *Interactor) Toggle(ctx context.Context, id string) (alarmdto.ToggleOutput, error) {
	alarm, found, err := i.svc.Toggle(ctx, id)
	if err != nil {
		return alarmdto.ToggleOutput{}, err
	}
	if !found {
		return alarmdto.ToggleOutput{}, nil
	}
	return alarmdto.ToggleOutput{Alarm: i.toOutput(alarm), Found: true}, nil
}

func (i *Interactor) Export(ctx context.Context, input alarmdto.ExportInput) (alarmdto.ExportOutput, error) {
	data, count, err := i.svc.Export(ctx, input.IncludeDisabled)
	if err != nil {
		return alarmdto.ExportOutput{}, err
	}
	return alarmdto.ExportOutput{Data: data, Count: count}, nil
}

func (i *Interactor) toOutput(a domain.Alarm) alarmdto.AlarmOutput {
	out := alarmdto.AlarmOutput{
		ID:      a.ID,
		Time:    a.Time,
		Label:   a.Label,
		Enabled: a.Enabled,
		Repeat:  append([]string{}, a.Repeat...),
	}
	if next, err := i.svc.NextRing(a); err == nil {
		out.NextRing = next
	}
	return out
}
