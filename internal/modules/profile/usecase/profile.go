package usecase

import (
	"context"
	"encoding/base64"

	"holoalarm/internal/modules/profile/domain"
	profiledto "holoalarm/internal/modules/profile/dto"
	profilein "holoalarm/internal/modules/profile/port/in"
	"holoalarm/internal/modules/profile/service"
)

type Interactor struct {
	svc *service.ProfileService
}

func NewInteractor(svc *service.ProfileService) profilein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Get(ctx context.Context) (profiledto.ProfileOutput, error) {
	p, err := i.svc.Get(ctx)
	if err != nil {
		return profiledto.ProfileOutput{}, err
	}
	return toOutput(p), nil
}

func (i *Interactor) Update(ctx context.Context, input profiledto.UpdateInput) (profiledto.ProfileOutput, error) {
	p, err := i.svc.Update(ctx, domain.Profile{
		Name:        input.Name,
		PhotoBase64: input.PhotoBase64,
		VoiceName:   input.VoiceName,
	})
	if err != nil {
		return profiledto.ProfileOutput{}, err
	}
	return toOutput(p), nil
}

func (i *Interactor) Stylize(ctx context.Context) (profiledto.StylizeOutput, error) {
	p, ok, reason, err := i.svc.Stylize(ctx)
	if err != nil {
		return profiledto.StylizeOutput{}, err
	}
	return profiledto.StylizeOutput{Profile: toOutput(p), Stylized: ok, Reason: reason}, nil
}

func (i *Interactor) StylizeDraft(ctx context.Context, photoBase64 string) (profiledto.DraftOutput, error) {
	image, ok, reason, err := i.svc.StylizeDraft(ctx, photoBase64)
	if err != nil {
		return profiledto.DraftOutput{}, err
	}
	out := profiledto.DraftOutput{Stylized: ok, Reason: reason}
	if ok {
		out.PhotoBase64 = base64.StdEncoding.EncodeToString(image)
	}
	return out, nil
}

func (i *Interactor) Voices() []profiledto.VoiceOutput {
	out := make([]profiledto.VoiceOutput, 0, len(domain.Voices))
	for _, v := range domain.Voices {
		out = append(out, profiledto.VoiceOutput{Name: v.Name, Description: v.Description})
	}
	return out
}

func toOutput(p domain.Profile) profiledto.ProfileOutput {
	p = p.Clone()
	return profiledto.ProfileOutput{Name: p.Name, PhotoBase64: p.PhotoBase64, VoiceName: p.VoiceName}
}
