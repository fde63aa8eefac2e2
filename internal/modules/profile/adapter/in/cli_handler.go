package in

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	profiledto "holoalarm/internal/modules/profile/dto"
	profilein "holoalarm/internal/modules/profile/port/in"
	apperrors "holoalarm/internal/platform/errors"
)

type CLIHandler struct {
	usecase profilein.Usecase
}

func NewCLIHandler(usecase profilein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context) (profiledto.ProfileOutput, error) {
	return h.usecase.Get(ctx)
}

// SetFields holds the flags given to `profile set`; nil fields keep their
// current value.
type SetFields struct {
	Name       *string
	Voice      *string
	PhotoPath  *string
	ClearPhoto bool
}

// Set merges the given fields into the current profile and saves it wholesale.
func (h CLIHandler) Set(ctx context.Context, fields SetFields) (profiledto.ProfileOutput, error) {
	current, err := h.usecase.Get(ctx)
	if err != nil {
		return profiledto.ProfileOutput{}, err
	}
	input := profiledto.UpdateInput{
		Name:        current.Name,
		PhotoBase64: current.PhotoBase64,
		VoiceName:   current.VoiceName,
	}
	if fields.Name != nil {
		input.Name = strings.TrimSpace(*fields.Name)
	}
	if fields.Voice != nil {
		input.VoiceName = strings.TrimSpace(*fields.Voice)
	}
	if fields.ClearPhoto {
		input.PhotoBase64 = nil
	}
	if fields.PhotoPath != nil {
		data, err := os.ReadFile(*fields.PhotoPath)
		if err != nil {
			return profiledto.ProfileOutput{}, fmt.Errorf("read photo: %w", err)
		}
		if len(data) == 0 {
			return profiledto.ProfileOutput{}, fmt.Errorf("%w: photo file is empty", apperrors.ErrInvalidInput)
		}
		encoded := base64.StdEncoding.EncodeToString(data)
		input.PhotoBase64 = &encoded
	}
	return h.usecase.Update(ctx, input)
}

func (h CLIHandler) Stylize(ctx context.Context) (profiledto.StylizeOutput, error) {
	return h.usecase.Stylize(ctx)
}

func (h CLIHandler) Voices() []profiledto.VoiceOutput {
	return h.usecase.Voices()
}
