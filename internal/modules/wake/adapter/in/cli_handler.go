package in

import (
	"context"

	alarmdto "holoalarm/internal/modules/alarm/dto"
	"holoalarm/internal/modules/wake/dto"
	wakein "holoalarm/internal/modules/wake/port/in"
)

type CLIHandler struct {
	controller wakein.Controller
	announcer  wakein.Announcer
}

func NewCLIHandler(controller wakein.Controller, announcer wakein.Announcer) CLIHandler {
	return CLIHandler{controller: controller, announcer: announcer}
}

// Dismiss clears the active alarm and returns it; the error is
// apperrors.ErrNoActiveAlarm when nothing was ringing.
func (h CLIHandler) Dismiss() (alarmdto.AlarmOutput, error) {
	return h.controller.Dismiss()
}

func (h CLIHandler) Speak(ctx context.Context, text, voice string) (dto.AnnounceOutput, error) {
	return h.announcer.Preview(ctx, dto.PreviewInput{Text: text, Voice: voice})
}

// Announce speaks the wake-up message for a triggered alarm with the
// current profile.
func (h CLIHandler) Announce(ctx context.Context, alarm alarmdto.AlarmOutput) (dto.AnnounceOutput, error) {
	snap, err := h.controller.Snapshot(ctx)
	if err != nil {
		return dto.AnnounceOutput{}, err
	}
	return h.announcer.Announce(ctx, dto.AnnounceInput{
		AlarmID: alarm.ID,
		Time:    alarm.Time,
		Label:   alarm.Label,
		Name:    snap.Profile.Name,
		Voice:   snap.Profile.VoiceName,
	})
}
