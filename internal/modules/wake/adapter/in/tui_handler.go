package in

import (
	"context"
	"time"

	alarmdto "holoalarm/internal/modules/alarm/dto"
	profiledto "holoalarm/internal/modules/profile/dto"
	"holoalarm/internal/modules/wake/dto"
	wakein "holoalarm/internal/modules/wake/port/in"
)

type TUIHandler struct {
	controller wakein.Controller
	announcer  wakein.Announcer
}

func NewTUIHandler(controller wakein.Controller, announcer wakein.Announcer) TUIHandler {
	return TUIHandler{controller: controller, announcer: announcer}
}

func (h TUIHandler) Snapshot(ctx context.Context) (dto.Snapshot, error) {
	return h.controller.Snapshot(ctx)
}

func (h TUIHandler) Tick(ctx context.Context, now time.Time) (dto.TickOutput, error) {
	return h.controller.Tick(ctx, now)
}

func (h TUIHandler) AddAlarm(ctx context.Context, hm, label string) (alarmdto.AlarmOutput, error) {
	return h.controller.AddAlarm(ctx, alarmdto.AddInput{Time: hm, Label: label})
}

func (h TUIHandler) DeleteAlarm(ctx context.Context, id string) (alarmdto.DeleteOutput, error) {
	return h.controller.DeleteAlarm(ctx, id)
}

func (h TUIHandler) ToggleAlarm(ctx context.Context, id string) (alarmdto.ToggleOutput, error) {
	return h.controller.ToggleAlarm(ctx, id)
}

func (h TUIHandler) OpenSettings()  { h.controller.OpenSettings() }
func (h TUIHandler) CloseSettings() { h.controller.CloseSettings() }
func (h TUIHandler) Dismiss()       { _, _ = h.controller.Dismiss() }

func (h TUIHandler) SaveSettings(ctx context.Context, name string, photoBase64 *string, voice string) (profiledto.ProfileOutput, error) {
	return h.controller.SaveSettings(ctx, profiledto.UpdateInput{Name: name, PhotoBase64: photoBase64, VoiceName: voice})
}

func (h TUIHandler) StylizePhoto(ctx context.Context) (profiledto.StylizeOutput, error) {
	return h.controller.StylizePhoto(ctx)
}

func (h TUIHandler) StylizeDraft(ctx context.Context, photoBase64 string) (profiledto.DraftOutput, error) {
	return h.controller.StylizeDraft(ctx, photoBase64)
}

// Announce speaks the wake-up message for alarm using the profile's name and voice.
func (h TUIHandler) Announce(ctx context.Context, alarm alarmdto.AlarmOutput, profile profiledto.ProfileOutput) (dto.AnnounceOutput, error) {
	return h.announcer.Announce(ctx, dto.AnnounceInput{
		AlarmID: alarm.ID,
		Time:    alarm.Time,
		Label:   alarm.Label,
		Name:    profile.Name,
		Voice:   profile.VoiceName,
	})
}

func (h TUIHandler) PreviewVoice(ctx context.Context, voice string) (dto.AnnounceOutput, error) {
	return h.announcer.Preview(ctx, dto.PreviewInput{Voice: voice})
}
