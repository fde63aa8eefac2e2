package in

import (
	"context"
	"time"

	alarmdto "holoalarm/internal/modules/alarm/dto"
	profiledto "holoalarm/internal/modules/profile/dto"
	"holoalarm/internal/modules/wake/dto"
)

// Controller owns the view state and routes alarm and profile intents.
// All methods are safe for concurrent use.
type Controller interface {
	Snapshot(ctx context.Context) (dto.Snapshot, error)
	Tick(ctx context.Context, now time.Time) (dto.TickOutput, error)
	Active() (alarmdto.AlarmOutput, error)

	AddAlarm(ctx context.Context, input alarmdto.AddInput) (alarmdto.AlarmOutput, error)
	DeleteAlarm(ctx context.Context, id string) (alarmdto.DeleteOutput, error)
	ToggleAlarm(ctx context.Context, id string) (alarmdto.ToggleOutput, error)

	UpdateProfile(ctx context.Context, input profiledto.UpdateInput) (profiledto.ProfileOutput, error)
	SaveSettings(ctx context.Context, input profiledto.UpdateInput) (profiledto.ProfileOutput, error)
	StylizePhoto(ctx context.Context) (profiledto.StylizeOutput, error)
	StylizeDraft(ctx context.Context, photoBase64 string) (profiledto.DraftOutput, error)

	OpenSettings()
	CloseSettings()
	// Dismiss returns to Main and reports the alarm it cleared, or
	// apperrors.ErrNoActiveAlarm when nothing was ringing.
	Dismiss() (alarmdto.AlarmOutput, error)
}

// Announcer speaks wake-up messages and voice previews.
type Announcer interface {
	Announce(ctx context.Context, input dto.AnnounceInput) (dto.AnnounceOutput, error)
	Preview(ctx context.Context, input dto.PreviewInput) (dto.AnnounceOutput, error)
}
