package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	alarmout "holoalarm/internal/modules/alarm/adapter/out"
	alarmdto "holoalarm/internal/modules/alarm/dto"
	alarmservice "holoalarm/internal/modules/alarm/service"
	alarmusecase "holoalarm/internal/modules/alarm/usecase"
	profileout "holoalarm/internal/modules/profile/adapter/out"
	profiledto "holoalarm/internal/modules/profile/dto"
	profileservice "holoalarm/internal/modules/profile/service"
	profileusecase "holoalarm/internal/modules/profile/usecase"
	"holoalarm/internal/modules/wake/dto"
	wakein "holoalarm/internal/modules/wake/port/in"
	"holoalarm/internal/modules/wake/usecase"
	apperrors "holoalarm/internal/platform/errors"
	"holoalarm/internal/platform/id"
	"holoalarm/internal/platform/kv"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func at(h, m, s int) time.Time {
	return time.Date(2026, 10, 19, h, m, s, 0, time.Local)
}

func newController(t *testing.T) wakein.Controller {
	t.Helper()
	store := kv.NewFileStore(t.TempDir())
	clk := fixedClock{now: at(6, 0, 0)}
	alarms := alarmusecase.NewInteractor(alarmservice.NewAlarmService(clk, id.UUID{}, alarmout.NewKVRepository(store, zap.NewNop()), alarmout.NewICSExporter()))
	profiles := profileusecase.NewInteractor(profileservice.NewProfileService(profileout.NewKVRepository(store, zap.NewNop()), nil, zap.NewNop()))
	return usecase.NewController(alarms, profiles, clk, zap.NewNop())
}

func addAlarm(t *testing.T, c wakein.Controller, hm string) alarmdto.AlarmOutput {
	t.Helper()
	out, err := c.AddAlarm(context.Background(), alarmdto.AddInput{Time: hm, Label: "Wake " + hm})
	require.NoError(t, err)
	return out
}

func view(t *testing.T, c wakein.Controller) dto.Snapshot {
	t.Helper()
	snap, err := c.Snapshot(context.Background())
	require.NoError(t, err)
	return snap
}

func TestTickEntersAlarmingOnMatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newController(t)
	a := addAlarm(t, c, "07:30")

	out, err := c.Tick(ctx, at(7, 30, 0))
	require.NoError(t, err)
	require.True(t, out.Triggered)
	require.Equal(t, a.ID, out.Alarm.ID)
	require.Equal(t, "Hello User. It is 07:30. Time to wake up and start your session for Wake 07:30.", out.Message)

	snap := view(t, c)
	require.Equal(t, dto.ViewAlarming, snap.View)
	require.NotNil(t, snap.Active)
	require.Equal(t, a.ID, snap.Active.ID)
}

func TestTickWhileAlarmingKeepsActive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newController(t)
	first := addAlarm(t, c, "07:30")
	addAlarm(t, c, "07:30")

	_, err := c.Tick(ctx, at(7, 30, 0))
	require.NoError(t, err)
	out, err := c.Tick(ctx, at(7, 30, 45))
	require.NoError(t, err)
	require.False(t, out.Triggered)

	active, err := c.Active()
	require.NoError(t, err)
	require.Equal(t, first.ID, active.ID)
}

func TestTickIgnoresDisabledAlarm(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newController(t)
	a := addAlarm(t, c, "07:30")
	_, err := c.ToggleAlarm(ctx, a.ID)
	require.NoError(t, err)

	out, err := c.Tick(ctx, at(7, 30, 0))
	require.NoError(t, err)
	require.False(t, out.Triggered)
	require.Equal(t, dto.ViewMain, view(t, c).View)
}

func TestDismissFromAnyView(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newController(t)
	alarm := addAlarm(t, c, "07:30")

	_, err := c.Dismiss()
	require.ErrorIs(t, err, apperrors.ErrNoActiveAlarm)
	require.Equal(t, dto.ViewMain, view(t, c).View)

	c.OpenSettings()
	require.Equal(t, dto.ViewSettings, view(t, c).View)
	_, err = c.Dismiss()
	require.ErrorIs(t, err, apperrors.ErrNoActiveAlarm)
	require.Equal(t, dto.ViewMain, view(t, c).View)

	_, err = c.Tick(ctx, at(7, 30, 0))
	require.NoError(t, err)
	cleared, err := c.Dismiss()
	require.NoError(t, err)
	require.Equal(t, alarm.ID, cleared.ID)
	snap := view(t, c)
	require.Equal(t, dto.ViewMain, snap.View)
	require.Nil(t, snap.Active)
	_, err = c.Active()
	require.ErrorIs(t, err, apperrors.ErrNoActiveAlarm)
}

func TestDismissDoesNotRetriggerWithinMinute(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newController(t)
	addAlarm(t, c, "07:30")

	out, _ := c.Tick(ctx, at(7, 30, 0))
	require.True(t, out.Triggered)
	c.Dismiss()

	out, err := c.Tick(ctx, at(7, 30, 10))
	require.NoError(t, err)
	require.False(t, out.Triggered)
	require.Equal(t, dto.ViewMain, view(t, c).View)

	out, err = c.Tick(ctx, at(7, 30, 0).Add(24*time.Hour))
	require.NoError(t, err)
	require.True(t, out.Triggered, "a new minute key must allow the alarm again")
}

func TestSecondAlarmOfTheMinuteFiresAfterDismiss(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newController(t)
	first := addAlarm(t, c, "07:30")
	second := addAlarm(t, c, "07:30")

	out, _ := c.Tick(ctx, at(7, 30, 0))
	require.Equal(t, first.ID, out.Alarm.ID)
	c.Dismiss()
	out, _ = c.Tick(ctx, at(7, 30, 5))
	require.True(t, out.Triggered)
	require.Equal(t, second.ID, out.Alarm.ID)
}

func TestDisablingActiveAlarmKeepsAlarming(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newController(t)
	a := addAlarm(t, c, "07:30")
	_, _ = c.Tick(ctx, at(7, 30, 0))

	_, err := c.ToggleAlarm(ctx, a.ID)
	require.NoError(t, err)
	snap := view(t, c)
	require.Equal(t, dto.ViewAlarming, snap.View)
	require.Equal(t, a.ID, snap.Active.ID)
}

func TestSettingsTransitions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newController(t)
	addAlarm(t, c, "07:30")

	c.OpenSettings()
	require.Equal(t, dto.ViewSettings, view(t, c).View)
	c.CloseSettings()
	require.Equal(t, dto.ViewMain, view(t, c).View)

	c.OpenSettings()
	out, err := c.SaveSettings(ctx, profiledto.UpdateInput{Name: "Ada", VoiceName: "Puck"})
	require.NoError(t, err)
	require.Equal(t, "Ada", out.Name)
	snap := view(t, c)
	require.Equal(t, dto.ViewMain, snap.View)
	require.Equal(t, "Puck", snap.Profile.VoiceName)

	_, _ = c.Tick(ctx, at(7, 30, 0))
	c.OpenSettings()
	c.CloseSettings()
	require.Equal(t, dto.ViewAlarming, view(t, c).View, "only dismissal leaves Alarming")
}

func TestStylizeWithoutServiceReportsReason(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newController(t)
	photo := "aGk="
	_, err := c.UpdateProfile(ctx, profiledto.UpdateInput{Name: "Ada", PhotoBase64: &photo, VoiceName: "Kore"})
	require.NoError(t, err)

	out, err := c.StylizePhoto(ctx)
	require.NoError(t, err)
	require.False(t, out.Stylized)
	require.NotEmpty(t, out.Reason)
}

// Dismiss reports the alarm it cleared, even when a second alarm of the same
// minute is waiting for the next tick.
func TestDismissReportsTheAlarmItCleared(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newController(t)
	first := addAlarm(t, c, "07:30")
	second := addAlarm(t, c, "07:30")

	_, _ = c.Tick(ctx, at(7, 30, 0))
	cleared, err := c.Dismiss()
	require.NoError(t, err)
	require.Equal(t, first.ID, cleared.ID)

	_, _ = c.Tick(ctx, at(7, 30, 1))
	cleared, err = c.Dismiss()
	require.NoError(t, err)
	require.Equal(t, second.ID, cleared.ID)

	_, err = c.Dismiss()
	require.ErrorIs(t, err, apperrors.ErrNoActiveAlarm)
}

func TestStylizeDraftKeepsStoredPhotoAndView(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newController(t)
	stored := "aGk="
	_, err := c.UpdateProfile(ctx, profiledto.UpdateInput{Name: "Ada", PhotoBase64: &stored, VoiceName: "Kore"})
	require.NoError(t, err)
	c.OpenSettings()

	out, err := c.StylizeDraft(ctx, "bmV3")
	require.NoError(t, err)
	require.False(t, out.Stylized, "no image service is wired in tests")
	require.NotEmpty(t, out.Reason)

	snap := view(t, c)
	require.Equal(t, dto.ViewSettings, snap.View)
	require.Equal(t, stored, *snap.Profile.PhotoBase64)
}

func TestControllerIsSafeForConcurrentUse(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newController(t)
	addAlarm(t, c, "07:30")

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 8; i++ {
		wg.Add(3)
		go func(i int) {
			defer wg.Done()
			if _, err := c.Tick(ctx, at(7, 30, i)); err != nil {
				errs <- err
			}
		}(i)
		go func() {
			defer wg.Done()
			if _, err := c.AddAlarm(ctx, alarmdto.AddInput{Time: "08:00"}); err != nil {
				errs <- err
			}
		}()
		go func() {
			defer wg.Done()
			_, _ = c.Dismiss()
			if _, err := c.Snapshot(ctx); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	require.Len(t, view(t, c).Alarms, 9)
}
