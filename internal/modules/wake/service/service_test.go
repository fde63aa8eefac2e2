package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	alarmdto "holoalarm/internal/modules/alarm/dto"
	profiledto "holoalarm/internal/modules/profile/dto"
	"holoalarm/internal/modules/wake/domain"
	"holoalarm/internal/modules/wake/dto"
	apperrors "holoalarm/internal/platform/errors"
)

type fakeSpeaker struct {
	text  string
	voice string
	err   error
}

func (f *fakeSpeaker) Synthesize(_ context.Context, text, voice string) (domain.Audio, error) {
	f.text, f.voice = text, voice
	if f.err != nil {
		return domain.Audio{}, f.err
	}
	return domain.NewSpeechAudio(make([]byte, 24000)), nil
}

type fakeStore struct{ name string }

func (f *fakeStore) Write(_ context.Context, name string, _ domain.Audio) (string, error) {
	f.name = name
	return "/tmp/" + name + ".wav", nil
}

type fakePlayer struct {
	path string
	err  error
}

func (f *fakePlayer) Play(_ context.Context, path string) error {
	f.path = path
	return f.err
}

func TestAnnounceSpeaksWakeMessage(t *testing.T) {
	t.Parallel()
	speaker, store, player := &fakeSpeaker{}, &fakeStore{}, &fakePlayer{}
	svc := NewAnnounceService(speaker, store, player, zap.NewNop())

	out, err := svc.Announce(context.Background(), dto.AnnounceInput{AlarmID: "a1", Time: "07:30", Label: "Gym", Name: "Ada", Voice: "Puck"})
	require.NoError(t, err)
	require.Equal(t, "Hello Ada. It is 07:30. Time to wake up and start your session for Gym.", out.Message)
	require.Equal(t, "Say clearly and with authority: "+out.Message, speaker.text)
	require.Equal(t, "Puck", speaker.voice)
	require.Equal(t, "a1-0730", store.name)
	require.Equal(t, "/tmp/a1-0730.wav", player.path)
	require.True(t, out.Played)
	require.InDelta(t, 0.5, out.Seconds, 0.001)
}

func TestAnnounceReportsFailures(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	in := dto.AnnounceInput{AlarmID: "a1", Time: "07:30", Label: "Gym", Name: "Ada", Voice: "Kore"}

	_, err := NewAnnounceService(nil, &fakeStore{}, nil, zap.NewNop()).Announce(ctx, in)
	require.ErrorIs(t, err, apperrors.ErrServiceUnavailable)

	boom := errors.New("quota exceeded")
	_, err = NewAnnounceService(&fakeSpeaker{err: boom}, &fakeStore{}, nil, zap.NewNop()).Announce(ctx, in)
	require.ErrorIs(t, err, boom)

	out, err := NewAnnounceService(&fakeSpeaker{}, &fakeStore{}, &fakePlayer{err: boom}, zap.NewNop()).Announce(ctx, in)
	require.ErrorIs(t, err, boom)
	require.False(t, out.Played)
	require.NotEmpty(t, out.AudioPath)
}

func TestAnnounceWithoutPlayerOnlyStores(t *testing.T) {
	t.Parallel()
	out, err := NewAnnounceService(&fakeSpeaker{}, &fakeStore{}, nil, zap.NewNop()).
		Announce(context.Background(), dto.AnnounceInput{AlarmID: "a", Time: "06:00", Label: "x", Name: "y", Voice: "Kore"})
	require.NoError(t, err)
	require.False(t, out.Played)
	require.Equal(t, "/tmp/a-0600.wav", out.AudioPath)
}

func TestPreview(t *testing.T) {
	t.Parallel()
	speaker, store := &fakeSpeaker{}, &fakeStore{}
	svc := NewAnnounceService(speaker, store, nil, zap.NewNop())

	_, err := svc.Preview(context.Background(), dto.PreviewInput{})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)

	out, err := svc.Preview(context.Background(), dto.PreviewInput{Voice: "Charon"})
	require.NoError(t, err)
	require.Equal(t, "Voice check. This is Charon.", out.Message)
	require.Equal(t, "preview-Charon", store.name)
	require.Equal(t, "Charon", speaker.voice)
}

type stubController struct {
	mu      sync.Mutex
	ticks   int
	trigger int
}

func (s *stubController) Tick(_ context.Context, _ time.Time) (dto.TickOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticks++
	if s.ticks == s.trigger {
		return dto.TickOutput{Triggered: true, Alarm: alarmdto.AlarmOutput{ID: "a", Time: "07:30"}}, nil
	}
	if s.ticks == 1 {
		return dto.TickOutput{}, errors.New("transient")
	}
	return dto.TickOutput{}, nil
}

func (s *stubController) Snapshot(context.Context) (dto.Snapshot, error) { return dto.Snapshot{}, nil }
func (s *stubController) Active() (alarmdto.AlarmOutput, error)          { return alarmdto.AlarmOutput{}, nil }
func (s *stubController) AddAlarm(context.Context, alarmdto.AddInput) (alarmdto.AlarmOutput, error) {
	return alarmdto.AlarmOutput{}, nil
}
func (s *stubController) DeleteAlarm(context.Context, string) (alarmdto.DeleteOutput, error) {
	return alarmdto.DeleteOutput{}, nil
}
func (s *stubController) ToggleAlarm(context.Context, string) (alarmdto.ToggleOutput, error) {
	return alarmdto.ToggleOutput{}, nil
}
func (s *stubController) UpdateProfile(context.Context, profiledto.UpdateInput) (profiledto.ProfileOutput, error) {
	return profiledto.ProfileOutput{}, nil
}
func (s *stubController) SaveSettings(context.Context, profiledto.UpdateInput) (profiledto.ProfileOutput, error) {
	return profiledto.ProfileOutput{}, nil
}
func (s *stubController) StylizePhoto(context.Context) (profiledto.StylizeOutput, error) {
	return profiledto.StylizeOutput{}, nil
}
func (s *stubController) OpenSettings()  {}
func (s *stubController) CloseSettings() {}
func (s *stubController) StylizeDraft(context.Context, string) (profiledto.DraftOutput, error) {
	return profiledto.DraftOutput{}, nil
}
func (s *stubController) Dismiss() (alarmdto.AlarmOutput, error) {
	return alarmdto.AlarmOutput{}, nil
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

func TestTriggerLoopTicksUntilCancelled(t *testing.T) {
	t.Parallel()
	ctrl := &stubController{trigger: 3}
	loop := NewTriggerLoop(ctrl, wallClock{}, 5*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	triggered := make(chan dto.TickOutput, 1)
	loop.OnTrigger(func(_ context.Context, out dto.TickOutput) {
		triggered <- out
		cancel()
	})

	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	select {
	case out := <-triggered:
		require.Equal(t, "a", out.Alarm.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("trigger loop never fired")
	}
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("trigger loop did not stop after cancel")
	}
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()
	require.GreaterOrEqual(t, ctrl.ticks, 3)
}
