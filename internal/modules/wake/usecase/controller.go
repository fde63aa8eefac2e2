package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	alarmdto "holoalarm/internal/modules/alarm/dto"
	alarmin "holoalarm/internal/modules/alarm/port/in"
	profiledto "holoalarm/internal/modules/profile/dto"
	profilein "holoalarm/internal/modules/profile/port/in"
	"holoalarm/internal/modules/wake/domain"
	"holoalarm/internal/modules/wake/dto"
	wakein "holoalarm/internal/modules/wake/port/in"
	"holoalarm/internal/platform/clock"
	apperrors "holoalarm/internal/platform/errors"
)

// Controller is the three-view state machine. Every operation runs to
// completion under mu; only avatar stylization leaves the lock while the
// remote call is in flight.
type Controller struct {
	alarms   alarmin.Usecase
	profiles profilein.Usecase
	clock    clock.Clock
	log      *zap.Logger

	mu     sync.Mutex
	guard  *domain.Guard
	view   domain.View
	active *alarmdto.AlarmOutput
}

func NewController(alarms alarmin.Usecase, profiles profilein.Usecase, clock clock.Clock, log *zap.Logger) wakein.Controller {
	return &Controller{
		alarms:   alarms,
		profiles: profiles,
		clock:    clock,
		log:      log,
		guard:    domain.NewGuard(),
		view:     domain.ViewMain,
	}
}

func (c *Controller) Snapshot(ctx context.Context) (dto.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	alarms, err := c.alarms.List(ctx)
	if err != nil {
		return dto.Snapshot{}, err
	}
	profile, err := c.profiles.Get(ctx)
	if err != nil {
		return dto.Snapshot{}, err
	}
	snap := dto.Snapshot{
		View:    string(c.view),
		Now:     c.clock.Now(),
		Alarms:  alarms,
		Profile: profile,
	}
	if c.active != nil {
		active := *c.active
		snap.Active = &active
	}
	return snap, nil
}

// Tick checks the alarm list against now and enters Alarming on a match.
func (c *Controller) Tick(ctx context.Context, now time.Time) (dto.TickOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	alarms, err := c.alarms.List(ctx)
	if err != nil {
		return dto.TickOutput{}, fmt.Errorf("tick: %w", err)
	}
	candidates := make([]domain.Candidate, len(alarms))
	byID := make(map[string]alarmdto.AlarmOutput, len(alarms))
	for i, a := range alarms {
		candidates[i] = domain.Candidate{ID: a.ID, Time: a.Time, Label: a.Label, Enabled: a.Enabled}
		byID[a.ID] = a
	}

	hit, ok := c.guard.Evaluate(now, candidates, c.view, c.active != nil)
	if !ok {
		return dto.TickOutput{}, nil
	}
	active := byID[hit.ID]
	c.active = &active
	c.view = domain.ViewAlarming
	c.log.Debug("entered alarming view", zap.String("alarm_id", active.ID), zap.Time("at", now))

	name := ""
	if profile, err := c.profiles.Get(ctx); err == nil {
		name = profile.Name
	}
	return dto.TickOutput{
		Triggered: true,
		Alarm:     active,
		Message:   domain.WakeMessage(name, active.Time, active.Label),
	}, nil
}

func (c *Controller) Active() (alarmdto.AlarmOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return alarmdto.AlarmOutput{}, apperrors.ErrNoActiveAlarm
	}
	return *c.active, nil
}

func (c *Controller) AddAlarm(ctx context.Context, input alarmdto.AddInput) (alarmdto.AlarmOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alarms.Add(ctx, input)
}

func (c *Controller) DeleteAlarm(ctx context.Context, id string) (alarmdto.DeleteOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alarms.Delete(ctx, id)
}

// ToggleAlarm flips enabled. Disabling the active alarm does not dismiss it.
func (c *Controller) ToggleAlarm(ctx context.Context, id string) (alarmdto.ToggleOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alarms.Toggle(ctx, id)
}

func (c *Controller) UpdateProfile(ctx context.Context, input profiledto.UpdateInput) (profiledto.ProfileOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profiles.Update(ctx, input)
}

// SaveSettings stores the profile and returns to Main.
func (c *Controller) SaveSettings(ctx context.Context, input profiledto.UpdateInput) (profiledto.ProfileOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out, err := c.profiles.Update(ctx, input)
	if err != nil {
		return profiledto.ProfileOutput{}, err
	}
	if c.view == domain.ViewSettings {
		c.view = domain.ViewMain
	}
	return out, nil
}

func (c *Controller) StylizePhoto(ctx context.Context) (profiledto.StylizeOutput, error) {
	return c.profiles.Stylize(ctx)
}

// StylizeDraft renders a photo that is still only in the settings form.
func (c *Controller) StylizeDraft(ctx context.Context, photoBase64 string) (profiledto.DraftOutput, error) {
	return c.profiles.StylizeDraft(ctx, photoBase64)
}

func (c *Controller) OpenSettings() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view == domain.ViewMain {
		c.view = domain.ViewSettings
	}
}

func (c *Controller) CloseSettings() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view == domain.ViewSettings {
		c.view = domain.ViewMain
	}
}

// Dismiss clears the active alarm and returns to Main from any view.
func (c *Controller) Dismiss() (alarmdto.AlarmOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = domain.ViewMain
	if c.active == nil {
		return alarmdto.AlarmOutput{}, apperrors.ErrNoActiveAlarm
	}
	cleared := *c.active
	c.active = nil
	c.log.Info("alarm dismissed", zap.String("alarm_id", cleared.ID))
	return cleared, nil
}
