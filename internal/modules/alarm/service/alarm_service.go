package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"holoalarm/internal/modules/alarm/domain"
	alarmout "holoalarm/internal/modules/alarm/port/out"
	"holoalarm/internal/platform/clock"
	"holoalarm/internal/platform/id"
)

const maxIDAttempts = 8

// AlarmService keeps the alarm list in memory and writes the full list
// through to the repository on every change. The list is read once.
type AlarmService struct {
	clock    clock.Clock
	idGen    id.Generator
	repo     alarmout.Repository
	exporter alarmout.Exporter

	alarms []domain.Alarm
	loaded bool
}

func NewAlarmService(clock clock.Clock, idGen id.Generator, repo alarmout.Repository, exporter alarmout.Exporter) *AlarmService {
	return &AlarmService{clock: clock, idGen: idGen, repo: repo, exporter: exporter}
}

func (s *AlarmService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	alarms, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load alarms: %w", err)
	}
	s.alarms = alarms
	s.loaded = true
	return nil
}

func (s *AlarmService) List(ctx context.Context) ([]domain.Alarm, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return domain.CloneAll(s.alarms), nil
}

func (s *AlarmService) Add(ctx context.Context, hm, label string, repeat []string) (domain.Alarm, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Alarm{}, err
	}
	newID, err := s.freshID()
	if err != nil {
		return domain.Alarm{}, err
	}
	alarm, err := domain.New(newID, hm, label, repeat)
	if err != nil {
		return domain.Alarm{}, err
	}
	next := append(domain.CloneAll(s.alarms), alarm)
	if err := s.commit(ctx, next); err != nil {
		return domain.Alarm{}, err
	}
	return alarm.Clone(), nil
}

func (s *AlarmService) Delete(ctx context.Context, id string) (bool, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return false, err
	}
	next, removed := domain.Remove(s.alarms, id)
	if !removed {
		return false, nil
	}
	if err := s.commit(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

func (s *AlarmService) Toggle(ctx context.Context, id string) (domain.Alarm, bool, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Alarm{}, false, err
	}
	next, toggled, found := domain.Toggle(s.alarms, id)
	if !found {
		return domain.Alarm{}, false, nil
	}
	if err := s.commit(ctx, next); err != nil {
		return domain.Alarm{}, false, err
	}
	return toggled, true, nil
}

// NextRing returns the next daily occurrence of the alarm's time strictly
// after now. Repeat days are not consulted.
func (s *AlarmService) NextRing(alarm domain.Alarm) (time.Time, error) {
	now := s.clock.Now()
	hm, err := time.Parse(domain.TimeLayout, alarm.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse alarm time %q: %w", alarm.Time, err)
	}
	start := time.Date(now.Year(), now.Month(), now.Day(), hm.Hour(), hm.Minute(), 0, 0, now.Location())
	rule, err := rrule.NewRRule(rrule.ROption{Freq: rrule.DAILY, Dtstart: start})
	if err != nil {
		return time.Time{}, fmt.Errorf("build daily rule: %w", err)
	}
	return rule.After(now, false), nil
}

func (s *AlarmService) Export(ctx context.Context, includeDisabled bool) ([]byte, int, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, 0, err
	}
	selected := make([]domain.Alarm, 0, len(s.alarms))
	for _, a := range s.alarms {
		if a.Enabled || includeDisabled {
			selected = append(selected, a.Clone())
		}
	}
	if len(selected) == 0 {
		return nil, 0, nil
	}
	var buf bytes.Buffer
	if err := s.exporter.Export(&buf, selected, s.clock.Now()); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), len(selected), nil
}

// commit saves first so the in-memory list never runs ahead of storage.
func (s *AlarmService) commit(ctx context.Context, next []domain.Alarm) error {
	if err := s.repo.Save(ctx, next); err != nil {
		return err
	}
	s.alarms = next
	return nil
}

func (s *AlarmService) freshID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		candidate := s.idGen.New()
		if candidate != "" && !domain.Contains(s.alarms, candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique alarm id")
}
