package out

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"holoalarm/internal/modules/alarm/domain"
	alarmout "holoalarm/internal/modules/alarm/port/out"
	apperrors "holoalarm/internal/platform/errors"
	"holoalarm/internal/platform/kv"
)

// Key is the storage key of the alarm list document.
const Key = "alarms"

type KVRepository struct {
	store kv.Store
	log   *zap.Logger
}

func NewKVRepository(store kv.Store, log *zap.Logger) alarmout.Repository {
	return &KVRepository{store: store, log: log}
}

func (r *KVRepository) Load(ctx context.Context) ([]domain.Alarm, error) {
	alarms, err := kv.Load(ctx, r.store, Key, []domain.Alarm{})
	if errors.Is(err, apperrors.ErrCorruptDocument) {
		r.log.Warn("stored alarms are unreadable, starting with an empty list", zap.Error(err))
		return []domain.Alarm{}, nil
	}
	if err != nil {
		return nil, err
	}
	return dedupe(alarms, r.log), nil
}

func (r *KVRepository) Save(ctx context.Context, alarms []domain.Alarm) error {
	if alarms == nil {
		alarms = []domain.Alarm{}
	}
	return kv.Save(ctx, r.store, Key, alarms)
}

// dedupe keeps the first alarm of each id; a hand-edited document is the
// only way to get duplicates.
func dedupe(alarms []domain.Alarm, log *zap.Logger) []domain.Alarm {
	seen := make(map[string]bool, len(alarms))
	out := make([]domain.Alarm, 0, len(alarms))
	for _, a := range alarms {
		if seen[a.ID] {
			log.Warn("dropping alarm with duplicate id", zap.String("alarm_id", a.ID))
			continue
		}
		seen[a.ID] = true
		out = append(out, a)
	}
	return out
}
