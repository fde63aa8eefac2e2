package out

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"holoalarm/internal/modules/profile/domain"
	profileout "holoalarm/internal/modules/profile/port/out"
	apperrors "holoalarm/internal/platform/errors"
	"holoalarm/internal/platform/kv"
)

// Key is the storage key of the profile document.
const Key = "profile"

type KVRepository struct {
	store kv.Store
	log   *zap.Logger
}

func NewKVRepository(store kv.Store, log *zap.Logger) profileout.Repository {
	return &KVRepository{store: store, log: log}
}

func (r *KVRepository) Load(ctx context.Context) (domain.Profile, error) {
	profile, err := kv.Load(ctx, r.store, Key, domain.Default())
	if errors.Is(err, apperrors.ErrCorruptDocument) {
		r.log.Warn("stored profile is unreadable, using defaults", zap.Error(err))
		return domain.Default(), nil
	}
	if err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

func (r *KVRepository) Save(ctx context.Context, profile domain.Profile) error {
	return kv.Save(ctx, r.store, Key, profile)
}
