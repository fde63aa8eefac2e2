package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"holoalarm/internal/modules/profile/domain"
	profileout "holoalarm/internal/modules/profile/port/out"
	apperrors "holoalarm/internal/platform/errors"
)

// ProfileService owns the singleton profile and writes it through on change.
// The remote stylization call runs outside the lock.
type ProfileService struct {
	repo     profileout.Repository
	stylizer profileout.Stylizer
	log      *zap.Logger

	mu      sync.Mutex
	profile domain.Profile
	loaded  bool
}

func NewProfileService(repo profileout.Repository, stylizer profileout.Stylizer, log *zap.Logger) *ProfileService {
	return &ProfileService{repo: repo, stylizer: stylizer, log: log}
}

func (s *ProfileService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	profile, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	s.profile = profile
	s.loaded = true
	return nil
}

func (s *ProfileService) Get(ctx context.Context) (domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Profile{}, err
	}
	return s.profile.Clone(), nil
}

// Update replaces the profile wholesale.
func (s *ProfileService) Update(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Profile{}, err
	}
	next := profile.Clone()
	if err := s.repo.Save(ctx, next); err != nil {
		return domain.Profile{}, err
	}
	s.profile = next
	return next.Clone(), nil
}

// Stylize replaces the stored photo with its holographic rendition. A
// service failure leaves the profile untouched and is reported through the
// returned reason, not as an error.
func (s *ProfileService) Stylize(ctx context.Context) (domain.Profile, bool, string, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return domain.Profile{}, false, "", err
	}
	photo, err := current.Photo()
	if err != nil {
		return domain.Profile{}, false, "", err
	}
	image, reason := s.render(ctx, photo)
	if image == nil {
		return current, false, reason, nil
	}

	// Settings saved while the request was in flight win over the old snapshot.
	latest, err := s.Get(ctx)
	if err != nil {
		return domain.Profile{}, false, "", err
	}
	next, err := s.Update(ctx, latest.WithPhoto(image))
	if err != nil {
		return domain.Profile{}, false, "", err
	}
	s.log.Info("avatar stylized", zap.Int("bytes", len(image)))
	return next, true, "", nil
}

// StylizeDraft renders an unsaved photo, e.g. one just loaded in the
// settings form. The stored profile is not read or written.
func (s *ProfileService) StylizeDraft(ctx context.Context, photoBase64 string) ([]byte, bool, string, error) {
	photo, err := domain.DecodePhoto(photoBase64)
	if err != nil {
		return nil, false, "", err
	}
	image, reason := s.render(ctx, photo)
	if image == nil {
		return nil, false, reason, nil
	}
	s.log.Info("draft avatar stylized", zap.Int("bytes", len(image)))
	return image, true, "", nil
}

// render returns nil and a reason when no stylized image was produced.
func (s *ProfileService) render(ctx context.Context, photo []byte) ([]byte, string) {
	if s.stylizer == nil {
		return nil, apperrors.ErrServiceUnavailable.Error()
	}
	image, err := s.stylizer.Stylize(ctx, photo, domain.SniffMIME(photo))
	if err != nil {
		s.log.Warn("avatar stylization failed", zap.Error(err))
		if errors.Is(err, apperrors.ErrServiceUnavailable) {
			return nil, err.Error()
		}
		return nil, "no stylized image"
	}
	if len(image) == 0 {
		return nil, "no stylized image"
	}
	return image, ""
}
