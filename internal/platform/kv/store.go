// Package kv persists whole JSON documents under fixed keys. Every save
// rewrites the full document; there are no partial updates or migrations.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "holoalarm/internal/platform/errors"
)

// Store is a byte-oriented key-value store. Get returns apperrors.ErrNotFound
// for a key that was never written.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Load decodes the document stored under key. A missing key yields def. A
// document that fails to decode also yields def, together with an error
// wrapping apperrors.ErrCorruptDocument so the caller can decide to carry on.
func Load[T any](ctx context.Context, s Store, key string, def T) (T, error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, apperrors.ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("load %s: %w", key, err)
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return def, fmt.Errorf("decode %s: %w: %w", key, apperrors.ErrCorruptDocument, err)
	}
	return v, nil
}

// Save encodes value and writes it under key, replacing the previous document.
func Save[T any](ctx context.Context, s Store, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
