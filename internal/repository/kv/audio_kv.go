// Package kv stores the audio list as one JSON object in a storage.Storage,
// the same way a browser keeps it under a single local-storage key.
package kv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"audiodrop/internal/model"
	"audiodrop/internal/repository"
	"audiodrop/internal/storage"
)

const contentType = "application/json"

// Repository is a repository.AudioRepository over a blob store key.
type Repository struct {
	store storage.Storage
	key   string
}

// New creates a key-value repository writing to key in store.
func New(store storage.Storage, key string) *Repository {
	return &Repository{store: store, key: key}
}

var _ repository.AudioRepository = (*Repository)(nil)

// Load reads and parses the stored list.
func (r *Repository) Load(ctx context.Context) ([]model.AudioRecord, error) {
	rc, _, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return []model.AudioRecord{}, nil
		}
		return []model.AudioRecord{}, fmt.Errorf("read %s: %w", r.key, err)
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return []model.AudioRecord{}, fmt.Errorf("read %s: %w", r.key, err)
	}
	return repository.Decode(b)
}

// Save overwrites the key with the full serialized list.
func (r *Repository) Save(ctx context.Context, records []model.AudioRecord) error {
	b, err := repository.Encode(records)
	if err != nil {
		return fmt.Errorf("encode audio list: %w", err)
	}
	if _, err := r.store.Put(ctx, r.key, bytes.NewReader(b), storage.PutObjectOptions{
		Size:        int64(len(b)),
		ContentType: contentType,
	}); err != nil {
		return fmt.Errorf("write %s: %w", r.key, err)
	}
	return nil
}

// Ping reads the key; an absent key still means the store is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	rc, _, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return nil
		}
		return err
	}
	return rc.Close()
}
