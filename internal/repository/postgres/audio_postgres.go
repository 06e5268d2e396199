package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"audiodrop/internal/model"
	"audiodrop/internal/repository"
)

// AudioPostgres is a PostgreSQL implementation of repository.AudioRepository.
// The whole list lives in one JSONB row keyed by the storage key.
type AudioPostgres struct {
	db  *sql.DB
	key string
}

// NewAudioPostgres creates a new AudioPostgres repository.
func NewAudioPostgres(db *sql.DB, key string) *AudioPostgres {
	return &AudioPostgres{db: db, key: key}
}

var _ repository.AudioRepository = (*AudioPostgres)(nil)

// Load fetches the stored payload. A missing row is an empty list.
func (r *AudioPostgres) Load(ctx context.Context) ([]model.AudioRecord, error) {
	const q = `
		SELECT payload
		FROM audio_library
		WHERE storage_key = $1
	`
	var payload []byte
	if err := r.db.QueryRowContext(ctx, q, r.key).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []model.AudioRecord{}, nil
		}
		return []model.AudioRecord{}, fmt.Errorf("select audio_library: %w", err)
	}
	return repository.Decode(payload)
}

// Save upserts the full serialized list.
func (r *AudioPostgres) Save(ctx context.Context, records []model.AudioRecord) error {
	b, err := repository.Encode(records)
	if err != nil {
		return fmt.Errorf("encode audio list: %w", err)
	}
	const q = `
		INSERT INTO audio_library (storage_key, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (storage_key)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
	`
	if _, err := r.db.ExecContext(ctx, q, r.key, string(b)); err != nil {
		return fmt.Errorf("upsert audio_library: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (r *AudioPostgres) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
