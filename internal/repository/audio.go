package repository

import (
	"context"
	"encoding/json"
	"errors"

	"audiodrop/internal/model"
)

// ErrCorrupt marks stored content that could not be parsed as an audio list.
var ErrCorrupt = errors.New("stored audio list is not valid JSON")

// AudioRepository mirrors the whole audio list under a single key.
// There are no partial updates: Save replaces every previously stored record.
type AudioRepository interface {
	// Load returns the stored list. A missing key yields an empty list and a nil error.
	// Unparsable content yields an empty list and an error wrapping ErrCorrupt.
	Load(ctx context.Context) ([]model.AudioRecord, error)

	// Save serializes the full list and overwrites the stored copy.
	Save(ctx context.Context, records []model.AudioRecord) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// Encode serializes records as a JSON array. A nil list encodes as [].
func Encode(records []model.AudioRecord) ([]byte, error) {
	if records == nil {
		records = []model.AudioRecord{}
	}
	return json.Marshal(records)
}

// Decode parses a stored JSON array. Empty input and a JSON null both decode
// to an empty list.
func Decode(b []byte) ([]model.AudioRecord, error) {
	out := make([]model.AudioRecord, 0)
	if len(b) == 0 {
		return out, nil
	}
	var records []model.AudioRecord
	if err := json.Unmarshal(b, &records); err != nil {
		return out, errors.Join(ErrCorrupt, err)
	}
	if records == nil {
		return out, nil
	}
	return records, nil
}
