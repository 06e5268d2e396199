package service

import (
	"context"
	"errors"
	"fmt"

	"audiodrop/internal/ingest"
	"audiodrop/internal/library"
	"audiodrop/internal/metadata"
	"audiodrop/internal/model"
	"audiodrop/internal/player"
)

var (
	ErrIDRequired = library.ErrIDRequired
	ErrNotFound   = library.ErrNotFound
)

// AudioListResult is the service-level DTO for the audio list.
type AudioListResult struct {
	Items []model.AudioRecord `json:"data"`
	Total int                 `json:"total"`
}

// UploadResult reports what an upload added to the list.
type UploadResult struct {
	Items    []model.AudioRecord `json:"data"`
	Accepted int                 `json:"accepted"`
	Skipped  int                 `json:"skipped"`
}

// AudioService defines the use cases for handling uploaded audio.
type AudioService interface {
	// Upload ingests files and appends every accepted one to the list in a single step.
	// Files with another content type are skipped; a read failure adds nothing.
	Upload(ctx context.Context, files []ingest.File) (*UploadResult, error)

	// List returns every record in insertion order.
	List(ctx context.Context) (*AudioListResult, error)

	// Get returns a single record by its ID.
	Get(ctx context.Context, id string) (*model.AudioRecord, error)

	// Delete removes a record by ID. Deleting an unknown ID is a no-op.
	Delete(ctx context.Context, id string) error

	// Content returns the decoded media type and bytes of a record.
	Content(ctx context.Context, id string) (string, []byte, error)

	// Tags reads embedded tags from a record.
	Tags(ctx context.Context, id string) (*metadata.Tags, error)

	// Toggle flips the play state of a record's row.
	Toggle(ctx context.Context, id string) (player.Transition, error)

	// Ended marks a record's row as having reached end of media.
	Ended(ctx context.Context, id string) (player.Transition, error)

	// State returns the play state of a record's row.
	State(id string) player.State

	// ResetPlayback pauses every row, e.g. when the page is rendered afresh.
	ResetPlayback()

	// AcceptedMIME is the content type uploads must declare.
	AcceptedMIME() string

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// audioService is a concrete implementation of AudioService.
type audioService struct {
	lib     *library.Library
	ingest  *ingest.Ingester
	players *player.Registry
}

// NewAudioService constructs a new AudioService. players should be built
// with lib.Has as its row guard.
func NewAudioService(lib *library.Library, in *ingest.Ingester, players *player.Registry) AudioService {
	return &audioService{lib: lib, ingest: in, players: players}
}

func (s *audioService) Upload(ctx context.Context, files []ingest.File) (*UploadResult, error) {
	batch, err := s.ingest.Ingest(ctx, files)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	if err := s.lib.Append(ctx, batch); err != nil {
		return nil, fmt.Errorf("append: %w", err)
	}
	return &UploadResult{Items: batch, Accepted: len(batch), Skipped: len(files) - len(batch)}, nil
}

func (s *audioService) List(ctx context.Context) (*AudioListResult, error) {
	items := s.lib.List()
	return &AudioListResult{Items: items, Total: len(items)}, nil
}

func (s *audioService) Get(ctx context.Context, id string) (*model.AudioRecord, error) {
	rec, err := s.lib.Get(id)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *audioService) Delete(ctx context.Context, id string) error {
	if _, err := s.lib.Delete(ctx, id); err != nil {
		return err
	}
	s.players.Forget(id)
	return nil
}

func (s *audioService) Content(ctx context.Context, id string) (string, []byte, error) {
	rec, err := s.lib.Get(id)
	if err != nil {
		return "", nil, err
	}
	return metadata.Decode(rec.URL)
}

func (s *audioService) Tags(ctx context.Context, id string) (*metadata.Tags, error) {
	rec, err := s.lib.Get(id)
	if err != nil {
		return nil, err
	}
	return metadata.FromDataURL(rec.URL)
}

func (s *audioService) Toggle(ctx context.Context, id string) (player.Transition, error) {
	if id == "" {
		return player.Transition{}, ErrIDRequired
	}
	return rowResult(s.players.Toggle(id))
}

func (s *audioService) Ended(ctx context.Context, id string) (player.Transition, error) {
	if id == "" {
		return player.Transition{}, ErrIDRequired
	}
	return rowResult(s.players.Ended(id))
}

func rowResult(tr player.Transition, err error) (player.Transition, error) {
	if errors.Is(err, player.ErrUnknownRow) {
		return player.Transition{}, ErrNotFound
	}
	return tr, err
}

func (s *audioService) ResetPlayback() {
	s.players.Reset()
}

func (s *audioService) State(id string) player.State {
	return s.players.State(id)
}

func (s *audioService) AcceptedMIME() string {
	return s.ingest.AcceptedMIME()
}

func (s *audioService) Ping(ctx context.Context) error {
	return s.lib.Ping(ctx)
}
