// Package library holds the in-memory audio list, the single source of truth
// while the service runs. Every mutation is mirrored to the repository as a
// full rewrite; a failed write is logged and counted but never rolls back
// the in-memory list.
package library

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"audiodrop/internal/model"
	"audiodrop/internal/repository"
)

var (
	ErrIDRequired  = errors.New("id is required")
	ErrNotFound    = errors.New("audio record not found")
	ErrDuplicateID = errors.New("duplicate audio record id")
)

// Library is safe for concurrent use.
type Library struct {
	mu      sync.Mutex
	records []model.AudioRecord
	repo    repository.AudioRepository
	log     logrus.FieldLogger

	writeFailures prometheus.Counter
	size          prometheus.Gauge
}

// New returns an empty library mirrored to repo. Metrics are registered on reg
// when it is non-nil.
func New(repo repository.AudioRepository, log logrus.FieldLogger, reg prometheus.Registerer) (*Library, error) {
	l := &Library{
		records: []model.AudioRecord{},
		repo:    repo,
		log:     log.WithField("component", "library"),
		writeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "audio_store_write_failures_total",
			Help: "Number of failed writes of the audio list to its store.",
		}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "audio_records",
			Help: "Number of audio records currently in the library.",
		}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{l.writeFailures, l.size} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return l, nil
}

// Load replaces the in-memory list with the repository content. Any load
// failure starts the library empty; the error is logged, not returned.
func (l *Library) Load(ctx context.Context) {
	records, err := l.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrCorrupt) {
			l.log.WithError(err).Warn("stored audio list unreadable, starting empty")
		} else {
			l.log.WithError(err).Error("failed to load audio list, starting empty")
		}
		records = []model.AudioRecord{}
	}
	records = l.dedupe(records)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = records
	l.size.Set(float64(len(records)))
	l.log.WithField("count", len(records)).Info("audio list loaded")
}

// List returns a copy of the records in insertion order.
func (l *Library) List() []model.AudioRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.AudioRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Get returns the record with id.
func (l *Library) Get(id string) (model.AudioRecord, error) {
	if id == "" {
		return model.AudioRecord{}, ErrIDRequired
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.indexOf(id); i >= 0 {
		return l.records[i], nil
	}
	return model.AudioRecord{}, ErrNotFound
}

// Has reports whether a record with id is listed.
func (l *Library) Has(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.indexOf(id) >= 0
}

// Append adds a whole batch at the end of the list in one step. An empty batch
// changes nothing and is not persisted. A batch carrying an id that is already
// present, or twice within itself, is rejected whole.
func (l *Library) Append(ctx context.Context, batch []model.AudioRecord) error {
	if len(batch) == 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	seen := make(map[string]struct{}, len(l.records)+len(batch))
	for _, r := range l.records {
		seen[r.ID] = struct{}{}
	}
	for _, r := range batch {
		if r.ID == "" {
			return ErrIDRequired
		}
		if _, ok := seen[r.ID]; ok {
			return fmt.Errorf("append %s: %w", r.ID, ErrDuplicateID)
		}
		seen[r.ID] = struct{}{}
	}

	next := make([]model.AudioRecord, 0, len(l.records)+len(batch))
	next = append(next, l.records...)
	next = append(next, batch...)
	l.records = next
	l.persist(ctx)
	return nil
}

// Delete removes the record with id, keeping the order of the rest. It
// reports whether a record was removed; an unknown id is a no-op and is not
// persisted.
func (l *Library) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, ErrIDRequired
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(id)
	if i < 0 {
		return false, nil
	}
	next := make([]model.AudioRecord, 0, len(l.records)-1)
	next = append(next, l.records[:i]...)
	next = append(next, l.records[i+1:]...)
	l.records = next
	l.persist(ctx)
	return true, nil
}

// Ping reports whether the backing repository is reachable.
func (l *Library) Ping(ctx context.Context) error {
	return l.repo.Ping(ctx)
}

// persist must be called with mu held.
func (l *Library) persist(ctx context.Context) {
	l.size.Set(float64(len(l.records)))
	// Saves outlive the request that triggered them.
	if err := l.repo.Save(context.WithoutCancel(ctx), l.records); err != nil {
		l.writeFailures.Inc()
		l.log.WithError(err).WithField("count", len(l.records)).Error("failed to persist audio list")
	}
}

func (l *Library) indexOf(id string) int {
	for i, r := range l.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// dedupe keeps the first record for each id.
func (l *Library) dedupe(records []model.AudioRecord) []model.AudioRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]model.AudioRecord, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.ID]; ok {
			l.log.WithField("id", r.ID).Warn("dropping stored record with duplicate id")
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}
