package server

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"feedlog-cli/internal/model"
)

type memoryRepo struct {
	mu   sync.RWMutex
	byID map[string]model.Record
}

// NewMemoryRepo returns an in-memory Repo, used by tests and by `serve`
// when no database path is given.
func NewMemoryRepo() Repo {
	return &memoryRepo{byID: make(map[string]model.Record)}
}

func (r *memoryRepo) List(ctx context.Context) ([]model.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Record, 0, len(r.byID))
	for _, rec := range r.byID {
		out = append(out, rec)
	}
	// Newest first; id as a tie-break keeps the order stable.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memoryRepo) Get(ctx context.Context, id string) (model.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return model.Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *memoryRepo) Create(ctx context.Context, rec model.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("record id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("record already exists")
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *memoryRepo) Update(ctx context.Context, rec model.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rec.ID]; !exists {
		return ErrNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
