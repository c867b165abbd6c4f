// Package server is a reference implementation of the records service the
// client talks to: GET/POST /api/records, PUT/DELETE /api/records/{id}.
package server

import (
	"context"
	"errors"

	"feedlog-cli/internal/model"
)

var ErrNotFound = errors.New("record not found")

// Repo stores feeding records. List returns records newest first.
type Repo interface {
	List(ctx context.Context) ([]model.Record, error)
	Get(ctx context.Context, id string) (model.Record, error)
	Create(ctx context.Context, rec model.Record) error
	Update(ctx context.Context, rec model.Record) error
	Delete(ctx context.Context, id string) error
}
