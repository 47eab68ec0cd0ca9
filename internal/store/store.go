// Package store keeps generated canvases keyed by id.
package store

import (
	"context"
	"errors"

	"business-canvas/internal/models"
)

var (
	ErrNotFound      = errors.New("canvas not found")
	ErrAlreadyExists = errors.New("canvas already exists")
)

// UpdateFunc mutates a canvas in place. Returning an error aborts the update
// and leaves the stored canvas untouched.
type UpdateFunc func(c *models.BusinessCanvas) error

// Store is the canvas keyspace. Implementations never hand out references to
// their internal state: callers always receive copies.
type Store interface {
	Create(ctx context.Context, c *models.BusinessCanvas) error
	Get(ctx context.Context, id string) (*models.BusinessCanvas, error)
	List(ctx context.Context) ([]*models.BusinessCanvas, error)
	Update(ctx context.Context, id string, fn UpdateFunc) (*models.BusinessCanvas, error)
	Delete(ctx context.Context, id string) error
	Len(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}
