// Package store persists saved diagrams for the HTTP server's CRUD routes.
//
// Two implementations exist: an in-memory store for tests and single-node
// development, and a MongoDB store for real deployments. Both keep the
// diagram source text verbatim; nothing here parses or validates it.
package store

import (
	"context"
	"time"

	"github.com/laneweave/laneweave/pkg/errors"
)

// Diagram is one saved diagram document.
type Diagram struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Code      string    `json:"code" bson:"code"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// Store is the persistence interface for saved diagrams.
type Store interface {
	// Get returns the diagram with the given id, or ErrCodeDiagramNotFound.
	Get(ctx context.Context, id string) (*Diagram, error)

	// Put inserts or replaces a diagram. CreatedAt is preserved on replace;
	// UpdatedAt is always set to now.
	Put(ctx context.Context, d *Diagram) error

	// Delete removes the diagram with the given id, or returns
	// ErrCodeDiagramNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// Close releases underlying resources.
	Close(ctx context.Context) error
}

// NotFound builds the standard not-found error for a diagram id.
func NotFound(id string) error {
	return errors.New(errors.ErrCodeDiagramNotFound, "diagram %q not found", id)
}
