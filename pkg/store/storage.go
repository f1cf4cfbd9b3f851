package store

import (
	"context"
	"errors"
	"time"

	"wikigraph/pkg/common"
)

// ErrExplorationNotFound marks a lookup for an exploration id that does not
// exist.
var ErrExplorationNotFound = errors.New("exploration not found")

// Exploration is a saved graph with its user-facing metadata. Graph is nil in
// listings; it is only loaded wholesale for single lookups.
type Exploration struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	RootID      string        `json:"root_id"`
	Tags        []string      `json:"tags"`
	Graph       *common.Graph `json:"graph,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ListParams filters and pages an exploration listing. Zero values mean no
// filter; Limit falls back to a server-side default.
type ListParams struct {
	Search string
	Tag    string
	RootID string
	Limit  int
	Offset int
}

// ExplorationStorage persists exploration graphs wholesale. The engine never
// talks to it; routing and the worker do.
type ExplorationStorage interface {
	SaveExploration(ctx context.Context, exp *Exploration) error
	GetExploration(ctx context.Context, id string) (*Exploration, error)
	ListExplorations(ctx context.Context, params ListParams) ([]Exploration, int, error)
	UpdateExploration(ctx context.Context, exp *Exploration) error
	DeleteExploration(ctx context.Context, id string) error
}
