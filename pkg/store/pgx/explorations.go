package pgx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"wikigraph/pkg/common"
	"wikigraph/pkg/store"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgxv5.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgxv5.Row
	Begin(ctx context.Context) (pgxv5.Tx, error)
}

// ExplorationDBStorage implements store.ExplorationStorage on PostgreSQL. The
// whole graph document lives in one jsonb column; it is only ever read and
// written wholesale.
type ExplorationDBStorage struct {
	conn pgxIConn
}

// NewExplorationDBStorage creates the storage around an existing connection
// or pool.
func NewExplorationDBStorage(conn pgxIConn) *ExplorationDBStorage {
	return &ExplorationDBStorage{conn: conn}
}

func (s *ExplorationDBStorage) SaveExploration(ctx context.Context, exp *store.Exploration) error {
	graphDoc, err := json.Marshal(exp.Graph)
	if err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}
	tags := exp.Tags
	if tags == nil {
		tags = []string{}
	}

	row := s.conn.QueryRow(ctx, `
		INSERT INTO explorations (id, name, description, root_id, tags, graph)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		exp.ID, exp.Name, exp.Description, exp.RootID, tags, graphDoc)
	if err := row.Scan(&exp.CreatedAt, &exp.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save exploration %q: %w", exp.ID, err)
	}
	return nil
}

func (s *ExplorationDBStorage) GetExploration(ctx context.Context, id string) (*store.Exploration, error) {
	row := s.conn.QueryRow(ctx, `
		SELECT id, name, description, root_id, tags, graph, created_at, updated_at
		FROM explorations
		WHERE id = $1`, id)

	var exp store.Exploration
	var graphDoc []byte
	err := row.Scan(&exp.ID, &exp.Name, &exp.Description, &exp.RootID,
		&exp.Tags, &graphDoc, &exp.CreatedAt, &exp.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgxv5.ErrNoRows) {
			return nil, fmt.Errorf("exploration %q: %w", id, store.ErrExplorationNotFound)
		}
		return nil, fmt.Errorf("failed to load exploration %q: %w", id, err)
	}

	if len(graphDoc) > 0 {
		exp.Graph = &common.Graph{}
		if err := json.Unmarshal(graphDoc, exp.Graph); err != nil {
			return nil, fmt.Errorf("failed to decode graph of exploration %q: %w", id, err)
		}
	}
	return &exp, nil
}

func (s *ExplorationDBStorage) ListExplorations(ctx context.Context, params store.ListParams) ([]store.Exploration, int, error) {
	where := "WHERE TRUE"
	args := []any{}
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		where += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}
	if params.Tag != "" {
		args = append(args, params.Tag)
		where += fmt.Sprintf(" AND $%d = ANY(tags)", len(args))
	}
	if params.RootID != "" {
		args = append(args, params.RootID)
		where += fmt.Sprintf(" AND root_id = $%d", len(args))
	}

	var total int
	if err := s.conn.QueryRow(ctx, "SELECT COUNT(*) FROM explorations "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count explorations: %w", err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit)
	paging := fmt.Sprintf(" ORDER BY updated_at DESC, id LIMIT $%d", len(args))
	args = append(args, params.Offset)
	paging += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := s.conn.Query(ctx, `
		SELECT id, name, description, root_id, tags, created_at, updated_at
		FROM explorations `+where+paging, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list explorations: %w", err)
	}
	defer rows.Close()

	explorations := make([]store.Exploration, 0)
	for rows.Next() {
		var exp store.Exploration
		if err := rows.Scan(&exp.ID, &exp.Name, &exp.Description, &exp.RootID,
			&exp.Tags, &exp.CreatedAt, &exp.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan exploration: %w", err)
		}
		explorations = append(explorations, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list explorations: %w", err)
	}
	return explorations, total, nil
}

func (s *ExplorationDBStorage) UpdateExploration(ctx context.Context, exp *store.Exploration) error {
	tags := exp.Tags
	if tags == nil {
		tags = []string{}
	}

	var row pgxv5.Row
	if exp.Graph != nil {
		graphDoc, err := json.Marshal(exp.Graph)
		if err != nil {
			return fmt.Errorf("failed to encode graph: %w", err)
		}
		row = s.conn.QueryRow(ctx, `
			UPDATE explorations
			SET name = $2, description = $3, tags = $4, graph = $5, updated_at = NOW()
			WHERE id = $1
			RETURNING updated_at`,
			exp.ID, exp.Name, exp.Description, tags, graphDoc)
	} else {
		row = s.conn.QueryRow(ctx, `
			UPDATE explorations
			SET name = $2, description = $3, tags = $4, updated_at = NOW()
			WHERE id = $1
			RETURNING updated_at`,
			exp.ID, exp.Name, exp.Description, tags)
	}
	if err := row.Scan(&exp.UpdatedAt); err != nil {
		if errors.Is(err, pgxv5.ErrNoRows) {
			return fmt.Errorf("exploration %q: %w", exp.ID, store.ErrExplorationNotFound)
		}
		return fmt.Errorf("failed to update exploration %q: %w", exp.ID, err)
	}
	return nil
}

func (s *ExplorationDBStorage) DeleteExploration(ctx context.Context, id string) error {
	tag, err := s.conn.Exec(ctx, "DELETE FROM explorations WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete exploration %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("exploration %q: %w", id, store.ErrExplorationNotFound)
	}
	return nil
}
