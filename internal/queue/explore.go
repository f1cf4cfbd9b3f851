package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"wikigraph/internal/storage"
	"wikigraph/pkg/explorer"
	"wikigraph/pkg/logger"
	"wikigraph/pkg/store"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ExploreJobMsg is one async exploration job. The API assigns the exploration
// id before publishing so the caller can poll for the result.
type ExploreJobMsg struct {
	ExplorationID string   `json:"exploration_id"`
	RootTitle     string   `json:"root_title"`
	Depth         int      `json:"depth"`
	MaxNodes      int      `json:"max_nodes"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Tags          []string `json:"tags"`
}

// ProcessExploreMessage builds the requested graph, persists it under the
// pre-assigned exploration id and archives the graph document to S3. Returned
// errors send the message through the retry/DLQ path.
func ProcessExploreMessage(
	ctx context.Context,
	s3Client *s3.Client,
	exp *explorer.Explorer,
	explorations store.ExplorationStorage,
	body string,
) error {
	var msg ExploreJobMsg
	if err := json.Unmarshal([]byte(body), &msg); err != nil {
		return fmt.Errorf("failed to unmarshal explore job: %w", err)
	}
	if msg.ExplorationID == "" || msg.RootTitle == "" {
		return fmt.Errorf("explore job missing exploration_id or root_title")
	}

	logger.Info("[Queue] Processing explore job",
		"exploration_id", msg.ExplorationID,
		"root", msg.RootTitle,
		"depth", msg.Depth,
		"max_nodes", msg.MaxNodes)

	g, err := exp.Explore(ctx, msg.RootTitle, msg.Depth, msg.MaxNodes)
	if err != nil {
		return fmt.Errorf("exploration of %q failed: %w", msg.RootTitle, err)
	}

	name := msg.Name
	if name == "" {
		name = msg.RootTitle
	}
	record := &store.Exploration{
		ID:          msg.ExplorationID,
		Name:        name,
		Description: msg.Description,
		RootID:      g.Root,
		Tags:        msg.Tags,
		Graph:       g,
	}
	if err := explorations.SaveExploration(ctx, record); err != nil {
		return fmt.Errorf("failed to persist exploration %q: %w", msg.ExplorationID, err)
	}

	doc, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to encode graph for archive: %w", err)
	}
	key := storage.GraphArchiveKey(msg.ExplorationID)
	if err := storage.PutJSON(ctx, s3Client, key, doc); err != nil {
		// The row is already saved; the archive is best effort.
		logger.Error("[Queue] Failed to archive graph", "key", key, "err", err)
	}

	logger.Info("[Queue] Explore job finished",
		"exploration_id", msg.ExplorationID,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount())
	return nil
}
