package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/quillhq/noticesvc/internal/core"
)

// GetWorkspace fetches workspace branding by id.
func (s *Store) GetWorkspace(ctx context.Context, workspaceID int64) (core.Workspace, error) {
	var ws core.Workspace
	err := s.pool.QueryRow(ctx, `
		SELECT workspace_id, name, logo_url, created_at
		FROM ntc.workspaces
		WHERE workspace_id = $1`,
		workspaceID,
	).Scan(&ws.WorkspaceID, &ws.Name, &ws.LogoURL, &ws.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Workspace{}, core.ErrNoRecord
	}
	if err != nil {
		return core.Workspace{}, fmt.Errorf("get workspace: %w", err)
	}
	return ws, nil
}

// CreateWorkspace registers a workspace. Used by provisioning and tests.
func (s *Store) CreateWorkspace(ctx context.Context, ws core.Workspace) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO ntc.workspaces (workspace_id, name, logo_url)
		VALUES ($1, $2, $3)`,
		ws.WorkspaceID, ws.Name, ws.LogoURL,
	)
	if err != nil {
		return fmt.Errorf("insert workspace: %w", err)
	}
	return nil
}
