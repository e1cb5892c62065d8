package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/quillhq/noticesvc/internal/core"
)

// PrimaryRole returns the user's effective role in a workspace: the first
// assigned role ordered owner-first. core.ErrNoRecord when the user holds no
// role there.
func (s *Store) PrimaryRole(ctx context.Context, workspaceID, userID int64) (core.Role, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT r.role_id, r.workspace_id, r.name, r.is_owner, r.capabilities
		FROM ntc.roles r
		JOIN ntc.role_members m ON m.role_id = r.role_id
		WHERE r.workspace_id = $1 AND m.user_id = $2
		ORDER BY r.is_owner DESC, r.role_id
		LIMIT 1`,
		workspaceID, userID,
	)

	var r core.Role
	var caps []string
	err := row.Scan(&r.ID, &r.WorkspaceID, &r.Name, &r.IsOwner, &caps)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Role{}, core.ErrNoRecord
	}
	if err != nil {
		return core.Role{}, fmt.Errorf("get primary role: %w", err)
	}
	r.Capabilities = make([]core.Capability, len(caps))
	for i, c := range caps {
		r.Capabilities[i] = core.Capability(c)
	}
	return r, nil
}

// IsMember reports whether the user holds any role in the workspace.
func (s *Store) IsMember(ctx context.Context, workspaceID, userID int64) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM ntc.roles r
			JOIN ntc.role_members m ON m.role_id = r.role_id
			WHERE r.workspace_id = $1 AND m.user_id = $2
		)`,
		workspaceID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return exists, nil
}

// CreateRole inserts a role. Used by provisioning and tests.
func (s *Store) CreateRole(ctx context.Context, r core.Role) error {
	caps := make([]string, len(r.Capabilities))
	for i, c := range r.Capabilities {
		caps[i] = string(c)
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO ntc.roles (role_id, workspace_id, name, is_owner, capabilities)
		VALUES ($1, $2, $3, $4, $5)`,
		r.ID, r.WorkspaceID, r.Name, r.IsOwner, caps,
	)
	if err != nil {
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

// AssignRole adds a user to a role.
func (s *Store) AssignRole(ctx context.Context, roleID string, userID int64) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO ntc.role_members (role_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		roleID, userID,
	)
	if err != nil {
		return fmt.Errorf("assign role: %w", err)
	}
	return nil
}
