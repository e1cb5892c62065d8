package permission

import (
	"context"
	"errors"

	"github.com/quillhq/noticesvc/internal/core"
)

// RoleSource yields a user's effective role in a workspace.
type RoleSource interface {
	PrimaryRole(ctx context.Context, workspaceID, userID int64) (core.Role, error)
}

// Gate answers capability checks. A user with no role and a user whose role
// lacks the capability get the same Forbidden answer; callers cannot tell the
// two apart.
type Gate struct {
	roles RoleSource
}

func NewGate(roles RoleSource) *Gate {
	return &Gate{roles: roles}
}

// Authorize returns nil when the actor holds the capability in the workspace.
// The owner role passes every check.
func (g *Gate) Authorize(ctx context.Context, workspaceID, actorID int64, capability core.Capability) error {
	role, err := g.roles.PrimaryRole(ctx, workspaceID, actorID)
	if errors.Is(err, core.ErrNoRecord) {
		return core.NewAppError(core.ErrForbidden, "insufficient permissions")
	}
	if err != nil {
		return core.NewAppError(core.ErrInternal, "permission lookup failed")
	}
	if !role.Grants(capability) {
		return core.NewAppError(core.ErrForbidden, "insufficient permissions")
	}
	return nil
}
