package permission

import (
	"context"
	"testing"

	"github.com/quillhq/noticesvc/internal/core"
)

type fakeRoles struct {
	role core.Role
	err  error
}

func (f *fakeRoles) PrimaryRole(ctx context.Context, workspaceID, userID int64) (core.Role, error) {
	return f.role, f.err
}

func TestAuthorizeGranted(t *testing.T) {
	gate := NewGate(&fakeRoles{role: core.Role{
		Name:         "Staff",
		Capabilities: []core.Capability{core.CapManageActivity},
	}})

	if err := gate.Authorize(context.Background(), 1, 42, core.CapManageActivity); err != nil {
		t.Errorf("expected authorization, got %v", err)
	}
}

func TestAuthorizeMissingCapability(t *testing.T) {
	gate := NewGate(&fakeRoles{role: core.Role{
		Name:         "Member",
		Capabilities: []core.Capability{core.CapManageMembers},
	}})

	err := gate.Authorize(context.Background(), 1, 42, core.CapManageActivity)
	assertForbidden(t, err)
}

func TestAuthorizeNoRole(t *testing.T) {
	gate := NewGate(&fakeRoles{err: core.ErrNoRecord})

	err := gate.Authorize(context.Background(), 1, 42, core.CapManageActivity)
	assertForbidden(t, err)
}

func TestAuthorizeOwnerBypass(t *testing.T) {
	// The owner role grants everything regardless of its explicit list.
	gate := NewGate(&fakeRoles{role: core.Role{Name: "Owner", IsOwner: true}})

	for _, c := range []core.Capability{core.CapAdmin, core.CapManageMembers, core.CapManageActivity} {
		if err := gate.Authorize(context.Background(), 1, 42, c); err != nil {
			t.Errorf("owner denied %s: %v", c, err)
		}
	}
}

func assertForbidden(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	appErr, ok := err.(*core.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != core.ErrForbidden {
		t.Errorf("expected code %s, got %s", core.ErrForbidden, appErr.Code)
	}
}
