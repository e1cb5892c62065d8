package core

// Capability is a named permission granted through a workspace role. The set
// is closed: capabilities are matched by identity, not by substring.
type Capability string

const (
	CapAdmin          Capability = "admin"
	CapManageMembers  Capability = "manage_members"
	CapManageActivity Capability = "manage_activity"
)

// Role is a member's role inside one workspace. A user holds a single
// effective role; when several are assigned the owner role wins.
type Role struct {
	ID           string       `json:"id"`
	WorkspaceID  int64        `json:"workspace_id"`
	Name         string       `json:"name"`
	IsOwner      bool         `json:"is_owner"`
	Capabilities []Capability `json:"capabilities"`
}

// Grants reports whether the role carries the capability. The owner role
// grants everything regardless of its explicit list.
func (r Role) Grants(c Capability) bool {
	if r.IsOwner {
		return true
	}
	for _, have := range r.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}
