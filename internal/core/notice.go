package core

import "time"

// ReviewStatus is the action a reviewer takes on a notice.
type ReviewStatus string

const (
	ReviewApprove ReviewStatus = "approve"
	ReviewDeny    ReviewStatus = "deny"
	ReviewCancel  ReviewStatus = "cancel"
)

// Valid reports whether s is one of the accepted review actions.
func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewApprove, ReviewDeny, ReviewCancel:
		return true
	}
	return false
}

// Notice is an acknowledged period of member inactivity. Times and reason are
// immutable after creation; review fields are the only mutable state. Cancel
// removes the row outright, there is no soft-delete state.
type Notice struct {
	ID            string    `json:"id"`
	WorkspaceID   int64     `json:"workspace_id"`
	UserID        int64     `json:"user_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Reason        string    `json:"reason"`
	Reviewed      bool      `json:"reviewed"`
	Approved      bool      `json:"approved"`
	ReviewComment *string   `json:"review_comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
