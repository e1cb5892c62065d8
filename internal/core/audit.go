package core

import (
	"encoding/json"
	"time"
)

// Audit action taxonomy. Fixed strings; new actions are added here, never
// built ad hoc at call sites.
const (
	ActionNoticeApprove          = "notice.approve"
	ActionNoticeDeny             = "notice.deny"
	ActionNoticeCancel           = "notice.cancel"
	ActionTrackingConfigUpdate   = "settings.activity.tracking.update"
	ActionInactivityConfigUpdate = "settings.inactivity.update"
)

// AuditEntry is one row of the append-only ledger. Before/After are snapshots
// of the affected entity; either may be null (creation has no before, deletion
// no after). ActorID is nil for system actions.
type AuditEntry struct {
	EntryID     int64           `json:"entry_id"`
	WorkspaceID int64           `json:"workspace_id"`
	ActorID     *int64          `json:"actor_id,omitempty"`
	Action      string          `json:"action"`
	TargetRef   string          `json:"target_ref"`
	Before      json.RawMessage `json:"before,omitempty"`
	After       json.RawMessage `json:"after,omitempty"`
	Timestamp   time.Time       `json:"ts"`
}

// NoticeRef builds the stable target reference for a notice id.
func NoticeRef(id string) string {
	return "notice:" + id
}
