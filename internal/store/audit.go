package store

import (
	"context"
	"fmt"

	"github.com/quillhq/noticesvc/internal/core"
)

// AppendAudit writes one ledger entry. The ledger is append-only: nothing in
// this package updates or deletes audit rows.
func (s *Store) AppendAudit(ctx context.Context, e core.AuditEntry) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO ntc.audit_log (workspace_id, actor_id, action, target_ref, before, after)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.WorkspaceID, e.ActorID, e.Action, e.TargetRef, e.Before, e.After,
	)
	if err != nil {
		return fmt.Errorf("append audit: %w", err)
	}
	return nil
}

// ListAudit returns a workspace's ledger, newest first. Read side only; used
// by the CLI and operations tooling.
func (s *Store) ListAudit(ctx context.Context, workspaceID int64, limit int) ([]core.AuditEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT entry_id, workspace_id, actor_id, action, target_ref, before, after, ts
		FROM ntc.audit_log
		WHERE workspace_id = $1
		ORDER BY ts DESC
		LIMIT $2`,
		workspaceID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	defer rows.Close()

	var out []core.AuditEntry
	for rows.Next() {
		var e core.AuditEntry
		if err := rows.Scan(&e.EntryID, &e.WorkspaceID, &e.ActorID, &e.Action, &e.TargetRef, &e.Before, &e.After, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
