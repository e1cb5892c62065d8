package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/quillhq/noticesvc/internal/core"
)

const noticeColumns = `id, workspace_id, user_id, start_time, end_time, reason,
	reviewed, approved, review_comment, created_at`

// CreateNotice inserts a notice and returns it with the store-assigned
// created_at.
func (s *Store) CreateNotice(ctx context.Context, n core.Notice) (core.Notice, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO ntc.inactivity_notices
			(id, workspace_id, user_id, start_time, end_time, reason, reviewed, approved, review_comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+noticeColumns,
		n.ID, n.WorkspaceID, n.UserID, n.StartTime, n.EndTime, n.Reason,
		n.Reviewed, n.Approved, n.ReviewComment,
	)
	out, err := scanNotice(row)
	if err != nil {
		return core.Notice{}, fmt.Errorf("insert notice: %w", err)
	}
	return out, nil
}

// GetNotice fetches one notice scoped by workspace.
func (s *Store) GetNotice(ctx context.Context, workspaceID int64, id string) (core.Notice, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+noticeColumns+`
		FROM ntc.inactivity_notices
		WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id,
	)
	n, err := scanNotice(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Notice{}, core.ErrNoRecord
	}
	if err != nil {
		return core.Notice{}, fmt.Errorf("get notice: %w", err)
	}
	return n, nil
}

// UpdateNoticeReview applies a review verdict. No current-state guard: an
// already-reviewed notice can be re-approved or re-denied, last write wins.
func (s *Store) UpdateNoticeReview(ctx context.Context, workspaceID int64, id string, approved bool, comment *string) (core.Notice, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE ntc.inactivity_notices
		SET reviewed = true, approved = $3, review_comment = $4
		WHERE workspace_id = $1 AND id = $2
		RETURNING `+noticeColumns,
		workspaceID, id, approved, comment,
	)
	n, err := scanNotice(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Notice{}, core.ErrNoRecord
	}
	if err != nil {
		return core.Notice{}, fmt.Errorf("update notice review: %w", err)
	}
	return n, nil
}

// DeleteNotice removes a notice permanently.
func (s *Store) DeleteNotice(ctx context.Context, workspaceID int64, id string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM ntc.inactivity_notices
		WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id,
	)
	if err != nil {
		return fmt.Errorf("delete notice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNoRecord
	}
	return nil
}

// ListNotices returns a workspace's notices, newest first.
func (s *Store) ListNotices(ctx context.Context, workspaceID int64, limit int) ([]core.Notice, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+noticeColumns+`
		FROM ntc.inactivity_notices
		WHERE workspace_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		workspaceID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	defer rows.Close()

	var out []core.Notice
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notice: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func scanNotice(row pgx.Row) (core.Notice, error) {
	var n core.Notice
	err := row.Scan(
		&n.ID, &n.WorkspaceID, &n.UserID, &n.StartTime, &n.EndTime, &n.Reason,
		&n.Reviewed, &n.Approved, &n.ReviewComment, &n.CreatedAt,
	)
	return n, err
}
