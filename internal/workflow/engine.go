// Package workflow orchestrates notice state changes in a fixed order:
// permission check, validation, store mutation, audit append, webhook
// dispatch. The store mutation is the source of truth; audit and dispatch
// are best-effort and never reverse or fail a committed mutation.
package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/quillhq/noticesvc/internal/core"
	"github.com/quillhq/noticesvc/internal/observability"
)

type NoticeStore interface {
	CreateNotice(ctx context.Context, n core.Notice) (core.Notice, error)
	GetNotice(ctx context.Context, workspaceID int64, id string) (core.Notice, error)
	UpdateNoticeReview(ctx context.Context, workspaceID int64, id string, approved bool, comment *string) (core.Notice, error)
	DeleteNotice(ctx context.Context, workspaceID int64, id string) error
	ListNotices(ctx context.Context, workspaceID int64, limit int) ([]core.Notice, error)
}

type MembershipSource interface {
	IsMember(ctx context.Context, workspaceID, userID int64) (bool, error)
}

type AuditLog interface {
	AppendAudit(ctx context.Context, e core.AuditEntry) error
}

type ConfigStore interface {
	WebhookConfig(ctx context.Context, workspaceID int64) (core.WebhookConfig, error)
	TrackingConfig(ctx context.Context, workspaceID int64) (core.TrackingConfig, error)
	SetConfig(ctx context.Context, workspaceID int64, key string, value any) error
}

type Gate interface {
	Authorize(ctx context.Context, workspaceID, actorID int64, capability core.Capability) error
}

// Dispatcher is the best-effort notification sink. None of its methods return
// errors; a failed delivery must not affect the calling workflow.
type Dispatcher interface {
	NoticeSubmitted(ctx context.Context, cfg core.WebhookConfig, n core.Notice)
	NoticeRecorded(ctx context.Context, cfg core.WebhookConfig, n core.Notice, recordedBy int64)
	NoticeReviewed(ctx context.Context, cfg core.WebhookConfig, n core.Notice, reviewerID int64, approved bool, comment *string)
}

type Engine struct {
	notices NoticeStore
	members MembershipSource
	gate    Gate
	audit   AuditLog
	config  ConfigStore
	hook    Dispatcher
	log     *zap.Logger
}

func NewEngine(notices NoticeStore, members MembershipSource, gate Gate, audit AuditLog, config ConfigStore, hook Dispatcher, log *zap.Logger) *Engine {
	return &Engine{
		notices: notices,
		members: members,
		gate:    gate,
		audit:   audit,
		config:  config,
		hook:    hook,
		log:     log,
	}
}

type SubmitRequest struct {
	StartTime int64 // epoch ms
	EndTime   int64 // epoch ms
	Reason    string
}

// Submit creates a pending notice for the acting member. Unlike AdminRecord,
// the time range is not ordered-checked here; the submission path never did
// that and the asymmetry is kept.
func (e *Engine) Submit(ctx context.Context, workspaceID, actorID int64, req SubmitRequest) (core.Notice, error) {
	if req.StartTime == 0 || req.EndTime == 0 || strings.TrimSpace(req.Reason) == "" {
		return core.Notice{}, core.NewAppError(core.ErrBadRequest, "missing data")
	}

	member, err := e.members.IsMember(ctx, workspaceID, actorID)
	if err != nil {
		e.log.Error("membership check failed", zap.Error(err))
		return core.Notice{}, core.NewAppError(core.ErrInternal, "something went wrong")
	}
	if !member {
		return core.Notice{}, core.NewAppError(core.ErrForbidden, "insufficient permissions")
	}

	n, err := e.notices.CreateNotice(ctx, core.Notice{
		ID:          core.NewID(),
		WorkspaceID: workspaceID,
		UserID:      actorID,
		StartTime:   time.UnixMilli(req.StartTime).UTC(),
		EndTime:     time.UnixMilli(req.EndTime).UTC(),
		Reason:      req.Reason,
	})
	if err != nil {
		e.log.Error("create notice failed", zap.Error(err))
		return core.Notice{}, core.NewAppError(core.ErrInternal, "something went wrong")
	}
	observability.NoticesSubmittedTotal.Inc()

	e.hook.NoticeSubmitted(ctx, e.webhookConfig(ctx, workspaceID), n)

	return n, nil
}

type RecordRequest struct {
	UserID    int64
	StartTime int64 // epoch ms
	EndTime   int64 // epoch ms
	Reason    string
}

// AdminRecord creates a notice already reviewed and approved, on behalf of a
// target member. Models backfilling a period that already happened.
func (e *Engine) AdminRecord(ctx context.Context, workspaceID, actorID int64, req RecordRequest) (core.Notice, error) {
	if err := e.gate.Authorize(ctx, workspaceID, actorID, core.CapManageMembers); err != nil {
		return core.Notice{}, err
	}

	if req.UserID == 0 || req.StartTime == 0 || req.EndTime == 0 || strings.TrimSpace(req.Reason) == "" {
		return core.Notice{}, core.NewAppError(core.ErrBadRequest, "missing required fields: userId, startTime, endTime, reason")
	}
	if req.StartTime >= req.EndTime {
		return core.Notice{}, core.NewAppError(core.ErrInvalidRange, "end time must be after start time")
	}

	member, err := e.members.IsMember(ctx, workspaceID, req.UserID)
	if err != nil {
		e.log.Error("membership check failed", zap.Error(err))
		return core.Notice{}, core.NewAppError(core.ErrInternal, "internal server error")
	}
	if !member {
		return core.Notice{}, core.NewAppError(core.ErrNotFound, "user not found in workspace")
	}

	n, err := e.notices.CreateNotice(ctx, core.Notice{
		ID:          core.NewID(),
		WorkspaceID: workspaceID,
		UserID:      req.UserID,
		StartTime:   time.UnixMilli(req.StartTime).UTC(),
		EndTime:     time.UnixMilli(req.EndTime).UTC(),
		Reason:      strings.TrimSpace(req.Reason),
		Reviewed:    true,
		Approved:    true,
	})
	if err != nil {
		e.log.Error("create recorded notice failed", zap.Error(err))
		return core.Notice{}, core.NewAppError(core.ErrInternal, "internal server error")
	}
	observability.NoticesRecordedTotal.Inc()

	e.hook.NoticeRecorded(ctx, e.webhookConfig(ctx, workspaceID), n, actorID)

	return n, nil
}

type ReviewRequest struct {
	ID            string
	Status        core.ReviewStatus
	ReviewComment *string
}

// Review applies approve, deny, or cancel to an existing notice. Transitions
// are accepted regardless of current state: an already-denied notice can be
// re-approved and vice versa, last write wins. Exactly one audit entry is
// attempted per successful mutation; for approve/deny a webhook follows.
func (e *Engine) Review(ctx context.Context, workspaceID, actorID int64, req ReviewRequest) error {
	if err := e.gate.Authorize(ctx, workspaceID, actorID, core.CapManageActivity); err != nil {
		return err
	}

	if !req.Status.Valid() {
		return core.NewAppError(core.ErrBadRequest, "invalid status")
	}
	if req.ID == "" || !core.ValidID(req.ID) {
		return core.NewAppError(core.ErrBadRequest, "invalid id")
	}

	notice, err := e.notices.GetNotice(ctx, workspaceID, req.ID)
	if errors.Is(err, core.ErrNoRecord) {
		return core.NewAppError(core.ErrNotFound, "notice not found")
	}
	if err != nil {
		e.log.Error("get notice failed", zap.Error(err))
		return core.NewAppError(core.ErrInternal, "internal server error")
	}

	before, _ := json.Marshal(notice)

	if req.Status == core.ReviewCancel {
		if err := e.notices.DeleteNotice(ctx, workspaceID, req.ID); err != nil {
			if errors.Is(err, core.ErrNoRecord) {
				return core.NewAppError(core.ErrNotFound, "notice not found")
			}
			e.log.Error("delete notice failed", zap.Error(err))
			return core.NewAppError(core.ErrInternal, "internal server error")
		}
		observability.ReviewTotal.WithLabelValues(string(core.ReviewCancel)).Inc()
		e.writeAudit(ctx, core.AuditEntry{
			WorkspaceID: workspaceID,
			ActorID:     &actorID,
			Action:      core.ActionNoticeCancel,
			TargetRef:   core.NoticeRef(req.ID),
			Before:      before,
		})
		// Cancellation is silent: no webhook.
		return nil
	}

	approved := req.Status == core.ReviewApprove
	updated, err := e.notices.UpdateNoticeReview(ctx, workspaceID, req.ID, approved, req.ReviewComment)
	if err != nil {
		if errors.Is(err, core.ErrNoRecord) {
			return core.NewAppError(core.ErrNotFound, "notice not found")
		}
		e.log.Error("update notice failed", zap.Error(err))
		return core.NewAppError(core.ErrInternal, "internal server error")
	}
	observability.ReviewTotal.WithLabelValues(string(req.Status)).Inc()

	after, _ := json.Marshal(updated)
	action := core.ActionNoticeDeny
	if approved {
		action = core.ActionNoticeApprove
	}
	e.writeAudit(ctx, core.AuditEntry{
		WorkspaceID: workspaceID,
		ActorID:     &actorID,
		Action:      action,
		TargetRef:   core.NoticeRef(req.ID),
		Before:      before,
		After:       after,
	})

	e.hook.NoticeReviewed(ctx, e.webhookConfig(ctx, workspaceID), updated, actorID, approved, req.ReviewComment)

	return nil
}

// List returns a workspace's notices for reviewers, newest first.
func (e *Engine) List(ctx context.Context, workspaceID, actorID int64, limit int) ([]core.Notice, error) {
	if err := e.gate.Authorize(ctx, workspaceID, actorID, core.CapManageActivity); err != nil {
		return nil, err
	}
	out, err := e.notices.ListNotices(ctx, workspaceID, limit)
	if err != nil {
		e.log.Error("list notices failed", zap.Error(err))
		return nil, core.NewAppError(core.ErrInternal, "internal server error")
	}
	return out, nil
}

// TrackingConfig reads the activity-tracking settings.
func (e *Engine) TrackingConfig(ctx context.Context, workspaceID, actorID int64) (core.TrackingConfig, error) {
	if err := e.gate.Authorize(ctx, workspaceID, actorID, core.CapAdmin); err != nil {
		return core.TrackingConfig{}, err
	}
	cfg, err := e.config.TrackingConfig(ctx, workspaceID)
	if err != nil {
		e.log.Error("read tracking config failed", zap.Error(err))
		return core.TrackingConfig{}, core.NewAppError(core.ErrInternal, "server error")
	}
	return cfg, nil
}

// UpdateTrackingConfig persists the activity-tracking settings and audits the
// change with before/after.
func (e *Engine) UpdateTrackingConfig(ctx context.Context, workspaceID, actorID int64, cfg core.TrackingConfig) error {
	if err := e.gate.Authorize(ctx, workspaceID, actorID, core.CapAdmin); err != nil {
		return err
	}
	if cfg.WeekStartsOn != "sunday" && cfg.WeekStartsOn != "monday" {
		cfg.WeekStartsOn = "sunday"
	}
	if cfg.TrackedRoles == nil {
		cfg.TrackedRoles = map[string]bool{}
	}

	before, err := e.config.TrackingConfig(ctx, workspaceID)
	if err != nil {
		e.log.Error("read tracking config failed", zap.Error(err))
		return core.NewAppError(core.ErrInternal, "server error")
	}
	if err := e.config.SetConfig(ctx, workspaceID, core.ConfigKeyActivityTracking, cfg); err != nil {
		e.log.Error("write tracking config failed", zap.Error(err))
		return core.NewAppError(core.ErrInternal, "server error")
	}

	beforeRaw, _ := json.Marshal(before)
	afterRaw, _ := json.Marshal(cfg)
	e.writeAudit(ctx, core.AuditEntry{
		WorkspaceID: workspaceID,
		ActorID:     &actorID,
		Action:      core.ActionTrackingConfigUpdate,
		TargetRef:   core.ConfigKeyActivityTracking,
		Before:      beforeRaw,
		After:       afterRaw,
	})
	return nil
}

// WebhookSettings reads the inactivity webhook settings. The read side is
// open to any authenticated caller, matching the settings surface.
func (e *Engine) WebhookSettings(ctx context.Context, workspaceID int64) (core.WebhookConfig, error) {
	cfg, err := e.config.WebhookConfig(ctx, workspaceID)
	if err != nil {
		e.log.Error("read webhook config failed", zap.Error(err))
		return core.WebhookConfig{}, core.NewAppError(core.ErrInternal, "server error")
	}
	return cfg, nil
}

// UpdateWebhookSettings persists the inactivity webhook settings.
func (e *Engine) UpdateWebhookSettings(ctx context.Context, workspaceID, actorID int64, cfg core.WebhookConfig) error {
	if err := e.gate.Authorize(ctx, workspaceID, actorID, core.CapAdmin); err != nil {
		return err
	}

	before, err := e.config.WebhookConfig(ctx, workspaceID)
	if err != nil {
		e.log.Error("read webhook config failed", zap.Error(err))
		return core.NewAppError(core.ErrInternal, "server error")
	}
	if err := e.config.SetConfig(ctx, workspaceID, core.ConfigKeyInactivity, cfg); err != nil {
		e.log.Error("write webhook config failed", zap.Error(err))
		return core.NewAppError(core.ErrInternal, "server error")
	}

	beforeRaw, _ := json.Marshal(before)
	afterRaw, _ := json.Marshal(cfg)
	e.writeAudit(ctx, core.AuditEntry{
		WorkspaceID: workspaceID,
		ActorID:     &actorID,
		Action:      core.ActionInactivityConfigUpdate,
		TargetRef:   core.ConfigKeyInactivity,
		Before:      beforeRaw,
		After:       afterRaw,
	})
	return nil
}

// writeAudit is the best-effort ledger append. A failure is logged and
// counted; the mutation it describes stays committed.
func (e *Engine) writeAudit(ctx context.Context, entry core.AuditEntry) {
	if err := e.audit.AppendAudit(ctx, entry); err != nil {
		observability.AuditWriteFailTotal.Inc()
		e.log.Error("audit write failed",
			zap.String("action", entry.Action),
			zap.String("target", entry.TargetRef),
			zap.Error(err),
		)
	}
}

// webhookConfig reads the per-workspace webhook settings for dispatch. A read
// failure only suppresses the notification.
func (e *Engine) webhookConfig(ctx context.Context, workspaceID int64) core.WebhookConfig {
	cfg, err := e.config.WebhookConfig(ctx, workspaceID)
	if err != nil {
		e.log.Warn("webhook config read failed", zap.Int64("workspace_id", workspaceID), zap.Error(err))
		return core.WebhookConfig{}
	}
	return cfg
}
