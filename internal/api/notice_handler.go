package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/quillhq/noticesvc/internal/api/middleware"
	"github.com/quillhq/noticesvc/internal/core"
	"github.com/quillhq/noticesvc/internal/workflow"
)

type SubmitNoticeRequest struct {
	StartTime int64  `json:"startTime"`
	EndTime   int64  `json:"endTime"`
	Reason    string `json:"reason"`
}

type RecordNoticeRequest struct {
	UserID    int64  `json:"userId"`
	StartTime int64  `json:"startTime"`
	EndTime   int64  `json:"endTime"`
	Reason    string `json:"reason"`
}

type ReviewNoticeRequest struct {
	ID            string  `json:"id"`
	Status        string  `json:"status"`
	ReviewComment *string `json:"reviewComment,omitempty"`
}

// NoticeResponse serializes a notice. Large-integer ids go out as strings so
// JavaScript consumers never round them.
type NoticeResponse struct {
	ID            string  `json:"id"`
	WorkspaceID   string  `json:"workspace_id"`
	UserID        string  `json:"user_id"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	Reason        string  `json:"reason"`
	Reviewed      bool    `json:"reviewed"`
	Approved      bool    `json:"approved"`
	ReviewComment *string `json:"review_comment,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// SubmitNotice handles member-initiated notice creation.
func (a *API) SubmitNotice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	wsid := workspaceID(r)
	if wsid == 0 {
		WriteError(w, core.NewAppError(core.ErrBadRequest, "invalid workspace id"))
		return
	}
	actor, ok := middleware.ActorID(r)
	if !ok {
		WriteError(w, core.NewAppError(core.ErrUnauthenticated, "not logged in"))
		return
	}

	var req SubmitNoticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, core.NewAppError(core.ErrBadRequest, "invalid request body"))
		return
	}

	n, err := a.engine.Submit(ctx, wsid, actor, workflow.SubmitRequest{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"notice":  noticeToResponse(n),
	})
}

// RecordNotice handles privileged creation of an already-approved notice.
func (a *API) RecordNotice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	wsid := workspaceID(r)
	if wsid == 0 {
		WriteError(w, core.NewAppError(core.ErrBadRequest, "invalid workspace id"))
		return
	}
	actor, ok := middleware.ActorID(r)
	if !ok {
		WriteError(w, core.NewAppError(core.ErrUnauthenticated, "not authenticated"))
		return
	}

	var req RecordNoticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, core.NewAppError(core.ErrBadRequest, "invalid request body"))
		return
	}

	n, err := a.engine.AdminRecord(ctx, wsid, actor, workflow.RecordRequest{
		UserID:    req.UserID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Notice created successfully",
		"notice":  noticeToResponse(n),
	})
}

// ReviewNotice handles approve/deny/cancel.
func (a *API) ReviewNotice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	wsid := workspaceID(r)
	if wsid == 0 {
		WriteError(w, core.NewAppError(core.ErrBadRequest, "invalid workspace id"))
		return
	}
	actor, ok := middleware.ActorID(r)
	if !ok {
		WriteError(w, core.NewAppError(core.ErrUnauthenticated, "not logged in"))
		return
	}

	var req ReviewNoticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, core.NewAppError(core.ErrBadRequest, "invalid request body"))
		return
	}

	err := a.engine.Review(ctx, wsid, actor, workflow.ReviewRequest{
		ID:            req.ID,
		Status:        core.ReviewStatus(req.Status),
		ReviewComment: req.ReviewComment,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// ListNotices lists a workspace's notices for reviewers.
func (a *API) ListNotices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	wsid := workspaceID(r)
	if wsid == 0 {
		WriteError(w, core.NewAppError(core.ErrBadRequest, "invalid workspace id"))
		return
	}
	actor, ok := middleware.ActorID(r)
	if !ok {
		WriteError(w, core.NewAppError(core.ErrUnauthenticated, "not logged in"))
		return
	}

	limit := parseLimit(r.URL.Query().Get("limit"), 50, 200)
	notices, err := a.engine.List(ctx, wsid, actor, limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := make([]NoticeResponse, len(notices))
	for i, n := range notices {
		resp[i] = noticeToResponse(n)
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"notices": resp,
	})
}

func noticeToResponse(n core.Notice) NoticeResponse {
	return NoticeResponse{
		ID:            n.ID,
		WorkspaceID:   strconv.FormatInt(n.WorkspaceID, 10),
		UserID:        strconv.FormatInt(n.UserID, 10),
		StartTime:     n.StartTime.UTC().Format("2006-01-02T15:04:05Z"),
		EndTime:       n.EndTime.UTC().Format("2006-01-02T15:04:05Z"),
		Reason:        n.Reason,
		Reviewed:      n.Reviewed,
		Approved:      n.Approved,
		ReviewComment: n.ReviewComment,
		CreatedAt:     n.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func parseLimit(s string, defaultVal, maxVal int) int {
	if s == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return defaultVal
	}
	if n > maxVal {
		return maxVal
	}
	return n
}
