package api

import (
	"encoding/json"
	"net/http"

	"github.com/quillhq/noticesvc/internal/api/middleware"
	"github.com/quillhq/noticesvc/internal/core"
)

type TrackingSettingsRequest struct {
	WeekStartsOn string          `json:"weekStartsOn"`
	TrackedRoles map[string]bool `json:"trackedRoles"`
}

type InactivitySettingsRequest struct {
	WebhookEnabled bool   `json:"webhookEnabled"`
	WebhookURL     string `json:"webhookUrl"`
}

// GetTrackingSettings reads the activity-tracking configuration, with
// defaults when nothing was saved yet.
func (a *API) GetTrackingSettings(w http.ResponseWriter, r *http.Request) {
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

	cfg, err := a.engine.TrackingConfig(ctx, wsid, actor)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"weekStartsOn": cfg.WeekStartsOn,
		"trackedRoles": cfg.TrackedRoles,
	})
}

// UpdateTrackingSettings persists the activity-tracking configuration.
func (a *API) UpdateTrackingSettings(w http.ResponseWriter, r *http.Request) {
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

	var req TrackingSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, core.NewAppError(core.ErrBadRequest, "invalid request body"))
		return
	}

	err := a.engine.UpdateTrackingConfig(ctx, wsid, actor, core.TrackingConfig{
		WeekStartsOn: req.WeekStartsOn,
		TrackedRoles: req.TrackedRoles,
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// GetInactivitySettings reads the webhook configuration. The read side is
// open to any caller with a resolved identity.
func (a *API) GetInactivitySettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	wsid := workspaceID(r)
	if wsid == 0 {
		WriteError(w, core.NewAppError(core.ErrBadRequest, "invalid workspace id"))
		return
	}

	cfg, err := a.engine.WebhookSettings(ctx, wsid)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"value": map[string]interface{}{
			"webhookEnabled": cfg.Enabled,
			"webhookUrl":     cfg.URL,
		},
	})
}

// UpdateInactivitySettings persists the webhook configuration.
func (a *API) UpdateInactivitySettings(w http.ResponseWriter, r *http.Request) {
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

	var req InactivitySettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, core.NewAppError(core.ErrBadRequest, "invalid request body"))
		return
	}

	err := a.engine.UpdateWebhookSettings(ctx, wsid, actor, core.WebhookConfig{
		Enabled: req.WebhookEnabled,
		URL:     req.WebhookURL,
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
