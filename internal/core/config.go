package core

import "time"

// Config keys in the per-workspace KV store.
const (
	ConfigKeyInactivity       = "inactivity"
	ConfigKeyActivityTracking = "activityTracking"
)

// WebhookConfig controls outbound notice notifications for a workspace. The
// URL is passed through to the transport untouched; validation is the
// receiver's problem.
type WebhookConfig struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url"`
}

// TrackingConfig is the ancillary activity-tracking configuration.
type TrackingConfig struct {
	WeekStartsOn string          `json:"week_starts_on"`
	TrackedRoles map[string]bool `json:"tracked_roles"`
}

// DefaultTrackingConfig is what a workspace reads before anything was saved.
func DefaultTrackingConfig() TrackingConfig {
	return TrackingConfig{WeekStartsOn: "sunday", TrackedRoles: map[string]bool{}}
}

// Workspace carries the branding surfaced in webhook footers.
type Workspace struct {
	WorkspaceID int64     `json:"workspace_id"`
	Name        string    `json:"name"`
	LogoURL     string    `json:"logo_url"`
	CreatedAt   time.Time `json:"created_at"`
}
