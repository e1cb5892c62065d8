package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/quillhq/noticesvc/internal/core"
)

// GetConfig reads one per-workspace config value into out. core.ErrNoRecord
// when nothing was ever saved under the key.
func (s *Store) GetConfig(ctx context.Context, workspaceID int64, key string, out any) error {
	var raw []byte
	err := s.pool.QueryRow(ctx, `
		SELECT value
		FROM ntc.workspace_config
		WHERE workspace_id = $1 AND key = $2`,
		workspaceID, key,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.ErrNoRecord
	}
	if err != nil {
		return fmt.Errorf("get config %q: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode config %q: %w", key, err)
	}
	return nil
}

// SetConfig upserts one per-workspace config value.
func (s *Store) SetConfig(ctx context.Context, workspaceID int64, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode config %q: %w", key, err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO ntc.workspace_config (workspace_id, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (workspace_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		workspaceID, key, raw,
	)
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

// WebhookConfig reads the inactivity webhook settings; a workspace that never
// saved them reads as disabled.
func (s *Store) WebhookConfig(ctx context.Context, workspaceID int64) (core.WebhookConfig, error) {
	var cfg core.WebhookConfig
	err := s.GetConfig(ctx, workspaceID, core.ConfigKeyInactivity, &cfg)
	if errors.Is(err, core.ErrNoRecord) {
		return core.WebhookConfig{}, nil
	}
	if err != nil {
		return core.WebhookConfig{}, err
	}
	return cfg, nil
}

// TrackingConfig reads the activity-tracking settings with defaults applied.
func (s *Store) TrackingConfig(ctx context.Context, workspaceID int64) (core.TrackingConfig, error) {
	var cfg core.TrackingConfig
	err := s.GetConfig(ctx, workspaceID, core.ConfigKeyActivityTracking, &cfg)
	if errors.Is(err, core.ErrNoRecord) {
		return core.DefaultTrackingConfig(), nil
	}
	if err != nil {
		return core.TrackingConfig{}, err
	}
	if cfg.WeekStartsOn == "" {
		cfg.WeekStartsOn = "sunday"
	}
	if cfg.TrackedRoles == nil {
		cfg.TrackedRoles = map[string]bool{}
	}
	return cfg, nil
}
