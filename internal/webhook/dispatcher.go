// Package webhook delivers notice events to a workspace-configured endpoint.
// Delivery is strictly best-effort: one attempt, no queue, no backoff, and no
// method here ever returns an error to its caller.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/quillhq/noticesvc/internal/core"
	"github.com/quillhq/noticesvc/internal/identity"
	"github.com/quillhq/noticesvc/internal/observability"
)

const (
	defaultPostTimeout = 10 * time.Second

	// maxFieldLen bounds free-text field values.
	maxFieldLen = 1024

	colorSubmitted = 0x3b82f6
	colorApproved  = 0x10b981
	colorDenied    = 0xef4444

	fallbackReason  = "No reason provided"
	fallbackComment = "No review comment provided"
)

type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type Thumbnail struct {
	URL string `json:"url,omitempty"`
}

type Footer struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

type Embed struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Color       int        `json:"color"`
	Fields      []Field    `json:"fields"`
	Thumbnail   *Thumbnail `json:"thumbnail,omitempty"`
	Footer      Footer     `json:"footer"`
	Timestamp   string     `json:"timestamp"`
}

type payload struct {
	Embeds []Embed `json:"embeds"`
}

// WorkspaceSource yields workspace branding for embed footers.
type WorkspaceSource interface {
	GetWorkspace(ctx context.Context, workspaceID int64) (core.Workspace, error)
}

type Dispatcher struct {
	client     *http.Client
	resolver   identity.Resolver
	workspaces WorkspaceSource
	log        *zap.Logger
}

func NewDispatcher(resolver identity.Resolver, workspaces WorkspaceSource, timeout time.Duration, log *zap.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultPostTimeout
	}
	return &Dispatcher{
		client:     &http.Client{Timeout: timeout},
		resolver:   resolver,
		workspaces: workspaces,
		log:        log,
	}
}

// NoticeSubmitted announces a member-submitted notice.
func (d *Dispatcher) NoticeSubmitted(ctx context.Context, cfg core.WebhookConfig, n core.Notice) {
	if !deliverable(cfg) {
		return
	}
	username, thumb := d.profile(ctx, n.UserID, "Unknown user")

	embed := Embed{
		Title:       "📋 New Inactivity Notice",
		Description: "**" + username + "** has submitted an inactivity request.",
		Color:       colorSubmitted,
		Fields: []Field{
			{Name: "User", Value: username, Inline: true},
			{Name: "User ID", Value: strconv.FormatInt(n.UserID, 10), Inline: true},
			{Name: "Start Date", Value: longDate(n.StartTime), Inline: true},
			{Name: "End Date", Value: longDate(n.EndTime), Inline: true},
			{Name: "Reason", Value: sanitize(n.Reason, maxFieldLen, fallbackReason), Inline: false},
		},
		Thumbnail: thumb,
		Footer:    d.footer(ctx, n.WorkspaceID),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	d.post(ctx, cfg.URL, "submitted", embed)
}

// NoticeRecorded announces an admin-recorded, already-approved notice. The
// wording names the recording actor, not a separate reviewer.
func (d *Dispatcher) NoticeRecorded(ctx context.Context, cfg core.WebhookConfig, n core.Notice, recordedBy int64) {
	if !deliverable(cfg) {
		return
	}
	username, thumb := d.profile(ctx, n.UserID, "Unknown user")
	recorder, _ := d.profile(ctx, recordedBy, "Reviewer")

	embed := Embed{
		Title:       "✅ Inactivity Notice Approved",
		Description: "**" + username + "**'s inactivity was recorded and approved by **" + recorder + "** (admin action).",
		Color:       colorApproved,
		Fields: []Field{
			{Name: "User", Value: username, Inline: true},
			{Name: "User ID", Value: strconv.FormatInt(n.UserID, 10), Inline: true},
			{Name: "Recorded By", Value: recorder, Inline: true},
			{Name: "Start Date", Value: longDate(n.StartTime), Inline: true},
			{Name: "End Date", Value: longDate(n.EndTime), Inline: true},
			{Name: "Reason", Value: sanitize(n.Reason, maxFieldLen, fallbackReason), Inline: false},
		},
		Thumbnail: thumb,
		Footer:    d.footer(ctx, n.WorkspaceID),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	d.post(ctx, cfg.URL, "recorded", embed)
}

// NoticeReviewed announces an approve or deny verdict.
func (d *Dispatcher) NoticeReviewed(ctx context.Context, cfg core.WebhookConfig, n core.Notice, reviewerID int64, approved bool, comment *string) {
	if !deliverable(cfg) {
		return
	}
	username, thumb := d.profile(ctx, n.UserID, "Unknown user")
	reviewer, _ := d.profile(ctx, reviewerID, "Reviewer")

	title := "✅ Inactivity Notice Approved"
	verdict := "approved"
	color := colorApproved
	event := "approved"
	if !approved {
		title = "❌ Inactivity Notice Denied"
		verdict = "denied"
		color = colorDenied
		event = "denied"
	}

	fields := []Field{
		{Name: "User", Value: username, Inline: true},
		{Name: "User ID", Value: strconv.FormatInt(n.UserID, 10), Inline: true},
		{Name: "Reviewed By", Value: reviewer, Inline: true},
		{Name: "Start Date", Value: longDate(n.StartTime), Inline: true},
		{Name: "End Date", Value: longDate(n.EndTime), Inline: true},
		{Name: "Original Reason", Value: sanitize(n.Reason, maxFieldLen, fallbackReason), Inline: false},
	}
	if comment != nil && *comment != "" {
		fields = append(fields, Field{
			Name:  "Review Comment",
			Value: sanitize(*comment, maxFieldLen, fallbackComment),
		})
	}

	embed := Embed{
		Title:       title,
		Description: "**" + username + "**'s inactivity request has been " + verdict + " by **" + reviewer + "**.",
		Color:       color,
		Fields:      fields,
		Thumbnail:   thumb,
		Footer:      d.footer(ctx, n.WorkspaceID),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	d.post(ctx, cfg.URL, event, embed)
}

func deliverable(cfg core.WebhookConfig) bool {
	return cfg.Enabled && cfg.URL != ""
}

func (d *Dispatcher) profile(ctx context.Context, userID int64, fallback string) (string, *Thumbnail) {
	p, err := d.resolver.Resolve(ctx, userID)
	if err != nil {
		d.log.Warn("identity lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		return fallback, nil
	}
	name := p.Username
	if name == "" {
		name = fallback
	}
	var thumb *Thumbnail
	if p.AvatarURL != "" {
		thumb = &Thumbnail{URL: p.AvatarURL}
	}
	return name, thumb
}

func (d *Dispatcher) footer(ctx context.Context, workspaceID int64) Footer {
	ws, err := d.workspaces.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return Footer{Text: "Workspace"}
	}
	text := ws.Name
	if text == "" {
		text = "Workspace"
	}
	return Footer{Text: text, IconURL: ws.LogoURL}
}

// post performs the single delivery attempt. All failures are logged with the
// status code and a bounded slice of the response body, and swallowed.
func (d *Dispatcher) post(ctx context.Context, url, event string, embed Embed) {
	body, err := json.Marshal(payload{Embeds: []Embed{embed}})
	if err != nil {
		d.log.Error("webhook payload encode failed", zap.String("event", event), zap.Error(err))
		observability.WebhookDispatchTotal.WithLabelValues(event, "error").Inc()
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		d.log.Error("webhook request build failed", zap.String("event", event), zap.Error(err))
		observability.WebhookDispatchTotal.WithLabelValues(event, "error").Inc()
		return
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := d.client.Do(req)
	observability.WebhookDispatchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		d.log.Error("webhook send failed", zap.String("event", event), zap.Error(err))
		observability.WebhookDispatchTotal.WithLabelValues(event, "error").Inc()
		return
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		d.log.Error("webhook rejected",
			zap.String("event", event),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody),
		)
		observability.WebhookDispatchTotal.WithLabelValues(event, "error").Inc()
		return
	}
	observability.WebhookDispatchTotal.WithLabelValues(event, "ok").Inc()
}

// sanitize bounds free text to max runes, substituting fallback for blank
// input.
func sanitize(val string, max int, fallback string) string {
	trimmed := false
	for _, r := range val {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			trimmed = true
			break
		}
	}
	if !trimmed {
		return fallback
	}
	runes := []rune(val)
	if len(runes) > max {
		return string(runes[:max])
	}
	return val
}

func longDate(t time.Time) string {
	return t.Format("January 2, 2006")
}
