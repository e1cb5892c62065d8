package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/quillhq/noticesvc/internal/core"
	"github.com/quillhq/noticesvc/internal/identity"
)

type staticResolver struct {
	profiles map[int64]identity.Profile
}

func (s *staticResolver) Resolve(ctx context.Context, userID int64) (identity.Profile, error) {
	if p, ok := s.profiles[userID]; ok {
		return p, nil
	}
	return identity.Profile{}, context.Canceled
}

type staticWorkspaces struct {
	ws core.Workspace
}

func (s *staticWorkspaces) GetWorkspace(ctx context.Context, workspaceID int64) (core.Workspace, error) {
	return s.ws, nil
}

func testDispatcher(resolver identity.Resolver) *Dispatcher {
	return NewDispatcher(
		resolver,
		&staticWorkspaces{ws: core.Workspace{WorkspaceID: 1, Name: "Starlight Cafe", LogoURL: "https://cdn.example/logo.png"}},
		time.Second,
		zap.NewNop(),
	)
}

func testNotice() core.Notice {
	return core.Notice{
		ID:          core.NewID(),
		WorkspaceID: 1,
		UserID:      1001,
		StartTime:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
		Reason:      "Family trip",
	}
}

func TestNoticeSubmittedPayload(t *testing.T) {
	var got payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %s", err)
		}
	}))
	defer srv.Close()

	d := testDispatcher(&staticResolver{profiles: map[int64]identity.Profile{
		1001: {UserID: 1001, Username: "astra", AvatarURL: "https://cdn.example/astra.png"},
	}})
	d.NoticeSubmitted(context.Background(), core.WebhookConfig{Enabled: true, URL: srv.URL}, testNotice())

	if len(got.Embeds) != 1 {
		t.Fatalf("expected 1 embed, got %d", len(got.Embeds))
	}
	e := got.Embeds[0]
	if e.Title != "📋 New Inactivity Notice" {
		t.Errorf("unexpected title %q", e.Title)
	}
	if e.Color != colorSubmitted {
		t.Errorf("expected color %#x, got %#x", colorSubmitted, e.Color)
	}
	if e.Footer.Text != "Starlight Cafe" {
		t.Errorf("unexpected footer %q", e.Footer.Text)
	}
	assertField(t, e, "User", "astra")
	assertField(t, e, "User ID", "1001")
	assertField(t, e, "Start Date", "March 1, 2024")
	assertField(t, e, "End Date", "March 8, 2024")
	assertField(t, e, "Reason", "Family trip")
}

func TestNoticeReviewedDenyPayload(t *testing.T) {
	var got payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
	}))
	defer srv.Close()

	d := testDispatcher(&staticResolver{profiles: map[int64]identity.Profile{
		1001: {UserID: 1001, Username: "astra"},
		2002: {UserID: 2002, Username: "marshal"},
	}})
	comment := "Overlaps the release window"
	d.NoticeReviewed(context.Background(), core.WebhookConfig{Enabled: true, URL: srv.URL}, testNotice(), 2002, false, &comment)

	e := got.Embeds[0]
	if e.Title != "❌ Inactivity Notice Denied" {
		t.Errorf("unexpected title %q", e.Title)
	}
	if e.Color != colorDenied {
		t.Errorf("expected deny color, got %#x", e.Color)
	}
	assertField(t, e, "Reviewed By", "marshal")
	assertField(t, e, "Review Comment", "Overlaps the release window")
}

func TestDispatchSkippedWhenDisabled(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	d := testDispatcher(&staticResolver{})
	d.NoticeSubmitted(context.Background(), core.WebhookConfig{Enabled: false, URL: srv.URL}, testNotice())
	d.NoticeSubmitted(context.Background(), core.WebhookConfig{Enabled: true, URL: ""}, testNotice())

	if called {
		t.Error("expected no delivery when config disabled or URL empty")
	}
}

func TestDispatchSwallowsTransportFailure(t *testing.T) {
	d := testDispatcher(&staticResolver{})
	// Unroutable URL; must not panic or surface anything.
	d.NoticeSubmitted(context.Background(), core.WebhookConfig{Enabled: true, URL: "http://127.0.0.1:1"}, testNotice())
}

func TestDispatchSwallowsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad signature", http.StatusForbidden)
	}))
	defer srv.Close()

	d := testDispatcher(&staticResolver{})
	d.NoticeRecorded(context.Background(), core.WebhookConfig{Enabled: true, URL: srv.URL}, testNotice(), 2002)
}

func TestSanitize(t *testing.T) {
	if got := sanitize("", 1024, fallbackReason); got != fallbackReason {
		t.Errorf("expected fallback for empty input, got %q", got)
	}
	if got := sanitize("   \n\t ", 1024, fallbackReason); got != fallbackReason {
		t.Errorf("expected fallback for blank input, got %q", got)
	}
	long := strings.Repeat("a", 3000)
	if got := sanitize(long, 1024, fallbackReason); len([]rune(got)) != 1024 {
		t.Errorf("expected 1024 runes, got %d", len([]rune(got)))
	}
	if got := sanitize("fine", 1024, fallbackReason); got != "fine" {
		t.Errorf("expected passthrough, got %q", got)
	}
}

func assertField(t *testing.T, e Embed, name, value string) {
	t.Helper()
	for _, f := range e.Fields {
		if f.Name == name {
			if f.Value != value {
				t.Errorf("field %s: expected %q, got %q", name, value, f.Value)
			}
			return
		}
	}
	t.Errorf("field %s missing", name)
}
