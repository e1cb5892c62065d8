package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/quillhq/noticesvc/internal/core"
	"github.com/quillhq/noticesvc/internal/workflow"
)

// Handler tests without DB dependency

func TestHealthHandler(t *testing.T) {
	api := &API{}
	r := chi.NewRouter()
	r.Get("/healthz", api.HealthHandler)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("expected body OK, got %s", w.Body.String())
	}
}

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		code core.ErrorCode
		want int
	}{
		{core.ErrUnauthenticated, 401},
		{core.ErrForbidden, 403},
		{core.ErrBadRequest, 400},
		{core.ErrInvalidRange, 400},
		{core.ErrNotFound, 404},
		{core.ErrInternal, 500},
	}
	for _, c := range cases {
		w := httptest.NewRecorder()
		WriteError(w, core.NewAppError(c.code, "test error"))

		if w.Code != c.want {
			t.Errorf("%s: expected status %d, got %d", c.code, c.want, w.Code)
		}
		var resp ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %s", err)
		}
		if resp.Code != string(c.code) {
			t.Errorf("expected code %s, got %s", c.code, resp.Code)
		}
		if resp.Success {
			t.Error("error responses must carry success=false")
		}
	}
}

func TestWriteErrorWrapsUnknown(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, http.ErrBodyNotAllowed)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
	var resp ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Code != string(core.ErrInternal) {
		t.Errorf("expected internal code, got %s", resp.Code)
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	data := map[string]string{"key": "value"}
	WriteJSON(w, http.StatusOK, data)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %s", err)
	}
	if resp["key"] != "value" {
		t.Errorf("expected key=value, got %v", resp)
	}
}

func testRouter() chi.Router {
	engine := workflow.NewEngine(nil, nil, nil, nil, nil, nil, zap.NewNop())
	api := NewAPI(nil, engine, zap.NewNop())
	return api.Router()
}

func TestSubmitRequiresActor(t *testing.T) {
	r := testRouter()

	body := strings.NewReader(`{"startTime":1700000000000,"endTime":1700600000000,"reason":"trip"}`)
	req := httptest.NewRequest("POST", "/v1/workspaces/500/notices", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
	var resp ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Code != string(core.ErrUnauthenticated) {
		t.Errorf("expected code %s, got %s", core.ErrUnauthenticated, resp.Code)
	}
}

func TestMalformedActorHeaderRejected(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest("POST", "/v1/workspaces/500/notices/review", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "not-a-number")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
}

func TestInvalidWorkspaceID(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest("POST", "/v1/workspaces/banana/notices", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "1001")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestParseLimit(t *testing.T) {
	if got := parseLimit("", 50, 200); got != 50 {
		t.Errorf("expected default 50, got %d", got)
	}
	if got := parseLimit("10", 50, 200); got != 10 {
		t.Errorf("expected 10, got %d", got)
	}
	if got := parseLimit("9999", 50, 200); got != 200 {
		t.Errorf("expected cap 200, got %d", got)
	}
	if got := parseLimit("junk", 50, 200); got != 50 {
		t.Errorf("expected default on junk, got %d", got)
	}
}
