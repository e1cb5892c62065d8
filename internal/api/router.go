package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/quillhq/noticesvc/internal/api/middleware"
	"github.com/quillhq/noticesvc/internal/workflow"
)

type API struct {
	pool   *pgxpool.Pool
	engine *workflow.Engine
	log    *zap.Logger
}

func NewAPI(pool *pgxpool.Pool, engine *workflow.Engine, log *zap.Logger) *API {
	return &API{
		pool:   pool,
		engine: engine,
		log:    log,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recoverer(a.log))
	r.Use(middleware.Actor)
	r.Use(middleware.Logger)
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Health endpoints
	r.Get("/healthz", a.HealthHandler)
	r.Get("/readyz", a.ReadyHandler)

	// API v1 routes
	r.Route("/v1/workspaces/{workspace_id}", func(r chi.Router) {
		// Notices
		r.Get("/notices", a.ListNotices)
		r.Post("/notices", a.SubmitNotice)
		r.Post("/notices/record", a.RecordNotice)
		r.Post("/notices/review", a.ReviewNotice)

		// Settings
		r.Get("/settings/notice-tracking", a.GetTrackingSettings)
		r.Patch("/settings/notice-tracking", a.UpdateTrackingSettings)
		r.Get("/settings/inactivity", a.GetInactivitySettings)
		r.Patch("/settings/inactivity", a.UpdateInactivitySettings)
	})

	return r
}

// workspaceID parses the route's workspace id; 0 means malformed.
func workspaceID(r *http.Request) int64 {
	id, err := strconv.ParseInt(chi.URLParam(r, "workspace_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}
