package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
)

// ActorHeader carries the acting user id resolved by the fronting session
// layer. This service never authenticates; it trusts the gateway.
const ActorHeader = "X-User-ID"

type ctxKeyActor struct{}

// Actor extracts the resolved acting-user id into the context. A malformed
// header is rejected outright; an absent one is left for handlers to treat as
// unauthenticated.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(ActorHeader)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{
				"code":  "NTC_UNAUTHENTICATED",
				"error": "invalid acting user",
			})
			return
		}
		ctx := context.WithValue(r.Context(), ctxKeyActor{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorID returns the acting user id, if one was resolved.
func ActorID(r *http.Request) (int64, bool) {
	id, ok := r.Context().Value(ctxKeyActor{}).(int64)
	return id, ok
}
