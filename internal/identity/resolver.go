// Package identity resolves display identity (username, avatar) for external
// numeric user ids. The lookup service is an external collaborator; this
// package only fronts it with a typed client and a bounded cache.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// Profile is the resolved display identity of a user.
type Profile struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// Resolver looks up a user's display identity.
type Resolver interface {
	Resolve(ctx context.Context, userID int64) (Profile, error)
}

const defaultLookupTimeout = 5 * time.Second

// HTTPResolver resolves profiles against the users API.
type HTTPResolver struct {
	baseURL string
	client  *http.Client
}

// NewHTTPResolver returns a resolver hitting baseURL. A zero or negative
// timeout falls back to defaultLookupTimeout.
func NewHTTPResolver(baseURL string, timeout time.Duration) *HTTPResolver {
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}
	return &HTTPResolver{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (r *HTTPResolver) Resolve(ctx context.Context, userID int64) (Profile, error) {
	url := r.baseURL + "/users/" + strconv.FormatInt(userID, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Profile{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("lookup user %d: %w", userID, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return Profile{}, fmt.Errorf("lookup user %d: status %d", userID, resp.StatusCode)
	}

	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	p.UserID = userID
	return p, nil
}
