package identity

import (
	"context"
	"testing"
	"time"
)

type countingResolver struct {
	calls   int
	profile Profile
}

func (c *countingResolver) Resolve(ctx context.Context, userID int64) (Profile, error) {
	c.calls++
	return c.profile, nil
}

func TestCachedResolverHit(t *testing.T) {
	upstream := &countingResolver{profile: Profile{UserID: 7, Username: "astra"}}
	cached := NewCachedResolver(upstream, 16, time.Minute)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		p, err := cached.Resolve(ctx, 7)
		if err != nil {
			t.Fatalf("resolve failed: %s", err)
		}
		if p.Username != "astra" {
			t.Errorf("expected username astra, got %s", p.Username)
		}
	}
	if upstream.calls != 1 {
		t.Errorf("expected 1 upstream call, got %d", upstream.calls)
	}
}

func TestCachedResolverInvalidate(t *testing.T) {
	upstream := &countingResolver{profile: Profile{UserID: 7, Username: "astra"}}
	cached := NewCachedResolver(upstream, 16, time.Minute)

	ctx := context.Background()
	if _, err := cached.Resolve(ctx, 7); err != nil {
		t.Fatalf("resolve failed: %s", err)
	}
	cached.Invalidate(7)
	if _, err := cached.Resolve(ctx, 7); err != nil {
		t.Fatalf("resolve failed: %s", err)
	}
	if upstream.calls != 2 {
		t.Errorf("expected refetch after invalidate, got %d upstream calls", upstream.calls)
	}
}

func TestCachedResolverExpiry(t *testing.T) {
	upstream := &countingResolver{profile: Profile{UserID: 7, Username: "astra"}}
	cached := NewCachedResolver(upstream, 16, 10*time.Millisecond)

	ctx := context.Background()
	if _, err := cached.Resolve(ctx, 7); err != nil {
		t.Fatalf("resolve failed: %s", err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, err := cached.Resolve(ctx, 7); err != nil {
		t.Fatalf("resolve failed: %s", err)
	}
	if upstream.calls != 2 {
		t.Errorf("expected refetch after TTL, got %d upstream calls", upstream.calls)
	}
}
