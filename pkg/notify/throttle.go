package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrThrottleUnavailable wraps Redis failures during throttle checks.
var ErrThrottleUnavailable = errors.New("notify.errors.throttle_unavailable")

// throttleStore is the slice of the Redis API the throttle needs.
// *redis.Client satisfies it.
type throttleStore interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
}

// ThrottledNotifier suppresses repeat prompts for the same tenant and
// denial within a TTL, so a tenant hammering a capped action sees one
// prompt per window instead of one per click. Uses a Redis SETNX key per
// (tenant, resource-or-feature) pair, which keeps the throttle shared
// across application instances.
type ThrottledNotifier struct {
	next  Notifier
	store throttleStore
	ttl   time.Duration
}

// NewThrottledNotifier wraps next with a Redis-backed throttle.
// A non-positive ttl defaults to one hour.
func NewThrottledNotifier(next Notifier, client *redis.Client, ttl time.Duration) *ThrottledNotifier {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ThrottledNotifier{next: next, store: client, ttl: ttl}
}

// PromptUpgrade forwards the prompt unless an identical one was delivered
// within the TTL. A throttle-store failure falls through to delivery:
// prompts are best-effort, and over-prompting beats losing them silently.
func (n *ThrottledNotifier) PromptUpgrade(ctx context.Context, p Prompt) error {
	ok, err := n.store.SetNX(ctx, n.key(p), 1, n.ttl).Result()
	if err != nil {
		if nerr := n.next.PromptUpgrade(ctx, p); nerr != nil {
			return errors.Join(ErrThrottleUnavailable, err, nerr)
		}
		return errors.Join(ErrThrottleUnavailable, err)
	}
	if !ok {
		// Prompt already delivered within the window.
		return nil
	}
	return n.next.PromptUpgrade(ctx, p)
}

func (n *ThrottledNotifier) key(p Prompt) string {
	subject := string(p.Resource)
	if p.Feature != "" {
		subject = string(p.Feature)
	}
	return fmt.Sprintf("upgrade_prompt:%s:%s", p.TenantID, subject)
}
