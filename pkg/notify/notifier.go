package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fieldsuite/entitlement/pkg/logger"
	"github.com/fieldsuite/entitlement/pkg/plan"
)

// Prompt is an upgrade call-to-action emitted when an entitlement check
// denies an action. It carries the denial detail the UI needs to word the
// prompt; rendering and delivery are the collaborator's concern.
type Prompt struct {
	TenantID  uuid.UUID
	Tier      plan.Tier
	Resource  plan.Resource // set for quota denials
	Feature   plan.Feature  // set for feature denials
	Current   int64
	Limit     plan.Limit
	CreatedAt time.Time
}

// Notifier surfaces upgrade prompts to tenants. Implementations are
// best-effort collaborators: the engine logs their failures but a prompt
// that cannot be delivered never fails the denied request itself.
type Notifier interface {
	PromptUpgrade(ctx context.Context, p Prompt) error
}

// NotifierFunc is an adapter to allow the use of ordinary functions as Notifiers.
type NotifierFunc func(ctx context.Context, p Prompt) error

// PromptUpgrade calls the function.
func (f NotifierFunc) PromptUpgrade(ctx context.Context, p Prompt) error {
	return f(ctx, p)
}

// NoopNotifier discards prompts. Useful when no upgrade surface exists yet.
type NoopNotifier struct{}

// PromptUpgrade does nothing and returns nil.
func (NoopNotifier) PromptUpgrade(ctx context.Context, p Prompt) error {
	return nil
}

// LogNotifier records prompts in the application log, which doubles as
// denial telemetry when no richer delivery channel is wired.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier creates a logging notifier. Falls back to slog.Default()
// when log is nil.
func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &LogNotifier{log: log}
}

// PromptUpgrade logs the prompt at info level.
func (n *LogNotifier) PromptUpgrade(ctx context.Context, p Prompt) error {
	attrs := []slog.Attr{
		logger.TenantID(p.TenantID),
		logger.Tier(p.Tier),
	}
	if p.Feature != "" {
		attrs = append(attrs, logger.Feature(string(p.Feature)))
	} else {
		attrs = append(attrs,
			logger.Resource(string(p.Resource)),
			logger.Count(p.Current),
			logger.Limit(p.Limit.String()),
		)
	}
	n.log.LogAttrs(ctx, slog.LevelInfo, "upgrade prompt", attrs...)
	return nil
}
