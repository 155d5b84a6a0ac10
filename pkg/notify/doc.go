// Package notify surfaces upgrade prompts when an entitlement check denies
// an action.
//
// The entitlement engine only emits a denial reason; turning that into a
// user-facing call-to-action is this package's job. All notifiers are
// best-effort: a prompt that cannot be delivered is logged and dropped,
// never propagated to the denied request.
//
// ThrottledNotifier wraps any Notifier with a Redis-backed suppression
// window so tenants are not spammed with identical prompts.
package notify
