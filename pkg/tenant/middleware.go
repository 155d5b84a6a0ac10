package tenant

import (
	"errors"
	"net/http"
	"strings"
)

// ErrorHandler handles errors that occur during tenant resolution.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// config holds middleware configuration.
type config struct {
	errorHandler  ErrorHandler
	skipPaths     []string
	requireActive bool
}

// Option configures the middleware.
type Option func(*config)

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *config) {
		c.errorHandler = handler
	}
}

// WithSkipPaths sets path prefixes that skip tenant resolution.
func WithSkipPaths(paths []string) Option {
	return func(c *config) {
		c.skipPaths = paths
	}
}

// WithRequireActive ensures only active tenants are allowed.
func WithRequireActive(require bool) Option {
	return func(c *config) {
		c.requireActive = require
	}
}

// Middleware creates HTTP middleware that resolves the tenant for each
// incoming request and adds it to the request context.
//
// There is deliberately no caching layer between the resolver and the
// provider: entitlement decisions downstream must observe plan changes
// immediately, so every request reads the current tenant record.
func Middleware(resolver Resolver, provider Provider, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		errorHandler:  defaultErrorHandler,
		requireActive: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			identifier, err := resolver.Resolve(r)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}

			// No identifier means an anonymous request; downstream checks
			// fail closed to the free tier on their own.
			if identifier == "" {
				next.ServeHTTP(w, r)
				return
			}

			t, err := provider.GetByIdentifier(r.Context(), identifier)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}

			if cfg.requireActive && !t.Active {
				cfg.errorHandler(w, r, ErrInactiveTenant)
				return
			}

			ctx := WithTenant(r.Context(), t)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireTenant creates middleware that ensures a tenant is present in the
// context. Useful for protecting routes that require tenant context.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t, ok := FromContext(r.Context())
			if !ok || t == nil {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrTenantNotFound):
		http.Error(w, "Tenant not found", http.StatusNotFound)
	case errors.Is(err, ErrInactiveTenant):
		http.Error(w, "Tenant is inactive", http.StatusForbidden)
	case errors.Is(err, ErrInvalidIdentifier):
		http.Error(w, "Invalid tenant identifier", http.StatusBadRequest)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
