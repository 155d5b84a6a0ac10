package tenant

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Resolver extracts a tenant identifier from an HTTP request.
type Resolver interface {
	// Resolve extracts the tenant identifier from the request.
	// Returns empty string if no tenant identifier is found.
	// Returns error if the extraction fails.
	Resolve(r *http.Request) (string, error)
}

// ResolverFunc is an adapter to allow the use of ordinary functions as Resolvers.
type ResolverFunc func(r *http.Request) (string, error)

// Resolve calls the function.
func (f ResolverFunc) Resolve(r *http.Request) (string, error) {
	return f(r)
}

// SubdomainResolver extracts the tenant identifier from the request subdomain.
type SubdomainResolver struct {
	// Suffix to strip from the host (e.g., ".fieldsuite.app").
	Suffix string
}

// NewSubdomainResolver creates a new subdomain resolver.
func NewSubdomainResolver(suffix string) *SubdomainResolver {
	return &SubdomainResolver{Suffix: suffix}
}

// Resolve extracts the tenant from the subdomain, e.g. "acme" from
// "acme.fieldsuite.app". The base domain itself never reads as a tenant.
func (r *SubdomainResolver) Resolve(req *http.Request) (string, error) {
	host := req.Host
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	// A bare domain.tld has no subdomain to extract.
	if strings.Count(host, ".") < 2 {
		return "", nil
	}

	if r.Suffix != "" {
		if !strings.HasSuffix(host, r.Suffix) {
			return "", nil
		}
		host = strings.TrimSuffix(host, r.Suffix)
	}

	parts := strings.Split(host, ".")
	sub := parts[0]
	if sub == "www" {
		if len(parts) < 2 {
			return "", nil
		}
		sub = parts[1]
	}
	return sub, nil
}

// HeaderResolver extracts the tenant identifier from an HTTP header.
type HeaderResolver struct {
	HeaderName string
}

// NewHeaderResolver creates a new header resolver. Defaults to "X-Tenant-ID".
func NewHeaderResolver(headerName string) *HeaderResolver {
	if headerName == "" {
		headerName = "X-Tenant-ID"
	}
	return &HeaderResolver{HeaderName: headerName}
}

// Resolve extracts the tenant from the configured header.
func (r *HeaderResolver) Resolve(req *http.Request) (string, error) {
	return req.Header.Get(r.HeaderName), nil
}

// PathResolver extracts the tenant identifier from a URL path segment.
type PathResolver struct {
	// Position is the 1-based position in the path (e.g., 2 for /tenants/{id}/...).
	Position int
}

// NewPathResolver creates a new path resolver.
func NewPathResolver(position int) *PathResolver {
	return &PathResolver{Position: position}
}

// Resolve extracts the tenant from the specified path position.
func (r *PathResolver) Resolve(req *http.Request) (string, error) {
	if r.Position < 1 {
		return "", errors.New("invalid path position")
	}

	path := strings.Trim(req.URL.Path, "/")
	if path == "" {
		return "", nil
	}

	parts := strings.Split(path, "/")
	if r.Position > len(parts) {
		return "", nil
	}
	return parts[r.Position-1], nil
}

// CompositeResolver tries multiple resolvers in order until one succeeds.
type CompositeResolver struct {
	Resolvers []Resolver
}

// NewCompositeResolver creates a new composite resolver.
func NewCompositeResolver(resolvers ...Resolver) *CompositeResolver {
	return &CompositeResolver{Resolvers: resolvers}
}

// Resolve tries each resolver in order, returning the first non-empty result.
func (c *CompositeResolver) Resolve(r *http.Request) (string, error) {
	var errs []error
	for _, resolver := range c.Resolvers {
		id, err := resolver.Resolve(r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if id != "" {
			return id, nil
		}
	}

	if len(errs) > 0 {
		return "", fmt.Errorf("composite resolver errors: %w", errors.Join(errs...))
	}
	return "", nil
}
