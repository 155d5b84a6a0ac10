// Package tenant provides tenant identity, request-scoped tenant resolution,
// and the fail-closed mapping from a tenant to its current subscription tier.
//
// A Tenant is an opaque company account. Its record carries exactly one
// active tier at any instant; tier changes happen in the billing flow, not
// here. What this package guarantees is that every read observes the current
// record — there is no caching between the resolver and the store.
//
// PlanResolver implements the fail-closed policy required by the entitlement
// engine: anonymous callers, missing records, and store failures all resolve
// to the free tier. Store failures are logged at warn level so operators can
// distinguish them from legitimately free tenants.
//
// For HTTP services, Middleware resolves the tenant per request using a
// Resolver (subdomain, header, path, or a composite of those) and a Provider
// (Postgres and MongoDB implementations are included), then stores the
// record in the request context for handlers and the engine to consume.
package tenant
