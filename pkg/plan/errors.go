package plan

import "errors"

// Domain errors for plan catalog operations
var (
	ErrUnknownTier         = errors.New("plan.errors.unknown_tier")
	ErrUnknownFeature      = errors.New("plan.errors.unknown_feature")
	ErrInvalidLimit        = errors.New("plan.errors.invalid_limit")
	ErrIncompleteCatalog   = errors.New("plan.errors.incomplete_catalog")
	ErrFailedToLoadCatalog = errors.New("plan.errors.failed_to_load_catalog")
)
