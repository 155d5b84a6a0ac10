package plan

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileSource loads the catalog from a YAML file.
//
// Expected schema, one entry per tier:
//
//	free:
//	  max_technicians: 1
//	  max_work_orders_per_month: 5
//	  features: []
//	professional:
//	  max_technicians: 15
//	  max_work_orders_per_month: unlimited
//	  features: [pdf_export, api_integration]
type fileSource struct {
	path string
}

// NewFileSource returns a Source that reads the catalog from the given
// YAML file on every Load call.
func NewFileSource(path string) Source {
	return &fileSource{path: path}
}

// limitsEntry is the decoded form of one tier entry. Caps are pointers so an
// absent (or typo'd) key is distinguishable from an explicit 0.
type limitsEntry struct {
	MaxTechnicians        *Limit    `yaml:"max_technicians"`
	MaxWorkOrdersPerMonth *Limit    `yaml:"max_work_orders_per_month"`
	Features              []Feature `yaml:"features"`
}

// Load reads and decodes the catalog file. Tier keys and cap presence are
// validated here so a typo in the file surfaces at startup instead of
// resolving nobody's limits — an omitted cap would otherwise silently read
// as 0 and deny everything for that tier.
func (s *fileSource) Load(ctx context.Context) (map[Tier]Limits, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadCatalog, err)
	}

	var decoded map[string]limitsEntry
	if err := yaml.Unmarshal(raw, &decoded); err != nil {
		return nil, errors.Join(ErrFailedToLoadCatalog, err)
	}

	limits := make(map[Tier]Limits, len(decoded))
	for key, entry := range decoded {
		tier, err := ParseTier(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrFailedToLoadCatalog, err)
		}
		if entry.MaxTechnicians == nil {
			return nil, fmt.Errorf("%w: tier %q is missing max_technicians", ErrFailedToLoadCatalog, key)
		}
		if entry.MaxWorkOrdersPerMonth == nil {
			return nil, fmt.Errorf("%w: tier %q is missing max_work_orders_per_month", ErrFailedToLoadCatalog, key)
		}
		limits[tier] = Limits{
			MaxTechnicians:        *entry.MaxTechnicians,
			MaxWorkOrdersPerMonth: *entry.MaxWorkOrdersPerMonth,
			EnabledFeatures:       entry.Features,
		}
	}
	return limits, nil
}
