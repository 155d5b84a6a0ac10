package plan

import "context"

// inMemSource implements the Source interface using an in-memory limits map.
type inMemSource struct {
	limits map[Tier]Limits
}

// NewInMemSource returns an in-memory Source with a deep copy of the given
// limits. Deep copying prevents external modifications from affecting the
// source's state.
func NewInMemSource(limits map[Tier]Limits) Source {
	copied := make(map[Tier]Limits, len(limits))
	for tier, l := range limits {
		copied[tier] = l.clone()
	}
	return &inMemSource{limits: copied}
}

// NewBuiltinSource returns a Source serving the built-in catalog.
func NewBuiltinSource() Source {
	return &inMemSource{limits: Builtin()}
}

// Load returns a copy of the limits map from memory.
func (s *inMemSource) Load(ctx context.Context) (map[Tier]Limits, error) {
	copied := make(map[Tier]Limits, len(s.limits))
	for tier, l := range s.limits {
		copied[tier] = l.clone()
	}
	return copied, nil
}
