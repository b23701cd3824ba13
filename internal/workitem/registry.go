package workitem

import (
	"errors"
	"fmt"
	"sort"

	"github.com/wasilva/rendimento-code-generator/pkg/models"
)

// ErrUnsupportedKind is returned when no strategy is registered for a work
// item kind. It signals a configuration or mapping problem rather than a
// deficient work item, so it is surfaced as an error instead of a failed
// processing result.
var ErrUnsupportedKind = errors.New("no extraction strategy registered for work item kind")

// Registry maps work item kinds to their strategies. It is populated once
// and never mutated afterwards, which makes it safe to share across
// goroutines without locking.
type Registry struct {
	strategies map[models.Kind]*Strategy
}

// NewRegistry builds a registry from the given strategies. Registering two
// strategies for the same kind is a programming error and panics.
func NewRegistry(strategies ...*Strategy) *Registry {
	r := &Registry{strategies: make(map[models.Kind]*Strategy, len(strategies))}
	for _, s := range strategies {
		if _, dup := r.strategies[s.Kind]; dup {
			panic(fmt.Sprintf("workitem: duplicate strategy for kind %q", s.Kind))
		}
		r.strategies[s.Kind] = s
	}
	return r
}

// Resolve returns the strategy registered for kind, or ErrUnsupportedKind
// naming the kind when there is none.
func (r *Registry) Resolve(kind models.Kind) (*Strategy, error) {
	s, ok := r.strategies[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}
	return s, nil
}

// SupportedKinds returns the registered kinds in stable alphabetical order.
func (r *Registry) SupportedKinds() []models.Kind {
	kinds := make([]models.Kind, 0, len(r.strategies))
	for kind := range r.strategies {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Strategies returns the registered strategies ordered by kind.
func (r *Registry) Strategies() []*Strategy {
	kinds := r.SupportedKinds()
	strategies := make([]*Strategy, 0, len(kinds))
	for _, kind := range kinds {
		strategies = append(strategies, r.strategies[kind])
	}
	return strategies
}

// defaultRegistry holds the built-in strategies. Kinds without a registered
// strategy, such as epics and features, are deliberately absent: they are
// planning containers, not codeable units.
var defaultRegistry = NewRegistry(
	requirementStrategy(),
	taskStrategy(),
	defectStrategy(),
)

// Default returns the process-wide registry of built-in strategies.
func Default() *Registry {
	return defaultRegistry
}

// Resolve looks up a strategy in the default registry.
func Resolve(kind models.Kind) (*Strategy, error) {
	return defaultRegistry.Resolve(kind)
}

// SupportedKinds lists the kinds the default registry can process.
func SupportedKinds() []models.Kind {
	return defaultRegistry.SupportedKinds()
}
