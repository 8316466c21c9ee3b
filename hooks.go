package goseed

import (
	"sync"

	"github.com/agentstation/goseed/pkg/resources"
)

// AmbiguousMatch describes a lookup by name that found several records.
// The reconciler continues with Chosen; the others are left untouched.
type AmbiguousMatch struct {
	Kind   resources.Kind
	Name   string
	IDs    []int
	Chosen int
}

// AmbiguousMatchHook is called when a lookup by name is ambiguous.
type AmbiguousMatchHook func(match AmbiguousMatch)

// Hooks provides access to event callback registration.
type Hooks interface {
	OnAmbiguousMatch(fn AmbiguousMatchHook)
}

// hooks manages event callbacks
type hooks struct {
	mu                 sync.RWMutex
	onAmbiguousMatches []AmbiguousMatchHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnAmbiguousMatch registers a callback for ambiguous name lookups
func (h *hooks) OnAmbiguousMatch(fn AmbiguousMatchHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onAmbiguousMatches = append(h.onAmbiguousMatches, fn)
}

func (h *hooks) triggerAmbiguousMatch(m AmbiguousMatch) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onAmbiguousMatches {
		fn(m)
	}
}

// OnAmbiguousMatch registers a callback for ambiguous name lookups.
func (c *client) OnAmbiguousMatch(fn AmbiguousMatchHook) {
	if fn != nil {
		c.hooks.OnAmbiguousMatch(fn)
	}
}

// pickFirst returns the first of matches. When there is more than one it
// logs a warning and triggers the ambiguity hooks; the duplicates are not an
// error.
func pickFirst[T any](c *client, kind resources.Kind, name string, matches []T, id func(T) int) (T, bool) {
	var zero T
	if len(matches) == 0 {
		return zero, false
	}
	chosen := matches[0]
	if len(matches) > 1 {
		ids := make([]int, len(matches))
		for i, m := range matches {
			ids[i] = id(m)
		}
		c.logger.Warn().
			Str("resource", kind.Singular).
			Str("name", name).
			Ints("ids", ids).
			Int("chosen", id(chosen)).
			Msgf("More than one %s named %q; using the first", kind.Singular, name)
		c.hooks.triggerAmbiguousMatch(AmbiguousMatch{Kind: kind, Name: name, IDs: ids, Chosen: id(chosen)})
	}
	return chosen, true
}
