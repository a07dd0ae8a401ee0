package bind

import (
	"reflect"
	"sync"

	"github.com/wippyai/callback-bridge/errors"
)

// Rule converts an incoming loosely-typed argument into a value of the
// registered parameter type.
//
// The two failure channels are structurally distinct: matched == false
// is a soft non-match that lets the dispatch layer produce an accurate
// "no matching signature" diagnostic, while a non-nil err is a hard
// failure (such as a default resolution that found nothing) and
// propagates unchanged.
type Rule func(in any) (out any, matched bool, err error)

// ReturnRule converts an outgoing result value back to its plain
// representation before it crosses the boundary.
type ReturnRule func(out any) any

type ruleEntry struct {
	rule        Rule
	description string
}

// Registry holds the conversion rules consulted when binding and
// calling functions. Types without a rule marshal by plain assignment.
type Registry struct {
	rules   map[reflect.Type]ruleEntry
	returns map[reflect.Type]ReturnRule
	mu      sync.RWMutex
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		rules:   make(map[reflect.Type]ruleEntry),
		returns: make(map[reflect.Type]ReturnRule),
	}
}

// Register installs a conversion rule for a parameter type. The
// description names the expected type in mismatch diagnostics.
func (r *Registry) Register(t reflect.Type, description string, rule Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rules[t]; ok {
		return errors.Registration(errors.PhaseConvert, t.String(),
			errors.InvalidInput(errors.PhaseConvert, "rule already registered"))
	}
	r.rules[t] = ruleEntry{rule: rule, description: description}
	return nil
}

// RegisterReturn installs an outbound conversion for a result type.
func (r *Registry) RegisterReturn(t reflect.Type, rule ReturnRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.returns[t]; ok {
		return errors.Registration(errors.PhaseConvert, t.String(),
			errors.InvalidInput(errors.PhaseConvert, "return rule already registered"))
	}
	r.returns[t] = rule
	return nil
}

func (r *Registry) rule(t reflect.Type) (ruleEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.rules[t]
	return e, ok
}

func (r *Registry) returnRule(t reflect.Type) (ReturnRule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.returns[t]
	return rule, ok
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used by Func.
func Default() *Registry {
	return defaultRegistry
}
