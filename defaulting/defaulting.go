package defaulting

import (
	"reflect"
	"sync"

	"github.com/wippyai/callback-bridge/bind"
	"github.com/wippyai/callback-bridge/errors"
)

// Outcome reports whether an incoming value could be interpreted for a
// wrapper's referent type. A non-match is not an error; it lets the
// dispatch layer keep looking for a better diagnostic.
type Outcome uint8

const (
	OutcomeMatched Outcome = iota
	OutcomeNoMatch
)

// Defaulting wraps a borrowed reference to a referent value. A bound
// wrapper always holds a non-nil reference; the zero value exists only
// as marshalling scratch and must never be dereferenced. It owns
// nothing and lives for the duration of one call.
type Defaulting[T any] struct {
	ref *T
}

// Of binds a wrapper to an explicit referent. Panics on nil: callers
// construct wrappers from live references only, absence goes through
// Convert.
func Of[T any](ref *T) Defaulting[T] {
	if ref == nil {
		panic("defaulting: Of called with nil referent")
	}
	return Defaulting[T]{ref: ref}
}

// Get returns the bound reference.
func (d Defaulting[T]) Get() *T {
	return d.ref
}

type resolverEntry struct {
	resolve     func() (any, error)
	description string
}

var (
	resolvers   = make(map[reflect.Type]resolverEntry)
	resolversMu sync.RWMutex
)

// Register installs the resolver and human-readable description for a
// referent type, and the matching conversion rules in the default bind
// registry. The resolver produces the environmentally current instance
// or reports that none is set; it is called only when a caller passes
// absence for a parameter of this type.
func Register[T any](description string, resolve func() (*T, error)) error {
	referent := reflect.TypeOf((*T)(nil)).Elem()

	resolversMu.Lock()
	if _, ok := resolvers[referent]; ok {
		resolversMu.Unlock()
		return errors.Registration(errors.PhaseResolve, referent.String(),
			errors.InvalidInput(errors.PhaseResolve, "resolver already registered"))
	}
	resolvers[referent] = resolverEntry{
		resolve:     func() (any, error) { return resolve() },
		description: description,
	}
	resolversMu.Unlock()

	wrapper := reflect.TypeOf(Defaulting[T]{})
	if err := bind.Default().Register(wrapper, description, func(in any) (any, bool, error) {
		d, outcome, err := Convert[T](in)
		if err != nil {
			return nil, true, err
		}
		if outcome == OutcomeNoMatch {
			return nil, false, nil
		}
		return d, true, nil
	}); err != nil {
		return err
	}
	return bind.Default().RegisterReturn(wrapper, func(out any) any {
		return out.(Defaulting[T]).Get()
	})
}

// Convert is the single resolve-or-bind step. Absence (nil, including
// a typed nil reference) resolves through the registered resolver;
// resolution failure is a hard error naming the expected type. A live
// reference binds directly. Anything else is a soft non-match.
func Convert[T any](in any) (Defaulting[T], Outcome, error) {
	if in == nil {
		return resolveDefault[T]()
	}

	ref, ok := in.(*T)
	if !ok {
		return Defaulting[T]{}, OutcomeNoMatch, nil
	}
	if ref == nil {
		return resolveDefault[T]()
	}
	return Of(ref), OutcomeMatched, nil
}

func resolveDefault[T any]() (Defaulting[T], Outcome, error) {
	referent := reflect.TypeOf((*T)(nil)).Elem()

	resolversMu.RLock()
	e, ok := resolvers[referent]
	resolversMu.RUnlock()

	if !ok {
		return Defaulting[T]{}, OutcomeMatched,
			errors.NoDefault(referent.String(),
				errors.NotFound(errors.PhaseResolve, "resolver", referent.String()))
	}

	v, err := e.resolve()
	if err != nil {
		return Defaulting[T]{}, OutcomeMatched, errors.NoDefault(e.description, err)
	}
	ref := v.(*T)
	if ref == nil {
		return Defaulting[T]{}, OutcomeMatched,
			errors.NoDefault(e.description,
				errors.InvalidInput(errors.PhaseResolve, "resolver returned nil"))
	}
	return Of(ref), OutcomeMatched, nil
}

// Description returns the registered human-readable name for a
// referent type, used in conversion diagnostics.
func Description[T any]() (string, bool) {
	referent := reflect.TypeOf((*T)(nil)).Elem()

	resolversMu.RLock()
	defer resolversMu.RUnlock()
	e, ok := resolvers[referent]
	if !ok {
		return "", false
	}
	return e.description, true
}
