package bind

import (
	"reflect"

	"github.com/wippyai/callback-bridge/errors"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// BoundFunc is a Go function prepared for invocation with
// loosely-typed arguments from the boundary. Parameters whose types
// have a registered conversion rule are converted before the call;
// results with a return rule are converted after it.
type BoundFunc struct {
	fn        reflect.Value
	params    []reflect.Type
	results   []reflect.Type
	reg       *Registry
	returnErr bool
}

// Func binds fn against the default registry.
func Func(fn any) (*BoundFunc, error) {
	return NewFunc(fn, Default())
}

// NewFunc binds fn against an explicit registry.
func NewFunc(fn any, reg *Registry) (*BoundFunc, error) {
	rv := reflect.ValueOf(fn)
	if !rv.IsValid() || rv.Kind() != reflect.Func {
		return nil, errors.New(errors.PhaseConvert, errors.KindInvalidInput).
			GoType(typeName(fn)).
			Detail("bind target must be a function").
			Build()
	}

	rt := rv.Type()
	if rt.IsVariadic() {
		return nil, errors.InvalidInput(errors.PhaseConvert, "variadic functions cannot be bound")
	}

	b := &BoundFunc{fn: rv, reg: reg}
	for i := 0; i < rt.NumIn(); i++ {
		b.params = append(b.params, rt.In(i))
	}
	for i := 0; i < rt.NumOut(); i++ {
		b.results = append(b.results, rt.Out(i))
	}
	if n := len(b.results); n > 0 && b.results[n-1] == errType {
		b.returnErr = true
		b.results = b.results[:n-1]
	}

	return b, nil
}

// NumIn returns the number of bound parameters.
func (b *BoundFunc) NumIn() int {
	return len(b.params)
}

// Call converts args, invokes the bound function, and converts its
// results. Conversion rule errors propagate before the function runs;
// a soft rule non-match becomes a no_match diagnostic naming the
// expected type.
func (b *BoundFunc) Call(args []any) ([]any, error) {
	if len(args) != len(b.params) {
		return nil, errors.New(errors.PhaseConvert, errors.KindInvalidInput).
			Detail("expected %d arguments, got %d", len(b.params), len(args)).
			Build()
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		v, err := b.convertArg(b.params[i], arg)
		if err != nil {
			return nil, err
		}
		in[i] = v
	}

	out := b.fn.Call(in)

	if b.returnErr {
		last := out[len(out)-1]
		out = out[:len(out)-1]
		if !last.IsNil() {
			return nil, last.Interface().(error)
		}
	}

	results := make([]any, len(out))
	for i, v := range out {
		r := v.Interface()
		if rule, ok := b.reg.returnRule(v.Type()); ok {
			r = rule(r)
		}
		results[i] = r
	}
	return results, nil
}

func (b *BoundFunc) convertArg(param reflect.Type, arg any) (reflect.Value, error) {
	if e, ok := b.reg.rule(param); ok {
		out, matched, err := e.rule(arg)
		if err != nil {
			return reflect.Value{}, err
		}
		if !matched {
			return reflect.Value{}, errors.NoMatch(e.description, typeName(arg))
		}
		return reflect.ValueOf(out), nil
	}

	if arg == nil {
		switch param.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
			return reflect.Zero(param), nil
		}
		return reflect.Value{}, errors.NoMatch(param.String(), "nil")
	}

	v := reflect.ValueOf(arg)
	if !v.Type().AssignableTo(param) {
		return reflect.Value{}, errors.NoMatch(param.String(), v.Type().String())
	}
	return v, nil
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
