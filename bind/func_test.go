package bind

import (
	stderrors "errors"
	"reflect"
	"strings"
	"testing"

	"github.com/wippyai/callback-bridge/errors"
)

func TestFunc_RejectsNonFunction(t *testing.T) {
	if _, err := NewFunc(42, NewRegistry()); err == nil {
		t.Fatal("Expected error for non-function")
	}
	if _, err := NewFunc(nil, NewRegistry()); err == nil {
		t.Fatal("Expected error for nil")
	}
}

func TestFunc_RejectsVariadic(t *testing.T) {
	if _, err := NewFunc(func(args ...int) {}, NewRegistry()); err == nil {
		t.Fatal("Expected error for variadic function")
	}
}

func TestCall_PlainAssignment(t *testing.T) {
	fn, err := NewFunc(func(a string, b int) string {
		return a
	}, NewRegistry())
	if err != nil {
		t.Fatalf("NewFunc failed: %v", err)
	}

	out, err := fn.Call([]any{"hello", 3})
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if out[0] != "hello" {
		t.Fatalf("Expected 'hello', got %v", out[0])
	}
}

func TestCall_ArityMismatch(t *testing.T) {
	fn, err := NewFunc(func(a string) {}, NewRegistry())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := fn.Call([]any{"a", "b"}); err == nil {
		t.Fatal("Expected arity error")
	}
	if _, err := fn.Call(nil); err == nil {
		t.Fatal("Expected arity error")
	}
}

func TestCall_AssignmentMismatchIsNoMatch(t *testing.T) {
	fn, err := NewFunc(func(a int) {}, NewRegistry())
	if err != nil {
		t.Fatal(err)
	}

	_, err = fn.Call([]any{"not an int"})
	if err == nil {
		t.Fatal("Expected no-match error")
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseConvert, Kind: errors.KindNoMatch}) {
		t.Fatalf("Expected no_match, got %v", err)
	}
}

func TestCall_NilForNilableParam(t *testing.T) {
	fn, err := NewFunc(func(p *int, s []byte) bool {
		return p == nil && s == nil
	}, NewRegistry())
	if err != nil {
		t.Fatal(err)
	}

	out, err := fn.Call([]any{nil, nil})
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if out[0] != true {
		t.Fatal("Expected zero values for nil args")
	}
}

func TestCall_NilForValueParamIsNoMatch(t *testing.T) {
	fn, err := NewFunc(func(n int) {}, NewRegistry())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := fn.Call([]any{nil}); err == nil {
		t.Fatal("Expected no-match for nil value arg")
	}
}

func TestCall_ErrorResultSplit(t *testing.T) {
	boom := stderrors.New("boom")
	fn, err := NewFunc(func(fail bool) (string, error) {
		if fail {
			return "", boom
		}
		return "ok", nil
	}, NewRegistry())
	if err != nil {
		t.Fatal(err)
	}

	out, err := fn.Call([]any{false})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0] != "ok" {
		t.Fatalf("Expected single 'ok' result, got %v", out)
	}

	_, err = fn.Call([]any{true})
	if !stderrors.Is(err, boom) {
		t.Fatalf("Expected boom, got %v", err)
	}
}

type token struct{ v string }

func TestCall_RuleConversion(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register(reflect.TypeOf(token{}), "token", func(in any) (any, bool, error) {
		s, ok := in.(string)
		if !ok {
			return nil, false, nil
		}
		return token{v: s}, true, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	fn, err := NewFunc(func(tok token) string {
		return tok.v
	}, reg)
	if err != nil {
		t.Fatal(err)
	}

	out, err := fn.Call([]any{"abc"})
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if out[0] != "abc" {
		t.Fatalf("Expected 'abc', got %v", out[0])
	}

	// Rule non-match surfaces the registered description.
	_, err = fn.Call([]any{99})
	if err == nil {
		t.Fatal("Expected no-match error")
	}
	if !strings.Contains(err.Error(), "token") {
		t.Fatalf("Diagnostic %q does not name the expected type", err.Error())
	}
}

func TestCall_RuleHardErrorPropagates(t *testing.T) {
	boom := stderrors.New("resolution failed")
	reg := NewRegistry()
	if err := reg.Register(reflect.TypeOf(token{}), "token", func(in any) (any, bool, error) {
		return nil, true, boom
	}); err != nil {
		t.Fatal(err)
	}

	called := false
	fn, err := NewFunc(func(tok token) {
		called = true
	}, reg)
	if err != nil {
		t.Fatal(err)
	}

	_, err = fn.Call([]any{nil})
	if !stderrors.Is(err, boom) {
		t.Fatalf("Expected rule error, got %v", err)
	}
	if called {
		t.Fatal("Function must not run after a rule error")
	}
}

func TestCall_ReturnRule(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterReturn(reflect.TypeOf(token{}), func(out any) any {
		return out.(token).v
	}); err != nil {
		t.Fatal(err)
	}

	fn, err := NewFunc(func() token {
		return token{v: "unwrapped"}
	}, reg)
	if err != nil {
		t.Fatal(err)
	}

	out, err := fn.Call(nil)
	if err != nil {
		t.Fatal(err)
	}
	if out[0] != "unwrapped" {
		t.Fatalf("Expected 'unwrapped', got %v", out[0])
	}
}

func TestRegistry_DuplicateRule(t *testing.T) {
	reg := NewRegistry()
	rule := func(in any) (any, bool, error) { return in, true, nil }

	if err := reg.Register(reflect.TypeOf(token{}), "token", rule); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(reflect.TypeOf(token{}), "token", rule); err == nil {
		t.Fatal("Expected duplicate registration to fail")
	}
}
