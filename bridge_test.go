package callbackbridge

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/wippyai/callback-bridge/accumulate"
	"github.com/wippyai/callback-bridge/defaulting"
	"github.com/wippyai/callback-bridge/errors"
	"github.com/wippyai/callback-bridge/userdata"
)

// emitParts returns an emitter that pushes each part in order and
// stops on the first emit error, like a well-behaved native operation.
func emitParts(parts ...[]byte) Emitter {
	return func(cb Callback) error {
		for _, p := range parts {
			if err := cb.Emit(p, cb.UserData); err != nil {
				return err
			}
		}
		return nil
	}
}

func TestCollectString(t *testing.T) {
	got, err := CollectString(emitParts([]byte("He"), []byte("llo"), []byte(" world")))
	if err != nil {
		t.Fatalf("CollectString failed: %v", err)
	}
	if got != "Hello world" {
		t.Fatalf("Expected 'Hello world', got %q", got)
	}
}

func TestCollectString_NoChunks(t *testing.T) {
	got, err := CollectString(emitParts())
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Fatalf("Expected empty string, got %q", got)
	}
}

func TestCollectString_EmitterError(t *testing.T) {
	boom := stderrors.New("native failure")
	_, err := CollectString(func(cb Callback) error {
		if err := cb.Emit([]byte("partial"), cb.UserData); err != nil {
			return err
		}
		return boom
	})
	if !stderrors.Is(err, boom) {
		t.Fatalf("Expected native failure, got %v", err)
	}
}

func TestCollectString_AbortMidStream(t *testing.T) {
	// Invalid UTF-8 makes the sink raise; the emitter observes the
	// error on that invocation and stops.
	invocations := 0
	_, err := CollectString(func(cb Callback) error {
		for _, p := range [][]byte{[]byte("ok"), {0xFF}, []byte("never")} {
			invocations++
			if err := cb.Emit(p, cb.UserData); err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		t.Fatal("Expected abort")
	}
	if invocations != 2 {
		t.Fatalf("Emitter should stop at the raising invocation, made %d", invocations)
	}
}

func TestCopyToWriter_Binary(t *testing.T) {
	var buf bytes.Buffer
	chunk := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	err := CopyToWriter(emitParts(chunk), &buf, accumulate.ModeBinary, nil)
	if err != nil {
		t.Fatalf("CopyToWriter failed: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), chunk) {
		t.Fatalf("Expected %x, got %x", chunk, buf.Bytes())
	}
}

func TestCopyToWriter_Text(t *testing.T) {
	var buf bytes.Buffer

	err := CopyToWriter(emitParts([]byte("a"), []byte("b")), &buf, accumulate.ModeText, nil)
	if err != nil {
		t.Fatal(err)
	}
	if buf.String() != "ab" {
		t.Fatalf("Expected 'ab', got %q", buf.String())
	}
}

func TestCollectSingle(t *testing.T) {
	got, err := CollectSingle(emitParts([]byte("one chunk")))
	if err != nil {
		t.Fatal(err)
	}
	if got != "one chunk" {
		t.Fatalf("Expected 'one chunk', got %q", got)
	}
}

func TestCollectSingle_ZeroInvocationsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Expected panic for emitter that never called back")
		}
	}()
	CollectSingle(emitParts())
}

func TestBind_ReleaseInvalidatesHandle(t *testing.T) {
	j := accumulate.NewJoiner()
	cb, release := Bind(j)
	release()

	err := cb.Emit([]byte("late"), cb.UserData)
	if err == nil {
		t.Fatal("Expected error for released handle")
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseEmit, Kind: errors.KindNotFound}) {
		t.Fatalf("Expected not_found, got %v", err)
	}
}

func TestBind_NoLeak(t *testing.T) {
	before := userdata.Default().Len()

	if _, err := CollectString(emitParts([]byte("x"))); err != nil {
		t.Fatal(err)
	}

	if after := userdata.Default().Len(); after != before {
		t.Fatalf("Handle leaked: %d before, %d after", before, after)
	}
}

// Scenario: a defaultable parameter on a native-backed operation. The
// caller omits the context; conversion resolves it before the native
// call; the operation emits through an accumulator.

type printCtx struct{ banner string }

var currentPrintCtx = &printCtx{banner: "D"}

func TestDefaultingResolvesForOmittedArgument(t *testing.T) {
	if err := defaulting.Register[printCtx]("print context", func() (*printCtx, error) {
		return currentPrintCtx, nil
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	d, outcome, err := defaulting.Convert[printCtx](nil)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if outcome != defaulting.OutcomeMatched {
		t.Fatal("Expected OutcomeMatched")
	}
	if d.Get() != currentPrintCtx {
		t.Fatal("Expected the wrapper to point at the current default instance")
	}

	got, err := CollectString(emitParts([]byte(d.Get().banner)))
	if err != nil {
		t.Fatal(err)
	}
	if got != "D" {
		t.Fatalf("Expected 'D', got %q", got)
	}
}
