package engine

import (
	"context"
	stderrors "errors"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	callbackbridge "github.com/wippyai/callback-bridge"
	"github.com/wippyai/callback-bridge/errors"
	"github.com/wippyai/callback-bridge/userdata"
)

// ModuleName is the import namespace guests use to reach the bridge.
const ModuleName = "callback_bridge"

// Abort carries a host-side error out of an in-flight guest call.
//
// The guest ABI has no error channel: emit returns nothing. When a
// sink raises, the host function panics with an *Abort; wazero
// recovers the panic and returns it as the error of the guest call,
// which is exactly the abort-the-operation semantics the protocol
// asks of the native side.
type Abort struct {
	Err error
}

func (a *Abort) Error() string {
	return a.Err.Error()
}

func (a *Abort) Unwrap() error {
	return a.Err
}

// AbortError extracts the original sink or dispatch error from an
// error returned by a guest call, if the call was aborted by the
// bridge.
func AbortError(err error) (error, bool) {
	var a *Abort
	if stderrors.As(err, &a) {
		return a.Err, true
	}
	return nil, false
}

// InstantiateBridge instantiates the callback_bridge host module in r.
// Guests import it as:
//
//	(import "callback_bridge" "emit" (func (param i32 i32 i32)))
//
// and call emit(ptr, len, handle) once per chunk, where handle is the
// user-data value the host passed in. The host reads the chunk from
// the calling module's memory and consumes it with the sink boxed
// under the handle in table.
func InstantiateBridge(ctx context.Context, r wazero.Runtime, table *userdata.Table) (api.Module, error) {
	if table == nil {
		table = userdata.Default()
	}

	builder := r.NewHostModuleBuilder(ModuleName)

	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
			ptr := uint32(stack[0])
			length := uint32(stack[1])
			h := userdata.Handle(uint32(stack[2]))

			if err := dispatch(NewWazeroMemory(mod.Memory()), ptr, length, h, table); err != nil {
				panic(&Abort{Err: err})
			}
		}), []api.ValueType{api.ValueTypeI32, api.ValueTypeI32, api.ValueTypeI32}, nil).
		Export("emit")

	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, errors.Registration(errors.PhaseHost, ModuleName+".emit", err)
	}

	Logger().Debug("bridge host module instantiated", zap.String("module", ModuleName))
	return mod, nil
}

// dispatch reads one chunk out of guest memory and hands it to the
// sink boxed under h. Chunks are copied by the sink before the guest
// runs again.
func dispatch(mem callbackbridge.Memory, ptr, length uint32, h userdata.Handle, table *userdata.Table) error {
	part, err := mem.Read(ptr, length)
	if err != nil {
		return err
	}

	v, ok := table.Get(h)
	if !ok {
		return errors.New(errors.PhaseEmit, errors.KindNotFound).
			Value(h).
			Detail("no sink boxed under user-data handle %d", h).
			Build()
	}
	sink, ok := v.(callbackbridge.ChunkSink)
	if !ok {
		return errors.InvalidInput(errors.PhaseEmit, "user-data is not a chunk sink")
	}

	Logger().Debug("emit dispatch",
		zap.Uint32("ptr", ptr),
		zap.Uint32("len", length),
		zap.Uint32("handle", uint32(h)))

	return sink.Consume(part)
}
