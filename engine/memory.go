package engine

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/callback-bridge/errors"
)

// WazeroMemory adapts wazero guest memory to the bridge's Memory interface.
type WazeroMemory struct {
	mem api.Memory
}

// NewWazeroMemory wraps a guest module's memory. A nil memory is
// allowed and fails every read; modules without a memory cannot emit.
func NewWazeroMemory(mem api.Memory) *WazeroMemory {
	return &WazeroMemory{mem: mem}
}

// Read returns length bytes at offset. The returned slice aliases
// guest memory and is only valid until the guest runs again; callers
// copy before retaining, which every accumulator already does.
func (m *WazeroMemory) Read(offset uint32, length uint32) ([]byte, error) {
	if m.mem == nil {
		return nil, errors.InvalidInput(errors.PhaseEmit, "calling module has no memory")
	}
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseEmit, offset, length)
	}
	return data, nil
}
