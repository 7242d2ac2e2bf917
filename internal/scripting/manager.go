package scripting

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Manager owns one sandboxed LState holding the loaded scoring hooks.
//
// Manager is safe for concurrent use; calls into the VM are serialized.
type Manager struct {
	mu        sync.Mutex
	state     *lua.LState
	instLimit int
	logger    *zap.Logger

	// Injected after construction. nil = the fashion.* function returns nil.
	ItemName func(itemID int) string
	ItemSlot func(itemID int) (string, bool)
}

// NewManager creates a Manager with no script loaded.
//
// Precondition: logger must be non-nil.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{logger: logger}
}

// LoadFile replaces the current VM with a fresh sandbox that has executed the
// script at path.
//
// Precondition: path must be a readable Lua file.
// Postcondition: on error the previously loaded VM (if any) is kept.
func (m *Manager) LoadFile(path string, instLimit int) error {
	return m.load(instLimit, func(L *lua.LState) error { return L.DoFile(path) }, path)
}

// LoadString is LoadFile for an in-memory script.
func (m *Manager) LoadString(src string, instLimit int) error {
	return m.load(instLimit, func(L *lua.LState) error { return L.DoString(src) }, "<string>")
}

func (m *Manager) load(instLimit int, run func(*lua.LState) error, name string) error {
	L := NewSandboxedState()
	m.RegisterModules(L)
	if err := WithInstructionLimit(L, instLimit, func() error { return run(L) }); err != nil {
		L.Close()
		return fmt.Errorf("scripting: loading %q: %w", name, err)
	}

	m.mu.Lock()
	if m.state != nil {
		m.state.Close()
	}
	m.state = L
	m.instLimit = instLimit
	m.mu.Unlock()
	return nil
}

// HasHook reports whether the loaded script defines a global function named hook.
func (m *Manager) HasHook(hook string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return false
	}
	_, ok := m.state.GetGlobal(hook).(*lua.LFunction)
	return ok
}

// CallHook calls the named Lua global function. Returns (LNil, nil) if no
// script is loaded or the hook is not defined. Lua runtime errors, including
// exhausting the instruction budget, are logged at Warn level and never
// propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == nil {
		return lua.LNil, nil
	}
	L := m.state
	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	var ret lua.LValue = lua.LNil
	err := WithInstructionLimit(L, m.instLimit, func() error {
		if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...); err != nil {
			return err
		}
		ret = L.Get(-1)
		L.Pop(1)
		return nil
	})
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		L.SetTop(0)
		return lua.LNil, nil
	}
	return ret, nil
}

// Close releases the VM.
//
// Postcondition: subsequent CallHook calls return LNil.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != nil {
		m.state.Close()
		m.state = nil
	}
}
