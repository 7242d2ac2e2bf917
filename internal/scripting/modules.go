package scripting

import lua "github.com/yuin/gopher-lua"

// RegisterModules registers the fashion.* Lua table into L.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: fashion global is defined in L with item_name and item_slot.
func (m *Manager) RegisterModules(L *lua.LState) {
	mod := L.NewTable()
	L.SetField(mod, "item_name", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckInt(1)
		if m.ItemName == nil {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LString(m.ItemName(id)))
		return 1
	}))
	L.SetField(mod, "item_slot", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckInt(1)
		if m.ItemSlot == nil {
			L.Push(lua.LNil)
			return 1
		}
		slot, ok := m.ItemSlot(id)
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LString(slot))
		return 1
	}))
	L.SetGlobal("fashion", mod)
}
