package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// registerLog installs the game log table (log.add, log.get, usable with
// either . or :), console_log and key_pressed.
func (e *Engine) registerLog() {
	L := e.vm
	e.logTable = L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"add": e.logAdd,
		"get": e.logGet,
	})
	L.SetGlobal("log", e.logTable)
	L.SetGlobal("console_log", L.NewFunction(e.consoleLog))
	L.SetGlobal("key_pressed", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(e.ctx.Input.Key != "" && e.ctx.Input.Key == e.checkString(L, 1)))
		return 1
	}))
}

// selfOffset skips the log table when called as log:add(...).
func (e *Engine) selfOffset(L *lua.LState) int {
	if L.Get(1) == e.logTable {
		return 1
	}
	return 0
}

func (e *Engine) logAdd(L *lua.LState) int {
	n := e.selfOffset(L) + 1
	e.ctx.Log.Add(L.ToStringMeta(L.Get(n)).String())
	return 0
}

func (e *Engine) logGet(L *lua.LState) int {
	msgs := e.ctx.Log.Messages()
	t := L.CreateTable(len(msgs), 0)
	for i, m := range msgs {
		t.RawSetInt(i+1, lua.LString(m))
	}
	L.Push(t)
	return 1
}

func (e *Engine) consoleLog(L *lua.LState) int {
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	e.log.Debug("console_log", zap.Strings("args", parts))
	return 0
}
