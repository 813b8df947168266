package scripting

import (
	"errors"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/glyphkeep/glyphkeep/internal/game"
	"github.com/glyphkeep/glyphkeep/internal/render"
)

// Engine wraps a single gopher-lua VM bound to one game.Context. Every host
// function reaches the core stores through that context.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	ctx *game.Context
	log *zap.Logger

	hostClasses   map[string]*hostClass
	scriptClasses map[string]*lua.LTable
	logTable      *lua.LTable

	// fault is the typed error behind the last raise from a host function.
	fault error
}

// NewEngine creates a Lua VM with the full host API installed.
func NewEngine(ctx *game.Context, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{
		vm:            vm,
		ctx:           ctx,
		log:           log,
		hostClasses:   make(map[string]*hostClass),
		scriptClasses: make(map[string]*lua.LTable),
	}
	e.registerValues()
	e.registerComponents()
	e.registerWorld()
	e.registerMap()
	e.registerDraw()
	e.registerLog()

	vm.SetGlobal("WIDTH", lua.LNumber(ctx.Settings.Width))
	vm.SetGlobal("HEIGHT", lua.LNumber(ctx.Settings.Height))
	vm.SetGlobal("CONSOLE_MAP", lua.LNumber(render.ConsoleMap))
	vm.SetGlobal("CONSOLE_TEXT", lua.LNumber(render.ConsoleText))
	vm.SetGlobal("CONSOLE_UI", lua.LNumber(render.ConsoleUI))
	e.setInput(game.Input{})
	return e
}

// Load runs entry from dir. Modules in dir are reachable with require.
func (e *Engine) Load(dir, entry string) error {
	if pkg, ok := e.vm.GetGlobal("package").(*lua.LTable); ok {
		path := filepath.Join(dir, "?.lua") + ";" + lua.LVAsString(pkg.RawGetString("path"))
		pkg.RawSetString("path", lua.LString(path))
	}
	file := filepath.Join(dir, entry)
	e.fault = nil
	if err := e.vm.DoFile(file); err != nil {
		return e.wrap(file, err)
	}
	e.log.Info("loaded lua script", zap.String("file", file))
	return nil
}

// DoString runs a chunk of Lua source.
func (e *Engine) DoString(src string) error {
	e.fault = nil
	if err := e.vm.DoString(src); err != nil {
		return e.wrap("chunk", err)
	}
	return nil
}

// Init calls the script's init() if it defines one.
func (e *Engine) Init() error {
	return e.call("init", false)
}

// Update publishes the context's input snapshot and calls update().
func (e *Engine) Update() error {
	e.setInput(e.ctx.Input)
	return e.call("update", true)
}

func (e *Engine) setInput(in game.Input) {
	e.vm.SetGlobal("key", lua.LString(in.Key))
	e.vm.SetGlobal("mouse_x", lua.LNumber(in.MouseX))
	e.vm.SetGlobal("mouse_y", lua.LNumber(in.MouseY))
}

func (e *Engine) call(name string, required bool) error {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		if required {
			return &ScriptError{Func: name, Msg: "function not defined", Err: ErrMissingCallback}
		}
		return nil
	}
	e.fault = nil
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}); err != nil {
		return e.wrap(name, err)
	}
	return nil
}

// wrap converts a Lua failure into a *ScriptError, recovering the typed
// cause when the failure came from a host function raise.
func (e *Engine) wrap(where string, err error) error {
	se := &ScriptError{Func: where, Msg: err.Error(), Err: err}
	var apiErr *lua.ApiError
	if errors.As(err, &apiErr) {
		se.Msg = apiErr.Object.String()
		se.Trace = apiErr.StackTrace
	}
	// A fault caught by pcall inside the script is stale; only keep it when
	// it is what actually escaped.
	if e.fault != nil && strings.Contains(se.Msg, e.fault.Error()) {
		se.Err = e.fault
	}
	e.fault = nil
	return se
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
