package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// APIVersion is exposed to scripts as the API_VERSION global.
const APIVersion = 1

// Engine wraps a single gopher-lua VM holding the steering scripts.
// Single-goroutine access only (the runner loop). Reload swaps in a freshly
// loaded VM, so a broken edit leaves the previous scripts running.
type Engine struct {
	vm    *lua.LState
	dir   string
	files []string
	log   *zap.Logger
}

// NewEngine creates a Lua engine and loads every .lua file in dir.
func NewEngine(dir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{dir: dir, log: log}
	vm, files, err := e.load()
	if err != nil {
		return nil, err
	}
	e.vm, e.files = vm, files
	return e, nil
}

func newState() *lua.LState {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(APIVersion))
	return vm
}

// load builds a new VM from the script directory.
func (e *Engine) load() (*lua.LState, []string, error) {
	vm := newState()
	files, err := loadDir(vm, e.dir)
	if err != nil {
		vm.Close()
		return nil, nil, fmt.Errorf("load scripts %s: %w", e.dir, err)
	}
	for _, f := range files {
		e.log.Debug("loaded lua script", zap.String("file", f))
	}
	return vm, files, nil
}

// loadDir runs all .lua files in dir in name order. A missing dir loads nothing.
func loadDir(vm *lua.LState, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := vm.DoFile(path); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		files = append(files, path)
	}
	return files, nil
}

// Reload reloads the script directory into a new VM. On failure the current
// VM stays in place and the error is returned.
func (e *Engine) Reload() error {
	vm, files, err := e.load()
	if err != nil {
		return err
	}
	e.vm.Close()
	e.vm, e.files = vm, files
	e.log.Info("lua scripts reloaded", zap.Int("files", len(files)))
	return nil
}

// Files returns the script paths loaded into the current VM.
func (e *Engine) Files() []string { return append([]string(nil), e.files...) }

// Has reports whether a global Lua function called name exists.
func (e *Engine) Has(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// SteerContext is the state handed to a steering function. Times are in
// seconds.
type SteerContext struct {
	Entity string
	X, Y   float64
	VX, VY float64
	DT     float64
	Age    float64 // seconds the steering system has driven this entity
}

// SteerResult is the velocity a steering function asks for.
type SteerResult struct {
	VX, VY float64
}

// Steer calls the Lua function fn with a context table and reads back
// {vx, vy}. On any failure it logs and returns the input velocity with ok
// false.
func (e *Engine) Steer(fn string, ctx SteerContext) (SteerResult, bool) {
	fallback := SteerResult{VX: ctx.VX, VY: ctx.VY}
	f, ok := e.vm.GetGlobal(fn).(*lua.LFunction)
	if !ok {
		e.log.Error("lua steering function not found", zap.String("func", fn))
		return fallback, false
	}

	t := e.vm.NewTable()
	t.RawSetString("entity", lua.LString(ctx.Entity))
	t.RawSetString("x", lua.LNumber(ctx.X))
	t.RawSetString("y", lua.LNumber(ctx.Y))
	t.RawSetString("vx", lua.LNumber(ctx.VX))
	t.RawSetString("vy", lua.LNumber(ctx.VY))
	t.RawSetString("dt", lua.LNumber(ctx.DT))
	t.RawSetString("age", lua.LNumber(ctx.Age))

	if err := e.vm.CallByParam(lua.P{
		Fn:      f,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua steering error", zap.String("func", fn), zap.Error(err))
		return fallback, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua steering returned non-table",
			zap.String("func", fn),
			zap.String("type", result.Type().String()))
		return fallback, false
	}
	return SteerResult{
		VX: lFloat(rt, "vx", ctx.VX),
		VY: lFloat(rt, "vy", ctx.VY),
	}, true
}

// --- Lua helpers ---

// lFloat reads a numeric field from a Lua table, or def when it is absent.
func lFloat(t *lua.LTable, key string, def float64) float64 {
	v, ok := t.RawGetString(key).(lua.LNumber)
	if !ok {
		return def
	}
	return float64(v)
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
