// Package effects loads user-scripted transitions from a Lua file. The
// script fills a global `transitions` table with functions keyed by effect
// name; each function receives the frame input and returns a table of
// transform fields, all optional.
package effects

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/driftworks/driftpaper/internal/transition"
)

// Load runs the script at path and registers every transitions-table entry
// with the registry. A missing file is not an error: scripted effects are
// optional.
func Load(path string, registry *transition.Registry) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Debug("no effects file", "path", path)
		return nil
	}

	state := lua.NewState()
	if err := state.DoFile(path); err != nil {
		state.Close()
		return fmt.Errorf("cannot run effects file %s: %w", path, err)
	}

	table, ok := state.GetGlobal("transitions").(*lua.LTable)
	if !ok {
		state.Close()
		return fmt.Errorf("effects file %s defines no transitions table", path)
	}

	count := 0
	table.ForEach(func(key, value lua.LValue) {
		name, nameOK := key.(lua.LString)
		fn, fnOK := value.(*lua.LFunction)
		if !nameOK || !fnOK {
			log.Warn("skipping malformed transitions entry", "file", path, "key", key.String())
			return
		}
		registry.Register(string(name), luaEffect(state, fn))
		count++
	})

	// The state stays alive with the registered closures. Effects run on
	// the event-loop thread only, so a single shared state is safe.
	log.Info("loaded scripted transitions", "file", path, "count", count)
	return nil
}

// luaEffect wraps one Lua function as a registry effect.
func luaEffect(state *lua.LState, fn *lua.LFunction) transition.Effect {
	return func(in transition.EffectInput) (transition.EffectResult, error) {
		var out transition.EffectResult

		if err := state.CallByParam(lua.P{
			Fn:      fn,
			NRet:    1,
			Protect: true,
		}, inputTable(state, in)); err != nil {
			return out, err
		}
		ret := state.Get(-1)
		state.Pop(1)

		table, ok := ret.(*lua.LTable)
		if !ok {
			if ret == lua.LNil {
				return out, nil
			}
			return out, fmt.Errorf("effect returned %s, want table", ret.Type())
		}
		return resultFromTable(table), nil
	}
}

func inputTable(state *lua.LState, in transition.EffectInput) *lua.LTable {
	extents := state.NewTable()
	extents.RawSetString("x", lua.LNumber(in.Extents.X))
	extents.RawSetString("y", lua.LNumber(in.Extents.Y))
	extents.RawSetString("width", lua.LNumber(in.Extents.Width))
	extents.RawSetString("height", lua.LNumber(in.Extents.Height))

	t := state.NewTable()
	t.RawSetString("progress", lua.LNumber(in.Progress))
	t.RawSetString("time_factor", lua.LNumber(in.TimeFactor))
	t.RawSetString("random", lua.LNumber(in.Random))
	t.RawSetString("extents", extents)
	return t
}

func resultFromTable(t *lua.LTable) transition.EffectResult {
	var out transition.EffectResult

	out.ClipLeft = numField(t, "clip_left")
	out.ClipTop = numField(t, "clip_top")
	out.ClipRight = numField(t, "clip_right")
	out.ClipBottom = numField(t, "clip_bottom")
	out.Opacity = numField(t, "opacity")
	out.Rotation = numField(t, "rotation")

	if v, ok := t.RawGetString("blur").(lua.LNumber); ok {
		blur := int(v)
		out.Blur = &blur
	}
	if radius := vec4Field(t, "radius"); radius != nil {
		out.Radius = radius
	}
	if tint := vec4Field(t, "blur_tint"); tint != nil {
		out.BlurTint = tint
	}
	return out
}

func numField(t *lua.LTable, name string) *float32 {
	if v, ok := t.RawGetString(name).(lua.LNumber); ok {
		f := float32(v)
		return &f
	}
	return nil
}

// vec4Field reads a 4-element array table; a single number fans out to all
// four components.
func vec4Field(t *lua.LTable, name string) *[4]float32 {
	switch v := t.RawGetString(name).(type) {
	case lua.LNumber:
		f := float32(v)
		return &[4]float32{f, f, f, f}
	case *lua.LTable:
		var out [4]float32
		for i := 0; i < 4; i++ {
			n, ok := v.RawGetInt(i + 1).(lua.LNumber)
			if !ok {
				return nil
			}
			out[i] = float32(n)
		}
		return &out
	default:
		return nil
	}
}
