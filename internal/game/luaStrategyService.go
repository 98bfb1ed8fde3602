package game

import (
	"fmt"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"
)

// LuaStrategy runs an operator-supplied Lua script to steer the snake in
// demo games. The script must define
//
//	function getNextDirection(state)
//
// receiving a table with the head position, the current heading and a
// per-direction safety map, and returning a table with Dx and Dy fields.
// Scripts that error or return an unusable direction fall back to the
// built-in strategy for that move.
type LuaStrategy struct {
	source   string
	fallback DefaultStrategy
}

// NewLuaStrategy compiles the script once to reject broken sources early.
func NewLuaStrategy(source string) (*LuaStrategy, error) {
	state := lua.NewState()
	defer state.Close()
	if err := state.DoString(source); err != nil {
		return nil, fmt.Errorf("parsing lua strategy: %w", err)
	}
	if state.GetGlobal("getNextDirection").Type() != lua.LTFunction {
		return nil, fmt.Errorf("lua strategy does not define getNextDirection")
	}
	return &LuaStrategy{source: source}, nil
}

func (s *LuaStrategy) NextDirection(g *Grid, head Point, heading Direction, size int) Direction {
	dir, err := s.run(g, head, heading)
	if err != nil {
		log.Debug("lua strategy failed, using default", "error", err)
		return s.fallback.NextDirection(g, head, heading, size)
	}
	return dir
}

func (s *LuaStrategy) run(g *Grid, head Point, heading Direction) (Direction, error) {
	state := lua.NewState()
	defer state.Close()
	if err := state.DoString(s.source); err != nil {
		return 0, fmt.Errorf("loading lua strategy: %w", err)
	}

	arg := state.NewTable()
	headTbl := state.NewTable()
	headTbl.RawSetString("x", lua.LNumber(head.X))
	headTbl.RawSetString("y", lua.LNumber(head.Y))
	arg.RawSetString("head", headTbl)
	arg.RawSetString("heading", lua.LString(heading.String()))
	safe := state.NewTable()
	for d := DirUp; d <= DirRight; d++ {
		safe.RawSetString(d.String(), lua.LBool(g.IsSafe(head.Translate(d))))
	}
	arg.RawSetString("safe", safe)

	if err := state.CallByParam(lua.P{
		Fn:      state.GetGlobal("getNextDirection"),
		NRet:    1,
		Protect: true,
	}, arg); err != nil {
		return 0, fmt.Errorf("executing lua strategy: %w", err)
	}

	ret := state.Get(-1)
	state.Pop(1)
	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return 0, fmt.Errorf("lua strategy returned %s, expected table", ret.Type())
	}
	return directionFromLuaTable(tbl)
}

func directionFromLuaTable(tbl *lua.LTable) (Direction, error) {
	var dx, dy int
	tbl.ForEach(func(key, value lua.LValue) {
		if key.Type() != lua.LTString {
			return
		}
		switch lua.LVAsString(key) {
		case "Dx":
			dx = int(lua.LVAsNumber(value))
		case "Dy":
			dy = int(lua.LVAsNumber(value))
		}
	})
	for d := DirUp; d <= DirRight; d++ {
		if d.Dx() == dx && d.Dy() == dy {
			return d, nil
		}
	}
	return 0, fmt.Errorf("lua strategy returned non-unit direction (%d, %d)", dx, dy)
}
