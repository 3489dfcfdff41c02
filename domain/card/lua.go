package card

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// LuaEffect is an Effect defined by a Lua script. The script may declare any
// of the global functions on_visit(), bonus() and interest(kind). The host
// exposes set_flag(name[, on]), flag(name), has_joker(), heart_count(),
// suit_count(suit) and jest_size().
//
// Every hook runs in a fresh Lua state, so scripts cannot carry data from one
// Jest to the next. Scripts only get the base, table, string and math
// libraries and are stopped after scriptTimeout.
type LuaEffect struct {
	name   string
	source string
}

// NewLuaEffect compiles the script once to surface syntax errors early.
func NewLuaEffect(name, source string) (*LuaEffect, error) {
	L, cancel := newSandbox()
	defer cancel()
	defer L.Close()
	registerHost(L, newCensus(nil))
	if err := L.DoString(source); err != nil {
		return nil, fmt.Errorf("extension %q: invalid script: %w", name, err)
	}
	return &LuaEffect{name: name, source: source}, nil
}

func (e *LuaEffect) ApplyOnVisit(b Board) {
	if _, err := e.call("on_visit", b); err != nil {
		slog.Warn("extension script failed", "extension", e.name, "hook", "on_visit", "error", err)
	}
}

func (e *LuaEffect) CalculateBonus(b Board) int {
	ret, err := e.call("bonus", b)
	if err != nil {
		slog.Warn("extension script failed", "extension", e.name, "hook", "bonus", "error", err)
		return 0
	}
	return toInt(ret)
}

// Interest evaluates the script's interest(kind) hook against jest. Without
// the hook the card is rated 0.
func (e *LuaEffect) Interest(kind StrategyKind, jest []Card) int {
	ret, err := e.call("interest", newCensus(jest), lua.LString(kind))
	if err != nil {
		slog.Warn("extension script failed", "extension", e.name, "hook", "interest", "error", err)
		return 0
	}
	return toInt(ret)
}

func (e *LuaEffect) call(hook string, b Board, args ...lua.LValue) (lua.LValue, error) {
	L, cancel := newSandbox()
	defer cancel()
	defer L.Close()
	registerHost(L, b)
	if err := L.DoString(e.source); err != nil {
		return lua.LNil, err
	}
	fn := L.GetGlobal(hook)
	if fn.Type() != lua.LTFunction {
		return lua.LNil, nil
	}
	if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...); err != nil {
		return lua.LNil, err
	}
	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

const scriptTimeout = 200 * time.Millisecond

// newSandbox returns a Lua state without file, OS or module access, bound to
// a context that expires after scriptTimeout.
func newSandbox() (*lua.LState, context.CancelFunc) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	for _, unsafe := range []string{"dofile", "loadfile", "require", "module"} {
		L.SetGlobal(unsafe, lua.LNil)
	}
	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	L.SetContext(ctx)
	return L, cancel
}

func registerHost(L *lua.LState, b Board) {
	L.SetGlobal("set_flag", L.NewFunction(func(L *lua.LState) int {
		b.SetFlag(L.CheckString(1), L.OptBool(2, true))
		return 0
	}))
	L.SetGlobal("flag", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(b.Flag(L.CheckString(1))))
		return 1
	}))
	L.SetGlobal("has_joker", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(b.HasJoker()))
		return 1
	}))
	L.SetGlobal("heart_count", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(b.HeartCount()))
		return 1
	}))
	L.SetGlobal("suit_count", L.NewFunction(func(L *lua.LState) int {
		s, err := ParseSuit(L.CheckString(1))
		if err != nil {
			L.ArgError(1, err.Error())
			return 0
		}
		L.Push(lua.LNumber(len(b.SuitFaces(s))))
		return 1
	}))
	L.SetGlobal("jest_size", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(b.JestSize()))
		return 1
	}))
}

func toInt(v lua.LValue) int {
	if n, ok := v.(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// census is a read-mostly Board over a card list, used to evaluate interest
// hooks outside of a scoring pass.
type census struct {
	faces map[Suit][]Face
	joker bool
	size  int
	flags map[string]bool
}

func newCensus(cards []Card) *census {
	c := &census{faces: map[Suit][]Face{}, flags: map[string]bool{}, size: len(cards)}
	for _, card := range cards {
		switch card := card.(type) {
		case *SuitCard:
			c.faces[card.suit] = append(c.faces[card.suit], card.face)
		case *Joker:
			c.joker = true
		}
	}
	return c
}

func (c *census) SetFlag(name string, on bool) { c.flags[name] = on }
func (c *census) Flag(name string) bool        { return c.flags[name] }
func (c *census) HasJoker() bool               { return c.joker }
func (c *census) HeartCount() int              { return len(c.faces[Hearts]) }
func (c *census) SuitFaces(s Suit) []Face      { return c.faces[s] }
func (c *census) JestSize() int                { return c.size }
