package script

import (
	"context"
	"fmt"
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/helixedit/internal/design"
	"github.com/dshills/helixedit/internal/engine"
	"github.com/dshills/helixedit/internal/operation"
)

// api holds the per-run bindings.
type api struct {
	ctx     context.Context
	ed      *engine.Editor
	out     io.Writer
	applied int
	lastErr error
}

func (a *api) install(L *lua.LState) {
	funcs := map[string]lua.LGFunction{
		"apply":      a.apply,
		"cut":        a.cut,
		"xover":      a.xover,
		"cycle":      a.cycle,
		"cross_cut":  a.crossCut,
		"new_strand": a.newStrand,
		"rm_strands": a.rmStrands,
		"recolor":    a.recolor,
		"rename":     a.rename,
		"add_helix":  a.addHelix,
		"finish":     a.finish,
		"nucl":       a.nucl,
		"strands":    a.strands,
		"strand":     a.strand,
		"strand_of":  a.strandOf,
		"length":     a.length,
		"helices":    a.helices,
		"scaffold":   a.scaffold,
		"print":      a.print,
	}
	for name, fn := range funcs {
		L.SetGlobal(name, L.NewFunction(fn))
	}
}

// fail raises err as a Lua error and remembers it for Run.
func (a *api) fail(L *lua.LState, err error) int {
	a.lastErr = err
	L.RaiseError("%s", err.Error())
	return 0
}

func (a *api) do(L *lua.LState, req operation.Request) int {
	if err := a.ed.Apply(a.ctx, req); err != nil {
		return a.fail(L, err)
	}
	a.applied++
	return 0
}

// apply{op = "...", ...} issues any request by kind name.
func (a *api) apply(L *lua.LState) int {
	req, err := toRequest(L.CheckTable(1))
	if err != nil {
		return a.fail(L, err)
	}
	return a.do(L, req)
}

func (a *api) cut(L *lua.LState) int {
	return a.do(L, operation.Cut{Nucl: checkNucl(L, 1)})
}

func (a *api) xover(L *lua.LState) int {
	return a.do(L, operation.Xover{Prime5: L.CheckInt(1), Prime3: L.CheckInt(2)})
}

func (a *api) cycle(L *lua.LState) int {
	id := L.CheckInt(1)
	return a.do(L, operation.Xover{Prime5: id, Prime3: id})
}

// cross_cut(source, target, nucl [, target_3prime])
func (a *api) crossCut(L *lua.LState) int {
	return a.do(L, operation.CrossCut{
		Source:       L.CheckInt(1),
		Target:       L.CheckInt(2),
		Nucl:         checkNucl(L, 3),
		Target3Prime: L.OptBool(4, false),
	})
}

// new_strand(nucl, length) returns the id of the new strand.
func (a *api) newStrand(L *lua.LState) int {
	start := checkNucl(L, 1)
	a.do(L, operation.NewStrand{Start: start, Length: L.CheckInt(2)})
	id, ok := a.ed.Snapshot().StrandOfNucl(start)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(id))
	return 1
}

func (a *api) rmStrands(L *lua.LState) int {
	return a.do(L, operation.RmStrands{Strands: checkIntList(L, 1)})
}

// recolor(ids, "#rrggbb")
func (a *api) recolor(L *lua.LState) int {
	ids := checkIntList(L, 1)
	color, err := design.ParseColor(L.CheckString(2))
	if err != nil {
		return a.fail(L, err)
	}
	return a.do(L, operation.ChangeColor{Color: color, Strands: ids})
}

func (a *api) rename(L *lua.LState) int {
	return a.do(L, operation.SetStrandName{Strand: L.CheckInt(1), Name: L.OptString(2, "")})
}

// add_helix(grid, x, y [, start, length]) returns the id of the new helix.
func (a *api) addHelix(L *lua.LState) int {
	pos := design.GridPosition{Grid: L.CheckInt(1), X: L.CheckInt(2), Y: L.CheckInt(3)}
	before := a.ed.Snapshot().HelixIDs()
	a.do(L, operation.AddGridHelix{Position: pos, Start: L.OptInt(4, 0), Length: L.OptInt(5, 0)})

	known := make(map[int]bool, len(before))
	for _, id := range before {
		known[id] = true
	}
	for _, id := range a.ed.Snapshot().HelixIDs() {
		if !known[id] {
			L.Push(lua.LNumber(id))
			return 1
		}
	}
	L.Push(lua.LNil)
	return 1
}

// finish ends a pending gesture, such as a strand being built.
func (a *api) finish(L *lua.LState) int {
	if err := a.ed.Finish(a.ctx); err != nil {
		return a.fail(L, err)
	}
	return 0
}

func (a *api) nucl(L *lua.LState) int {
	L.Push(nuclTable(L, design.Nucl{
		Helix:    L.CheckInt(1),
		Position: L.CheckInt(2),
		Forward:  L.OptBool(3, true),
	}))
	return 1
}

func (a *api) strands(L *lua.LState) int {
	L.Push(intList(L, a.ed.Snapshot().StrandIDs()))
	return 1
}

// strand(id) returns a description table, or nil.
func (a *api) strand(L *lua.LState) int {
	id := L.CheckInt(1)
	s, ok := a.ed.Snapshot().Strand(id)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(strandTable(L, id, s))
	return 1
}

func (a *api) strandOf(L *lua.LState) int {
	id, ok := a.ed.Snapshot().StrandOfNucl(checkNucl(L, 1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(id))
	return 1
}

func (a *api) length(L *lua.LState) int {
	s, ok := a.ed.Snapshot().Strand(L.CheckInt(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(s.Length()))
	return 1
}

func (a *api) helices(L *lua.LState) int {
	L.Push(intList(L, a.ed.Snapshot().HelixIDs()))
	return 1
}

func (a *api) scaffold(L *lua.LState) int {
	id, ok := a.ed.Snapshot().ScaffoldID()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(id))
	return 1
}

func (a *api) print(L *lua.LState) int {
	parts := make([]string, L.GetTop())
	for i := range parts {
		parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
	}
	fmt.Fprintln(a.out, strings.Join(parts, "\t"))
	return 0
}
