package script

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"gopkg.in/yaml.v3"

	"github.com/dshills/helixedit/internal/design"
	"github.com/dshills/helixedit/internal/operation"
)

// toGo converts a Lua value into plain Go values. Tables with keys 1..n
// become slices, other tables maps keyed by strings.
func toGo(lv lua.LValue, seen map[*lua.LTable]bool) (any, error) {
	switch v := lv.(type) {
	case *lua.LNilType:
		return nil, nil
	case lua.LBool:
		return bool(v), nil
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f), nil
		}
		return f, nil
	case lua.LString:
		return string(v), nil
	case *lua.LTable:
		if seen[v] {
			return nil, fmt.Errorf("table refers to itself")
		}
		seen[v] = true
		defer delete(seen, v)
		return tableToGo(v, seen)
	default:
		return nil, fmt.Errorf("cannot convert %s", lv.Type())
	}
}

func tableToGo(t *lua.LTable, seen map[*lua.LTable]bool) (any, error) {
	n := t.Len()
	count := 0
	t.ForEach(func(_, _ lua.LValue) { count++ })

	if count == 0 {
		return nil, nil
	}
	if n == count {
		arr := make([]any, n)
		for i := 1; i <= n; i++ {
			v, err := toGo(t.RawGetInt(i), seen)
			if err != nil {
				return nil, err
			}
			arr[i-1] = v
		}
		return arr, nil
	}

	m := make(map[string]any, count)
	var err error
	t.ForEach(func(k, v lua.LValue) {
		if err != nil {
			return
		}
		ks, ok := k.(lua.LString)
		if !ok {
			err = fmt.Errorf("table mixes list and field keys")
			return
		}
		m[string(ks)], err = toGo(v, seen)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// toRequest decodes an operation table such as {op = "cut", nucl = {...}}
// through the same decoder as operation files.
func toRequest(t *lua.LTable) (operation.Request, error) {
	v, err := toGo(t, map[*lua.LTable]bool{})
	if err != nil {
		return nil, err
	}
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return operation.DecodeNode(&n)
}

func checkNucl(L *lua.LState, n int) design.Nucl {
	t := L.CheckTable(n)
	return design.Nucl{
		Helix:    int(lua.LVAsNumber(t.RawGetString("helix"))),
		Position: int(lua.LVAsNumber(t.RawGetString("position"))),
		Forward:  lua.LVAsBool(t.RawGetString("forward")),
	}
}

func nuclTable(L *lua.LState, n design.Nucl) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("helix", lua.LNumber(n.Helix))
	t.RawSetString("position", lua.LNumber(n.Position))
	t.RawSetString("forward", lua.LBool(n.Forward))
	return t
}

func intList(L *lua.LState, ids []int) *lua.LTable {
	sort.Ints(ids)
	t := L.CreateTable(len(ids), 0)
	for _, id := range ids {
		t.Append(lua.LNumber(id))
	}
	return t
}

func checkIntList(L *lua.LState, n int) []int {
	if L.Get(n).Type() == lua.LTNumber {
		return []int{L.CheckInt(n)}
	}
	t := L.CheckTable(n)
	out := make([]int, 0, t.Len())
	for i := 1; i <= t.Len(); i++ {
		out = append(out, int(lua.LVAsNumber(t.RawGetInt(i))))
	}
	return out
}

func strandTable(L *lua.LState, id int, s *design.Strand) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("id", lua.LNumber(id))
	t.RawSetString("length", lua.LNumber(s.Length()))
	t.RawSetString("cyclic", lua.LBool(s.Cyclic))
	t.RawSetString("color", lua.LString(design.ColorHex(s.Color)))
	if s.Name != nil {
		t.RawSetString("name", lua.LString(*s.Name))
	}
	if s.Sequence != nil {
		t.RawSetString("sequence", lua.LString(*s.Sequence))
	}
	if n, ok := s.Prime5End(); ok {
		t.RawSetString("prime5", nuclTable(L, n))
	}
	if n, ok := s.Prime3End(); ok {
		t.RawSetString("prime3", nuclTable(L, n))
	}

	doms := L.CreateTable(len(s.Domains), 0)
	for _, dom := range s.Domains {
		dt := L.NewTable()
		switch d := dom.(type) {
		case design.HelixInterval:
			dt.RawSetString("helix", lua.LNumber(d.Helix))
			dt.RawSetString("start", lua.LNumber(d.Start))
			dt.RawSetString("end", lua.LNumber(d.End))
			dt.RawSetString("forward", lua.LBool(d.Forward))
		case design.Insertion:
			dt.RawSetString("insertion", lua.LNumber(d.NbNucl))
		}
		doms.Append(dt)
	}
	t.RawSetString("domains", doms)
	return t
}
