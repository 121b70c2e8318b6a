// env_test.go
package babalang

import (
	"sort"
	"testing"
)

func Test_Env_DefineShadowsOuter(t *testing.T) {
	outer := NewEnv(nil)
	inner := NewEnv(outer)
	outer.Define("x", Object(1, Right))
	inner.Define("x", Object(2, Right))

	v, err := inner.Get("x")
	if err != nil || v.Data.(*ObjectData).Mag != 2 {
		t.Fatalf("inner lookup: %v %v", v, err)
	}
	v, _ = outer.Get("x")
	if v.Data.(*ObjectData).Mag != 1 {
		t.Fatalf("outer binding was clobbered")
	}
}

func Test_Env_AssignUpdatesInnermostExisting(t *testing.T) {
	outer := NewEnv(nil)
	inner := NewEnv(outer)
	outer.Define("x", Object(1, Right))

	inner.Assign("x", Object(5, Right))
	v, _ := outer.Get("x")
	if v.Data.(*ObjectData).Mag != 5 {
		t.Fatalf("assign should update the outer binding, got %v", v)
	}
	if _, ok := inner.table["x"]; ok {
		t.Fatalf("assign should not shadow")
	}
}

func Test_Env_AssignCreatesInCurrentFrame(t *testing.T) {
	outer := NewEnv(nil)
	inner := NewEnv(outer)
	inner.Assign("fresh", Object(3, Right))
	if _, err := outer.Get("fresh"); err == nil {
		t.Fatalf("fresh should be invisible from the outer frame")
	}
	if _, err := inner.Get("fresh"); err != nil {
		t.Fatalf("fresh should be visible from the inner frame: %v", err)
	}
}

func Test_Env_Root(t *testing.T) {
	root := NewEnv(nil)
	mid := NewEnv(root)
	leaf := NewEnv(mid)
	if leaf.Root() != root {
		t.Fatalf("root walk broken")
	}
}

func Test_Env_Names(t *testing.T) {
	outer := NewEnv(nil)
	inner := NewEnv(outer)
	outer.Define("a", Empty)
	outer.Define("b", Empty)
	inner.Define("b", Empty) // shadow
	inner.Define("c", Empty)

	names := inner.Names()
	sort.Strings(names)
	if len(names) != 3 {
		t.Fatalf("want 3 unique names, got %v", names)
	}
}
