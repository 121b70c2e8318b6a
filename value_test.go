// value_test.go
package babalang

import (
	"bytes"
	"testing"
)

func Test_Value_CloneIsDeep(t *testing.T) {
	g := NewGroup()
	gd := g.Data.(*GroupData)
	gd.Elems = append(gd.Elems, Object(1, Right))

	c := g.Clone()
	c.Data.(*GroupData).Elems[0].Data.(*ObjectData).Mag = 99

	if gd.Elems[0].Data.(*ObjectData).Mag != 1 {
		t.Fatalf("clone shares element storage")
	}
}

func Test_Value_CloneCopiesFields(t *testing.T) {
	inst := newInstance([]string{"a"})
	inst.Data.(*ObjectData).Fields.Entries["a"] = Object(5, Right)

	c := inst.Clone()
	c.Data.(*ObjectData).Fields.Entries["a"] = Object(6, Right)

	if inst.Data.(*ObjectData).Fields.Entries["a"].Data.(*ObjectData).Mag != 5 {
		t.Fatalf("clone shares field storage")
	}
}

func Test_Value_Equal(t *testing.T) {
	if !Equal(Object(5, Right), Object(5, Left)) {
		t.Fatalf("facing is a sign indicator, not part of the value")
	}
	if Equal(Object(5, Right), Object(6, Right)) {
		t.Fatalf("different magnitudes are not equal")
	}
	if Equal(Object(0, Right), Empty) {
		t.Fatalf("a zero object is not the absent value")
	}
	if !Equal(Text("a"), Text("a")) || Equal(Text("a"), Text("b")) {
		t.Fatalf("text equality broken")
	}

	g1, g2 := NewGroup(), NewGroup()
	g1.Data.(*GroupData).Elems = []Value{Object(1, Right)}
	g2.Data.(*GroupData).Elems = []Value{Object(1, Down)}
	if !Equal(g1, g2) {
		t.Fatalf("groups compare elementwise")
	}
}

func Test_Value_FieldList(t *testing.T) {
	v := FieldList([]string{"x", "y"})
	if v.Tag != VTFieldList {
		t.Fatalf("got %s", v.Tag)
	}
	if got := FormatValue(v); got != "fields [x, y]" {
		t.Fatalf("got %q", got)
	}
}

func Test_Value_FacingSteps(t *testing.T) {
	if Right.turned(false) != Up || Up.turned(false) != Left || Down.turned(false) != Right {
		t.Fatalf("forward turn order broken")
	}
	if Right.turned(true) != Down {
		t.Fatalf("reverse turn broken")
	}
	if Right.opposite() != Left || Up.opposite() != Down {
		t.Fatalf("opposite broken")
	}
}

// Text values have no in-language constructor; hosts bind them into the
// root frame and programs print or copy them like any other value.
func Test_Value_HostTextBinding(t *testing.T) {
	var out bytes.Buffer
	ip := New(WithOutput(&out))
	ip.Root.Define("greeting", Text("hello, baba\n"))

	if err := ip.RunPersistent("greeting is text"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "hello, baba\n" {
		t.Fatalf("got %q", out.String())
	}

	if err := ip.RunPersistent("copy is greeting"); err != nil {
		t.Fatalf("copy: %v", err)
	}
	v, _ := ip.Global.Get("copy")
	if v.Tag != VTText || v.Data.(string) != "hello, baba\n" {
		t.Fatalf("copy: %v", v)
	}
}
