// printer_test.go
package babalang

import (
	"strings"
	"testing"
)

func Test_Printer_FormatValue(t *testing.T) {
	if got := FormatValue(Empty); got != "empty" {
		t.Fatalf("empty: %q", got)
	}
	if got := FormatValue(Object(65, Right)); got != "you 65 facing right" {
		t.Fatalf("object: %q", got)
	}
	if got := FormatValue(Text("hi")); got != `text "hi"` {
		t.Fatalf("text: %q", got)
	}

	g := NewGroup()
	gd := g.Data.(*GroupData)
	gd.Elems = append(gd.Elems, Object(1, Right), Empty)
	if got := FormatValue(g); got != "group [you 1 facing right, empty]" {
		t.Fatalf("group: %q", got)
	}
}

func Test_Printer_FormatValueInstance(t *testing.T) {
	inst := newInstance([]string{"a", "b"})
	inst.Data.(*ObjectData).Fields.Entries["a"] = Object(7, Right)
	got := FormatValue(inst)
	if !strings.HasPrefix(got, "instance {") || !strings.Contains(got, "a: you 7 facing right") {
		t.Fatalf("instance: %q", got)
	}
}

func Test_Printer_FormatTokensNormalizes(t *testing.T) {
	ts := toks(t, "a   is\tyou // comment\n\n\nb is group")
	if got := FormatTokens(ts); got != "a is you\nb is group\n" {
		t.Fatalf("got %q", got)
	}
}
