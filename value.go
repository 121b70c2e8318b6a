// value.go
//
// The Babalang runtime value model. Every binding holds exactly one Value,
// a tagged union over the kinds below. Verbs dispatch on (verb, subject
// kind, target kind) in exec.go; keeping the kinds in one tagged struct
// keeps that matrix centralized and exhaustive.
package babalang

import "fmt"

// ValueTag enumerates all runtime kinds a Value may hold.
type ValueTag int

const (
	VTEmpty     ValueTag = iota // the uninitialised / absent value
	VTObject                    // *ObjectData
	VTText                      // string
	VTGroup                     // *GroupData
	VTLevel                     // *LevelData (procedure block reference)
	VTTele                      // *TeleData (loop block reference)
	VTImage                     // *ImageData (struct template)
	VTRef                       // *RefData (mimic alias)
	VTFieldList                 // []string, transient during struct declarations
	VTDone                      // internal block-close sentinel; never user-visible
)

func (t ValueTag) String() string {
	switch t {
	case VTEmpty:
		return "EMPTY"
	case VTObject:
		return "OBJECT"
	case VTText:
		return "TEXT"
	case VTGroup:
		return "GROUP"
	case VTLevel:
		return "LEVEL"
	case VTTele:
		return "TELE"
	case VTImage:
		return "IMAGE"
	case VTRef:
		return "REFERENCE"
	case VTFieldList:
		return "FIELDS"
	case VTDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// Facing is the cardinal direction attached to every Object. It doubles as
// the sign component in comparisons: Right orders ascending, Left orders
// descending, Up and Down never order.
type Facing int

const (
	Right Facing = iota
	Up
	Left
	Down
)

func (f Facing) String() string {
	switch f {
	case Right:
		return "right"
	case Up:
		return "up"
	case Left:
		return "left"
	case Down:
		return "down"
	}
	return "?"
}

// turned rotates the facing one step Right→Up→Left→Down; reverse undoes it.
func (f Facing) turned(reverse bool) Facing {
	if reverse {
		return (f + 3) % 4
	}
	return (f + 1) % 4
}

// opposite flips Right↔Left and Up↔Down.
func (f Facing) opposite() Facing { return (f + 2) % 4 }

// Value is the universal runtime carrier used by the interpreter. Tag
// determines which concrete type Data holds (see ValueTag). Container
// payloads are pointers, so bindings obtained by lookup share mutations;
// `is` copies deeply to get the value semantics the language specifies.
type Value struct {
	Tag  ValueTag
	Data any
}

// Empty is the singleton absent value.
var Empty = Value{Tag: VTEmpty}

// ObjectData is the payload of an Object: a magnitude coupled with a
// facing, plus the optional fields of struct instances. Arithmetic on Mag
// wraps modulo 256; `read` may store a full code point.
type ObjectData struct {
	Mag    int
	Dir    Facing
	Fields *Fields // nil for plain objects
}

// Fields is the ordered field storage of a struct instance.
// Cursor is the currently selected field name (`follow`); `eat` writes and
// `make` reads through it.
type Fields struct {
	Names   []string
	Entries map[string]Value
	Cursor  string
}

// GroupData is an ordered stack-like container. Index is the cursor moved
// by `shift` and used by `swap`; `has` pushes and `sink` pops at the top.
type GroupData struct {
	Index int
	Elems []Value
}

// LevelData is a procedure block reference. Env is the frame chain visible
// at the declaration site (closure by reference). Args holds values pushed
// with `has` at the call site, consumed by the next `power`.
type LevelData struct {
	Name   string
	Params []string
	Body   *Block
	Env    *Env
	Args   []Value
}

// TeleData is a loop block reference closing over its declaration frames.
type TeleData struct {
	Name string
	Body *Block
	Env  *Env
}

// ImageData is a struct template: the declared field list and the
// constructor, whose first parameter receives the fresh instance.
type ImageData struct {
	Name   string
	Fields []string
	Ctor   *LevelData
	Args   []Value
}

// RefData aliases another binding by name (`mimic`). Lookups dereference.
type RefData struct {
	Name string
}

// Constructors.

func Object(mag int, dir Facing) Value {
	return Value{Tag: VTObject, Data: &ObjectData{Mag: mag, Dir: dir}}
}

func Text(s string) Value { return Value{Tag: VTText, Data: s} }

func NewGroup() Value { return Value{Tag: VTGroup, Data: &GroupData{}} }

func levelVal(l *LevelData) Value { return Value{Tag: VTLevel, Data: l} }
func teleVal(t *TeleData) Value   { return Value{Tag: VTTele, Data: t} }
func imageVal(i *ImageData) Value { return Value{Tag: VTImage, Data: i} }
func refVal(name string) Value    { return Value{Tag: VTRef, Data: &RefData{Name: name}} }

// FieldList wraps an ordered list of declared field names; the value kind
// only appears transiently while struct declarations are assembled.
func FieldList(names []string) Value { return Value{Tag: VTFieldList, Data: names} }

// newInstance builds a struct instance Object from a template field list.
func newInstance(fields []string) Value {
	f := &Fields{
		Names:   append([]string(nil), fields...),
		Entries: make(map[string]Value, len(fields)),
	}
	if len(f.Names) > 0 {
		f.Cursor = f.Names[0]
	}
	return Value{Tag: VTObject, Data: &ObjectData{Dir: Right, Fields: f}}
}

// Clone returns a deep copy of v. Block references are shared (a Level or
// Tele is a reference to its definition site, not a container).
func (v Value) Clone() Value {
	switch v.Tag {
	case VTObject:
		od := v.Data.(*ObjectData)
		out := &ObjectData{Mag: od.Mag, Dir: od.Dir}
		if od.Fields != nil {
			f := &Fields{
				Names:   append([]string(nil), od.Fields.Names...),
				Entries: make(map[string]Value, len(od.Fields.Entries)),
				Cursor:  od.Fields.Cursor,
			}
			for k, fv := range od.Fields.Entries {
				f.Entries[k] = fv.Clone()
			}
			out.Fields = f
		}
		return Value{Tag: VTObject, Data: out}
	case VTGroup:
		gd := v.Data.(*GroupData)
		out := &GroupData{Index: gd.Index, Elems: make([]Value, len(gd.Elems))}
		for i, e := range gd.Elems {
			out.Elems[i] = e.Clone()
		}
		return Value{Tag: VTGroup, Data: out}
	default:
		return v
	}
}

// Equal reports deep structural equality, the relation used by the `on` and
// `without` conditions. Objects compare by magnitude (facing is a sign
// indicator, not part of the value); groups compare elementwise.
func Equal(a, b Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case VTEmpty, VTDone:
		return true
	case VTObject:
		ao := a.Data.(*ObjectData)
		bo := b.Data.(*ObjectData)
		return ao.Mag == bo.Mag
	case VTText:
		return a.Data.(string) == b.Data.(string)
	case VTGroup:
		ag := a.Data.(*GroupData)
		bg := b.Data.(*GroupData)
		if len(ag.Elems) != len(bg.Elems) {
			return false
		}
		for i := range ag.Elems {
			if !Equal(ag.Elems[i], bg.Elems[i]) {
				return false
			}
		}
		return true
	case VTLevel:
		return a.Data.(*LevelData) == b.Data.(*LevelData)
	case VTTele:
		return a.Data.(*TeleData) == b.Data.(*TeleData)
	case VTImage:
		return a.Data.(*ImageData) == b.Data.(*ImageData)
	case VTRef:
		return a.Data.(*RefData).Name == b.Data.(*RefData).Name
	default:
		return false
	}
}

// String renders a short debug representation.
func (v Value) String() string {
	switch v.Tag {
	case VTEmpty:
		return "empty"
	case VTObject:
		od := v.Data.(*ObjectData)
		if od.Fields != nil {
			return fmt.Sprintf("<instance %d fields>", len(od.Fields.Names))
		}
		return fmt.Sprintf("%d %s", od.Mag, od.Dir)
	case VTText:
		return fmt.Sprintf("%q", v.Data.(string))
	case VTGroup:
		return fmt.Sprintf("<group len=%d>", len(v.Data.(*GroupData).Elems))
	case VTLevel:
		return fmt.Sprintf("<level %s>", v.Data.(*LevelData).Name)
	case VTTele:
		return fmt.Sprintf("<tele %s>", v.Data.(*TeleData).Name)
	case VTImage:
		return fmt.Sprintf("<image %s>", v.Data.(*ImageData).Name)
	case VTRef:
		return fmt.Sprintf("<ref %s>", v.Data.(*RefData).Name)
	case VTFieldList:
		return "<fields>"
	default:
		return "<unknown>"
	}
}
