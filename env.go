// env.go
package babalang

import "fmt"

// Env is a lexical environment frame with a parent link. Lookups walk
// parent-ward. A block's frame is created when the block is entered and
// discarded when it closes; Level and Tele values keep their declaration
// chain alive.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a new lexical frame with the given parent (which may be nil).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: make(map[string]Value)}
}

// Define binds name to v in the current frame, shadowing any outer binding.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// Assign updates the innermost frame that already contains name; if no
// visible frame does, it creates the binding in the current frame.
func (e *Env) Assign(name string, v Value) {
	for f := e; f != nil; f = f.parent {
		if _, ok := f.table[name]; ok {
			f.table[name] = v
			return
		}
	}
	e.table[name] = v
}

// Get retrieves the nearest visible binding for name or returns an error.
func (e *Env) Get(name string) (Value, error) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.table[name]; ok {
			return v, nil
		}
	}
	return Value{}, fmt.Errorf("undefined name: %s", name)
}

// Root returns the outermost frame, where `float` bindings live.
func (e *Env) Root() *Env {
	f := e
	for f.parent != nil {
		f = f.parent
	}
	return f
}

// Names collects every visible binding name, innermost shadowing outermost.
// The REPL completer feeds on this.
func (e *Env) Names() []string {
	seen := map[string]bool{}
	var out []string
	for f := e; f != nil; f = f.parent {
		for name := range f.table {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

// walkObjects visits every Object binding visible from this frame, used by
// the `all` subject. Shadowed bindings are not visited twice.
func (e *Env) walkObjects(fn func(name string, od *ObjectData)) {
	seen := map[string]bool{}
	for f := e; f != nil; f = f.parent {
		for name, v := range f.table {
			if seen[name] {
				continue
			}
			seen[name] = true
			if v.Tag == VTObject {
				fn(name, v.Data.(*ObjectData))
			}
		}
	}
}
