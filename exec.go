// exec.go
//
// Statement execution. Verbs are dispatched over (verb, subject kind,
// target kind); control flow is carried out of blocks by the control
// struct rather than by unwinding, so a `fear` break travels outward until
// the tele it names and a `make` return travels to the enclosing call
// boundary.
package babalang

import (
	"fmt"
	"io"
)

// control carries non-error control flow out of a statement or block.
// brk names the tele being exited; ret is the value returned by `make`
// inside a level call.
type control struct {
	brk string
	ret *Value
}

func (c control) stops() bool { return c.brk != "" || c.ret != nil }

func (ip *Interpreter) rtErr(kind RunErrKind, line, col int, format string, args ...any) error {
	return &RuntimeError{Kind: kind, Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

// lookup resolves name to a value, following mimic references. A missing
// name is a NameError at the given position.
func (ip *Interpreter) lookup(name string, env *Env, line, col int) (Value, error) {
	for hops := 0; hops < 64; hops++ {
		v, err := env.Get(name)
		if err != nil {
			return Value{}, ip.rtErr(NameError, line, col, "%q is not defined in any visible scope", name)
		}
		if v.Tag != VTRef {
			return v, nil
		}
		name = v.Data.(*RefData).Name
	}
	return Value{}, ip.rtErr(NameError, line, col, "reference cycle through %q", name)
}

// resolveTerm evaluates a single rvalue term: an identifier (dereferenced)
// or the `empty` literal.
func (ip *Interpreter) resolveTerm(t Term, env *Env) (Value, error) {
	switch t.Tok.Type {
	case IDENT:
		return ip.lookup(t.Tok.Lexeme, env, t.Tok.Line, t.Tok.Col)
	case EMPTY:
		return Empty, nil
	default:
		return Value{}, ip.rtErr(KindMismatch, t.Tok.Line, t.Tok.Col,
			"%q is not a value here", t.Tok.Lexeme)
	}
}

// execNodes runs a block body in order, stopping at the first break,
// return or error.
func (ip *Interpreter) execNodes(nodes []Node, env *Env) (control, error) {
	for _, n := range nodes {
		c, err := ip.execNode(n, env)
		if err != nil || c.stops() {
			return c, err
		}
	}
	return control{}, nil
}

func (ip *Interpreter) execNode(n Node, env *Env) (control, error) {
	switch x := n.(type) {
	case *Statement:
		return ip.execStatement(x, env)
	case *Block:
		return ip.execBlock(x, env)
	default:
		line, col := n.Pos()
		return control{}, ip.rtErr(KindMismatch, line, col, "unexecutable node")
	}
}

// execBlock handles level/tele/image declarations. Levels and images bind a
// block reference; teles additionally run in place as loops.
func (ip *Interpreter) execBlock(b *Block, env *Env) (control, error) {
	target := env
	if b.Float {
		target = env.Root()
	}
	switch b.Kind {
	case LEVEL:
		lv := &LevelData{Name: b.Name, Params: b.Params, Body: b, Env: env}
		target.Define(b.Name, levelVal(lv))
		return control{}, nil

	case IMAGE:
		ctor := &LevelData{Name: b.Name, Params: b.Ctor.Params, Body: b.Ctor, Env: env}
		im := &ImageData{Name: b.Name, Fields: b.Fields, Ctor: ctor}
		target.Define(b.Name, imageVal(im))
		return control{}, nil

	case TELE:
		td := &TeleData{Name: b.Name, Body: b, Env: env}
		target.Define(b.Name, teleVal(td))
		frame := NewEnv(env)
		for {
			c, err := ip.execNodes(b.Nodes, frame)
			if err != nil {
				return control{}, err
			}
			if c.ret != nil {
				return c, nil
			}
			switch c.brk {
			case "":
				continue // re-enter at the top of the body
			case b.Name:
				return control{}, nil
			default:
				return c, nil // break for an outer tele
			}
		}

	default:
		return ip.execNodes(b.Nodes, NewEnv(env))
	}
}

func (ip *Interpreter) execStatement(s *Statement, env *Env) (control, error) {
	ok, err := ip.condHolds(s, env)
	if err != nil {
		return control{}, err
	}
	if !ok {
		return control{}, nil
	}

	switch s.Verb.Type {
	case IS:
		return ip.execIs(s, env)
	case HAS:
		return control{}, ip.execHas(s, env)
	case FEAR:
		return ip.execFear(s, env)
	case MAKE:
		return ip.execMake(s, env)
	case EAT:
		return control{}, ip.execEat(s, env)
	case FOLLOW:
		return control{}, ip.execFollow(s, env)
	case MIMIC:
		return control{}, ip.execMimic(s, env)
	default:
		line, col := s.Pos()
		return control{}, ip.rtErr(KindMismatch, line, col, "unknown verb %q", s.Verb.Lexeme)
	}
}

// bindSubject stores v under the statement subject: the innermost existing
// binding is updated, otherwise the current frame gains one; `float` forces
// the root frame. Rebinding a name that holds a block reference is refused.
func (ip *Interpreter) bindSubject(s *Statement, env *Env, v Value) error {
	name := s.Subject.Lexeme
	if old, err := env.Get(name); err == nil {
		switch old.Tag {
		case VTLevel, VTTele, VTImage:
			line, col := s.Pos()
			return ip.rtErr(KindMismatch, line, col,
				"%q already names a %s block and cannot be rebound", name, old.Tag)
		}
	}
	if s.Float {
		env.Root().Define(name, v)
		return nil
	}
	env.Assign(name, v)
	return nil
}

/* ===========================
   IS
   =========================== */

func (ip *Interpreter) execIs(s *Statement, env *Env) (control, error) {
	line, col := s.Pos()

	hasPower := false
	idents := 0
	literals := 0
	for _, t := range s.Targets {
		switch {
		case t.Tok.Type == POWER:
			hasPower = true
		case t.Tok.Type == IDENT:
			idents++
		default:
			literals++
		}
	}

	if hasPower {
		return ip.execPower(s, env)
	}

	if idents > 0 && literals > 0 {
		return control{}, ip.rtErr(KindMismatch, line, col,
			"cannot mix literal words and named values on the right of is")
	}

	if s.Subject.Type == ALL {
		if idents > 0 {
			return control{}, ip.rtErr(KindMismatch, line, col,
				"all can only take object actions")
		}
		return control{}, ip.execAll(s, env)
	}

	if idents > 0 {
		return control{}, ip.execIsNamed(s, env)
	}
	return ip.execLiteralChain(s, env)
}

// execIsNamed handles `x is a` (copy) and `x is a and b …` (object sum).
func (ip *Interpreter) execIsNamed(s *Statement, env *Env) error {
	if len(s.Targets) == 1 {
		t := s.Targets[0]
		v, err := ip.resolveTerm(t, env)
		if err != nil {
			return err
		}
		out := v.Clone()
		if t.Not {
			if out.Tag != VTObject {
				return ip.rtErr(KindMismatch, t.Tok.Line, t.Tok.Col,
					"not %q: only objects have an additive inverse", t.Tok.Lexeme)
			}
			od := out.Data.(*ObjectData)
			od.Dir = od.Dir.opposite()
		}
		return ip.bindSubject(s, env, out)
	}

	// Sum: every operand must be an object; facing comes from the first.
	sum := 0
	dir := Right
	for i, t := range s.Targets {
		v, err := ip.resolveTerm(t, env)
		if err != nil {
			return err
		}
		if v.Tag != VTObject {
			return ip.rtErr(KindMismatch, t.Tok.Line, t.Tok.Col,
				"%q is %s and does not support addition", t.Tok.Lexeme, v.Tag)
		}
		od := v.Data.(*ObjectData)
		if i == 0 {
			dir = od.Dir
		}
		if t.Not {
			sum -= od.Mag
		} else {
			sum += od.Mag
		}
	}
	sum = ((sum % 256) + 256) % 256
	return ip.bindSubject(s, env, Object(sum, dir))
}

// execLiteralChain reduces a pure literal-word RHS left to right. `you`
// starts a fresh object; the action words mutate the working value, which
// may be the subject's current binding.
func (ip *Interpreter) execLiteralChain(s *Statement, env *Env) (control, error) {
	name := s.Subject.Lexeme
	line, col := s.Pos()

	cur, exists := Value{}, false
	if v, err := ip.lookup(name, env, line, col); err == nil {
		cur, exists = v, true
	}
	fresh := false // cur was produced by this chain and must be stored

	object := func(t Term) (*ObjectData, error) {
		if !exists && !fresh {
			return nil, ip.rtErr(NameError, line, col, "%q is not defined in any visible scope", name)
		}
		if cur.Tag != VTObject {
			return nil, ip.rtErr(KindMismatch, t.Tok.Line, t.Tok.Col,
				"%q is %s and cannot be %s", name, cur.Tag, t.Tok.Lexeme)
		}
		return cur.Data.(*ObjectData), nil
	}

	for _, t := range s.Targets {
		switch t.Tok.Type {
		case YOU:
			if t.Not {
				continue // x is not you: no effect
			}
			cur = Object(0, Right)
			fresh = true
		case GROUP:
			if t.Not {
				continue
			}
			cur = NewGroup()
			fresh = true
		case EMPTY:
			cur = Empty
			fresh = true
		case MOVE:
			od, err := object(t)
			if err != nil {
				return control{}, err
			}
			if t.Not {
				od.Mag = ((od.Mag-1)%256 + 256) % 256
			} else {
				od.Mag = (od.Mag + 1) % 256
			}
		case MORE:
			od, err := object(t)
			if err != nil {
				return control{}, err
			}
			if t.Not {
				od.Mag >>= 1
			} else {
				od.Mag = (od.Mag << 1) % 256
			}
		case TURN:
			od, err := object(t)
			if err != nil {
				return control{}, err
			}
			od.Dir = od.Dir.turned(t.Not)
		case FALL:
			od, err := object(t)
			if err != nil {
				return control{}, err
			}
			if t.Not {
				od.Mag = 0
			} else {
				od.Mag = 255
			}
		case RIGHT, LEFT, UP, DOWN:
			od, err := object(t)
			if err != nil {
				return control{}, err
			}
			d := map[TokenType]Facing{RIGHT: Right, LEFT: Left, UP: Up, DOWN: Down}[t.Tok.Type]
			if t.Not {
				d = d.opposite()
			}
			od.Dir = d
		case TEXT:
			if !exists && !fresh {
				return control{}, ip.rtErr(NameError, line, col,
					"%q is not defined in any visible scope", name)
			}
			if err := ip.writeText(cur, t.Tok); err != nil {
				return control{}, err
			}
		case READ:
			if cur.Tag == VTGroup {
				if err := ip.readLineInto(cur.Data.(*GroupData), t.Tok); err != nil {
					return control{}, err
				}
			} else {
				v, err := ip.readObject(t.Tok)
				if err != nil {
					return control{}, err
				}
				cur = v
				fresh = true
			}
		case SINK:
			if !exists && !fresh {
				return control{}, ip.rtErr(NameError, line, col,
					"%q is not defined in any visible scope", name)
			}
			switch cur.Tag {
			case VTGroup:
				gd := cur.Data.(*GroupData)
				if n := len(gd.Elems); n > 0 {
					gd.Elems = gd.Elems[:n-1]
					if gd.Index >= n-1 && gd.Index > 0 {
						gd.Index = n - 2
					}
				}
			case VTObject:
				od := cur.Data.(*ObjectData)
				od.Dir = od.Dir.turned(t.Not)
			default:
				return control{}, ip.rtErr(KindMismatch, t.Tok.Line, t.Tok.Col,
					"%q is %s and cannot sink", name, cur.Tag)
			}
		case SHIFT:
			if !exists && !fresh {
				return control{}, ip.rtErr(NameError, line, col,
					"%q is not defined in any visible scope", name)
			}
			if cur.Tag != VTGroup {
				return control{}, ip.rtErr(KindMismatch, t.Tok.Line, t.Tok.Col,
					"%q is %s and cannot shift", name, cur.Tag)
			}
			gd := cur.Data.(*GroupData)
			if n := len(gd.Elems); n > 0 {
				if t.Not {
					gd.Index = (gd.Index - 1 + n) % n
				} else {
					gd.Index = (gd.Index + 1) % n
				}
			}
		case SWAP:
			if !exists && !fresh {
				return control{}, ip.rtErr(NameError, line, col,
					"%q is not defined in any visible scope", name)
			}
			if cur.Tag != VTGroup {
				return control{}, ip.rtErr(KindMismatch, t.Tok.Line, t.Tok.Col,
					"%q is %s and cannot swap", name, cur.Tag)
			}
			gd := cur.Data.(*GroupData)
			if n := len(gd.Elems); n > 0 && gd.Index < n {
				gd.Elems[gd.Index], gd.Elems[n-1] = gd.Elems[n-1], gd.Elems[gd.Index]
			}
		case WIN:
			if !exists && !fresh {
				return control{}, ip.rtErr(NameError, line, col,
					"%q is not defined in any visible scope", name)
			}
			return control{}, &ExitError{Code: 0}
		case DEFEAT:
			if !exists && !fresh {
				return control{}, ip.rtErr(NameError, line, col,
					"%q is not defined in any visible scope", name)
			}
			return control{}, &ExitError{Code: 1}
		default:
			return control{}, ip.rtErr(KindMismatch, t.Tok.Line, t.Tok.Col,
				"%q cannot appear on the right of is here", t.Tok.Lexeme)
		}
	}
	if fresh {
		if err := ip.bindSubject(s, env, cur); err != nil {
			return control{}, err
		}
	}
	return control{}, nil
}

// execAll applies object action words to every object in scope.
func (ip *Interpreter) execAll(s *Statement, env *Env) error {
	for _, t := range s.Targets {
		var apply func(od *ObjectData)
		switch t.Tok.Type {
		case MOVE:
			apply = func(od *ObjectData) {
				if t.Not {
					od.Mag = ((od.Mag-1)%256 + 256) % 256
				} else {
					od.Mag = (od.Mag + 1) % 256
				}
			}
		case MORE:
			apply = func(od *ObjectData) {
				if t.Not {
					od.Mag >>= 1
				} else {
					od.Mag = (od.Mag << 1) % 256
				}
			}
		case TURN:
			apply = func(od *ObjectData) { od.Dir = od.Dir.turned(t.Not) }
		case FALL:
			apply = func(od *ObjectData) {
				if t.Not {
					od.Mag = 0
				} else {
					od.Mag = 255
				}
			}
		case RIGHT, LEFT, UP, DOWN:
			d := map[TokenType]Facing{RIGHT: Right, LEFT: Left, UP: Up, DOWN: Down}[t.Tok.Type]
			if t.Not {
				d = d.opposite()
			}
			apply = func(od *ObjectData) { od.Dir = d }
		default:
			return ip.rtErr(KindMismatch, t.Tok.Line, t.Tok.Col,
				"all cannot be %s", t.Tok.Lexeme)
		}
		env.walkObjects(func(_ string, od *ObjectData) { apply(od) })
	}
	return nil
}

/* ===========================
   POWER (calls and construction)
   =========================== */

func (ip *Interpreter) execPower(s *Statement, env *Env) (control, error) {
	line, col := s.Pos()

	var callee Value
	var err error
	named := false
	for _, t := range s.Targets {
		switch t.Tok.Type {
		case POWER:
		case IDENT:
			if named {
				return control{}, ip.rtErr(KindMismatch, t.Tok.Line, t.Tok.Col,
					"power takes a single callee")
			}
			named = true
			callee, err = ip.resolveTerm(t, env)
			if err != nil {
				return control{}, err
			}
		default:
			return control{}, ip.rtErr(KindMismatch, t.Tok.Line, t.Tok.Col,
				"%q cannot be combined with power", t.Tok.Lexeme)
		}
	}
	if !named {
		// `f is power` invokes the subject itself.
		callee, err = ip.lookup(s.Subject.Lexeme, env, line, col)
		if err != nil {
			return control{}, err
		}
	}

	var result Value
	returned := true
	switch callee.Tag {
	case VTLevel:
		result, returned, err = ip.callLevel(callee.Data.(*LevelData), line, col)
	case VTImage:
		result, err = ip.construct(callee.Data.(*ImageData), line, col)
	default:
		return control{}, ip.rtErr(KindMismatch, line, col,
			"%s cannot be power", callee.Tag)
	}
	if err != nil {
		return control{}, err
	}

	if !named {
		// `f is power` invokes f itself; the binding is replaced only when
		// the level returned a value with make. This is the one sanctioned
		// rebind of a block name.
		if returned {
			env.Assign(s.Subject.Lexeme, result)
		}
		return control{}, nil
	}
	// `x is f and power`: the return value — implicitly Empty — replaces x.
	if !returned {
		result = Empty
	}
	return control{}, ip.bindSubject(s, env, result)
}

// callLevel invokes a procedure. The callee runs in a fresh child of its
// declaration environment with its parameters bound to the pushed
// arguments and its own name bound to itself (for `make` returns and
// recursion). The second result reports whether the level returned a value
// with `make`; without one the implicit return value is Empty.
func (ip *Interpreter) callLevel(lv *LevelData, line, col int) (Value, bool, error) {
	if len(lv.Args) != len(lv.Params) {
		return Value{}, false, ip.rtErr(ArgumentError, line, col,
			"level %q expects %d arguments, got %d", lv.Name, len(lv.Params), len(lv.Args))
	}
	frame := NewEnv(lv.Env)
	for i, p := range lv.Params {
		frame.Define(p, lv.Args[i])
	}
	frame.Define(lv.Name, levelVal(lv))
	lv.Args = nil

	c, err := ip.execNodes(lv.Body.Nodes, frame)
	if err != nil {
		return Value{}, false, err
	}
	if c.ret != nil {
		return *c.ret, true, nil
	}
	return Empty, false, nil
}

// construct instantiates an image: the constructor's first parameter
// receives the fresh instance, and the instance's final state is the
// result unless the constructor returns another value with `make`.
func (ip *Interpreter) construct(im *ImageData, line, col int) (Value, error) {
	ctor := im.Ctor
	if len(im.Args) != len(ctor.Params)-1 {
		return Value{}, ip.rtErr(ArgumentError, line, col,
			"image %q expects %d arguments, got %d", im.Name, len(ctor.Params)-1, len(im.Args))
	}
	inst := newInstance(im.Fields)
	frame := NewEnv(ctor.Env)
	frame.Define(ctor.Params[0], inst)
	for i, arg := range im.Args {
		frame.Define(ctor.Params[i+1], arg)
	}
	frame.Define(im.Name, levelVal(ctor))
	im.Args = nil

	c, err := ip.execNodes(ctor.Body.Nodes, frame)
	if err != nil {
		return Value{}, err
	}
	if c.ret != nil {
		return *c.ret, nil
	}
	return inst, nil
}

/* ===========================
   HAS / FEAR / MAKE / EAT / FOLLOW / MIMIC
   =========================== */

func (ip *Interpreter) execHas(s *Statement, env *Env) error {
	line, col := s.Pos()
	subj, err := ip.lookup(s.Subject.Lexeme, env, line, col)
	if err != nil {
		return err
	}
	switch subj.Tag {
	case VTGroup:
		gd := subj.Data.(*GroupData)
		for _, t := range s.Targets {
			v, err := ip.resolveTerm(t, env)
			if err != nil {
				return err
			}
			v = v.Clone()
			if t.Not && v.Tag == VTObject {
				od := v.Data.(*ObjectData)
				od.Dir = od.Dir.opposite()
			}
			gd.Elems = append(gd.Elems, v)
		}
		return nil
	case VTLevel:
		lv := subj.Data.(*LevelData)
		for _, t := range s.Targets {
			v, err := ip.resolveTerm(t, env)
			if err != nil {
				return err
			}
			lv.Args = append(lv.Args, v.Clone())
		}
		return nil
	case VTImage:
		im := subj.Data.(*ImageData)
		for _, t := range s.Targets {
			v, err := ip.resolveTerm(t, env)
			if err != nil {
				return err
			}
			im.Args = append(im.Args, v.Clone())
		}
		return nil
	default:
		return ip.rtErr(KindMismatch, line, col,
			"%q is %s and cannot have anything", s.Subject.Lexeme, subj.Tag)
	}
}

func (ip *Interpreter) execFear(s *Statement, env *Env) (control, error) {
	line, col := s.Pos()
	if _, err := ip.lookup(s.Subject.Lexeme, env, line, col); err != nil {
		return control{}, err
	}
	t := s.Targets[0]
	if t.Tok.Type != IDENT {
		return control{}, ip.rtErr(KindMismatch, t.Tok.Line, t.Tok.Col,
			"fear targets a block name, not %q", t.Tok.Lexeme)
	}
	return control{brk: t.Tok.Lexeme}, nil
}

func (ip *Interpreter) execMake(s *Statement, env *Env) (control, error) {
	line, col := s.Pos()
	subj, err := ip.lookup(s.Subject.Lexeme, env, line, col)
	if err != nil {
		return control{}, err
	}
	switch subj.Tag {
	case VTGroup:
		// Pop one element per target into the named bindings.
		gd := subj.Data.(*GroupData)
		for _, t := range s.Targets {
			if t.Tok.Type != IDENT {
				return control{}, ip.rtErr(KindMismatch, t.Tok.Line, t.Tok.Col,
					"a group makes named bindings, not %q", t.Tok.Lexeme)
			}
			if n := len(gd.Elems); n > 0 {
				env.Assign(t.Tok.Lexeme, gd.Elems[n-1])
				gd.Elems = gd.Elems[:n-1]
			}
		}
		return control{}, nil
	case VTLevel:
		// Return from the enclosing call.
		v, err := ip.resolveTerm(s.Targets[0], env)
		if err != nil {
			return control{}, err
		}
		v = v.Clone()
		return control{ret: &v}, nil
	case VTObject:
		od := subj.Data.(*ObjectData)
		if od.Fields == nil {
			return control{}, ip.rtErr(KindMismatch, line, col,
				"%q has no fields to make from", s.Subject.Lexeme)
		}
		t := s.Targets[0]
		if t.Tok.Type != IDENT {
			return control{}, ip.rtErr(KindMismatch, t.Tok.Line, t.Tok.Col,
				"a struct makes named bindings, not %q", t.Tok.Lexeme)
		}
		if v, ok := od.Fields.Entries[od.Fields.Cursor]; ok {
			env.Assign(t.Tok.Lexeme, v)
		}
		return control{}, nil
	default:
		return control{}, ip.rtErr(KindMismatch, line, col,
			"%q is %s and cannot make anything", s.Subject.Lexeme, subj.Tag)
	}
}

func (ip *Interpreter) execEat(s *Statement, env *Env) error {
	line, col := s.Pos()
	subj, err := ip.lookup(s.Subject.Lexeme, env, line, col)
	if err != nil {
		return err
	}
	if subj.Tag != VTObject || subj.Data.(*ObjectData).Fields == nil {
		return ip.rtErr(KindMismatch, line, col,
			"%q is %s and cannot eat anything", s.Subject.Lexeme, subj.Tag)
	}
	f := subj.Data.(*ObjectData).Fields
	if f.Cursor == "" {
		return ip.rtErr(KindMismatch, line, col, "%q has no field selected", s.Subject.Lexeme)
	}
	v, err := ip.resolveTerm(s.Targets[0], env)
	if err != nil {
		return err
	}
	f.Entries[f.Cursor] = v.Clone()
	return nil
}

func (ip *Interpreter) execFollow(s *Statement, env *Env) error {
	line, col := s.Pos()
	subj, err := ip.lookup(s.Subject.Lexeme, env, line, col)
	if err != nil {
		return err
	}
	if subj.Tag != VTObject || subj.Data.(*ObjectData).Fields == nil {
		return ip.rtErr(KindMismatch, line, col,
			"%q is %s and cannot follow anything", s.Subject.Lexeme, subj.Tag)
	}
	f := subj.Data.(*ObjectData).Fields
	t := s.Targets[0]
	if t.Tok.Type != IDENT {
		return ip.rtErr(KindMismatch, t.Tok.Line, t.Tok.Col,
			"follow selects a field name, not %q", t.Tok.Lexeme)
	}
	for _, n := range f.Names {
		if n == t.Tok.Lexeme {
			f.Cursor = n
			return nil
		}
	}
	return ip.rtErr(NameError, t.Tok.Line, t.Tok.Col,
		"%q has no field named %q", s.Subject.Lexeme, t.Tok.Lexeme)
}

func (ip *Interpreter) execMimic(s *Statement, env *Env) error {
	t := s.Targets[0]
	if t.Tok.Type != IDENT {
		return ip.rtErr(KindMismatch, t.Tok.Line, t.Tok.Col,
			"mimic aliases a named binding, not %q", t.Tok.Lexeme)
	}
	if _, err := ip.lookup(t.Tok.Lexeme, env, t.Tok.Line, t.Tok.Col); err != nil {
		return err
	}
	env.Assign(s.Subject.Lexeme, refVal(t.Tok.Lexeme))
	return nil
}

/* ===========================
   Conditions
   =========================== */

// condHolds evaluates the prefix and condition clause of a statement.
// Every condition target must pass; `not` flips each individual test.
func (ip *Interpreter) condHolds(s *Statement, env *Env) (bool, error) {
	if s.Prefix == nil && s.Cond == nil {
		return true, nil
	}
	line, col := s.Pos()
	if s.Subject.Type == ALL {
		return false, ip.rtErr(KindMismatch, line, col,
			"conditions need a single subject, not all")
	}
	subj, err := ip.lookup(s.Subject.Lexeme, env, line, col)
	if err != nil {
		return false, err
	}

	if s.Prefix != nil {
		var test bool
		switch s.Prefix.Word {
		case LONELY:
			test = isLonely(subj)
		case IDLE:
			test = isIdle(subj)
		}
		if test == s.Prefix.Not {
			return false, nil
		}
	}

	if s.Cond != nil {
		for _, t := range s.Cond.Targets {
			test, err := ip.condTest(s.Cond.Word, subj, t, env)
			if err != nil {
				return false, err
			}
			if test == s.Cond.Not {
				return false, nil
			}
		}
	}
	return true, nil
}

// isLonely reports emptiness: the absent value, a zero object, a struct
// with no populated fields, an empty group or empty text.
func isLonely(v Value) bool {
	switch v.Tag {
	case VTEmpty:
		return true
	case VTObject:
		od := v.Data.(*ObjectData)
		if od.Fields != nil {
			return len(od.Fields.Entries) == 0
		}
		return od.Mag == 0
	case VTGroup:
		return len(v.Data.(*GroupData).Elems) == 0
	case VTText:
		return v.Data.(string) == ""
	default:
		return false
	}
}

// isIdle reports whether a callable has all its arguments supplied.
func isIdle(v Value) bool {
	switch v.Tag {
	case VTLevel:
		lv := v.Data.(*LevelData)
		return len(lv.Args) == len(lv.Params)
	case VTImage:
		im := v.Data.(*ImageData)
		return len(im.Args) == len(im.Ctor.Params)-1
	default:
		return false
	}
}

func (ip *Interpreter) condTest(word TokenType, subj Value, t Term, env *Env) (bool, error) {
	switch word {
	case FACING:
		return ip.facingTest(subj, t, env)
	case NEAR:
		return ip.kindTest(subj, t, env)
	case ON:
		switch t.Tok.Type {
		case IDENT:
			other, err := ip.resolveTerm(t, env)
			if err != nil {
				return false, err
			}
			return Equal(subj, other), nil
		case EMPTY:
			return subj.Tag == VTEmpty, nil
		case LEVEL:
			return subj.Tag == VTLevel, nil
		case IMAGE:
			return subj.Tag == VTImage, nil
		default:
			return false, ip.rtErr(KindMismatch, t.Tok.Line, t.Tok.Col,
				"invalid target for on")
		}
	case WITHOUT:
		if subj.Tag != VTGroup {
			return false, ip.rtErr(KindMismatch, t.Tok.Line, t.Tok.Col,
				"without needs a group subject")
		}
		other, err := ip.resolveTerm(t, env)
		if err != nil {
			return false, err
		}
		for _, e := range subj.Data.(*GroupData).Elems {
			if Equal(e, other) {
				return false, nil
			}
		}
		return true, nil
	default:
		return false, ip.rtErr(KindMismatch, t.Tok.Line, t.Tok.Col, "unknown condition")
	}
}

// facingTest implements the ordering condition. Right orders ascending,
// Left descending, Up and Down never order; groups compare by length, and
// a direction word tests the subject's facing itself.
func (ip *Interpreter) facingTest(subj Value, t Term, env *Env) (bool, error) {
	if isDirection(t.Tok.Type) {
		if subj.Tag != VTObject {
			return false, ip.rtErr(KindMismatch, t.Tok.Line, t.Tok.Col,
				"only objects have a facing")
		}
		d := map[TokenType]Facing{RIGHT: Right, LEFT: Left, UP: Up, DOWN: Down}[t.Tok.Type]
		return subj.Data.(*ObjectData).Dir == d, nil
	}
	if t.Tok.Type != IDENT {
		return false, ip.rtErr(KindMismatch, t.Tok.Line, t.Tok.Col,
			"invalid target for facing")
	}
	other, err := ip.resolveTerm(t, env)
	if err != nil {
		return false, err
	}
	switch {
	case subj.Tag == VTObject && other.Tag == VTObject:
		so := subj.Data.(*ObjectData)
		oo := other.Data.(*ObjectData)
		switch so.Dir {
		case Right:
			return so.Mag < oo.Mag, nil
		case Left:
			return so.Mag > oo.Mag, nil
		default:
			return false, nil
		}
	case subj.Tag == VTGroup && other.Tag == VTGroup:
		return len(subj.Data.(*GroupData).Elems) < len(other.Data.(*GroupData).Elems), nil
	default:
		return false, ip.rtErr(KindMismatch, t.Tok.Line, t.Tok.Col,
			"facing cannot order %s against %s", subj.Tag, other.Tag)
	}
}

// kindTest implements `near`: same kind of value.
func (ip *Interpreter) kindTest(subj Value, t Term, env *Env) (bool, error) {
	switch t.Tok.Type {
	case IDENT:
		other, err := ip.resolveTerm(t, env)
		if err != nil {
			return false, err
		}
		return subj.Tag == other.Tag, nil
	case EMPTY:
		return subj.Tag == VTEmpty, nil
	case LEVEL:
		return subj.Tag == VTLevel, nil
	case IMAGE:
		if subj.Tag == VTImage {
			return true, nil
		}
		return subj.Tag == VTObject && subj.Data.(*ObjectData).Fields != nil, nil
	default:
		return false, ip.rtErr(KindMismatch, t.Tok.Line, t.Tok.Col,
			"invalid target for near")
	}
}

/* ===========================
   I/O
   =========================== */

// writeText emits a value on standard output: objects as one UTF-8 encoded
// code point, texts as their content. Empty prints nothing.
func (ip *Interpreter) writeText(v Value, tok Token) error {
	switch v.Tag {
	case VTObject:
		od := v.Data.(*ObjectData)
		if _, err := io.WriteString(ip.out, string(rune(od.Mag))); err != nil {
			return ip.rtErr(IOError, tok.Line, tok.Col, "write failed: %v", err)
		}
		return nil
	case VTText:
		if _, err := io.WriteString(ip.out, v.Data.(string)); err != nil {
			return ip.rtErr(IOError, tok.Line, tok.Col, "write failed: %v", err)
		}
		return nil
	case VTEmpty:
		return nil
	default:
		return ip.rtErr(KindMismatch, tok.Line, tok.Col, "%s cannot be text", v.Tag)
	}
}

// readObject consumes one code point from standard input; EOF yields Empty.
func (ip *Interpreter) readObject(tok Token) (Value, error) {
	r, _, err := ip.in.ReadRune()
	if err == io.EOF {
		return Empty, nil
	}
	if err != nil {
		return Value{}, ip.rtErr(IOError, tok.Line, tok.Col, "read failed: %v", err)
	}
	return Object(int(r), Right), nil
}

// readLineInto appends one object per byte of the next input line
// (including the newline) to a group.
func (ip *Interpreter) readLineInto(gd *GroupData, tok Token) error {
	line, err := ip.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return ip.rtErr(IOError, tok.Line, tok.Col, "read failed: %v", err)
	}
	for i := 0; i < len(line); i++ {
		gd.Elems = append(gd.Elems, Object(int(line[i]), Right))
	}
	return nil
}
