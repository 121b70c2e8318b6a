// interpreter.go — public surface of the Babalang interpreter.
//
// The Interpreter owns two well-known frames:
//   - Root:   the outermost frame. `float` bindings land here, and hosts may
//     pre-define values (e.g. Text constants) before running a program.
//   - Global: the persistent program frame, child of Root. REPL-style runs
//     evaluate directly in Global; Run evaluates in a throwaway child, so
//     names first bound by the program vanish with it, while assignments
//     to names already bound in Global or Root update those frames.
//
// All entry points return a plain error. Run and RunPersistent wrap lex,
// parse and runtime failures (*LexError / *ParseError / *RuntimeError) with
// a caret-annotated source snippet; RunProgram returns them unwrapped.
// `win`/`defeat` surface as *ExitError, which is a halt signal rather than
// a diagnostic.
package babalang

import (
	"bufio"
	"io"
	"os"
)

// Version is the interpreter version reported by the CLI.
const Version = "0.3.1"

// Interpreter executes Babalang programs against a pair of byte streams.
// It is strictly single-threaded; standard input is the only blocking
// resource.
type Interpreter struct {
	Root   *Env
	Global *Env

	in  *bufio.Reader
	out io.Writer
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithInput replaces standard input.
func WithInput(r io.Reader) Option {
	return func(ip *Interpreter) { ip.in = bufio.NewReader(r) }
}

// WithOutput replaces standard output.
func WithOutput(w io.Writer) Option {
	return func(ip *Interpreter) { ip.out = w }
}

// New constructs an interpreter wired to os.Stdin/os.Stdout unless options
// say otherwise.
func New(opts ...Option) *Interpreter {
	ip := &Interpreter{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
	}
	ip.Root = NewEnv(nil)
	ip.Global = NewEnv(ip.Root)
	for _, opt := range opts {
		opt(ip)
	}
	return ip
}

// Run parses and executes src in a fresh child of Global. srcName labels
// error snippets ("<main>" is conventional for anonymous sources).
func (ip *Interpreter) Run(srcName, src string) error {
	prog, err := Parse(src)
	if err != nil {
		return WrapErrorWithName(err, srcName, src)
	}
	if err := ip.RunProgram(prog, NewEnv(ip.Global)); err != nil {
		return WrapErrorWithName(err, srcName, src)
	}
	return nil
}

// RunPersistent parses and executes src directly in Global, so bindings
// survive across calls (REPL semantics).
func (ip *Interpreter) RunPersistent(src string) error {
	prog, err := Parse(src)
	if err != nil {
		return WrapErrorWithSource(err, src)
	}
	if err := ip.RunProgram(prog, ip.Global); err != nil {
		return WrapErrorWithSource(err, src)
	}
	return nil
}

// RunProgram executes an already-parsed program in the provided frame.
// Hosts use this to control scoping explicitly.
func (ip *Interpreter) RunProgram(prog *Block, env *Env) error {
	_, err := ip.execNodes(prog.Nodes, env)
	return err
}
