package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"
	"github.com/pkg/profile"

	babalang "github.com/RocketRace/babalang"
)

const appName = "babalang"

var (
	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	outStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle = lipgloss.NewStyle().Faint(true)
)

type cli struct {
	Profile bool `help:"Write a CPU profile to the current directory."`

	Run     runCmd     `cmd:"" default:"withargs" help:"Run a Babalang program."`
	Repl    replCmd    `cmd:"" help:"Start an interactive session."`
	Version versionCmd `cmd:"" help:"Print the interpreter version."`
}

// exitErr carries a specific process exit code out of a subcommand.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func main() {
	var c cli
	ctx := kong.Parse(&c,
		kong.Name(appName),
		kong.Description("An interpreter for the Babalang esoteric programming language."),
		kong.UsageOnError(),
	)

	var stopProfile func()
	if c.Profile {
		p := profile.Start(profile.ProfilePath("."))
		stopProfile = p.Stop
	}

	code := 0
	if err := ctx.Run(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			if ee.msg != "" {
				fmt.Fprintln(os.Stderr, errStyle.Render(ee.msg))
			}
			code = ee.code
		} else {
			fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
			code = 1
		}
	}
	if stopProfile != nil {
		stopProfile()
	}
	os.Exit(code)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

type runCmd struct {
	Path string `arg:"" help:"Source file (.baba)."`
}

func (c *runCmd) Run() error {
	src, err := os.ReadFile(c.Path)
	if err != nil {
		return &exitErr{code: 2, msg: fmt.Sprintf("%s: cannot read %s: %v", appName, c.Path, err)}
	}

	ip := babalang.New()
	if err := ip.Run(c.Path, string(src)); err != nil {
		var halt *babalang.ExitError
		if errors.As(err, &halt) {
			return &exitErr{code: halt.Code}
		}
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

type replCmd struct{}

func (c *replCmd) Run() error {
	cfg := loadConfig()
	if !cfg.Color {
		plain := lipgloss.NewStyle()
		errStyle, outStyle, dimStyle = plain, plain, plain
	}

	fmt.Printf("Babalang %s REPL\n%s\n", babalang.Version,
		dimStyle.Render("Ctrl+D exits. Type :quit to exit, :names to list bindings."))

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := cfg.historyPath()
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	ip := babalang.New()
	ln.SetCompleter(completer(ip))

	for {
		code, ok := readByParseProbe(ln, cfg.Prompt, cfg.ContPrompt)
		if !ok {
			fmt.Println()
			return nil
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return nil
			case ":names":
				for _, name := range ip.Global.Names() {
					v, err := ip.Global.Get(name)
					if err != nil {
						continue
					}
					fmt.Printf("%s %s\n", name, outStyle.Render(babalang.FormatValue(v)))
				}
			default:
				fmt.Println(dimStyle.Render("unknown command. Type :quit to exit."))
			}
			continue
		}

		if err := ip.RunPersistent(code); err != nil {
			var halt *babalang.ExitError
			if errors.As(err, &halt) {
				return &exitErr{code: halt.Code}
			}
			fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readByParseProbe accumulates lines until they parse as a complete
// program, so multi-line blocks can be typed interactively.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		_, perr := babalang.Parse(src)
		if perr == nil {
			return src, true
		}
		if babalang.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}

// -----------------------------------------------------------------------------
// version
// -----------------------------------------------------------------------------

type versionCmd struct{}

func (c *versionCmd) Run() error {
	fmt.Println(babalang.Version)
	return nil
}
