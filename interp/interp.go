package interp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dobrosketchkun/brisk/parser"
)

// Options configures an Interpreter (spec.md §6, out-of-scope "command-
// line driver, REPL loop, file loading" surface, implemented here anyway
// per SPEC_FULL.md's ambient-stack expansion).
//
// Grounded on breadchris-yaegi/interp.Options's shape; Args/Env are
// dropped (nothing in Brisk consumes them) and Unrestricted is
// repurposed to gate native/FFI imports rather than os/exec (see
// DESIGN.md).
type Options struct {
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	// Unrestricted, when true, installs StdImporter (C headers resolvable
	// and callable). When false (the default), RestrictedImporter refuses
	// any non-`.brisk` import, so embedding a Brisk program cannot reach
	// arbitrary native code.
	Unrestricted bool
}

// Interpreter is the embeddable entry point wrapping an Evaluator with
// source loading and a REPL (spec.md §6), mirroring the shape of
// breadchris-yaegi's Interpreter/New/Eval/EvalPath/REPL.
type Interpreter struct {
	ev  *Evaluator
	opt Options
}

// New returns an Interpreter with a fresh heap, global environment, and
// the import policy selected by options.Unrestricted.
func New(options Options) *Interpreter {
	if options.Stdin == nil {
		options.Stdin = os.Stdin
	}
	if options.Stdout == nil {
		options.Stdout = os.Stdout
	}
	if options.Stderr == nil {
		options.Stderr = os.Stderr
	}

	ev := NewEvaluator()
	ev.Stdout = options.Stdout
	ev.Stderr = options.Stderr
	if options.Unrestricted {
		ev.Importer = StdImporter{}
	} else {
		ev.Importer = RestrictedImporter{}
	}

	return &Interpreter{ev: ev, opt: options}
}

// Eval parses and runs src against the interpreter's persistent global
// environment, returning the value of its last expression-statement, if
// any (spec.md §4.3.4's implicit-return convention applied at the
// top-level program, matching a function body's own convention).
func (i *Interpreter) Eval(src string) (Value, error) {
	p := parser.New(src)
	prog := p.ParseProgram()
	if len(p.Errors) > 0 {
		return Value{}, p.Errors[0]
	}
	i.ev.ClearError()
	return i.ev.Run(prog)
}

// EvalPath reads path and evaluates its contents (spec.md §6, "file
// loading").
func (i *Interpreter) EvalPath(path string) (Value, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Value{}, fmt.Errorf("brisk: %w", err)
	}
	return i.Eval(string(src))
}

// REPL performs a read-eval-print loop on the interpreter's configured
// Stdin, printing results to Stdout and errors to Stderr, clearing the
// evaluator's error latch between inputs (spec.md §7, "The latch is also
// cleared by the REPL between inputs"). It returns the last result and
// error when the input stream is exhausted.
//
// Grounded on breadchris-yaegi/interp.Interpreter.REPL's doPrompt/
// getPrompt shape, simplified: Brisk has no partial-statement
// continuation detection, so each line is evaluated as its own program
// (a multi-line `fn` body spanning lines will not work from the REPL,
// matching the reference's own single-program-per-Eval-call contract).
func (i *Interpreter) REPL() (Value, error) {
	in, out, errs := i.opt.Stdin, i.opt.Stdout, i.opt.Stderr
	prompt := replPrompt(in, out)
	scanner := bufio.NewScanner(in)

	var v Value
	var err error
	prompt(v, false)
	for scanner.Scan() {
		v, err = i.Eval(scanner.Text())
		if err != nil {
			fmt.Fprintln(errs, err)
		}
		prompt(v, err == nil)
	}
	return v, err
}

func replPrompt(in io.Reader, out io.Writer) func(v Value, ok bool) {
	forcePrompt, _ := strconv.ParseBool(os.Getenv("BRISK_PROMPT"))
	isTTY := forcePrompt
	if !isTTY {
		if s, ok := in.(interface{ Stat() (os.FileInfo, error) }); ok {
			if stat, err := s.Stat(); err == nil {
				isTTY = stat.Mode()&os.ModeCharDevice != 0
			}
		}
	}
	if !isTTY {
		return func(Value, bool) {}
	}
	return func(v Value, ok bool) {
		if ok && !v.IsNil() {
			fmt.Fprintln(out, ":", v.ToString())
		}
		fmt.Fprint(out, "> ")
	}
}
