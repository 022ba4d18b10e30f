// Command brisk is the command-line driver for the Brisk interpreter
// (spec.md §1's "out of scope ... command-line driver, REPL loop, file
// loading", implemented per SPEC_FULL.md's ambient-stack expansion).
//
// Grounded on clarete-langlang/go/cmd/langlang/main.go's flag-based CLI
// shape and breadchris-yaegi/interp.Interpreter's Eval/EvalPath/REPL
// surface.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dobrosketchkun/brisk/interp"
)

const version = "brisk 0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("brisk", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	help := fs.Bool("help", false, "print this help message and exit")
	short := fs.Bool("h", false, "print this help message and exit")
	ver := fs.Bool("version", false, "print version information and exit")
	verShort := fs.Bool("v", false, "print version information and exit")
	unrestricted := fs.Bool("unrestricted", true, "allow @import of C headers (native FFI)")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: brisk [flags] [script.brisk]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *help || *short {
		fs.Usage()
		return 0
	}
	if *ver || *verShort {
		fmt.Println(version)
		return 0
	}

	i := interp.New(interp.Options{
		Stdin:        os.Stdin,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Unrestricted: *unrestricted,
	})

	rest := fs.Args()
	if len(rest) == 0 {
		_, err := i.REPL()
		if err != nil {
			return 1
		}
		return 0
	}

	if _, err := i.EvalPath(rest[0]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
