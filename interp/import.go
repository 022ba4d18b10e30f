package interp

import (
	"os"
	"strings"

	"github.com/dobrosketchkun/brisk/cfunc"
	"github.com/dobrosketchkun/brisk/cheader"
	"github.com/dobrosketchkun/brisk/cstruct"
	"github.com/dobrosketchkun/brisk/ctype"
	"github.com/dobrosketchkun/brisk/internal/dynload"
	"github.com/dobrosketchkun/brisk/parser"
	"github.com/dobrosketchkun/brisk/token"
)

// headerSearchDirs are the fixed system include directories probed for a
// bare header name (spec.md §4.5 step 2).
var headerSearchDirs = []string{
	"/usr/include",
	"/usr/local/include",
	"/usr/include/x86_64-linux-gnu", // Linux multiarch variant
}

// libSearchDirs are the directories a bare `.brisk` module path is
// resolved against, after the path itself (spec.md §4.5 step 1).
var libSearchDirs = []string{"lib"}

// mathOneArg and mathTwoArg are the hardcoded double-returning libm
// functions injected by symbol lookup regardless of what the header
// parser extracted, since glibc declares many of them via macros
// (spec.md §4.5, "For math.h specifically").
var mathOneArg = []string{"sin", "cos", "tan", "asin", "acos", "atan", "exp", "log", "log2", "log10", "sqrt", "fabs", "floor", "ceil", "round"}
var mathTwoArg = []string{"atan2", "pow", "fmod"}

// raylibCandidates is the hardcoded list of candidate shared-object paths
// probed when a header name contains "raylib" (spec.md §4.5 step 3).
var raylibCandidates = []string{
	"/usr/lib/libraylib.so",
	"/usr/local/lib/libraylib.so",
	"/usr/lib/x86_64-linux-gnu/libraylib.so",
}

// StdImporter is the default Importer (spec.md §4.5): `.brisk` modules are
// parsed and executed into the current global environment; anything else
// is treated as a C header and resolved through cheader + dynload + the
// FFI bridge.
type StdImporter struct{}

var _ Importer = StdImporter{}

func (StdImporter) Import(ev *Evaluator, path string, pos token.Position) error {
	if strings.HasSuffix(path, ".brisk") {
		return importBriskModule(ev, path, pos)
	}
	return importCHeader(ev, path, pos)
}

// RestrictedImporter is installed when Options.Unrestricted is false
// (interp.New): it permits `.brisk` module imports but refuses to parse
// a C header, resolve a dynamic symbol, or prepare an FFI call interface
// at all, mirroring the teacher's Unrestricted gate in spirit (there it
// guards `os/exec` and similar; here it guards native code execution via
// the FFI bridge).
type RestrictedImporter struct{}

var _ Importer = RestrictedImporter{}

func (RestrictedImporter) Import(ev *Evaluator, path string, pos token.Position) error {
	if strings.HasSuffix(path, ".brisk") {
		return importBriskModule(ev, path, pos)
	}
	return ev.runtimeError(ErrFFI, pos, "C header imports are disabled (run with Options.Unrestricted)")
}

// importBriskModule implements spec.md §4.5 step 1. The source and parsed
// AST are not kept by the interpreter: function objects defined by the
// module hold pointers into its AST, and Go's GC — not an owning
// Interpreter field — reclaims it once nothing references it (see
// SPEC_FULL.md §9, "AST ownership").
func importBriskModule(ev *Evaluator, path string, pos token.Position) error {
	candidates := []string{path}
	if !strings.HasPrefix(path, "/") && !strings.HasPrefix(path, ".") {
		for _, dir := range libSearchDirs {
			candidates = append(candidates, dir+"/"+path)
		}
	}

	var src []byte
	var readErr error
	for _, c := range candidates {
		src, readErr = os.ReadFile(c)
		if readErr == nil {
			break
		}
	}
	if readErr != nil {
		return ev.runtimeError(ErrIO, pos, "cannot open module %q: %v", path, readErr)
	}

	p := parser.New(string(src))
	prog := p.ParseProgram()
	if len(p.Errors) > 0 {
		return ev.runtimeError(ErrSyntax, pos, "%s: %s", path, p.Errors[0].Msg)
	}

	saved := ev.Current
	ev.Current = ev.Global
	_, err := ev.Run(prog)
	ev.Current = saved
	return err
}

// importCHeader implements spec.md §4.5 steps 2-6 and §4.7.
func importCHeader(ev *Evaluator, name string, pos token.Position) error {
	src, found := findHeader(name)
	parsed := &cheader.Parsed{}
	if found {
		parsed = cheader.Parse(src)
	}

	lib, err := resolveLibrary(name)
	if err != nil {
		return ev.runtimeError(ErrFFI, pos, "%s: %v", name, err)
	}

	for _, fn := range parsed.Functions {
		defineCFunction(ev, lib, fn.Name, fn.ReturnType, fn.ParamTypes, fn.Variadic)
	}
	for _, e := range parsed.Enums {
		ev.Global.DefineOrReplace(ev.Heap, e.Name, Int(e.Value), true)
	}
	for _, m := range parsed.Macros {
		switch m.Kind {
		case cheader.MacroInt:
			ev.Global.DefineOrReplace(ev.Heap, m.Name, Int(m.IValue), true)
		case cheader.MacroFloat:
			ev.Global.DefineOrReplace(ev.Heap, m.Name, Float(m.FValue), true)
		case cheader.MacroString:
			ev.Global.DefineOrReplace(ev.Heap, m.Name, ev.Heap.Intern(m.SValue), true)
		}
	}
	for _, d := range parsed.Structs {
		defineCStruct(ev, d)
	}

	if strings.Contains(name, "math.h") {
		injectMathFunctions(ev, lib)
	}

	if !found && len(parsed.Functions) == 0 && !strings.Contains(name, "math.h") {
		return ev.runtimeError(ErrIO, pos, "cannot locate header %q in %v", name, headerSearchDirs)
	}
	return nil
}

func findHeader(name string) (string, bool) {
	if strings.HasPrefix(name, "/") {
		if b, err := os.ReadFile(name); err == nil {
			return string(b), true
		}
		return "", false
	}
	for _, dir := range headerSearchDirs {
		if b, err := os.ReadFile(dir + "/" + name); err == nil {
			return string(b), true
		}
	}
	return "", false
}

// resolveLibrary implements spec.md §4.5 step 3.
func resolveLibrary(name string) (*dynload.Handle, error) {
	self, err := dynload.Self()
	if err != nil {
		return nil, err
	}
	switch {
	case strings.Contains(name, "math.h"):
		if lm, err := dynload.Open("libm.so.6"); err == nil {
			return lm, nil
		}
		return self, nil
	case strings.Contains(name, "raylib"):
		for _, candidate := range raylibCandidates {
			if lib, err := dynload.Open(candidate); err == nil {
				return lib, nil
			}
		}
		return self, nil
	}
	return self, nil
}

// defineCFunction resolves sym in lib and, on success, wraps it as a
// const CFunction binding, shadowing any prior same-named binding
// (spec.md §4.5 step 4).
func defineCFunction(ev *Evaluator, lib *dynload.Handle, name string, ret ctype.Kind, params []ctype.Kind, variadic bool) bool {
	addr, err := lib.Resolve(name)
	if err != nil {
		return false
	}
	desc := cfunc.NewDescriptor(name, addr, ret, params, variadic)
	if err := ev.prepareCIF(desc); err != nil {
		return false
	}
	ev.Global.DefineOrReplace(ev.Heap, name, ev.Heap.NewCFunction(desc), true)
	return true
}

// defineCStruct binds a header-declared struct's name to a zero-arity
// constructor, shadowing any prior same-named binding: calling it
// allocates a fresh zeroed instance of d (spec.md §4.8, cstruct_create).
// This is the only way a Brisk program can obtain a CStruct value.
func defineCStruct(ev *Evaluator, d *cstruct.Descriptor) {
	ev.Global.DefineOrReplace(ev.Heap, d.Name, ev.Heap.NewNative(d.Name, 0, func(ev *Evaluator, args []Value) (Value, error) {
		return ev.Heap.NewCStruct(d), nil
	}), true)
}

func injectMathFunctions(ev *Evaluator, lib *dynload.Handle) {
	for _, name := range mathOneArg {
		defineCFunction(ev, lib, name, ctype.Double, []ctype.Kind{ctype.Double}, false)
	}
	for _, name := range mathTwoArg {
		defineCFunction(ev, lib, name, ctype.Double, []ctype.Kind{ctype.Double, ctype.Double}, false)
	}
}
