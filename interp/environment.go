package interp

// binding is one entry in an environment's local scope.
type binding struct {
	value   Value
	isConst bool
}

// Env is a node in the lexical scope chain (spec.md §3, "Environment"): a
// table of local bindings plus a strong reference to the enclosing
// environment (nil for the global scope) and its own reference count.
//
// The global environment lives for the program's duration; block and call
// environments are created on scope entry and released on scope exit; a
// closure extends its captured environment's lifetime by holding a strong
// reference (spec.md §3).
type Env struct {
	vars   map[string]binding
	parent *Env
	refs   int32
	global bool
}

// NewGlobalEnv returns the root environment with no parent.
func NewGlobalEnv() *Env {
	return &Env{vars: map[string]binding{}, refs: 1, global: true}
}

// NewChildEnv returns a new scope whose parent is parent, with refs=1 (the
// caller's reference); the caller must Decref it on scope exit. The child
// takes a reference on parent, released when the child reaches zero.
func NewChildEnv(parent *Env) *Env {
	if parent != nil {
		parent.refs++
	}
	return &Env{vars: map[string]binding{}, parent: parent, refs: 1}
}

// IncrefEnv bumps an environment's reference count (held, e.g., by a
// closure capturing it).
func (h *Heap) IncrefEnv(e *Env) {
	if e == nil {
		return
	}
	e.refs++
}

// DecrefEnv releases one reference to e; at zero, it releases all local
// bindings and recurses into the parent, matching spec.md's capture-graph
// invariant ("a forest — environments never reference a child").
func (h *Heap) DecrefEnv(e *Env) {
	if e == nil {
		return
	}
	e.refs--
	if e.refs > 0 {
		return
	}
	for _, b := range e.vars {
		h.DecrefValue(b.value)
	}
	h.DecrefEnv(e.parent)
}

// Define creates a new binding in this scope only. It fails (returns
// false) if name already exists in THIS scope; shadowing across nested
// scopes is allowed (spec.md §4.2).
func (e *Env) Define(h *Heap, name string, v Value, isConst bool) bool {
	if _, exists := e.vars[name]; exists {
		return false
	}
	h.IncrefValue(v)
	e.vars[name] = binding{value: v, isConst: isConst}
	return true
}

// Get walks the chain outward, returning the value at the innermost
// binding.
func (e *Env) Get(name string) (Value, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if b, ok := cur.vars[name]; ok {
			return b.value, true
		}
	}
	return Value{}, false
}

// GetLocal looks up name without crossing scopes.
func (e *Env) GetLocal(name string) (Value, bool) {
	b, ok := e.vars[name]
	return b.value, ok
}

// Set walks the chain, assigning at the innermost binding. It fails if the
// name is not found anywhere, or if that binding is const.
func (e *Env) Set(h *Heap, name string, v Value) bool {
	for cur := e; cur != nil; cur = cur.parent {
		if b, ok := cur.vars[name]; ok {
			if b.isConst {
				return false
			}
			h.DecrefValue(b.value)
			h.IncrefValue(v)
			cur.vars[name] = binding{value: v, isConst: false}
			return true
		}
	}
	return false
}

// DefineOrReplace creates a binding in this scope, overwriting any
// existing one (spec.md §4.5 step 4, "shadowing any prior same-named
// binding" — used by import resolution, which unlike execFnDecl/
// execVarDecl is allowed to replace an existing global).
func (e *Env) DefineOrReplace(h *Heap, name string, v Value, isConst bool) {
	if old, exists := e.vars[name]; exists {
		h.DecrefValue(old.value)
	}
	h.IncrefValue(v)
	e.vars[name] = binding{value: v, isConst: isConst}
}

// IsConst reports whether name is bound, and bound const, anywhere in the
// chain.
func (e *Env) IsConst(name string) bool {
	for cur := e; cur != nil; cur = cur.parent {
		if b, ok := cur.vars[name]; ok {
			return b.isConst
		}
	}
	return false
}
