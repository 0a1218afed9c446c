// env.go — chained variable scopes.
package lox

import "fmt"

// Env is a lexical environment frame with a parent link. Lookups walk
// parent-ward. Use Define to bind in the current frame, Set to update an
// existing visible binding (nearest frame), and Get to retrieve.
//
// Frames are shared, not copied: a closure keeps a live reference to its
// defining Env, so a frame outlives its creating call when any closure still
// points at it. The garbage collector releases a frame once neither an
// executing statement nor a surviving closure references it.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a new lexical frame with the given parent (which may be nil).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: make(map[string]Value)}
}

// Define binds name to v in the current frame, shadowing any outer binding.
// Redefining a name already bound in this frame overwrites it; that is what
// permits shadowing blocks and REPL redefinition.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// Set updates the nearest existing binding of name to v. If no binding
// exists in any visible frame, Set returns an error (it does not implicitly
// define).
func (e *Env) Set(name string, v Value) error {
	if _, ok := e.table[name]; ok {
		e.table[name] = v
		return nil
	}
	if e.parent != nil {
		return e.parent.Set(name, v)
	}
	return fmt.Errorf("undefined variable: %s", name)
}

// Get retrieves the nearest visible binding for name or returns an error.
func (e *Env) Get(name string) (Value, error) {
	if v, ok := e.table[name]; ok {
		return v, nil
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Value{}, fmt.Errorf("undefined variable: %s", name)
}
