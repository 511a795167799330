package lox

import "fmt"

// Environment is a lexical scope frame with a parent link. Frames are shared
// by reference: a closure and the block that created the frame see the same
// bindings, and the frame stays live as long as any holder does.
type Environment struct {
	enclosing *Environment
	values    map[string]Value
}

// NewEnvironment creates a frame chained to the given enclosing frame
// (nil for the global root).
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{enclosing: enclosing, values: make(map[string]Value)}
}

// Define binds name in the current frame, shadowing any outer binding.
// Redefinition in the same frame overwrites (legal at global scope; the
// resolver rejects it statically for locals).
func (e *Environment) Define(name string, v Value) {
	e.values[name] = v
}

// Get retrieves the nearest visible binding, walking parent-ward. Reading a
// name that was never declared is a runtime error.
func (e *Environment) Get(name Token) (Value, error) {
	if v, ok := e.values[name.Lexeme]; ok {
		return v, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return Nil, &RuntimeError{Line: name.Line, Msg: fmt.Sprintf("Undefined variable '%s'.", name.Lexeme)}
}

// Assign updates the nearest existing binding. It never implicitly defines:
// assigning an undeclared variable is a runtime error.
func (e *Environment) Assign(name Token, v Value) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = v
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, v)
	}
	return &RuntimeError{Line: name.Line, Msg: fmt.Sprintf("Undefined variable '%s'.", name.Lexeme)}
}

// ancestor walks exactly n enclosing hops. The resolver guarantees the
// distance is valid, so a missing frame is an internal invariant violation.
func (e *Environment) ancestor(n int) *Environment {
	env := e
	for i := 0; i < n; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt reads name in the frame exactly distance hops up. Used for every
// reference the resolver mapped; no name search happens on this path.
func (e *Environment) GetAt(distance int, name string) Value {
	return e.ancestor(distance).values[name]
}

// AssignAt writes name in the frame exactly distance hops up.
func (e *Environment) AssignAt(distance int, name Token, v Value) {
	e.ancestor(distance).values[name.Lexeme] = v
}
