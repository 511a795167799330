package lox

import "fmt"

// initMethod is the designated initializer name looked up on construction.
const initMethod = "init"

// Class is a runtime class value: a name, an optional superclass, and the
// map from method name to (unbound) user function.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

// FindMethod searches the class and its ancestor chain, nearest first.
func (c *Class) FindMethod(name string) *Function {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Arity of a class is the arity of its initializer, or zero without one.
func (c *Class) Arity() int {
	if init := c.FindMethod(initMethod); init != nil {
		return init.Arity()
	}
	return 0
}

// Call constructs a new empty instance and, when an initializer exists
// anywhere on the ancestor chain, invokes it bound to the instance. The
// result is always the instance.
func (c *Class) Call(ip *Interpreter, args []Value) (Value, error) {
	inst := &Instance{class: c, fields: make(map[string]Value)}
	if init := c.FindMethod(initMethod); init != nil {
		if _, err := init.bind(inst).Call(ip, args); err != nil {
			return Nil, err
		}
	}
	return InstanceVal(inst), nil
}

func (c *Class) String() string { return c.Name }

// Instance is an object: a reference to its class plus a mutable field map
// that starts empty and only changes through explicit property sets.
type Instance struct {
	class  *Class
	fields map[string]Value
}

// Get reads a property: own fields first, then the method chain (binding the
// method to this instance on retrieval). Failing both is a runtime error.
func (i *Instance) Get(name Token) (Value, error) {
	if v, ok := i.fields[name.Lexeme]; ok {
		return v, nil
	}
	if m := i.class.FindMethod(name.Lexeme); m != nil {
		return CallableVal(m.bind(i)), nil
	}
	return Nil, &RuntimeError{Line: name.Line, Msg: fmt.Sprintf("Undefined property '%s'.", name.Lexeme)}
}

// Set creates or overwrites the named field unconditionally.
func (i *Instance) Set(name Token, v Value) {
	i.fields[name.Lexeme] = v
}

func (i *Instance) String() string { return i.class.Name + " instance" }
