package lox

import (
	"math"
	"strconv"
)

// ValueTag enumerates all runtime kinds a Value may hold.
// The tag determines which type Value.Data carries.
type ValueTag int

const (
	VTNil      ValueTag = iota // nil (no payload)
	VTBool                     // bool
	VTNum                      // float64
	VTStr                      // string
	VTCallable                 // Callable (user function or native)
	VTClass                    // *Class
	VTInstance                 // *Instance
)

// Value is the universal runtime carrier used by the interpreter.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Nil is the singleton nil Value.
var Nil = Value{Tag: VTNil}

// Primitive constructors.
func Bool(b bool) Value   { return Value{Tag: VTBool, Data: b} }
func Num(f float64) Value { return Value{Tag: VTNum, Data: f} }
func Str(s string) Value  { return Value{Tag: VTStr, Data: s} }

// CallableVal wraps a Callable (user function or native) into a Value.
func CallableVal(c Callable) Value { return Value{Tag: VTCallable, Data: c} }

// ClassVal wraps a *Class into a Value.
func ClassVal(c *Class) Value { return Value{Tag: VTClass, Data: c} }

// InstanceVal wraps an *Instance into a Value.
func InstanceVal(i *Instance) Value { return Value{Tag: VTInstance, Data: i} }

// Truthy implements Lox truthiness: nil and false are falsy, everything else
// (zero and the empty string included) is truthy.
func Truthy(v Value) bool {
	switch v.Tag {
	case VTNil:
		return false
	case VTBool:
		return v.Data.(bool)
	default:
		return true
	}
}

// Equal implements Lox equality: nil equals only nil, primitives compare by
// value within the same kind, callables/classes/instances compare by
// identity. There is no cross-kind coercion.
func Equal(a, b Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case VTNil:
		return true
	case VTBool:
		return a.Data.(bool) == b.Data.(bool)
	case VTNum:
		return a.Data.(float64) == b.Data.(float64)
	case VTStr:
		return a.Data.(string) == b.Data.(string)
	default:
		// identity: same underlying pointer
		return a.Data == b.Data
	}
}

// Stringify renders the canonical text form used by print and the REPL echo.
func Stringify(v Value) string {
	switch v.Tag {
	case VTNil:
		return "nil"
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTNum:
		return formatNumber(v.Data.(float64))
	case VTStr:
		return v.Data.(string)
	case VTCallable:
		return v.Data.(Callable).String()
	case VTClass:
		return v.Data.(*Class).String()
	case VTInstance:
		return v.Data.(*Instance).String()
	default:
		return "<unknown>"
	}
}

// formatNumber drops the fractional part of integral doubles: 3 not 3.0.
func formatNumber(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (v Value) String() string { return Stringify(v) }
