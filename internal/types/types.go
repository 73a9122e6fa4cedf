// Package types implements the analyzer's type lattice (C1): primitive
// kinds, the array type constructor, nominal object types, and the
// operations spec.md §4.1 defines over them (numeric promotion,
// assignability, structural/nominal equality, display names).
package types

import "fmt"

// Kind enumerates the primitive type tags.
type Kind int

const (
	Integer Kind = iota
	Float
	Boolean
	String
	Void
	Null
	Error // the absorbing element
)

func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Boolean:
		return "boolean"
	case String:
		return "string"
	case Void:
		return "void"
	case Null:
		return "null"
	case Error:
		return "error"
	default:
		return "?"
	}
}

// Type is the tagged-sum interface every Compiscript type implements.
type Type interface {
	String() string
	isType()
}

// Primitive is one of the non-structural kinds.
type Primitive struct {
	Kind Kind
}

func (p Primitive) String() string { return p.Kind.String() }
func (Primitive) isType()          {}

// Array is the array(T) type constructor; arrays nest.
type Array struct {
	Elem Type
}

func (a Array) String() string { return fmt.Sprintf("%s[]", a.Elem.String()) }
func (Array) isType()          {}

// Object is a nominal reference to a declared class by name.
type Object struct {
	Class string
}

func (o Object) String() string { return o.Class }
func (Object) isType()          {}

// Singleton primitive values, reused everywhere instead of re-allocating.
var (
	Int  Type = Primitive{Kind: Integer}
	Flt  Type = Primitive{Kind: Float}
	Bool Type = Primitive{Kind: Boolean}
	Str  Type = Primitive{Kind: String}
	Vd   Type = Primitive{Kind: Void}
	Nil  Type = Primitive{Kind: Null}
	Err  Type = Primitive{Kind: Error}
)

// NewArray builds array(elem).
func NewArray(elem Type) Type { return Array{Elem: elem} }

// NewObject builds object(class).
func NewObject(class string) Type { return Object{Class: class} }

// IsError reports whether t is the absorbing error type.
func IsError(t Type) bool {
	p, ok := t.(Primitive)
	return ok && p.Kind == Error
}

// IsNumeric reports whether t is integer or float.
func IsNumeric(t Type) bool {
	p, ok := t.(Primitive)
	return ok && (p.Kind == Integer || p.Kind == Float)
}

// CommonNumeric computes the promoted type of two numeric operands:
// float if either is float, integer if both are integer, error otherwise.
func CommonNumeric(t1, t2 Type) Type {
	if !IsNumeric(t1) || !IsNumeric(t2) {
		return Err
	}
	p1, p2 := t1.(Primitive), t2.(Primitive)
	if p1.Kind == Float || p2.Kind == Float {
		return Flt
	}
	return Int
}

// SameType is structural equality: arrays equal iff element types equal,
// objects equal iff class names match, primitives equal iff kinds match.
func SameType(t1, t2 Type) bool {
	switch a := t1.(type) {
	case Primitive:
		b, ok := t2.(Primitive)
		return ok && a.Kind == b.Kind
	case Array:
		b, ok := t2.(Array)
		return ok && SameType(a.Elem, b.Elem)
	case Object:
		b, ok := t2.(Object)
		return ok && a.Class == b.Class
	default:
		return false
	}
}

// ClassHierarchy is the minimal view the type lattice needs of the symbol
// table to walk inheritance chains, kept here (rather than importing
// symbols, which would create a cycle) as a small callback interface.
type ClassHierarchy interface {
	// BaseOf returns the base class name of class, and whether it has one.
	BaseOf(class string) (string, bool)
}

// IsAssignable governs variable/parameter/field assignment and return
// compatibility, per spec.md §4.1. hierarchy may be nil when neither side
// is an Object type.
func IsAssignable(target, source Type, hierarchy ClassHierarchy) bool {
	if IsError(target) || IsError(source) {
		return true
	}
	if SameType(target, source) {
		return true
	}
	// float <- integer widening; no other primitive widening.
	if tp, ok := target.(Primitive); ok && tp.Kind == Float {
		if sp, ok := source.(Primitive); ok && sp.Kind == Integer {
			return true
		}
	}
	// string <- null
	if tp, ok := target.(Primitive); ok && tp.Kind == String {
		if sp, ok := source.(Primitive); ok && sp.Kind == Null {
			return true
		}
	}
	// array(A) <- array(B) iff IsAssignable(A, B) — covariant by the
	// source's explicit policy (spec.md §9 open question: lenient, not
	// invariant).
	if ta, ok := target.(Array); ok {
		if sa, ok := source.(Array); ok {
			return IsAssignable(ta.Elem, sa.Elem, hierarchy)
		}
		return false
	}
	// object(T) <- object(S) iff S == T or S transitively inherits T.
	if to, ok := target.(Object); ok {
		if so, ok := source.(Object); ok {
			if to.Class == so.Class {
				return true
			}
			if hierarchy == nil {
				return false
			}
			seen := map[string]bool{}
			cur := so.Class
			for {
				base, ok := hierarchy.BaseOf(cur)
				if !ok || seen[base] {
					return false
				}
				if base == to.Class {
					return true
				}
				seen[base] = true
				cur = base
			}
		}
		return false
	}
	return false
}

// Display returns the human-readable name used in diagnostic messages.
func Display(t Type) string {
	if t == nil {
		return "<unknown>"
	}
	return t.String()
}
