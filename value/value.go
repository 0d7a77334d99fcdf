// Package value implements an immutable JSON value model.
//
// A Value is one of Null, Bool, Number, String, Array or Object. Containers
// never change after construction: every method that looks like a mutation
// returns a new container that shares the untouched children with the
// original one.
package value

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind identifies the type of a JSON value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is a JSON value. The set of implementations is closed to the types
// in this package.
type Value interface {
	fmt.Stringer
	json.Marshaler

	// Kind returns the JSON type of the value.
	Kind() Kind

	isValue()
}

// Null is the JSON null literal.
type Null struct{}

func (Null) Kind() Kind                   { return KindNull }
func (Null) String() string               { return "null" }
func (Null) MarshalJSON() ([]byte, error) { return []byte("null"), nil }
func (Null) isValue()                     {}

// Bool is a JSON boolean.
type Bool bool

func (Bool) Kind() Kind { return KindBool }
func (b Bool) String() string {
	return strconv.FormatBool(bool(b))
}
func (b Bool) MarshalJSON() ([]byte, error) { return []byte(b.String()), nil }
func (Bool) isValue()                       {}

// String is a JSON string.
type String string

func (String) Kind() Kind { return KindString }
func (s String) String() string {
	data, _ := s.MarshalJSON()
	return string(data)
}
func (s String) MarshalJSON() ([]byte, error) { return marshalString(string(s)) }
func (String) isValue()                       {}

// IsContainer reports whether v is an Array or an Object.
func IsContainer(v Value) bool {
	if v == nil {
		return false
	}
	k := v.Kind()
	return k == KindArray || k == KindObject
}

// KindOf returns the kind of v, treating a nil Value as null.
func KindOf(v Value) Kind {
	if v == nil {
		return KindNull
	}
	return v.Kind()
}
