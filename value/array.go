package value

import (
	"bytes"
	"fmt"
	"slices"
)

// Array is an immutable JSON array.
type Array struct {
	elems []Value
}

// NewArray returns an array holding elems. A nil element is stored as Null.
func NewArray(elems ...Value) Array {
	a := Array{elems: make([]Value, len(elems))}
	for i, e := range elems {
		a.elems[i] = orNull(e)
	}
	return a
}

func (Array) Kind() Kind { return KindArray }
func (Array) isValue()   {}

func (a Array) String() string {
	data, _ := a.MarshalJSON()
	return string(data)
}

func (a Array) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, e := range a.elems {
		if i > 0 {
			buf.WriteByte(',')
		}
		data, err := e.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// Len returns the number of elements.
func (a Array) Len() int { return len(a.elems) }

// At returns the element at index i. It panics if i is out of range, like
// indexing a slice.
func (a Array) At(i int) Value { return a.elems[i] }

// Values returns a copy of the elements.
func (a Array) Values() []Value { return slices.Clone(a.elems) }

// Insert returns a new array with v inserted at index i, shifting the
// elements at i and after one position to the right. i may equal Len, which
// appends.
func (a Array) Insert(i int, v Value) (Array, error) {
	if i < 0 || i > len(a.elems) {
		return Array{}, fmt.Errorf("insert index %d out of range [0:%d]", i, len(a.elems))
	}
	elems := make([]Value, 0, len(a.elems)+1)
	elems = append(elems, a.elems[:i]...)
	elems = append(elems, orNull(v))
	elems = append(elems, a.elems[i:]...)
	return Array{elems: elems}, nil
}

// Set returns a new array with the element at index i replaced by v.
func (a Array) Set(i int, v Value) (Array, error) {
	if i < 0 || i >= len(a.elems) {
		return Array{}, fmt.Errorf("index %d out of range [0:%d)", i, len(a.elems))
	}
	elems := slices.Clone(a.elems)
	elems[i] = orNull(v)
	return Array{elems: elems}, nil
}

// Remove returns a new array without the element at index i.
func (a Array) Remove(i int) (Array, error) {
	if i < 0 || i >= len(a.elems) {
		return Array{}, fmt.Errorf("index %d out of range [0:%d)", i, len(a.elems))
	}
	elems := make([]Value, 0, len(a.elems)-1)
	elems = append(elems, a.elems[:i]...)
	elems = append(elems, a.elems[i+1:]...)
	return Array{elems: elems}, nil
}

// Append returns a new array with v added at the end.
func (a Array) Append(v Value) Array {
	elems := make([]Value, 0, len(a.elems)+1)
	elems = append(elems, a.elems...)
	elems = append(elems, orNull(v))
	return Array{elems: elems}
}

func orNull(v Value) Value {
	if v == nil {
		return Null{}
	}
	return v
}
