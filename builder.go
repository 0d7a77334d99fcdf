package jsonpatch

import (
	"fmt"

	"github.com/brunoga/jsonpatch/value"
)

// Builder constructs a Patch operation by operation. Paths and values are
// validated as they are added; the first error is kept and reported by
// Build, and every later call is ignored.
type Builder struct {
	ops []Operation
	err error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build returns the constructed Patch or the first error encountered.
func (b *Builder) Build() (Patch, error) {
	if b.err != nil {
		return Patch{}, b.err
	}
	return NewPatch(b.ops...)
}

// Add appends an "add" operation. v is converted with value.FromAny.
func (b *Builder) Add(path string, v any) *Builder {
	return b.withValue(OpAdd, path, v, func(p Pointer, val value.Value) Operation {
		return AddOp{Path: p, Value: val}
	})
}

// Replace appends a "replace" operation. v is converted with value.FromAny.
func (b *Builder) Replace(path string, v any) *Builder {
	return b.withValue(OpReplace, path, v, func(p Pointer, val value.Value) Operation {
		return ReplaceOp{Path: p, Value: val}
	})
}

// Test appends a "test" operation. v is converted with value.FromAny.
func (b *Builder) Test(path string, v any) *Builder {
	return b.withValue(OpTest, path, v, func(p Pointer, val value.Value) Operation {
		return TestOp{Path: p, Value: val}
	})
}

// Remove appends a "remove" operation.
func (b *Builder) Remove(path string) *Builder {
	if b.err != nil {
		return b
	}
	p, err := ParsePointer(path)
	if err != nil {
		b.fail(OpRemove, err)
		return b
	}
	b.ops = append(b.ops, RemoveOp{Path: p})
	return b
}

// Move appends a "move" operation.
func (b *Builder) Move(from, path string) *Builder {
	return b.withSource(OpMove, from, path, func(f, p Pointer) Operation {
		return MoveOp{From: f, Path: p}
	})
}

// Copy appends a "copy" operation.
func (b *Builder) Copy(from, path string) *Builder {
	return b.withSource(OpCopy, from, path, func(f, p Pointer) Operation {
		return CopyOp{From: f, Path: p}
	})
}

func (b *Builder) withValue(kind OpKind, path string, v any, mk func(Pointer, value.Value) Operation) *Builder {
	if b.err != nil {
		return b
	}
	p, err := ParsePointer(path)
	if err != nil {
		b.fail(kind, err)
		return b
	}
	val, err := value.FromAny(v)
	if err != nil {
		b.fail(kind, err)
		return b
	}
	if kind != OpTest && val.Kind() == value.KindNull {
		b.fail(kind, ErrMissingValue)
		return b
	}
	b.ops = append(b.ops, mk(p, val))
	return b
}

func (b *Builder) withSource(kind OpKind, from, path string, mk func(Pointer, Pointer) Operation) *Builder {
	if b.err != nil {
		return b
	}
	f, err := ParsePointer(from)
	if err != nil {
		b.fail(kind, fmt.Errorf("'from': %w", err))
		return b
	}
	p, err := ParsePointer(path)
	if err != nil {
		b.fail(kind, err)
		return b
	}
	b.ops = append(b.ops, mk(f, p))
	return b
}

func (b *Builder) fail(kind OpKind, err error) {
	b.err = fmt.Errorf("operation %d (%s): %w", len(b.ops), kind, err)
}
