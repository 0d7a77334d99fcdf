// Package jsonpatch applies RFC 6902 JSON Patch documents to immutable JSON
// values.
package jsonpatch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/brunoga/jsonpatch/value"
)

// Patch is an ordered list of operations. Patches obtained from the parse
// functions are never empty.
type Patch struct {
	ops []Operation
}

// NewPatch returns a patch made of ops, in order.
func NewPatch(ops ...Operation) (Patch, error) {
	if len(ops) == 0 {
		return Patch{}, ErrEmptyPatchArray
	}
	for i, op := range ops {
		if op == nil {
			return Patch{}, fmt.Errorf("operation %d: nil operation", i)
		}
	}
	return Patch{ops: append([]Operation(nil), ops...)}, nil
}

// ParsePatch parses an RFC 6902 patch document.
func ParsePatch(data []byte) (Patch, error) {
	doc, err := value.Parse(data)
	if err != nil {
		if errors.Is(err, value.ErrInvalidUTF8) {
			return Patch{}, ErrBadStringEncoding
		}
		return Patch{}, fmt.Errorf("%w: %w", ErrInvalidJSONFormat, err)
	}
	return ParsePatchValue(doc)
}

// ParsePatchString is like ParsePatch for a string.
func ParsePatchString(s string) (Patch, error) {
	return ParsePatch([]byte(s))
}

// ParsePatchYAML parses a patch document written in YAML.
func ParsePatchYAML(data []byte) (Patch, error) {
	doc, err := value.ParseYAML(data)
	if err != nil {
		if errors.Is(err, value.ErrInvalidUTF8) {
			return Patch{}, ErrBadStringEncoding
		}
		return Patch{}, fmt.Errorf("%w: %w", ErrInvalidJSONFormat, err)
	}
	return ParsePatchValue(doc)
}

// ParsePatchValue builds a patch from an already decoded document. An object
// is a single operation, an array holds one operation per element.
func ParsePatchValue(doc value.Value) (Patch, error) {
	switch d := doc.(type) {
	case value.Object:
		op, err := parseOperation(d)
		if err != nil {
			return Patch{}, err
		}
		return Patch{ops: []Operation{op}}, nil
	case value.Array:
		if d.Len() == 0 {
			return Patch{}, ErrEmptyPatchArray
		}
		ops := make([]Operation, d.Len())
		for i := range ops {
			op, err := parseOperation(d.At(i))
			if err != nil {
				return Patch{}, fmt.Errorf("operation %d: %w", i, err)
			}
			ops[i] = op
		}
		return Patch{ops: ops}, nil
	}
	return Patch{}, fmt.Errorf("%w: got %s", ErrInvalidRootElement, value.KindOf(doc))
}

// MustParsePatch is like ParsePatchString but panics on error.
func MustParsePatch(s string) Patch {
	p, err := ParsePatchString(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Operations returns a copy of the operations.
func (p Patch) Operations() []Operation {
	return append([]Operation(nil), p.ops...)
}

// Len returns the number of operations.
func (p Patch) Len() int { return len(p.ops) }

// Equal reports whether p and o hold pairwise equal operations.
func (p Patch) Equal(o Patch) bool {
	if len(p.ops) != len(o.ops) {
		return false
	}
	for i := range p.ops {
		if !OperationsEqual(p.ops[i], o.ops[i]) {
			return false
		}
	}
	return true
}

// Value returns the RFC 6902 document for the patch. It is always an array.
func (p Patch) Value() value.Array {
	elems := make([]value.Value, len(p.ops))
	for i, op := range p.ops {
		elems[i] = op.toValue()
	}
	return value.NewArray(elems...)
}

// MarshalJSON implements json.Marshaler.
func (p Patch) MarshalJSON() ([]byte, error) {
	return p.Value().MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Patch) UnmarshalJSON(data []byte) error {
	parsed, err := ParsePatch(data)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p Patch) String() string {
	var b strings.Builder
	for i, op := range p.ops {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(op.String())
	}
	return b.String()
}
