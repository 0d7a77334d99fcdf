package jsonpatch

import (
	"fmt"

	"github.com/brunoga/jsonpatch/value"
)

// OpKind names one of the RFC 6902 operations.
type OpKind string

const (
	OpAdd     OpKind = "add"
	OpRemove  OpKind = "remove"
	OpReplace OpKind = "replace"
	OpMove    OpKind = "move"
	OpCopy    OpKind = "copy"
	OpTest    OpKind = "test"
)

func (k OpKind) valid() bool {
	switch k {
	case OpAdd, OpRemove, OpReplace, OpMove, OpCopy, OpTest:
		return true
	}
	return false
}

// Operation is a single patch operation. It is implemented by AddOp,
// RemoveOp, ReplaceOp, MoveOp, CopyOp and TestOp only.
type Operation interface {
	fmt.Stringer

	// Kind returns the operation name.
	Kind() OpKind

	// Target returns the location the operation acts on (its "path").
	Target() Pointer

	// apply runs the operation against doc and returns the new document.
	apply(e *engine, doc value.Value) (value.Value, error)

	// toValue returns the RFC 6902 representation of the operation.
	toValue() value.Object
}

// AddOp adds Value at Path.
type AddOp struct {
	Path  Pointer
	Value value.Value
}

// RemoveOp removes the value at Path.
type RemoveOp struct {
	Path Pointer
}

// ReplaceOp replaces the value at Path with Value.
type ReplaceOp struct {
	Path  Pointer
	Value value.Value
}

// MoveOp removes the value at From and adds it at Path.
type MoveOp struct {
	From Pointer
	Path Pointer
}

// CopyOp copies the value at From to Path.
type CopyOp struct {
	From Pointer
	Path Pointer
}

// TestOp checks that the value at Path equals Value. A nil Value means the
// member was absent from the patch document; such a test always fails.
type TestOp struct {
	Path  Pointer
	Value value.Value
}

func (AddOp) Kind() OpKind     { return OpAdd }
func (RemoveOp) Kind() OpKind  { return OpRemove }
func (ReplaceOp) Kind() OpKind { return OpReplace }
func (MoveOp) Kind() OpKind    { return OpMove }
func (CopyOp) Kind() OpKind    { return OpCopy }
func (TestOp) Kind() OpKind    { return OpTest }

func (o AddOp) Target() Pointer     { return o.Path }
func (o RemoveOp) Target() Pointer  { return o.Path }
func (o ReplaceOp) Target() Pointer { return o.Path }
func (o MoveOp) Target() Pointer    { return o.Path }
func (o CopyOp) Target() Pointer    { return o.Path }
func (o TestOp) Target() Pointer    { return o.Path }

func (o AddOp) String() string     { return o.toValue().String() }
func (o RemoveOp) String() string  { return o.toValue().String() }
func (o ReplaceOp) String() string { return o.toValue().String() }
func (o MoveOp) String() string    { return o.toValue().String() }
func (o CopyOp) String() string    { return o.toValue().String() }
func (o TestOp) String() string    { return o.toValue().String() }

func opObject(kind OpKind, path Pointer) value.Object {
	return value.NewObject(
		value.Member{Key: "op", Value: value.String(kind)},
		value.Member{Key: "path", Value: value.String(path.String())},
	)
}

func (o AddOp) toValue() value.Object {
	return opObject(OpAdd, o.Path).With("value", o.Value)
}

func (o RemoveOp) toValue() value.Object {
	return opObject(OpRemove, o.Path)
}

func (o ReplaceOp) toValue() value.Object {
	return opObject(OpReplace, o.Path).With("value", o.Value)
}

func (o MoveOp) toValue() value.Object {
	return opObject(OpMove, o.Path).With("from", value.String(o.From.String()))
}

func (o CopyOp) toValue() value.Object {
	return opObject(OpCopy, o.Path).With("from", value.String(o.From.String()))
}

func (o TestOp) toValue() value.Object {
	obj := opObject(OpTest, o.Path)
	if o.Value != nil {
		obj = obj.With("value", o.Value)
	}
	return obj
}

// operationValue returns the "value" member of op, if the kind carries one.
func operationValue(op Operation) (value.Value, bool) {
	switch o := op.(type) {
	case AddOp:
		return o.Value, true
	case ReplaceOp:
		return o.Value, true
	case TestOp:
		return o.Value, true
	}
	return nil, false
}

// operationSource returns the "from" member of op, if the kind carries one.
func operationSource(op Operation) (Pointer, bool) {
	switch o := op.(type) {
	case MoveOp:
		return o.From, true
	case CopyOp:
		return o.From, true
	}
	return Pointer{}, false
}

// OperationsEqual reports whether a and b have the same kind, target, source
// and value.
func OperationsEqual(a, b Operation) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() || !a.Target().Equal(b.Target()) {
		return false
	}
	fa, _ := operationSource(a)
	fb, _ := operationSource(b)
	if !fa.Equal(fb) {
		return false
	}
	va, _ := operationValue(a)
	vb, _ := operationValue(b)
	if (va == nil) != (vb == nil) {
		return false
	}
	return va == nil || value.Equal(va, vb)
}

// parseOperation builds an Operation from its RFC 6902 object form.
func parseOperation(v value.Value) (Operation, error) {
	obj, ok := v.(value.Object)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidElement, value.KindOf(v))
	}

	opVal, ok := obj.Get("op")
	if !ok {
		return nil, ErrMissingOperation
	}
	opStr, ok := opVal.(value.String)
	if !ok {
		return nil, fmt.Errorf("%w: 'op' must be a string", ErrMissingOperation)
	}
	kind := OpKind(opStr)
	if !kind.valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOperation, string(opStr))
	}

	path, err := pointerMember(obj, "path", ErrMissingPath)
	if err != nil {
		return nil, err
	}

	var from Pointer
	if kind == OpMove || kind == OpCopy {
		from, err = pointerMember(obj, "from", ErrMissingFrom)
		if err != nil {
			return nil, err
		}
	}

	val, hasVal := obj.Get("value")
	if (kind == OpAdd || kind == OpReplace) && (!hasVal || val.Kind() == value.KindNull) {
		return nil, ErrMissingValue
	}

	switch kind {
	case OpAdd:
		return AddOp{Path: path, Value: val}, nil
	case OpRemove:
		return RemoveOp{Path: path}, nil
	case OpReplace:
		return ReplaceOp{Path: path, Value: val}, nil
	case OpMove:
		return MoveOp{From: from, Path: path}, nil
	case OpCopy:
		return CopyOp{From: from, Path: path}, nil
	default:
		return TestOp{Path: path, Value: val}, nil
	}
}

func pointerMember(obj value.Object, key string, missing error) (Pointer, error) {
	v, ok := obj.Get(key)
	if !ok {
		return Pointer{}, missing
	}
	s, ok := v.(value.String)
	if !ok {
		return Pointer{}, fmt.Errorf("%w: '%s' must be a string", missing, key)
	}
	p, err := ParsePointer(string(s))
	if err != nil {
		return Pointer{}, fmt.Errorf("'%s': %w", key, err)
	}
	return p, nil
}
