package jsonpatch

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/wI2L/jsondiff"

	"github.com/brunoga/jsonpatch/value"
)

// ErrDiffNullDocument is returned by Diff when the target document is null
// and the source is not. A patch can only set a null through its parent,
// and the root has none.
var ErrDiffNullDocument = errors.New("a patch cannot turn a document into null")

// DiffOption configures Diff.
type DiffOption interface {
	applyDiff(*diffConfig)
}

type diffConfig struct {
	opts       []jsondiff.Option
	invertible bool
}

type diffOptionFunc func(*diffConfig)

func (f diffOptionFunc) applyDiff(c *diffConfig) { f(c) }

// DiffFactorize makes Diff emit "copy" and "move" operations when a value is
// found elsewhere in the source document.
func DiffFactorize() DiffOption {
	return diffOptionFunc(func(c *diffConfig) { c.opts = append(c.opts, jsondiff.Factorize()) })
}

// DiffInvertible makes Diff precede every "remove" and "replace" with a
// "test" of the old value, so the patch refuses to apply to anything but the
// source document.
func DiffInvertible() DiffOption {
	return diffOptionFunc(func(c *diffConfig) {
		c.opts = append(c.opts, jsondiff.Invertible())
		c.invertible = true
	})
}

// DiffRationalize replaces a container with a single "replace" when that is
// shorter than patching its members.
func DiffRationalize() DiffOption {
	return diffOptionFunc(func(c *diffConfig) { c.opts = append(c.opts, jsondiff.Rationalize()) })
}

// DiffLCS compares arrays using their longest common subsequence.
func DiffLCS() DiffOption {
	return diffOptionFunc(func(c *diffConfig) { c.opts = append(c.opts, jsondiff.LCS()) })
}

// Diff returns a patch that turns from into to. The patch never uses the "-"
// end of array token, so it applies with the default options. It never
// adds or replaces with a bare null either, since ParsePatch rejects that:
// such an operation becomes a replace of its parent. If the documents are
// equal the returned patch has no operations.
//
// The comparison itself goes through float64. When that loses precision
// the patch replaces the whole document instead, after a test of the whole
// source document if DiffInvertible is given.
func Diff(from, to value.Value, opts ...DiffOption) (Patch, error) {
	cfg := diffConfig{}
	for _, opt := range opts {
		opt.applyDiff(&cfg)
	}
	from, to = orNull(from), orNull(to)
	if value.Equal(from, to) {
		return Patch{}, nil
	}
	if to.Kind() == value.KindNull {
		return Patch{}, ErrDiffNullDocument
	}

	src, err := value.Marshal(from)
	if err != nil {
		return Patch{}, err
	}
	dst, err := value.Marshal(to)
	if err != nil {
		return Patch{}, err
	}
	dp, err := jsondiff.CompareJSON(src, dst, cfg.opts...)
	if err != nil {
		return Patch{}, fmt.Errorf("diff: %w", err)
	}

	ops, doc, err := replayDiff(dp, from)
	if errors.Is(err, ErrTestFailed) || (err == nil && !value.Equal(doc, to)) {
		ops = ops[:0]
		if cfg.invertible {
			ops = append(ops, TestOp{Path: Pointer{}, Value: from})
		}
		return Patch{ops: append(ops, ReplaceOp{Path: Pointer{}, Value: to})}, nil
	}
	if err != nil {
		return Patch{}, err
	}
	return Patch{ops: ops}, nil
}

// replayDiff converts dp into operations, applying each of them to doc
// starting from from. Every "-" is pinned down to a concrete index and every
// add or replace of a null becomes a replace of the parent.
func replayDiff(dp jsondiff.Patch, from value.Value) ([]Operation, value.Value, error) {
	e := &engine{config: config{log: logr.Discard(), endOfArray: true}}
	doc := from
	ops := make([]Operation, 0, len(dp))
	for i, d := range dp {
		op, err := fromDiffOperation(string(d.Type), string(d.From), string(d.Path), d.Value)
		if err != nil {
			return ops, nil, fmt.Errorf("diff operation %d: %w", i, err)
		}
		next, err := op.apply(e, doc)
		if err != nil {
			return ops, nil, &OperationError{Index: i, Op: op, Err: err}
		}
		if t := op.Target(); !t.IsRoot() && t.Last() == EndOfArray {
			op, err = pinEndOfArray(op, next)
			if err != nil {
				return ops, nil, fmt.Errorf("diff operation %d: %w", i, err)
			}
		}
		if setsNull(op) {
			parent := op.Target().Parent()
			v, err := get(next, parent)
			if err != nil {
				return ops, nil, fmt.Errorf("diff operation %d: %w", i, err)
			}
			op = ReplaceOp{Path: parent, Value: v}
		}
		ops = append(ops, op)
		doc = next
	}
	return ops, doc, nil
}

// setsNull reports whether op is an add or replace of a null value.
func setsNull(op Operation) bool {
	switch o := op.(type) {
	case AddOp:
		return o.Value.Kind() == value.KindNull
	case ReplaceOp:
		return o.Value.Kind() == value.KindNull
	}
	return false
}

func fromDiffOperation(kind, from, path string, v any) (Operation, error) {
	p, err := ParsePointer(path)
	if err != nil {
		return nil, err
	}
	var f Pointer
	if kind == string(OpMove) || kind == string(OpCopy) {
		if f, err = ParsePointer(from); err != nil {
			return nil, fmt.Errorf("'from': %w", err)
		}
	}
	var val value.Value
	if kind == string(OpAdd) || kind == string(OpReplace) || kind == string(OpTest) {
		if val, err = value.FromAny(v); err != nil {
			return nil, err
		}
	}
	switch OpKind(kind) {
	case OpAdd:
		return AddOp{Path: p, Value: val}, nil
	case OpRemove:
		return RemoveOp{Path: p}, nil
	case OpReplace:
		return ReplaceOp{Path: p, Value: val}, nil
	case OpMove:
		return MoveOp{From: f, Path: p}, nil
	case OpCopy:
		return CopyOp{From: f, Path: p}, nil
	case OpTest:
		return TestOp{Path: p, Value: val}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidOperation, kind)
}

// pinEndOfArray rewrites the target of op, which ends in "-", to the index
// the value landed at in doc, the document after op was applied.
func pinEndOfArray(op Operation, doc value.Value) (Operation, error) {
	parent := op.Target().Parent()
	container, err := get(doc, parent)
	if err != nil {
		return nil, err
	}
	arr, ok := container.(value.Array)
	if !ok || arr.Len() == 0 {
		return nil, fmt.Errorf("%w: %q does not address an array", ErrInvalidIndex, op.Target())
	}
	pinned, err := NewPointer(append(parent.Tokens(), strconv.Itoa(arr.Len()-1))...)
	if err != nil {
		return nil, err
	}
	switch o := op.(type) {
	case AddOp:
		o.Path = pinned
		return o, nil
	case MoveOp:
		o.Path = pinned
		return o, nil
	case CopyOp:
		o.Path = pinned
		return o, nil
	}
	return nil, fmt.Errorf("%w: %q used by %s", ErrInvalidIndex, EndOfArray, op.Kind())
}
