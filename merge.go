package jsonpatch

import (
	"fmt"
)

// Conflict represents an operation of the second patch given to Merge that
// touches a location the first patch changes.
type Conflict struct {
	Op   Operation // Operation from the second patch, left out of the merge.
	With Operation // Operation from the first patch it overlaps.
}

func (c Conflict) String() string {
	return fmt.Sprintf("conflict at %s: %s overlaps %s", c.Op.Target(), c.Op, c.With)
}

// Merge combines two patches computed against the same base document into
// one that applies a and then the operations of b that do not conflict with
// it. An operation of b conflicts if anything it reads or writes is the
// same as, inside, or a parent of a location a writes. Adding or removing an
// array element writes the whole array, since it shifts the indexes after
// it. Operations of b identical to one in a are dropped without a conflict.
func Merge(a, b Patch) (Patch, []Conflict) {
	if a.Len() == 0 {
		return b, nil
	}
	if b.Len() == 0 {
		return a, nil
	}

	var written []Pointer
	var writers []Operation
	for _, op := range a.ops {
		for _, p := range writes(op) {
			written = append(written, p)
			writers = append(writers, op)
		}
	}

	ops := append([]Operation(nil), a.ops...)
	var conflicts []Conflict
next:
	for _, op := range b.ops {
		for _, prev := range a.ops {
			if OperationsEqual(op, prev) {
				continue next
			}
		}
		for _, p := range touches(op) {
			for i, w := range written {
				if p.HasPrefix(w) || w.HasPrefix(p) {
					conflicts = append(conflicts, Conflict{Op: op, With: writers[i]})
					continue next
				}
			}
		}
		ops = append(ops, op)
	}
	return Patch{ops: ops}, conflicts
}

// writes returns the locations op may change.
func writes(op Operation) []Pointer {
	var ps []Pointer
	switch o := op.(type) {
	case TestOp:
		return nil
	case ReplaceOp:
		return []Pointer{o.Path}
	case MoveOp:
		ps = append(ps, shifted(o.From)...)
		ps = append(ps, shifted(o.Path)...)
	default:
		ps = shifted(op.Target())
	}
	return ps
}

// touches returns the locations op reads or writes.
func touches(op Operation) []Pointer {
	ps := writes(op)
	if from, ok := operationSource(op); ok {
		ps = append(ps, from)
	}
	return append(ps, op.Target())
}

// shifted returns p and, if its last token can address an array element,
// the parent whose later elements move when p is inserted or removed.
func shifted(p Pointer) []Pointer {
	if p.IsRoot() {
		return []Pointer{p}
	}
	last := p.Last()
	if _, err := parseIndex(last); err == nil || last == EndOfArray {
		return []Pointer{p, p.Parent()}
	}
	return []Pointer{p}
}
