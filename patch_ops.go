package jsonpatch

import (
	"fmt"

	"github.com/brunoga/jsonpatch/value"
)

func (o AddOp) apply(e *engine, doc value.Value) (value.Value, error) {
	return e.add(doc, o.Path, o.Value)
}

func (o RemoveOp) apply(e *engine, doc value.Value) (value.Value, error) {
	return e.remove(doc, o.Path)
}

func (o ReplaceOp) apply(e *engine, doc value.Value) (value.Value, error) {
	if o.Path.IsRoot() {
		return orNull(o.Value), nil
	}
	return resolveAndTransform(doc, o.Path, func(container value.Value, token string) (value.Value, error) {
		switch c := container.(type) {
		case value.Object:
			if !c.Has(token) {
				return nil, fmt.Errorf("%w: member %q", ErrPathNotFound, token)
			}
			return c.With(token, o.Value), nil
		case value.Array:
			i, err := existingIndex(c, token)
			if err != nil {
				return nil, err
			}
			return c.Set(i, o.Value)
		}
		return nil, fmt.Errorf("%w: %s at %q", ErrInvalidJSON, value.KindOf(container), token)
	})
}

func (o MoveOp) apply(e *engine, doc value.Value) (value.Value, error) {
	if !e.allowMoveIntoDescendant && !o.Path.Equal(o.From) && o.Path.HasPrefix(o.From) {
		return nil, fmt.Errorf("%w: %q is inside %q", ErrMoveIntoDescendant, o.Path, o.From)
	}
	v, err := get(doc, o.From)
	if err != nil {
		return nil, fmt.Errorf("move from %s failed: %w", o.From, err)
	}
	if o.Path.Equal(o.From) {
		return doc, nil
	}
	doc, err = e.remove(doc, o.From)
	if err != nil {
		return nil, fmt.Errorf("move from %s failed: %w", o.From, err)
	}
	doc, err = e.add(doc, o.Path, v)
	if err != nil {
		return nil, fmt.Errorf("move to %s failed: %w", o.Path, err)
	}
	return doc, nil
}

func (o CopyOp) apply(e *engine, doc value.Value) (value.Value, error) {
	v, err := get(doc, o.From)
	if err != nil {
		return nil, fmt.Errorf("copy from %s failed: %w", o.From, err)
	}
	doc, err = e.add(doc, o.Path, v)
	if err != nil {
		return nil, fmt.Errorf("copy to %s failed: %w", o.Path, err)
	}
	return doc, nil
}

func (o TestOp) apply(e *engine, doc value.Value) (value.Value, error) {
	if o.Value == nil {
		return nil, ErrMissingValue
	}
	got, err := get(doc, o.Path)
	if err != nil {
		return nil, err
	}
	if !value.Equal(got, o.Value) {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrTestFailed, o.Value, got)
	}
	return doc, nil
}

func (e *engine) add(doc value.Value, p Pointer, v value.Value) (value.Value, error) {
	if p.IsRoot() {
		return orNull(v), nil
	}
	return resolveAndTransform(doc, p, func(container value.Value, token string) (value.Value, error) {
		switch c := container.(type) {
		case value.Object:
			return c.With(token, v), nil
		case value.Array:
			if token == EndOfArray && e.endOfArray {
				return c.Append(v), nil
			}
			i, err := parseIndex(token)
			if err != nil {
				return nil, err
			}
			if i > c.Len() {
				return nil, fmt.Errorf("%w: index %d of array with %d elements", ErrArrayIndexOutOfBounds, i, c.Len())
			}
			return c.Insert(i, v)
		}
		return nil, fmt.Errorf("%w: %s at %q", ErrInvalidJSON, value.KindOf(container), token)
	})
}

func (e *engine) remove(doc value.Value, p Pointer) (value.Value, error) {
	if p.IsRoot() {
		return nil, ErrRemoveRoot
	}
	return resolveAndTransform(doc, p, func(container value.Value, token string) (value.Value, error) {
		switch c := container.(type) {
		case value.Object:
			res, ok := c.Without(token)
			if !ok {
				return nil, fmt.Errorf("%w: member %q", ErrPathNotFound, token)
			}
			return res, nil
		case value.Array:
			i, err := existingIndex(c, token)
			if err != nil {
				return nil, err
			}
			return c.Remove(i)
		}
		return nil, fmt.Errorf("%w: %s at %q", ErrInvalidJSON, value.KindOf(container), token)
	})
}

func orNull(v value.Value) value.Value {
	if v == nil {
		return value.Null{}
	}
	return v
}
