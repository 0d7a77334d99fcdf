package jsonpatch

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/brunoga/jsonpatch/value"
)

// Patcher applies patches to documents. A Patcher is immutable and safe for
// concurrent use.
type Patcher struct {
	e engine
}

// NewPatcher returns a Patcher configured by opts.
func NewPatcher(opts ...Option) *Patcher {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	return &Patcher{e: engine{config: cfg}}
}

var defaultPatcher = NewPatcher()

// Apply applies p to doc with the default options.
func Apply(p Patch, doc value.Value) (value.Value, error) {
	return defaultPatcher.Apply(p, doc)
}

// Apply applies the operations of p to doc in order and returns the
// resulting document. If any operation fails no document is returned and
// the error is an *OperationError. doc itself is never modified.
func (pt *Patcher) Apply(p Patch, doc value.Value) (value.Value, error) {
	log := pt.e.log
	if doc == nil {
		doc = value.Null{}
	}
	for i, op := range p.ops {
		next, err := op.apply(&pt.e, doc)
		if err != nil {
			log.Error(err, "patch operation failed", "index", i, "op", op.Kind(), "path", op.Target().String())
			return nil, &OperationError{Index: i, Op: op, Err: err}
		}
		if log.V(1).Enabled() {
			kv := []any{"index", i, "op", op.Kind(), "path", op.Target().String()}
			if from, ok := operationSource(op); ok {
				kv = append(kv, "from", from.String())
			}
			log.V(1).Info("applied patch operation", kv...)
		}
		doc = next
	}
	return doc, nil
}

// ApplyJSON parses both the patch and the document, applies the patch and
// encodes the result.
func (pt *Patcher) ApplyJSON(patch, doc []byte) ([]byte, error) {
	p, err := ParsePatch(patch)
	if err != nil {
		return nil, err
	}
	d, err := value.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	res, err := pt.Apply(p, d)
	if err != nil {
		return nil, err
	}
	return value.Marshal(res)
}

// ApplyJSON is Patcher.ApplyJSON with the default options.
func ApplyJSON(patch, doc []byte) ([]byte, error) {
	return defaultPatcher.ApplyJSON(patch, doc)
}

// ApplyAny applies p to a document held in the generic form produced by
// encoding/json and returns the result in the same form. doc is not
// modified.
func (pt *Patcher) ApplyAny(p Patch, doc any) (any, error) {
	d, err := value.FromAny(doc)
	if err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	res, err := pt.Apply(p, d)
	if err != nil {
		return nil, err
	}
	return value.Interface(res), nil
}

// ApplyAny is Patcher.ApplyAny with the default options.
func ApplyAny(p Patch, doc any) (any, error) {
	return defaultPatcher.ApplyAny(p, doc)
}

type engine struct {
	config
}

// transformFunc produces the new version of container given the last token
// of the pointer being resolved.
type transformFunc func(container value.Value, token string) (value.Value, error)

// resolveAndTransform walks doc along p and calls fn on the container that
// holds the addressed location. Every container on the way is rebuilt with
// the transformed child; everything else is shared with doc. p must not be
// the root pointer.
func resolveAndTransform(doc value.Value, p Pointer, fn transformFunc) (value.Value, error) {
	if p.Len() == 1 {
		return fn(doc, p.First())
	}

	token := p.First()
	switch d := doc.(type) {
	case value.Object:
		child, ok := d.Get(token)
		if !ok {
			return nil, fmt.Errorf("%w: member %q", ErrPathNotFound, token)
		}
		res, err := resolveAndTransform(child, p.Tail(), fn)
		if err != nil {
			return nil, err
		}
		return d.With(token, res), nil
	case value.Array:
		i, err := existingIndex(d, token)
		if errors.Is(err, ErrInvalidIndex) {
			// No element can be addressed through it.
			return nil, fmt.Errorf("%w: %w", ErrPathNotFound, err)
		}
		if err != nil {
			return nil, err
		}
		res, err := resolveAndTransform(d.At(i), p.Tail(), fn)
		if err != nil {
			return nil, err
		}
		return d.Set(i, res)
	default:
		return nil, fmt.Errorf("%w: %s at %q", ErrInvalidJSON, value.KindOf(doc), token)
	}
}

// get returns the value addressed by p.
func get(doc value.Value, p Pointer) (value.Value, error) {
	if p.IsRoot() {
		return doc, nil
	}
	var found value.Value
	_, err := resolveAndTransform(doc, p, func(container value.Value, token string) (value.Value, error) {
		switch c := container.(type) {
		case value.Object:
			v, ok := c.Get(token)
			if !ok {
				return nil, fmt.Errorf("%w: member %q", ErrPathNotFound, token)
			}
			found = v
		case value.Array:
			i, err := existingIndex(c, token)
			if err != nil {
				return nil, err
			}
			found = c.At(i)
		default:
			return nil, fmt.Errorf("%w: %s at %q", ErrInvalidJSON, value.KindOf(container), token)
		}
		return container, nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// parseIndex decodes an array index token. Only "0" and digit strings
// without a leading zero are accepted.
func parseIndex(token string) (int, error) {
	if token == "" || (len(token) > 1 && token[0] == '0') {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIndex, token)
	}
	for i := 0; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidIndex, token)
		}
	}
	i, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIndex, token)
	}
	return i, nil
}

// existingIndex decodes token as the index of an element of a.
func existingIndex(a value.Array, token string) (int, error) {
	i, err := parseIndex(token)
	if err != nil {
		return 0, err
	}
	if i >= a.Len() {
		return 0, fmt.Errorf("%w: index %d of array with %d elements", ErrPathNotFound, i, a.Len())
	}
	return i, nil
}
