package jsonpatch

import (
	"errors"
	"fmt"
)

// Pointer parse errors.
var (
	ErrMissingDelimiter       = errors.New("JSON pointer values are delimited by a delimiter character")
	ErrMustStartWithDelimiter = errors.New("a JSON pointer must start with a delimiter character")
	ErrEmptyReferenceToken    = errors.New("every reference token in a JSON pointer must not be empty")
)

// Patch parse errors.
var (
	ErrInvalidJSONFormat  = errors.New("patch is not a valid JSON text")
	ErrBadStringEncoding  = errors.New("patch string encoding must be UTF-8")
	ErrEmptyPatchArray    = errors.New("patch cannot be an empty array")
	ErrInvalidRootElement = errors.New("patch must be an object or an array")
	ErrInvalidElement     = errors.New("patch operation must be an object")
	ErrMissingOperation   = errors.New("patch must include 'op' element")
	ErrInvalidOperation   = errors.New("patch 'op' value is invalid")
	ErrMissingPath        = errors.New("patch must include 'path' element")
	ErrMissingFrom        = errors.New("patch is missing 'from' element")
	ErrMissingValue       = errors.New("patch is missing 'value' element")
)

// Apply errors.
var (
	ErrPathNotFound          = errors.New("path not found")
	ErrArrayIndexOutOfBounds = errors.New("array index out of bounds")
	ErrInvalidIndex          = errors.New("invalid array index")
	ErrInvalidJSON           = errors.New("invalid JSON: cannot traverse into a scalar")
	ErrTestFailed            = errors.New("test failed")
	ErrRemoveRoot            = errors.New("cannot remove the document root")
	ErrMoveIntoDescendant    = errors.New("cannot move a value into one of its descendants")
)

// OperationError reports which operation of a patch failed.
type OperationError struct {
	// Index is the position of the operation in the patch.
	Index int
	Op    Operation
	Err   error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("operation %d (%s %s): %v", e.Index, e.Op.Kind(), e.Op.Target(), e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
