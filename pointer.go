package jsonpatch

import (
	"fmt"
	"slices"
	"strings"
)

const (
	delimiter = "/"

	// EndOfArray is the reference token RFC 6902 uses to address the
	// position after the last array element. It is only honored by "add"
	// when the Patcher is built with WithEndOfArray.
	EndOfArray = "-"
)

// Pointer is a parsed RFC 6901 JSON Pointer. The zero value is the root
// pointer, which addresses the whole document.
type Pointer struct {
	raw    string
	tokens []string
}

// ParsePointer parses raw as a JSON Pointer. Unlike RFC 6901, empty
// reference tokens are rejected.
func ParsePointer(raw string) (Pointer, error) {
	if raw == "" {
		return Pointer{}, nil
	}
	if !strings.Contains(raw, delimiter) {
		return Pointer{}, fmt.Errorf("%w: %q", ErrMissingDelimiter, raw)
	}
	if !strings.HasPrefix(raw, delimiter) {
		return Pointer{}, fmt.Errorf("%w: %q", ErrMustStartWithDelimiter, raw)
	}

	segments := strings.Split(raw, delimiter)[1:]
	tokens := make([]string, len(segments))
	for i, s := range segments {
		if s == "" {
			return Pointer{}, fmt.Errorf("%w: %q", ErrEmptyReferenceToken, raw)
		}
		tokens[i] = UnescapeToken(s)
	}
	return Pointer{raw: raw, tokens: tokens}, nil
}

// MustParsePointer is like ParsePointer but panics on error.
func MustParsePointer(raw string) Pointer {
	p, err := ParsePointer(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// NewPointer builds a pointer from unescaped reference tokens.
func NewPointer(tokens ...string) (Pointer, error) {
	var b strings.Builder
	for _, t := range tokens {
		if t == "" {
			return Pointer{}, ErrEmptyReferenceToken
		}
		b.WriteString(delimiter)
		b.WriteString(EscapeToken(t))
	}
	return Pointer{raw: b.String(), tokens: slices.Clone(tokens)}, nil
}

// EscapeToken escapes a reference token for use in a pointer string.
func EscapeToken(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	return strings.ReplaceAll(token, "/", "~1")
}

// UnescapeToken reverses EscapeToken. "~1" is decoded before "~0" so that
// "~01" becomes "~1" and not "/".
func UnescapeToken(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}

// String returns the pointer in its textual form.
func (p Pointer) String() string { return p.raw }

// Tokens returns a copy of the unescaped reference tokens.
func (p Pointer) Tokens() []string { return slices.Clone(p.tokens) }

// Len returns the number of reference tokens.
func (p Pointer) Len() int { return len(p.tokens) }

// IsRoot reports whether p addresses the whole document.
func (p Pointer) IsRoot() bool { return len(p.tokens) == 0 }

// Equal reports whether p and o have the same textual form.
func (p Pointer) Equal(o Pointer) bool { return p.raw == o.raw }

// First returns the first reference token. It panics on the root pointer.
func (p Pointer) First() string { return p.tokens[0] }

// Last returns the last reference token. It panics on the root pointer.
func (p Pointer) Last() string { return p.tokens[len(p.tokens)-1] }

// Tail returns the pointer made of every token after the first. The tail of
// a single token pointer, and of the root, is the root.
func (p Pointer) Tail() Pointer {
	if len(p.tokens) <= 1 {
		return Pointer{}
	}
	i := strings.Index(p.raw[1:], delimiter)
	return Pointer{raw: p.raw[i+1:], tokens: p.tokens[1:]}
}

// Parent returns the pointer to the container of the addressed location.
// The parent of the root is the root.
func (p Pointer) Parent() Pointer {
	if len(p.tokens) <= 1 {
		return Pointer{}
	}
	i := strings.LastIndex(p.raw, delimiter)
	return Pointer{raw: p.raw[:i], tokens: p.tokens[:len(p.tokens)-1]}
}

// HasPrefix reports whether every token of prefix is a leading token of p.
// Every pointer has the root as a prefix, and every pointer is a prefix of
// itself.
func (p Pointer) HasPrefix(prefix Pointer) bool {
	if len(prefix.tokens) > len(p.tokens) {
		return false
	}
	return slices.Equal(p.tokens[:len(prefix.tokens)], prefix.tokens)
}

// MarshalText implements encoding.TextMarshaler.
func (p Pointer) MarshalText() ([]byte, error) {
	return []byte(p.raw), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Pointer) UnmarshalText(text []byte) error {
	parsed, err := ParsePointer(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
