package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

var (
	// ErrInvalidUTF8 is returned when the input text is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("text is not valid UTF-8")

	// ErrSyntax is returned when the input text is not a JSON text.
	ErrSyntax = errors.New("invalid JSON text")
)

// Parse decodes a single JSON text. A \u escape of a lone UTF-16 surrogate
// has no UTF-8 form and is rejected with ErrSyntax.
func Parse(data []byte) (Value, error) {
	if !utf8.Valid(data) {
		return nil, ErrInvalidUTF8
	}
	if !gjson.ValidBytes(data) {
		return nil, ErrSyntax
	}
	return fromResult(gjson.ParseBytes(data))
}

// ParseString decodes a single JSON text held in a string.
func ParseString(s string) (Value, error) {
	return Parse([]byte(s))
}

// MustParse is like Parse but panics on error. It is meant for literals in
// tests and examples.
func MustParse(s string) Value {
	v, err := ParseString(s)
	if err != nil {
		panic(fmt.Sprintf("value: MustParse(%q): %v", s, err))
	}
	return v
}

func fromResult(r gjson.Result) (Value, error) {
	switch r.Type {
	case gjson.Null:
		return Null{}, nil
	case gjson.False:
		return Bool(false), nil
	case gjson.True:
		return Bool(true), nil
	case gjson.Number:
		return ParseNumber(r.Raw)
	case gjson.String:
		if err := checkSurrogates(r.Raw); err != nil {
			return nil, err
		}
		return String(r.Str), nil
	case gjson.JSON:
		if r.IsArray() {
			return arrayFromResult(r)
		}
		if r.IsObject() {
			return objectFromResult(r)
		}
	}
	return nil, fmt.Errorf("%w: unexpected token %q", ErrSyntax, r.Raw)
}

func arrayFromResult(r gjson.Result) (Value, error) {
	var (
		elems []Value
		err   error
	)
	r.ForEach(func(_, elem gjson.Result) bool {
		var v Value
		v, err = fromResult(elem)
		if err != nil {
			return false
		}
		elems = append(elems, v)
		return true
	})
	if err != nil {
		return nil, err
	}
	return Array{elems: elems}, nil
}

func objectFromResult(r gjson.Result) (Value, error) {
	var (
		members []Member
		err     error
	)
	r.ForEach(func(key, elem gjson.Result) bool {
		if err = checkSurrogates(key.Raw); err != nil {
			return false
		}
		var v Value
		v, err = fromResult(elem)
		if err != nil {
			return false
		}
		members = append(members, Member{Key: key.String(), Value: v})
		return true
	})
	if err != nil {
		return nil, err
	}
	return NewObject(members...), nil
}

// checkSurrogates reports an escaped surrogate in the raw string literal
// raw that is not part of a high-low pair.
func checkSurrogates(raw string) error {
	if !strings.Contains(raw, `\u`) {
		return nil
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' {
			continue
		}
		i++
		if i >= len(raw) || raw[i] != 'u' {
			continue
		}
		r, ok := hexRune(raw, i+1)
		if !ok {
			return fmt.Errorf("%w: bad escape in %s", ErrSyntax, raw)
		}
		i += 4
		if !utf16.IsSurrogate(r) {
			continue
		}
		if r < 0xdc00 && i+2 < len(raw) && raw[i+1] == '\\' && raw[i+2] == 'u' {
			if low, ok := hexRune(raw, i+3); ok && low >= 0xdc00 && low <= 0xdfff {
				i += 6
				continue
			}
		}
		return fmt.Errorf("%w: lone surrogate escape in %s", ErrSyntax, raw)
	}
	return nil
}

// hexRune decodes the four hex digits of a \u escape starting at s[i].
func hexRune(s string, i int) (rune, bool) {
	if i+4 > len(s) {
		return 0, false
	}
	n, err := strconv.ParseUint(s[i:i+4], 16, 16)
	if err != nil {
		return 0, false
	}
	return rune(n), true
}

// Marshal encodes v as compact JSON text.
func Marshal(v Value) ([]byte, error) {
	return orNull(v).MarshalJSON()
}

// MarshalIndent encodes v as indented JSON text.
func MarshalIndent(v Value, prefix, indent string) ([]byte, error) {
	data, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	// Encode terminates every value with a newline.
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}
