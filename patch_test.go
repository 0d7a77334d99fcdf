package jsonpatch

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/brunoga/jsonpatch/value"
)

func TestParsePatch_SingleObject(t *testing.T) {
	p, err := ParsePatchString(`{"op":"add","path":"/baz","value":"qux"}`)
	if err != nil {
		t.Fatalf("ParsePatchString failed: %v", err)
	}
	if p.Len() != 1 {
		t.Fatalf("expected 1 operation, got %d", p.Len())
	}
	op, ok := p.Operations()[0].(AddOp)
	if !ok {
		t.Fatalf("expected AddOp, got %T", p.Operations()[0])
	}
	if op.Path.String() != "/baz" || !value.Equal(op.Value, value.String("qux")) {
		t.Errorf("unexpected operation %s", op)
	}
}

func TestParsePatch_AllKinds(t *testing.T) {
	p := MustParsePatch(`[
		{"op":"add","path":"/a","value":1},
		{"op":"remove","path":"/b"},
		{"op":"replace","path":"/c","value":[1]},
		{"op":"move","from":"/d","path":"/e"},
		{"op":"copy","from":"/f","path":"/g"},
		{"op":"test","path":"/h","value":{"x":null}}
	]`)

	want := []OpKind{OpAdd, OpRemove, OpReplace, OpMove, OpCopy, OpTest}
	ops := p.Operations()
	if len(ops) != len(want) {
		t.Fatalf("expected %d operations, got %d", len(want), len(ops))
	}
	for i, op := range ops {
		if op.Kind() != want[i] {
			t.Errorf("operation %d: kind %s, want %s", i, op.Kind(), want[i])
		}
	}
	if mv := ops[3].(MoveOp); mv.From.String() != "/d" || mv.Path.String() != "/e" {
		t.Errorf("move parsed as %s", mv)
	}
	if cp := ops[4].(CopyOp); cp.From.String() != "/f" || cp.Path.String() != "/g" {
		t.Errorf("copy parsed as %s", cp)
	}
}

func TestParsePatch_Errors(t *testing.T) {
	tests := []struct {
		name  string
		patch string
		want  error
	}{
		{"empty array", `[]`, ErrEmptyPatchArray},
		{"string root", `"add"`, ErrInvalidRootElement},
		{"number root", `1`, ErrInvalidRootElement},
		{"null root", `null`, ErrInvalidRootElement},
		{"not json", `{"op":`, ErrInvalidJSONFormat},
		{"element not object", `[{"op":"remove","path":"/a"}, 1]`, ErrInvalidElement},
		{"missing op", `{"path":"/a"}`, ErrMissingOperation},
		{"op not string", `{"op":1,"path":"/a"}`, ErrMissingOperation},
		{"unknown op", `{"op":"merge","path":"/a"}`, ErrInvalidOperation},
		{"missing path", `{"op":"remove"}`, ErrMissingPath},
		{"path not string", `{"op":"remove","path":3}`, ErrMissingPath},
		{"bad path", `{"op":"remove","path":"a"}`, ErrMissingDelimiter},
		{"path without leading slash", `{"op":"remove","path":"a/b"}`, ErrMustStartWithDelimiter},
		{"empty token", `{"op":"remove","path":"/a//b"}`, ErrEmptyReferenceToken},
		{"move without from", `{"op":"move","path":"/a"}`, ErrMissingFrom},
		{"copy without from", `{"op":"copy","path":"/a"}`, ErrMissingFrom},
		{"bad from", `{"op":"copy","from":"x","path":"/a"}`, ErrMissingDelimiter},
		{"add without value", `{"op":"add","path":"/a"}`, ErrMissingValue},
		{"add with null value", `{"op":"add","path":"/a","value":null}`, ErrMissingValue},
		{"replace without value", `{"op":"replace","path":"/a"}`, ErrMissingValue},
		{"second op invalid", `[{"op":"remove","path":"/a"},{"op":"add","path":"/b"}]`, ErrMissingValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePatchString(tt.patch)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParsePatchString(%s) error = %v, want %v", tt.patch, err, tt.want)
			}
		})
	}
}

func TestParsePatch_BadEncoding(t *testing.T) {
	_, err := ParsePatch([]byte{'{', '"', 0xc3, 0x28, '"', ':', '1', '}'})
	if !errors.Is(err, ErrBadStringEncoding) {
		t.Errorf("ParsePatch error = %v, want ErrBadStringEncoding", err)
	}
}

func TestParsePatch_IgnoresExtraMembers(t *testing.T) {
	p, err := ParsePatchString(`{"op":"remove","path":"/a","value":42,"from":"/b","comment":"x"}`)
	if err != nil {
		t.Fatalf("ParsePatchString failed: %v", err)
	}
	want := MustParsePatch(`{"op":"remove","path":"/a"}`)
	if !p.Equal(want) {
		t.Errorf("extra members changed the operation: %s", p)
	}
}

func TestParsePatch_TestWithoutValue(t *testing.T) {
	p, err := ParsePatchString(`{"op":"test","path":"/a"}`)
	if err != nil {
		t.Fatalf("test without value should parse: %v", err)
	}
	if op := p.Operations()[0].(TestOp); op.Value != nil {
		t.Errorf("expected nil value, got %s", op.Value)
	}

	p, err = ParsePatchString(`{"op":"test","path":"/a","value":null}`)
	if err != nil {
		t.Fatalf("test with null value should parse: %v", err)
	}
	if op := p.Operations()[0].(TestOp); op.Value == nil || op.Value.Kind() != value.KindNull {
		t.Errorf("expected null value, got %v", op.Value)
	}
}

func TestPatch_Equal(t *testing.T) {
	a := MustParsePatch(`[{"op":"add","path":"/a","value":{"x":1,"y":2}},{"op":"move","from":"/b","path":"/c"}]`)
	b := MustParsePatch(`[{"path":"/a","value":{"y":2,"x":1.0},"op":"add"},{"from":"/b","op":"move","path":"/c"}]`)
	if !a.Equal(b) {
		t.Errorf("equivalent patches reported different")
	}

	tests := []string{
		`[{"op":"add","path":"/a","value":{"x":1,"y":2}}]`,
		`[{"op":"add","path":"/a","value":{"x":1,"y":3}},{"op":"move","from":"/b","path":"/c"}]`,
		`[{"op":"add","path":"/a","value":{"x":1,"y":2}},{"op":"move","from":"/z","path":"/c"}]`,
		`[{"op":"add","path":"/a","value":{"x":1,"y":2}},{"op":"copy","from":"/b","path":"/c"}]`,
		`[{"op":"replace","path":"/a","value":{"x":1,"y":2}},{"op":"move","from":"/b","path":"/c"}]`,
	}
	for _, s := range tests {
		if a.Equal(MustParsePatch(s)) {
			t.Errorf("patch %s reported equal to %s", s, a)
		}
	}

	withValue := MustParsePatch(`{"op":"test","path":"/a","value":null}`)
	withoutValue := MustParsePatch(`{"op":"test","path":"/a"}`)
	if withValue.Equal(withoutValue) {
		t.Errorf("test with null value reported equal to test without value")
	}
}

func TestPatch_MarshalJSON(t *testing.T) {
	in := `[{"op":"add","path":"/a~1b","value":[1,"x"]},{"op":"remove","path":"/c"},{"op":"move","path":"/e","from":"/d"},{"op":"test","path":"/f"}]`
	p := MustParsePatch(in)

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `[{"op":"add","path":"/a~1b","value":[1,"x"]},{"op":"remove","path":"/c"},{"op":"move","path":"/e","from":"/d"},{"op":"test","path":"/f"}]`
	if string(data) != want {
		t.Errorf("Marshal = %s\nwant      %s", data, want)
	}

	var back Patch
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !back.Equal(p) {
		t.Errorf("patch changed across JSON: %s", back)
	}
}

func TestParsePatchYAML(t *testing.T) {
	p, err := ParsePatchYAML([]byte(`
- op: add
  path: /spec/replicas
  value: 3
- op: remove
  path: /metadata/labels/stale
`))
	if err != nil {
		t.Fatalf("ParsePatchYAML failed: %v", err)
	}
	want := MustParsePatch(`[{"op":"add","path":"/spec/replicas","value":3},{"op":"remove","path":"/metadata/labels/stale"}]`)
	if !p.Equal(want) {
		t.Errorf("ParsePatchYAML = %s", p)
	}
}

func TestNewPatch(t *testing.T) {
	if _, err := NewPatch(); !errors.Is(err, ErrEmptyPatchArray) {
		t.Errorf("NewPatch() error = %v", err)
	}
	if _, err := NewPatch(RemoveOp{Path: MustParsePointer("/a")}, nil); err == nil {
		t.Errorf("NewPatch with nil operation should fail")
	}
	p, err := NewPatch(RemoveOp{Path: MustParsePointer("/a")})
	if err != nil {
		t.Fatalf("NewPatch failed: %v", err)
	}
	if !p.Equal(MustParsePatch(`{"op":"remove","path":"/a"}`)) {
		t.Errorf("NewPatch = %s", p)
	}
}
