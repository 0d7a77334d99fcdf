package jsonpatch

import (
	"testing"

	evanphx "github.com/evanphx/json-patch/v5"

	"github.com/brunoga/jsonpatch/value"
)

// Patches that every RFC 6902 implementation must agree on.
func TestApply_MatchesEvanphx(t *testing.T) {
	tests := []struct {
		doc, patch string
	}{
		{`{"foo":"bar"}`, `[{"op":"add","path":"/baz","value":"qux"}]`},
		{`{"foo":["bar","baz"]}`, `[{"op":"add","path":"/foo/1","value":"qux"}]`},
		{`{"foo":["bar","baz"]}`, `[{"op":"add","path":"/foo/-","value":"qux"}]`},
		{`{"baz":"qux","foo":"bar"}`, `[{"op":"remove","path":"/baz"}]`},
		{`{"foo":["bar","qux","baz"]}`, `[{"op":"remove","path":"/foo/1"}]`},
		{`{"baz":"qux","foo":"bar"}`, `[{"op":"replace","path":"/baz","value":"boo"}]`},
		{`{"foo":{"bar":"baz","waldo":"fred"},"qux":{"corge":"grault"}}`, `[{"op":"move","from":"/foo/waldo","path":"/qux/thud"}]`},
		{`{"foo":["all","grass","cows","eat"]}`, `[{"op":"move","from":"/foo/1","path":"/foo/3"}]`},
		{`{"a":{"b":[1,2]}}`, `[{"op":"copy","from":"/a/b","path":"/c"},{"op":"add","path":"/c/0","value":0}]`},
		{`{"baz":"qux","foo":["a",2,"c"]}`, `[{"op":"test","path":"/baz","value":"qux"},{"op":"test","path":"/foo/1","value":2}]`},
		{`{"foo":"bar"}`, `[{"op":"add","path":"/child","value":{"grandchild":{}}}]`},
		{`{"/":1,"~":2}`, `[{"op":"replace","path":"/~1","value":3},{"op":"remove","path":"/~0"}]`},
		{`{"foo":["bar"]}`, `[{"op":"add","path":"/foo/-","value":["abc","def"]}]`},
	}
	pt := NewPatcher(WithEndOfArray())
	for _, tt := range tests {
		t.Run(tt.patch, func(t *testing.T) {
			ref, err := evanphx.DecodePatch([]byte(tt.patch))
			if err != nil {
				t.Fatalf("evanphx.DecodePatch failed: %v", err)
			}
			refOut, err := ref.Apply([]byte(tt.doc))
			if err != nil {
				t.Fatalf("evanphx Apply failed: %v", err)
			}

			p := MustParsePatch(tt.patch)
			got, err := pt.Apply(p, value.MustParse(tt.doc))
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}

			want, err := value.Parse(refOut)
			if err != nil {
				t.Fatalf("parsing evanphx output %s: %v", refOut, err)
			}
			if !value.Equal(got, want) {
				t.Errorf("Apply = %s, evanphx = %s", got, want)
			}
		})
	}
}
