package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brunoga/jsonpatch/internal/version"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_doMain(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.json", `{"foo":["bar","baz"]}`)
	docYAML := writeFile(t, dir, "doc.yaml", "foo:\n- bar\n- baz\n")
	patch := writeFile(t, dir, "patch.json", `[{"op":"add","path":"/foo/1","value":"qux"}]`)
	patchYAML := writeFile(t, dir, "patch.yml", "- op: add\n  path: /foo/1\n  value: qux\n")
	appendPatch := writeFile(t, dir, "append.json", `[{"op":"add","path":"/foo/-","value":"qux"}]`)
	failing := writeFile(t, dir, "failing.json", `[{"op":"test","path":"/foo/0","value":"nope"}]`)
	from := writeFile(t, dir, "from.json", `{"a":1,"b":"x"}`)
	missing := filepath.Join(dir, "missing.json")
	to := writeFile(t, dir, "to.json", `{"a":2,"b":"x"}`)

	tests := []struct {
		name    string
		args    []string
		stdin   string
		expOut  string
		expErr  string
		expCode int
	}{
		{
			name:   "version",
			args:   []string{"version"},
			expOut: "jsonpatch: " + version.Version + "\n",
		},
		{
			name:   "apply",
			args:   []string{"apply", "--patch", patch, doc},
			expOut: `{"foo":["bar","qux","baz"]}` + "\n",
		},
		{
			name:   "apply stdin",
			args:   []string{"apply", "-p", patch},
			stdin:  `{"foo":["bar","baz"]}`,
			expOut: `{"foo":["bar","qux","baz"]}` + "\n",
		},
		{
			name:   "apply yaml",
			args:   []string{"apply", "--patch", patchYAML, docYAML},
			expOut: "foo:\n- bar\n- qux\n- baz\n",
		},
		{
			name:   "apply forced json output",
			args:   []string{"--format", "json", "apply", "--patch", patch, doc},
			expOut: `{"foo":["bar","qux","baz"]}` + "\n",
		},
		{
			name:    "apply end of array disabled",
			args:    []string{"apply", "--patch", appendPatch, doc},
			expErr:  "invalid array index",
			expCode: 1,
		},
		{
			name:   "apply end of array",
			args:   []string{"apply", "--end-of-array", "--patch", appendPatch, doc},
			expOut: `{"foo":["bar","baz","qux"]}` + "\n",
		},
		{
			name: "test",
			args: []string{"test", "--patch", patch, doc},
		},
		{
			name:    "test failing",
			args:    []string{"test", "--patch", failing, doc},
			expErr:  "error: patch does not apply: operation 0",
			expCode: 1,
		},
		{
			name:    "bad document",
			args:    []string{"apply", "--patch", patch},
			stdin:   `{"foo":`,
			expErr:  "stdin: ",
			expCode: 1,
		},
		{
			name:    "unknown command",
			args:    []string{"frobnicate"},
			expErr:  "unexpected argument",
			expCode: 2,
		},
		{
			name:    "missing patch flag",
			args:    []string{"apply", doc},
			expErr:  "missing flags",
			expCode: 2,
		},
		{
			name:    "patch file does not exist",
			args:    []string{"apply", "--patch", missing, doc},
			expErr:  "error: ",
			expCode: 2,
		},
		{
			name:    "bad format",
			args:    []string{"--format", "xml", "version"},
			expErr:  "--format",
			expCode: 2,
		},
		{
			name:   "diff",
			args:   []string{"diff", from, to},
			expOut: `[{"op":"replace","path":"/a","value":2}]` + "\n",
		},
		{
			name:   "diff equal",
			args:   []string{"diff", from, from},
			expOut: "[]\n",
		},
		{
			name:   "diff invertible",
			args:   []string{"diff", "--invertible", from, to},
			expOut: `[{"op":"test","path":"/a","value":1},{"op":"replace","path":"/a","value":2}]` + "\n",
		},
		{
			name:   "diff yaml",
			args:   []string{"--format", "yaml", "diff", from, to},
			expOut: "- op: replace\n  path: /a\n  value: 2\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}
			code := doMain(strings.NewReader(tt.stdin), stdout, stderr, tt.args)
			require.Equal(t, tt.expCode, code, "stderr: %s", stderr)
			require.Equal(t, tt.expOut, stdout.String())
			if tt.expErr != "" {
				require.Contains(t, stderr.String(), tt.expErr)
			} else {
				require.Empty(t, stderr.String())
			}
		})
	}
}

func Test_doMain_pretty(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.json", `{"foo":{"bar":1}}`)
	patch := writeFile(t, dir, "patch.json", `[{"op":"add","path":"/foo/baz","value":2}]`)

	stdout := &bytes.Buffer{}
	code := doMain(strings.NewReader(""), stdout, &bytes.Buffer{}, []string{"apply", "--pretty", "--patch", patch, doc})
	require.Equal(t, 0, code)
	require.Contains(t, stdout.String(), "\n  \"foo\": {")
	require.Contains(t, stdout.String(), "\"baz\": 2")
}

func Test_doMain_env(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.txt", "foo:\n- bar\n")
	patch := writeFile(t, dir, "patch.txt", "- op: remove\n  path: /foo/0\n")

	t.Setenv("JSONPATCH_FORMAT", "yaml")
	t.Setenv("JSONPATCH_VERBOSE", "true")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := doMain(strings.NewReader(""), stdout, stderr, []string{"apply", "--patch", patch, doc})
	require.Equal(t, 0, code, "stderr: %s", stderr)
	require.Equal(t, "foo: []\n", stdout.String())
	require.Contains(t, stderr.String(), "applied patch operation")
	require.Contains(t, stderr.String(), "/foo/0")
}

func Test_doMain_diffThenApply(t *testing.T) {
	dir := t.TempDir()
	from := writeFile(t, dir, "from.json", `{"a":1,"list":[1,2]}`)
	to := writeFile(t, dir, "to.json", `{"a":1,"b":null,"list":[1,null,2]}`)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := doMain(strings.NewReader(""), stdout, stderr, []string{"diff", from, to})
	require.Equal(t, 0, code, "stderr: %s", stderr)
	patch := writeFile(t, dir, "patch.json", stdout.String())

	stdout.Reset()
	code = doMain(strings.NewReader(""), stdout, stderr, []string{"apply", "--patch", patch, from})
	require.Equal(t, 0, code, "stderr: %s", stderr)
	require.JSONEq(t, `{"a":1,"b":null,"list":[1,null,2]}`, stdout.String())
}
