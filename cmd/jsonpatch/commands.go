package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/tidwall/pretty"

	"github.com/brunoga/jsonpatch"
	"github.com/brunoga/jsonpatch/value"
)

// env carries what the commands share.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	format string
	log    logr.Logger
}

func (e *env) patcher(endOfArray bool) *jsonpatch.Patcher {
	opts := []jsonpatch.Option{jsonpatch.WithLogger(e.log)}
	if endOfArray {
		opts = append(opts, jsonpatch.WithEndOfArray())
	}
	return jsonpatch.NewPatcher(opts...)
}

func (e *env) apply(c cmdApply) error {
	p, err := e.readPatch(c.Patch)
	if err != nil {
		return err
	}
	doc, err := e.readDocument(c.Document)
	if err != nil {
		return err
	}
	res, err := e.patcher(c.EndOfArray).Apply(p, doc)
	if err != nil {
		return err
	}
	return e.write(res, e.isYAML(c.Document), c.Pretty)
}

func (e *env) test(c cmdTest) error {
	p, err := e.readPatch(c.Patch)
	if err != nil {
		return err
	}
	doc, err := e.readDocument(c.Document)
	if err != nil {
		return err
	}
	if _, err := e.patcher(c.EndOfArray).Apply(p, doc); err != nil {
		return fmt.Errorf("patch does not apply: %w", err)
	}
	return nil
}

func (e *env) diff(c cmdDiff) error {
	from, err := e.readDocument(c.From)
	if err != nil {
		return err
	}
	to, err := e.readDocument(c.To)
	if err != nil {
		return err
	}

	var opts []jsonpatch.DiffOption
	if c.Factorize {
		opts = append(opts, jsonpatch.DiffFactorize())
	}
	if c.Invertible {
		opts = append(opts, jsonpatch.DiffInvertible())
	}
	if c.Rationalize {
		opts = append(opts, jsonpatch.DiffRationalize())
	}
	if c.LCS {
		opts = append(opts, jsonpatch.DiffLCS())
	}
	p, err := jsonpatch.Diff(from, to, opts...)
	if err != nil {
		return err
	}
	return e.write(p.Value(), e.isYAML(c.From), c.Pretty)
}

func (e *env) readPatch(path string) (jsonpatch.Patch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return jsonpatch.Patch{}, err
	}
	var p jsonpatch.Patch
	if e.isYAML(path) {
		p, err = jsonpatch.ParsePatchYAML(data)
	} else {
		p, err = jsonpatch.ParsePatch(data)
	}
	if err != nil {
		return jsonpatch.Patch{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// readDocument reads the document at path, or stdin if path is empty.
func (e *env) readDocument(path string) (value.Value, error) {
	var (
		data []byte
		err  error
	)
	name := path
	if path == "" {
		name = "stdin"
		data, err = io.ReadAll(e.stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	var doc value.Value
	if e.isYAML(path) {
		doc, err = value.ParseYAML(data)
	} else {
		doc, err = value.Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return doc, nil
}

func (e *env) isYAML(path string) bool {
	switch e.format {
	case "yaml":
		return true
	case "json":
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func (e *env) write(v value.Value, asYAML, indent bool) error {
	var (
		out []byte
		err error
	)
	switch {
	case asYAML:
		out, err = value.ToYAML(v)
	case indent:
		out, err = value.Marshal(v)
		out = pretty.Pretty(out)
	default:
		out, err = value.Marshal(v)
		out = append(out, '\n')
	}
	if err != nil {
		return err
	}
	_, err = e.stdout.Write(out)
	return err
}
