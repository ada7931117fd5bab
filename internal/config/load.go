package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Error is a configuration error: a missing or malformed parameter. Pos
// points into the parameter file when the position is known.
type Error struct {
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// Load reads, schema-validates, and decodes the parameter file. All schema
// violations are collected and returned together so the user can fix the
// file in one pass.
func Load(path string) (*Params, []error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []error{&Error{Message: fmt.Sprintf("read parameter file: %v", err)}}
	}

	if errs := Validate(path, data); len(errs) > 0 {
		return nil, errs
	}

	var p Params
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, []error{&Error{Message: fmt.Sprintf("decode parameter file: %v", err)}}
	}
	return &p, nil
}

// Validate checks the raw YAML against the embedded CUE schema. It returns
// one error per violation, each naming the offending field.
func Validate(path string, data []byte) []error {
	ctx := cuecontext.New()

	schemaVal := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schemaVal.Err(); err != nil {
		return []error{fmt.Errorf("compile parameter schema: %w", err)}
	}
	schema := schemaVal.LookupPath(cue.ParsePath("#Params"))
	if err := schema.Err(); err != nil {
		return []error{fmt.Errorf("parameter schema missing #Params: %w", err)}
	}

	file, err := cueyaml.Extract(path, data)
	if err != nil {
		return []error{&Error{Message: fmt.Sprintf("parse yaml: %v", err)}}
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return cueErrors(err)
	}

	// Concrete validation is what turns "field not present" into an error
	// naming the missing field.
	if err := schema.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return cueErrors(err)
	}
	return nil
}

// cueErrors flattens a CUE error list into positioned config errors.
func cueErrors(err error) []error {
	var out []error
	for _, e := range cueerrors.Errors(err) {
		out = append(out, &Error{Message: e.Error(), Pos: e.Position()})
	}
	if len(out) == 0 {
		out = append(out, &Error{Message: err.Error()})
	}
	return out
}

// CheckInputs verifies that every referenced input file exists. The table
// name after '#' in a SQLite path is not checked here; opening the database
// is the authoritative check.
func (p *Params) CheckInputs() error {
	paths := []struct{ name, path string }{
		{"networks.build", p.Networks.Build},
		{"networks.nobuild", p.Networks.NoBuild},
	}
	if p.Costs != "" {
		paths = append(paths, struct{ name, path string }{"costs", p.Costs})
	}
	for _, in := range paths {
		file, _, _ := strings.Cut(in.path, "#")
		if _, err := os.Stat(file); err != nil {
			return &Error{Message: fmt.Sprintf("%s: input not found: %s", in.name, file)}
		}
	}
	return nil
}
