package templates

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/printerm/printerm/pkg/directive"
	"github.com/printerm/printerm/pkg/errors"
)

// UnmarshalYAML decodes a variable declaration, defaulting the
// required flag to true when the key is omitted.
func (v *Variable) UnmarshalYAML(node *yaml.Node) error {
	type plain Variable
	raw := plain{Required: true}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*v = Variable(raw)
	return nil
}

// parseTemplate decodes and validates a single template definition.
// Unknown fields anywhere in the document, including style keys, are
// rejected.
func parseTemplate(data []byte) (*Template, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var tmpl Template
	if err := dec.Decode(&tmpl); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrTemplateSchema, "Template definition is empty")
		}
		return nil, errors.Wrap(err, errors.ErrTemplateSchema, "Invalid template definition")
	}
	if err := validate(&tmpl); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// validate checks the decoded definition and compiles segment text
// into directive programs.
func validate(t *Template) error {
	if t.Name == "" {
		return errors.New(errors.ErrTemplateSchema, "Template definition is missing a name")
	}
	if len(t.Segments) == 0 {
		return errors.Newf(errors.ErrTemplateSchema, "Template '%s' has no segments", t.Name)
	}

	declared := make(map[string]bool, len(t.Variables))
	for _, v := range t.Variables {
		if v.Name == "" {
			return errors.Newf(errors.ErrTemplateSchema,
				"Template '%s' declares a variable without a name", t.Name)
		}
		if !directive.IsIdentifier(v.Name) {
			return errors.Newf(errors.ErrTemplateSchema,
				"Template '%s' variable '%s' is not a valid identifier", t.Name, v.Name)
		}
		if declared[v.Name] {
			return errors.Newf(errors.ErrTemplateSchema,
				"Template '%s' declares variable '%s' more than once", t.Name, v.Name)
		}
		declared[v.Name] = true
	}

	for i := range t.Segments {
		seg := &t.Segments[i]
		if err := seg.Styles.Validate(); err != nil {
			return errors.Wrapf(err, errors.ErrTemplateSchema,
				"Template '%s' segment %d has an invalid style", t.Name, i)
		}
		prog, err := directive.Parse(seg.Text)
		if err != nil {
			return errors.Wrapf(err, errors.ErrTemplateSyntax,
				"Template '%s' segment %d", t.Name, i).WithDetail("segment", i)
		}
		seg.program = prog
		for _, ref := range prog.Variables() {
			if !declared[ref] {
				return errors.Newf(errors.ErrTemplateSchema,
					"Template '%s' segment %d references undeclared variable '%s'",
					t.Name, i, ref)
			}
		}
	}
	return nil
}

// LoadTemplate loads and validates a template definition file.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateSchema,
			"Cannot read template file %s", path)
	}
	tmpl, err := parseTemplate(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.GetErrorCode(err),
			"Template file %s is invalid", path)
	}
	tmpl.Source = path
	return tmpl, nil
}

// LoadTemplatesFromDir loads every .yaml/.yml definition in dir, in
// file name order. A missing directory yields an empty result; a
// malformed definition fails the whole load.
func LoadTemplatesFromDir(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrInternal,
			"Cannot read template directory %s", dir)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	templates := make([]*Template, 0, len(names))
	for _, name := range names {
		tmpl, err := LoadTemplate(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}
