// Package load reads record definitions for code generation.
//
// Definitions are plain YAML:
//
//	package: model
//	records:
//	  - name: Person
//	    fields:
//	      - {name: id, type: uuid}
//	      - {name: name, type: string}
//	      - {name: birthday, type: time}
//	      - {name: nickname, type: string, transient: true}
//
// Field types use the closed persistable set: uuid, time, string,
// duration, int, float, bool. Anything else fails with an
// UnsupportedTypeError at load time.
package load

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/go-recs/recs"
	"github.com/go-recs/recs/schema/field"
)

// Spec is a parsed definition file.
type Spec struct {
	// Package is the Go package name of the generated file.
	Package string `yaml:"package"`
	// Records are the record type definitions, in file order.
	Records []*Record `yaml:"records"`
}

// Record defines one record type.
type Record struct {
	// Name is the Go type name, e.g. "Person".
	Name string `yaml:"name"`
	// Table overrides the default table name (lowercase name + "s").
	Table string `yaml:"table,omitempty"`
	// Fields are the field definitions, in declaration order.
	Fields []*Field `yaml:"fields"`
}

// Field defines one record field.
type Field struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Transient bool   `yaml:"transient,omitempty"`
	Comment   string `yaml:"comment,omitempty"`
}

// FieldType resolves the semantic type of the field definition.
func (f *Field) FieldType() (field.Type, error) {
	switch f.Type {
	case "uuid":
		return field.TypeUUID, nil
	case "time":
		return field.TypeTime, nil
	case "string":
		return field.TypeString, nil
	case "duration":
		return field.TypeDuration, nil
	case "int", "int64":
		return field.TypeInt, nil
	case "float":
		return field.TypeFloat, nil
	case "bool":
		return field.TypeBool, nil
	}
	return field.TypeInvalid, &recs.UnsupportedTypeError{Field: f.Name, Type: f.Type}
}

var (
	typeNameRe  = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
	fieldNameRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	pkgNameRe   = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// Parse reads and validates a definition stream.
func Parse(r io.Reader) (*Spec, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("load: parse definitions: %w", err)
	}
	if err := spec.validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Open reads and validates a definition file.
func Open(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func (s *Spec) validate() error {
	if !pkgNameRe.MatchString(s.Package) {
		return fmt.Errorf("load: invalid package name %q", s.Package)
	}
	if len(s.Records) == 0 {
		return fmt.Errorf("load: no records defined")
	}
	for _, r := range s.Records {
		if !typeNameRe.MatchString(r.Name) {
			return fmt.Errorf("load: invalid record name %q", r.Name)
		}
		if len(r.Fields) == 0 {
			return fmt.Errorf("load: record %s has no fields", r.Name)
		}
		seen := make(map[string]struct{}, len(r.Fields))
		for _, f := range r.Fields {
			if !fieldNameRe.MatchString(f.Name) {
				return fmt.Errorf("load: record %s: invalid field name %q", r.Name, f.Name)
			}
			if _, dup := seen[f.Name]; dup {
				return fmt.Errorf("load: record %s: duplicate field %q", r.Name, f.Name)
			}
			seen[f.Name] = struct{}{}
			if _, err := f.FieldType(); err != nil {
				return fmt.Errorf("load: record %s: %w", r.Name, err)
			}
		}
	}
	return nil
}
