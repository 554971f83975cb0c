// Package gen emits Go record implementations from loaded definitions.
//
// For every record in a definition file it generates the struct, the
// shared schema variable, and the Schema/Values/Assign methods that
// satisfy the recs.Record interface. The generated code uses only the
// public API; hand-written implementations remain interchangeable
// with generated ones.
package gen

import (
	"io"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/go-recs/recs/compiler/load"
	"github.com/go-recs/recs/schema/field"
)

const (
	uuidPkg   = "github.com/google/uuid"
	schemaPkg = "github.com/go-recs/recs/schema"
	fieldPkg  = "github.com/go-recs/recs/schema/field"
)

// File renders the generated file for the definition spec.
func File(spec *load.Spec) (*jen.File, error) {
	f := jen.NewFile(spec.Package)
	f.HeaderComment("Code generated by recsgen. DO NOT EDIT.")
	for _, r := range spec.Records {
		if err := genRecord(f, spec, r); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Write renders the generated file for the definition spec to w.
func Write(w io.Writer, spec *load.Spec) error {
	f, err := File(spec)
	if err != nil {
		return err
	}
	return f.Render(w)
}

func genRecord(f *jen.File, spec *load.Spec, r *load.Record) error {
	types := make(map[string]field.Type, len(r.Fields))
	for _, fd := range r.Fields {
		t, err := fd.FieldType()
		if err != nil {
			return err
		}
		types[fd.Name] = t
	}

	// Struct definition.
	f.Commentf("%s is the record mapped to the %q table.", r.Name, tableName(r))
	f.Type().Id(r.Name).StructFunc(func(g *jen.Group) {
		for _, fd := range r.Fields {
			st := g.Id(goName(fd.Name)).Add(goType(types[fd.Name]))
			if fd.Transient {
				// Keep transient fields out of cached encodings too.
				st.Tag(map[string]string{"msgpack": "-"})
			}
			if fd.Comment != "" {
				st.Comment(fd.Comment)
			}
		}
	})

	// Shared schema variable.
	schemaVar := unexport(r.Name) + "Schema"
	decl := jen.Qual(schemaPkg, "New").Call(
		append([]jen.Code{jen.Lit(r.Name)}, fieldBuilders(r, types)...)...,
	)
	if r.Table != "" {
		decl = decl.Dot("Table").Call(jen.Lit(r.Table))
	}
	f.Var().Id(schemaVar).Op("=").Add(decl)

	recv := strings.ToLower(r.Name[:1])

	// Schema method.
	f.Commentf("Schema returns the shared schema of the %s type.", r.Name)
	f.Func().Params(jen.Op("*").Id(r.Name)).Id("Schema").Params().Op("*").Qual(schemaPkg, "Schema").Block(
		jen.Return(jen.Id(schemaVar)),
	)

	// Values method.
	f.Comment("Values returns the field values in schema declaration order.")
	f.Func().Params(jen.Id(recv).Op("*").Id(r.Name)).Id("Values").Params().Index().Any().Block(
		jen.Return(jen.Index().Any().ValuesFunc(func(g *jen.Group) {
			for _, fd := range r.Fields {
				g.Id(recv).Dot(goName(fd.Name))
			}
		})),
	)

	// Assign method.
	f.Comment("Assign sets the named field to the given decoded value.")
	f.Func().Params(jen.Id(recv).Op("*").Id(r.Name)).Id("Assign").
		Params(jen.Id("name").String(), jen.Id("value").Any()).Error().Block(
		jen.Switch(jen.Id("name")).BlockFunc(func(g *jen.Group) {
			for _, fd := range r.Fields {
				g.Case(jen.Lit(fd.Name)).Block(
					jen.List(jen.Id("v"), jen.Id("ok")).Op(":=").Id("value").Assert(goType(types[fd.Name])),
					jen.If(jen.Op("!").Id("ok")).Block(
						jen.Return(jen.Qual("fmt", "Errorf").Call(
							jen.Lit(spec.Package+": "+r.Name+"."+fd.Name+": unexpected value type %T"), jen.Id("value"),
						)),
					),
					jen.Id(recv).Dot(goName(fd.Name)).Op("=").Id("v"),
				)
			}
			g.Default().Block(
				jen.Return(jen.Qual("fmt", "Errorf").Call(
					jen.Lit(spec.Package+": "+r.Name+" has no field %q"), jen.Id("name"),
				)),
			)
		}),
		jen.Return(jen.Nil()),
	)
	return nil
}

func fieldBuilders(r *load.Record, types map[string]field.Type) []jen.Code {
	var out []jen.Code
	for _, fd := range r.Fields {
		b := jen.Line().Qual(fieldPkg, constructor(types[fd.Name])).Call(jen.Lit(fd.Name))
		if fd.Transient {
			b = b.Dot("Transient").Call()
		}
		if fd.Comment != "" {
			b = b.Dot("Comment").Call(jen.Lit(fd.Comment))
		}
		out = append(out, b)
	}
	return append(out, jen.Line())
}

func constructor(t field.Type) string {
	switch t {
	case field.TypeUUID:
		return "UUID"
	case field.TypeTime:
		return "Time"
	case field.TypeString:
		return "String"
	case field.TypeDuration:
		return "Duration"
	case field.TypeInt:
		return "Int64"
	case field.TypeFloat:
		return "Float"
	default:
		return "Bool"
	}
}

func goType(t field.Type) jen.Code {
	switch t {
	case field.TypeUUID:
		return jen.Qual(uuidPkg, "UUID")
	case field.TypeTime:
		return jen.Qual("time", "Time")
	case field.TypeString:
		return jen.String()
	case field.TypeDuration:
		return jen.Qual("time", "Duration")
	case field.TypeInt:
		return jen.Int64()
	case field.TypeFloat:
		return jen.Float64()
	default:
		return jen.Bool()
	}
}

func tableName(r *load.Record) string {
	if r.Table != "" {
		return r.Table
	}
	return strings.ToLower(r.Name) + "s"
}

// initialisms kept upper-case in generated Go names.
var initialisms = map[string]string{
	"id":   "ID",
	"url":  "URL",
	"api":  "API",
	"uuid": "UUID",
}

// goName converts a snake_case field name to an exported Go name.
func goName(name string) string {
	parts := strings.Split(name, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if up, ok := initialisms[p]; ok {
			b.WriteString(up)
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

func unexport(name string) string {
	return strings.ToLower(name[:1]) + name[1:]
}
