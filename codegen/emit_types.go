package codegen

import (
	"fmt"
	"strings"
)

// emitter accumulates the rendered body and the import set for one
// domain's generated file as it walks that domain's types and commands.
type emitter struct {
	domain  string
	imports map[string]string // goPackage name -> import path
	body    strings.Builder
}

func newEmitter(domain string) *emitter {
	return &emitter{domain: domain, imports: map[string]string{}}
}

func (e *emitter) requireImport(goPackage, path string) {
	e.imports[goPackage] = path
}

// goType renders t as a Go type expression, recording any cross-domain
// package it references and hoisting any inline enum it finds into a
// named auxiliary type written directly to e.body before the caller's own
// declaration (matching the "PascalRootNamePascalPropName" naming rule for
// enum properties nested inside an object).
func (e *emitter) goType(t Type, auxName string) string {
	switch t.Kind {
	case KindPrimitive:
		return primitiveGoType(t.Primitive)
	case KindEnum:
		e.emitEnum(auxName, t.Enum)
		return auxName
	case KindObject:
		if t.Properties == nil {
			return "map[string]string"
		}
		var b strings.Builder
		b.WriteString("struct {\n")
		for _, p := range t.Properties {
			b.WriteString(e.renderField(p, auxName))
		}
		b.WriteString("}")
		return b.String()
	case KindArray:
		return "[]" + e.goArrayItemType(t.Item)
	case KindRef:
		return e.goRefType(t.Ref)
	default:
		return "string"
	}
}

func (e *emitter) goArrayItemType(item ArrayItem) string {
	if item.IsRef {
		return e.goRefType(item.Ref)
	}
	return primitiveGoType(item.Primitive)
}

func (e *emitter) goRefType(ref string) string {
	pkg, name := QualifiedRef(ref, e.domain)
	goName := exportName(name)
	if pkg == "" {
		return goName
	}
	e.requireImport(pkg, "github.com/chrobotgo/chrobot/protocol/"+pkg)
	return pkg + "." + goName
}

// renderField renders one struct field, including its json tag. Optional
// fields are pointer-wrapped so a caller can leave them unset; this is the
// "optional-field-omission helper" §4.2 calls for. Array- and object-shaped
// fields are not pointer-wrapped: a nil slice or map is omitted, but an
// inline struct (an object with properties) is always serialized.
func (e *emitter) renderField(p PropertyDef, auxPrefix string) string {
	fieldName := exportName(p.Name)
	goT := e.goType(p.Inner, auxPrefix+fieldName)
	tag := p.Name
	if p.Optional {
		tag += ",omitempty"
		if p.Inner.Kind != KindArray && p.Inner.Kind != KindObject {
			goT = "*" + goT
		}
	}
	return fmt.Sprintf("\t%s %s `json:\"%s\"`\n", fieldName, goT, tag)
}

// emitEnum writes a named string type, one constant per variant, and an
// UnmarshalJSON that rejects any string outside the declared set (§8
// scenario 6: "a decoder that fails on unknown strings"). The default
// string MarshalJSON already maps each variant back to its original wire
// string, since the Go value and the wire value are identical strings.
func (e *emitter) emitEnum(name string, values []string) {
	e.requireImport("json", "encoding/json")
	e.requireImport("fmt", "fmt")
	fmt.Fprintf(&e.body, "// %s is the closed set of values CDP allows here.\n", name)
	fmt.Fprintf(&e.body, "type %s string\n\n", name)
	fmt.Fprint(&e.body, "const (\n")
	for _, v := range values {
		fmt.Fprintf(&e.body, "\t%s %s = %q\n", name+exportName(sanitizeEnumVariant(v)), name, v)
	}
	fmt.Fprint(&e.body, ")\n\n")

	fmt.Fprintf(&e.body, "func (v *%s) UnmarshalJSON(data []byte) error {\n", name)
	fmt.Fprint(&e.body, "\tvar s string\n")
	fmt.Fprint(&e.body, "\tif err := json.Unmarshal(data, &s); err != nil {\n\t\treturn err\n\t}\n")
	fmt.Fprintf(&e.body, "\tswitch %s(s) {\n\tcase %s:\n\t\t*v = %s(s)\n\t\treturn nil\n\tdefault:\n",
		name, strings.Join(enumCaseList(name, values), ", "), name)
	fmt.Fprintf(&e.body, "\t\treturn fmt.Errorf(\"%s: unknown enum value %%q\", s)\n\t}\n}\n\n", name)
}

func enumCaseList(name string, values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = name + exportName(sanitizeEnumVariant(v))
	}
	return out
}

// sanitizeEnumVariant turns a wire enum value (often already an identifier
// like "deep" or hyphenated like "no-cache") into something exportName can
// capitalize cleanly.
func sanitizeEnumVariant(v string) string {
	v = strings.ReplaceAll(v, "-", "_")
	v = strings.ReplaceAll(v, ".", "_")
	return v
}

func primitiveGoType(name string) string {
	switch name {
	case "string":
		return "string"
	case "integer":
		return "int64"
	case "number":
		return "float64"
	case "boolean":
		return "bool"
	case "any":
		return "cdp.Any"
	default:
		return "string"
	}
}

// exportName capitalizes the first rune, the minimal transform needed to
// turn a CDP identifier (already PascalCase for types, lowerCamelCase for
// commands/properties) into an exported Go identifier, then escapes it if
// it collides with a keyword.
func exportName(s string) string {
	if s == "" {
		return s
	}
	return EscapeReserved(strings.ToUpper(s[:1]) + s[1:])
}

// emitTypeDef renders one domain-level named type declaration.
func (e *emitter) emitTypeDef(td TypeDef) {
	name := exportName(td.ID)
	// Render object fields first: renderField may hoist inline enums into
	// e.body, and those must land before this type's doc comment and
	// declaration, not between or inside them.
	var fields strings.Builder
	if td.Inner.Kind == KindObject {
		for _, p := range td.Inner.Properties {
			fields.WriteString(e.renderField(p, name))
		}
	}
	if td.Description != "" {
		fmt.Fprintf(&e.body, "// %s %s\n", name, strings.ReplaceAll(td.Description, "\n", " "))
	}
	switch td.Inner.Kind {
	case KindEnum:
		e.emitEnum(name, td.Inner.Enum)
		return
	case KindObject:
		if td.Inner.Properties == nil {
			fmt.Fprintf(&e.body, "type %s map[string]string\n\n", name)
			return
		}
		fmt.Fprintf(&e.body, "type %s struct {\n%s}\n\n", name, fields.String())
		return
	case KindArray:
		fmt.Fprintf(&e.body, "type %s []%s\n\n", name, e.goArrayItemType(td.Inner.Item))
		return
	case KindRef:
		fmt.Fprintf(&e.body, "type %s %s\n\n", name, e.goRefType(td.Inner.Ref))
		return
	default:
		fmt.Fprintf(&e.body, "type %s %s\n\n", name, primitiveGoType(td.Inner.Primitive))
	}
}
