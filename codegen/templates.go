package codegen

import (
	"bytes"
	"text/template"
)

// fileTemplate is the skeleton every generated domain file shares: a
// package clause, a gofmt-able import block, and a pre-rendered body
// (types, auxiliary enum/object types, and command functions) assembled by
// emit.go and emit_types.go/emit_commands.go. Rendering the body as plain
// Go source ahead of time, rather than threading every struct field
// through template control-flow, keeps the template itself small and the
// per-type/per-command logic in ordinary Go where it's easier to get right.
var fileTemplate = template.Must(template.New("domain").Parse(`// Code generated by chrobot's codegen package from the CDP schema. DO NOT EDIT.

// Package {{.PackageName}} implements the generated {{.DomainName}} domain.
// See https://chromedevtools.github.io/devtools-protocol/tot/{{.DomainName}}/
//
// {{.Description}}
package {{.PackageName}}

import (
{{range .Imports}}	{{.}}
{{end}})

{{.Body}}
`))

type fileData struct {
	PackageName string
	DomainName  string
	Description string
	Imports     []string
	Body        string
}

func renderFile(d fileData) ([]byte, error) {
	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
