package codegen

import (
	"fmt"
	"strings"
)

// emitCommand renders the parameter struct (if any), the response struct
// (if the command has returns), and the command function itself. The
// function signature takes one labelled Go parameter per schema
// parameter — not the params struct directly — per §4.2 rule 5; the params
// struct exists only as an internal marshaling target.
func (e *emitter) emitCommand(c Command) {
	e.requireImport("supervisor", "github.com/chrobotgo/chrobot/supervisor")
	e.requireImport("time", "time")
	e.requireImport("json", "encoding/json")
	e.requireImport("fmt", "fmt")

	funcName := exportName(c.Name)
	wireMethod := e.domain + "." + c.Name

	// Fields are rendered before each struct header is written, so any
	// inline enum renderField hoists into e.body lands ahead of the struct.
	paramsType := ""
	if len(c.Parameters) > 0 {
		paramsType = funcName + "Params"
		var fields strings.Builder
		for _, p := range c.Parameters {
			fields.WriteString(e.renderField(p, paramsType))
		}
		fmt.Fprintf(&e.body, "type %s struct {\n%s}\n\n", paramsType, fields.String())
	}

	responseType := ""
	if len(c.Returns) > 0 {
		responseType = funcName + "Response"
		var fields strings.Builder
		for _, p := range c.Returns {
			fields.WriteString(e.renderField(p, responseType))
		}
		fmt.Fprintf(&e.body, "type %s struct {\n%s}\n\n", responseType, fields.String())
	}

	if c.Description != "" {
		fmt.Fprintf(&e.body, "// %s %s\n", funcName, strings.ReplaceAll(c.Description, "\n", " "))
	}
	fmt.Fprintf(&e.body, "func %s(sup *supervisor.Supervisor, timeout time.Duration, session string", funcName)
	argNames := make([]string, len(c.Parameters))
	for i, p := range c.Parameters {
		argName := EscapeReserved(lowerFirst(exportName(p.Name)))
		argType := e.goType(p.Inner, funcName+exportName(p.Name))
		if p.Optional && p.Inner.Kind != KindArray && p.Inner.Kind != KindObject {
			argType = "*" + argType
		}
		fmt.Fprintf(&e.body, ", %s %s", argName, argType)
		argNames[i] = argName
	}
	if responseType != "" {
		fmt.Fprintf(&e.body, ") (%s, error) {\n", responseType)
	} else {
		fmt.Fprint(&e.body, ") error {\n")
	}

	var raw string
	if paramsType != "" {
		fmt.Fprintf(&e.body, "\tparams := %s{\n", paramsType)
		for i, p := range c.Parameters {
			fmt.Fprintf(&e.body, "\t\t%s: %s,\n", exportName(p.Name), argNames[i])
		}
		fmt.Fprint(&e.body, "\t}\n")
		fmt.Fprint(&e.body, "\traw, err := json.Marshal(params)\n")
		fmt.Fprint(&e.body, "\tif err != nil {\n")
		if responseType != "" {
			fmt.Fprintf(&e.body, "\t\treturn %s{}, fmt.Errorf(\"%s: encode params: %%w\", err)\n", responseType, wireMethod)
		} else {
			fmt.Fprintf(&e.body, "\t\treturn fmt.Errorf(\"%s: encode params: %%w\", err)\n", wireMethod)
		}
		fmt.Fprint(&e.body, "\t}\n")
		raw = "raw"
	} else {
		raw = "nil"
	}

	if responseType == "" {
		// err already exists when the params block above declared it.
		assign := ":="
		if paramsType != "" {
			assign = "="
		}
		fmt.Fprintf(&e.body, "\t_, err %s sup.Call(%q, %s, session, timeout)\n", assign, wireMethod, raw)
		fmt.Fprint(&e.body, "\treturn err\n}\n\n")
		return
	}
	fmt.Fprintf(&e.body, "\tresult, err := sup.Call(%q, %s, session, timeout)\n", wireMethod, raw)
	fmt.Fprint(&e.body, "\tif err != nil {\n")
	fmt.Fprintf(&e.body, "\t\treturn %s{}, err\n\t}\n", responseType)
	fmt.Fprintf(&e.body, "\tvar resp %s\n", responseType)
	fmt.Fprint(&e.body, "\tif err := json.Unmarshal(result, &resp); err != nil {\n")
	fmt.Fprintf(&e.body, "\t\treturn %s{}, &supervisor.ProtocolError{Domain: %q, Type: %q, Err: err}\n\t}\n", responseType, e.domain, responseType)
	fmt.Fprint(&e.body, "\treturn resp, nil\n}\n\n")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
