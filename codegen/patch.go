package codegen

import "strings"

// Patch applies the fixed 7-row patch pass (§4.2) that breaks the schema's
// cyclic module dependencies (DOM ↔ Page via FrameId, and similar) by
// rewriting the offending Ref nodes to primitives at the edge that creates
// the back-reference, and unqualifies same-domain refs so a domain's
// generated package never imports itself.
func Patch(domains []Domain) []Domain {
	out := make([]Domain, len(domains))
	for i, d := range domains {
		out[i] = patchDomain(d)
	}
	return out
}

func patchDomain(d Domain) Domain {
	if d.Name == "Tracing" {
		d.Experimental = true
	}
	if d.Name == "IO" && !contains(d.Dependencies, "Runtime") {
		d.Dependencies = append(d.Dependencies, "Runtime")
	}
	d.Types = patchTypeDefs(d.Types, d.Name)
	d.Commands = patchCommands(d.Commands, d.Name)
	d.Events = patchEvents(d.Events, d.Name)
	return d
}

func patchTypeDefs(defs []TypeDef, domain string) []TypeDef {
	if defs == nil {
		return nil
	}
	out := make([]TypeDef, len(defs))
	for i, td := range defs {
		td.Inner = patchType(td.Inner, domain)
		out[i] = td
	}
	return out
}

func patchCommands(cmds []Command, domain string) []Command {
	if cmds == nil {
		return nil
	}
	out := make([]Command, len(cmds))
	for i, c := range cmds {
		c.Parameters = patchProperties(c.Parameters, domain)
		c.Returns = patchProperties(c.Returns, domain)
		out[i] = c
	}
	return out
}

func patchEvents(evts []Event, domain string) []Event {
	if evts == nil {
		return nil
	}
	out := make([]Event, len(evts))
	for i, e := range evts {
		e.Parameters = patchProperties(e.Parameters, domain)
		out[i] = e
	}
	return out
}

func patchProperties(props []PropertyDef, domain string) []PropertyDef {
	if props == nil {
		return nil
	}
	out := make([]PropertyDef, len(props))
	for i, p := range props {
		p.Inner = patchType(p.Inner, domain)
		out[i] = p
	}
	return out
}

// patchType recurses into Object properties and Array items, rewriting Ref
// nodes per the table and unqualifying any surviving same-domain ref.
func patchType(t Type, domain string) Type {
	switch t.Kind {
	case KindRef:
		return patchRef(t.Ref, domain)
	case KindArray:
		return Type{Kind: KindArray, Item: patchArrayItem(t.Item, domain)}
	case KindObject:
		return Type{Kind: KindObject, Properties: patchProperties(t.Properties, domain)}
	default:
		return t
	}
}

// patchRef rewrites a Ref type per the table's first three rows, falling
// through to same-domain unqualification when none apply.
func patchRef(ref, domain string) Type {
	switch {
	case ref == "Page.FrameId" && (domain == "DOM" || domain == "Accessibility"):
		return Type{Kind: KindPrimitive, Primitive: "string"}
	case ref == "Network.TimeSinceEpoch" && (domain == "Security" || domain == "Accessibility"):
		return Type{Kind: KindPrimitive, Primitive: "number"}
	case ref == "Browser.BrowserContextID" || ref == "BrowserContextID":
		return Type{Kind: KindPrimitive, Primitive: "string"}
	default:
		return Type{Kind: KindRef, Ref: unqualifySameDomain(ref, domain)}
	}
}

// patchArrayItem applies the same table to an array's element ref. Row 4
// (Array(Ref(BrowserContextID)) in Target) is the Array-shaped instance of
// row 3's "anywhere" rule; handling it here the same way row 3 is handled
// for bare Refs keeps the two rules from diverging.
func patchArrayItem(item ArrayItem, domain string) ArrayItem {
	if !item.IsRef {
		return item
	}
	if item.Ref == "Browser.BrowserContextID" || item.Ref == "BrowserContextID" {
		return ArrayItem{Primitive: "string"}
	}
	return ArrayItem{IsRef: true, Ref: unqualifySameDomain(item.Ref, domain)}
}

// unqualifySameDomain rewrites "ThisDomain.X" to "X" when ref targets the
// domain currently being patched; cross-domain refs pass through unchanged.
func unqualifySameDomain(ref, domain string) string {
	if prefix := domain + "."; strings.HasPrefix(ref, prefix) {
		return strings.TrimPrefix(ref, prefix)
	}
	return ref
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
