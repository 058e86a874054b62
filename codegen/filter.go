package codegen

// Filter keeps only domains, types, commands, events, and properties whose
// stability flags are compatible with the given policy, recursing into
// object properties, parameters, and returns. A false flag or an absent one
// (the zero value) is always kept; a true flag is kept only when the
// matching allow bit is set. Nil slices stay nil; non-nil empty slices stay
// non-nil empty — filtering away every element of a list is not the same
// schema shape as the list never having existed.
func Filter(domains []Domain, allowExperimental, allowDeprecated bool) []Domain {
	keep := func(experimental, deprecated bool) bool {
		return (!experimental || allowExperimental) && (!deprecated || allowDeprecated)
	}

	out := make([]Domain, 0, len(domains))
	for _, d := range domains {
		if !keep(d.Experimental, d.Deprecated) {
			continue
		}
		d.Types = filterTypeDefs(d.Types, keep)
		d.Commands = filterCommands(d.Commands, keep)
		d.Events = filterEvents(d.Events, keep)
		out = append(out, d)
	}
	return out
}

func filterTypeDefs(defs []TypeDef, keep func(bool, bool) bool) []TypeDef {
	if defs == nil {
		return nil
	}
	out := make([]TypeDef, 0, len(defs))
	for _, td := range defs {
		if !keep(td.Experimental, td.Deprecated) {
			continue
		}
		td.Inner = filterType(td.Inner, keep)
		out = append(out, td)
	}
	return out
}

func filterCommands(cmds []Command, keep func(bool, bool) bool) []Command {
	if cmds == nil {
		return nil
	}
	out := make([]Command, 0, len(cmds))
	for _, c := range cmds {
		if !keep(c.Experimental, c.Deprecated) {
			continue
		}
		c.Parameters = filterProperties(c.Parameters, keep)
		c.Returns = filterProperties(c.Returns, keep)
		out = append(out, c)
	}
	return out
}

func filterEvents(evts []Event, keep func(bool, bool) bool) []Event {
	if evts == nil {
		return nil
	}
	out := make([]Event, 0, len(evts))
	for _, e := range evts {
		if !keep(e.Experimental, e.Deprecated) {
			continue
		}
		e.Parameters = filterProperties(e.Parameters, keep)
		out = append(out, e)
	}
	return out
}

func filterProperties(props []PropertyDef, keep func(bool, bool) bool) []PropertyDef {
	if props == nil {
		return nil
	}
	out := make([]PropertyDef, 0, len(props))
	for _, p := range props {
		if !keep(p.Experimental, p.Deprecated) {
			continue
		}
		p.Inner = filterType(p.Inner, keep)
		out = append(out, p)
	}
	return out
}

func filterType(t Type, keep func(bool, bool) bool) Type {
	if t.Kind == KindObject {
		t.Properties = filterProperties(t.Properties, keep)
	}
	return t
}
