// Package codegen turns a CDP JSON protocol schema (the shape served by
// Chrome's own protocol.json, same format chromedp/cdproto and
// chromedp-pdlgen consume) into typed Go domain packages: one encoder and
// one decoder per type, one function per command.
package codegen

import (
	"encoding/json"
	"fmt"
)

// TypeKind discriminates the tagged-variant Type the CDP schema encodes
// positionally (by which JSON field is present), per §3's Type grammar:
// Primitive(name) | Enum(values) | Object(props?) | Array(item) | Ref(target).
type TypeKind int

const (
	KindPrimitive TypeKind = iota
	KindEnum
	KindObject
	KindArray
	KindRef
)

func (k TypeKind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindEnum:
		return "enum"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindRef:
		return "ref"
	default:
		return "unknown"
	}
}

// Type is the schema's tagged-variant type expression. Exactly the fields
// relevant to Kind are populated; the rest are zero.
type Type struct {
	Kind       TypeKind
	Primitive  string        // KindPrimitive: "string", "integer", "number", "boolean", "any", ...
	Enum       []string      // KindEnum
	Properties []PropertyDef // KindObject; nil means a bare string-keyed map, not "no properties key at all" vs "empty list" — both preserved by the filter as-is
	Item       ArrayItem     // KindArray
	Ref        string        // KindRef: "Domain.Name" or "Name"
}

// ArrayItem is an array's element type: the schema only ever nests a
// primitive or a ref inside "items", never another array or object.
type ArrayItem struct {
	IsRef     bool
	Ref       string
	Primitive string
}

// rawFields mirrors the flattened JSON shape CDP actually emits: a type
// expression's variant tag is which of these keys is present, not an
// explicit discriminator. TypeDef, PropertyDef, and items objects all use
// this same flattened field set alongside their own id/name/description
// metadata.
type rawFields struct {
	TypeName   *string         `json:"type,omitempty"`
	Ref        *string         `json:"$ref,omitempty"`
	Enum       []string        `json:"enum,omitempty"`
	Items      json.RawMessage `json:"items,omitempty"`
	Properties []PropertyDef   `json:"properties,omitempty"`
}

// toType classifies a rawFields value into a Type per the variant
// precedence: $ref beats enum beats type="array"/"object" beats a bare
// primitive name. This mirrors the order real CDP schema fields imply:
// a $ref never carries a sibling "type", and "enum" is only ever attached
// to a "type":"string" (so checking $ref and enum first is unambiguous).
func (r rawFields) toType(context string) (Type, error) {
	switch {
	case r.Ref != nil:
		return Type{Kind: KindRef, Ref: *r.Ref}, nil
	case len(r.Enum) > 0:
		return Type{Kind: KindEnum, Enum: r.Enum}, nil
	case r.TypeName == nil:
		return Type{}, fmt.Errorf("codegen: %s: no type, $ref, or enum present", context)
	case *r.TypeName == "array":
		if len(r.Items) == 0 {
			return Type{}, fmt.Errorf("codegen: %s: array type missing items", context)
		}
		var itemRaw rawFields
		if err := json.Unmarshal(r.Items, &itemRaw); err != nil {
			return Type{}, fmt.Errorf("codegen: %s: items: %w", context, err)
		}
		item, err := itemRaw.toArrayItem(context)
		if err != nil {
			return Type{}, err
		}
		return Type{Kind: KindArray, Item: item}, nil
	case *r.TypeName == "object":
		return Type{Kind: KindObject, Properties: r.Properties}, nil
	default:
		return Type{Kind: KindPrimitive, Primitive: *r.TypeName}, nil
	}
}

// toArrayItem classifies a rawFields value found inside an "items" object.
// The schema never nests an array or an object one level deep, only a
// primitive name or a $ref.
func (r rawFields) toArrayItem(context string) (ArrayItem, error) {
	switch {
	case r.Ref != nil:
		return ArrayItem{IsRef: true, Ref: *r.Ref}, nil
	case r.TypeName != nil:
		return ArrayItem{Primitive: *r.TypeName}, nil
	default:
		return ArrayItem{}, fmt.Errorf("codegen: %s: items entry has neither type nor $ref", context)
	}
}

// TypeDef is a domain-level named type declaration (Domain.Types entries).
type TypeDef struct {
	ID           string
	Description  string
	Experimental bool
	Deprecated   bool
	Inner        Type
}

func (t *TypeDef) UnmarshalJSON(data []byte) error {
	var raw struct {
		rawFields
		ID           string `json:"id"`
		Description  string `json:"description,omitempty"`
		Experimental bool   `json:"experimental,omitempty"`
		Deprecated   bool   `json:"deprecated,omitempty"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	inner, err := raw.rawFields.toType("type " + raw.ID)
	if err != nil {
		return err
	}
	*t = TypeDef{
		ID:           raw.ID,
		Description:  raw.Description,
		Experimental: raw.Experimental,
		Deprecated:   raw.Deprecated,
		Inner:        inner,
	}
	return nil
}

// PropertyDef is one parameter, return value, or object property.
type PropertyDef struct {
	Name         string
	Description  string
	Experimental bool
	Deprecated   bool
	Optional     bool
	Inner        Type
}

func (p *PropertyDef) UnmarshalJSON(data []byte) error {
	var raw struct {
		rawFields
		Name         string `json:"name"`
		Description  string `json:"description,omitempty"`
		Experimental bool   `json:"experimental,omitempty"`
		Deprecated   bool   `json:"deprecated,omitempty"`
		Optional     bool   `json:"optional,omitempty"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	inner, err := raw.rawFields.toType("property " + raw.Name)
	if err != nil {
		return err
	}
	*p = PropertyDef{
		Name:         raw.Name,
		Description:  raw.Description,
		Experimental: raw.Experimental,
		Deprecated:   raw.Deprecated,
		Optional:     raw.Optional,
		Inner:        inner,
	}
	return nil
}

// Command is one Domain.Commands entry.
type Command struct {
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	Experimental bool          `json:"experimental,omitempty"`
	Deprecated   bool          `json:"deprecated,omitempty"`
	Parameters   []PropertyDef `json:"parameters,omitempty"`
	Returns      []PropertyDef `json:"returns,omitempty"`
}

// Event is one Domain.Events entry.
type Event struct {
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	Experimental bool          `json:"experimental,omitempty"`
	Deprecated   bool          `json:"deprecated,omitempty"`
	Parameters   []PropertyDef `json:"parameters,omitempty"`
}

// Domain is one entry of Protocol.Domains.
type Domain struct {
	Name         string    `json:"domain"`
	Experimental bool      `json:"experimental,omitempty"`
	Deprecated   bool      `json:"deprecated,omitempty"`
	Dependencies []string  `json:"dependencies,omitempty"`
	Types        []TypeDef `json:"types,omitempty"`
	Commands     []Command `json:"commands"`
	Events       []Event   `json:"events,omitempty"`
	Description  string    `json:"description,omitempty"`
}

// Protocol is the top-level schema document: one version plus the domain
// list. browser_protocol.json and js_protocol.json are each one Protocol;
// Merge concatenates their domain lists after checking the versions agree.
type Protocol struct {
	Version struct {
		Major string `json:"major"`
		Minor string `json:"minor"`
	} `json:"version"`
	Domains []Domain `json:"domains"`
}

// ParseProtocol decodes one schema document (one file's worth of JSON).
func ParseProtocol(data []byte) (*Protocol, error) {
	var p Protocol
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("codegen: parse protocol: %w", err)
	}
	return &p, nil
}
