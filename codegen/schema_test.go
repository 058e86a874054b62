package codegen

import (
	"os"
	"testing"
)

func loadTestdata(t *testing.T, name string) *Protocol {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	p, err := ParseProtocol(data)
	if err != nil {
		t.Fatalf("parse %s: %v", name, err)
	}
	return p
}

func TestParseProtocol_Version(t *testing.T) {
	p := loadTestdata(t, "browser_protocol.json")
	if p.Version.Major != "1" || p.Version.Minor != "3" {
		t.Fatalf("version = %+v", p.Version)
	}
	if len(p.Domains) == 0 {
		t.Fatal("expected at least one domain")
	}
}

func findDomain(domains []Domain, name string) *Domain {
	for i := range domains {
		if domains[i].Name == name {
			return &domains[i]
		}
	}
	return nil
}

func findType(types []TypeDef, id string) *TypeDef {
	for i := range types {
		if types[i].ID == id {
			return &types[i]
		}
	}
	return nil
}

func TestParseProtocol_PrimitiveType(t *testing.T) {
	p := loadTestdata(t, "browser_protocol.json")
	page := findDomain(p.Domains, "Page")
	if page == nil {
		t.Fatal("Page domain not found")
	}
	frameID := findType(page.Types, "FrameId")
	if frameID == nil {
		t.Fatal("FrameId type not found")
	}
	if frameID.Inner.Kind != KindPrimitive || frameID.Inner.Primitive != "string" {
		t.Fatalf("FrameId.Inner = %+v", frameID.Inner)
	}
}

func TestParseProtocol_RefAndObjectType(t *testing.T) {
	p := loadTestdata(t, "browser_protocol.json")
	dom := findDomain(p.Domains, "DOM")
	if dom == nil {
		t.Fatal("DOM domain not found")
	}
	backendNode := findType(dom.Types, "BackendNode")
	if backendNode == nil {
		t.Fatal("BackendNode type not found")
	}
	if backendNode.Inner.Kind != KindObject {
		t.Fatalf("BackendNode.Inner.Kind = %v", backendNode.Inner.Kind)
	}
	var frameIDProp *PropertyDef
	for i := range backendNode.Inner.Properties {
		if backendNode.Inner.Properties[i].Name == "frameId" {
			frameIDProp = &backendNode.Inner.Properties[i]
		}
	}
	if frameIDProp == nil {
		t.Fatal("frameId property not found")
	}
	if frameIDProp.Inner.Kind != KindRef || frameIDProp.Inner.Ref != "Page.FrameId" {
		t.Fatalf("frameId.Inner = %+v", frameIDProp.Inner)
	}
	if !frameIDProp.Optional {
		t.Fatal("frameId should be optional")
	}
}

func TestParseProtocol_ArrayType(t *testing.T) {
	p := loadTestdata(t, "browser_protocol.json")
	target := findDomain(p.Domains, "Target")
	if target == nil {
		t.Fatal("Target domain not found")
	}
	var getTargets *Command
	for i := range target.Commands {
		if target.Commands[i].Name == "getTargets" {
			getTargets = &target.Commands[i]
		}
	}
	if getTargets == nil {
		t.Fatal("getTargets command not found")
	}
	param := getTargets.Parameters[0]
	if param.Inner.Kind != KindArray {
		t.Fatalf("browserContextIds.Inner.Kind = %v", param.Inner.Kind)
	}
	if !param.Inner.Item.IsRef || param.Inner.Item.Ref != "Browser.BrowserContextID" {
		t.Fatalf("browserContextIds.Inner.Item = %+v", param.Inner.Item)
	}
}

func TestParseProtocol_EnumType(t *testing.T) {
	p := loadTestdata(t, "js_protocol.json")
	runtime := findDomain(p.Domains, "Runtime")
	if runtime == nil {
		t.Fatal("Runtime domain not found")
	}
	opts := findType(runtime.Types, "SerializationOptions")
	if opts == nil {
		t.Fatal("SerializationOptions type not found")
	}
	var typeProp *PropertyDef
	for i := range opts.Inner.Properties {
		if opts.Inner.Properties[i].Name == "type" {
			typeProp = &opts.Inner.Properties[i]
		}
	}
	if typeProp == nil {
		t.Fatal("type property not found")
	}
	if typeProp.Inner.Kind != KindEnum {
		t.Fatalf("type.Inner.Kind = %v", typeProp.Inner.Kind)
	}
	want := []string{"deep", "json", "idOnly"}
	if len(typeProp.Inner.Enum) != len(want) {
		t.Fatalf("enum = %v", typeProp.Inner.Enum)
	}
	for i, v := range want {
		if typeProp.Inner.Enum[i] != v {
			t.Fatalf("enum[%d] = %q, want %q", i, typeProp.Inner.Enum[i], v)
		}
	}
}
