package codegen

import "testing"

func TestFilter_DropsExperimentalDomainByDefault(t *testing.T) {
	domains := mergedTestdata(t)
	filtered := Filter(domains, false, false)

	if findDomain(filtered, "Experimentalonly") != nil {
		t.Fatal("experimental-only domain should have been dropped")
	}
	if findDomain(filtered, "Accessibility") != nil {
		t.Fatal("Accessibility is itself marked experimental and should have been dropped")
	}
}

func TestFilter_KeepsExperimentalWhenAllowed(t *testing.T) {
	domains := mergedTestdata(t)
	filtered := Filter(domains, true, false)

	if findDomain(filtered, "Experimentalonly") == nil {
		t.Fatal("experimental-only domain should be kept when allow_experimental=true")
	}
}

func TestFilter_DropsDeprecatedDomainByDefault(t *testing.T) {
	domains := mergedTestdata(t)
	filtered := Filter(domains, false, false)

	if findDomain(filtered, "Debugger") != nil {
		t.Fatal("deprecated Debugger domain should have been dropped")
	}
}

func TestFilter_KeepsDeprecatedWhenAllowed(t *testing.T) {
	domains := mergedTestdata(t)
	filtered := Filter(domains, false, true)

	if findDomain(filtered, "Debugger") == nil {
		t.Fatal("Debugger should be kept when allow_deprecated=true")
	}
}

func TestFilter_KeepsAbsentOrFalseFlags(t *testing.T) {
	domains := mergedTestdata(t)
	filtered := Filter(domains, false, false)

	if findDomain(filtered, "Page") == nil {
		t.Fatal("Page has no stability flags and must survive the strictest filter")
	}
	if findDomain(filtered, "DOM") == nil {
		t.Fatal("DOM has no stability flags and must survive the strictest filter")
	}
}

func TestFilter_PreservesEmptyListShape(t *testing.T) {
	domains := []Domain{{
		Name:     "Empty",
		Commands: []Command{},
	}}
	filtered := Filter(domains, false, false)
	if filtered[0].Commands == nil {
		t.Fatal("non-nil empty Commands slice should stay non-nil after filtering")
	}
	if len(filtered[0].Commands) != 0 {
		t.Fatalf("Commands = %v, want empty", filtered[0].Commands)
	}
}

func TestFilter_RecursesIntoObjectProperties(t *testing.T) {
	domains := []Domain{{
		Name: "X",
		Types: []TypeDef{{
			ID: "T",
			Inner: Type{Kind: KindObject, Properties: []PropertyDef{
				{Name: "stable", Inner: Type{Kind: KindPrimitive, Primitive: "string"}},
				{Name: "gone", Experimental: true, Inner: Type{Kind: KindPrimitive, Primitive: "string"}},
			}},
		}},
	}}
	filtered := Filter(domains, false, false)
	props := filtered[0].Types[0].Inner.Properties
	if len(props) != 1 || props[0].Name != "stable" {
		t.Fatalf("properties = %+v, want only 'stable'", props)
	}
}
