package codegen

import "testing"

func TestSnakeCase(t *testing.T) {
	cases := map[string]string{
		"DOM":          "dom",
		"Page":         "page",
		"CacheStorage": "cache_storage",
		"IO":           "io",
		"CSS":          "css",
	}
	for in, want := range cases {
		if got := SnakeCase(in); got != want {
			t.Errorf("SnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEscapeReserved(t *testing.T) {
	if got := EscapeReserved("type"); got != "type_" {
		t.Errorf("EscapeReserved(type) = %q, want type_", got)
	}
	if got := EscapeReserved("frameId"); got != "frameId" {
		t.Errorf("EscapeReserved(frameId) = %q, want unchanged", got)
	}
}

func TestQualifiedRef_CrossDomain(t *testing.T) {
	pkg, name := QualifiedRef("Page.FrameId", "DOM")
	if pkg != "page" || name != "FrameId" {
		t.Fatalf("got (%q, %q)", pkg, name)
	}
}

func TestQualifiedRef_SameDomain(t *testing.T) {
	pkg, name := QualifiedRef("FrameId", "Page")
	if pkg != "" || name != "FrameId" {
		t.Fatalf("got (%q, %q), want (\"\", \"FrameId\")", pkg, name)
	}
}
