package codegen

import (
	"strings"
	"unicode"
)

// reservedWords is the set of Go keywords that collide with CDP identifiers
// (CDP has a "type" property on enum type defs, for instance).
var reservedWords = map[string]bool{
	"break": true, "default": true, "func": true, "interface": true, "select": true,
	"case": true, "defer": true, "go": true, "map": true, "struct": true,
	"chan": true, "else": true, "goto": true, "package": true, "switch": true,
	"const": true, "fallthrough": true, "if": true, "range": true, "type": true,
	"continue": true, "for": true, "import": true, "return": true, "var": true,
}

// EscapeReserved appends a trailing underscore to a Go keyword so it can be
// used as an identifier; every other name passes through unchanged.
func EscapeReserved(name string) string {
	if reservedWords[name] {
		return name + "_"
	}
	return name
}

// SnakeCase lowercases a CDP domain or type name into the snake_case form
// used for generated package names and file names ("DOM" -> "dom",
// "CacheStorage" -> "cache_storage").
func SnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]))
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && (prevLower || (nextLower && unicode.IsUpper(runes[i-1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// QualifiedRef renders a Ref target (already patched: same-domain refs are
// bare "Name", cross-domain refs are "Domain.Name") as the Go expression a
// generated file uses to refer to it: same-domain stays a bare identifier,
// cross-domain becomes "<snake(domain)>.Name" naming the imported package.
func QualifiedRef(ref, currentDomain string) (goPackage, goName string) {
	if dot := strings.IndexByte(ref, '.'); dot >= 0 {
		domain, name := ref[:dot], ref[dot+1:]
		return SnakeCase(domain), EscapeReserved(name)
	}
	return "", EscapeReserved(ref)
}

// PackageName is the import path segment for a domain's generated package.
func PackageName(domain string) string {
	return SnakeCase(domain)
}
