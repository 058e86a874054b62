package codegen

import (
	"fmt"
	"go/format"
	"sort"
	"strings"
)

// GeneratedFile is one emitted domain module, ready to write to disk at
// protocol/<Path>.
type GeneratedFile struct {
	Path   string
	Source []byte
}

// Generate renders one Go source file per domain. Domains are expected to
// already be patched (Patch) and filtered (Filter); Generate does not
// re-apply either pass.
func Generate(domains []Domain) ([]GeneratedFile, error) {
	files := make([]GeneratedFile, 0, len(domains))
	for _, d := range domains {
		gf, err := emitDomainFile(d)
		if err != nil {
			return nil, fmt.Errorf("codegen: generate %s: %w", d.Name, err)
		}
		files = append(files, gf)
	}
	return files, nil
}

func emitDomainFile(d Domain) (GeneratedFile, error) {
	e := newEmitter(d.Name)

	for _, td := range d.Types {
		e.emitTypeDef(td)
	}
	for _, c := range d.Commands {
		e.emitCommand(c)
	}

	for _, dep := range d.Dependencies {
		pkg := PackageName(dep)
		e.requireImport(pkg, "github.com/chrobotgo/chrobot/protocol/"+pkg)
	}
	if strings.Contains(e.body.String(), "cdp.Any") {
		e.requireImport("cdp", "github.com/chrobotgo/chrobot/protocol/cdp")
	}

	bodyText := e.body.String()
	pkgNames := make([]string, 0, len(e.imports))
	for pkg := range e.imports {
		pkgNames = append(pkgNames, pkg)
	}
	sort.Strings(pkgNames)

	var importLines []string
	for _, pkg := range pkgNames {
		// Unused-import pass (§4.2 rule 2): drop any import whose short
		// name the emitted body never references.
		if !strings.Contains(bodyText, pkg+".") {
			continue
		}
		importLines = append(importLines, fmt.Sprintf("%q", e.imports[pkg]))
	}

	src, err := renderFile(fileData{
		PackageName: PackageName(d.Name),
		DomainName:  d.Name,
		Description: firstLine(d.Description),
		Imports:     importLines,
		Body:        bodyText,
	})
	if err != nil {
		return GeneratedFile{}, err
	}

	formatted, err := format.Source(src)
	if err != nil {
		return GeneratedFile{}, fmt.Errorf("gofmt: %w\n%s", err, src)
	}
	return GeneratedFile{Path: PackageName(d.Name) + "/" + PackageName(d.Name) + ".go", Source: formatted}, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
