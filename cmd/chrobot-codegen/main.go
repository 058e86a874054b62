// Command chrobot-codegen drives codegen.Generate over a pair of CDP
// schema documents and writes the resulting domain packages to disk.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/chrobotgo/chrobot/codegen"
)

func main() {
	browserPath := flag.String("browser", "browser_protocol.json", "path to browser_protocol.json")
	jsPath := flag.String("js", "js_protocol.json", "path to js_protocol.json")
	outDir := flag.String("out", "protocol", "output directory for generated packages")
	allowExperimental := flag.Bool("allow-experimental", false, "keep experimental domains/types/commands")
	allowDeprecated := flag.Bool("allow-deprecated", false, "keep deprecated domains/types/commands")
	flag.Parse()

	browserData, err := os.ReadFile(*browserPath)
	if err != nil {
		slog.Error("read browser protocol", "error", err)
		os.Exit(1)
	}
	jsData, err := os.ReadFile(*jsPath)
	if err != nil {
		slog.Error("read js protocol", "error", err)
		os.Exit(1)
	}

	browserProto, err := codegen.ParseProtocol(browserData)
	if err != nil {
		slog.Error("parse browser protocol", "error", err)
		os.Exit(1)
	}
	jsProto, err := codegen.ParseProtocol(jsData)
	if err != nil {
		slog.Error("parse js protocol", "error", err)
		os.Exit(1)
	}

	domains, err := codegen.Merge(browserProto, jsProto)
	if err != nil {
		slog.Error("merge protocols", "error", err)
		os.Exit(1)
	}

	domains = codegen.Patch(domains)
	domains = codegen.Filter(domains, *allowExperimental, *allowDeprecated)

	files, err := codegen.Generate(domains)
	if err != nil {
		slog.Error("generate", "error", err)
		os.Exit(1)
	}

	for _, f := range files {
		dest := filepath.Join(*outDir, f.Path)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			slog.Error("mkdir", "path", dest, "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(dest, f.Source, 0o644); err != nil {
			slog.Error("write", "path", dest, "error", err)
			os.Exit(1)
		}
		fmt.Println(dest)
	}
	slog.Info("codegen complete", "domains", len(domains), "files", len(files))
}
