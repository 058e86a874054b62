// Command chrobot launches a headless Chrome, fetches and prints its
// version banner over CDP, then waits for an interrupt or SIGTERM before
// quitting the browser — a thin demonstration of the supervisor wiring,
// in the shape of the teacher's cmd/chrc/main.go entry point.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chrobotgo/chrobot/protocol/browser"
	"github.com/chrobotgo/chrobot/supervisor"
	"github.com/chrobotgo/chrobot/supervisor/introspect"
)

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	logLevel := env("LOG_LEVEL", "info")
	var lvl slog.Level
	switch logLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := supervisor.ConfigFromEnv()
	if cfg.Path == "" {
		slog.Error("CHROBOT_BROWSER_PATH is required")
		os.Exit(1)
	}

	sup, err := supervisor.Launch(cfg)
	if err != nil {
		slog.Error("launch failed", "error", err)
		os.Exit(1)
	}
	defer sup.Quit()

	var introspectSrv *introspect.Server
	if cfg.IntrospectAddr != "" {
		introspectSrv = introspect.NewServer(sup, cfg.IntrospectAddr)
		go func() {
			if err := introspectSrv.ListenAndServe(); err != nil {
				slog.Error("introspect server exited", "error", err)
			}
		}()
		defer introspectSrv.Shutdown()
	}

	version, err := browser.GetVersion(sup, 5*time.Second, "")
	if err != nil {
		slog.Error("Browser.getVersion failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("%s %s (protocol %s)\n", version.Product, version.Revision, version.ProtocolVersion)

	<-ctx.Done()
	slog.Info("shutting down")
}
