package supervisor

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LogLevel controls how much the supervisor logs about its own operation.
// It never affects what is sent to or received from the browser.
type LogLevel int

const (
	LogSilent LogLevel = iota
	LogWarnings
	LogInfo
	LogDebug
)

func parseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LogDebug
	case "info":
		return LogInfo
	case "silent":
		return LogSilent
	case "warnings", "warn", "":
		return LogWarnings
	default:
		return LogWarnings
	}
}

// Config configures a browser launch. Field names and defaults mirror the
// teacher's domwatch/internal/browser.Config / domwatch/internal/config.BrowserConfig,
// generalized to the fields the supervisor's public contract actually needs
// (§4.1 "Configuration").
type Config struct {
	// Path is the absolute path to the child executable. Required.
	Path string `yaml:"path"`

	// Args are appended after "--remote-debugging-pipe" when launching
	// the child. Defaults to a conservative set of headless flags.
	Args []string `yaml:"args"`

	// StartTimeout bounds how long Launch waits for the child to become
	// responsive. Default 10s.
	StartTimeout time.Duration `yaml:"start_timeout"`

	// LogLevel controls supervisor-internal logging verbosity.
	LogLevel LogLevel `yaml:"-"`
	LogLevelName string `yaml:"log_level"`

	// IntrospectAddr is the listen address for the opt-in debug HTTP server
	// (supervisor/introspect). Launch does not start that server; cmd/chrobot
	// starts it when this is non-empty.
	IntrospectAddr string `yaml:"introspect_addr"`

	// SessionDefault is attached to requests issued through the
	// introspection server's ad-hoc call endpoint when the caller supplies
	// no session id of its own. It has no effect on the Call/Send API,
	// which always takes an explicit, possibly-empty session id.
	SessionDefault string `yaml:"session_default"`
}

func defaultArgs() []string {
	return []string{
		"--headless=new",
		"--disable-gpu",
		"--no-sandbox",
		"--disable-dev-shm-usage",
	}
}

func (c *Config) applyDefaults() {
	if len(c.Args) == 0 {
		c.Args = defaultArgs()
	}
	if c.StartTimeout <= 0 {
		c.StartTimeout = 10 * time.Second
	}
	if c.LogLevelName != "" {
		c.LogLevel = parseLogLevel(c.LogLevelName)
	}
}

// env reads an environment variable or returns def, the teacher's
// cmd/chrc/main.go helper of the same shape.
func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ConfigFromEnv builds a Config from the environment overrides named in
// §4.1/§6: CHROBOT_BROWSER_PATH, CHROBOT_BROWSER_ARGS (newline-separated),
// CHROBOT_BROWSER_TIMEOUT (milliseconds), CHROBOT_LOG_LEVEL.
func ConfigFromEnv() Config {
	var c Config
	c.Path = env("CHROBOT_BROWSER_PATH", "")
	if raw := os.Getenv("CHROBOT_BROWSER_ARGS"); raw != "" {
		for _, line := range strings.Split(raw, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				c.Args = append(c.Args, line)
			}
		}
	}
	if raw := env("CHROBOT_BROWSER_TIMEOUT", ""); raw != "" {
		if ms, err := strconv.Atoi(raw); err == nil && ms > 0 {
			c.StartTimeout = time.Duration(ms) * time.Millisecond
		}
	}
	c.LogLevelName = env("CHROBOT_LOG_LEVEL", "")
	c.applyDefaults()
	return c
}

// LoadConfigFile reads a YAML configuration file shaped like the teacher's
// domwatch/internal/config.BrowserConfig, generalized to this package's
// Config fields.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}
