package supervisor

import (
	"fmt"
	"os"
	"os/exec"
)

// buildArgs prepends the pipe-mode debugging flag the child must be
// launched with (§4.1, §6): "--remote-debugging-pipe" followed by the
// caller-provided argument list.
func buildArgs(cfg *Config) []string {
	args := make([]string, 0, len(cfg.Args)+1)
	args = append(args, "--remote-debugging-pipe")
	args = append(args, cfg.Args...)
	return args
}

// spawn starts the child process with fd 3/4 wired to anonymous pipes and
// returns the running command plus the supervisor's half of the pipes.
// Grounded on domwatch/internal/browser/manager.go's launch(), generalized
// from WebSocket-URL launching to pipe-mode fd wiring per §4.1.
func spawn(cfg *Config) (*exec.Cmd, *pipeEnds, error) {
	if cfg.Path == "" {
		return nil, nil, &LaunchError{Reason: "executable path is required"}
	}
	if _, err := os.Stat(cfg.Path); err != nil {
		return nil, nil, &LaunchError{Reason: "executable not found", Err: err}
	}

	cmd := exec.Command(cfg.Path, buildArgs(cfg)...)

	ends, err := newPipeEnds(cmd)
	if err != nil {
		return nil, nil, &LaunchError{Reason: "failed to create pipes", Err: err}
	}

	if err := cmd.Start(); err != nil {
		ends.close()
		return nil, nil, &LaunchError{Reason: "failed to spawn", Err: err}
	}
	ends.closeChildEnds()

	return cmd, ends, nil
}

func killProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	if err := cmd.Process.Kill(); err != nil {
		return fmt.Errorf("supervisor: kill: %w", err)
	}
	return nil
}
