//go:build windows

package supervisor

import (
	"os/exec"
)

// pipeEnds on Windows is unimplemented: named-pipe-based fd inheritance for
// child processes doesn't map onto *os.File the way anonymous Unix pipes do,
// and nothing in this codebase has exercised that path. newPipeEnds fails
// fast with ErrOSUnsupported rather than pretending to support it (§4.1
// launch error taxonomy: "spawn failure, timeout, OS-unsupported").
type pipeEnds struct{}

func newPipeEnds(cmd *exec.Cmd) (*pipeEnds, error) {
	return nil, ErrOSUnsupported
}

func (p *pipeEnds) closeChildEnds() {}

func (p *pipeEnds) close() {}
