//go:build !windows

package supervisor

import (
	"os"
	"os/exec"
)

// pipeEnds holds the supervisor's half of the two anonymous pipes used for
// pipe-mode CDP debugging: writeToChild feeds the child's fd 3 (its read
// end), readFromChild drains the child's fd 4 (its write end).
//
// Grounded on domwatch/internal/browser/manager.go's exec.Cmd construction
// style; the fd-3/fd-4 ExtraFiles wiring itself follows the documented
// pipe-mode contract in §4.1/§6 ("--remote-debugging-pipe").
type pipeEnds struct {
	writeToChild   *os.File
	readFromChild  *os.File
	childReadEnd   *os.File // closed in the parent once Start succeeds
	childWriteEnd  *os.File // closed in the parent once Start succeeds
}

// newPipeEnds creates the two OS pipes and wires cmd.ExtraFiles so the
// child inherits fd 3 (read) and fd 4 (write), matching the layout
// "--remote-debugging-pipe" expects.
func newPipeEnds(cmd *exec.Cmd) (*pipeEnds, error) {
	childReadEnd, writeToChild, err := os.Pipe() // fd 3 in child, write end in parent
	if err != nil {
		return nil, err
	}
	readFromChild, childWriteEnd, err := os.Pipe() // read end in parent, fd 4 in child
	if err != nil {
		childReadEnd.Close()
		writeToChild.Close()
		return nil, err
	}

	cmd.ExtraFiles = []*os.File{childReadEnd, childWriteEnd}

	return &pipeEnds{
		writeToChild:  writeToChild,
		readFromChild: readFromChild,
		childReadEnd:  childReadEnd,
		childWriteEnd: childWriteEnd,
	}, nil
}

// closeChildEnds closes the parent's copy of the file descriptors handed
// to the child, once the child process has started and inherited its own
// copies. Keeping them open in the parent would mean the parent's read on
// readFromChild never observes EOF after the child exits.
func (p *pipeEnds) closeChildEnds() {
	p.childReadEnd.Close()
	p.childWriteEnd.Close()
}

func (p *pipeEnds) close() {
	p.writeToChild.Close()
	p.readFromChild.Close()
}
