package supervisor

import "bytes"

// frameDelimiter terminates every JSON message on the pipe-mode debugging
// wire. See §4.1 "Transport framing".
const frameDelimiter = byte(0x00)

// frameBuffer accumulates bytes read from the child's write pipe and
// splits them into complete, NUL-terminated frames. It is the Go analogue
// of daabr-chrome-vision's bufio.SplitFunc (scanMessages) adapted to an
// explicit append-then-split buffer, since the supervisor's single loop
// needs to own the buffer across reads rather than delegate to a
// bufio.Scanner goroutine.
//
// Required properties (§4.1, §8):
//   - a frame spanning multiple reads is reassembled;
//   - multiple frames in one read are each delivered in order;
//   - a read whose trailing byte is 0x00 yields zero leftover;
//   - buffering never loses or duplicates a byte.
type frameBuffer struct {
	buf []byte
}

// feed appends chunk to the buffer and returns every complete frame found,
// in order, leaving any trailing partial frame in the buffer for the next
// call.
func (fb *frameBuffer) feed(chunk []byte) [][]byte {
	fb.buf = append(fb.buf, chunk...)

	var frames [][]byte
	for {
		i := bytes.IndexByte(fb.buf, frameDelimiter)
		if i < 0 {
			break
		}
		// Copy out: fb.buf is reused and mutated on the next append, so a
		// frame slice must not alias it.
		f := make([]byte, i)
		copy(f, fb.buf[:i])
		frames = append(frames, f)
		fb.buf = fb.buf[i+1:]
	}

	// Compact so the retained backing array doesn't grow unboundedly
	// across many small reads.
	if len(fb.buf) > 0 {
		rest := make([]byte, len(fb.buf))
		copy(rest, fb.buf)
		fb.buf = rest
	} else {
		fb.buf = nil
	}

	return frames
}

// pending returns the bytes currently buffered with no terminating frame
// delimiter yet observed.
func (fb *frameBuffer) pending() []byte {
	return fb.buf
}
