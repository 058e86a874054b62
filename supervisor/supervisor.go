// Package supervisor owns a headless browser child process and speaks the
// Chrome DevTools Protocol's pipe-mode framing to it: NUL-terminated JSON
// messages over anonymous pipes bound to the child's file descriptors 3
// (read) and 4 (write). A single goroutine (run) owns all mutable state —
// the pending-request map, the listener list, the receive buffer, the
// shutdown flag — and every other goroutine (the read pump, the process
// waiter, every caller of Call/Send/ListenOnce/Quit) communicates with it
// exclusively through channels. This mirrors chromedp's Browser.run loop
// and domwatch/internal/browser.Manager's single-owner state discipline;
// see DESIGN.md for the full grounding.
package supervisor

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"
)

const readChunkSize = 4096

// callRequest is what Call and Send post to the run loop. reply is nil for
// a Send (fire-and-forget); non-nil for a Call, which needs id correlation.
// idCh, when non-nil, receives the id the loop assigned, so a caller whose
// own timeout fires can tell the loop to drop the now-abandoned pending
// entry instead of leaking it forever (§3 "removed exactly once on reply,
// error, or timeout").
type callRequest struct {
	method  string
	params  json.RawMessage
	session string
	reply   chan callResult // nil for Send
	idCh    chan uint64     // nil unless reply is also set
}

type callResult struct {
	value json.RawMessage
	err   error
}

type addListenerRequest struct {
	method string
	reply  chan *Listener
}

// TraceEntry is one frame (outgoing request or incoming reply/event)
// handed to an optional TraceSink for audit logging (supervisor/trace).
type TraceEntry struct {
	Direction string // "out" or "in"
	Data      []byte
	At        time.Time
}

// TraceSink receives every frame that crosses the wire. Supervisor never
// blocks delivering to it; implementations (supervisor/trace.Store) are
// expected to buffer internally.
type TraceSink interface {
	Record(TraceEntry)
}

// Supervisor owns one launched browser child process. Create one with
// Launch; every exported method is safe for concurrent use by multiple
// goroutines.
type Supervisor struct {
	cmd   *exec.Cmd
	pipes *pipeEnds
	cfg   Config

	logger   *slog.Logger
	logLevel atomic.Int32

	callCh         chan *callRequest
	addListenerCh  chan *addListenerRequest
	removeListenerCh chan *Listener
	quitCh         chan *quitRequest
	cleanupCh      chan uint64
	readCh         chan []byte
	childExitCh    chan error
	statsCh        chan chan Stats

	doneCh chan struct{}

	traceMu sync.RWMutex
	trace   TraceSink

	finalMu     sync.Mutex
	finalResult *quitResult
}

func newSupervisor(cmd *exec.Cmd, pipes *pipeEnds, cfg Config) *Supervisor {
	s := &Supervisor{
		cmd:              cmd,
		pipes:            pipes,
		cfg:              cfg,
		logger:           slog.Default(),
		callCh:           make(chan *callRequest),
		addListenerCh:    make(chan *addListenerRequest),
		removeListenerCh: make(chan *Listener),
		quitCh:           make(chan *quitRequest),
		cleanupCh:        make(chan uint64, 16),
		readCh:           make(chan []byte, 16),
		childExitCh:      make(chan error, 1),
		statsCh:          make(chan chan Stats),
		doneCh:           make(chan struct{}),
	}
	s.logLevel.Store(int32(cfg.LogLevel))
	return s
}

// Launch starts the browser process described by cfg, wires its pipe-mode
// debugging transport, and probes it with Browser.getVersion before
// returning, so a caller never receives a handle to an unresponsive child
// (§4.1 "launch").
func Launch(cfg Config) (*Supervisor, error) {
	cfg.applyDefaults()

	cmd, pipes, err := spawn(&cfg)
	if err != nil {
		return nil, err
	}

	s := newSupervisor(cmd, pipes, cfg)

	go s.readPump()
	go s.waitChild()
	go s.run()

	if _, err := s.GetVersion(cfg.StartTimeout); err != nil {
		s.forceStop()
		return nil, &LaunchError{Reason: "unresponsive after start", Err: err}
	}

	return s, nil
}

// SetTraceSink installs (or clears, with nil) the optional frame-audit
// sink. Safe to call at any time.
func (s *Supervisor) SetTraceSink(sink TraceSink) {
	s.traceMu.Lock()
	s.trace = sink
	s.traceMu.Unlock()
}

// SessionDefault returns the configured fallback session id, used by
// supervisor/introspect's ad-hoc call endpoint when a caller omits one.
func (s *Supervisor) SessionDefault() string {
	return s.cfg.SessionDefault
}

func (s *Supervisor) recordTrace(direction string, data []byte) {
	s.traceMu.RLock()
	sink := s.trace
	s.traceMu.RUnlock()
	if sink == nil {
		return
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	sink.Record(TraceEntry{Direction: direction, Data: cp, At: time.Now()})
}

// SetLogLevel changes how much the supervisor logs about its own
// operation (§4.1 "set_log_level"). It never affects wire traffic.
func (s *Supervisor) SetLogLevel(level LogLevel) {
	s.logLevel.Store(int32(level))
}

func (s *Supervisor) log(level LogLevel, msg string, args ...any) {
	if LogLevel(s.logLevel.Load()) < level {
		return
	}
	switch level {
	case LogDebug:
		s.logger.Debug(msg, args...)
	case LogInfo:
		s.logger.Info(msg, args...)
	case LogWarnings:
		s.logger.Warn(msg, args...)
	}
}

// Call issues method with params (may be nil), optionally scoped to
// session, and blocks until a reply arrives, timeout elapses, or the
// supervisor reports it is down (§4.1 "call").
func (s *Supervisor) Call(method string, params json.RawMessage, session string, timeout time.Duration) (json.RawMessage, error) {
	reply := make(chan callResult, 1)
	idCh := make(chan uint64, 1)
	req := &callRequest{method: method, params: params, session: session, reply: reply, idCh: idCh}

	select {
	case s.callCh <- req:
	case <-s.doneCh:
		return nil, ErrAgentDown
	}

	select {
	case res := <-reply:
		return res.value, res.err
	case <-time.After(timeout):
		select {
		case id := <-idCh:
			select {
			case s.cleanupCh <- id:
			default:
			}
		default:
		}
		return nil, ErrAgentTimeout
	case <-s.doneCh:
		return nil, ErrAgentDown
	}
}

// Send issues method with params and does not wait for a reply. Failures
// are logged, never returned (§4.1 "send", §7 "send never returns an
// error").
func (s *Supervisor) Send(method string, params json.RawMessage) {
	req := &callRequest{method: method, params: params}
	select {
	case s.callCh <- req:
	case <-s.doneCh:
		s.log(LogWarnings, "send after shutdown", "method", method)
	}
}

// AddListener registers a sink for every event whose method equals method.
// The sink is delivered to until RemoveListener is called or the
// supervisor stops (§4.1 "add_listener").
func (s *Supervisor) AddListener(method string) *Listener {
	reply := make(chan *Listener, 1)
	req := &addListenerRequest{method: method, reply: reply}
	select {
	case s.addListenerCh <- req:
	case <-s.doneCh:
		return &Listener{method: method, sink: make(chan json.RawMessage, listenerSinkBuffer)}
	}
	return <-reply
}

// RemoveListener unregisters a listener previously returned by AddListener
// or ListenOnce (§4.1 "remove_listener").
func (s *Supervisor) RemoveListener(l *Listener) {
	select {
	case s.removeListenerCh <- l:
	case <-s.doneCh:
	}
}

// ListenOnce installs a listener for method, waits for exactly one event
// or timeout, and removes the listener before returning (§4.1
// "listen_once").
func (s *Supervisor) ListenOnce(method string, timeout time.Duration) (json.RawMessage, error) {
	l := s.AddListener(method)
	defer s.RemoveListener(l)

	select {
	case v := <-l.Sink():
		return v, nil
	case <-time.After(timeout):
		return nil, ErrAgentTimeout
	case <-s.doneCh:
		return nil, ErrAgentDown
	}
}

// GetVersion calls Browser.getVersion and decodes the reply (§4.1
// "get_version").
func (s *Supervisor) GetVersion(timeout time.Duration) (VersionInfo, error) {
	raw, err := s.Call("Browser.getVersion", nil, "", timeout)
	if err != nil {
		return VersionInfo{}, err
	}
	var v VersionInfo
	if err := json.Unmarshal(raw, &v); err != nil {
		return VersionInfo{}, &ProtocolError{Domain: "Browser", Type: "GetVersionResponse", Err: err}
	}
	return v, nil
}

// Stats is a point-in-time snapshot of the supervisor's internal state,
// for introspection (SPEC_FULL.md §10.5, package supervisor/introspect).
type Stats struct {
	State         string `json:"state"`
	PendingCalls  int    `json:"pending_calls"`
	ListenerCount int    `json:"listener_count"`
	NextRequestID uint64 `json:"next_request_id"`
}

// Stats reports a snapshot of the event loop's internal bookkeeping. Safe
// to call concurrently; like every other accessor it round-trips through
// the single event loop rather than reading loop-owned state directly.
func (s *Supervisor) Stats() Stats {
	reply := make(chan Stats, 1)
	select {
	case s.statsCh <- reply:
	case <-s.doneCh:
		return Stats{State: stateStopped.String()}
	}
	select {
	case st := <-reply:
		return st
	case <-s.doneCh:
		return Stats{State: stateStopped.String()}
	}
}

// Quit sends Browser.close, waits for the child to exit cleanly, and
// force-kills it if it hasn't exited by the deadline (2x StartTimeout).
// It reports which of those three paths was actually taken (§4.1 "quit",
// SPEC_FULL.md §10.6).
func (s *Supervisor) Quit() (ShutdownReason, error) {
	reply := make(chan quitResult, 1)
	select {
	case s.quitCh <- &quitRequest{reply: reply}:
	case <-s.doneCh:
		return s.finalOrDown()
	}

	select {
	case res := <-reply:
		return res.reason, res.err
	case <-s.doneCh:
		return s.finalOrDown()
	}
}

func (s *Supervisor) finalOrDown() (ShutdownReason, error) {
	s.finalMu.Lock()
	defer s.finalMu.Unlock()
	if s.finalResult != nil {
		return s.finalResult.reason, s.finalResult.err
	}
	return ShutdownAbnormalExit, ErrAgentDown
}

// forceStop is used when Launch's readiness probe fails: there is no
// established caller waiting on Quit, so it just kills the process. The
// run loop stops once waitChild reports the exit.
func (s *Supervisor) forceStop() {
	killProcess(s.cmd)
}

func (s *Supervisor) readPump() {
	buf := make([]byte, readChunkSize)
	for {
		n, err := s.pipes.readFromChild.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case s.readCh <- chunk:
			case <-s.doneCh:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

func (s *Supervisor) waitChild() {
	err := s.cmd.Wait()
	s.childExitCh <- err
}

// writeFrame encodes the request under the id the run loop assigned and
// writes it plus the frame delimiter to the child's read pipe. The loop
// advances its id counter on every attempt, including failed ones, so
// correlation never becomes ambiguous (§4.1 "Write path").
func (s *Supervisor) writeFrame(id uint64, method string, params json.RawMessage, session string) error {
	req := &outgoingRequest{ID: id, Method: method, Params: params, SessionID: session}
	data, err := req.encode()
	if err != nil {
		return err
	}
	data = append(data, frameDelimiter)

	if _, err := s.pipes.writeToChild.Write(data); err != nil {
		return fmt.Errorf("%w: %v", ErrPortClosed, err)
	}
	s.recordTrace("out", data)
	return nil
}

// run is the single event loop. All mutation of pending/listeners/rxBuffer
// happens here and only here (§5 "Scheduling").
func (s *Supervisor) run() {
	var nextID uint64
	pending := make(map[uint64]chan callResult)
	var listeners []*Listener
	var fb frameBuffer

	state := stateRunning
	var shutdownWaiters []chan quitResult
	var deadlineTimer *time.Timer
	var deadlineC <-chan time.Time

	finish := func(reason ShutdownReason, err error) {
		state = stateStopped
		if deadlineTimer != nil {
			deadlineTimer.Stop()
		}
		s.finalMu.Lock()
		s.finalResult = &quitResult{reason: reason, err: err}
		s.finalMu.Unlock()
		for _, w := range shutdownWaiters {
			w <- quitResult{reason: reason, err: err}
		}
		shutdownWaiters = nil
		for _, ch := range pending {
			ch <- callResult{err: ErrAgentDown}
		}
		pending = nil
		close(s.doneCh)
	}

	for state != stateStopped {
		select {
		case req := <-s.callCh:
			id := nextID
			nextID++

			var replyCh chan callResult
			if req.reply != nil {
				replyCh = req.reply
				pending[id] = replyCh
				if req.idCh != nil {
					req.idCh <- id
				}
			}

			if err := s.writeFrame(id, req.method, req.params, req.session); err != nil {
				if replyCh != nil {
					delete(pending, id)
					replyCh <- callResult{err: err}
				} else {
					s.log(LogWarnings, "send failed", "method", req.method, "error", err)
				}
			}

		case id := <-s.cleanupCh:
			delete(pending, id)

		case req := <-s.addListenerCh:
			l := &Listener{method: req.method, sink: make(chan json.RawMessage, listenerSinkBuffer)}
			listeners = append(listeners, l)
			req.reply <- l

		case l := <-s.removeListenerCh:
			for i, cand := range listeners {
				if cand == l {
					listeners = append(listeners[:i], listeners[i+1:]...)
					break
				}
			}

		case reply := <-s.statsCh:
			reply <- Stats{
				State:         state.String(),
				PendingCalls:  len(pending),
				ListenerCount: len(listeners),
				NextRequestID: nextID,
			}

		case chunk := <-s.readCh:
			for _, raw := range fb.feed(chunk) {
				s.recordTrace("in", raw)
				s.dispatchFrame(raw, pending, listeners)
			}

		case req := <-s.quitCh:
			switch state {
			case stateShutdownRequested:
				shutdownWaiters = append(shutdownWaiters, req.reply)
			case stateRunning:
				if err := s.writeFrame(nextID, "Browser.close", nil, ""); err != nil {
					s.log(LogWarnings, "browser.close send failed", "error", err)
				}
				nextID++
				state = stateShutdownRequested
				shutdownWaiters = append(shutdownWaiters, req.reply)
				deadlineTimer = time.NewTimer(2 * s.cfg.StartTimeout)
				deadlineC = deadlineTimer.C
			}

		case exitErr := <-s.childExitCh:
			switch state {
			case stateShutdownRequested:
				if exitErr == nil {
					finish(ShutdownClean, nil)
				} else {
					s.log(LogWarnings, "browser exited abnormally during shutdown", "error", exitErr)
					finish(ShutdownAbnormalExit, exitErr)
				}
			case stateRunning:
				s.log(LogWarnings, "browser exited unexpectedly")
				finish(ShutdownAbnormalExit, fmt.Errorf("supervisor: unexpected exit: %w", errOrAgentDown(exitErr)))
			case stateStopped:
				// Already reported via the forced-kill deadline path; ignore.
			}

		case <-deadlineC:
			if state == stateShutdownRequested {
				s.log(LogWarnings, "shutdown deadline exceeded, killing process")
				if err := killProcess(s.cmd); err != nil {
					s.log(LogWarnings, "force kill failed", "error", err)
				}
				finish(ShutdownForcedKill, fmt.Errorf("supervisor: shutdown deadline exceeded"))
			}
		}
	}
}

func errOrAgentDown(err error) error {
	if err != nil {
		return err
	}
	return ErrAgentDown
}

// dispatchFrame classifies and routes one complete, already-delimiter-
// stripped frame (§4.1 "Reply dispatch").
func (s *Supervisor) dispatchFrame(raw []byte, pending map[uint64]chan callResult, listeners []*Listener) {
	var f frame
	if err := json.Unmarshal(raw, &f); err != nil {
		s.log(LogWarnings, "dropping malformed frame", "error", err)
		return
	}

	switch f.kind() {
	case frameReplySuccess:
		if ch, ok := pending[f.ID]; ok {
			delete(pending, f.ID)
			ch <- callResult{value: f.Result}
		} else {
			s.log(LogDebug, "dropping unmatched reply", "id", f.ID)
		}

	case frameReplyError:
		if ch, ok := pending[f.ID]; ok {
			delete(pending, f.ID)
			ch <- callResult{err: browserErrorFrom(f.Error)}
		} else {
			s.log(LogDebug, "dropping unmatched error reply", "id", f.ID)
		}

	case frameEvent:
		for _, l := range listeners {
			if l.method == f.Method {
				l.deliver(f.Params)
			}
		}

	default:
		s.log(LogWarnings, "dropping malformed frame shape", "raw", string(raw))
	}
}

func browserErrorFrom(e *wireError) *BrowserError {
	be := &BrowserError{Code: 0, Message: "No message", Data: "No data"}
	if e == nil {
		return be
	}
	be.Code = e.Code
	if e.Message != "" {
		be.Message = e.Message
	}
	if e.Data != "" {
		be.Data = e.Data
	}
	return be
}
