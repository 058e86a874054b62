package supervisor

import (
	"encoding/json"
	"os"
	"testing"
	"time"
)

// testHarness wires a Supervisor's run loop to a pair of in-process pipes
// instead of a real child process, so these tests exercise the real
// framing/correlation/dispatch code without spawning a browser. childSend
// lets the test act as the child, writing frames the supervisor will read;
// childRecv lets the test observe what the supervisor wrote.
type testHarness struct {
	sup       *Supervisor
	childSend *os.File // test writes here to simulate the child sending a frame
	childRecv *os.File // test reads here to observe what the supervisor wrote
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()

	childRecv, writeToChild, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	readFromChild, childSend, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		writeToChild.Close()
		readFromChild.Close()
		childRecv.Close()
		childSend.Close()
	})

	cfg := Config{StartTimeout: 200 * time.Millisecond}
	cfg.applyDefaults()

	pipes := &pipeEnds{writeToChild: writeToChild, readFromChild: readFromChild}
	sup := newSupervisor(nil, pipes, cfg)

	go sup.readPump()
	go sup.run()

	return &testHarness{sup: sup, childSend: childSend, childRecv: childRecv}
}

// sendFrame writes raw (without the delimiter) to the simulated child side,
// as if the browser produced this reply or event.
func (h *testHarness) sendFrame(t *testing.T, raw string) {
	t.Helper()
	if _, err := h.childSend.Write(append([]byte(raw), frameDelimiter)); err != nil {
		t.Fatal(err)
	}
}

// readOutgoing reads exactly one delimited frame the supervisor wrote.
func (h *testHarness) readOutgoing(t *testing.T) frame {
	t.Helper()
	buf := make([]byte, 4096)
	n, err := h.childRecv.Read(buf)
	if err != nil {
		t.Fatal(err)
	}
	data := buf[:n]
	if len(data) == 0 || data[len(data)-1] != frameDelimiter {
		t.Fatalf("frame not delimiter-terminated: %q", data)
	}
	var f frame
	if err := json.Unmarshal(data[:len(data)-1], &f); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestSupervisor_CallReplySuccess(t *testing.T) {
	h := newTestHarness(t)

	resultCh := make(chan json.RawMessage, 1)
	errCh := make(chan error, 1)
	go func() {
		v, err := h.sup.Call("Browser.getVersion", nil, "", time.Second)
		resultCh <- v
		errCh <- err
	}()

	out := h.readOutgoing(t)
	if out.Method != "Browser.getVersion" {
		t.Fatalf("method = %q", out.Method)
	}
	h.sendFrame(t, `{"id":0,"result":{"protocolVersion":"1.3"}}`)

	if err := <-errCh; err != nil {
		t.Fatal(err)
	}
	var v VersionInfo
	if err := json.Unmarshal(<-resultCh, &v); err != nil {
		t.Fatal(err)
	}
	if v.ProtocolVersion != "1.3" {
		t.Fatalf("protocolVersion = %q", v.ProtocolVersion)
	}
}

func TestSupervisor_CallReplyError(t *testing.T) {
	h := newTestHarness(t)

	errCh := make(chan error, 1)
	go func() {
		_, err := h.sup.Call("Foo.bar", nil, "", time.Second)
		errCh <- err
	}()

	h.readOutgoing(t)
	h.sendFrame(t, `{"id":0,"error":{"code":-32601,"message":"no such method"}}`)

	err := <-errCh
	be, ok := err.(*BrowserError)
	if !ok {
		t.Fatalf("err = %v, want *BrowserError", err)
	}
	if be.Code != -32601 || be.Message != "no such method" {
		t.Fatalf("got %+v", be)
	}
}

func TestSupervisor_CorrelatesConcurrentCallsOutOfOrder(t *testing.T) {
	h := newTestHarness(t)

	results := make(chan string, 2)
	go func() {
		v, err := h.sup.Call("A", nil, "", time.Second)
		if err != nil {
			t.Error(err)
		}
		results <- string(v)
	}()
	go func() {
		v, err := h.sup.Call("B", nil, "", time.Second)
		if err != nil {
			t.Error(err)
		}
		results <- string(v)
	}()

	first := h.readOutgoing(t)
	second := h.readOutgoing(t)

	// Reply in reverse order of the requests; correlation must be by id,
	// not by arrival order.
	h.sendFrame(t, `{"id":`+itoa(second.ID)+`,"result":{"who":"second"}}`)
	h.sendFrame(t, `{"id":`+itoa(first.ID)+`,"result":{"who":"first"}}`)

	got := map[string]bool{<-results: true, <-results: true}
	if !got[`{"who":"second"}`] || !got[`{"who":"first"}`] {
		t.Fatalf("got %v", got)
	}
}

func itoa(id uint64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func TestSupervisor_EventFanoutToMultipleListeners(t *testing.T) {
	h := newTestHarness(t)

	l1 := h.sup.AddListener("Page.loadEventFired")
	l2 := h.sup.AddListener("Page.loadEventFired")
	other := h.sup.AddListener("Network.requestWillBeSent")

	h.sendFrame(t, `{"method":"Page.loadEventFired","params":{"timestamp":1}}`)

	for _, l := range []*Listener{l1, l2} {
		select {
		case v := <-l.Sink():
			if string(v) != `{"timestamp":1}` {
				t.Fatalf("got %s", v)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for fanout delivery")
		}
	}

	select {
	case v := <-other.Sink():
		t.Fatalf("unrelated listener received %s", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSupervisor_ListenOnceRemovesListenerAfterDelivery(t *testing.T) {
	h := newTestHarness(t)

	resultCh := make(chan json.RawMessage, 1)
	go func() {
		v, err := h.sup.ListenOnce("Page.loadEventFired", time.Second)
		if err != nil {
			t.Error(err)
		}
		resultCh <- v
	}()

	// Give ListenOnce time to register before the event arrives.
	time.Sleep(20 * time.Millisecond)
	h.sendFrame(t, `{"method":"Page.loadEventFired","params":{"timestamp":2}}`)

	if string(<-resultCh) != `{"timestamp":2}` {
		t.Fatal("unexpected payload")
	}

	st := h.sup.Stats()
	if st.ListenerCount != 0 {
		t.Fatalf("listener count = %d, want 0 after ListenOnce returns", st.ListenerCount)
	}
}

func TestSupervisor_CallTimeoutCleansUpPendingEntry(t *testing.T) {
	h := newTestHarness(t)

	_, err := h.sup.Call("Slow.op", nil, "", 30*time.Millisecond)
	if err != ErrAgentTimeout {
		t.Fatalf("err = %v, want ErrAgentTimeout", err)
	}
	h.readOutgoing(t)

	// Give the loop time to process the cleanup message sent by Call.
	var st Stats
	for i := 0; i < 50; i++ {
		st = h.sup.Stats()
		if st.PendingCalls == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("pending entry never cleaned up, stats = %+v", st)
}

func TestSupervisor_LateReplyAfterTimeoutIsDiscarded(t *testing.T) {
	h := newTestHarness(t)

	_, err := h.sup.Call("Slow.op", nil, "", 20*time.Millisecond)
	if err != ErrAgentTimeout {
		t.Fatalf("err = %v", err)
	}
	out := h.readOutgoing(t)

	// Let the cleanup message land, then send a reply for the now-forgotten id.
	time.Sleep(50 * time.Millisecond)
	h.sendFrame(t, `{"id":`+itoa(out.ID)+`,"result":{}}`)

	// No observer is waiting on this id; the assertion is simply that the
	// supervisor keeps running and doesn't panic or deadlock on the stray
	// reply. A follow-up Stats call proves the loop is still alive.
	time.Sleep(20 * time.Millisecond)
	if st := h.sup.Stats(); st.State != "running" {
		t.Fatalf("state = %q, want running", st.State)
	}
}

func TestSupervisor_QuitCleanExit(t *testing.T) {
	h := newTestHarness(t)

	resultCh := make(chan ShutdownReason, 1)
	errCh := make(chan error, 1)
	go func() {
		r, err := h.sup.Quit()
		resultCh <- r
		errCh <- err
	}()

	out := h.readOutgoing(t)
	if out.Method != "Browser.close" {
		t.Fatalf("method = %q, want Browser.close", out.Method)
	}

	h.sup.childExitCh <- nil

	if reason := <-resultCh; reason != ShutdownClean {
		t.Fatalf("reason = %v, want ShutdownClean", reason)
	}
	if err := <-errCh; err != nil {
		t.Fatal(err)
	}
}

func TestSupervisor_QuitForcedKillOnDeadline(t *testing.T) {
	h := newTestHarness(t)
	// killProcess(nil) is a no-op, so the deadline path is safe to exercise
	// even though this harness has no real child.

	resultCh := make(chan ShutdownReason, 1)
	go func() {
		r, _ := h.sup.Quit()
		resultCh <- r
	}()

	h.readOutgoing(t) // Browser.close

	select {
	case reason := <-resultCh:
		if reason != ShutdownForcedKill {
			t.Fatalf("reason = %v, want ShutdownForcedKill", reason)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Quit never returned after shutdown deadline")
	}
}

func TestSupervisor_UnexpectedExitWhileRunning(t *testing.T) {
	h := newTestHarness(t)

	h.sup.childExitCh <- nil

	select {
	case <-h.sup.doneCh:
	case <-time.After(time.Second):
		t.Fatal("supervisor never reported down after unexpected exit")
	}
}
