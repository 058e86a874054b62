package supervisor

import (
	"encoding/json"
	"testing"
)

func TestListener_DeliverAndDrain(t *testing.T) {
	l := &Listener{method: "Page.loadEventFired", sink: make(chan json.RawMessage, 2)}

	l.deliver(json.RawMessage(`{"n":1}`))
	l.deliver(json.RawMessage(`{"n":2}`))

	if got := <-l.Sink(); string(got) != `{"n":1}` {
		t.Fatalf("first = %s", got)
	}
	if got := <-l.Sink(); string(got) != `{"n":2}` {
		t.Fatalf("second = %s", got)
	}
}

func TestListener_DeliverDropsNewestWhenFull(t *testing.T) {
	l := &Listener{method: "Page.loadEventFired", sink: make(chan json.RawMessage, 1)}

	l.deliver(json.RawMessage(`{"n":1}`))
	l.deliver(json.RawMessage(`{"n":2}`)) // buffer full, dropped without blocking

	got := <-l.Sink()
	if string(got) != `{"n":1}` {
		t.Fatalf("retained = %s, want the first delivery kept", got)
	}
	select {
	case extra := <-l.Sink():
		t.Fatalf("unexpected extra delivery: %s", extra)
	default:
	}
}

func TestListener_Method(t *testing.T) {
	l := &Listener{method: "Target.targetCreated", sink: make(chan json.RawMessage, 1)}
	if l.Method() != "Target.targetCreated" {
		t.Fatalf("Method() = %q", l.Method())
	}
}
