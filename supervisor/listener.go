package supervisor

import "encoding/json"

// listenerSinkBuffer sizes every listener's channel. The supervisor never
// blocks delivering to a listener (§5 "neither mutates supervisor state
// directly... forward data as messages"); a generous static buffer is the
// same tradeoff chromedp makes for its per-target event queue
// (`eventQueue: make(chan *cdproto.Message, 1024)`) and domwatch's
// observer.rawCh.
const listenerSinkBuffer = 1024

// Listener is a sink subscribed to one event method name. Zero or more
// listeners may exist per method; delivery to a given listener is ordered
// by arrival, but listeners are otherwise unordered with respect to each
// other.
type Listener struct {
	method string
	sink   chan json.RawMessage
	id     uint64
}

// Sink returns the channel events for this listener's method are delivered
// on. The channel is never closed by the supervisor while the listener is
// registered; RemoveListener (or the supervisor stopping) is the only way
// delivery ends.
func (l *Listener) Sink() <-chan json.RawMessage { return l.sink }

// Method returns the event method name this listener was registered for.
func (l *Listener) Method() string { return l.method }

// deliver enqueues params on the listener's sink without blocking. If the
// consumer has fallen behind the buffer, the oldest-arriving events are
// retained and the newest is dropped rather than stalling the supervisor
// loop — consumers are expected to drain (§4.1 "Listener semantics").
func (l *Listener) deliver(params json.RawMessage) {
	select {
	case l.sink <- params:
	default:
	}
}
