// Package cdp holds the handful of root types every generated domain
// package shares, mirroring the way chromedp/cdproto keeps a small shared
// root package instead of duplicating these types per domain.
package cdp

import (
	"encoding/json"
	"log/slog"
)

// Any is the Go representation of a CDP property declared type "any": a
// dynamic, schema-less payload (Runtime.RemoteObject.value being the
// canonical example). Per §4.2's encoder semantics, encoding an Any is a
// no-op that emits JSON null and logs a warning — dynamic values are not
// round-trippable through typed bindings, so callers needing to send one
// bypass the generated command and speak to the supervisor directly.
// Decoding captures the raw bytes opaquely for callers who only need to
// forward or inspect them, not structurally access them.
type Any struct {
	Raw json.RawMessage
}

func (a Any) MarshalJSON() ([]byte, error) {
	if len(a.Raw) > 0 {
		slog.Default().Warn("cdp: encoding any-typed field as null", "discarded_bytes", len(a.Raw))
	}
	return []byte("null"), nil
}

func (a *Any) UnmarshalJSON(data []byte) error {
	a.Raw = append(a.Raw[:0], data...)
	return nil
}
