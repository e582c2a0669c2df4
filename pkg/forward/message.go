// Package forward pushes subscription updates into message sinks: MQTT,
// Kafka, Redis/Valkey and NATS.
package forward

import (
	"encoding/json"
	"time"

	"github.com/kuksa-sdk/kuksa-go/pkg/value"
)

// Message is the JSON record written to every sink.
type Message struct {
	Path      string `json:"path"`
	Value     any    `json:"value"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp,omitempty"`
	Source    string `json:"source"`
}

// NewMessage converts e. Entries without a current value are reported as
// not ok.
func NewMessage(source string, e value.Entry) (Message, bool) {
	if e.Value == nil || !e.Value.HasValue() {
		return Message{}, false
	}
	m := Message{
		Path:   e.Path,
		Value:  jsonValue(e.Value.Value),
		Type:   e.Value.Value.Type().String(),
		Source: source,
	}
	if !e.Value.Timestamp.IsZero() {
		m.Timestamp = e.Value.Timestamp.UTC().Format(time.RFC3339Nano)
	}
	return m, true
}

// jsonValue returns the raw payload of v. encoding/json writes []uint8 as
// base64, so uint8 arrays are widened to keep them numeric.
func jsonValue(v value.Value) any {
	if u, ok := v.Raw().([]uint8); ok {
		out := make([]uint16, len(u))
		for i, x := range u {
			out[i] = uint16(x)
		}
		return out
	}
	return v.Raw()
}

// Payload returns the JSON encoding of m.
func (m Message) Payload() ([]byte, error) {
	return json.Marshal(m)
}
