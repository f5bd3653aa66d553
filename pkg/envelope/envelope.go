// Package envelope defines the wire format for change events pushed to
// connected boards. Delivery is best-effort: at most once per underlying
// change, no ordering guarantee across events.
package envelope

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"time"
)

type Kind string

const (
	KindInsert Kind = "INSERT"
	KindUpdate Kind = "UPDATE"
	KindDelete Kind = "DELETE"
)

type Envelope struct {
	ID        string          `json:"id"`
	Kind      Kind            `json:"kind"`
	Table     string          `json:"table"`
	Record    json.RawMessage `json:"record,omitempty"`
	Previous  json.RawMessage `json:"previous_record,omitempty"`
	Timestamp int64           `json:"ts"`
}

func New(kind Kind, table string) Envelope {
	return Envelope{
		ID:        generateID(),
		Kind:      kind,
		Table:     table,
		Timestamp: time.Now().UnixMilli(),
	}
}

// NewChange builds a change event. previous may be nil (inserts, and any
// update where the prior row was not captured).
func NewChange(kind Kind, table string, record, previous interface{}) (Envelope, error) {
	e := New(kind, table)
	if record != nil {
		raw, err := json.Marshal(record)
		if err != nil {
			return e, err
		}
		e.Record = raw
	}
	if previous != nil {
		raw, err := json.Marshal(previous)
		if err != nil {
			return e, err
		}
		e.Previous = raw
	}
	return e, nil
}

func (e Envelope) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

func generateID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}
