package decoder

import (
	"time"

	"github.com/gridflow/bmra/schema"
)

// Message is a decoded BMRA message. Every field code in Fields and in each of
// the Datapoints is accepted by the schema of (Type, Subtype).
type Message struct {
	ReceivedTime time.Time          `json:"receivedTime"`
	Type         schema.MessageType `json:"type"`
	Subtype      string             `json:"subtype"`
	UnitID       string             `json:"unitId,omitempty"`
	Fields       Fields             `json:"fields"`

	// Datapoints is nil when the body had no repeated group count field.
	Datapoints []Fields `json:"datapoints,omitempty"`
}

func (m *Message) Key() schema.Key {
	return schema.Key{Type: m.Type, Subtype: m.Subtype}
}

func (m *Message) HasDatapoints() bool {
	return m.Datapoints != nil
}
