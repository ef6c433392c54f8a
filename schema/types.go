// Package schema holds the static BMRA field schema: which field codes every
// (message type, subtype) pair accepts and how each field code is cast.
package schema

import (
	"fmt"
)

type MessageType string

const (
	BM      MessageType = "BM"
	BP      MessageType = "BP"
	System  MessageType = "SYSTEM"
	Dynamic MessageType = "DYNAMIC"
	Info    MessageType = "INFO"
)

var messageTypes = []MessageType{BM, BP, System, Dynamic, Info}

// MessageTypes returns every known message type in a stable order.
func MessageTypes() []MessageType {
	return append([]MessageType(nil), messageTypes...)
}

func ParseMessageType(s string) (MessageType, bool) {
	for _, t := range messageTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// PerUnit reports whether subjects of this type always carry the unit id in
// the third segment and the subtype in the fourth.
func (t MessageType) PerUnit() bool {
	switch t {
	case BM, BP, Dynamic:
		return true
	default:
		return false
	}
}

// Key identifies a message shape.
type Key struct {
	Type    MessageType
	Subtype string
}

func (k Key) String() string {
	return fmt.Sprintf("%s.%s", k.Type, k.Subtype)
}
