// Package deployment implements the two save/read variants served on top of
// a single storage slot.
package deployment

import (
	"fmt"

	slotErr "github.com/sajjad-MoBe/slotstore/internal/errors"
	"github.com/sajjad-MoBe/slotstore/internal/storage"
)

// Kind names a deployment variant
type Kind string

const (
	// KindMessage saves via POST /save {"text"} and reads via GET /read
	KindMessage Kind = "message"
	// KindName saves via POST /post {"name"} and reads via GET /get
	KindName Kind = "name"
)

const (
	// MessageSaved is the confirmation returned by the message deployment
	MessageSaved = "Message saved!"
	// NoNameSaved is returned by the name deployment when nothing is stored
	NoNameSaved = "No name saved"
	// absentName is how the name deployment echoes a missing field
	absentName = "None"
)

// Deployment is a save/read variant over a slot
type Deployment interface {
	Kind() Kind
	// Validate checks the request field against the deployment's schema.
	Validate(field *string) error
	// Save stores field and returns the confirmation message.
	Save(field *string) string
	// Read returns the stored value or the deployment's sentinel.
	Read() string
}

// Routes describes the HTTP surface of a deployment
type Routes struct {
	SavePath  string
	ReadPath  string
	Field     string
	ReadField string
}

// RoutesFor returns the HTTP surface for the given kind
func RoutesFor(kind Kind) Routes {
	if kind == KindName {
		return Routes{SavePath: "/post", ReadPath: "/get", Field: "name", ReadField: "name"}
	}
	return Routes{SavePath: "/save", ReadPath: "/read", Field: "text", ReadField: "saved_message"}
}

// ParseKind parses a deployment name
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindMessage, KindName:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown deployment %q: must be %q or %q", s, KindMessage, KindName)
}

// New constructs the deployment of the given kind over slot
func New(kind Kind, slot *storage.Slot) (Deployment, error) {
	switch kind {
	case KindMessage:
		return NewMessage(slot), nil
	case KindName:
		return NewName(slot), nil
	}
	return nil, fmt.Errorf("unknown deployment %q", kind)
}

// Message stores free text; a missing field is stored as the empty string.
type Message struct {
	slot *storage.Slot
}

func NewMessage(slot *storage.Slot) *Message {
	return &Message{slot: slot}
}

func (m *Message) Kind() Kind { return KindMessage }

func (m *Message) Validate(field *string) error {
	if field == nil {
		return slotErr.New(slotErr.ErrorTypeValidation, "field required: text", nil)
	}
	return nil
}

func (m *Message) Save(field *string) string {
	text := ""
	if field != nil {
		text = *field
	}
	m.slot.Save(&text)
	return MessageSaved
}

func (m *Message) Read() string {
	text, _ := m.slot.Read()
	return text
}

// Name stores an optional name; a missing field is stored as absent.
type Name struct {
	slot *storage.Slot
}

func NewName(slot *storage.Slot) *Name {
	return &Name{slot: slot}
}

func (n *Name) Kind() Kind { return KindName }

func (n *Name) Validate(*string) error { return nil }

func (n *Name) Save(field *string) string {
	n.slot.Save(field)
	if field == nil {
		return "Saved: " + absentName
	}
	return "Saved: " + *field
}

// Read treats the empty string like an absent name.
func (n *Name) Read() string {
	name, ok := n.slot.Read()
	if !ok || name == "" {
		return NoNameSaved
	}
	return name
}
