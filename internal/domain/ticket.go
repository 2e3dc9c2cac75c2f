package domain

import "time"

// Ticket attribute keys, in the order they appear on a minted ticket.
const (
	AttrTicketNumber = "Ticket Number"
	AttrPrice        = "Price"
	AttrRow          = "Row"
	AttrSeat         = "Seat"
	AttrScreen       = "Screen"
)

type DelegateKind string

const (
	DelegateFreeze   DelegateKind = "freeze"
	DelegateBurn     DelegateKind = "burn"
	DelegateTransfer DelegateKind = "transfer"
)

// Delegate is a permanent control capability attached to a ticket at mint
// time, authorized under the ticket's update authority. Frozen is only
// meaningful for the freeze delegate.
type Delegate struct {
	Kind   DelegateKind
	Frozen bool
}

type AppDataSchema string

const AppDataSchemaBinary AppDataSchema = "binary"

// AppDataRegistration provisions an out-of-band data channel on a ticket.
// The data authority is the only identity allowed to write to it.
type AppDataRegistration struct {
	DataAuthority string
	Schema        AppDataSchema
}

// Ticket represents one minted ticket asset, a child of its collection.
type Ticket struct {
	ID           string
	CollectionID string
	Owner        string
	Name         string
	URI          string
	Attributes   []Attribute
	Delegates    []Delegate
	AppData      []AppDataRegistration
	CreatedAt    time.Time
}

// Frozen reports the frozen state carried by the ticket's freeze delegate.
func (t Ticket) Frozen() bool {
	for _, d := range t.Delegates {
		if d.Kind == DelegateFreeze {
			return d.Frozen
		}
	}
	return false
}
