package domain

// Well-known collection attribute keys consulted during issuance.
const (
	AttrCapacity             = "Capacity"
	AttrIsTicketTransferable = "IsTicketTransferable"
)

// Attribute is a named string value attached to a collection or ticket.
type Attribute struct {
	Key   string
	Value string
}

// Collection is the parent record for an event. The record body is stored
// opaquely by the ledger; decode it with the codec package.
type Collection struct {
	ID     string
	Record []byte
}

// CollectionRecord is the decoded form of a collection's stored record.
type CollectionRecord struct {
	Name            string
	URI             string
	UpdateAuthority string
	NumMinted       uint32
	Attributes      []Attribute
}

// Attribute returns the value for key, reporting whether it was present.
func (r CollectionRecord) Attribute(key string) (string, bool) {
	for _, attr := range r.Attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}
