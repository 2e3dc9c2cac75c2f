package domain

import "time"

// Manager authorizes minting on an organizer's behalf. Authority is not
// independent key material: it is re-derivable from the organizer identity
// and the stored bump nonce (see the authority package), and issuance
// verifies the stored value against a fresh derivation.
type Manager struct {
	OrganizerID string
	Authority   string
	Bump        uint8
	CreatedAt   time.Time
}
