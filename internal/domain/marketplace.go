package domain

import "time"

// Marketplace is a name-keyed record supplying the treasury that collects
// ticket payments.
type Marketplace struct {
	Name       string
	FeeBps     uint16
	TreasuryID string
	CreatedAt  time.Time
}
