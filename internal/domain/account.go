package domain

// Account is a ledger balance holder: a buyer or a marketplace treasury.
type Account struct {
	ID      string
	Balance uint64
}
