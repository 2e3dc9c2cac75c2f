// Package authority derives deterministic signing identities from stable
// inputs instead of storing independent key material. A handle is a
// domain-separated BLAKE3 keyed hash over an identity and a bump nonce:
// anyone holding the same inputs re-derives the same handle, so the ledger
// can verify a stored authority without a live signature from its owner.
package authority

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Handle is a 32-byte derived authority identity.
type Handle [32]byte

func (h Handle) String() string {
	return hex.EncodeToString(h[:])
}

// DefaultBump is the first nonce probed when establishing a new derived
// authority. Stored on the owning record and required to re-derive it.
const DefaultBump uint8 = 255

// domainKey is a 32-byte key for BLAKE3 keyed hashing. Distinct keys keep
// manager and treasury derivations from ever colliding even on identical
// identity bytes. The values are ASCII domain names zero-padded to 32
// bytes, readable in hex dumps.
type domainKey [32]byte

var (
	managerDomainKey = domainKey{
		'm', 'i', 'n', 't', 'g', 'a', 't', 'e', '.', 'a', 'u', 't', 'h', '.',
		'm', 'a', 'n', 'a', 'g', 'e', 'r', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	treasuryDomainKey = domainKey{
		'm', 'i', 'n', 't', 'g', 'a', 't', 'e', '.', 'a', 'u', 't', 'h', '.',
		't', 'r', 'e', 'a', 's', 'u', 'r', 'y', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// DeriveManager computes the signing authority that mints on the given
// organizer's behalf.
func DeriveManager(organizerID string, bump uint8) Handle {
	return derive(managerDomainKey, organizerID, bump)
}

// DeriveTreasury computes the treasury account identity for a marketplace.
func DeriveTreasury(marketplaceName string, bump uint8) Handle {
	return derive(treasuryDomainKey, marketplaceName, bump)
}

func derive(key domainKey, identity string, bump uint8) Handle {
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		// Only reachable with a key of the wrong length, which the
		// domainKey type rules out.
		panic("authority: keyed hasher initialization failed: " + err.Error())
	}
	_, _ = hasher.Write([]byte(identity))
	_, _ = hasher.Write([]byte{bump})

	var h Handle
	copy(h[:], hasher.Sum(nil))
	return h
}
