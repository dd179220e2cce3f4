package validation

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Identifier is a 32-byte platform identifier for contract owners and
// contracts.
type Identifier [32]byte

// NewRandomIdentifier generates a fresh random identifier.
func NewRandomIdentifier() (Identifier, error) {
	var id Identifier
	if _, err := rand.Read(id[:]); err != nil {
		return id, fmt.Errorf("failed to generate identifier: %w", err)
	}
	return id, nil
}

// DeriveContractID derives a deterministic contract identifier from the
// owner identifier and per-contract entropy.
func DeriveContractID(ownerID Identifier, entropy Identifier) Identifier {
	return Identifier(blake2b.Sum256(append(ownerID[:], entropy[:]...)))
}

func (id Identifier) String() string {
	return hex.EncodeToString(id[:])
}
