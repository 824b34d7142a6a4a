package design

import (
	"crypto/sha256"
	"encoding/hex"
)

// PartID is a content-addressed identifier derived from the path of the
// expression that created the part.
type PartID [32]byte

// ZeroID is the zero-value PartID.
var ZeroID PartID

// NewPartID hashes path into a PartID. Equal paths give equal IDs.
func NewPartID(path string) PartID {
	return sha256.Sum256([]byte(path))
}

// IsZero reports whether id is the zero value.
func (id PartID) IsZero() bool {
	return id == ZeroID
}

// Short returns the first 6 bytes as hex, for messages.
func (id PartID) Short() string {
	return hex.EncodeToString(id[:6])
}

func (id PartID) String() string {
	return hex.EncodeToString(id[:])
}

// MarshalText encodes the ID as hex so it can key JSON objects.
func (id PartID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}
