package domain

import "encoding/hex"

// ID identifies a stored product, category or owner. Ids assigned by the
// store are 24 hex characters.
type ID string

const idLength = 24

// Valid reports whether id has the shape of a store-assigned id.
func (id ID) Valid() bool {
	if len(id) != idLength {
		return false
	}
	_, err := hex.DecodeString(string(id))
	return err == nil
}

func (id ID) String() string { return string(id) }

// Event is a domain fact recorded alongside the write that produced it.
type Event interface {
	GetName() string
	GetEntityName() string
}
