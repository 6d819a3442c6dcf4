package models

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// LeaseDurationKey is the metadata key the server mixes into a leaf's data
// object. It is never treated as a secret entry.
const LeaseDurationKey = "lease_duration"

// SecretData is the "data" object of a leaf read or write, decoded with the
// server's key order preserved.
type SecretData = orderedmap.OrderedMap[string, any]

// NewSecretData returns an empty [SecretData].
func NewSecretData() *SecretData {
	return orderedmap.New[string, any]()
}
