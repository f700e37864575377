// Package codec defines value serialization for nscache stores.
//
// A Codec converts one typed value to the bytes handed to the cache and
// back. Implementations must satisfy the round-trip law: Decode(Encode(v))
// equals v for every value a store will hold. Malformed input is reported
// as an error from Decode, never as a panic into caller logic.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
