package keys

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// MaxLen caps the byte length of any key handed to a backend.
const MaxLen = 512

const (
	entryPrefix     = "ent:"
	namespacePrefix = "idx:"
)

// escaper keeps caller-supplied segments from colliding with the
// colon-delimited key grammar. '%' is escaped first so unescaping stays
// unambiguous.
var escaper = strings.NewReplacer("%", "%25", ":", "%3A")

// Escape rewrites s so it is safe to embed as one segment of a composite key.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Entry builds the storage key for one cached result:
// ent:<store>:<owner>:<token>. owner is escaped; store names and tokens are
// validated or generated upstream and embed no delimiter.
func Entry(store, owner, token string) string {
	return entryPrefix + store + ":" + Escape(owner) + ":" + token
}

// Namespace builds the index-set key for all entries of one owner:
// idx:<store>:<owner>.
func Namespace(store, owner string) string {
	return namespacePrefix + store + ":" + Escape(owner)
}

// Clamp returns key unchanged when it fits MaxLen, otherwise a deterministic
// same-prefix key of exactly MaxLen bytes ending in a short hash of the full
// key. Clamping is idempotent.
func Clamp(key string) string {
	if len(key) <= MaxLen {
		return key
	}
	head := key[:MaxLen-17] // room for ":" + 16 hex chars
	sum := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%s:%x", head, sum)[:MaxLen]
}
