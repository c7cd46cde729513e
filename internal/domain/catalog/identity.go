package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// NewDocumentID returns a fresh random identifier for one submission. It is
// both the primary storage key of the record and the scoping input for every
// entity identifier derived from that submission.
func NewDocumentID() string {
	return uuid.NewString()
}

// EntityID derives the vertex identifier for a named entity mentioned by a
// document. The digest covers entity name plus document id, so the same name
// in two documents yields two distinct vertices: triples from one submission
// never merge with another submission's entities.
func EntityID(entity, documentID string) string {
	sum := sha256.Sum224([]byte(entity + documentID))
	return hex.EncodeToString(sum[:])
}

// GenerateID hashes the given seed, or a timestamped random value when the
// seed is empty. Used where no natural seed exists.
func GenerateID(seed string) string {
	if seed == "" {
		seed = time.Now().UTC().String() + "|" + uuid.NewString()
	}
	sum := sha256.Sum224([]byte(seed))
	return hex.EncodeToString(sum[:])
}
