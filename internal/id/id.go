package id

import (
	"crypto/rand"

	"github.com/google/uuid"
)

// GenerateID creates a unique 16-character alphanumeric ID.
// Used for client session keys, which only need to be opaque.
func GenerateID() string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	for i := range b {
		b[i] = chars[b[i]%byte(len(chars))]
	}
	return string(b)
}

// NewQuestionID returns a random UUID for questions imported without an id.
func NewQuestionID() string {
	return uuid.NewString()
}
