package id

import (
	"crypto/rand"

	"github.com/google/uuid"
)

// GenerateID creates a unique 16-character alphanumeric session ID.
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

// UploadPrefix returns the 8-hex prefix that makes stored upload names
// collision-resistant, e.g. "3f9c01ab" in "3f9c01ab_resume.pdf".
func UploadPrefix() string {
	return uuid.New().String()[:8]
}
