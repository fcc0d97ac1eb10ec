// Package auth holds the credential and session primitives: password hashers
// that turn a plaintext password into a self-describing record and back, and
// the SessionManager that issues and checks opaque session tokens.
package auth

import (
	"crypto/rand"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// Supported password schemes.
const (
	SchemeDigest   = "digest"
	SchemeArgon2id = "argon2id"
	SchemeBcrypt   = "bcrypt"
)

// Hasher hashes passwords into an encoded record and verifies candidates
// against such records. Implementations are stateless and safe for
// concurrent use.
type Hasher interface {
	// Hash returns an encoded record with a fresh random salt, so two calls
	// with the same password produce different records. Errors wrap
	// common.ErrHashing.
	Hash(password string) (string, error)

	// Verify reports whether password matches encoded. A malformed record
	// yields false.
	Verify(password, encoded string) bool
}

// randRead is a seam for tests to simulate an unavailable entropy source.
var randRead = rand.Read

func newSalt(size int) ([]byte, error) {
	salt := make([]byte, size)
	if _, err := randRead(salt); err != nil {
		return nil, fmt.Errorf("%w: salt generation failed: %v", common.ErrHashing, err)
	}
	return salt, nil
}

// NewHasher returns a Chain whose primary hasher implements scheme. Records
// produced by the other schemes still verify. rounds applies to the digest
// scheme only.
func NewHasher(scheme string, rounds int) (Hasher, error) {
	digest := NewDigestHasher(rounds)
	argon := NewArgon2Hasher()
	bc := NewBcryptHasher(0)

	var primary Hasher
	switch scheme {
	case SchemeDigest, "":
		primary = digest
	case SchemeArgon2id:
		primary = argon
	case SchemeBcrypt:
		primary = bc
	default:
		return nil, fmt.Errorf("%w: unsupported password scheme %q", common.ErrHashing, scheme)
	}

	return NewChain(primary, digest, argon, bc), nil
}
