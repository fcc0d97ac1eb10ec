package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

const (
	DefaultDigestRounds = 12
	digestSaltSize      = 16
)

// DigestHasher is a salted, iterated SHA-256 scheme. The record is
// base64(salt) + ":" + base64(digest) where
//
//	d0 = SHA-256(salt || password)
//	di = SHA-256(di-1), i = 1..rounds-1
//
// The round count is not stored in the record, so every record must be
// verified with the rounds it was created with.
type DigestHasher struct {
	rounds int
}

// NewDigestHasher returns a DigestHasher; rounds < 1 selects
// DefaultDigestRounds.
func NewDigestHasher(rounds int) *DigestHasher {
	if rounds < 1 {
		rounds = DefaultDigestRounds
	}
	return &DigestHasher{rounds: rounds}
}

func (h *DigestHasher) Rounds() int { return h.rounds }

func (h *DigestHasher) Hash(password string) (string, error) {
	salt, err := newSalt(digestSaltSize)
	if err != nil {
		return "", err
	}

	sum := h.digest(salt, password)
	return base64.StdEncoding.EncodeToString(salt) + ":" + base64.StdEncoding.EncodeToString(sum), nil
}

func (h *DigestHasher) Verify(password, encoded string) bool {
	salt, want, err := parseDigestRecord(encoded)
	if err != nil {
		// keep the cost of a malformed record equal to a mismatch
		h.digest(make([]byte, digestSaltSize), password)
		return false
	}

	got := h.digest(salt, password)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func (h *DigestHasher) digest(salt []byte, password string) []byte {
	first := sha256.New()
	first.Write(salt)
	first.Write([]byte(password))
	sum := first.Sum(nil)

	for i := 1; i < h.rounds; i++ {
		next := sha256.Sum256(sum)
		sum = next[:]
	}
	return sum
}

// isDigestRecord reports whether encoded looks like a DigestHasher record.
func isDigestRecord(encoded string) bool {
	_, _, err := parseDigestRecord(encoded)
	return err == nil
}

func parseDigestRecord(encoded string) (salt, sum []byte, err error) {
	saltPart, sumPart, ok := strings.Cut(encoded, ":")
	if !ok || saltPart == "" || sumPart == "" {
		return nil, nil, fmt.Errorf("%w: malformed digest record", common.ErrValidation)
	}

	salt, err = base64.StdEncoding.DecodeString(saltPart)
	if err != nil {
		return nil, nil, err
	}
	sum, err = base64.StdEncoding.DecodeString(sumPart)
	if err != nil {
		return nil, nil, err
	}
	if len(sum) != sha256.Size {
		return nil, nil, fmt.Errorf("%w: digest length %d", common.ErrValidation, len(sum))
	}
	return salt, sum, nil
}
