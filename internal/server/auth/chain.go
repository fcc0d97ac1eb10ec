package auth

import "strings"

// Chain hashes with its primary hasher and verifies with whichever member
// understands the stored record, so existing records keep working after the
// configured scheme changes.
type Chain struct {
	primary Hasher
	members []Hasher
}

// NewChain returns a Chain hashing with primary. members are consulted on
// verify, in order, primary first.
func NewChain(primary Hasher, members ...Hasher) *Chain {
	return &Chain{primary: primary, members: append([]Hasher{primary}, members...)}
}

func (c *Chain) Primary() Hasher { return c.primary }

func (c *Chain) Hash(password string) (string, error) {
	return c.primary.Hash(password)
}

func (c *Chain) Verify(password, encoded string) bool {
	for _, h := range c.members {
		if recognises(h, encoded) {
			return h.Verify(password, encoded)
		}
	}
	// unknown format: let the primary pay its usual cost and fail
	return c.primary.Verify(password, encoded)
}

func recognises(h Hasher, encoded string) bool {
	switch h.(type) {
	case *Argon2Hasher:
		return strings.HasPrefix(encoded, argon2Prefix)
	case *BcryptHasher:
		return isBcryptRecord(encoded)
	case *DigestHasher:
		return isDigestRecord(encoded)
	}
	return false
}
