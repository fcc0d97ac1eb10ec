package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2Params are the argon2id cost parameters.
type Argon2Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
	SaltLen int
}

// DefaultArgon2Params matches the key derivation used for vault master keys:
// one pass over 64 MiB with four lanes.
var DefaultArgon2Params = Argon2Params{
	Time:    1,
	Memory:  64 * 1024,
	Threads: 4,
	KeyLen:  32,
	SaltLen: 16,
}

const argon2Prefix = "$argon2id$"

// idKey is a seam for tests to observe key derivations.
var idKey = argon2.IDKey

// Bounds on parameters read back from stored records. Records outside them
// are rejected before any key derivation runs.
const (
	argon2MaxMemory  = 1 << 21 // KiB, 2 GiB
	argon2MaxTime    = 16
	argon2MinKeyLen  = 16
	argon2MaxKeyLen  = 128
	argon2MinSaltLen = 8
	argon2MaxSaltLen = 64
)

// Argon2Hasher hashes passwords with argon2id and stores them in PHC string
// format: $argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>. Parameters are read
// back from the record on verify, so cost changes only affect new records.
type Argon2Hasher struct {
	params Argon2Params
}

func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{params: DefaultArgon2Params}
}

func NewArgon2HasherWithParams(p Argon2Params) *Argon2Hasher {
	return &Argon2Hasher{params: p}
}

func (h *Argon2Hasher) Hash(password string) (string, error) {
	salt, err := newSalt(h.params.SaltLen)
	if err != nil {
		return "", err
	}

	p := h.params
	key := idKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen)

	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Prefix, argon2.Version, p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

func (h *Argon2Hasher) Verify(password, encoded string) bool {
	p, salt, want, err := parseArgon2Record(encoded)
	if err != nil {
		// keep the cost of a malformed record equal to a mismatch
		d := h.params
		idKey([]byte(password), make([]byte, d.SaltLen), d.Time, d.Memory, d.Threads, d.KeyLen)
		return false
	}

	got := idKey([]byte(password), salt, p.Time, p.Memory, p.Threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}

func parseArgon2Record(encoded string) (Argon2Params, []byte, []byte, error) {
	var p Argon2Params

	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return p, nil, nil, fmt.Errorf("not an argon2id record")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, nil, nil, err
	}
	if version != argon2.Version {
		return p, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return p, nil, nil, err
	}
	if p.Time == 0 || p.Time > argon2MaxTime || p.Threads == 0 || p.Memory == 0 || p.Memory > argon2MaxMemory {
		return p, nil, nil, fmt.Errorf("argon2 parameters out of range: m=%d,t=%d,p=%d", p.Memory, p.Time, p.Threads)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, err
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return p, nil, nil, err
	}
	if len(salt) < argon2MinSaltLen || len(salt) > argon2MaxSaltLen {
		return p, nil, nil, fmt.Errorf("argon2 salt length %d out of range", len(salt))
	}
	if len(key) < argon2MinKeyLen || len(key) > argon2MaxKeyLen {
		return p, nil, nil, fmt.Errorf("argon2 key length %d out of range", len(key))
	}

	return p, salt, key, nil
}
