package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var cheapArgon2 = Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

func failRandRead(t *testing.T) {
	t.Helper()
	orig := randRead
	randRead = func(b []byte) (int, error) { return 0, errors.New("no entropy") }
	t.Cleanup(func() { randRead = orig })
}

func TestDigestHasher_HashFormat(t *testing.T) {
	h := NewDigestHasher(0)
	assert.Equal(t, DefaultDigestRounds, h.Rounds())

	enc, err := h.Hash("secret1")
	require.NoError(t, err)

	saltPart, sumPart, ok := strings.Cut(enc, ":")
	require.True(t, ok)

	salt, err := base64.StdEncoding.DecodeString(saltPart)
	require.NoError(t, err)
	assert.Len(t, salt, 16)

	sum, err := base64.StdEncoding.DecodeString(sumPart)
	require.NoError(t, err)
	assert.Len(t, sum, sha256.Size)
}

func TestDigestHasher_KnownRecord(t *testing.T) {
	salt := []byte("0123456789abcdef")

	d := sha256.Sum256(append(append([]byte{}, salt...), "secret1"...))
	for i := 1; i < 3; i++ {
		d = sha256.Sum256(d[:])
	}
	enc := base64.StdEncoding.EncodeToString(salt) + ":" + base64.StdEncoding.EncodeToString(d[:])

	assert.True(t, NewDigestHasher(3).Verify("secret1", enc))
	assert.False(t, NewDigestHasher(4).Verify("secret1", enc))
	assert.False(t, NewDigestHasher(3).Verify("secret2", enc))
}

func TestDigestHasher_RoundTrip(t *testing.T) {
	h := NewDigestHasher(12)

	a, err := h.Hash("secret1")
	require.NoError(t, err)
	b, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify("secret1", a))
	assert.True(t, h.Verify("secret1", b))
	assert.False(t, h.Verify("Secret1", a))
	assert.False(t, h.Verify("", a))
}

func TestDigestHasher_MalformedRecords(t *testing.T) {
	h := NewDigestHasher(12)

	for _, enc := range []string{
		"",
		"nocolon",
		":",
		"abc:",
		":abc",
		"!!!:???",
		base64.StdEncoding.EncodeToString([]byte("salt")) + ":" + base64.StdEncoding.EncodeToString([]byte("short")),
	} {
		assert.False(t, h.Verify("secret1", enc), "record %q", enc)
	}
}

func TestDigestHasher_EntropyFailure(t *testing.T) {
	failRandRead(t)

	_, err := NewDigestHasher(12).Hash("secret1")
	assert.ErrorIs(t, err, common.ErrHashing)
}

func TestArgon2Hasher_RoundTrip(t *testing.T) {
	h := NewArgon2HasherWithParams(cheapArgon2)

	enc, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(enc, "$argon2id$v=19$m=1024,t=1,p=1$"), enc)

	assert.True(t, h.Verify("secret1", enc))
	assert.False(t, h.Verify("secret2", enc))
}

func TestArgon2Hasher_ParamsReadFromRecord(t *testing.T) {
	enc, err := NewArgon2HasherWithParams(cheapArgon2).Hash("secret1")
	require.NoError(t, err)

	// a hasher with different defaults still verifies the older record
	assert.True(t, NewArgon2Hasher().Verify("secret1", enc))
}

func TestArgon2Hasher_Malformed(t *testing.T) {
	h := NewArgon2HasherWithParams(cheapArgon2)

	for _, enc := range []string{
		"",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=0,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$garbage$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$!!$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$",
		"$argon2id$v=19$m=4294967295,t=1,p=1$" + validSalt + "$" + validKey,
		"$argon2id$v=19$m=2097153,t=1,p=1$" + validSalt + "$" + validKey,
		"$argon2id$v=19$m=0,t=1,p=1$" + validSalt + "$" + validKey,
		"$argon2id$v=19$m=1024,t=4294967295,p=1$" + validSalt + "$" + validKey,
		"$argon2id$v=19$m=1024,t=17,p=1$" + validSalt + "$" + validKey,
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$" + validKey,
		"$argon2id$v=19$m=1024,t=1,p=1$" + validSalt + "$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$" + validSalt + "$" + strings.Repeat("A", 200),
	} {
		assert.False(t, h.Verify("secret1", enc), "record %q", enc)
	}
}

// 16-byte salt and 32-byte key in unpadded base64.
var (
	validSalt = strings.Repeat("A", 22)
	validKey  = strings.Repeat("A", 43)
)

func TestArgon2Hasher_OutOfRangeParamsNeverDerive(t *testing.T) {
	var params []Argon2Params
	orig := idKey
	idKey = func(password, salt []byte, time, memory uint32, threads uint8, keyLen uint32) []byte {
		params = append(params, Argon2Params{Time: time, Memory: memory, Threads: threads, KeyLen: keyLen, SaltLen: len(salt)})
		return orig(password, salt, time, memory, threads, keyLen)
	}
	t.Cleanup(func() { idKey = orig })

	chain := NewChain(NewDigestHasher(12), NewArgon2HasherWithParams(cheapArgon2), NewBcryptHasher(bcrypt.MinCost))

	for _, enc := range []string{
		"$argon2id$v=19$m=4294967295,t=1,p=1$" + validSalt + "$" + validKey,
		"$argon2id$v=19$m=1024,t=4294967295,p=1$" + validSalt + "$" + validKey,
	} {
		params = nil
		assert.False(t, chain.Verify("secret1", enc), "record %q", enc)

		// only the dummy derivation with the hasher's own parameters runs
		require.Len(t, params, 1)
		assert.Equal(t, cheapArgon2, params[0])
	}
}

func TestArgon2Hasher_MalformedCostsOneDerivation(t *testing.T) {
	calls := 0
	orig := idKey
	idKey = func(password, salt []byte, time, memory uint32, threads uint8, keyLen uint32) []byte {
		calls++
		return orig(password, salt, time, memory, threads, keyLen)
	}
	t.Cleanup(func() { idKey = orig })

	h := NewArgon2HasherWithParams(cheapArgon2)
	enc, err := h.Hash("secret1")
	require.NoError(t, err)

	calls = 0
	assert.False(t, h.Verify("wrong-pw", enc))
	assert.Equal(t, 1, calls, "wrong password")

	calls = 0
	assert.False(t, h.Verify("secret1", "$argon2id$v=19$garbage$c2FsdA$a2V5"))
	assert.Equal(t, 1, calls, "malformed record")
}

func TestArgon2Hasher_EntropyFailure(t *testing.T) {
	failRandRead(t)

	_, err := NewArgon2HasherWithParams(cheapArgon2).Hash("secret1")
	assert.ErrorIs(t, err, common.ErrHashing)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	enc, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.True(t, isBcryptRecord(enc))
	assert.True(t, h.Verify("secret1", enc))
	assert.False(t, h.Verify("secret2", enc))
	assert.False(t, h.Verify("secret1", "not-bcrypt"))

	_, err = h.Hash(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, common.ErrValidation)

	assert.Equal(t, DefaultBcryptCost, NewBcryptHasher(0).cost)
}

func TestChain_VerifiesEveryScheme(t *testing.T) {
	digest := NewDigestHasher(12)
	argon := NewArgon2HasherWithParams(cheapArgon2)
	bc := NewBcryptHasher(bcrypt.MinCost)

	records := map[string]Hasher{"digest": digest, "argon2id": argon, "bcrypt": bc}

	for _, primary := range []Hasher{digest, argon, bc} {
		chain := NewChain(primary, digest, argon, bc)
		for name, h := range records {
			enc, err := h.Hash("secret1")
			require.NoError(t, err)
			assert.True(t, chain.Verify("secret1", enc), "%s record", name)
			assert.False(t, chain.Verify("wrong-pw", enc), "%s record", name)
		}
	}
}

func TestChain_HashesWithPrimary(t *testing.T) {
	argon := NewArgon2HasherWithParams(cheapArgon2)
	chain := NewChain(argon, NewDigestHasher(12))

	enc, err := chain.Hash("secret1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(enc, argon2Prefix))
	assert.Same(t, argon, chain.Primary())
	assert.False(t, chain.Verify("secret1", "garbage"))
}

func TestNewHasher(t *testing.T) {
	cases := []struct {
		scheme string
		want   any
	}{
		{"", &DigestHasher{}},
		{SchemeDigest, &DigestHasher{}},
		{SchemeArgon2id, &Argon2Hasher{}},
		{SchemeBcrypt, &BcryptHasher{}},
	}

	for _, tc := range cases {
		h, err := NewHasher(tc.scheme, 5)
		require.NoError(t, err, tc.scheme)
		chain, ok := h.(*Chain)
		require.True(t, ok)
		assert.IsType(t, tc.want, chain.Primary(), tc.scheme)
	}

	h, err := NewHasher(SchemeDigest, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, h.(*Chain).Primary().(*DigestHasher).Rounds())

	_, err = NewHasher("md5", 0)
	assert.ErrorIs(t, err, common.ErrHashing)
}

func TestDigestHasher_Concurrent(t *testing.T) {
	h := NewDigestHasher(12)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			enc, err := h.Hash("secret1")
			if assert.NoError(t, err) {
				assert.True(t, h.Verify("secret1", enc))
			}
		}()
	}
	wg.Wait()
}
