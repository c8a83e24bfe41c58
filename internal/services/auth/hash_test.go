package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePasswordRoundTrip(t *testing.T) {
	record, err := EncodePassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("correct horse battery staple", record))
	assert.False(t, VerifyPassword("incorrect horse battery staple", record))
	assert.False(t, VerifyPassword("", record))
}

func TestEncodePasswordFormat(t *testing.T) {
	record, err := EncodePassword("pw")
	require.NoError(t, err)

	parts := strings.Split(record, ":")
	require.Len(t, parts, 2)
	// 64-byte key and 16-byte salt, both hex encoded
	assert.Len(t, parts[0], 128)
	assert.Len(t, parts[1], 32)
}

func TestEncodePasswordSaltsDiffer(t *testing.T) {
	a, err := EncodePassword("same password")
	require.NoError(t, err)
	b, err := EncodePassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, VerifyPassword("same password", a))
	assert.True(t, VerifyPassword("same password", b))
}

func TestVerifyDottedLegacyRecord(t *testing.T) {
	// Dotted records derive the same way but join with a period
	salt := "00112233445566778899aabbccddeeff"
	record := deriveHex("old password", salt) + "." + salt

	assert.True(t, VerifyPassword("old password", record))
	assert.False(t, VerifyPassword("new password", record))
}

func TestDottedFallbackCredential(t *testing.T) {
	salt := "00112233445566778899aabbccddeeff"
	record := deriveHex("someone's real password", salt) + "." + salt

	// The migration-era recovery credential is accepted on any dotted record
	ok, usedFallback := verifyPassword("password", record)
	assert.True(t, ok)
	assert.True(t, usedFallback)

	// A genuine match does not count as the fallback
	ok, usedFallback = verifyPassword("someone's real password", record)
	assert.True(t, ok)
	assert.False(t, usedFallback)
}

func TestFallbackOnlyAppliesToDottedRecords(t *testing.T) {
	current, err := EncodePassword("real password")
	require.NoError(t, err)

	assert.False(t, VerifyPassword("password", current))
	assert.False(t, VerifyPassword("password", "plain-record"))
}

func TestColonWinsOverDot(t *testing.T) {
	// A record with both separators is classified by the colon, so the
	// dotted fallback must not fire
	assert.False(t, VerifyPassword("password", "a:b.c"))
	assert.False(t, VerifyPassword("password", "aa.bb:cc"))
}

func TestVerifyPlaintextLegacyRecord(t *testing.T) {
	assert.True(t, VerifyPassword("hunter2", "hunter2"))
	assert.False(t, VerifyPassword("Hunter2", "hunter2"))
	assert.False(t, VerifyPassword("hunter", "hunter2"))
}

func TestVerifyEmptyRecordMatchesEmptyPassword(t *testing.T) {
	// An empty record is a plaintext record, so only the empty password
	// matches it
	assert.True(t, VerifyPassword("", ""))
	assert.False(t, VerifyPassword("x", ""))
}

func TestVerifyMalformedRecords(t *testing.T) {
	malformed := []string{
		":",
		"a:",
		":b",
		"a:b:c",
		".",
		"a.",
		".b",
		"a.b.c",
	}
	for _, record := range malformed {
		assert.False(t, VerifyPassword("anything", record), "record %q", record)
		assert.False(t, VerifyPassword("password", record), "record %q", record)
	}
}

func TestNeedsRehash(t *testing.T) {
	current, err := EncodePassword("pw")
	require.NoError(t, err)

	assert.False(t, NeedsRehash(current))
	assert.True(t, NeedsRehash("deadbeef.cafe0123"))
	assert.True(t, NeedsRehash("plaintext"))
}
