package signature_test

import (
	"encoding/base64"
	"encoding/hex"
	"testing"

	"bwh/core-api/pkg/webhook/signature"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHex_KnownVector(t *testing.T) {
	// Arrange: RFC 4231 test case 2 (key="Jefe", data="what do ya want for nothing?")
	secret := "Jefe"
	body := []byte("what do ya want for nothing?")
	want := "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843"

	// Act
	got, err := signature.Hex(signature.SHA256, secret, body)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestBase64_RoundTripsWithHex(t *testing.T) {
	// Arrange
	secret := "s3cr3t"
	body := []byte(`{"event":"push"}`)

	// Act
	hexSum, err := signature.Hex(signature.SHA256, secret, body)
	require.NoError(t, err)
	b64Sum, err := signature.Base64(signature.SHA256, secret, body)
	require.NoError(t, err)

	// Assert: both encodings carry the same raw digest
	raw, err := hex.DecodeString(hexSum)
	require.NoError(t, err)
	computed, err := signature.Compute(signature.SHA256, secret, body)
	require.NoError(t, err)
	assert.Equal(t, raw, computed)
	assert.NotEmpty(t, b64Sum)
	rawB64, err := base64.StdEncoding.DecodeString(b64Sum)
	require.NoError(t, err)
	assert.Equal(t, computed, rawB64)
}

func TestCompute_UnsupportedAlgorithm(t *testing.T) {
	// Act
	_, err := signature.Compute(signature.Algorithm("md5"), "secret", []byte("body"))

	// Assert
	assert.Error(t, err)
}

func TestCompute_AllSupportedAlgorithms(t *testing.T) {
	for _, alg := range []signature.Algorithm{signature.SHA1, signature.SHA256, signature.SHA384, signature.SHA512} {
		t.Run(string(alg), func(t *testing.T) {
			sum, err := signature.Compute(alg, "secret", []byte("body"))
			require.NoError(t, err)
			assert.NotEmpty(t, sum)
		})
	}
}

func TestCompute_DifferentSecretsProduceDifferentDigests(t *testing.T) {
	// Arrange
	body := []byte("same body")

	// Act
	a, err := signature.Compute(signature.SHA256, "secret-a", body)
	require.NoError(t, err)
	b, err := signature.Compute(signature.SHA256, "secret-b", body)
	require.NoError(t, err)

	// Assert
	assert.NotEqual(t, a, b)
}

func TestConstantTimeEqual(t *testing.T) {
	assert.True(t, signature.ConstantTimeEqual([]byte("abc"), []byte("abc")))
	assert.False(t, signature.ConstantTimeEqual([]byte("abc"), []byte("abd")))
	assert.False(t, signature.ConstantTimeEqual([]byte("abc"), []byte("ab")))
	assert.False(t, signature.ConstantTimeEqual([]byte(""), []byte("a")))
}

func TestConstantTimeEqualString(t *testing.T) {
	assert.True(t, signature.ConstantTimeEqualString("topsecret", "topsecret"))
	assert.False(t, signature.ConstantTimeEqualString("topsecret", "wrongsecret"))
}

func TestBaseDirect(t *testing.T) {
	body := []byte(`{"a":1}`)
	assert.Equal(t, body, signature.BaseDirect(body))
}

func TestBaseTimestampDotBody(t *testing.T) {
	got := signature.BaseTimestampDotBody("1700000000", []byte("payload"))
	assert.Equal(t, "1700000000.payload", string(got))
}

func TestBaseSlackV0(t *testing.T) {
	got := signature.BaseSlackV0("1700000000", []byte("payload"))
	assert.Equal(t, "v0:1700000000:payload", string(got))
}

func TestBaseIDTimestampBody(t *testing.T) {
	got := signature.BaseIDTimestampBody("msg_123", "1700000000", []byte("payload"))
	assert.Equal(t, "msg_123.1700000000.payload", string(got))
}

func TestBaseURLBody(t *testing.T) {
	got := signature.BaseURLBody("https://example.com/hook", []byte("payload"))
	assert.Equal(t, "https://example.com/hookpayload", string(got))
}

func TestBaseConcat(t *testing.T) {
	got := signature.BaseConcat("prefix-", []byte("suffix"))
	assert.Equal(t, "prefix-suffix", string(got))
}

func TestStripPrefix(t *testing.T) {
	got, ok := signature.StripPrefix("sha256=abcdef", "sha256=")
	assert.True(t, ok)
	assert.Equal(t, "abcdef", got)

	_, ok = signature.StripPrefix("abcdef", "sha256=")
	assert.False(t, ok)
}

func TestParseCompound(t *testing.T) {
	header := "t=1700000000,v1=deadbeef,v1=cafebabe"

	ts, values, ok := signature.ParseCompound(header, "v1")

	assert.True(t, ok)
	assert.Equal(t, "1700000000", ts)
	assert.Equal(t, []string{"deadbeef", "cafebabe"}, values)
}

func TestParseCompound_MissingTimestamp(t *testing.T) {
	_, _, ok := signature.ParseCompound("v1=deadbeef", "v1")
	assert.False(t, ok)
}

func TestParseCompound_MissingValue(t *testing.T) {
	_, _, ok := signature.ParseCompound("t=1700000000", "v1")
	assert.False(t, ok)
}
