// Package signature implements the HMAC primitives and basestring
// schemes shared by the provider library (spec §4.1).
package signature

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"hash"
)

// Algorithm is one of the four required HMAC hash functions.
type Algorithm string

const (
	SHA1   Algorithm = "sha1"
	SHA256 Algorithm = "sha256"
	SHA384 Algorithm = "sha384"
	SHA512 Algorithm = "sha512"
)

func newHash(alg Algorithm) (func() hash.Hash, error) {
	switch alg {
	case SHA1:
		return sha1.New, nil
	case SHA256:
		return sha256.New, nil
	case SHA384:
		return sha512.New384, nil
	case SHA512:
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("signature: unsupported algorithm %q", alg)
	}
}

// Compute returns the raw HMAC digest of basestring under secret.
func Compute(alg Algorithm, secret string, basestring []byte) ([]byte, error) {
	h, err := newHash(alg)
	if err != nil {
		return nil, err
	}
	mac := hmac.New(h, []byte(secret))
	mac.Write(basestring)
	return mac.Sum(nil), nil
}

// Hex returns the hex-encoded HMAC digest.
func Hex(alg Algorithm, secret string, basestring []byte) (string, error) {
	sum, err := Compute(alg, secret, basestring)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sum), nil
}

// Base64 returns the standard-base64-encoded HMAC digest.
func Base64(alg Algorithm, secret string, basestring []byte) (string, error) {
	sum, err := Compute(alg, secret, basestring)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sum), nil
}
