package idempotency

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"regexp"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

const (
	HeaderName   = "Idempotency-Key"
	MinKeyLength = 16
	MaxKeyLength = 128
	KeyPrefix    = "idempotency"
)

var (
	ErrKeyTooShort = errors.New("idempotency key must be at least 16 characters")
	ErrKeyTooLong  = errors.New("idempotency key must not exceed 128 characters")
	ErrKeyInvalid  = errors.New("idempotency key contains invalid characters")
	ErrKeyReused   = errors.New("idempotency key was already used with a different request body")

	validKeyPattern = regexp.MustCompile(`^[a-zA-Z0-9\-_]+$`)
)

func Validate(key string) error {
	switch {
	case len(key) < MinKeyLength:
		return ErrKeyTooShort
	case len(key) > MaxKeyLength:
		return ErrKeyTooLong
	case !validKeyPattern.MatchString(key):
		return ErrKeyInvalid
	default:
		return nil
	}
}

// BuildCacheKey scopes a client key to the method and path it was sent with.
func BuildCacheKey(method, path, idempotencyKey string) string {
	hash := sha256.Sum256([]byte(method + ":" + path + ":" + idempotencyKey))

	return KeyPrefix + ":" + hex.EncodeToString(hash[:])
}

// Fingerprint identifies a request body so a replayed key can be checked
// against the body it was first used with.
func Fingerprint(body []byte) string {
	return strconv.FormatUint(xxhash.Sum64(body), 16)
}
