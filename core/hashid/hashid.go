package hashid

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidIdentifier is returned for identifiers outside the signed 32-bit domain.
var ErrInvalidIdentifier = errors.New("invalid identifier")

const storeKeyOffset int64 = 1 << 32

// ToStoreKey converts a signed 32-bit identifier into its unsigned store key.
// Values outside [math.MinInt32, math.MaxInt32] are rejected.
func ToStoreKey(signed int64) (uint32, error) {
	if signed < math.MinInt32 || signed > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d is outside the signed 32-bit range", ErrInvalidIdentifier, signed)
	}
	if signed < 0 {
		signed += storeKeyOffset
	}
	return uint32(signed), nil
}

// ToSigned converts a store key back into the signed 32-bit form.
func ToSigned(key uint32) int32 {
	return int32(key)
}

// Parse reads a decimal signed identifier and converts it into a store key.
func Parse(raw string) (uint32, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty identifier", ErrInvalidIdentifier)
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a decimal integer", ErrInvalidIdentifier, raw)
	}
	return ToStoreKey(v)
}

// ParseKey reads a decimal unsigned store key, as carried in the hash field of
// stored documents and search results.
func ParseKey(raw string) (uint32, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty key", ErrInvalidIdentifier)
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an unsigned 32-bit key", ErrInvalidIdentifier, raw)
	}
	return uint32(v), nil
}
