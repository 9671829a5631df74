// Package hashid converts definition hashes between the signed 32-bit form
// issued by the upstream game-data provider and the unsigned 32-bit form used
// as the primary key of the definition store.
//
// # Conversion
//
// The mapping is a bijection between the two 32-bit domains:
//
//	unsigned = signed < 0 ? signed + 2^32 : signed
//
// All arithmetic is exact integer arithmetic.
//
// # Usage
//
//	key, err := hashid.Parse("-1")      // 4294967295
//	key, err = hashid.ToStoreKey(-2147483648) // 2147483648
//	signed := hashid.ToSigned(key)
//
// ParseKey accepts the unsigned form directly, as found in stored documents.
package hashid
