// Package cache provides a small interning table for JSON object keys.
//
// Documents such as JSONL exports repeat the same small set of keys in every
// object. Interning lets all occurrences share one string allocation instead
// of copying the key bytes out of the input for each object.
package cache

import "github.com/arloliu/tensorjson/internal/hash"

const (
	// MaxKeyLength is the longest key that will be interned. Longer keys are
	// rare and not worth the hash cost; callers should allocate them directly.
	MaxKeyLength = 64

	// tableSize is the number of slots in the direct-mapped table.
	// Must be a power of two.
	tableSize = 512
)

type slot struct {
	sum uint64
	key string
}

// KeyTable is a direct-mapped interning table for short object keys.
//
// The table is bounded: a hash collision on a slot simply overwrites it, so
// memory use is fixed regardless of input. A KeyTable is owned by a single
// decoder pass and is not safe for concurrent use.
type KeyTable struct {
	slots [tableSize]slot
}

// Intern returns a string equal to raw, reusing a previously interned copy
// when one is present. Keys longer than MaxKeyLength bypass the table.
func (t *KeyTable) Intern(raw []byte) string {
	if len(raw) > MaxKeyLength {
		return string(raw)
	}

	sum := hash.Bytes(raw)
	s := &t.slots[sum&(tableSize-1)]
	if s.sum == sum && s.key == string(raw) {
		return s.key
	}

	key := string(raw)
	s.sum = sum
	s.key = key

	return key
}
