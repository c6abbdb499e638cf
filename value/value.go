// Package value defines the tagged-union representation that decoded JSON is
// normalized into, and that callers can construct directly for encoding.
//
// A Value is immutable by convention: nothing in this package mutates a Value
// after construction, and the codec treats them as read-only. A Value never
// contains a reference cycle; the containers are plain slices built bottom-up.
package value

import (
	"math"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// Kind identifies the variant stored in a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindBigInt
	KindFloat
	KindString
	KindArray
	KindObject
	KindTimestamp
	KindUniqueID
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindBigInt:
		return "BigInt"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindObject:
		return "Object"
	case KindTimestamp:
		return "Timestamp"
	case KindUniqueID:
		return "UniqueID"
	default:
		return "Unknown"
	}
}

// Member is a single key/value pair of an Object. Insertion order of members
// is preserved by the codec unless key sorting is requested.
type Member struct {
	Key   string
	Value Value
}

// Timestamp is a calendar date and time with an optional UTC offset.
//
// HasOffset distinguishes an absolute instant from a "naive" local reading.
// Timestamps obtained from time.Time always carry an offset; naive ones can
// only be constructed explicitly.
type Timestamp struct {
	Time      time.Time
	HasOffset bool
}

// Value is a tagged variant over the JSON-representable kinds plus
// Timestamp and UniqueID.
//
// The zero Value is Null.
type Value struct {
	str  string
	big  *big.Int
	arr  []Value
	obj  []Member
	ts   Timestamp
	id   uuid.UUID
	num  uint64
	kind Kind
}

// Constructors.

// Null returns the null Value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a boolean Value.
func Bool(b bool) Value {
	v := Value{kind: KindBool}
	if b {
		v.num = 1
	}

	return v
}

// Int returns a 64-bit integer Value.
func Int(i int64) Value {
	return Value{kind: KindInt, num: uint64(i)}
}

// BigInt returns an arbitrary-precision integer Value.
// The Value borrows i; the caller must not mutate it afterward.
func BigInt(i *big.Int) Value {
	return Value{kind: KindBigInt, big: i}
}

// Float returns a 64-bit float Value. NaN and infinities are valid.
func Float(f float64) Value {
	return Value{kind: KindFloat, num: math.Float64bits(f)}
}

// String returns a string Value. The string must be valid UTF-8; the encoder
// rejects invalid sequences at encode time.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Array returns an array Value borrowing elems.
func Array(elems ...Value) Value {
	return Value{kind: KindArray, arr: elems}
}

// Object returns an object Value borrowing members. Member keys are expected
// to be unique; the encoder does not deduplicate.
func Object(members ...Member) Value {
	return Value{kind: KindObject, obj: members}
}

// Time returns a Timestamp Value carrying an explicit offset.
func Time(t time.Time) Value {
	return Value{kind: KindTimestamp, ts: Timestamp{Time: t, HasOffset: true}}
}

// NaiveTime returns a Timestamp Value without an offset. How it renders
// depends on the naive-UTC encoding option.
func NaiveTime(t time.Time) Value {
	return Value{kind: KindTimestamp, ts: Timestamp{Time: t}}
}

// UniqueID returns a 128-bit identifier Value.
func UniqueID(id uuid.UUID) Value {
	return Value{kind: KindUniqueID, id: id}
}

// Accessors. Each returns the zero value when the Value holds a different
// kind; check Kind first when the variant matters.

// Kind returns the variant tag.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the Value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// BoolVal returns the boolean payload.
func (v Value) BoolVal() bool {
	return v.kind == KindBool && v.num != 0
}

// IntVal returns the 64-bit integer payload.
func (v Value) IntVal() int64 {
	if v.kind != KindInt {
		return 0
	}

	return int64(v.num)
}

// BigIntVal returns the arbitrary-precision payload, nil for other kinds.
func (v Value) BigIntVal() *big.Int {
	return v.big
}

// FloatVal returns the float payload.
func (v Value) FloatVal() float64 {
	if v.kind != KindFloat {
		return 0
	}

	return math.Float64frombits(v.num)
}

// StringVal returns the string payload.
func (v Value) StringVal() string {
	return v.str
}

// ArrayVal returns the element slice, nil for other kinds.
func (v Value) ArrayVal() []Value {
	return v.arr
}

// ObjectVal returns the member slice, nil for other kinds.
func (v Value) ObjectVal() []Member {
	return v.obj
}

// TimestampVal returns the timestamp payload.
func (v Value) TimestampVal() Timestamp {
	return v.ts
}

// UniqueIDVal returns the identifier payload.
func (v Value) UniqueIDVal() uuid.UUID {
	return v.id
}

// Get returns the value of the first member with the given key.
func (v Value) Get(key string) (Value, bool) {
	for i := range v.obj {
		if v.obj[i].Key == key {
			return v.obj[i].Value, true
		}
	}

	return Value{}, false
}

// Len returns the number of elements or members for Array and Object, and 0
// for every other kind.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Equal reports structural equality. Object member order is significant.
// Float comparison uses ordinary equality, so a NaN Value never equals
// anything, including itself.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool, KindInt:
		return v.num == other.num
	case KindBigInt:
		return v.big.Cmp(other.big) == 0
	case KindFloat:
		return v.FloatVal() == other.FloatVal()
	case KindString:
		return v.str == other.str
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}

		return true
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for i := range v.obj {
			if v.obj[i].Key != other.obj[i].Key || !v.obj[i].Value.Equal(other.obj[i].Value) {
				return false
			}
		}

		return true
	case KindTimestamp:
		return v.ts.HasOffset == other.ts.HasOffset && v.ts.Time.Equal(other.ts.Time)
	case KindUniqueID:
		return v.id == other.id
	default:
		return false
	}
}
