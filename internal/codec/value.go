// Package codec implements the pure encode/decode functions for
// vertex's on-disk record formats: tagged values, properties, label
// sets, node headers, and edge references. Every function here is a
// deterministic byte-slice transform with no I/O and no dependency on
// the storage layer, grounded on spec.md §4.1 and on the
// put_be64/put_be32/read_be64/read_be32 big-endian helpers in
// original_source/src/encode.hpp.
package codec

import (
	"encoding/binary"
	"math"

	"github.com/baudgraph/vertex/internal/kerr"
)

// Tag identifies the dynamic type carried by a Value's on-disk
// encoding. The byte values are part of the wire format and must not
// be renumbered.
type Tag byte

const (
	TagI64    Tag = 0
	TagF64    Tag = 1
	TagBool   Tag = 2
	TagTextID Tag = 3
	TagBytes  Tag = 4
	TagNull   Tag = 5
)

// Value is vertex's tagged union of property/value payloads: a signed
// 64-bit integer, an IEEE-754 double, a boolean, an interned text id,
// raw bytes, or null. Exactly one of the typed fields is meaningful,
// selected by Tag.
type Value struct {
	Tag   Tag
	I64   int64
	F64   float64
	Bool  bool
	TextID uint32
	Bytes []byte
}

// I64Value constructs a Value carrying a signed 64-bit integer.
func I64Value(v int64) Value { return Value{Tag: TagI64, I64: v} }

// F64Value constructs a Value carrying an IEEE-754 double.
func F64Value(v float64) Value { return Value{Tag: TagF64, F64: v} }

// BoolValue constructs a Value carrying a boolean.
func BoolValue(v bool) Value { return Value{Tag: TagBool, Bool: v} }

// TextIDValue constructs a Value carrying an interned text id.
func TextIDValue(id uint32) Value { return Value{Tag: TagTextID, TextID: id} }

// BytesValue constructs a Value carrying raw bytes. The slice is
// retained, not copied; callers must not mutate it afterwards.
func BytesValue(b []byte) Value { return Value{Tag: TagBytes, Bytes: b} }

// NullValue constructs the null Value.
func NullValue() Value { return Value{Tag: TagNull} }

// EncodedLen returns the number of bytes EncodeValue will append for v.
func EncodedLen(v Value) int {
	switch v.Tag {
	case TagI64, TagF64:
		return 1 + 8
	case TagBool:
		return 1 + 1
	case TagTextID:
		return 1 + 4
	case TagBytes:
		return 1 + 4 + len(v.Bytes)
	case TagNull:
		return 1
	default:
		return 1
	}
}

// EncodeValue appends the wire encoding of v to dst and returns the
// extended slice: one tag byte, then a tag-dependent payload. Signed
// 64-bit integers are stored as their two's-complement bit pattern;
// doubles are reinterpreted as their raw IEEE-754 bits. Both are
// emitted big-endian, matching spec.md §4.1's "not key-ordered, so
// plain two's-complement/bit-reinterpretation is acceptable" rule.
func EncodeValue(dst []byte, v Value) []byte {
	dst = append(dst, byte(v.Tag))
	switch v.Tag {
	case TagI64:
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], uint64(v.I64))
		return append(dst, buf[:]...)
	case TagF64:
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(v.F64))
		return append(dst, buf[:]...)
	case TagBool:
		if v.Bool {
			return append(dst, 1)
		}
		return append(dst, 0)
	case TagTextID:
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], v.TextID)
		return append(dst, buf[:]...)
	case TagBytes:
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], uint32(len(v.Bytes)))
		dst = append(dst, buf[:]...)
		return append(dst, v.Bytes...)
	case TagNull:
		return dst
	default:
		return dst
	}
}

// DecodeValue decodes one Value from the front of b and returns it
// along with the unconsumed remainder. It fails with kerr.ErrCorrupt
// when the tag byte is unknown or a length prefix exceeds the
// remaining bytes.
func DecodeValue(b []byte) (Value, []byte, error) {
	if len(b) < 1 {
		return Value{}, nil, kerr.Corruptf("value: empty input")
	}
	tag := Tag(b[0])
	rest := b[1:]
	switch tag {
	case TagI64:
		if len(rest) < 8 {
			return Value{}, nil, kerr.Corruptf("value: i64 truncated")
		}
		return Value{Tag: TagI64, I64: int64(binary.BigEndian.Uint64(rest[:8]))}, rest[8:], nil
	case TagF64:
		if len(rest) < 8 {
			return Value{}, nil, kerr.Corruptf("value: f64 truncated")
		}
		return Value{Tag: TagF64, F64: math.Float64frombits(binary.BigEndian.Uint64(rest[:8]))}, rest[8:], nil
	case TagBool:
		if len(rest) < 1 {
			return Value{}, nil, kerr.Corruptf("value: bool truncated")
		}
		return Value{Tag: TagBool, Bool: rest[0] != 0}, rest[1:], nil
	case TagTextID:
		if len(rest) < 4 {
			return Value{}, nil, kerr.Corruptf("value: textId truncated")
		}
		return Value{Tag: TagTextID, TextID: binary.BigEndian.Uint32(rest[:4])}, rest[4:], nil
	case TagBytes:
		if len(rest) < 4 {
			return Value{}, nil, kerr.Corruptf("value: bytes length prefix truncated")
		}
		n := binary.BigEndian.Uint32(rest[:4])
		rest = rest[4:]
		if uint64(n) > uint64(len(rest)) {
			return Value{}, nil, kerr.Corruptf("value: bytes length %d exceeds remaining %d", n, len(rest))
		}
		payload := make([]byte, n)
		copy(payload, rest[:n])
		return Value{Tag: TagBytes, Bytes: payload}, rest[n:], nil
	case TagNull:
		return Value{Tag: TagNull}, rest, nil
	default:
		return Value{}, nil, kerr.Corruptf("value: unknown tag %d", byte(tag))
	}
}

// Equal reports whether a and b encode to the same bytes, the
// round-trip equality notion spec.md §8 tests against.
func Equal(a, b Value) bool {
	return string(EncodeValue(nil, a)) == string(EncodeValue(nil, b))
}
