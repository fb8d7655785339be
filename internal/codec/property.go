package codec

import (
	"encoding/binary"

	"github.com/baudgraph/vertex/internal/kerr"
)

// Property is a (property-key id, Value) pair, the unit stored in hot
// property lists, nodeColdProps rows, and edgeProps rows per spec.md
// §4.1.
type Property struct {
	KeyID uint32
	Value Value
}

// EncodeProperty appends a property's wire form to dst: a 4-byte
// big-endian key id followed by the encoded value.
func EncodeProperty(dst []byte, p Property) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], p.KeyID)
	dst = append(dst, buf[:]...)
	return EncodeValue(dst, p.Value)
}

// DecodeProperty decodes one Property from the front of b, returning
// the unconsumed remainder.
func DecodeProperty(b []byte) (Property, []byte, error) {
	if len(b) < 4 {
		return Property{}, nil, kerr.Corruptf("property: key id truncated")
	}
	keyID := binary.BigEndian.Uint32(b[:4])
	val, rest, err := DecodeValue(b[4:])
	if err != nil {
		return Property{}, nil, err
	}
	return Property{KeyID: keyID, Value: val}, rest, nil
}

// FindProperty returns the index of the property with the given key
// id in props, or -1 if absent. Used by upsertNodeProps's
// replace-by-key-id-or-append rule (spec.md §4.5).
func FindProperty(props []Property, keyID uint32) int {
	for i := range props {
		if props[i].KeyID == keyID {
			return i
		}
	}
	return -1
}
