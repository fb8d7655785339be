package codec

import (
	"encoding/binary"

	"github.com/baudgraph/vertex/internal/kerr"
)

// NodeHeader is the record stored at nodes[nodeId]: the node's id, its
// sorted label id set, and its ordered hot properties, per spec.md §3.
type NodeHeader struct {
	ID       uint64
	Labels   []uint32
	HotProps []Property
}

// EncodeNodeHeader appends a node header's wire form to dst: an 8-byte
// id, the label set encoding, a 4-byte hot-prop count, then the hot
// properties concatenated in order, per spec.md §4.1.
func EncodeNodeHeader(dst []byte, h NodeHeader) []byte {
	var buf8 [8]byte
	binary.BigEndian.PutUint64(buf8[:], h.ID)
	dst = append(dst, buf8[:]...)
	dst = EncodeLabelSet(dst, h.Labels)
	var buf4 [4]byte
	binary.BigEndian.PutUint32(buf4[:], uint32(len(h.HotProps)))
	dst = append(dst, buf4[:]...)
	for _, p := range h.HotProps {
		dst = EncodeProperty(dst, p)
	}
	return dst
}

// DecodeNodeHeader decodes a full node header from b. Trailing bytes
// after the last hot property are an error, per spec.md §4.1.
func DecodeNodeHeader(b []byte) (NodeHeader, error) {
	if len(b) < 8 {
		return NodeHeader{}, kerr.Corruptf("nodeHeader: id truncated")
	}
	id := binary.BigEndian.Uint64(b[:8])
	rest := b[8:]

	labels, rest, err := DecodeLabelSet(rest)
	if err != nil {
		return NodeHeader{}, err
	}

	if len(rest) < 4 {
		return NodeHeader{}, kerr.Corruptf("nodeHeader: hot prop count truncated")
	}
	count := binary.BigEndian.Uint32(rest[:4])
	rest = rest[4:]

	props := make([]Property, 0, count)
	for i := uint32(0); i < count; i++ {
		var p Property
		p, rest, err = DecodeProperty(rest)
		if err != nil {
			return NodeHeader{}, err
		}
		props = append(props, p)
	}

	if len(rest) != 0 {
		return NodeHeader{}, kerr.Corruptf("nodeHeader: %d trailing bytes", len(rest))
	}

	return NodeHeader{ID: id, Labels: labels, HotProps: props}, nil
}
