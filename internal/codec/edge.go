package codec

import (
	"encoding/binary"

	"github.com/baudgraph/vertex/internal/kerr"
)

// EdgeRef is the canonical edge record stored at edgesById[edgeId]:
// exactly 24 bytes on disk, id|src|dst big-endian, per spec.md §3/§6.
type EdgeRef struct {
	ID  uint64
	Src uint64
	Dst uint64
}

// EdgeRefSize is the fixed wire size of an EdgeRef.
const EdgeRefSize = 24

// EncodeEdgeRef returns the 24-byte wire form of e.
func EncodeEdgeRef(e EdgeRef) []byte {
	buf := make([]byte, EdgeRefSize)
	binary.BigEndian.PutUint64(buf[0:8], e.ID)
	binary.BigEndian.PutUint64(buf[8:16], e.Src)
	binary.BigEndian.PutUint64(buf[16:24], e.Dst)
	return buf
}

// DecodeEdgeRef decodes a 24-byte edge reference. Any other length is
// kerr.ErrCorrupt.
func DecodeEdgeRef(b []byte) (EdgeRef, error) {
	if len(b) != EdgeRefSize {
		return EdgeRef{}, kerr.Corruptf("edgeRef: expected %d bytes, got %d", EdgeRefSize, len(b))
	}
	return EdgeRef{
		ID:  binary.BigEndian.Uint64(b[0:8]),
		Src: binary.BigEndian.Uint64(b[8:16]),
		Dst: binary.BigEndian.Uint64(b[16:24]),
	}, nil
}
