package codec

import (
	"encoding/binary"
	"sort"

	"github.com/baudgraph/vertex/internal/kerr"
)

// EncodeLabelSet appends a label set's wire form to dst: a 4-byte
// count followed by that many 4-byte big-endian label ids, in the
// order given. Callers that must preserve invariant I6 (sorted,
// deduplicated) should pass the set through SortDedupLabels first.
func EncodeLabelSet(dst []byte, labelIDs []uint32) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(len(labelIDs)))
	dst = append(dst, buf[:]...)
	for _, id := range labelIDs {
		binary.BigEndian.PutUint32(buf[:], id)
		dst = append(dst, buf[:]...)
	}
	return dst
}

// DecodeLabelSet decodes a label set from the front of b, returning
// the unconsumed remainder.
func DecodeLabelSet(b []byte) ([]uint32, []byte, error) {
	if len(b) < 4 {
		return nil, nil, kerr.Corruptf("labelSet: count truncated")
	}
	count := binary.BigEndian.Uint32(b[:4])
	b = b[4:]
	if uint64(count)*4 > uint64(len(b)) {
		return nil, nil, kerr.Corruptf("labelSet: count %d exceeds remaining bytes", count)
	}
	ids := make([]uint32, count)
	for i := range ids {
		ids[i] = binary.BigEndian.Uint32(b[:4])
		b = b[4:]
	}
	return ids, b, nil
}

// SortDedupLabels returns ids sorted ascending with duplicates
// removed, enforcing invariant I6. The input slice is not mutated.
func SortDedupLabels(ids []uint32) []uint32 {
	out := make([]uint32, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	n := 0
	for i, id := range out {
		if i == 0 || out[n-1] != id {
			out[n] = id
			n++
		}
	}
	return out[:n]
}

// MergeLabels applies add/remove to the sorted-deduplicated base set
// and returns a new sorted-deduplicated set. Per spec.md §4.5, when an
// id appears in both add and remove the final state is "present"
// (add wins).
func MergeLabels(base, add, remove []uint32) []uint32 {
	removeSet := make(map[uint32]struct{}, len(remove))
	for _, id := range remove {
		removeSet[id] = struct{}{}
	}
	addSet := make(map[uint32]struct{}, len(add))
	for _, id := range add {
		addSet[id] = struct{}{}
	}

	merged := make([]uint32, 0, len(base)+len(add))
	for _, id := range base {
		if _, removed := removeSet[id]; removed {
			if _, reAdded := addSet[id]; !reAdded {
				continue
			}
		}
		merged = append(merged, id)
	}
	merged = append(merged, add...)
	return SortDedupLabels(merged)
}
