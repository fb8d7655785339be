package keyspace

import (
	"bytes"
	"sort"
	"testing"
)

func TestNodeKeyOrderMatchesNumericOrder(t *testing.T) {
	ids := []uint64{0, 1, 2, 255, 256, 65535, 65536, 1 << 40}
	keys := make([][]byte, len(ids))
	for i, id := range ids {
		keys[i] = Node(id)
	}
	if !sort.SliceIsSorted(keys, func(i, j int) bool { return bytes.Compare(keys[i], keys[j]) < 0 }) {
		t.Errorf("Node keys not in lexicographic order for ascending ids: %v", ids)
	}
	for i, id := range ids {
		if got := DecodeU64Key(keys[i]); got != id {
			t.Errorf("DecodeU64Key(Node(%d)) = %d", id, got)
		}
	}
}

func TestEdgeBySrcTypePrefixScoping(t *testing.T) {
	a := EdgeBySrcType(1, 10, 100, 1000)
	b := EdgeBySrcType(1, 10, 100, 1001)
	c := EdgeBySrcType(2, 10, 100, 1000)

	prefix := EdgeBySrcTypePrefix(1)
	if !bytes.HasPrefix(a, prefix) || !bytes.HasPrefix(b, prefix) {
		t.Errorf("expected a, b to share prefix %x", prefix)
	}
	if bytes.HasPrefix(c, prefix) {
		t.Errorf("c should not share prefix %x (different src)", prefix)
	}
}

func TestLabelIndexKeyLayout(t *testing.T) {
	k := LabelIndex(7, 42)
	if len(k) != 12 {
		t.Fatalf("LabelIndex key length = %d, want 12", len(k))
	}
	if got := DecodeU32Key(k[:4]); got != 7 {
		t.Errorf("labelId = %d, want 7", got)
	}
	if got := DecodeU64Key(k[4:]); got != 42 {
		t.Errorf("nodeId = %d, want 42", got)
	}
	if !bytes.Equal(LabelIndexPrefix(7), k[:4]) {
		t.Errorf("LabelIndexPrefix(7) does not match key prefix")
	}
}

func TestNodeColdPropKeyLayout(t *testing.T) {
	k := NodeColdProp(5, 9)
	if len(k) != 12 {
		t.Fatalf("NodeColdProp key length = %d, want 12", len(k))
	}
	if !bytes.Equal(NodeColdPropPrefix(5), k[:8]) {
		t.Errorf("NodeColdPropPrefix(5) does not match key prefix")
	}
}
