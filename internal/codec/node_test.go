package codec

import (
	"reflect"
	"testing"

	"github.com/baudgraph/vertex/internal/kerr"
)

func TestNodeHeaderRoundTrip(t *testing.T) {
	h := NodeHeader{
		ID:     7,
		Labels: SortDedupLabels([]uint32{3, 1, 1, 2}),
		HotProps: []Property{
			{KeyID: 1, Value: I64Value(42)},
			{KeyID: 2, Value: BoolValue(true)},
		},
	}

	enc := EncodeNodeHeader(nil, h)
	got, err := DecodeNodeHeader(enc)
	if err != nil {
		t.Fatalf("DecodeNodeHeader: %v", err)
	}
	if !reflect.DeepEqual(h, got) {
		t.Errorf("round trip mismatch: want %+v, got %+v", h, got)
	}
}

func TestNodeHeaderEmpty(t *testing.T) {
	h := NodeHeader{ID: 1}
	enc := EncodeNodeHeader(nil, h)
	got, err := DecodeNodeHeader(enc)
	if err != nil {
		t.Fatalf("DecodeNodeHeader: %v", err)
	}
	if len(got.Labels) != 0 || len(got.HotProps) != 0 {
		t.Errorf("want empty labels/hotProps, got %+v", got)
	}
}

func TestNodeHeaderTrailingBytesIsCorrupt(t *testing.T) {
	enc := EncodeNodeHeader(nil, NodeHeader{ID: 1})
	enc = append(enc, 0xFF)
	if _, err := DecodeNodeHeader(enc); !kerr.IsCorrupt(err) {
		t.Errorf("want corrupt error for trailing bytes, got %v", err)
	}
}

func TestSortDedupLabels(t *testing.T) {
	got := SortDedupLabels([]uint32{5, 1, 3, 1, 5, 2})
	want := []uint32{1, 2, 3, 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortDedupLabels: want %v, got %v", want, got)
	}
}

func TestMergeLabelsAddWinsOverRemove(t *testing.T) {
	base := []uint32{1, 2}
	got := MergeLabels(base, []uint32{3}, []uint32{1, 3})
	want := []uint32{2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeLabels: want %v, got %v", want, got)
	}
}

func TestEdgeRefRoundTrip(t *testing.T) {
	ref := EdgeRef{ID: 1, Src: 2, Dst: 3}
	enc := EncodeEdgeRef(ref)
	if len(enc) != EdgeRefSize {
		t.Fatalf("EncodeEdgeRef: want %d bytes, got %d", EdgeRefSize, len(enc))
	}
	got, err := DecodeEdgeRef(enc)
	if err != nil {
		t.Fatalf("DecodeEdgeRef: %v", err)
	}
	if got != ref {
		t.Errorf("round trip mismatch: want %+v, got %+v", ref, got)
	}
}

func TestDecodeEdgeRefWrongLength(t *testing.T) {
	if _, err := DecodeEdgeRef([]byte{1, 2, 3}); !kerr.IsCorrupt(err) {
		t.Errorf("want corrupt error, got %v", err)
	}
}
