package store

import (
	"bytes"
	"testing"
)

func TestGetVectorsAllAndSubset(t *testing.T) {
	s := openStore(t)
	tagA, _ := s.GetOrCreateVecTagID("a", true, 2)
	tagB, _ := s.GetOrCreateVecTagID("b", true, 2)
	n, _, _ := s.CreateNode(CreateNodeParams{})

	bytesA := make([]byte, 8)
	bytesB := make([]byte, 8)
	bytesB[0] = 0xFF

	if err := s.UpsertVector(n, tagA, bytesA); err != nil {
		t.Fatal(err)
	}
	if err := s.UpsertVector(n, tagB, bytesB); err != nil {
		t.Fatal(err)
	}

	all, err := s.GetVectors(n, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || !bytes.Equal(all[tagA], bytesA) || !bytes.Equal(all[tagB], bytesB) {
		t.Fatalf("GetVectors(nil): %+v", all)
	}

	subset, err := s.GetVectors(n, []uint32{tagB})
	if err != nil {
		t.Fatal(err)
	}
	if len(subset) != 1 || !bytes.Equal(subset[tagB], bytesB) {
		t.Fatalf("GetVectors([tagB]): %+v", subset)
	}
}

func TestCreateNodeWithVectorsRejectsMalformedBytes(t *testing.T) {
	s := openStore(t)
	tagID, _ := s.GetOrCreateVecTagID("tag", true, 0)

	_, _, err := s.CreateNode(CreateNodeParams{
		Vectors: []TaggedVector{{TagID: tagID, Vector: []byte{1, 2, 3}}},
	})
	if err == nil {
		t.Fatal("CreateNode with malformed vector bytes: want error, got nil")
	}
}
