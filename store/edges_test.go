package store

import (
	"testing"

	"github.com/baudgraph/vertex/internal/kerr"
)

func TestGetEdgeResolvesTypeID(t *testing.T) {
	s := openStore(t)
	relID, _ := s.GetOrCreateRelTypeID("knows", true)
	a, _, _ := s.CreateNode(CreateNodeParams{})
	b, _, _ := s.CreateNode(CreateNodeParams{})

	ref, err := s.AddEdge(AddEdgeParams{Src: a, Dst: b, TypeID: relID})
	if err != nil {
		t.Fatal(err)
	}

	gotRef, gotType, err := s.GetEdge(ref.ID)
	if err != nil {
		t.Fatal(err)
	}
	if gotRef != ref {
		t.Errorf("GetEdge ref: want %+v, got %+v", ref, gotRef)
	}
	if gotType != relID {
		t.Errorf("GetEdge typeId: want %d, got %d", relID, gotType)
	}

	typeID, err := s.EdgeTypeID(ref.ID)
	if err != nil {
		t.Fatal(err)
	}
	if typeID != relID {
		t.Errorf("EdgeTypeID: want %d, got %d", relID, typeID)
	}
}

func TestUpdateAndGetEdgeProps(t *testing.T) {
	s := openStore(t)
	relID, _ := s.GetOrCreateRelTypeID("knows", true)
	a, _, _ := s.CreateNode(CreateNodeParams{})
	b, _, _ := s.CreateNode(CreateNodeParams{})
	k1, _ := s.GetOrCreatePropKeyID("since", true)
	k2, _ := s.GetOrCreatePropKeyID("weight", true)

	ref, err := s.AddEdge(AddEdgeParams{Src: a, Dst: b, TypeID: relID, Props: []Property{{KeyID: k1, Value: I64Value(2020)}}})
	if err != nil {
		t.Fatal(err)
	}

	if err := s.UpdateEdgeProps(UpdateEdgePropsParams{
		EdgeID: ref.ID,
		Set:    []Property{{KeyID: k2, Value: F64Value(0.5)}},
		Unset:  []uint32{k1},
	}); err != nil {
		t.Fatal(err)
	}

	props, err := s.GetEdgeProps(ref.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(props) != 1 || props[0].KeyID != k2 {
		t.Fatalf("GetEdgeProps after update: %+v", props)
	}
}

func TestUpdateEdgePropsOnMissingEdgeIsTolerated(t *testing.T) {
	s := openStore(t)
	k1, _ := s.GetOrCreatePropKeyID("x", true)
	if err := s.UpdateEdgeProps(UpdateEdgePropsParams{EdgeID: 999, Set: []Property{{KeyID: k1, Value: I64Value(1)}}}); err != nil {
		t.Errorf("UpdateEdgeProps on missing edge id: want no error, got %v", err)
	}
}

func TestDeleteEdgeMissingIsTolerated(t *testing.T) {
	s := openStore(t)
	if err := s.DeleteEdge(999); err != nil {
		t.Errorf("DeleteEdge on missing id: want no error, got %v", err)
	}
}

func TestDeleteEdgeRemovesBothAdjacencyRows(t *testing.T) {
	s := openStore(t)
	relID, _ := s.GetOrCreateRelTypeID("rel", true)
	a, _, _ := s.CreateNode(CreateNodeParams{})
	b, _, _ := s.CreateNode(CreateNodeParams{})

	ref, err := s.AddEdge(AddEdgeParams{Src: a, Dst: b, TypeID: relID})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteEdge(ref.ID); err != nil {
		t.Fatal(err)
	}

	if _, _, err := s.GetEdge(ref.ID); !kerr.IsNotFound(err) {
		t.Errorf("GetEdge after delete: want NotFound, got %v", err)
	}
	if out, _ := s.ListAdjacency(a, Out, 16); len(out) != 0 {
		t.Errorf("ListAdjacency(a, Out) after delete: want empty, got %+v", out)
	}
	if in, _ := s.ListAdjacency(b, In, 16); len(in) != 0 {
		t.Errorf("ListAdjacency(b, In) after delete: want empty, got %+v", in)
	}
}
