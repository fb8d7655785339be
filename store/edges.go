package store

import (
	"github.com/baudgraph/vertex/env"
	"github.com/baudgraph/vertex/internal/codec"
	"github.com/baudgraph/vertex/internal/kerr"
	"github.com/baudgraph/vertex/internal/keyspace"
	"github.com/baudgraph/vertex/internal/kv"
)

// AddEdge allocates an edge id, writes the canonical edgesById record,
// both adjacency index rows, and any properties, all in one
// transaction, per spec.md §4.5.
func (s *Store) AddEdge(p AddEdgeParams) (EdgeRef, error) {
	var ref EdgeRef
	err := s.env.Update(func(tx kv.Tx) error {
		var err error
		ref, err = addEdgeTx(tx, p)
		return err
	})
	return ref, err
}

// addEdgeTx is AddEdge's body, factored out for WriteBatch.
func addEdgeTx(tx kv.Tx, p AddEdgeParams) (EdgeRef, error) {
	edgeID := nextEdgeID(tx)
	ref := EdgeRef{ID: edgeID, Src: p.Src, Dst: p.Dst}

	if err := tx.Bucket(env.EdgesByID).Put(keyspace.EdgeByID(edgeID), codec.EncodeEdgeRef(ref)); err != nil {
		return EdgeRef{}, err
	}
	if err := tx.Bucket(env.EdgesBySrcType).Put(keyspace.EdgeBySrcType(p.Src, p.TypeID, p.Dst, edgeID), []byte{}); err != nil {
		return EdgeRef{}, err
	}
	if err := tx.Bucket(env.EdgesByDstType).Put(keyspace.EdgeByDstType(p.Dst, p.TypeID, p.Src, edgeID), []byte{}); err != nil {
		return EdgeRef{}, err
	}

	props := tx.Bucket(env.EdgeProps)
	for _, prop := range p.Props {
		if err := props.Put(keyspace.EdgeProp(edgeID, prop.KeyID), codec.EncodeValue(nil, prop.Value)); err != nil {
			return EdgeRef{}, err
		}
	}
	return ref, nil
}

// findEdgeTypeID discovers typeId for edgeId by scanning edgesBySrcType
// under prefix(src) for the unique row whose (dst, edgeId) suffix
// matches, per spec.md §4.5's deleteEdge/§4.6's getEdge algorithm.
func findEdgeTypeID(tx kv.Tx, src, dst, edgeID uint64) (uint32, bool) {
	var typeID uint32
	var found bool
	kv.WalkPrefix(tx.Bucket(env.EdgesBySrcType), keyspace.EdgeBySrcTypePrefix(src), func(key, _ []byte) bool {
		rowDst := keyspace.DecodeU64Key(key[12:20])
		rowEdgeID := keyspace.DecodeU64Key(key[20:28])
		if rowDst == dst && rowEdgeID == edgeID {
			typeID = keyspace.DecodeU32Key(key[8:12])
			found = true
			return false
		}
		return true
	})
	return typeID, found
}

// EdgeTypeID resolves the typeId of a live edge, per the supplemental
// accessor original_source exposes alongside getEdgeTypeId.
func (s *Store) EdgeTypeID(edgeID uint64) (uint32, error) {
	var typeID uint32
	err := s.env.View(func(tx kv.Tx) error {
		ref, err := loadEdgeRef(tx, edgeID)
		if err != nil {
			return err
		}
		t, ok := findEdgeTypeID(tx, ref.Src, ref.Dst, edgeID)
		if !ok {
			return kerr.NotFoundf("store: edge %d has no adjacency rows", edgeID)
		}
		typeID = t
		return nil
	})
	return typeID, err
}

func loadEdgeRef(tx kv.Tx, edgeID uint64) (EdgeRef, error) {
	raw := tx.Bucket(env.EdgesByID).Get(keyspace.EdgeByID(edgeID))
	if raw == nil {
		return EdgeRef{}, kerr.NotFoundf("store: edge %d not found", edgeID)
	}
	return codec.DecodeEdgeRef(raw)
}

// GetEdge returns the canonical ref plus the resolved typeId for
// edgeID, per spec.md §4.6.
func (s *Store) GetEdge(edgeID uint64) (EdgeRef, uint32, error) {
	var ref EdgeRef
	var typeID uint32
	err := s.env.View(func(tx kv.Tx) error {
		r, err := loadEdgeRef(tx, edgeID)
		if err != nil {
			return err
		}
		ref = r
		t, ok := findEdgeTypeID(tx, ref.Src, ref.Dst, edgeID)
		if !ok {
			return kerr.NotFoundf("store: edge %d has no adjacency rows", edgeID)
		}
		typeID = t
		return nil
	})
	return ref, typeID, err
}

// GetEdgeProps returns properties for edgeID. With an empty keys set,
// it returns every property in key-id order.
func (s *Store) GetEdgeProps(edgeID uint64, keys []uint32) ([]Property, error) {
	var result []Property
	err := s.env.View(func(tx kv.Tx) error {
		props := tx.Bucket(env.EdgeProps)

		if len(keys) == 0 {
			var decodeErr error
			kv.WalkPrefix(props, keyspace.EdgePropPrefix(edgeID), func(key, value []byte) bool {
				keyID := keyspace.DecodeU32Key(key[8:])
				val, _, err := codec.DecodeValue(value)
				if err != nil {
					decodeErr = err
					return false
				}
				result = append(result, Property{KeyID: keyID, Value: val})
				return true
			})
			return decodeErr
		}

		for _, keyID := range keys {
			raw := props.Get(keyspace.EdgeProp(edgeID, keyID))
			if raw == nil {
				continue
			}
			val, _, err := codec.DecodeValue(raw)
			if err != nil {
				return err
			}
			result = append(result, Property{KeyID: keyID, Value: val})
		}
		return nil
	})
	return result, err
}

// UpdateEdgeProps puts Set and deletes Unset property rows for edgeId.
// Per spec.md §4.5/§9, this does not require edgeId to exist: a
// mistyped id silently anchors rows on a dangling id, matching the
// documented (not tightened) source behavior.
func (s *Store) UpdateEdgeProps(p UpdateEdgePropsParams) error {
	return s.env.Update(func(tx kv.Tx) error { return updateEdgePropsTx(tx, p) })
}

// updateEdgePropsTx is UpdateEdgeProps's body, factored out for
// WriteBatch.
func updateEdgePropsTx(tx kv.Tx, p UpdateEdgePropsParams) error {
	props := tx.Bucket(env.EdgeProps)
	for _, prop := range p.Set {
		if err := props.Put(keyspace.EdgeProp(p.EdgeID, prop.KeyID), codec.EncodeValue(nil, prop.Value)); err != nil {
			return err
		}
	}
	for _, keyID := range p.Unset {
		_ = props.Delete(keyspace.EdgeProp(p.EdgeID, keyID)) // NotFound is OK
	}
	return nil
}

// DeleteEdge deletes edgeId's canonical record, both adjacency rows,
// and its property rows. A missing canonical record is tolerated, per
// spec.md §4.5.
func (s *Store) DeleteEdge(edgeID uint64) error {
	return s.env.Update(func(tx kv.Tx) error {
		ref, err := loadEdgeRef(tx, edgeID)
		if kerr.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}

		typeID, ok := findEdgeTypeID(tx, ref.Src, ref.Dst, edgeID)
		if ok {
			_ = tx.Bucket(env.EdgesBySrcType).Delete(keyspace.EdgeBySrcType(ref.Src, typeID, ref.Dst, edgeID))
			_ = tx.Bucket(env.EdgesByDstType).Delete(keyspace.EdgeByDstType(ref.Dst, typeID, ref.Src, edgeID))
		}

		if err := tx.Bucket(env.EdgesByID).Delete(keyspace.EdgeByID(edgeID)); err != nil {
			return err
		}
		return kv.DeletePrefix(tx.Bucket(env.EdgeProps), keyspace.EdgePropPrefix(edgeID))
	})
}
