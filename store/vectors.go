package store

import (
	"encoding/binary"

	"github.com/baudgraph/vertex/env"
	"github.com/baudgraph/vertex/internal/kerr"
	"github.com/baudgraph/vertex/internal/keyspace"
	"github.com/baudgraph/vertex/internal/kv"
)

// putVectors validates and writes each of vecs against vecTagMeta,
// fixing each tag's dimension on first use, per spec.md §4.5/§4.7.
func putVectors(tx kv.Tx, nodeID uint64, vecs []TaggedVector) error {
	for _, v := range vecs {
		if err := putVector(tx, nodeID, v.TagID, v.Vector); err != nil {
			return err
		}
	}
	return nil
}

// putVector is the shared body of CreateNode's per-vector write and
// UpsertVector: reject malformed byte lengths, fix or check the tag's
// dimension, then write the row. Per spec.md §4.5.
func putVector(tx kv.Tx, nodeID uint64, tagID uint32, bytes []byte) error {
	if len(bytes)%4 != 0 {
		return kerr.InvalidArgumentf("store: vector byte length %d is not a multiple of 4", len(bytes))
	}
	dim := uint32(len(bytes) / 4)

	meta := tx.Bucket(env.VecTagMeta)
	key := keyspace.VecTagMeta(tagID)
	if raw := meta.Get(key); raw != nil {
		existing := binary.BigEndian.Uint32(raw)
		if existing != dim {
			return kerr.DimMismatchf("store: tag %d has dim %d, got %d", tagID, existing, dim)
		}
	} else {
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], dim)
		if err := meta.Put(key, buf[:]); err != nil {
			return err
		}
	}

	return tx.Bucket(env.NodeVectors).Put(keyspace.NodeVector(nodeID, tagID), bytes)
}

// UpsertVector validates bytes against the tag's fixed dimension
// (rejecting non-multiple-of-4 lengths and, once a tag has a
// dimension, any other length) and writes the row, per spec.md §4.5.
func (s *Store) UpsertVector(nodeID uint64, tagID uint32, bytes []byte) error {
	return s.env.Update(func(tx kv.Tx) error {
		return putVector(tx, nodeID, tagID, bytes)
	})
}

// DeleteVector deletes the vector row for (nodeID, tagID). Absence is
// not an error, per spec.md §4.5.
func (s *Store) DeleteVector(nodeID uint64, tagID uint32) error {
	return s.env.Update(func(tx kv.Tx) error { return deleteVectorTx(tx, nodeID, tagID) })
}

// deleteVectorTx is DeleteVector's body, factored out for WriteBatch.
func deleteVectorTx(tx kv.Tx, nodeID uint64, tagID uint32) error {
	return tx.Bucket(env.NodeVectors).Delete(keyspace.NodeVector(nodeID, tagID))
}

// GetVectors returns the raw vector bytes for nodeID, one entry per
// requested tag that has a stored vector. With an empty tags set, it
// returns every vector the node has.
func (s *Store) GetVectors(nodeID uint64, tags []uint32) (map[uint32][]byte, error) {
	result := make(map[uint32][]byte)
	err := s.env.View(func(tx kv.Tx) error {
		vectors := tx.Bucket(env.NodeVectors)

		if len(tags) == 0 {
			kv.WalkPrefix(vectors, keyspace.NodeVectorPrefix(nodeID), func(key, value []byte) bool {
				tagID := keyspace.DecodeU32Key(key[8:])
				result[tagID] = append([]byte(nil), value...)
				return true
			})
			return nil
		}

		for _, tagID := range tags {
			if raw := vectors.Get(keyspace.NodeVector(nodeID, tagID)); raw != nil {
				result[tagID] = append([]byte(nil), raw...)
			}
		}
		return nil
	})
	return result, err
}
