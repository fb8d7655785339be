package store

import (
	"github.com/baudgraph/vertex/env"
	"github.com/baudgraph/vertex/internal/codec"
	"github.com/baudgraph/vertex/internal/kerr"
	"github.com/baudgraph/vertex/internal/keyspace"
	"github.com/baudgraph/vertex/internal/kv"
	"github.com/baudgraph/vertex/internal/vlog"
)

// CreateNode allocates a node id, writes its header, cold properties,
// vectors, and label-index rows, and commits in one write transaction,
// per spec.md §4.5.
func (s *Store) CreateNode(p CreateNodeParams) (uint64, NodeHeader, error) {
	var id uint64
	var header NodeHeader

	err := s.env.Update(func(tx kv.Tx) error {
		var err error
		id, header, err = createNodeTx(tx, p)
		return err
	})
	if err != nil {
		return 0, NodeHeader{}, err
	}

	vlog.Debugf("store: created node %d (labels=%v)", id, header.Labels)
	return id, header, nil
}

// createNodeTx is CreateNode's body, factored out so WriteBatch can
// run it inside a caller-owned transaction alongside other ops.
func createNodeTx(tx kv.Tx, p CreateNodeParams) (uint64, NodeHeader, error) {
	id := nextNodeID(tx)
	header := NodeHeader{
		ID:       id,
		Labels:   codec.SortDedupLabels(p.Labels),
		HotProps: append([]Property(nil), p.HotProps...),
	}

	nodes := tx.Bucket(env.Nodes)
	if err := nodes.Put(keyspace.Node(id), codec.EncodeNodeHeader(nil, header)); err != nil {
		return 0, NodeHeader{}, err
	}

	cold := tx.Bucket(env.NodeColdProps)
	for _, prop := range p.ColdProps {
		if err := cold.Put(keyspace.NodeColdProp(id, prop.KeyID), codec.EncodeValue(nil, prop.Value)); err != nil {
			return 0, NodeHeader{}, err
		}
	}

	if err := putVectors(tx, id, p.Vectors); err != nil {
		return 0, NodeHeader{}, err
	}

	labelIdx := tx.Bucket(env.LabelIndex)
	for _, labelID := range header.Labels {
		if err := labelIdx.Put(keyspace.LabelIndex(labelID, id), []byte{}); err != nil {
			return 0, NodeHeader{}, err
		}
	}

	return id, header, nil
}

// loadHeader reads and decodes the node header at id within tx,
// failing with kerr.ErrNotFound if absent.
func loadHeader(tx kv.Tx, id uint64) (NodeHeader, error) {
	raw := tx.Bucket(env.Nodes).Get(keyspace.Node(id))
	if raw == nil {
		return NodeHeader{}, kerr.NotFoundf("store: node %d not found", id)
	}
	return codec.DecodeNodeHeader(raw)
}

// GetNode returns the decoded header for id, or kerr.ErrNotFound if
// absent.
func (s *Store) GetNode(id uint64) (NodeHeader, error) {
	var header NodeHeader
	err := s.env.View(func(tx kv.Tx) error {
		h, err := loadHeader(tx, id)
		if err != nil {
			return err
		}
		header = h
		return nil
	})
	return header, err
}

// UpsertNodeProps applies Unset then Set to id's properties within one
// transaction, per spec.md §4.5: unset is applied before set, so a key
// present in both ends up set.
func (s *Store) UpsertNodeProps(p UpsertNodePropsParams) error {
	return s.env.Update(func(tx kv.Tx) error { return upsertNodePropsTx(tx, p) })
}

// upsertNodePropsTx is UpsertNodeProps's body, factored out for
// WriteBatch.
func upsertNodePropsTx(tx kv.Tx, p UpsertNodePropsParams) error {
	header, err := loadHeader(tx, p.ID)
	if err != nil {
		return err
	}

	unset := make(map[uint32]struct{}, len(p.Unset))
	for _, k := range p.Unset {
		unset[k] = struct{}{}
	}
	filtered := header.HotProps[:0:0]
	for _, hp := range header.HotProps {
		if _, gone := unset[hp.KeyID]; !gone {
			filtered = append(filtered, hp)
		}
	}
	header.HotProps = filtered

	for _, sp := range p.SetHot {
		if idx := codec.FindProperty(header.HotProps, sp.KeyID); idx >= 0 {
			header.HotProps[idx] = sp
		} else {
			header.HotProps = append(header.HotProps, sp)
		}
	}

	if err := tx.Bucket(env.Nodes).Put(keyspace.Node(p.ID), codec.EncodeNodeHeader(nil, header)); err != nil {
		return err
	}

	cold := tx.Bucket(env.NodeColdProps)
	for _, k := range p.Unset {
		_ = cold.Delete(keyspace.NodeColdProp(p.ID, k)) // NotFound is OK
	}
	for _, sp := range p.SetCold {
		if err := cold.Put(keyspace.NodeColdProp(p.ID, sp.KeyID), codec.EncodeValue(nil, sp.Value)); err != nil {
			return err
		}
	}

	return nil
}

// SetNodeLabels merges Add/Remove into id's label set and updates the
// labelIndex rows to match, preserving I6 (sorted, deduplicated).
func (s *Store) SetNodeLabels(p SetNodeLabelsParams) error {
	return s.env.Update(func(tx kv.Tx) error { return setNodeLabelsTx(tx, p) })
}

// setNodeLabelsTx is SetNodeLabels's body, factored out for WriteBatch.
func setNodeLabelsTx(tx kv.Tx, p SetNodeLabelsParams) error {
	header, err := loadHeader(tx, p.ID)
	if err != nil {
		return err
	}

	merged := codec.MergeLabels(header.Labels, p.Add, p.Remove)
	header.Labels = merged

	if err := tx.Bucket(env.Nodes).Put(keyspace.Node(p.ID), codec.EncodeNodeHeader(nil, header)); err != nil {
		return err
	}

	labelIdx := tx.Bucket(env.LabelIndex)
	for _, id := range p.Add {
		if err := labelIdx.Put(keyspace.LabelIndex(id, p.ID), []byte{}); err != nil {
			return err
		}
	}
	for _, id := range p.Remove {
		if containsU32(p.Add, id) {
			continue // add wins when an id is in both sets
		}
		_ = labelIdx.Delete(keyspace.LabelIndex(id, p.ID)) // NotFound is OK
	}

	return nil
}

func containsU32(ids []uint32, id uint32) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// GetNodeProps returns properties for id. With an empty keys set, it
// returns hot props first, then cold props (in key-id order). With a
// non-empty keys set, each key is resolved from hot first, falling
// back to cold, per spec.md §4.6.
func (s *Store) GetNodeProps(id uint64, keys []uint32) ([]Property, error) {
	var result []Property
	err := s.env.View(func(tx kv.Tx) error {
		header, err := loadHeader(tx, id)
		if err != nil {
			return err
		}

		if len(keys) == 0 {
			result = append(result, header.HotProps...)
			kv.WalkPrefix(tx.Bucket(env.NodeColdProps), keyspace.NodeColdPropPrefix(id), func(key, value []byte) bool {
				keyID := keyspace.DecodeU32Key(key[8:])
				val, _, derr := codec.DecodeValue(value)
				if derr != nil {
					err = derr
					return false
				}
				result = append(result, Property{KeyID: keyID, Value: val})
				return true
			})
			return err
		}

		cold := tx.Bucket(env.NodeColdProps)
		for _, keyID := range keys {
			if idx := codec.FindProperty(header.HotProps, keyID); idx >= 0 {
				result = append(result, header.HotProps[idx])
				continue
			}
			raw := cold.Get(keyspace.NodeColdProp(id, keyID))
			if raw == nil {
				continue
			}
			val, _, derr := codec.DecodeValue(raw)
			if derr != nil {
				return derr
			}
			result = append(result, Property{KeyID: keyID, Value: val})
		}
		return nil
	})
	return result, err
}

// DeleteNode deletes id's header, label-index rows, every incident
// edge (both directions) with its property rows, and id's own cold
// properties and vectors, all in one write transaction so I1/I2/I7
// hold even if a later step in the cascade fails (the whole
// transaction aborts). Per spec.md §9, the node record is deleted
// exactly once, after the cascade — not before and after. A missing
// node is tolerated and is not an error.
func (s *Store) DeleteNode(id uint64) error {
	return s.env.Update(func(tx kv.Tx) error {
		header, err := loadHeader(tx, id)
		if kerr.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}

		labelIdx := tx.Bucket(env.LabelIndex)
		for _, labelID := range header.Labels {
			_ = labelIdx.Delete(keyspace.LabelIndex(labelID, id))
		}

		touchedEdges, err := cascadeDeleteIncidentEdges(tx, id)
		if err != nil {
			return err
		}

		edgesByID := tx.Bucket(env.EdgesByID)
		edgeProps := tx.Bucket(env.EdgeProps)
		for edgeID := range touchedEdges {
			_ = edgesByID.Delete(keyspace.EdgeByID(edgeID))
			if err := kv.DeletePrefix(edgeProps, keyspace.EdgePropPrefix(edgeID)); err != nil {
				return err
			}
		}

		if err := kv.DeletePrefix(tx.Bucket(env.NodeColdProps), keyspace.NodeColdPropPrefix(id)); err != nil {
			return err
		}
		if err := kv.DeletePrefix(tx.Bucket(env.NodeVectors), keyspace.NodeVectorPrefix(id)); err != nil {
			return err
		}

		return tx.Bucket(env.Nodes).Delete(keyspace.Node(id))
	})
}

// cascadeDeleteIncidentEdges removes every edgesBySrcType/edgesByDstType
// row touching id (as either endpoint) and returns the set of edge ids
// discovered, for the caller to finish deleting from edgesById and
// edgeProps. Scanning src first then dst mirrors spec.md §4.5 step 2/3.
func cascadeDeleteIncidentEdges(tx kv.Tx, id uint64) (map[uint64]struct{}, error) {
	touched := make(map[uint64]struct{})

	srcBucket := tx.Bucket(env.EdgesBySrcType)
	dstBucket := tx.Bucket(env.EdgesByDstType)

	var outRows [][]byte
	kv.WalkPrefix(srcBucket, keyspace.EdgeBySrcTypePrefix(id), func(key, _ []byte) bool {
		outRows = append(outRows, append([]byte(nil), key...))
		return true
	})
	for _, key := range outRows {
		typeID := keyspace.DecodeU32Key(key[8:12])
		dst := keyspace.DecodeU64Key(key[12:20])
		edgeID := keyspace.DecodeU64Key(key[20:28])
		if err := srcBucket.Delete(key); err != nil {
			return nil, err
		}
		_ = dstBucket.Delete(keyspace.EdgeByDstType(dst, typeID, id, edgeID))
		touched[edgeID] = struct{}{}
	}

	var inRows [][]byte
	kv.WalkPrefix(dstBucket, keyspace.EdgeByDstTypePrefix(id), func(key, _ []byte) bool {
		inRows = append(inRows, append([]byte(nil), key...))
		return true
	})
	// A self-loop's dst-side row was already removed by the src-side
	// pass above (that pass deletes both its own row and its mirror),
	// so inRows here only ever contains genuinely incoming edges.
	for _, key := range inRows {
		typeID := keyspace.DecodeU32Key(key[8:12])
		src := keyspace.DecodeU64Key(key[12:20])
		edgeID := keyspace.DecodeU64Key(key[20:28])
		if err := dstBucket.Delete(key); err != nil {
			return nil, err
		}
		_ = srcBucket.Delete(keyspace.EdgeBySrcType(src, typeID, id, edgeID))
		touched[edgeID] = struct{}{}
	}

	return touched, nil
}
