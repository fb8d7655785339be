package store

import (
	"github.com/pkg/errors"

	"github.com/baudgraph/vertex/internal/kerr"
	"github.com/baudgraph/vertex/internal/kv"
)

// BatchOpKind selects which field of a BatchOp is populated.
type BatchOpKind int

const (
	BatchCreateNode BatchOpKind = iota
	BatchUpsertNodeProps
	BatchSetNodeLabels
	BatchUpsertVector
	BatchDeleteVector
	BatchAddEdge
	BatchUpdateEdgeProps
)

// BatchUpsertVectorParams is the input to a BatchUpsertVector op.
type BatchUpsertVectorParams struct {
	NodeID uint64
	TagID  uint32
	Bytes  []byte
}

// BatchDeleteVectorParams is the input to a BatchDeleteVector op.
type BatchDeleteVectorParams struct {
	NodeID uint64
	TagID  uint32
}

// BatchOp is one typed mutation in a WriteBatch, per spec.md §4.8.
// Exactly the field matching Kind is read.
type BatchOp struct {
	Kind BatchOpKind

	CreateNode       CreateNodeParams
	UpsertNodeProps  UpsertNodePropsParams
	SetNodeLabels    SetNodeLabelsParams
	UpsertVector     BatchUpsertVectorParams
	DeleteVector     BatchDeleteVectorParams
	AddEdge          AddEdgeParams
	UpdateEdgeProps  UpdateEdgePropsParams
}

// WriteBatch applies ops sequentially inside one write transaction,
// per spec.md §4.8. Results of an intra-batch CreateNode/AddEdge are
// not fed back into later ops by the batch itself — callers reference
// previously-known ids, same as the source's batch dispatcher. Any
// op's failure aborts the whole batch.
func (s *Store) WriteBatch(ops []BatchOp) error {
	return s.env.Update(func(tx kv.Tx) error {
		for i, op := range ops {
			if err := applyBatchOp(tx, op); err != nil {
				return errors.Wrapf(err, "store: batch op %d (kind %d) failed", i, op.Kind)
			}
		}
		return nil
	})
}

func applyBatchOp(tx kv.Tx, op BatchOp) error {
	switch op.Kind {
	case BatchCreateNode:
		_, _, err := createNodeTx(tx, op.CreateNode)
		return err
	case BatchUpsertNodeProps:
		return upsertNodePropsTx(tx, op.UpsertNodeProps)
	case BatchSetNodeLabels:
		return setNodeLabelsTx(tx, op.SetNodeLabels)
	case BatchUpsertVector:
		return putVector(tx, op.UpsertVector.NodeID, op.UpsertVector.TagID, op.UpsertVector.Bytes)
	case BatchDeleteVector:
		return deleteVectorTx(tx, op.DeleteVector.NodeID, op.DeleteVector.TagID)
	case BatchAddEdge:
		_, err := addEdgeTx(tx, op.AddEdge)
		return err
	case BatchUpdateEdgeProps:
		return updateEdgePropsTx(tx, op.UpdateEdgeProps)
	default:
		return kerr.InvalidArgumentf("store: unknown batch op kind %d", op.Kind)
	}
}
