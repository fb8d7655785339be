package store

import "github.com/baudgraph/vertex/internal/codec"

// Value, Property, NodeHeader, and EdgeRef are vertex's public record
// shapes, re-exported from internal/codec so that callers working at
// the Store API boundary never need to reach into the encoder
// internals to build a request.
type (
	Value      = codec.Value
	Property   = codec.Property
	NodeHeader = codec.NodeHeader
	EdgeRef    = codec.EdgeRef
)

// Value constructors, re-exported for the same reason.
var (
	I64Value    = codec.I64Value
	F64Value    = codec.F64Value
	BoolValue   = codec.BoolValue
	TextIDValue = codec.TextIDValue
	BytesValue  = codec.BytesValue
	NullValue   = codec.NullValue
)

// TaggedVector is a vector attachment keyed by its vector-tag id, per
// spec.md §3's nodeVectors entity.
type TaggedVector struct {
	TagID  uint32
	Vector []byte // raw float32 bytes, len = 4*dim(TagID)
}

// Direction selects which adjacency index(es) a traversal consults.
type Direction int

const (
	Out Direction = iota
	In
	Both
)

// Adjacency is one row yielded by ListAdjacency: a neighbor reached
// through one typed, directed edge.
type Adjacency struct {
	NeighborID uint64
	EdgeID     uint64
	TypeID     uint32
	Direction  Direction
}

// CreateNodeParams is the input to CreateNode.
type CreateNodeParams struct {
	Labels    []uint32
	HotProps  []Property
	ColdProps []Property
	Vectors   []TaggedVector
}

// UpsertNodePropsParams is the input to UpsertNodeProps. Per spec.md
// §4.5, within one call Unset is applied before Set, so a key present
// in both ends up set.
type UpsertNodePropsParams struct {
	ID       uint64
	SetHot   []Property
	SetCold  []Property
	Unset    []uint32
}

// SetNodeLabelsParams is the input to SetNodeLabels. Per spec.md §4.5,
// when an id appears in both Add and Remove, Add wins (final state is
// "present").
type SetNodeLabelsParams struct {
	ID     uint64
	Add    []uint32
	Remove []uint32
}

// AddEdgeParams is the input to AddEdge.
type AddEdgeParams struct {
	Src    uint64
	Dst    uint64
	TypeID uint32
	Props  []Property
}

// UpdateEdgePropsParams is the input to UpdateEdgeProps.
type UpdateEdgePropsParams struct {
	EdgeID uint64
	Set    []Property
	Unset  []uint32
}

// KnnHit is one result row from KNN, in descending score order.
type KnnHit struct {
	NodeID uint64
	Score  float32
}
