// Package store implements vertex's public API: node/edge/vector
// CRUD, filtered adjacency traversal, label-index scans, degree
// counts, brute-force KNN, and batched writes, all scoped to single
// transactions per spec.md §4.5-§4.8. This is the component
// spec.md §1 calls "the real engineering": the cross-index invariants
// (I1-I7) are enforced entirely inside the methods below, one
// committed write transaction at a time.
package store

import (
	"encoding/binary"

	"github.com/baudgraph/vertex/env"
	"github.com/baudgraph/vertex/internal/dict"
	"github.com/baudgraph/vertex/internal/kv"
)

// Store is the public graph+vector store API. One Store wraps one Env
// and one Dictionary, both safe to share across concurrent callers per
// spec.md §5 (the engine's own writer lock serializes writes; reads
// run against consistent snapshots).
type Store struct {
	env  *env.Env
	dict *dict.Dictionary
}

// Open opens the environment at opts.Dir and returns a ready Store.
func Open(opts env.Options) (*Store, error) {
	e, err := env.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{env: e, dict: dict.New(e)}, nil
}

// Close closes the underlying environment.
func (s *Store) Close() error { return s.env.Close() }

// nextNodeID allocates the next node id from meta.nodeSeq within tx.
func nextNodeID(tx kv.Tx) uint64 { return nextU64Seq(tx, "nodeSeq") }

// nextEdgeID allocates the next edge id from meta.edgeSeq within tx.
func nextEdgeID(tx kv.Tx) uint64 { return nextU64Seq(tx, "edgeSeq") }

// nextU64Seq increments and returns the named meta sequence, per
// spec.md §3's "meta: ... u64 counter" rows. Node and edge ids are
// issued starting at 1, so 0 stays available as an "absent" sentinel
// in any wire format that embeds a node/edge id.
func nextU64Seq(tx kv.Tx, metaKey string) uint64 {
	meta := tx.Bucket(env.Meta)
	key := []byte(metaKey)
	var current uint64
	if v := meta.Get(key); v != nil {
		current = binary.BigEndian.Uint64(v)
	}
	next := current + 1
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], next)
	_ = meta.Put(key, buf[:])
	return next
}
