package store

import (
	"github.com/baudgraph/vertex/env"
	"github.com/baudgraph/vertex/internal/keyspace"
	"github.com/baudgraph/vertex/internal/kv"
)

// ListAdjacency cursor-scans the adjacency index(es) selected by dir,
// stopping at limit rows, per spec.md §4.6. For Both, Out is scanned
// first bounded by limit, then In with whatever budget remains; there
// is no cross-direction dedup (§9's resolution of the ambiguous source
// behavior).
func (s *Store) ListAdjacency(nodeID uint64, dir Direction, limit int) ([]Adjacency, error) {
	var result []Adjacency
	err := s.env.View(func(tx kv.Tx) error {
		if dir == Out || dir == Both {
			result = append(result, scanAdjacency(tx, env.EdgesBySrcType, keyspace.EdgeBySrcTypePrefix(nodeID), Out, limit)...)
		}
		if dir == In || dir == Both {
			if remaining := limit - len(result); remaining > 0 {
				result = append(result, scanAdjacency(tx, env.EdgesByDstType, keyspace.EdgeByDstTypePrefix(nodeID), In, remaining)...)
			}
		}
		return nil
	})
	return result, err
}

// scanAdjacency walks bucket under prefix, decoding each row as
// (typeId, neighbor, edgeId) per the edgesBy{Src,Dst}Type layout,
// stopping at limit rows.
func scanAdjacency(tx kv.Tx, bucketName string, prefix []byte, dir Direction, limit int) []Adjacency {
	var rows []Adjacency
	if limit <= 0 {
		return rows
	}
	kv.WalkPrefix(tx.Bucket(bucketName), prefix, func(key, _ []byte) bool {
		rows = append(rows, Adjacency{
			TypeID:     keyspace.DecodeU32Key(key[8:12]),
			NeighborID: keyspace.DecodeU64Key(key[12:20]),
			EdgeID:     keyspace.DecodeU64Key(key[20:28]),
			Direction:  dir,
		})
		return len(rows) < limit
	})
	return rows
}

// Degree counts adjacency rows for nodeID in direction dir without
// materializing them, per spec.md §4.6.
func (s *Store) Degree(nodeID uint64, dir Direction) (int, error) {
	var count int
	err := s.env.View(func(tx kv.Tx) error {
		if dir == Out || dir == Both {
			kv.WalkPrefix(tx.Bucket(env.EdgesBySrcType), keyspace.EdgeBySrcTypePrefix(nodeID), func(_, _ []byte) bool {
				count++
				return true
			})
		}
		if dir == In || dir == Both {
			kv.WalkPrefix(tx.Bucket(env.EdgesByDstType), keyspace.EdgeByDstTypePrefix(nodeID), func(_, _ []byte) bool {
				count++
				return true
			})
		}
		return nil
	})
	return count, err
}

// ScanNodesByLabel range-scans labelIndex from (labelId, 0), emitting
// node ids in ascending order, stopping at limit (0 means unbounded),
// per spec.md §4.6.
func (s *Store) ScanNodesByLabel(labelID uint32, limit int) ([]uint64, error) {
	var ids []uint64
	err := s.env.View(func(tx kv.Tx) error {
		kv.WalkPrefix(tx.Bucket(env.LabelIndex), keyspace.LabelIndexPrefix(labelID), func(key, _ []byte) bool {
			ids = append(ids, keyspace.DecodeU64Key(key[4:]))
			return limit <= 0 || len(ids) < limit
		})
		return nil
	})
	return ids, err
}

// NeighborIDs is the supplemental convenience accessor grounded on
// original_source's neighborsOut/neighborsIn: it returns the distinct
// neighbor ids from ListAdjacency in first-seen order, dropping
// edgeId/typeId. limit bounds the adjacency rows scanned, so fewer
// than limit ids come back when rows share a neighbor.
func (s *Store) NeighborIDs(nodeID uint64, dir Direction, limit int) ([]uint64, error) {
	rows, err := s.ListAdjacency(nodeID, dir, limit)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(rows))
	seen := make(map[uint64]struct{}, len(rows))
	for _, row := range rows {
		if _, dup := seen[row.NeighborID]; dup {
			continue
		}
		seen[row.NeighborID] = struct{}{}
		ids = append(ids, row.NeighborID)
	}
	return ids, nil
}
