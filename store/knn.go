package store

import (
	"container/heap"
	"encoding/binary"
	"math"

	"github.com/baudgraph/vertex/env"
	"github.com/baudgraph/vertex/internal/kerr"
	"github.com/baudgraph/vertex/internal/keyspace"
	"github.com/baudgraph/vertex/internal/kv"
)

// Knn runs a brute-force cosine-similarity scan over every nodeVectors
// row tagged tagId, keeping the top k in a size-k min-heap, per
// spec.md §4.7.
func (s *Store) Knn(tagID uint32, query []byte, k int) ([]KnnHit, error) {
	if k == 0 {
		return nil, nil
	}

	var dim uint32
	err := s.env.View(func(tx kv.Tx) error {
		raw := tx.Bucket(env.VecTagMeta).Get(keyspace.VecTagMeta(tagID))
		if raw == nil {
			return nil
		}
		dim = binary.BigEndian.Uint32(raw)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if dim == 0 {
		return nil, nil
	}
	if len(query) != int(4*dim) {
		return nil, kerr.InvalidArgumentf("store: knn query has %d bytes, want %d", len(query), 4*dim)
	}

	q := decodeFloats(query, dim)
	qNorm := norm(q)
	if qNorm == 0 {
		qNorm = 1
	}

	h := &knnHeap{}
	heap.Init(h)

	err = s.env.View(func(tx kv.Tx) error {
		vectors := tx.Bucket(env.NodeVectors)
		cur := vectors.Cursor()
		for key, value := cur.First(); key != nil; key, value = cur.Next() {
			if len(key) < 12 || keyspace.DecodeU32Key(key[8:]) != tagID {
				continue
			}
			if len(value) != int(4*dim) {
				continue
			}
			v := decodeFloats(value, dim)
			vNorm := norm(v)
			var score float32
			if vNorm != 0 {
				score = float32(dot(q, v) / (qNorm * vNorm))
			}
			nodeID := keyspace.DecodeU64Key(key[:8])

			if h.Len() < k {
				heap.Push(h, KnnHit{NodeID: nodeID, Score: score})
			} else if score > (*h)[0].Score {
				heap.Pop(h)
				heap.Push(h, KnnHit{NodeID: nodeID, Score: score})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	hits := make([]KnnHit, h.Len())
	for i := len(hits) - 1; i >= 0; i-- {
		hits[i] = heap.Pop(h).(KnnHit)
	}
	return hits, nil
}

func decodeFloats(b []byte, dim uint32) []float64 {
	out := make([]float64, dim)
	for i := uint32(0); i < dim; i++ {
		bits := binary.LittleEndian.Uint32(b[i*4 : i*4+4])
		out[i] = float64(math.Float32frombits(bits))
	}
	return out
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func norm(a []float64) float64 {
	return math.Sqrt(dot(a, a))
}

// knnHeap is a min-heap on Score, giving Knn a bounded size-k working
// set: the smallest current hit sits at index 0 so it can be popped
// when a better candidate arrives.
type knnHeap []KnnHit

func (h knnHeap) Len() int            { return len(h) }
func (h knnHeap) Less(i, j int) bool  { return h[i].Score < h[j].Score }
func (h knnHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *knnHeap) Push(x interface{}) { *h = append(*h, x.(KnnHit)) }
func (h *knnHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
