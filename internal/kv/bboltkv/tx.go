package bboltkv

import (
	"go.etcd.io/bbolt"

	"github.com/baudgraph/vertex/internal/kv"
)

// Tx wraps a *bbolt.Tx, handing out named buckets on demand — the
// multi-bucket generalization of the teacher's
// boltdb.Transaction{tx, bucket}, which held exactly one.
type Tx struct {
	tx       *bbolt.Tx
	writable bool
}

var _ kv.Tx = (*Tx)(nil)

// Bucket implements kv.Tx. It panics if name was not in the bucket
// list passed to Open — a programming error, not a runtime one.
func (t *Tx) Bucket(name string) kv.Bucket {
	b := t.tx.Bucket([]byte(name))
	if b == nil {
		panic("bboltkv: unknown bucket " + name)
	}
	return &Bucket{b: b}
}

// Writable implements kv.Tx.
func (t *Tx) Writable() bool { return t.writable }

// Bucket wraps a *bbolt.Bucket.
type Bucket struct {
	b *bbolt.Bucket
}

var _ kv.Bucket = (*Bucket)(nil)

// Get implements kv.Bucket. The returned slice is only valid for the
// lifetime of the enclosing transaction; callers that retain it past
// commit/rollback must clone it first (cloneBytes in the teacher's
// boltdb.Store.Get serves the same purpose for its copy-out API).
func (b *Bucket) Get(key []byte) []byte { return b.b.Get(key) }

// Put implements kv.Bucket.
func (b *Bucket) Put(key, value []byte) error { return b.b.Put(key, value) }

// Delete implements kv.Bucket.
func (b *Bucket) Delete(key []byte) error { return b.b.Delete(key) }

// Cursor implements kv.Bucket.
func (b *Bucket) Cursor() kv.Cursor { return &Cursor{c: b.b.Cursor()} }

// Cursor wraps a *bbolt.Cursor, matching the teacher's
// boltdb.Iterator's Seek/Next/Current shape but returning key/value
// pairs directly instead of tracking validity as separate state — a
// bbolt cursor already signals exhaustion with a nil key.
type Cursor struct {
	c *bbolt.Cursor
}

var _ kv.Cursor = (*Cursor)(nil)

func (c *Cursor) Seek(k []byte) (key, value []byte)  { return c.c.Seek(k) }
func (c *Cursor) First() (key, value []byte)         { return c.c.First() }
func (c *Cursor) Next() (key, value []byte)          { return c.c.Next() }
