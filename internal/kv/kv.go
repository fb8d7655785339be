// Package kv defines vertex's abstraction over an embedded,
// transactional, ordered key-value engine: the LMDB-equivalent
// primitive spec.md §1 and §4.3 assume exists and use only through
// put/get/del/range-cursor/commit/abort. This generalizes the
// teacher's kernel/store/kvstore.KVStore interface (one bucket per
// store) to the multi-bucket transactions vertex's Env needs: a single
// write transaction touches many of the named tables in spec.md §3 at
// once, so Tx exposes every bucket by name instead of one fixed
// bucket.
package kv

// Store owns the engine handle and the full, fixed set of named
// buckets opened at bootstrap. Concrete implementations (bboltkv) wrap
// a specific engine.
type Store interface {
	// Update runs fn inside one read-write transaction. The
	// transaction commits if fn returns nil, and aborts (discarding
	// all writes) if fn returns an error or panics. Per spec.md §5,
	// write transactions serialize against each other through the
	// engine's own writer lock.
	Update(fn func(Tx) error) error

	// View runs fn inside one read-only transaction over a consistent
	// snapshot taken at begin. Readers never block writers or other
	// readers.
	View(fn func(Tx) error) error

	// Close releases the engine handle. It must not be called while
	// any transaction from this Store is still open.
	Close() error
}

// Tx is a single transaction's view over every named bucket.
type Tx interface {
	// Bucket returns the named bucket. Every bucket named in spec.md
	// §3 is guaranteed to exist for the lifetime of the Store; Bucket
	// panics on an unknown name, which indicates a programming error
	// (a typo'd table name), not a runtime condition.
	Bucket(name string) Bucket

	// Writable reports whether this transaction was opened via
	// Update (true) or View (false).
	Writable() bool
}

// Bucket is a put/get/delete/cursor view over one named table within a
// transaction.
type Bucket interface {
	Get(key []byte) []byte
	Put(key, value []byte) error
	Delete(key []byte) error
	Cursor() Cursor
}

// Cursor is an ordered iterator over one bucket, used for the
// "prefix scan, stop when the major id changes" pattern spec.md §9
// calls the canonical access shape for adjacency and label-index
// scans. A Cursor is valid only for the lifetime of its transaction.
type Cursor interface {
	// Seek positions the cursor at the first key >= k (or invalid, if
	// none), returning that key/value pair.
	Seek(k []byte) (key, value []byte)

	// First positions the cursor at the first key in the bucket.
	First() (key, value []byte)

	// Next advances the cursor and returns the new key/value pair, or
	// (nil, nil) when exhausted.
	Next() (key, value []byte)
}
