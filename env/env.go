// Package env owns the key-value environment handle and the fixed set
// of named buckets vertex persists into, per spec.md §3/§4.3. It is
// the Go analogue of original_source's Env class (env.hpp/env.cpp),
// generalized from raw LMDB dbi handles to bbolt bucket names, and
// structurally grounded on the teacher's boltdb.New bootstrap step
// (kernel/store/kvstore/boltdb/store.go), widened from one bucket to
// the full table list below.
package env

import (
	"encoding/binary"
	"os"

	"github.com/baudgraph/vertex/internal/kerr"
	"github.com/baudgraph/vertex/internal/kv"
	"github.com/baudgraph/vertex/internal/kv/bboltkv"
	"github.com/baudgraph/vertex/internal/keyspace"
	"github.com/baudgraph/vertex/internal/vlog"
)

// Bucket names, one per entity row in spec.md §3.
const (
	Nodes           = "nodes"
	NodeColdProps   = "nodeColdProps"
	NodeVectors     = "nodeVectors"
	EdgesBySrcType  = "edgesBySrcType"
	EdgesByDstType  = "edgesByDstType"
	EdgesByID       = "edgesById"
	EdgeProps       = "edgeProps"
	LabelIDs        = "labelIds"
	LabelsByName    = "labelsByName"
	RelTypeIDs      = "relTypeIds"
	RelTypesByName  = "relTypesByName"
	PropKeyIDs      = "propKeyIds"
	PropKeysByName  = "propKeysByName"
	VecTagIDs       = "vecTagIds"
	VecTagsByName   = "vecTagsByName"
	VecTagMeta      = "vecTagMeta"
	TextIDs         = "textIds"
	TextsByName     = "textsByName"
	Meta            = "meta"
	LabelIndex      = "labelIndex"
)

// allBuckets is the fixed, ordered table list opened at bootstrap.
var allBuckets = []string{
	Nodes, NodeColdProps, NodeVectors,
	EdgesBySrcType, EdgesByDstType, EdgesByID, EdgeProps,
	LabelIDs, LabelsByName,
	RelTypeIDs, RelTypesByName,
	PropKeyIDs, PropKeysByName,
	VecTagIDs, VecTagsByName, VecTagMeta,
	TextIDs, TextsByName,
	Meta, LabelIndex,
}

// TableCount returns the number of named tables vertex opens at
// bootstrap, the minimum a --max-buckets style capacity hint must
// cover.
func TableCount() int { return len(allBuckets) }

// CurrentSchemaVersion is the schema sentinel written to a fresh
// environment and left untouched thereafter, per spec.md §6.
const CurrentSchemaVersion uint32 = 1

// Options configures Open.
type Options struct {
	// Dir is the data directory; the bbolt file is created inside it
	// as "vertex.db".
	Dir string
	// MapSize is a virtual map size budget hint; see
	// bboltkv.DefaultMapSize. Open accepts it but does not pass it to
	// the engine, so any value, zero included, has no effect.
	MapSize int64
	// ReadOnly opens the environment without write permission.
	ReadOnly bool
}

// Env owns the kv.Store handle and the bucket namespace. One Env is
// meant to be shared by every Store method the way the teacher shares
// one *bolt.DB/Env across all callers behind a single owner (spec.md
// §9's "shared Env/Store reference becomes a single owner behind a
// shared handle").
type Env struct {
	store kv.Store
}

// Open opens (or creates) the environment directory and bootstraps
// every named bucket plus the schemaVersion sentinel in one write
// transaction.
func Open(opts Options) (*Env, error) {
	if opts.Dir == "" {
		return nil, kerr.InvalidArgumentf("env: Dir is required")
	}
	path := opts.Dir + "/vertex.db"

	if !opts.ReadOnly {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, kerr.EngineErrorf(err, "env: create %s", opts.Dir)
		}
	}

	store, err := bboltkv.Open(bboltkv.Config{
		Path:     path,
		Buckets:  allBuckets,
		ReadOnly: opts.ReadOnly,
	})
	if err != nil {
		return nil, err
	}

	e := &Env{store: store}

	if !opts.ReadOnly {
		if err := e.ensureSchemaVersion(); err != nil {
			_ = store.Close()
			return nil, err
		}
	}

	vlog.Debugf("env: opened %s (readOnly=%v)", path, opts.ReadOnly)
	return e, nil
}

// ensureSchemaVersion writes CurrentSchemaVersion to meta[schemaVersion]
// if absent, and otherwise leaves it untouched — matching
// original_source's ensure_schema_version, which does not compare
// against the compiled-in constant, only fills it in once.
func (e *Env) ensureSchemaVersion() error {
	return e.store.Update(func(tx kv.Tx) error {
		meta := tx.Bucket(Meta)
		if meta.Get([]byte(keyspace.MetaSchemaVersion)) != nil {
			return nil
		}
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], CurrentSchemaVersion)
		return meta.Put([]byte(keyspace.MetaSchemaVersion), buf[:])
	})
}

// SchemaVersion reads the persisted schema sentinel.
func (e *Env) SchemaVersion() (uint32, error) {
	var version uint32
	err := e.store.View(func(tx kv.Tx) error {
		v := tx.Bucket(Meta).Get([]byte(keyspace.MetaSchemaVersion))
		if v == nil {
			return kerr.NotFoundf("env: schemaVersion not set")
		}
		version = binary.BigEndian.Uint32(v)
		return nil
	})
	return version, err
}

// Update runs fn inside one write transaction.
func (e *Env) Update(fn func(kv.Tx) error) error { return e.store.Update(fn) }

// View runs fn inside one read transaction.
func (e *Env) View(fn func(kv.Tx) error) error { return e.store.View(fn) }

// Close closes the underlying engine handle.
func (e *Env) Close() error {
	vlog.Debugf("env: closing")
	return e.store.Close()
}
