// Package dict implements vertex's string-interning subsystem: five
// symbol namespaces (labels, relationship types, property keys,
// vector tags, free text), each a bidirectional name<->u32-id map with
// a monotonic meta sequence, per spec.md §4.4. The algorithm and
// bijection invariant (I3) follow original_source/src/store.cpp's
// getOrCreate*Id/get*Name pairs; the process-local cache is the
// SHOULD-have spec.md §9 calls out ("ids are never reused, names
// never rewritten, so caching is safe").
package dict

import (
	"encoding/binary"
	"sync"

	"github.com/baudgraph/vertex/env"
	"github.com/baudgraph/vertex/internal/kerr"
	"github.com/baudgraph/vertex/internal/keyspace"
	"github.com/baudgraph/vertex/internal/kv"
)

// Namespace identifies one of the five interning tables.
type Namespace int

const (
	Labels Namespace = iota
	RelTypes
	PropKeys
	VecTags
	Texts
)

type tables struct {
	idsBucket     string
	byNameBucket  string
	seqMetaKey    string
}

func tablesFor(ns Namespace) tables {
	switch ns {
	case Labels:
		return tables{env.LabelIDs, env.LabelsByName, keyspace.MetaLabelSeq}
	case RelTypes:
		return tables{env.RelTypeIDs, env.RelTypesByName, keyspace.MetaRelTypeSeq}
	case PropKeys:
		return tables{env.PropKeyIDs, env.PropKeysByName, keyspace.MetaPropKeySeq}
	case VecTags:
		return tables{env.VecTagIDs, env.VecTagsByName, keyspace.MetaVecTagSeq}
	case Texts:
		return tables{env.TextIDs, env.TextsByName, keyspace.MetaTextSeq}
	default:
		panic("dict: unknown namespace")
	}
}

type cacheKey struct {
	ns   Namespace
	name string
}

// Dictionary is the shared interning layer over an Env. One instance
// is meant to be shared process-wide, same as the Env it wraps.
type Dictionary struct {
	env *env.Env

	mu       sync.RWMutex
	byName   map[cacheKey]uint32
	byID     map[Namespace]map[uint32]string
}

// New returns a Dictionary backed by e, with an empty process-local
// cache.
func New(e *env.Env) *Dictionary {
	return &Dictionary{
		env:    e,
		byName: make(map[cacheKey]uint32),
		byID:   make(map[Namespace]map[uint32]string),
	}
}

// GetOrCreate looks up name in namespace ns, returning its id. If
// absent and createIfMissing is false, it fails with kerr.ErrNotFound.
// If absent and createIfMissing is true, it mints the next id from the
// namespace's meta sequence and persists both directions atomically.
func (d *Dictionary) GetOrCreate(ns Namespace, name string, createIfMissing bool) (uint32, error) {
	if id, ok := d.cachedID(ns, name); ok {
		return id, nil
	}

	t := tablesFor(ns)
	var id uint32

	err := d.env.Update(func(tx kv.Tx) error {
		byName := tx.Bucket(t.byNameBucket)
		if v := byName.Get(keyspace.DictName(name)); v != nil {
			id = binary.BigEndian.Uint32(v)
			return nil
		}
		if !createIfMissing {
			return kerr.NotFoundf("dict: %q not found", name)
		}

		next, err := nextSeq(tx, t.seqMetaKey)
		if err != nil {
			return err
		}
		id = next

		ids := tx.Bucket(t.idsBucket)
		if err := ids.Put(keyspace.DictID(id), []byte(name)); err != nil {
			return err
		}
		var idBuf [4]byte
		binary.BigEndian.PutUint32(idBuf[:], id)
		return byName.Put(keyspace.DictName(name), idBuf[:])
	})
	if err != nil {
		return 0, err
	}

	d.cachePut(ns, id, name)
	return id, nil
}

// GetOrCreateVecTag is GetOrCreate specialized for the VecTags
// namespace: when dim is non-zero and the tag is newly created, it
// persists tagId -> dim into vecTagMeta inside the same write
// transaction as the dictionary entry, per spec.md §4.4.
func (d *Dictionary) GetOrCreateVecTag(name string, createIfMissing bool, dim uint32) (uint32, error) {
	if id, ok := d.cachedID(VecTags, name); ok {
		return id, nil
	}

	t := tablesFor(VecTags)
	var id uint32

	err := d.env.Update(func(tx kv.Tx) error {
		byName := tx.Bucket(t.byNameBucket)
		if v := byName.Get(keyspace.DictName(name)); v != nil {
			id = binary.BigEndian.Uint32(v)
			return nil
		}
		if !createIfMissing {
			return kerr.NotFoundf("dict: vecTag %q not found", name)
		}

		next, err := nextSeq(tx, t.seqMetaKey)
		if err != nil {
			return err
		}
		id = next

		ids := tx.Bucket(t.idsBucket)
		if err := ids.Put(keyspace.DictID(id), []byte(name)); err != nil {
			return err
		}
		var idBuf [4]byte
		binary.BigEndian.PutUint32(idBuf[:], id)
		if err := byName.Put(keyspace.DictName(name), idBuf[:]); err != nil {
			return err
		}

		if dim != 0 {
			var dimBuf [4]byte
			binary.BigEndian.PutUint32(dimBuf[:], dim)
			return tx.Bucket(env.VecTagMeta).Put(keyspace.VecTagMeta(id), dimBuf[:])
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	d.cachePut(VecTags, id, name)
	return id, nil
}

// NameOf returns the interned string for id in namespace ns, failing
// with kerr.ErrNotFound if id was never issued.
func (d *Dictionary) NameOf(ns Namespace, id uint32) (string, error) {
	d.mu.RLock()
	if m, ok := d.byID[ns]; ok {
		if name, ok := m[id]; ok {
			d.mu.RUnlock()
			return name, nil
		}
	}
	d.mu.RUnlock()

	t := tablesFor(ns)
	var name string
	err := d.env.View(func(tx kv.Tx) error {
		v := tx.Bucket(t.idsBucket).Get(keyspace.DictID(id))
		if v == nil {
			return kerr.NotFoundf("dict: id %d not found", id)
		}
		name = string(v)
		return nil
	})
	if err != nil {
		return "", err
	}

	d.cachePut(ns, id, name)
	return name, nil
}

func (d *Dictionary) cachedID(ns Namespace, name string) (uint32, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	id, ok := d.byName[cacheKey{ns, name}]
	return id, ok
}

func (d *Dictionary) cachePut(ns Namespace, id uint32, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.byName[cacheKey{ns, name}] = id
	m, ok := d.byID[ns]
	if !ok {
		m = make(map[uint32]string)
		d.byID[ns] = m
	}
	m[id] = name
}

// nextSeq increments and returns the next value of the named meta
// sequence within tx, starting from 1 (id 0 is never issued, keeping
// 0 available as a sentinel "absent" value in wire formats).
func nextSeq(tx kv.Tx, metaKey string) (uint32, error) {
	meta := tx.Bucket(env.Meta)
	key := []byte(metaKey)
	var current uint32
	if v := meta.Get(key); v != nil {
		current = binary.BigEndian.Uint32(v)
	}
	next := current + 1
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], next)
	if err := meta.Put(key, buf[:]); err != nil {
		return 0, err
	}
	return next, nil
}
