package dict

import (
	"encoding/binary"
	"testing"

	"github.com/baudgraph/vertex/env"
	"github.com/baudgraph/vertex/internal/kerr"
	"github.com/baudgraph/vertex/internal/keyspace"
	"github.com/baudgraph/vertex/internal/kv"
)

func openEnv(t *testing.T) *env.Env {
	e, err := env.Open(env.Options{Dir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func TestGetOrCreateThenNameOf(t *testing.T) {
	d := New(openEnv(t))

	id, err := d.GetOrCreate(Labels, "Person", true)
	if err != nil {
		t.Fatal(err)
	}
	if id == 0 {
		t.Errorf("GetOrCreate: id 0 is reserved as the absent sentinel")
	}

	name, err := d.NameOf(Labels, id)
	if err != nil {
		t.Fatal(err)
	}
	if name != "Person" {
		t.Errorf("NameOf(%d) = %q, want %q", id, name, "Person")
	}
}

func TestGetOrCreateIdempotent(t *testing.T) {
	d := New(openEnv(t))

	first, err := d.GetOrCreate(PropKeys, "age", true)
	if err != nil {
		t.Fatal(err)
	}
	second, err := d.GetOrCreate(PropKeys, "age", false)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("GetOrCreate not idempotent: %d != %d", first, second)
	}
}

func TestGetOrCreateNotFoundWhenCreateDisallowed(t *testing.T) {
	d := New(openEnv(t))
	if _, err := d.GetOrCreate(RelTypes, "missing", false); !kerr.IsNotFound(err) {
		t.Errorf("want NotFound, got %v", err)
	}
}

func TestNamespacesAreIndependent(t *testing.T) {
	d := New(openEnv(t))

	labelID, err := d.GetOrCreate(Labels, "shared-name", true)
	if err != nil {
		t.Fatal(err)
	}
	relID, err := d.GetOrCreate(RelTypes, "shared-name", true)
	if err != nil {
		t.Fatal(err)
	}
	if labelID != relID {
		t.Errorf("both namespaces start their sequence at 1, expected %d == %d", labelID, relID)
	}

	if _, err := d.NameOf(PropKeys, labelID); !kerr.IsNotFound(err) {
		t.Errorf("label id should not resolve in the propKeys namespace, got %v", err)
	}
}

func TestGetOrCreateVecTagPersistsDim(t *testing.T) {
	e := openEnv(t)
	d := New(e)

	id, err := d.GetOrCreateVecTag("embedding", true, 8)
	if err != nil {
		t.Fatal(err)
	}

	// A second Dictionary over the same Env must see the persisted dim,
	// not just the first instance's in-memory cache.
	d2 := New(e)
	id2, err := d2.GetOrCreateVecTag("embedding", false, 0)
	if err != nil {
		t.Fatal(err)
	}
	if id != id2 {
		t.Errorf("GetOrCreateVecTag: want same id %d, got %d", id, id2)
	}

	var dim uint32
	if err := e.View(func(tx kv.Tx) error {
		raw := tx.Bucket(env.VecTagMeta).Get(keyspace.VecTagMeta(id2))
		if raw == nil {
			return kerr.NotFoundf("vecTagMeta %d not found", id2)
		}
		dim = binary.BigEndian.Uint32(raw)
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if dim != 8 {
		t.Errorf("persisted vecTagMeta dim = %d, want 8", dim)
	}
}
