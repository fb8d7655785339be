package bboltkv

import (
	"path/filepath"
	"testing"

	"github.com/baudgraph/vertex/internal/kerr"
	"github.com/baudgraph/vertex/internal/kv"
)

func open(t *testing.T) *Store {
	s, err := Open(Config{Path: filepath.Join(t.TempDir(), "test.db"), Buckets: []string{"a", "b"}})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutGetDelete(t *testing.T) {
	s := open(t)

	err := s.Update(func(tx kv.Tx) error {
		return tx.Bucket("a").Put([]byte("k"), []byte("v"))
	})
	if err != nil {
		t.Fatal(err)
	}

	var got []byte
	err = s.View(func(tx kv.Tx) error {
		got = tx.Bucket("a").Get([]byte("k"))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "v" {
		t.Errorf("Get after Put = %q, want %q", got, "v")
	}

	err = s.Update(func(tx kv.Tx) error {
		return tx.Bucket("a").Delete([]byte("k"))
	})
	if err != nil {
		t.Fatal(err)
	}

	err = s.View(func(tx kv.Tx) error {
		got = tx.Bucket("a").Get([]byte("k"))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("Get after Delete = %q, want nil", got)
	}
}

func TestUnknownBucketPanics(t *testing.T) {
	s := open(t)
	defer func() {
		if recover() == nil {
			t.Error("Bucket(unknown name) should panic")
		}
	}()
	_ = s.View(func(tx kv.Tx) error {
		tx.Bucket("nope")
		return nil
	})
}

func TestApplicationErrorPassesThroughUnwrapped(t *testing.T) {
	s := open(t)
	err := s.Update(func(tx kv.Tx) error {
		return kerr.NotFoundf("missing")
	})
	if !kerr.IsNotFound(err) {
		t.Errorf("want NotFound to pass through, got %v", err)
	}
}
