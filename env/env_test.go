package env

import "testing"

func TestOpenBootstrapsSchemaVersion(t *testing.T) {
	e, err := Open(Options{Dir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	v, err := e.SchemaVersion()
	if err != nil {
		t.Fatal(err)
	}
	if v != CurrentSchemaVersion {
		t.Errorf("SchemaVersion() = %d, want %d", v, CurrentSchemaVersion)
	}
}

func TestOpenTwiceReopensExistingEnv(t *testing.T) {
	dir := t.TempDir()

	e1, err := Open(Options{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if err := e1.Close(); err != nil {
		t.Fatal(err)
	}

	e2, err := Open(Options{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	defer e2.Close()

	v, err := e2.SchemaVersion()
	if err != nil {
		t.Fatal(err)
	}
	if v != CurrentSchemaVersion {
		t.Errorf("SchemaVersion() after reopen = %d, want %d", v, CurrentSchemaVersion)
	}
}

func TestOpenRequiresDir(t *testing.T) {
	if _, err := Open(Options{}); err == nil {
		t.Error("Open with empty Dir: want error, got nil")
	}
}

func TestTableCountMatchesBucketList(t *testing.T) {
	if TableCount() != len(allBuckets) {
		t.Errorf("TableCount() = %d, want %d", TableCount(), len(allBuckets))
	}
}
