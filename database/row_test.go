package database

import "testing"

func TestRowAccess(t *testing.T) {
	row := newRow([]string{"id", "name", "age"})
	row.values[0] = int64(1)
	row.values[1] = "alice"
	row.values[2] = int64(30)

	if got := row.Value(1); got != "alice" {
		t.Errorf("Value(1) = %v, want alice", got)
	}
	if got := row.Value(-1); got != nil {
		t.Errorf("Value(-1) = %v, want nil", got)
	}
	if got := row.Value(3); got != nil {
		t.Errorf("Value(3) = %v, want nil", got)
	}

	v, ok := row.Named("age")
	if !ok || v != int64(30) {
		t.Errorf("Named(age) = %v, %v; want 30, true", v, ok)
	}
	if _, ok := row.Named("missing"); ok {
		t.Error("Named(missing) reported a value for an unknown column")
	}

	cols := row.Columns()
	if len(cols) != 3 || cols[0] != "id" || cols[2] != "age" {
		t.Errorf("Columns() = %v", cols)
	}
}

func TestRowSnapshotSurvivesRescan(t *testing.T) {
	row := newRow([]string{"name"})
	row.values[0] = "alice"

	snap := row.Snapshot()
	row.values[0] = "bob"

	if snap["name"] != "alice" {
		t.Errorf("snapshot mutated by rescan: got %v", snap["name"])
	}
	if v, _ := row.Named("name"); v != "bob" {
		t.Errorf("Named(name) = %v, want bob", v)
	}
}
