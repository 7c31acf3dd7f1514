package storage

import (
	"reflect"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/deskboard.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

// ============================================================
// Snapshots
// ============================================================

type fakeSnapshot struct {
	Name  string         `json:"name"`
	Items []string       `json:"items"`
	Index map[string]int `json:"index"`
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := newTestStore(t)
	in := fakeSnapshot{
		Name:  "board",
		Items: []string{"a", "b", "c"},
		Index: map[string]int{"a": 0, "b": 1, "c": 2},
	}
	if err := s.SaveSnapshot(KeyBoard, in); err != nil {
		t.Fatal(err)
	}

	var out fakeSnapshot
	ok, err := s.LoadSnapshot(KeyBoard, &out)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected snapshot to be found")
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch:\n in: %+v\nout: %+v", in, out)
	}
}

func TestSnapshotOverwrite(t *testing.T) {
	s := newTestStore(t)
	s.SaveSnapshot(KeyBoard, fakeSnapshot{Name: "first"})
	s.SaveSnapshot(KeyBoard, fakeSnapshot{Name: "second"})

	var out fakeSnapshot
	ok, _ := s.LoadSnapshot(KeyBoard, &out)
	if !ok || out.Name != "second" {
		t.Fatalf("expected full overwrite, got %+v", out)
	}
}

func TestSnapshotKeysIndependent(t *testing.T) {
	s := newTestStore(t)
	s.SaveSnapshot(KeyBoard, fakeSnapshot{Name: "board"})
	s.SaveSnapshot(KeyRoadmap, fakeSnapshot{Name: "roadmap"})

	var b, r fakeSnapshot
	s.LoadSnapshot(KeyBoard, &b)
	s.LoadSnapshot(KeyRoadmap, &r)
	if b.Name != "board" || r.Name != "roadmap" {
		t.Fatalf("keys leaked into each other: %q, %q", b.Name, r.Name)
	}
}

func TestLoadSnapshotAbsent(t *testing.T) {
	s := newTestStore(t)
	var out fakeSnapshot
	ok, err := s.LoadSnapshot("missing", &out)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected not found")
	}
}

func TestLoadSnapshotMalformed(t *testing.T) {
	s := newTestStore(t)
	// Corrupt the stored text directly; load must treat it as absent.
	_, err := s.db.Exec(
		`INSERT INTO snapshots (key, value, updated_at) VALUES (?, ?, ?)`,
		KeyBoard, "{not json", "2026-01-01T00:00:00Z",
	)
	if err != nil {
		t.Fatal(err)
	}

	var out fakeSnapshot
	ok, err := s.LoadSnapshot(KeyBoard, &out)
	if err != nil {
		t.Fatalf("malformed snapshot must not surface an error, got %v", err)
	}
	if ok {
		t.Fatal("malformed snapshot must count as absent")
	}
}

func TestDeleteSnapshot(t *testing.T) {
	s := newTestStore(t)
	s.SaveSnapshot(KeyBoard, fakeSnapshot{Name: "x"})
	if err := s.DeleteSnapshot(KeyBoard); err != nil {
		t.Fatal(err)
	}
	var out fakeSnapshot
	ok, _ := s.LoadSnapshot(KeyBoard, &out)
	if ok {
		t.Fatal("snapshot should be gone")
	}
	// Deleting a missing key is fine.
	if err := s.DeleteSnapshot(KeyBoard); err != nil {
		t.Fatal(err)
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsDefaults(t *testing.T) {
	s := newTestStore(t)
	v, err := s.GetSetting("default_priority")
	if err != nil {
		t.Fatal(err)
	}
	if v != "medium" {
		t.Fatalf("expected medium, got %q", v)
	}
}

func TestSetAndGetSetting(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSetting("default_assignee", "JK"); err != nil {
		t.Fatal(err)
	}
	v, err := s.GetSetting("default_assignee")
	if err != nil {
		t.Fatal(err)
	}
	if v != "JK" {
		t.Fatalf("expected JK, got %q", v)
	}
}

func TestGetSettingMissing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetSetting("nope"); err == nil {
		t.Fatal("expected error for missing setting")
	}
}

func TestGetAllSettings(t *testing.T) {
	s := newTestStore(t)
	settings, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(settings) != 3 {
		t.Fatalf("expected 3 seeded settings, got %d", len(settings))
	}
}
