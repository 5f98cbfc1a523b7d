package store

import (
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	st, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	if err := st.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("failed to get default path: %v", err)
	}
	if !filepath.IsAbs(path) {
		t.Errorf("expected absolute path, got %q", path)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	st := setupTestStore(t)

	rec := SessionRecord{
		UserJSON: []byte(`{"id":"u1","first_name":"Ada"}`),
		Token:    "tok",
		Role:     "Admin",
		Expiry:   1700000000000,
	}
	if err := st.SaveSession(rec); err != nil {
		t.Fatalf("failed to save session: %v", err)
	}

	got, err := st.LoadSession()
	if err != nil {
		t.Fatalf("failed to load session: %v", err)
	}
	if got == nil {
		t.Fatal("expected stored session")
	}
	if got.Token != rec.Token || got.Role != rec.Role || got.Expiry != rec.Expiry {
		t.Errorf("loaded session = %+v, want %+v", got, rec)
	}
	if string(got.UserJSON) != string(rec.UserJSON) {
		t.Errorf("user json = %s, want %s", got.UserJSON, rec.UserJSON)
	}
}

func TestSaveSession_Replaces(t *testing.T) {
	st := setupTestStore(t)

	if err := st.SaveSession(SessionRecord{UserJSON: []byte(`{}`), Token: "old", Role: "User", Expiry: 1}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := st.SaveSession(SessionRecord{UserJSON: []byte(`{}`), Token: "new", Role: "User", Expiry: 2}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := st.LoadSession()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Token != "new" || got.Expiry != 2 {
		t.Errorf("session = %+v, want the replacement row", got)
	}
}

func TestLoadSession_Empty(t *testing.T) {
	st := setupTestStore(t)

	got, err := st.LoadSession()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil session, got %+v", got)
	}
}

func TestClearSession(t *testing.T) {
	st := setupTestStore(t)

	if err := st.SaveSession(SessionRecord{UserJSON: []byte(`{}`), Token: "t", Role: "User", Expiry: 1}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := st.ClearSession(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	got, err := st.LoadSession()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Error("expected session to be cleared")
	}
}

func TestBoardCacheRoundTrip(t *testing.T) {
	st := setupTestStore(t)

	if err := st.SaveBoard([]byte(`[{"id":"s1"}]`), []byte(`[{"id":"t1"}]`)); err != nil {
		t.Fatalf("save board: %v", err)
	}

	snap, err := st.LoadBoard()
	if err != nil {
		t.Fatalf("load board: %v", err)
	}
	if snap == nil {
		t.Fatal("expected board snapshot")
	}
	if string(snap.StatusesJSON) != `[{"id":"s1"}]` {
		t.Errorf("statuses = %s", snap.StatusesJSON)
	}
	if snap.FetchedAt.IsZero() {
		t.Error("fetched_at should be set")
	}

	// A second save replaces the first.
	if err := st.SaveBoard([]byte(`[]`), []byte(`[]`)); err != nil {
		t.Fatalf("second save: %v", err)
	}
	snap, err = st.LoadBoard()
	if err != nil {
		t.Fatalf("reload board: %v", err)
	}
	if string(snap.TasksJSON) != `[]` {
		t.Errorf("tasks = %s, want replacement", snap.TasksJSON)
	}
}
