package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/roxiler/storerating-client/internal/core/ports"
)

func TestSessionStorage_MissingFileIsEmpty(t *testing.T) {
	s := NewSessionStorage(filepath.Join(t.TempDir(), "session.json"))
	rec, err := s.Read(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rec.Empty() {
		t.Fatalf("expected empty record, got %+v", rec)
	}
}

func TestSessionStorage_WriteReadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	s := NewSessionStorage(path)
	ctx := context.Background()

	want := ports.SessionRecord{Token: "T", User: `{"id":1,"role":"user"}`}
	if err := s.Write(ctx, want); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm()&0o077 != 0 {
		t.Fatalf("expected session file private to the user, got %v", info.Mode().Perm())
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, got %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("second Clear should be a no-op, got %v", err)
	}
}

func TestSessionStorage_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := NewSessionStorage(path).Read(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}
