package identity

import (
	"errors"
	"strings"
	"testing"

	"photochat/internal/errs"
)

func openTestStore(t *testing.T, dir string) *Store {
	t.Helper()
	store, err := OpenStore(dir)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestResolveReturnsSameIdentifier(t *testing.T) {
	store := openTestStore(t, t.TempDir())
	resolver := NewResolver(store)

	first, err := resolver.Resolve()
	if err != nil {
		t.Fatalf("first Resolve: %v", err)
	}
	second, err := resolver.Resolve()
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if first != second {
		t.Fatalf("Resolve returned different identifiers: %q then %q", first, second)
	}
}

func TestResolveGeneratesExpectedFormat(t *testing.T) {
	store := openTestStore(t, t.TempDir())

	id, err := NewResolver(store).Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !strings.HasPrefix(id, "User_") {
		t.Fatalf("identifier %q missing User_ prefix", id)
	}
	if len(id) != len("User_")+8 {
		t.Fatalf("identifier %q has wrong length", id)
	}
	if !IsValid(id) {
		t.Fatalf("IsValid rejected generated identifier %q", id)
	}
}

func TestResolvePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	store := openTestStore(t, dir)
	first, err := NewResolver(store).Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := openTestStore(t, dir)
	second, err := NewResolver(reopened).Resolve()
	if err != nil {
		t.Fatalf("Resolve after reopen: %v", err)
	}
	if first != second {
		t.Fatalf("identifier changed across reopen: %q then %q", first, second)
	}
}

func TestSaveNeverOverwrites(t *testing.T) {
	store := openTestStore(t, t.TempDir())

	if err := store.Save("User_aaaaaaaa"); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := store.Save("User_bbbbbbbb"); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "User_aaaaaaaa" {
		t.Fatalf("second Save overwrote identifier: got %q", got)
	}
}

func TestResolveFailsWhenStoreUnavailable(t *testing.T) {
	store := openTestStore(t, t.TempDir())
	store.Close()

	_, err := NewResolver(store).Resolve()
	if err == nil {
		t.Fatal("Resolve succeeded on a closed store")
	}
	if !errors.Is(err, errs.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestIsValid(t *testing.T) {
	cases := []struct {
		id   string
		want bool
	}{
		{"User_abcdEF12", true},
		{"User_abcdEF12xyz", true},
		{"User_short", false},
		{"user_abcdEF12", false},
		{"abcdEF12", false},
		{"User_abcd EF12", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsValid(tc.id); got != tc.want {
			t.Errorf("IsValid(%q) = %v, want %v", tc.id, got, tc.want)
		}
	}
}
