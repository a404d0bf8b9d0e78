package storage

import (
	"context"
	"errors"
	"testing"
)

type testDoc struct {
	Value string `json:"value"`
}

func TestMemoryStore_RevisionSemantics(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		out := new(testDoc)
		if _, err := store.Get(ctx, "missing", out); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("unconditional put creates", func(t *testing.T) {
		if err := store.Put(ctx, "doc", testDoc{Value: "a"}, AnyRevision); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := new(testDoc)
		rev, err := store.Get(ctx, "doc", out)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Value != "a" {
			t.Errorf("expected a, got %s", out.Value)
		}
		if rev != 1 {
			t.Errorf("expected revision 1, got %d", rev)
		}
	})

	t.Run("conditional put with matching revision", func(t *testing.T) {
		if err := store.Put(ctx, "doc", testDoc{Value: "b"}, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := new(testDoc)
		rev, err := store.Get(ctx, "doc", out)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Value != "b" || rev != 2 {
			t.Errorf("expected b at revision 2, got %s at %d", out.Value, rev)
		}
	})

	t.Run("conditional put with stale revision", func(t *testing.T) {
		if err := store.Put(ctx, "doc", testDoc{Value: "c"}, 1); !errors.Is(err, ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}

		out := new(testDoc)
		if _, err := store.Get(ctx, "doc", out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Value != "b" {
			t.Errorf("stale put overwrote document: %s", out.Value)
		}
	})

	t.Run("conditional put on missing key", func(t *testing.T) {
		if err := store.Put(ctx, "other", testDoc{Value: "x"}, 1); !errors.Is(err, ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := store.Put(ctx, "doc", testDoc{Value: "a"}, AnyRevision); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Delete(ctx, "doc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := new(testDoc)
	if _, err := store.Get(ctx, "doc", out); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryStore_ListByPrefix(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for _, key := range []string{"estates_b", "estates_a", "roles_a"} {
		if err := store.Put(ctx, key, testDoc{}, AnyRevision); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	keys, err := store.List(ctx, "estates_")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(keys))
	}
	if keys[0] != "estates_a" || keys[1] != "estates_b" {
		t.Errorf("expected sorted keys, got %v", keys)
	}
}

func TestSanitizeKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"estate_123", "estate_123"},
		{"estate/../123", "estate..123"},
		{"id with spaces", "idwithspaces"},
		{"tx_a1-b2.c3", "tx_a1-b2.c3"},
		{"nøkkel", "nkkel"},
	}

	for _, tc := range cases {
		if got := SanitizeKey(tc.in); got != tc.want {
			t.Errorf("SanitizeKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
