package staleness

import "testing"

func TestCommitCurrentGeneration(t *testing.T) {
	guard := NewGuard()
	gen := guard.Generation("sess-1")

	applied := false
	if ok := guard.Commit("sess-1", gen, func() { applied = true }); !ok || !applied {
		t.Fatalf("expected commit at current generation, ok=%v applied=%v", ok, applied)
	}
}

func TestStaleCommitDiscarded(t *testing.T) {
	guard := NewGuard()
	stale := guard.Generation("sess-1")
	guard.Invalidate("sess-1")

	applied := false
	if ok := guard.Commit("sess-1", stale, func() { applied = true }); ok || applied {
		t.Fatalf("stale commit must be discarded, ok=%v applied=%v", ok, applied)
	}
}

func TestOutOfOrderResolution(t *testing.T) {
	guard := NewGuard()

	// Fetch A starts against the current snapshot, then the location changes
	// and fetch B starts against the new snapshot.
	genA := guard.Generation("sess-1")
	genB := guard.Invalidate("sess-1")

	displayed := ""
	if ok := guard.Commit("sess-1", genB, func() { displayed = "IN" }); !ok {
		t.Fatal("fresh fetch must commit")
	}
	// Fetch A resolves late: it must not clobber B's result.
	guard.Commit("sess-1", genA, func() { displayed = "US" })

	if displayed != "IN" {
		t.Fatalf("expected IN to remain displayed, got %q", displayed)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	guard := NewGuard()
	genOther := guard.Generation("sess-2")
	guard.Invalidate("sess-1")

	if ok := guard.Commit("sess-2", genOther, nil); !ok {
		t.Fatal("invalidating one key must not retire another")
	}
}
