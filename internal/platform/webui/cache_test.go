package webui

import "testing"

func TestViewCacheCommitAndGet(t *testing.T) {
	cache := NewViewCache()
	gen := cache.Begin("sess-1")

	if !cache.Commit("sess-1", gen, CatalogSnapshot{Location: "India"}) {
		t.Fatal("current-generation commit rejected")
	}
	snapshot, ok := cache.Get("sess-1")
	if !ok || snapshot.Location != "India" {
		t.Fatalf("got %+v ok=%v", snapshot, ok)
	}
}

func TestViewCacheDiscardsStaleSnapshot(t *testing.T) {
	cache := NewViewCache()

	// A refresh for the old selection is still in flight when the user picks
	// a new country and that refresh completes first.
	staleGen := cache.Begin("sess-1")
	freshGen := cache.Begin("sess-1")

	if !cache.Commit("sess-1", freshGen, CatalogSnapshot{Location: "India"}) {
		t.Fatal("fresh commit rejected")
	}
	if cache.Commit("sess-1", staleGen, CatalogSnapshot{Location: "United States"}) {
		t.Fatal("stale commit accepted")
	}

	snapshot, _ := cache.Get("sess-1")
	if snapshot.Location != "India" {
		t.Fatalf("location = %q, stale snapshot overwrote the newer one", snapshot.Location)
	}
}

func TestViewCacheSessionsAreIndependent(t *testing.T) {
	cache := NewViewCache()
	genA := cache.Begin("a")
	cache.Begin("b")

	if !cache.Commit("a", genA, CatalogSnapshot{Location: "Japan"}) {
		t.Fatal("session a commit rejected by session b's invalidation")
	}
}

func TestViewCacheDrop(t *testing.T) {
	cache := NewViewCache()
	gen := cache.Begin("sess-1")
	cache.Commit("sess-1", gen, CatalogSnapshot{Location: "India"})

	cache.Drop("sess-1")
	if _, ok := cache.Get("sess-1"); ok {
		t.Fatal("snapshot survived Drop")
	}
	// The dropped generation is also superseded.
	if cache.Commit("sess-1", gen, CatalogSnapshot{Location: "India"}) {
		t.Fatal("pre-drop generation still committable")
	}
}
