package catalog

import (
	"fmt"
	"sync"
	"testing"
)

func TestUpsertNewEntry(t *testing.T) {
	c := New()

	entry := c.Upsert("intro", "/media/intro.mp4")

	if entry.ID != "intro" {
		t.Errorf("expected id intro, got %q", entry.ID)
	}
	if entry.SourcePath != "/media/intro.mp4" {
		t.Errorf("expected source path to be set, got %q", entry.SourcePath)
	}
	if entry.RepeatCount != InfiniteRepeat {
		t.Errorf("expected new entry to default to InfiniteRepeat, got %d", entry.RepeatCount)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", c.Len())
	}
}

func TestUpsertPreservesRepeatCount(t *testing.T) {
	c := New()
	c.Upsert("intro", "/media/intro.mp4")

	if !c.SetRepeatCount("intro", 3) {
		t.Fatal("SetRepeatCount failed for cataloged id")
	}

	entry := c.Upsert("intro", "/media/renamed/intro.mp4")

	if entry.RepeatCount != 3 {
		t.Errorf("expected repeat count preserved across upsert, got %d", entry.RepeatCount)
	}
	if entry.SourcePath != "/media/renamed/intro.mp4" {
		t.Errorf("expected source path refreshed, got %q", entry.SourcePath)
	}
	if c.Len() != 1 {
		t.Errorf("expected upsert to refresh, not duplicate; got %d entries", c.Len())
	}
}

func TestSetRepeatCountUnknownId(t *testing.T) {
	c := New()

	if c.SetRepeatCount("ghost", 2) {
		t.Error("expected SetRepeatCount to fail for unknown id")
	}
}

func TestRemoveDiscardsRepeatCount(t *testing.T) {
	c := New()
	c.Upsert("intro", "/media/intro.mp4")
	c.SetRepeatCount("intro", 5)

	c.Remove("intro")

	if _, exists := c.Get("intro"); exists {
		t.Fatal("expected entry to be evicted")
	}

	// A re-added file starts over at the default.
	entry := c.Upsert("intro", "/media/intro.mp4")
	if entry.RepeatCount != InfiniteRepeat {
		t.Errorf("expected repeat count to reset after eviction, got %d", entry.RepeatCount)
	}
}

func TestRemoveAbsentId(t *testing.T) {
	c := New()
	c.Remove("nothing") // must not panic
	if c.Len() != 0 {
		t.Errorf("expected empty catalog, got %d entries", c.Len())
	}
}

func TestGetAbsent(t *testing.T) {
	c := New()

	entry, exists := c.Get("ghost")
	if exists {
		t.Error("expected absent id to report not found")
	}
	if entry != (Entry{}) {
		t.Errorf("expected zero entry for absent id, got %+v", entry)
	}
}

func TestAllSortedSnapshot(t *testing.T) {
	c := New()
	c.Upsert("bravo", "/media/b.mp4")
	c.Upsert("alpha", "/media/a.mp4")
	c.Upsert("charlie", "/media/c.mp4")

	all := c.All()

	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	for i, expected := range []string{"alpha", "bravo", "charlie"} {
		if all[i].ID != expected {
			t.Errorf("expected entry %d to be %s, got %s", i, expected, all[i].ID)
		}
	}

	// Mutating the snapshot must not leak into the catalog.
	all[0].SourcePath = "/tampered"
	entry, _ := c.Get("alpha")
	if entry.SourcePath != "/media/a.mp4" {
		t.Errorf("snapshot mutation leaked into catalog: %q", entry.SourcePath)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("stream-%d", n)
			for j := 0; j < 100; j++ {
				c.Upsert(id, "/media/file.mp4")
				c.SetRepeatCount(id, j)
				c.Get(id)
				c.All()
			}
		}(i)
	}
	wg.Wait()

	if c.Len() != 10 {
		t.Errorf("expected 10 entries after concurrent upserts, got %d", c.Len())
	}
}
