package browse

import (
	"testing"

	"github.com/mikey-austin/mu_browse/internal/media"
)

func TestAccumulatorDeduplicatesPerScope(t *testing.T) {
	a := NewAccumulator()
	if n := a.Add("SEARCH_SONGS/x", song("1"), song("2"), song("1")); n != 2 {
		t.Fatalf("added %d, want 2", n)
	}
	if n := a.Add("SEARCH_SONGS/x", song("2"), song("3")); n != 1 {
		t.Fatalf("added %d, want 1", n)
	}
	if n := a.Add("ALBUM/y", song("1")); n != 1 {
		t.Fatalf("scopes are independent, added %d", n)
	}
	a.Add("ALBUM/y", media.Song{})

	got := a.Songs("SEARCH_SONGS/x")
	if len(got) != 3 || got[0].ID != "1" || got[2].ID != "3" {
		t.Fatalf("unexpected order %+v", got)
	}
	if s, ok := a.Lookup("3"); !ok || s.Title != "Song 3" {
		t.Fatalf("lookup failed: %+v", s)
	}
	if _, ok := a.Lookup("9"); ok {
		t.Fatalf("lookup found unseen song")
	}
	if a.Songs("missing") != nil {
		t.Fatalf("missing scope returned songs")
	}
}
