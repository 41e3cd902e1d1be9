package browse

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		raw      string
		ns       Namespace
		segments []string
		kind     NamespaceKind
	}{
		{"ROOT", NamespaceRoot, nil, KindRoot},
		{"SONGS_FAVORITES/B", NamespaceSongsFavorites, []string{"B"}, KindFolder},
		{"SHUFFLE_SONGS_ALL", NamespaceShuffleSongsAll, nil, KindShuffle},
		{"SEARCH_SONGS/abc/x1", NamespaceSearchSongs, []string{"abc", "x1"}, KindSearch},
		{"ARTIST/a1/albums/al2", NamespaceArtist, []string{"a1", "albums", "al2"}, KindDetail},
		{"songs_all", NamespaceUnknown, []string{"songs_all"}, KindUnknown},
	}
	for _, tc := range cases {
		id := Parse(tc.raw)
		if id.Namespace != tc.ns {
			t.Fatalf("%s: namespace %s, want %s", tc.raw, id.Namespace, tc.ns)
		}
		if id.Namespace.Kind() != tc.kind {
			t.Fatalf("%s: kind %d, want %d", tc.raw, id.Namespace.Kind(), tc.kind)
		}
		if strings.Join(id.Segments, ",") != strings.Join(tc.segments, ",") {
			t.Fatalf("%s: segments %v, want %v", tc.raw, id.Segments, tc.segments)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	id := Parse("")
	if id.Namespace != NamespaceUnknown || len(id.Segments) != 0 {
		t.Fatalf("unexpected %+v", id)
	}
}

func TestParentAndLast(t *testing.T) {
	id := Parse("PLAYLIST/42/s9")
	if id.Last() != "s9" {
		t.Fatalf("last %q", id.Last())
	}
	parent := id.Parent()
	if parent.Raw != "PLAYLIST/42" || parent.Namespace != NamespacePlaylist {
		t.Fatalf("parent %+v", parent)
	}
	if Parse("ROOT").Parent().Raw != "" {
		t.Fatalf("root has no parent")
	}
}

func TestQueryWithSlashSplits(t *testing.T) {
	id := Parse(Join(NamespaceSearchSongs, "AC/DC"))
	if id.Query() != "AC" {
		t.Fatalf("query %q", id.Query())
	}
	if len(id.Segments) != 2 {
		t.Fatalf("segments %v", id.Segments)
	}
}

func TestShuffleTokensPairWithFolders(t *testing.T) {
	for _, folder := range Folders() {
		token, ok := ShuffleToken(folder)
		if !ok {
			t.Fatalf("%s has no shuffle token", folder)
		}
		if token.Kind() != KindShuffle || token.String() != "SHUFFLE_"+folder.String() {
			t.Fatalf("%s: bad token %s", folder, token)
		}
		back, ok := FolderOf(token)
		if !ok || back != folder {
			t.Fatalf("%s does not map back to %s", token, folder)
		}
	}
}

func TestTokensAreUnique(t *testing.T) {
	seen := map[string]Namespace{}
	for _, ns := range AllNamespaces() {
		tok := ns.String()
		if tok == "" {
			t.Fatalf("namespace %d has no token", ns)
		}
		if prev, dup := seen[tok]; dup {
			t.Fatalf("token %s shared by %d and %d", tok, prev, ns)
		}
		seen[tok] = ns
		if Parse(tok).Namespace != ns {
			t.Fatalf("token %s does not parse back", tok)
		}
	}
}

func FuzzParse(f *testing.F) {
	for _, seed := range []string{"", "ROOT", "SONGS_ALL/x", "SEARCH_SONGS/a b/c", "ARTIST//", "/"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, raw string) {
		id := Parse(raw)
		if id.Raw != raw {
			t.Fatalf("raw %q not preserved", raw)
		}
		if raw == "" {
			return
		}
		rebuilt := strings.Join(id.Segments, Separator)
		if id.Namespace != NamespaceUnknown {
			rebuilt = Join(id.Namespace, id.Segments...)
		}
		if rebuilt != raw {
			t.Fatalf("rebuilt %q from %q", rebuilt, raw)
		}
	})
}
