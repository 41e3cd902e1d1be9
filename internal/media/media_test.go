package media

import (
	"encoding/json"
	"testing"
)

func TestItemWireKind(t *testing.T) {
	data, err := json.Marshal(PlaylistItem(Playlist{ID: "p", Name: "Pod", Podcast: true}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Item
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Kind != KindPodcast || got.ID() != "p" {
		t.Fatalf("unexpected item %+v", got)
	}
	if err := json.Unmarshal([]byte(`{"kind":"spaceship"}`), &got); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}

func TestSongItemKinds(t *testing.T) {
	if SongItem(Song{ID: "v", Video: true}).Kind != KindVideo {
		t.Fatalf("video kind")
	}
	if !SongItem(Song{ID: "e", Episode: true}).SongLike() {
		t.Fatalf("episodes are playable")
	}
	if ArtistItem(Artist{ID: "a"}).SongLike() {
		t.Fatalf("artists are not playable")
	}
}

func TestDownloadStateNames(t *testing.T) {
	for s := DownloadNone; s <= DownloadFailed; s++ {
		if ParseDownloadState(s.String()) != s {
			t.Fatalf("%s does not parse back", s)
		}
	}
}
