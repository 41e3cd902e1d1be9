package sqlstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mikey-austin/mu_browse/internal/media"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func songIDs(songs []media.Song) []string {
	out := make([]string, 0, len(songs))
	for _, s := range songs {
		out = append(out, s.ID)
	}
	return out
}

func seed(t *testing.T, store *Store) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.PutArtist(ctx, media.Artist{ID: "ar1", Name: "Beta"}, true))
	require.NoError(t, store.PutArtist(ctx, media.Artist{ID: "ar2", Name: "alpha"}, true))
	require.NoError(t, store.PutAlbum(ctx, media.Album{ID: "al1", Title: "First", ArtistID: "ar1", Year: 2001}, true))
	require.NoError(t, store.PutAlbum(ctx, media.Album{ID: "al2", Title: "Second", ArtistID: "ar1", Year: 2005}, false))

	songs := []struct {
		song  media.Song
		flags SongFlags
	}{
		{media.Song{ID: "s1", Title: "One", ArtistID: "ar1", AlbumID: "al1", TrackNumber: 2}, SongFlags{InLibrary: true, AddedAt: base}},
		{media.Song{ID: "s2", Title: "Two", ArtistID: "ar1", AlbumID: "al1", TrackNumber: 1}, SongFlags{InLibrary: true, OnDevice: true, AddedAt: base.Add(time.Hour)}},
		{media.Song{ID: "s3", Title: "Three", ArtistID: "ar2"}, SongFlags{InLibrary: true, Hidden: true, AddedAt: base.Add(2 * time.Hour)}},
		{media.Song{ID: "s4", Title: "Four", Video: true}, SongFlags{AddedAt: base.Add(3 * time.Hour)}},
	}
	for _, s := range songs {
		require.NoError(t, store.PutSong(ctx, s.song, s.flags))
	}
}

func TestSongFolders(t *testing.T) {
	store := setupTestStore(t)
	seed(t, store)
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	all, err := store.AllSongs(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"s2", "s1"}, songIDs(all))

	known, err := store.KnownSongs(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"s4", "s2", "s1"}, songIDs(known))
	require.True(t, known[0].Video)

	device, err := store.DeviceSongs(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"s2"}, songIDs(device))

	require.NoError(t, store.SetLiked(ctx, "s1", true, base))
	require.NoError(t, store.SetLiked(ctx, "s4", true, base.Add(time.Minute)))
	liked, err := store.LikedSongs(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"s4", "s1"}, songIDs(liked))

	require.NoError(t, store.AddPlayTime(ctx, "s1", time.Minute))
	require.NoError(t, store.AddPlayTime(ctx, "s2", 3*time.Minute))
	require.NoError(t, store.AddPlayTime(ctx, "s4", time.Second))
	top, err := store.TopSongs(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"s2", "s1"}, songIDs(top))

	require.ErrorIs(t, store.SetLiked(ctx, "missing", true, base), ErrNotFound)
}

func TestPutSongKeepsLikes(t *testing.T) {
	store := setupTestStore(t)
	seed(t, store)
	ctx := context.Background()

	require.NoError(t, store.SetLiked(ctx, "s1", true, time.Now()))
	require.NoError(t, store.PutSong(ctx, media.Song{ID: "s1", Title: "One (remaster)"}, SongFlags{InLibrary: true}))

	liked, err := store.LikedSongs(ctx)
	require.NoError(t, err)
	require.Len(t, liked, 1)
	require.Equal(t, "One (remaster)", liked[0].Title)
}

func TestArtistsAndAlbums(t *testing.T) {
	store := setupTestStore(t)
	seed(t, store)
	ctx := context.Background()

	artists, err := store.LibraryArtists(ctx)
	require.NoError(t, err)
	require.Len(t, artists, 2)
	require.Equal(t, "alpha", artists[0].Name)
	require.Equal(t, 0, artists[0].SongCount, "hidden songs are not counted")
	require.Equal(t, 2, artists[1].SongCount)

	songs, err := store.ArtistSongs(ctx, "ar1")
	require.NoError(t, err)
	require.Equal(t, []string{"s2", "s1"}, songIDs(songs))

	albums, err := store.ArtistAlbums(ctx, "ar1")
	require.NoError(t, err)
	require.Equal(t, "al2", albums[0].ID)

	library, err := store.LibraryAlbums(ctx)
	require.NoError(t, err)
	require.Len(t, library, 1)
	require.Equal(t, 2, library[0].SongCount)

	albumSongs, err := store.AlbumSongs(ctx, "al1")
	require.NoError(t, err)
	require.Equal(t, []string{"s2", "s1"}, songIDs(albumSongs))

	require.NoError(t, store.BookmarkArtist(ctx, "ar2", true, time.Now()))
	fav, err := store.FavoriteArtists(ctx)
	require.NoError(t, err)
	require.Len(t, fav, 1)
	require.Equal(t, "ar2", fav[0].ID)

	require.NoError(t, store.BookmarkAlbum(ctx, "al2", true, time.Now()))
	favAlbums, err := store.FavoriteAlbums(ctx)
	require.NoError(t, err)
	require.Len(t, favAlbums, 1)
}

func TestPlaylists(t *testing.T) {
	store := setupTestStore(t)
	seed(t, store)
	ctx := context.Background()

	require.NoError(t, store.PutPlaylist(ctx, media.Playlist{ID: "p1", Name: "Mine"}, true, []string{"s2", "s3", "s1"}))
	require.NoError(t, store.PutPlaylist(ctx, media.Playlist{ID: "p2", Name: "Theirs", RemoteID: "r2"}, false, []string{"s4"}))
	require.NoError(t, store.BookmarkPlaylist(ctx, "p2", true, time.Now()))

	all, err := store.Playlists(ctx, media.PlaylistsAll)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, 3, all[0].SongCount)

	created, err := store.Playlists(ctx, media.PlaylistsCreated)
	require.NoError(t, err)
	require.Len(t, created, 1)
	require.Equal(t, "p1", created[0].ID)

	saved, err := store.Playlists(ctx, media.PlaylistsSaved)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	require.Equal(t, "r2", saved[0].RemoteID)

	fav, err := store.Playlists(ctx, media.PlaylistsFavorites)
	require.NoError(t, err)
	require.Len(t, fav, 1)

	songs, err := store.PlaylistSongs(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, []string{"s2", "s1"}, songIDs(songs))
}

func TestSong(t *testing.T) {
	store := setupTestStore(t)
	seed(t, store)
	ctx := context.Background()

	s, err := store.Song(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, "One", s.Title)

	_, err = store.Song(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestQueueRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.LoadQueue(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	queue := media.SavedQueue{
		PositionMS: 4200,
		Entries: []media.QueueEntry{
			{NodeID: "SONGS_ALL/a", Song: media.Song{ID: "a", Title: "A"}},
			{NodeID: "SONGS_ALL/b", Song: media.Song{ID: "b", Title: "B", DurationMS: 1000}, ResumePoint: true},
		},
	}
	require.NoError(t, store.SaveQueue(ctx, queue))
	got, err := store.LoadQueue(ctx)
	require.NoError(t, err)
	require.Equal(t, queue, got)

	require.NoError(t, store.SaveQueue(ctx, media.SavedQueue{Entries: queue.Entries[:1]}))
	got, err = store.LoadQueue(ctx)
	require.NoError(t, err)
	require.Len(t, got.Entries, 1)
	require.Zero(t, got.PositionMS)
}

func TestOpenMemory(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.Ping(context.Background()))
	require.NoError(t, store.PutArtist(context.Background(), media.Artist{ID: "a", Name: "A"}, true))
	artists, err := store.LibraryArtists(context.Background())
	require.NoError(t, err)
	require.Len(t, artists, 1)
}
