package browse

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/mikey-austin/mu_browse/internal/media"
)

type fakeLibrary struct {
	mu sync.Mutex

	all, liked, known, device, top []media.Song
	artists, favArtists           []media.Artist
	albums, favAlbums             []media.Album
	playlists                     map[media.PlaylistKind][]media.Playlist
	artistSongs                   map[string][]media.Song
	artistAlbums                  map[string][]media.Album
	albumSongs                    map[string][]media.Song
	playlistSongs                 map[string][]media.Song

	err   error
	calls atomic.Int64
}

func (f *fakeLibrary) songs(list []media.Song) ([]media.Song, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]media.Song(nil), list...), nil
}

func (f *fakeLibrary) setAll(songs []media.Song) {
	f.mu.Lock()
	f.all = songs
	f.mu.Unlock()
}

func (f *fakeLibrary) AllSongs(context.Context) ([]media.Song, error)    { return f.songs(f.all) }
func (f *fakeLibrary) LikedSongs(context.Context) ([]media.Song, error)  { return f.songs(f.liked) }
func (f *fakeLibrary) KnownSongs(context.Context) ([]media.Song, error)  { return f.songs(f.known) }
func (f *fakeLibrary) DeviceSongs(context.Context) ([]media.Song, error) { return f.songs(f.device) }

func (f *fakeLibrary) TopSongs(_ context.Context, limit int) ([]media.Song, error) {
	songs, err := f.songs(f.top)
	if len(songs) > limit {
		songs = songs[:limit]
	}
	return songs, err
}

func (f *fakeLibrary) LibraryArtists(context.Context) ([]media.Artist, error) {
	f.calls.Add(1)
	return f.artists, f.err
}

func (f *fakeLibrary) FavoriteArtists(context.Context) ([]media.Artist, error) {
	f.calls.Add(1)
	return f.favArtists, f.err
}

func (f *fakeLibrary) LibraryAlbums(context.Context) ([]media.Album, error) {
	f.calls.Add(1)
	return f.albums, f.err
}

func (f *fakeLibrary) FavoriteAlbums(context.Context) ([]media.Album, error) {
	f.calls.Add(1)
	return f.favAlbums, f.err
}

func (f *fakeLibrary) Playlists(_ context.Context, kind media.PlaylistKind) ([]media.Playlist, error) {
	f.calls.Add(1)
	return f.playlists[kind], f.err
}

func (f *fakeLibrary) ArtistSongs(_ context.Context, id string) ([]media.Song, error) {
	return f.songs(f.artistSongs[id])
}

func (f *fakeLibrary) ArtistAlbums(_ context.Context, id string) ([]media.Album, error) {
	f.calls.Add(1)
	return f.artistAlbums[id], f.err
}

func (f *fakeLibrary) AlbumSongs(_ context.Context, id string) ([]media.Song, error) {
	return f.songs(f.albumSongs[id])
}

func (f *fakeLibrary) PlaylistSongs(_ context.Context, id string) ([]media.Song, error) {
	return f.songs(f.playlistSongs[id])
}

func (f *fakeLibrary) Song(_ context.Context, id string) (media.Song, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, list := range [][]media.Song{f.all, f.liked, f.known, f.device, f.top} {
		for _, s := range list {
			if s.ID == id {
				return s, nil
			}
		}
	}
	return media.Song{}, media.ErrNotFound
}

type fakeCatalog struct {
	search    map[string]media.Page[media.Item]
	pages     map[string]media.Page[media.Item]
	artists   map[string]media.ArtistDetail
	albums    map[string]media.AlbumDetail
	playlists map[string]media.PlaylistDetail

	searchCalls   atomic.Int64
	continueCalls atomic.Int64
}

func (c *fakeCatalog) Search(_ context.Context, query string, filter media.Filter) (media.Page[media.Item], error) {
	c.searchCalls.Add(1)
	page, ok := c.search[string(filter)+":"+query]
	if !ok {
		return media.Page[media.Item]{}, nil
	}
	return page, nil
}

func (c *fakeCatalog) Continue(_ context.Context, cursor string) (media.Page[media.Item], error) {
	c.continueCalls.Add(1)
	page, ok := c.pages[cursor]
	if !ok {
		return media.Page[media.Item]{}, fmt.Errorf("unknown cursor %q", cursor)
	}
	return page, nil
}

func (c *fakeCatalog) Artist(_ context.Context, id string) (media.ArtistDetail, error) {
	d, ok := c.artists[id]
	if !ok {
		return media.ArtistDetail{}, media.ErrNotFound
	}
	return d, nil
}

func (c *fakeCatalog) Album(_ context.Context, id string) (media.AlbumDetail, error) {
	d, ok := c.albums[id]
	if !ok {
		return media.AlbumDetail{}, media.ErrNotFound
	}
	return d, nil
}

func (c *fakeCatalog) Playlist(_ context.Context, id string) (media.PlaylistDetail, error) {
	d, ok := c.playlists[id]
	if !ok {
		return media.PlaylistDetail{}, media.ErrNotFound
	}
	return d, nil
}

type fakeDownloads struct {
	states map[string]media.DownloadState
	cached map[string]bool
}

func (d fakeDownloads) State(_ context.Context, id string) (media.DownloadState, error) {
	return d.states[id], nil
}

func (d fakeDownloads) Cached(_ context.Context, id string) (bool, error) {
	return d.cached[id], nil
}

type memoryQueue struct {
	mu    sync.Mutex
	saved *media.SavedQueue
}

func (q *memoryQueue) SaveQueue(_ context.Context, saved media.SavedQueue) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.saved = &saved
	return nil
}

func (q *memoryQueue) LoadQueue(context.Context) (media.SavedQueue, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.saved == nil {
		return media.SavedQueue{}, media.ErrNotFound
	}
	return *q.saved, nil
}

func song(id string) media.Song {
	return media.Song{ID: id, Title: "Song " + id, ArtistName: "Artist", DurationMS: 185000}
}

func songsN(prefix string, n int) []media.Song {
	out := make([]media.Song, 0, n)
	for i := range n {
		out = append(out, song(fmt.Sprintf("%s%d", prefix, i)))
	}
	return out
}

func songPage(songs []media.Song, cursor string) media.Page[media.Item] {
	items := make([]media.Item, 0, len(songs))
	for _, s := range songs {
		items = append(items, media.SongItem(s))
	}
	return media.Page[media.Item]{Items: items, Continuation: cursor}
}

func ids(nodes []Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}
