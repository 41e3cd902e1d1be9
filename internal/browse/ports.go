package browse

import (
	"context"

	"github.com/mikey-austin/mu_browse/internal/media"
)

// ErrNotFound is returned by Item when the entity is not in the local store.
var ErrNotFound = media.ErrNotFound

// Library is the local relational store.
type Library interface {
	// AllSongs returns library songs by date added, newest first, excluding hidden.
	AllSongs(ctx context.Context) ([]media.Song, error)
	// LikedSongs returns liked songs, most recently liked first.
	LikedSongs(ctx context.Context) ([]media.Song, error)
	// KnownSongs returns every non-hidden song the store knows about.
	KnownSongs(ctx context.Context) ([]media.Song, error)
	DeviceSongs(ctx context.Context) ([]media.Song, error)
	TopSongs(ctx context.Context, limit int) ([]media.Song, error)
	LibraryArtists(ctx context.Context) ([]media.Artist, error)
	FavoriteArtists(ctx context.Context) ([]media.Artist, error)
	LibraryAlbums(ctx context.Context) ([]media.Album, error)
	FavoriteAlbums(ctx context.Context) ([]media.Album, error)
	Playlists(ctx context.Context, kind media.PlaylistKind) ([]media.Playlist, error)
	ArtistSongs(ctx context.Context, artistID string) ([]media.Song, error)
	ArtistAlbums(ctx context.Context, artistID string) ([]media.Album, error)
	AlbumSongs(ctx context.Context, albumID string) ([]media.Song, error)
	PlaylistSongs(ctx context.Context, playlistID string) ([]media.Song, error)
	Song(ctx context.Context, id string) (media.Song, error)
}

// Catalog is the remote search/browse API.
type Catalog interface {
	Search(ctx context.Context, query string, filter media.Filter) (media.Page[media.Item], error)
	Continue(ctx context.Context, cursor string) (media.Page[media.Item], error)
	Artist(ctx context.Context, id string) (media.ArtistDetail, error)
	Album(ctx context.Context, id string) (media.AlbumDetail, error)
	Playlist(ctx context.Context, id string) (media.PlaylistDetail, error)
}

// Downloads reports download and player-cache state per song.
type Downloads interface {
	State(ctx context.Context, songID string) (media.DownloadState, error)
	Cached(ctx context.Context, songID string) (bool, error)
}

// QueueStore persists the last playback queue.
type QueueStore interface {
	SaveQueue(ctx context.Context, queue media.SavedQueue) error
	LoadQueue(ctx context.Context) (media.SavedQueue, error)
}
