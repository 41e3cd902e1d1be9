package media

import "errors"

// ErrNotFound is returned when an entity does not exist in a store.
var ErrNotFound = errors.New("not found")

// Filter selects the entity class of a remote search.
type Filter string

const (
	FilterSongs     Filter = "songs"
	FilterVideos    Filter = "videos"
	FilterAlbums    Filter = "albums"
	FilterArtists   Filter = "artists"
	FilterPlaylists Filter = "playlists"
	FilterFeatured  Filter = "featured_playlists"
	FilterPodcasts  Filter = "podcasts"
)

// Page is one response of a cursor-paginated remote call. An empty
// Continuation means the sequence is exhausted.
type Page[T any] struct {
	Items        []T    `json:"items"`
	Continuation string `json:"continuation,omitempty"`
}

// ArtistDetail is a remote artist page.
type ArtistDetail struct {
	Artist Artist     `json:"artist"`
	Songs  Page[Item] `json:"songs"`
	Albums []Album    `json:"albums,omitempty"`
	Videos []Song     `json:"videos,omitempty"`
}

// AlbumDetail is a remote album page.
type AlbumDetail struct {
	Album Album  `json:"album"`
	Songs []Song `json:"songs"`
}

// PlaylistDetail is a remote playlist page.
type PlaylistDetail struct {
	Playlist Playlist   `json:"playlist"`
	Songs    Page[Item] `json:"songs"`
}

// PlaylistKind selects a subset of local playlists.
type PlaylistKind int

const (
	PlaylistsAll PlaylistKind = iota
	PlaylistsFavorites
	PlaylistsCreated
	PlaylistsSaved
)

// QueueEntry is one persisted queue position.
type QueueEntry struct {
	NodeID      string
	Song        Song
	ResumePoint bool
}

// SavedQueue is the persisted playback queue.
type SavedQueue struct {
	Entries    []QueueEntry
	PositionMS int64
}
