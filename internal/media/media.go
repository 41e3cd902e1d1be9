package media

import "fmt"

// Kind tags the entity types a catalog can return.
type Kind int

const (
	KindSong Kind = iota
	KindVideo
	KindEpisode
	KindArtist
	KindAlbum
	KindPlaylist
	KindPodcast
)

func (k Kind) String() string {
	switch k {
	case KindSong:
		return "song"
	case KindVideo:
		return "video"
	case KindEpisode:
		return "episode"
	case KindArtist:
		return "artist"
	case KindAlbum:
		return "album"
	case KindPlaylist:
		return "playlist"
	case KindPodcast:
		return "podcast"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	for c := KindSong; c <= KindPodcast; c++ {
		if c.String() == string(text) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown kind %q", text)
}

// Song is a playable entity: a music track, a music video or a podcast episode.
type Song struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ArtistID     string `json:"artistId,omitempty"`
	ArtistName   string `json:"artistName,omitempty"`
	AlbumID      string `json:"albumId,omitempty"`
	AlbumTitle   string `json:"albumTitle,omitempty"`
	TrackNumber  int    `json:"trackNumber,omitempty"`
	DurationMS   int64  `json:"durationMs,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	StreamURL    string `json:"streamUrl,omitempty"`
	Video        bool   `json:"video,omitempty"`
	Episode      bool   `json:"episode,omitempty"`
}

// Artist is a browsable performer.
type Artist struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	SongCount    int    `json:"songCount,omitempty"`
}

// Album is a browsable release.
type Album struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ArtistID     string `json:"artistId,omitempty"`
	ArtistName   string `json:"artistName,omitempty"`
	Year         int    `json:"year,omitempty"`
	SongCount    int    `json:"songCount,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// Playlist is a browsable ordered song collection. Podcasts are modelled as
// playlists of episodes.
type Playlist struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Author       string `json:"author,omitempty"`
	RemoteID     string `json:"remoteId,omitempty"`
	SongCount    int    `json:"songCount,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	Podcast      bool   `json:"podcast,omitempty"`
}

// Item is a tagged union over the entity types. Exactly one pointer matching
// Kind is set.
type Item struct {
	Kind     Kind      `json:"kind"`
	Song     *Song     `json:"song,omitempty"`
	Artist   *Artist   `json:"artist,omitempty"`
	Album    *Album    `json:"album,omitempty"`
	Playlist *Playlist `json:"playlist,omitempty"`
}

// ID returns the entity id regardless of kind.
func (i Item) ID() string {
	switch {
	case i.Song != nil:
		return i.Song.ID
	case i.Artist != nil:
		return i.Artist.ID
	case i.Album != nil:
		return i.Album.ID
	case i.Playlist != nil:
		return i.Playlist.ID
	default:
		return ""
	}
}

// SongLike reports whether the item is a playable song or video.
func (i Item) SongLike() bool {
	return i.Song != nil && (i.Kind == KindSong || i.Kind == KindVideo || i.Kind == KindEpisode)
}

// SongItem wraps a song, tagging videos and episodes.
func SongItem(s Song) Item {
	kind := KindSong
	switch {
	case s.Video:
		kind = KindVideo
	case s.Episode:
		kind = KindEpisode
	}
	return Item{Kind: kind, Song: &s}
}

// ArtistItem wraps an artist.
func ArtistItem(a Artist) Item { return Item{Kind: KindArtist, Artist: &a} }

// AlbumItem wraps an album.
func AlbumItem(a Album) Item { return Item{Kind: KindAlbum, Album: &a} }

// PlaylistItem wraps a playlist, tagging podcasts.
func PlaylistItem(p Playlist) Item {
	kind := KindPlaylist
	if p.Podcast {
		kind = KindPodcast
	}
	return Item{Kind: kind, Playlist: &p}
}

// DownloadState is the state reported by the download subsystem for a song.
type DownloadState int

const (
	DownloadNone DownloadState = iota
	DownloadQueued
	DownloadRunning
	DownloadCompleted
	DownloadFailed
)

func (s DownloadState) String() string {
	switch s {
	case DownloadQueued:
		return "queued"
	case DownloadRunning:
		return "downloading"
	case DownloadCompleted:
		return "completed"
	case DownloadFailed:
		return "failed"
	default:
		return "none"
	}
}

// ParseDownloadState is the inverse of DownloadState.String.
func ParseDownloadState(v string) DownloadState {
	switch v {
	case "queued":
		return DownloadQueued
	case "downloading":
		return DownloadRunning
	case "completed":
		return DownloadCompleted
	case "failed":
		return DownloadFailed
	default:
		return DownloadNone
	}
}
