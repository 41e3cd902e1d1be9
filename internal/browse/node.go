package browse

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/mikey-austin/mu_browse/internal/media"
)

// MediaType tags a node's content for the client.
type MediaType string

const (
	MediaTypeMusic    MediaType = "music"
	MediaTypeVideo    MediaType = "video"
	MediaTypeEpisode  MediaType = "episode"
	MediaTypeArtist   MediaType = "artist"
	MediaTypeAlbum    MediaType = "album"
	MediaTypePlaylist MediaType = "playlist"
	MediaTypePodcast  MediaType = "podcast"
	MediaTypeFolder   MediaType = "folder"
	MediaTypeMixed    MediaType = "mixed"
)

// Node is a browsable or playable entry presented to the client.
type Node struct {
	ID         string
	Title      string
	Subtitle   string
	Count      int
	ArtworkURL string
	Browsable  bool
	Playable   bool
	MediaType  MediaType
	// Song is set on playable nodes.
	Song *media.Song
}

// EntityID returns the trailing segment of the node id.
func (n Node) EntityID() string {
	return Parse(n.ID).Last()
}

var folderTitles = map[Namespace]string{
	NamespaceSongsAll:            "Songs",
	NamespaceSongsFavorites:      "Liked songs",
	NamespaceSongsDownloaded:     "Downloaded",
	NamespaceSongsOnDevice:       "On this device",
	NamespaceSongsCached:         "Cached",
	NamespaceSongsTopPlayed:      "Most played",
	NamespaceArtistsLibrary:      "Artists",
	NamespaceArtistsFavorites:    "Favorite artists",
	NamespaceAlbumsLibrary:       "Albums",
	NamespaceAlbumsFavorites:     "Favorite albums",
	NamespacePlaylistsAll:        "Playlists",
	NamespacePlaylistsFavorites:  "Favorite playlists",
	NamespacePlaylistsCreated:    "My playlists",
	NamespacePlaylistsSaved:      "Saved playlists",
	NamespacePlaylistsDownloaded: "Downloaded playlists",
}

var searchTitles = map[Namespace]string{
	NamespaceSearchSongs:     "Songs",
	NamespaceSearchAlbums:    "Albums",
	NamespaceSearchArtists:   "Artists",
	NamespaceSearchVideos:    "Videos",
	NamespaceSearchPlaylists: "Playlists",
	NamespaceSearchFeatured:  "Featured playlists",
	NamespaceSearchPodcasts:  "Podcasts",
}

func rootNode() Node {
	return Node{ID: NamespaceRoot.String(), Title: "Library", Browsable: true, MediaType: MediaTypeFolder}
}

func folderNode(ns Namespace) Node {
	mt := MediaTypeMusic
	switch {
	case ns >= NamespaceArtistsLibrary && ns <= NamespaceArtistsFavorites:
		mt = MediaTypeArtist
	case ns >= NamespaceAlbumsLibrary && ns <= NamespaceAlbumsFavorites:
		mt = MediaTypeAlbum
	case ns >= NamespacePlaylistsAll:
		mt = MediaTypePlaylist
	}
	return Node{ID: ns.String(), Title: folderTitles[ns], Browsable: true, MediaType: mt}
}

func shuffleNode(folder Namespace) Node {
	token, _ := ShuffleToken(folder)
	return Node{ID: token.String(), Title: "Shuffle", Subtitle: folderTitles[folder], Playable: true, MediaType: MediaTypeMixed}
}

func searchFolderNode(ns Namespace, query string) Node {
	return Node{ID: Join(ns, query), Title: searchTitles[ns], Subtitle: query, Browsable: true, MediaType: MediaTypeFolder}
}

func artistFilterNode(artistID string, filter string) Node {
	title := map[string]string{
		ArtistFilterSongs:  "Songs",
		ArtistFilterAlbums: "Albums",
		ArtistFilterVideos: "Videos",
	}[filter]
	mt := MediaTypeMusic
	switch filter {
	case ArtistFilterAlbums:
		mt = MediaTypeAlbum
	case ArtistFilterVideos:
		mt = MediaTypeVideo
	}
	return Node{ID: Join(NamespaceArtist, artistID, filter), Title: title, Browsable: true, MediaType: mt}
}

// songNode maps a song to a playable node addressed under parent.
func songNode(parent string, s media.Song) Node {
	mt := MediaTypeMusic
	switch {
	case s.Video:
		mt = MediaTypeVideo
	case s.Episode:
		mt = MediaTypeEpisode
	}
	song := s
	return Node{
		ID:         Child(parent, s.ID),
		Title:      s.Title,
		Subtitle:   songSubtitle(s),
		ArtworkURL: s.ThumbnailURL,
		Playable:   true,
		MediaType:  mt,
		Song:       &song,
	}
}

func songSubtitle(s media.Song) string {
	switch {
	case s.ArtistName != "" && s.DurationMS > 0:
		return fmt.Sprintf("%s • %s", s.ArtistName, formatDuration(s.DurationMS))
	case s.ArtistName != "":
		return s.ArtistName
	case s.DurationMS > 0:
		return formatDuration(s.DurationMS)
	default:
		return ""
	}
}

func formatDuration(ms int64) string {
	total := ms / 1000
	if total >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", total/3600, (total/60)%60, total%60)
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func countSubtitle(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return humanize.Comma(int64(n)) + " " + unit + "s"
}

// artistNode maps to a browsable node whose id is under the artist detail
// namespace.
func artistNode(a media.Artist) Node {
	n := Node{
		ID:         Join(NamespaceArtist, a.ID),
		Title:      a.Name,
		ArtworkURL: a.ThumbnailURL,
		Browsable:  true,
		MediaType:  MediaTypeArtist,
		Count:      a.SongCount,
	}
	if a.SongCount > 0 {
		n.Subtitle = countSubtitle(a.SongCount, "song")
	}
	return n
}

func albumNode(a media.Album) Node {
	n := Node{
		ID:         Join(NamespaceAlbum, a.ID),
		Title:      a.Title,
		Subtitle:   a.ArtistName,
		ArtworkURL: a.ThumbnailURL,
		Browsable:  true,
		MediaType:  MediaTypeAlbum,
		Count:      a.SongCount,
	}
	if a.Year > 0 {
		if n.Subtitle != "" {
			n.Subtitle += " • "
		}
		n.Subtitle += fmt.Sprint(a.Year)
	}
	return n
}

func playlistNode(p media.Playlist) Node {
	mt := MediaTypePlaylist
	if p.Podcast {
		mt = MediaTypePodcast
	}
	n := Node{
		ID:         Join(NamespacePlaylist, p.ID),
		Title:      p.Name,
		Subtitle:   p.Author,
		ArtworkURL: p.ThumbnailURL,
		Browsable:  true,
		MediaType:  mt,
		Count:      p.SongCount,
	}
	if p.SongCount > 0 {
		unit := "song"
		if p.Podcast {
			unit = "episode"
		}
		if n.Subtitle != "" {
			n.Subtitle += " • "
		}
		n.Subtitle += countSubtitle(p.SongCount, unit)
	}
	return n
}

// itemNode maps a remote entity found under parent. Song-like entities stay
// addressed under parent; collections are addressed under parent too so that
// browsing them keeps the search context.
func itemNode(parent string, item media.Item) (Node, bool) {
	switch {
	case item.Song != nil:
		return songNode(parent, *item.Song), true
	case item.Artist != nil:
		n := artistNode(*item.Artist)
		n.ID = Child(parent, item.Artist.ID)
		return n, true
	case item.Album != nil:
		n := albumNode(*item.Album)
		n.ID = Child(parent, item.Album.ID)
		return n, true
	case item.Playlist != nil:
		n := playlistNode(*item.Playlist)
		n.ID = Child(parent, item.Playlist.ID)
		return n, true
	default:
		return Node{}, false
	}
}
