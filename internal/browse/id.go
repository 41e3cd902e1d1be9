package browse

import "strings"

// Separator delimits identifier segments. Segments are never escaped.
const Separator = "/"

// Namespace is segment 0 of an identifier.
type Namespace uint8

const (
	NamespaceUnknown Namespace = iota
	NamespaceRoot

	NamespaceSongsAll
	NamespaceSongsFavorites
	NamespaceSongsDownloaded
	NamespaceSongsOnDevice
	NamespaceSongsCached
	NamespaceSongsTopPlayed
	NamespaceArtistsLibrary
	NamespaceArtistsFavorites
	NamespaceAlbumsLibrary
	NamespaceAlbumsFavorites
	NamespacePlaylistsAll
	NamespacePlaylistsFavorites
	NamespacePlaylistsCreated
	NamespacePlaylistsSaved
	NamespacePlaylistsDownloaded

	NamespaceShuffleSongsAll
	NamespaceShuffleSongsFavorites
	NamespaceShuffleSongsDownloaded
	NamespaceShuffleSongsOnDevice
	NamespaceShuffleSongsCached
	NamespaceShuffleSongsTopPlayed
	NamespaceShuffleArtistsLibrary
	NamespaceShuffleArtistsFavorites
	NamespaceShuffleAlbumsLibrary
	NamespaceShuffleAlbumsFavorites
	NamespaceShufflePlaylistsAll
	NamespaceShufflePlaylistsFavorites
	NamespaceShufflePlaylistsCreated
	NamespaceShufflePlaylistsSaved
	NamespaceShufflePlaylistsDownloaded

	NamespaceSearchSongs
	NamespaceSearchArtists
	NamespaceSearchAlbums
	NamespaceSearchVideos
	NamespaceSearchPlaylists
	NamespaceSearchFeatured
	NamespaceSearchPodcasts

	NamespaceArtist
	NamespaceAlbum
	NamespacePlaylist

	namespaceCount
)

var namespaceTokens = [namespaceCount]string{
	NamespaceUnknown: "",
	NamespaceRoot:    "ROOT",

	NamespaceSongsAll:            "SONGS_ALL",
	NamespaceSongsFavorites:      "SONGS_FAVORITES",
	NamespaceSongsDownloaded:     "SONGS_DOWNLOADED",
	NamespaceSongsOnDevice:       "SONGS_ON_DEVICE",
	NamespaceSongsCached:         "SONGS_CACHED",
	NamespaceSongsTopPlayed:      "SONGS_TOP_PLAYED",
	NamespaceArtistsLibrary:      "ARTISTS_LIBRARY",
	NamespaceArtistsFavorites:    "ARTISTS_FAVORITES",
	NamespaceAlbumsLibrary:       "ALBUMS_LIBRARY",
	NamespaceAlbumsFavorites:     "ALBUMS_FAVORITES",
	NamespacePlaylistsAll:        "PLAYLISTS_ALL",
	NamespacePlaylistsFavorites:  "PLAYLISTS_FAVORITES",
	NamespacePlaylistsCreated:    "PLAYLISTS_CREATED",
	NamespacePlaylistsSaved:      "PLAYLISTS_SAVED",
	NamespacePlaylistsDownloaded: "PLAYLISTS_DOWNLOADED",

	NamespaceShuffleSongsAll:            "SHUFFLE_SONGS_ALL",
	NamespaceShuffleSongsFavorites:      "SHUFFLE_SONGS_FAVORITES",
	NamespaceShuffleSongsDownloaded:     "SHUFFLE_SONGS_DOWNLOADED",
	NamespaceShuffleSongsOnDevice:       "SHUFFLE_SONGS_ON_DEVICE",
	NamespaceShuffleSongsCached:         "SHUFFLE_SONGS_CACHED",
	NamespaceShuffleSongsTopPlayed:      "SHUFFLE_SONGS_TOP_PLAYED",
	NamespaceShuffleArtistsLibrary:      "SHUFFLE_ARTISTS_LIBRARY",
	NamespaceShuffleArtistsFavorites:    "SHUFFLE_ARTISTS_FAVORITES",
	NamespaceShuffleAlbumsLibrary:       "SHUFFLE_ALBUMS_LIBRARY",
	NamespaceShuffleAlbumsFavorites:     "SHUFFLE_ALBUMS_FAVORITES",
	NamespaceShufflePlaylistsAll:        "SHUFFLE_PLAYLISTS_ALL",
	NamespaceShufflePlaylistsFavorites:  "SHUFFLE_PLAYLISTS_FAVORITES",
	NamespaceShufflePlaylistsCreated:    "SHUFFLE_PLAYLISTS_CREATED",
	NamespaceShufflePlaylistsSaved:      "SHUFFLE_PLAYLISTS_SAVED",
	NamespaceShufflePlaylistsDownloaded: "SHUFFLE_PLAYLISTS_DOWNLOADED",

	NamespaceSearchSongs:     "SEARCH_SONGS",
	NamespaceSearchArtists:   "SEARCH_ARTISTS",
	NamespaceSearchAlbums:    "SEARCH_ALBUMS",
	NamespaceSearchVideos:    "SEARCH_VIDEOS",
	NamespaceSearchPlaylists: "SEARCH_PLAYLISTS",
	NamespaceSearchFeatured:  "SEARCH_FEATURED",
	NamespaceSearchPodcasts:  "SEARCH_PODCASTS",

	NamespaceArtist:   "ARTIST",
	NamespaceAlbum:    "ALBUM",
	NamespacePlaylist: "PLAYLIST",
}

// shuffleTokens pairs every virtual folder with its shuffle token.
var shuffleTokens = map[Namespace]Namespace{
	NamespaceSongsAll:            NamespaceShuffleSongsAll,
	NamespaceSongsFavorites:      NamespaceShuffleSongsFavorites,
	NamespaceSongsDownloaded:     NamespaceShuffleSongsDownloaded,
	NamespaceSongsOnDevice:       NamespaceShuffleSongsOnDevice,
	NamespaceSongsCached:         NamespaceShuffleSongsCached,
	NamespaceSongsTopPlayed:      NamespaceShuffleSongsTopPlayed,
	NamespaceArtistsLibrary:      NamespaceShuffleArtistsLibrary,
	NamespaceArtistsFavorites:    NamespaceShuffleArtistsFavorites,
	NamespaceAlbumsLibrary:       NamespaceShuffleAlbumsLibrary,
	NamespaceAlbumsFavorites:     NamespaceShuffleAlbumsFavorites,
	NamespacePlaylistsAll:        NamespaceShufflePlaylistsAll,
	NamespacePlaylistsFavorites:  NamespaceShufflePlaylistsFavorites,
	NamespacePlaylistsCreated:    NamespaceShufflePlaylistsCreated,
	NamespacePlaylistsSaved:      NamespaceShufflePlaylistsSaved,
	NamespacePlaylistsDownloaded: NamespaceShufflePlaylistsDownloaded,
}

var (
	tokenIndex    map[string]Namespace
	shuffleFolder map[Namespace]Namespace
)

func init() {
	tokenIndex = make(map[string]Namespace, namespaceCount)
	for ns := NamespaceRoot; ns < namespaceCount; ns++ {
		tokenIndex[namespaceTokens[ns]] = ns
	}
	shuffleFolder = make(map[Namespace]Namespace, len(shuffleTokens))
	for folder, token := range shuffleTokens {
		shuffleFolder[token] = folder
	}
}

// String returns the wire token.
func (ns Namespace) String() string {
	if ns >= namespaceCount {
		return ""
	}
	return namespaceTokens[ns]
}

// NamespaceKind classifies namespaces by resolution strategy.
type NamespaceKind uint8

const (
	KindUnknown NamespaceKind = iota
	KindRoot
	KindFolder
	KindShuffle
	KindSearch
	KindDetail
)

// Kind reports the resolution strategy class of ns.
func (ns Namespace) Kind() NamespaceKind {
	switch {
	case ns == NamespaceRoot:
		return KindRoot
	case ns >= NamespaceSongsAll && ns <= NamespacePlaylistsDownloaded:
		return KindFolder
	case ns >= NamespaceShuffleSongsAll && ns <= NamespaceShufflePlaylistsDownloaded:
		return KindShuffle
	case ns >= NamespaceSearchSongs && ns <= NamespaceSearchPodcasts:
		return KindSearch
	case ns >= NamespaceArtist && ns <= NamespacePlaylist:
		return KindDetail
	default:
		return KindUnknown
	}
}

// AllNamespaces lists every known namespace in declaration order.
func AllNamespaces() []Namespace {
	out := make([]Namespace, 0, namespaceCount-1)
	for ns := NamespaceRoot; ns < namespaceCount; ns++ {
		out = append(out, ns)
	}
	return out
}

// Folders lists the virtual folders in root order.
func Folders() []Namespace {
	out := make([]Namespace, 0, len(shuffleTokens))
	for ns := NamespaceSongsAll; ns <= NamespacePlaylistsDownloaded; ns++ {
		out = append(out, ns)
	}
	return out
}

// SearchNamespaces lists the search categories in menu order.
func SearchNamespaces() []Namespace {
	return []Namespace{
		NamespaceSearchSongs,
		NamespaceSearchAlbums,
		NamespaceSearchArtists,
		NamespaceSearchVideos,
		NamespaceSearchPlaylists,
		NamespaceSearchFeatured,
		NamespaceSearchPodcasts,
	}
}

// ShuffleToken returns the shuffle token of a virtual folder.
func ShuffleToken(folder Namespace) (Namespace, bool) {
	token, ok := shuffleTokens[folder]
	return token, ok
}

// FolderOf returns the virtual folder a shuffle token belongs to.
func FolderOf(token Namespace) (Namespace, bool) {
	folder, ok := shuffleFolder[token]
	return folder, ok
}

// Artist detail sub-filters.
const (
	ArtistFilterSongs  = "songs"
	ArtistFilterAlbums = "albums"
	ArtistFilterVideos = "videos"
)

// ID is a parsed identifier.
type ID struct {
	Raw       string
	Namespace Namespace
	// Segments excludes the namespace token.
	Segments []string
}

// Parse splits raw into namespace and segments. It never fails; unknown
// tokens yield NamespaceUnknown with every part kept as a segment.
func Parse(raw string) ID {
	if raw == "" {
		return ID{}
	}
	parts := strings.Split(raw, Separator)
	ns, ok := tokenIndex[parts[0]]
	if !ok {
		return ID{Raw: raw, Namespace: NamespaceUnknown, Segments: parts}
	}
	return ID{Raw: raw, Namespace: ns, Segments: parts[1:]}
}

// Join builds an identifier from a namespace and segments.
func Join(ns Namespace, segments ...string) string {
	if len(segments) == 0 {
		return ns.String()
	}
	return ns.String() + Separator + strings.Join(segments, Separator)
}

// Child appends an entity id to a parent identifier.
func Child(parent string, entityID string) string {
	if parent == "" {
		return entityID
	}
	return parent + Separator + entityID
}

// String returns the raw identifier.
func (id ID) String() string { return id.Raw }

// Segment returns segment i (0-based after the namespace) or "".
func (id ID) Segment(i int) string {
	if i < 0 || i >= len(id.Segments) {
		return ""
	}
	return id.Segments[i]
}

// Last returns the trailing segment of the identifier.
func (id ID) Last() string {
	if i := strings.LastIndex(id.Raw, Separator); i >= 0 {
		return id.Raw[i+1:]
	}
	return id.Raw
}

// Parent returns the identifier without its trailing segment.
func (id ID) Parent() ID {
	i := strings.LastIndex(id.Raw, Separator)
	if i < 0 {
		return ID{}
	}
	return Parse(id.Raw[:i])
}

// Query returns the free-text query of a search identifier.
func (id ID) Query() string {
	if id.Namespace.Kind() != KindSearch {
		return ""
	}
	return id.Segment(0)
}
