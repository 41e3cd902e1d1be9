package browse

import (
	"context"
	"fmt"

	"github.com/mikey-austin/mu_browse/internal/media"
)

// source resolves one namespace. children feeds browse; songs rebuilds the
// full playable set of the same identifier for queue building and must use
// the same selection as children.
type source interface {
	children(ctx context.Context, id ID) ([]Node, error)
	songs(ctx context.Context, id ID) ([]media.Song, error)
	cacheable() bool
}

// sourceFor maps every namespace to its handler. Adding a namespace requires
// a case here; TestEveryNamespaceHasSource fails otherwise.
func (r *Resolver) sourceFor(ns Namespace) source {
	switch ns {
	case NamespaceRoot:
		return rootSource{}
	case NamespaceSongsAll, NamespaceSongsFavorites, NamespaceSongsDownloaded,
		NamespaceSongsOnDevice, NamespaceSongsCached, NamespaceSongsTopPlayed:
		return songFolder{r: r, ns: ns}
	case NamespaceArtistsLibrary, NamespaceArtistsFavorites:
		return artistFolder{r: r, ns: ns}
	case NamespaceAlbumsLibrary, NamespaceAlbumsFavorites:
		return albumFolder{r: r, ns: ns}
	case NamespacePlaylistsAll, NamespacePlaylistsFavorites, NamespacePlaylistsCreated,
		NamespacePlaylistsSaved, NamespacePlaylistsDownloaded:
		return playlistFolder{r: r, ns: ns}
	case NamespaceShuffleSongsAll, NamespaceShuffleSongsFavorites, NamespaceShuffleSongsDownloaded,
		NamespaceShuffleSongsOnDevice, NamespaceShuffleSongsCached, NamespaceShuffleSongsTopPlayed,
		NamespaceShuffleArtistsLibrary, NamespaceShuffleArtistsFavorites,
		NamespaceShuffleAlbumsLibrary, NamespaceShuffleAlbumsFavorites,
		NamespaceShufflePlaylistsAll, NamespaceShufflePlaylistsFavorites, NamespaceShufflePlaylistsCreated,
		NamespaceShufflePlaylistsSaved, NamespaceShufflePlaylistsDownloaded:
		return shuffleSource{r: r, ns: ns}
	case NamespaceSearchSongs, NamespaceSearchArtists, NamespaceSearchAlbums, NamespaceSearchVideos,
		NamespaceSearchPlaylists, NamespaceSearchFeatured, NamespaceSearchPodcasts:
		return searchSource{r: r, ns: ns}
	case NamespaceArtist:
		return artistSource{r: r}
	case NamespaceAlbum:
		return albumSource{r: r}
	case NamespacePlaylist:
		return playlistSource{r: r}
	default:
		return unknownSource{}
	}
}

type unknownSource struct{}

func (unknownSource) children(context.Context, ID) ([]Node, error)     { return nil, nil }
func (unknownSource) songs(context.Context, ID) ([]media.Song, error) { return nil, nil }
func (unknownSource) cacheable() bool                                  { return false }

type rootSource struct{}

func (rootSource) children(_ context.Context, id ID) ([]Node, error) {
	if len(id.Segments) > 0 {
		return nil, nil
	}
	folders := Folders()
	out := make([]Node, 0, len(folders))
	for _, ns := range folders {
		out = append(out, folderNode(ns))
	}
	return out, nil
}

func (rootSource) songs(context.Context, ID) ([]media.Song, error) { return nil, nil }
func (rootSource) cacheable() bool                                  { return true }

// songFolder lists local songs selected by a folder predicate.
type songFolder struct {
	r  *Resolver
	ns Namespace
}

func (f songFolder) children(ctx context.Context, id ID) ([]Node, error) {
	if len(id.Segments) > 0 {
		return nil, nil
	}
	songs, err := f.r.folderSongs(ctx, f.ns)
	if err != nil {
		return nil, err
	}
	out := make([]Node, 0, len(songs)+1)
	out = append(out, shuffleNode(f.ns))
	for _, s := range songs {
		out = append(out, songNode(f.ns.String(), s))
	}
	return out, nil
}

func (f songFolder) songs(ctx context.Context, id ID) ([]media.Song, error) {
	if len(id.Segments) > 0 {
		return nil, nil
	}
	return f.r.folderSongs(ctx, f.ns)
}

func (songFolder) cacheable() bool { return true }

func (r *Resolver) folderSongs(ctx context.Context, ns Namespace) ([]media.Song, error) {
	switch ns {
	case NamespaceSongsAll:
		return r.library.AllSongs(ctx)
	case NamespaceSongsFavorites:
		return r.library.LikedSongs(ctx)
	case NamespaceSongsDownloaded:
		return r.knownSongsWhere(ctx, func(ctx context.Context, s media.Song) (bool, error) {
			state, err := r.downloads.State(ctx, s.ID)
			return state == media.DownloadCompleted, err
		})
	case NamespaceSongsOnDevice:
		return r.library.DeviceSongs(ctx)
	case NamespaceSongsCached:
		return r.knownSongsWhere(ctx, func(ctx context.Context, s media.Song) (bool, error) {
			cached, err := r.downloads.Cached(ctx, s.ID)
			if err != nil || !cached {
				return false, err
			}
			state, err := r.downloads.State(ctx, s.ID)
			return state != media.DownloadCompleted, err
		})
	case NamespaceSongsTopPlayed:
		return r.library.TopSongs(ctx, r.config.TopSongsLimit)
	default:
		return nil, fmt.Errorf("%s is not a song folder", ns)
	}
}

func (r *Resolver) knownSongsWhere(ctx context.Context, keep func(context.Context, media.Song) (bool, error)) ([]media.Song, error) {
	if r.downloads == nil {
		return nil, nil
	}
	songs, err := r.library.KnownSongs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]media.Song, 0, len(songs))
	for _, s := range songs {
		ok, err := keep(ctx, s)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// artistFolder lists local artists; ARTISTS_X/<artistId> browses the artist.
type artistFolder struct {
	r  *Resolver
	ns Namespace
}

func (f artistFolder) list(ctx context.Context) ([]media.Artist, error) {
	if f.ns == NamespaceArtistsFavorites {
		return f.r.library.FavoriteArtists(ctx)
	}
	return f.r.library.LibraryArtists(ctx)
}

func (f artistFolder) children(ctx context.Context, id ID) ([]Node, error) {
	switch len(id.Segments) {
	case 0:
		artists, err := f.list(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]Node, 0, len(artists)+1)
		out = append(out, shuffleNode(f.ns))
		for _, a := range artists {
			n := artistNode(a)
			n.ID = Child(f.ns.String(), a.ID)
			out = append(out, n)
		}
		return out, nil
	case 1:
		return f.r.artistChildren(ctx, id.Segment(0), id.Raw)
	default:
		return nil, nil
	}
}

func (f artistFolder) songs(ctx context.Context, id ID) ([]media.Song, error) {
	switch len(id.Segments) {
	case 0:
		artists, err := f.list(ctx)
		if err != nil {
			return nil, err
		}
		var out []media.Song
		for _, a := range artists {
			songs, err := f.r.library.ArtistSongs(ctx, a.ID)
			if err != nil {
				return nil, err
			}
			out = append(out, songs...)
		}
		return dedupSongs(out), nil
	case 1:
		return f.r.artistSongs(ctx, id.Segment(0), id.Raw)
	default:
		return nil, nil
	}
}

func (artistFolder) cacheable() bool { return true }

// albumFolder lists local albums; ALBUMS_X/<albumId> browses the album.
type albumFolder struct {
	r  *Resolver
	ns Namespace
}

func (f albumFolder) list(ctx context.Context) ([]media.Album, error) {
	if f.ns == NamespaceAlbumsFavorites {
		return f.r.library.FavoriteAlbums(ctx)
	}
	return f.r.library.LibraryAlbums(ctx)
}

func (f albumFolder) children(ctx context.Context, id ID) ([]Node, error) {
	switch len(id.Segments) {
	case 0:
		albums, err := f.list(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]Node, 0, len(albums)+1)
		out = append(out, shuffleNode(f.ns))
		for _, a := range albums {
			n := albumNode(a)
			n.ID = Child(f.ns.String(), a.ID)
			out = append(out, n)
		}
		return out, nil
	case 1:
		return f.r.songNodes(ctx, id.Raw, func(ctx context.Context) ([]media.Song, error) {
			return f.r.albumSongs(ctx, id.Segment(0), id.Raw)
		})
	default:
		return nil, nil
	}
}

func (f albumFolder) songs(ctx context.Context, id ID) ([]media.Song, error) {
	switch len(id.Segments) {
	case 0:
		albums, err := f.list(ctx)
		if err != nil {
			return nil, err
		}
		var out []media.Song
		for _, a := range albums {
			songs, err := f.r.library.AlbumSongs(ctx, a.ID)
			if err != nil {
				return nil, err
			}
			out = append(out, songs...)
		}
		return dedupSongs(out), nil
	case 1:
		return f.r.albumSongs(ctx, id.Segment(0), id.Raw)
	default:
		return nil, nil
	}
}

func (albumFolder) cacheable() bool { return true }

// playlistFolder lists local playlists of one kind.
type playlistFolder struct {
	r  *Resolver
	ns Namespace
}

func (f playlistFolder) list(ctx context.Context) ([]media.Playlist, error) {
	switch f.ns {
	case NamespacePlaylistsFavorites:
		return f.r.library.Playlists(ctx, media.PlaylistsFavorites)
	case NamespacePlaylistsCreated:
		return f.r.library.Playlists(ctx, media.PlaylistsCreated)
	case NamespacePlaylistsSaved:
		return f.r.library.Playlists(ctx, media.PlaylistsSaved)
	case NamespacePlaylistsDownloaded:
		return f.r.downloadedPlaylists(ctx)
	default:
		return f.r.library.Playlists(ctx, media.PlaylistsAll)
	}
}

func (f playlistFolder) children(ctx context.Context, id ID) ([]Node, error) {
	switch len(id.Segments) {
	case 0:
		playlists, err := f.list(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]Node, 0, len(playlists)+1)
		out = append(out, shuffleNode(f.ns))
		for _, p := range playlists {
			n := playlistNode(p)
			n.ID = Child(f.ns.String(), p.ID)
			out = append(out, n)
		}
		return out, nil
	case 1:
		return f.r.songNodes(ctx, id.Raw, func(ctx context.Context) ([]media.Song, error) {
			return f.r.playlistSongs(ctx, id.Segment(0), id.Raw)
		})
	default:
		return nil, nil
	}
}

func (f playlistFolder) songs(ctx context.Context, id ID) ([]media.Song, error) {
	switch len(id.Segments) {
	case 0:
		playlists, err := f.list(ctx)
		if err != nil {
			return nil, err
		}
		var out []media.Song
		for _, p := range playlists {
			songs, err := f.r.library.PlaylistSongs(ctx, p.ID)
			if err != nil {
				return nil, err
			}
			out = append(out, songs...)
		}
		return dedupSongs(out), nil
	case 1:
		return f.r.playlistSongs(ctx, id.Segment(0), id.Raw)
	default:
		return nil, nil
	}
}

func (playlistFolder) cacheable() bool { return true }

func (r *Resolver) downloadedPlaylists(ctx context.Context) ([]media.Playlist, error) {
	if r.downloads == nil {
		return nil, nil
	}
	playlists, err := r.library.Playlists(ctx, media.PlaylistsAll)
	if err != nil {
		return nil, err
	}
	out := make([]media.Playlist, 0, len(playlists))
	for _, p := range playlists {
		songs, err := r.library.PlaylistSongs(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if len(songs) == 0 {
			continue
		}
		complete := true
		for _, s := range songs {
			state, err := r.downloads.State(ctx, s.ID)
			if err != nil {
				return nil, err
			}
			if state != media.DownloadCompleted {
				complete = false
				break
			}
		}
		if complete {
			out = append(out, p)
		}
	}
	return out, nil
}

// shuffleSource plays a folder shuffled. Browsing it only drops the folder's
// cached list; the permutation is built when the token is queued.
type shuffleSource struct {
	r  *Resolver
	ns Namespace
}

func (s shuffleSource) children(_ context.Context, _ ID) ([]Node, error) {
	if folder, ok := FolderOf(s.ns); ok {
		s.r.cache.Invalidate(folder.String())
	}
	return []Node{}, nil
}

func (s shuffleSource) songs(ctx context.Context, id ID) ([]media.Song, error) {
	folder, ok := FolderOf(s.ns)
	if !ok {
		return nil, nil
	}
	return s.r.sourceFor(folder).songs(ctx, ID{Raw: folder.String(), Namespace: folder})
}

func (shuffleSource) cacheable() bool { return false }

// searchSource serves SEARCH_X/<query>[/<entityId>].
type searchSource struct {
	r  *Resolver
	ns Namespace
}

func (s searchSource) children(ctx context.Context, id ID) ([]Node, error) {
	query := id.Query()
	if query == "" {
		return nil, nil
	}
	switch len(id.Segments) {
	case 1:
		items, err := s.r.searchItems(ctx, s.ns, query)
		if err != nil {
			return nil, err
		}
		out := make([]Node, 0, len(items))
		for _, item := range items {
			if n, ok := itemNode(id.Raw, item); ok {
				out = append(out, n)
			}
		}
		return out, nil
	case 2:
		entityID := id.Segment(1)
		switch s.ns {
		case NamespaceSearchArtists:
			return s.r.artistChildren(ctx, entityID, id.Raw)
		case NamespaceSearchAlbums:
			return s.r.songNodes(ctx, id.Raw, func(ctx context.Context) ([]media.Song, error) {
				return s.r.albumSongs(ctx, entityID, id.Raw)
			})
		case NamespaceSearchPlaylists, NamespaceSearchFeatured, NamespaceSearchPodcasts:
			return s.r.songNodes(ctx, id.Raw, func(ctx context.Context) ([]media.Song, error) {
				return s.r.playlistSongs(ctx, entityID, id.Raw)
			})
		}
	}
	return nil, nil
}

func (s searchSource) songs(ctx context.Context, id ID) ([]media.Song, error) {
	query := id.Query()
	if query == "" {
		return nil, nil
	}
	switch len(id.Segments) {
	case 1:
		if s.ns != NamespaceSearchSongs && s.ns != NamespaceSearchVideos {
			return nil, nil
		}
		if seen := s.r.seen.Songs(id.Raw); len(seen) > 0 {
			return seen, nil
		}
		items, err := s.r.searchItems(ctx, s.ns, query)
		if err != nil {
			return nil, err
		}
		return songsOfItems(items), nil
	case 2:
		entityID := id.Segment(1)
		switch s.ns {
		case NamespaceSearchArtists:
			return s.r.artistSongs(ctx, entityID, id.Raw)
		case NamespaceSearchAlbums:
			return s.r.albumSongs(ctx, entityID, id.Raw)
		case NamespaceSearchPlaylists, NamespaceSearchFeatured, NamespaceSearchPodcasts:
			return s.r.playlistSongs(ctx, entityID, id.Raw)
		}
	}
	return nil, nil
}

func (searchSource) cacheable() bool { return true }

// artistSource serves ARTIST/<id>[/<filter>[/<entityId>]].
type artistSource struct{ r *Resolver }

func (s artistSource) children(ctx context.Context, id ID) ([]Node, error) {
	artistID := id.Segment(0)
	if artistID == "" {
		return nil, nil
	}
	switch len(id.Segments) {
	case 1:
		return s.r.artistChildren(ctx, artistID, id.Raw)
	case 2:
		switch id.Segment(1) {
		case ArtistFilterSongs:
			return s.r.songNodes(ctx, id.Raw, func(ctx context.Context) ([]media.Song, error) {
				return s.r.artistSongs(ctx, artistID, id.Raw)
			})
		case ArtistFilterVideos:
			return s.r.songNodes(ctx, id.Raw, func(ctx context.Context) ([]media.Song, error) {
				return s.r.artistVideos(ctx, artistID, id.Raw)
			})
		case ArtistFilterAlbums:
			albums, err := s.r.artistAlbums(ctx, artistID)
			if err != nil {
				return nil, err
			}
			out := make([]Node, 0, len(albums))
			for _, a := range albums {
				n := albumNode(a)
				n.ID = Child(id.Raw, a.ID)
				out = append(out, n)
			}
			return out, nil
		}
	case 3:
		if id.Segment(1) == ArtistFilterAlbums {
			return s.r.songNodes(ctx, id.Raw, func(ctx context.Context) ([]media.Song, error) {
				return s.r.albumSongs(ctx, id.Segment(2), id.Raw)
			})
		}
	}
	return nil, nil
}

func (s artistSource) songs(ctx context.Context, id ID) ([]media.Song, error) {
	artistID := id.Segment(0)
	if artistID == "" {
		return nil, nil
	}
	switch len(id.Segments) {
	case 1:
		return s.r.artistSongs(ctx, artistID, id.Raw)
	case 2:
		switch id.Segment(1) {
		case ArtistFilterSongs:
			return s.r.artistSongs(ctx, artistID, id.Raw)
		case ArtistFilterVideos:
			return s.r.artistVideos(ctx, artistID, id.Raw)
		case ArtistFilterAlbums:
			albums, err := s.r.artistAlbums(ctx, artistID)
			if err != nil {
				return nil, err
			}
			var out []media.Song
			for _, a := range albums {
				songs, err := s.r.albumSongs(ctx, a.ID, Child(id.Raw, a.ID))
				if err != nil {
					return nil, err
				}
				out = append(out, songs...)
			}
			return dedupSongs(out), nil
		}
	case 3:
		if id.Segment(1) == ArtistFilterAlbums {
			return s.r.albumSongs(ctx, id.Segment(2), id.Raw)
		}
	}
	return nil, nil
}

func (artistSource) cacheable() bool { return true }

// albumSource serves ALBUM/<id>.
type albumSource struct{ r *Resolver }

func (s albumSource) children(ctx context.Context, id ID) ([]Node, error) {
	if len(id.Segments) != 1 || id.Segment(0) == "" {
		return nil, nil
	}
	return s.r.songNodes(ctx, id.Raw, func(ctx context.Context) ([]media.Song, error) {
		return s.r.albumSongs(ctx, id.Segment(0), id.Raw)
	})
}

func (s albumSource) songs(ctx context.Context, id ID) ([]media.Song, error) {
	if len(id.Segments) != 1 || id.Segment(0) == "" {
		return nil, nil
	}
	return s.r.albumSongs(ctx, id.Segment(0), id.Raw)
}

func (albumSource) cacheable() bool { return true }

// playlistSource serves PLAYLIST/<id>.
type playlistSource struct{ r *Resolver }

func (s playlistSource) children(ctx context.Context, id ID) ([]Node, error) {
	if len(id.Segments) != 1 || id.Segment(0) == "" {
		return nil, nil
	}
	return s.r.songNodes(ctx, id.Raw, func(ctx context.Context) ([]media.Song, error) {
		return s.r.playlistSongs(ctx, id.Segment(0), id.Raw)
	})
}

func (s playlistSource) songs(ctx context.Context, id ID) ([]media.Song, error) {
	if len(id.Segments) != 1 || id.Segment(0) == "" {
		return nil, nil
	}
	return s.r.playlistSongs(ctx, id.Segment(0), id.Raw)
}

func (playlistSource) cacheable() bool { return true }

func (r *Resolver) songNodes(ctx context.Context, parent string, load func(context.Context) ([]media.Song, error)) ([]Node, error) {
	songs, err := load(ctx)
	if err != nil {
		return nil, err
	}
	return queueNodes(parent, songs), nil
}

func songsOfItems(items []media.Item) []media.Song {
	out := make([]media.Song, 0, len(items))
	for _, item := range items {
		if item.SongLike() {
			out = append(out, *item.Song)
		}
	}
	return out
}

func dedupSongs(songs []media.Song) []media.Song {
	seen := make(map[string]struct{}, len(songs))
	out := make([]media.Song, 0, len(songs))
	for _, s := range songs {
		if _, dup := seen[s.ID]; dup {
			continue
		}
		seen[s.ID] = struct{}{}
		out = append(out, s)
	}
	return out
}
