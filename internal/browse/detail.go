package browse

import (
	"context"
	"errors"

	"github.com/mikey-austin/mu_browse/internal/media"
)

var errNoCatalog = errors.New("no remote catalog configured")

// artistChildren lists an artist's local songs, or the non-empty sections of
// the remote artist page when nothing is stored locally.
func (r *Resolver) artistChildren(ctx context.Context, artistID, parent string) ([]Node, error) {
	local, err := r.library.ArtistSongs(ctx, artistID)
	if err != nil {
		return nil, err
	}
	if len(local) > 0 {
		out := make([]Node, 0, len(local))
		for _, s := range local {
			out = append(out, songNode(parent, s))
		}
		return out, nil
	}
	if r.catalog == nil {
		return nil, nil
	}
	detail, err := r.catalog.Artist(ctx, artistID)
	if err != nil {
		return nil, err
	}
	r.record(parent, detail.Songs.Items)
	var out []Node
	if len(detail.Songs.Items) > 0 {
		out = append(out, artistFilterNode(artistID, ArtistFilterSongs))
	}
	if len(detail.Albums) > 0 {
		out = append(out, artistFilterNode(artistID, ArtistFilterAlbums))
	}
	if len(detail.Videos) > 0 {
		out = append(out, artistFilterNode(artistID, ArtistFilterVideos))
	}
	return out, nil
}

// artistSongs returns the artist's local songs, falling back to the remote
// artist page paged to the ceiling.
func (r *Resolver) artistSongs(ctx context.Context, artistID, scope string) ([]media.Song, error) {
	local, err := r.library.ArtistSongs(ctx, artistID)
	if err != nil {
		return nil, err
	}
	if len(local) > 0 {
		return local, nil
	}
	if r.catalog == nil {
		return nil, nil
	}
	detail, err := r.catalog.Artist(ctx, artistID)
	if err != nil {
		return nil, err
	}
	items, err := r.collect(ctx, detail.Songs)
	if err != nil {
		return nil, err
	}
	r.record(scope, items)
	return songsOfItems(items), nil
}

func (r *Resolver) artistVideos(ctx context.Context, artistID, scope string) ([]media.Song, error) {
	local, err := r.library.ArtistSongs(ctx, artistID)
	if err != nil {
		return nil, err
	}
	var videos []media.Song
	for _, s := range local {
		if s.Video {
			videos = append(videos, s)
		}
	}
	if len(videos) > 0 || len(local) > 0 || r.catalog == nil {
		return videos, nil
	}
	detail, err := r.catalog.Artist(ctx, artistID)
	if err != nil {
		return nil, err
	}
	r.seen.Add(scope, detail.Videos...)
	return detail.Videos, nil
}

func (r *Resolver) artistAlbums(ctx context.Context, artistID string) ([]media.Album, error) {
	local, err := r.library.ArtistAlbums(ctx, artistID)
	if err != nil {
		return nil, err
	}
	if len(local) > 0 || r.catalog == nil {
		return local, nil
	}
	detail, err := r.catalog.Artist(ctx, artistID)
	if err != nil {
		return nil, err
	}
	return detail.Albums, nil
}

func (r *Resolver) albumSongs(ctx context.Context, albumID, scope string) ([]media.Song, error) {
	local, err := r.library.AlbumSongs(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if len(local) > 0 || r.catalog == nil {
		return local, nil
	}
	detail, err := r.catalog.Album(ctx, albumID)
	if err != nil {
		return nil, err
	}
	r.seen.Add(scope, detail.Songs...)
	return detail.Songs, nil
}

func (r *Resolver) playlistSongs(ctx context.Context, playlistID, scope string) ([]media.Song, error) {
	local, err := r.library.PlaylistSongs(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if len(local) > 0 || r.catalog == nil {
		return local, nil
	}
	detail, err := r.catalog.Playlist(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	items, err := r.collect(ctx, detail.Songs)
	if err != nil {
		return nil, err
	}
	r.record(scope, items)
	return songsOfItems(items), nil
}
