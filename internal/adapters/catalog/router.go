package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/mikey-austin/mu_browse/internal/media"
)

// ErrUnavailable is returned when no backend serves a request.
var ErrUnavailable = errors.New("catalog unavailable")

// Source is one remote catalog backend.
type Source interface {
	Search(ctx context.Context, query string, filter media.Filter) (media.Page[media.Item], error)
	Continue(ctx context.Context, cursor string) (media.Page[media.Item], error)
	Artist(ctx context.Context, id string) (media.ArtistDetail, error)
	Album(ctx context.Context, id string) (media.AlbumDetail, error)
	Playlist(ctx context.Context, id string) (media.PlaylistDetail, error)
}

// Router sends podcast searches and feed ids to Podcasts and everything
// else to Remote. Either may be nil.
type Router struct {
	Remote   Source
	Podcasts Source
}

func (r Router) Search(ctx context.Context, query string, filter media.Filter) (media.Page[media.Item], error) {
	if filter == media.FilterPodcasts && r.Podcasts != nil {
		return r.Podcasts.Search(ctx, query, filter)
	}
	if r.Remote == nil {
		return media.Page[media.Item]{}, ErrUnavailable
	}
	return r.Remote.Search(ctx, query, filter)
}

func (r Router) Continue(ctx context.Context, cursor string) (media.Page[media.Item], error) {
	if r.Remote == nil {
		return media.Page[media.Item]{}, ErrUnavailable
	}
	return r.Remote.Continue(ctx, cursor)
}

func (r Router) Artist(ctx context.Context, id string) (media.ArtistDetail, error) {
	if r.Remote == nil {
		return media.ArtistDetail{}, ErrUnavailable
	}
	return r.Remote.Artist(ctx, id)
}

func (r Router) Album(ctx context.Context, id string) (media.AlbumDetail, error) {
	if r.Remote == nil {
		return media.AlbumDetail{}, ErrUnavailable
	}
	return r.Remote.Album(ctx, id)
}

func (r Router) Playlist(ctx context.Context, id string) (media.PlaylistDetail, error) {
	if strings.HasPrefix(id, FeedPrefix) && r.Podcasts != nil {
		return r.Podcasts.Playlist(ctx, id)
	}
	if r.Remote == nil {
		return media.PlaylistDetail{}, ErrUnavailable
	}
	return r.Remote.Playlist(ctx, id)
}
