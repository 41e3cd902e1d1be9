package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/mikey-austin/mu_browse/internal/media"
)

type stubSource struct {
	name  string
	calls []string
}

func (s *stubSource) Search(_ context.Context, q string, f media.Filter) (media.Page[media.Item], error) {
	s.calls = append(s.calls, "search:"+string(f))
	return media.Page[media.Item]{}, nil
}

func (s *stubSource) Continue(context.Context, string) (media.Page[media.Item], error) {
	s.calls = append(s.calls, "continue")
	return media.Page[media.Item]{}, nil
}

func (s *stubSource) Artist(context.Context, string) (media.ArtistDetail, error) {
	s.calls = append(s.calls, "artist")
	return media.ArtistDetail{}, nil
}

func (s *stubSource) Album(context.Context, string) (media.AlbumDetail, error) {
	s.calls = append(s.calls, "album")
	return media.AlbumDetail{}, nil
}

func (s *stubSource) Playlist(_ context.Context, id string) (media.PlaylistDetail, error) {
	s.calls = append(s.calls, "playlist:"+id)
	return media.PlaylistDetail{}, nil
}

func TestRouterSplitsPodcasts(t *testing.T) {
	remote, pods := &stubSource{name: "remote"}, &stubSource{name: "pods"}
	r := Router{Remote: remote, Podcasts: pods}
	ctx := context.Background()

	r.Search(ctx, "x", media.FilterPodcasts)
	r.Search(ctx, "x", media.FilterSongs)
	r.Playlist(ctx, FeedPrefix+"abc")
	r.Playlist(ctx, "PL1")
	r.Continue(ctx, "c")

	if len(pods.calls) != 2 || pods.calls[0] != "search:podcasts" || pods.calls[1] != "playlist:feed_abc" {
		t.Fatalf("podcast calls %v", pods.calls)
	}
	if len(remote.calls) != 3 || remote.calls[1] != "playlist:PL1" {
		t.Fatalf("remote calls %v", remote.calls)
	}
}

func TestRouterWithoutRemote(t *testing.T) {
	r := Router{Podcasts: &stubSource{}}
	if _, err := r.Search(context.Background(), "x", media.FilterSongs); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
	if _, err := r.Artist(context.Background(), "a"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}
