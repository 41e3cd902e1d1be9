package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mikey-austin/mu_browse/internal/media"
)

func newTestPodcasts(t *testing.T, feeds map[string]string, calls *int32) *Podcasts {
	t.Helper()
	urls := make([]string, 0, len(feeds))
	for u := range feeds {
		urls = append(urls, u)
	}
	p, err := NewPodcasts(zap.NewNop(), PodcastConfig{
		Feeds:           urls,
		CacheDir:        t.TempDir(),
		RefreshInterval: 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("new podcasts: %v", err)
	}
	p.http = &http.Client{Transport: testTransport(func(r *http.Request) (*http.Response, error) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		body, ok := feeds[r.URL.String()]
		if !ok {
			return &http.Response{StatusCode: 404, Status: "404 Not Found", Body: io.NopCloser(strings.NewReader(""))}, nil
		}
		return feedResponse(body), nil
	})}
	return p
}

func TestPodcastSearchAndPlaylist(t *testing.T) {
	feedURL := "http://example.test/feed.xml"
	var calls int32
	p := newTestPodcasts(t, map[string]string{feedURL: testFeed}, &calls)
	ctx := context.Background()

	page, err := p.Search(ctx, "sample", media.FilterPodcasts)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Kind != media.KindPodcast {
		t.Fatalf("unexpected results %+v", page.Items)
	}
	pod := page.Items[0].Playlist
	if pod.Name != "Sample Podcast" || pod.Author != "Sample Host" || pod.SongCount != 2 {
		t.Fatalf("unexpected podcast %+v", pod)
	}
	if !strings.HasPrefix(pod.ID, FeedPrefix) {
		t.Fatalf("podcast id %s lacks prefix", pod.ID)
	}

	detail, err := p.Playlist(ctx, pod.ID)
	if err != nil {
		t.Fatalf("playlist: %v", err)
	}
	if len(detail.Songs.Items) != 2 {
		t.Fatalf("expected 2 episodes, got %d", len(detail.Songs.Items))
	}
	newest := detail.Songs.Items[0].Song
	if newest.Title != "Episode Two" || !newest.Episode || newest.StreamURL != "https://example.com/audio2.mp3" {
		t.Fatalf("unexpected newest episode %+v", newest)
	}
	oldest := detail.Songs.Items[1].Song
	if oldest.DurationMS != 3723000 || oldest.ThumbnailURL != "https://example.com/ep1.png" {
		t.Fatalf("unexpected oldest episode %+v", oldest)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected 1 fetch, got %d", calls)
	}

	cachePath := filepath.Join(p.config.CacheDir, "podcast_"+pod.ID+".json")
	if _, err := os.Stat(cachePath); err != nil {
		t.Fatalf("cache file missing: %v", err)
	}
}

func TestPodcastSearchByAuthor(t *testing.T) {
	p := newTestPodcasts(t, map[string]string{"http://example.test/feed.xml": testFeed}, nil)
	page, err := p.Search(context.Background(), "host", media.FilterPodcasts)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("expected author match, got %d", len(page.Items))
	}
	page, _ = p.Search(context.Background(), "zzz", media.FilterPodcasts)
	if len(page.Items) != 0 {
		t.Fatalf("expected no match, got %d", len(page.Items))
	}
}

func TestPodcastsIgnoreOtherFilters(t *testing.T) {
	p := newTestPodcasts(t, map[string]string{"http://example.test/feed.xml": testFeed}, nil)
	page, err := p.Search(context.Background(), "sample", media.FilterSongs)
	if err != nil || len(page.Items) != 0 {
		t.Fatalf("page %+v err %v", page, err)
	}
	if _, err := p.Playlist(context.Background(), "feed_unknown"); !errors.Is(err, media.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPodcastCacheSurvivesFetchFailure(t *testing.T) {
	feedURL := "http://example.test/feed.xml"
	p := newTestPodcasts(t, map[string]string{feedURL: testFeed}, nil)
	ctx := context.Background()
	if _, err := p.loadFeed(ctx, feedURL); err != nil {
		t.Fatalf("load: %v", err)
	}

	stale, err := NewPodcasts(zap.NewNop(), PodcastConfig{
		Feeds:           []string{feedURL},
		CacheDir:        p.config.CacheDir,
		RefreshInterval: time.Nanosecond,
	})
	if err != nil {
		t.Fatalf("new podcasts: %v", err)
	}
	stale.http = &http.Client{Transport: testTransport(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("offline")
	})}
	feed, err := stale.loadFeed(ctx, feedURL)
	if err != nil {
		t.Fatalf("expected cached feed, got %v", err)
	}
	if len(feed.Episodes) != 2 {
		t.Fatalf("expected cached episodes")
	}
}

type testTransport func(*http.Request) (*http.Response, error)

func (t testTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	return t(r)
}

func feedResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: 200,
		Status:     "200 OK",
		Header:     http.Header{"Content-Type": []string{"application/rss+xml"}},
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
<channel>
  <title>Sample Podcast</title>
  <description>Sample podcast feed</description>
  <itunes:author>Sample Host</itunes:author>
  <image>
    <url>https://example.com/podcast.png</url>
  </image>
  <item>
    <title>Episode One</title>
    <guid>ep-1</guid>
    <pubDate>Mon, 01 Jan 2024 10:00:00 GMT</pubDate>
    <enclosure url="https://example.com/audio1.mp3" length="123" type="audio/mpeg"/>
    <itunes:duration>01:02:03</itunes:duration>
    <itunes:image href="https://example.com/ep1.png"/>
  </item>
  <item>
    <title>Episode Two</title>
    <guid>ep-2</guid>
    <pubDate>Tue, 02 Jan 2024 10:00:00 GMT</pubDate>
    <enclosure url="https://example.com/audio2.mp3" length="456" type="audio/mpeg"/>
  </item>
</channel>
</rss>`
