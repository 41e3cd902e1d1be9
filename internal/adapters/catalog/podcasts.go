package catalog

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/gofeed"
	sfuzzy "github.com/sahilm/fuzzy"
	"go.uber.org/zap"

	"github.com/mikey-austin/mu_browse/internal/media"
)

// FeedPrefix marks podcast ids served from RSS feeds.
const FeedPrefix = "feed_"

// PodcastConfig configures the feed-backed podcast catalog.
type PodcastConfig struct {
	Feeds           []string
	RefreshInterval time.Duration
	CacheDir        string
	Timeout         time.Duration
}

// Podcasts serves podcast search and detail from a fixed set of RSS feeds.
type Podcasts struct {
	log     *zap.Logger
	http    *http.Client
	config  PodcastConfig
	cacheMu sync.Mutex
	feeds   map[string]*cachedFeed
}

type cachedFeed struct {
	FeedURL   string          `json:"feedUrl"`
	FeedID    string          `json:"feedId"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	ImageURL  string          `json:"imageUrl"`
	FetchedAt int64           `json:"fetchedAt"`
	Episodes  []cachedEpisode `json:"episodes"`
}

type cachedEpisode struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Published  int64  `json:"published"`
	DurationMS int64  `json:"durationMs"`
	AudioURL   string `json:"audioUrl"`
	ImageURL   string `json:"imageUrl"`
	Author     string `json:"author"`
}

// NewPodcasts prepares the feed cache directory.
func NewPodcasts(log *zap.Logger, cfg PodcastConfig) (*Podcasts, error) {
	if len(cfg.Feeds) == 0 {
		return nil, errors.New("feeds required")
	}
	if cfg.RefreshInterval == 0 {
		cfg.RefreshInterval = 24 * time.Hour
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if strings.TrimSpace(cfg.CacheDir) == "" {
		cfg.CacheDir = filepath.Join(xdg.CacheHome, "mu", "podcasts")
	}
	if err := os.MkdirAll(cfg.CacheDir, 0o750); err != nil {
		return nil, err
	}
	return &Podcasts{
		log:    log,
		http:   &http.Client{Timeout: cfg.Timeout},
		config: cfg,
		feeds:  make(map[string]*cachedFeed),
	}, nil
}

// feedIndex adapts loaded feeds for fuzzy ranking.
type feedIndex []*cachedFeed

func (f feedIndex) String(i int) string { return strings.ToLower(f[i].Title) }
func (f feedIndex) Len() int            { return len(f) }

// Search ranks configured feeds against query. Title matches come first by
// score, then feeds whose author matches.
func (p *Podcasts) Search(ctx context.Context, query string, filter media.Filter) (media.Page[media.Item], error) {
	if filter != media.FilterPodcasts {
		return media.Page[media.Item]{}, nil
	}
	feeds := p.loadAll(ctx)
	query = strings.ToLower(strings.TrimSpace(query))

	var ranked []*cachedFeed
	seen := make(map[string]struct{})
	for _, match := range sfuzzy.FindFrom(query, feedIndex(feeds)) {
		feed := feeds[match.Index]
		seen[feed.FeedID] = struct{}{}
		ranked = append(ranked, feed)
	}
	for _, feed := range feeds {
		if _, ok := seen[feed.FeedID]; ok {
			continue
		}
		if feed.Author != "" && lfuzzy.MatchNormalizedFold(query, feed.Author) {
			ranked = append(ranked, feed)
		}
	}

	items := make([]media.Item, 0, len(ranked))
	for _, feed := range ranked {
		items = append(items, media.PlaylistItem(feed.playlist()))
	}
	return media.Page[media.Item]{Items: items}, nil
}

// Continue is never called; feed searches return a single page.
func (p *Podcasts) Continue(context.Context, string) (media.Page[media.Item], error) {
	return media.Page[media.Item]{}, nil
}

// Artist is not served by feeds.
func (p *Podcasts) Artist(_ context.Context, id string) (media.ArtistDetail, error) {
	return media.ArtistDetail{}, fmt.Errorf("artist %s: %w", id, media.ErrNotFound)
}

// Album is not served by feeds.
func (p *Podcasts) Album(_ context.Context, id string) (media.AlbumDetail, error) {
	return media.AlbumDetail{}, fmt.Errorf("album %s: %w", id, media.ErrNotFound)
}

// Playlist returns a feed's episodes, newest first.
func (p *Podcasts) Playlist(ctx context.Context, id string) (media.PlaylistDetail, error) {
	for _, feedURL := range p.config.Feeds {
		if hashID(feedURL) != id {
			continue
		}
		feed, err := p.loadFeed(ctx, feedURL)
		if err != nil {
			return media.PlaylistDetail{}, err
		}
		items := make([]media.Item, 0, len(feed.Episodes))
		for _, e := range feed.Episodes {
			items = append(items, media.SongItem(e.song(feed)))
		}
		return media.PlaylistDetail{Playlist: feed.playlist(), Songs: media.Page[media.Item]{Items: items}}, nil
	}
	return media.PlaylistDetail{}, fmt.Errorf("podcast %s: %w", id, media.ErrNotFound)
}

func (f *cachedFeed) playlist() media.Playlist {
	return media.Playlist{
		ID:           f.FeedID,
		Name:         f.Title,
		Author:       f.Author,
		SongCount:    len(f.Episodes),
		ThumbnailURL: f.ImageURL,
		Podcast:      true,
	}
}

func (e cachedEpisode) song(feed *cachedFeed) media.Song {
	return media.Song{
		ID:           e.ID,
		Title:        e.Title,
		ArtistName:   e.Author,
		AlbumID:      feed.FeedID,
		AlbumTitle:   feed.Title,
		DurationMS:   e.DurationMS,
		ThumbnailURL: e.ImageURL,
		StreamURL:    e.AudioURL,
		Episode:      true,
	}
}

func (p *Podcasts) loadAll(ctx context.Context) []*cachedFeed {
	feeds := make([]*cachedFeed, 0, len(p.config.Feeds))
	for _, feedURL := range p.config.Feeds {
		feed, err := p.loadFeed(ctx, feedURL)
		if err != nil {
			p.log.Warn("load feed", zap.String("feed", feedURL), zap.Error(err))
			continue
		}
		feeds = append(feeds, feed)
	}
	return feeds
}

func (p *Podcasts) loadFeed(ctx context.Context, feedURL string) (*cachedFeed, error) {
	feedID := hashID(feedURL)

	p.cacheMu.Lock()
	if feed, ok := p.feeds[feedID]; ok && !p.isStale(feed.FetchedAt) {
		p.cacheMu.Unlock()
		return feed, nil
	}
	p.cacheMu.Unlock()

	cachePath := filepath.Join(p.config.CacheDir, fmt.Sprintf("podcast_%s.json", feedID))
	cached, err := readCache(cachePath)
	if err != nil {
		p.log.Warn("read cache", zap.String("path", cachePath), zap.Error(err))
	}
	if cached != nil && !p.isStale(cached.FetchedAt) {
		p.remember(cached)
		return cached, nil
	}

	fetched, err := p.fetchFeed(ctx, feedURL)
	if err != nil {
		if cached != nil {
			p.remember(cached)
			return cached, nil
		}
		return nil, err
	}
	if err := writeCache(cachePath, fetched); err != nil {
		p.log.Warn("write cache", zap.Error(err))
	}
	p.remember(fetched)
	return fetched, nil
}

func (p *Podcasts) remember(feed *cachedFeed) {
	p.cacheMu.Lock()
	p.feeds[feed.FeedID] = feed
	p.cacheMu.Unlock()
}

func (p *Podcasts) isStale(fetchedAt int64) bool {
	if fetchedAt == 0 {
		return true
	}
	return time.Since(time.Unix(fetchedAt, 0)) > p.config.RefreshInterval
}

func (p *Podcasts) fetchFeed(ctx context.Context, feedURL string) (*cachedFeed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "mu_browse/1.0")

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("feed fetch failed: %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return nil, err
	}

	feedID := hashID(feedURL)
	title := strings.TrimSpace(feed.Title)
	if title == "" {
		title = feedURL
	}
	author := bestFeedAuthor(feed)
	image := bestFeedImage(feed)

	episodes := make([]cachedEpisode, 0, len(feed.Items))
	for _, item := range feed.Items {
		episode := buildEpisode(feedID, feed, item, image, author)
		if episode.ID == "" {
			continue
		}
		episodes = append(episodes, episode)
	}
	sort.SliceStable(episodes, func(i, j int) bool {
		return episodes[i].Published > episodes[j].Published
	})

	return &cachedFeed{
		FeedURL:   feedURL,
		FeedID:    feedID,
		Title:     title,
		Author:    author,
		ImageURL:  image,
		FetchedAt: time.Now().Unix(),
		Episodes:  episodes,
	}, nil
}

func buildEpisode(feedID string, feed *gofeed.Feed, item *gofeed.Item, fallbackImage string, fallbackAuthor string) cachedEpisode {
	if item == nil {
		return cachedEpisode{}
	}
	audioURL := pickEnclosure(item)
	key := strings.TrimSpace(item.GUID)
	if key == "" {
		key = audioURL
	}
	if key == "" {
		key = strings.TrimSpace(item.Link)
	}
	if key == "" {
		key = strings.TrimSpace(item.Title)
	}
	if key == "" {
		return cachedEpisode{}
	}

	image := bestItemImage(item)
	if image == "" {
		image = fallbackImage
	}
	author := bestItemAuthor(item, feed)
	if author == "" {
		author = fallbackAuthor
	}
	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = key
	}

	var published int64
	if item.PublishedParsed != nil {
		published = item.PublishedParsed.Unix()
	}
	return cachedEpisode{
		ID:         "episode_" + hashID(feedID+":"+key)[len(FeedPrefix):],
		Title:      title,
		Published:  published,
		DurationMS: parseDurationMS(item),
		AudioURL:   audioURL,
		ImageURL:   image,
		Author:     author,
	}
}

func pickEnclosure(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc != nil && enc.URL != "" {
			return enc.URL
		}
	}
	return ""
}

func bestFeedAuthor(feed *gofeed.Feed) string {
	if feed == nil {
		return ""
	}
	if feed.Author != nil && feed.Author.Name != "" {
		return strings.TrimSpace(feed.Author.Name)
	}
	if feed.ITunesExt != nil && feed.ITunesExt.Author != "" {
		return strings.TrimSpace(feed.ITunesExt.Author)
	}
	return ""
}

func bestItemAuthor(item *gofeed.Item, feed *gofeed.Feed) string {
	if item.Author != nil && item.Author.Name != "" {
		return strings.TrimSpace(item.Author.Name)
	}
	if item.ITunesExt != nil && item.ITunesExt.Author != "" {
		return strings.TrimSpace(item.ITunesExt.Author)
	}
	return bestFeedAuthor(feed)
}

func bestFeedImage(feed *gofeed.Feed) string {
	if feed.Image != nil && feed.Image.URL != "" {
		return feed.Image.URL
	}
	if feed.ITunesExt != nil && feed.ITunesExt.Image != "" {
		return feed.ITunesExt.Image
	}
	return ""
}

func bestItemImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	if item.ITunesExt != nil && item.ITunesExt.Image != "" {
		return item.ITunesExt.Image
	}
	return ""
}

// parseDurationMS accepts itunes:duration as seconds or [h:]mm:ss.
func parseDurationMS(item *gofeed.Item) int64 {
	if item.ITunesExt == nil {
		return 0
	}
	raw := strings.TrimSpace(item.ITunesExt.Duration)
	if raw == "" {
		return 0
	}
	total := 0
	for _, part := range strings.Split(raw, ":") {
		n := 0
		if _, err := fmt.Sscanf(part, "%d", &n); err != nil {
			return 0
		}
		total = total*60 + n
	}
	return int64(total) * 1000
}

func hashID(input string) string {
	sum := sha1.Sum([]byte(input))
	return fmt.Sprintf("%s%x", FeedPrefix, sum[:])
}

func readCache(path string) (*cachedFeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var cached cachedFeed
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}
	return &cached, nil
}

func writeCache(path string, cached *cachedFeed) error {
	data, err := json.MarshalIndent(cached, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o640); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
