package browse

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/mikey-austin/mu_browse/internal/media"
)

// DefaultTopSongsLimit bounds the most-played folder.
const DefaultTopSongsLimit = 100

// Config tunes a Resolver.
type Config struct {
	SearchLimit   int
	TopSongsLimit int
	PersistQueue  bool
}

// Deps are the collaborators of a Resolver. Catalog, Downloads and Queue may
// be nil; the namespaces that need them then resolve to empty lists.
type Deps struct {
	Library   Library
	Catalog   Catalog
	Downloads Downloads
	Queue     QueueStore
	Hooks     Hooks
}

// Resolver serves one browse session. All work is bound to the context it was
// created with; Close cancels it.
type Resolver struct {
	log       *zap.Logger
	library   Library
	catalog   Catalog
	downloads Downloads
	queue     QueueStore
	commands  Dispatcher
	config    Config

	cache *ResultCache
	seen  *Accumulator
	group singleflight.Group

	ctx    context.Context
	cancel context.CancelFunc

	shuffleMu sync.Mutex
	shuffle   func([]media.Song)
}

// New builds a resolver for a session that lives as long as ctx.
func New(ctx context.Context, log *zap.Logger, deps Deps, cfg Config) (*Resolver, error) {
	if deps.Library == nil {
		return nil, errors.New("library required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = DefaultSearchLimit
	}
	if cfg.TopSongsLimit <= 0 {
		cfg.TopSongsLimit = DefaultTopSongsLimit
	}
	sessionCtx, cancel := context.WithCancel(ctx)
	return &Resolver{
		log:       log,
		library:   deps.Library,
		catalog:   deps.Catalog,
		downloads: deps.Downloads,
		queue:     deps.Queue,
		commands:  NewDispatcher(deps.Hooks),
		config:    cfg,
		cache:     NewResultCache(),
		seen:      NewAccumulator(),
		ctx:       sessionCtx,
		cancel:    cancel,
		shuffle: func(songs []media.Song) {
			rand.Shuffle(len(songs), func(i, j int) { songs[i], songs[j] = songs[j], songs[i] })
		},
	}, nil
}

// Close cancels in-flight work and stops cache writes.
func (r *Resolver) Close() {
	r.cache.Close()
	r.cancel()
}

// Done is closed once the resolver is closed or its parent context ends.
func (r *Resolver) Done() <-chan struct{} {
	return r.ctx.Done()
}

// Root returns the root node.
func (r *Resolver) Root() Node {
	return rootNode()
}

// Children resolves the child list of an identifier. Failures are logged and
// yield an empty list.
func (r *Resolver) Children(ctx context.Context, raw string) []Node {
	if nodes, ok := r.cache.Get(raw); ok {
		return nodes
	}
	ch := r.group.DoChan(raw, func() (any, error) {
		return r.resolve(Parse(raw)), nil
	})
	select {
	case <-ctx.Done():
		return []Node{}
	case res := <-ch:
		nodes, _ := res.Val.([]Node)
		return slices.Clone(nodes)
	}
}

func (r *Resolver) resolve(id ID) []Node {
	src := r.sourceFor(id.Namespace)
	nodes, err := src.children(r.ctx, id)
	if err != nil {
		r.logFailure("resolve children", id.Raw, err)
		return []Node{}
	}
	if nodes == nil {
		nodes = []Node{}
	}
	if src.cacheable() && r.ctx.Err() == nil {
		r.cache.Put(id.Raw, nodes)
	}
	return nodes
}

// Item looks up the trailing entity of an identifier in the local store, or
// among songs seen in remote results, and addresses it under the identifier's
// parent path.
func (r *Resolver) Item(ctx context.Context, raw string) (Node, error) {
	id := Parse(raw)
	entityID := id.Last()
	if entityID == "" {
		return Node{}, ErrNotFound
	}
	ctx, cancel := r.bind(ctx)
	defer cancel()
	song, err := r.library.Song(ctx, entityID)
	if err != nil {
		if !errors.Is(err, media.ErrNotFound) {
			return Node{}, fmt.Errorf("lookup %s: %w", entityID, err)
		}
		seen, ok := r.seen.Lookup(entityID)
		if !ok {
			return Node{}, ErrNotFound
		}
		song = seen
	}
	return songNode(id.Parent().Raw, song), nil
}

// Search starts a new free-text search. Every cached list is dropped since
// search identifiers depend on the query.
func (r *Resolver) Search(query string) {
	r.cache.Clear()
	r.log.Debug("search started", zap.String("query", query))
}

// SearchResult returns the static category menu for a query.
func (r *Resolver) SearchResult(query string) []Node {
	out := make([]Node, 0, len(SearchNamespaces()))
	for _, ns := range SearchNamespaces() {
		out = append(out, searchFolderNode(ns, query))
	}
	return out
}

// Command runs the hook registered for name.
func (r *Resolver) Command(name string) bool {
	return r.commands.Dispatch(name)
}

// bind derives a context cancelled by either the caller or session teardown.
func (r *Resolver) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(r.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func (r *Resolver) shuffled(songs []media.Song) []media.Song {
	out := slices.Clone(songs)
	r.shuffleMu.Lock()
	r.shuffle(out)
	r.shuffleMu.Unlock()
	return out
}

// searchItems runs the pagination engine for a search namespace and records
// song-like results under the search scope.
func (r *Resolver) searchItems(ctx context.Context, ns Namespace, query string) ([]media.Item, error) {
	if r.catalog == nil {
		return nil, errNoCatalog
	}
	filter := searchFilters[ns]
	items, err := Pager[media.Item]{
		Limit: r.config.SearchLimit,
		Key:   itemKey,
		First: func(ctx context.Context) (media.Page[media.Item], error) {
			return r.catalog.Search(ctx, query, filter)
		},
		Next: r.catalog.Continue,
	}.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("search %s %q: %w", filter, query, err)
	}
	r.record(Join(ns, query), items)
	return items, nil
}

// collect pages through a remote song list that started with first.
func (r *Resolver) collect(ctx context.Context, first media.Page[media.Item]) ([]media.Item, error) {
	if r.catalog == nil {
		return first.Items, nil
	}
	return Pager[media.Item]{
		Limit: r.config.SearchLimit,
		Key:   itemKey,
		First: func(context.Context) (media.Page[media.Item], error) { return first, nil },
		Next:  r.catalog.Continue,
	}.Collect(ctx)
}

func (r *Resolver) record(scope string, items []media.Item) {
	songs := make([]media.Song, 0, len(items))
	for _, item := range items {
		if item.SongLike() {
			songs = append(songs, *item.Song)
		}
	}
	if len(songs) == 0 {
		return
	}
	added := r.seen.Add(scope, songs...)
	r.log.Debug("recorded songs", zap.String("scope", scope), zap.Int("added", added))
}

var searchFilters = map[Namespace]media.Filter{
	NamespaceSearchSongs:     media.FilterSongs,
	NamespaceSearchArtists:   media.FilterArtists,
	NamespaceSearchAlbums:    media.FilterAlbums,
	NamespaceSearchVideos:    media.FilterVideos,
	NamespaceSearchPlaylists: media.FilterPlaylists,
	NamespaceSearchFeatured:  media.FilterFeatured,
	NamespaceSearchPodcasts:  media.FilterPodcasts,
}
