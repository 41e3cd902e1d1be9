package browse

import (
	"slices"
	"sync"

	"github.com/mikey-austin/mu_browse/internal/media"
)

// Accumulator records the songs seen per browse scope so queues can be built
// without querying again. It only grows.
type Accumulator struct {
	mu     sync.RWMutex
	scopes map[string]*scope
	byID   map[string]media.Song
}

type scope struct {
	songs []media.Song
	seen  map[string]struct{}
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		scopes: make(map[string]*scope),
		byID:   make(map[string]media.Song),
	}
}

// Add appends songs not yet seen in key and returns how many were new.
func (a *Accumulator) Add(key string, songs ...media.Song) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.scopes[key]
	if !ok {
		s = &scope{seen: make(map[string]struct{})}
		a.scopes[key] = s
	}
	added := 0
	for _, song := range songs {
		if song.ID == "" {
			continue
		}
		a.byID[song.ID] = song
		if _, dup := s.seen[song.ID]; dup {
			continue
		}
		s.seen[song.ID] = struct{}{}
		s.songs = append(s.songs, song)
		added++
	}
	return added
}

// Songs returns the songs recorded under key in first-seen order.
func (a *Accumulator) Songs(key string) []media.Song {
	a.mu.RLock()
	defer a.mu.RUnlock()
	s, ok := a.scopes[key]
	if !ok {
		return nil
	}
	return slices.Clone(s.songs)
}

// Lookup finds a song recorded under any scope. Remote results are only
// known here, so item lookups fall back to it.
func (a *Accumulator) Lookup(id string) (media.Song, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	song, ok := a.byID[id]
	return song, ok
}
