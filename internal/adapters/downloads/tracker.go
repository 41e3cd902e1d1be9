package downloads

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/mikey-austin/mu_browse/internal/media"
)

var (
	bucketDownloads = []byte("downloads")
	bucketCache     = []byte("cache")
)

type downloadRecord struct {
	State     string    `json:"state"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type cacheRecord struct {
	Bytes    int64     `json:"bytes"`
	CachedAt time.Time `json:"cachedAt"`
}

// Tracker records per-song download state and player-cache presence. With no
// path it keeps everything in memory.
type Tracker struct {
	db *bolt.DB
	mu sync.RWMutex

	// hot-path reads, promoted on access
	mem map[string][]byte
}

// Open opens the tracker database at path, or a memory-only tracker when path
// is empty.
func Open(path string) (*Tracker, error) {
	if path == "" {
		return &Tracker{mem: make(map[string][]byte)}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketDownloads, bucketCache} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Tracker{db: db, mem: make(map[string][]byte)}, nil
}

// Close closes the database.
func (t *Tracker) Close() error {
	if t.db != nil {
		return t.db.Close()
	}
	return nil
}

// State returns the download state of a song; unknown songs are DownloadNone.
func (t *Tracker) State(ctx context.Context, songID string) (media.DownloadState, error) {
	if err := ctx.Err(); err != nil {
		return media.DownloadNone, err
	}
	var rec downloadRecord
	ok, err := t.get(bucketDownloads, songID, &rec)
	if err != nil || !ok {
		return media.DownloadNone, err
	}
	return media.ParseDownloadState(rec.State), nil
}

// Cached reports whether the player cache holds the song.
func (t *Tracker) Cached(ctx context.Context, songID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var rec cacheRecord
	return t.get(bucketCache, songID, &rec)
}

// SetState records a download state change. DownloadNone removes the record.
func (t *Tracker) SetState(ctx context.Context, songID string, state media.DownloadState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if state == media.DownloadNone {
		return t.delete(bucketDownloads, songID)
	}
	return t.set(bucketDownloads, songID, downloadRecord{State: state.String(), UpdatedAt: time.Now().UTC()})
}

// MarkCached records that the player cache holds size bytes of the song.
func (t *Tracker) MarkCached(ctx context.Context, songID string, size int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.set(bucketCache, songID, cacheRecord{Bytes: size, CachedAt: time.Now().UTC()})
}

// Evict removes the song from the player cache index.
func (t *Tracker) Evict(ctx context.Context, songID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.delete(bucketCache, songID)
}

// Songs lists the ids in the given download state, sorted.
func (t *Tracker) Songs(ctx context.Context, state media.DownloadState) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []string
	match := func(key string, data []byte) {
		var rec downloadRecord
		if json.Unmarshal(data, &rec) == nil && media.ParseDownloadState(rec.State) == state {
			out = append(out, key)
		}
	}
	if t.db == nil {
		prefix := string(bucketDownloads) + ":"
		t.mu.RLock()
		for k, v := range t.mem {
			if len(k) > len(prefix) && k[:len(prefix)] == prefix {
				match(k[len(prefix):], v)
			}
		}
		t.mu.RUnlock()
	} else {
		err := t.db.View(func(tx *bolt.Tx) error {
			return tx.Bucket(bucketDownloads).ForEach(func(k, v []byte) error {
				match(string(k), v)
				return nil
			})
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(out)
	return out, nil
}

func (t *Tracker) get(bucket []byte, key string, dest any) (bool, error) {
	memKey := string(bucket) + ":" + key

	t.mu.RLock()
	data, ok := t.mem[memKey]
	t.mu.RUnlock()
	if ok {
		return true, json.Unmarshal(data, dest)
	}
	if t.db == nil {
		return false, nil
	}

	err := t.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucket).Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil || data == nil {
		return false, err
	}

	t.mu.Lock()
	t.mem[memKey] = data
	t.mu.Unlock()
	return true, json.Unmarshal(data, dest)
}

func (t *Tracker) set(bucket []byte, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.mem[string(bucket)+":"+key] = data
	t.mu.Unlock()

	if t.db == nil {
		return nil
	}
	return t.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

func (t *Tracker) delete(bucket []byte, key string) error {
	t.mu.Lock()
	delete(t.mem, string(bucket)+":"+key)
	t.mu.Unlock()

	if t.db == nil {
		return nil
	}
	return t.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Delete([]byte(key))
	})
}
