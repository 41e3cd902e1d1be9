package browse

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/mikey-austin/mu_browse/internal/media"
)

// Queue is a playable sequence with the position playback starts at.
type Queue struct {
	Items           []Node
	StartIndex      int
	StartPositionMS int64
}

// Empty reports whether the queue holds no items.
func (q Queue) Empty() bool { return len(q.Items) == 0 }

// QueueForShuffle rebuilds the full set of the token's folder, bypassing the
// cache, and returns it shuffled with start index 0.
func (r *Resolver) QueueForShuffle(ctx context.Context, token string) Queue {
	folder, ok := FolderOf(Parse(token).Namespace)
	if !ok {
		return Queue{}
	}
	ctx, cancel := r.bind(ctx)
	defer cancel()
	q, err := r.shuffleQueue(ctx, folder)
	if err != nil {
		r.logFailure("shuffle queue", token, err)
		return Queue{}
	}
	return q
}

func (r *Resolver) shuffleQueue(ctx context.Context, folder Namespace) (Queue, error) {
	songs, err := r.sourceFor(folder).songs(ctx, ID{Raw: folder.String(), Namespace: folder})
	if err != nil {
		return Queue{}, err
	}
	return Queue{Items: queueNodes(folder.String(), r.shuffled(songs))}, nil
}

// QueueForItem rebuilds the parent node's full set, bypassing the cache, and
// starts at the requested entity. A missing entity starts at 0. When the
// parent yields nothing the item is looked up on its own.
func (r *Resolver) QueueForItem(ctx context.Context, raw string) Queue {
	id := Parse(raw)
	parent := id.Parent()
	entityID := id.Last()

	ctx, cancel := r.bind(ctx)
	defer cancel()

	var songs []media.Song
	if parent.Raw != "" {
		var err error
		songs, err = r.sourceFor(parent.Namespace).songs(ctx, parent)
		if err != nil {
			r.logFailure("item queue", raw, err)
			songs = nil
		}
	}
	if len(songs) == 0 {
		node, err := r.Item(ctx, raw)
		if err != nil {
			return Queue{}
		}
		return Queue{Items: []Node{node}}
	}
	start := 0
	for i, s := range songs {
		if s.ID == entityID {
			start = i
			break
		}
	}
	return Queue{Items: queueNodes(parent.Raw, songs), StartIndex: start}
}

// SetQueue resolves the items a client asked to play. A single shuffle token
// or item expands to its node's queue; several items are resolved one by one.
// The result is persisted when queue persistence is enabled.
func (r *Resolver) SetQueue(ctx context.Context, items []Node, startIndex int, startPositionMS int64) Queue {
	var q Queue
	switch len(items) {
	case 0:
		return Queue{}
	case 1:
		raw := items[0].ID
		if Parse(raw).Namespace.Kind() == KindShuffle {
			q = r.QueueForShuffle(ctx, raw)
		} else {
			q = r.QueueForItem(ctx, raw)
		}
		if q.Empty() {
			q = Queue{Items: items}
		}
	default:
		if startIndex < 0 || startIndex >= len(items) {
			startIndex = 0
		}
		q = Queue{Items: r.AddItems(ctx, items), StartIndex: startIndex}
	}
	q.StartPositionMS = startPositionMS
	r.persist(ctx, q)
	return q
}

// AddItems resolves bare identifiers through the local store. Items not found
// locally are returned unchanged.
func (r *Resolver) AddItems(ctx context.Context, items []Node) []Node {
	out := make([]Node, 0, len(items))
	for _, item := range items {
		node, err := r.Item(ctx, item.ID)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				r.logFailure("add item", item.ID, err)
			}
			out = append(out, item)
			continue
		}
		out = append(out, node)
	}
	return out
}

// Resume restores the persisted queue at its resume point. Disabled
// persistence or an empty store yields an empty queue.
func (r *Resolver) Resume(ctx context.Context) Queue {
	if !r.config.PersistQueue || r.queue == nil {
		return Queue{}
	}
	ctx, cancel := r.bind(ctx)
	defer cancel()
	saved, err := r.queue.LoadQueue(ctx)
	if err != nil {
		if !errors.Is(err, media.ErrNotFound) {
			r.logFailure("load queue", "", err)
		}
		return Queue{}
	}
	q := Queue{Items: make([]Node, 0, len(saved.Entries)), StartPositionMS: saved.PositionMS}
	resumeAt := -1
	for i, e := range saved.Entries {
		n := songNode(Parse(e.NodeID).Parent().Raw, e.Song)
		if e.NodeID != "" {
			n.ID = e.NodeID
		}
		q.Items = append(q.Items, n)
		if e.ResumePoint && resumeAt < 0 {
			resumeAt = i
		}
	}
	if resumeAt > 0 {
		q.StartIndex = resumeAt
	}
	return q
}

func (r *Resolver) persist(ctx context.Context, q Queue) {
	if !r.config.PersistQueue || r.queue == nil || q.Empty() {
		return
	}
	saved := media.SavedQueue{
		Entries:    make([]media.QueueEntry, 0, len(q.Items)),
		PositionMS: q.StartPositionMS,
	}
	for i, n := range q.Items {
		song := media.Song{ID: n.EntityID(), Title: n.Title}
		if n.Song != nil {
			song = *n.Song
		}
		saved.Entries = append(saved.Entries, media.QueueEntry{
			NodeID:      n.ID,
			Song:        song,
			ResumePoint: i == q.StartIndex,
		})
	}
	if err := r.queue.SaveQueue(ctx, saved); err != nil {
		r.logFailure("save queue", "", err)
	}
}

func (r *Resolver) logFailure(op, id string, err error) {
	if r.ctx.Err() != nil {
		return
	}
	r.log.Warn(op, zap.String("id", id), zap.Error(err))
}

func queueNodes(parent string, songs []media.Song) []Node {
	out := make([]Node, 0, len(songs))
	for _, s := range songs {
		out = append(out, songNode(parent, s))
	}
	return out
}
