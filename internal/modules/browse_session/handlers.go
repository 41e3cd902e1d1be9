package browsesession

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/mikey-austin/mu_browse/internal/browse"
	"github.com/mikey-austin/mu_browse/pkg/mu"
)

func (m *Module) dispatch(ctx context.Context, cmd mu.CommandEnvelope) mu.ReplyEnvelope {
	reply := mu.ReplyEnvelope{
		ID:   cmd.ID,
		Type: "ack",
		OK:   true,
		TS:   time.Now().Unix(),
	}

	switch cmd.Type {
	case mu.CmdBrowseGetRoot:
		return withBody(reply, mu.BrowseItemReply{Item: toMediaItem(m.resolver.Root())})
	case mu.CmdBrowseGetChildren:
		return m.getChildren(ctx, cmd, reply)
	case mu.CmdBrowseGetItem:
		return m.getItem(ctx, cmd, reply)
	case mu.CmdBrowseSearch:
		return m.search(cmd, reply)
	case mu.CmdBrowseGetSearchResult:
		return m.getSearchResult(cmd, reply)
	case mu.CmdQueueSet:
		return m.queueSet(ctx, cmd, reply)
	case mu.CmdQueueAddItems:
		return m.queueAddItems(ctx, cmd, reply)
	case mu.CmdQueueResume:
		return withBody(reply, toQueueReply(m.resolver.Resume(ctx)))
	case mu.CmdSessionCommand:
		return m.sessionCommand(cmd, reply)
	default:
		return errorReply(cmd, mu.CodeInvalid, "unsupported command")
	}
}

func (m *Module) getChildren(ctx context.Context, cmd mu.CommandEnvelope, reply mu.ReplyEnvelope) mu.ReplyEnvelope {
	var body mu.BrowseChildrenBody
	if err := json.Unmarshal(cmd.Body, &body); err != nil {
		return errorReply(cmd, mu.CodeInvalid, "invalid body")
	}
	if strings.TrimSpace(body.ID) == "" {
		return errorReply(cmd, mu.CodeInvalid, "id required")
	}
	return withBody(reply, mu.BrowseItemsReply{Items: toMediaItems(m.resolver.Children(ctx, body.ID))})
}

func (m *Module) getItem(ctx context.Context, cmd mu.CommandEnvelope, reply mu.ReplyEnvelope) mu.ReplyEnvelope {
	var body mu.BrowseItemBody
	if err := json.Unmarshal(cmd.Body, &body); err != nil {
		return errorReply(cmd, mu.CodeInvalid, "invalid body")
	}
	if strings.TrimSpace(body.ID) == "" {
		return errorReply(cmd, mu.CodeInvalid, "id required")
	}
	node, err := m.resolver.Item(ctx, body.ID)
	if err != nil {
		if errors.Is(err, browse.ErrNotFound) {
			return errorReply(cmd, mu.CodeNotFound, err.Error())
		}
		return errorReply(cmd, mu.CodeInvalid, err.Error())
	}
	return withBody(reply, mu.BrowseItemReply{Item: toMediaItem(node)})
}

func (m *Module) search(cmd mu.CommandEnvelope, reply mu.ReplyEnvelope) mu.ReplyEnvelope {
	var body mu.BrowseSearchBody
	if err := json.Unmarshal(cmd.Body, &body); err != nil {
		return errorReply(cmd, mu.CodeInvalid, "invalid body")
	}
	m.resolver.Search(body.Query)
	m.publishEvent(mu.EvtSearchResultChanged, mu.SearchResultChangedBody{
		Query: body.Query,
		Count: len(m.resolver.SearchResult(body.Query)),
	})
	return reply
}

func (m *Module) getSearchResult(cmd mu.CommandEnvelope, reply mu.ReplyEnvelope) mu.ReplyEnvelope {
	var body mu.BrowseSearchBody
	if err := json.Unmarshal(cmd.Body, &body); err != nil {
		return errorReply(cmd, mu.CodeInvalid, "invalid body")
	}
	return withBody(reply, mu.BrowseItemsReply{Items: toMediaItems(m.resolver.SearchResult(body.Query))})
}

func (m *Module) queueSet(ctx context.Context, cmd mu.CommandEnvelope, reply mu.ReplyEnvelope) mu.ReplyEnvelope {
	var body mu.QueueSetItemsBody
	if err := json.Unmarshal(cmd.Body, &body); err != nil {
		return errorReply(cmd, mu.CodeInvalid, "invalid body")
	}
	if len(body.Items) == 0 {
		return errorReply(cmd, mu.CodeInvalid, "items required")
	}
	q := m.resolver.SetQueue(ctx, fromMediaItems(body.Items), int(body.StartIndex), body.StartPositionMS)
	return withBody(reply, toQueueReply(q))
}

func (m *Module) queueAddItems(ctx context.Context, cmd mu.CommandEnvelope, reply mu.ReplyEnvelope) mu.ReplyEnvelope {
	var body mu.QueueAddItemsBody
	if err := json.Unmarshal(cmd.Body, &body); err != nil {
		return errorReply(cmd, mu.CodeInvalid, "invalid body")
	}
	items := m.resolver.AddItems(ctx, fromMediaItems(body.Items))
	return withBody(reply, mu.BrowseItemsReply{Items: toMediaItems(items)})
}

func (m *Module) sessionCommand(cmd mu.CommandEnvelope, reply mu.ReplyEnvelope) mu.ReplyEnvelope {
	var body mu.SessionCommandBody
	if err := json.Unmarshal(cmd.Body, &body); err != nil {
		return errorReply(cmd, mu.CodeInvalid, "invalid body")
	}
	handled := m.resolver.Command(body.Name)
	return withBody(reply, mu.SessionCommandReply{Handled: handled})
}

func withBody(reply mu.ReplyEnvelope, body any) mu.ReplyEnvelope {
	payload, _ := json.Marshal(body)
	reply.Body = payload
	return reply
}

func toMediaItem(n browse.Node) mu.MediaItem {
	item := mu.MediaItem{
		ID:         n.ID,
		Title:      n.Title,
		Subtitle:   n.Subtitle,
		MediaType:  string(n.MediaType),
		Browsable:  n.Browsable,
		Playable:   n.Playable,
		Count:      n.Count,
		ArtworkURL: n.ArtworkURL,
	}
	if n.Song != nil {
		item.StreamURL = n.Song.StreamURL
		item.DurationMS = n.Song.DurationMS
	}
	return item
}

func toMediaItems(nodes []browse.Node) []mu.MediaItem {
	out := make([]mu.MediaItem, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, toMediaItem(n))
	}
	return out
}

// fromMediaItems keeps what a client sent; the resolver fills in the rest.
func fromMediaItems(items []mu.MediaItem) []browse.Node {
	out := make([]browse.Node, 0, len(items))
	for _, item := range items {
		out = append(out, browse.Node{
			ID:         item.ID,
			Title:      item.Title,
			Subtitle:   item.Subtitle,
			MediaType:  browse.MediaType(item.MediaType),
			Browsable:  item.Browsable,
			Playable:   item.Playable,
			ArtworkURL: item.ArtworkURL,
		})
	}
	return out
}

func toQueueReply(q browse.Queue) mu.QueueReply {
	return mu.QueueReply{
		Items:           toMediaItems(q.Items),
		StartIndex:      int64(q.StartIndex),
		StartPositionMS: q.StartPositionMS,
	}
}
