package core

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mikey-austin/mu_browse/internal/ports"
	"github.com/mikey-austin/mu_browse/pkg/mu"
)

// Service orchestrates mu CLI use cases.
type Service struct {
	Broker   ports.Broker
	Resolver Resolver
	Stamper  ports.Stamper
	Config   Config
}

// ListNodes returns presence entries with optional filters.
func (s Service) ListNodes(ctx context.Context, kind string, onlineOnly bool) (NodesResult, error) {
	nodes, err := s.Broker.ListPresence(ctx)
	if err != nil {
		return NodesResult{}, WrapError(ExitRuntime, "list nodes", err)
	}
	if kind != "" {
		filtered := nodes[:0]
		for _, node := range nodes {
			if node.Kind == kind {
				filtered = append(filtered, node)
			}
		}
		nodes = filtered
	}
	// Online filtering relies on presence; with retained presence this is best-effort.
	if onlineOnly {
		filtered := nodes[:0]
		for _, node := range nodes {
			if node.TS > 0 {
				filtered = append(filtered, node)
			}
		}
		nodes = filtered
	}
	return NodesResult{Nodes: nodes}, nil
}

// Root returns the browse root of a session.
func (s Service) Root(ctx context.Context, selector string) (ItemResult, error) {
	node, err := s.Resolver.ResolveBrowse(ctx, selector)
	if err != nil {
		return ItemResult{}, err
	}
	var reply mu.BrowseItemReply
	if err := s.request(ctx, node.NodeID, mu.CmdBrowseGetRoot, struct{}{}, &reply); err != nil {
		return ItemResult{}, err
	}
	return ItemResult{NodeID: node.NodeID, Item: reply.Item}, nil
}

// Children lists the children of a browse id. An empty id lists the root.
func (s Service) Children(ctx context.Context, selector string, id string, page, pageSize int64) (ItemsResult, error) {
	node, err := s.Resolver.ResolveBrowse(ctx, selector)
	if err != nil {
		return ItemsResult{}, err
	}
	if id == "" {
		var root mu.BrowseItemReply
		if err := s.request(ctx, node.NodeID, mu.CmdBrowseGetRoot, struct{}{}, &root); err != nil {
			return ItemsResult{}, err
		}
		id = root.Item.ID
	}
	body := mu.BrowseChildrenBody{ID: id, Page: page, PageSize: pageSize}
	var reply mu.BrowseItemsReply
	if err := s.request(ctx, node.NodeID, mu.CmdBrowseGetChildren, body, &reply); err != nil {
		return ItemsResult{}, err
	}
	return ItemsResult{NodeID: node.NodeID, Parent: id, Items: reply.Items}, nil
}

// Item looks up a single browse id.
func (s Service) Item(ctx context.Context, selector string, id string) (ItemResult, error) {
	if strings.TrimSpace(id) == "" {
		return ItemResult{}, &CLIError{Code: ExitUsage, Msg: "item id required"}
	}
	node, err := s.Resolver.ResolveBrowse(ctx, selector)
	if err != nil {
		return ItemResult{}, err
	}
	var reply mu.BrowseItemReply
	if err := s.request(ctx, node.NodeID, mu.CmdBrowseGetItem, mu.BrowseItemBody{ID: id}, &reply); err != nil {
		return ItemResult{}, err
	}
	return ItemResult{NodeID: node.NodeID, Item: reply.Item}, nil
}

// Search runs a query and fetches the resulting menu.
func (s Service) Search(ctx context.Context, selector string, query string, page, pageSize int64) (ItemsResult, error) {
	if strings.TrimSpace(query) == "" {
		return ItemsResult{}, &CLIError{Code: ExitUsage, Msg: "query required"}
	}
	node, err := s.Resolver.ResolveBrowse(ctx, selector)
	if err != nil {
		return ItemsResult{}, err
	}
	body := mu.BrowseSearchBody{Query: query, Page: page, PageSize: pageSize}
	if err := s.request(ctx, node.NodeID, mu.CmdBrowseSearch, body, nil); err != nil {
		return ItemsResult{}, err
	}
	var reply mu.BrowseItemsReply
	if err := s.request(ctx, node.NodeID, mu.CmdBrowseGetSearchResult, body, &reply); err != nil {
		return ItemsResult{}, err
	}
	return ItemsResult{NodeID: node.NodeID, Parent: query, Items: reply.Items}, nil
}

// SetQueue asks the session to build a play queue from ids.
func (s Service) SetQueue(ctx context.Context, selector string, ids []string, startIndex int64, startPositionMS int64) (QueueResult, error) {
	items := idsToItems(ids)
	if len(items) == 0 {
		return QueueResult{}, &CLIError{Code: ExitUsage, Msg: "at least one item required"}
	}
	node, err := s.Resolver.ResolveBrowse(ctx, selector)
	if err != nil {
		return QueueResult{}, err
	}
	body := mu.QueueSetItemsBody{Items: items, StartIndex: startIndex, StartPositionMS: startPositionMS}
	var reply mu.QueueReply
	if err := s.request(ctx, node.NodeID, mu.CmdQueueSet, body, &reply); err != nil {
		return QueueResult{}, err
	}
	return QueueResult{NodeID: node.NodeID, Queue: reply}, nil
}

// AddItems resolves ids into playable items.
func (s Service) AddItems(ctx context.Context, selector string, ids []string) (ItemsResult, error) {
	items := idsToItems(ids)
	if len(items) == 0 {
		return ItemsResult{}, &CLIError{Code: ExitUsage, Msg: "at least one item required"}
	}
	node, err := s.Resolver.ResolveBrowse(ctx, selector)
	if err != nil {
		return ItemsResult{}, err
	}
	var reply mu.BrowseItemsReply
	if err := s.request(ctx, node.NodeID, mu.CmdQueueAddItems, mu.QueueAddItemsBody{Items: items}, &reply); err != nil {
		return ItemsResult{}, err
	}
	return ItemsResult{NodeID: node.NodeID, Items: reply.Items}, nil
}

// Resume restores the last saved queue.
func (s Service) Resume(ctx context.Context, selector string) (QueueResult, error) {
	node, err := s.Resolver.ResolveBrowse(ctx, selector)
	if err != nil {
		return QueueResult{}, err
	}
	var reply mu.QueueReply
	if err := s.request(ctx, node.NodeID, mu.CmdQueueResume, struct{}{}, &reply); err != nil {
		return QueueResult{}, err
	}
	return QueueResult{NodeID: node.NodeID, Queue: reply}, nil
}

// Command sends a named session command.
func (s Service) Command(ctx context.Context, selector string, name string) (CommandResult, error) {
	if strings.TrimSpace(name) == "" {
		return CommandResult{}, &CLIError{Code: ExitUsage, Msg: "command name required"}
	}
	node, err := s.Resolver.ResolveBrowse(ctx, selector)
	if err != nil {
		return CommandResult{}, err
	}
	var reply mu.SessionCommandReply
	if err := s.request(ctx, node.NodeID, mu.CmdSessionCommand, mu.SessionCommandBody{Name: name}, &reply); err != nil {
		return CommandResult{}, err
	}
	return CommandResult{Name: name, Handled: reply.Handled}, nil
}

// WatchEvents streams events from a session.
func (s Service) WatchEvents(ctx context.Context, selector string) (string, <-chan mu.Event, <-chan error, error) {
	node, err := s.Resolver.ResolveBrowse(ctx, selector)
	if err != nil {
		return "", nil, nil, err
	}
	events, errs := s.Broker.WatchEvents(ctx, node.NodeID)
	return node.NodeID, events, errs, nil
}

func (s Service) request(ctx context.Context, nodeID string, cmdType string, body any, out any) error {
	cmd, err := mu.NewCommand(cmdType, body)
	if err != nil {
		return WrapError(ExitRuntime, "build command", err)
	}
	cmd = s.decorateCommand(cmd)
	reply, err := s.Broker.PublishCommand(ctx, nodeID, cmd)
	if err != nil {
		return WrapError(ExitRuntime, "publish command", err)
	}
	if reply.Err != nil {
		return ErrorForReplyCode(reply.Err.Code, reply.Err.Message)
	}
	if out == nil || len(reply.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(reply.Body, out); err != nil {
		return WrapError(ExitRuntime, "decode reply", err)
	}
	return nil
}

func (s Service) decorateCommand(cmd mu.CommandEnvelope) mu.CommandEnvelope {
	s.Stamper.Stamp(&cmd)
	cmd.From = s.Config.Identity
	cmd.ReplyTo = s.Broker.ReplyTopic()
	return cmd
}

func idsToItems(ids []string) []mu.MediaItem {
	items := make([]mu.MediaItem, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		items = append(items, mu.MediaItem{ID: id})
	}
	return items
}
