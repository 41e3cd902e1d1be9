package core

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mikey-austin/mu_browse/pkg/mu"
)

type stubStamper struct{}

func (stubStamper) Stamp(cmd *mu.CommandEnvelope) {
	cmd.ID = "id-1"
	cmd.TS = 100
}

type stubBroker struct {
	presence   []mu.Presence
	replies    map[string]mu.ReplyEnvelope
	sent       []mu.CommandEnvelope
	lastNode   string
	replyTopic string
	events     []mu.Event
}

func (s *stubBroker) ReplyTopic() string { return s.replyTopic }

func (s *stubBroker) PublishCommand(ctx context.Context, nodeID string, cmd mu.CommandEnvelope) (mu.ReplyEnvelope, error) {
	s.lastNode = nodeID
	s.sent = append(s.sent, cmd)
	if reply, ok := s.replies[cmd.Type]; ok {
		reply.ID = cmd.ID
		return reply, nil
	}
	return mu.ReplyEnvelope{ID: cmd.ID, Type: "ack", OK: true, TS: 101}, nil
}

func (s *stubBroker) ListPresence(ctx context.Context) ([]mu.Presence, error) {
	return s.presence, nil
}

func (s *stubBroker) WatchEvents(ctx context.Context, nodeID string) (<-chan mu.Event, <-chan error) {
	eventCh := make(chan mu.Event, len(s.events))
	errCh := make(chan error)
	for _, evt := range s.events {
		eventCh <- evt
	}
	close(eventCh)
	close(errCh)
	return eventCh, errCh
}

var browseNode = mu.Presence{NodeID: "mu:browse:car", Kind: "browse", Name: "Car"}

func newTestService(broker *stubBroker) Service {
	if broker.presence == nil {
		broker.presence = []mu.Presence{browseNode}
	}
	if broker.replyTopic == "" {
		broker.replyTopic = "mu/v1/reply/test"
	}
	cfg := Config{Identity: "tester"}
	return Service{
		Broker:   broker,
		Resolver: Resolver{Presence: broker, Config: cfg},
		Stamper:  stubStamper{},
		Config:   cfg,
	}
}

func okReply(t *testing.T, body any) mu.ReplyEnvelope {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return mu.ReplyEnvelope{Type: "ack", OK: true, TS: 101, Body: payload}
}

func TestChildrenDefaultsToRoot(t *testing.T) {
	broker := &stubBroker{replies: map[string]mu.ReplyEnvelope{
		mu.CmdBrowseGetRoot: okReply(t, mu.BrowseItemReply{Item: mu.MediaItem{ID: "ROOT", Browsable: true}}),
		mu.CmdBrowseGetChildren: okReply(t, mu.BrowseItemsReply{Items: []mu.MediaItem{
			{ID: "SONGS_FAVORITES", Title: "Favorites", Browsable: true},
		}}),
	}}
	svc := newTestService(broker)

	result, err := svc.Children(context.Background(), "", "", 0, 50)
	if err != nil {
		t.Fatalf("children: %v", err)
	}
	if result.Parent != "ROOT" || len(result.Items) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(broker.sent) != 2 {
		t.Fatalf("expected root lookup then children, got %d commands", len(broker.sent))
	}
	var body mu.BrowseChildrenBody
	if err := json.Unmarshal(broker.sent[1].Body, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.ID != "ROOT" || body.PageSize != 50 {
		t.Fatalf("unexpected children body: %+v", body)
	}
	cmd := broker.sent[1]
	if cmd.ID != "id-1" || cmd.TS != 100 || cmd.From != "tester" || cmd.ReplyTo != "mu/v1/reply/test" {
		t.Fatalf("command not decorated: %+v", cmd)
	}
	if broker.lastNode != browseNode.NodeID {
		t.Fatalf("expected command for %s, got %s", browseNode.NodeID, broker.lastNode)
	}
}

func TestSearchFetchesResult(t *testing.T) {
	broker := &stubBroker{replies: map[string]mu.ReplyEnvelope{
		mu.CmdBrowseGetSearchResult: okReply(t, mu.BrowseItemsReply{Items: []mu.MediaItem{
			{ID: "SEARCH_SONGS/abba", Title: "Songs", Browsable: true},
		}}),
	}}
	svc := newTestService(broker)

	result, err := svc.Search(context.Background(), "Car", "abba", 0, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].ID != "SEARCH_SONGS/abba" {
		t.Fatalf("unexpected items: %+v", result.Items)
	}
	if broker.sent[0].Type != mu.CmdBrowseSearch || broker.sent[1].Type != mu.CmdBrowseGetSearchResult {
		t.Fatalf("unexpected command order: %s, %s", broker.sent[0].Type, broker.sent[1].Type)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	svc := newTestService(&stubBroker{})
	_, err := svc.Search(context.Background(), "", "  ", 0, 0)
	if ExitCode(err) != ExitUsage {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestItemMapsNotFound(t *testing.T) {
	broker := &stubBroker{replies: map[string]mu.ReplyEnvelope{
		mu.CmdBrowseGetItem: {Type: "error", Err: &mu.ReplyError{Code: mu.CodeNotFound, Message: "no such item"}},
	}}
	svc := newTestService(broker)

	_, err := svc.Item(context.Background(), "", "ALBUM/missing")
	if ExitCode(err) != ExitNotFound {
		t.Fatalf("expected not found exit, got %v", err)
	}
}

func TestSetQueueSendsIDs(t *testing.T) {
	broker := &stubBroker{replies: map[string]mu.ReplyEnvelope{
		mu.CmdQueueSet: okReply(t, mu.QueueReply{
			Items:      []mu.MediaItem{{ID: "SONGS_FAVORITES/a"}, {ID: "SONGS_FAVORITES/b"}},
			StartIndex: 1,
		}),
	}}
	svc := newTestService(broker)

	result, err := svc.SetQueue(context.Background(), "", []string{"SONGS_FAVORITES/b", " "}, 0, 1500)
	if err != nil {
		t.Fatalf("set queue: %v", err)
	}
	if result.Queue.StartIndex != 1 || len(result.Queue.Items) != 2 {
		t.Fatalf("unexpected queue: %+v", result.Queue)
	}
	var body mu.QueueSetItemsBody
	if err := json.Unmarshal(broker.sent[0].Body, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Items) != 1 || body.Items[0].ID != "SONGS_FAVORITES/b" || body.StartPositionMS != 1500 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestSetQueueRequiresItems(t *testing.T) {
	svc := newTestService(&stubBroker{})
	_, err := svc.SetQueue(context.Background(), "", nil, 0, 0)
	if ExitCode(err) != ExitUsage {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestCommandReportsHandled(t *testing.T) {
	broker := &stubBroker{replies: map[string]mu.ReplyEnvelope{
		mu.CmdSessionCommand: okReply(t, mu.SessionCommandReply{Handled: true}),
	}}
	svc := newTestService(broker)

	result, err := svc.Command(context.Background(), "", "toggle_like")
	if err != nil {
		t.Fatalf("command: %v", err)
	}
	if !result.Handled || result.Name != "toggle_like" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestWatchEventsResolvesNode(t *testing.T) {
	broker := &stubBroker{events: []mu.Event{{Type: mu.EvtSearchResultChanged, TS: 5}}}
	svc := newTestService(broker)

	nodeID, events, _, err := svc.WatchEvents(context.Background(), "")
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	if nodeID != browseNode.NodeID {
		t.Fatalf("unexpected node %s", nodeID)
	}
	evt, ok := <-events
	if !ok || evt.Type != mu.EvtSearchResultChanged {
		t.Fatalf("unexpected event: %+v", evt)
	}
}

func TestListNodesFiltersKind(t *testing.T) {
	broker := &stubBroker{presence: []mu.Presence{
		browseNode,
		{NodeID: "mu:other:x", Kind: "other", TS: 1},
	}}
	svc := newTestService(broker)

	result, err := svc.ListNodes(context.Background(), "browse", false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Nodes) != 1 || result.Nodes[0].NodeID != browseNode.NodeID {
		t.Fatalf("unexpected nodes: %+v", result.Nodes)
	}
}
