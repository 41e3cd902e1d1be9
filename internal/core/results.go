package core

import "github.com/mikey-austin/mu_browse/pkg/mu"

// NodesResult holds a list of presence records.
type NodesResult struct {
	Nodes []mu.Presence
}

// ItemResult holds a single browse node.
type ItemResult struct {
	NodeID string
	Item   mu.MediaItem
}

// ItemsResult holds a browse listing.
type ItemsResult struct {
	NodeID string
	Parent string
	Items  []mu.MediaItem
}

// QueueResult holds a queue built by the session.
type QueueResult struct {
	NodeID string
	Queue  mu.QueueReply
}

// CommandResult reports whether a session command was handled.
type CommandResult struct {
	Name    string
	Handled bool
}

// EventResult wraps a node event for output.
type EventResult struct {
	NodeID string
	Event  mu.Event
}
