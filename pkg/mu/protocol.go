package mu

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// BaseTopic is the default MQTT topic prefix for the protocol.
const BaseTopic = "mu/v1"

// Command types served by a browse session node.
const (
	CmdBrowseGetRoot         = "browse.getRoot"
	CmdBrowseGetChildren     = "browse.getChildren"
	CmdBrowseGetItem         = "browse.getItem"
	CmdBrowseSearch          = "browse.search"
	CmdBrowseGetSearchResult = "browse.getSearchResult"
	CmdQueueSet              = "queue.set"
	CmdQueueAddItems         = "queue.addItems"
	CmdQueueResume           = "queue.resume"
	CmdSessionCommand        = "session.command"
)

// Event types published on a browse node's event topic.
const (
	EvtSearchResultChanged = "browse.searchResultChanged"
	EvtCommandPrefix       = "command."
)

// Error codes carried in ReplyError.
const (
	CodeInvalid  = "INVALID"
	CodeNotFound = "NOT_FOUND"
)

// CommandEnvelope is the common controller command envelope for MQTT.
type CommandEnvelope struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	TS      int64           `json:"ts"`
	From    string          `json:"from"`
	ReplyTo string          `json:"replyTo,omitempty"`
	Body    json.RawMessage `json:"body"`
}

// ReplyEnvelope is the response envelope for commands.
type ReplyEnvelope struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	OK   bool            `json:"ok"`
	TS   int64           `json:"ts"`
	Body json.RawMessage `json:"body,omitempty"`
	Err  *ReplyError     `json:"err,omitempty"`
}

// ReplyError describes an error response.
type ReplyError struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Detail  json.RawMessage `json:"detail,omitempty"`
}

// Presence describes a node presence payload.
type Presence struct {
	NodeID string         `json:"nodeId"`
	Kind   string         `json:"kind"`
	Name   string         `json:"name"`
	Caps   map[string]any `json:"caps,omitempty"`
	EPs    map[string]any `json:"endpoints,omitempty"`
	TS     int64          `json:"ts"`
}

// Event is a node event payload.
type Event struct {
	Type string          `json:"type"`
	TS   int64           `json:"ts"`
	Body json.RawMessage `json:"body,omitempty"`
}

// NewCommand builds a command envelope with a JSON body.
func NewCommand(cmdType string, body any) (CommandEnvelope, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return CommandEnvelope{}, fmt.Errorf("marshal body: %w", err)
	}

	return CommandEnvelope{
		Type: cmdType,
		Body: payload,
	}, nil
}

// NewEvent builds an event with a JSON body.
func NewEvent(evtType string, ts int64, body any) (Event, error) {
	evt := Event{Type: evtType, TS: ts}
	if body == nil {
		return evt, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return Event{}, fmt.Errorf("marshal body: %w", err)
	}
	evt.Body = payload
	return evt, nil
}

// ValidateCommandEnvelope validates required fields.
func ValidateCommandEnvelope(cmd CommandEnvelope) error {
	if strings.TrimSpace(cmd.ID) == "" {
		return errors.New("id is required")
	}
	if strings.TrimSpace(cmd.Type) == "" {
		return errors.New("type is required")
	}
	if cmd.TS <= 0 {
		return errors.New("ts must be a positive unix timestamp")
	}
	if strings.TrimSpace(cmd.From) == "" {
		return errors.New("from is required")
	}
	if len(cmd.Body) == 0 {
		return errors.New("body is required")
	}
	return nil
}

// TopicPresence builds the presence topic for a node.
func TopicPresence(topicBase, nodeID string) string {
	return fmt.Sprintf("%s/node/%s/presence", topicBase, nodeID)
}

// TopicCommands builds the command topic for a node.
func TopicCommands(topicBase, nodeID string) string {
	return fmt.Sprintf("%s/node/%s/cmd", topicBase, nodeID)
}

// TopicEvents builds the events topic for a node.
func TopicEvents(topicBase, nodeID string) string {
	return fmt.Sprintf("%s/node/%s/evt", topicBase, nodeID)
}

// TopicReply builds the reply topic for a controller instance.
func TopicReply(topicBase, controllerID string) string {
	return fmt.Sprintf("%s/reply/%s", topicBase, controllerID)
}
