package ports

import (
	"context"

	"github.com/mikey-austin/mu_browse/pkg/mu"
)

// Broker publishes commands and reads retained presence.
type Broker interface {
	ReplyTopic() string
	PublishCommand(ctx context.Context, nodeID string, cmd mu.CommandEnvelope) (mu.ReplyEnvelope, error)
	ListPresence(ctx context.Context) ([]mu.Presence, error)
	WatchEvents(ctx context.Context, nodeID string) (<-chan mu.Event, <-chan error)
}

// Stamper sets the correlation id and timestamp of an outgoing command.
type Stamper interface {
	Stamp(cmd *mu.CommandEnvelope)
}
