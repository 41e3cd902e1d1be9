package stamp

import (
	"time"

	"github.com/google/uuid"

	"github.com/mikey-austin/mu_browse/pkg/mu"
)

// Stamper fills the correlation fields of outgoing browse commands.
type Stamper struct {
	// Now defaults to time.Now.
	Now func() time.Time
}

// Stamp sets a fresh UUIDv4 correlation id and the current unix time.
func (s Stamper) Stamp(cmd *mu.CommandEnvelope) {
	now := s.Now
	if now == nil {
		now = time.Now
	}
	cmd.ID = uuid.NewString()
	cmd.TS = now().Unix()
}
