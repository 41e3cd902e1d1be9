package stamp

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mikey-austin/mu_browse/pkg/mu"
)

func TestStampSetsCorrelationFields(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := Stamper{Now: func() time.Time { return at }}

	var first, second mu.CommandEnvelope
	s.Stamp(&first)
	s.Stamp(&second)

	if first.TS != at.Unix() {
		t.Fatalf("ts %d, want %d", first.TS, at.Unix())
	}
	id, err := uuid.Parse(first.ID)
	if err != nil {
		t.Fatalf("parse id %q: %v", first.ID, err)
	}
	if id.Version() != 4 {
		t.Fatalf("expected v4 id, got %d", id.Version())
	}
	if first.ID == second.ID {
		t.Fatalf("ids must be unique")
	}
}

func TestStampDefaultsToWallClock(t *testing.T) {
	var cmd mu.CommandEnvelope
	before := time.Now().Unix()
	Stamper{}.Stamp(&cmd)
	if cmd.TS < before {
		t.Fatalf("ts %d before %d", cmd.TS, before)
	}
}
