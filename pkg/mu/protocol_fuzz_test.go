package mu

import (
	"strings"
	"testing"
)

func FuzzValidateCommandEnvelope(f *testing.F) {
	f.Add("id", CmdBrowseSearch, int64(1), "from", `{"query":"abba"}`)
	f.Add("id", CmdQueueSet, int64(1700000000), "car", `{"items":[]}`)
	f.Add("", "", int64(0), "", "")

	f.Fuzz(func(t *testing.T, id string, typ string, ts int64, from string, body string) {
		cmd := CommandEnvelope{
			ID:   id,
			Type: typ,
			TS:   ts,
			From: from,
			Body: []byte(body),
		}
		if err := ValidateCommandEnvelope(cmd); err != nil {
			return
		}
		if strings.TrimSpace(id) == "" || strings.TrimSpace(typ) == "" || ts <= 0 || body == "" {
			t.Fatalf("accepted invalid envelope %+v", cmd)
		}
	})
}
