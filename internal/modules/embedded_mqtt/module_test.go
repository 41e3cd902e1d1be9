package embeddedmqtt

import (
	"testing"
	"time"

	mqtt "github.com/mochi-mqtt/server/v2"
	"github.com/mochi-mqtt/server/v2/hooks/auth"
	"github.com/mochi-mqtt/server/v2/packets"
	"go.uber.org/zap"

	"github.com/mikey-austin/mu_browse/pkg/mu"
)

func TestNewServerAllowAnonymous(t *testing.T) {
	server, err := newServer(zap.NewNop(), Config{AllowAnonymous: true})
	if err != nil {
		t.Fatalf("newServer: %v", err)
	}
	if server == nil {
		t.Fatalf("expected server")
	}
}

func TestNewServerRequiresAuthConfig(t *testing.T) {
	_, err := newServer(zap.NewNop(), Config{})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestLedgerScopesTopicBase(t *testing.T) {
	l := ledger(Config{TopicBase: mu.BaseTopic, Username: "car", Password: "pw"})
	if len(l.ACL) != 1 {
		t.Fatalf("expected one acl rule")
	}
	access, ok := l.ACL[0].Filters[auth.RString("mu/v1/#")]
	if !ok || access != auth.ReadWrite {
		t.Fatalf("expected read/write on mu/v1/#, got %+v", l.ACL[0].Filters)
	}
}

func TestInlinePublishSubscribe(t *testing.T) {
	server, err := newServer(zap.NewNop(), Config{AllowAnonymous: true})
	if err != nil {
		t.Fatalf("newServer: %v", err)
	}

	received := make(chan packets.Packet, 1)
	handler := func(_ *mqtt.Client, _ packets.Subscription, pk packets.Packet) {
		received <- pk
	}
	topic := mu.TopicEvents(mu.BaseTopic, "mu:browse:test")
	if err := server.Subscribe(mu.BaseTopic+"/#", 1, handler); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := server.Publish(topic, []byte(`{"type":"browse.searchResultChanged"}`), false, 0); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case pk := <-received:
		if pk.TopicName != topic {
			t.Fatalf("unexpected topic %s", pk.TopicName)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("timeout waiting for message")
	}
}

func TestBrokerURL(t *testing.T) {
	if BrokerURL(DefaultListen, false) != "mqtt://127.0.0.1:1883" {
		t.Fatalf("expected mqtt scheme")
	}
	cfg := Config{TLSCert: "c", TLSKey: "k"}
	if BrokerURL("127.0.0.1:8883", cfg.TLSEnabled()) != "mqtts://127.0.0.1:8883" {
		t.Fatalf("expected mqtts scheme")
	}
}
