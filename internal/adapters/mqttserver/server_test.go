package mqttserver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTLSConfigEmpty(t *testing.T) {
	cfg, err := TLSConfig("", "", "")
	if err != nil || cfg != nil {
		t.Fatalf("expected nil config, got %v %v", cfg, err)
	}
}

func TestTLSConfigRequiresPair(t *testing.T) {
	if _, err := TLSConfig("", "cert.pem", ""); err == nil {
		t.Fatalf("expected error for missing key")
	}
}

func TestTLSConfigRejectsBadCA(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ca.pem")
	if err := os.WriteFile(path, []byte("not a pem"), 0o600); err != nil {
		t.Fatalf("write ca: %v", err)
	}
	if _, err := TLSConfig(path, "", ""); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestTruncatePayload(t *testing.T) {
	long := strings.Repeat("x", 3000)
	got := truncatePayload([]byte(long))
	if len(got) != 2048+3 || !strings.HasSuffix(got, "...") {
		t.Fatalf("unexpected truncation length %d", len(got))
	}
	if truncatePayload([]byte("short")) != "short" {
		t.Fatalf("short payload changed")
	}
}
