package server

import (
	"net/http"
	"testing"

	"github.com/lawnchairsociety/dungeongen/internal/config"
)

func TestConnLimiterPerIP(t *testing.T) {
	limiter := NewConnLimiter(config.ConnectionsConfig{MaxPerIP: 2, MaxTotal: 100})

	if !limiter.TryAcquire("10.0.0.1") || !limiter.TryAcquire("10.0.0.1") {
		t.Fatal("first two connections should be allowed")
	}
	if limiter.TryAcquire("10.0.0.1") {
		t.Error("third connection from the same address should be rejected")
	}
	if !limiter.TryAcquire("10.0.0.2") {
		t.Error("another address should be allowed")
	}

	limiter.Release("10.0.0.1")
	if !limiter.TryAcquire("10.0.0.1") {
		t.Error("slot should be reusable after release")
	}
}

func TestConnLimiterTotal(t *testing.T) {
	limiter := NewConnLimiter(config.ConnectionsConfig{MaxPerIP: 10, MaxTotal: 2})

	limiter.TryAcquire("10.0.0.1")
	limiter.TryAcquire("10.0.0.2")
	if limiter.TryAcquire("10.0.0.3") {
		t.Error("connection over the total limit should be rejected")
	}
}

func TestConnLimiterUnlimited(t *testing.T) {
	limiter := NewConnLimiter(config.ConnectionsConfig{})
	for i := 0; i < 500; i++ {
		if !limiter.TryAcquire("10.0.0.1") {
			t.Fatalf("connection %d rejected with no limits", i)
		}
	}
}

func TestConnLimiterStats(t *testing.T) {
	limiter := NewConnLimiter(config.ConnectionsConfig{MaxPerIP: 10, MaxTotal: 10})
	limiter.TryAcquire("10.0.0.1")
	limiter.TryAcquire("10.0.0.1")
	limiter.TryAcquire("10.0.0.2")

	total, addresses := limiter.Stats()
	if total != 3 || addresses != 2 {
		t.Errorf("Stats() = %d, %d; want 3, 2", total, addresses)
	}
	if n := limiter.Count("10.0.0.1"); n != 2 {
		t.Errorf("Count(10.0.0.1) = %d, want 2", n)
	}

	limiter.Release("10.0.0.2")
	limiter.Release("10.0.0.2") // extra release is harmless
	total, addresses = limiter.Stats()
	if total != 2 || addresses != 1 {
		t.Errorf("after release Stats() = %d, %d; want 2, 1", total, addresses)
	}
}

func TestHostOnly(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"192.168.1.1:12345", "192.168.1.1"},
		{"[::1]:12345", "::1"},
		{"localhost:4000", "localhost"},
		{"192.168.1.1", "192.168.1.1"},
	}
	for _, tt := range tests {
		if got := hostOnly(tt.in); got != tt.want {
			t.Errorf("hostOnly(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff, xri   string
		remoteAddr string
		want       string
	}{
		{"forwarded single", "203.0.113.50", "", "10.0.0.1:1", "203.0.113.50"},
		{"forwarded chain", "203.0.113.50, 70.41.3.18", "", "10.0.0.1:1", "203.0.113.50"},
		{"real ip", "", "203.0.113.7", "10.0.0.1:1", "203.0.113.7"},
		{"forwarded wins", "203.0.113.50", "198.51.100.25", "10.0.0.1:1", "203.0.113.50"},
		{"blank forwarded", " , 70.41.3.18", "", "192.168.1.100:54321", "192.168.1.100"},
		{"socket", "", "", "192.168.1.100:54321", "192.168.1.100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &http.Request{RemoteAddr: tt.remoteAddr, Header: make(http.Header)}
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("clientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
