package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

// TestRedis_Connection tests connecting to a Redis server.
func TestRedis_Connection(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()

	c, err := NewRedis(mr.Addr(), "", 0, time.Hour)
	if err != nil {
		t.Fatalf("failed to connect to Redis: %v", err)
	}
	defer c.Close()

	if c.client == nil {
		t.Error("expected client to be initialized")
	}
}

// TestRedis_ConnectionFailure tests connection errors.
func TestRedis_ConnectionFailure(t *testing.T) {
	_, err := NewRedis("invalid:9999", "", 0, time.Hour)

	if err == nil {
		t.Error("expected connection error, got nil")
	}
}

// TestRedis_SetGetContains tests the capability set with a JSON round trip.
func TestRedis_SetGetContains(t *testing.T) {
	mr, _ := miniredis.Run()
	defer mr.Close()

	c, _ := NewRedis(mr.Addr(), "", 0, time.Hour)
	defer c.Close()

	c.Set("8.8.8.8", map[string]any{
		"ip":      "8.8.8.8",
		"country": "US",
		"loc":     "37.751,-97.822",
	})

	if !c.Contains("8.8.8.8") {
		t.Error("expected Contains to report the entry")
	}

	got, ok := c.Get("8.8.8.8")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if got["ip"] != "8.8.8.8" || got["country"] != "US" || got["loc"] != "37.751,-97.822" {
		t.Errorf("expected round-tripped value, got %v", got)
	}

	// Entries live under the ipmeta: prefix so the DB can be shared.
	if !mr.Exists("ipmeta:8.8.8.8") {
		t.Error("expected prefixed Redis key")
	}
}

// TestRedis_Miss tests absent keys.
func TestRedis_Miss(t *testing.T) {
	mr, _ := miniredis.Run()
	defer mr.Close()

	c, _ := NewRedis(mr.Addr(), "", 0, time.Hour)
	defer c.Close()

	if c.Contains("1.1.1.1") {
		t.Error("expected Contains to miss")
	}
	if _, ok := c.Get("1.1.1.1"); ok {
		t.Error("expected Get to miss")
	}
}

// TestRedis_TTL verifies server-side expiry.
func TestRedis_TTL(t *testing.T) {
	mr, _ := miniredis.Run()
	defer mr.Close()

	c, _ := NewRedis(mr.Addr(), "", 0, time.Minute)
	defer c.Close()

	c.Set("8.8.8.8", map[string]any{"ip": "8.8.8.8"})

	mr.FastForward(61 * time.Second)

	if c.Contains("8.8.8.8") {
		t.Error("expected entry to expire")
	}
	if _, ok := c.Get("8.8.8.8"); ok {
		t.Error("expected Get to miss after expiry")
	}
}

// TestRedis_UndecodableValue verifies corrupt entries degrade to a miss.
func TestRedis_UndecodableValue(t *testing.T) {
	mr, _ := miniredis.Run()
	defer mr.Close()

	c, _ := NewRedis(mr.Addr(), "", 0, time.Hour)
	defer c.Close()

	mr.Set("ipmeta:8.8.8.8", "{not json")

	if _, ok := c.Get("8.8.8.8"); ok {
		t.Error("expected corrupt entry to read as a miss")
	}
}
