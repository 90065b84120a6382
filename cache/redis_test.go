package cache

import (
	"context"
	"testing"
	"time"
)

// A client whose connection was never established reports errors instead of
// touching the network
func TestRedisClientWithoutConnection(t *testing.T) {
	ctx := context.Background()
	rc := &RedisClient{}

	if err := rc.Set(ctx, "k", "v", time.Minute); err == nil {
		t.Error("Set on an uninitialized client should fail")
	}

	var dest string
	if err := rc.Get(ctx, "k", &dest); err == nil {
		t.Error("Get on an uninitialized client should fail")
	}

	if err := rc.Delete(ctx, "k"); err == nil {
		t.Error("Delete on an uninitialized client should fail")
	}

	if rc.Exists(ctx, "k") {
		t.Error("Exists on an uninitialized client should be false")
	}

	if err := rc.Close(); err != nil {
		t.Errorf("Close on an uninitialized client = %v, want nil", err)
	}
}

func TestNewRedisClientUnreachable(t *testing.T) {
	// Port 0 is never listening, so the ping fails without waiting
	if rc := NewRedisClient("127.0.0.1", "0", ""); rc != nil {
		t.Error("unreachable Redis should yield a nil client")
	}
}
