package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	red "github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*red.Client, *miniredis.Miniredis) {
	t.Helper()

	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	client := red.NewClient(&red.Options{Addr: server.Addr()})

	t.Cleanup(func() {
		_ = client.Close()
		server.Close()
	})
	return client, server
}

func TestSubmissionGuard_AcquireRelease(t *testing.T) {
	client, server := newTestRedis(t)
	guard := NewSubmissionGuard(client, "", time.Minute)
	ctx := context.Background()

	ok, err := guard.Acquire(ctx, "lawyer:a@example.com")
	if err != nil || !ok {
		t.Fatalf("first acquire: ok=%v err=%v", ok, err)
	}
	if !server.Exists("submission:lawyer:a@example.com") {
		t.Fatal("expected lock key under the default prefix")
	}
	if ttl := server.TTL("submission:lawyer:a@example.com"); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("unexpected ttl %v", ttl)
	}

	ok, err = guard.Acquire(ctx, "lawyer:a@example.com")
	if err != nil || ok {
		t.Fatalf("second acquire should be refused: ok=%v err=%v", ok, err)
	}

	if err := guard.Release(ctx, "lawyer:a@example.com"); err != nil {
		t.Fatal(err)
	}
	ok, err = guard.Acquire(ctx, "lawyer:a@example.com")
	if err != nil || !ok {
		t.Fatalf("acquire after release: ok=%v err=%v", ok, err)
	}
}

func TestSubmissionGuard_Expires(t *testing.T) {
	client, server := newTestRedis(t)
	guard := NewSubmissionGuard(client, "sub", 0)
	ctx := context.Background()

	if ok, _ := guard.Acquire(ctx, "k"); !ok {
		t.Fatal("expected lock")
	}
	server.FastForward(defaultGuardTTL + time.Second)

	if ok, err := guard.Acquire(ctx, "k"); err != nil || !ok {
		t.Fatalf("expired lock should be reacquirable: ok=%v err=%v", ok, err)
	}
}

func TestSubmissionGuard_Unavailable(t *testing.T) {
	client, server := newTestRedis(t)
	guard := NewSubmissionGuard(client, "", 0)
	server.Close()

	if _, err := guard.Acquire(context.Background(), "k"); err == nil {
		t.Fatal("expected an error when redis is down")
	}
}

func TestConnect(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{Addr: server.Addr()})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	_ = client.Close()

	server.Close()
	if _, err := Connect(context.Background(), Config{Addr: server.Addr(), Timeout: 200 * time.Millisecond}); err == nil {
		t.Fatal("expected ping failure")
	}
}
