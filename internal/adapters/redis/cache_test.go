package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "review_dash/internal/adapters/redis"
	"review_dash/internal/domain"
)

func newCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_SetGetDel(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	var miss domain.Overview
	ok, err := c.Get(ctx, "k", &miss)
	if err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	in := domain.Overview{TotalReviews: 3, AverageRating: 4.33, PositivePct: 66.7}
	if err := c.Set(ctx, "k", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := mr.TTL("k"); ttl != 60*time.Second {
		t.Fatalf("ttl = %v", ttl)
	}

	var out domain.Overview
	ok, err = c.Get(ctx, "k", &out)
	if err != nil || !ok || out != in {
		t.Fatalf("get: ok=%v err=%v out=%+v", ok, err, out)
	}

	if err := c.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if mr.Exists("k") {
		t.Fatalf("key still present after Del")
	}
}

func TestCache_Expiry(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	_ = c.Set(ctx, "k", []domain.LabelCount{{Label: domain.Positive, Count: 1}}, 1)
	mr.FastForward(2 * time.Second)

	var out []domain.LabelCount
	ok, err := c.Get(ctx, "k", &out)
	if err != nil || ok {
		t.Fatalf("expected expired key, got ok=%v err=%v", ok, err)
	}
}

func TestCache_CorruptValue(t *testing.T) {
	c, mr := newCache(t)
	_ = mr.Set("k", "{not json")

	var out domain.Overview
	ok, err := c.Get(context.Background(), "k", &out)
	if ok || err == nil {
		t.Fatalf("expected decode error, got ok=%v err=%v", ok, err)
	}
}

func TestCache_Ping(t *testing.T) {
	c, mr := newCache(t)
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	mr.Close()
	if err := c.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping error after server close")
	}
}
