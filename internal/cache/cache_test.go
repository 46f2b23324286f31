package cache_test

import (
	"testing"
	"time"

	"github.com/nexfest/festhub/internal/cache"
)

func TestSetGet(t *testing.T) {
	c := cache.New(time.Minute)

	c.Set("events", []string{"a", "b"})

	got, ok := c.Get("events")
	if !ok {
		t.Fatal("expected a hit")
	}

	list, ok := got.([]string)
	if !ok || len(list) != 2 {
		t.Fatalf("unexpected cached value %#v", got)
	}

	if _, ok := c.Get("missing"); ok {
		t.Fatal("unexpected hit on missing key")
	}
}

func TestExpiry(t *testing.T) {
	c := cache.New(10 * time.Millisecond)

	c.Set("k", 1)

	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatal("entry should have expired")
	}
}

func TestClear(t *testing.T) {
	c := cache.New(time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)

	c.Clear()

	if _, ok := c.Get("a"); ok {
		t.Fatal("clear left entry a behind")
	}

	if _, ok := c.Get("b"); ok {
		t.Fatal("clear left entry b behind")
	}
}

func TestDelete(t *testing.T) {
	c := cache.New(time.Minute)

	c.Set("a", 1)
	c.Delete("a")

	if _, ok := c.Get("a"); ok {
		t.Fatal("delete left the entry behind")
	}
}
