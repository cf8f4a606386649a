package badge

import (
	"fmt"
	"image"
	"testing"
)

func testImage(n int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, n, n))
}

func TestCache_FIFOEviction(t *testing.T) {
	c := NewCache(3)

	for i := 1; i <= 3; i++ {
		c.Put(fmt.Sprintf("k%d", i), testImage(i))
	}
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}

	// Reading the oldest key must not protect it: FIFO, not LRU.
	if _, ok := c.Get("k1"); !ok {
		t.Fatal("k1 missing before eviction")
	}

	c.Put("k4", testImage(4))

	if _, ok := c.Get("k1"); ok {
		t.Error("k1 should have been evicted as oldest inserted")
	}
	for _, key := range []string{"k2", "k3", "k4"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("%s missing after eviction", key)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestCache_EvictionOrderIsInsertionOrder(t *testing.T) {
	c := NewCache(2)

	c.Put("a", testImage(1))
	c.Put("b", testImage(2))

	// Replacing a value keeps the key's original position.
	c.Put("a", testImage(3))

	c.Put("c", testImage(4))
	if _, ok := c.Get("a"); ok {
		t.Error("a should have been evicted despite the later re-put")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("b should survive")
	}
}

func TestCache_GetMiss(t *testing.T) {
	c := NewCache(2)
	if img, ok := c.Get("nope"); ok || img != nil {
		t.Errorf("Get(missing) = %v, %v, want nil, false", img, ok)
	}
}

func TestCache_MinimumCapacity(t *testing.T) {
	c := NewCache(0)
	if c.Cap() != 1 {
		t.Fatalf("Cap() = %d, want floor of 1", c.Cap())
	}
	c.Put("a", testImage(1))
	c.Put("b", testImage(2))
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("newest entry missing")
	}
}
