package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juneandco/third-audience/internal/render"
)

func doc(body string) render.Document {
	return render.Document{Format: render.FormatMarkdown, Body: body}
}

// fakeClock drives expiry without sleeping.
type fakeClock struct {
	current time.Time
}

func (f *fakeClock) now() time.Time          { return f.current }
func (f *fakeClock) advance(d time.Duration) { f.current = f.current.Add(d) }

func newTestCache(capacity int, ttl time.Duration) (*Cache, *fakeClock) {
	clock := &fakeClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	c := New(capacity, ttl)
	c.now = clock.now
	return c, clock
}

func TestGetMiss(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)

	_, ok := c.Get("product:midi-slip")
	assert.False(t, ok)
}

func TestSetThenGet(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)

	c.Set("product:midi-slip", doc("# Midi Slip"))

	got, ok := c.Get("product:midi-slip")
	require.True(t, ok)
	assert.Equal(t, "# Midi Slip", got.Body)
	assert.Equal(t, render.FormatMarkdown, got.Format)
}

func TestEntryExpiresAfterTTL(t *testing.T) {
	c, clock := newTestCache(10, 5*time.Minute)

	c.Set(KeyDiscovery, doc("directory"))

	clock.advance(5*time.Minute - time.Second)
	_, ok := c.Get(KeyDiscovery)
	assert.True(t, ok, "entry inside the TTL window must be served")

	clock.advance(2 * time.Second)
	_, ok = c.Get(KeyDiscovery)
	assert.False(t, ok, "entry past the TTL window must be absent")
	assert.Equal(t, 0, c.Len(), "expired entry is removed on lookup")
}

func TestSetResetsTTL(t *testing.T) {
	c, clock := newTestCache(10, 5*time.Minute)

	c.Set("page:about", doc("v1"))
	clock.advance(4 * time.Minute)
	c.Set("page:about", doc("v2"))
	clock.advance(4 * time.Minute)

	got, ok := c.Get("page:about")
	require.True(t, ok, "refilled entry starts a fresh TTL window")
	assert.Equal(t, "v2", got.Body)
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := newTestCache(3, time.Minute)

	c.Set("a", doc("a"))
	c.Set("b", doc("b"))
	c.Set("c", doc("c"))

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Set("d", doc("d"))

	_, ok = c.Get("b")
	assert.False(t, ok, "least recently used entry must be evicted")
	for _, key := range []string{"a", "c", "d"} {
		_, ok := c.Get(key)
		assert.True(t, ok, "entry %q must survive eviction", key)
	}
	assert.Equal(t, 3, c.Len())
}

func TestCapacityHoldsUnderChurn(t *testing.T) {
	c, _ := newTestCache(5, time.Minute)

	for i := 0; i < 50; i++ {
		c.Set(fmt.Sprintf("product:handle-%d", i), doc("body"))
	}
	assert.Equal(t, 5, c.Len())
}

func TestDefaultsApplied(t *testing.T) {
	c := New(0, 0)

	assert.Equal(t, 500, c.capacity)
	assert.Equal(t, 5*time.Minute, c.ttl)
}

func TestEntityKey(t *testing.T) {
	assert.Equal(t, "product:midi-slip", EntityKey("product", "midi-slip"))
	assert.Equal(t, "collection:new-arrivals", EntityKey("collection", "new-arrivals"))
}
