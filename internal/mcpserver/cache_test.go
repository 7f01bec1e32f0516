package mcpserver

import (
	"context"
	"testing"
	"time"

	"github.com/erraggy/oasexample/document"
	"github.com/erraggy/oasexample/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cachedResult(title string) *parser.ParseResult {
	return &parser.ParseResult{
		Dialect:  parser.DialectSwagger2,
		Document: document.FromPairs("swagger", "2.0", "info", document.FromPairs("title", title)),
	}
}

func TestDocumentCache_GetReturnsCopies(t *testing.T) {
	c := newDocumentCache(4)
	stored := cachedResult("A")
	c.put("a", stored, time.Hour)

	stored.Document.Set("swagger", "mutated after put")
	got := c.get("a")
	require.NotNil(t, got)
	assert.Equal(t, "2.0", got.Document.Value("swagger"))

	got.Document.Set("swagger", "mutated after get")
	assert.Equal(t, "2.0", c.get("a").Document.Value("swagger"))
	assert.Nil(t, c.get("missing"))
}

func TestDocumentCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := newDocumentCache(2)
	c.put("a", cachedResult("A"), time.Hour)
	c.put("b", cachedResult("B"), time.Hour)

	require.NotNil(t, c.get("a"))
	c.put("c", cachedResult("C"), time.Hour)

	assert.Equal(t, 2, c.size())
	assert.NotNil(t, c.get("a"))
	assert.Nil(t, c.get("b"), "b was least recently used")
	assert.NotNil(t, c.get("c"))
}

func TestDocumentCache_ReplaceKeepsSize(t *testing.T) {
	c := newDocumentCache(2)
	c.put("a", cachedResult("A"), time.Hour)
	c.put("a", cachedResult("A2"), time.Hour)

	assert.Equal(t, 1, c.size())
	info, ok := c.get("a").Document.Object("info")
	require.True(t, ok)
	assert.Equal(t, "A2", info.Value("title"))
}

func TestDocumentCache_Expiry(t *testing.T) {
	c := newDocumentCache(4)
	c.put("expired", cachedResult("old"), -time.Second)
	c.put("fresh", cachedResult("new"), time.Hour)

	assert.Nil(t, c.get("expired"))
	assert.Equal(t, 1, c.size(), "get drops expired entries")

	c.put("expired", cachedResult("old"), -time.Second)
	c.sweep()
	assert.Equal(t, 1, c.size())
	assert.NotNil(t, c.get("fresh"))

	c.reset()
	assert.Zero(t, c.size())
}

func TestDocumentCache_Sweeper(t *testing.T) {
	c := newDocumentCache(4)
	c.put("expired", cachedResult("old"), -time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.startSweeper(ctx, 10*time.Millisecond)
	c.startSweeper(ctx, 10*time.Millisecond)

	assert.Eventually(t, func() bool { return c.size() == 0 }, time.Second, 10*time.Millisecond)

	cancel()
	assert.Eventually(t, func() bool { return !c.sweeper.Load() }, time.Second, 10*time.Millisecond)
}
