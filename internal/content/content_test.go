package content

import (
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"shipping.md": {Data: []byte(`---
title: Shipping Policy
summary: How we ship orders.
updated_at: 2025-03-01
seo:
  description: Shipping times and carriers.
---
We ship **worldwide** within 3 business days.
`)},
		"returns.md": {Data: []byte("No front matter, just *markdown*.\n")},
		"evil.md": {Data: []byte(`---
title: Evil
---
<script>alert("x")</script>

Safe paragraph.
`)},
	}
}

func TestGetRendersMarkdownWithFrontMatter(t *testing.T) {
	lib := NewLibrary(testFS())

	page, err := lib.Get("shipping")
	require.NoError(t, err)
	require.Equal(t, "Shipping Policy", page.Title)
	require.Equal(t, "How we ship orders.", page.Summary)
	require.Equal(t, "Shipping times and carriers.", page.SEO.Description)
	require.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), page.UpdatedAt)
	require.Contains(t, string(page.Body), "<strong>worldwide</strong>")
}

func TestGetWithoutFrontMatterPrettifiesSlug(t *testing.T) {
	lib := NewLibrary(testFS())

	page, err := lib.Get("returns")
	require.NoError(t, err)
	require.Equal(t, "Returns", page.Title)
	require.Contains(t, string(page.Body), "<em>markdown</em>")
}

func TestGetStripsScriptTags(t *testing.T) {
	lib := NewLibrary(testFS())

	page, err := lib.Get("evil")
	require.NoError(t, err)
	require.NotContains(t, string(page.Body), "<script>")
	require.Contains(t, string(page.Body), "Safe paragraph")
}

func TestGetUnknownSlug(t *testing.T) {
	lib := NewLibrary(testFS())

	_, err := lib.Get("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetRejectsTraversal(t *testing.T) {
	lib := NewLibrary(testFS())

	for _, slug := range []string{"../shipping", "a/b", "", "..", `a\b`} {
		_, err := lib.Get(slug)
		require.ErrorIs(t, err, ErrNotFound, "slug %q", slug)
	}
}

func TestGetCaches(t *testing.T) {
	fsys := testFS()
	lib := NewLibrary(fsys)
	lib.SetCacheTTL(time.Hour)

	first, err := lib.Get("shipping")
	require.NoError(t, err)

	// Mutating the underlying file must not change cached output.
	fsys["shipping.md"].Data = []byte("changed")
	second, err := lib.Get("shipping")
	require.NoError(t, err)
	require.Equal(t, first.Body, second.Body)
	require.True(t, strings.Contains(string(second.Body), "worldwide"))
}

func TestGetStripsLeadingByteOrderMark(t *testing.T) {
	fsys := testFS()
	fsys["bom.md"] = &fstest.MapFile{Data: []byte("\uFEFF---\ntitle: BOM Page\n---\nStill parses.\n")}
	lib := NewLibrary(fsys)

	page, err := lib.Get("bom")
	require.NoError(t, err)
	require.Equal(t, "BOM Page", page.Title)
	require.Contains(t, string(page.Body), "Still parses.")
}
