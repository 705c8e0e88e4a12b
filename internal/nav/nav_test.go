package nav

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildMarksActiveSection(t *testing.T) {
	items := Build("/category/women")
	require.Len(t, items, len(Main))
	for _, it := range items {
		if it.Href == "/category/women" {
			require.True(t, it.Active)
		} else {
			require.False(t, it.Active, "unexpected active item %s", it.Href)
		}
	}
}

func TestBuildPrefixBoundary(t *testing.T) {
	// "/cartoons" must not activate "/cart".
	for _, it := range Build("/cartoons") {
		require.False(t, it.Active)
	}
	for _, it := range Build("/cart/checkout") {
		require.Equal(t, it.Href == "/cart", it.Active)
	}
}

func TestBreadcrumbsHomeOnly(t *testing.T) {
	crumbs := Breadcrumbs("/")
	require.Len(t, crumbs, 1)
	require.Equal(t, "Home", crumbs[0].Label)
	require.True(t, crumbs[0].Active)
}

func TestBreadcrumbsDeepPath(t *testing.T) {
	crumbs := Breadcrumbs("/category/women")
	require.Len(t, crumbs, 3)
	require.Equal(t, "Home", crumbs[0].Label)
	require.Equal(t, "/category", crumbs[1].Href)
	require.Equal(t, "Women", crumbs[2].Label)
	require.True(t, crumbs[2].Active)
	require.False(t, crumbs[1].Active)
}

func TestBreadcrumbsUsesNavLabel(t *testing.T) {
	crumbs := Breadcrumbs("/wishlist")
	require.Len(t, crumbs, 2)
	require.Equal(t, "Wishlist", crumbs[1].Label)
	require.True(t, crumbs[1].Active)
}

func TestTitleFromSegment(t *testing.T) {
	require.Equal(t, "Summer Sale", titleFromSegment("summer-sale"))
	require.Equal(t, "New Arrivals", titleFromSegment("new_arrivals"))
}
