package nav

import (
	"path"
	"strings"
)

// Item represents a top-level navigation item.
type Item struct {
	Path  string // e.g. "/category/women"
	Label string
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href   string
	Label  string
	Active bool
}

// Crumb represents a breadcrumb entry.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// Main is the primary storefront navigation definition.
var Main = []Item{
	{Path: "/category/women", Label: "Women"},
	{Path: "/category/men", Label: "Men"},
	{Path: "/category/kids", Label: "Kids"},
	{Path: "/wishlist", Label: "Wishlist"},
	{Path: "/cart", Label: "Cart"},
	{Path: "/account", Label: "Account"},
}

// Build renders navigation items with active state given the current path.
func Build(currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:   it.Path,
			Label:  it.Label,
			Active: isActive(it.Path, currentPath),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	// match exact or prefix boundary: "/cart" or "/cart/..."
	if currentPath == itemPath {
		return true
	}
	if strings.HasPrefix(currentPath, itemPath+"/") {
		return true
	}
	return false
}

// Breadcrumbs builds breadcrumb entries from the current path.
// The trail always starts with Home; known top-level sections use
// their navigation label, deeper segments get a prettified label.
func Breadcrumbs(currentPath string) []Crumb {
	var crumbs []Crumb
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs = append(crumbs, Crumb{Href: "/", Label: "Home", Active: currentPath == "/"})
	if currentPath == "/" {
		return crumbs
	}

	clean := path.Clean(currentPath)
	if clean == "." { // should not happen but guard
		clean = "/"
	}
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")

	if len(parts) > 0 && parts[0] != "" {
		top := "/" + parts[0]
		label := titleFromSegment(parts[0])
		for _, it := range Main {
			if it.Path == top {
				label = it.Label
				break
			}
		}
		crumbs = append(crumbs, Crumb{Href: top, Label: label, Active: len(parts) == 1})
	}

	if len(parts) > 1 {
		href := "/" + parts[0]
		for i := 1; i < len(parts); i++ {
			href = href + "/" + parts[i]
			crumbs = append(crumbs, Crumb{
				Href:   href,
				Label:  titleFromSegment(parts[i]),
				Active: i == len(parts)-1,
			})
		}
	}
	return crumbs
}

func titleFromSegment(seg string) string {
	seg = strings.ReplaceAll(seg, "-", " ")
	seg = strings.ReplaceAll(seg, "_", " ")
	words := strings.Fields(seg)
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
