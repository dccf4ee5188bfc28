package core

import (
	"sort"
)

// RouteTable indexes routes by slug and remembers discovery order.
type RouteTable struct {
	routes []Route
	index  map[string]int
}

// Get returns the route served at slug.
func (t *RouteTable) Get(slug string) (Route, bool) {
	i, ok := t.index[slug]
	if !ok {
		return Route{}, false
	}
	return t.routes[i], true
}

// Len returns the number of routes.
func (t *RouteTable) Len() int { return len(t.routes) }

// All returns a copy of the routes in discovery order.
func (t *RouteTable) All() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Slugs returns the slugs in discovery order.
func (t *RouteTable) Slugs() []string {
	out := make([]string, len(t.routes))
	for i, r := range t.routes {
		out[i] = r.Slug
	}
	return out
}

// DeriveRoutes builds one route per page. If any slug is declared twice no
// table is returned and every conflict is reported.
func DeriveRoutes(pages []Page) (*RouteTable, error) {
	sources := make(map[string][]string, len(pages))
	var order []string
	for _, p := range pages {
		if _, seen := sources[p.Meta.Slug]; !seen {
			order = append(order, p.Meta.Slug)
		}
		sources[p.Meta.Slug] = append(sources[p.Meta.Slug], p.Document.SourcePath)
	}

	var conflicts []SlugConflict
	for _, slug := range order {
		if srcs := sources[slug]; len(srcs) > 1 {
			sorted := append([]string(nil), srcs...)
			sort.Strings(sorted)
			conflicts = append(conflicts, SlugConflict{Slug: slug, Sources: sorted})
		}
	}
	if len(conflicts) > 0 {
		return nil, &SlugConflictError{Conflicts: conflicts}
	}

	table := &RouteTable{
		routes: make([]Route, 0, len(pages)),
		index:  make(map[string]int, len(pages)),
	}
	for _, p := range pages {
		table.index[p.Meta.Slug] = len(table.routes)
		table.routes = append(table.routes, Route{
			Slug:     p.Meta.Slug,
			Template: p.Meta.Template,
			Metadata: p.Meta,
			Body:     p.Document.Body,
			Source:   p.Document.SourcePath,
		})
	}
	return table, nil
}

// DeriveNavigation lists the pages shown in the menu, ordered by navOrder.
// Pages without navOrder come last; ties keep discovery order.
func DeriveNavigation(pages []Page) []NavigationItem {
	items := make([]NavigationItem, 0, len(pages))
	for _, p := range pages {
		if !p.Meta.ShowInNav {
			continue
		}
		item := NavigationItem{Label: p.Meta.Title, Href: p.Meta.Slug}
		if p.Meta.NavOrder != nil {
			order := *p.Meta.NavOrder
			item.Order = &order
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Order, items[j].Order
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
	return items
}
