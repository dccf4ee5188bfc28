// Package sitegen is the composition root of the content pipeline for the
// Associazione Nuova Vita website.
//
// It connects the domain (pkg/core: validation, routes, navigation) with the
// filesystem adapter (pkg/adapters/fs) using the Hexagonal Architecture
// pattern. A build discovers every content file, validates its frontmatter
// against the page schema, and derives the route table and the navigation
// menu. HTML output and the routes.json manifest are produced by the
// sitegen command from the resulting Site.
//
// Usage:
//
//	site, err := sitegen.Build(ctx,
//		sitegen.WithRoots("content/pages", "src/pages"),
//		sitegen.WithLogger(logger),
//	)
//
//	for _, route := range site.Routes.All() {
//		fmt.Println(route.Slug, route.Template)
//	}
package sitegen
