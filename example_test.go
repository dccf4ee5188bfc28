package sitegen_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/assonuovavita/sitegen"
)

// Example_build discovers two pages, validates them and prints routes and menu.
func Example_build() {
	tmpDir, err := os.MkdirTemp("", "sitegen-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	pages := map[string]string{
		"index.mdx": `---
title: Home
description: Associazione Nuova Vita aiuta le persone in difficoltà nella nostra comunità.
slug: /
date: 2024-01-10
template: landing-page
---
<Hero title="Aiutiamo la Comunità" />
`,
		"chi-siamo.mdx": `---
title: Chi Siamo
description: La storia dell'associazione, i volontari e i progetti che portiamo avanti.
slug: /chi-siamo
date: 2024-03-01
showInNav: true
navOrder: 1
---
Nati nel 1998.
`,
	}
	for name, content := range pages {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte(content), 0o644); err != nil {
			log.Fatal(err)
		}
	}

	site, err := sitegen.Build(context.Background(), sitegen.WithRoots(tmpDir))
	if err != nil {
		log.Fatal(err)
	}

	for _, route := range site.Routes.All() {
		fmt.Println(route.Slug, route.Template)
	}
	for _, item := range site.Navigation {
		fmt.Println("nav:", item.Label, item.Href)
	}

	// Output:
	// /chi-siamo page
	// / landing-page
	// nav: Chi Siamo /chi-siamo
	// nav: Home /
}
