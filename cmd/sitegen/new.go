package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/assonuovavita/sitegen/pkg/adapters/fs"
	"github.com/assonuovavita/sitegen/pkg/core"
)

var (
	newTitle       string
	newDescription string
	newTemplate    string
	newShowInNav   bool
	newNavOrder    int
	newMetaImage   string
	newExt         string
)

var newCmd = &cobra.Command{
	Use:   "new <slug>",
	Short: "Scaffold a content page with valid frontmatter",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadProject()
		if err != nil {
			fatal("Error loading config", err)
		}
		if len(cfg.Content.Roots) == 0 {
			fatal("Error scaffolding page", errors.New("no content roots configured"))
		}

		slug := args[0]
		if !strings.HasPrefix(slug, "/") {
			slug = "/" + slug
		}

		meta := core.Metadata{
			core.FieldTitle:       newTitle,
			core.FieldDescription: newDescription,
			core.FieldSlug:        slug,
			core.FieldDate:        core.DateOf(time.Now()).String(),
			core.FieldTemplate:    newTemplate,
			core.FieldShowInNav:   newShowInNav,
		}
		if cmd.Flags().Changed("nav-order") {
			meta[core.FieldNavOrder] = newNavOrder
		}
		if newMetaImage != "" {
			meta[core.FieldMetaImage] = newMetaImage
		}

		target := pagePath(cfg.Content.Roots[0], slug, newExt)
		doc := core.Document{SourcePath: filepath.ToSlash(target), Metadata: meta}
		validated, violations := core.Validate(doc)
		if len(violations) > 0 {
			fatal("Invalid page", &core.SchemaError{Violations: violations})
		}
		doc.Metadata = validated.Frontmatter()
		doc.Body = "# " + validated.Title + "\n"

		if _, err := os.Stat(target); err == nil {
			fatal("Error scaffolding page", fmt.Errorf("%s already exists", target))
		}

		data, err := fs.NewMarkdownSerializer().Serialize(doc)
		if err != nil {
			fatal("Error serializing page", err)
		}
		if err := fs.WriteFileAtomic(target, data, 0o644); err != nil {
			fatal("Error writing page", err)
		}
		fmt.Println(target)
	},
}

// pagePath maps a slug to a file under root: "/" is index, "/a/b" is a/b.
func pagePath(root, slug, ext string) string {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	name := strings.Trim(slug, "/")
	if name == "" {
		name = "index"
	}
	return filepath.Join(root, filepath.FromSlash(name)+ext)
}

func init() {
	newCmd.Flags().StringVarP(&newTitle, "title", "t", "", "page title (1-70 characters)")
	newCmd.Flags().StringVarP(&newDescription, "description", "d", "", "page description (50-160 characters)")
	newCmd.Flags().StringVar(&newTemplate, "template", string(core.TemplatePage), "page template (page, landing-page)")
	newCmd.Flags().BoolVar(&newShowInNav, "nav", true, "show the page in the navigation menu")
	newCmd.Flags().IntVar(&newNavOrder, "nav-order", 0, "position in the navigation menu")
	newCmd.Flags().StringVar(&newMetaImage, "meta-image", "", "social sharing image path")
	newCmd.Flags().StringVar(&newExt, "ext", ".mdx", "file extension")
	_ = newCmd.MarkFlagRequired("title")
	rootCmd.AddCommand(newCmd)
}
