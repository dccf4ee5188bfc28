package core

import "strings"

// Head holds the values a head-tag generator needs for one page.
type Head struct {
	Title       string
	Description string
	URL         string
	ImageURL    string
}

// Head derives the head-tag values of m.
func (s SiteInfo) Head(m PageMetadata) Head {
	h := Head{
		Title:       m.Title,
		Description: m.Description,
		URL:         s.AbsoluteURL(m.Slug),
	}
	if s.Title != "" {
		h.Title = m.Title + " | " + s.Title
	}
	if m.MetaImage != "" {
		h.ImageURL = s.AbsoluteURL(strings.TrimPrefix(m.MetaImage, "."))
	}
	return h
}

// AbsoluteURL joins the site origin with a root-relative path.
func (s SiteInfo) AbsoluteURL(path string) string {
	origin := strings.TrimRight(s.Origin, "/")
	if path == "" || path == "/" {
		return origin + "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return origin + path
}
