// Package classify derives a material type and display metadata from a web
// page. Classification is host based: known book, video and podcast hosts map
// to their types and everything else falls back to webpage.
package classify

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/studylist/studylist-sync/internal/model"
)

// PageInfo is the classification result for one page.
type PageInfo struct {
	Type  model.MaterialType `json:"type"`
	Title string             `json:"title"`
	URL   string             `json:"url"`
	Info  AdditionalInfo     `json:"additionalInfo"`
}

// AdditionalInfo carries type-specific metadata scraped from the page.
// Fields are best effort and may be empty.
type AdditionalInfo struct {
	Author       string `json:"author,omitempty"`
	Description  string `json:"description,omitempty"`
	Thumbnail    string `json:"thumbnail,omitempty"`
	ChannelName  string `json:"channelName,omitempty"`
	EpisodeTitle string `json:"episodeTitle,omitempty"`
}

// Host tables are checked in order; the first match wins. Suffix matching
// keeps regional hosts like books.google.de in scope.
var hostTypes = []struct {
	hosts []string
	typ   model.MaterialType
}{
	{[]string{"books.google.com", "goodreads.com", "kobo.com"}, model.TypeBook},
	{[]string{"youtube.com", "youtu.be", "vimeo.com", "ted.com"}, model.TypeVideo},
	{[]string{"open.spotify.com", "podcasts.apple.com", "podcasts.google.com"}, model.TypePodcast},
}

// TypeForURL classifies a URL by host alone.
func TypeForURL(rawURL string) model.MaterialType {
	u, err := url.Parse(rawURL)
	if err != nil {
		return model.TypeWebpage
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	for _, entry := range hostTypes {
		for _, h := range entry.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return entry.typ
			}
		}
	}
	return model.TypeWebpage
}

// Classify inspects a parsed page and returns its material type plus
// whatever metadata the page exposes. Title resolution prefers the first
// h1, then og:title, then the document title.
func Classify(rawURL string, doc *html.Node) PageInfo {
	info := PageInfo{
		Type: TypeForURL(rawURL),
		URL:  rawURL,
	}
	if doc == nil {
		return info
	}

	meta := collectMeta(doc)

	info.Title = firstNonEmpty(textOf(findElement(doc, "h1")), meta["og:title"], textOf(findElement(doc, "title")))
	info.Info.Description = firstNonEmpty(meta["og:description"], meta["description"])
	info.Info.Thumbnail = meta["og:image"]
	info.Info.Author = meta["author"]

	switch info.Type {
	case model.TypeVideo:
		info.Info.ChannelName = firstNonEmpty(meta["og:video:tag"], meta["author"])
	case model.TypePodcast:
		info.Info.EpisodeTitle = firstNonEmpty(meta["og:title"], info.Title)
	case model.TypeBook:
		if info.Info.Author == "" {
			info.Info.Author = meta["books:author"]
		}
	}
	return info
}

// collectMeta flattens <meta> name/property and content pairs into one map.
func collectMeta(doc *html.Node) map[string]string {
	meta := make(map[string]string)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var key, content string
			for _, a := range n.Attr {
				switch a.Key {
				case "name", "property":
					key = strings.ToLower(a.Val)
				case "content":
					content = a.Val
				}
			}
			if key != "" && content != "" {
				if _, seen := meta[key]; !seen {
					meta[key] = content
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return meta
}

func findElement(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, name); found != nil {
			return found
		}
	}
	return nil
}

func textOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
