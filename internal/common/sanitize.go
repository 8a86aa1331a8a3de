package common

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Rich-text fields (workSummary, projectSummary) arrive from editors as
// HTML fragments. They are reduced to this markup subset before storage
// and again before rendering, so an injected script never reaches a page.
var allowedTags = map[string]bool{
	"p": true, "br": true, "b": true, "strong": true, "i": true,
	"em": true, "u": true, "s": true, "ul": true, "ol": true,
	"li": true, "span": true, "div": true, "a": true, "h3": true,
	"h4": true,
}

// dropTags are removed together with their contents.
var dropTags = "script, style, iframe, frame, frameset, object, embed, form, input, button, textarea, select, link, meta, base, svg, math"

// SanitizeHTML reduces an HTML fragment to the allowed markup subset.
// Disallowed elements are unwrapped (their text survives), dangerous
// elements are dropped with their contents, and every attribute except a
// safe href on anchors is stripped. Empty input stays empty.
func SanitizeHTML(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		// Unparsable markup is treated as plain text.
		return html.EscapeString(fragment)
	}

	doc.Find(dropTags).Remove()

	// Unwrap disallowed elements until none remain. Each pass can expose
	// new disallowed elements that were nested inside unwrapped ones.
	for {
		changed := false
		doc.Find("body *").Each(func(_ int, s *goquery.Selection) {
			node := s.Nodes[0]
			if node.Type == html.ElementNode && !allowedTags[node.Data] {
				s.ReplaceWithSelection(s.Contents())
				changed = true
			}
		})
		if !changed {
			break
		}
	}

	doc.Find("body *").Each(func(_ int, s *goquery.Selection) {
		scrubAttributes(s.Nodes[0])
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return html.EscapeString(fragment)
	}
	return strings.TrimSpace(out)
}

// scrubAttributes drops every attribute except a safe href on anchors.
func scrubAttributes(node *html.Node) {
	kept := node.Attr[:0]
	for _, attr := range node.Attr {
		if node.Data == "a" && attr.Key == "href" && safeHref(attr.Val) {
			kept = append(kept, attr)
		}
	}
	node.Attr = kept
}

func safeHref(href string) bool {
	trimmed := strings.TrimSpace(strings.ToLower(href))
	for _, scheme := range []string{"javascript:", "data:", "vbscript:"} {
		if strings.HasPrefix(trimmed, scheme) {
			return false
		}
	}
	return true
}
