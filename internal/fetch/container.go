package fetch

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/PuerkitoBio/purell"
	"github.com/gocolly/colly/v2"
	"golang.org/x/net/html"
)

const currencyMarker = "円"

var layoutClasses = []string{"col-md-4", "card_unit"}

func collectEntries(doc *goquery.Selection, req *colly.Request) []Entry {
	sourceURL := normalizeURL(req.URL.String())

	var entries []Entry
	doc.Find("img[alt]").Each(func(_ int, img *goquery.Selection) {
		alt := strings.TrimSpace(img.AttrOr("alt", ""))
		if alt == "" {
			return
		}

		container := findContainer(img)
		if container.Length() == 0 {
			return
		}
		sig, err := goquery.OuterHtml(container)
		if err != nil {
			slog.Warn("error serializing container", "url", sourceURL, "alt", alt, "err", err)
			return
		}

		src := img.AttrOr("data-original", "")
		if src == "" {
			src = img.AttrOr("src", "")
		}
		if src != "" {
			if abs := req.AbsoluteURL(src); abs != "" {
				src = normalizeURL(abs)
			}
		}

		entries = append(entries, Entry{
			AltText:       alt,
			ContainerText: text(container),
			Heading:       text(container.Find("h4").First()),
			ImageURL:      src,
			SourceURL:     sourceURL,
			Signature:     sig,
		})
	})
	return entries
}

// findContainer walks up from img to the closest div or li that is either
// a known layout cell or carries a price. Falls back to the direct parent.
func findContainer(img *goquery.Selection) *goquery.Selection {
	var found *goquery.Selection
	img.Parents().EachWithBreak(func(_ int, p *goquery.Selection) bool {
		if !p.Is("div, li") {
			return true
		}
		for _, class := range layoutClasses {
			if p.HasClass(class) {
				found = p
				return false
			}
		}
		if strings.Contains(text(p), currencyMarker) {
			found = p
			return false
		}
		return true
	})
	if found == nil {
		return img.Parent()
	}
	return found
}

// text joins the trimmed, non-empty text nodes under sel with single spaces.
func text(sel *goquery.Selection) string {
	var parts []string
	for _, n := range sel.Nodes {
		parts = appendText(parts, n)
	}
	return strings.Join(parts, " ")
}

func appendText(parts []string, node *html.Node) []string {
	if node.Type == html.TextNode {
		if t := strings.TrimSpace(node.Data); t != "" {
			parts = append(parts, t)
		}
		return parts
	}
	if node.Type == html.ElementNode && (node.Data == "script" || node.Data == "style") {
		return parts
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		parts = appendText(parts, child)
	}
	return parts
}

func normalizeURL(u string) string {
	normalized, err := purell.NormalizeURLString(u, purell.FlagsSafe|purell.FlagRemoveFragment)
	if err != nil {
		return u
	}
	return normalized
}
