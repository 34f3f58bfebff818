// -----------------------------------------------------------------------
// Extractor - HTML cleanup, main-region probe and structured text output
// -----------------------------------------------------------------------

package scraper

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/docvegas/internal/models"
)

// Bullet prefixes list items in extracted text
const Bullet = "• "

// nonContentSelector removes chrome, scripts, forms and media embeds
const nonContentSelector = "nav, header, footer, script, style, iframe, noscript, aside, form, button, input, meta, svg, path, symbol, img, picture, video"

// adSelectors match ad, popup, cookie banner, newsletter and sidebar containers by class or id substring
var adSelectors = []string{
	`[class*="ad-"]`, `[class*="advertisement"]`, `[class*="popup"]`,
	`[id*="ad-"]`, `[id*="advertisement"]`, `[id*="popup"]`,
	`[class*="cookie"]`, `[class*="newsletter"]`, `[class*="sidebar"]`,
}

// contentSelectors are probed in order; semantic tags first, then CMS conventions
var contentSelectors = []string{
	"main",
	"article",
	`[role="main"]`,
	`[role="article"]`,
	".content",
	".post-content",
	".article-content",
	".entry-content",
	"#content",
	".post",
	".article",
	".blog-post",
	`[class*="content"]`,
	"div.container",
}

var (
	horizontalSpace = regexp.MustCompile(`[^\S\n]+`)
	contentStrip    = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?;:()\-•]`)
	titleStrip      = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?-]`)
	anySpace        = regexp.MustCompile(`\s+`)
)

// ErrNoContent is returned when nothing readable survives cleanup
var ErrNoContent = errors.New("no extractable content")

// ExtractOptions bounds the extraction
type ExtractOptions struct {
	MaxContentLength int // Characters kept in Content
	MinMainContent   int // Characters a candidate region must exceed to be accepted
}

// ExtractContent reduces an HTML document to ScrapedContent. It returns ErrNoContent
// when no text survives cleanup. Content is truncated to MaxContentLength at a sentence boundary.
func ExtractContent(html string, pageURL string, opts ExtractOptions) (*models.ScrapedContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	// Title is read before cleanup strips <head> children
	title := extractTitle(doc)

	removeNonContent(doc)

	region := findMainContent(doc, opts.MinMainContent)
	if region == nil {
		return nil, ErrNoContent
	}

	content := normalizeContent(structuredText(region))
	if content == "" {
		return nil, ErrNoContent
	}

	fullLength := len([]rune(content))

	domain := ""
	if u, err := url.Parse(pageURL); err == nil {
		domain = u.Host
	}
	if title == "" {
		title = domain
	}

	return &models.ScrapedContent{
		URL:           pageURL,
		Title:         title,
		Content:       TruncateAtSentence(content, opts.MaxContentLength),
		Domain:        domain,
		ContentLength: fullLength,
	}, nil
}

// extractTitle reads <title>, falling back to the first h1
func extractTitle(doc *goquery.Document) string {
	title := cleanTitle(doc.Find("title").First().Text())
	if title == "" {
		title = cleanTitle(doc.Find("h1").First().Text())
	}
	return title
}

func cleanTitle(s string) string {
	s = titleStrip.ReplaceAllString(s, "")
	return collapse(s)
}

func removeNonContent(doc *goquery.Document) {
	doc.Find(nonContentSelector).Remove()
	for _, selector := range adSelectors {
		doc.Find(selector).Remove()
	}
}

// findMainContent returns the first probed region with substantial text, else the body, else nil
func findMainContent(doc *goquery.Document, minChars int) *goquery.Selection {
	for _, selector := range contentSelectors {
		candidate := doc.Find(selector).First()
		if candidate.Length() > 0 && isSubstantial(candidate, minChars) {
			return candidate
		}
	}

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return nil
	}
	return body
}

func isSubstantial(sel *goquery.Selection, minChars int) bool {
	return len([]rune(collapse(sel.Text()))) > minChars
}

// structuredText emits headings first, then paragraphs and list items in document order
func structuredText(region *goquery.Selection) string {
	var parts []string

	region.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, h *goquery.Selection) {
		if text := collapse(h.Text()); text != "" {
			parts = append(parts, "\n"+text+"\n")
		}
	})

	region.Find("p, li").Each(func(_ int, el *goquery.Selection) {
		if goquery.NodeName(el) == "p" && el.ParentsFiltered("li").Length() > 0 {
			return // the enclosing list item already carries this text
		}
		text := collapse(el.Text())
		if text == "" {
			return
		}
		if goquery.NodeName(el) == "li" {
			text = Bullet + text
		}
		parts = append(parts, text)
	})

	return strings.Join(parts, "\n")
}

// normalizeContent collapses horizontal whitespace per line, limits blank runs to one
// paragraph break and strips characters outside the punctuation allow-list
func normalizeContent(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = contentStrip.ReplaceAllString(line, "")
		line = strings.TrimSpace(horizontalSpace.ReplaceAllString(line, " "))
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// TruncateAtSentence limits s to max characters, moving the cut back to the last
// sentence terminator inside the limit. Without one the hard cut is kept.
func TruncateAtSentence(s string, max int) string {
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}

	window := runes[:max]
	for i := len(window) - 1; i > 0; i-- {
		switch window[i] {
		case '.', '!', '?':
			return string(window[:i+1])
		}
	}
	return string(window)
}

func collapse(s string) string {
	return strings.TrimSpace(anySpace.ReplaceAllString(s, " "))
}
