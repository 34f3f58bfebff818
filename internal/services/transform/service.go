package transform

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docvegas/internal/interfaces"
)

var (
	tagPattern       = regexp.MustCompile(`<[^>]*>`)
	spacePattern     = regexp.MustCompile(`[ \t]+`)
	blankLines       = regexp.MustCompile(`\n{3,}`)
	imagePattern     = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	linkPattern      = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	headingMarker    = regexp.MustCompile(`(?m)^[ \t]{0,3}#{1,6}[ \t]+`)
	listMarker       = regexp.MustCompile(`(?m)^[ \t]*(?:[-*+]|\d+\.)[ \t]+`)
	quoteMarker      = regexp.MustCompile(`(?m)^[ \t]*>[ \t]?`)
	emphasisMarker   = regexp.MustCompile(`\*{1,3}|_{2,3}|~~|` + "`+")
	horizontalRuling = regexp.MustCompile(`(?m)^[ \t]*(?:-{3,}|\*{3,}|_{3,})[ \t]*$`)
)

// Service converts page HTML into the plain text that content audits measure
type Service struct {
	logger arbor.ILogger
}

// NewService creates a new transform service
func NewService(logger arbor.ILogger) *Service {
	return &Service{
		logger: logger,
	}
}

var _ interfaces.ContentTransformer = (*Service)(nil)

// HTMLToMarkdown converts HTML content to markdown.
// baseURL is used for resolving relative links.
func (s *Service) HTMLToMarkdown(htmlStr string, baseURL string) (string, error) {
	if err := ValidateHTML(htmlStr); err != nil {
		return "", err
	}

	s.logger.Debug().
		Int("html_length", len(htmlStr)).
		Str("base_url", baseURL).
		Msg("Converting HTML to markdown")

	mdConverter := md.NewConverter(baseURL, true, nil)
	converted, err := mdConverter.ConvertString(htmlStr)
	if err != nil {
		s.logger.Warn().Err(err).Msg("HTML to markdown conversion failed, using fallback")
		return stripHTMLTags(htmlStr), nil
	}

	if strings.TrimSpace(converted) == "" {
		s.logger.Warn().
			Int("html_length", len(htmlStr)).
			Msg("HTML to markdown conversion produced empty output, applying fallback")
		return stripHTMLTags(htmlStr), nil
	}

	return converted, nil
}

// HTMLToText converts HTML to markdown and then drops the markdown syntax, leaving
// readable prose for word counts and keyword density
func (s *Service) HTMLToText(htmlStr string, baseURL string) (string, error) {
	markdown, err := s.HTMLToMarkdown(htmlStr, baseURL)
	if err != nil {
		return "", err
	}
	return MarkdownToText(markdown), nil
}

// MarkdownToText strips markdown markup while keeping link and image text
func MarkdownToText(markdown string) string {
	text := imagePattern.ReplaceAllString(markdown, "$1")
	text = linkPattern.ReplaceAllString(text, "$1")
	text = horizontalRuling.ReplaceAllString(text, "")
	text = headingMarker.ReplaceAllString(text, "")
	text = listMarker.ReplaceAllString(text, "")
	text = quoteMarker.ReplaceAllString(text, "")
	text = emphasisMarker.ReplaceAllString(text, "")
	text = spacePattern.ReplaceAllString(text, " ")
	text = blankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// stripHTMLTags removes tags for fallback cases
func stripHTMLTags(htmlStr string) string {
	stripped := tagPattern.ReplaceAllString(htmlStr, " ")
	cleaned := strings.Join(strings.Fields(html.UnescapeString(stripped)), " ")
	return strings.TrimSpace(cleaned)
}

// ValidateHTML checks if the input looks like HTML
func ValidateHTML(content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return fmt.Errorf("empty content")
	}

	if !strings.Contains(trimmed, "<") {
		return fmt.Errorf("content does not appear to be HTML")
	}

	return nil
}
