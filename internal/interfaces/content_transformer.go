package interfaces

// ContentTransformer turns page HTML into auditable text
type ContentTransformer interface {
	HTMLToMarkdown(html string, baseURL string) (string, error)
	HTMLToText(html string, baseURL string) (string, error)
}
