package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docvegas/internal/interfaces"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Page geometry in mm (A4 portrait)
const (
	pageHeight  = 297.0
	margin      = 12.0
	usableWidth = 210.0 - 2*margin
	bodyFont    = "Arial"
	bodySize    = 10.0
	lineHeight  = 5.0
)

// Service renders audit reports (markdown) as PDF documents
type Service struct {
	logger arbor.ILogger
}

var _ interfaces.PDFService = (*Service)(nil)

// NewService creates a new PDF service
func NewService(logger arbor.ILogger) *Service {
	return &Service{
		logger: logger,
	}
}

// ConvertMarkdownToPDF converts markdown content to a PDF byte slice. The title is
// printed in the page header and stored in the document properties.
func (s *Service) ConvertMarkdownToPDF(markdown, title string) ([]byte, error) {
	s.logger.Debug().
		Int("markdown_len", len(markdown)).
		Str("title", title).
		Msg("Converting markdown to PDF")

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(title, true)
	pdf.SetCreator("docvegas", true)
	pdf.SetMargins(margin, margin+8, margin)
	pdf.SetAutoPageBreak(true, margin+4)

	generated := time.Now().UTC().Format("2006-01-02 15:04 UTC")
	pdf.SetHeaderFunc(func() {
		pdf.SetY(margin - 2)
		pdf.SetFont(bodyFont, "B", 8)
		pdf.SetTextColor(90, 90, 90)
		pdf.CellFormat(usableWidth/2, 5, tr(title), "", 0, "L", false, 0, "")
		pdf.CellFormat(usableWidth/2, 5, generated, "", 1, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(4)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-margin)
		pdf.SetFont(bodyFont, "I", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont(bodyFont, "", bodySize)

	md := goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough))
	source := []byte(markdown)
	doc := md.Parser().Parse(text.NewReader(source))

	renderer := &pdfRenderer{
		pdf:    pdf,
		tr:     tr,
		source: source,
	}

	if err := ast.Walk(doc, renderer.walk); err != nil {
		s.logger.Error().Err(err).Msg("Failed to render markdown")
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate PDF output")
		return nil, fmt.Errorf("failed to generate PDF output: %w", err)
	}

	s.logger.Debug().Int("pdf_size", buf.Len()).Msg("PDF generated")
	return buf.Bytes(), nil
}

type pdfRenderer struct {
	pdf       *fpdf.Fpdf
	tr        func(string) string
	source    []byte
	bold      bool
	italic    bool
	listLevel int
	ordinals  []int
}

func (r *pdfRenderer) updateFont() {
	style := ""
	if r.bold {
		style += "B"
	}
	if r.italic {
		style += "I"
	}
	r.pdf.SetFont(bodyFont, style, bodySize)
}

func (r *pdfRenderer) write(s string) {
	r.pdf.Write(lineHeight, r.tr(s))
}

func (r *pdfRenderer) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Heading:
		r.heading(node, entering)
	case *ast.Paragraph:
		if !entering && r.listLevel == 0 {
			r.pdf.Ln(lineHeight + 2)
		}
	case *ast.TextBlock:
		// tight list items
	case *ast.Text:
		if entering {
			r.write(string(node.Segment.Value(r.source)))
			if node.SoftLineBreak() {
				r.write(" ")
			}
			if node.HardLineBreak() {
				r.pdf.Ln(lineHeight)
			}
		}
	case *ast.String:
		if entering {
			r.write(string(node.Value))
		}
	case *ast.Emphasis:
		if node.Level == 2 {
			r.bold = entering
		} else {
			r.italic = entering
		}
		r.updateFont()
	case *ast.CodeSpan:
		if entering {
			r.pdf.SetFont("Courier", "", bodySize)
			r.write(string(node.Text(r.source)))
			r.updateFont()
		}
		return ast.WalkSkipChildren, nil
	case *ast.FencedCodeBlock:
		if entering {
			r.codeBlock(node.Lines())
		}
		return ast.WalkSkipChildren, nil
	case *ast.CodeBlock:
		if entering {
			r.codeBlock(node.Lines())
		}
		return ast.WalkSkipChildren, nil
	case *ast.List:
		r.list(node, entering)
	case *ast.ListItem:
		if entering {
			r.listItem()
		}
	case *ast.ThematicBreak:
		if entering {
			y := r.pdf.GetY() + 2
			r.pdf.Line(margin, y, margin+usableWidth, y)
			r.pdf.Ln(5)
		}
	case *extast.Table:
		if entering {
			r.table(node)
		}
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}

func (r *pdfRenderer) heading(n *ast.Heading, entering bool) {
	if !entering {
		r.pdf.Ln(lineHeight + 3)
		r.updateFont()
		return
	}

	sizes := map[int]float64{1: 16, 2: 13, 3: 11}
	size, ok := sizes[n.Level]
	if !ok {
		size = bodySize
	}
	if n.Level > 1 {
		r.pdf.Ln(2)
	}
	r.pdf.SetFont(bodyFont, "B", size)
}

func (r *pdfRenderer) codeBlock(lines *text.Segments) {
	r.pdf.SetFont("Courier", "", 9)
	r.pdf.SetFillColor(245, 245, 245)
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		r.pdf.MultiCell(0, 4.5, r.tr(strings.TrimRight(string(line.Value(r.source)), "\n")), "", "L", true)
	}
	r.pdf.SetFillColor(255, 255, 255)
	r.updateFont()
	r.pdf.Ln(3)
}

func (r *pdfRenderer) list(n *ast.List, entering bool) {
	if entering {
		r.listLevel++
		start := 0
		if n.IsOrdered() {
			start = n.Start
		}
		r.ordinals = append(r.ordinals, start)
		return
	}

	r.listLevel--
	r.ordinals = r.ordinals[:len(r.ordinals)-1]
	if r.listLevel == 0 {
		r.pdf.Ln(lineHeight + 2)
	}
}

func (r *pdfRenderer) listItem() {
	if r.pdf.GetX() > margin+0.1 {
		r.pdf.Ln(lineHeight)
	}
	r.pdf.SetX(margin + float64(r.listLevel)*5)

	depth := len(r.ordinals) - 1
	if depth >= 0 && r.ordinals[depth] > 0 {
		r.write(fmt.Sprintf("%d. ", r.ordinals[depth]))
		r.ordinals[depth]++
		return
	}
	r.write("- ")
}

func (r *pdfRenderer) table(n *extast.Table) {
	var rows [][]string
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch row := child.(type) {
		case *extast.TableHeader:
			rows = append(rows, r.cells(row))
		case *extast.TableRow:
			rows = append(rows, r.cells(row))
		}
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return
	}

	if r.pdf.GetX() > margin+0.1 {
		r.pdf.Ln(lineHeight)
	}

	widths := r.columnWidths(rows)
	for i, row := range rows {
		if i == 0 {
			r.pdf.SetFont(bodyFont, "B", 9)
			r.pdf.SetFillColor(230, 230, 230)
		} else {
			r.pdf.SetFont(bodyFont, "", 9)
		}
		for j, w := range widths {
			cell := ""
			if j < len(row) {
				cell = row[j]
			}
			r.pdf.CellFormat(w, 6, r.tr(fit(r.pdf, cell, w-2)), "1", 0, "L", i == 0, 0, "")
		}
		r.pdf.Ln(-1)
	}

	r.pdf.SetFillColor(255, 255, 255)
	r.updateFont()
	r.pdf.Ln(4)
}

func (r *pdfRenderer) cells(row ast.Node) []string {
	var cells []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		cells = append(cells, strings.TrimSpace(string(cell.Text(r.source))))
	}
	return cells
}

// columnWidths sizes columns to their widest cell, scaled to the usable width
func (r *pdfRenderer) columnWidths(rows [][]string) []float64 {
	r.pdf.SetFont(bodyFont, "B", 9)
	widths := make([]float64, len(rows[0]))
	total := 0.0
	for i := range widths {
		for _, row := range rows {
			if i < len(row) {
				if w := r.pdf.GetStringWidth(row[i]) + 4; w > widths[i] {
					widths[i] = w
				}
			}
		}
		total += widths[i]
	}

	scale := usableWidth / total
	for i := range widths {
		widths[i] *= scale
	}
	return widths
}

// fit shortens s with an ellipsis until it fits width
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
