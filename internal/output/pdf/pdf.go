// Package pdf renders laid-out worksheets into a PDF document, drawing
// each problem's SVG elements with primitive PDF commands.
package pdf

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/abhisek/mathtest/internal/fileutil"
	"github.com/abhisek/mathtest/internal/layout"
	"github.com/abhisek/mathtest/internal/output"
	"github.com/abhisek/mathtest/internal/plugin"
	"github.com/abhisek/mathtest/internal/svgdoc"
)

// problemFont is the monospace face problems render in; the SVG
// font-family hint is advisory only.
const problemFont = "Courier"

// creationDate is pinned so identical inputs produce identical bytes.
var creationDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Generator writes worksheets as PDF files.
type Generator struct{}

// New returns a PDF generator.
func New() *Generator { return &Generator{} }

var _ output.Generator = (*Generator)(nil)

// Generate renders every test as an independent page group and writes
// the document atomically to path, overwriting any previous file.
func (g *Generator) Generate(tests []output.Test, params layout.Params, path string) error {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetCatalogSort(true)
	doc.SetCreationDate(creationDate)
	doc.SetModificationDate(creationDate)
	if params.Title != "" {
		doc.SetTitle(params.Title, true)
	}
	tr := doc.UnicodeTranslatorFromDescriptor("")

	for _, test := range tests {
		if err := g.renderTest(doc, tr, test, params); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return fmt.Errorf("render PDF: %w", err)
	}
	return fileutil.WriteFile(path, buf.Bytes(), 0o644)
}

func (g *Generator) renderTest(doc *fpdf.Fpdf, tr func(string) string, test output.Test, params layout.Params) error {
	visuals := make([]*svgdoc.Document, len(test.Problems))
	for i, problem := range test.Problems {
		parsed, err := svgdoc.Parse(problem.SVG)
		if err != nil {
			return fmt.Errorf("problem %d: %w", i+1, err)
		}
		visuals[i] = parsed
	}

	for _, page := range test.Doc.Pages {
		doc.AddPage()
		if page.Header {
			drawHeader(doc, params)
		}
		for _, placement := range page.Placements {
			drawVisual(doc, tr, visuals[placement.Slot], placement)
		}
	}

	for _, answerPage := range test.Doc.AnswerPages {
		drawAnswerPage(doc, tr, test.Problems, answerPage, params)
	}
	return nil
}

// drawHeader renders the centered title and, when enabled, the
// Name/Date fields with fill-in underlines. An empty title drops the
// title line only; the fields still render when IncludeHeader is set.
func drawHeader(doc *fpdf.Fpdf, params layout.Params) {
	y := params.Margin
	if params.Title != "" {
		doc.SetFont("Helvetica", "", params.TitleFontSize)
		titleWidth := doc.GetStringWidth(params.Title)
		titleX := math.Max((layout.PageWidth-titleWidth)/2, 0)
		y += params.TitleFontSize
		doc.Text(titleX, y, params.Title)
		y += params.TitleFontSize * 0.5
	}

	if !params.IncludeHeader {
		return
	}

	labelSize := math.Max(params.TitleFontSize, 10)
	doc.SetFont("Helvetica", "", labelSize)
	labelY := y + labelSize
	lineY := labelY + labelSize*0.3
	labelPadding := labelSize * 0.5

	contentWidth := math.Max(layout.PageWidth-2*params.Margin, 0)
	nameFieldWidth := contentWidth * 0.5
	dateFieldWidth := contentWidth * 0.35
	dateX := params.Margin + contentWidth - dateFieldWidth

	drawField := func(label string, x, width float64) {
		doc.Text(x, labelY, label)
		lineStart := x + doc.GetStringWidth(label) + labelPadding
		lineEnd := x + width
		if lineEnd > lineStart {
			doc.SetLineWidth(1)
			doc.SetDrawColor(0, 0, 0)
			doc.Line(lineStart, lineY, lineEnd, lineY)
		}
	}
	drawField("Name:", params.Margin, nameFieldWidth)
	drawField("Date:", dateX, dateFieldWidth)
}

// drawVisual renders one parsed SVG block scaled into its placement.
func drawVisual(doc *fpdf.Fpdf, tr func(string) string, visual *svgdoc.Document, placement layout.Placement) {
	scale := placement.Scale
	for _, element := range visual.Elements {
		switch el := element.(type) {
		case svgdoc.Text:
			size := el.FontSize * scale
			doc.SetFont(problemFont, "", size)
			text := tr(el.Value)
			x := placement.X + el.X*scale
			switch el.Anchor {
			case "middle":
				x -= doc.GetStringWidth(text) / 2
			case "end":
				x -= doc.GetStringWidth(text)
			}
			doc.Text(x, placement.Y+el.Y*scale, text)
		case svgdoc.Line:
			r, g, b := hexToRGB(el.Stroke)
			doc.SetDrawColor(r, g, b)
			doc.SetLineWidth(el.StrokeWidth * scale)
			doc.Line(
				placement.X+el.X1*scale, placement.Y+el.Y1*scale,
				placement.X+el.X2*scale, placement.Y+el.Y2*scale,
			)
		case svgdoc.Circle:
			style := ""
			if el.Fill != "" && el.Fill != "none" {
				r, g, b := hexToRGB(el.Fill)
				doc.SetFillColor(r, g, b)
				style = "F"
			}
			if el.Stroke != "" && el.Stroke != "none" {
				r, g, b := hexToRGB(el.Stroke)
				doc.SetDrawColor(r, g, b)
				doc.SetLineWidth(el.StrokeWidth * scale)
				style += "D"
			}
			if style == "" {
				style = "D"
			}
			doc.Circle(placement.X+el.CX*scale, placement.Y+el.CY*scale, el.R*scale, style)
		}
	}
}

// drawAnswerPage renders one page of the numbered answer key in
// original slot order.
func drawAnswerPage(doc *fpdf.Fpdf, tr func(string) string, problems []plugin.Problem, page layout.AnswerPage, params layout.Params) {
	doc.AddPage()
	y := params.Margin

	if page.Title {
		doc.SetFont("Helvetica", "", params.TitleFontSize)
		y += params.TitleFontSize
		doc.Text(params.Margin, y, "Answer Key")
		y += params.TitleFontSize * 0.2
	}

	lineHeight := params.AnswerFontSize * 1.4
	doc.SetFont(problemFont, "", params.AnswerFontSize)
	for _, slot := range page.Slots {
		y += lineHeight
		line := fmt.Sprintf("%d. %s", slot+1, formatAnswer(problems[slot].Data["answer"]))
		doc.Text(params.Margin, y, tr(line))
	}
}

// formatAnswer renders an answer value the way it appears in the
// reproduction artifact: integers without a decimal point, everything
// else via its default formatting.
func formatAnswer(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func hexToRGB(value string) (int, int, int) {
	digits := value
	if len(digits) > 0 && digits[0] == '#' {
		digits = digits[1:]
	}
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	if len(digits) != 6 {
		return 0, 0, 0
	}
	n, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(n >> 16), int((n >> 8) & 0xFF), int(n & 0xFF)
}
