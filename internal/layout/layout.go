// Package layout arranges an ordered sequence of problem visuals into
// a paginated column grid, with an optional answer-key section. It is
// pure geometry: visuals are opaque rectangles with intrinsic
// dimensions, and rendering happens elsewhere.
package layout

import (
	"fmt"
	"math"
)

// US Letter, in points.
const (
	PageWidth     = 612.0
	PageHeight    = 792.0
	PointsPerInch = 72.0
)

// Params configures the page grid for one run. Lengths are in points.
type Params struct {
	Margin         float64
	Columns        int
	ColumnSpacing  float64
	ProblemSpacing float64

	// MaxRowHeight caps a visual's scaled height so one tall visual
	// cannot blow up a row. Zero disables the cap; the printable page
	// height always applies.
	MaxRowHeight float64

	Title          string
	TitleFontSize  float64
	AnswerFontSize float64
	IncludeHeader  bool // Name/Date fields under the title
	IncludeAnswers bool
}

// DefaultParams mirrors the worksheet defaults: 3/4-inch margins, four
// columns, and a student header.
func DefaultParams() Params {
	return Params{
		Margin:         0.75 * PointsPerInch,
		Columns:        4,
		ColumnSpacing:  0.25 * PointsPerInch,
		ProblemSpacing: 0.35 * PointsPerInch,
		MaxRowHeight:   3.0 * PointsPerInch,
		Title:          "Math Test",
		TitleFontSize:  20,
		AnswerFontSize: 12,
		IncludeHeader:  true,
	}
}

// Visual is an opaque rectangular block with intrinsic dimensions.
type Visual struct {
	Width  float64
	Height float64
}

// Placement positions one visual (by slot index) on a page. X and Y
// are the block's top-left corner with the page origin at the top
// left.
type Placement struct {
	Slot   int
	X, Y   float64
	Width  float64
	Height float64
	Scale  float64
}

// Page holds the placements sharing one page. Header is set on the
// first page of a test only; continuation pages carry no header.
type Page struct {
	Header     bool
	Placements []Placement
}

// AnswerPage lists the slots whose answers render on one page of the
// answer-key section.
type AnswerPage struct {
	Title bool // answer-key heading, first answer page only
	Slots []int
}

// Document is the paginated form of one test.
type Document struct {
	Pages       []Page
	AnswerPages []AnswerPage
	CellWidth   float64
}

// LayoutError indicates non-recoverable geometry, such as margins that
// leave no usable width.
type LayoutError struct {
	Msg string
}

func (e *LayoutError) Error() string { return e.Msg }

// Paginate lays the visuals out left-to-right, top-to-bottom in the
// configured column grid. Each visual is uniformly scaled to the cell
// width, bounded by the row-height cap and the printable page height,
// so a row always fits somewhere. An empty visual list still produces
// a header-only page.
func Paginate(visuals []Visual, p Params) (*Document, error) {
	if p.Columns < 1 {
		return nil, &LayoutError{Msg: "column count must be at least 1"}
	}
	if p.Margin < 0 || p.ColumnSpacing < 0 || p.ProblemSpacing < 0 {
		return nil, &LayoutError{Msg: "margins and spacing cannot be negative"}
	}

	usable := PageWidth - 2*p.Margin - float64(p.Columns-1)*p.ColumnSpacing
	if usable <= 0 {
		return nil, &LayoutError{Msg: "margins and column spacing leave no usable width"}
	}
	cellWidth := usable / float64(p.Columns)

	printable := PageHeight - 2*p.Margin
	headerHeight := p.headerHeight()
	if printable <= 0 || printable-headerHeight <= 0 {
		return nil, &LayoutError{Msg: "margins and header leave no printable height"}
	}

	doc := &Document{CellWidth: cellWidth}
	doc.Pages = append(doc.Pages, Page{Header: true})
	y := p.Margin + headerHeight

	for start := 0; start < len(visuals); start += p.Columns {
		end := start + p.Columns
		if end > len(visuals) {
			end = len(visuals)
		}

		row, rowHeight, err := p.placeRow(visuals[start:end], start, cellWidth, printable)
		if err != nil {
			return nil, err
		}

		if y+rowHeight > PageHeight-p.Margin {
			doc.Pages = append(doc.Pages, Page{})
			y = p.Margin
		}
		page := &doc.Pages[len(doc.Pages)-1]
		for i := range row {
			row[i].Y = y
			page.Placements = append(page.Placements, row[i])
		}
		y += rowHeight + p.ProblemSpacing
	}

	if p.IncludeAnswers && len(visuals) > 0 {
		doc.AnswerPages = p.paginateAnswers(len(visuals))
	}
	return doc, nil
}

// placeRow scales and positions up to one row of visuals. Y offsets
// are filled in by the caller once the row's page is known. Visuals
// are right-aligned within their cell so operand columns line up.
func (p Params) placeRow(visuals []Visual, firstSlot int, cellWidth, printable float64) ([]Placement, float64, error) {
	maxHeight := printable
	if p.MaxRowHeight > 0 && p.MaxRowHeight < maxHeight {
		maxHeight = p.MaxRowHeight
	}

	row := make([]Placement, len(visuals))
	rowHeight := 0.0
	for i, v := range visuals {
		if v.Width <= 0 || v.Height <= 0 {
			return nil, 0, &LayoutError{Msg: fmt.Sprintf("problem %d has non-positive dimensions", firstSlot+i+1)}
		}
		scale := cellWidth / v.Width
		if v.Height*scale > maxHeight {
			scale = maxHeight / v.Height
		}
		width, height := v.Width*scale, v.Height*scale

		cellLeft := p.Margin + float64(i)*(cellWidth+p.ColumnSpacing)
		row[i] = Placement{
			Slot:   firstSlot + i,
			X:      cellLeft + (cellWidth - width),
			Width:  width,
			Height: height,
			Scale:  scale,
		}
		if height > rowHeight {
			rowHeight = height
		}
	}
	return row, rowHeight, nil
}

// headerHeight is the vertical space the header block consumes on a
// test's first page: the title line when a title is set, plus the
// Name/Date field line when IncludeHeader is set.
func (p Params) headerHeight() float64 {
	height := 0.0
	if p.Title != "" {
		height += p.TitleFontSize * 1.5
	}
	if p.IncludeHeader {
		labelSize := math.Max(p.TitleFontSize, 10)
		height += labelSize * 1.6
	}
	return height
}

// paginateAnswers chunks n answer lines into pages. The first page
// loses room to the answer-key heading.
func (p Params) paginateAnswers(n int) []AnswerPage {
	lineHeight := p.AnswerFontSize * 1.4
	headingHeight := p.TitleFontSize * 1.2
	printable := PageHeight - 2*p.Margin

	firstCapacity := int((printable - headingHeight) / lineHeight)
	if firstCapacity < 1 {
		firstCapacity = 1
	}
	capacity := int(printable / lineHeight)
	if capacity < 1 {
		capacity = 1
	}

	var pages []AnswerPage
	slot := 0
	for slot < n {
		limit := capacity
		title := len(pages) == 0
		if title {
			limit = firstCapacity
		}
		page := AnswerPage{Title: title}
		for i := 0; i < limit && slot < n; i++ {
			page.Slots = append(page.Slots, slot)
			slot++
		}
		pages = append(pages, page)
	}
	return pages
}
