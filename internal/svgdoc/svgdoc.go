// Package svgdoc parses the limited SVG subset emitted by the problem
// renderers (text, line and circle elements) back into drawable
// elements with intrinsic dimensions. The layout engine uses the
// dimensions; the PDF generator draws the elements.
package svgdoc

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Document is a parsed problem visual.
type Document struct {
	Width    float64
	Height   float64
	Elements []Element
}

// Element is one drawable SVG element, in document order.
type Element interface {
	isElement()
}

// Text is an SVG <text> element. Y is the text baseline.
type Text struct {
	X, Y       float64
	FontSize   float64
	Anchor     string // "start", "middle" or "end"
	FontFamily string
	Value      string
}

// Line is an SVG <line> element.
type Line struct {
	X1, Y1, X2, Y2 float64
	Stroke         string
	StrokeWidth    float64
}

// Circle is an SVG <circle> element.
type Circle struct {
	CX, CY, R   float64
	Fill        string
	Stroke      string
	StrokeWidth float64
}

func (Text) isElement()   {}
func (Line) isElement()   {}
func (Circle) isElement() {}

// Parse decodes an SVG string into a Document. Unsupported elements
// are ignored; missing width/height fall back to the viewBox.
func Parse(markup string) (*Document, error) {
	dec := xml.NewDecoder(strings.NewReader(markup))
	doc := &Document{}
	sawRoot := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse SVG: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "svg":
			if err := doc.readRootAttrs(start); err != nil {
				return nil, err
			}
			sawRoot = true
		case "text":
			el, err := decodeText(dec, start)
			if err != nil {
				return nil, err
			}
			doc.Elements = append(doc.Elements, el)
		case "line":
			el, err := decodeLine(dec, start)
			if err != nil {
				return nil, err
			}
			doc.Elements = append(doc.Elements, el)
		case "circle":
			el, err := decodeCircle(dec, start)
			if err != nil {
				return nil, err
			}
			doc.Elements = append(doc.Elements, el)
		default:
			if sawRoot {
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("parse SVG: %w", err)
				}
			}
		}
	}

	if !sawRoot {
		return nil, fmt.Errorf("parse SVG: missing <svg> root element")
	}
	if doc.Width <= 0 || doc.Height <= 0 {
		return nil, fmt.Errorf("parse SVG: non-positive dimensions %gx%g", doc.Width, doc.Height)
	}
	return doc, nil
}

func (d *Document) readRootAttrs(start xml.StartElement) error {
	var widthAttr, heightAttr, viewBox string
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "width":
			widthAttr = a.Value
		case "height":
			heightAttr = a.Value
		case "viewBox":
			viewBox = a.Value
		}
	}

	var vbW, vbH float64
	if viewBox != "" {
		parts := strings.FieldsFunc(viewBox, func(r rune) bool { return r == ' ' || r == ',' })
		if len(parts) != 4 {
			return fmt.Errorf("parse SVG: invalid viewBox %q", viewBox)
		}
		var err error
		if vbW, err = strconv.ParseFloat(parts[2], 64); err != nil {
			return fmt.Errorf("parse SVG: invalid viewBox %q", viewBox)
		}
		if vbH, err = strconv.ParseFloat(parts[3], 64); err != nil {
			return fmt.Errorf("parse SVG: invalid viewBox %q", viewBox)
		}
	}

	var err error
	if d.Width, err = parseLength(widthAttr, vbW); err != nil {
		return err
	}
	if d.Height, err = parseLength(heightAttr, vbH); err != nil {
		return err
	}
	return nil
}

// parseLength parses an SVG length in pixels or plain numbers.
func parseLength(value string, fallback float64) (float64, error) {
	value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "px"))
	if value == "" {
		if fallback > 0 {
			return fallback, nil
		}
		return 0, fmt.Errorf("parse SVG: missing dimension with no viewBox fallback")
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("parse SVG: unsupported length %q", value)
	}
	return v, nil
}

func decodeText(dec *xml.Decoder, start xml.StartElement) (Text, error) {
	var raw struct {
		X        string `xml:"x,attr"`
		Y        string `xml:"y,attr"`
		Style    string `xml:"style,attr"`
		FontSize string `xml:"font-size,attr"`
		Anchor   string `xml:"text-anchor,attr"`
		Family   string `xml:"font-family,attr"`
		Value    string `xml:",chardata"`
	}
	if err := dec.DecodeElement(&raw, &start); err != nil {
		return Text{}, fmt.Errorf("parse SVG text: %w", err)
	}

	style := parseStyle(raw.Style)
	el := Text{
		Anchor:     firstNonEmpty(raw.Anchor, style["text-anchor"], "start"),
		FontFamily: firstNonEmpty(raw.Family, style["font-family"]),
		Value:      raw.Value,
	}
	var err error
	if el.X, err = parseCoord(raw.X, "text x"); err != nil {
		return Text{}, err
	}
	if el.Y, err = parseCoord(raw.Y, "text y"); err != nil {
		return Text{}, err
	}
	if el.FontSize, err = parseLength(firstNonEmpty(raw.FontSize, style["font-size"], "12"), 0); err != nil {
		return Text{}, err
	}
	return el, nil
}

func decodeLine(dec *xml.Decoder, start xml.StartElement) (Line, error) {
	var raw struct {
		X1          string `xml:"x1,attr"`
		Y1          string `xml:"y1,attr"`
		X2          string `xml:"x2,attr"`
		Y2          string `xml:"y2,attr"`
		Style       string `xml:"style,attr"`
		Stroke      string `xml:"stroke,attr"`
		StrokeWidth string `xml:"stroke-width,attr"`
	}
	if err := dec.DecodeElement(&raw, &start); err != nil {
		return Line{}, fmt.Errorf("parse SVG line: %w", err)
	}

	style := parseStyle(raw.Style)
	el := Line{Stroke: firstNonEmpty(raw.Stroke, style["stroke"], "#000000")}
	var err error
	if el.X1, err = parseCoord(raw.X1, "line x1"); err != nil {
		return Line{}, err
	}
	if el.Y1, err = parseCoord(raw.Y1, "line y1"); err != nil {
		return Line{}, err
	}
	if el.X2, err = parseCoord(raw.X2, "line x2"); err != nil {
		return Line{}, err
	}
	if el.Y2, err = parseCoord(raw.Y2, "line y2"); err != nil {
		return Line{}, err
	}
	if el.StrokeWidth, err = parseLength(firstNonEmpty(raw.StrokeWidth, style["stroke-width"], "1"), 0); err != nil {
		return Line{}, err
	}
	return el, nil
}

func decodeCircle(dec *xml.Decoder, start xml.StartElement) (Circle, error) {
	var raw struct {
		CX          string `xml:"cx,attr"`
		CY          string `xml:"cy,attr"`
		R           string `xml:"r,attr"`
		Style       string `xml:"style,attr"`
		Fill        string `xml:"fill,attr"`
		Stroke      string `xml:"stroke,attr"`
		StrokeWidth string `xml:"stroke-width,attr"`
	}
	if err := dec.DecodeElement(&raw, &start); err != nil {
		return Circle{}, fmt.Errorf("parse SVG circle: %w", err)
	}

	style := parseStyle(raw.Style)
	el := Circle{
		Fill:   firstNonEmpty(raw.Fill, style["fill"]),
		Stroke: firstNonEmpty(raw.Stroke, style["stroke"]),
	}
	var err error
	if el.CX, err = parseCoord(raw.CX, "circle cx"); err != nil {
		return Circle{}, err
	}
	if el.CY, err = parseCoord(raw.CY, "circle cy"); err != nil {
		return Circle{}, err
	}
	if el.R, err = parseCoord(raw.R, "circle r"); err != nil {
		return Circle{}, err
	}
	if el.StrokeWidth, err = parseLength(firstNonEmpty(raw.StrokeWidth, style["stroke-width"], "0"), 0); err != nil {
		return Circle{}, err
	}
	return el, nil
}

func parseCoord(value, what string) (float64, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("parse SVG: non-numeric %s %q", what, value)
	}
	return v, nil
}

// parseStyle splits an inline CSS style attribute into properties.
func parseStyle(style string) map[string]string {
	props := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		props[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return props
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
