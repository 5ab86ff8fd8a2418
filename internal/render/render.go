// Package render draws problem visuals as SVG strings. All arithmetic
// plugins share the vertical stacked layout so a worksheet stays
// typographically consistent; the clock plugin draws an analog dial.
package render

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo/float"
)

const verticalFontSize = 34.0

// FormatOperand renders an operand for display, wrapping negatives in
// parentheses to match grade-school formatting.
func FormatOperand(value int) string {
	if value < 0 {
		return fmt.Sprintf("(%d)", value)
	}
	return fmt.Sprintf("%d", value)
}

// MinDigitChars returns the widest formatted width among the given
// operands. Rendering every problem of a worksheet with the same
// minimum width keeps font sizes uniform after column scaling.
func MinDigitChars(operands ...int) int {
	widest := 0
	for _, v := range operands {
		if n := len(FormatOperand(v)); n > widest {
			widest = n
		}
	}
	return widest
}

// VerticalProblem renders a stacked two-operand arithmetic problem:
// top operand, operator and bottom operand, an underline, and writing
// room below for the student's answer. minDigitChars pads the operand
// column so problems with short operands keep the same width.
func VerticalProblem(top, bottom int, operator string, minDigitChars int) string {
	charWidth := verticalFontSize * 0.6
	margin := verticalFontSize * 0.45
	topPadding := verticalFontSize * 0.4
	baselineGap := verticalFontSize * 1.25
	underlineOffset := verticalFontSize * 0.35
	bottomPadding := verticalFontSize * 1.125

	topY := topPadding + verticalFontSize
	bottomY := topY + baselineGap
	lineY := bottomY + underlineOffset
	height := lineY + bottomPadding

	topText := FormatOperand(top)
	bottomOperand := FormatOperand(bottom)
	operatorPrefixChars := len(operator) + 1

	maxOperandChars := len(topText)
	if n := len(bottomOperand); n > maxOperandChars {
		maxOperandChars = n
	}
	if minDigitChars > maxOperandChars {
		maxOperandChars = minDigitChars
	}

	digitSpan := float64(maxOperandChars) * charWidth
	leftPadding := margin + float64(operatorPrefixChars)*charWidth
	digitAnchorX := leftPadding + digitSpan
	underlineStartX := digitAnchorX - float64(len(bottomOperand)+operatorPrefixChars)*charWidth
	width := digitAnchorX + margin

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(round4(width), round4(height), 0, 0, round4(width), round4(height))

	textStyle := fmt.Sprintf("text-anchor:end;font-size:%gpx;font-family:FiraMono, monospace", verticalFontSize)
	canvas.Text(round4(digitAnchorX), round4(topY), topText, textStyle)
	canvas.Text(round4(digitAnchorX), round4(bottomY), fmt.Sprintf("%s %s", operator, bottomOperand), textStyle)
	canvas.Line(round4(underlineStartX), round4(lineY), round4(digitAnchorX), round4(lineY),
		"stroke:#000000;stroke-width:2")
	canvas.End()

	return buf.String()
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
