package render

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo/float"
)

// ClockFace renders an analog clock dial with hour ticks, numbers and
// hour/minute hands at the given angles. Angles are measured clockwise
// from 12 o'clock in degrees.
func ClockFace(hourAngle, minuteAngle float64, is24Hour bool) string {
	size := 220.0
	center := size / 2
	outerRadius := 95.0
	numberRadius := 78.0
	tickOuterRadius := numberRadius - 8.0
	tickInnerRadius := tickOuterRadius - 12.0
	hourHandLength := 58.0
	minuteHandLength := 82.0

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(size, size, 0, 0, size, size)

	canvas.Circle(center, center, outerRadius, "fill:#FFFFFF;stroke:#000000;stroke-width:2")

	labels := clockLabels(is24Hour)
	step := 360.0 / float64(len(labels))
	numberFontSize := 20.0
	if is24Hour {
		numberFontSize = 14.0
	}
	numberStyle := fmt.Sprintf("text-anchor:middle;font-size:%gpx;font-family:FiraSans, sans-serif", numberFontSize)

	for i, label := range labels {
		angle := float64(i) * step
		textX, textY := polarPoint(angle, numberRadius, center)
		canvas.Text(textX, round4(textY+numberFontSize/3), label, numberStyle)

		tickX1, tickY1 := polarPoint(angle, tickInnerRadius, center)
		tickX2, tickY2 := polarPoint(angle, tickOuterRadius, center)
		canvas.Line(tickX1, tickY1, tickX2, tickY2, "stroke:#000000;stroke-width:2")
	}

	hourX, hourY := polarPoint(hourAngle, hourHandLength, center)
	minuteX, minuteY := polarPoint(minuteAngle, minuteHandLength, center)
	canvas.Line(center, center, hourX, hourY, "stroke:#000000;stroke-width:5")
	canvas.Line(center, center, minuteX, minuteY, "stroke:#000000;stroke-width:3")

	canvas.Circle(center, center, 4, "fill:#000000")
	canvas.End()

	return buf.String()
}

// polarPoint converts polar coordinates (angle clockwise from 12
// o'clock) to Cartesian values relative to center.
func polarPoint(angleDegrees, radius, center float64) (float64, float64) {
	radians := (angleDegrees - 90.0) * math.Pi / 180.0
	x := center + radius*math.Cos(radians)
	y := center + radius*math.Sin(radians)
	return round4(x), round4(y)
}

func clockLabels(is24Hour bool) []string {
	if is24Hour {
		labels := make([]string, 24)
		for i := range labels {
			labels[i] = fmt.Sprintf("%d", i)
		}
		return labels
	}
	// Index 0 sits at 12 o'clock, matching hourHandAngle's hour%12.
	labels := make([]string, 12)
	labels[0] = "12"
	for i := 1; i < len(labels); i++ {
		labels[i] = fmt.Sprintf("%d", i)
	}
	return labels
}
