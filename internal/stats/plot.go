// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

type ansiColor struct {
	name string
	code string
}

const (
	defaultPlotHeight   = 10
	minPlotWidth        = 10
	axisSeparator       = " | "
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var colorPalette = []ansiColor{
	{name: "cyan", code: "\x1b[36m"},
	{name: "magenta", code: "\x1b[35m"},
	{name: "yellow", code: "\x1b[33m"},
	{name: "green", code: "\x1b[32m"},
	{name: "blue", code: "\x1b[34m"},
}

// Dash pattern for trend overlays so they read apart from the point
// cloud without color.
const (
	trendDashPeriod = 4
	trendDashOn     = 2
)

// RenderScatter draws the series as a braille point cloud with shared
// axes, with optional trend lines overlaid. A trend is drawn in the
// style of the series whose name it matches.
func RenderScatter(w io.Writer, title, xLabel, yLabel string, series []ScatterSeries, trends []TrendOverlay, width, height int, forceColor bool) error {
	series = filterScatter(series)
	if len(series) == 0 {
		_, err := fmt.Fprintf(w, "%s\nNo data.\n\n", title)
		return err
	}

	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = autoPlotWidth()
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	xMin, xMax, yMin, yMax := scatterBounds(series)
	if math.Abs(xMax-xMin) < 1e-9 {
		xMin--
		xMax++
	}
	if math.Abs(yMax-yMin) < 1e-9 {
		yMin--
		yMax++
	}

	dotsW := width * 2
	dotsH := height * 4
	toDot := func(x, y float64) (int, int) {
		px := int(math.Round((x - xMin) / (xMax - xMin) * float64(dotsW-1)))
		py := int(math.Round((1 - (y-yMin)/(yMax-yMin)) * float64(dotsH-1)))
		return clampInt(px, 0, dotsW-1), clampInt(py, 0, dotsH-1)
	}

	seriesCells := make([][][]uint8, len(series))
	for i := range series {
		seriesCells[i] = makeCells(height, width)
	}
	for si, s := range series {
		for i := range s.X {
			px, py := toDot(s.X[i], s.Y[i])
			setBrailleDot(seriesCells[si], px, py)
		}
	}

	for _, trend := range trends {
		si := seriesIndex(series, trend.Name)
		if si < 0 {
			continue
		}
		x0, y0 := toDot(xMin, trend.Intercept+trend.Slope*xMin)
		x1, y1 := toDot(xMax, trend.Intercept+trend.Slope*xMax)
		drawLine(x0, y0, x1, y1, func(dx, dy int) {
			if dx%trendDashPeriod < trendDashOn {
				setBrailleDot(seriesCells[si], dx, dy)
			}
		})
	}

	useColor := shouldUseColor(w, forceColor)
	axisLabels := makeValueAxisLabels(height, yMin, yMax)
	leftAxisWidth := 0
	for _, label := range axisLabels {
		if n := utf8.RuneCountInString(label); n > leftAxisWidth {
			leftAxisWidth = n
		}
	}

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%s: min=%.1f max=%.1f\n", xLabel, xMin, xMax); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s: min=%.1f max=%.1f\n", yLabel, yMin, yMax); err != nil {
		return err
	}
	for y := 0; y < height; y++ {
		var row strings.Builder
		fmt.Fprintf(&row, "%*s%s", leftAxisWidth, axisLabels[y], axisSeparator)
		for x := 0; x < width; x++ {
			mask, colorIdx := composeCell(seriesCells, x, y)
			ch := brailleFromMask(mask)
			if useColor && colorIdx >= 0 {
				color := colorPalette[colorIdx%len(colorPalette)].code
				row.WriteString(color)
				row.WriteRune(ch)
				row.WriteString(colorReset)
			} else {
				row.WriteRune(ch)
			}
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, renderScatterLegend(series, trends, useColor)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func filterScatter(series []ScatterSeries) []ScatterSeries {
	out := make([]ScatterSeries, 0, len(series))
	for _, s := range series {
		if len(s.X) == 0 || len(s.X) != len(s.Y) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func scatterBounds(series []ScatterSeries) (xMin, xMax, yMin, yMax float64) {
	xMin, yMin = math.Inf(1), math.Inf(1)
	xMax, yMax = math.Inf(-1), math.Inf(-1)
	for _, s := range series {
		for i := range s.X {
			xMin = math.Min(xMin, s.X[i])
			xMax = math.Max(xMax, s.X[i])
			yMin = math.Min(yMin, s.Y[i])
			yMax = math.Max(yMax, s.Y[i])
		}
	}
	return xMin, xMax, yMin, yMax
}

func seriesIndex(series []ScatterSeries, name string) int {
	for i, s := range series {
		if s.Name == name {
			return i
		}
	}
	return -1
}

func renderScatterLegend(series []ScatterSeries, trends []TrendOverlay, useColor bool) string {
	trendSet := make(map[string]struct{}, len(trends))
	for _, t := range trends {
		trendSet[t.Name] = struct{}{}
	}
	marker := brailleFromMask(0x01)
	parts := make([]string, 0, len(series))
	for i, s := range series {
		label := fmt.Sprintf("%c %s", marker, s.Name)
		if _, ok := trendSet[s.Name]; ok {
			label += " (with trend)"
		}
		if useColor {
			color := colorPalette[i%len(colorPalette)].code
			label = color + label + colorReset
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

func makeValueAxisLabels(height int, yMin, yMax float64) []string {
	labels := make([]string, height)
	if height <= 0 {
		return labels
	}
	labels[0] = formatAxisValue(yMax)
	if height > 2 {
		labels[height/2] = formatAxisValue((yMin + yMax) / 2)
	}
	if height > 1 {
		labels[height-1] = formatAxisValue(yMin)
	}
	return labels
}

func formatAxisValue(v float64) string {
	if math.Abs(v) >= 100 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

// PlotWidthFor computes a plot width that fits within the total available
// width once the axis gutter is accounted for.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	axisWidth := 6 + utf8.RuneCountInString(axisSeparator)
	plotWidth := totalWidth - axisWidth
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}
	return plotWidth
}

func autoPlotWidth() int {
	return PlotWidthFor(terminalWidth())
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]uint8, width)
	}
	return cells
}

func composeCell(seriesCells [][][]uint8, x, y int) (uint8, int) {
	var mask uint8
	colorIdx := -1
	for i, cells := range seriesCells {
		if y < 0 || y >= len(cells) {
			continue
		}
		if x < 0 || x >= len(cells[y]) {
			continue
		}
		cellMask := cells[y][x]
		if cellMask == 0 {
			continue
		}
		if colorIdx == -1 {
			colorIdx = i
		}
		mask |= cellMask
	}
	return mask, colorIdx
}

func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := int(math.Abs(float64(x1 - x0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -int(math.Abs(float64(y1 - y0)))
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				break
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				break
			}
			err += dx
			y0 += sy
		}
	}
}

func setBrailleDot(cells [][]uint8, x, y int) {
	if y < 0 || x < 0 {
		return
	}
	cellY := y / 4
	cellX := x / 2
	if cellY < 0 || cellY >= len(cells) {
		return
	}
	if cellX < 0 || cellX >= len(cells[cellY]) {
		return
	}
	cells[cellY][cellX] |= brailleDotMask(x%2, y%4)
}

func brailleDotMask(x, y int) uint8 {
	switch {
	case x == 0 && y == 0:
		return 0x01
	case x == 0 && y == 1:
		return 0x02
	case x == 0 && y == 2:
		return 0x04
	case x == 0 && y == 3:
		return 0x40
	case x == 1 && y == 0:
		return 0x08
	case x == 1 && y == 1:
		return 0x10
	case x == 1 && y == 2:
		return 0x20
	case x == 1 && y == 3:
		return 0x80
	default:
		return 0
	}
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
