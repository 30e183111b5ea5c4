package tui

import (
	"fmt"
	"strings"

	"github.com/1broseidon/zonesnap/internal/config"
)

func summarizeLayout(layout *config.LayoutSpec) string {
	if layout == nil || len(layout.Zones) == 0 {
		return "no zones"
	}

	// Report coverage on a reference 1920x1080 screen so the numbers mean
	// something concrete.
	minW, minH := -1.0, -1.0
	maxW, maxH := 0.0, 0.0
	for _, z := range layout.Zones {
		w := z.Width * 1920
		h := z.Height * 1080
		if minW < 0 || w < minW {
			minW = w
		}
		if minH < 0 || h < minH {
			minH = h
		}
		if w > maxW {
			maxW = w
		}
		if h > maxH {
			maxH = h
		}
	}

	if minW == maxW && minH == maxH {
		return fmt.Sprintf("%d zones • %.0f×%.0f px each on 1080p", len(layout.Zones), minW, minH)
	}
	return fmt.Sprintf("%d zones • min %.0f×%.0f • max %.0f×%.0f on 1080p",
		len(layout.Zones), minW, minH, maxW, maxH)
}

// renderASCIIPreview generates an ASCII art representation of a layout's
// zones. Zone rectangles are fractional, so they map directly onto the
// character canvas.
func renderASCIIPreview(layout *config.LayoutSpec, width, height int) []string {
	if layout == nil || width < 5 || height < 3 {
		return emptyCanvas(width, height)
	}

	// Create a character canvas
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, z := range layout.Zones {
		drawZone(canvas, z, width, height)
	}

	// Draw border around the entire preview area
	drawBorder(canvas, width, height)

	lines := make([]string, height)
	for i, row := range canvas {
		lines[i] = string(row)
	}

	return lines
}

func drawZone(canvas [][]rune, z config.ZoneSpec, canvasW, canvasH int) {
	x1 := int(z.X * float64(canvasW))
	y1 := int(z.Y * float64(canvasH))
	x2 := int((z.X + z.Width) * float64(canvasW))
	y2 := int((z.Y + z.Height) * float64(canvasH))

	// Clamp inside the outer border
	if x1 < 1 {
		x1 = 1
	}
	if y1 < 1 {
		y1 = 1
	}
	if x2 >= canvasW-1 {
		x2 = canvasW - 2
	}
	if y2 >= canvasH-1 {
		y2 = canvasH - 2
	}

	// Need at least 2x2 for a zone
	if x2 <= x1 || y2 <= y1 {
		return
	}

	// Draw zone border
	for x := x1; x <= x2; x++ {
		canvas[y1][x] = '─'
		canvas[y2][x] = '─'
	}
	for y := y1; y <= y2; y++ {
		canvas[y][x1] = '│'
		canvas[y][x2] = '│'
	}

	// Draw corners
	canvas[y1][x1] = '┌'
	canvas[y1][x2] = '┐'
	canvas[y2][x1] = '└'
	canvas[y2][x2] = '┘'

	// Draw zone number in center
	centerY := (y1 + y2) / 2
	centerX := (x1 + x2) / 2
	if centerY > y1 && centerY < y2 && centerX > x1 && centerX < x2 {
		label := fmt.Sprintf("%d", z.Number)
		startX := centerX - len(label)/2
		for i, r := range label {
			if startX+i > x1 && startX+i < x2 {
				canvas[centerY][startX+i] = r
			}
		}
	}
}

func drawBorder(canvas [][]rune, width, height int) {
	// Top and bottom borders
	for x := 0; x < width; x++ {
		canvas[0][x] = '═'
		canvas[height-1][x] = '═'
	}

	// Left and right borders
	for y := 0; y < height; y++ {
		canvas[y][0] = '║'
		canvas[y][width-1] = '║'
	}

	// Corners
	canvas[0][0] = '╔'
	canvas[0][width-1] = '╗'
	canvas[height-1][0] = '╚'
	canvas[height-1][width-1] = '╝'
}

func emptyCanvas(width, height int) []string {
	lines := make([]string, height)
	empty := strings.Repeat(" ", width)
	for i := range lines {
		lines[i] = empty
	}
	return lines
}
