package tui

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
)

// renderImage draws img as terminal cells, two pixels per cell: the upper
// half block glyph carries the top pixel as its foreground and the bottom
// pixel as its background. The image is fitted to zoom times the cols by
// 2*rows pixel grid and cropped back to the grid, so zooming in magnifies
// the middle of the picture.
func renderImage(img image.Image, cols, rows int, zoom float64) string {
	if img == nil || cols < 1 || rows < 1 {
		return ""
	}

	boxW := max(int(float64(cols)*zoom), 1)
	boxH := max(int(float64(rows*2)*zoom), 2)
	fitted := imaging.Fit(img, boxW, boxH, imaging.Lanczos)
	if fitted.Bounds().Dx() > cols || fitted.Bounds().Dy() > rows*2 {
		fitted = imaging.CropCenter(fitted,
			min(fitted.Bounds().Dx(), cols), min(fitted.Bounds().Dy(), rows*2))
	}

	w := fitted.Bounds().Dx()
	h := fitted.Bounds().Dy()
	cellRows := (h + 1) / 2
	padX := max((cols-w)/2, 0)
	padY := max((rows-cellRows)/2, 0)

	var b strings.Builder
	for i := 0; i < padY; i++ {
		b.WriteString("\n")
	}
	for row := 0; row < cellRows; row++ {
		if padX > 0 {
			b.WriteString(strings.Repeat(" ", padX))
		}
		for x := 0; x < w; x++ {
			top := fitted.NRGBAAt(x, row*2)
			if row*2+1 >= h {
				// odd final pixel row, no bottom pixel to paint
				b.WriteString(lipgloss.NewStyle().
					Foreground(cellColor(top.R, top.G, top.B)).
					Render("▀"))
				continue
			}
			bottom := fitted.NRGBAAt(x, row*2+1)
			if top.A == 0 && bottom.A == 0 {
				b.WriteString(" ")
				continue
			}
			b.WriteString(lipgloss.NewStyle().
				Foreground(cellColor(top.R, top.G, top.B)).
				Background(cellColor(bottom.R, bottom.G, bottom.B)).
				Render("▀"))
		}
		if row < cellRows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func cellColor(r, g, b uint8) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}
