package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"

	"lotto/domain/entities"
	"lotto/domain/utils"
)

// HeatmapStyle defines the layout of the number grid
type HeatmapStyle struct {
	Columns  int
	CellSize int
	Gap      int
	Padding  int
	Header   int
	Cold     [3]float64 // colour of numbers never drawn
	Hot      [3]float64 // colour of the most frequent number
}

// HeatmapImageGenerator renders the number heatmap as a PNG grid
type HeatmapImageGenerator struct {
	style HeatmapStyle
}

// NewHeatmapImageGenerator creates a generator with the default 9x5 grid
func NewHeatmapImageGenerator() *HeatmapImageGenerator {
	return &HeatmapImageGenerator{
		style: HeatmapStyle{
			Columns:  9,
			CellSize: 44,
			Gap:      6,
			Padding:  15,
			Header:   40,
			Cold:     [3]float64{0.16, 0.18, 0.26},
			Hot:      [3]float64{0.95, 0.35, 0.25},
		},
	}
}

// Size returns the width and height of generated images
func (g *HeatmapImageGenerator) Size() (int, int) {
	rows := (entities.UniverseSize + g.style.Columns - 1) / g.style.Columns
	step := g.style.CellSize + g.style.Gap
	width := 2*g.style.Padding + g.style.Columns*step - g.style.Gap
	height := g.style.Header + 2*g.style.Padding + rows*step - g.style.Gap
	return width, height
}

// Generate draws one cell per number, shaded by its count relative to the hottest number
func (g *HeatmapImageGenerator) Generate(heatmap entities.Heatmap, totalDraws int) ([]byte, error) {
	start := time.Now()
	defer func() {
		log.WithField("duration_ms", time.Since(start).Milliseconds()).
			WithField("max_count", heatmap.MaxCount).
			Debug("Heatmap image generation completed")
	}()

	width, height := g.Size()
	dc := gg.NewContext(width, height)

	// Vertical gradient background
	for i := 0; i < height; i++ {
		t := float64(i) / float64(height)
		dc.SetRGB(0.02+t*0.03, 0.02+t*0.05, 0.05+t*0.1)
		dc.DrawLine(0, float64(i), float64(width), float64(i))
		dc.Stroke()
	}

	titleFace, err := loadFont(gobold.TTF, 14)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	numberFace, err := loadFont(gobold.TTF, 13)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	countFace, err := loadFont(gomono.TTF, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	dc.SetFontFace(titleFace)
	dc.SetRGB(1, 1, 1)
	drawSharpText(dc, "Number heatmap", float64(g.style.Padding), float64(g.style.Padding+12))
	dc.SetFontFace(countFace)
	dc.SetRGB(0.7, 0.7, 0.75)
	summary := fmt.Sprintf("%s draws, max %d", utils.FormatShortNotation(int64(totalDraws)), heatmap.MaxCount)
	w, _ := dc.MeasureString(summary)
	drawSharpText(dc, summary, float64(width-g.style.Padding)-w, float64(g.style.Padding+12))

	step := float64(g.style.CellSize + g.style.Gap)
	size := float64(g.style.CellSize)
	for n := entities.MinNumber; n <= entities.MaxNumber; n++ {
		idx := n - entities.MinNumber
		x := float64(g.style.Padding) + float64(idx%g.style.Columns)*step
		y := float64(g.style.Padding+g.style.Header) + float64(idx/g.style.Columns)*step

		intensity := heatmap.Intensity(n)
		r, gr, b := g.cellColor(intensity)
		dc.SetRGB(r, gr, b)
		dc.DrawRoundedRectangle(x, y, size, size, 6)
		dc.Fill()

		// Outline the hottest numbers
		if heatmap.MaxCount > 0 && heatmap.Count(n) == heatmap.MaxCount {
			dc.SetRGB(1, 0.84, 0)
			dc.SetLineWidth(2)
			dc.DrawRoundedRectangle(x+1, y+1, size-2, size-2, 6)
			dc.Stroke()
		}

		dc.SetFontFace(numberFace)
		dc.SetRGB(1, 1, 1)
		dc.DrawStringAnchored(fmt.Sprintf("%d", n), x+size/2, y+size/2-5, 0.5, 0.5)

		dc.SetFontFace(countFace)
		dc.SetRGB(0.85, 0.85, 0.9)
		dc.DrawStringAnchored(fmt.Sprintf("x%d", heatmap.Count(n)), x+size/2, y+size-9, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// cellColor interpolates between the cold and hot colours
func (g *HeatmapImageGenerator) cellColor(intensity float64) (float64, float64, float64) {
	c, h := g.style.Cold, g.style.Hot
	return c[0] + (h[0]-c[0])*intensity,
		c[1] + (h[1]-c[1])*intensity,
		c[2] + (h[2]-c[2])*intensity
}

// drawSharpText draws text over a faint shadow
func drawSharpText(dc *gg.Context, text string, x, y float64) {
	dc.Push()
	dc.SetRGBA(0, 0, 0, 0.5)
	dc.DrawString(text, x+0.5, y+0.5)
	dc.Pop()

	dc.DrawString(text, x, y)
}

// loadFont loads a font from byte data
func loadFont(fontData []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(fontData)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:       size,
		DPI:        72,
		Hinting:    font.HintingFull,
		SubPixelsX: 4,
		SubPixelsY: 4,
	})
	return face, nil
}
