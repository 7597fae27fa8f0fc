package render

import (
	"bytes"
	"image/png"
	"testing"

	"lotto/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeatmapImageGenerator_Generate(t *testing.T) {
	t.Parallel()

	hot := entities.Heatmap{MaxCount: 4}
	hot.Counts[7] = 4
	hot.Counts[45] = 2

	tests := []struct {
		name    string
		heatmap entities.Heatmap
		draws   int
	}{
		{name: "empty history", heatmap: entities.Heatmap{}, draws: 0},
		{name: "with counts", heatmap: hot, draws: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := NewHeatmapImageGenerator()
			data, err := g.Generate(tt.heatmap, tt.draws)
			require.NoError(t, err)

			img, err := png.Decode(bytes.NewReader(data))
			require.NoError(t, err)

			width, height := g.Size()
			assert.Equal(t, width, img.Bounds().Dx())
			assert.Equal(t, height, img.Bounds().Dy())
		})
	}
}

func TestHeatmapImageGenerator_CellColor(t *testing.T) {
	t.Parallel()

	g := NewHeatmapImageGenerator()

	r, gr, b := g.cellColor(0)
	assert.Equal(t, g.style.Cold, [3]float64{r, gr, b})

	r, gr, b = g.cellColor(1)
	assert.InDelta(t, g.style.Hot[0], r, 1e-9)
	assert.InDelta(t, g.style.Hot[1], gr, 1e-9)
	assert.InDelta(t, g.style.Hot[2], b, 1e-9)
}
