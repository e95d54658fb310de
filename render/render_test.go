package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relayterm/xst/atlas"
	"github.com/relayterm/xst/palette"
)

func TestGridSizeFloorsAndClampsToOne(t *testing.T) {
	r := &Renderer{atlas: &atlas.Atlas{CellWidth: 10, CellHeight: 20}}
	cols, rows := r.GridSize(85, 45)
	require.Equal(t, 8, cols)
	require.Equal(t, 2, rows)

	cols, rows = r.GridSize(1, 1)
	require.Equal(t, 1, cols)
	require.Equal(t, 1, rows)
}

func TestColorForMatchesPalette(t *testing.T) {
	want := palette.At(1)
	got := colorFor(1)
	require.Equal(t, [4]float32{want.R, want.G, want.B, 1}, got)
}
