package blast

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termblast/types"
)

func TestCatalog(t *testing.T) {
	require.Len(t, Catalog, 18)
	for i, shape := range Catalog {
		p := &types.Piece{Shape: shape, Color: 1}
		assert.True(t, p.Valid(), "shape %d", i)
		assert.LessOrEqual(t, p.Rows(), 3, "shape %d", i)
		assert.LessOrEqual(t, p.Cols(), 3, "shape %d", i)
		assert.True(t, CanPlace(types.Board{}, 0, 0, p), "shape %d must fit an empty board", i)
	}
}

func TestGeneratePieceDeterministic(t *testing.T) {
	a := NewGenerator(rand.New(rand.NewSource(42)))
	b := NewGenerator(rand.New(rand.NewSource(42)))
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.GeneratePiece(), b.GeneratePiece())
	}
}

func TestGeneratePieceCoverage(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(7)))
	colors := make(map[int]int)
	shapes := make(map[string]int)
	for i := 0; i < 5000; i++ {
		p := g.GeneratePiece()
		require.True(t, p.Valid())
		colors[p.Color]++
		shapes[shapeKey(p.Shape)]++
	}
	assert.Len(t, colors, types.NumColors)
	assert.Len(t, shapes, len(Catalog))
	for c := 1; c <= types.NumColors; c++ {
		assert.Greater(t, colors[c], 0, "colour %d never drawn", c)
	}
}

func TestGeneratePieceIsPrivateCopy(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(1)))
	for i := 0; i < 40; i++ {
		p := g.GeneratePiece()
		for r := range p.Shape {
			for c := range p.Shape[r] {
				p.Shape[r][c] = 7
			}
		}
	}
	for i, shape := range Catalog {
		assert.True(t, (&types.Piece{Shape: shape, Color: 1}).Valid(), "catalog shape %d was modified", i)
	}
}

func TestGenerateBatch(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(3)))
	set := g.GenerateBatch()
	assert.Equal(t, 3, set.Remaining())
	for _, p := range set {
		assert.True(t, p.Valid())
	}
}

func shapeKey(s types.Shape) string {
	key := make([]byte, 0, 12)
	for _, row := range s {
		for _, v := range row {
			key = append(key, byte('0'+v))
		}
		key = append(key, '/')
	}
	return string(key)
}
