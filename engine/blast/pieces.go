// Package blast implements the Block Blast rules and a session driving them.
package blast

import (
	"math/rand"

	"termblast/types"
)

// Catalog is the fixed set of shapes pieces are drawn from.
var Catalog = []types.Shape{
	{{1}},
	{{1, 1}},
	{{1}, {1}},
	{{1, 1}, {1, 1}},
	{{1, 0}, {0, 1}},
	{{0, 1}, {1, 0}},
	{{1, 1}, {1, 0}},
	{{1, 1}, {0, 1}},
	{{1, 0}, {1, 1}},
	{{0, 1}, {1, 1}},
	{{1}, {1}, {1}},
	{{1, 1, 1}},
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{0, 0, 1}, {0, 1, 0}, {1, 0, 0}},
	{{1, 1, 1}, {1, 1, 1}},
	{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}},
	{{1, 1, 0}, {0, 1, 1}},
	{{0, 1, 1}, {1, 1, 0}},
}

// Generator draws random pieces from the catalog.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator backed by rng.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// GeneratePiece picks a shape and a colour uniformly and independently.
func (g *Generator) GeneratePiece() *types.Piece {
	shape := Catalog[g.rng.Intn(len(Catalog))]
	p := &types.Piece{Shape: shape, Color: g.rng.Intn(types.NumColors) + 1}
	// Catalog rows are shared; hand out a private copy.
	return p.Clone()
}

// GenerateBatch returns three independent pieces. Repeats are allowed.
func (g *Generator) GenerateBatch() types.PieceSet {
	return types.PieceSet{g.GeneratePiece(), g.GeneratePiece(), g.GeneratePiece()}
}
