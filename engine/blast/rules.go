package blast

import (
	"errors"

	"termblast/types"
)

// Points awarded per placed cell and per cleared line.
const (
	CellPoints = 10
	LinePoints = 100
)

var (
	ErrInvalidPlacement = errors.New("piece does not fit there")
	ErrMalformedPiece   = errors.New("malformed piece")
	ErrEmptySlot        = errors.New("no piece in that slot")
	ErrGameOver         = errors.New("game is over")
)

// CanPlace returns true if every filled cell of p lands on an empty cell inside the board
// when the piece's bounding box starts at row, col.
func CanPlace(b types.Board, row, col int, p *types.Piece) bool {
	if !p.Valid() {
		return false
	}
	if row < 0 || col < 0 || row+p.Rows() > types.Size || col+p.Cols() > types.Size {
		return false
	}
	for i, cells := range p.Shape {
		for j, v := range cells {
			if v == 1 && b[row+i][col+j] != 0 {
				return false
			}
		}
	}
	return true
}

// Place writes the piece's colour into every covered cell and returns the new board.
// The input board is returned unchanged along with an error if the placement is refused.
func Place(b types.Board, row, col int, p *types.Piece) (types.Board, error) {
	if !p.Valid() {
		return b, ErrMalformedPiece
	}
	if !CanPlace(b, row, col, p) {
		return b, ErrInvalidPlacement
	}
	out := b
	for i, cells := range p.Shape {
		for j, v := range cells {
			if v == 1 {
				out[row+i][col+j] = p.Color
			}
		}
	}
	return out, nil
}

// placedCells lists the board cells a placement covers.
func placedCells(row, col int, p *types.Piece) []types.Pos {
	cells := make([]types.Pos, 0, p.CellCount())
	for i, r := range p.Shape {
		for j, v := range r {
			if v == 1 {
				cells = append(cells, types.Pos{Row: row + i, Col: col + j})
			}
		}
	}
	return cells
}

// FullLines returns the indexes of every full row and column, all judged against b as given.
func FullLines(b types.Board) (rows, cols []int) {
	for r := 0; r < types.Size; r++ {
		full := true
		for c := 0; c < types.Size; c++ {
			if b[r][c] == 0 {
				full = false
				break
			}
		}
		if full {
			rows = append(rows, r)
		}
	}
	for c := 0; c < types.Size; c++ {
		full := true
		for r := 0; r < types.Size; r++ {
			if b[r][c] == 0 {
				full = false
				break
			}
		}
		if full {
			cols = append(cols, c)
		}
	}
	return rows, cols
}

// clearedCells lists each cell of the given rows and columns once, in row-major order.
func clearedCells(rows, cols []int) []types.Pos {
	var mark [types.Size][types.Size]bool
	for _, r := range rows {
		for c := 0; c < types.Size; c++ {
			mark[r][c] = true
		}
	}
	for _, c := range cols {
		for r := 0; r < types.Size; r++ {
			mark[r][c] = true
		}
	}
	var cells []types.Pos
	for r := 0; r < types.Size; r++ {
		for c := 0; c < types.Size; c++ {
			if mark[r][c] {
				cells = append(cells, types.Pos{Row: r, Col: c})
			}
		}
	}
	return cells
}

// ResolveLines empties every full row and column at once and returns the number of lines
// cleared. A cell on a full row and a full column is cleared once but both lines count.
func ResolveLines(b types.Board) (types.Board, int) {
	rows, cols := FullLines(b)
	out := b
	for _, p := range clearedCells(rows, cols) {
		out[p.Row][p.Col] = 0
	}
	return out, len(rows) + len(cols)
}

// PlacementScore returns the points for placing p and clearing the given number of lines.
func PlacementScore(p *types.Piece, cleared int) int {
	return p.CellCount()*CellPoints + cleared*LinePoints
}

// HasAnyValidMove returns true as soon as any remaining piece fits anywhere.
func HasAnyValidMove(b types.Board, set types.PieceSet) bool {
	for _, p := range set {
		if !p.Valid() {
			continue
		}
		for row := 0; row <= types.Size-p.Rows(); row++ {
			for col := 0; col <= types.Size-p.Cols(); col++ {
				if CanPlace(b, row, col, p) {
					return true
				}
			}
		}
	}
	return false
}

// LegalMoves lists every placement of every remaining piece, by slot then row then column.
func LegalMoves(b types.Board, set types.PieceSet) []types.Move {
	var moves []types.Move
	for slot, p := range set {
		if !p.Valid() {
			continue
		}
		for row := 0; row <= types.Size-p.Rows(); row++ {
			for col := 0; col <= types.Size-p.Cols(); col++ {
				if CanPlace(b, row, col, p) {
					moves = append(moves, types.Move{Slot: slot, Row: row, Col: col})
				}
			}
		}
	}
	return moves
}
