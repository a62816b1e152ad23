// Package types contains shared data structures for termblast.
package types

// Size is the width and height of the board.
const Size = 8

// NumColors is the number of piece colours. Colours are numbered 1..NumColors.
const NumColors = 6

// Phases of a session.
const (
	PhasePlaying  = "playing"
	PhaseGameOver = "game_over"
)

// Board is indexed as Board[row][col] where 0=empty and 1..NumColors is a filled cell.
// Negative values are clearing markers and only ever appear in presentation output.
type Board [Size][Size]int

// Empty returns true if the cell holds exactly 0.
func (b Board) Empty(row, col int) bool {
	return b[row][col] == 0
}

// FilledCount returns the number of occupied cells.
func (b Board) FilledCount() int {
	n := 0
	for _, r := range b {
		for _, v := range r {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

// Pos is a board coordinate.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Shape is a rectangular stencil of 0/1 cells, indexed Shape[row][col].
type Shape [][]int

// Piece is a shape plus the colour shared by all of its filled cells.
// Pieces are treated as immutable once generated.
type Piece struct {
	Shape Shape `json:"shape"`
	Color int   `json:"color"`
}

// Rows returns the height of the piece's bounding box.
func (p *Piece) Rows() int {
	return len(p.Shape)
}

// Cols returns the width of the piece's bounding box.
func (p *Piece) Cols() int {
	if len(p.Shape) == 0 {
		return 0
	}
	return len(p.Shape[0])
}

// Valid returns false for nil pieces, empty or ragged shapes, non-binary cells,
// shapes without a filled cell and colours outside 1..NumColors.
func (p *Piece) Valid() bool {
	if p == nil || p.Rows() == 0 || p.Cols() == 0 {
		return false
	}
	if p.Color < 1 || p.Color > NumColors {
		return false
	}
	cols := p.Cols()
	filled := 0
	for _, row := range p.Shape {
		if len(row) != cols {
			return false
		}
		for _, v := range row {
			switch v {
			case 0:
			case 1:
				filled++
			default:
				return false
			}
		}
	}
	return filled > 0
}

// CellCount returns the number of filled cells in the piece.
func (p *Piece) CellCount() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, row := range p.Shape {
		for _, v := range row {
			if v == 1 {
				n++
			}
		}
	}
	return n
}

// TopLeftOffset returns the smallest row and the smallest column holding a filled cell.
// The two may come from different cells, e.g. (0,0) for the rising diagonal.
func (p *Piece) TopLeftOffset() (int, int) {
	top, left := -1, -1
	if p == nil {
		return 0, 0
	}
	for i, row := range p.Shape {
		for j, v := range row {
			if v != 1 {
				continue
			}
			if top == -1 || i < top {
				top = i
			}
			if left == -1 || j < left {
				left = j
			}
		}
	}
	if top == -1 {
		return 0, 0
	}
	return top, left
}

// Clone returns a deep copy of the piece.
func (p *Piece) Clone() *Piece {
	if p == nil {
		return nil
	}
	shape := make(Shape, len(p.Shape))
	for i, row := range p.Shape {
		shape[i] = append([]int(nil), row...)
	}
	return &Piece{Shape: shape, Color: p.Color}
}

// PieceSet holds the three offered pieces. A nil slot has already been placed.
type PieceSet [3]*Piece

// Empty returns true when every slot has been placed.
func (s PieceSet) Empty() bool {
	for _, p := range s {
		if p != nil {
			return false
		}
	}
	return true
}

// Remaining returns the number of pieces still to place.
func (s PieceSet) Remaining() int {
	n := 0
	for _, p := range s {
		if p != nil {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the set.
func (s PieceSet) Clone() PieceSet {
	var out PieceSet
	for i, p := range s {
		out[i] = p.Clone()
	}
	return out
}

// Move is a candidate placement of the piece in Slot with its bounding box at Row, Col.
type Move struct {
	Slot int `json:"slot"`
	Row  int `json:"row"`
	Col  int `json:"col"`
}

// BoardState represents the complete state of a session.
type BoardState struct {
	ID         string   `json:"id"`
	MoveNumber int      `json:"move_number"`
	Phase      string   `json:"phase"` // "playing", "game_over"
	Board      Board    `json:"board"`
	Pieces     PieceSet `json:"pieces"`
	Score      int      `json:"score"`
	BestScore  int      `json:"best_score"`
	Games      int      `json:"games"`
	Outcome    string   `json:"outcome"`
	LastMove   Pos      `json:"last_move"`
}

// Finished returns true if no remaining piece can be placed.
func (b *BoardState) Finished() bool {
	return b.Phase == PhaseGameOver
}

// Copy returns a deep copy of the state.
func (b *BoardState) Copy() *BoardState {
	c := *b
	c.Pieces = b.Pieces.Clone()
	return &c
}

// NewBoardState creates a new empty state with no pieces offered yet.
func NewBoardState(id string) *BoardState {
	return &BoardState{
		ID:       id,
		Phase:    PhasePlaying,
		LastMove: Pos{Row: -1, Col: -1},
	}
}

// MoveResult describes a committed placement.
type MoveResult struct {
	Move         Move    `json:"move"`
	Piece        *Piece  `json:"piece"`
	Placed       []Pos   `json:"placed"`
	ClearedRows  []int   `json:"cleared_rows"`
	ClearedCols  []int   `json:"cleared_cols"`
	ClearedCells []Pos   `json:"cleared_cells"`
	Points       int     `json:"points"`
	Refilled     bool    `json:"refilled"`
	GameOver     bool    `json:"game_over"`
	Frames       []Frame `json:"-"`
}

// Lines returns the number of rows and columns cleared by the placement.
func (m *MoveResult) Lines() int {
	return len(m.ClearedRows) + len(m.ClearedCols)
}
