package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPieceValid(t *testing.T) {
	tests := []struct {
		name  string
		piece *Piece
		want  bool
	}{
		{"nil", nil, false},
		{"no rows", &Piece{Shape: Shape{}, Color: 1}, false},
		{"no cols", &Piece{Shape: Shape{{}}, Color: 1}, false},
		{"ragged", &Piece{Shape: Shape{{1, 1}, {1}}, Color: 1}, false},
		{"non-binary", &Piece{Shape: Shape{{1, 2}}, Color: 1}, false},
		{"negative cell", &Piece{Shape: Shape{{-1}}, Color: 1}, false},
		{"all zero", &Piece{Shape: Shape{{0, 0}}, Color: 1}, false},
		{"colour zero", &Piece{Shape: Shape{{1}}, Color: 0}, false},
		{"colour too high", &Piece{Shape: Shape{{1}}, Color: NumColors + 1}, false},
		{"single", &Piece{Shape: Shape{{1}}, Color: 1}, true},
		{"diagonal", &Piece{Shape: Shape{{1, 0}, {0, 1}}, Color: 6}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.piece.Valid())
		})
	}
}

func TestPieceDimensions(t *testing.T) {
	p := &Piece{Shape: Shape{{1, 1, 0}, {0, 1, 1}}, Color: 3}
	assert.Equal(t, 2, p.Rows())
	assert.Equal(t, 3, p.Cols())
	assert.Equal(t, 4, p.CellCount())
}

func TestTopLeftOffset(t *testing.T) {
	tests := []struct {
		shape     Shape
		top, left int
	}{
		{Shape{{1}}, 0, 0},
		{Shape{{0, 1}, {1, 0}}, 0, 0},
		{Shape{{0, 1}, {1, 1}}, 0, 0},
		{Shape{{0, 0, 1}, {0, 1, 0}, {1, 0, 0}}, 0, 0},
		{Shape{{0, 0}, {0, 1}}, 1, 1},
	}
	for _, tt := range tests {
		p := &Piece{Shape: tt.shape, Color: 1}
		top, left := p.TopLeftOffset()
		if top != tt.top || left != tt.left {
			t.Errorf("TopLeftOffset(%v) = (%d, %d), want (%d, %d)", tt.shape, top, left, tt.top, tt.left)
		}
	}
}

func TestPieceClone(t *testing.T) {
	p := &Piece{Shape: Shape{{1, 1}}, Color: 2}
	c := p.Clone()
	c.Shape[0][0] = 0
	assert.Equal(t, 1, p.Shape[0][0], "clone must not share rows")
	assert.Nil(t, (*Piece)(nil).Clone())
}

func TestPieceSet(t *testing.T) {
	var s PieceSet
	assert.True(t, s.Empty())
	assert.Equal(t, 0, s.Remaining())

	s[1] = &Piece{Shape: Shape{{1}}, Color: 1}
	assert.False(t, s.Empty())
	assert.Equal(t, 1, s.Remaining())

	c := s.Clone()
	c[1].Color = 4
	assert.Equal(t, 1, s[1].Color)
	assert.Nil(t, c[0])
}

func TestBoardStateCopy(t *testing.T) {
	s := NewBoardState("abc")
	s.Board[2][3] = 5
	s.Pieces[0] = &Piece{Shape: Shape{{1}}, Color: 1}

	c := s.Copy()
	c.Board[2][3] = 0
	c.Pieces[0].Color = 2

	assert.Equal(t, 5, s.Board[2][3])
	assert.Equal(t, 1, s.Pieces[0].Color)
	assert.Equal(t, Pos{Row: -1, Col: -1}, s.LastMove)
	assert.False(t, s.Finished())
}

func TestFrameRoundTrip(t *testing.T) {
	var b Board
	b[0][0] = 3
	b[7][7] = -2
	f := FrameOf(b)
	assert.Equal(t, CellView{Kind: CellFilled, Color: 3}, f[0][0])
	assert.Equal(t, CellView{Kind: CellClearing, Color: 2}, f[7][7])
	assert.Equal(t, CellView{}, f[4][4])
	assert.Equal(t, b, f.Board())
	assert.Equal(t, 2, b.FilledCount())
}
