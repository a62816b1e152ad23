package types

// CellKind tags a cell for rendering.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellFilled
	CellClearing
)

// CellView is the presentation form of a board cell.
type CellView struct {
	Kind  CellKind
	Color int // valid for CellFilled and CellClearing
}

// Frame is one step of an animation, indexed Frame[row][col].
type Frame [Size][Size]CellView

// FrameOf converts a board into a frame with every occupied cell filled.
func FrameOf(b Board) Frame {
	var f Frame
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			v := b[r][c]
			switch {
			case v > 0:
				f[r][c] = CellView{Kind: CellFilled, Color: v}
			case v < 0:
				f[r][c] = CellView{Kind: CellClearing, Color: -v}
			}
		}
	}
	return f
}

// Board returns the signed board encoding of the frame: 0 empty, +c filled, -c clearing.
func (f Frame) Board() Board {
	var b Board
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			switch f[r][c].Kind {
			case CellFilled:
				b[r][c] = f[r][c].Color
			case CellClearing:
				b[r][c] = -f[r][c].Color
			}
		}
	}
	return b
}
