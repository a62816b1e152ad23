package blast

import (
	"fmt"

	"termblast/types"
)

// Display coordinate system:
// - Columns: A-H (left to right)
// - Rows: 1-8 (top to bottom)
// - Example: A1 is the top-left cell, H8 the bottom-right

// PosToDisplay converts board coordinates to display notation.
// (0, 0) -> A1, (4, 3) -> D5, (7, 7) -> H8
func PosToDisplay(row, col int) string {
	return fmt.Sprintf("%c%d", 'A'+rune(col), row+1)
}

// MoveToDisplay renders a move as its 1-based slot and the bounding box corner, e.g. "2@D5".
func MoveToDisplay(m types.Move) string {
	return fmt.Sprintf("%d@%s", m.Slot+1, PosToDisplay(m.Row, m.Col))
}
