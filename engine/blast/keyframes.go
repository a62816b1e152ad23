package blast

import "termblast/types"

// Keyframes returns the frames that replay a line clear. The first frame is the board right
// after placement with the cleared cells tagged as clearing; the last is the settled board.
// Without cleared cells there is a single frame.
func Keyframes(placed types.Board, cleared []types.Pos) []types.Frame {
	settled := placed
	for _, p := range cleared {
		settled[p.Row][p.Col] = 0
	}
	if len(cleared) == 0 {
		return []types.Frame{types.FrameOf(settled)}
	}
	marked := types.FrameOf(placed)
	for _, p := range cleared {
		marked[p.Row][p.Col].Kind = types.CellClearing
	}
	return []types.Frame{marked, types.FrameOf(settled)}
}

// ExplosionFrames returns the game over sequence: every occupied cell turns to clearing one
// row at a time from the top, then the board empties.
func ExplosionFrames(b types.Board) []types.Frame {
	frames := make([]types.Frame, 0, types.Size+1)
	cur := types.FrameOf(b)
	for r := 0; r < types.Size; r++ {
		changed := false
		for c := 0; c < types.Size; c++ {
			if cur[r][c].Kind == types.CellFilled {
				cur[r][c].Kind = types.CellClearing
				changed = true
			}
		}
		if changed {
			frames = append(frames, cur)
		}
	}
	return append(frames, types.Frame{})
}
