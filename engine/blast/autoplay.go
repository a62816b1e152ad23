package blast

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"termblast/engine"
	"termblast/types"
)

// AutoplayConfig controls headless play.
type AutoplayConfig struct {
	Games    int
	Seed     int64 // game i is seeded with Seed+i; 0 seeds from the clock
	MaxMoves int   // safety cap per game
	Verbose  bool
}

// DefaultAutoplayConfig returns the default settings.
func DefaultAutoplayConfig() AutoplayConfig {
	return AutoplayConfig{
		Games:    1,
		MaxMoves: 10000,
	}
}

// BestMove picks the legal move worth the most immediate points.
// Ties go to the first move in LegalMoves order.
func BestMove(b types.Board, set types.PieceSet) (types.Move, bool) {
	best := types.Move{}
	bestPoints := -1
	for _, m := range LegalMoves(b, set) {
		placed, err := Place(b, m.Row, m.Col, set[m.Slot])
		if err != nil {
			continue
		}
		_, lines := ResolveLines(placed)
		if pts := PlacementScore(set[m.Slot], lines); pts > bestPoints {
			best, bestPoints = m, pts
		}
	}
	return best, bestPoints >= 0
}

// Autoplay plays cfg.Games games greedily and returns the final score of each.
func Autoplay(ctx context.Context, w io.Writer, cfg AutoplayConfig, log *zap.Logger) ([]int, error) {
	scores := make([]int, 0, cfg.Games)
	for i := 0; i < cfg.Games; i++ {
		seed := cfg.Seed
		if seed != 0 {
			seed += int64(i)
		}
		sess := NewSession(engine.GameConfig{Seed: seed}, log)
		if err := sess.Start(); err != nil {
			return scores, err
		}

		moves := 0
		for !sess.GetBoardState().Finished() && moves < cfg.MaxMoves {
			if err := ctx.Err(); err != nil {
				sess.Close()
				return scores, err
			}
			state := sess.GetBoardState()
			m, ok := BestMove(state.Board, state.Pieces)
			if !ok {
				break
			}
			res, err := sess.Place(m.Slot, m.Row, m.Col)
			if err != nil {
				sess.Close()
				return scores, fmt.Errorf("game %d move %d: %w", i+1, moves+1, err)
			}
			moves++
			if cfg.Verbose {
				fmt.Fprintf(w, "%4d. %-6s +%d\n", moves, MoveToDisplay(m), res.Points)
			}
		}

		state := sess.GetBoardState()
		sess.Close()
		scores = append(scores, state.Score)
		fmt.Fprintf(w, "Game %d: score %d in %d moves\n", i+1, state.Score, moves)
	}
	return scores, nil
}
