package blast

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"termblast/engine"
	"termblast/types"
)

// Session implements the GameEngine interface on top of the rules in this package.
type Session struct {
	config     engine.GameConfig
	gen        *Generator
	boardState *types.BoardState
	started    bool
	log        *zap.Logger

	moveCallback func(result *types.MoveResult, boardState *types.BoardState)
	endCallback  func(boardState *types.BoardState)

	mu sync.Mutex
}

var _ engine.GameEngine = (*Session)(nil)

// NewSession creates a session with the given configuration. A nil logger discards output.
func NewSession(cfg engine.GameConfig, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	id := uuid.NewString()
	return &Session{
		config:     cfg,
		gen:        NewGenerator(rand.New(rand.NewSource(seed))),
		boardState: types.NewBoardState(id),
		log:        log.With(zap.String("session", id), zap.Int64("seed", seed)),
	}
}

// Start deals the first batch. Calling it again has no effect.
func (s *Session) Start() error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.boardState.Games = 1
	s.boardState.Pieces = s.gen.GenerateBatch()
	s.log.Info("session started", zap.Strings("pieces", describeSet(s.boardState.Pieces)))
	ended := s.checkTerminal()
	boardStateCopy := s.boardState.Copy()
	s.mu.Unlock()

	if ended && s.endCallback != nil {
		s.endCallback(boardStateCopy)
	}
	return nil
}

// GetBoardState returns a copy of the current state.
func (s *Session) GetBoardState() *types.BoardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boardState.Copy()
}

// CanPlace reports whether the piece in slot fits with its bounding box at row, col.
func (s *Session) CanPlace(slot, row, col int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slot < 0 || slot >= len(s.boardState.Pieces) {
		return false
	}
	return CanPlace(s.boardState.Board, row, col, s.boardState.Pieces[slot])
}

// Place commits the piece in slot at row, col, clears full lines, scores, refills the
// piece set once it is used up and checks whether any move remains.
func (s *Session) Place(slot, row, col int) (*types.MoveResult, error) {
	s.mu.Lock()

	if s.boardState.Finished() {
		s.mu.Unlock()
		return nil, ErrGameOver
	}
	if slot < 0 || slot >= len(s.boardState.Pieces) || s.boardState.Pieces[slot] == nil {
		s.mu.Unlock()
		return nil, ErrEmptySlot
	}

	piece := s.boardState.Pieces[slot]
	placed, err := Place(s.boardState.Board, row, col, piece)
	if err != nil {
		s.log.Debug("placement refused",
			zap.Int("slot", slot), zap.Int("row", row), zap.Int("col", col), zap.Error(err))
		s.mu.Unlock()
		return nil, err
	}

	rows, cols := FullLines(placed)
	cleared := clearedCells(rows, cols)
	settled, lines := ResolveLines(placed)
	points := PlacementScore(piece, lines)

	s.boardState.Board = settled
	s.boardState.Score += points
	if s.boardState.Score > s.boardState.BestScore {
		s.boardState.BestScore = s.boardState.Score
	}
	s.boardState.MoveNumber++
	s.boardState.LastMove = types.Pos{Row: row, Col: col}
	s.boardState.Pieces[slot] = nil

	s.log.Info("piece placed",
		zap.Int("move", s.boardState.MoveNumber),
		zap.Int("slot", slot),
		zap.String("at", PosToDisplay(row, col)),
		zap.Int("cells", piece.CellCount()),
		zap.Int("lines", lines),
		zap.Int("points", points),
		zap.Int("score", s.boardState.Score))

	refilled := false
	if s.boardState.Pieces.Empty() {
		s.boardState.Pieces = s.gen.GenerateBatch()
		refilled = true
		s.log.Debug("piece set refilled", zap.Strings("pieces", describeSet(s.boardState.Pieces)))
	}

	ended := s.checkTerminal()

	result := &types.MoveResult{
		Move:         types.Move{Slot: slot, Row: row, Col: col},
		Piece:        piece,
		Placed:       placedCells(row, col, piece),
		ClearedRows:  rows,
		ClearedCols:  cols,
		ClearedCells: cleared,
		Points:       points,
		Refilled:     refilled,
		GameOver:     ended,
		Frames:       Keyframes(placed, cleared),
	}
	boardStateCopy := s.boardState.Copy()
	s.mu.Unlock()

	// Notify callbacks (outside lock to prevent deadlock)
	if s.moveCallback != nil {
		s.moveCallback(result, boardStateCopy)
	}
	if ended && s.endCallback != nil {
		s.endCallback(boardStateCopy)
	}
	return result, nil
}

// HasAnyValidMove returns true if any remaining piece fits anywhere.
func (s *Session) HasAnyValidMove() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return HasAnyValidMove(s.boardState.Board, s.boardState.Pieces)
}

// LegalMoves lists every placement available for the remaining pieces.
func (s *Session) LegalMoves() []types.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return LegalMoves(s.boardState.Board, s.boardState.Pieces)
}

// Reset empties the board, zeroes the score and deals a fresh batch. The best score is kept.
func (s *Session) Reset() {
	s.mu.Lock()

	prev := s.boardState
	s.boardState = types.NewBoardState(prev.ID)
	s.boardState.BestScore = prev.BestScore
	s.boardState.Games = prev.Games + 1
	s.boardState.Pieces = s.gen.GenerateBatch()
	s.started = true

	s.log.Info("session reset",
		zap.Int("game", s.boardState.Games),
		zap.Int("previous_score", prev.Score),
		zap.Strings("pieces", describeSet(s.boardState.Pieces)))

	ended := s.checkTerminal()
	boardStateCopy := s.boardState.Copy()
	s.mu.Unlock()

	if ended && s.endCallback != nil {
		s.endCallback(boardStateCopy)
	}
}

// checkTerminal moves the session to game over when nothing can be placed.
// Must be called while holding the lock.
func (s *Session) checkTerminal() bool {
	if HasAnyValidMove(s.boardState.Board, s.boardState.Pieces) {
		return false
	}
	s.boardState.Phase = types.PhaseGameOver
	s.boardState.Outcome = fmt.Sprintf("No moves left, final score %d", s.boardState.Score)
	s.log.Info("game over",
		zap.Int("score", s.boardState.Score),
		zap.Int("moves", s.boardState.MoveNumber),
		zap.Int("filled", s.boardState.Board.FilledCount()))
	return true
}

// OnMove registers a callback for committed placements.
func (s *Session) OnMove(callback func(result *types.MoveResult, boardState *types.BoardState)) {
	s.moveCallback = callback
}

// OnGameEnd registers a callback for when no remaining piece can be placed.
func (s *Session) OnGameEnd(callback func(boardState *types.BoardState)) {
	s.endCallback = callback
}

// Close flushes the session log.
func (s *Session) Close() {
	s.log.Info("session closed")
	_ = s.log.Sync()
}

// describeSet renders the remaining pieces for log output, e.g. "3x3/9#2".
func describeSet(set types.PieceSet) []string {
	out := make([]string, 0, len(set))
	for _, p := range set {
		if p == nil {
			out = append(out, "-")
			continue
		}
		out = append(out, fmt.Sprintf("%dx%d/%d#%d", p.Rows(), p.Cols(), p.CellCount(), p.Color))
	}
	return out
}
