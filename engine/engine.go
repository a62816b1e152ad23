// Package engine defines the interface for game engines.
package engine

import "termblast/types"

// GameEngine defines the interface the UI drives a Block Blast session through.
type GameEngine interface {
	// Start deals the first batch of pieces.
	Start() error

	// GetBoardState returns a copy of the current state.
	GetBoardState() *types.BoardState

	// CanPlace reports whether the piece in slot fits with its bounding box at row, col.
	CanPlace(slot, row, col int) bool

	// Place commits the piece in slot at row, col.
	// Returns an error and leaves the state untouched if the placement is refused.
	Place(slot, row, col int) (*types.MoveResult, error)

	// HasAnyValidMove returns true if any remaining piece fits anywhere.
	HasAnyValidMove() bool

	// LegalMoves lists every placement available for the remaining pieces.
	LegalMoves() []types.Move

	// Reset clears board and score and deals a fresh batch.
	Reset()

	// OnMove registers a callback for committed placements.
	// boardState is passed directly to avoid lock contention.
	OnMove(func(result *types.MoveResult, boardState *types.BoardState))

	// OnGameEnd registers a callback for when no remaining piece can be placed.
	OnGameEnd(func(boardState *types.BoardState))

	// Close releases the engine.
	Close()
}

// GameConfig holds configuration for starting a new session.
type GameConfig struct {
	Seed int64 // 0 seeds from the clock
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		Seed: 0,
	}
}
