package blast

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"termblast/engine"
	"termblast/types"
)

func newTestSession(t *testing.T) (*Session, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	s := NewSession(engine.GameConfig{Seed: 1}, zap.New(core))
	require.NoError(t, s.Start())
	return s, logs
}

// setState replaces board and pieces in place of a dealt batch.
func setState(s *Session, b types.Board, set types.PieceSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boardState.Board = b
	s.boardState.Pieces = set
}

func TestSessionStart(t *testing.T) {
	s, logs := newTestSession(t)
	state := s.GetBoardState()

	assert.NotEmpty(t, state.ID)
	assert.Equal(t, types.PhasePlaying, state.Phase)
	assert.Equal(t, 3, state.Pieces.Remaining())
	assert.Equal(t, 0, state.Score)
	assert.Equal(t, 1, state.Games)
	assert.True(t, s.HasAnyValidMove())
	assert.Equal(t, 1, logs.FilterMessage("session started").Len())

	// A second Start deals nothing new.
	require.NoError(t, s.Start())
	assert.Equal(t, state.Pieces, s.GetBoardState().Pieces)
}

func TestSessionPlaceScores(t *testing.T) {
	s, logs := newTestSession(t)
	setState(s, types.Board{}, types.PieceSet{trioH.Clone(), single.Clone(), single.Clone()})

	var got *types.MoveResult
	var gotState *types.BoardState
	s.OnMove(func(result *types.MoveResult, boardState *types.BoardState) {
		got, gotState = result, boardState
	})

	res, err := s.Place(0, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 30, res.Points)
	assert.Equal(t, 0, res.Lines())
	assert.False(t, res.Refilled)
	assert.False(t, res.GameOver)
	assert.Equal(t, []types.Pos{{Row: 2, Col: 1}, {Row: 2, Col: 2}, {Row: 2, Col: 3}}, res.Placed)
	assert.Len(t, res.Frames, 1)

	state := s.GetBoardState()
	assert.Equal(t, 30, state.Score)
	assert.Equal(t, 30, state.BestScore)
	assert.Equal(t, 1, state.MoveNumber)
	assert.Equal(t, types.Pos{Row: 2, Col: 1}, state.LastMove)
	assert.Nil(t, state.Pieces[0])
	assert.NotNil(t, state.Pieces[1])
	assert.Equal(t, trioH.Color, state.Board[2][3])

	require.NotNil(t, got)
	assert.Same(t, res, got)
	assert.Equal(t, state, gotState)

	entries := logs.FilterMessage("piece placed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(30), fields["points"])
	assert.Equal(t, "B3", fields["at"])
	assert.Equal(t, state.ID, fields["session"])
}

func TestSessionPlaceClearsRow(t *testing.T) {
	s, _ := newTestSession(t)
	var b types.Board
	for c := 0; c < types.Size-1; c++ {
		b[0][c] = 2
	}
	b[5][5] = 4
	setState(s, b, types.PieceSet{single.Clone(), square2.Clone(), nil})

	res, err := s.Place(0, 0, 7)
	require.NoError(t, err)
	assert.Equal(t, 110, res.Points)
	assert.Equal(t, []int{0}, res.ClearedRows)
	assert.Empty(t, res.ClearedCols)
	assert.Len(t, res.ClearedCells, types.Size)

	require.Len(t, res.Frames, 2)
	for c := 0; c < types.Size; c++ {
		assert.Equal(t, types.CellClearing, res.Frames[0][0][c].Kind)
		assert.Equal(t, types.CellEmpty, res.Frames[1][0][c].Kind)
	}
	assert.Equal(t, types.CellView{Kind: types.CellFilled, Color: 4}, res.Frames[0][5][5])

	state := s.GetBoardState()
	assert.Equal(t, 110, state.Score)
	assert.Equal(t, 1, state.Board.FilledCount())
	assert.Equal(t, types.FrameOf(state.Board), res.Frames[len(res.Frames)-1])
}

func TestSessionRefusedPlacementLeavesState(t *testing.T) {
	s, logs := newTestSession(t)
	b := holeyBoard()
	setState(s, b, types.PieceSet{dominoH.Clone(), single.Clone(), nil})
	before := s.GetBoardState()

	called := false
	s.OnMove(func(*types.MoveResult, *types.BoardState) { called = true })

	tests := []struct {
		name           string
		slot, row, col int
		err            error
	}{
		{"overlap", 0, 0, 0, ErrInvalidPlacement},
		{"out of bounds", 1, 8, 0, ErrInvalidPlacement},
		{"negative", 1, -1, 0, ErrInvalidPlacement},
		{"empty slot", 2, 0, 0, ErrEmptySlot},
		{"slot out of range", 3, 0, 0, ErrEmptySlot},
		{"negative slot", -1, 0, 0, ErrEmptySlot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Place(tt.slot, tt.row, tt.col)
			assert.ErrorIs(t, err, tt.err)
			assert.Nil(t, res)
			assert.Equal(t, before, s.GetBoardState())
		})
	}
	assert.False(t, called)
	refused := logs.FilterMessage("placement refused").All()
	require.Len(t, refused, 3)
	fields := refused[2].ContextMap()
	assert.EqualValues(t, -1, fields["row"])
	assert.EqualValues(t, 0, fields["col"])
	assert.NotContains(t, fields, "at")
}

func TestSessionRefillsOnlyWhenEmpty(t *testing.T) {
	s, _ := newTestSession(t)
	setState(s, types.Board{}, types.PieceSet{single.Clone(), nil, single.Clone()})

	res, err := s.Place(0, 0, 0)
	require.NoError(t, err)
	assert.False(t, res.Refilled)
	state := s.GetBoardState()
	assert.Equal(t, 1, state.Pieces.Remaining())
	assert.Nil(t, state.Pieces[0])

	res, err = s.Place(2, 7, 7)
	require.NoError(t, err)
	assert.True(t, res.Refilled)
	assert.Equal(t, 3, s.GetBoardState().Pieces.Remaining())
}

func TestSessionGameOverAndReset(t *testing.T) {
	s, logs := newTestSession(t)
	setState(s, holeyBoard(), types.PieceSet{single.Clone(), dominoH.Clone(), nil})

	var ended *types.BoardState
	s.OnGameEnd(func(boardState *types.BoardState) { ended = boardState })

	assert.True(t, s.CanPlace(0, 0, 0))
	assert.False(t, s.CanPlace(1, 0, 0))
	assert.False(t, s.CanPlace(5, 0, 0))

	res, err := s.Place(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Points)
	assert.True(t, res.GameOver)
	assert.False(t, s.HasAnyValidMove())
	assert.Empty(t, s.LegalMoves())

	require.NotNil(t, ended)
	assert.True(t, ended.Finished())
	assert.NotEmpty(t, ended.Outcome)
	assert.Equal(t, 1, logs.FilterMessage("game over").Len())

	_, err = s.Place(1, 0, 1)
	assert.ErrorIs(t, err, ErrGameOver)

	s.Reset()
	state := s.GetBoardState()
	assert.Equal(t, types.PhasePlaying, state.Phase)
	assert.Equal(t, 0, state.Score)
	assert.Equal(t, 10, state.BestScore)
	assert.Equal(t, 2, state.Games)
	assert.Equal(t, 0, state.MoveNumber)
	assert.Equal(t, types.Board{}, state.Board)
	assert.Equal(t, 3, state.Pieces.Remaining())
	assert.Empty(t, state.Outcome)
	assert.Equal(t, ended.ID, state.ID)
	assert.True(t, s.HasAnyValidMove())
}

func TestSessionRefillThenGameOver(t *testing.T) {
	s, _ := newTestSession(t)
	s.gen = NewGenerator(rand.New(rand.NewSource(1)))
	setState(s, holeyBoard(), types.PieceSet{single.Clone(), nil, nil})

	var ended *types.BoardState
	s.OnGameEnd(func(boardState *types.BoardState) { ended = boardState })

	res, err := s.Place(0, 0, 0)
	require.NoError(t, err)
	assert.True(t, res.Refilled)
	assert.True(t, res.GameOver)

	state := s.GetBoardState()
	assert.True(t, state.Finished())
	assert.Equal(t, 3, state.Pieces.Remaining())
	assert.False(t, s.HasAnyValidMove())
	require.NotNil(t, ended)
	assert.True(t, ended.Finished())
}

func TestSessionStateIsCopied(t *testing.T) {
	s, _ := newTestSession(t)
	state := s.GetBoardState()
	state.Board[0][0] = 3
	state.Pieces[0] = nil
	state.Score = 999

	fresh := s.GetBoardState()
	assert.Equal(t, 0, fresh.Board[0][0])
	assert.NotNil(t, fresh.Pieces[0])
	assert.Equal(t, 0, fresh.Score)
}

func TestSessionSameSeedSameBatch(t *testing.T) {
	a := NewSession(engine.GameConfig{Seed: 99}, nil)
	b := NewSession(engine.GameConfig{Seed: 99}, nil)
	require.NoError(t, a.Start())
	require.NoError(t, b.Start())
	assert.Equal(t, a.GetBoardState().Pieces, b.GetBoardState().Pieces)
	assert.NotEqual(t, a.GetBoardState().ID, b.GetBoardState().ID)
	a.Close()
	b.Close()
}
