package blast

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termblast/types"
)

func TestBestMovePrefersLineClear(t *testing.T) {
	var b types.Board
	for c := 0; c < types.Size-1; c++ {
		b[2][c] = 3
	}
	set := types.PieceSet{square2, single, nil}

	m, ok := BestMove(b, set)
	require.True(t, ok)
	assert.Equal(t, types.Move{Slot: 1, Row: 2, Col: 7}, m)
}

func TestBestMoveNone(t *testing.T) {
	_, ok := BestMove(holeyBoard(), types.PieceSet{dominoH})
	assert.False(t, ok)
}

func TestAutoplayDeterministic(t *testing.T) {
	cfg := AutoplayConfig{Games: 2, Seed: 5, MaxMoves: 200}

	var out1, out2 bytes.Buffer
	scores1, err := Autoplay(context.Background(), &out1, cfg, nil)
	require.NoError(t, err)
	scores2, err := Autoplay(context.Background(), &out2, cfg, nil)
	require.NoError(t, err)

	require.Len(t, scores1, 2)
	assert.Equal(t, scores1, scores2)
	assert.Equal(t, out1.String(), out2.String())
	assert.Contains(t, out1.String(), "Game 1: score")
	assert.Contains(t, out1.String(), "Game 2: score")
	for _, s := range scores1 {
		assert.Greater(t, s, 0)
	}
}

func TestAutoplayVerbose(t *testing.T) {
	var out bytes.Buffer
	cfg := AutoplayConfig{Games: 1, Seed: 11, MaxMoves: 3, Verbose: true}
	_, err := Autoplay(context.Background(), &out, cfg, nil)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "   1. ")
	assert.Contains(t, out.String(), "in 3 moves")
}

func TestAutoplayCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	scores, err := Autoplay(ctx, &out, DefaultAutoplayConfig(), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, scores)
}
