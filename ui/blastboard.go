// Package ui specifies custom controls for tview to play Block Blast in the terminal.
package ui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termblast/config"
	"termblast/engine"
	"termblast/engine/blast"
	"termblast/types"
)

// style indexes into BlastBoardUI.styles
const (
	styleBoard = iota
	styleBoardAlt
	styleGrid
	styleCursor
	styleGhost
	styleInvalid
	styleClearing
	stylePiece // first of types.NumColors piece colours
)

type BlastBoardUI struct {
	Box        *tview.Box
	BoardState *types.BoardState
	hint       *tview.TextView
	cfg        *config.Config
	finished   bool
	curRow     int
	curCol     int
	slot       int
	app        *tview.Application
	eng        engine.GameEngine
	styles     []tcell.Color
	infoPanel  *GameInfoPanel
	focusMode  bool
	history    []MoveEntry

	frame         *types.Frame // animation frame drawn instead of the board, nil when idle
	pendingFrames []types.Frame
	animGen       int
	frameDelay    time.Duration
	autoRestart   bool
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *BlastBoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (g *BlastBoardUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshHint()
}

// IsFocusMode returns true if focus mode is enabled.
func (g *BlastBoardUI) IsFocusMode() bool {
	return g.focusMode
}

// SelectedSlot returns the selected tray slot, or -1.
func (g *BlastBoardUI) SelectedSlot() int {
	return g.slot
}

// Cursor returns the cell the selected piece's top-left filled cell is anchored to.
func (g *BlastBoardUI) Cursor() types.Pos {
	return types.Pos{Row: g.curRow, Col: g.curCol}
}

func (g *BlastBoardUI) selectedPiece() *types.Piece {
	if g.slot < 0 || g.slot >= len(g.BoardState.Pieces) {
		return nil
	}
	return g.BoardState.Pieces[g.slot]
}

// SelectSlot selects the tray slot if it still holds a piece.
func (g *BlastBoardUI) SelectSlot(slot int) bool {
	if g.finished || slot < 0 || slot >= len(g.BoardState.Pieces) || g.BoardState.Pieces[slot] == nil {
		return false
	}
	g.slot = slot
	g.refreshHint()
	return true
}

// CycleSlot selects the next slot holding a piece.
func (g *BlastBoardUI) CycleSlot() {
	n := len(g.BoardState.Pieces)
	for i := 1; i <= n; i++ {
		if g.SelectSlot((g.slot + i + n) % n) {
			return
		}
	}
}

// Deselect drops the selected slot. It returns false if nothing was selected.
func (g *BlastBoardUI) Deselect() bool {
	if g.slot == -1 {
		return false
	}
	g.slot = -1
	g.refreshHint()
	return true
}

// MoveCursor moves the cursor, staying on the board.
func (g *BlastBoardUI) MoveCursor(dRow, dCol int) {
	if g.finished {
		return
	}
	if g.slot == -1 {
		g.CycleSlot()
	}
	if r := g.curRow + dRow; r >= 0 && r < types.Size {
		g.curRow = r
	}
	if c := g.curCol + dCol; c >= 0 && c < types.Size {
		g.curCol = c
	}
}

// Ghost returns the cells the selected piece would cover at the cursor and whether it fits there.
func (g *BlastBoardUI) Ghost() ([]types.Pos, bool) {
	return ghostCells(g.BoardState.Board, g.selectedPiece(), g.curRow, g.curCol)
}

// anchorBase converts a cursor cell into the bounding box corner of p.
func anchorBase(p *types.Piece, curRow, curCol int) (int, int) {
	dr, dc := p.TopLeftOffset()
	return curRow - dr, curCol - dc
}

func ghostCells(b types.Board, p *types.Piece, curRow, curCol int) ([]types.Pos, bool) {
	if !p.Valid() {
		return nil, false
	}
	row, col := anchorBase(p, curRow, curCol)
	var cells []types.Pos
	for i, r := range p.Shape {
		for j, v := range r {
			if v == 1 {
				cells = append(cells, types.Pos{Row: row + i, Col: col + j})
			}
		}
	}
	return cells, blast.CanPlace(b, row, col, p)
}

func NewBlastBoard(app *tview.Application, c *config.Config, hint *tview.TextView) *BlastBoardUI {
	board := &BlastBoardUI{
		Box:        tview.NewBox(),
		BoardState: types.NewBoardState(""),
		hint:       hint,
		app:        app,
		slot:       -1,
		curRow:     types.Size / 2,
		curCol:     types.Size / 2,
	}
	board.SetConfig(c)
	board.Box.SetDrawFunc(func(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
		frame := board.currentFrame()
		ghost := make(map[types.Pos]bool)
		ghostOK := false
		if board.frame == nil && !board.finished && board.slot != -1 {
			var cells []types.Pos
			cells, ghostOK = board.Ghost()
			for _, p := range cells {
				ghost[p] = true
			}
		}
		for row := 0; row < types.Size; row++ {
			for col := 0; col < types.Size; col++ {
				bg := board.styles[styleBoard]
				if (row%2+col%2) == 1 {
					bg = board.styles[styleBoardAlt]
				}
				cell := frame[row][col]
				st := tcell.StyleDefault.Background(bg)
				r := board.cfg.Theme.Symbols.Empty

				switch cell.Kind {
				case types.CellFilled:
					r = board.cfg.Theme.Symbols.Block
					st = st.Foreground(board.pieceColor(cell.Color))
				case types.CellClearing:
					r = board.cfg.Theme.Symbols.Clearing
					st = st.Foreground(board.styles[styleClearing])
				default:
					st = st.Foreground(board.styles[styleGrid])
					if !board.cfg.Theme.UseGridLines {
						r = ' '
					}
				}

				pos := types.Pos{Row: row, Col: col}
				if ghost[pos] && ghostOK && board.cfg.Theme.DrawGhost {
					r = board.cfg.Theme.Symbols.Ghost
					st = st.Foreground(board.styles[styleGhost])
				}
				if board.frame == nil && !board.finished && board.slot != -1 &&
					row == board.curRow && col == board.curCol && board.cfg.Theme.DrawCursorBackground {
					if ghostOK {
						st = st.Background(board.styles[styleCursor])
					} else {
						st = st.Background(board.styles[styleInvalid])
					}
				}
				drawBlockCell(screen, st, r, cell.Kind != types.CellEmpty, col, row, x+4, y)
			}
		}
		drawCoordinates(screen, x, y, board)
		// Add offset for coordinate display
		return x, y, types.Size*2 + 4, types.Size + 2
	})
	return board
}

func (g *BlastBoardUI) currentFrame() types.Frame {
	if g.frame != nil {
		return *g.frame
	}
	return types.FrameOf(g.BoardState.Board)
}

func (g *BlastBoardUI) pieceColor(id int) tcell.Color {
	if id < 1 || id > types.NumColors {
		id = 1
	}
	return g.styles[stylePiece+id-1]
}

// ConnectEngine connects the board to a game engine.
func (g *BlastBoardUI) ConnectEngine(e engine.GameEngine) error {
	g.finished = false
	g.eng = e
	g.history = nil

	e.OnMove(func(result *types.MoveResult, boardState *types.BoardState) {
		g.BoardState = boardState
		g.history = append(g.history, MoveEntry{
			Pos:    types.Pos{Row: result.Move.Row, Col: result.Move.Col},
			Points: result.Points,
			Lines:  result.Lines(),
		})
		if g.selectedPiece() == nil {
			g.slot = -1
			g.CycleSlot()
		}
		g.refreshHint()
		if result.GameOver {
			g.pendingFrames = result.Frames
			return
		}
		g.animate(result.Frames, nil)
	})

	e.OnGameEnd(func(boardState *types.BoardState) {
		g.finished = true
		g.BoardState = boardState
		g.slot = -1
		g.refreshHint()
		frames := append(g.pendingFrames, blast.ExplosionFrames(boardState.Board)...)
		g.pendingFrames = nil
		var done func()
		if g.autoRestart {
			done = g.Reset
		}
		g.animate(frames, done)
	})

	if err := e.Start(); err != nil {
		return err
	}
	g.BoardState = e.GetBoardState()
	g.finished = g.BoardState.Finished()
	if !g.finished {
		g.slot = -1
		g.CycleSlot()
	}
	g.refreshHint()
	return nil
}

// animate plays frames one after another and runs done once the last one is shown.
// A newer call supersedes a running animation.
func (g *BlastBoardUI) animate(frames []types.Frame, done func()) {
	g.animGen++
	gen := g.animGen
	if g.app == nil || g.frameDelay <= 0 || len(frames) == 0 {
		g.frame = nil
		if done != nil {
			done()
		}
		g.redraw()
		return
	}
	delay := g.frameDelay
	go func() {
		for i := range frames {
			f := frames[i]
			g.app.QueueUpdateDraw(func() {
				if g.animGen == gen {
					g.frame = &f
				}
			})
			time.Sleep(delay)
		}
		g.app.QueueUpdateDraw(func() {
			if g.animGen != gen {
				return
			}
			g.frame = nil
			if done != nil {
				done()
			}
		})
	}()
}

func (g *BlastBoardUI) redraw() {
	if g.app == nil {
		return
	}
	// Spawn goroutine to avoid deadlock when called from main thread
	go func() {
		g.app.QueueUpdateDraw(func() {})
	}()
}

// PlaceSelected places the selected piece at the cursor.
func (g *BlastBoardUI) PlaceSelected() error {
	if g.finished || g.eng == nil {
		return nil
	}
	p := g.selectedPiece()
	if p == nil {
		return blast.ErrEmptySlot
	}
	row, col := anchorBase(p, g.curRow, g.curCol)
	_, err := g.eng.Place(g.slot, row, col)
	return err
}

// ShowHint selects a piece and moves the cursor to a legal placement for it.
// The selected slot is preferred when it has one.
func (g *BlastBoardUI) ShowHint() bool {
	if g.finished || g.eng == nil {
		return false
	}
	moves := g.eng.LegalMoves()
	if len(moves) == 0 {
		return false
	}
	m := moves[0]
	for _, candidate := range moves {
		if candidate.Slot == g.slot {
			m = candidate
			break
		}
	}
	g.slot = m.Slot
	dr, dc := g.BoardState.Pieces[m.Slot].TopLeftOffset()
	g.curRow, g.curCol = m.Row+dr, m.Col+dc
	g.refreshHint()
	return true
}

// Reset starts a new game on the connected engine.
func (g *BlastBoardUI) Reset() {
	if g.eng == nil {
		return
	}
	g.animGen++
	g.frame = nil
	g.pendingFrames = nil
	g.eng.Reset()
	g.BoardState = g.eng.GetBoardState()
	g.finished = g.BoardState.Finished()
	g.history = nil
	g.slot = -1
	if !g.finished {
		g.CycleSlot()
	}
	g.refreshHint()
	g.redraw()
}

// Close releases the engine.
func (g *BlastBoardUI) Close() {
	if g.eng == nil {
		return
	}
	g.animGen++
	g.frame = nil
	g.eng.Close()
	g.eng = nil
}

func (g *BlastBoardUI) SetConfig(c *config.Config) {
	colors := c.Theme.Colors
	g.styles = []tcell.Color{
		tcell.PaletteColor(colors.BoardColor),        // 0
		tcell.PaletteColor(colors.BoardColorAlt),     // 1
		tcell.PaletteColor(colors.GridColor),         // 2
		tcell.PaletteColor(colors.CursorColorBG),     // 3
		tcell.PaletteColor(colors.GhostColor),        // 4
		tcell.PaletteColor(colors.InvalidGhostColor), // 5
		tcell.PaletteColor(colors.ClearingColor),     // 6
	}
	for id := 1; id <= types.NumColors; id++ {
		g.styles = append(g.styles, tcell.PaletteColor(colors.PieceColor(id)))
	}
	g.frameDelay = time.Duration(c.Game.AnimationMS) * time.Millisecond
	g.autoRestart = c.Game.AutoRestart
	g.cfg = c
}

func (g *BlastBoardUI) refreshHint() {
	// Update info panel if available
	if g.infoPanel != nil {
		g.infoPanel.SetBoardState(g.BoardState, g.slot)
	}
	if g.hint == nil {
		return
	}

	// Focus mode shows minimal hint
	if g.focusMode {
		g.hint.SetText("  f to toggle")
		return
	}

	var statusLine, controlsLine string

	if g.finished {
		statusLine = fmt.Sprintf("  %s\n", g.BoardState.Outcome)
		controlsLine = "  r · new game   q · return to menu"
		if g.autoRestart {
			controlsLine = "  restarting...   q · return to menu"
		}
	} else {
		if g.slot >= 0 {
			statusLine = fmt.Sprintf("  Piece %d at %s\n", g.slot+1, blast.PosToDisplay(g.curRow, g.curCol))
		} else {
			statusLine = "  Pick a piece with 1-3\n"
		}
		controlsLine = "  1-3/⇥ piece   hjkl/↑↓←→ move   ⏎ place   ? hint   r reset   f focus   q quit"
	}

	g.hint.SetText(statusLine + controlsLine)
}

// IsFinished returns true if the game is over.
func (g *BlastBoardUI) IsFinished() bool {
	return g.finished
}

// drawBlockCell draws a 2 character wide cell. Occupied cells repeat the rune so blocks look square.
func drawBlockCell(s tcell.Screen, c tcell.Style, r rune, solid bool, x, y, l, t int) {
	s.SetContent(l+x*2, t+y, r, nil, c)
	second := ' '
	if solid {
		second = r
	}
	s.SetContent(l+x*2+1, t+y, second, nil, c)
}

func drawCoordinates(s tcell.Screen, x, y int, ui *BlastBoardUI) {
	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(ui.styles[styleCursor])
	active := !ui.finished && ui.slot != -1 && ui.frame == nil

	for ix := 0; ix < types.Size; ix++ {
		_style := style
		if active && ix == ui.curCol {
			_style = highlight
		}
		s.SetContent(x+4+(ix*2), y+types.Size+1, rune('A'+ix), nil, _style)
		s.SetContent(x+4+(ix*2)+1, y+types.Size+1, ' ', nil, _style)
	}

	for iy := 0; iy < types.Size; iy++ {
		_style := style
		if active && iy == ui.curRow {
			_style = highlight
		}
		s.SetContent(x+1, y+iy, ' ', nil, _style)
		s.SetContent(x+2, y+iy, rune('1'+iy), nil, _style)
	}
}
