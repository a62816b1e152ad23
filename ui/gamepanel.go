package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termblast/config"
	"termblast/engine/blast"
	"termblast/types"
)

// MoveEntry is one committed placement shown in the recent moves list.
type MoveEntry struct {
	Pos    types.Pos
	Points int
	Lines  int
}

// GameInfoPanel displays score, the piece tray and recent placements alongside the board.
type GameInfoPanel struct {
	box         *tview.TextView
	boardState  *types.BoardState
	slot        int
	colors      config.ConfigColors
	moveHistory *[]MoveEntry
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel(colors config.ConfigColors) *GameInfoPanel {
	panel := &GameInfoPanel{
		box:    tview.NewTextView(),
		slot:   -1,
		colors: colors,
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetBoardState updates the panel with current board state and selected slot.
func (p *GameInfoPanel) SetBoardState(state *types.BoardState, slot int) {
	p.boardState = state
	p.slot = slot
	p.refresh()
}

// SetMoveHistory sets a pointer to the placement history slice.
func (p *GameInfoPanel) SetMoveHistory(history *[]MoveEntry) {
	p.moveHistory = history
}

// Text returns the rendered panel text without colour tags.
func (p *GameInfoPanel) Text() string {
	return p.box.GetText(true)
}

// refresh updates the panel text.
func (p *GameInfoPanel) refresh() {
	if p.boardState == nil {
		p.box.SetText("")
		return
	}

	var text strings.Builder

	text.WriteString("[white::b]Score[-:-:-]\n")
	text.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	fmt.Fprintf(&text, "[white]Score:[-:-:-] %d\n", p.boardState.Score)
	fmt.Fprintf(&text, "[white]Best:[-:-:-]  %d\n", p.boardState.BestScore)
	fmt.Fprintf(&text, "[white]Game:[-:-:-]  %d   [white]Move:[-:-:-] %d\n", p.boardState.Games, p.boardState.MoveNumber)

	text.WriteString("\n[white::b]Pieces[-:-:-]\n")
	text.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	for i, piece := range p.boardState.Pieces {
		marker := " "
		if i == p.slot {
			marker = "[yellow]>[-]"
		}
		if piece == nil {
			fmt.Fprintf(&text, "%s[dimgray]%d  ·[-]\n", marker, i+1)
			continue
		}
		for r, line := range trayLines(piece, p.colors) {
			if r == 0 {
				fmt.Fprintf(&text, "%s[white]%d[-]  %s\n", marker, i+1, line)
			} else {
				fmt.Fprintf(&text, "    %s\n", line)
			}
		}
	}

	if p.moveHistory != nil && len(*p.moveHistory) > 0 {
		text.WriteString("\n[white::b]Recent[-:-:-]\n")
		text.WriteString("[dimgray]──────────────────────[-:-:-]\n")

		moves := *p.moveHistory
		maxVisible := 6
		start := 0
		if len(moves) > maxVisible {
			start = len(moves) - maxVisible
		}

		for i := len(moves) - 1; i >= start; i-- {
			m := moves[i]
			marker := " "
			if i == len(moves)-1 {
				marker = "[white]>[-]"
			}
			lines := ""
			if m.Lines > 0 {
				lines = fmt.Sprintf(" [yellow]×%d[-]", m.Lines)
			}
			fmt.Fprintf(&text, "%s[dimgray]%3d.[-] %s +%d%s\n", marker, i+1, blast.PosToDisplay(m.Pos.Row, m.Pos.Col), m.Points, lines)
		}

		if start > 0 {
			fmt.Fprintf(&text, "[dimgray]  ··· %d earlier[-]\n", start)
		}
	}

	if p.boardState.Finished() {
		text.WriteString("\n[red::b]Game over[-:-:-]\n")
	}

	p.box.SetText(text.String())
}

// trayLines renders a piece as coloured rows of blocks.
func trayLines(piece *types.Piece, colors config.ConfigColors) []string {
	hex := tcell.PaletteColor(colors.PieceColor(piece.Color)).Hex()
	lines := make([]string, 0, piece.Rows())
	for _, row := range piece.Shape {
		var line strings.Builder
		fmt.Fprintf(&line, "[#%06x]", hex)
		for _, v := range row {
			if v == 1 {
				line.WriteString("██")
			} else {
				line.WriteString("  ")
			}
		}
		line.WriteString("[-]")
		lines = append(lines, line.String())
	}
	return lines
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *BlastBoardUI, hint *tview.TextView) *tview.Flex {
	mainFlex := tview.NewFlex()
	RebuildNormalLayout(mainFlex, board, hint)
	return mainFlex
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form *tview.Flex, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)        // Left spacer
	centered.AddItem(form, maxWidth, 0, true) // Form with max width
	centered.AddItem(nil, 0, 1, false)        // Right spacer

	return centered
}

// RebuildNormalLayout restores the normal game layout with board, info panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, board *BlastBoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	// Create the info panel
	infoPanel := NewGameInfoPanel(board.cfg.Theme.Colors)

	// Store panel reference in board for updates
	board.infoPanel = infoPanel
	infoPanel.SetMoveHistory(&board.history)

	// Refresh the info panel with current state
	if board.BoardState != nil {
		infoPanel.SetBoardState(board.BoardState, board.slot)
	}

	// Create horizontal flex: board | info panel
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)         // Board (flexible, takes remaining space)
	boardRow.AddItem(infoPanel.Box(), 28, 0, false) // Info panel (fixed width)

	// Main vertical flex: board area on top, compact status bar at bottom
	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 4, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered board.
func BuildFocusLayout(gameFrame *tview.Flex, board *BlastBoardUI) {
	gameFrame.Clear()
	board.infoPanel = nil

	boardWidth := types.Size*2 + 4 // 2 chars per cell + coordinates
	boardHeight := types.Size + 2  // + coordinates

	// Center board with flex spacers
	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false) // top spacer

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)               // left spacer
	centerRow.AddItem(board.Box, boardWidth, 0, true) // board (fixed width)
	centerRow.AddItem(nil, 0, 1, false)               // right spacer

	gameFrame.AddItem(centerRow, boardHeight, 0, true) // center row (fixed height)
	gameFrame.AddItem(nil, 0, 1, false)                // bottom spacer
}
