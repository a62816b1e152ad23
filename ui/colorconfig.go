// Package ui provides terminal UI components for termblast.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termblast/config"
	"termblast/engine/blast"
	"termblast/types"
)

// ColorConfigUI lets the player pick the palette colour of each of the six piece colours.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func()

	// Current selection
	editing  int    // piece colour id being edited, 1..6
	selected [6]int // palette index per piece colour, applied on Enter
	saveErr  error
	filling  bool
}

// Bright block colours to choose from
var pieceColors = []struct {
	code int
	name string
}{
	{196, "Red"},
	{160, "Dark Red"},
	{208, "Orange"},
	{214, "Orange Gold"},
	{226, "Yellow"},
	{220, "Gold"},
	{46, "Green"},
	{34, "Forest Green"},
	{49, "Aquamarine"},
	{51, "Cyan"},
	{39, "Sky Blue"},
	{33, "Blue"},
	{21, "Deep Blue"},
	{93, "Violet"},
	{129, "Purple"},
	{201, "Magenta"},
	{213, "Pink"},
	{231, "White"},
	{250, "Gray"},
	{130, "Brown"},
}

// previewPieces are drawn side by side in the preview, one per piece colour.
var previewPieces = []int{0, 6, 10, 12, 14, 16}

// NewColorConfig creates a new color configuration screen.
func NewColorConfig(cfg *config.Config, onDone func()) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:      cfg,
		onDone:   onDone,
		editing:  1,
		selected: cfg.Theme.Colors.PieceColors,
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.ShowSecondaryText(false)
	cc.colorList.SetSelectedBackgroundColor(MenuColors.Selected)

	cc.populateColorList()

	// Handle selection change (preview)
	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if !cc.filling && index >= 0 && index < len(pieceColors) {
			cc.selected[cc.editing-1] = pieceColors[index].code
		}
	})

	// Handle selection confirm (apply)
	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if index < 0 || index >= len(pieceColors) {
			return
		}
		cc.Apply()
		if cc.saveErr == nil {
			onDone()
		}
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetTitle(" Piece Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	// Layout: list on left, preview on right
	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 30, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

// Apply stores the selected colours in the config and saves it.
func (cc *ColorConfigUI) Apply() {
	cc.cfg.Theme.Colors.PieceColors = cc.selected
	cc.saveErr = cc.cfg.Save()
}

// Editing returns the piece colour id currently being edited.
func (cc *ColorConfigUI) Editing() int {
	return cc.editing
}

// populateColorList fills the list and moves the cursor to the current choice.
func (cc *ColorConfigUI) populateColorList() {
	cc.filling = true
	defer func() { cc.filling = false }()
	cc.colorList.Clear()
	cc.colorList.SetTitle(fmt.Sprintf(" Piece Color %d of %d (Tab: next) ", cc.editing, types.NumColors))
	for i, c := range pieceColors {
		cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
	}
	current := cc.selected[cc.editing-1]
	for i, c := range pieceColors {
		if c.code == current {
			cc.colorList.SetCurrentItem(i)
			break
		}
	}
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if width < 30 || height < 8 {
		return x, y, width, height
	}
	boardStyle := tcell.StyleDefault.Background(tcell.PaletteColor(cc.cfg.Theme.Colors.BoardColor))

	startX := x + 2
	startY := y + 1
	for i, shapeIdx := range previewPieces {
		shape := blast.Catalog[shapeIdx]
		color := tcell.PaletteColor(cc.selected[i])
		style := boardStyle.Foreground(color)
		if i+1 == cc.editing {
			style = style.Underline(true)
		}
		left := startX + i*8
		for r, row := range shape {
			for c, v := range row {
				ch := ' '
				st := boardStyle
				if v == 1 {
					ch = cc.cfg.Theme.Symbols.Block
					st = style
				}
				screen.SetContent(left+c*2, startY+r, ch, nil, st)
				screen.SetContent(left+c*2+1, startY+r, ch, nil, st)
			}
		}
		label := fmt.Sprintf("%d", i+1)
		if i+1 == cc.editing {
			label = fmt.Sprintf("[%d]", i+1)
		}
		for j, ch := range label {
			screen.SetContent(left+j, startY+4, ch, nil, tcell.StyleDefault)
		}
	}

	info := fmt.Sprintf("Color %d: %d", cc.editing, cc.selected[cc.editing-1])
	if cc.saveErr != nil {
		info = fmt.Sprintf("Save failed: %v", cc.saveErr)
	}
	for i, ch := range info {
		if startX+i < x+width-1 {
			screen.SetContent(startX+i, startY+6, ch, nil, tcell.StyleDefault)
		}
	}

	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// NextColor moves on to editing the next piece colour.
func (cc *ColorConfigUI) NextColor() {
	cc.editing = cc.editing%types.NumColors + 1
	cc.populateColorList()
}
