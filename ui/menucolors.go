package ui

import "github.com/gdamore/tcell/v2"

// MenuColors defines the palette shared by the setup and colour screens.
var MenuColors = struct {
	Border     tcell.Color
	Title      tcell.Color
	Label      tcell.Color
	Hint       tcell.Color
	FieldBG    tcell.Color
	ButtonBG   tcell.Color
	ButtonText tcell.Color
	Selected   tcell.Color
}{
	Border:     tcell.PaletteColor(60),  // muted blue-gray
	Title:      tcell.PaletteColor(255), // bright white
	Label:      tcell.PaletteColor(250), // light gray
	Hint:       tcell.PaletteColor(245), // dim gray
	FieldBG:    tcell.PaletteColor(238),
	ButtonBG:   tcell.PaletteColor(24), // dark cyan
	ButtonText: tcell.PaletteColor(255),
	Selected:   tcell.PaletteColor(109), // blue accent
}
