// Package ui provides terminal UI components for termblast.
package ui

import (
	"strconv"
	"strings"

	"github.com/rivo/tview"

	"termblast/config"
	"termblast/engine"
)

// animationSpeeds are the frame delays offered in the setup form, in milliseconds.
var animationSpeeds = []struct {
	ms   int
	name string
}{
	{0, "Off"},
	{60, "Fast"},
	{120, "Normal"},
	{250, "Slow"},
}

// GameSetupUI provides a form for configuring a new game.
type GameSetupUI struct {
	form     *tview.Form
	flex     *tview.Flex
	cfg      *config.Config
	onStart  func(engine.GameConfig)
	onCancel func()
	onColors func()

	seed        int64
	animationMS int
	autoRestart bool
}

// NewGameSetup creates a new game setup form. Animation and restart choices are written
// back to cfg.Game when the game starts.
func NewGameSetup(cfg *config.Config, onStart func(engine.GameConfig), onCancel func(), onColors func()) *GameSetupUI {
	setup := &GameSetupUI{
		cfg:         cfg,
		onStart:     onStart,
		onCancel:    onCancel,
		onColors:    onColors,
		seed:        cfg.Game.Seed,
		animationMS: cfg.Game.AnimationMS,
		autoRestart: cfg.Game.AutoRestart,
	}

	speedNames := make([]string, len(animationSpeeds))
	speedIndex := 2
	for i, s := range animationSpeeds {
		speedNames[i] = s.name
		if s.ms == setup.animationMS {
			speedIndex = i
		}
	}

	seedText := ""
	if setup.seed != 0 {
		seedText = strconv.FormatInt(setup.seed, 10)
	}

	form := tview.NewForm()

	form.AddInputField("Seed (empty = random)", seedText, 20, func(text string, lastChar rune) bool {
		return (lastChar >= '0' && lastChar <= '9') || (lastChar == '-' && len(text) == 1)
	}, func(text string) {
		setup.seed = parseSeed(text)
	})

	form.AddDropDown("Animation", speedNames, speedIndex, func(option string, index int) {
		setup.animationMS = animationSpeeds[index].ms
	})

	form.AddCheckbox("Restart after game over", setup.autoRestart, func(checked bool) {
		setup.autoRestart = checked
	})

	form.AddButton("Start Game", func() {
		setup.cfg.Game.AnimationMS = setup.animationMS
		setup.cfg.Game.AutoRestart = setup.autoRestart
		onStart(setup.GameConfig())
	})

	form.AddButton("Piece Colors", func() {
		if onColors != nil {
			onColors()
		}
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" New Game ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetBorderColor(MenuColors.Border)
	form.SetTitleColor(MenuColors.Title)
	form.SetLabelColor(MenuColors.Label)
	form.SetFieldBackgroundColor(MenuColors.FieldBG)
	form.SetButtonBackgroundColor(MenuColors.ButtonBG)
	form.SetButtonTextColor(MenuColors.ButtonText)

	// Create help text
	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Arrow keys: change dropdown  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(MenuColors.Hint)

	// Create flex layout with form and help text
	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// GameConfig returns the session configuration chosen in the form.
func (s *GameSetupUI) GameConfig() engine.GameConfig {
	gameCfg := engine.DefaultConfig()
	gameCfg.Seed = s.seed
	return gameCfg
}

// parseSeed reads a seed from the input field. Anything unparsable means a random seed.
func parseSeed(text string) int64 {
	seed, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0
	}
	return seed
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}
