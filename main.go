// termblast is a terminal Block Blast game: place pieces on an 8x8 board and clear full lines.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"termblast/config"
	"termblast/engine"
	"termblast/engine/blast"
	"termblast/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagSeed       = flag.Int64("seed", 0, "Random seed for piece generation (0 = random)")
	flagQuickStart = flag.Bool("play", false, "Start game immediately with defaults")
	flagFocus      = flag.Bool("focus", false, "Start in focus mode (board only)")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
	flagAutoplay   = flag.Int("autoplay", 0, "Play N games headless with the greedy player and print the scores")
	flagVerbose    = flag.Bool("verbose", false, "Print every autoplay move")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.BlastBoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var cfg *config.Config
var logger *zap.Logger

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("termblast %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	seed := resolveSeed(*flagSeed, cfg.Game)

	logger, err = config.NewLogger(cfg.Game)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log: %s\n", err)
		logger = zap.NewNop()
	}
	defer func() { _ = logger.Sync() }()

	if *flagAutoplay > 0 {
		if err := runAutoplay(*flagAutoplay, seed); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	quickStart := *flagQuickStart || *flagFocus || *flagSeed != 0

	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ▦ termblast ")

	// Game view setup
	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewBlastBoard(app, cfg, gameHint)

	// Create game layout with centered board and side panel
	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)

	// Game board input handling
	gameBoard.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEsc:
			gameBoard.Deselect()
			return nil
		case tcell.KeyTab:
			gameBoard.CycleSlot()
			return nil
		case tcell.KeyUp:
			gameBoard.MoveCursor(-1, 0)
		case tcell.KeyDown:
			gameBoard.MoveCursor(1, 0)
		case tcell.KeyLeft:
			gameBoard.MoveCursor(0, -1)
		case tcell.KeyRight:
			gameBoard.MoveCursor(0, 1)
		case tcell.KeyEnter:
			if err := gameBoard.PlaceSelected(); err != nil {
				logger.Debug("placement rejected by board", zap.Error(err))
			}
		case tcell.KeyRune:
			switch event.Rune() {
			case 'q':
				if !gameBoard.Deselect() {
					gameBoard.Close()
					rootPage.SwitchToPage("setup")
				}
				return nil
			case '1', '2', '3':
				gameBoard.SelectSlot(int(event.Rune() - '1'))
			case 'h':
				gameBoard.MoveCursor(0, -1)
			case 'j':
				gameBoard.MoveCursor(1, 0)
			case 'k':
				gameBoard.MoveCursor(-1, 0)
			case 'l':
				gameBoard.MoveCursor(0, 1)
			case 'r':
				gameBoard.Reset()
			case '?':
				gameBoard.ShowHint()
			case 'f':
				if gameBoard.ToggleFocusMode() {
					ui.BuildFocusLayout(gameFrame, gameBoard)
				} else {
					ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
				}
			}
		}
		return event
	})

	// Game setup screen
	setupUI := ui.NewGameSetup(cfg,
		func(gameCfg engine.GameConfig) {
			gameBoard.SetConfig(cfg)
			if err := cfg.Save(); err != nil {
				logger.Warn("could not save config", zap.Error(err))
			}
			startGame(gameCfg)
		},
		func() {
			app.Stop()
		},
		func() {
			rootPage.SwitchToPage("colors")
		},
	)

	// Color configuration screen
	colorConfig := ui.NewColorConfig(cfg, func() {
		// Refresh the game board with new colors
		gameBoard.SetConfig(cfg)
		if gameBoard.IsFocusMode() {
			ui.BuildFocusLayout(gameFrame, gameBoard)
		} else {
			ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
		}
		rootPage.SwitchToPage("setup")
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			rootPage.SwitchToPage("setup")
			return nil
		}
		if event.Key() == tcell.KeyTab {
			colorConfig.NextColor()
			return nil
		}
		return event
	})

	// Add pages - start on setup by default, or gameview if quick start
	rootPage.AddPage("setup", ui.CreateCenteredForm(setupUI.Form(), 60), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)

	if quickStart {
		startGame(engine.GameConfig{Seed: seed})
		if *flagFocus {
			gameBoard.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameBoard)
		}
	}

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		logger.Error("ui stopped", zap.Error(err))
		panic(err)
	}
	gameBoard.Close()
}

// startGame starts a session with the given configuration.
func startGame(gameCfg engine.GameConfig) {
	gameBoard.Close()
	sess := blast.NewSession(gameCfg, logger)
	if err := gameBoard.ConnectEngine(sess); err != nil {
		// Show error modal
		modal := tview.NewModal().
			SetText(fmt.Sprintf("Failed to start game:\n%s", err.Error())).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				rootPage.HidePage("error")
			})
		rootPage.AddPage("error", modal, true, true)
		return
	}
	rootPage.SwitchToPage("gameview")
}

// resolveSeed picks the -seed flag over the configured seed. The flag is never written to the config.
func resolveSeed(flagSeed int64, settings config.GameSettings) int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return settings.Seed
}

// runAutoplay plays games headless until done or interrupted.
func runAutoplay(games int, seed int64) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	autoCfg := blast.DefaultAutoplayConfig()
	autoCfg.Games = games
	autoCfg.Seed = seed
	autoCfg.Verbose = *flagVerbose

	scores, err := blast.Autoplay(ctx, os.Stdout, autoCfg, logger)
	if errors.Is(err, context.Canceled) {
		fmt.Println("Interrupted")
		err = nil
	}
	if len(scores) > 0 {
		best, total := 0, 0
		for _, s := range scores {
			total += s
			if s > best {
				best = s
			}
		}
		fmt.Printf("Best %d, average %d over %d games\n", best, total/len(scores), len(scores))
	}
	return err
}
