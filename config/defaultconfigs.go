package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		UseGridLines:         true,
		DrawGhost:            true,
		DrawCursorBackground: true,
		Colors: ConfigColors{
			BoardColor:        236,
			BoardColorAlt:     235,
			GridColor:         240,
			CursorColorBG:     4,
			GhostColor:        250,
			InvalidGhostColor: 160,
			ClearingColor:     231,
			PieceColors:       [6]int{196, 46, 33, 226, 201, 208},
		},
		Symbols: ConfigSymbols{
			Block:    '█',
			Empty:    '·',
			Ghost:    '▒',
			Clearing: '✸',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Game: GameSettings{
			Seed:        0,
			AnimationMS: 120,
			AutoRestart: false,
			LogLevel:    "info",
		},
	}
}
