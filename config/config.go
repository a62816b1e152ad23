package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

var (
	cfgFile = "termblast/config.json"
	logFile = "termblast/debug.log"
)

// Log levels accepted in GameSettings.LogLevel besides the zap level names.
const (
	LogLevelOff = "off"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	BoardColor        int    `json:"board"`
	BoardColorAlt     int    `json:"board_alt"`
	GridColor         int    `json:"grid"`
	CursorColorBG     int    `json:"cursor_bg"`
	GhostColor        int    `json:"ghost"`
	InvalidGhostColor int    `json:"invalid_ghost"`
	ClearingColor     int    `json:"clearing"`
	PieceColors       [6]int `json:"pieces"`
}

// PieceColor returns the palette index for a piece colour id 1..6.
// Anything else falls back to the first piece colour.
func (c ConfigColors) PieceColor(id int) int {
	if id < 1 || id > len(c.PieceColors) {
		return c.PieceColors[0]
	}
	return c.PieceColors[id-1]
}

type ConfigSymbols struct {
	Block    rune `json:"block"`
	Empty    rune `json:"empty"`
	Ghost    rune `json:"ghost"`
	Clearing rune `json:"clearing"`
}

type Theme struct {
	UseGridLines         bool          `json:"use_grid_lines"`
	DrawGhost            bool          `json:"draw_ghost"`
	DrawCursorBackground bool          `json:"draw_cursor_bg"`
	Colors               ConfigColors  `json:"colors"`
	Symbols              ConfigSymbols `json:"symbols"`
}

// GameSettings holds gameplay and logging settings.
type GameSettings struct {
	Seed        int64  `json:"seed"`         // 0 seeds from the clock
	AnimationMS int    `json:"animation_ms"` // delay between keyframes, 0 disables animation
	AutoRestart bool   `json:"auto_restart"`
	LogFile     string `json:"log_file"` // empty means the xdg state dir
	LogLevel    string `json:"log_level"`
}

type Config struct {
	Theme Theme        `json:"theme"`
	Game  GameSettings `json:"game"`
}

func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err = readCfgFile(absPath, &config); err != nil {
			return nil, &InvalidConfig{fmt.Sprintf("reading %s: %v", absPath, err)}
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	s := c.Theme.Symbols
	for _, r := range []rune{s.Block, s.Empty, s.Ghost, s.Clearing} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	colors := c.Theme.Colors
	palette := []int{colors.BoardColor, colors.BoardColorAlt, colors.GridColor, colors.CursorColorBG,
		colors.GhostColor, colors.InvalidGhostColor, colors.ClearingColor}
	palette = append(palette, colors.PieceColors[:]...)
	for _, idx := range palette {
		if idx < 0 || idx > 255 {
			return &InvalidConfig{fmt.Sprintf("color %d is outside the 256 color palette", idx)}
		}
	}
	if c.Game.AnimationMS < 0 {
		return &InvalidConfig{"animation_ms must not be negative"}
	}
	if _, err := parseLevel(c.Game.LogLevel); err != nil {
		return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.Game.LogLevel)}
	}
	return nil
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return fmt.Errorf("locating config file: %w", err)
	}
	if err = saveCfgFile(absPath, c, 0664); err != nil {
		return fmt.Errorf("saving %s: %w", absPath, err)
	}
	return nil
}

// StateDir returns the directory holding the debug log, creating it if needed.
func StateDir() (string, error) {
	path, err := xdg.StateFile(logFile)
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, a)
}
