package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/wricardo/mcp-training/arcade/game/blackjack"
	"github.com/wricardo/mcp-training/arcade/game/checkers"
	"github.com/wricardo/mcp-training/arcade/game/hangman"
	"github.com/wricardo/mcp-training/arcade/game/minesweeper"
	"github.com/wricardo/mcp-training/arcade/game/snake"
)

// Validation limits
const (
	MinGridSize    = 5
	MaxGridSize    = 50
	MaxDelayMS     = 10000
	MinTickMS      = 20
	MaxTickMS      = 2000
	MaxSearchDepth = 6
	MinMineGrid    = 2
	MaxMineGrid    = 30
)

// Settings is a game preset. The classic preset matches the original
// arcade: five web framework words with 6 guesses, 500ms computer delays,
// depth 3, 20x20 snake at 100ms, 100/10 blackjack and 10x10 minesweeper
// with 15 mines.
type Settings struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Hangman     HangmanSettings     `json:"hangman"`
	TicTacToe   TicTacToeSettings   `json:"tictactoe"`
	Checkers    CheckersSettings    `json:"checkers"`
	Snake       SnakeSettings       `json:"snake"`
	Blackjack   BlackjackSettings   `json:"blackjack"`
	Minesweeper MinesweeperSettings `json:"minesweeper"`
}

type HangmanSettings struct {
	Words      []string `json:"words"`
	MaxGuesses int      `json:"max_guesses"`
}

type TicTacToeSettings struct {
	ComputerDelayMS int `json:"computer_delay_ms"`
}

type CheckersSettings struct {
	SearchDepth     int `json:"search_depth"`
	ComputerDelayMS int `json:"computer_delay_ms"`
}

type SnakeSettings struct {
	GridSize int `json:"grid_size"`
	TickMS   int `json:"tick_ms"`
}

type BlackjackSettings struct {
	StartingBalance int `json:"starting_balance"`
	Bet             int `json:"bet"`
}

type MinesweeperSettings struct {
	Rows  int `json:"rows"`
	Cols  int `json:"cols"`
	Mines int `json:"mines"`
}

// DefaultSettings returns the classic preset.
func DefaultSettings() Settings {
	return Settings{
		Name:        "classic",
		Description: "The original arcade rules",
		Hangman: HangmanSettings{
			Words:      append([]string(nil), hangman.Words...),
			MaxGuesses: hangman.MaxGuesses,
		},
		TicTacToe: TicTacToeSettings{ComputerDelayMS: 500},
		Checkers: CheckersSettings{
			SearchDepth:     checkers.DefaultDepth,
			ComputerDelayMS: 500,
		},
		Snake: SnakeSettings{GridSize: snake.DefaultSize, TickMS: 100},
		Blackjack: BlackjackSettings{
			StartingBalance: blackjack.DefaultBalance,
			Bet:             blackjack.DefaultBet,
		},
		Minesweeper: MinesweeperSettings{
			Rows:  minesweeper.DefaultRows,
			Cols:  minesweeper.DefaultCols,
			Mines: minesweeper.DefaultMines,
		},
	}
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// ValidateSettings checks a preset for values the games cannot run with.
func ValidateSettings(s *Settings) error {
	if s == nil {
		return fmt.Errorf("config validation: settings are required")
	}
	if s.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}

	if len(s.Hangman.Words) == 0 {
		return fmt.Errorf("config validation: hangman.words must not be empty")
	}
	for i, w := range s.Hangman.Words {
		if w == "" {
			return fmt.Errorf("config validation: hangman.words[%d] is empty", i)
		}
		for _, c := range w {
			if c < 'a' || c > 'z' {
				return fmt.Errorf("config validation: hangman.words[%d] %q must contain only lowercase letters a-z", i, w)
			}
		}
	}
	if s.Hangman.MaxGuesses < 1 || s.Hangman.MaxGuesses > 26 {
		return fmt.Errorf("config validation: hangman.max_guesses must be between 1 and 26, got %d", s.Hangman.MaxGuesses)
	}

	if err := checkDelay("tictactoe.computer_delay_ms", s.TicTacToe.ComputerDelayMS); err != nil {
		return err
	}
	if err := checkDelay("checkers.computer_delay_ms", s.Checkers.ComputerDelayMS); err != nil {
		return err
	}
	if s.Checkers.SearchDepth < 1 || s.Checkers.SearchDepth > MaxSearchDepth {
		return fmt.Errorf("config validation: checkers.search_depth must be between 1 and %d, got %d", MaxSearchDepth, s.Checkers.SearchDepth)
	}

	if s.Snake.GridSize < MinGridSize || s.Snake.GridSize > MaxGridSize {
		return fmt.Errorf("config validation: snake.grid_size must be between %d and %d, got %d", MinGridSize, MaxGridSize, s.Snake.GridSize)
	}
	if s.Snake.TickMS < MinTickMS || s.Snake.TickMS > MaxTickMS {
		return fmt.Errorf("config validation: snake.tick_ms must be between %d and %d, got %d", MinTickMS, MaxTickMS, s.Snake.TickMS)
	}

	if s.Blackjack.StartingBalance < 1 {
		return fmt.Errorf("config validation: blackjack.starting_balance must be positive, got %d", s.Blackjack.StartingBalance)
	}
	if s.Blackjack.Bet < 1 || s.Blackjack.Bet > s.Blackjack.StartingBalance {
		return fmt.Errorf("config validation: blackjack.bet must be between 1 and starting_balance (%d), got %d",
			s.Blackjack.StartingBalance, s.Blackjack.Bet)
	}

	m := s.Minesweeper
	if m.Rows < MinMineGrid || m.Rows > MaxMineGrid || m.Cols < MinMineGrid || m.Cols > MaxMineGrid {
		return fmt.Errorf("config validation: minesweeper rows and cols must be between %d and %d, got %dx%d",
			MinMineGrid, MaxMineGrid, m.Rows, m.Cols)
	}
	if m.Mines < 1 || m.Mines >= m.Rows*m.Cols {
		return fmt.Errorf("config validation: minesweeper.mines must be between 1 and %d, got %d", m.Rows*m.Cols-1, m.Mines)
	}
	return nil
}

func checkDelay(field string, v int) error {
	if v < 0 || v > MaxDelayMS {
		return fmt.Errorf("config validation: %s must be between 0 and %d, got %d", field, MaxDelayMS, v)
	}
	return nil
}

// LoadSettings reads and validates a preset file.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := ValidateSettings(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
