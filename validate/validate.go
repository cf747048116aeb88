// Package validate checks settings preset files before the server loads
// them. Beyond the limits enforced by engine.ValidateSettings it reports:
//   - unknown JSON fields (usually a typo in a key)
//   - duplicate hangman words
//   - a preset name that differs from its file name
//   - minesweeper boards too dense to be playable
package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/mcp-training/arcade/game/engine"
)

// MaxMineDensity is the highest share of mined cells accepted on a board.
const MaxMineDensity = 0.85

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...any) {
	r.Errors = append(r.Errors, "✓ "+fmt.Sprintf(format, args...))
}

// File loads and validates a single preset file.
func File(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var settings engine.Settings
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&settings); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if err := engine.ValidateSettings(&settings); err != nil {
		result.fail("%s", strings.TrimPrefix(err.Error(), "config validation: "))
		return result
	}

	base := strings.TrimSuffix(result.File, filepath.Ext(result.File))
	if settings.Name != base {
		result.fail("Name %q does not match file name %q", settings.Name, base)
	}

	seen := make(map[string]bool, len(settings.Hangman.Words))
	for _, w := range settings.Hangman.Words {
		if seen[w] {
			result.fail("Duplicate hangman word %q", w)
		}
		seen[w] = true
	}

	m := settings.Minesweeper
	density := float64(m.Mines) / float64(m.Rows*m.Cols)
	if density > MaxMineDensity {
		result.fail("Minesweeper density %.0f%% exceeds %.0f%%", density*100, MaxMineDensity*100)
	}

	if result.Valid {
		result.info("Hangman: %d words, %d wrong guesses allowed", len(settings.Hangman.Words), settings.Hangman.MaxGuesses)
		result.info("Checkers: search depth %d", settings.Checkers.SearchDepth)
		result.info("Snake: %dx%d at %dms per tick", settings.Snake.GridSize, settings.Snake.GridSize, settings.Snake.TickMS)
		result.info("Blackjack: balance %d, bet %d", settings.Blackjack.StartingBalance, settings.Blackjack.Bet)
		result.info("Minesweeper: %dx%d with %d mines (%.0f%%)", m.Rows, m.Cols, m.Mines, density*100)
	}
	return result
}

// Dir validates every *.json file in dir, in name order.
func Dir(dir string) ([]ValidationResult, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("error finding config files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no config files in %s", dir)
	}

	results := make([]ValidationResult, 0, len(files))
	for _, file := range files {
		results = append(results, File(file))
	}
	return results, nil
}

// Report prints a concise report and returns whether every file is valid.
func Report(w io.Writer, results []ValidationResult) bool {
	allValid := true
	for _, result := range results {
		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Errors {
				fmt.Fprintln(w, "  "+info)
			}
			continue
		}

		fmt.Fprintln(w, "❌ INVALID")
		allValid = false
		for _, err := range result.Errors {
			if !strings.HasPrefix(err, "✓") {
				fmt.Fprintln(w, "  ❌ "+err)
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All configurations are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some configurations have errors")
	}
	return allValid
}
