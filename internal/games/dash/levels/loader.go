// Package levels provides level loading for Dash.
// This package depends on engine but engine does not depend on levels.
package levels

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-dash/internal/games/dash/engine"
	"github.com/vovakirdan/tui-dash/internal/games/dash/levels/formats"
)

// ErrNotFound is returned when no level matches the requested ID.
var ErrNotFound = errors.New("levels: level not found")

// Level represents a complete, validated level definition.
type Level struct {
	ID          string
	Name        string
	Description string
	Template    engine.Template
	FilePath    string // empty for built-in levels
}

// Gems returns the number of gems on the board.
func (l Level) Gems() int {
	n := 0
	for _, row := range l.Template.Rows {
		n += strings.Count(row, "X")
	}
	return n
}

// Enemies returns the number of enemy spawns on the board.
func (l Level) Enemies() int {
	n := 0
	for _, row := range l.Template.Rows {
		n += strings.Count(row, "!")
	}
	return n
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root   string
	Width  int // board width for files without a size
	Height int // board height for files without a size
}

// NewLoader creates a new level loader using the default board size.
func NewLoader(root string) *Loader {
	return &Loader{
		Root:   root,
		Width:  engine.DefaultWidth,
		Height: engine.DefaultHeight,
	}
}

// LoadAll recursively scans and loads all level files.
// Files that are not level documents are skipped; a level whose map is
// malformed fails the whole scan.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err != nil {
			if errors.Is(err, engine.ErrMalformedLevel) {
				return err
			}
			// Skip files that are not levels
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	sortByID(levels)
	return levels, nil
}

// LoadFile loads and validates a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	level, err := parseLevel(data, ext, l.Width, l.Height)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}
	level.FilePath = path

	return level, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// parseLevel decodes a level document and validates its map against the
// size it declares, or w x h when it declares none.
func parseLevel(data []byte, ext string, w, h int) (Level, error) {
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, err
	}

	if parsed.Width > 0 || parsed.Height > 0 {
		w, h = parsed.Width, parsed.Height
	}
	tpl, err := engine.ParseTemplate(parsed.Map, w, h)
	if err != nil {
		return Level{}, fmt.Errorf("level %s: %w", parsed.ID, err)
	}
	tpl.ID = parsed.ID
	tpl.Name = parsed.Name
	tpl.Lives = parsed.Lives

	return Level{
		ID:          parsed.ID,
		Name:        parsed.Name,
		Description: parsed.Description,
		Template:    tpl,
	}, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

func sortByID(levels []Level) {
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
}
