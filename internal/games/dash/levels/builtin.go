package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/vovakirdan/tui-dash/internal/games/dash/engine"
)

//go:embed pack/*.yaml
var packFS embed.FS

// DefaultID is the level played when none is requested.
const DefaultID = "classic"

// Builtin returns the embedded level pack sorted by ID.
func Builtin() ([]Level, error) {
	entries, err := fs.ReadDir(packFS, "pack")
	if err != nil {
		return nil, fmt.Errorf("levels: reading embedded pack: %w", err)
	}

	levels := make([]Level, 0, len(entries))
	for _, e := range entries {
		name := path.Join("pack", e.Name())
		data, err := packFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("levels: reading %s: %w", name, err)
		}
		level, err := parseLevel(data, path.Ext(name), engine.DefaultWidth, engine.DefaultHeight)
		if err != nil {
			return nil, fmt.Errorf("levels: parsing %s: %w", name, err)
		}
		levels = append(levels, level)
	}

	sortByID(levels)
	return levels, nil
}

// All returns the built-in levels followed by the levels found by custom.
// A custom level replaces the built-in level with the same ID. A nil loader
// or one without a root returns only the built-in pack.
func All(custom *Loader) ([]Level, error) {
	builtin, err := Builtin()
	if err != nil {
		return nil, err
	}
	if custom == nil || custom.Root == "" {
		return builtin, nil
	}

	found, err := custom.LoadAll()
	if err != nil {
		return nil, err
	}

	overridden := make(map[string]bool, len(found))
	for _, lvl := range found {
		overridden[lvl.ID] = true
	}
	levels := make([]Level, 0, len(builtin)+len(found))
	for _, lvl := range builtin {
		if !overridden[lvl.ID] {
			levels = append(levels, lvl)
		}
	}
	return append(levels, found...), nil
}

// Find looks up a level by ID with custom (when set) and then in the
// built-in pack. An empty id selects DefaultID.
func Find(id string, custom *Loader) (Level, error) {
	if id == "" {
		id = DefaultID
	}

	if custom != nil && custom.Root != "" {
		lvl, err := custom.LoadByID(id)
		if err == nil {
			return lvl, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return Level{}, err
		}
	}

	builtin, err := Builtin()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range builtin {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}
