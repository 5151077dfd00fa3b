package levels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-dash/internal/games/dash/engine"
)

const smallLevel = `id: tiny
name: Tiny
lives: 2
size: {w: 5, h: 3}
map: |
  #####
  #@X!#
  #####
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	return path
}

func TestBuiltinPack(t *testing.T) {
	levels, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() failed: %v", err)
	}

	wantIDs := []string{"classic", "quarry", "spiders"}
	if len(levels) != len(wantIDs) {
		t.Fatalf("got %d built-in levels, expected %d", len(levels), len(wantIDs))
	}
	for i, lvl := range levels {
		if lvl.ID != wantIDs[i] {
			t.Errorf("level %d ID = %q, expected %q", i, lvl.ID, wantIDs[i])
		}
		if lvl.Template.Width != engine.DefaultWidth || lvl.Template.Height != engine.DefaultHeight {
			t.Errorf("level %s size = %dx%d", lvl.ID, lvl.Template.Width, lvl.Template.Height)
		}
		if lvl.FilePath != "" {
			t.Errorf("built-in level %s should have no file path", lvl.ID)
		}
		if _, err := engine.New(lvl.Template, engine.DefaultConfig()); err != nil {
			t.Errorf("level %s does not start a session: %v", lvl.ID, err)
		}
	}
}

func TestClassicBoardLayout(t *testing.T) {
	lvl, err := Find("", nil)
	if err != nil {
		t.Fatalf("Find() failed: %v", err)
	}
	if lvl.ID != DefaultID {
		t.Errorf("default level = %q, expected %q", lvl.ID, DefaultID)
	}
	if lvl.Gems() != 16 {
		t.Errorf("Gems() = %d, expected 16", lvl.Gems())
	}
	if lvl.Enemies() != 1 {
		t.Errorf("Enemies() = %d, expected 1", lvl.Enemies())
	}
	if lvl.Template.Rows[12][32] != '@' {
		t.Errorf("player should start at column 32 of row 12, row is %q", lvl.Template.Rows[12])
	}
}

func TestLoaderLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tiny.yaml", smallLevel)

	lvl, err := NewLoader(dir).LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}

	if lvl.ID != "tiny" || lvl.Name != "Tiny" {
		t.Errorf("ID/Name = %q/%q", lvl.ID, lvl.Name)
	}
	if lvl.Template.Width != 5 || lvl.Template.Height != 3 {
		t.Errorf("size = %dx%d, expected 5x3", lvl.Template.Width, lvl.Template.Height)
	}
	if lvl.Template.Lives != 2 {
		t.Errorf("Lives = %d, expected 2", lvl.Template.Lives)
	}
	if lvl.FilePath != path {
		t.Errorf("FilePath = %q, expected %q", lvl.FilePath, path)
	}
}

func TestLoaderMalformedMap(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"wrong width", "id: bad\nsize: {w: 5, h: 3}\nmap: |\n  #####\n  #@X#\n  #####\n"},
		{"wrong height", "id: bad\nsize: {w: 5, h: 3}\nmap: |\n  #####\n  #@X!#\n"},
		{"unknown glyph", "id: bad\nsize: {w: 5, h: 3}\nmap: |\n  #####\n  #@X?#\n  #####\n"},
		{"default size mismatch", "id: bad\nmap: |\n  #####\n  #@X!#\n  #####\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, "bad.yaml", tc.content)

			_, err := NewLoader(dir).LoadFile(path)
			if !errors.Is(err, engine.ErrMalformedLevel) {
				t.Errorf("LoadFile() error = %v, expected ErrMalformedLevel", err)
			}
			if _, err := NewLoader(dir).LoadAll(); !errors.Is(err, engine.ErrMalformedLevel) {
				t.Errorf("LoadAll() error = %v, expected ErrMalformedLevel", err)
			}
		})
	}
}

func TestLoaderLoadAllSkipsOtherFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b/tiny.yaml", smallLevel)
	writeFile(t, dir, "notes.txt", "not a level")
	writeFile(t, dir, "settings.yml", "timing:\n  step: 100ms\n")
	writeFile(t, dir, "a.yml", "id: alpha\nsize: {w: 3, h: 1}\nmap: \"@ X\"\n")

	ids, err := NewLoader(dir).ListIDs()
	if err != nil {
		t.Fatalf("ListIDs() failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "alpha" || ids[1] != "tiny" {
		t.Errorf("ListIDs() = %v, expected [alpha tiny]", ids)
	}
}

func TestFindPrefersDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "classic.yaml", "id: classic\nname: My Classic\nsize: {w: 3, h: 1}\nmap: \"@X \"\n")
	writeFile(t, dir, "tiny.yaml", smallLevel)

	lvl, err := Find("classic", NewLoader(dir))
	if err != nil {
		t.Fatalf("Find() failed: %v", err)
	}
	if lvl.Name != "My Classic" {
		t.Errorf("Find() returned %q, expected the directory override", lvl.Name)
	}

	lvl, err = Find("quarry", NewLoader(dir))
	if err != nil || lvl.ID != "quarry" {
		t.Errorf("Find(quarry) = %q, %v; expected built-in fallback", lvl.ID, err)
	}

	if _, err := Find("missing", NewLoader(dir)); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find(missing) error = %v, expected ErrNotFound", err)
	}

	all, err := All(NewLoader(dir))
	if err != nil {
		t.Fatalf("All() failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("All() returned %d levels, expected 4", len(all))
	}
}
