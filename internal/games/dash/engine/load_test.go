package engine

import (
	"errors"
	"strings"
	"testing"
)

const classicMap = `
########################################
#...............................X......#
#.......OO.......OOOOOO................#
#.......OO........OOOOOO...............#
#.......XXXX.........X.................#
#......................................#
#.........................##############
#.........OO...........................#
#.........XXX..........................#
##################.....................#
#......................XXXXXX..........#
#.......OOOOOOO........................#
#........X......................@......#
########################################
`

func TestParseTemplateClassic(t *testing.T) {
	tpl, err := ParseTemplate(classicMap, DefaultWidth, DefaultHeight)
	if err != nil {
		t.Fatalf("ParseTemplate() failed: %v", err)
	}

	layout, err := Load(tpl)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if layout.Grid.Count(Player) != 1 {
		t.Errorf("expected exactly one player, got %d", layout.Grid.Count(Player))
	}
	wantGems := strings.Count(classicMap, "X")
	if layout.GemsTotal != wantGems {
		t.Errorf("GemsTotal = %d, expected %d", layout.GemsTotal, wantGems)
	}
	if layout.Spawn != 12*DefaultWidth+32 {
		t.Errorf("Spawn = %d, expected %d", layout.Spawn, 12*DefaultWidth+32)
	}
	if len(layout.Enemies) != 0 {
		t.Errorf("expected no enemies, got %d", len(layout.Enemies))
	}
}

func TestLoadEnemySpawns(t *testing.T) {
	tpl := Template{Width: 5, Height: 3, Rows: []string{
		"#####",
		"#!@!#",
		"#####",
	}}
	layout, err := Load(tpl)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if len(layout.Enemies) != 2 {
		t.Fatalf("expected 2 enemies, got %d", len(layout.Enemies))
	}
	if layout.Enemies[0].Pos != 6 || layout.Enemies[1].Pos != 8 {
		t.Errorf("enemy positions = %d, %d, expected 6, 8", layout.Enemies[0].Pos, layout.Enemies[1].Pos)
	}
	for _, e := range layout.Enemies {
		if layout.Grid.Get(e.Pos) != Enemy {
			t.Errorf("cell %d should hold Enemy, got %v", e.Pos, layout.Grid.Get(e.Pos))
		}
		if e.DirX != 0 || e.DirY != 0 {
			t.Errorf("new enemy should have no direction, got (%d, %d)", e.DirX, e.DirY)
		}
	}
}

func TestMalformedLevels(t *testing.T) {
	tests := []struct {
		name string
		text string
		w, h int
	}{
		{"short row", "####\n#@ #\n###", 4, 3},
		{"long row", "####\n#@  #\n####", 4, 3},
		{"too few rows", "####\n#@ #", 4, 3},
		{"too many rows", "####\n#@ #\n#  #\n####", 4, 3},
		{"unknown glyph", "####\n#@?#\n####", 4, 3},
		{"no player", "####\n#  #\n####", 4, 3},
		{"two players", "####\n#@@#\n####", 4, 3},
		{"zero size", "", 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTemplate(tc.text, tc.w, tc.h)
			if !errors.Is(err, ErrMalformedLevel) {
				t.Errorf("ParseTemplate() error = %v, expected ErrMalformedLevel", err)
			}
		})
	}
}

func TestLoadRejectsUnvalidatedTemplate(t *testing.T) {
	tpl := Template{Width: 3, Height: 1, Rows: []string{"@ "}}
	if _, err := Load(tpl); !errors.Is(err, ErrMalformedLevel) {
		t.Errorf("Load() error = %v, expected ErrMalformedLevel", err)
	}
	if _, err := New(tpl, DefaultConfig()); !errors.Is(err, ErrMalformedLevel) {
		t.Errorf("New() error = %v, expected ErrMalformedLevel", err)
	}
}

func TestParseTemplateCRLF(t *testing.T) {
	tpl, err := ParseTemplate("O.@\r\n", 3, 1)
	if err != nil {
		t.Fatalf("ParseTemplate() failed: %v", err)
	}
	if tpl.Rows[0] != "O.@" {
		t.Errorf("row = %q, expected %q", tpl.Rows[0], "O.@")
	}
}
