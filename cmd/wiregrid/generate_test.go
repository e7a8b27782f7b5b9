package main

import (
	"strings"
	"testing"

	"github.com/vovakirdan/wiregrid/internal/wiregrid/core"
)

func TestRenderViewAllIncludesEveryView(t *testing.T) {
	flagNoColor = true
	t.Cleanup(func() { flagNoColor = false })

	level, err := core.GenerateLevel(core.DifficultyEasy, core.Options{Seed: 12345})
	if err != nil {
		t.Fatalf("GenerateLevel failed: %v", err)
	}

	all, err := renderView(level, "all")
	if err != nil {
		t.Fatalf("renderView(all) failed: %v", err)
	}
	for _, v := range views {
		out, err := renderView(level, v)
		if err != nil {
			t.Fatalf("renderView(%s) failed: %v", v, err)
		}
		if !strings.Contains(all, out) {
			t.Errorf("view %q missing from all", v)
		}
	}
}

func TestRenderViewUnknown(t *testing.T) {
	level, err := core.GenerateLevel(core.DifficultyEasy, core.Options{Seed: 1})
	if err != nil {
		t.Fatalf("GenerateLevel failed: %v", err)
	}
	if _, err := renderView(level, "sideways"); err == nil {
		t.Error("unknown view accepted")
	}
}
