package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestOverlayRenderEmptyContentReturnsBase(t *testing.T) {
	overlay := NewOverlayModel()
	base := "alpha\nbeta"
	if got := overlay.Render(base, 10, 2, ""); got != base {
		t.Fatalf("expected base content unchanged without modal content")
	}
	if got := overlay.Render(base, 0, 0, "modal"); got != base {
		t.Fatalf("expected base content unchanged without a size")
	}
}

func TestOverlayRenderCentersContent(t *testing.T) {
	overlay := NewOverlayModel()
	overlay.SetBackground(lipgloss.Color("#0c0c0c"))

	width := 30
	height := 12
	row := strings.Repeat(".", width)
	base := strings.Repeat(row+"\n", height-1) + row
	content := "EVENT FORM\nsecond line"
	got := overlay.Render(base, width, height, content)

	lines := strings.Split(got, "\n")
	if len(lines) != height {
		t.Fatalf("expected %d lines, got %d", height, len(lines))
	}

	top := (height - 2) / 2
	left := (width - len("second line")) / 2
	bgSeq := overlay.backgroundSeq()

	for i, line := range lines {
		if w := lipgloss.Width(line); w != width {
			t.Fatalf("line %d width = %d, want %d", i, w, width)
		}
		hasBg := strings.Contains(line, bgSeq)
		inBox := i >= top && i < top+2
		if inBox != hasBg {
			t.Fatalf("line %d overlay background = %t, want %t", i, hasBg, inBox)
		}
	}

	first := ansi.Strip(lines[top])
	if !strings.HasPrefix(first[left:], "EVENT FORM") {
		t.Errorf("modal line = %q, want EVENT FORM at column %d", first, left)
	}
	if !strings.HasPrefix(first, strings.Repeat(".", left)) {
		t.Errorf("base should show left of the modal: %q", first)
	}
}

func TestOverlayRenderCutsOversizedContent(t *testing.T) {
	overlay := NewOverlayModel()
	base := "....\n...."
	got := overlay.Render(base, 4, 2, "wide content\nmore\nrows")

	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	for _, line := range lines {
		if w := lipgloss.Width(line); w != 4 {
			t.Errorf("width = %d, want 4", w)
		}
	}
	if ansi.Strip(lines[0]) != "wide" {
		t.Errorf("first line = %q", ansi.Strip(lines[0]))
	}
}
