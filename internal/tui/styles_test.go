package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/javiermolinar/almanac/internal/event"
	"github.com/javiermolinar/almanac/internal/tui/theme"
)

func TestStylesBackgroundCoverage(t *testing.T) {
	palette := &theme.Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Today:       "#00ff00",
		Current:     "#ffff00",
		Weekend:     "#0000ff",
		Warning:     "#ff00ff",
	}
	styles := NewStyles(palette)

	assertBg := func(t *testing.T, name string, style lipgloss.Style, want string) {
		t.Helper()
		bg, ok := style.GetBackground().(lipgloss.Color)
		if !ok {
			t.Fatalf("%s background type = %T, want lipgloss.Color", name, style.GetBackground())
		}
		if bg != lipgloss.Color(want) {
			t.Fatalf("%s background = %q, want %q", name, bg, want)
		}
	}

	assertBg(t, "AppStyle", styles.AppStyle, palette.Bg)
	assertBg(t, "CellStyle", styles.CellStyle, palette.Bg)
	assertBg(t, "CellOutsideStyle", styles.CellOutsideStyle, palette.Bg)
	assertBg(t, "CellSelectedStyle", styles.CellSelectedStyle, palette.BgSelection)
	assertBg(t, "SidebarStyle", styles.SidebarStyle, palette.BgHighlight)
	assertBg(t, "WeekdayStyle", styles.WeekdayStyle, palette.Bg)
}

func TestEventChipStyle_SelectedDiffers(t *testing.T) {
	lipgloss.SetColorProfile(termenv.TrueColor)
	th, err := theme.Load("mocha")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	styles := NewStyles(th)

	plain := styles.EventChipStyle(event.ColorBlue, false, false).Render("x")
	past := styles.EventChipStyle(event.ColorBlue, true, false).Render("x")
	selected := styles.EventChipStyle(event.ColorBlue, false, true).Render("x")

	if plain == selected {
		t.Error("selected chip renders like a plain chip")
	}
	if plain == past {
		t.Error("past chip renders like an upcoming chip")
	}
}

func TestNewStyles_AllThemes(t *testing.T) {
	for _, name := range theme.Available() {
		t.Run(name, func(t *testing.T) {
			th, err := theme.Load(name)
			if err != nil {
				t.Fatalf("Load(%q): %v", name, err)
			}
			styles := NewStyles(th)
			if styles.ModalBgColor == "" {
				t.Error("ModalBgColor is empty")
			}
			if got := styles.EventMarker(event.ColorRed, styles.ModalBgColor); got == "" {
				t.Error("EventMarker rendered nothing")
			}
		})
	}
}
