// Package theme provides the colour themes of the calendar TUI.
package theme

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultName is the theme used when none is configured.
const DefaultName = "mocha"

var (
	ErrUnknownTheme = errors.New("unknown theme")
	ErrInvalidTheme = errors.New("invalid theme")
)

//go:embed embedded/*.toml
var embedded embed.FS

// Theme is a named set of #rrggbb colours. Optional colours are filled from
// the required ones when the theme is parsed.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`
	BgHighlight string `toml:"bg_highlight"` // sidebar
	BgSelection string `toml:"bg_selection"` // selected cell
	Fg          string `toml:"fg"`
	FgMuted     string `toml:"fg_muted"` // days outside the month
	Accent      string `toml:"accent"`
	Today       string `toml:"today"`
	Current     string `toml:"current"` // event happening now
	Weekend     string `toml:"weekend"`
	Warning     string `toml:"warning"`

	BaseBg      string `toml:"base_bg"`
	ModalBorder string `toml:"modal_border"`
	TextPrimary string `toml:"text_primary"`
	TextMuted   string `toml:"text_muted"`
	Highlight   string `toml:"highlight"`
}

// Load returns the embedded theme called name, ignoring case. An empty name
// means DefaultName.
func Load(name string) (*Theme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultName
	}
	data, err := embedded.ReadFile(path.Join("embedded", name+".toml"))
	if err != nil {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownTheme, name, strings.Join(Available(), ", "))
	}
	t, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if t.Name == "" {
		t.Name = name
	}
	return t, nil
}

// LoadOrDefault is Load falling back to DefaultName. The theme is non-nil
// whenever the embedded default is sound; err says why name was not used.
func LoadOrDefault(name string) (*Theme, error) {
	t, err := Load(name)
	if err == nil {
		return t, nil
	}
	def, derr := Load(DefaultName)
	if derr != nil {
		return nil, errors.Join(err, derr)
	}
	return def, err
}

// Parse decodes a theme from TOML, fills the optional colours and checks
// that every colour is usable.
func Parse(data []byte) (*Theme, error) {
	var t Theme
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}
	t = t.withFallbacks()
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// withFallbacks returns t with empty optional colours derived from the
// required ones.
func (t Theme) withFallbacks() Theme {
	t.Today = coalesce(t.Today, t.Accent)
	t.Current = coalesce(t.Current, t.Today)
	t.Weekend = coalesce(t.Weekend, t.FgMuted, t.Fg)
	t.Warning = coalesce(t.Warning, t.Accent)

	t.BaseBg = coalesce(t.BaseBg, t.BgHighlight, t.Bg)
	t.ModalBorder = coalesce(t.ModalBorder, t.Accent)
	t.TextPrimary = coalesce(t.TextPrimary, t.Fg)
	t.TextMuted = coalesce(t.TextMuted, t.FgMuted)
	t.Highlight = coalesce(t.Highlight, t.BgSelection, t.Accent)
	return t
}

func (t Theme) validate() error {
	colors := []struct{ key, hex string }{
		{"bg", t.Bg},
		{"bg_highlight", t.BgHighlight},
		{"bg_selection", t.BgSelection},
		{"fg", t.Fg},
		{"fg_muted", t.FgMuted},
		{"accent", t.Accent},
		{"today", t.Today},
		{"current", t.Current},
		{"weekend", t.Weekend},
		{"warning", t.Warning},
		{"base_bg", t.BaseBg},
		{"modal_border", t.ModalBorder},
		{"text_primary", t.TextPrimary},
		{"text_muted", t.TextMuted},
		{"highlight", t.Highlight},
	}
	for _, c := range colors {
		if !isHex(c.hex) {
			return fmt.Errorf("%w %q: %s = %q, want #rrggbb", ErrInvalidTheme, t.Name, c.key, c.hex)
		}
	}

	// Today's cell and the weekend headers are drawn on the base background.
	if strings.EqualFold(t.Today, t.Bg) {
		return fmt.Errorf("%w %q: today is the background colour", ErrInvalidTheme, t.Name)
	}
	if strings.EqualFold(t.Weekend, t.Bg) {
		return fmt.Errorf("%w %q: weekend is the background colour", ErrInvalidTheme, t.Name)
	}
	return nil
}

func isHex(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available lists the embedded theme names, sorted.
func Available() []string {
	entries, err := fs.ReadDir(embedded, "embedded")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".toml"); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// IsAvailable reports whether name is an embedded theme, ignoring case.
func IsAvailable(name string) bool {
	return slices.Contains(Available(), strings.ToLower(strings.TrimSpace(name)))
}
