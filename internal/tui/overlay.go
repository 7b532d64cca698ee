package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// OverlayModel splices modal content over the centre of the base view.
type OverlayModel struct {
	bgColor lipgloss.Color
}

// NewOverlayModel initializes an overlay model.
func NewOverlayModel() OverlayModel {
	return OverlayModel{bgColor: lipgloss.Color("")}
}

// SetBackground sets the colour restored after resets inside the modal.
func (o *OverlayModel) SetBackground(color lipgloss.Color) {
	o.bgColor = color
}

// Render draws content centred on top of base. Content larger than the
// screen is cut.
func (o OverlayModel) Render(base string, width, height int, content string) string {
	if width <= 0 || height <= 0 {
		return base
	}
	contentLines := o.contentLines(content)
	boxW, boxH := o.contentSize(contentLines)
	boxW = min(boxW, width)
	boxH = min(boxH, height)
	if boxW <= 0 || boxH <= 0 {
		return base
	}

	top := max(0, (height-boxH)/2)
	left := max(0, (width-boxW)/2)

	baseLines := o.normalizeBase(base, width, height)
	bgSeq := o.backgroundSeq()

	lines := make([]string, 0, height)
	for row := 0; row < height; row++ {
		if row < top || row >= top+boxH {
			lines = append(lines, baseLines[row])
			continue
		}

		line := contentLines[row-top]
		lineWidth := lipgloss.Width(line)
		if lineWidth > boxW {
			line = ansi.Cut(line, 0, boxW)
			lineWidth = boxW
		}
		if lineWidth < boxW {
			line += strings.Repeat(" ", boxW-lineWidth)
		}
		line = o.applyOverlayBackgroundResets(line, bgSeq)

		baseLine := baseLines[row]
		leftSlice := ansi.Cut(baseLine, 0, left)
		rightSlice := ansi.Cut(baseLine, left+boxW, width)
		lines = append(lines, leftSlice+bgSeq+line+ansi.ResetStyle+rightSlice)
	}

	return strings.Join(lines, "\n")
}

func (o OverlayModel) backgroundSeq() string {
	if o.bgColor == "" {
		return ""
	}
	c := termenv.TrueColor.Color(string(o.bgColor))
	if c == nil {
		return ""
	}
	return termenv.CSI + c.Sequence(true) + "m"
}

func (o OverlayModel) contentLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (o OverlayModel) contentSize(lines []string) (int, int) {
	if len(lines) == 0 {
		return 0, 0
	}
	maxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth, len(lines)
}

func (o OverlayModel) applyOverlayBackgroundResets(line, bgSeq string) string {
	if bgSeq == "" || line == "" {
		return line
	}
	line = strings.ReplaceAll(line, ansi.ResetStyle, ansi.ResetStyle+bgSeq)
	line = strings.ReplaceAll(line, "\x1b[49m", "\x1b[49m"+bgSeq)
	return line
}

func (o OverlayModel) normalizeBase(base string, width, height int) []string {
	lines := strings.Split(base, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}

	for i, line := range lines {
		lineWidth := lipgloss.Width(line)
		if lineWidth > width {
			lines[i] = ansi.Cut(line, 0, width)
			continue
		}
		if lineWidth < width {
			lines[i] = line + strings.Repeat(" ", width-lineWidth)
		}
	}

	return lines
}
