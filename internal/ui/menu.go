package ui

import (
	"fmt"
	"strings"
)

// MenuStyle controls how RenderMenu lays out a block of option lines.
type MenuStyle struct {
	// Align keeps the left edges of all lines aligned and centers the block
	// as a whole. When false every line is centered on its own.
	Align bool
	// Highlight is the index of a line drawn in HighlightColor; -1 for none.
	Highlight      int
	HighlightColor string
}

// ClearScreen moves the cursor home and clears the terminal.
func ClearScreen() {
	fmt.Print("\033[H\033[2J")
}

// CenterText left-pads text so that it is centered in width cells.
func CenterText(text string, width int) string {
	visLen := VisibleLength(text)
	if visLen >= width {
		return text
	}
	return strings.Repeat(" ", (width-visLen)/2) + text
}

// MenuLines lays out lines for a terminal width without printing them.
func MenuLines(lines []string, width int, style MenuStyle) []string {
	longest := 0
	if style.Align {
		for _, l := range lines {
			if n := VisibleLength(l); n > longest {
				longest = n
			}
		}
	}

	out := make([]string, 0, len(lines))
	for i, l := range lines {
		left := 0
		if style.Align {
			left = (width - longest) / 2
		} else {
			left = (width - VisibleLength(l)) / 2
		}
		if left < 0 {
			left = 0
		}
		text := l
		if i == style.Highlight && style.HighlightColor != "" && l != "" {
			text = style.HighlightColor + l + ColorReset
		}
		out = append(out, strings.Repeat(" ", left)+text)
	}
	return out
}

// RenderMenu prints a block of option lines centered in the terminal.
func RenderMenu(lines []string, style MenuStyle) {
	for _, l := range MenuLines(lines, GetTermWidth(), style) {
		fmt.Println(l)
	}
}

// RenderLink prints a centered caption followed by the candidate link.
func RenderLink(caption, link string) {
	width := GetTermWidth()
	fmt.Println(CenterText(caption, width))
	shown := link
	if shown == "" {
		shown = ColorDarkGray + "(empty)" + ColorReset
	}
	fmt.Println(CenterText(TruncateWithEllipsis(shown, width-2), width))
	fmt.Println()
}

// RenderToggleRows prints label/state pairs with the states in one column.
func RenderToggleRows(labels []string, states []bool, footer []string) {
	width := GetTermWidth()
	maxLabel := 0
	for _, l := range labels {
		if n := VisibleLength(l); n > maxLabel {
			maxLabel = n
		}
	}
	rowWidth := maxLabel + 5 + VisibleLength("Disabled")
	leftPad := (width - rowWidth) / 2
	if leftPad < 0 {
		leftPad = 0
	}
	pad := strings.Repeat(" ", leftPad)
	for i, l := range labels {
		state := ""
		if i < len(states) {
			state = DescribeToggle(states[i])
		}
		fmt.Printf("%s%s%s%s\n", pad, PadRight(l, maxLabel), strings.Repeat(" ", 5), state)
	}
	for _, l := range footer {
		fmt.Printf("%s%s\n", pad, l)
	}
}
