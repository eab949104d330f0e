package main

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// defaultWidth is used when stdout is not a terminal (e.g. piped).
const defaultWidth = 100

// termWidth returns the terminal width, or defaultWidth when stdout is
// not a TTY.
func termWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	if max <= 3 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// progressBar renders a fixed-width completion bar like [####------] 40%.
func progressBar(percent, width int) string {
	if width < 4 {
		width = 10
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return fmt.Sprintf("[%s%s] %d%%",
		strings.Repeat("#", filled),
		strings.Repeat("-", width-filled),
		percent)
}

// checkbox renders a completion marker for list output.
func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// requiredMark flags required checklist items in list output.
func requiredMark(required bool) string {
	if required {
		return "*"
	}
	return " "
}
