package cli

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// outputWidth returns the terminal width, or 0 when stdout is not a
// terminal. Piped output is never clipped.
func outputWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}

// clip truncates line to width runes with a trailing ellipsis, never
// splitting a multibyte rune. Width 0 leaves the line alone.
func clip(line string, width int) string {
	if width <= 3 || utf8.RuneCountInString(line) <= width {
		return line
	}
	return string([]rune(line)[:width-3]) + "..."
}

// confirm asks for confirmation on the terminal. Non-interactive stdin
// refuses, so scripted callers need an explicit flag.
func confirm(prompt string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}
	fmt.Printf("%s [y/N]: ", prompt)
	var answer string
	fmt.Scanln(&answer)
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
