// Package telnet serves line-oriented sessions over Telnet with ANSI color support.
package telnet

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ANSI SGR sequences used by the outfit shell.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"

	BrightCyan  = "\033[96m"
	BrightWhite = "\033[97m"
)

// Colorize wraps text with the given ANSI color code and a reset suffix.
//
// Postcondition: Returns text wrapped with the color code and Reset.
func Colorize(color, text string) string {
	return color + text + Reset
}

// Colorf wraps a formatted string with the given ANSI color code.
func Colorf(color, format string, args ...any) string {
	return color + fmt.Sprintf(format, args...) + Reset
}

// marks colors the status tags the shell appends to slots and colors.
var marks = strings.NewReplacer(
	"[saved]", Colorize(Green, "[saved]"),
	"[item locked]", Colorize(Yellow, "[item locked]"),
	"[kit locked]", Colorize(Yellow, "[kit locked]"),
	"[locked]", Colorize(Yellow, "[locked]"),
	"[previewing]", Colorize(Cyan, "[previewing]"),
	"=== ", Bold+"=== ",
	" ===", " ==="+Reset,
)

// HighlightMarks colors shell status tags and section headers in text.
//
// Postcondition: StripANSI(HighlightMarks(s)) == s for text without escapes.
func HighlightMarks(text string) string {
	return marks.Replace(text)
}

// StripANSI removes all ANSI SGR sequences from s.
//
// Postcondition: Returns s with all \033[...m sequences removed.
func StripANSI(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for {
		start := strings.Index(s, "\033[")
		if start < 0 {
			break
		}
		end := strings.IndexByte(s[start+2:], 'm')
		if end < 0 {
			break
		}
		b.WriteString(s[:start])
		s = s[start+2+end+1:]
	}
	b.WriteString(s)
	return b.String()
}

// Swatch renders a two-cell block filled with c using a 24-bit background
// color, for terminals that support true color.
//
// Postcondition: StripANSI(Swatch(c)) is two spaces.
func Swatch(c colorful.Color) string {
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("\033[48;2;%d;%d;%dm  %s", r, g, b, Reset)
}
