// Package stringtest builds expected terminal text in tests.
package stringtest

import "strings"

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected screen output line by line.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"ASCII Video Player",
//		"Frame: 1/3",
//	) // -> "ASCII Video Player\nFrame: 1/3"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

// Input removes one leading and one trailing newline from s, then strips the
// indentation shared by its non-blank lines. Whitespace-only lines become
// empty. Indentation before a closing backtick is ignored, so glyph art can
// be written as an indented raw string literal.
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(strings.TrimRight(s, " \t"), "\n")

	lines := strings.Split(s, "\n")
	indent := -1

	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}

		n := len(line) - len(trimmed)
		if indent < 0 || n < indent {
			indent = n
		}
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""

			continue
		}

		lines[i] = line[max(indent, 0):]
	}

	return strings.Join(lines, "\n")
}

// Rows returns the lines of [Input](s), suitable as a glyph frame.
func Rows(s string) []string {
	in := Input(s)
	if in == "" {
		return nil
	}

	return strings.Split(in, "\n")
}
