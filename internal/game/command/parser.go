package command

import (
	"errors"
	"strings"
	"unicode"
)

// ErrUnterminatedQuote is returned by Parse when a quoted word is not closed.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// Line is one parsed shell input line.
type Line struct {
	// Command is the first word, lowercased.
	Command string
	// Args are the remaining words. Single or double quotes group words that
	// contain spaces, such as outfit file paths or player names.
	Args []string
	// Rest is the text after the command word, trimmed and kept as typed.
	Rest string
}

// Parse splits line into a command word and its arguments. Inside double
// quotes, \" and \\ escape a quote and a backslash; any other backslash is
// kept so Windows paths survive.
//
// Postcondition: a blank line yields a zero Line and a nil error.
func Parse(line string) (Line, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Line{}, nil
	}
	words, err := splitWords(line)
	if err != nil {
		return Line{}, err
	}
	l := Line{Command: strings.ToLower(words[0])}
	if len(words) > 1 {
		l.Args = words[1:]
	}
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		l.Rest = strings.TrimSpace(line[i:])
	}
	return l, nil
}

// Path returns the single file or name argument of the line: a lone word,
// quoted or not, else the rest of the line as typed so unquoted names with
// spaces still work.
func (l Line) Path() string {
	if len(l.Args) == 1 {
		return l.Args[0]
	}
	return l.Rest
}

func splitWords(s string) ([]string, error) {
	var (
		words   []string
		cur     strings.Builder
		quote   rune
		inWord  bool
		escaped bool
	)
	for _, r := range s {
		switch {
		case escaped:
			if r != '"' && r != '\\' {
				cur.WriteRune('\\')
			}
			cur.WriteRune(r)
			escaped = false
		case quote == '"' && r == '\\':
			escaped = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case unicode.IsSpace(r):
			if inWord {
				words = append(words, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 {
		return nil, ErrUnterminatedQuote
	}
	if inWord {
		words = append(words, cur.String())
	}
	return words, nil
}
