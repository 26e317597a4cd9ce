package process

import (
	"strings"
)

// Command is an external program invocation as an argument vector.
// Arguments are passed to the child verbatim; an argument containing
// spaces is still a single argument.
type Command struct {
	Name string
	Args []string
}

// NewCommand creates a Command for name with the given arguments.
func NewCommand(name string, args ...string) Command {
	return Command{Name: name, Args: append([]string(nil), args...)}
}

// With returns a copy of c with args appended.
func (c Command) With(args ...string) Command {
	out := Command{Name: c.Name, Args: make([]string, 0, len(c.Args)+len(args))}
	out.Args = append(out.Args, c.Args...)
	out.Args = append(out.Args, args...)
	return out
}

// String renders the command the way it would be typed in a shell.
// Arguments with whitespace are wrapped in double quotes.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, quoteIfNeeded(c.Name))
	for _, arg := range c.Args {
		parts = append(parts, quoteIfNeeded(arg))
	}
	return strings.Join(parts, " ")
}

func quoteIfNeeded(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsAny(s, " \t") {
		return `"` + s + `"`
	}
	return s
}

// Split tokenizes a command line on whitespace. A token starting with a
// double quote is joined with the following tokens up to the one containing
// the closing quote, and the surrounding quotes are stripped.
//
// It exists for user-supplied option strings in configuration files; commands
// built in code should use NewCommand directly.
func Split(line string) []string {
	pieces := strings.Fields(line)
	var tokens []string

	for i := 0; i < len(pieces); i++ {
		piece := pieces[i]
		if !strings.HasPrefix(piece, `"`) {
			tokens = append(tokens, piece)
			continue
		}

		// closing quote in the same piece, e.g. "abc"
		if len(piece) > 1 && strings.HasSuffix(piece, `"`) {
			tokens = append(tokens, piece[1:len(piece)-1])
			continue
		}

		end := -1
		for j := i + 1; j < len(pieces); j++ {
			if strings.Contains(pieces[j], `"`) {
				end = j
				break
			}
		}
		if end < 0 {
			// unterminated quote: keep the rest as one token
			joined := strings.Join(pieces[i:], " ")
			tokens = append(tokens, strings.TrimPrefix(joined, `"`))
			break
		}

		joined := strings.Join(pieces[i:end+1], " ")
		tokens = append(tokens, strings.Trim(joined, `"`))
		i = end
	}

	return tokens
}
