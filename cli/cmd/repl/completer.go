package repl

import (
	"sort"
	"unicode"

	"github.com/sahilm/fuzzy"
)

// commands are the REPL control commands offered to the completer.
var commands = []string{
	":help",
	":vars",
	":set",
	":unset",
	":explode",
	":keep",
	":lowest",
	":clear",
	":quit",
}

// completer produces fuzzy completion candidates for the word under the
// cursor. Candidates are the control commands plus the names of currently
// bound variables.
type completer struct {
	variables []string
}

// setVariables replaces the variable-name candidates.
func (c *completer) setVariables(names []rune) {
	c.variables = c.variables[:0]
	for _, name := range names {
		c.variables = append(c.variables, string(name))
	}

	sort.Strings(c.variables)
}

// candidates returns the full ordered candidate list.
func (c *completer) candidates() []string {
	out := make([]string, 0, len(commands)+len(c.variables))
	out = append(out, commands...)
	out = append(out, c.variables...)

	return out
}

// complete returns the candidates matching the current word, best first.
// An empty word matches everything.
func (c *completer) complete(word string) []string {
	all := c.candidates()
	if word == "" {
		return all
	}

	matches := fuzzy.Find(word, all)
	out := make([]string, len(matches))

	for i, m := range matches {
		out[i] = m.Str
	}

	return out
}

// currentWord locates the word containing the cursor and returns its text
// with the byte offsets of its boundaries.
func currentWord(text string, cursor int) (word string, start, end int) {
	if cursor > len(text) {
		cursor = len(text)
	}

	start = cursor
	for start > 0 && !isWordBoundary(rune(text[start-1])) {
		start--
	}

	end = cursor
	for end < len(text) && !isWordBoundary(rune(text[end])) {
		end++
	}

	return text[start:end], start, end
}

func isWordBoundary(r rune) bool {
	return unicode.IsSpace(r) || r == '(' || r == ')' || r == ','
}
