//
// Gridfriday Markdown Processor, based upon Blackfriday Markdown Processor
// Available at http://github.com/gridfriday/gridfriday
//
// Copyright © 2011 Russ Ross <russ@russross.com>.
// Distributed under the Simplified BSD License.
// See README.md for details.
//

package gridfriday

// line is a cursor over one input line. data never holds the terminating
// newline and tabs are already expanded, so byte offsets from the start of
// data are columns for ASCII text.
type line struct {
	data []byte
	pos  int
}

func (ln *line) current() byte {
	if ln.pos < len(ln.data) {
		return ln.data[ln.pos]
	}
	return 0
}

// peek returns the byte offset bytes past the cursor, or 0 outside the line.
func (ln *line) peek(offset int) byte {
	i := ln.pos + offset
	if i < 0 || i >= len(ln.data) {
		return 0
	}
	return ln.data[i]
}

func (ln *line) advance(n int) {
	ln.pos += n
	if ln.pos > len(ln.data) {
		ln.pos = len(ln.data)
	}
}

func (ln *line) skipToEnd() {
	ln.pos = len(ln.data)
}

// indent counts the spaces in front of the cursor.
func (ln *line) indent() int {
	i := ln.pos
	for i < len(ln.data) && ln.data[i] == ' ' {
		i++
	}
	return i - ln.pos
}

// skipSpaces advances over at most max spaces and reports how many it took.
func (ln *line) skipSpaces(max int) int {
	n := 0
	for n < max && ln.current() == ' ' {
		ln.pos++
		n++
	}
	return n
}

func (ln *line) rest() []byte {
	return ln.data[ln.pos:]
}

func (ln *line) isBlank() bool {
	return isBlank(ln.rest())
}

func isBlank(data []byte) bool {
	for _, c := range data {
		if !isspace(c) {
			return false
		}
	}
	return true
}

func trimRight(data []byte) []byte {
	end := len(data)
	for end > 0 && isspace(data[end-1]) {
		end--
	}
	return data[:end]
}

func skipSpace(data []byte, i int) int {
	for i < len(data) && data[i] == ' ' {
		i++
	}
	return i
}

func skipChar(data []byte, start int, char byte) int {
	i := start
	for i < len(data) && data[i] == char {
		i++
	}
	return i
}

// Test if a character is a punctuation symbol.
// Taken from a private function in regexp in the stdlib.
func ispunct(c byte) bool {
	for _, r := range []byte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~") {
		if c == r {
			return true
		}
	}
	return false
}

// Test if a character is a whitespace character.
func isspace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// Test if a character is a letter or a digit.
func isalnum(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isdigit(c byte) bool {
	return c >= '0' && c <= '9'
}
