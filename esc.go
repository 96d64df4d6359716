//
// Gridfriday Markdown Processor, based upon Blackfriday Markdown Processor
// Available at http://github.com/gridfriday/gridfriday
//
// Copyright © 2011 Russ Ross <russ@russross.com>.
// Distributed under the Simplified BSD License.
// See README.md for details.
//

package gridfriday

import (
	"bytes"
	"io"
)

type escMap struct {
	char byte
	seq  []byte
}

var htmlEscaper = []escMap{
	{'&', []byte("&amp;")},
	{'<', []byte("&lt;")},
	{'>', []byte("&gt;")},
	{'"', []byte("&quot;")},
}

func escapeHTML(w io.Writer, s []byte) {
	var start, end int
	for end < len(s) {
		c := s[end]
		if c == '&' || c == '<' || c == '>' || c == '"' {
			for i := 0; i < len(htmlEscaper); i++ {
				if c == htmlEscaper[i].char {
					w.Write(s[start:end])
					w.Write(htmlEscaper[i].seq)
					start = end + 1
					break
				}
			}
		}
		end++
	}
	if start < len(s) {
		w.Write(s[start:])
	}
}

// esc returns s with HTML special characters escaped.
func esc(s []byte) []byte {
	var buf bytes.Buffer
	escapeHTML(&buf, s)
	return buf.Bytes()
}

// markdownEscapes are the characters escapeMarkdown protects anywhere in
// text; lineStartEscapes only matter as the first character of a line.
var (
	markdownEscapes  = []byte("\\`*_[]<~|")
	lineStartEscapes = []byte("#+->=")
)

// escapeMarkdown writes text so that parsing it again yields the same text.
// lineStart tells whether text begins a line of its block.
func escapeMarkdown(w *bytes.Buffer, text []byte, lineStart bool) {
	delim := -1
	if lineStart {
		// "1." would start an ordered list
		n := 0
		for n < len(text) && isdigit(text[n]) {
			n++
		}
		if n > 0 && n < len(text) && (text[n] == '.' || text[n] == ')') {
			delim = n
		}
	}
	for i, c := range text {
		if bytes.IndexByte(markdownEscapes, c) >= 0 || i == delim ||
			(i == 0 && lineStart && bytes.IndexByte(lineStartEscapes, c) >= 0) {
			w.WriteByte('\\')
		}
		w.WriteByte(c)
	}
}
