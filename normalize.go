//
// Gridfriday Markdown Processor, based upon Blackfriday Markdown Processor
// Available at http://github.com/gridfriday/gridfriday
//
// Copyright © 2011 Russ Ross <russ@russross.com>.
// Distributed under the Simplified BSD License.
// See README.md for details.
//

//
//
// Markdown rendering backend
//
//

package gridfriday

import (
	"bytes"
	"strconv"
	"strings"
)

// minCellWidth is the narrowest column the normalizer draws.
const minCellWidth = 3

// Normalizer is a type that implements the Renderer interface for markdown
// output. Tables are redrawn as grid tables sized to their content.
type Normalizer struct{}

// NormalizeRenderer creates a renderer writing canonical markdown.
func NormalizeRenderer() *Normalizer {
	return &Normalizer{}
}

// Render returns the markdown for ast.
func (r *Normalizer) Render(ast *Node) []byte {
	var buf bytes.Buffer
	r.blocks(&buf, ast, false)
	return buf.Bytes()
}

// blocks writes the children of container; loose containers separate them
// with a blank line.
func (r *Normalizer) blocks(w *bytes.Buffer, container *Node, tight bool) {
	for n := container.FirstChild; n != nil; n = n.Next {
		if n.Prev != nil && !tight {
			w.WriteByte('\n')
		}
		r.block(w, n)
	}
}

func (r *Normalizer) block(w *bytes.Buffer, n *Node) {
	switch n.Type {
	case Paragraph:
		r.inlines(w, n)
		w.WriteByte('\n')
	case Header:
		w.WriteString(strings.Repeat("#", n.Level))
		w.WriteByte(' ')
		r.inlines(w, n)
		w.WriteByte('\n')
	case HorizontalRule:
		w.WriteString("---\n")
	case CodeBlock:
		r.codeBlock(w, n)
	case BlockQuote:
		var inner bytes.Buffer
		r.blocks(&inner, n, false)
		prefixLines(w, inner.Bytes(), "> ", "> ")
	case List:
		r.list(w, n)
	case Table:
		r.table(w, n)
	}
}

func (r *Normalizer) codeBlock(w *bytes.Buffer, n *Node) {
	if !n.IsFenced {
		prefixLines(w, n.Literal, "    ", "    ")
		return
	}
	fence := strings.Repeat(string(n.FenceChar), n.FenceLength)
	w.WriteString(fence)
	w.Write(n.Info)
	w.WriteByte('\n')
	w.Write(n.Literal)
	w.WriteString(fence)
	w.WriteByte('\n')
}

func (r *Normalizer) list(w *bytes.Buffer, list *Node) {
	number := list.Start
	for item := list.FirstChild; item != nil; item = item.Next {
		if item.Prev != nil && !list.Tight {
			w.WriteByte('\n')
		}
		marker := string(list.BulletChar) + " "
		if list.ListFlags&ListTypeOrdered != 0 {
			marker = strconv.Itoa(number) + string(list.Delimiter) + " "
			number++
		}
		var inner bytes.Buffer
		r.blocks(&inner, item, list.Tight)
		if inner.Len() == 0 {
			w.WriteString(strings.TrimRight(marker, " "))
			w.WriteByte('\n')
			continue
		}
		prefixLines(w, inner.Bytes(), marker, strings.Repeat(" ", len(marker)))
	}
}

// prefixLines writes text with first in front of its first line and rest in
// front of the others. Blank lines get the prefix without trailing spaces.
func prefixLines(w *bytes.Buffer, text []byte, first, rest string) {
	prefix := first
	for len(text) > 0 {
		end := bytes.IndexByte(text, '\n')
		if end < 0 {
			end = len(text)
		}
		line := text[:end]
		if len(line) == 0 {
			w.WriteString(strings.TrimRight(prefix, " "))
		} else {
			w.WriteString(prefix)
			w.Write(line)
		}
		w.WriteByte('\n')
		prefix = rest
		if end == len(text) {
			break
		}
		text = text[end+1:]
	}
}

func (r *Normalizer) inlines(w *bytes.Buffer, n *Node) {
	for c := n.FirstChild; c != nil; c = c.Next {
		r.inline(w, c)
	}
}

func (r *Normalizer) inline(w *bytes.Buffer, n *Node) {
	switch n.Type {
	case Text:
		escapeMarkdown(w, n.Literal, startsLine(n))
	case Softbreak:
		w.WriteByte('\n')
	case Hardbreak:
		w.WriteString("\\\n")
	case Emph:
		w.WriteByte('*')
		r.inlines(w, n)
		w.WriteByte('*')
	case Strong:
		w.WriteString("**")
		r.inlines(w, n)
		w.WriteString("**")
	case Del:
		w.WriteString("~~")
		r.inlines(w, n)
		w.WriteString("~~")
	case Code:
		fence := strings.Repeat("`", longestRun(n.Literal, '`')+1)
		w.WriteString(fence)
		if bytes.HasPrefix(n.Literal, []byte("`")) {
			w.WriteByte(' ')
		}
		w.Write(n.Literal)
		if bytes.HasSuffix(n.Literal, []byte("`")) {
			w.WriteByte(' ')
		}
		w.WriteString(fence)
	case Link:
		if n.Kind != LinkTypeNotAutolink {
			w.WriteByte('<')
			w.Write(n.Destination)
			w.WriteByte('>')
			break
		}
		w.WriteByte('[')
		r.inlines(w, n)
		w.WriteString("](")
		w.Write(n.Destination)
		if len(n.Title) > 0 {
			w.WriteString(` "`)
			w.Write(n.Title)
			w.WriteByte('"')
		}
		w.WriteByte(')')
	}
}

// startsLine reports whether an inline node is the first thing on a line.
func startsLine(n *Node) bool {
	if n.Prev == nil {
		return n.Parent == nil || n.Parent.Type == Paragraph || n.Parent.Type == Header
	}
	return n.Prev.Type == Softbreak || n.Prev.Type == Hardbreak
}

func longestRun(data []byte, c byte) int {
	longest, run := 0, 0
	for _, b := range data {
		if b == c {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}

// normalCell is a cell rendered to markdown lines.
type normalCell struct {
	lines  []string
	column int
	span   int
}

// table draws a grid table. Every column is as wide as its widest cell;
// a spanning cell that does not fit widens the last column it covers.
func (r *Normalizer) table(w *bytes.Buffer, table *Node) {
	ncols := len(table.Columns)
	if ncols == 0 {
		return
	}

	var rows [][]normalCell
	var header []bool
	for row := table.FirstChild; row != nil; row = row.Next {
		var cells []normalCell
		for cell := row.FirstChild; cell != nil; cell = cell.Next {
			var inner bytes.Buffer
			r.blocks(&inner, cell, false)
			text := strings.TrimRight(inner.String(), "\n")
			var lines []string
			if text != "" {
				lines = strings.Split(text, "\n")
			}
			span := cell.ColSpan
			if span < 1 {
				span = 1
			}
			if cell.Column+span > ncols {
				span = ncols - cell.Column
			}
			cells = append(cells, normalCell{lines: lines, column: cell.Column, span: span})
		}
		rows = append(rows, cells)
		header = append(header, row.IsHeader)
	}

	widths := make([]int, ncols)
	for i := range widths {
		widths[i] = minCellWidth
	}
	for _, cells := range rows {
		for _, c := range cells {
			if c.span == 1 {
				widths[c.column] = max(widths[c.column], c.width())
			}
		}
	}
	for _, cells := range rows {
		for _, c := range cells {
			if c.span > 1 {
				if have := spanWidth(widths, c.column, c.span); c.width() > have {
					widths[c.column+c.span-1] += c.width() - have
				}
			}
		}
	}

	writeBorder(w, widths, '-', table.Columns)
	for i, cells := range rows {
		height := 1
		for _, c := range cells {
			height = max(height, len(c.lines))
		}
		for h := 0; h < height; h++ {
			next := 0
			for _, c := range cells {
				for ; next < c.column; next++ {
					w.WriteString("| " + strings.Repeat(" ", widths[next]) + " ")
				}
				text := ""
				if h < len(c.lines) {
					text = c.lines[h]
				}
				w.WriteString("| ")
				w.WriteString(pad(text, spanWidth(widths, c.column, c.span)))
				w.WriteByte(' ')
				next = c.column + c.span
			}
			for ; next < ncols; next++ {
				w.WriteString("| " + strings.Repeat(" ", widths[next]) + " ")
			}
			w.WriteString("|\n")
		}
		fill := byte('-')
		if header[i] {
			fill = '='
		}
		writeBorder(w, widths, fill, nil)
	}
}

func (c normalCell) width() int {
	width := 0
	for _, l := range c.lines {
		width = max(width, widthCondition.StringWidth(l))
	}
	return width
}

// spanWidth is the room between the borders of span columns starting at col.
func spanWidth(widths []int, col, span int) int {
	width := 3 * (span - 1)
	for _, w := range widths[col : col+span] {
		width += w
	}
	return width
}

func pad(text string, width int) string {
	if n := width - widthCondition.StringWidth(text); n > 0 {
		return text + strings.Repeat(" ", n)
	}
	return text
}

// writeBorder writes a separator line. Alignment colons are written when
// columns is given.
func writeBorder(w *bytes.Buffer, widths []int, fill byte, columns []TableColumn) {
	for i, width := range widths {
		field := []byte(strings.Repeat(string(fill), width+2))
		if columns != nil {
			switch columns[i].Align {
			case TableAlignmentLeft:
				field[0] = ':'
			case TableAlignmentRight:
				field[len(field)-1] = ':'
			case TableAlignmentCenter:
				field[0] = ':'
				field[len(field)-1] = ':'
			}
		}
		w.WriteByte('+')
		w.Write(field)
	}
	w.WriteString("+\n")
}
