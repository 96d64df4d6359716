//
// Gridfriday Markdown Processor, based upon Blackfriday Markdown Processor
// Available at http://github.com/gridfriday/gridfriday
//
// Copyright © 2011 Russ Ross <russ@russross.com>.
// Distributed under the Simplified BSD License.
// See README.md for details.
//

//
// Grid tables.
//
// A grid table opens on a separator line and keeps one cell parser per
// column while a row is being read. Every content line is cut at the column
// boundaries and each piece is fed to the parser of the cell it belongs to,
// so a cell holds ordinary block markdown.
//

package gridfriday

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// widthCondition measures display columns the same way on every locale.
var widthCondition = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// columnSlice is the state of one column of an open grid table.
type columnSlice struct {
	start        int // display column of the '+' on the left of the column
	end          int // display column of the '+' on the right of the column
	align        CellAlignFlags
	previousSpan int
	currentSpan  int // columns covered by the cell anchored here, 0 if none
	openCell     *Node
	parser       *Parser
}

// gridTableState lives on a Table node while the table is open.
type gridTableState struct {
	columns       []columnSlice
	tableStart    int      // indentation of the table's left border
	rowGroupStart int      // first row not yet claimed by a separator
	rows          int      // rows committed to the table
	pendingLines  [][]byte // lines consumed while rows == 0
}

// separatorField is one '+'-delimited field of a separator line.
type separatorField struct {
	start int // offset of the opening '+'
	end   int // offset of the closing '+'
	align CellAlignFlags
}

// parseRowSeparator splits a line such as
//
//	+:------+-------:+
//
// into its fields. fill is the fill character every field must use; 0 lets
// the first field choose between '-' and '='. The fill that was used is
// returned along with the fields.
func parseRowSeparator(data []byte, fill byte) ([]separatorField, byte, bool) {
	var fields []separatorField
	i := 0
	for {
		if i >= len(data) || data[i] != '+' {
			return nil, fill, false
		}
		start := i
		i++
		if isBlank(data[i:]) {
			if len(fields) == 0 {
				return nil, fill, false
			}
			return fields, fill, true
		}
		align, n, ok := parseColumnHeader(data[i:], &fill)
		if !ok {
			return nil, fill, false
		}
		i += n
		fields = append(fields, separatorField{start: start, end: i, align: align})
	}
}

// IsTableBorder reports whether line is a border that can open a grid
// table: one or more '+'-delimited fields of '-' with optional alignment
// colons. Trailing whitespace, including the newline, is ignored.
func IsTableBorder(line []byte) bool {
	_, _, ok := parseRowSeparator(line, '-')
	return ok
}

// parseColumnHeader reads the inside of one separator field: optional
// spaces, an optional ':', a run of fill characters, an optional ':' and
// optional spaces. It returns the alignment the colons declare and the
// number of bytes read.
func parseColumnHeader(data []byte, fill *byte) (CellAlignFlags, int, bool) {
	i := skipSpace(data, 0)
	left, right := false, false
	if i < len(data) && data[i] == ':' {
		left = true
		i++
	}
	i = skipSpace(data, i)
	if *fill == 0 {
		if i >= len(data) || (data[i] != '-' && data[i] != '=') {
			return 0, 0, false
		}
		*fill = data[i]
	}
	n := skipChar(data, i, *fill)
	if n == i {
		return 0, 0, false
	}
	i = skipSpace(data, n)
	if i < len(data) && data[i] == ':' {
		right = true
		i++
	}
	i = skipSpace(data, i)

	var align CellAlignFlags
	switch {
	case left && right:
		align = TableAlignmentCenter
	case right:
		align = TableAlignmentRight
	case left:
		align = TableAlignmentLeft
	}
	return align, i, true
}

// openGridTable starts a table when the cursor sits on a separator made of
// '-' fields. The line is consumed.
func (p *Parser) openGridTable(ln *line) bool {
	if p.nesting >= p.maxNesting {
		return false
	}
	indent := ln.indent()
	if indent >= 4 {
		return false
	}
	fields, _, ok := parseRowSeparator(ln.rest()[indent:], '-')
	if !ok {
		return false
	}
	p.closeUnmatched()

	state := &gridTableState{
		tableStart: indent,
		columns:    make([]columnSlice, len(fields)),
	}
	total := 0
	for i, f := range fields {
		state.columns[i] = columnSlice{start: f.start, end: f.end, align: f.align}
		total += f.end - f.start - 1
	}

	table := p.addChild(NewNode(Table))
	table.grid = state
	table.Columns = make([]TableColumn, len(fields))
	for i, f := range fields {
		table.Columns[i] = TableColumn{
			Width: float64(f.end-f.start-1) * 100 / float64(total),
			Align: f.align,
		}
	}
	state.pendingLines = append(state.pendingLines, ln.rest())
	ln.skipToEnd()
	p.debug("grid table opened", "columns", len(fields))
	return true
}

func (p *Parser) continueGridTable(table *Node, ln *line) blockState {
	state := table.grid
	for i := range state.columns {
		c := &state.columns[i]
		c.previousSpan = c.currentSpan
		c.currentSpan = 0
	}

	if ln.indent() == state.tableStart {
		row := ln.rest()[state.tableStart:]
		consumed := false
		if len(row) > 0 {
			switch row[0] {
			case '+':
				consumed = p.gridSeparator(table, state, row)
			case '|':
				p.gridRow(table, state, row)
				consumed = true
			}
		}
		if consumed {
			if state.rows == 0 {
				state.pendingLines = append(state.pendingLines, ln.rest())
			}
			ln.skipToEnd()
			return blockDiscard
		}
	}

	p.terminateGridRow(table, state, true)
	if state.rows == 0 {
		p.abandonGridTable(table, state, true)
	} else {
		p.debug("grid table ended", "rows", state.rows)
	}
	return blockNone
}

// gridSeparator handles a '+' line inside a table. A '=' fill turns every
// row since the previous separator into a header row.
func (p *Parser) gridSeparator(table *Node, state *gridTableState, row []byte) bool {
	_, fill, ok := parseRowSeparator(row, 0)
	if !ok {
		return false
	}
	p.terminateGridRow(table, state, false)
	if fill == '=' {
		r := table.LastChild
		for n := state.rows - state.rowGroupStart; n > 0 && r != nil; n-- {
			markHeader(r)
			r = r.Prev
		}
	}
	state.rowGroupStart = state.rows
	return true
}

func markHeader(row *Node) {
	row.IsHeader = true
	for cell := row.FirstChild; cell != nil; cell = cell.Next {
		cell.IsHeader = true
	}
}

// gridRow handles a '|' line. A '|' on the left border of a column anchors
// a cell there; the columns up to the next anchor belong to the same cell.
// When the anchors differ from the previous line the pending row is
// committed and a new one starts.
func (p *Parser) gridRow(table *Node, state *gridTableState, row []byte) {
	cols := state.columns
	lc := newLineColumns(row)

	anchor := -1
	for i := range cols {
		if lc.charAt(cols[i].start) == '|' {
			anchor = i
		}
		if anchor >= 0 {
			cols[anchor].currentSpan++
		}
	}

	continueRow := true
	for i := range cols {
		if cols[i].previousSpan != cols[i].currentSpan {
			continueRow = false
			break
		}
	}
	if !continueRow {
		p.terminateGridRow(table, state, false)
	}

	last := cols[len(cols)-1]
	for i := 0; i < len(cols); {
		span := cols[i].currentSpan
		if span == 0 {
			break
		}
		next := i + span
		begin := lc.offset(cols[i].start + 1)
		var end int
		switch {
		case next < len(cols):
			end = lc.offset(cols[next].start)
		case lc.charAt(last.end) == '|':
			end = lc.offset(last.end)
		default:
			// no closing border: the last cell runs to the end of the line
			end = len(row)
		}
		if end < begin {
			end = begin
		}

		if c := &cols[i]; c.parser != nil {
			c.parser.lineNumber = p.lineNumber
			c.parser.processLine(trimRight(row[begin:end]))
		}
		i = next
	}
}

// terminateGridRow commits the open cells as a row. Unless isLastRow is set,
// a fresh cell and cell parser are seeded for every column anchoring a cell
// on the current line.
func (p *Parser) terminateGridRow(table *Node, state *gridTableState, isLastRow bool) {
	var row *Node
	for i := range state.columns {
		c := &state.columns[i]
		if c.openCell != nil {
			if row == nil {
				row = NewNode(TableRow)
			}
			row.appendChild(c.openCell)
			if c.parser != nil {
				c.parser.finish()
			}
			c.openCell.open = false
		}
		c.parser = nil

		if isLastRow || c.currentSpan == 0 {
			c.openCell = nil
			continue
		}
		cell := NewNode(TableCell)
		cell.ColSpan = c.currentSpan
		cell.Column = i
		c.openCell = cell
		c.parser = p.newChild(cell)
	}
	if row != nil {
		row.open = false
		table.appendChild(row)
		state.rows++
	}
}

// closeGridTable flushes the last row of a table that is being closed.
func (p *Parser) closeGridTable(table *Node) {
	state := table.grid
	if state == nil {
		panic("gridfriday: grid table closed without table state")
	}
	p.terminateGridRow(table, state, true)
	if state.rows == 0 {
		p.abandonGridTable(table, state, false)
		return
	}
	table.grid = nil
}

// abandonGridTable puts a paragraph holding the table's lines where the
// table was. An open table is swapped for an open paragraph, which the
// current line may still continue.
func (p *Parser) abandonGridTable(table *Node, state *gridTableState, open bool) {
	para := NewNode(Paragraph)
	for _, text := range state.pendingLines {
		p.addLine(para, &line{data: text})
	}
	table.grid = nil
	p.debug("grid table abandoned", "lines", len(state.pendingLines))

	if open {
		p.replaceBlock(table, para)
		return
	}
	para.startLine = table.startLine
	para.endLine = table.endLine
	if table.Parent != nil {
		table.insertBefore(para)
		table.unlink()
	}
	p.closeBlock(para)
}

// lineColumns maps the display columns of a row line to byte offsets.
type lineColumns struct {
	data   []byte
	starts []int // byte offset per display column, -1 inside a wide rune; nil for ASCII
}

func newLineColumns(data []byte) lineColumns {
	lc := lineColumns{data: data}
	ascii := true
	for _, c := range data {
		if c >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return lc
	}
	lc.starts = make([]int, 0, len(data))
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if w := widthCondition.RuneWidth(r); w > 0 {
			lc.starts = append(lc.starts, i)
			for k := 1; k < w; k++ {
				lc.starts = append(lc.starts, -1)
			}
		}
		i += size
	}
	return lc
}

// offset returns the byte offset of display column col. A column inside a
// wide rune resolves to the rune that follows it.
func (lc lineColumns) offset(col int) int {
	if lc.starts == nil {
		if col > len(lc.data) {
			return len(lc.data)
		}
		return col
	}
	for col < len(lc.starts) && lc.starts[col] < 0 {
		col++
	}
	if col >= len(lc.starts) {
		return len(lc.data)
	}
	return lc.starts[col]
}

// charAt returns the byte starting display column col, or 0.
func (lc lineColumns) charAt(col int) byte {
	if col < 0 {
		return 0
	}
	if lc.starts == nil {
		if col < len(lc.data) {
			return lc.data[col]
		}
		return 0
	}
	if col >= len(lc.starts) || lc.starts[col] < 0 {
		return 0
	}
	return lc.data[lc.starts[col]]
}
