//
// Gridfriday Markdown Processor, based upon Blackfriday Markdown Processor
// Available at http://github.com/gridfriday/gridfriday
//
// Copyright © 2011 Russ Ross <russ@russross.com>.
// Distributed under the Simplified BSD License.
// See README.md for details.
//

//
// Functions to parse block-level elements.
//

package gridfriday

import (
	"bytes"
	"strconv"

	"github.com/shurcooL/sanitized_anchor_name"
)

// blockStart reports what a block start did with the current line.
type blockStart int

const (
	startNone      blockStart = iota
	startContainer            // a container opened, more starts may follow
	startLeaf                 // a leaf opened, the rest of the line is its content
	startConsumed             // a block opened and took the whole line
)

// startBlock tries every kind of block that may begin at the cursor.
// container is the deepest block the line continued.
func (p *Parser) startBlock(ln *line, container *Node) blockStart {
	if ln.isBlank() {
		return startNone
	}
	indent := ln.indent()

	// indented code:
	//
	//     func main() {
	//         ...
	//     }
	if indent >= 4 {
		if p.tip().Type == Paragraph {
			return startNone
		}
		p.closeUnmatched()
		ln.advance(4)
		p.addChild(NewNode(CodeBlock))
		return startLeaf
	}

	// block quote:
	//
	// > A big quote I found somewhere
	// > on the web
	if ln.peek(indent) == '>' {
		p.closeUnmatched()
		ln.advance(indent + 1)
		ln.skipSpaces(1)
		p.addChild(NewNode(BlockQuote))
		return startContainer
	}

	// prefixed header:
	//
	// # Header 1
	// ## Header 2
	// ...
	// ###### Header 6
	if p.startPrefixHeader(ln, indent) {
		return startConsumed
	}

	// fenced code block:
	//
	// ``` go
	// func fact(n int) int {
	//     if n <= 1 {
	//         return n
	//     }
	//     return n * fact(n-1)
	// }
	// ```
	if p.flags&FencedCode != 0 && p.startFencedCode(ln, indent) {
		return startConsumed
	}

	// horizontal rule:
	//
	// ------
	// or
	// ******
	// or
	// ______
	if isHRule(ln.rest()) {
		p.closeUnmatched()
		p.addChild(NewNode(HorizontalRule))
		ln.skipToEnd()
		return startConsumed
	}

	// grid table:
	//
	// +-------+-------+
	// | Name  | Value |
	// +=======+=======+
	// | one   | 1     |
	// +-------+-------+
	if p.flags&GridTables != 0 && ln.peek(indent) == '+' && p.openGridTable(ln) {
		return startConsumed
	}

	// an itemized/unordered or numbered/ordered list:
	//
	// * Item 1
	// * Item 2
	//
	// or
	//
	// 1. Item 1
	// 2. Item 2
	if p.startListItem(ln, indent, container) {
		return startContainer
	}

	return startNone
}

// continueBlock asks the open block n whether the line continues it,
// consuming the block's prefix when it does.
func (p *Parser) continueBlock(n *Node, ln *line) blockState {
	switch n.Type {
	case BlockQuote:
		indent := ln.indent()
		if indent < 4 && ln.peek(indent) == '>' {
			ln.advance(indent + 1)
			ln.skipSpaces(1)
			return blockContinue
		}
	case List:
		return blockContinue
	case Item:
		if ln.isBlank() {
			// an item can begin with at most one blank line
			if n.FirstChild == nil {
				return blockNone
			}
			ln.skipToEnd()
			return blockContinue
		}
		if ln.indent() >= n.Padding {
			ln.advance(n.Padding)
			return blockContinue
		}
	case Paragraph:
		if !ln.isBlank() {
			return blockContinue
		}
	case CodeBlock:
		return p.continueCode(n, ln)
	case Table:
		return p.continueGridTable(n, ln)
	}
	return blockNone
}

func (p *Parser) continueCode(n *Node, ln *line) blockState {
	indent := ln.indent()
	if n.IsFenced {
		if indent < 4 {
			data := ln.rest()[indent:]
			i := skipChar(data, 0, n.FenceChar)
			if i >= n.FenceLength && isBlank(data[i:]) {
				ln.skipToEnd()
				return blockCloseDiscard
			}
		}
		ln.skipSpaces(n.FenceOffset)
		return blockContinue
	}
	if indent >= 4 {
		ln.advance(4)
		return blockContinue
	}
	if ln.isBlank() {
		ln.advance(indent)
		return blockContinue
	}
	return blockNone
}

func (p *Parser) startPrefixHeader(ln *line, indent int) bool {
	data := ln.rest()[indent:]
	level := skipChar(data, 0, '#')
	if level == 0 || level > 6 {
		return false
	}
	if level < len(data) && data[level] != ' ' {
		return false
	}
	p.closeUnmatched()

	content := bytes.TrimSpace(data[level:])
	end := len(content)
	for end > 0 && content[end-1] == '#' {
		end--
	}
	switch {
	case end == 0:
		content = content[:0]
	case content[end-1] == ' ':
		content = trimRight(content[:end])
	}

	header := p.addChild(NewNode(Header))
	header.Level = level
	header.content = content
	if p.flags&AutoHeaderIDs != 0 {
		header.HeaderID = sanitized_anchor_name.Create(string(content))
	}
	ln.skipToEnd()
	return true
}

func (p *Parser) startFencedCode(ln *line, indent int) bool {
	data := ln.rest()[indent:]
	if len(data) == 0 || (data[0] != '`' && data[0] != '~') {
		return false
	}
	fence := data[0]
	n := skipChar(data, 0, fence)
	if n < 3 {
		return false
	}
	info := bytes.TrimSpace(data[n:])
	if fence == '`' && bytes.IndexByte(info, '`') >= 0 {
		return false
	}
	p.closeUnmatched()

	code := p.addChild(NewNode(CodeBlock))
	code.IsFenced = true
	code.FenceChar = fence
	code.FenceLength = n
	code.FenceOffset = indent
	code.Info = info
	ln.skipToEnd()
	return true
}

func isHRule(data []byte) bool {
	i := skipSpace(data, 0)
	if i >= len(data) {
		return false
	}
	c := data[i]
	if c != '*' && c != '-' && c != '_' {
		return false
	}
	n := 0
	for ; i < len(data); i++ {
		switch {
		case data[i] == c:
			n++
		case data[i] != ' ':
			return false
		}
	}
	return n >= 3
}

func (p *Parser) startListItem(ln *line, indent int, container *Node) bool {
	data := ln.rest()[indent:]
	if len(data) == 0 {
		return false
	}

	var ld ListData
	i := 0
	switch c := data[0]; {
	case c == '*' || c == '+' || c == '-':
		ld.BulletChar = c
		i = 1
	case isdigit(c):
		for i < len(data) && i < 9 && isdigit(data[i]) {
			i++
		}
		if i >= len(data) || (data[i] != '.' && data[i] != ')') {
			return false
		}
		ld.Start, _ = strconv.Atoi(string(data[:i]))
		ld.Delimiter = data[i]
		ld.ListFlags = ListTypeOrdered
		i++
	default:
		return false
	}
	if i < len(data) && data[i] != ' ' {
		return false
	}

	rest := data[i:]
	if container.Type == Paragraph {
		// only non-empty bullets and lists counting from one interrupt
		if isBlank(rest) || (ld.ListFlags&ListTypeOrdered != 0 && ld.Start != 1) {
			return false
		}
	}
	spaces := skipSpace(rest, 0)
	padding := i + spaces
	if spaces == 0 || spaces > 4 || isBlank(rest) {
		padding = i + 1
	}
	p.closeUnmatched()

	if tip := p.tip(); tip.Type != List || !sameList(tip.ListData, ld) {
		list := p.addChild(NewNode(List))
		list.ListData = ld
	}
	item := p.addChild(NewNode(Item))
	item.ListData = ld
	item.Padding = indent + padding
	ln.advance(indent + padding)
	return true
}

func sameList(a, b ListData) bool {
	return a.ListFlags == b.ListFlags && a.BulletChar == b.BulletChar && a.Delimiter == b.Delimiter
}

// finalizeList decides whether a list is tight: it is loose as soon as a
// blank line separates two of its items or two blocks inside an item.
func (p *Parser) finalizeList(list *Node) {
	list.Tight = true
items:
	for item := list.FirstChild; item != nil; item = item.Next {
		if endsWithBlankLine(item) {
			list.Tight = false
			break
		}
		for sub := item.FirstChild; sub != nil; sub = sub.Next {
			if endsWithBlankLine(sub) {
				list.Tight = false
				break items
			}
		}
	}
	for item := list.FirstChild; item != nil; item = item.Next {
		item.Tight = list.Tight
	}
}

func endsWithBlankLine(n *Node) bool {
	return n.Next != nil && n.Next.startLine > n.endLine+1
}
