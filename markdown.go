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
// Markdown parsing and processing
//
//

package gridfriday

import (
	"bytes"
	"log/slog"
)

// Version string of the package.
const Version = "1.0"

// Extensions is a bitwise or'ed collection of enabled Gridfriday's
// extensions.
type Extensions int

// These are the supported markdown parsing extensions.
// OR these values together to select multiple extensions.
const (
	NoExtensions    Extensions = 0
	NoIntraEmphasis Extensions = 1 << iota // Ignore emphasis markers inside words
	GridTables                             // Parse '+'-bordered grid tables
	FencedCode                             // Parse fenced code blocks
	Autolink                               // Parse <scheme:...> and <user@host> links
	Strikethrough                          // Strikethrough text using ~~test~~
	AutoHeaderIDs                          // Create the header ID from the text

	CommonExtensions Extensions = NoIntraEmphasis | GridTables | FencedCode |
		Autolink | Strikethrough | AutoHeaderIDs
)

// TabSize is the size of a tab stop.
const TabSize = 4

const defaultMaxNesting = 16

// Renderer is the rendering interface. It turns a syntax tree produced by
// Parse into its output format.
type Renderer interface {
	Render(ast *Node) []byte
}

// Options represents configurable overrides and callbacks (in addition to the
// extension flag set) for configuring a Markdown parse.
type Options struct {
	// Extensions is a flag set of bit-wise ORed extension bits. See the
	// constants starting with an upper-case letter above.
	Extensions Extensions

	// Logger receives debug records about block structure decisions, such
	// as a grid table being abandoned. Nil discards them.
	Logger *slog.Logger
}

// Parser is a line-driven block parser. It keeps the chain of open blocks
// from its root container down to the innermost block and feeds every line
// through it. A Parser whose root is a table cell parses that cell's content
// independently of the enclosing document.
type Parser struct {
	flags          Extensions
	log            *slog.Logger
	inlineCallback [256]inlineParser

	root  *Node
	stack []*Node // open blocks, root first

	lineNumber      int
	lastMatched     int // stack index of the deepest block the current line continued
	unmatchedClosed bool

	nesting     int // depth of cell parsers above this one
	inlineDepth int
	maxNesting  int
}

// Parse is an entry point to the parsing part of Gridfriday. It takes an
// input markdown document and produces a syntax tree for its contents. This
// tree can then be rendered with a default or custom renderer, or analyzed or
// transformed by the caller.
func Parse(input []byte, opts Options) *Node {
	return newParser(opts).parse(input)
}

func (p *Parser) parse(input []byte) *Node {
	for i, text := range splitLines(input) {
		p.lineNumber = i + 1
		p.processLine(text)
	}
	p.finish()
	return p.root
}

func newParser(opts Options) *Parser {
	p := &Parser{
		flags:      opts.Extensions,
		log:        opts.Logger,
		maxNesting: defaultMaxNesting,
	}
	if p.log == nil {
		p.log = slog.New(slog.DiscardHandler)
	}
	p.initInline()
	p.root = NewNode(Document)
	p.stack = []*Node{p.root}
	return p
}

// newChild creates a parser bound to the same options whose root container
// is root. The caller drives it with processLine and finish.
func (p *Parser) newChild(root *Node) *Parser {
	return &Parser{
		flags:          p.flags,
		log:            p.log,
		inlineCallback: p.inlineCallback,
		root:           root,
		stack:          []*Node{root},
		lineNumber:     p.lineNumber,
		nesting:        p.nesting + 1,
		maxNesting:     p.maxNesting,
	}
}

func (p *Parser) tip() *Node {
	return p.stack[len(p.stack)-1]
}

// blockState is the answer of an open block to a following line.
type blockState int

const (
	blockNone         blockState = iota // the line does not belong to the block
	blockContinue                       // block prefix consumed, keep matching children
	blockDiscard                        // the block consumed the whole line
	blockCloseDiscard                   // the block consumed the whole line and is finished
)

// processLine runs a single line through the open blocks. It first lets every
// open block claim its prefix, then looks for new block starts and finally
// decides whether the rest of the line continues a paragraph lazily, feeds
// the innermost block or starts a new paragraph.
func (p *Parser) processLine(data []byte) {
	ln := &line{data: data}
	p.lastMatched = 0
	p.unmatchedClosed = false

	container := p.root
match:
	for i := 1; i < len(p.stack); i++ {
		switch p.continueBlock(p.stack[i], ln) {
		case blockContinue:
			container = p.stack[i]
			p.lastMatched = i
		case blockDiscard:
			p.touch()
			return
		case blockCloseDiscard:
			for len(p.stack) > i {
				p.finalize()
			}
			return
		default:
			break match
		}
	}
	allMatched := p.lastMatched == len(p.stack)-1

	started := false
	if !acceptsLines(container.Type) || container.Type == Paragraph {
	starts:
		for {
			switch p.startBlock(ln, container) {
			case startNone:
				break starts
			case startConsumed:
				p.touch()
				return
			case startLeaf:
				started = true
				container = p.tip()
				break starts
			case startContainer:
				started = true
				container = p.tip()
			}
		}
	}

	blank := ln.isBlank()
	if !started && !allMatched && !blank && p.tip().Type == Paragraph {
		// lazy continuation
		p.addLine(p.tip(), ln)
		p.touch()
		return
	}

	p.closeUnmatched()
	switch {
	case acceptsLines(p.tip().Type):
		p.addLine(p.tip(), ln)
	case !blank:
		p.addLine(p.addChild(NewNode(Paragraph)), ln)
	}
	if !blank {
		p.touch()
	}
}

// finish closes every open block below the root.
func (p *Parser) finish() {
	for len(p.stack) > 1 {
		p.finalize()
	}
}

func (p *Parser) touch() {
	for _, n := range p.stack {
		n.endLine = p.lineNumber
	}
}

func acceptsLines(t NodeType) bool {
	return t == Paragraph || t == CodeBlock
}

// closeUnmatched finishes the blocks the current line did not continue.
func (p *Parser) closeUnmatched() {
	if p.unmatchedClosed {
		return
	}
	for len(p.stack)-1 > p.lastMatched {
		p.finalize()
	}
	p.unmatchedClosed = true
}

// addChild appends node to the innermost block able to hold it, closing
// blocks that cannot, and makes it the new innermost open block.
func (p *Parser) addChild(node *Node) *Node {
	for len(p.stack) > 1 && !p.tip().canContain(node.Type) {
		p.finalize()
	}
	p.tip().appendChild(node)
	node.startLine = p.lineNumber
	node.endLine = p.lineNumber
	p.stack = append(p.stack, node)
	return node
}

// replaceBlock puts repl in place of the open block old, both in the tree
// and in the chain of open blocks.
func (p *Parser) replaceBlock(old, repl *Node) {
	for i, n := range p.stack {
		if n == old {
			p.stack[i] = repl
			break
		}
	}
	repl.startLine = old.startLine
	repl.endLine = old.endLine
	if old.Parent != nil {
		old.insertBefore(repl)
		old.unlink()
	}
}

func (p *Parser) addLine(n *Node, ln *line) {
	text := ln.rest()
	if n.Type == Paragraph {
		text = text[skipSpace(text, 0):]
	}
	n.content = append(n.content, text...)
	n.content = append(n.content, '\n')
	ln.skipToEnd()
}

// finalize pops the innermost open block and closes it.
func (p *Parser) finalize() {
	n := p.tip()
	p.stack = p.stack[:len(p.stack)-1]
	p.closeBlock(n)
}

func (p *Parser) closeBlock(n *Node) {
	n.open = false
	switch n.Type {
	case Paragraph:
		content := trimRight(n.content)
		n.content = nil
		if len(content) == 0 {
			n.unlink()
			return
		}
		p.inline(n, content)
	case Header:
		content := n.content
		n.content = nil
		p.inline(n, content)
	case CodeBlock:
		if n.IsFenced {
			n.Literal = n.content
		} else {
			n.Literal = trimTrailingBlankLines(n.content)
		}
		n.content = nil
	case List:
		p.finalizeList(n)
	case Table:
		p.closeGridTable(n)
	}
}

func trimTrailingBlankLines(data []byte) []byte {
	end := len(data)
	for end > 0 {
		start := bytes.LastIndexByte(data[:end-1], '\n') + 1
		if !isBlank(data[start:end]) {
			break
		}
		end = start
	}
	return data[:end]
}

// splitLines cuts input into lines, treating "\r\n", "\r" and "\n" alike,
// and expands tabs.
func splitLines(input []byte) [][]byte {
	var lines [][]byte
	beg := 0
	for beg < len(input) {
		end := beg
		for end < len(input) && input[end] != '\n' && input[end] != '\r' {
			end++
		}
		text := input[beg:end]
		if bytes.IndexByte(text, '\t') >= 0 {
			var buf bytes.Buffer
			expandTabs(&buf, text)
			text = buf.Bytes()
		}
		lines = append(lines, text)

		if end < len(input) && input[end] == '\r' {
			end++
			if end < len(input) && input[end] == '\n' {
				end++
			}
		} else if end < len(input) {
			end++
		}
		beg = end
	}
	return lines
}

// Replace tab characters with spaces, aligning to the next TabSize column.
// Columns are counted in runes.
func expandTabs(out *bytes.Buffer, line []byte) {
	column := 0
	for _, c := range line {
		if c != '\t' {
			out.WriteByte(c)
			if c&0xc0 != 0x80 {
				column++
			}
			continue
		}
		for {
			out.WriteByte(' ')
			column++
			if column%TabSize == 0 {
				break
			}
		}
	}
}
