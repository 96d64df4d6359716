// Package goldmarkgrid plugs gridfriday grid tables into goldmark.
//
// The block parser collects the '+' and '|' lines of a table and hands them
// to gridfriday, so cells hold gridfriday markdown and are rendered by
// gridfriday's HTML renderer. Lines that do not make a table end up in an
// ordinary goldmark paragraph.
package goldmarkgrid

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/gridfriday/gridfriday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindGridTable is the NodeKind of GridTable.
var KindGridTable = ast.NewNodeKind("GridTable")

// GridTable is a block holding a parsed grid table.
type GridTable struct {
	ast.BaseBlock

	// Doc is the gridfriday tree for the table lines. Its first child is
	// the Table.
	Doc *gridfriday.Node

	indent int
}

// Kind implements ast.Node.Kind.
func (n *GridTable) Kind() ast.NodeKind {
	return KindGridTable
}

// IsRaw implements ast.Node.IsRaw. The lines are gridfriday markdown and
// are not inline-parsed by goldmark.
func (n *GridTable) IsRaw() bool {
	return true
}

// Dump implements ast.Node.Dump.
func (n *GridTable) Dump(source []byte, level int) {
	kv := map[string]string{}
	if n.Doc != nil && n.Doc.FirstChild != nil {
		table := n.Doc.FirstChild
		rows := 0
		for r := table.FirstChild; r != nil; r = r.Next {
			rows++
		}
		kv["Columns"] = fmt.Sprint(len(table.Columns))
		kv["Rows"] = fmt.Sprint(rows)
	}
	ast.DumpHelper(n, source, level, kv, nil)
}

type gridTableParser struct {
	opts gridfriday.Options
}

// NewParser returns a goldmark block parser for grid tables. The GridTables
// extension is always enabled on opts.
func NewParser(opts gridfriday.Options) parser.BlockParser {
	opts.Extensions |= gridfriday.GridTables
	return &gridTableParser{opts: opts}
}

func (b *gridTableParser) Trigger() []byte {
	return []byte{'+'}
}

func (b *gridTableParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	w, pos := util.IndentWidth(line, reader.LineOffset())
	if w > 3 || !gridfriday.IsTableBorder(line[pos:]) {
		return nil, parser.NoChildren
	}
	node := &GridTable{indent: w}
	node.Lines().Append(text.NewSegment(segment.Start+pos, segment.Stop))
	reader.Advance(segment.Len() - newline(line))
	return node, parser.NoChildren
}

func (b *gridTableParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if line == nil {
		return parser.Close
	}
	table := node.(*GridTable)
	w, pos := util.IndentWidth(line, reader.LineOffset())
	if w != table.indent || pos >= len(line) || (line[pos] != '+' && line[pos] != '|') {
		return parser.Close
	}
	node.Lines().Append(text.NewSegment(segment.Start+pos, segment.Stop))
	reader.Advance(segment.Len() - newline(line))
	return parser.Continue | parser.NoChildren
}

// Close parses the collected lines. When they hold no table the node is
// replaced by a paragraph with the same lines.
func (b *gridTableParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {
	table := node.(*GridTable)
	var src bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		src.Write(seg.Value(reader.Source()))
	}

	doc := gridfriday.Parse(src.Bytes(), b.opts)
	if doc.FirstChild != nil && doc.FirstChild.Type == gridfriday.Table {
		table.Doc = doc
		return
	}
	b.logger().Debug("grid table lines kept as paragraph", "lines", lines.Len())
	para := ast.NewParagraph()
	para.SetLines(lines)
	if parent := node.Parent(); parent != nil {
		parent.ReplaceChild(parent, node, para)
	}
}

func (b *gridTableParser) logger() *slog.Logger {
	if b.opts.Logger != nil {
		return b.opts.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (b *gridTableParser) CanInterruptParagraph() bool {
	return true
}

func (b *gridTableParser) CanAcceptIndentedLine() bool {
	return false
}

func newline(line []byte) int {
	if len(line) > 0 && line[len(line)-1] == '\n' {
		return 1
	}
	return 0
}

type gridTableRenderer struct {
	flags  gridfriday.HTMLFlags
	params gridfriday.HTMLRendererParameters
}

// NewRenderer returns a goldmark node renderer writing GridTable nodes with
// gridfriday's HTML renderer. CompletePage is ignored.
func NewRenderer(flags gridfriday.HTMLFlags, params gridfriday.HTMLRendererParameters) renderer.NodeRenderer {
	return &gridTableRenderer{flags: flags &^ gridfriday.CompletePage, params: params}
}

func (r *gridTableRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindGridTable, r.renderGridTable)
}

func (r *gridTableRenderer) renderGridTable(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	node := n.(*GridTable)
	if node.Doc == nil {
		return ast.WalkSkipChildren, nil
	}
	_, err := w.Write(gridfriday.HTMLRenderer(r.flags, r.params).Render(node.Doc))
	return ast.WalkSkipChildren, err
}

// Extension configures the grid table parser and renderer.
type Extension struct {
	Options    gridfriday.Options
	HTMLFlags  gridfriday.HTMLFlags
	Parameters gridfriday.HTMLRendererParameters
}

// GridTables is an extension with gridfriday's common extensions and XHTML
// output.
var GridTables = &Extension{
	Options:   gridfriday.Options{Extensions: gridfriday.CommonExtensions},
	HTMLFlags: gridfriday.CommonHTMLFlags,
}

// Extend implements goldmark.Extender. The parser runs ahead of goldmark's
// list parser, which also triggers on '+'.
func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(util.Prioritized(NewParser(e.Options), 150)),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(util.Prioritized(NewRenderer(e.HTMLFlags, e.Parameters), 500)),
	)
}
