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
	"fmt"
)

// NodeType specifies a type of a single node of a syntax tree. Usually one
// node (and its type) corresponds to a single markdown feature, e.g. emphasis
// or code block.
type NodeType int

// Constants for identifying different types of nodes. See NodeType.
const (
	Document NodeType = iota
	BlockQuote
	List
	Item
	Paragraph
	Header
	HorizontalRule
	Emph
	Strong
	Del
	Link
	Text
	CodeBlock
	Softbreak
	Hardbreak
	Code
	Table
	TableRow
	TableCell
)

var nodeTypeNames = []string{
	Document:       "Document",
	BlockQuote:     "BlockQuote",
	List:           "List",
	Item:           "Item",
	Paragraph:      "Paragraph",
	Header:         "Header",
	HorizontalRule: "HorizontalRule",
	Emph:           "Emph",
	Strong:         "Strong",
	Del:            "Del",
	Link:           "Link",
	Text:           "Text",
	CodeBlock:      "CodeBlock",
	Softbreak:      "Softbreak",
	Hardbreak:      "Hardbreak",
	Code:           "Code",
	Table:          "Table",
	TableRow:       "TableRow",
	TableCell:      "TableCell",
}

func (t NodeType) String() string {
	return nodeTypeNames[t]
}

// ListType contains bitwise or'ed flags for list and list item objects.
type ListType int

// These are the possible flag values for the ListItem renderer.
const (
	ListTypeOrdered ListType = 1 << iota
)

// CellAlignFlags holds a type of alignment in a table cell.
type CellAlignFlags int

// These are the possible flag values for the table cell renderer.
// Only a single one of these values will be used; they are not ORed together.
// A zero value means the column carries no alignment.
const (
	TableAlignmentLeft CellAlignFlags = 1 << iota
	TableAlignmentRight
	TableAlignmentCenter = (TableAlignmentLeft | TableAlignmentRight)
)

// LinkType distinguishes inline links from the two kinds of autolinks.
type LinkType int

// These are the possible flag values for the link renderer.
const (
	LinkTypeNotAutolink LinkType = iota
	LinkTypeNormal
	LinkTypeEmail
)

// ListData contains fields relevant to a List and Item node type.
type ListData struct {
	ListFlags  ListType
	Tight      bool // Skip <p>s around list item data if true
	BulletChar byte // '*', '+' or '-' in bullet lists
	Delimiter  byte // '.' or ')' after the number in ordered lists
	Start      int  // First number of an ordered list
	Padding    int  // Column where the content of an item starts
}

// LinkData contains fields relevant to a Link node type.
type LinkData struct {
	Destination []byte
	Title       []byte
	Kind        LinkType
}

// CodeBlockData contains fields relevant to a CodeBlock node type.
type CodeBlockData struct {
	IsFenced    bool   // Specifies whether it's a fenced code block or an indented one
	Info        []byte // This holds the info string
	FenceChar   byte
	FenceLength int
	FenceOffset int
}

// HeaderData contains fields relevant to a Header node type.
type HeaderData struct {
	Level    int    // This holds the heading level number
	HeaderID string // This might hold header ID, if present
}

// TableColumn describes one column of a grid table.
type TableColumn struct {
	Width float64        // Share of the total table width, in percent
	Align CellAlignFlags // Alignment declared on the opening separator
}

// TableData contains fields relevant to a Table node type.
type TableData struct {
	Columns []TableColumn
}

// TableCellData contains fields relevant to TableRow and TableCell node
// types.
type TableCellData struct {
	IsHeader bool // Row or cell sits above a '=' separator
	ColSpan  int  // Number of columns the cell covers, at least 1
	Column   int  // Index of the first column the cell covers
}

// Node is a single element in the abstract syntax tree of the parsed document.
// It holds connections to the structurally neighboring nodes and, for certain
// types of nodes, additional information that might be needed when rendering.
type Node struct {
	Type       NodeType // Determines the type of the node
	Parent     *Node    // Points to the parent
	FirstChild *Node    // Points to the first child, if any
	LastChild  *Node    // Points to the last child, if any
	Prev       *Node    // Previous sibling; nil if it's the first child
	Next       *Node    // Next sibling; nil if it's the last child

	Literal []byte // Text contents of the leaf nodes

	HeaderData    // Populated if Type == Header
	ListData      // Populated if Type == List or Item
	CodeBlockData // Populated if Type == CodeBlock
	LinkData      // Populated if Type == Link
	TableData     // Populated if Type == Table
	TableCellData // Populated if Type == TableRow or TableCell

	content   []byte          // Markdown content of the block nodes
	open      bool            // Specifies an open block node that has not been finished to process yet
	startLine int             // Line the block was opened on
	endLine   int             // Last non-blank line the block saw
	grid      *gridTableState // Populated while a Table is open
}

// NewNode allocates a node of a specified type.
func NewNode(typ NodeType) *Node {
	return &Node{
		Type: typ,
		open: true,
	}
}

func (n *Node) unlink() {
	if n.Prev != nil {
		n.Prev.Next = n.Next
	} else if n.Parent != nil {
		n.Parent.FirstChild = n.Next
	}
	if n.Next != nil {
		n.Next.Prev = n.Prev
	} else if n.Parent != nil {
		n.Parent.LastChild = n.Prev
	}
	n.Parent = nil
	n.Next = nil
	n.Prev = nil
}

func (n *Node) appendChild(child *Node) {
	child.unlink()
	child.Parent = n
	if n.LastChild != nil {
		n.LastChild.Next = child
		child.Prev = n.LastChild
		n.LastChild = child
	} else {
		n.FirstChild = child
		n.LastChild = child
	}
}

// insertBefore links sibling into the tree right before n.
func (n *Node) insertBefore(sibling *Node) {
	sibling.unlink()
	sibling.Prev = n.Prev
	if sibling.Prev != nil {
		sibling.Prev.Next = sibling
	}
	sibling.Next = n
	n.Prev = sibling
	sibling.Parent = n.Parent
	if sibling.Prev == nil && sibling.Parent != nil {
		sibling.Parent.FirstChild = sibling
	}
}

func (n *Node) isContainer() bool {
	switch n.Type {
	case Document, BlockQuote, List, Item, Paragraph, Header:
		return true
	case Emph, Strong, Del, Link:
		return true
	case Table, TableRow, TableCell:
		return true
	default:
		return false
	}
}

func (n *Node) canContain(t NodeType) bool {
	switch n.Type {
	case List:
		return t == Item
	case Document, BlockQuote, Item, TableCell:
		return t != Item && t != TableRow && t != TableCell
	case Table:
		return t == TableRow
	case TableRow:
		return t == TableCell
	}
	return false
}

// WalkStatus allows NodeVisitor to have some control over the tree traversal.
// It is returned from NodeVisitor and different values allow Node.Walk to
// decide which node to go to next.
type WalkStatus int

const (
	GoToNext     WalkStatus = iota // The default traversal of every node.
	SkipChildren                   // Skips all children of current node.
	Terminate                      // Terminates the traversal.
)

// NodeVisitor is a callback to be called when traversing the syntax tree.
// Called twice for every node: once with entering=true when the branch is
// first visited, then with entering=false after all the children are done.
type NodeVisitor func(node *Node, entering bool) WalkStatus

// Walk is a convenience method that instantiates a walker and starts a
// traversal of subtree rooted at n.
func (n *Node) Walk(visitor NodeVisitor) {
	w := NewNodeWalker(n)
	for w.current != nil {
		status := visitor(w.current, w.entering)
		switch status {
		case GoToNext:
			w.next()
		case SkipChildren:
			w.entering = false
			w.next()
		case Terminate:
			return
		}
	}
}

// NodeWalker walks a tree in depth-first order.
type NodeWalker struct {
	current  *Node
	root     *Node
	entering bool
}

// NewNodeWalker creates a walker positioned on root.
func NewNodeWalker(root *Node) *NodeWalker {
	return &NodeWalker{
		current:  root,
		root:     root,
		entering: true,
	}
}

func (nw *NodeWalker) next() {
	if (!nw.current.isContainer() || !nw.entering) && nw.current == nw.root {
		nw.current = nil
		return
	}
	if nw.entering && nw.current.isContainer() {
		if nw.current.FirstChild != nil {
			nw.current = nw.current.FirstChild
			nw.entering = true
		} else {
			nw.entering = false
		}
	} else if nw.current.Next == nil {
		nw.current = nw.current.Parent
		nw.entering = false
	} else {
		nw.current = nw.current.Next
		nw.entering = true
	}
}

func (n *Node) String() string {
	return dumpString(n)
}

func dumpR(ast *Node, depth int) string {
	if ast == nil {
		return ""
	}
	indent := bytes.Repeat([]byte("\t"), depth)
	content := ast.Literal
	if content == nil {
		content = ast.content
	}
	var extra string
	switch ast.Type {
	case Table:
		extra = fmt.Sprintf(" %v", ast.Columns)
	case TableRow:
		if ast.IsHeader {
			extra = " header"
		}
	case TableCell:
		extra = fmt.Sprintf(" col=%d span=%d", ast.Column, ast.ColSpan)
	}
	result := fmt.Sprintf("%s%s(%q)%s\n", indent, ast.Type, content, extra)
	for n := ast.FirstChild; n != nil; n = n.Next {
		result += dumpR(n, depth+1)
	}
	return result
}

func dumpString(ast *Node) string {
	return dumpR(ast, 0)
}
