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
// HTML rendering backend
//
//

package gridfriday

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// HTMLFlags control optional behavior of HTML renderer.
type HTMLFlags int

// HTML renderer configuration options.
const (
	HTMLFlagsNone   HTMLFlags = 0
	NofollowLinks   HTMLFlags = 1 << iota // Only link with rel="nofollow"
	NoreferrerLinks                       // Only link with rel="noreferrer"
	HrefTargetBlank                       // Add a blank target
	CompletePage                          // Generate a complete HTML page
	UseXHTML                              // Generate XHTML output instead of HTML
	HighlightCode                         // Highlight fenced code with a known language

	CommonHTMLFlags HTMLFlags = UseXHTML
)

// HTMLRendererParameters is a collection of supplementary parameters tweaking
// the behavior of various parts of HTML renderer.
type HTMLRendererParameters struct {
	// If set, add this text to the front of each Header ID, to ensure
	// uniqueness.
	HeaderIDPrefix string
	// If set, add this text to the back of each Header ID, to ensure uniqueness.
	HeaderIDSuffix string

	Title string // Document title (used if CompletePage is set)
	CSS   string // Optional CSS file URL (used if CompletePage is set)

	// HighlightStyle names the chroma style embedded in complete pages when
	// HighlightCode is set. Unknown names fall back to chroma's default.
	HighlightStyle string
}

// HTML is a type that implements the Renderer interface for HTML output.
//
// Do not create this directly, instead use the HTMLRenderer function.
type HTML struct {
	HTMLRendererParameters

	flags    HTMLFlags
	closeTag string // how to end singleton tags: either " />" or ">"

	// Track header IDs to prevent ID collision in a single generation.
	headerIDs map[string]int

	lastByte  byte
	formatter *chromahtml.Formatter

	// row groups opened so far, one entry per table being rendered
	groups []rowGroups
}

// rowGroups records whether a table has written header and body rows.
type rowGroups struct {
	header, body bool
}

const (
	xhtmlClose = " />"
	htmlClose  = ">"
)

// HTMLRenderer creates and configures an HTML object, which satisfies the
// Renderer interface.
func HTMLRenderer(flags HTMLFlags, params HTMLRendererParameters) *HTML {
	closeTag := htmlClose
	if flags&UseXHTML != 0 {
		closeTag = xhtmlClose
	}
	r := &HTML{
		HTMLRendererParameters: params,
		flags:                  flags,
		closeTag:               closeTag,
		headerIDs:              make(map[string]int),
	}
	if flags&HighlightCode != 0 {
		r.formatter = chromahtml.New(chromahtml.WithClasses(true))
	}
	return r
}

func (r *HTML) out(w io.Writer, text []byte) {
	if len(text) == 0 {
		return
	}
	w.Write(text)
	r.lastByte = text[len(text)-1]
}

func (r *HTML) cr(w io.Writer) {
	if r.lastByte != 0 && r.lastByte != '\n' {
		r.out(w, []byte{'\n'})
	}
}

func tag(name string, attrs []string, selfClosing bool) []byte {
	result := "<" + name
	if len(attrs) > 0 {
		result += " " + strings.Join(attrs, " ")
	}
	if selfClosing {
		result += " /"
	}
	return []byte(result + ">")
}

func (r *HTML) ensureUniqueHeaderID(id string) string {
	for count, found := r.headerIDs[id]; found; count, found = r.headerIDs[id] {
		tmp := fmt.Sprintf("%s-%d", id, count+1)

		if _, tmpFound := r.headerIDs[tmp]; !tmpFound {
			r.headerIDs[id] = count + 1
			id = tmp
		} else {
			id = id + "-1"
		}
	}

	if _, found := r.headerIDs[id]; !found {
		r.headerIDs[id] = 0
	}

	return id
}

func isRelativeLink(link []byte) bool {
	if len(link) == 0 {
		return true
	}

	// a tag begin with '#'
	if link[0] == '#' {
		return true
	}

	// link begin with '/' but not '//', the second maybe a protocol relative link
	if len(link) >= 2 && link[0] == '/' && link[1] != '/' {
		return true
	}

	// only the root '/'
	if len(link) == 1 && link[0] == '/' {
		return true
	}

	// current directory : begin with "./"
	if bytes.HasPrefix(link, []byte("./")) {
		return true
	}

	// parent directory : begin with "../"
	return bytes.HasPrefix(link, []byte("../"))
}

func appendLinkAttrs(attrs []string, flags HTMLFlags, link []byte) []string {
	if isRelativeLink(link) {
		return attrs
	}
	var val []string
	if flags&NofollowLinks != 0 {
		val = append(val, "nofollow")
	}
	if flags&NoreferrerLinks != 0 {
		val = append(val, "noreferrer")
	}
	if flags&HrefTargetBlank != 0 {
		attrs = append(attrs, `target="_blank"`)
	}
	if len(val) == 0 {
		return attrs
	}
	return append(attrs, fmt.Sprintf("rel=%q", strings.Join(val, " ")))
}

func infoLanguage(info []byte) string {
	if words := bytes.Fields(info); len(words) > 0 {
		return string(words[0])
	}
	return ""
}

func appendLanguageAttr(attrs []string, info []byte) []string {
	if lang := infoLanguage(info); lang != "" {
		attrs = append(attrs, fmt.Sprintf(`class="language-%s"`, esc([]byte(lang))))
	}
	return attrs
}

func skipParagraphTags(node *Node) bool {
	parent := node.Parent
	if parent == nil {
		return false
	}
	// a cell holding a single paragraph renders it bare
	if parent.Type == TableCell {
		return node.Prev == nil && node.Next == nil
	}
	grandparent := parent.Parent
	return grandparent != nil && grandparent.Type == List && grandparent.Tight
}

func cellAlignment(align CellAlignFlags) string {
	switch align {
	case TableAlignmentLeft:
		return "left"
	case TableAlignmentRight:
		return "right"
	case TableAlignmentCenter:
		return "center"
	default:
		return ""
	}
}

// hasColumnWidths reports whether the table declares widths worth writing.
func hasColumnWidths(table *Node) bool {
	for _, col := range table.Columns {
		if col.Width != 0 && col.Width != 1 {
			return true
		}
	}
	return false
}

func formatWidth(width float64) string {
	return strconv.FormatFloat(math.Round(width*100)/100, 'f', 2, 64)
}

// highlight writes code through chroma. It reports false when the info
// string names no known language.
func (r *HTML) highlight(w io.Writer, node *Node) bool {
	lang := infoLanguage(node.Info)
	if lang == "" {
		return false
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return false
	}
	lexer = chroma.Coalesce(lexer)
	it, err := lexer.Tokenise(nil, string(node.Literal))
	if err != nil {
		return false
	}
	var buf bytes.Buffer
	if err := r.formatter.Format(&buf, styles.Get(r.HighlightStyle), it); err != nil {
		return false
	}
	r.out(w, buf.Bytes())
	return true
}

// RenderNode is a default renderer of a single node of a syntax tree. For
// block nodes it will be called twice: first time with entering=true, second
// time with entering=false, so that it could know when it's working on an
// open tag and when on close. It writes the result to w.
func (r *HTML) RenderNode(w io.Writer, node *Node, entering bool) WalkStatus {
	var attrs []string
	switch node.Type {
	case Text:
		r.out(w, esc(node.Literal))
	case Softbreak:
		r.out(w, []byte("\n"))
	case Hardbreak:
		r.out(w, tag("br", nil, r.flags&UseXHTML != 0))
		r.cr(w)
	case Emph:
		if entering {
			r.out(w, tag("em", nil, false))
		} else {
			r.out(w, tag("/em", nil, false))
		}
	case Strong:
		if entering {
			r.out(w, tag("strong", nil, false))
		} else {
			r.out(w, tag("/strong", nil, false))
		}
	case Del:
		if entering {
			r.out(w, tag("del", nil, false))
		} else {
			r.out(w, tag("/del", nil, false))
		}
	case Link:
		if !entering {
			r.out(w, tag("/a", nil, false))
			break
		}
		dest := node.Destination
		if node.Kind == LinkTypeEmail {
			dest = append([]byte("mailto:"), dest...)
		}
		attrs = append(attrs, fmt.Sprintf(`href="%s"`, esc(dest)))
		if len(node.Title) > 0 {
			attrs = append(attrs, fmt.Sprintf(`title="%s"`, esc(node.Title)))
		}
		attrs = appendLinkAttrs(attrs, r.flags, dest)
		r.out(w, tag("a", attrs, false))
	case Code:
		r.out(w, tag("code", nil, false))
		r.out(w, esc(node.Literal))
		r.out(w, tag("/code", nil, false))
	case Document:
	case Paragraph:
		if skipParagraphTags(node) {
			break
		}
		if entering {
			r.cr(w)
			r.out(w, tag("p", nil, false))
		} else {
			r.out(w, tag("/p", nil, false))
			r.cr(w)
		}
	case BlockQuote:
		if entering {
			r.cr(w)
			r.out(w, tag("blockquote", nil, false))
			r.cr(w)
		} else {
			r.cr(w)
			r.out(w, tag("/blockquote", nil, false))
			r.cr(w)
		}
	case Header:
		tagname := fmt.Sprintf("h%d", node.Level)
		if entering {
			if node.HeaderID != "" {
				id := r.ensureUniqueHeaderID(node.HeaderID)
				if r.HeaderIDPrefix != "" {
					id = r.HeaderIDPrefix + id
				}
				if r.HeaderIDSuffix != "" {
					id = id + r.HeaderIDSuffix
				}
				attrs = append(attrs, fmt.Sprintf(`id="%s"`, esc([]byte(id))))
			}
			r.cr(w)
			r.out(w, tag(tagname, attrs, false))
		} else {
			r.out(w, tag("/"+tagname, nil, false))
			r.cr(w)
		}
	case HorizontalRule:
		r.cr(w)
		r.out(w, tag("hr", nil, r.flags&UseXHTML != 0))
		r.cr(w)
	case List:
		tagName := "ul"
		if node.ListFlags&ListTypeOrdered != 0 {
			tagName = "ol"
			if node.Start != 1 {
				attrs = append(attrs, fmt.Sprintf(`start="%d"`, node.Start))
			}
		}
		if entering {
			r.cr(w)
			r.out(w, tag(tagName, attrs, false))
			r.cr(w)
		} else {
			r.cr(w)
			r.out(w, tag("/"+tagName, nil, false))
			r.cr(w)
		}
	case Item:
		if entering {
			r.out(w, tag("li", nil, false))
		} else {
			r.out(w, tag("/li", nil, false))
			r.cr(w)
		}
	case CodeBlock:
		r.cr(w)
		if r.formatter != nil && node.IsFenced && r.highlight(w, node) {
			r.cr(w)
			break
		}
		attrs = appendLanguageAttr(attrs, node.Info)
		r.out(w, tag("pre", nil, false))
		r.out(w, tag("code", attrs, false))
		r.out(w, esc(node.Literal))
		r.out(w, tag("/code", nil, false))
		r.out(w, tag("/pre", nil, false))
		r.cr(w)
	case Table:
		if entering {
			r.cr(w)
			r.out(w, tag("table", nil, false))
			r.cr(w)
			r.groups = append(r.groups, rowGroups{})
			if hasColumnWidths(node) {
				for _, col := range node.Columns {
					style := fmt.Sprintf(`style="width:%s%%"`, formatWidth(col.Width))
					r.out(w, tag("col", []string{style}, r.flags&UseXHTML != 0))
					r.cr(w)
				}
			}
			break
		}
		g := r.groups[len(r.groups)-1]
		r.groups = r.groups[:len(r.groups)-1]
		switch {
		case g.body:
			r.out(w, tag("/tbody", nil, false))
			r.cr(w)
		case g.header:
			r.out(w, tag("/thead", nil, false))
			r.cr(w)
		}
		r.out(w, tag("/table", nil, false))
		r.cr(w)
	case TableRow:
		if !entering {
			r.out(w, tag("/tr", nil, false))
			r.cr(w)
			break
		}
		g := &r.groups[len(r.groups)-1]
		switch {
		case node.IsHeader:
			if !g.header && !g.body {
				r.out(w, tag("thead", nil, false))
				r.cr(w)
			}
			g.header = true
		case !g.body:
			if g.header {
				r.out(w, tag("/thead", nil, false))
				r.cr(w)
			}
			r.out(w, tag("tbody", nil, false))
			r.cr(w)
			g.body = true
		}
		r.out(w, tag("tr", nil, false))
		r.cr(w)
	case TableCell:
		tagName := "td"
		if node.IsHeader {
			tagName = "th"
		}
		if !entering {
			r.out(w, tag("/"+tagName, nil, false))
			r.cr(w)
			break
		}
		if node.ColSpan != 1 {
			attrs = append(attrs, fmt.Sprintf(`colspan="%d"`, node.ColSpan))
		}
		if table := node.Parent.Parent; table != nil && node.Column < len(table.Columns) {
			switch align := table.Columns[node.Column].Align; align {
			case TableAlignmentCenter, TableAlignmentRight:
				attrs = append(attrs, fmt.Sprintf(`style="text-align: %s;"`, cellAlignment(align)))
			}
		}
		r.out(w, tag(tagName, attrs, false))
	default:
		panic("Unknown node type " + node.Type.String())
	}
	return GoToNext
}

func (r *HTML) writeDocumentHeader(w *bytes.Buffer) {
	if r.flags&CompletePage == 0 {
		return
	}
	ending := ""
	if r.flags&UseXHTML != 0 {
		w.WriteString("<!DOCTYPE html PUBLIC \"-//W3C//DTD XHTML 1.0 Transitional//EN\" ")
		w.WriteString("\"http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd\">\n")
		w.WriteString("<html xmlns=\"http://www.w3.org/1999/xhtml\">\n")
		ending = " /"
	} else {
		w.WriteString("<!DOCTYPE html>\n")
		w.WriteString("<html>\n")
	}
	w.WriteString("<head>\n")
	w.WriteString("  <title>")
	escapeHTML(w, []byte(r.Title))
	w.WriteString("</title>\n")
	w.WriteString("  <meta name=\"GENERATOR\" content=\"Gridfriday Markdown Processor v")
	w.WriteString(Version)
	w.WriteString("\"")
	w.WriteString(ending)
	w.WriteString(">\n")
	w.WriteString("  <meta charset=\"utf-8\"")
	w.WriteString(ending)
	w.WriteString(">\n")
	if r.CSS != "" {
		w.WriteString("  <link rel=\"stylesheet\" type=\"text/css\" href=\"")
		escapeHTML(w, []byte(r.CSS))
		w.WriteString("\"")
		w.WriteString(ending)
		w.WriteString(">\n")
	}
	if r.formatter != nil {
		w.WriteString("  <style>\n")
		if err := r.formatter.WriteCSS(w, styles.Get(r.HighlightStyle)); err != nil {
			panic(err) // writes to a bytes.Buffer do not fail
		}
		w.WriteString("  </style>\n")
	}
	w.WriteString("</head>\n")
	w.WriteString("<body>\n\n")
}

func (r *HTML) writeDocumentFooter(w *bytes.Buffer) {
	if r.flags&CompletePage == 0 {
		return
	}
	w.WriteString("\n</body>\n")
	w.WriteString("</html>\n")
}

// Render walks the whole tree and returns the HTML for it.
func (r *HTML) Render(ast *Node) []byte {
	r.headerIDs = make(map[string]int)
	r.lastByte = 0
	r.groups = r.groups[:0]

	var buf bytes.Buffer
	r.writeDocumentHeader(&buf)
	ast.Walk(func(node *Node, entering bool) WalkStatus {
		return r.RenderNode(&buf, node, entering)
	})
	r.writeDocumentFooter(&buf)
	return buf.Bytes()
}
