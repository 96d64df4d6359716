//
// Gridfriday Markdown Processor, based upon Blackfriday Markdown Processor
// Available at http://github.com/gridfriday/gridfriday
//
// Copyright © 2011 Russ Ross <russ@russross.com>.
// Distributed under the Simplified BSD License.
// See README.md for details.
//

//
// Functions to parse inline elements.
//

package gridfriday

import (
	"bytes"
)

// Functions to parse text within a block
// Each function returns the number of chars taken care of and the node it
// produced, if any
// data is the complete block being parsed
// offset is the position of the trigger character in data
type inlineParser func(p *Parser, data []byte, offset int) (int, *Node)

func (p *Parser) initInline() {
	p.inlineCallback['*'] = emphasis
	p.inlineCallback['_'] = emphasis
	if p.flags&Strikethrough != 0 {
		p.inlineCallback['~'] = emphasis
	}
	p.inlineCallback['`'] = codeSpan
	p.inlineCallback['\n'] = lineBreak
	p.inlineCallback['['] = link
	p.inlineCallback['\\'] = escape
	if p.flags&Autolink != 0 {
		p.inlineCallback['<'] = leftAngle
	}
}

// inline parses data as the inline content of currBlock.
func (p *Parser) inline(currBlock *Node, data []byte) {
	// this is called recursively: enforce a maximum depth
	if p.inlineDepth >= p.maxNesting {
		appendText(currBlock, data)
		return
	}
	p.inlineDepth++

	beg, end := 0, 0
	for end < len(data) {
		handler := p.inlineCallback[data[end]]
		if handler == nil {
			end++
			continue
		}
		consumed, node := handler(p, data, end)
		if consumed == 0 {
			// no action from the callback
			end++
			continue
		}
		text := data[beg:end]
		if node != nil && (node.Type == Hardbreak || node.Type == Softbreak) {
			text = bytes.TrimRight(text, " ")
		}
		appendText(currBlock, text)
		switch {
		case node == nil:
		case node.Type == Text:
			appendText(currBlock, node.Literal)
		default:
			currBlock.appendChild(node)
		}
		beg = end + consumed
		end = beg
	}
	appendText(currBlock, data[beg:])

	p.inlineDepth--
}

func appendText(n *Node, text []byte) {
	if len(text) == 0 {
		return
	}
	if last := n.LastChild; last != nil && last.Type == Text {
		last.Literal = append(last.Literal[:len(last.Literal):len(last.Literal)], text...)
		return
	}
	n.appendChild(textNode(text))
}

func textNode(text []byte) *Node {
	node := NewNode(Text)
	node.Literal = text
	return node
}

// single, double and triple emphasis parsing
func emphasis(p *Parser, data []byte, offset int) (int, *Node) {
	c := data[offset]
	if p.flags&NoIntraEmphasis != 0 && offset > 0 && isalnum(data[offset-1]) {
		return 0, nil
	}
	data = data[offset:]

	if len(data) > 2 && data[1] != c {
		// whitespace cannot follow an opening emphasis;
		// strikethrough only takes two characters '~~'
		if c == '~' || isspace(data[1]) {
			return 0, nil
		}
		ret, node := helperEmphasis(p, data[1:], c)
		if ret == 0 {
			return 0, nil
		}
		return ret + 1, node
	}

	if len(data) > 3 && data[1] == c && data[2] != c {
		if isspace(data[2]) {
			return 0, nil
		}
		ret, node := helperDoubleEmphasis(p, data[2:], c)
		if ret == 0 {
			return 0, nil
		}
		return ret + 2, node
	}

	if len(data) > 4 && data[1] == c && data[2] == c && data[3] != c {
		if c == '~' || isspace(data[3]) {
			return 0, nil
		}
		ret, node := helperTripleEmphasis(p, data, 3, c)
		if ret == 0 {
			return 0, nil
		}
		return ret + 3, node
	}

	return 0, nil
}

// look for the next emph char, skipping other constructs
func helperFindEmphChar(data []byte, c byte) int {
	i := 1

	for i < len(data) {
		for i < len(data) && data[i] != c && data[i] != '`' && data[i] != '[' {
			i++
		}
		if i >= len(data) {
			return 0
		}
		// do not count escaped chars
		if i != 0 && data[i-1] == '\\' {
			i++
			continue
		}
		if data[i] == c {
			return i
		}

		if data[i] == '`' {
			// skip a code span
			tmpI := 0
			i++
			for i < len(data) && data[i] != '`' {
				if tmpI == 0 && data[i] == c {
					tmpI = i
				}
				i++
			}
			if i >= len(data) {
				return tmpI
			}
			i++
		} else if data[i] == '[' {
			// skip a link
			tmpI := 0
			i++
			for i < len(data) && data[i] != ']' {
				if tmpI == 0 && data[i] == c {
					tmpI = i
				}
				i++
			}
			i++
			for i < len(data) && (data[i] == ' ' || data[i] == '\n') {
				i++
			}
			if i >= len(data) {
				return tmpI
			}
			if data[i] != '(' { // not a link
				if tmpI > 0 {
					return tmpI
				}
				continue
			}
			i++
			for i < len(data) && data[i] != ')' {
				if tmpI == 0 && data[i] == c {
					tmpI = i
				}
				i++
			}
			if i >= len(data) {
				return tmpI
			}
			i++
		}
	}
	return 0
}

func helperEmphasis(p *Parser, data []byte, c byte) (int, *Node) {
	i := 0

	// skip one symbol if coming from emph3
	if len(data) > 1 && data[0] == c && data[1] == c {
		i = 1
	}

	for i < len(data) {
		length := helperFindEmphChar(data[i:], c)
		if length == 0 {
			return 0, nil
		}
		i += length
		if i >= len(data) {
			return 0, nil
		}

		if i+1 < len(data) && data[i+1] == c {
			i++
			continue
		}

		if data[i] == c && !isspace(data[i-1]) {
			if p.flags&NoIntraEmphasis != 0 {
				if !(i+1 == len(data) || isspace(data[i+1]) || ispunct(data[i+1])) {
					continue
				}
			}

			emph := NewNode(Emph)
			p.inline(emph, data[:i])
			return i + 1, emph
		}
	}

	return 0, nil
}

func helperDoubleEmphasis(p *Parser, data []byte, c byte) (int, *Node) {
	i := 0

	for i < len(data) {
		length := helperFindEmphChar(data[i:], c)
		if length == 0 {
			return 0, nil
		}
		i += length

		if i+1 < len(data) && data[i] == c && data[i+1] == c && i > 0 && !isspace(data[i-1]) {
			nodeType := Strong
			if c == '~' {
				nodeType = Del
			}
			node := NewNode(nodeType)
			p.inline(node, data[:i])
			return i + 2, node
		}
		i++
	}
	return 0, nil
}

func helperTripleEmphasis(p *Parser, data []byte, offset int, c byte) (int, *Node) {
	i := 0
	origData := data
	data = data[offset:]

	for i < len(data) {
		length := helperFindEmphChar(data[i:], c)
		if length == 0 {
			return 0, nil
		}
		i += length

		// skip whitespace preceded symbols
		if data[i] != c || isspace(data[i-1]) {
			continue
		}

		switch {
		case i+2 < len(data) && data[i+1] == c && data[i+2] == c:
			// triple symbol found
			strong := NewNode(Strong)
			em := NewNode(Emph)
			strong.appendChild(em)
			p.inline(em, data[:i])
			return i + 3, strong
		case i+1 < len(data) && data[i+1] == c:
			// double symbol found, hand over to emph1
			length, node := helperEmphasis(p, origData[offset-2:], c)
			if length == 0 {
				return 0, nil
			}
			return length - 2, node
		default:
			// single symbol found, hand over to emph2
			length, node := helperDoubleEmphasis(p, origData[offset-1:], c)
			if length == 0 {
				return 0, nil
			}
			return length - 1, node
		}
	}
	return 0, nil
}

func codeSpan(p *Parser, data []byte, offset int) (int, *Node) {
	data = data[offset:]

	// count the number of backticks in the delimiter
	nb := skipChar(data, 0, '`')

	// find the next delimiter
	i, end := 0, 0
	for end = nb; end < len(data) && i < nb; end++ {
		if data[end] == '`' {
			i++
		} else {
			i = 0
		}
	}

	// no matching delimiter?
	if i < nb && end >= len(data) {
		return 0, nil
	}

	// trim outside whitespace
	fBegin := nb
	for fBegin < end && data[fBegin] == ' ' {
		fBegin++
	}

	fEnd := end - nb
	for fEnd > fBegin && data[fEnd-1] == ' ' {
		fEnd--
	}

	code := NewNode(Code)
	if fBegin < fEnd {
		code.Literal = data[fBegin:fEnd]
	}
	return end, code
}

// newline, with a hard break when preceded by two spaces
func lineBreak(p *Parser, data []byte, offset int) (int, *Node) {
	if offset >= 2 && data[offset-1] == ' ' && data[offset-2] == ' ' {
		return 1, NewNode(Hardbreak)
	}
	return 1, NewNode(Softbreak)
}

// '[': parse an inline link
//
//	[text](destination "title")
func link(p *Parser, data []byte, offset int) (int, *Node) {
	data = data[offset:]

	// look for the matching closing bracket
	i, level := 1, 1
	for ; i < len(data); i++ {
		switch data[i] {
		case '\\':
			i++
			continue
		case '[':
			level++
		case ']':
			level--
		}
		if level == 0 {
			break
		}
	}
	if i >= len(data) {
		return 0, nil
	}
	txtE := i
	i++

	if i >= len(data) || data[i] != '(' {
		return 0, nil
	}
	i = skipSpace(data, i+1)

	// look for the link end: ' ', ')' or a title quote
	linkB := i
	for i < len(data) && data[i] != ')' && data[i] != ' ' && data[i] != '\n' {
		if data[i] == '\\' {
			i++
		}
		i++
	}
	if i >= len(data) {
		return 0, nil
	}
	linkE := i
	i = skipSpace(data, i)

	var title []byte
	if i < len(data) && (data[i] == '"' || data[i] == '\'') {
		quote := data[i]
		i++
		titleB := i
		for i < len(data) && data[i] != quote {
			i++
		}
		if i >= len(data) {
			return 0, nil
		}
		title = data[titleB:i]
		i = skipSpace(data, i+1)
	}
	if i >= len(data) || data[i] != ')' {
		return 0, nil
	}

	var dest bytes.Buffer
	unescapeText(&dest, data[linkB:linkE])

	node := NewNode(Link)
	node.Destination = dest.Bytes()
	node.Title = title
	p.inline(node, data[1:txtE])
	return i + 1, node
}

// '<' when autolinks are allowed
func leftAngle(p *Parser, data []byte, offset int) (int, *Node) {
	data = data[offset:]
	end, kind := autolinkLength(data)
	if end <= 2 {
		return 0, nil
	}

	var uLink bytes.Buffer
	unescapeText(&uLink, data[1:end-1])

	node := NewNode(Link)
	node.Destination = uLink.Bytes()
	node.Kind = kind
	node.appendChild(textNode(uLink.Bytes()))
	return end, node
}

// '\\' backslash escape
func escape(p *Parser, data []byte, offset int) (int, *Node) {
	data = data[offset:]
	if len(data) < 2 {
		return 0, nil
	}
	if data[1] == '\n' {
		return 2, NewNode(Hardbreak)
	}
	if !ispunct(data[1]) {
		return 0, nil
	}
	return 2, textNode(data[1:2])
}

func unescapeText(ob *bytes.Buffer, src []byte) {
	i := 0
	for i < len(src) {
		org := i
		for i < len(src) && src[i] != '\\' {
			i++
		}

		if i > org {
			ob.Write(src[org:i])
		}

		if i+1 >= len(src) {
			if i < len(src) {
				ob.WriteByte(src[i])
			}
			break
		}

		ob.WriteByte(src[i+1])
		i += 2
	}
}

// autolinkLength returns the length of the autolink at the start of data,
// '<' and '>' included, and its kind; 0 if there is none.
func autolinkLength(data []byte) (int, LinkType) {
	// a valid autolink can't be shorter than 3 chars
	if len(data) < 3 || data[0] != '<' || !isalnum(data[1]) {
		return 0, LinkTypeNotAutolink
	}

	// try to find the beginning of an URI
	i := 1
	for i < len(data) && (isalnum(data[i]) || data[i] == '.' || data[i] == '+' || data[i] == '-' || data[i] == '_') {
		i++
	}
	if i >= len(data) {
		return 0, LinkTypeNotAutolink
	}

	if i > 1 && data[i] == '@' {
		if j := isMailtoAutolink(data[i:]); j != 0 {
			return i + j, LinkTypeEmail
		}
		return 0, LinkTypeNotAutolink
	}

	if i <= 2 || data[i] != ':' {
		return 0, LinkTypeNotAutolink
	}
	i++

	// complete autolink test: no whitespace or ' or "
	j := i
	for i < len(data) {
		if data[i] == '\\' {
			i += 2
			continue
		}
		if data[i] == '>' || data[i] == '<' || data[i] == '\'' || data[i] == '"' || isspace(data[i]) {
			break
		}
		i++
	}
	if i >= len(data) || i == j || data[i] != '>' {
		return 0, LinkTypeNotAutolink
	}
	return i + 1, LinkTypeNormal
}

// look for the address part of a mail autolink and '>'
// this is less strict than Markdown.pl's e-mail address matching
func isMailtoAutolink(data []byte) int {
	nb := 0

	// address is assumed to be: [-@._a-zA-Z0-9]+ with exactly one '@'
	for i := 0; i < len(data); i++ {
		if isalnum(data[i]) {
			continue
		}

		switch data[i] {
		case '@':
			nb++
		case '-', '.', '_':
		case '>':
			if nb == 1 && i > 1 {
				return i + 1
			}
			return 0
		default:
			return 0
		}
	}

	return 0
}
