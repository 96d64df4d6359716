//
// Gridfriday Markdown Processor, based upon Blackfriday Markdown Processor
// Available at http://github.com/gridfriday/gridfriday
//
// Copyright © 2011 Russ Ross <russ@russross.com>.
// Distributed under the Simplified BSD License.
// See README.md for details.
//

//
// Unit tests for block parsing
//

package gridfriday

import (
	"bytes"
	"testing"
)

func TestPrefixHeaderNoExtensions(t *testing.T) {
	t.Parallel()
	var tests = []string{
		"# Header 1\n",
		"<h1>Header 1</h1>\n",

		"## Header 2\n",
		"<h2>Header 2</h2>\n",

		"###### Header 6\n",
		"<h6>Header 6</h6>\n",

		"####### Header 7\n",
		"<p>####### Header 7</p>\n",

		"#Header 1\n",
		"<p>#Header 1</p>\n",

		"# Header 1 #\n",
		"<h1>Header 1</h1>\n",

		"# Header 1#\n",
		"<h1>Header 1#</h1>\n",

		"#\n",
		"<h1></h1>\n",

		"Hello\n# Header 1\nGoodbye\n",
		"<p>Hello</p>\n<h1>Header 1</h1>\n<p>Goodbye</p>\n",

		"* List\n# Header\n* List\n",
		"<ul>\n<li>List</li>\n</ul>\n<h1>Header</h1>\n<ul>\n<li>List</li>\n</ul>\n",

		"   # Indented\n",
		"<h1>Indented</h1>\n",
	}
	doTestsBlock(t, tests, NoExtensions)
}

func TestPrefixAutoHeaderIDs(t *testing.T) {
	t.Parallel()
	var tests = []string{
		"# Header 1\n",
		"<h1 id=\"header-1\">Header 1</h1>\n",

		"# Header 1 with *emphasis*\n",
		"<h1 id=\"header-1-with-emphasis\">Header 1 with <em>emphasis</em></h1>\n",

		"# Header\n\n# Header\n",
		"<h1 id=\"header\">Header</h1>\n<h1 id=\"header-1\">Header</h1>\n",
	}
	doTestsBlock(t, tests, AutoHeaderIDs)
}

func TestHorizontalRule(t *testing.T) {
	t.Parallel()
	var tests = []string{
		"-\n",
		"<ul>\n<li></li>\n</ul>\n",

		"--\n",
		"<p>--</p>\n",

		"---\n",
		"<hr />\n",

		"* * *\n",
		"<hr />\n",

		"_ _ _ _\n",
		"<hr />\n",

		"-----*\n",
		"<p>-----*</p>\n",

		"Hello\n***\n",
		"<p>Hello</p>\n<hr />\n",
	}
	doTestsBlock(t, tests, NoExtensions)
}

func TestUnorderedList(t *testing.T) {
	t.Parallel()
	var tests = []string{
		"* Hello\n",
		"<ul>\n<li>Hello</li>\n</ul>\n",

		"* Yin\n* Yang\n",
		"<ul>\n<li>Yin</li>\n<li>Yang</li>\n</ul>\n",

		"+ Yin\n+ Yang\n",
		"<ul>\n<li>Yin</li>\n<li>Yang</li>\n</ul>\n",

		"* Yin\n- Yang\n",
		"<ul>\n<li>Yin</li>\n</ul>\n<ul>\n<li>Yang</li>\n</ul>\n",

		"* Ting\n\n* Bong\n",
		"<ul>\n<li>\n<p>Ting</p>\n</li>\n<li>\n<p>Bong</p>\n</li>\n</ul>\n",

		"* Hello\nthere\n",
		"<ul>\n<li>Hello\nthere</li>\n</ul>\n",

		"* Nested\n  * list\n",
		"<ul>\n<li>Nested\n<ul>\n<li>list</li>\n</ul>\n</li>\n</ul>\n",

		"Paragraph\n* No linebreak\n",
		"<p>Paragraph</p>\n<ul>\n<li>No linebreak</li>\n</ul>\n",

		"*Not a list*\n",
		"<p><em>Not a list</em></p>\n",
	}
	doTestsBlock(t, tests, NoExtensions)
}

func TestOrderedList(t *testing.T) {
	t.Parallel()
	var tests = []string{
		"1. Hello\n",
		"<ol>\n<li>Hello</li>\n</ol>\n",

		"1. Yin\n2. Yang\n",
		"<ol>\n<li>Yin</li>\n<li>Yang</li>\n</ol>\n",

		"3) Three\n4) Four\n",
		"<ol start=\"3\">\n<li>Three</li>\n<li>Four</li>\n</ol>\n",

		"1. Yin\n2) Yang\n",
		"<ol>\n<li>Yin</li>\n</ol>\n<ol start=\"2\">\n<li>Yang</li>\n</ol>\n",

		"Paragraph\n2. not a list\n",
		"<p>Paragraph\n2. not a list</p>\n",

		"1.Not a list\n",
		"<p>1.Not a list</p>\n",
	}
	doTestsBlock(t, tests, NoExtensions)
}

func TestBlockQuote(t *testing.T) {
	t.Parallel()
	var tests = []string{
		"> Hello\n> there\n",
		"<blockquote>\n<p>Hello\nthere</p>\n</blockquote>\n",

		"> Hello\nthere\n",
		"<blockquote>\n<p>Hello\nthere</p>\n</blockquote>\n",

		"> # Header\n> text\n",
		"<blockquote>\n<h1>Header</h1>\n<p>text</p>\n</blockquote>\n",

		"> one\n\n> two\n",
		"<blockquote>\n<p>one</p>\n</blockquote>\n<blockquote>\n<p>two</p>\n</blockquote>\n",

		">> nested\n",
		"<blockquote>\n<blockquote>\n<p>nested</p>\n</blockquote>\n</blockquote>\n",
	}
	doTestsBlock(t, tests, NoExtensions)
}

func TestCodeBlock(t *testing.T) {
	t.Parallel()
	var tests = []string{
		"    code\n",
		"<pre><code>code\n</code></pre>\n",

		"    code\n\n    more\n",
		"<pre><code>code\n\nmore\n</code></pre>\n",

		"    code\n\n\n",
		"<pre><code>code\n</code></pre>\n",

		"\tcode\n",
		"<pre><code>code\n</code></pre>\n",

		"    a < b & c\n",
		"<pre><code>a &lt; b &amp; c\n</code></pre>\n",

		"Paragraph\n    not code\n",
		"<p>Paragraph\nnot code</p>\n",
	}
	doTestsBlock(t, tests, NoExtensions)
}

func TestFencedCodeBlock(t *testing.T) {
	t.Parallel()
	var tests = []string{
		"``` go\nfunc foo() bool {\n\treturn true;\n}\n```\n",
		"<pre><code class=\"language-go\">func foo() bool {\n    return true;\n}\n</code></pre>\n",

		"~~~\nplain\n~~~\n",
		"<pre><code>plain\n</code></pre>\n",

		"```\nunclosed\n",
		"<pre><code>unclosed\n</code></pre>\n",

		"````\n```\n````\n",
		"<pre><code>```\n</code></pre>\n",

		"``\nnot a fence\n``\n",
		"<p><code>\nnot a fence\n</code></p>\n",

		"  ```\n  indented\n    more\n  ```\n",
		"<pre><code>indented\n  more\n</code></pre>\n",
	}
	doTestsBlock(t, tests, FencedCode)
}

func TestFencedCodeDisabled(t *testing.T) {
	t.Parallel()
	var tests = []string{
		"~~~\nplain\n~~~\n",
		"<p>~~~\nplain\n~~~</p>\n",
	}
	doTestsBlock(t, tests, NoExtensions)
}

func TestParagraph(t *testing.T) {
	t.Parallel()
	var tests = []string{
		"Hello\nthere\n\nGoodbye\n",
		"<p>Hello\nthere</p>\n<p>Goodbye</p>\n",

		"   leading spaces\n",
		"<p>leading spaces</p>\n",

		"Windows\r\nline\r\nendings\r\n",
		"<p>Windows\nline\nendings</p>\n",

		"Old Mac\rline endings\r",
		"<p>Old Mac\nline endings</p>\n",

		"no newline",
		"<p>no newline</p>\n",

		"\n\n\n",
		"",
	}
	doTestsBlock(t, tests, NoExtensions)
}

func TestSplitLines(t *testing.T) {
	t.Parallel()
	got := splitLines([]byte("a\tb\r\nc\rd\n\ne"))
	want := []string{"a   b", "c", "d", "", "e"}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if string(got[i]) != want[i] {
			t.Errorf("line %d: %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExpandTabs(t *testing.T) {
	t.Parallel()
	for input, want := range map[string]string{
		"\t":      "    ",
		"a\tb":    "a   b",
		"abcd\te": "abcd    e",
		"日\tx":    "日   x",
	} {
		var out bytes.Buffer
		expandTabs(&out, []byte(input))
		if got := out.String(); got != want {
			t.Errorf("expandTabs(%q) = %q, want %q", input, got, want)
		}
	}
}
