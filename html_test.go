//
// Gridfriday Markdown Processor, based upon Blackfriday Markdown Processor
// Available at http://github.com/gridfriday/gridfriday
//
// Copyright © 2011 Russ Ross <russ@russross.com>.
// Distributed under the Simplified BSD License.
// See README.md for details.
//

//
// Unit tests for html rendering
//

package gridfriday

import (
	"strings"
	"testing"
)

func renderHTML(input string, extensions Extensions, flags HTMLFlags, params HTMLRendererParameters) string {
	return string(Markdown([]byte(input), HTMLRenderer(flags, params), extensions))
}

func TestLinkFlags(t *testing.T) {
	t.Parallel()
	var tests = []string{
		"[a](http://example.com)\n",
		"<p><a href=\"http://example.com\" target=\"_blank\" rel=\"nofollow noreferrer\">a</a></p>\n",

		"[a](/local)\n",
		"<p><a href=\"/local\">a</a></p>\n",

		"[a](#anchor)\n",
		"<p><a href=\"#anchor\">a</a></p>\n",

		"[a](//example.com)\n",
		"<p><a href=\"//example.com\" target=\"_blank\" rel=\"nofollow noreferrer\">a</a></p>\n",
	}
	doTestsBlockWithRunner(t, tests, TestParams{
		HTMLFlags: NofollowLinks | NoreferrerLinks | HrefTargetBlank,
	}, runMarkdownBlock)
}

func TestHeaderIDAffixes(t *testing.T) {
	t.Parallel()
	var tests = []string{
		"# Title\n",
		"<h1 id=\"pre-title-post\">Title</h1>\n",
	}
	doTestsBlockWithRunner(t, tests, TestParams{
		Options: Options{Extensions: AutoHeaderIDs},
		HTMLRendererParameters: HTMLRendererParameters{
			HeaderIDPrefix: "pre-",
			HeaderIDSuffix: "-post",
		},
	}, runMarkdownBlock)
}

func TestHTMLWithoutXHTML(t *testing.T) {
	t.Parallel()
	got := renderHTML("a  \nb\n\n---\n\n+---+\n| c |\n+---+\n", GridTables, HTMLFlagsNone, HTMLRendererParameters{})
	want := "<p>a<br>\nb</p>\n" +
		"<hr>\n" +
		"<table>\n" +
		"<col style=\"width:100.00%\">\n" +
		"<tbody>\n" +
		"<tr>\n" +
		"<td>c</td>\n" +
		"</tr>\n" +
		"</tbody>\n" +
		"</table>\n"
	if got != want {
		t.Errorf("\n%s", unifiedDiff(want, got))
	}
}

func TestCompletePage(t *testing.T) {
	t.Parallel()
	got := renderHTML("text\n", NoExtensions, CompletePage|UseXHTML, HTMLRendererParameters{
		Title: "A & B",
		CSS:   "style.css",
	})
	for _, want := range []string{
		"<html xmlns=\"http://www.w3.org/1999/xhtml\">\n",
		"  <title>A &amp; B</title>\n",
		"  <meta charset=\"utf-8\" />\n",
		"  <link rel=\"stylesheet\" type=\"text/css\" href=\"style.css\" />\n",
		"<body>\n\n<p>text</p>\n\n</body>\n</html>\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("page lacks %q:\n%s", want, got)
		}
	}

	got = renderHTML("text\n", NoExtensions, CompletePage, HTMLRendererParameters{})
	if !strings.HasPrefix(got, "<!DOCTYPE html>\n<html>\n") {
		t.Errorf("unexpected HTML5 page start:\n%s", got)
	}
}

func TestHighlightCode(t *testing.T) {
	t.Parallel()
	flags := UseXHTML | HighlightCode

	got := renderHTML("```go\nx := 1\n```\n", FencedCode, flags, HTMLRendererParameters{})
	if !strings.Contains(got, "class=\"chroma\"") || strings.Contains(got, "language-go") {
		t.Errorf("go code not highlighted:\n%s", got)
	}

	got = renderHTML("```nosuchlanguage\nx := 1\n```\n", FencedCode, flags, HTMLRendererParameters{})
	if want := "<pre><code class=\"language-nosuchlanguage\">x := 1\n</code></pre>\n"; got != want {
		t.Errorf("unknown language:\n%s", unifiedDiff(want, got))
	}

	got = renderHTML("    x := 1\n", FencedCode, flags, HTMLRendererParameters{})
	if want := "<pre><code>x := 1\n</code></pre>\n"; got != want {
		t.Errorf("indented code:\n%s", unifiedDiff(want, got))
	}

	got = renderHTML("```go\nx := 1\n```\n", FencedCode, flags|CompletePage, HTMLRendererParameters{HighlightStyle: "monokai"})
	if !strings.Contains(got, "<style>") || !strings.Contains(got, ".chroma") {
		t.Errorf("page lacks highlight styles:\n%s", got)
	}
}

func TestRendererReuse(t *testing.T) {
	t.Parallel()
	r := HTMLRenderer(UseXHTML, HTMLRendererParameters{})
	doc := Parse([]byte("# Same\n"), Options{Extensions: AutoHeaderIDs})
	first := string(r.Render(doc))
	second := string(r.Render(doc))
	if first != second {
		t.Errorf("second render differs:\n%s", unifiedDiff(first, second))
	}
}

func TestIsRelativeLink(t *testing.T) {
	t.Parallel()
	for link, want := range map[string]bool{
		"":                   true,
		"#top":               true,
		"/":                  true,
		"/docs":              true,
		"./a":                true,
		"../a":               true,
		"//example.com":      false,
		"http://example.com": false,
		"docs":               false,
	} {
		if got := isRelativeLink([]byte(link)); got != want {
			t.Errorf("isRelativeLink(%q) = %v, want %v", link, got, want)
		}
	}
}

func TestEnsureUniqueHeaderID(t *testing.T) {
	t.Parallel()
	r := HTMLRenderer(HTMLFlagsNone, HTMLRendererParameters{})
	var got []string
	for _, id := range []string{"intro", "intro", "intro-1", "intro"} {
		got = append(got, r.ensureUniqueHeaderID(id))
	}
	want := "intro intro-1 intro-1-1 intro-2"
	if strings.Join(got, " ") != want {
		t.Errorf("ids %v, want %s", got, want)
	}
}
