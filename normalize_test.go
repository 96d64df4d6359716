//
// Gridfriday Markdown Processor, based upon Blackfriday Markdown Processor
// Available at http://github.com/gridfriday/gridfriday
//
// Copyright © 2011 Russ Ross <russ@russross.com>.
// Distributed under the Simplified BSD License.
// See README.md for details.
//

//
// Unit tests for the markdown renderer
//

package gridfriday

import (
	"bytes"
	"testing"
)

func TestNormalizeBlocks(t *testing.T) {
	t.Parallel()
	var tests = []string{
		"Hello\nthere\n\nGoodbye\n",
		"Hello\nthere\n\nGoodbye\n",

		"#   Title   #\n",
		"# Title\n",

		"Title\n***\n",
		"Title\n\n---\n",

		"* a\n* b\n",
		"* a\n* b\n",

		"- a\n\n- b\n",
		"- a\n\n- b\n",

		"1) one\n2) two\n",
		"1) one\n2) two\n",

		"3. three\n",
		"3. three\n",

		"* a\n  * b\n",
		"* a\n  * b\n",

		"-\n",
		"-\n",

		"> quote\n> more\n",
		"> quote\n> more\n",

		"> a\n>\n> b\n",
		"> a\n>\n> b\n",

		"    code\n",
		"    code\n",

		"```go\nx := 1\n```\n",
		"```go\nx := 1\n```\n",
	}
	doTestsNormalize(t, tests, CommonExtensions)
}

func TestNormalizeInlines(t *testing.T) {
	t.Parallel()
	var tests = []string{
		"*em* **strong** ~~del~~ `code`\n",
		"*em* **strong** ~~del~~ `code`\n",

		"a  \nb\n",
		"a\\\nb\n",

		"``a ` b``\n",
		"``a ` b``\n",

		"[text](http://example.com \"T\")\n",
		"[text](http://example.com \"T\")\n",

		"<http://example.com>\n",
		"<http://example.com>\n",
	}
	doTestsNormalize(t, tests, CommonExtensions)
}

func TestNormalizeEscapes(t *testing.T) {
	t.Parallel()
	var tests = []string{
		"\\# not a header\n",
		"\\# not a header\n",

		"1\\. not a list\n",
		"1\\. not a list\n",

		"\\+ not a list\n",
		"\\+ not a list\n",

		"a \\* b\n",
		"a \\* b\n",

		"a_b\n",
		"a\\_b\n",

		"x | y\n",
		"x \\| y\n",

		"one\n\\- two\n",
		"one\n\\- two\n",
	}
	doTestsNormalize(t, tests, CommonExtensions)
}

func TestNormalizeGridTable(t *testing.T) {
	t.Parallel()
	var tests = []string{
		"+---+---+\n" +
			"| A | B |\n" +
			"+===+===+\n" +
			"| 1 | 2 |\n" +
			"+---+---+\n",
		"+-----+-----+\n" +
			"| A   | B   |\n" +
			"+=====+=====+\n" +
			"| 1   | 2   |\n" +
			"+-----+-----+\n",

		"+:---+---:+\n" +
			"| a  | b  |\n" +
			"+----+----+\n",
		"+:----+----:+\n" +
			"| a   | b   |\n" +
			"+-----+-----+\n",

		"+---+---+\n" +
			"| wide  |\n" +
			"+---+---+\n" +
			"| a | b |\n" +
			"+---+---+\n",
		"+-----+-----+\n" +
			"| wide      |\n" +
			"+-----+-----+\n" +
			"| a   | b   |\n" +
			"+-----+-----+\n",

		"+-------+\n" +
			"| a     |\n" +
			"|       |\n" +
			"| b     |\n" +
			"+-------+\n",
		"+-----+\n" +
			"| a   |\n" +
			"|     |\n" +
			"| b   |\n" +
			"+-----+\n",

		"+---+---+\n" +
			"| a |   |\n" +
			"+---+---+\n",
		"+-----+-----+\n" +
			"| a   |     |\n" +
			"+-----+-----+\n",

		"+----------+\n" +
			"| 日本語   |\n" +
			"+----------+\n",
		"+--------+\n" +
			"| 日本語 |\n" +
			"+--------+\n",
	}
	doTestsNormalize(t, tests, GridTables)
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"# Title\n\nSome *text* with `code`.\n\n* one\n* two\n",
		"> quoted\n>\n> - item\n",
		"+---+---+\n| A | B |\n+===+===+\n| 1 | 2 |\n+---+---+\n",
		"+---+---+\n| * x   |\n| * y   |\n+---+---+\n| a | b |\n+---+---+\n",
		"Text with \\* stars \\_ and | bars\n",
	}
	for _, input := range inputs {
		once := Normalize([]byte(input), CommonExtensions)
		twice := Normalize(once, CommonExtensions)
		if !bytes.Equal(once, twice) {
			t.Errorf("input %q not stable:\n%s", input, unifiedDiff(string(once), string(twice)))
		}
	}
}

func TestNormalizeKeepsHTML(t *testing.T) {
	t.Parallel()
	input := "+-----+-----+\n| A   | B   |\n+=====+=====+\n| *x* | 2   |\n+-----+-----+\n\n" +
		"+---+---+\n| wide  |\n+---+---+\n| a | b |\n+---+---+\n"
	before := MarkdownCommon([]byte(input))
	after := MarkdownCommon(Normalize([]byte(input), CommonExtensions))
	if !bytes.Equal(before, after) {
		t.Errorf("normalizing changed the HTML:\n%s", unifiedDiff(string(before), string(after)))
	}
}
