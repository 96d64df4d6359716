// Package gridfriday is a markdown processor with support for grid tables.
//
// Translates plain text with simple formatting rules into an AST, which can
// then be further processed to HTML or back to normalized markdown.
//
// Grid tables are drawn with '+', '-', '=' and '|':
//
//	+---------+---------+
//	| Fruit   | Price   |
//	+=========+=========+
//	| Apple   | 1.20    |
//	+---------+---------+
//
// Every cell is parsed as a small markdown document of its own, so cells may
// hold lists, code blocks and even other tables.
//
// The simplest way to invoke Gridfriday is to call one of Markdown*
// functions. A slightly more sophisticated way is to call Parse, which
// returns a syntax tree for the input document.
//
// The gridfriday command in cmd/gridfriday converts files from the command
// line, and the goldmarkgrid package plugs grid tables into goldmark.
package gridfriday
