package gridfriday_test

import (
	"fmt"
	"os"

	"github.com/gridfriday/gridfriday"
)

func ExampleMarkdownCommon() {
	input := []byte("+---+---+\n| A | B |\n+===+===+\n| 1 | 2 |\n+---+---+\n")
	os.Stdout.Write(gridfriday.MarkdownCommon(input))
	// Output:
	// <table>
	// <col style="width:50.00%" />
	// <col style="width:50.00%" />
	// <thead>
	// <tr>
	// <th>A</th>
	// <th>B</th>
	// </tr>
	// </thead>
	// <tbody>
	// <tr>
	// <td>1</td>
	// <td>2</td>
	// </tr>
	// </tbody>
	// </table>
}

func ExampleNormalize() {
	input := []byte("+--+--+\n|a |b |\n+==+==+\n")
	os.Stdout.Write(gridfriday.Normalize(input, gridfriday.GridTables))
	// Output:
	// +-----+-----+
	// | a   | b   |
	// +=====+=====+
}

func ExampleIsTableBorder() {
	for _, line := range []string{"+---+:--:+", "+ item", "+===+"} {
		fmt.Println(line, gridfriday.IsTableBorder([]byte(line)))
	}
	// Output:
	// +---+:--:+ true
	// + item false
	// +===+ false
}

func ExampleNode_Walk() {
	doc := gridfriday.Parse([]byte("+---+---+\n| a     |\n+---+---+\n"), gridfriday.Options{
		Extensions: gridfriday.GridTables,
	})
	doc.Walk(func(node *gridfriday.Node, entering bool) gridfriday.WalkStatus {
		if entering && node.Type == gridfriday.TableCell {
			fmt.Println("cell at column", node.Column, "spanning", node.ColSpan)
		}
		return gridfriday.GoToNext
	})
	// Output:
	// cell at column 0 spanning 2
}
