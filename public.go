//
// Gridfriday Markdown Processor, based upon Blackfriday Markdown Processor
// Available at http://github.com/gridfriday/gridfriday
//
// Copyright © 2011 Russ Ross <russ@russross.com>.
// Distributed under the Simplified BSD License.
// See README.md for details.
//

//
// Public interface
//

package gridfriday

// Markdown is the main rendering function.
// It parses and renders a block of markdown-encoded text.
// The renderer is used to format the output, and extensions dictates which
// non-standard extensions are enabled.
//
// To use the supplied HTML renderer, use HTMLRenderer; NormalizeRenderer
// writes markdown back out.
func Markdown(input []byte, renderer Renderer, extensions Extensions) []byte {
	return MarkdownOptions(input, renderer, Options{Extensions: extensions})
}

// MarkdownOptions is just like Markdown but takes additional options through
// the Options struct.
func MarkdownOptions(input []byte, renderer Renderer, opts Options) []byte {
	// no point in parsing if we can't render
	if renderer == nil {
		return nil
	}
	return renderer.Render(Parse(input, opts))
}

// MarkdownBasic is a convenience function for simple rendering.
// It processes markdown input with no extensions enabled.
func MarkdownBasic(input []byte) []byte {
	renderer := HTMLRenderer(UseXHTML, HTMLRendererParameters{})
	return Markdown(input, renderer, NoExtensions)
}

// MarkdownCommon is a convenience function for simple rendering.
// It processes markdown input with common extensions enabled, including:
//
// * Intra-word emphasis suppression
//
// * Grid tables
//
// * Fenced code blocks
//
// * Autolinking
//
// * Strikethrough support
//
// * Header IDs generated from the header text
func MarkdownCommon(input []byte) []byte {
	renderer := HTMLRenderer(CommonHTMLFlags, HTMLRendererParameters{})
	return Markdown(input, renderer, CommonExtensions)
}

// Normalize parses input with the given extensions and writes it back as
// canonical markdown.
func Normalize(input []byte, extensions Extensions) []byte {
	return Markdown(input, NormalizeRenderer(), extensions)
}
