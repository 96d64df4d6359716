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
	"context"
	"log/slog"
)

// debug reports a block structure decision together with the line that
// caused it and the depth of cell nesting.
func (p *Parser) debug(msg string, args ...any) {
	if !p.log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	attrs := append([]any{"line", p.lineNumber, "depth", p.nesting}, args...)
	p.log.Debug(msg, attrs...)
}
