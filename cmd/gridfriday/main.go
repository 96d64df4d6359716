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
// Front-end for command-line use
//
//

package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
