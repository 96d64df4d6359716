//
// Gridfriday Markdown Processor, based upon Blackfriday Markdown Processor
// Available at http://github.com/gridfriday/gridfriday
//
// Copyright © 2011 Russ Ross <russ@russross.com>.
// Distributed under the Simplified BSD License.
// See README.md for details.
//

//
// Helper functions for unit testing
//

package gridfriday

import (
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

type TestParams struct {
	Options
	HTMLFlags
	HTMLRendererParameters
}

func runMarkdownBlock(input string, params TestParams) string {
	renderer := HTMLRenderer(params.HTMLFlags|UseXHTML, params.HTMLRendererParameters)
	return string(MarkdownOptions([]byte(input), renderer, params.Options))
}

func runMarkdownInline(input string, params TestParams) string {
	params.Options.Extensions |= Autolink | Strikethrough
	return runMarkdownBlock(input, params)
}

func runNormalize(input string, params TestParams) string {
	return string(MarkdownOptions([]byte(input), NormalizeRenderer(), params.Options))
}

func doTestsBlock(t *testing.T, tests []string, extensions Extensions) {
	t.Helper()
	doTestsBlockWithRunner(t, tests, TestParams{
		Options: Options{Extensions: extensions},
	}, runMarkdownBlock)
}

func doTestsInline(t *testing.T, tests []string) {
	t.Helper()
	doTestsBlockWithRunner(t, tests, TestParams{}, runMarkdownInline)
}

func doTestsNormalize(t *testing.T, tests []string, extensions Extensions) {
	t.Helper()
	doTestsBlockWithRunner(t, tests, TestParams{
		Options: Options{Extensions: extensions},
	}, runNormalize)
}

func doTestsBlockWithRunner(t *testing.T, tests []string, params TestParams, runner func(string, TestParams) string) {
	t.Helper()
	// catch and report panics
	var candidate string
	defer func() {
		if err := recover(); err != nil {
			t.Errorf("\npanic while processing [%#v]: %s\n", candidate, err)
		}
	}()

	for i := 0; i+1 < len(tests); i += 2 {
		input := tests[i]
		candidate = input
		expected := tests[i+1]
		actual := runner(candidate, params)
		if actual != expected {
			t.Errorf("\nInput   [%#v]\n%s", candidate, unifiedDiff(expected, actual))
		}

		// now test every substring to stress test bounds checking
		if !testing.Short() {
			for start := 0; start < len(input); start++ {
				for end := start + 1; end <= len(input); end++ {
					candidate = input[start:end]
					runner(candidate, params)
				}
			}
		}
	}
}

func unifiedDiff(expected, actual string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "Expected",
		ToFile:   "Actual",
		Context:  3,
	})
	if err != nil || strings.TrimSpace(diff) == "" {
		return "Expected[" + expected + "]\nActual  [" + actual + "]"
	}
	return diff
}
