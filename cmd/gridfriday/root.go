//
// Gridfriday Markdown Processor, based upon Blackfriday Markdown Processor
// Available at http://github.com/gridfriday/gridfriday
//
// Copyright © 2011 Russ Ross <russ@russross.com>.
// Distributed under the Simplified BSD License.
// See README.md for details.
//

package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gridfriday/gridfriday"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newRootCmd() *cobra.Command {
	var configPath string
	fl := defaultConfig()
	var noGridTables bool

	cmd := &cobra.Command{
		Use:   "gridfriday [flags] [input...]",
		Short: "Render markdown with grid tables",
		Long: `gridfriday renders markdown, including '+'-bordered grid tables, to
HTML or writes it back as normalized markdown.

Inputs are files or glob patterns such as 'docs/**/*.md'; they are joined
into one document. Without inputs standard input is read.

Examples:
  gridfriday README.md
  gridfriday --page --title Notes -o notes.html 'notes/**/*.md'
  gridfriday --format markdown < table.md`,
		Version:      gridfriday.Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			fl.GridTables = !noGridTables
			mergeFlags(cmd.Flags(), &cfg, fl)
			return run(cmd, cfg, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "read defaults from a TOML or YAML file")
	f.StringVar(&fl.Format, "format", fl.Format, "output format: html or markdown")
	f.StringVarP(&fl.Output, "output", "o", "", "write output to a file instead of standard output")
	f.BoolVar(&fl.XHTML, "xhtml", fl.XHTML, "use XHTML-style tags in HTML output")
	f.BoolVar(&fl.Page, "page", false, "generate a standalone HTML page")
	f.StringVar(&fl.CSS, "css", "", "link to a CSS stylesheet (implies --page)")
	f.StringVar(&fl.Title, "title", "", "title of a standalone page")
	f.StringVar(&fl.Highlight, "highlight", "", "highlight fenced code with the named chroma style")
	f.StringSliceVar(&fl.Extensions, "extensions", fl.Extensions, "parser extensions ("+knownExtensions()+")")
	f.BoolVar(&noGridTables, "no-grid-tables", false, "do not parse grid tables")
	f.StringVar(&fl.LogLevel, "log-level", fl.LogLevel, "log level: debug, info, warn or error")
	f.StringVar(&fl.LogFormat, "log-format", fl.LogFormat, "log format: text or json")

	cmd.SetErrPrefix("gridfriday:")
	return cmd
}

// mergeFlags copies the flags set on the command line into cfg.
func mergeFlags(flags *pflag.FlagSet, cfg *config, fl config) {
	set := map[string]func(){
		"format":         func() { cfg.Format = fl.Format },
		"output":         func() { cfg.Output = fl.Output },
		"xhtml":          func() { cfg.XHTML = fl.XHTML },
		"page":           func() { cfg.Page = fl.Page },
		"css":            func() { cfg.CSS = fl.CSS },
		"title":          func() { cfg.Title = fl.Title },
		"highlight":      func() { cfg.Highlight = fl.Highlight },
		"extensions":     func() { cfg.Extensions = fl.Extensions },
		"no-grid-tables": func() { cfg.GridTables = fl.GridTables },
		"log-level":      func() { cfg.LogLevel = fl.LogLevel },
		"log-format":     func() { cfg.LogFormat = fl.LogFormat },
	}
	flags.Visit(func(f *pflag.Flag) {
		if apply, ok := set[f.Name]; ok {
			apply()
		}
	})
}

func run(cmd *cobra.Command, cfg config, args []string) error {
	logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	extensions, err := cfg.extensions()
	if err != nil {
		return err
	}
	renderer, err := cfg.renderer()
	if err != nil {
		return err
	}

	input, err := readInputs(cmd.InOrStdin(), args, logger)
	if err != nil {
		return err
	}
	output := gridfriday.MarkdownOptions(input, renderer, gridfriday.Options{
		Extensions: extensions,
		Logger:     logger,
	})
	logger.Debug("rendered", "format", cfg.Format, "in", len(input), "out", len(output))

	if cfg.Output == "" {
		if _, err := cmd.OutOrStdout().Write(output); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(cfg.Output, output, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// readInputs expands the patterns and joins the files they name, separated
// by a blank line. No patterns means stdin.
func readInputs(stdin io.Reader, patterns []string, logger *slog.Logger) ([]byte, error) {
	if len(patterns) == 0 {
		input, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading standard input: %w", err)
		}
		return input, nil
	}

	var buf bytes.Buffer
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%s: no such file", pattern)
		}
		for _, name := range matches {
			data, err := os.ReadFile(name)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", name, err)
			}
			logger.Debug("input", "file", name, "bytes", len(data))
			if buf.Len() > 0 {
				buf.WriteString("\n\n")
			}
			buf.Write(data)
		}
	}
	return buf.Bytes(), nil
}
