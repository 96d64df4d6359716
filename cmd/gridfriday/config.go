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
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gridfriday/gridfriday"
	"gopkg.in/yaml.v3"
)

// config holds everything a run needs. A config file fills it first and
// flags that were set on the command line override it.
type config struct {
	Format     string   `toml:"format" yaml:"format"`
	Output     string   `toml:"output" yaml:"output"`
	XHTML      bool     `toml:"xhtml" yaml:"xhtml"`
	Page       bool     `toml:"page" yaml:"page"`
	CSS        string   `toml:"css" yaml:"css"`
	Title      string   `toml:"title" yaml:"title"`
	Highlight  string   `toml:"highlight" yaml:"highlight"`
	Extensions []string `toml:"extensions" yaml:"extensions"`
	GridTables bool     `toml:"grid-tables" yaml:"grid-tables"`
	LogLevel   string   `toml:"log-level" yaml:"log-level"`
	LogFormat  string   `toml:"log-format" yaml:"log-format"`
}

func defaultConfig() config {
	return config{
		Format:     "html",
		XHTML:      true,
		Extensions: []string{"common"},
		GridTables: true,
		LogLevel:   "warn",
		LogFormat:  "text",
	}
}

// loadConfig reads path over the defaults. The file format follows the
// extension: .toml, or .yaml and .yml.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("config %s: unknown format %q", path, filepath.Ext(path))
	}
	return cfg, nil
}

var extensionNames = map[string]gridfriday.Extensions{
	"common":            gridfriday.CommonExtensions,
	"no-intra-emphasis": gridfriday.NoIntraEmphasis,
	"grid-tables":       gridfriday.GridTables,
	"fenced-code":       gridfriday.FencedCode,
	"autolink":          gridfriday.Autolink,
	"strikethrough":     gridfriday.Strikethrough,
	"auto-header-ids":   gridfriday.AutoHeaderIDs,
}

func knownExtensions() string {
	return strings.Join(slices.Sorted(maps.Keys(extensionNames)), ", ")
}

// extensions turns the configured names into parser extensions.
func (c config) extensions() (gridfriday.Extensions, error) {
	var ext gridfriday.Extensions
	for _, name := range c.Extensions {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || name == "none" {
			continue
		}
		e, ok := extensionNames[name]
		if !ok {
			return 0, fmt.Errorf("unknown extension %q (known: %s)", name, knownExtensions())
		}
		ext |= e
	}
	if c.GridTables {
		ext |= gridfriday.GridTables
	} else {
		ext &^= gridfriday.GridTables
	}
	return ext, nil
}

// renderer builds the renderer for the configured output format.
func (c config) renderer() (gridfriday.Renderer, error) {
	switch strings.ToLower(c.Format) {
	case "html", "":
		var flags gridfriday.HTMLFlags
		if c.XHTML {
			flags |= gridfriday.UseXHTML
		}
		if c.Page || c.CSS != "" {
			flags |= gridfriday.CompletePage
		}
		if c.Highlight != "" {
			flags |= gridfriday.HighlightCode
		}
		return gridfriday.HTMLRenderer(flags, gridfriday.HTMLRendererParameters{
			Title:          c.Title,
			CSS:            c.CSS,
			HighlightStyle: c.Highlight,
		}), nil
	case "markdown", "md":
		return gridfriday.NormalizeRenderer(), nil
	}
	return nil, fmt.Errorf("unknown output format %q", c.Format)
}
