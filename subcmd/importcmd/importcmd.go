// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package importcmd provides import subcommand.
package importcmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"go.chromium.org/infra/build/fwimport/project"
	"go.chromium.org/infra/build/fwimport/ui"
)

const usage = `import firmware projects from compile-command databases

 $ fwimport import [-format json|yaml|text] [-o <file>] [<compile_commands.json>...]

reads each compile-command database, and prints the project
description: source files, include paths, defines, libraries,
toolchain family, linker script and the virtual source tree.

project root is the parent of the database's directory if it has
CMakeLists.txt, or the database's directory.
If the project root has .fwimport.toml, it is used as config
unless -config is given.
`

// Cmd returns the Command for the `import` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "import [<compile_commands.json>...]",
		ShortDesc: "import projects from compile-command databases",
		LongDesc:  usage,
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.init()
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase

	format     string
	output     string
	configFile string
	name       string
	keyword    string
	jobs       int
}

func (c *run) init() {
	c.Flags.StringVar(&c.format, "format", "json", "output format. json, yaml or text")
	c.Flags.StringVar(&c.output, "o", "", "output file. default stdout")
	c.Flags.StringVar(&c.configFile, "config", "", "config file. default <project root>/"+project.ConfigName)
	c.Flags.StringVar(&c.name, "name", "", "project name. overrides config")
	c.Flags.StringVar(&c.keyword, "linker_script_keyword", "", "preferred keyword in linker script names. overrides config")
	c.Flags.IntVar(&c.jobs, "j", runtime.NumCPU(), "number of databases imported in parallel")
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, args)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fmt.Fprintf(os.Stderr, "%v\n%s\n", err, usage)
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func (c *run) run(ctx context.Context, args []string) error {
	switch c.format {
	case "json", "yaml", "text":
	default:
		return fmt.Errorf("unknown format %q: %w", c.format, flag.ErrHelp)
	}
	if len(args) == 0 {
		args = []string{project.DatabaseName}
	}
	if len(args) > 1 && c.name != "" {
		return fmt.Errorf("-name with %d databases: %w", len(args), flag.ErrHelp)
	}
	logger := log.Default().With("run", uuid.New().String()[:8])

	descs := make([]*project.Description, len(args))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(c.jobs, 1))
	for i, fname := range args {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			opts, err := c.options(fname)
			if err != nil {
				return err
			}
			opts.Sink = ui.NewLogUI(logger.With("db", fname))
			desc, err := project.Import(fname, opts)
			if err != nil {
				return err
			}
			logger.Infof("imported %s", desc)
			descs[i] = desc
			return nil
		})
	}
	err := eg.Wait()
	if err != nil {
		return err
	}

	if c.output == "" {
		return c.write(os.Stdout, descs)
	}
	f, err := os.Create(c.output)
	if err != nil {
		return err
	}
	err = c.write(f, descs)
	cerr := f.Close()
	if err != nil {
		return err
	}
	return cerr
}

// options returns import options for the database fname from
// config and flags.
func (c *run) options(fname string) (project.Options, error) {
	var cfg project.Config
	var err error
	if c.configFile != "" {
		cfg, err = project.LoadConfig(c.configFile)
	} else {
		var root string
		root, _, err = project.FindRoot(fname)
		if err == nil {
			cfg, err = project.LoadRootConfig(root)
		}
	}
	if err != nil {
		return project.Options{}, err
	}
	opts := cfg.Options(nil)
	if c.name != "" {
		opts.Name = c.name
	}
	if c.keyword != "" {
		opts.LinkerScriptKeyword = c.keyword
	}
	return opts, nil
}

func (c *run) write(w io.Writer, descs []*project.Description) error {
	var v any = descs
	if len(descs) == 1 {
		v = descs[0]
	}
	switch c.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err := enc.Encode(v)
		if err != nil {
			return err
		}
		return enc.Close()
	}
	for _, d := range descs {
		err := writeText(w, d, ui.IsTerminal() && c.output == "")
		if err != nil {
			return err
		}
	}
	return nil
}
