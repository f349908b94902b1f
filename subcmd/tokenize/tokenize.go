// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package tokenize is tokenize subcommand for debugging command line parsing.
package tokenize

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"

	"go.chromium.org/infra/build/fwimport/toolsupport/gccutil"
	"go.chromium.org/infra/build/fwimport/toolsupport/rsputil"
	"go.chromium.org/infra/build/fwimport/toolsupport/shutil"
	"go.chromium.org/infra/build/fwimport/ui"
)

const usage = `tokenize a compile command

 $ fwimport tokenize [-C <dir>] '<command line>'
 $ fwimport tokenize [-C <dir>] -- <arg>...

prints tokens of the command line, with @rsp files expanded
relative to -C, then the toolchain family and extracted flags.
You can copy-and-paste "command" of a compile_commands.json entry.
Multiple args are taken as already split by the shell.
`

// Cmd returns the Command for the `tokenize` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "tokenize [-C <dir>] <command line>",
		ShortDesc: "tokenize a compile command",
		LongDesc:  usage,
		Advanced:  true,
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.init()
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase

	dir string
}

func (c *run) init() {
	c.Flags.StringVar(&c.dir, "C", ".", "working directory of the command, to find @rsp files")
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, os.Stdout, args)
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

func (c *run) run(ctx context.Context, w io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command line: %w", flag.ErrHelp)
	}
	line := args[0]
	if len(args) > 1 {
		line = shutil.Join(args)
	}
	tokens := shutil.Split(line)
	tokens = rsputil.Expand(tokens, c.dir, ui.NewLogUI(nil))
	if len(tokens) == 0 {
		return errors.New("no tokens")
	}
	for i, t := range tokens {
		fmt.Fprintf(w, "%d\t%s\n", i, t)
	}
	fmt.Fprintf(w, "toolchain: %s\n", gccutil.Classify(tokens[0], gccutil.Rules))
	params := gccutil.ExtractParams(tokens)
	for _, s := range []struct {
		name   string
		values []string
	}{
		{"include", params.IncludeDirs},
		{"define", params.Defines},
		{"libdir", params.LibDirs},
		{"lib", params.Libs},
	} {
		for _, v := range s.values {
			fmt.Fprintf(w, "%s: %s\n", s.name, v)
		}
	}
	return nil
}
