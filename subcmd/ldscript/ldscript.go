// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package ldscript is ldscript subcommand to resolve the linker script of a project.
package ldscript

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"

	"go.chromium.org/infra/build/fwimport/build"
	"go.chromium.org/infra/build/fwimport/project"
	"go.chromium.org/infra/build/fwimport/toolsupport/cmakeutil"
	"go.chromium.org/infra/build/fwimport/ui"
)

const usage = `resolve the linker script of a project

 $ fwimport ldscript [-keyword FLASH] [<compile_commands.json>]

tries link.txt in CMakeFiles/*.dir of the build directory,
*.ld/*.lds in the project root, then -T in CMakeLists.txt,
and prints the project root relative linker script.
`

// Cmd returns the Command for the `ldscript` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "ldscript [<compile_commands.json>]",
		ShortDesc: "resolve the linker script of a project",
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

	keyword string
}

func (c *run) init() {
	c.Flags.StringVar(&c.keyword, "keyword", "FLASH", "preferred keyword in linker script names")
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
	fname := project.DatabaseName
	switch len(args) {
	case 0:
	case 1:
		fname = args[0]
	default:
		return fmt.Errorf("too many args: %w", flag.ErrHelp)
	}
	root, buildDir, err := project.FindRoot(fname)
	if err != nil {
		return err
	}
	script := cmakeutil.ResolveLinkerScript(cmakeutil.Layout{
		Root:     build.NewPath(root),
		BuildDir: buildDir,
		Keyword:  c.keyword,
		Sink:     ui.NewLogUI(nil),
	})
	if script == "" {
		return fmt.Errorf("no linker script found in %s", root)
	}
	fmt.Fprintln(w, script)
	return nil
}
