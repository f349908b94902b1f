// Copyright 2023 The Chromium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"
	"go.chromium.org/luci/common/system/signals"

	"go.chromium.org/infra/build/fwimport/subcmd/importcmd"
	"go.chromium.org/infra/build/fwimport/subcmd/ldscript"
	"go.chromium.org/infra/build/fwimport/subcmd/tokenize"
	"go.chromium.org/infra/build/fwimport/subcmd/version"
)

const versionStr = "fwimport v0.1.0"

// fwimport imports firmware projects from compile-command databases.

func main() {
	os.Exit(fwimportMain(os.Args[1:]))
}

func getApplication(ctx context.Context) *cli.Application {
	return &cli.Application{
		Name:  "fwimport",
		Title: "firmware project importer for compile-command databases",
		Context: func(context.Context) context.Context {
			return ctx
		},
		Commands: []*subcommands.Command{
			importcmd.Cmd(),
			ldscript.Cmd(),
			tokenize.Cmd(),
			version.Cmd(versionStr),
			subcommands.CmdHelp,
		},
	}
}

func fwimportMain(args []string) int {
	fs := flag.NewFlagSet("fwimport", flag.ContinueOnError)
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage of fwimport:\n")
		fmt.Fprintf(out, "global flags:\n")
		fs.PrintDefaults()
	}
	logLevel := fs.String("log_level", "info", "log level. debug, info, warn or error")
	err := fs.Parse(args)
	if err != nil {
		return 2
	}
	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fs.Usage()
		return 2
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	ctx, cancel := context.WithCancel(context.Background())
	defer signals.HandleInterrupt(cancel)()

	// Print build information to the log.
	buildinfo, ok := debug.ReadBuildInfo()
	if ok {
		log.Debugf("main module: %s %s", moduleInfo(&buildinfo.Main), vcsInfo(buildinfo))
	}

	return subcommands.Run(getApplication(ctx), fs.Args())
}

func moduleInfo(m *debug.Module) string {
	if m == nil {
		return "<nil>"
	}
	return fmt.Sprintf("path:%s version:%s sum:%s replace:%s", m.Path, m.Version, m.Sum, moduleInfo(m.Replace))
}

func vcsInfo(buildinfo *debug.BuildInfo) string {
	m := make(map[string]string)
	for _, bs := range buildinfo.Settings {
		if strings.HasPrefix(bs.Key, "vcs.") {
			m[bs.Key] = bs.Value
		}
	}
	return fmt.Sprintf("vcs[revision=%s time=%s modified=%s]", m["vcs.revision"], m["vcs.time"], m["vcs.modified"])
}
