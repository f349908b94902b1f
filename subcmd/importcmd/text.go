// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package importcmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.chromium.org/infra/build/fwimport/project"
	"go.chromium.org/infra/build/fwimport/ui"
)

// writeText writes d in human readable text.
func writeText(w io.Writer, d *project.Description, color bool) error {
	bw := bufio.NewWriter(w)
	header := func(s string) string {
		if color {
			return ui.SGR(ui.Bold, s)
		}
		return s
	}
	fmt.Fprintf(bw, "%s %s\n", header("project:"), d.Name)
	fmt.Fprintf(bw, "%s %s\n", header("root:"), d.RootDir)
	fmt.Fprintf(bw, "%s %s\n", header("type:"), d.ProjectType)
	fmt.Fprintf(bw, "%s %s\n", header("compiler:"), d.CompilerPath)
	script := d.LinkerScript
	if script == "" {
		script = "<none>"
	}
	fmt.Fprintf(bw, "%s %s\n", header("linker script:"), script)
	for _, s := range []struct {
		name   string
		values []string
	}{
		{"include paths", d.IncludePaths},
		{"defines", d.Defines},
		{"lib paths", d.LibPaths},
		{"libs", d.Libs},
	} {
		fmt.Fprintf(bw, "%s\n", header(fmt.Sprintf("%s (%d):", s.name, len(s.values))))
		for _, v := range s.values {
			fmt.Fprintf(bw, "  %s\n", v)
		}
	}
	fmt.Fprintf(bw, "%s\n", header(fmt.Sprintf("sources (%d):", len(d.SourceFiles))))
	if d.VirtualTree != nil {
		writeNode(bw, d.VirtualTree, 1)
	}
	return bw.Flush()
}

func writeNode(w io.Writer, n *project.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, c := range n.Folders {
		fmt.Fprintf(w, "%s%s/\n", indent, c.Name)
		writeNode(w, c, depth+1)
	}
	for _, f := range n.Files {
		name := f.Path
		if i := strings.LastIndexByte(name, '/'); i >= 0 {
			name = name[i+1:]
		}
		fmt.Fprintf(w, "%s%s\n", indent, name)
	}
}
