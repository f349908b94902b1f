// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package project

import (
	"fmt"
	"path/filepath"

	"go.chromium.org/infra/build/fwimport/build"
	"go.chromium.org/infra/build/fwimport/toolsupport/cmakeutil"
	"go.chromium.org/infra/build/fwimport/toolsupport/gccutil"
	"go.chromium.org/infra/build/fwimport/toolsupport/rsputil"
	"go.chromium.org/infra/build/fwimport/toolsupport/shutil"
	"go.chromium.org/infra/build/fwimport/ui"
)

// state is the accumulation of compile-command entries.
type state struct {
	classified   bool
	compilerPath string
	projectType  gccutil.Family
	sourceFiles  []string
	includePaths []string
	defines      []string
	libPaths     []string
	libs         []string
}

type importer struct {
	path     *build.Path
	buildDir string
	rules    []gccutil.Rule
	sink     ui.Sink
}

// Import reads the compile-command database in fname, and returns
// the project description.
// It returns ErrDatabaseNotFound or ErrInvalidDatabase for bad database.
// Problems in each entry are reported to opts.Sink and don't fail Import.
func Import(fname string, opts Options) (*Description, error) {
	sink := opts.sink()
	entries, err := LoadDatabase(fname)
	if err != nil {
		return nil, err
	}
	root, buildDir, err := FindRoot(fname)
	if err != nil {
		return nil, err
	}
	imp := &importer{
		path:     build.NewPath(root),
		buildDir: buildDir,
		rules:    opts.rules(),
		sink:     sink,
	}
	sink.Infof(ui.ChannelCompDB, "%s: %d entries, project root %s", fname, len(entries), root)

	var st state
	for i, e := range entries {
		st = imp.fold(st, i, e)
	}

	desc := &Description{
		Name:         opts.Name,
		RootDir:      root,
		SourceFiles:  Uniq(st.sourceFiles),
		IncludePaths: Uniq(st.includePaths),
		Defines:      Uniq(st.defines),
		LibPaths:     Uniq(st.libPaths),
		Libs:         Uniq(st.libs),
		CompilerPath: st.compilerPath,
		ProjectType:  st.projectType,
	}
	if desc.Name == "" {
		desc.Name = filepath.Base(root)
	}
	desc.VirtualTree = BuildTree(desc.SourceFiles)
	sink.Infof(ui.ChannelCompDB, "%d sources, %d include paths, %d defines, %d lib paths, %d libs",
		len(desc.SourceFiles), len(desc.IncludePaths), len(desc.Defines), len(desc.LibPaths), len(desc.Libs))

	desc.LinkerScript = cmakeutil.ResolveLinkerScript(cmakeutil.Layout{
		Root:     imp.path,
		BuildDir: buildDir,
		Keyword:  opts.LinkerScriptKeyword,
		Sink:     sink,
	})
	return desc, nil
}

// Args returns the effective args of the entry, with response files
// expanded.
func (e Entry) Args(sink ui.Sink) []string {
	args := e.Arguments
	if len(args) == 0 {
		args = shutil.Split(e.Command)
	}
	return rsputil.Expand(args, e.Directory, sink)
}

// fold returns st with the i-th entry e accumulated.
func (imp *importer) fold(st state, i int, e Entry) state {
	dir := e.Directory
	if dir == "" {
		dir = imp.buildDir
	} else if !filepath.IsAbs(dir) {
		dir = filepath.Join(imp.buildDir, dir)
	}
	e.Directory = dir
	args := e.Args(imp.sink)
	if len(args) == 0 {
		imp.sink.Warningf(ui.ChannelCompDB, "entry %d (%s): no arguments", i, e.File)
		return st
	}
	if !st.classified {
		st.classified = true
		st.compilerPath = args[0]
		st.projectType = gccutil.Classify(args[0], imp.rules)
		imp.sink.Infof(ui.ChannelCompDB, "compiler detected: %s (%s)", args[0], st.projectType)
	}

	params := gccutil.ExtractParams(args)
	for _, p := range params.IncludeDirs {
		st.includePaths = append(st.includePaths, imp.path.Normalize(p, dir))
	}
	st.defines = append(st.defines, params.Defines...)
	for _, p := range params.LibDirs {
		st.libPaths = append(st.libPaths, imp.path.Normalize(p, dir))
	}
	st.libs = append(st.libs, params.Libs...)
	imp.sink.Infof(ui.ChannelCompDB, "entry %d (%s): %d includes, %d defines", i, e.File, len(params.IncludeDirs), len(params.Defines))

	if e.File == "" {
		return st
	}
	src := imp.path.Normalize(e.File, dir)
	if IsSource(src) {
		st.sourceFiles = append(st.sourceFiles, src)
	}
	return st
}

// String returns a one line summary of the description.
func (d *Description) String() string {
	return fmt.Sprintf("%s (%s): %d sources, linker script %q", d.Name, d.ProjectType, len(d.SourceFiles), d.LinkerScript)
}
