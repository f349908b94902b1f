// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package project reconstructs a firmware project description from
// a compile-command database.
package project

import (
	"errors"

	"go.chromium.org/infra/build/fwimport/toolsupport/gccutil"
	"go.chromium.org/infra/build/fwimport/ui"
)

var (
	// ErrDatabaseNotFound is returned when the compile-command database
	// doesn't exist.
	ErrDatabaseNotFound = errors.New("compile-command database not found")

	// ErrInvalidDatabase is returned when the compile-command database
	// is not a non-empty array of entries.
	ErrInvalidDatabase = errors.New("invalid compile-command database")
)

// Description is a normalized description of a project.
//
// Paths are project root relative, or slash-separated absolute paths
// if they are out of the project root.
type Description struct {
	Name         string         `json:"name" yaml:"name"`
	RootDir      string         `json:"rootDir" yaml:"rootDir"`
	SourceFiles  []string       `json:"sourceFiles" yaml:"sourceFiles"`
	IncludePaths []string       `json:"includePaths" yaml:"includePaths"`
	Defines      []string       `json:"defines" yaml:"defines"`
	LibPaths     []string       `json:"libPaths" yaml:"libPaths"`
	Libs         []string       `json:"libs" yaml:"libs"`
	LinkerScript string         `json:"linkerScript,omitempty" yaml:"linkerScript,omitempty"`
	CompilerPath string         `json:"compilerPath,omitempty" yaml:"compilerPath,omitempty"`
	ProjectType  gccutil.Family `json:"projectType" yaml:"projectType"`
	VirtualTree  *Node          `json:"virtualTree" yaml:"virtualTree"`
}

// Options are options of Import.
type Options struct {
	// Name is the project name. Default is base name of the project root.
	Name string

	// Sink receives diagnostics. Default ui.Discard.
	Sink ui.Sink

	// ToolchainRules are evaluated before gccutil.Rules.
	ToolchainRules []gccutil.Rule

	// LinkerScriptKeyword is preferred in linker script names.
	// Default "FLASH".
	LinkerScriptKeyword string
}

func (o Options) sink() ui.Sink {
	if o.Sink == nil {
		return ui.Discard
	}
	return o.Sink
}

func (o Options) rules() []gccutil.Rule {
	if len(o.ToolchainRules) == 0 {
		return gccutil.Rules
	}
	rules := make([]gccutil.Rule, 0, len(o.ToolchainRules)+len(gccutil.Rules))
	rules = append(rules, o.ToolchainRules...)
	return append(rules, gccutil.Rules...)
}

// Uniq returns s without duplicates, keeping the first occurrences
// in order.
func Uniq[T comparable](s []T) []T {
	seen := make(map[T]bool, len(s))
	ret := make([]T, 0, len(s))
	for _, v := range s {
		if seen[v] {
			continue
		}
		seen[v] = true
		ret = append(ret, v)
	}
	return ret
}
