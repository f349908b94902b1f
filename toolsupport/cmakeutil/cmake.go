// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package cmakeutil provides utilities for CMake generated build directories.
package cmakeutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.chromium.org/infra/build/fwimport/build"
	"go.chromium.org/infra/build/fwimport/ui"
)

const (
	// DescriptorName is the top-level build descriptor file name.
	DescriptorName = "CMakeLists.txt"
	// MetadataDir is the generator metadata directory in a build directory.
	MetadataDir = "CMakeFiles"
	// LinkTranscriptName is the link command file in a target metadata directory.
	LinkTranscriptName = "link.txt"
)

// HasBuildDescriptor reports whether dir contains a build descriptor.
func HasBuildDescriptor(dir string) bool {
	fi, err := os.Stat(filepath.Join(dir, DescriptorName))
	return err == nil && fi.Mode().IsRegular()
}

// Layout is a project layout used to resolve a linker script.
type Layout struct {
	// Root is the project root.
	Root *build.Path
	// BuildDir is the absolute build directory.
	BuildDir string
	// Keyword is preferred in linker script names when more than one
	// candidate is found in the project root. Default "FLASH".
	Keyword string
	// Sink receives diagnostics. Default ui.Discard.
	Sink ui.Sink
}

func (l Layout) keyword() string {
	if l.Keyword == "" {
		return "FLASH"
	}
	return l.Keyword
}

func (l Layout) sink() ui.Sink {
	if l.Sink == nil {
		return ui.Discard
	}
	return l.Sink
}

// isFile reports whether fname is an existing regular file.
func isFile(fname string) bool {
	fi, err := os.Stat(fname)
	return err == nil && fi.Mode().IsRegular()
}

func readFile(l Layout, fname string) ([]byte, bool) {
	buf, err := os.ReadFile(fname)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false
	}
	if err != nil {
		l.sink().Warningf(ui.ChannelLDScript, "failed to read %s: %v", fname, err)
		return nil, false
	}
	return buf, true
}
