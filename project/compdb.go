// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.chromium.org/infra/build/fwimport/toolsupport/cmakeutil"
)

// DatabaseName is the conventional compile-command database file name.
const DatabaseName = "compile_commands.json"

// Entry is an entry of compile-command database.
type Entry struct {
	Directory string   `json:"directory"`
	File      string   `json:"file"`
	Command   string   `json:"command,omitempty"`
	Arguments []string `json:"arguments,omitempty"`
	Output    string   `json:"output,omitempty"`
}

// LoadDatabase loads compile-command database in fname.
func LoadDatabase(fname string) ([]Entry, error) {
	buf, err := os.ReadFile(fname)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseNotFound, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fname, err)
	}
	var entries []Entry
	err = json.Unmarshal(buf, &entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDatabase, fname, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s: no entries", ErrInvalidDatabase, fname)
	}
	return entries, nil
}

// FindRoot returns the project root and the build directory for
// the compile-command database in fname.
// The project root is the parent of the build directory if it has
// a build descriptor, or the build directory itself.
func FindRoot(fname string) (root, buildDir string, err error) {
	fname, err = filepath.Abs(fname)
	if err != nil {
		return "", "", err
	}
	buildDir = filepath.Dir(fname)
	parent := filepath.Dir(buildDir)
	if parent != buildDir && cmakeutil.HasBuildDescriptor(parent) {
		return parent, buildDir, nil
	}
	return buildDir, buildDir, nil
}
