// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package build provides path handling for build directories of a project.
package build

import (
	"fmt"
	"path/filepath"
)

// Path normalizes paths used by compile commands to the project root.
type Path struct {
	Root string
}

// NewPath returns new path for the project root.
func NewPath(root string) *Path {
	return &Path{
		Root: filepath.Clean(root),
	}
}

// Check checks the path is valid.
func (p *Path) Check() error {
	if !filepath.IsAbs(p.Root) {
		return fmt.Errorf("project root must be absolute path: %q", p.Root)
	}
	return nil
}

// Abs returns absolute path of path, relative to dir unless
// path is absolute.
func (p *Path) Abs(path, dir string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(p.Root, dir)
	}
	return filepath.Join(dir, path)
}

// Normalize converts path, relative to dir, to project root relative,
// slash-separated.
// It keeps absolute path, slash-separated, if it is out of project root.
func (p *Path) Normalize(path, dir string) string {
	if path == "" {
		return ""
	}
	abs := p.Abs(path, dir)
	rel, err := filepath.Rel(p.Root, abs)
	if err != nil || !filepath.IsLocal(rel) {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}
