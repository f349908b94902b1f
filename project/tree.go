// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package project

import (
	"path"
	"path/filepath"
	"strings"
)

// RootName is the name of the root node of a virtual tree.
const RootName = "<virtual_root>"

// IsSource reports whether fname is a compilable source file.
// Headers are not.
func IsSource(fname string) bool {
	ext := filepath.Ext(fname)
	switch ext {
	case ".s", ".S":
		return true
	}
	switch strings.ToLower(ext) {
	case ".c", ".cc", ".cpp", ".cxx", ".c++", ".asm":
		return true
	}
	return false
}

// File is a leaf of a virtual tree.
type File struct {
	Path string `json:"path" yaml:"path"`
}

// Node is a directory of a virtual tree.
type Node struct {
	Name    string  `json:"name" yaml:"name"`
	Files   []File  `json:"files" yaml:"files"`
	Folders []*Node `json:"folders" yaml:"folders"`
}

// child returns the child folder of n named name, creating it if absent.
func (n *Node) child(name string) *Node {
	for _, c := range n.Folders {
		if c.Name == name {
			return c
		}
	}
	c := &Node{Name: name}
	n.Folders = append(n.Folders, c)
	return c
}

// BuildTree builds a virtual tree of slash-separated source files.
// Files are grouped by directory, and each directory is split into
// folders by path segment.
func BuildTree(files []string) *Node {
	root := &Node{Name: RootName}
	var dirs []string
	groups := make(map[string][]string)
	for _, f := range files {
		dir := path.Dir(f)
		if dir == "." {
			dir = ""
		}
		if _, ok := groups[dir]; !ok {
			dirs = append(dirs, dir)
		}
		groups[dir] = append(groups[dir], f)
	}
	for _, dir := range dirs {
		n := root
		for _, seg := range strings.Split(dir, "/") {
			if seg == "" {
				continue
			}
			n = n.child(seg)
		}
		for _, f := range groups[dir] {
			n.Files = append(n.Files, File{Path: f})
		}
	}
	return root
}
