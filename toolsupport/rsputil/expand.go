// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package rsputil expands response files (@file) in command lines.
package rsputil

import (
	"os"
	"path/filepath"
	"strings"

	"go.chromium.org/infra/build/fwimport/toolsupport/shutil"
	"go.chromium.org/infra/build/fwimport/ui"
)

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// Expand replaces each @file arg with the args read from file.
// Relative files are resolved against dir.
// Args in a response file are not expanded again.
// Unreadable response files contribute no args; failures are
// reported to sink.
func Expand(args []string, dir string, sink ui.Sink) []string {
	var ret []string
	for _, arg := range args {
		fname, ok := strings.CutPrefix(arg, "@")
		if !ok || fname == "" {
			ret = append(ret, arg)
			continue
		}
		rspArgs, err := Read(fname, dir)
		if err != nil {
			sink.Warningf(ui.ChannelRSP, "failed to read response file %s: %v", fname, err)
			continue
		}
		ret = append(ret, rspArgs...)
	}
	return ret
}

// Read reads args from response file fname, relative to dir
// unless absolute.
func Read(fname, dir string) ([]string, error) {
	if !filepath.IsAbs(fname) {
		fname = filepath.Join(dir, fname)
	}
	buf, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return shutil.Split(lineBreaks.Replace(string(buf))), nil
}
