// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package gccutil provides utilities of gcc compatible compilers.
package gccutil

import "strings"

// Params is the set of flags extracted from a compiler command line.
// Paths are as they appear in the command line.
type Params struct {
	IncludeDirs []string
	Defines     []string
	LibDirs     []string
	Libs        []string
}

// ExtractParams extracts include dirs, defines and libraries from args.
func ExtractParams(args []string) Params {
	libDirs, libs := Libraries(args)
	return Params{
		IncludeDirs: Includes(args),
		Defines:     Defines(args),
		LibDirs:     libDirs,
		Libs:        libs,
	}
}

// Includes returns include dirs given by -I, -isystem and
// --include-directory= in args.
func Includes(args []string) []string {
	var dirs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-I", "-isystem":
			if i+1 < len(args) {
				i++
				dirs = append(dirs, args[i])
			}
			continue
		}
		switch {
		case strings.HasPrefix(arg, "-I"):
			dirs = append(dirs, strings.TrimPrefix(arg, "-I"))
		case strings.HasPrefix(arg, "-isystem"):
			dirs = append(dirs, strings.TrimPrefix(arg, "-isystem"))
		case strings.HasPrefix(arg, "--include-directory="):
			if dir := strings.TrimPrefix(arg, "--include-directory="); dir != "" {
				dirs = append(dirs, dir)
			}
		}
	}
	return dirs
}

// Defines returns macros given by -D and --define= in args.
// A macro is kept as is, e.g. "NAME=value".
func Defines(args []string) []string {
	var defines []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-D":
			if i+1 < len(args) {
				i++
				defines = append(defines, args[i])
			}
		case strings.HasPrefix(arg, "-D"):
			defines = append(defines, strings.TrimPrefix(arg, "-D"))
		case strings.HasPrefix(arg, "--define="):
			if macro := strings.TrimPrefix(arg, "--define="); macro != "" {
				defines = append(defines, macro)
			}
		}
	}
	return defines
}

// Libraries returns library dirs given by -L, and library names
// given by -l<name> in args.
func Libraries(args []string) (dirs, libs []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-L":
			if i+1 < len(args) {
				i++
				dirs = append(dirs, args[i])
			}
		case strings.HasPrefix(arg, "-L"):
			dirs = append(dirs, strings.TrimPrefix(arg, "-L"))
		case strings.HasPrefix(arg, "-l") && len(arg) > len("-l"):
			// -l:libfoo.a is kept as ":libfoo.a".
			libs = append(libs, strings.TrimPrefix(arg, "-l"))
		}
	}
	return dirs, libs
}
