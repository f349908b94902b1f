// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package cmakeutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.chromium.org/infra/build/fwimport/toolsupport/shutil"
	"go.chromium.org/infra/build/fwimport/ui"
)

// ErrAmbiguous is returned when more than one linker script candidate
// is found and none of them is preferred.
var ErrAmbiguous = errors.New("ambiguous linker script")

// Strategy finds a linker script in the layout.
// It returns "" and nil error if it finds nothing, so that the next
// strategy is tried. I/O errors are reported to the sink and treated
// as nothing found.
type Strategy func(l Layout) (string, error)

// Strategies are the strategies used by ResolveLinkerScript, in order.
var Strategies = []Strategy{
	FromLinkTranscripts,
	FromRootScripts,
	FromBuildDescriptor,
}

// FirstOf returns a strategy that returns the first script found by
// strategies. It stops at the first error.
func FirstOf(strategies ...Strategy) Strategy {
	return func(l Layout) (string, error) {
		for _, s := range strategies {
			script, err := s(l)
			if err != nil {
				return "", err
			}
			if script != "" {
				return script, nil
			}
		}
		return "", nil
	}
}

// ResolveLinkerScript returns the project root relative linker script,
// or "" if not found.
func ResolveLinkerScript(l Layout) string {
	script, err := FirstOf(Strategies...)(l)
	if err != nil {
		l.sink().Warningf(ui.ChannelLDScript, "linker script not selected: %v", err)
		return ""
	}
	if script == "" {
		l.sink().Infof(ui.ChannelLDScript, "linker script not found")
		return ""
	}
	l.sink().Infof(ui.ChannelLDScript, "linker script: %s", script)
	return script
}

// FromLinkTranscripts scans link.txt of target metadata directories
// (CMakeFiles/*.dir) in the build directory for -T flags.
// Target directories are scanned in lexical order.
func FromLinkTranscripts(l Layout) (string, error) {
	metadir := filepath.Join(l.BuildDir, MetadataDir)
	ents, err := os.ReadDir(metadir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			l.sink().Warningf(ui.ChannelLDScript, "failed to read %s: %v", metadir, err)
		}
		return "", nil
	}
	// os.ReadDir returns entries sorted by filename.
	for _, ent := range ents {
		if !ent.IsDir() || !strings.HasSuffix(ent.Name(), ".dir") {
			continue
		}
		transcript := filepath.Join(metadir, ent.Name(), LinkTranscriptName)
		buf, ok := readFile(l, transcript)
		if !ok {
			continue
		}
		for _, script := range scriptFlags(shutil.Split(string(buf))) {
			fname := l.Root.Abs(script, l.BuildDir)
			if !isFile(fname) {
				l.sink().Warningf(ui.ChannelLDScript, "%s: -T %s not found", transcript, script)
				continue
			}
			return l.Root.Normalize(fname, l.BuildDir), nil
		}
	}
	return "", nil
}

// scriptFlags returns args of -T flags in args.
// -Wl, option lists are split on commas.
func scriptFlags(args []string) []string {
	var expanded []string
	for _, arg := range args {
		if opts, ok := strings.CutPrefix(arg, "-Wl,"); ok {
			expanded = append(expanded, strings.Split(opts, ",")...)
			continue
		}
		expanded = append(expanded, arg)
	}
	var scripts []string
	for i := 0; i < len(expanded); i++ {
		arg := expanded[i]
		switch {
		case arg == "-T":
			if i+1 < len(expanded) {
				i++
				scripts = append(scripts, expanded[i])
			}
		case strings.HasPrefix(arg, "-T"):
			scripts = append(scripts, strings.TrimPrefix(arg, "-T"))
		}
	}
	return scripts
}

// IsLinkerScript reports whether fname has a linker script extension.
func IsLinkerScript(fname string) bool {
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".ld", ".lds":
		return true
	}
	return false
}

// FromRootScripts selects a linker script in the project root.
// If more than one is found, the one containing the keyword is
// preferred. If none contains it, it returns ErrAmbiguous.
func FromRootScripts(l Layout) (string, error) {
	ents, err := os.ReadDir(l.Root.Root)
	if err != nil {
		l.sink().Warningf(ui.ChannelLDScript, "failed to read %s: %v", l.Root.Root, err)
		return "", nil
	}
	var candidates []string
	for _, ent := range ents {
		if !IsLinkerScript(ent.Name()) {
			continue
		}
		switch {
		case ent.Type().IsRegular():
		case ent.Type()&fs.ModeSymlink != 0 && isFile(filepath.Join(l.Root.Root, ent.Name())):
		default:
			continue
		}
		candidates = append(candidates, ent.Name())
	}
	return selectScript(candidates, l.keyword(), l.sink())
}

func selectScript(candidates []string, keyword string, sink ui.Sink) (string, error) {
	switch len(candidates) {
	case 0:
		return "", nil
	case 1:
		return candidates[0], nil
	}
	keyword = strings.ToLower(keyword)
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), keyword) {
			return c, nil
		}
	}
	sink.Errorf(ui.ChannelLDScript, "%d linker scripts found %q, none contains %q", len(candidates), candidates, keyword)
	return "", ErrAmbiguous
}

var (
	setRE    = regexp.MustCompile(`(?i)\bset\s*\(\s*([A-Za-z_][A-Za-z0-9_]*)\s+"?([^\s")]+)"?`)
	scriptRE = regexp.MustCompile(`-T\s*"?([^\s"')]+)`)
	varRE    = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)
)

// sourceDirVars are variables that refer to the project root.
var sourceDirVars = []string{
	"CMAKE_SOURCE_DIR",
	"PROJECT_SOURCE_DIR",
	"CMAKE_CURRENT_SOURCE_DIR",
}

// FromBuildDescriptor scans the build descriptor in the project root
// for -T flags referring to a linker script in the project.
// ${VAR} is expanded with set(VAR value) in the descriptor.
func FromBuildDescriptor(l Layout) (string, error) {
	descriptor := filepath.Join(l.Root.Root, DescriptorName)
	buf, ok := readFile(l, descriptor)
	if !ok {
		return "", nil
	}
	content := string(buf)
	vars := make(map[string]string)
	for _, m := range setRE.FindAllStringSubmatch(content, -1) {
		if _, ok := vars[m[1]]; !ok {
			vars[m[1]] = m[2]
		}
	}
	for _, v := range sourceDirVars {
		vars[v] = filepath.ToSlash(l.Root.Root)
	}
	for _, m := range scriptRE.FindAllStringSubmatch(content, -1) {
		script := expandVars(m[1], vars)
		if !IsLinkerScript(script) || strings.Contains(script, "${") {
			continue
		}
		fname := l.Root.Abs(filepath.FromSlash(script), l.Root.Root)
		if !isFile(fname) {
			l.sink().Warningf(ui.ChannelLDScript, "%s: -T %s not found", descriptor, m[1])
			continue
		}
		return l.Root.Normalize(fname, l.Root.Root), nil
	}
	return "", nil
}

// expandVars expands ${VAR} in s. Nested references are expanded
// a limited number of times.
func expandVars(s string, vars map[string]string) string {
	for range 4 {
		if !strings.Contains(s, "${") {
			return s
		}
		s = varRE.ReplaceAllStringFunc(s, func(ref string) string {
			name := ref[2 : len(ref)-1]
			if v, ok := vars[name]; ok {
				return v
			}
			return ref
		})
	}
	return s
}
