// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"go.chromium.org/infra/build/fwimport/toolsupport/gccutil"
	"go.chromium.org/infra/build/fwimport/ui"
)

// ConfigName is the config file name looked up in the project root.
const ConfigName = ".fwimport.toml"

// Config is a project import config.
//
//	name = "blinky"
//	linker_script_keyword = "ROM"
//
//	[[toolchain]]
//	match = ["xtensa-lx106"]
//	type = "ANY-GCC"
type Config struct {
	Name                string         `toml:"name"`
	LinkerScriptKeyword string         `toml:"linker_script_keyword"`
	Toolchains          []gccutil.Rule `toml:"toolchain"`
}

// LoadConfig loads config from fname.
func LoadConfig(fname string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(fname, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load config %s: %w", fname, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown keys in config %s: %q", fname, undecoded)
	}
	for i, r := range cfg.Toolchains {
		if len(r.Substrings) == 0 {
			return Config{}, fmt.Errorf("config %s: toolchain[%d] has no match", fname, i)
		}
	}
	return cfg, nil
}

// LoadRootConfig loads ConfigName in root if it exists.
func LoadRootConfig(root string) (Config, error) {
	fname := filepath.Join(root, ConfigName)
	_, err := os.Stat(fname)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}
	return LoadConfig(fname)
}

// Options returns import options for the config.
func (c Config) Options(sink ui.Sink) Options {
	return Options{
		Name:                c.Name,
		Sink:                sink,
		ToolchainRules:      c.Toolchains,
		LinkerScriptKeyword: c.LinkerScriptKeyword,
	}
}
