// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package gccutil

import (
	"fmt"
	"strings"
)

// Family is a toolchain family, inferred from the compiler executable name.
type Family int

const (
	AnyGCC Family = iota
	ARM
	RISCV
	C51
	MIPS
)

var familyNames = map[Family]string{
	AnyGCC: "ANY-GCC",
	ARM:    "ARM",
	RISCV:  "RISC-V",
	C51:    "C51",
	MIPS:   "MIPS",
}

func (f Family) String() string {
	if s, ok := familyNames[f]; ok {
		return s
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// ParseFamily parses a family name, case-insensitively.
func ParseFamily(s string) (Family, error) {
	for f, name := range familyNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return AnyGCC, fmt.Errorf("unknown toolchain family %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (f Family) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Family) UnmarshalText(b []byte) error {
	v, err := ParseFamily(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Rule maps compiler names containing any of Substrings to Family.
type Rule struct {
	Substrings []string `toml:"match"`
	Family     Family   `toml:"type"`
}

// Matches reports whether lower-cased executable name matches the rule.
func (r Rule) Matches(name string) bool {
	for _, s := range r.Substrings {
		if strings.Contains(name, strings.ToLower(s)) {
			return true
		}
	}
	return false
}

// Rules is the default rule table. The first matching rule wins.
var Rules = []Rule{
	{Substrings: []string{"arm-none-eabi", "arm-elf", "armcc", "armclang"}, Family: ARM},
	{Substrings: []string{"riscv", "rv32", "rv64"}, Family: RISCV},
	{Substrings: []string{"sdcc", "c51", "stm8"}, Family: C51},
	{Substrings: []string{"mips"}, Family: MIPS},
}

// Classify returns the family of compiler by the first matching rule
// in rules, or AnyGCC if no rule matches.
func Classify(compiler string, rules []Rule) Family {
	name := strings.ToLower(ExecName(compiler))
	for _, r := range rules {
		if r.Matches(name) {
			return r.Family
		}
	}
	return AnyGCC
}

// ExecName returns the file name of the compiler path.
// Both slash and backslash are treated as separators, since
// databases generated on Windows hosts use backslash.
func ExecName(compiler string) string {
	i := strings.LastIndexAny(compiler, `/\`)
	return compiler[i+1:]
}
