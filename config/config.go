// Package config holds configuration for the checks and its defaults.
package config

import (
	"errors"
	"fmt"

	"github.com/imdario/mergo"
)

// Config controls check behavior. The policy booleans are negated so that
// the zero value matches the documented defaults: emails compare
// case-insensitively, merge commits are exempt from sign-off, and trailers
// must match the commit author.
type Config struct {
	Verbose bool `json:"verbose,omitempty"`
	Quiet   bool `json:"quiet,omitempty"`
	InCI    bool `json:"ci,omitempty"`

	// CaseSensitiveEmails disables case folding when comparing trailer
	// emails against the commit author email.
	CaseSensitiveEmails bool `json:"case_sensitive_emails,omitempty"`
	// NoMergeExemption requires sign-offs on merge commits too.
	NoMergeExemption bool `json:"no_merge_exemption,omitempty"`
	// NoAuthorMatch accepts any well-formed sign-off trailer regardless of
	// whose identity it names.
	NoAuthorMatch bool `json:"no_author_match,omitempty"`
	// AllowEmpty treats an empty commit range as a trivially passing run
	// instead of a failure.
	AllowEmpty bool `json:"allow_empty,omitempty"`

	// Base is the ref commits are checked since. When empty, the remote
	// main branch is used.
	Base        string   `json:"base,omitempty"`
	Branches    []string `json:"branches,omitempty"`
	BranchesSet bool     `json:"-"`

	// HeaderLines are the lines every checked source file must carry
	// within the first HeaderSearchLimit lines.
	HeaderLines       []string `json:"header_lines,omitempty"`
	HeaderSearchLimit int      `json:"header_search_limit,omitempty"`

	Term TerminalIO `json:"-"`
}

func New(overrides *Config) Config {
	return NewWithTerminalIO(overrides, nil)
}

func NewWithTerminalIO(overrides *Config, termio *TerminalIO) Config {
	cfg := GetDefault()
	if termio == nil {
		termio = &DefaultTermIO
	}
	cfg.Term = *termio

	if overrides != nil {
		if err := mergo.Merge(&cfg, overrides, mergo.WithOverride); err != nil {
			panic(err)
		}
	}
	return cfg
}

func GetDefault() Config {
	return Config{
		Branches: []string{"main", "master"},
		HeaderLines: []string{
			"SPDX-License-Identifier: Apache-2.0",
			"Copyright (C) 2025, The Spine Docs organization and its contributors.",
		},
		HeaderSearchLimit: 5,
	}
}

func (c Config) Validate() error {
	if c.Quiet && c.Verbose {
		return errors.New("config: --quiet and --verbose are mutually exclusive")
	}
	if c.HeaderSearchLimit < 1 {
		return fmt.Errorf("config: header search limit must be positive, got %d", c.HeaderSearchLimit)
	}
	return nil
}

func (c Config) Printf(msg string, args ...interface{}) {
	if c.Quiet {
		return
	}
	fmt.Fprintf(c.Term.Stdout, msg+"\n", args...)
}

func (c Config) Errorf(msg string, args ...interface{}) {
	fmt.Fprintf(c.Term.Stderr, msg+"\n", args...)
}

func (c Config) Debugf(msg string, args ...interface{}) {
	if !c.Verbose {
		return
	}
	c.Printf(msg, args...)
}
