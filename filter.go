// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/wad

package wad

import (
	"fmt"
	"strings"

	"github.com/woozymasta/pathrules"
)

// lumpMatcher holds compiled include/exclude rules for lump name selection.
type lumpMatcher struct {
	matcher *pathrules.Matcher
}

// newLumpMatcher compiles lump selection rules. A nil matcher is returned
// for an empty rule set; callers treat that as "select everything".
func newLumpMatcher(rules []pathrules.Rule, opts pathrules.MatcherOptions) (*lumpMatcher, error) {
	rules = normalizeFilterRules(rules)
	if len(rules) == 0 {
		return nil, nil
	}

	matcher, err := pathrules.NewMatcher(rules, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: compile rules: %w", ErrInvalidFilterPattern, err)
	}

	return &lumpMatcher{matcher: matcher}, nil
}

// normalizeFilterRules trims rule patterns and drops empty patterns.
func normalizeFilterRules(rules []pathrules.Rule) []pathrules.Rule {
	normalized := make([]pathrules.Rule, 0, len(rules))
	for _, rule := range rules {
		pattern := strings.TrimSpace(rule.Pattern)
		if pattern == "" {
			continue
		}

		normalized = append(normalized, pathrules.Rule{
			Action:  rule.Action,
			Pattern: pattern,
		})
	}

	return normalized
}

// Match reports whether a lump name is included by at least one rule.
func (m *lumpMatcher) Match(name string) bool {
	if m == nil || m.matcher == nil {
		return false
	}

	if name == "" {
		return false
	}

	return m.matcher.Included(name, false)
}

// FilterLumps keeps lumps whose names are selected by the given rules.
// Lump names are flat 8-character identifiers, so patterns like "D_*" or
// "E?M?" are the common shapes. An empty rule set returns the input
// unchanged.
func FilterLumps(lumps []Lump, rules []pathrules.Rule, opts pathrules.MatcherOptions) ([]Lump, error) {
	matcher, err := newLumpMatcher(rules, opts)
	if err != nil {
		return nil, err
	}

	if matcher == nil {
		return lumps, nil
	}

	out := make([]Lump, 0, len(lumps))
	for _, lump := range lumps {
		if matcher.Match(lump.Name) {
			out = append(out, lump)
		}
	}

	return out, nil
}
