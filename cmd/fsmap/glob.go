package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// expandGlobs expands each pattern containing glob metacharacters against
// the filesystem, matching gobwas/glob's syntax. A pattern with no
// metacharacter, or one that fails to compile or matches nothing, passes
// through unchanged (the subcommand will then report the usual "no such
// file" error for it).
func expandGlobs(patterns []string) []string {
	var out []string
	for _, p := range patterns {
		out = append(out, expandGlob(p)...)
	}
	return out
}

func expandGlob(pattern string) []string {
	if !hasMeta(pattern) {
		return []string{pattern}
	}
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return []string{pattern}
	}
	root := nonGlobPrefix(pattern)
	var matches []string
	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if g.Match(path) {
			matches = append(matches, path)
		}
		return nil
	})
	if len(matches) == 0 {
		return []string{pattern}
	}
	return matches
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

func nonGlobPrefix(pattern string) string {
	i := strings.IndexAny(pattern, "*?[{")
	if i < 0 {
		return pattern
	}
	prefix := pattern[:i]
	if j := strings.LastIndexByte(prefix, '/'); j >= 0 {
		return prefix[:j+1]
	}
	return "."
}
