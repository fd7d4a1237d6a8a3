// Package scan walks directory rules into candidate paths.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/simon/sessionizer/internal/config"
)

// Evaluate returns every directory under the rule's path whose depth falls
// within [MinDepth, MaxDepth] (depth 0 is the path itself) and whose base
// name matches the rule's filter.
//
// The walk is lexical and never follows symlinks. A missing or non-directory
// root yields no paths and no error; an unreadable subtree is skipped; any
// other filesystem error aborts the walk and is returned with the offending
// path.
func Evaluate(rule config.Rule) ([]string, error) {
	root := filepath.Clean(rule.Path)

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, nil
	}

	pat := rule.Pattern()
	var paths []string

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return nil
			}
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}

		depth := depthOf(root, path)
		if depth >= rule.MinDepth && pat.MatchString(d.Name()) {
			paths = append(paths, path)
		}
		if depth >= rule.MaxDepth {
			return fs.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// All evaluates every rule in order and concatenates the results.
func All(rules []config.Rule) ([]string, error) {
	var paths []string
	for _, rule := range rules {
		found, err := Evaluate(rule)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	return paths, nil
}

func depthOf(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
