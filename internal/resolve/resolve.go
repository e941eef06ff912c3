// Package resolve maps changed-file paths from a pull request onto
// files that exist on disk.
package resolve

import (
	"log/slog"
	"os"
	"path/filepath"
)

// PathSet partitions an input path list into files found on disk and
// paths that could not be located anywhere. Resolved paths are
// absolute; Missing keeps the original input spelling.
type PathSet struct {
	Resolved []string
	Missing  []string
}

// Paths classifies each input path. Absolute inputs are probed as
// given; relative inputs are tried under root first and then under the
// current working directory. Every input lands in exactly one of the
// two output lists, in input order.
func Paths(root string, inputs []string) PathSet {
	var ps PathSet
	for _, in := range inputs {
		candidate := in
		if !filepath.IsAbs(in) {
			candidate = filepath.Join(root, in)
		}
		if fileExists(candidate) {
			ps.Resolved = append(ps.Resolved, absPath(candidate))
			continue
		}
		if !filepath.IsAbs(in) && fileExists(in) {
			ps.Resolved = append(ps.Resolved, absPath(in))
			continue
		}
		slog.Warn("changed file not found", "path", in, "tried", candidate)
		ps.Missing = append(ps.Missing, in)
	}
	slog.Debug("path resolution complete",
		"root", root,
		"inputs", inputs,
		"resolved", ps.Resolved,
		"missing", ps.Missing)
	return ps
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// absPath returns the absolute form of path, falling back to the input
// when the working directory cannot be determined.
func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
