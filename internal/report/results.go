// Package report holds the per-file result ledger and renders it as a
// Markdown validation report.
package report

// FileResult holds the validation errors recorded for a single file.
// An empty Errors slice means the file passed.
type FileResult struct {
	Path   string
	Errors []string
}

// ResultSet is an insertion-ordered collection of per-file results.
// Each path appears exactly once; recording errors for a known path
// merges them into its existing entry.
type ResultSet struct {
	entries []FileResult
	index   map[string]int
}

// NewResultSet returns an empty ResultSet.
func NewResultSet() *ResultSet {
	return &ResultSet{index: make(map[string]int)}
}

// Add records errs for path. The first call for a path creates its entry
// at the end of the set; calling with no errors marks the file as passed
// unless errors were already recorded.
func (rs *ResultSet) Add(path string, errs ...string) {
	i, ok := rs.index[path]
	if !ok {
		rs.index[path] = len(rs.entries)
		rs.entries = append(rs.entries, FileResult{Path: path})
		i = len(rs.entries) - 1
	}
	rs.entries[i].Errors = append(rs.entries[i].Errors, errs...)
}

// Entries returns the results in insertion order.
func (rs *ResultSet) Entries() []FileResult {
	return rs.entries
}

// Paths returns the file paths in insertion order.
func (rs *ResultSet) Paths() []string {
	paths := make([]string, len(rs.entries))
	for i, e := range rs.entries {
		paths[i] = e.Path
	}
	return paths
}

// Len returns the number of files in the set.
func (rs *ResultSet) Len() int {
	return len(rs.entries)
}

// Failing returns the number of files with at least one error.
func (rs *ResultSet) Failing() int {
	n := 0
	for _, e := range rs.entries {
		if len(e.Errors) > 0 {
			n++
		}
	}
	return n
}

// AllValid reports whether every file in the set passed.
func (rs *ResultSet) AllValid() bool {
	return rs.Failing() == 0
}
