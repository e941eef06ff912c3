// Package checker orchestrates validation of a resolved changeset and
// aggregates per-file results into a single ledger.
package checker

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/libredomains/ldcheck/internal/report"
	"github.com/libredomains/ldcheck/internal/resolve"
	"github.com/libredomains/ldcheck/internal/validator"
)

// Validator is the external collaborator that applies the registry
// rules to files that exist on disk. It is never handed a nonexistent
// path.
type Validator interface {
	ValidatePullRequest(files []string, cfg *validator.Config) (bool, *report.ResultSet, error)
}

// Outcome is the aggregated result of one validation run.
type Outcome struct {
	AllValid bool
	Results  *report.ResultSet
	// NoneResolved is set when no input path mapped to a file on
	// disk; the validator is not consulted in that case.
	NoneResolved bool
}

// Checker runs the external validator over a resolved path set.
type Checker struct {
	Validator Validator
}

// Check produces the per-file result ledger for ps. Every path in ps
// appears exactly once in the ledger: resolved paths in validation
// order, then missing paths in input order with a synthetic error
// entry. A failure of the validator itself is absorbed here and
// surfaced through the ledger, with full detail on the log stream.
func (c *Checker) Check(ps resolve.PathSet, cfg *validator.Config) Outcome {
	if len(ps.Resolved) == 0 {
		results := report.NewResultSet()
		for _, p := range ps.Missing {
			results.Add(p, "文件不存在: "+p)
		}
		return Outcome{Results: results, NoneResolved: true}
	}

	allValid, results, err := c.validate(ps.Resolved, cfg)
	if err != nil {
		slog.Error("validator failed", "error", err)
		results = report.NewResultSet()
		msg := "验证过程中发生错误: " + err.Error()
		for _, p := range ps.Resolved {
			results.Add(p, msg)
		}
		allValid = false
	}
	if results == nil {
		results = report.NewResultSet()
	}

	for _, p := range ps.Missing {
		results.Add(p, "文件不存在: "+p)
		allValid = false
	}
	return Outcome{AllValid: allValid, Results: results}
}

// validate invokes the external validator, converting a panic in the
// collaborator into an error at this boundary. The stack trace goes to
// the log stream only.
func (c *Checker) validate(files []string, cfg *validator.Config) (allValid bool, results *report.ResultSet, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("validator panicked", "panic", r, "stack", string(debug.Stack()))
			allValid, results = false, nil
			err = fmt.Errorf("validator panic: %v", r)
		}
	}()
	return c.Validator.ValidatePullRequest(files, cfg)
}
