package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/libredomains/ldcheck/internal/checker"
	"github.com/libredomains/ldcheck/internal/lock"
	"github.com/libredomains/ldcheck/internal/report"
	"github.com/libredomains/ldcheck/internal/resolve"
	"github.com/libredomains/ldcheck/internal/validator"
)

// PRChecker runs the validation pipeline for a list of changed files.
type PRChecker interface {
	CheckFiles(ctx context.Context, root string, files []string, cfg *validator.Config) checker.Outcome
}

// pipeline is the production PRChecker: path resolution followed by
// the registry validator.
type pipeline struct{}

func newPipeline() *pipeline {
	return &pipeline{}
}

func (p *pipeline) CheckFiles(_ context.Context, root string, files []string, cfg *validator.Config) checker.Outcome {
	ps := resolve.Paths(root, files)
	c := checker.Checker{Validator: &validator.DomainValidator{Root: root}}
	return c.Check(ps, cfg)
}

type checkOptions struct {
	files      []string
	configPath string
	output     string
	root       string
}

// NewCheckCmd creates the check command with the given runner.
func NewCheckCmd(runner PRChecker) *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:          "check",
		Short:        "Check changed domain files and write a Markdown report",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, runner, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.files, "files", nil, "Changed file path to check (repeatable)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Registry config path (default: config/domains.json under the project root)")
	cmd.Flags().StringVar(&opts.output, "output", defaultSettings.Output, "Write the report to this file instead of stdout")
	cmd.Flags().StringVar(&opts.root, "root", defaultSettings.Root, "Project root for relative paths (default: working directory)")
	_ = cmd.MarkFlagRequired("files")

	return cmd
}

// runCheck drives the pipeline and guarantees that a report reaches
// the sink and an exit status reaches the process, whatever fails
// along the way. Expected failures (invalid files, nothing resolved)
// have already written their report; anything else gets a best-effort
// failure report here.
func runCheck(cmd *cobra.Command, runner PRChecker, opts checkOptions) error {
	sink := &reportSink{path: opts.output, stdout: cmd.OutOrStdout()}

	err := checkAndReport(cmd, runner, opts, sink)
	if err == nil {
		return nil
	}
	var coder ExitCoder
	if errors.As(err, &coder) {
		return err
	}

	msg := err.Error()
	trace := ""
	var pe *panicError
	if errors.As(err, &pe) {
		msg = fmt.Sprint(pe.value)
		trace = pe.trace
	}
	if werr := sink.Write(cmd.Context(), report.RenderFatal(msg, trace)); werr != nil {
		slog.Error("cannot write failure report", "error", werr)
	}
	return err
}

// panicError carries a recovered panic value and its stack trace out
// of the pipeline.
type panicError struct {
	value any
	trace string
}

// Error implements the error interface.
func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

// checkAndReport loads configuration, runs the pipeline, and writes
// the report. A panic anywhere inside is recovered and returned as a
// panicError, with the stack trace also logged.
func checkAndReport(cmd *cobra.Command, runner PRChecker, opts checkOptions, sink *reportSink) (err error) {
	defer func() {
		if r := recover(); r != nil {
			trace := string(debug.Stack())
			slog.Error("unhandled panic", "panic", r, "stack", trace)
			err = &panicError{value: r, trace: trace}
		}
	}()

	root := opts.root
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		root = cwd
	}

	cfg, err := loadRunConfig(root, opts.configPath)
	if err != nil {
		return err
	}

	outcome := runner.CheckFiles(cmd.Context(), root, opts.files, cfg)

	if err := sink.Write(cmd.Context(), report.Render(outcome.Results)); err != nil {
		return err
	}

	if outcome.NoneResolved {
		return &NoFilesError{Missing: outcome.Results.Paths()}
	}
	if !outcome.AllValid {
		return &ValidationFailedError{Total: outcome.Results.Len(), Failing: outcome.Results.Failing()}
	}
	return nil
}

// loadRunConfig loads the registry configuration. An explicit path
// that fails to load is fatal; an unavailable default config is only a
// warning and the run proceeds without configuration.
func loadRunConfig(root, path string) (*validator.Config, error) {
	if path != "" {
		cfg, err := validator.LoadConfig(root, path)
		if err != nil {
			return nil, &ContextError{Op: "loading config", Path: path, Err: err}
		}
		return cfg, nil
	}
	cfg, err := validator.LoadConfig(root, "")
	if err != nil {
		slog.Warn("default registry config unavailable, continuing without it", "error", err)
		return nil, nil
	}
	return cfg, nil
}

// reportSink writes the rendered report exactly once, either to a file
// (creating parent directories and holding an advisory lock) or to
// stdout.
type reportSink struct {
	path   string
	stdout io.Writer
}

// Write delivers doc to the configured destination.
func (s *reportSink) Write(ctx context.Context, doc string) error {
	if s.path == "" {
		_, err := fmt.Fprintln(s.stdout, doc)
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &ContextError{Op: "creating output directory", Path: dir, Err: err}
		}
	}
	err := lock.WithLock(ctx, s.path+".lock", func() error {
		return os.WriteFile(s.path, []byte(doc), 0o644)
	})
	if err != nil {
		return &ContextError{Op: "writing report", Path: s.path, Err: err}
	}
	slog.Info("report written", "path", s.path)
	return nil
}
