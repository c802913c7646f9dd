// Package xplicit flags explicit lyrics in catalog spreadsheets and rewrites
// their version labels, producing modified workbooks and a consolidated
// change report.
package xplicit

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/SamuelRCrider/xplicit-go/core"
	"github.com/SamuelRCrider/xplicit-go/sheet"
)

// Source is one dataset submitted to a run. A source that could not be read
// carries the read error in Err and is reported as a failure.
type Source struct {
	Name    string
	Dataset *core.Dataset
	Err     error

	// Workbook holds the original .xlsx bytes when the source was read from
	// a file. The modified copy is patched from it.
	Workbook []byte
}

// ErrDuplicateName fails a source whose name was already used in the run
var ErrDuplicateName = errors.New("duplicate file name")

// Outcome is the result of processing one source
type Outcome struct {
	Source string

	// Result is nil when the source failed
	Result *core.TransformResult

	// Err holds a *core.SchemaError or *core.UnexpectedFailure
	Err error

	// Messages are the human-readable processing lines for this source
	Messages []string

	workbook []byte
}

// Failed reports whether the source could not be processed
func (o *Outcome) Failed() bool {
	return o.Err != nil
}

// RunResult collects every outcome of a run, in submission order, and the
// report aggregated from the successful ones
type RunResult struct {
	RunID    string
	Outcomes []*Outcome
	Report   *core.Report
}

// Failures returns the outcomes of sources that failed
func (r *RunResult) Failures() []*Outcome {
	var failed []*Outcome
	for _, o := range r.Outcomes {
		if o.Failed() {
			failed = append(failed, o)
		}
	}
	return failed
}

// Succeeded returns the outcomes of sources that were transformed
func (r *RunResult) Succeeded() []*Outcome {
	var ok []*Outcome
	for _, o := range r.Outcomes {
		if !o.Failed() {
			ok = append(ok, o)
		}
	}
	return ok
}

// Messages returns the processing lines of all sources in order
func (r *RunResult) Messages() []string {
	var lines []string
	for _, o := range r.Outcomes {
		lines = append(lines, o.Messages...)
	}
	return lines
}

// HasChanges reports whether any source had a rewritten row
func (r *RunResult) HasChanges() bool {
	return r.Report != nil && len(r.Report.Rows) > 0
}

// Runner processes batches of datasets against a word list
type Runner struct {
	words    []string
	logger   *zap.Logger
	audit    *core.AuditLogger
	reporter *core.ErrorReporter
	workers  int
	schema   core.Schema

	transform func(*core.Dataset, []string, string, ...core.TransformOption) (*core.TransformResult, error)
}

// Option configures a Runner
type Option func(*Runner)

// WithLogger sets the operational logger
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithAudit records row rewrites and failures to an audit trail
func WithAudit(audit *core.AuditLogger) Option {
	return func(r *Runner) {
		r.audit = audit
	}
}

// WithWorkers bounds how many sources are processed concurrently
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithSchema sets the required field schema
func WithSchema(schema core.Schema) Option {
	return func(r *Runner) {
		r.schema = schema
	}
}

// NewRunner creates a Runner searching for words
func NewRunner(words []string, opts ...Option) *Runner {
	r := &Runner{
		words:   words,
		logger:  zap.NewNop(),
		workers:   runtime.NumCPU(),
		schema:    core.SchemaCatalog,
		transform: core.Transform,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.reporter = core.NewErrorReporter(r.logger)
	return r
}

// RunFiles reads each workbook path and processes it. Unreadable files are
// reported as failures of their own and do not affect the others.
func (r *Runner) RunFiles(ctx context.Context, paths []string) *RunResult {
	sources := make([]Source, len(paths))
	for i, path := range paths {
		ds, data, err := sheet.ReadFile(path)
		sources[i] = Source{Name: path, Dataset: ds, Err: err, Workbook: data}
		if ds != nil {
			sources[i].Name = ds.Name
		}
	}
	return r.Run(ctx, sources)
}

// Run processes every source independently. A failing source never stops
// the others; its error is captured in its Outcome. Source names must be
// unique within a run: a repeated name fails with ErrDuplicateName.
func (r *Runner) Run(ctx context.Context, sources []Source) *RunResult {
	sources = rejectDuplicates(sources)

	runID := uuid.NewString()
	logger := r.logger.With(zap.String("run_id", runID))
	logger.Info("run started", zap.Int("files", len(sources)), zap.Int("words", len(r.words)))

	outcomes := make([]*Outcome, len(sources))

	var g errgroup.Group
	g.SetLimit(r.workers)
	for i, src := range sources {
		g.Go(func() error {
			outcomes[i] = r.process(ctx, runID, src)
			return nil
		})
	}
	_ = g.Wait()

	files := make([]core.FileChanges, 0, len(outcomes))
	for _, o := range outcomes {
		if !o.Failed() {
			files = append(files, core.FileChanges{Source: o.Source, Records: o.Result.Records})
		}
	}

	report := core.Aggregate(files)
	for _, malformed := range report.Malformed {
		r.reporter.ReportError(malformed.Source, malformed)
	}

	result := &RunResult{RunID: runID, Outcomes: outcomes, Report: report}

	failed := len(result.Failures())
	logger.Info("run completed",
		zap.Int("files", len(outcomes)),
		zap.Int("failed", failed),
		zap.Int("changes", len(report.Rows)))
	r.auditErr(r.audit.LogRunCompleted(runID, map[string]string{
		"files":   strconv.Itoa(len(outcomes)),
		"failed":  strconv.Itoa(failed),
		"changes": strconv.Itoa(len(report.Rows)),
	}))

	return result
}

func (r *Runner) process(ctx context.Context, runID string, src Source) (out *Outcome) {
	out = &Outcome{Source: src.Name}

	defer func() {
		if rec := recover(); rec != nil {
			r.fail(runID, out, core.NewUnexpectedFailure(src.Name, fmt.Errorf("panic: %v", rec)))
		}
	}()

	if err := ctx.Err(); err != nil {
		r.fail(runID, out, core.NewUnexpectedFailure(src.Name, err))
		return out
	}
	if src.Err != nil {
		r.fail(runID, out, core.NewUnexpectedFailure(src.Name, src.Err))
		return out
	}

	result, err := r.transform(src.Dataset, r.words, src.Name, core.WithSchema(r.schema))
	if err != nil {
		r.fail(runID, out, core.NewUnexpectedFailure(src.Name, err))
		return out
	}

	out.Result = result
	out.workbook = src.Workbook
	out.Messages = changeMessages(src.Name, result.Records)

	lyricsCol := src.Dataset.ColumnIndex(core.FieldLyrics)
	for _, record := range result.Records {
		lyrics := src.Dataset.Cell(record.Row-core.HeaderOffset, lyricsCol)
		r.auditErr(r.audit.LogChange(runID, record, lyrics))
	}
	r.auditErr(r.audit.LogFileProcessed(runID, src.Name, len(src.Dataset.Rows), len(result.Records)))

	r.logger.Debug("file processed",
		zap.String("run_id", runID),
		zap.String("source", src.Name),
		zap.Int("rows", len(src.Dataset.Rows)),
		zap.Int("changes", len(result.Records)))
	return out
}

// rejectDuplicates returns a copy of sources in which every readable source
// whose name is already taken carries ErrDuplicateName
func rejectDuplicates(sources []Source) []Source {
	out := make([]Source, len(sources))
	seen := make(map[string]bool, len(sources))
	for i, src := range sources {
		if src.Err == nil {
			if seen[src.Name] {
				src.Err = fmt.Errorf("%w: %s", ErrDuplicateName, src.Name)
			}
			seen[src.Name] = true
		}
		out[i] = src
	}
	return out
}

func (r *Runner) fail(runID string, out *Outcome, err error) {
	out.Result = nil
	out.workbook = nil
	out.Err = err
	out.Messages = []string{FailureMessage(out.Source, err)}
	r.reporter.ReportError(out.Source, err)
	r.auditErr(r.audit.LogFailure(runID, out.Source, err))
}

func (r *Runner) auditErr(err error) {
	if err != nil {
		r.logger.Warn("failed to write audit event", zap.Error(err))
	}
}
