package report

import (
	"agedASN/internal/config"
	"agedASN/internal/excel"
	"agedASN/internal/logger"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const (
	dataTableName    = "Table_1"
	summaryTableName = "Table_2"
)

// HeaderResolver suggests aliases for required headers the sheet does not
// spell exactly. The returned map goes from sheet header to known label.
type HeaderResolver interface {
	ResolveHeaders(ctx context.Context, candidates, missing []string) (map[string]string, error)
}

// Options configures a Processor
type Options struct {
	Report config.ReportConfig
	// Today is the reference date; zero means the local current date
	Today time.Time
	// Progress receives the step-by-step console lines; nil discards them
	Progress io.Writer
	// Aliases maps sheet headers to known labels, loaded from a previous run
	Aliases map[string]string
	// Resolver is consulted once when required headers are missing; optional
	Resolver HeaderResolver
	// CandidateRows bounds how many top rows feed the resolver
	CandidateRows int
}

// Result describes one processed workbook
type Result struct {
	RunID      string
	Path       string
	Sheet      string
	Layout     *HeaderLayout
	Scope      *Scope
	Rows       []ClassifiedRow
	Vendors    []VendorSummary
	Totals     Totals
	TableAdded bool
}

// Processor runs the Firm Order Report evaluation on one workbook at a time
type Processor struct {
	opts Options
}

func NewProcessor(opts Options) *Processor {
	if opts.Progress == nil {
		opts.Progress = io.Discard
	}
	if opts.CandidateRows <= 0 {
		opts.CandidateRows = 10
	}
	return &Processor{opts: opts}
}

// Process evaluates the active sheet of the workbook at path, colors its
// rows, regenerates the summary sheet and overwrites the file in place.
// The workbook is saved once after the data table is added and once at
// the end; a failed save discards the in-memory changes.
func (p *Processor) Process(ctx context.Context, path string) (*Result, error) {
	runID := uuid.NewString()
	log := logger.WithRun(runID).With("file", path)
	log.Info("Starting report run")

	editor, err := excel.OpenFile(path)
	if err != nil {
		log.Error("Failed to open workbook", "error", err)
		return nil, &CodedError{Code: CodeFileNotFound, Message: "This file is not present on the device.", Err: err}
	}
	defer editor.Close()

	res := &Result{RunID: runID, Path: editor.Path(), Sheet: editor.ActiveSheet()}
	log = log.With("sheet", res.Sheet)

	rows, err := editor.GetRawRows(res.Sheet)
	if err != nil {
		return nil, err
	}

	err = p.step("Defining scope", func() error {
		res.Scope, err = ResolveScope(rows, p.opts.Report.StatusHeader)
		return err
	})
	if err != nil {
		log.Error("Failed to resolve scope", "error", err)
		return nil, err
	}
	log.Info("Scope resolved",
		"in_progress", len(res.Scope.InProgress()),
		"fully_received", len(res.Scope.FullyReceived()))

	err = p.step("Retrieving headers", func() error {
		res.Layout, err = p.locateHeaders(ctx, log, rows)
		return err
	})
	if err != nil {
		log.Error("Failed to locate headers", "error", err)
		return nil, err
	}
	log.Info("Headers located",
		"header_row", res.Layout.HeaderRow,
		"po_col", res.Layout.PONumberCol,
		"vendor_col", res.Layout.VendorCol,
		"due_col", res.Layout.DueDateCol,
		"due_label", res.Layout.DueDateLabel)

	err = p.step("Formatting Results", func() error {
		res.TableAdded = p.addDataTable(log, editor, res.Sheet, rows, res.Layout)
		return saveWorkbook(editor)
	})
	if err != nil {
		log.Error("Failed to save workbook", "error", err)
		return nil, err
	}

	classifier := &Classifier{
		Today:       p.today(),
		OverdueDays: p.opts.Report.OverdueDays,
		DateLayout:  p.opts.Report.DateLayout,
		Date1904:    editor.Date1904(),
		Log:         log,
	}
	err = p.step("Evaluating Firm Order Report", func() error {
		res.Rows, err = classifier.Classify(editor, res.Sheet, rows, res.Layout, res.Scope)
		return err
	})
	if err != nil {
		log.Error("Failed to classify rows", "error", err)
		return nil, err
	}

	p.step("Retrieving Summary Information", func() error {
		res.Vendors = Aggregate(res.Rows)
		res.Totals = CountBuckets(res.Rows)
		return nil
	})

	err = p.step("Generating Summary", func() error {
		err := WriteSummary(editor, res.Vendors, SummaryOptions{
			SheetName:  p.opts.Report.SummarySheet,
			TableName:  summaryTableName,
			TableStyle: p.opts.Report.TableStyle,
		})
		if err != nil {
			return err
		}
		return saveWorkbook(editor)
	})
	if err != nil {
		log.Error("Failed to write summary", "error", err)
		return nil, err
	}

	log.Info("Report run completed",
		"vendors", len(res.Vendors),
		"red", res.Totals.Red,
		"yellow", res.Totals.Yellow,
		"green", res.Totals.Green,
		"unclassified", res.Totals.Unclassified)
	return res, nil
}

func (p *Processor) step(name string, fn func() error) error {
	fmt.Fprintf(p.opts.Progress, "%s...", name)
	if err := fn(); err != nil {
		fmt.Fprintln(p.opts.Progress, "Failed")
		return err
	}
	fmt.Fprintln(p.opts.Progress, "Done")
	return nil
}

func (p *Processor) today() time.Time {
	if p.opts.Today.IsZero() {
		return time.Now()
	}
	return p.opts.Today
}

// locateHeaders applies stored aliases and, if labels are still missing,
// asks the resolver once before giving up.
func (p *Processor) locateHeaders(ctx context.Context, log *slog.Logger, rows [][]string) (*HeaderLayout, error) {
	labels := LabelsFromConfig(p.opts.Report).WithAliases(p.opts.Aliases)

	layout, err := LocateHeaders(rows, labels)
	var missing *MissingHeadersError
	if err == nil || !errors.As(err, &missing) || p.opts.Resolver == nil {
		return layout, err
	}

	log.Warn("Required headers missing, asking resolver", "missing", missing.Fields)
	aliases, rerr := p.opts.Resolver.ResolveHeaders(ctx, CandidateHeaders(rows, p.opts.CandidateRows), missing.Fields)
	if rerr != nil {
		log.Warn("Header resolver failed", "error", rerr)
		return nil, err
	}
	return LocateHeaders(rows, labels.WithAliases(aliases))
}

// addDataTable wraps the data range in a table unless the sheet already has
// one. Failures are logged and the run continues without the table.
func (p *Processor) addDataTable(log *slog.Logger, editor *excel.Editor, sheet string, rows [][]string, layout *HeaderLayout) bool {
	hasTable, err := editor.HasTable(sheet)
	if err != nil {
		log.Warn("Could not list tables", "error", err)
		return false
	}
	if hasTable {
		return false
	}

	lastCol := 0
	for _, row := range rows {
		if len(row) > lastCol {
			lastCol = len(row)
		}
	}
	lastRow := len(rows)
	if lastRow <= layout.HeaderRow {
		return false
	}

	first, _ := excelize.CoordinatesToCellName(1, layout.HeaderRow)
	last, _ := excelize.CoordinatesToCellName(lastCol, lastRow)
	if err := editor.AddTable(sheet, first+":"+last, dataTableName, p.opts.Report.TableStyle); err != nil {
		log.Warn("Could not add data table", "error", err)
		return false
	}
	return true
}

type saver interface {
	Save() error
}

// saveWorkbook overwrites the workbook; an OS-level write failure means the
// file is open elsewhere or read-only.
func saveWorkbook(editor saver) error {
	err := editor.Save()
	if err == nil {
		return nil
	}
	var pathErr *fs.PathError
	if errors.Is(err, fs.ErrPermission) || errors.As(err, &pathErr) {
		return &CodedError{
			Code:    CodeFileLocked,
			Message: "Please close the file and try again. Changes have not been saved.",
			Err:     err,
		}
	}
	return fmt.Errorf("failed to save workbook: %w", err)
}
