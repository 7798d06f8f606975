package services

import (
	"context"
	"io"
	"os"
	"time"

	"bug-report-creator/internal/logger"
	"bug-report-creator/internal/models"

	"fyne.io/fyne/v2"
	"github.com/pkg/errors"
)

// WriteFailure wraps a file system error raised while writing a report.
// Error returns the system message unchanged so it can be shown verbatim.
type WriteFailure struct {
	Target string
	Err    error
}

func (e *WriteFailure) Error() string {
	return errors.Cause(e.Err).Error()
}

func (e *WriteFailure) Unwrap() error {
	return e.Err
}

func newWriteFailure(target string, err error) *WriteFailure {
	return &WriteFailure{Target: target, Err: errors.WithStack(err)}
}

// ReportService renders report forms and writes them out
type ReportService struct {
	logger logger.Logger
}

// NewReportService creates a new report service
func NewReportService(log logger.Logger) *ReportService {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &ReportService{logger: log}
}

// WriteReport validates and renders form, then writes it to w
func (rs *ReportService) WriteReport(ctx context.Context, w io.Writer, form *models.ReportForm, ts time.Time) error {
	return rs.write(ctx, "", w, form, ts)
}

// SaveReport writes to a fyne URI writer and closes it
func (rs *ReportService) SaveReport(ctx context.Context, writer fyne.URIWriteCloser, form *models.ReportForm, ts time.Time) error {
	target := ""
	if uri := writer.URI(); uri != nil {
		target = uri.Path()
	}

	err := rs.write(ctx, target, writer, form, ts)
	if closeErr := writer.Close(); closeErr != nil && err == nil {
		err = newWriteFailure(target, closeErr)
		rs.logger.Error("ReportService", err, map[string]interface{}{"target": target})
	}
	return err
}

// SaveReportToPath creates or truncates path and writes the report into it
func (rs *ReportService) SaveReportToPath(ctx context.Context, path string, form *models.ReportForm, ts time.Time) error {
	if err := form.Validate(); err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		failure := newWriteFailure(path, err)
		rs.logger.Error("ReportService", failure, map[string]interface{}{"target": path})
		return failure
	}

	err = rs.write(ctx, path, file, form, ts)
	if closeErr := file.Close(); closeErr != nil && err == nil {
		err = newWriteFailure(path, closeErr)
		rs.logger.Error("ReportService", err, map[string]interface{}{"target": path})
	}
	return err
}

func (rs *ReportService) write(ctx context.Context, target string, w io.Writer, form *models.ReportForm, ts time.Time) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := form.Validate(); err != nil {
		return err
	}

	text := form.Render(ts)
	n, err := io.WriteString(w, text)
	if err != nil {
		failure := newWriteFailure(target, err)
		rs.logger.Error("ReportService", failure, map[string]interface{}{
			"target":  target,
			"written": n,
		})
		return failure
	}

	rs.logger.Debug("ReportService", "report written", map[string]interface{}{
		"target": target,
		"bytes":  n,
	})
	return nil
}
