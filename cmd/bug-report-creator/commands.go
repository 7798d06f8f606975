package main

import (
	"fmt"
	"path/filepath"
	"time"

	"bug-report-creator/internal/app"
	"bug-report-creator/internal/config"
	"bug-report-creator/internal/logger"
	"bug-report-creator/internal/models"
	"bug-report-creator/internal/services"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var now = time.Now

func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn or error (overrides LOG_LEVEL)",
		},
		&cli.BoolFlag{
			Name:  "json-logs",
			Usage: "emit JSON log lines on stderr",
		},
	}
}

func WriteFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Usage: "bug title (required)"},
		&cli.StringFlag{Name: "description", Usage: "bug description (required)"},
		&cli.StringFlag{Name: "steps", Usage: "steps to reproduce (required)"},
		&cli.StringFlag{Name: "expected", Usage: "expected result (required)"},
		&cli.StringFlag{Name: "actual", Usage: "actual result (required)"},
		&cli.StringFlag{Name: "priority", Value: models.PriorityMedium.String(), Usage: "Low, Medium, High or Critical"},
		&cli.StringFlag{Name: "severity", Value: models.SeverityMinor.String(), Usage: "Minor, Major or Blocker"},
		&cli.StringFlag{Name: "software-version", Value: models.DefaultVersion, Usage: "software version"},
		&cli.StringFlag{Name: "attachment", Usage: "path of a file to reference"},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output file (default bug_report_<timestamp>.txt in the save dir)"},
		&cli.StringFlag{Name: "save-dir", Usage: "directory for the default output file (overrides BUGREPORT_SAVE_DIR)"},
	}
}

func loadConfig(ctx *cli.Context) *config.Config {
	cfg := config.Load()
	if ctx.IsSet("log-level") {
		cfg.LogLevel = logger.ParseLevel(ctx.String("log-level"))
	}
	if ctx.IsSet("json-logs") {
		cfg.JSONLogs = ctx.Bool("json-logs")
	}
	return cfg
}

// GUI opens the desktop form
func GUI(ctx *cli.Context) error {
	cfg := loadConfig(ctx)
	log := logger.New(cfg.LogLevel, cfg.JSONLogs)

	log.Info("Main", "starting application", map[string]interface{}{
		"version":   app.AppVersion,
		"log_level": cfg.LogLevel.String(),
	})

	return app.NewApplication(cfg, log).Run()
}

// Write builds a report from flags and saves it
func Write(ctx *cli.Context) error {
	cfg := loadConfig(ctx)
	if ctx.IsSet("save-dir") {
		cfg.SaveDir = ctx.String("save-dir")
	}
	log := logger.New(cfg.LogLevel, cfg.JSONLogs)

	form, err := formFromFlags(ctx)
	if err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return err
	}

	ts := now()
	output := ctx.String("output")
	if output == "" {
		output = filepath.Join(cfg.SaveDir, models.DefaultFileName(ts))
	}

	svc := services.NewReportService(log)
	if err := svc.SaveReportToPath(ctx.Context, output, form, ts); err != nil {
		return errors.New("Error saving file: " + err.Error())
	}

	log.Info("Main", "report written", map[string]interface{}{"file": output})
	fmt.Fprintln(ctx.App.Writer, output)
	return nil
}

func formFromFlags(ctx *cli.Context) (*models.ReportForm, error) {
	form := models.NewReportForm()
	form.Title = ctx.String("title")
	form.Description = ctx.String("description")
	form.Steps = ctx.String("steps")
	form.Expected = ctx.String("expected")
	form.Actual = ctx.String("actual")
	form.Version = ctx.String("software-version")

	priority, err := models.ParsePriority(ctx.String("priority"))
	if err != nil {
		return nil, err
	}
	form.Priority = priority

	severity, err := models.ParseSeverity(ctx.String("severity"))
	if err != nil {
		return nil, err
	}
	form.Severity = severity

	if attachment := ctx.String("attachment"); attachment != "" {
		abs, err := filepath.Abs(attachment)
		if err != nil {
			return nil, errors.Wrap(err, "resolve attachment path")
		}
		form.SetAttachment(abs)
	}

	return form, nil
}
