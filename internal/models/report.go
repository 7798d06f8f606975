package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultVersion = "1.0.0"

	createdLayout  = "02/01/2006 15:04:05"
	fileNameLayout = "20060102_150405"
	separatorLine  = "==============================="
)

// Priority is the urgency assigned to a report
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

var priorityNames = []string{"Low", "Medium", "High", "Critical"}

func (p Priority) String() string {
	if p < 0 || int(p) >= len(priorityNames) {
		return "Unknown"
	}
	return priorityNames[p]
}

// Priorities returns display names in declaration order
func Priorities() []string {
	return append([]string(nil), priorityNames...)
}

// ParsePriority converts a display name into a Priority
func ParsePriority(name string) (Priority, error) {
	for i, n := range priorityNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return Priority(i), nil
		}
	}
	return PriorityMedium, fmt.Errorf("unknown priority %q", name)
}

// Severity is the impact assigned to a report
type Severity int

const (
	SeverityMinor Severity = iota
	SeverityMajor
	SeverityBlocker
)

var severityNames = []string{"Minor", "Major", "Blocker"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "Unknown"
	}
	return severityNames[s]
}

// Severities returns display names in declaration order
func Severities() []string {
	return append([]string(nil), severityNames...)
}

// ParseSeverity converts a display name into a Severity
func ParseSeverity(name string) (Severity, error) {
	for i, n := range severityNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return Severity(i), nil
		}
	}
	return SeverityMinor, fmt.Errorf("unknown severity %q", name)
}

// Field identifies one of the required text inputs
type Field int

const (
	FieldTitle Field = iota
	FieldDescription
	FieldSteps
	FieldExpected
	FieldActual
)

// RequiredFields lists required fields in validation order
var RequiredFields = []Field{FieldTitle, FieldDescription, FieldSteps, FieldExpected, FieldActual}

var fieldLabels = map[Field]string{
	FieldTitle:       "Title",
	FieldDescription: "Description",
	FieldSteps:       "Steps to Reproduce",
	FieldExpected:    "Expected Result",
	FieldActual:      "Actual Result",
}

// Label returns the name shown to the user for the field
func (f Field) Label() string {
	if label, ok := fieldLabels[f]; ok {
		return label
	}
	return "Unknown"
}

func (f Field) String() string {
	return f.Label()
}

// MissingFieldError reports the first required field that is blank
type MissingFieldError struct {
	Field Field
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required!", e.Field.Label())
}

// IsMissingField reports whether err carries a MissingFieldError and which field it names
func IsMissingField(err error) (Field, bool) {
	var mf *MissingFieldError
	if errors.As(err, &mf) {
		return mf.Field, true
	}
	return 0, false
}

// ReportForm holds the current values of a bug report
type ReportForm struct {
	Title       string
	Description string
	Steps       string
	Expected    string
	Actual      string
	Priority    Priority
	Severity    Severity
	Version     string

	attachmentPath string
	hasAttachment  bool
}

// NewReportForm creates a form populated with defaults
func NewReportForm() *ReportForm {
	f := &ReportForm{}
	f.Reset()
	return f
}

// Value returns the raw value of a required field
func (f *ReportForm) Value(field Field) string {
	switch field {
	case FieldTitle:
		return f.Title
	case FieldDescription:
		return f.Description
	case FieldSteps:
		return f.Steps
	case FieldExpected:
		return f.Expected
	case FieldActual:
		return f.Actual
	}
	return ""
}

// Validate returns a MissingFieldError for the first blank required field
func (f *ReportForm) Validate() error {
	for _, field := range RequiredFields {
		if strings.TrimSpace(f.Value(field)) == "" {
			return &MissingFieldError{Field: field}
		}
	}
	return nil
}

// Render formats the form into the report text. It does not validate.
func (f *ReportForm) Render(ts time.Time) string {
	var b strings.Builder

	b.WriteString(separatorLine + "\n")
	b.WriteString("       BUG REPORT\n")
	b.WriteString(separatorLine + "\n")
	b.WriteString("Created: " + ts.Format(createdLayout) + "\n\n")

	b.WriteString("BASIC INFO:\n")
	b.WriteString("Title: " + strings.TrimSpace(f.Title) + "\n")
	b.WriteString("Priority: " + f.Priority.String() + "\n")
	b.WriteString("Severity: " + f.Severity.String() + "\n")
	b.WriteString("Version: " + strings.TrimSpace(f.Version) + "\n\n")

	writeSection(&b, "DESCRIPTION:", f.Description)
	writeSection(&b, "STEPS TO REPRODUCE:", f.Steps)
	writeSection(&b, "EXPECTED RESULT:", f.Expected)
	writeSection(&b, "ACTUAL RESULT:", f.Actual)

	if path, ok := f.Attachment(); ok {
		b.WriteString("ATTACHMENT:\n")
		b.WriteString("File: " + path + "\n\n")
	}

	b.WriteString(separatorLine + "\n")
	b.WriteString("       END OF REPORT\n")
	b.WriteString(separatorLine + "\n")

	return b.String()
}

func writeSection(b *strings.Builder, heading, body string) {
	b.WriteString(heading + "\n")
	b.WriteString(strings.TrimSpace(body) + "\n\n")
}

// Reset restores every field to its default
func (f *ReportForm) Reset() {
	*f = ReportForm{
		Priority: PriorityMedium,
		Severity: SeverityMinor,
		Version:  DefaultVersion,
	}
}

// SetAttachment stores the path of a selected file. No existence check is made.
func (f *ReportForm) SetAttachment(path string) {
	f.attachmentPath = path
	f.hasAttachment = true
}

// ClearAttachment removes the attachment reference
func (f *ReportForm) ClearAttachment() {
	f.attachmentPath = ""
	f.hasAttachment = false
}

// Attachment returns the attachment path and whether one is set
func (f *ReportForm) Attachment() (string, bool) {
	return f.attachmentPath, f.hasAttachment
}

// Snapshot returns a copy safe to hand to read-only consumers
func (f *ReportForm) Snapshot() ReportForm {
	return *f
}

// DefaultFileName suggests an output file name for a report captured at ts
func DefaultFileName(ts time.Time) string {
	return "bug_report_" + ts.Format(fileNameLayout) + ".txt"
}
