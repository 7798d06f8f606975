package controllers

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bug-report-creator/internal/models"
	"bug-report-creator/internal/services"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stamp = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

type shownError struct {
	title string
	msg   string
}

type fakeView struct {
	save, clear, attach func()
	fieldChange         func(models.Field, string)
	priorityChange      func(string)
	severityChange      func(string)
	versionChange       func(string)

	applied         []models.ReportForm
	focused         []models.Field
	attachmentLabel string
	attachmentSet   bool
	status          string
	errors          []shownError
	infos           []string
	confirms        []string

	confirmAnswers []bool
	saveName       string
	saveWriter     fyne.URIWriteCloser
	saveErr        error
	attachReader   fyne.URIReadCloser
	attachFilter   []string
}

func (v *fakeView) SetSaveHandler(h func())                            { v.save = h }
func (v *fakeView) SetClearHandler(h func())                           { v.clear = h }
func (v *fakeView) SetAttachHandler(h func())                          { v.attach = h }
func (v *fakeView) SetFieldChangeHandler(h func(models.Field, string)) { v.fieldChange = h }
func (v *fakeView) SetPriorityChangeHandler(h func(string))            { v.priorityChange = h }
func (v *fakeView) SetSeverityChangeHandler(h func(string))            { v.severityChange = h }
func (v *fakeView) SetVersionChangeHandler(h func(string))             { v.versionChange = h }

func (v *fakeView) ApplyForm(form models.ReportForm) { v.applied = append(v.applied, form) }
func (v *fakeView) FocusField(field models.Field)    { v.focused = append(v.focused, field) }
func (v *fakeView) UpdateStatus(status string)       { v.status = status }

func (v *fakeView) SetAttachmentLabel(label string, selected bool) {
	v.attachmentLabel = label
	v.attachmentSet = selected
}

func (v *fakeView) ShowError(title string, err error) {
	v.errors = append(v.errors, shownError{title: title, msg: err.Error()})
}

func (v *fakeView) ShowInfo(title, message string, onClosed func()) {
	v.infos = append(v.infos, message)
	if onClosed != nil {
		onClosed()
	}
}

func (v *fakeView) ShowConfirm(title, message string, callback func(bool)) {
	v.confirms = append(v.confirms, message)
	answer := false
	if len(v.confirmAnswers) > 0 {
		answer = v.confirmAnswers[0]
		v.confirmAnswers = v.confirmAnswers[1:]
	}
	callback(answer)
}

func (v *fakeView) ShowSaveDialog(defaultName string, callback func(fyne.URIWriteCloser, error)) {
	v.saveName = defaultName
	callback(v.saveWriter, v.saveErr)
}

func (v *fakeView) ShowAttachmentDialog(extensions []string, callback func(fyne.URIReadCloser, error)) {
	v.attachFilter = extensions
	callback(v.attachReader, nil)
}

type memWriter struct {
	bytes.Buffer
	uri      fyne.URI
	writeErr error
}

func (w *memWriter) Write(p []byte) (int, error) {
	if w.writeErr != nil {
		return 0, w.writeErr
	}
	return w.Buffer.Write(p)
}

func (w *memWriter) URI() fyne.URI { return w.uri }
func (w *memWriter) Close() error  { return nil }

type pathReader struct {
	uri    fyne.URI
	closed bool
}

func (r *pathReader) Read([]byte) (int, error) { return 0, errors.New("not read") }
func (r *pathReader) URI() fyne.URI            { return r.uri }
func (r *pathReader) Close() error {
	r.closed = true
	return nil
}

func newTestController() (*MainController, *fakeView) {
	mc := NewMainController(services.NewReportService(nil), nil, nil)
	mc.SetClock(func() time.Time { return stamp })
	view := &fakeView{}
	mc.SetMainView(view)
	return mc, view
}

func fillRequired(view *fakeView) {
	view.fieldChange(models.FieldTitle, "Login fails")
	view.fieldChange(models.FieldDescription, "Cannot log in")
	view.fieldChange(models.FieldSteps, "1. Open app 2. Enter creds")
	view.fieldChange(models.FieldExpected, "Logged in")
	view.fieldChange(models.FieldActual, "Error shown")
}

func TestSetMainViewWiresHandlersAndDefaults(t *testing.T) {
	_, view := newTestController()

	assert.NotNil(t, view.save)
	assert.NotNil(t, view.clear)
	assert.NotNil(t, view.attach)
	require.Len(t, view.applied, 1)
	assert.Equal(t, *models.NewReportForm(), view.applied[0])
	assert.Equal(t, "No file selected", view.attachmentLabel)
	assert.False(t, view.attachmentSet)
}

func TestViewEditsReachForm(t *testing.T) {
	mc, view := newTestController()

	fillRequired(view)
	view.priorityChange("High")
	view.severityChange("Major")
	view.versionChange("2.1.0")
	view.priorityChange("bogus")

	state := mc.State()
	assert.Equal(t, "Login fails", state.Title)
	assert.Equal(t, "Error shown", state.Actual)
	assert.Equal(t, models.PriorityHigh, state.Priority)
	assert.Equal(t, models.SeverityMajor, state.Severity)
	assert.Equal(t, "2.1.0", state.Version)
}

func TestSaveWithMissingFieldShowsErrorAndFocuses(t *testing.T) {
	mc, view := newTestController()
	mc.SetTitle("Title")
	mc.SetDescription("   ")

	view.save()

	require.Len(t, view.errors, 1)
	assert.Equal(t, "Description is required!", view.errors[0].msg)
	assert.Equal(t, []models.Field{models.FieldDescription}, view.focused)
	assert.Empty(t, view.saveName, "save dialog must not open")
}

func TestSaveCancelledDialogIsNoOp(t *testing.T) {
	mc, view := newTestController()
	fillRequired(view)

	mc.SaveReport()

	assert.Equal(t, "bug_report_20240115_103000.txt", view.saveName)
	assert.Empty(t, view.errors)
	assert.Empty(t, view.infos)
	assert.Equal(t, "Save cancelled", view.status)
}

func TestSaveWritesReportAndOffersAnother(t *testing.T) {
	mc, view := newTestController()
	fillRequired(view)
	view.priorityChange("High")
	view.severityChange("Major")
	view.versionChange("2.1.0")
	writer := &memWriter{uri: storage.NewFileURI("/tmp/bug_report_20240115_103000.txt")}
	view.saveWriter = writer

	mc.SaveReport()

	expected := mc.State()
	assert.Equal(t, expected.Render(stamp), writer.String())
	assert.True(t, strings.HasPrefix(writer.String(), "===============================\n       BUG REPORT\n"))
	assert.Equal(t, []string{"Bug report saved successfully!\n\nFile: bug_report_20240115_103000.txt"}, view.infos)
	assert.Equal(t, []string{"Would you like to create another bug report?"}, view.confirms)
	assert.Equal(t, "Login fails", mc.State().Title, "declining keeps the form")
}

func TestSaveThenAnotherClearsAfterConfirmation(t *testing.T) {
	mc, view := newTestController()
	fillRequired(view)
	mc.SetAttachment("/tmp/trace.log")
	view.saveWriter = &memWriter{uri: storage.NewFileURI("/tmp/out.txt")}
	view.confirmAnswers = []bool{true, true}

	mc.SaveReport()

	assert.Equal(t, []string{"Would you like to create another bug report?", "Clear all fields?"}, view.confirms)
	assert.Equal(t, *models.NewReportForm(), mc.State())
	assert.Equal(t, "No file selected", view.attachmentLabel)
}

func TestSaveFailureShowsRawMessage(t *testing.T) {
	mc, view := newTestController()
	fillRequired(view)
	view.saveWriter = &memWriter{uri: storage.NewFileURI("/tmp/out.txt"), writeErr: errors.New("permission denied")}

	mc.SaveReport()

	require.Len(t, view.errors, 1)
	assert.Equal(t, "Save Error", view.errors[0].title)
	assert.Equal(t, "Error saving file: permission denied", view.errors[0].msg)
	assert.Empty(t, view.infos)
	assert.Equal(t, "Save failed", view.status)
}

func TestSaveDialogErrorIsShown(t *testing.T) {
	mc, view := newTestController()
	fillRequired(view)
	view.saveErr = errors.New("dialog failed")

	mc.SaveReport()

	require.Len(t, view.errors, 1)
	assert.Equal(t, "dialog failed", view.errors[0].msg)
}

func TestClearFormRequiresConfirmation(t *testing.T) {
	mc, view := newTestController()
	fillRequired(view)

	view.clear()
	assert.Equal(t, "Login fails", mc.State().Title)

	view.confirmAnswers = []bool{true}
	view.clear()
	assert.Equal(t, *models.NewReportForm(), mc.State())
	assert.Equal(t, "Ready", view.status)

	state := mc.State()
	_, ok := models.IsMissingField(state.Validate())
	assert.True(t, ok)
}

func TestChooseAttachmentStoresAbsolutePath(t *testing.T) {
	mc, view := newTestController()
	mc.SetAttachmentFilter([]string{".png", ".log"})
	dir := t.TempDir()
	path := filepath.Join(dir, "screen.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0o644))
	reader := &pathReader{uri: storage.NewFileURI(path)}
	view.attachReader = reader

	view.attach()

	state := mc.State()
	got, ok := state.Attachment()
	require.True(t, ok)
	assert.Equal(t, path, got)
	assert.True(t, reader.closed)
	assert.Equal(t, "screen.png", view.attachmentLabel)
	assert.True(t, view.attachmentSet)
	assert.Equal(t, []string{".png", ".log"}, view.attachFilter)
}

func TestChooseAttachmentCancelledKeepsState(t *testing.T) {
	mc, view := newTestController()

	view.attach()

	state := mc.State()
	_, ok := state.Attachment()
	assert.False(t, ok)
}

func TestEventListenersRunInOrder(t *testing.T) {
	mc, _ := newTestController()
	var seen []string
	mc.AddEventListener(EventFormReset, func(interface{}) error {
		seen = append(seen, "first")
		return nil
	})
	mc.AddEventListener(EventFormReset, func(interface{}) error {
		seen = append(seen, "second")
		return errors.New("ignored")
	})

	mc.Reset()

	assert.Equal(t, []string{"first", "second"}, seen)
}
