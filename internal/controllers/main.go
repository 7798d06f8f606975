package controllers

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"bug-report-creator/internal/logger"
	"bug-report-creator/internal/models"
	"bug-report-creator/internal/services"

	"fyne.io/fyne/v2"
)

const (
	noAttachmentLabel = "No file selected"
	saveTimeout       = 30 * time.Second
)

// View is the presentation surface the controller drives
type View interface {
	SetSaveHandler(handler func())
	SetClearHandler(handler func())
	SetAttachHandler(handler func())
	SetFieldChangeHandler(handler func(models.Field, string))
	SetPriorityChangeHandler(handler func(string))
	SetSeverityChangeHandler(handler func(string))
	SetVersionChangeHandler(handler func(string))

	ApplyForm(form models.ReportForm)
	FocusField(field models.Field)
	SetAttachmentLabel(label string, selected bool)
	UpdateStatus(status string)

	ShowError(title string, err error)
	ShowInfo(title, message string, onClosed func())
	ShowConfirm(title, message string, callback func(bool))
	ShowSaveDialog(defaultName string, callback func(fyne.URIWriteCloser, error))
	ShowAttachmentDialog(extensions []string, callback func(fyne.URIReadCloser, error))
}

// EventHandler reacts to controller events
type EventHandler func(data interface{}) error

const (
	EventReportSaved        = "report_saved"
	EventFormReset          = "form_reset"
	EventAttachmentSelected = "attachment_selected"
)

// MainController owns the report form and mediates between view and service
type MainController struct {
	reportService *services.ReportService
	logger        logger.Logger

	mu   sync.RWMutex
	form *models.ReportForm

	view                 View
	now                  func() time.Time
	attachmentExtensions []string

	eventHandlers map[string][]EventHandler
	eventMu       sync.RWMutex
}

// NewMainController creates a controller around form
func NewMainController(reportService *services.ReportService, form *models.ReportForm, log logger.Logger) *MainController {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	if form == nil {
		form = models.NewReportForm()
	}

	mc := &MainController{
		reportService: reportService,
		logger:        log,
		form:          form,
		now:           time.Now,
		eventHandlers: make(map[string][]EventHandler),
	}

	mc.initializeEventHandlers()
	return mc
}

// SetMainView associates the view and pushes the current form into it
func (mc *MainController) SetMainView(view View) {
	mc.view = view
	mc.setupViewEventHandlers()

	view.ApplyForm(mc.State())
	mc.refreshAttachmentLabel()
}

// SetClock replaces the time source used for timestamps and file names
func (mc *MainController) SetClock(now func() time.Time) {
	mc.now = now
}

// SetAttachmentFilter limits the attachment dialog to the given extensions
func (mc *MainController) SetAttachmentFilter(extensions []string) {
	mc.attachmentExtensions = append([]string(nil), extensions...)
}

// State returns a copy of the current form
func (mc *MainController) State() models.ReportForm {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.form.Snapshot()
}

func (mc *MainController) SetTitle(v string)       { mc.SetField(models.FieldTitle, v) }
func (mc *MainController) SetDescription(v string) { mc.SetField(models.FieldDescription, v) }
func (mc *MainController) SetSteps(v string)       { mc.SetField(models.FieldSteps, v) }
func (mc *MainController) SetExpected(v string)    { mc.SetField(models.FieldExpected, v) }
func (mc *MainController) SetActual(v string)      { mc.SetField(models.FieldActual, v) }

// SetField stores the value of a required text field
func (mc *MainController) SetField(field models.Field, value string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	switch field {
	case models.FieldTitle:
		mc.form.Title = value
	case models.FieldDescription:
		mc.form.Description = value
	case models.FieldSteps:
		mc.form.Steps = value
	case models.FieldExpected:
		mc.form.Expected = value
	case models.FieldActual:
		mc.form.Actual = value
	}
}

// SetPriority parses and stores a priority display name
func (mc *MainController) SetPriority(name string) {
	p, err := models.ParsePriority(name)
	if err != nil {
		mc.logger.Warning("Controller", "ignoring priority", map[string]interface{}{"value": name})
		return
	}

	mc.mu.Lock()
	mc.form.Priority = p
	mc.mu.Unlock()
}

// SetSeverity parses and stores a severity display name
func (mc *MainController) SetSeverity(name string) {
	s, err := models.ParseSeverity(name)
	if err != nil {
		mc.logger.Warning("Controller", "ignoring severity", map[string]interface{}{"value": name})
		return
	}

	mc.mu.Lock()
	mc.form.Severity = s
	mc.mu.Unlock()
}

func (mc *MainController) SetVersion(v string) {
	mc.mu.Lock()
	mc.form.Version = v
	mc.mu.Unlock()
}

// SetAttachment records an attachment path and refreshes the label
func (mc *MainController) SetAttachment(path string) {
	mc.mu.Lock()
	mc.form.SetAttachment(path)
	mc.mu.Unlock()

	mc.refreshAttachmentLabel()
	mc.emitEvent(EventAttachmentSelected, path)
}

// SaveReport validates the form, asks for a destination and writes the report
func (mc *MainController) SaveReport() {
	if mc.view == nil {
		return
	}

	mc.mu.RLock()
	err := mc.form.Validate()
	mc.mu.RUnlock()

	if field, ok := models.IsMissingField(err); ok {
		mc.logger.Debug("Controller", "validation failed", map[string]interface{}{"field": field.Label()})
		mc.view.ShowError("Error", err)
		mc.view.FocusField(field)
		return
	}

	mc.view.ShowSaveDialog(models.DefaultFileName(mc.now()), func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mc.handleError("Save Error", err)
			return
		}
		if writer == nil {
			mc.view.UpdateStatus("Save cancelled")
			return
		}
		mc.saveToWriter(writer)
	})
}

func (mc *MainController) saveToWriter(writer fyne.URIWriteCloser) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	mc.mu.RLock()
	form := mc.form.Snapshot()
	mc.mu.RUnlock()

	name := ""
	if uri := writer.URI(); uri != nil {
		name = uri.Name()
	}

	if err := mc.reportService.SaveReport(ctx, writer, &form, mc.now()); err != nil {
		var failure *services.WriteFailure
		if errors.As(err, &failure) {
			mc.handleError("Save Error", errors.New("Error saving file: "+failure.Error()))
		} else {
			mc.handleError("Save Error", err)
		}
		mc.view.UpdateStatus("Save failed")
		return
	}

	mc.view.UpdateStatus("Saved " + name)
	mc.emitEvent(EventReportSaved, name)

	mc.view.ShowInfo("Success", "Bug report saved successfully!\n\nFile: "+name, func() {
		mc.view.ShowConfirm("Continue?", "Would you like to create another bug report?", func(another bool) {
			if another {
				mc.ClearForm()
			}
		})
	})
}

// ClearForm asks for confirmation and then resets the form
func (mc *MainController) ClearForm() {
	if mc.view == nil {
		return
	}

	mc.view.ShowConfirm("Confirm", "Clear all fields?", func(confirmed bool) {
		if confirmed {
			mc.Reset()
		}
	})
}

// Reset restores defaults without asking
func (mc *MainController) Reset() {
	mc.mu.Lock()
	mc.form.Reset()
	form := mc.form.Snapshot()
	mc.mu.Unlock()

	if mc.view != nil {
		mc.view.ApplyForm(form)
		mc.view.UpdateStatus("Ready")
	}
	mc.refreshAttachmentLabel()
	mc.emitEvent(EventFormReset, nil)
}

// ChooseAttachment opens the file dialog and stores the selected path
func (mc *MainController) ChooseAttachment() {
	if mc.view == nil {
		return
	}

	mc.view.ShowAttachmentDialog(mc.attachmentExtensions, func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mc.handleError("Attachment Error", err)
			return
		}
		if reader == nil {
			return
		}
		// only the path is kept
		defer reader.Close()

		path := reader.URI().Path()
		if abs, absErr := filepath.Abs(path); absErr == nil {
			path = abs
		}
		mc.SetAttachment(path)
	})
}

func (mc *MainController) refreshAttachmentLabel() {
	if mc.view == nil {
		return
	}

	mc.mu.RLock()
	path, ok := mc.form.Attachment()
	mc.mu.RUnlock()

	if !ok {
		mc.view.SetAttachmentLabel(noAttachmentLabel, false)
		return
	}
	mc.view.SetAttachmentLabel(filepath.Base(path), true)
}

// setupViewEventHandlers connects view callbacks to controller methods
func (mc *MainController) setupViewEventHandlers() {
	mc.view.SetSaveHandler(mc.SaveReport)
	mc.view.SetClearHandler(mc.ClearForm)
	mc.view.SetAttachHandler(mc.ChooseAttachment)
	mc.view.SetFieldChangeHandler(mc.SetField)
	mc.view.SetPriorityChangeHandler(mc.SetPriority)
	mc.view.SetSeverityChangeHandler(mc.SetSeverity)
	mc.view.SetVersionChangeHandler(mc.SetVersion)
}

func (mc *MainController) initializeEventHandlers() {
	mc.AddEventListener(EventReportSaved, mc.onReportSaved)
	mc.AddEventListener(EventFormReset, mc.onFormReset)
	mc.AddEventListener(EventAttachmentSelected, mc.onAttachmentSelected)
}

// AddEventListener registers handler for eventType
func (mc *MainController) AddEventListener(eventType string, handler EventHandler) {
	mc.eventMu.Lock()
	defer mc.eventMu.Unlock()
	mc.eventHandlers[eventType] = append(mc.eventHandlers[eventType], handler)
}

// emitEvent runs handlers in registration order on the calling goroutine
func (mc *MainController) emitEvent(eventType string, data interface{}) {
	mc.eventMu.RLock()
	handlers := append([]EventHandler(nil), mc.eventHandlers[eventType]...)
	mc.eventMu.RUnlock()

	for _, h := range handlers {
		if err := h(data); err != nil {
			mc.logger.Error("Controller", err, map[string]interface{}{"event": eventType})
		}
	}
}

func (mc *MainController) onReportSaved(data interface{}) error {
	name, ok := data.(string)
	if !ok {
		return fmt.Errorf("invalid data type for %s event", EventReportSaved)
	}
	mc.logger.Info("Controller", "report saved", map[string]interface{}{"file": name})
	return nil
}

func (mc *MainController) onFormReset(interface{}) error {
	mc.logger.Info("Controller", "form reset", nil)
	return nil
}

func (mc *MainController) onAttachmentSelected(data interface{}) error {
	path, ok := data.(string)
	if !ok {
		return fmt.Errorf("invalid data type for %s event", EventAttachmentSelected)
	}
	mc.logger.Info("Controller", "attachment selected", map[string]interface{}{"path": path})
	return nil
}

// handleError shows err to the user and logs it
func (mc *MainController) handleError(title string, err error) {
	mc.logger.Error("Controller", err, map[string]interface{}{"title": title})
	if mc.view != nil {
		mc.view.ShowError(title, err)
	}
}

// Shutdown logs the final form state
func (mc *MainController) Shutdown() {
	mc.mu.RLock()
	pending := mc.form.Validate() == nil
	mc.mu.RUnlock()

	mc.logger.Info("Controller", "shutdown", map[string]interface{}{"unsaved_valid_form": pending})
}
