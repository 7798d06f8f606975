package components

import (
	"bug-report-creator/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// FormPanel holds the report input widgets
type FormPanel struct {
	container *container.Scroll

	titleEntry       *widget.Entry
	descriptionEntry *widget.Entry
	stepsEntry       *widget.Entry
	expectedEntry    *widget.Entry
	actualEntry      *widget.Entry
	versionEntry     *widget.Entry
	prioritySelect   *widget.Select
	severitySelect   *widget.Select
	attachButton     *widget.Button
	attachmentLabel  *widget.Label

	fieldChangeHandler    func(models.Field, string)
	priorityChangeHandler func(string)
	severityChangeHandler func(string)
	versionChangeHandler  func(string)
	attachHandler         func()
}

// NewFormPanel creates the form panel component
func NewFormPanel() *FormPanel {
	fp := &FormPanel{}
	fp.createComponents()
	fp.buildLayout()
	fp.setupEventHandlers()
	return fp
}

func (fp *FormPanel) createComponents() {
	fp.titleEntry = widget.NewEntry()
	fp.titleEntry.SetPlaceHolder("Enter the bug title")

	fp.descriptionEntry = newMultiLine("Describe the bug in detail", 4)
	fp.stepsEntry = newMultiLine("List steps to reproduce the bug", 4)
	fp.expectedEntry = newMultiLine("Describe the expected behavior", 3)
	fp.actualEntry = newMultiLine("Describe the actual behavior", 3)

	fp.versionEntry = widget.NewEntry()
	fp.versionEntry.SetText(models.DefaultVersion)
	fp.versionEntry.SetPlaceHolder("Enter the software version")

	fp.prioritySelect = widget.NewSelect(models.Priorities(), nil)
	fp.prioritySelect.SetSelected(models.PriorityMedium.String())

	fp.severitySelect = widget.NewSelect(models.Severities(), nil)
	fp.severitySelect.SetSelected(models.SeverityMinor.String())

	fp.attachButton = widget.NewButton("Choose File", nil)
	fp.attachmentLabel = widget.NewLabel("No file selected")
	fp.attachmentLabel.Importance = widget.LowImportance
}

func newMultiLine(placeholder string, rows int) *widget.Entry {
	entry := widget.NewMultiLineEntry()
	entry.Wrapping = fyne.TextWrapWord
	entry.SetMinRowsVisible(rows)
	entry.SetPlaceHolder(placeholder)
	return entry
}

func requiredLabel(text string) *widget.Label {
	label := widget.NewLabel(text + " (Required):")
	label.Importance = widget.DangerImportance
	return label
}

func (fp *FormPanel) buildLayout() {
	heading := widget.NewLabelWithStyle("Create Bug Report", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	classification := container.NewHBox(
		widget.NewLabel("Priority:"),
		fp.prioritySelect,
		layout.NewSpacer(),
		widget.NewLabel("Severity:"),
		fp.severitySelect,
	)

	attachment := container.NewHBox(fp.attachButton, fp.attachmentLabel)

	content := container.NewVBox(
		heading,
		requiredLabel("Bug Title"), fp.titleEntry,
		requiredLabel("Description"), fp.descriptionEntry,
		widget.NewLabel("Classification:"), classification,
		widget.NewLabel("Version:"), fp.versionEntry,
		requiredLabel("Steps to Reproduce"), fp.stepsEntry,
		requiredLabel("Expected Result"), fp.expectedEntry,
		requiredLabel("Actual Result"), fp.actualEntry,
		widget.NewLabel("Attachment:"), attachment,
	)

	fp.container = container.NewVScroll(container.NewPadded(content))
}

func (fp *FormPanel) setupEventHandlers() {
	for field, entry := range fp.requiredEntries() {
		field := field // per-iteration copy; go.mod targets go 1.21 loop semantics
		entry.OnChanged = func(text string) {
			if fp.fieldChangeHandler != nil {
				fp.fieldChangeHandler(field, text)
			}
		}
	}

	fp.versionEntry.OnChanged = func(text string) {
		if fp.versionChangeHandler != nil {
			fp.versionChangeHandler(text)
		}
	}

	fp.prioritySelect.OnChanged = func(value string) {
		if fp.priorityChangeHandler != nil {
			fp.priorityChangeHandler(value)
		}
	}

	fp.severitySelect.OnChanged = func(value string) {
		if fp.severityChangeHandler != nil {
			fp.severityChangeHandler(value)
		}
	}

	fp.attachButton.OnTapped = func() {
		if fp.attachHandler != nil {
			fp.attachHandler()
		}
	}
}

func (fp *FormPanel) requiredEntries() map[models.Field]*widget.Entry {
	return map[models.Field]*widget.Entry{
		models.FieldTitle:       fp.titleEntry,
		models.FieldDescription: fp.descriptionEntry,
		models.FieldSteps:       fp.stepsEntry,
		models.FieldExpected:    fp.expectedEntry,
		models.FieldActual:      fp.actualEntry,
	}
}

func (fp *FormPanel) SetFieldChangeHandler(handler func(models.Field, string)) {
	fp.fieldChangeHandler = handler
}

func (fp *FormPanel) SetPriorityChangeHandler(handler func(string)) {
	fp.priorityChangeHandler = handler
}

func (fp *FormPanel) SetSeverityChangeHandler(handler func(string)) {
	fp.severityChangeHandler = handler
}

func (fp *FormPanel) SetVersionChangeHandler(handler func(string)) {
	fp.versionChangeHandler = handler
}

func (fp *FormPanel) SetAttachHandler(handler func()) {
	fp.attachHandler = handler
}

// SetForm copies form values into the widgets
func (fp *FormPanel) SetForm(form models.ReportForm) {
	for field, entry := range fp.requiredEntries() {
		entry.SetText(form.Value(field))
	}
	fp.versionEntry.SetText(form.Version)
	fp.prioritySelect.SetSelected(form.Priority.String())
	fp.severitySelect.SetSelected(form.Severity.String())
}

// SetAttachmentLabel shows the attachment name, dimmed when nothing is selected
func (fp *FormPanel) SetAttachmentLabel(text string, selected bool) {
	if selected {
		fp.attachmentLabel.Importance = widget.MediumImportance
	} else {
		fp.attachmentLabel.Importance = widget.LowImportance
	}
	fp.attachmentLabel.SetText(text)
}

// AttachmentLabel returns the text currently shown next to the attach button
func (fp *FormPanel) AttachmentLabel() string {
	return fp.attachmentLabel.Text
}

// Entry returns the input widget for a required field
func (fp *FormPanel) Entry(field models.Field) *widget.Entry {
	return fp.requiredEntries()[field]
}

func (fp *FormPanel) VersionEntry() *widget.Entry {
	return fp.versionEntry
}

func (fp *FormPanel) PrioritySelect() *widget.Select {
	return fp.prioritySelect
}

func (fp *FormPanel) SeveritySelect() *widget.Select {
	return fp.severitySelect
}

func (fp *FormPanel) AttachButton() *widget.Button {
	return fp.attachButton
}

// GetContainer returns the scrollable form
func (fp *FormPanel) GetContainer() fyne.CanvasObject {
	return fp.container
}
