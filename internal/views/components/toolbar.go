package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Toolbar holds the form actions
type Toolbar struct {
	container   *fyne.Container
	clearButton *widget.Button
	saveButton  *widget.Button

	clearHandler func()
	saveHandler  func()
}

// NewToolbar creates a new toolbar component
func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents()
	toolbar.buildLayout()
	toolbar.setupEventHandlers()
	return toolbar
}

func (t *Toolbar) createComponents() {
	t.clearButton = widget.NewButton("Clear All", nil)
	t.clearButton.Importance = widget.MediumImportance

	t.saveButton = widget.NewButton("Save Report", nil)
	t.saveButton.Importance = widget.HighImportance
}

func (t *Toolbar) buildLayout() {
	t.container = container.NewCenter(container.NewHBox(t.clearButton, t.saveButton))
}

func (t *Toolbar) setupEventHandlers() {
	t.clearButton.OnTapped = func() {
		if t.clearHandler != nil {
			t.clearHandler()
		}
	}

	t.saveButton.OnTapped = func() {
		if t.saveHandler != nil {
			t.saveHandler()
		}
	}
}

// SetClearHandler sets the clear form handler
func (t *Toolbar) SetClearHandler(handler func()) {
	t.clearHandler = handler
}

// SetSaveHandler sets the save report handler
func (t *Toolbar) SetSaveHandler(handler func()) {
	t.saveHandler = handler
}

func (t *Toolbar) ClearButton() *widget.Button {
	return t.clearButton
}

func (t *Toolbar) SaveButton() *widget.Button {
	return t.saveButton
}

// GetContainer returns the toolbar container
func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}
