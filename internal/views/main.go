package views

import (
	"bug-report-creator/internal/models"
	"bug-report-creator/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// MainView is the bug report window
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	form          *components.FormPanel
	toolbar       *components.Toolbar
	statusBar     *components.StatusBar

	saveHandler   func()
	clearHandler  func()
	attachHandler func()

	// focus requested while an error dialog is open is applied once it closes
	errorDialog  dialog.Dialog
	pendingFocus fyne.Focusable
}

// NewMainView creates the view and installs it as the window content
func NewMainView(window fyne.Window) *MainView {
	view := &MainView{
		window: window,
	}

	view.initializeComponents()
	view.buildLayout()
	view.setupEventHandlers()
	view.setupMenus()

	return view
}

func (mv *MainView) initializeComponents() {
	mv.form = components.NewFormPanel()
	mv.toolbar = components.NewToolbar()
	mv.statusBar = components.NewStatusBar()
}

func (mv *MainView) buildLayout() {
	bottomArea := container.NewVBox(
		mv.toolbar.GetContainer(),
		mv.statusBar.GetContainer(),
	)

	mv.mainContainer = container.NewBorder(
		nil,        // top
		bottomArea, // bottom
		nil,        // left
		nil,        // right
		mv.form.GetContainer(),
	)

	mv.window.SetContent(mv.mainContainer)
}

// setupEventHandlers routes toolbar and form actions through the controller-set handlers
func (mv *MainView) setupEventHandlers() {
	mv.toolbar.SetSaveHandler(mv.onSave)
	mv.toolbar.SetClearHandler(mv.onClear)
	mv.form.SetAttachHandler(mv.onAttach)
}

func (mv *MainView) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Save Report...", mv.onSave),
		fyne.NewMenuItem("Attach File...", mv.onAttach),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear All", mv.onClear),
	)

	mv.window.SetMainMenu(fyne.NewMainMenu(fileMenu))
}

func (mv *MainView) onSave() {
	if mv.saveHandler != nil {
		mv.saveHandler()
	}
}

func (mv *MainView) onClear() {
	if mv.clearHandler != nil {
		mv.clearHandler()
	}
}

func (mv *MainView) onAttach() {
	if mv.attachHandler != nil {
		mv.attachHandler()
	}
}

// Event handler setters - called by controller

func (mv *MainView) SetSaveHandler(handler func()) {
	mv.saveHandler = handler
}

func (mv *MainView) SetClearHandler(handler func()) {
	mv.clearHandler = handler
}

func (mv *MainView) SetAttachHandler(handler func()) {
	mv.attachHandler = handler
}

func (mv *MainView) SetFieldChangeHandler(handler func(models.Field, string)) {
	mv.form.SetFieldChangeHandler(handler)
}

func (mv *MainView) SetPriorityChangeHandler(handler func(string)) {
	mv.form.SetPriorityChangeHandler(handler)
}

func (mv *MainView) SetSeverityChangeHandler(handler func(string)) {
	mv.form.SetSeverityChangeHandler(handler)
}

func (mv *MainView) SetVersionChangeHandler(handler func(string)) {
	mv.form.SetVersionChangeHandler(handler)
}

// UI update methods - called by controller

// ApplyForm refreshes every input from form
func (mv *MainView) ApplyForm(form models.ReportForm) {
	fyne.Do(func() {
		mv.form.SetForm(form)
	})
}

// FocusField moves keyboard focus to the input for field
func (mv *MainView) FocusField(field models.Field) {
	entry := mv.form.Entry(field)
	if entry == nil {
		return
	}
	fyne.Do(func() {
		if mv.errorDialog != nil {
			mv.pendingFocus = entry
			return
		}
		mv.window.Canvas().Focus(entry)
	})
}

func (mv *MainView) SetAttachmentLabel(label string, selected bool) {
	fyne.Do(func() {
		mv.form.SetAttachmentLabel(label, selected)
	})
}

func (mv *MainView) UpdateStatus(status string) {
	fyne.Do(func() {
		mv.statusBar.SetStatus(status)
	})
}

// ShowError displays an error dialog
func (mv *MainView) ShowError(title string, err error) {
	fyne.Do(func() {
		d := dialog.NewError(err, mv.window)
		d.SetOnClosed(func() {
			mv.errorDialog = nil
			if mv.pendingFocus != nil {
				mv.window.Canvas().Focus(mv.pendingFocus)
				mv.pendingFocus = nil
			}
		})
		mv.errorDialog = d
		d.Show()
	})
}

// ShowInfo displays an information dialog and calls onClosed once it is dismissed
func (mv *MainView) ShowInfo(title, message string, onClosed func()) {
	fyne.Do(func() {
		d := dialog.NewInformation(title, message, mv.window)
		if onClosed != nil {
			d.SetOnClosed(onClosed)
		}
		d.Show()
	})
}

// ShowConfirm displays a yes/no dialog
func (mv *MainView) ShowConfirm(title, message string, callback func(bool)) {
	fyne.Do(func() {
		d := dialog.NewConfirm(title, message, callback, mv.window)
		d.SetConfirmText("Yes")
		d.SetDismissText("No")
		d.Show()
	})
}

// ShowSaveDialog asks for a destination, suggesting defaultName
func (mv *MainView) ShowSaveDialog(defaultName string, callback func(fyne.URIWriteCloser, error)) {
	fyne.Do(func() {
		d := dialog.NewFileSave(callback, mv.window)
		d.SetFileName(defaultName)
		d.SetFilter(storage.NewExtensionFileFilter([]string{".txt"}))
		d.Show()
	})
}

// ShowAttachmentDialog asks for a file to reference, limited to extensions when given
func (mv *MainView) ShowAttachmentDialog(extensions []string, callback func(fyne.URIReadCloser, error)) {
	fyne.Do(func() {
		d := dialog.NewFileOpen(callback, mv.window)
		if len(extensions) > 0 {
			d.SetFilter(storage.NewExtensionFileFilter(extensions))
		}
		d.Show()
	})
}

// Show displays the view
func (mv *MainView) Show() {
	fyne.Do(func() {
		mv.window.Show()
	})
}

// GetWindow returns the main window
func (mv *MainView) GetWindow() fyne.Window {
	return mv.window
}

// GetForm returns the form component
func (mv *MainView) GetForm() *components.FormPanel {
	return mv.form
}

// GetToolbar returns the toolbar component
func (mv *MainView) GetToolbar() *components.Toolbar {
	return mv.toolbar
}

// GetStatus returns the status bar text
func (mv *MainView) GetStatus() string {
	return mv.statusBar.GetStatus()
}
