package views

import (
	"errors"
	"testing"

	"bug-report-creator/internal/models"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestView(t *testing.T) *MainView {
	test.NewTempApp(t)
	w := test.NewWindow(nil)
	t.Cleanup(w.Close)
	return NewMainView(w)
}

func TestMainViewInstallsContentAndMenu(t *testing.T) {
	mv := newTestView(t)

	assert.NotNil(t, mv.GetWindow().Content())
	require.NotNil(t, mv.GetWindow().MainMenu())
	assert.Equal(t, "File", mv.GetWindow().MainMenu().Items[0].Label)
	assert.Equal(t, "Ready", mv.GetStatus())
}

func TestMainViewRoutesActions(t *testing.T) {
	mv := newTestView(t)

	var saves, clears, attaches int
	mv.SetSaveHandler(func() { saves++ })
	mv.SetClearHandler(func() { clears++ })
	mv.SetAttachHandler(func() { attaches++ })

	test.Tap(mv.GetToolbar().SaveButton())
	test.Tap(mv.GetToolbar().ClearButton())
	test.Tap(mv.GetForm().AttachButton())

	for _, item := range mv.GetWindow().MainMenu().Items[0].Items {
		if item.Action != nil {
			item.Action()
		}
	}

	assert.Equal(t, 2, saves)
	assert.Equal(t, 2, clears)
	assert.Equal(t, 2, attaches)
}

func TestMainViewApplyFormAndStatus(t *testing.T) {
	mv := newTestView(t)

	form := models.NewReportForm()
	form.Title = "Broken link"
	form.Priority = models.PriorityCritical
	mv.ApplyForm(*form)
	mv.UpdateStatus("Saved report.txt")
	mv.SetAttachmentLabel("shot.png", true)

	assert.Equal(t, "Broken link", mv.GetForm().Entry(models.FieldTitle).Text)
	assert.Equal(t, "Critical", mv.GetForm().PrioritySelect().Selected)
	assert.Equal(t, "Saved report.txt", mv.GetStatus())
	assert.Equal(t, "shot.png", mv.GetForm().AttachmentLabel())
}

func TestMainViewFocusField(t *testing.T) {
	mv := newTestView(t)

	mv.FocusField(models.FieldExpected)

	assert.Equal(t, mv.GetForm().Entry(models.FieldExpected), mv.GetWindow().Canvas().Focused())
}

func TestMainViewFocusWaitsForErrorDialog(t *testing.T) {
	mv := newTestView(t)

	mv.ShowError("Error", errors.New("Title is required!"))
	mv.FocusField(models.FieldTitle)

	require.NotNil(t, mv.errorDialog)
	assert.NotEqual(t, mv.GetForm().Entry(models.FieldTitle), mv.GetWindow().Canvas().Focused())

	mv.errorDialog.Hide()

	assert.Nil(t, mv.errorDialog)
	assert.Equal(t, mv.GetForm().Entry(models.FieldTitle), mv.GetWindow().Canvas().Focused())
}
