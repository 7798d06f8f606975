package app

import (
	"bug-report-creator/internal/config"
	"bug-report-creator/internal/controllers"
	"bug-report-creator/internal/logger"
	"bug-report-creator/internal/models"
	"bug-report-creator/internal/services"
	"bug-report-creator/internal/shutdown"
	"bug-report-creator/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName      = "Bug Report Creator"
	AppID        = "com.bugreportai.creator"
	AppVersion   = "1.0.0"
	WindowWidth  = 700
	WindowHeight = 800
)

type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	view       *views.MainView
	controller *controllers.MainController
	logger     logger.Logger
	lifecycle  *Lifecycle
}

// NewApplication creates the desktop application on the default fyne driver
func NewApplication(cfg *config.Config, log logger.Logger) *Application {
	app.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})
	fyneApp := app.NewWithID(AppID)
	return NewApplicationWithApp(fyneApp, cfg, log)
}

// NewApplicationWithApp wires models, services, controller and view onto fyneApp
func NewApplicationWithApp(fyneApp fyne.App, cfg *config.Config, log logger.Logger) *Application {
	if log == nil {
		log = logger.NoOpLogger{}
	}

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	window.CenterOnScreen()
	window.SetMaster()

	form := models.NewReportForm()
	reportService := services.NewReportService(log)

	controller := controllers.NewMainController(reportService, form, log)
	controller.SetAttachmentFilter(cfg.AttachmentExtensions)

	view := views.NewMainView(window)
	controller.SetMainView(view)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		view:       view,
		controller: controller,
		logger:     log,
	}
	application.lifecycle = NewLifecycle(application, shutdown.NewManager(log))

	log.Info("Application", "initialization complete", map[string]interface{}{
		"version":               AppVersion,
		"attachment_extensions": cfg.AttachmentExtensions,
	})

	return application
}

// Run shows the window and blocks until the application quits
func (a *Application) Run() error {
	a.lifecycle.Start()

	a.view.Show()
	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	a.lifecycle.Shutdown()
	return nil
}

func (a *Application) Window() fyne.Window {
	return a.window
}

func (a *Application) View() *views.MainView {
	return a.view
}

func (a *Application) Controller() *controllers.MainController {
	return a.controller
}
