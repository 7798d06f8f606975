package app

import (
	"bug-report-creator/internal/shutdown"

	"fyne.io/fyne/v2"
)

// Lifecycle ties window events and OS signals to an ordered shutdown
type Lifecycle struct {
	app     *Application
	manager *shutdown.Manager
}

func NewLifecycle(a *Application, manager *shutdown.Manager) *Lifecycle {
	l := &Lifecycle{
		app:     a,
		manager: manager,
	}

	manager.Register(a.controller)
	manager.Register(shutdown.Func(func() {
		a.logger.Info("Lifecycle", "window resources released", nil)
	}))

	return l
}

// Start installs the close intercept and the signal listener
func (l *Lifecycle) Start() {
	l.app.window.SetCloseIntercept(func() {
		l.app.logger.Info("Lifecycle", "window close requested", nil)
		l.Shutdown()
		l.app.window.Close()
	})

	l.manager.Listen(func() {
		fyne.Do(func() {
			l.app.fyneApp.Quit()
		})
	})
}

func (l *Lifecycle) Shutdown() {
	l.manager.Shutdown()
}

func (l *Lifecycle) Done() <-chan struct{} {
	return l.manager.Done()
}
