// Package ui is the desktop front end: a main window with a single "Choose
// Image" action and a review window per processed image.
package ui

import (
	"context"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/kozaktomas/face-compare/internal/config"
	"github.com/kozaktomas/face-compare/internal/recognizer"
	"github.com/kozaktomas/face-compare/internal/workflow"
)

var mainWindowSize = fyne.NewSize(400, 200)

// Processor is the part of workflow.Processor the window needs.
type Processor interface {
	Renamer
	Process(ctx context.Context, path string, opts workflow.Options) (*workflow.Result, error)
}

// App owns the main window and the current session.
type App struct {
	app     fyne.App
	window  fyne.Window
	cfg     *config.Config
	proc    Processor
	session *Session
	review  *review
}

// NewApp builds the main window. Closing it ends the program.
func NewApp(a fyne.App, cfg *config.Config, proc Processor) *App {
	u := &App{
		app:     a,
		cfg:     cfg,
		proc:    proc,
		session: &Session{},
	}

	w := a.NewWindow("Face Comparison Tool")
	w.SetMaster()
	w.SetContent(container.NewVBox(
		widget.NewLabelWithStyle("Select an image to compare:", fyne.TextAlignCenter, fyne.TextStyle{}),
		container.NewCenter(widget.NewButton("Choose Image", u.choose)),
	))
	w.Resize(mainWindowSize)
	w.CenterOnScreen()
	u.window = w
	return u
}

// Run shows the main window and blocks until it is closed.
func (a *App) Run() {
	a.window.ShowAndRun()
}

// Session exposes the current session state.
func (a *App) Session() *Session {
	return a.session
}

func (a *App) choose() {
	if a.session.State() == ReviewOpen && a.review != nil {
		a.review.window.RequestFocus()
		return
	}

	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()
		a.HandleChosen(path)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter(recognizer.Extensions))
	if lister, err := storage.ListerForURI(storage.NewFileURI(a.cfg.PickerStart())); err == nil {
		d.SetLocation(lister)
	}
	d.Resize(fyne.NewSize(800, 600))
	d.Show()
}

// HandleChosen processes the chosen image and opens its review window. An
// empty path is a cancelled pick and does nothing.
func (a *App) HandleChosen(path string) {
	ok, err := a.session.Choose(path)
	if err != nil {
		log.Printf("[ui] warning: %v", err)
		return
	}
	if !ok {
		return
	}

	result, err := a.proc.Process(context.Background(), path, workflow.Options{})
	if err != nil {
		a.session.Failed()
		dialog.ShowError(err, a.window)
		return
	}
	if err := a.session.Processed(result); err != nil {
		log.Printf("[ui] warning: %v", err)
		return
	}

	title, message := result.Summary()
	dialog.ShowInformation(title, message, a.window)

	a.review = newReview(a.app.NewWindow("Matched Images"), a.window, a.session, a.proc, a.cfg.UI.ThumbnailSize)
	a.review.onClosed = func() { a.review = nil }
	if err := a.session.OpenReview(); err != nil {
		log.Printf("[ui] warning: %v", err)
	}
	a.review.show()
}
