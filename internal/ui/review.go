package ui

import (
	"errors"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/kozaktomas/face-compare/internal/archive"
	"github.com/kozaktomas/face-compare/internal/workflow"
)

var (
	matchWindowSize = fyne.NewSize(900, 700)
	emptyWindowSize = fyne.NewSize(400, 200)
)

// Renamer renames the archived copy of the submitted image.
type Renamer interface {
	Rename(archived, newName string) (string, error)
}

// review is the window showing the match pairs and the rename control.
type review struct {
	window   fyne.Window
	notify   fyne.Window // receives the confirmation once window is closed
	session  *Session
	renamer  Renamer
	thumb    int
	entry    *widget.Entry
	button   *widget.Button
	onClosed func()
}

// renameErrorMessage turns a rename failure into the dialog text.
func renameErrorMessage(err error) string {
	switch {
	case errors.Is(err, archive.ErrEmptyName):
		return "Please enter a new name."
	case errors.Is(err, archive.ErrNameExists):
		return "A file with that name already exists."
	case errors.Is(err, archive.ErrInvalidName):
		return "The name must not contain path separators."
	default:
		return "Rename failed: " + err.Error()
	}
}

func newReview(w, notify fyne.Window, session *Session, renamer Renamer, thumbSize int) *review {
	r := &review{
		window:  w,
		notify:  notify,
		session: session,
		renamer: renamer,
		thumb:   thumbSize,
	}

	r.entry = widget.NewEntry()
	r.entry.SetPlaceHolder("new name")
	r.entry.OnSubmitted = func(string) { r.submit() }
	r.button = widget.NewButton("Rename", r.submit)

	renameRow := container.NewBorder(nil, nil,
		widget.NewLabel("Rename new image as (without extension):"),
		r.button,
		r.entry,
	)

	result := session.Result()
	if len(result.Matches) > 0 {
		rows := container.NewVBox()
		for _, pair := range result.Matches {
			rows.Add(r.pairRow(pair))
		}
		rows.Add(container.NewPadded(renameRow))
		w.SetContent(container.NewVScroll(rows))
		w.Resize(matchWindowSize)
	} else {
		w.SetContent(container.NewPadded(container.NewVBox(renameRow)))
		w.Resize(emptyWindowSize)
	}

	w.SetOnClosed(func() {
		session.Close()
		if r.onClosed != nil {
			r.onClosed()
		}
	})
	w.CenterOnScreen()
	return r
}

// pairRow shows the stored reference next to the archived copy, with the
// file names below.
func (r *review) pairRow(pair workflow.MatchPair) fyne.CanvasObject {
	return container.NewPadded(container.NewGridWithColumns(2,
		r.thumbnail(pair.Reference),
		r.thumbnail(pair.Archived),
		widget.NewLabelWithStyle(filepath.Base(pair.Reference), fyne.TextAlignCenter, fyne.TextStyle{}),
		widget.NewLabelWithStyle(filepath.Base(pair.Archived), fyne.TextAlignCenter, fyne.TextStyle{}),
	))
}

func (r *review) thumbnail(path string) fyne.CanvasObject {
	img, err := loadThumbnail(path, r.thumb)
	if err != nil {
		log.Printf("[ui] warning: no thumbnail for %s: %v", path, err)
		return widget.NewLabelWithStyle("cannot display "+filepath.Base(path), fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	}
	c := canvas.NewImageFromImage(img)
	c.FillMode = canvas.ImageFillContain
	c.SetMinSize(fyne.NewSize(float32(r.thumb), float32(r.thumb)))
	return c
}

// submit renames the archived copy to the entry text. Failures keep the
// window open; success closes it.
func (r *review) submit() {
	if !r.session.CanRename() {
		return
	}

	newPath, err := r.renamer.Rename(r.session.ArchivedPath(), r.entry.Text)
	if err != nil {
		dialog.ShowError(errors.New(renameErrorMessage(err)), r.window)
		return
	}
	if err := r.session.Rename(newPath); err != nil {
		log.Printf("[ui] warning: %v", err)
	}

	dialog.ShowInformation("Rename Complete", "File renamed to "+filepath.Base(newPath), r.notify)
	r.window.Close()
}

func (r *review) show() {
	r.window.Show()
	r.window.Canvas().Focus(r.entry)
}
