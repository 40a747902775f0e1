package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-yeardots/internal/config"
	"github.com/tartampluch/go-yeardots/internal/engine"
	"github.com/tartampluch/go-yeardots/internal/scene"
	"github.com/tartampluch/go-yeardots/internal/snapshot"
	"golang.design/x/clipboard"
)

// Clipboard receives encoded images from the Copy action.
type Clipboard interface {
	WriteImage(png []byte) error
}

// systemClipboard initializes the OS clipboard lazily on first use.
type systemClipboard struct {
	once sync.Once
	err  error
}

func (c *systemClipboard) WriteImage(png []byte) error {
	c.once.Do(func() { c.err = clipboard.Init() })
	if c.err != nil {
		return fmt.Errorf("%s: %w", config.ErrClipboardInit, c.err)
	}
	clipboard.Write(clipboard.FmtImage, png)
	return nil
}

// YearDotsApp displays the wallpaper produced by the snapshot pipeline.
type YearDotsApp struct {
	App        fyne.App
	Window     fyne.Window
	I18nBundle *i18n.Bundle
	Localizer  *i18n.Localizer
	Ctx        context.Context

	Config    scene.Config
	Pipeline  *snapshot.Pipeline
	Clock     engine.Clock // Injected clock for testability
	Clipboard Clipboard

	// Session is fixed by Start and never recomputed.
	Session *engine.Session

	SupportedLanguages []string

	status  *widget.Label
	image   *canvas.Image
	saveBtn *widget.Button
	copyBtn *widget.Button
}

// NewYearDotsApp constructs the application and wires dependencies.
func NewYearDotsApp(a fyne.App, ctx context.Context, cfg scene.Config, p *snapshot.Pipeline) *YearDotsApp {
	return &YearDotsApp{
		App:       a,
		Ctx:       ctx,
		Config:    cfg,
		Pipeline:  p,
		Clock:     engine.RealClock{}, // Default to real clock in production
		Clipboard: &systemClipboard{},
	}
}

// Run starts the capture and blocks in the Fyne main loop.
func (app *YearDotsApp) Run() {
	app.Start()
	app.Window.Show()
	app.App.Run()
}

// Start builds the window, fixes the session date, mounts the scene and lets
// the pipeline take over. It does not block.
func (app *YearDotsApp) Start() {
	if app.I18nBundle == nil {
		app.SetupI18n()
	}
	if app.Window == nil {
		app.buildWindow()
	}

	app.Session = engine.NewSession(app.Clock)
	root := scene.Build(app.Session.View, app.Config)

	app.Pipeline.Observe(func(st snapshot.State) {
		fyne.Do(func() { app.render(st) })
	})
	app.render(app.Pipeline.State())

	app.Pipeline.Mount(app.Ctx, root)
	app.Pipeline.SetReferenceDate(app.Ctx, app.Session.Reference)
}

func (app *YearDotsApp) buildWindow() {
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	w.Resize(fyne.NewSize(config.WindowWidth, config.WindowHeight))

	bg := canvas.NewRectangle(scene.DefaultPalette.Background)

	app.image = canvas.NewImageFromImage(nil)
	app.image.FillMode = canvas.ImageFillContain
	app.image.Hide()

	app.status = widget.NewLabel("")
	app.status.Alignment = fyne.TextAlignCenter
	app.status.Wrapping = fyne.TextWrapWord

	app.saveBtn = widget.NewButton(app.GetMsg(config.TKeyBtnSave), app.ShowSaveDialog)
	app.copyBtn = widget.NewButton(app.GetMsg(config.TKeyBtnCopy), func() {
		if err := app.CopyImage(); err != nil {
			app.notify(config.TKeyNotifCopyError)
			return
		}
		app.notify(config.TKeyNotifCopied)
	})

	toolbar := container.NewGridWithColumns(2, app.saveBtn, app.copyBtn)
	body := container.NewStack(bg, app.image, container.NewCenter(app.status))
	w.SetContent(container.NewBorder(nil, toolbar, nil, nil, body))

	app.Window = w
}

// render swaps the view to match st. It must run on the Fyne thread.
func (app *YearDotsApp) render(st snapshot.State) {
	switch st.Phase {
	case snapshot.PhaseReady:
		img, err := st.Bitmap.Image()
		if err != nil {
			app.showStatus(app.failureText(err))
			return
		}
		app.image.Image = img
		app.image.Show()
		app.image.Refresh()
		app.status.Hide()
		app.saveBtn.Enable()
		app.copyBtn.Enable()

	case snapshot.PhaseFailed:
		app.showStatus(app.failureText(st.Err))

	case snapshot.PhasePending:
		app.showStatus(app.msgOr(config.TKeyStatusPending, config.FallbackStatusPending))

	default:
		app.showStatus(app.GetMsg(config.TKeyStatusIdle))
	}
}

func (app *YearDotsApp) showStatus(text string) {
	app.status.SetText(text)
	app.status.Show()
	app.image.Hide()
	app.saveBtn.Disable()
	app.copyBtn.Disable()
}

// msgOr translates key and falls back to a built-in English string when the
// catalog is missing the key.
func (app *YearDotsApp) msgOr(key, fallback string) string {
	if msg := app.GetMsg(key); msg != key {
		return msg
	}
	return fallback
}

func (app *YearDotsApp) failureText(err error) string {
	msg := app.GetMsgWith(config.TKeyStatusFailed, map[string]interface{}{"Error": err})
	if msg == config.TKeyStatusFailed {
		return fmt.Sprintf(config.FallbackStatusFailed, err)
	}
	return msg
}

// ShowSaveDialog lets the user pick a destination for the bitmap.
func (app *YearDotsApp) ShowSaveDialog() {
	bmp := app.Pipeline.State().Bitmap
	if bmp == nil {
		return
	}

	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, app.Window)
			return
		}
		if w == nil {
			// Cancelled
			return
		}
		defer w.Close()

		if err := WriteBitmap(w, bmp); err != nil {
			slog.Error(config.ErrWriteFile,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyError, err)
			app.notify(config.TKeyNotifSaveError)
			return
		}
		slog.Info(config.MsgImageSaved,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyFile, w.URI().Path())
		app.notify(config.TKeyNotifSaved)
	}, app.Window)
	d.SetFileName(config.ImageFile)
	d.Show()
}

// WriteBitmap writes the encoded PNG to w.
func WriteBitmap(w io.Writer, bmp *snapshot.Bitmap) error {
	if bmp == nil {
		return errors.New(config.ErrNotReady)
	}
	if _, err := w.Write(bmp.PNG); err != nil {
		return fmt.Errorf("%s: %w", config.ErrWriteFile, err)
	}
	return nil
}

// CopyImage places the bitmap on the clipboard.
func (app *YearDotsApp) CopyImage() error {
	bmp := app.Pipeline.State().Bitmap
	if bmp == nil {
		return errors.New(config.ErrNotReady)
	}
	if err := app.Clipboard.WriteImage(bmp.PNG); err != nil {
		slog.Error(config.ErrClipboardInit,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return err
	}
	slog.Info(config.MsgImageCopied,
		config.LogKeyComponent, config.CompUI,
		config.LogKeySizeBytes, len(bmp.PNG))
	return nil
}

func (app *YearDotsApp) notify(key string) {
	app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(key)))
}
