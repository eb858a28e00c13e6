//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"image"
	"image/draw"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"quantumdeck/internal/canvas"
	"quantumdeck/internal/crash"
	"quantumdeck/internal/domain"
	"quantumdeck/internal/export"
	"quantumdeck/internal/importer"
	applog "quantumdeck/internal/log"
	"quantumdeck/internal/present"
	"quantumdeck/internal/render"
	"quantumdeck/internal/storage"
	"quantumdeck/internal/version"
)

// Run starts the Fyne-based deck editor.
func Run(workspaceDir string) error {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("ui")
	l.Info("starting UI")

	var h *storage.DeckHandle
	defer func() { crash.Recover(h) }()

	fyneApp := app.NewWithID("quantumdeck")
	w := fyneApp.NewWindow("QuantumDeck")
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 1280)
	winH := prefs.IntWithFallback("window.height", 820)
	if winW < 960 {
		winW = 960
	}
	if winH < 640 {
		winH = 640
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	if workspaceDir == "" {
		workspaceDir = "."
	}
	abs, _ := filepath.Abs(workspaceDir)
	var err error
	h, err = storage.Open(abs)
	if err != nil {
		return fmt.Errorf("open workspace: %w", err)
	}
	store := storage.NewStore(h)
	engine := canvas.NewEngine(store, canvas.Options{})

	ed := &editor{
		win:    w,
		log:    l,
		handle: h,
		store:  store,
		engine: engine,
	}
	ed.build()

	unsubscribe := store.Subscribe(ed.refresh)
	defer unsubscribe()

	w.SetMainMenu(ed.mainMenu())
	w.SetCloseIntercept(func() {
		engine.Flush()
		if err := store.Persist(); err != nil {
			l.Error("persist on close failed", slog.Any("err", err))
		}
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		w.Close()
	})

	ed.refresh()
	w.ShowAndRun()
	return nil
}

// editor wires the slide list, canvas surface and properties panel together.
type editor struct {
	win    fyne.Window
	log    *slog.Logger
	handle *storage.DeckHandle
	store  *storage.Store
	engine *canvas.Engine

	slideList *widget.List
	surface   *slideSurface
	status    *widget.Label

	propFill    *widget.Entry
	propOpacity *widget.Slider
	propFont    *widget.Entry
	propSize    *widget.Entry
	propBold    *widget.Check
	propItalic  *widget.Check
	propUnder   *widget.Check
	propAlign   *widget.Select
}

func (ed *editor) build() {
	ed.status = widget.NewLabel("Ready")
	ed.surface = newSlideSurface(ed.engine, ed.refresh)

	ed.slideList = widget.NewList(
		func() int { return len(ed.store.Deck().Slides) },
		func() fyne.CanvasObject { return widget.NewLabel("Slide") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(fmt.Sprintf("Slide %d", i+1))
		},
	)
	ed.slideList.OnSelected = func(i widget.ListItemID) {
		deck := ed.store.Deck()
		if i >= 0 && i < len(deck.Slides) {
			ed.engine.LoadSlide(deck.Slides[i].ID)
			ed.refresh()
		}
	}

	ed.propFill = widget.NewEntry()
	ed.propOpacity = widget.NewSlider(0, 1)
	ed.propOpacity.Step = 0.05
	ed.propFont = widget.NewEntry()
	ed.propSize = widget.NewEntry()
	ed.propBold = widget.NewCheck("Bold", nil)
	ed.propItalic = widget.NewCheck("Italic", nil)
	ed.propUnder = widget.NewCheck("Underline", nil)
	ed.propAlign = widget.NewSelect([]string{"left", "center", "right"}, nil)

	apply := widget.NewButton("Apply", ed.applyProperties)
	props := container.NewVBox(
		widget.NewLabelWithStyle("Properties", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem("Fill", ed.propFill),
			widget.NewFormItem("Opacity", ed.propOpacity),
			widget.NewFormItem("Font", ed.propFont),
			widget.NewFormItem("Size", ed.propSize),
			widget.NewFormItem("Align", ed.propAlign),
		),
		ed.propBold, ed.propItalic, ed.propUnder,
		apply,
	)

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() {
			id := ed.store.AddSlide()
			ed.engine.LoadSlide(id)
			ed.refresh()
		}),
		widget.NewToolbarAction(theme.DeleteIcon(), ed.deleteSlide),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentAddIcon(), func() {
			ed.engine.AddText("New text", 80, 80, 24)
			ed.refresh()
		}),
		widget.NewToolbarAction(theme.RadioButtonIcon(), func() {
			ed.engine.AddEllipse(120, 120, 160, 100, "#3b82f6")
			ed.refresh()
		}),
		widget.NewToolbarAction(theme.CheckButtonIcon(), func() {
			ed.engine.AddRect(100, 100, 180, 120, "#4da6ff")
			ed.refresh()
		}),
		widget.NewToolbarAction(theme.MediaPhotoIcon(), ed.addImage),
		widget.NewToolbarAction(theme.DocumentIcon(), ed.addEquation),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentUndoIcon(), func() {
			if err := ed.engine.Undo(); err != nil {
				ed.status.SetText(err.Error())
			}
			ed.refresh()
		}),
		widget.NewToolbarAction(theme.ContentRedoIcon(), func() {
			if err := ed.engine.Redo(); err != nil {
				ed.status.SetText(err.Error())
			}
			ed.refresh()
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentCopyIcon(), func() { ed.engine.Copy() }),
		widget.NewToolbarAction(theme.ContentPasteIcon(), func() {
			ed.engine.Paste()
			ed.refresh()
		}),
		widget.NewToolbarAction(theme.MoveUpIcon(), func() {
			ed.engine.MoveLayer(1)
			ed.refresh()
		}),
		widget.NewToolbarAction(theme.MoveDownIcon(), func() {
			ed.engine.MoveLayer(-1)
			ed.refresh()
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.MediaPlayIcon(), ed.presentMode),
	)

	left := container.NewBorder(widget.NewLabel("Slides"), nil, nil, nil, ed.slideList)
	split := container.NewHSplit(left, container.NewBorder(nil, nil, nil, props, ed.surface))
	split.Offset = 0.18

	ed.win.SetContent(container.NewBorder(toolbar, ed.status, nil, nil, split))
}

func (ed *editor) mainMenu() *fyne.MainMenu {
	return fyne.NewMainMenu(
		fyne.NewMenu("File",
			fyne.NewMenuItem("Save", func() {
				ed.engine.Flush()
				if err := ed.store.Persist(); err != nil {
					dialog.ShowError(err, ed.win)
					return
				}
				ed.status.SetText("Saved")
			}),
			fyne.NewMenuItem("Import Text…", ed.importText),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Export PDF", func() { ed.export("pdf") }),
			fyne.NewMenuItem("Export PPTX", func() { ed.export("pptx") }),
			fyne.NewMenuItem("Export Slide PNG", func() { ed.export("png") }),
		),
		fyne.NewMenu("Slide",
			fyne.NewMenuItem("Set Background…", ed.setBackground),
			fyne.NewMenuItem("Clear Slide", func() {
				dialog.ShowConfirm("Clear slide", "Remove all objects from this slide?", func(ok bool) {
					if ok {
						ed.engine.Clear(nil)
						ed.refresh()
					}
				}, ed.win)
			}),
		),
		fyne.NewMenu("Help",
			fyne.NewMenuItem("About", func() {
				dialog.ShowInformation("QuantumDeck", "Version "+version.String(), ed.win)
			}),
		),
	)
}

func (ed *editor) refresh() {
	ed.surface.redraw()
	if ed.slideList != nil {
		ed.slideList.Refresh()
	}
	if o, ok := ed.engine.ActiveObject(); ok {
		ed.propFill.SetText(o.Fill)
		ed.propOpacity.SetValue(o.Opacity)
		ed.propFont.SetText(o.FontFamily)
		ed.propSize.SetText(strconv.FormatFloat(o.FontSizePx, 'f', -1, 64))
		ed.propBold.SetChecked(o.Bold)
		ed.propItalic.SetChecked(o.Italic)
		ed.propUnder.SetChecked(o.Underline)
		ed.propAlign.SetSelected(string(o.Align))
	}
}

func (ed *editor) applyProperties() {
	set := func(name string, v any) {
		if err := ed.engine.UpdateProperty(name, v); err != nil {
			ed.status.SetText(err.Error())
		}
	}
	if s := strings.TrimSpace(ed.propFill.Text); s != "" {
		set("fill", s)
	}
	set("opacity", ed.propOpacity.Value)
	if s := strings.TrimSpace(ed.propFont.Text); s != "" {
		set("fontFamily", s)
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(ed.propSize.Text), 64); err == nil {
		set("fontSizePx", f)
	}
	set("bold", ed.propBold.Checked)
	set("italic", ed.propItalic.Checked)
	set("underline", ed.propUnder.Checked)
	if ed.propAlign.Selected != "" {
		set("align", ed.propAlign.Selected)
	}
	ed.refresh()
}

func (ed *editor) deleteSlide() {
	dialog.ShowConfirm("Delete slide", "Delete the current slide?", func(ok bool) {
		if !ok {
			return
		}
		ed.store.DeleteSlide(ed.store.ActiveSlide().ID)
		ed.engine.LoadSlide(ed.store.ActiveSlide().ID)
		ed.refresh()
	}, ed.win)
}

func (ed *editor) addImage() {
	dialog.ShowFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		data, rerr := io.ReadAll(rc)
		if rerr != nil {
			dialog.ShowError(rerr, ed.win)
			return
		}
		mime := "image/png"
		switch strings.ToLower(rc.URI().Extension()) {
		case ".jpg", ".jpeg":
			mime = "image/jpeg"
		case ".gif":
			mime = "image/gif"
		}
		ed.engine.AddImage(data, mime, 150, 150, 320, 240)
		ed.refresh()
	}, ed.win)
}

func (ed *editor) addEquation() {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(`\frac{a}{b}`)
	dialog.ShowForm("Insert equation", "Insert", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("LaTeX", entry)},
		func(ok bool) {
			if !ok {
				return
			}
			if _, err := ed.engine.AddEquation(entry.Text, 200, 200); err != nil {
				dialog.ShowError(err, ed.win)
				return
			}
			ed.refresh()
		}, ed.win)
}

func (ed *editor) importText() {
	entry := widget.NewMultiLineEntry()
	entry.SetPlaceHolder("Slide 1:\nTitle\nBody…")
	entry.SetMinRowsVisible(10)
	dialog.ShowForm("Import delimited text", "Import", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Content", entry)},
		func(ok bool) {
			if !ok {
				return
			}
			descs := importer.ParseText(entry.Text)
			if len(descs) == 0 {
				ed.status.SetText("Nothing to import")
				return
			}
			ed.store.SetSlides(domain.BuildSlides(descs))
			ed.engine.LoadSlide(ed.store.ActiveSlide().ID)
			ed.refresh()
			ed.status.SetText(fmt.Sprintf("Imported %d slides", len(descs)))
		}, ed.win)
}

func (ed *editor) setBackground() {
	entry := widget.NewEntry()
	entry.SetText(ed.engine.Slide().Background)
	dialog.ShowForm("Slide background", "Apply", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Hex color", entry)},
		func(ok bool) {
			if !ok {
				return
			}
			if _, err := domain.ParseHexColor(entry.Text); err != nil {
				dialog.ShowError(err, ed.win)
				return
			}
			ed.engine.SetBackground(entry.Text)
			ed.refresh()
		}, ed.win)
}

func (ed *editor) export(format string) {
	ed.engine.Flush()
	if err := ed.store.Persist(); err != nil {
		dialog.ShowError(err, ed.win)
		return
	}
	var err error
	var out string
	switch format {
	case "pdf":
		out = export.TimestampedName("deck", "pdf")
		err = export.ExportDeckPDF(ed.handle, out, export.PDFOptions{})
	case "pptx":
		out = export.TimestampedName("deck", "pptx")
		err = export.ExportDeckPPTX(ed.handle, out, export.PPTXOptions{})
	case "png":
		out = export.TimestampedName("slide", "png")
		err = export.ExportSlidePNG(ed.handle, ed.store.ActiveSlide().ID, out, export.PNGOptions{})
	}
	if err != nil {
		dialog.ShowError(err, ed.win)
		return
	}
	ed.status.SetText("Exported " + filepath.Join("exports", out))
}

// slideSurface shows the active slide raster and maps taps to object
// selection.
type slideSurface struct {
	widget.BaseWidget
	engine   *canvas.Engine
	img      *fynecanvas.Image
	onChange func()
}

func newSlideSurface(engine *canvas.Engine, onChange func()) *slideSurface {
	s := &slideSurface{engine: engine, onChange: onChange}
	s.img = fynecanvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, domain.CanvasWidth, domain.CanvasHeight)))
	s.img.FillMode = fynecanvas.ImageFillStretch
	s.ExtendBaseWidget(s)
	return s
}

func (s *slideSurface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.img)
}

func (s *slideSurface) MinSize() fyne.Size {
	return fyne.NewSize(480, 270)
}

func (s *slideSurface) redraw() {
	img, err := render.RenderSlide(s.engine.Slide(), 1)
	if err != nil {
		return
	}
	s.img.Image = img
	s.img.Refresh()
}

func (s *slideSurface) Tapped(e *fyne.PointEvent) {
	sz := s.Size()
	if sz.Width <= 0 || sz.Height <= 0 {
		return
	}
	x := float64(e.Position.X) / float64(sz.Width) * domain.CanvasWidth
	y := float64(e.Position.Y) / float64(sz.Height) * domain.CanvasHeight
	s.engine.Select(s.engine.HitTest(x, y))
	if s.onChange != nil {
		s.onChange()
	}
}

// presentMode opens the full-screen presentation window.
func (ed *editor) presentMode() {
	ed.engine.Flush()
	ov := present.NewOverlay(ed.store)
	pw := fyne.CurrentApp().NewWindow("Presenting")
	ov.SetOnExit(func() {
		pw.Close()
		ed.refresh()
	})

	surface := newPresentSurface(ov)
	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.NavigateBackIcon(), func() { ov.Prev(); surface.redraw() }),
		widget.NewToolbarAction(theme.NavigateNextIcon(), func() { ov.Next(); surface.redraw() }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ColorChromaticIcon(), func() { ov.SetTool(present.ToolPen) }),
		widget.NewToolbarAction(theme.ContentClearIcon(), func() { ov.SetTool(present.ToolEraser) }),
		widget.NewToolbarAction(theme.SearchIcon(), func() { ov.SetTool(present.ToolLaser) }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			// SaveDrawing clears the layer itself; a failed save keeps the
			// strokes so the presenter can retry.
			if err := ov.SaveDrawing(); err != nil {
				ed.log.Error("save drawing failed", slog.Any("err", err))
			}
			surface.redraw()
		}),
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			ov.ClearAnnotations()
			surface.redraw()
		}),
		widget.NewToolbarAction(theme.CancelIcon(), ov.Exit),
	)

	pw.SetContent(container.NewBorder(toolbar, nil, nil, nil, surface))
	pw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyRight, fyne.KeyDown, fyne.KeySpace:
			ov.Next()
			surface.redraw()
		case fyne.KeyLeft, fyne.KeyUp:
			ov.Prev()
			surface.redraw()
		case fyne.KeyP:
			ov.SetTool(present.ToolPen)
		case fyne.KeyE:
			ov.SetTool(present.ToolEraser)
		case fyne.KeyEscape:
			ov.Exit()
		}
	})
	pw.SetFullScreen(true)
	surface.redraw()
	pw.Show()
}

// presentSurface composites the slide raster with the annotation layer and
// feeds drag strokes to the overlay.
type presentSurface struct {
	widget.BaseWidget
	ov   *present.Overlay
	img  *fynecanvas.Image
	last *fyne.Position
}

func newPresentSurface(ov *present.Overlay) *presentSurface {
	s := &presentSurface{ov: ov}
	s.img = fynecanvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, domain.CanvasWidth, domain.CanvasHeight)))
	s.img.FillMode = fynecanvas.ImageFillContain
	s.ExtendBaseWidget(s)
	return s
}

func (s *presentSurface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.img)
}

func (s *presentSurface) redraw() {
	base, err := render.RenderSlide(s.ov.Slide(), 1)
	if err != nil {
		return
	}
	draw.Draw(base, base.Bounds(), s.ov.Layer(), image.Point{}, draw.Over)
	s.img.Image = base
	s.img.Refresh()
}

func (s *presentSurface) canvasPos(p fyne.Position) (float64, float64) {
	sz := s.Size()
	if sz.Width <= 0 || sz.Height <= 0 {
		return 0, 0
	}
	return float64(p.X) / float64(sz.Width) * domain.CanvasWidth,
		float64(p.Y) / float64(sz.Height) * domain.CanvasHeight
}

func (s *presentSurface) Dragged(e *fyne.DragEvent) {
	x1, y1 := s.canvasPos(e.Position)
	x0, y0 := x1, y1
	if s.last != nil {
		x0, y0 = s.canvasPos(*s.last)
	}
	pos := e.Position
	s.last = &pos
	s.ov.Stroke(x0, y0, x1, y1)
	s.redraw()
}

func (s *presentSurface) DragEnd() { s.last = nil }
