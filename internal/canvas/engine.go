/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package canvas implements the live editing surface: a provisional working
// copy of the active slide, object creation and mutation, selection,
// layering, a process-local clipboard, and the debounced snapshot-and-persist
// cycle feeding the history recorder and the slide store.
package canvas

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"quantumdeck/internal/domain"
	"quantumdeck/internal/history"
	applog "quantumdeck/internal/log"
	"quantumdeck/internal/mathimg"
	"quantumdeck/internal/render"
	"quantumdeck/internal/snap"
	"quantumdeck/internal/storage"
)

// PasteOffset is the fixed positional shift applied to pasted clones.
const PasteOffset = 20.0

// Options tunes engine behavior; zero values take defaults.
type Options struct {
	// CommitDelay is the debounce quiet window (default 400ms).
	CommitDelay time.Duration
	// ThumbnailWidth in pixels for committed slide previews (default 240).
	ThumbnailWidth int
}

// Engine binds one editing surface to the active slide of a Store. The
// working copy is provisional until the debounced commit fires; programmatic
// loads run under a guard so they are never recorded as edits.
type Engine struct {
	mu    sync.Mutex
	store *storage.Store
	opts  Options

	slide     domain.Slide
	activeID  string
	selection map[string]bool

	// clipboard is process-local and survives slide switches.
	clipboard []domain.SceneObject

	rec     *history.Recorder
	deb     *history.Debouncer
	loading bool

	log *slog.Logger
}

// NewEngine creates an engine bound to the store's active slide.
func NewEngine(store *storage.Store, opts Options) *Engine {
	if opts.ThumbnailWidth <= 0 {
		opts.ThumbnailWidth = 240
	}
	e := &Engine{
		store:     store,
		opts:      opts,
		selection: make(map[string]bool),
		rec:       history.NewRecorder(history.Config{}),
		deb:       history.NewDebouncer(opts.CommitDelay),
		log:       applog.WithComponent("canvas"),
	}
	e.loadLocked(store.ActiveSlide())
	return e
}

// Slide returns a copy of the working slide.
func (e *Engine) Slide() domain.Slide {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.slide.Clone()
}

// ActiveObject returns a copy of the active object, if any.
func (e *Engine) ActiveObject() (domain.SceneObject, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i := e.indexOfLocked(e.activeID); i >= 0 {
		return e.slide.Objects[i], true
	}
	return domain.SceneObject{}, false
}

// Select marks an object active and selected. Unknown ids clear selection.
func (e *Engine) Select(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.indexOfLocked(id) < 0 {
		e.activeID = ""
		e.selection = make(map[string]bool)
		return
	}
	e.activeID = id
	e.selection = map[string]bool{id: true}
}

// AddToSelection extends the selection without changing the active object.
func (e *Engine) AddToSelection(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.indexOfLocked(id) >= 0 {
		e.selection[id] = true
	}
}

// LoadSlide switches the surface to another slide. A pending debounced
// commit is flushed first so the last sub-window edit is never lost, then
// the load runs under the re-entrancy guard and seeds fresh history.
func (e *Engine) LoadSlide(id string) {
	e.deb.Flush()
	e.store.SetActiveSlide(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loadLocked(e.store.ActiveSlide())
}

func (e *Engine) loadLocked(s domain.Slide) {
	e.loading = true
	e.slide = s.Clone()
	e.activeID = ""
	e.selection = make(map[string]bool)
	blob, err := json.Marshal(e.slide)
	if err == nil {
		e.rec.Reset(blob)
	}
	e.loading = false
}

// AddRect inserts a rectangle and makes it active.
func (e *Engine) AddRect(x, y, w, h float64, fill string) string {
	o := domain.SceneObject{
		ID: domain.NewID(), Kind: domain.KindRect,
		X: x, Y: y, Width: w, Height: h, Fill: fill, Opacity: 1,
	}
	return e.insert(o)
}

// AddEllipse inserts an ellipse and makes it active.
func (e *Engine) AddEllipse(x, y, w, h float64, fill string) string {
	o := domain.SceneObject{
		ID: domain.NewID(), Kind: domain.KindEllipse,
		X: x, Y: y, Width: w, Height: h, Fill: fill, Opacity: 1,
	}
	return e.insert(o)
}

// AddText inserts a text box and makes it active.
func (e *Engine) AddText(content string, x, y, sizePx float64) string {
	return e.insert(domain.NewTextObject(content, x, y, sizePx))
}

// AddImage inserts an image object from raw bytes, embedding them as a data
// URI so the deck stays self-contained.
func (e *Engine) AddImage(data []byte, mime string, x, y, w, h float64) string {
	if mime == "" {
		mime = "image/png"
	}
	o := domain.SceneObject{
		ID: domain.NewID(), Kind: domain.KindImage,
		X: x, Y: y, Width: w, Height: h, Opacity: 1,
		Content: fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data)),
	}
	return e.insert(o)
}

// AddEquation renders a LaTeX string offscreen and inserts the raster as an
// image object. The source string is retained on the object so the raster
// can be regenerated. Cleanup of the offscreen raster is unconditional; on
// failure nothing is inserted and the error is returned.
func (e *Engine) AddEquation(latex string, x, y float64) (string, error) {
	img, err := mathimg.Render(latex)
	if err != nil {
		return "", fmt.Errorf("render equation: %w", err)
	}
	png, err := render.EncodePNG(img)
	if err != nil {
		return "", fmt.Errorf("encode equation: %w", err)
	}
	b := img.Bounds()
	o := domain.SceneObject{
		ID: domain.NewID(), Kind: domain.KindImage,
		X: x, Y: y, Width: float64(b.Dx()), Height: float64(b.Dy()), Opacity: 1,
		Content:     "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		LatexSource: latex,
	}
	return e.insert(o), nil
}

func (e *Engine) insert(o domain.SceneObject) string {
	e.mu.Lock()
	o.Normalize()
	e.slide.Objects = append(e.slide.Objects, o)
	e.activeID = o.ID
	e.selection = map[string]bool{o.ID: true}
	e.mu.Unlock()
	e.scheduleCommit()
	return o.ID
}

// DeleteSelected removes all selected objects. No-op on empty selection.
func (e *Engine) DeleteSelected() {
	e.mu.Lock()
	if len(e.selection) == 0 {
		e.mu.Unlock()
		return
	}
	kept := e.slide.Objects[:0]
	for _, o := range e.slide.Objects {
		if !e.selection[o.ID] {
			kept = append(kept, o)
		}
	}
	e.slide.Objects = kept
	e.activeID = ""
	e.selection = make(map[string]bool)
	e.mu.Unlock()
	e.scheduleCommit()
}

// UpdateProperty mutates the active object's named attribute. Opacity is
// clamped; unknown names return an error.
func (e *Engine) UpdateProperty(name string, value any) error {
	e.mu.Lock()
	i := e.indexOfLocked(e.activeID)
	if i < 0 {
		e.mu.Unlock()
		return fmt.Errorf("no active object")
	}
	o := &e.slide.Objects[i]
	var err error
	switch name {
	case "fill":
		o.Fill, err = asString(value)
	case "opacity":
		var f float64
		f, err = asFloat(value)
		if err == nil {
			o.Opacity = domain.Clamp01(f)
		}
	case "fontFamily":
		o.FontFamily, err = asString(value)
	case "fontSizePx":
		var f float64
		f, err = asFloat(value)
		if err == nil && f > 0 {
			o.FontSizePx = f
		}
	case "bold":
		o.Bold, err = asBool(value)
	case "italic":
		o.Italic, err = asBool(value)
	case "underline":
		o.Underline, err = asBool(value)
	case "align":
		var s string
		s, err = asString(value)
		switch domain.Align(s) {
		case domain.AlignLeft, domain.AlignCenter, domain.AlignRight:
			o.Align = domain.Align(s)
		default:
			if err == nil {
				err = fmt.Errorf("bad align %q", s)
			}
		}
	case "content":
		o.Content, err = asString(value)
	default:
		err = fmt.Errorf("unknown property %q", name)
	}
	e.mu.Unlock()
	if err != nil {
		return err
	}
	e.scheduleCommit()
	return nil
}

// MoveObject repositions the active object.
func (e *Engine) MoveObject(x, y float64) {
	e.mu.Lock()
	if i := e.indexOfLocked(e.activeID); i >= 0 {
		e.slide.Objects[i].X = x
		e.slide.Objects[i].Y = y
	}
	e.mu.Unlock()
	e.scheduleCommit()
}

// MoveObjectSnapped repositions the active object, aligning it to nearby
// object edges and centers plus the canvas bounds. It returns the guide
// lines that fired so the UI can draw them.
func (e *Engine) MoveObjectSnapped(x, y float64) []snap.GuideLine {
	e.mu.Lock()
	i := e.indexOfLocked(e.activeID)
	if i < 0 {
		e.mu.Unlock()
		return nil
	}
	o := &e.slide.Objects[i]
	moving := snap.ObjectRect(o)
	moving.X, moving.Y = x, y
	snapped, guides := snap.Compute(moving, snap.SlideAnchors(e.slide, o.ID), snap.Options{
		SnapToEdges:   true,
		SnapToCenters: true,
	})
	o.X = snapped.X
	o.Y = snapped.Y
	e.mu.Unlock()
	e.scheduleCommit()
	return guides
}

// MoveLayer reorders the active object by one position in the paint
// sequence. Positive direction moves toward the top. No-op at the boundary.
func (e *Engine) MoveLayer(direction int) {
	e.mu.Lock()
	i := e.indexOfLocked(e.activeID)
	moved := false
	switch {
	case i < 0:
	case direction > 0 && i < len(e.slide.Objects)-1:
		e.slide.Objects[i], e.slide.Objects[i+1] = e.slide.Objects[i+1], e.slide.Objects[i]
		moved = true
	case direction < 0 && i > 0:
		e.slide.Objects[i], e.slide.Objects[i-1] = e.slide.Objects[i-1], e.slide.Objects[i]
		moved = true
	}
	e.mu.Unlock()
	if moved {
		e.scheduleCommit()
	}
}

// SetBackground changes the slide background color.
func (e *Engine) SetBackground(hex string) {
	e.mu.Lock()
	e.slide.Background = hex
	e.mu.Unlock()
	e.scheduleCommit()
}

// Clear removes all objects and resets the background. The confirm callback
// gates the destructive action; a false return is a no-op.
func (e *Engine) Clear(confirm func() bool) {
	if confirm != nil && !confirm() {
		return
	}
	e.mu.Lock()
	e.slide.Objects = nil
	e.slide.Background = domain.DefaultBackground
	e.activeID = ""
	e.selection = make(map[string]bool)
	e.mu.Unlock()
	e.scheduleCommit()
}

// Copy places clones of the selected objects on the process-local clipboard.
func (e *Engine) Copy() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clipboard = e.clipboard[:0]
	for _, o := range e.slide.Objects {
		if e.selection[o.ID] {
			e.clipboard = append(e.clipboard, o)
		}
	}
}

// Paste inserts clipboard clones offset by PasteOffset with fresh ids and
// selects them. The clipboard itself is untouched, so repeated pastes work.
func (e *Engine) Paste() {
	e.mu.Lock()
	if len(e.clipboard) == 0 {
		e.mu.Unlock()
		return
	}
	e.selection = make(map[string]bool)
	for _, o := range e.clipboard {
		c := o
		c.ID = domain.NewID()
		c.X += PasteOffset
		c.Y += PasteOffset
		e.slide.Objects = append(e.slide.Objects, c)
		e.selection[c.ID] = true
		e.activeID = c.ID
	}
	e.mu.Unlock()
	e.scheduleCommit()
}

// Undo steps the working slide back one committed edit. The restore runs
// under the load guard so it is not itself recorded. A corrupt snapshot
// aborts only this step.
func (e *Engine) Undo() error {
	e.deb.Flush()
	return e.rec.Undo(e.applySnapshot)
}

// Redo re-applies the most recently undone commit.
func (e *Engine) Redo() error {
	e.deb.Flush()
	return e.rec.Redo(e.applySnapshot)
}

func (e *Engine) applySnapshot(blob []byte) error {
	var s domain.Slide
	if err := json.Unmarshal(blob, &s); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}
	e.mu.Lock()
	e.loading = true
	e.slide = s
	e.activeID = ""
	e.selection = make(map[string]bool)
	e.loading = false
	e.mu.Unlock()
	e.pushToStore()
	return nil
}

// scheduleCommit arms the debounce timer; rapid consecutive edits collapse
// into one snapshot. Nothing is scheduled while a programmatic load is in
// flight.
func (e *Engine) scheduleCommit() {
	e.mu.Lock()
	loading := e.loading
	e.mu.Unlock()
	if loading {
		return
	}
	e.deb.Trigger(e.commit)
}

// Flush forces a pending commit to run now.
func (e *Engine) Flush() { e.deb.Flush() }

func (e *Engine) commit() {
	e.mu.Lock()
	blob, err := json.Marshal(e.slide)
	slideID := e.slide.ID
	e.mu.Unlock()
	if err != nil {
		e.log.Error("marshal slide failed", slog.Any("err", err))
		return
	}
	e.rec.Push(blob)
	e.pushToStore()

	// Persisted history lives in the workspace index so a crash mid-session
	// still leaves recoverable snapshots. Off the edit path.
	go func() {
		ctx := context.Background()
		h := e.store.Handle()
		if serr := storage.SaveSnapshot(ctx, h, slideID, blob, time.Now()); serr != nil {
			e.log.Warn("persist snapshot failed", slog.String("slide", slideID), slog.Any("err", serr))
			return
		}
		_, _ = storage.PruneOldSnapshots(ctx, h, slideID, history.DefaultMaxDepth)
	}()
}

// pushToStore writes the working copy and a fresh thumbnail back to the
// slide store. The thumbnail PNG is also cached in the workspace index.
func (e *Engine) pushToStore() {
	e.mu.Lock()
	s := e.slide.Clone()
	e.mu.Unlock()

	thumb := ""
	if img, err := render.Thumbnail(s, e.opts.ThumbnailWidth); err == nil {
		if png, perr := render.EncodePNG(img); perr == nil {
			thumb = "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
			b := img.Bounds()
			go func() {
				_ = storage.SavePreview(context.Background(), e.store.Handle(), s.ID, b.Dx(), b.Dy(), png)
			}()
		}
	} else {
		e.log.Warn("thumbnail render failed", slog.String("slide", s.ID), slog.Any("err", err))
	}
	e.store.UpdateSlideData(s.ID, s.Objects, s.Background, thumb)
}

// HitTest returns the id of the topmost object containing the canvas point,
// or "" when the point is empty. Scale factors are folded into the box.
func (e *Engine) HitTest(x, y float64) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := len(e.slide.Objects) - 1; i >= 0; i-- {
		o := &e.slide.Objects[i]
		sx, sy := o.ScaleX, o.ScaleY
		if sx == 0 {
			sx = 1
		}
		if sy == 0 {
			sy = 1
		}
		if x >= o.X && x <= o.X+o.Width*sx && y >= o.Y && y <= o.Y+o.Height*sy {
			return o.ID
		}
	}
	return ""
}

// HistoryDepths reports undo/redo stack sizes for diagnostics.
func (e *Engine) HistoryDepths() (int, int) { return e.rec.Depths() }

func (e *Engine) indexOfLocked(id string) int {
	if id == "" {
		return -1
	}
	for i := range e.slide.Objects {
		if e.slide.Objects[i].ID == id {
			return i
		}
	}
	return -1
}

func asString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("want string, got %T", v)
	}
	return s, nil
}

func asFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	}
	return 0, fmt.Errorf("want number, got %T", v)
}

func asBool(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("want bool, got %T", v)
	}
	return b, nil
}
