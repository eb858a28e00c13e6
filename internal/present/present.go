/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package present drives full-screen presentation mode: slide navigation
// with a clamped index, a transparent annotation layer with pen and eraser
// tools, a transient laser pointer, and persistence of annotations back into
// the deck as drawing objects.
package present

import (
	"image"
	"image/color"
	"math"
	"sync"

	"quantumdeck/internal/domain"
	"quantumdeck/internal/render"
	"quantumdeck/internal/storage"
)

// Tool identifies the active annotation tool.
type Tool string

const (
	ToolNone   Tool = "none"
	ToolPen    Tool = "pen"
	ToolEraser Tool = "eraser"
	ToolLaser  Tool = "laser"
)

const (
	// DefaultPenSize in canvas pixels.
	DefaultPenSize = 4.0
	// DefaultPenColor is a high-visibility red.
	DefaultPenColor = "#ff3b30"
	eraserRadius    = 16.0
)

// Overlay is one presentation session over a deck snapshot. The annotation
// layer is canonical canvas resolution; callers scale for display.
type Overlay struct {
	mu    sync.Mutex
	store *storage.Store
	deck  domain.Deck
	index int

	tool     Tool
	penColor string
	penSize  float64

	layer *image.RGBA

	// laser is a transient position; (-1,-1) means hidden.
	laserX, laserY float64

	onExit func()
}

// NewOverlay starts a session at the deck's active slide.
func NewOverlay(store *storage.Store) *Overlay {
	deck := store.Deck()
	idx := 0
	if i, ok := deck.SlideByID(deck.ActiveSlideID); ok {
		idx = i
	}
	return &Overlay{
		store:    store,
		deck:     deck,
		index:    idx,
		tool:     ToolNone,
		penColor: DefaultPenColor,
		penSize:  DefaultPenSize,
		layer:    newLayer(),
		laserX:   -1,
		laserY:   -1,
	}
}

func newLayer() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, domain.CanvasWidth, domain.CanvasHeight))
}

// SetOnExit registers the callback fired by Exit.
func (ov *Overlay) SetOnExit(fn func()) {
	ov.mu.Lock()
	ov.onExit = fn
	ov.mu.Unlock()
}

// Index returns the current slide position.
func (ov *Overlay) Index() int {
	ov.mu.Lock()
	defer ov.mu.Unlock()
	return ov.index
}

// Slide returns the slide currently shown.
func (ov *Overlay) Slide() domain.Slide {
	ov.mu.Lock()
	defer ov.mu.Unlock()
	return ov.deck.Slides[ov.index]
}

// Next advances one slide. Clamped at the end; annotations do not carry
// across slides.
func (ov *Overlay) Next() { ov.step(1) }

// Prev steps back one slide, clamped at the start.
func (ov *Overlay) Prev() { ov.step(-1) }

// Goto jumps to a slide index, clamped to the deck.
func (ov *Overlay) Goto(i int) {
	ov.mu.Lock()
	defer ov.mu.Unlock()
	ov.setIndexLocked(i)
}

func (ov *Overlay) step(d int) {
	ov.mu.Lock()
	defer ov.mu.Unlock()
	ov.setIndexLocked(ov.index + d)
}

func (ov *Overlay) setIndexLocked(i int) {
	if i < 0 {
		i = 0
	}
	if max := len(ov.deck.Slides) - 1; i > max {
		i = max
	}
	if i != ov.index {
		ov.index = i
		ov.layer = newLayer()
		ov.laserX, ov.laserY = -1, -1
	}
}

// SetTool switches the annotation tool. Switching away from the laser hides
// its dot.
func (ov *Overlay) SetTool(t Tool) {
	ov.mu.Lock()
	defer ov.mu.Unlock()
	ov.tool = t
	if t != ToolLaser {
		ov.laserX, ov.laserY = -1, -1
	}
}

// Tool returns the active tool.
func (ov *Overlay) Tool() Tool {
	ov.mu.Lock()
	defer ov.mu.Unlock()
	return ov.tool
}

// SetPen adjusts pen color and stroke width.
func (ov *Overlay) SetPen(hex string, size float64) {
	ov.mu.Lock()
	defer ov.mu.Unlock()
	if _, err := domain.ParseHexColor(hex); err == nil {
		ov.penColor = hex
	}
	if size > 0 {
		ov.penSize = size
	}
}

// Stroke applies the active tool along the segment from (x0,y0) to (x1,y1)
// in canvas coordinates. The laser only records its endpoint.
func (ov *Overlay) Stroke(x0, y0, x1, y1 float64) {
	ov.mu.Lock()
	defer ov.mu.Unlock()
	switch ov.tool {
	case ToolPen:
		c, _ := domain.ParseHexColor(ov.penColor)
		drawSegment(ov.layer, x0, y0, x1, y1, ov.penSize/2,
			color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}, false)
	case ToolEraser:
		drawSegment(ov.layer, x0, y0, x1, y1, eraserRadius, color.RGBA{}, true)
	case ToolLaser:
		ov.laserX, ov.laserY = x1, y1
	}
}

// Laser reports the transient pointer position; ok is false when hidden.
func (ov *Overlay) Laser() (x, y float64, ok bool) {
	ov.mu.Lock()
	defer ov.mu.Unlock()
	return ov.laserX, ov.laserY, ov.laserX >= 0 && ov.laserY >= 0
}

// Layer returns the live annotation layer for compositing.
func (ov *Overlay) Layer() *image.RGBA {
	ov.mu.Lock()
	defer ov.mu.Unlock()
	return ov.layer
}

// ClearAnnotations wipes the current layer.
func (ov *Overlay) ClearAnnotations() {
	ov.mu.Lock()
	ov.layer = newLayer()
	ov.mu.Unlock()
}

// SaveDrawing persists the annotation layer onto the current slide as a
// full-canvas drawing object and clears the layer. A layer with no painted
// pixels is a no-op.
func (ov *Overlay) SaveDrawing() error {
	ov.mu.Lock()
	layer := ov.layer
	slide := ov.deck.Slides[ov.index]
	ov.mu.Unlock()

	if layerBlank(layer) {
		return nil
	}
	uri, err := render.PNGDataURI(layer)
	if err != nil {
		return err
	}
	obj := domain.SceneObject{
		ID: domain.NewID(), Kind: domain.KindDrawing,
		X: 0, Y: 0, Width: domain.CanvasWidth, Height: domain.CanvasHeight,
		Opacity: 1, Content: uri,
	}

	deck := ov.store.Deck()
	i, ok := deck.SlideByID(slide.ID)
	if !ok {
		return nil
	}
	objects := append(deck.Slides[i].Objects, obj)
	ov.store.UpdateSlideData(slide.ID, objects, deck.Slides[i].Background, deck.Slides[i].Thumbnail)

	ov.mu.Lock()
	ov.deck = ov.store.Deck()
	ov.layer = newLayer()
	ov.mu.Unlock()
	return nil
}

// Exit leaves presentation mode via the registered callback.
func (ov *Overlay) Exit() {
	ov.mu.Lock()
	fn := ov.onExit
	ov.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func layerBlank(img *image.RGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			return false
		}
	}
	return true
}

// drawSegment stamps filled disks along the segment. With erase set, pixels
// inside the radius are cleared instead of painted.
func drawSegment(img *image.RGBA, x0, y0, x1, y1, r float64, col color.RGBA, erase bool) {
	dx, dy := x1-x0, y1-y0
	dist := math.Hypot(dx, dy)
	steps := int(dist) + 1
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		stampDisk(img, x0+dx*t, y0+dy*t, r, col, erase)
	}
}

func stampDisk(img *image.RGBA, cx, cy, r float64, col color.RGBA, erase bool) {
	b := img.Bounds()
	x0 := int(math.Floor(cx - r))
	x1 := int(math.Ceil(cx + r))
	y0 := int(math.Floor(cy - r))
	y1 := int(math.Ceil(cy + r))
	for y := y0; y <= y1; y++ {
		if y < b.Min.Y || y >= b.Max.Y {
			continue
		}
		for x := x0; x <= x1; x++ {
			if x < b.Min.X || x >= b.Max.X {
				continue
			}
			ddx := float64(x) + 0.5 - cx
			ddy := float64(y) + 0.5 - cy
			if ddx*ddx+ddy*ddy > r*r {
				continue
			}
			if erase {
				img.SetRGBA(x, y, color.RGBA{})
			} else {
				img.SetRGBA(x, y, col)
			}
		}
	}
}
