/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package freeform is the free-placement slide editor variant. Unlike the
// canvas engine it has no scene-graph store: slides hold directly positioned
// elements, styling comes from a named theme, and history is a linear index
// over full slide-array snapshots.
package freeform

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"quantumdeck/internal/domain"
	"quantumdeck/internal/export"
)

// HistoryDepth bounds the linear snapshot history.
const HistoryDepth = 50

// Theme is a named color scheme applied to the whole deck.
type Theme struct {
	Name    string
	Bg      string
	Text    string
	Accent  string
	TitleBg string
}

// Themes are the built-in presets.
var Themes = []Theme{
	{Name: "Corporate Blue", Bg: "#1e3a5f", Text: "#ffffff", Accent: "#4da6ff", TitleBg: "#16304f"},
	{Name: "Dark Slate", Bg: "#1e293b", Text: "#e2e8f0", Accent: "#818cf8", TitleBg: "#0f172a"},
	{Name: "Clean White", Bg: "#ffffff", Text: "#1e293b", Accent: "#3b82f6", TitleBg: "#f1f5f9"},
	{Name: "Forest Green", Bg: "#1a3a2a", Text: "#d1fae5", Accent: "#34d399", TitleBg: "#0f2a1a"},
	{Name: "Crimson", Bg: "#3b0a0a", Text: "#fee2e2", Accent: "#f87171", TitleBg: "#2b0000"},
	{Name: "Midnight Purple", Bg: "#1e1040", Text: "#ede9fe", Accent: "#a78bfa", TitleBg: "#150a30"},
	{Name: "Warm Amber", Bg: "#2d1f00", Text: "#fde68a", Accent: "#fbbf24", TitleBg: "#1a1200"},
	{Name: "Ocean Teal", Bg: "#083344", Text: "#e0f2fe", Accent: "#38bdf8", TitleBg: "#042030"},
}

// ElementType distinguishes the three element kinds.
type ElementType string

const (
	ElementText    ElementType = "text"
	ElementImage   ElementType = "image"
	ElementDrawing ElementType = "drawing"
)

// Element is one directly positioned item on a slide.
type Element struct {
	ID         string      `json:"id"`
	Type       ElementType `json:"type"`
	Content    string      `json:"content"`
	X          float64     `json:"x"`
	Y          float64     `json:"y"`
	W          float64     `json:"w"`
	H          float64     `json:"h"`
	FontSize   float64     `json:"fontSize,omitempty"`
	FontFamily string      `json:"fontFamily,omitempty"`
	Color      string      `json:"color,omitempty"`
	Bold       bool        `json:"bold,omitempty"`
	Italic     bool        `json:"italic,omitempty"`
	Align      string      `json:"align,omitempty"`
}

// Slide is one page of elements.
type Slide struct {
	ID       string    `json:"id"`
	Elements []Element `json:"elements"`
}

// NewTextElement creates a text box with the editor defaults.
func NewTextElement(content string, x, y float64) Element {
	if content == "" {
		content = "New Text Box"
	}
	return Element{
		ID: domain.NewID(), Type: ElementText, Content: content,
		X: x, Y: y, W: 400, H: 120,
		FontSize: 24, FontFamily: "Inter", Align: "left",
	}
}

// NewImageElement creates an image box.
func NewImageElement(url string, x, y float64) Element {
	return Element{
		ID: domain.NewID(), Type: ElementImage, Content: url,
		X: x, Y: y, W: 300, H: 200,
	}
}

// NewDrawingElement creates a full-slide annotation element.
func NewDrawingElement(dataURI string) Element {
	return Element{
		ID: domain.NewID(), Type: ElementDrawing, Content: dataURI,
		X: 0, Y: 0, W: domain.CanvasWidth, H: domain.CanvasHeight,
	}
}

// DefaultSlide creates a slide with a numbered title placeholder.
func DefaultSlide(idx int) Slide {
	return Slide{
		ID:       domain.NewID(),
		Elements: []Element{NewTextElement(fmt.Sprintf("Slide %d Title", idx+1), 50, 50)},
	}
}

var slideSplitRe = regexp.MustCompile(`(?i)Slide\s+\d+:`)

// ParseSlides splits delimited text into slides, one title element plus one
// body element each. Empty input yields a single default slide.
func ParseSlides(text string) []Slide {
	parts := slideSplitRe.Split(text, -1)
	var bodies []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			bodies = append(bodies, p)
		}
	}
	if len(bodies) == 0 {
		return []Slide{DefaultSlide(0)}
	}
	out := make([]Slide, 0, len(bodies))
	for i, body := range bodies {
		title := NewTextElement(fmt.Sprintf("Slide %d", i+1), 50, 50)
		title.W = 860
		title.FontSize = 48
		title.Bold = true
		content := NewTextElement(body, 50, 150)
		content.W = 860
		content.H = 300
		out = append(out, Slide{ID: domain.NewID(), Elements: []Element{title, content}})
	}
	return out
}

// Editor holds the free-form deck with its linear snapshot history.
type Editor struct {
	mu      sync.Mutex
	slides  []Slide
	active  int
	theme   Theme
	history [][]Slide
	histIdx int
}

// NewEditor starts an editor from parsed or default slides.
func NewEditor(slides []Slide) *Editor {
	if len(slides) == 0 {
		slides = []Slide{DefaultSlide(0)}
	}
	e := &Editor{slides: slides, theme: Themes[0]}
	e.history = [][]Slide{cloneSlides(slides)}
	return e
}

// Slides returns a deep copy of the deck.
func (e *Editor) Slides() []Slide {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneSlides(e.slides)
}

// ActiveIndex returns the current slide position.
func (e *Editor) ActiveIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// SetActiveIndex clamps and switches the current slide.
func (e *Editor) SetActiveIndex(i int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i < 0 {
		i = 0
	}
	if max := len(e.slides) - 1; i > max {
		i = max
	}
	e.active = i
}

// Theme returns the applied theme.
func (e *Editor) Theme() Theme {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.theme
}

// SetTheme applies a preset by name; unknown names are ignored.
func (e *Editor) SetTheme(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, t := range Themes {
		if t.Name == name {
			e.theme = t
			return
		}
	}
}

// AddSlide appends a default slide and makes it active.
func (e *Editor) AddSlide() {
	e.mu.Lock()
	e.slides = append(e.slides, DefaultSlide(len(e.slides)))
	e.active = len(e.slides) - 1
	e.mu.Unlock()
	e.Commit()
}

// DeleteActiveSlide removes the current slide; the deck never empties.
func (e *Editor) DeleteActiveSlide() {
	e.mu.Lock()
	if len(e.slides) == 1 {
		e.slides = []Slide{DefaultSlide(0)}
		e.active = 0
	} else {
		e.slides = append(e.slides[:e.active], e.slides[e.active+1:]...)
		if e.active >= len(e.slides) {
			e.active = len(e.slides) - 1
		}
	}
	e.mu.Unlock()
	e.Commit()
}

// AddElement appends an element to the active slide.
func (e *Editor) AddElement(el Element) {
	e.mu.Lock()
	s := &e.slides[e.active]
	s.Elements = append(s.Elements, el)
	e.mu.Unlock()
	e.Commit()
}

// UpdateElement replaces an element by id on the active slide.
func (e *Editor) UpdateElement(el Element) {
	e.mu.Lock()
	s := &e.slides[e.active]
	for i := range s.Elements {
		if s.Elements[i].ID == el.ID {
			s.Elements[i] = el
			break
		}
	}
	e.mu.Unlock()
	e.Commit()
}

// RemoveElement deletes an element by id on the active slide.
func (e *Editor) RemoveElement(id string) {
	e.mu.Lock()
	s := &e.slides[e.active]
	kept := s.Elements[:0]
	for _, el := range s.Elements {
		if el.ID != id {
			kept = append(kept, el)
		}
	}
	s.Elements = kept
	e.mu.Unlock()
	e.Commit()
}

// Commit records the full slide array as a history snapshot, truncating any
// redo tail and evicting the oldest entry past the cap.
func (e *Editor) Commit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = append(e.history[:e.histIdx+1], cloneSlides(e.slides))
	if len(e.history) > HistoryDepth {
		e.history = e.history[len(e.history)-HistoryDepth:]
	}
	e.histIdx = len(e.history) - 1
}

// Undo steps the whole deck back one snapshot.
func (e *Editor) Undo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.histIdx == 0 {
		return false
	}
	e.histIdx--
	e.restoreLocked()
	return true
}

// Redo re-applies the next snapshot.
func (e *Editor) Redo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.histIdx >= len(e.history)-1 {
		return false
	}
	e.histIdx++
	e.restoreLocked()
	return true
}

func (e *Editor) restoreLocked() {
	e.slides = cloneSlides(e.history[e.histIdx])
	if e.active >= len(e.slides) {
		e.active = len(e.slides) - 1
	}
}

// ExportPPTX writes the deck through the shared PPTX writer, mapping
// elements to scene objects and filling theme colors where elements carry
// none.
func (e *Editor) ExportPPTX(outPath string) error {
	e.mu.Lock()
	slides := cloneSlides(e.slides)
	theme := e.theme
	e.mu.Unlock()

	deck := domain.Deck{}
	for _, s := range slides {
		ds := domain.Slide{ID: s.ID, Background: theme.Bg}
		for _, el := range s.Elements {
			ds.Objects = append(ds.Objects, elementToObject(el, theme))
		}
		deck.Slides = append(deck.Slides, ds)
	}
	deck.Normalize()
	return export.WritePPTX(deck, outPath, export.PPTXOptions{Title: "QuantumDeck Free-form"})
}

func elementToObject(el Element, theme Theme) domain.SceneObject {
	o := domain.SceneObject{
		ID: el.ID, X: el.X, Y: el.Y, Width: el.W, Height: el.H, Opacity: 1,
	}
	switch el.Type {
	case ElementText:
		o.Kind = domain.KindText
		o.Content = el.Content
		o.FontSizePx = el.FontSize
		o.FontFamily = el.FontFamily
		o.Bold = el.Bold
		o.Italic = el.Italic
		o.Align = domain.Align(el.Align)
		o.Fill = el.Color
		if o.Fill == "" {
			o.Fill = theme.Text
		}
	case ElementImage:
		o.Kind = domain.KindImage
		o.Content = el.Content
	case ElementDrawing:
		o.Kind = domain.KindDrawing
		o.Content = el.Content
	}
	return o
}

func cloneSlides(in []Slide) []Slide {
	out := make([]Slide, len(in))
	for i, s := range in {
		out[i] = Slide{ID: s.ID, Elements: append([]Element(nil), s.Elements...)}
	}
	return out
}
