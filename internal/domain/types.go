/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the core data model for Quantum Deck: a deck of slides,
// each slide an ordered scene graph of positioned visual objects. The model
// serializes to a human-readable JSON manifest.

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Canonical slide dimensions in pixels. All object geometry is expressed in
// this coordinate space; exporters convert to their own units.
const (
	CanvasWidth  = 960
	CanvasHeight = 540
)

// ObjectKind enumerates the supported scene object variants.
type ObjectKind string

const (
	KindText    ObjectKind = "text"
	KindImage   ObjectKind = "image"
	KindDrawing ObjectKind = "drawing"
	KindRect    ObjectKind = "rect"
	KindEllipse ObjectKind = "ellipse"
)

// Align enumerates horizontal text alignment values.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Style defaults applied by Normalize when fields are absent.
const (
	DefaultFontFamily = "Arial"
	DefaultFontSizePx = 20.0
	DefaultFill       = "#000000"
	DefaultBackground = "#ffffff"
	// ImportBackground is the darker default used for AI-imported slides.
	ImportBackground = "#1e1e2e"
)

// SceneObject is one visual primitive on a slide. Geometry is slide-local
// pixels; Rotation is degrees clockwise. ScaleX/ScaleY scale the underlying
// geometry rather than resizing Width/Height.
type SceneObject struct {
	ID       string     `json:"id"`
	Kind     ObjectKind `json:"kind"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Width    float64    `json:"width"`
	Height   float64    `json:"height"`
	Rotation float64    `json:"rotation,omitempty"`
	ScaleX   float64    `json:"scaleX,omitempty"`
	ScaleY   float64    `json:"scaleY,omitempty"`

	Fill    string  `json:"fill,omitempty"`
	Opacity float64 `json:"opacity"`

	// Text attributes; meaningful only for KindText.
	FontFamily string  `json:"fontFamily,omitempty"`
	FontSizePx float64 `json:"fontSizePx,omitempty"`
	Bold       bool    `json:"bold,omitempty"`
	Italic     bool    `json:"italic,omitempty"`
	Underline  bool    `json:"underline,omitempty"`
	Align      Align   `json:"align,omitempty"`

	// Content is the text string for text objects, or a data URI / remote
	// URL for image and drawing objects.
	Content string `json:"content"`

	// LatexSource keeps the original equation source for objects inserted
	// via the math tool, so the raster can be regenerated later.
	LatexSource string `json:"latexSource,omitempty"`
}

// Slide is an ordered, mutable scene. Object order is paint order; later
// entries render on top.
type Slide struct {
	ID         string        `json:"id"`
	Objects    []SceneObject `json:"objects"`
	Background string        `json:"background"`
	// Thumbnail is a cached PNG preview encoded as a data URI. Nullable;
	// recomputed after committed mutations.
	Thumbnail string `json:"thumbnail,omitempty"`
}

// Deck is the full ordered collection of slides in one presentation.
type Deck struct {
	Slides        []Slide `json:"slides"`
	ActiveSlideID string  `json:"activeSlideId"`
}

// NewID returns a fresh unique object/slide identifier.
func NewID() string { return uuid.NewString() }

// NewDefaultSlide returns an empty slide carrying a single placeholder text
// object, as produced by the "add slide" action.
func NewDefaultSlide() Slide {
	return Slide{
		ID:         NewID(),
		Background: DefaultBackground,
		Objects: []SceneObject{
			NewTextObject("Click to edit", 60, 60, 32),
		},
	}
}

// NewDefaultDeck returns the single-default-slide deck used on first start
// and as the fallback for corrupt persisted state.
func NewDefaultDeck() Deck {
	s := NewDefaultSlide()
	return Deck{Slides: []Slide{s}, ActiveSlideID: s.ID}
}

// NewTextObject builds a text object with defaulted style.
func NewTextObject(content string, x, y, sizePx float64) SceneObject {
	return SceneObject{
		ID:         NewID(),
		Kind:       KindText,
		X:          x,
		Y:          y,
		Width:      CanvasWidth - 2*x,
		Height:     sizePx * 1.4,
		Opacity:    1,
		Fill:       DefaultFill,
		FontFamily: DefaultFontFamily,
		FontSizePx: sizePx,
		Align:      AlignLeft,
		Content:    content,
	}
}

// Clamp01 limits v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Normalize validates o in place, clamping opacity and filling defaults for
// missing style fields. Persisted and imported data may be partial; this is
// the single place that repairs it.
func (o *SceneObject) Normalize() {
	if o.ID == "" {
		o.ID = NewID()
	}
	if o.Kind == "" {
		o.Kind = KindText
	}
	if o.Width < 0 {
		o.Width = 0
	}
	if o.Height < 0 {
		o.Height = 0
	}
	o.Opacity = Clamp01(o.Opacity)
	if o.ScaleX == 0 {
		o.ScaleX = 1
	}
	if o.ScaleY == 0 {
		o.ScaleY = 1
	}
	if o.Fill == "" {
		o.Fill = DefaultFill
	}
	if o.Kind == KindText {
		if o.FontFamily == "" {
			o.FontFamily = DefaultFontFamily
		}
		if o.FontSizePx <= 0 {
			o.FontSizePx = DefaultFontSizePx
		}
		switch o.Align {
		case AlignLeft, AlignCenter, AlignRight:
		default:
			o.Align = AlignLeft
		}
		// Text content is never null, an empty string is fine.
	}
}

// Normalize repairs a slide loaded from possibly-malformed persisted data.
func (s *Slide) Normalize() {
	if s.ID == "" {
		s.ID = NewID()
	}
	if s.Background == "" {
		s.Background = DefaultBackground
	}
	for i := range s.Objects {
		s.Objects[i].Normalize()
	}
}

// Normalize repairs the whole deck: every slide is normalized and the active
// pointer is forced back onto a member slide.
func (d *Deck) Normalize() {
	if len(d.Slides) == 0 {
		*d = NewDefaultDeck()
		return
	}
	for i := range d.Slides {
		d.Slides[i].Normalize()
	}
	if _, ok := d.SlideByID(d.ActiveSlideID); !ok {
		d.ActiveSlideID = d.Slides[0].ID
	}
}

// SlideByID returns the index of the slide with the given id.
func (d *Deck) SlideByID(id string) (int, bool) {
	for i := range d.Slides {
		if d.Slides[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// Color is an RGBA color used by the renderer and exporters.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// ParseHexColor parses "#rgb" or "#rrggbb" strings. Unknown input yields
// opaque black and an error.
func ParseHexColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return Color{A: 255}, fmt.Errorf("parse color %q: missing '#'", s)
	}
	hex := s[1:]
	var r, g, b uint8
	switch len(hex) {
	case 3:
		if _, err := fmt.Sscanf(hex, "%1x%1x%1x", &r, &g, &b); err != nil {
			return Color{A: 255}, fmt.Errorf("parse color %q: %w", s, err)
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
			return Color{A: 255}, fmt.Errorf("parse color %q: %w", s, err)
		}
	default:
		return Color{A: 255}, fmt.Errorf("parse color %q: bad length", s)
	}
	return Color{R: r, G: g, B: b, A: 255}, nil
}

// Hex renders the color as a "#rrggbb" string, dropping alpha.
func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// Clone returns a deep copy of the slide.
func (s Slide) Clone() Slide {
	out := s
	out.Objects = append([]SceneObject(nil), s.Objects...)
	return out
}

// Clone returns a deep copy of the deck.
func (d Deck) Clone() Deck {
	out := d
	out.Slides = make([]Slide, len(d.Slides))
	for i := range d.Slides {
		out.Slides[i] = d.Slides[i].Clone()
	}
	return out
}
