/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import "strings"

// SlideDescriptor is the normalized intermediate form produced by the content
// importer. It exists only during import; BuildSlide converts it into scene
// objects and the descriptor is discarded.
type SlideDescriptor struct {
	Title      string
	Body       string
	Bullets    []string
	Images     []string
	Background string
}

// Fixed layout coordinates for imported slides. Content is not measured or
// reflowed; long text may overflow the canvas and that is accepted.
const (
	layoutLeft     = 60.0
	titleTop       = 50.0
	titleSizePx    = 38.0
	bodyTop        = 200.0
	bodySizePx     = 22.0
	bulletsTop     = 360.0
	bulletsSizePx  = 20.0
	imageTop       = 150.0
	imageSpacing   = 180.0
	imageScale     = 0.5
	importTextFill = "#ffffff"
	importBodyFill = "#e0e0e0"
)

// BuildSlide lays a descriptor out as a slide: title top, body mid, bullets
// below, images stacked down the canvas.
func BuildSlide(desc SlideDescriptor) Slide {
	s := Slide{ID: NewID(), Background: desc.Background}
	if s.Background == "" {
		s.Background = ImportBackground
	}

	if desc.Title != "" {
		o := NewTextObject(desc.Title, layoutLeft, titleTop, titleSizePx)
		o.Width = CanvasWidth - 120
		o.Height = 80
		o.Bold = true
		o.Fill = importTextFill
		s.Objects = append(s.Objects, o)
	}
	if desc.Body != "" {
		o := NewTextObject(desc.Body, layoutLeft, bodyTop, bodySizePx)
		o.Width = CanvasWidth - 120
		o.Height = 150
		o.Fill = importBodyFill
		s.Objects = append(s.Objects, o)
	}
	for i, url := range desc.Images {
		s.Objects = append(s.Objects, SceneObject{
			ID:      NewID(),
			Kind:    KindImage,
			X:       layoutLeft,
			Y:       imageTop + float64(i)*imageSpacing,
			Width:   320,
			Height:  240,
			ScaleX:  imageScale,
			ScaleY:  imageScale,
			Opacity: 1,
			Content: url,
		})
	}
	if len(desc.Bullets) > 0 {
		o := NewTextObject(strings.Join(desc.Bullets, "\n"), layoutLeft, bulletsTop, bulletsSizePx)
		o.Width = CanvasWidth - 160
		o.Height = CanvasHeight - 400
		o.Fill = importTextFill
		s.Objects = append(s.Objects, o)
	}

	s.Normalize()
	return s
}

// BuildSlides converts a descriptor sequence 1:1 into slides.
func BuildSlides(descs []SlideDescriptor) []Slide {
	out := make([]Slide, 0, len(descs))
	for _, d := range descs {
		out = append(out, BuildSlide(d))
	}
	return out
}
