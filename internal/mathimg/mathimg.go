/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package mathimg rasterizes LaTeX expressions into images for placement on
// the canvas. Expressions are first validated through the MathML pipeline so
// malformed input fails here instead of producing a broken object; the
// raster itself draws the source expression with a bitmap face, which keeps
// equation objects editable since the source string travels with the object.
package mathimg

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"quantumdeck/internal/preview"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	padX = 12
	padY = 10
)

var validator = preview.NewRenderer()

// Render validates a LaTeX expression and rasterizes it on a white
// background. The returned image is sized to the expression.
func Render(latex string) (*image.RGBA, error) {
	latex = strings.TrimSpace(latex)
	if latex == "" {
		return nil, fmt.Errorf("empty expression")
	}
	html, err := validator.RenderMath(latex)
	if err != nil {
		return nil, fmt.Errorf("validate expression: %w", err)
	}
	if !strings.Contains(html, "<math") {
		return nil, fmt.Errorf("expression did not produce math output")
	}

	face := basicfont.Face7x13
	d := font.Drawer{Face: face}
	tw := d.MeasureString(latex).Ceil()
	w := tw + 2*padX
	h := face.Height + 2*padY

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	d.Dst = img
	d.Src = &image.Uniform{C: color.RGBA{A: 255}}
	d.Dot = fixed.P(padX, padY+face.Ascent)
	d.DrawString(latex)
	return img, nil
}
