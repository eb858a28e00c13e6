/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render rasterizes slide scene graphs to RGBA images. It is shared
// by the PDF exporter, the PNG exporter, thumbnail generation and the
// presentation overlay. Text is drawn with a fixed bitmap face, so rendered
// glyph size only approximates the configured pixel size; the PPTX exporter
// carries the real font attributes instead.
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strings"

	// register decoders for embedded images
	_ "image/gif"
	_ "image/jpeg"

	"quantumdeck/internal/domain"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// RenderSlide rasterizes a slide at the given scale (1.0 = canonical 960x540
// pixels). Objects are painted in sequence order. Undecodable embedded
// images abort the render; remote URLs are drawn as outlined placeholders
// since the renderer performs no network IO.
func RenderSlide(s domain.Slide, scale float64) (*image.RGBA, error) {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Round(domain.CanvasWidth * scale))
	h := int(math.Round(domain.CanvasHeight * scale))
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	bg, err := domain.ParseHexColor(s.Background)
	if err != nil {
		bg = domain.Color{R: 255, G: 255, B: 255, A: 255}
	}
	draw.Draw(img, img.Bounds(), &image.Uniform{C: toRGBA(bg)}, image.Point{}, draw.Src)

	for i := range s.Objects {
		if err := paintObject(img, &s.Objects[i], scale); err != nil {
			return nil, fmt.Errorf("paint object %s: %w", s.Objects[i].ID, err)
		}
	}
	return img, nil
}

func paintObject(img *image.RGBA, o *domain.SceneObject, scale float64) error {
	x0 := int(math.Round(o.X * scale))
	y0 := int(math.Round(o.Y * scale))
	w := int(math.Round(o.Width * effScale(o.ScaleX) * scale))
	h := int(math.Round(o.Height * effScale(o.ScaleY) * scale))
	if w <= 0 || h <= 0 {
		if o.Kind != domain.KindText {
			return nil
		}
	}

	fill, err := domain.ParseHexColor(o.Fill)
	if err != nil {
		fill = domain.Color{A: 255}
	}
	col := withOpacity(toRGBA(fill), o.Opacity)

	switch o.Kind {
	case domain.KindRect:
		fillRect(img, x0, y0, x0+w-1, y0+h-1, col)
	case domain.KindEllipse:
		fillEllipse(img, x0, y0, w, h, col)
	case domain.KindText:
		drawText(img, o, x0, y0, w, scale, col)
	case domain.KindImage, domain.KindDrawing:
		return drawImage(img, o, x0, y0, w, h)
	}
	return nil
}

func effScale(s float64) float64 {
	if s == 0 {
		return 1
	}
	return s
}

// drawText renders line by line with the fixed 7x13 face, aligned within the
// object box.
func drawText(img *image.RGBA, o *domain.SceneObject, x0, y0, boxW int, scale float64, col color.RGBA) {
	face := basicfont.Face7x13
	lineHeight := int(math.Round(o.FontSizePx * 1.2 * scale))
	if lineHeight < face.Height {
		lineHeight = face.Height
	}
	y := y0 + lineHeight
	for _, line := range strings.Split(o.Content, "\n") {
		d := font.Drawer{
			Dst:  img,
			Src:  &image.Uniform{C: col},
			Face: face,
		}
		lw := d.MeasureString(line).Ceil()
		x := x0
		switch o.Align {
		case domain.AlignCenter:
			x = x0 + (boxW-lw)/2
		case domain.AlignRight:
			x = x0 + boxW - lw
		}
		d.Dot = fixed.P(x, y)
		d.DrawString(line)
		if o.Underline && lw > 0 {
			for px := x; px < x+lw; px++ {
				img.SetRGBA(px, y+2, col)
			}
		}
		y += lineHeight
	}
}

func drawImage(img *image.RGBA, o *domain.SceneObject, x0, y0, w, h int) error {
	src, err := DecodeContentImage(o.Content)
	if err != nil {
		return err
	}
	if src == nil {
		// Remote URL: outlined placeholder keeps the layout visible.
		strokeRect(img, x0, y0, x0+w-1, y0+h-1, color.RGBA{128, 128, 128, 255})
		return nil
	}
	if w <= 0 {
		w = src.Bounds().Dx()
	}
	if h <= 0 {
		h = src.Bounds().Dy()
	}
	dst := image.Rect(x0, y0, x0+w, y0+h)
	xdraw.ApproxBiLinear.Scale(img, dst, src, src.Bounds(), xdraw.Over, nil)
	return nil
}

// DecodeContentImage decodes a data-URI image. It returns (nil, nil) for
// remote URLs and an error for corrupt embedded data.
func DecodeContentImage(content string) (image.Image, error) {
	if strings.HasPrefix(content, "http://") || strings.HasPrefix(content, "https://") {
		return nil, nil
	}
	idx := strings.Index(content, "base64,")
	if !strings.HasPrefix(content, "data:") || idx < 0 {
		return nil, fmt.Errorf("unsupported image content")
	}
	raw, err := base64.StdEncoding.DecodeString(content[idx+len("base64,"):])
	if err != nil {
		return nil, fmt.Errorf("decode image data: %w", err)
	}
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return src, nil
}

// Thumbnail renders a slide scaled to the given pixel width.
func Thumbnail(s domain.Slide, width int) (*image.RGBA, error) {
	if width <= 0 {
		width = 240
	}
	return RenderSlide(s, float64(width)/float64(domain.CanvasWidth))
}

// EncodePNG serializes an image to PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// PNGDataURI serializes an image to a data URI for thumbnail storage.
func PNGDataURI(img image.Image) (string, error) {
	b, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(b), nil
}

func toRGBA(c domain.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// withOpacity pre-multiplies a fill color by object opacity.
func withOpacity(c color.RGBA, opacity float64) color.RGBA {
	opacity = domain.Clamp01(opacity)
	return color.RGBA{
		R: uint8(float64(c.R) * opacity),
		G: uint8(float64(c.G) * opacity),
		B: uint8(float64(c.B) * opacity),
		A: uint8(255 * opacity),
	}
}

// strokeRect draws a 1px axis-aligned rectangle border inclusive of endpoints.
func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y0, col)
		img.SetRGBA(x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x0, y, col)
		img.SetRGBA(x1, y, col)
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	over := &image.Uniform{C: col}
	draw.Draw(img, image.Rect(x0, y0, x1+1, y1+1), over, image.Point{}, draw.Over)
}

// fillEllipse paints the ellipse inscribed in the box via scanlines.
func fillEllipse(img *image.RGBA, x0, y0, w, h int, col color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	cx := float64(x0) + float64(w)/2
	cy := float64(y0) + float64(h)/2
	rx := float64(w) / 2
	ry := float64(h) / 2
	over := &image.Uniform{C: col}
	for y := y0; y < y0+h; y++ {
		dy := (float64(y) + 0.5 - cy) / ry
		if dy*dy > 1 {
			continue
		}
		half := rx * math.Sqrt(1-dy*dy)
		sx := int(math.Round(cx - half))
		ex := int(math.Round(cx + half))
		draw.Draw(img, image.Rect(sx, y, ex, y+1), over, image.Point{}, draw.Over)
	}
}
