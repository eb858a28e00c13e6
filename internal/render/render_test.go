/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"encoding/base64"
	"image"
	"strings"
	"testing"

	"quantumdeck/internal/domain"
)

func TestRenderSlideDimensions(t *testing.T) {
	s := domain.NewDefaultSlide()
	img, err := RenderSlide(s, 1)
	if err != nil {
		t.Fatal(err)
	}
	b := img.Bounds()
	if b.Dx() != domain.CanvasWidth || b.Dy() != domain.CanvasHeight {
		t.Fatalf("canonical size: %dx%d", b.Dx(), b.Dy())
	}
	img2, err := RenderSlide(s, 2)
	if err != nil {
		t.Fatal(err)
	}
	if img2.Bounds().Dx() != 2*domain.CanvasWidth {
		t.Fatalf("2x size: %d", img2.Bounds().Dx())
	}
}

func TestRenderBackgroundFill(t *testing.T) {
	s := domain.Slide{ID: "s", Background: "#ff0000"}
	img, err := RenderSlide(s, 1)
	if err != nil {
		t.Fatal(err)
	}
	c := img.RGBAAt(10, 10)
	if c.R != 255 || c.G != 0 || c.B != 0 {
		t.Fatalf("background pixel: %+v", c)
	}
}

func TestRenderRectPaintsFill(t *testing.T) {
	s := domain.Slide{ID: "s", Background: "#ffffff", Objects: []domain.SceneObject{{
		ID: "r", Kind: domain.KindRect, X: 100, Y: 100, Width: 50, Height: 50,
		Fill: "#0000ff", Opacity: 1,
	}}}
	img, err := RenderSlide(s, 1)
	if err != nil {
		t.Fatal(err)
	}
	in := img.RGBAAt(120, 120)
	if in.B != 255 || in.R != 0 {
		t.Fatalf("rect interior: %+v", in)
	}
	out := img.RGBAAt(200, 200)
	if out.B != 255 || out.R != 255 { // white background
		t.Fatalf("rect exterior: %+v", out)
	}
}

func TestRenderEllipseStaysInBox(t *testing.T) {
	s := domain.Slide{ID: "s", Background: "#ffffff", Objects: []domain.SceneObject{{
		ID: "e", Kind: domain.KindEllipse, X: 100, Y: 100, Width: 100, Height: 60,
		Fill: "#00ff00", Opacity: 1,
	}}}
	img, err := RenderSlide(s, 1)
	if err != nil {
		t.Fatal(err)
	}
	center := img.RGBAAt(150, 130)
	if center.G != 255 {
		t.Fatalf("ellipse center: %+v", center)
	}
	corner := img.RGBAAt(102, 102)
	if corner.G == 255 && corner.R == 0 {
		t.Fatal("ellipse painted its bounding box corner")
	}
}

func TestDecodeContentImage(t *testing.T) {
	// 1x1 PNG
	raw, err := EncodePNG(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	if err != nil {
		t.Fatal(err)
	}
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)
	img, err := DecodeContentImage(uri)
	if err != nil || img == nil {
		t.Fatalf("decode data uri: %v", err)
	}
	remote, err := DecodeContentImage("https://example.com/x.png")
	if err != nil || remote != nil {
		t.Fatalf("remote url should be nil,nil: %v %v", remote, err)
	}
	if _, err := DecodeContentImage("data:image/png;base64,!!!"); err == nil {
		t.Fatal("corrupt data uri accepted")
	}
}

func TestRenderCorruptImageAborts(t *testing.T) {
	s := domain.Slide{ID: "s", Background: "#ffffff", Objects: []domain.SceneObject{{
		ID: "i", Kind: domain.KindImage, X: 0, Y: 0, Width: 10, Height: 10,
		Opacity: 1, Content: "data:image/png;base64,not-base64!!",
	}}}
	if _, err := RenderSlide(s, 1); err == nil {
		t.Fatal("corrupt embedded image did not abort render")
	}
}

func TestThumbnailAndDataURI(t *testing.T) {
	s := domain.NewDefaultSlide()
	th, err := Thumbnail(s, 240)
	if err != nil {
		t.Fatal(err)
	}
	if th.Bounds().Dx() != 240 {
		t.Fatalf("thumbnail width: %d", th.Bounds().Dx())
	}
	uri, err := PNGDataURI(th)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("data uri prefix: %q", uri[:30])
	}
	back, err := DecodeContentImage(uri)
	if err != nil || back == nil {
		t.Fatalf("thumbnail uri does not round trip: %v", err)
	}
}
