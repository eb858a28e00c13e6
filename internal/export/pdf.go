/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export writes decks to their delivery formats: multi-page PDF,
// PowerPoint (PPTX) and per-slide PNG. All exporters write to a temp file
// first and rename on success so interrupted exports never leave a partial
// file at the destination.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"quantumdeck/internal/domain"
	"quantumdeck/internal/render"
	"quantumdeck/internal/storage"
)

// RasterScale is the supersampling factor for raster-based exports.
const RasterScale = 2.0

// PDFOptions controls PDF export behavior. Page size is the canonical
// canvas in points, one landscape page per slide.
type PDFOptions struct {
	// Slides selects deck indices to export; empty means all. Selection is
	// honored in deck order regardless of the order given here.
	Slides []int
	// Scale overrides the raster supersampling factor when > 0.
	Scale float64
}

// ExportDeckPDF writes the selected slides to a single PDF at outPath.
// Relative paths resolve under the workspace exports directory. A slide
// that fails to rasterize aborts the export and removes the partial file.
func ExportDeckPDF(h *storage.DeckHandle, outPath string, opt PDFOptions) error {
	if h == nil {
		return fmt.Errorf("deck handle is nil")
	}
	deck := h.Deck
	indexes := slideIndexes(len(deck.Slides), opt.Slides)
	if len(indexes) == 0 {
		return fmt.Errorf("no slides selected")
	}
	scale := opt.Scale
	if scale <= 0 {
		scale = RasterScale
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: domain.CanvasWidth, Ht: domain.CanvasHeight},
		OrientationStr: "",
	})
	pdf.SetTitle("QuantumDeck Export", false)

	for n, i := range indexes {
		img, err := render.RenderSlide(deck.Slides[i], scale)
		if err != nil {
			return fmt.Errorf("render slide %d: %w", i+1, err)
		}
		raw, err := render.EncodePNG(img)
		if err != nil {
			return fmt.Errorf("encode slide %d: %w", i+1, err)
		}
		pdf.AddPageFormat("L", gofpdf.SizeType{Wd: domain.CanvasWidth, Ht: domain.CanvasHeight})
		name := fmt.Sprintf("slide-%d", n)
		pdf.RegisterImageOptionsReader(name,
			gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(raw))
		pdf.ImageOptions(name, 0, 0, domain.CanvasWidth, domain.CanvasHeight,
			false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	}
	if pdf.Err() {
		return fmt.Errorf("assemble pdf: %v", pdf.Error())
	}

	outPath = resolveOutPath(h, outPath)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	tmp := outPath + ".tmp"
	if err := pdf.OutputFileAndClose(tmp); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write pdf: %w", err)
	}
	if err := os.Rename(tmp, outPath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("finalize pdf: %w", err)
	}
	return nil
}

// slideIndexes normalizes a selection to valid, ascending deck indices.
func slideIndexes(total int, specific []int) []int {
	if len(specific) == 0 {
		out := make([]int, total)
		for i := range out {
			out[i] = i
		}
		return out
	}
	seen := make(map[int]bool, len(specific))
	for _, i := range specific {
		if i >= 0 && i < total {
			seen[i] = true
		}
	}
	out := make([]int, 0, len(seen))
	for i := 0; i < total; i++ {
		if seen[i] {
			out = append(out, i)
		}
	}
	return out
}

func resolveOutPath(h *storage.DeckHandle, outPath string) string {
	if filepath.IsAbs(outPath) {
		return outPath
	}
	return filepath.Join(h.Root, "exports", outPath)
}

// TimestampedName builds an export filename like deck-20250102-150405.pdf.
func TimestampedName(stem, ext string) string {
	return fmt.Sprintf("%s-%s.%s", stem, time.Now().Format("20060102-150405"), ext)
}
