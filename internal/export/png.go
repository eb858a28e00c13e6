/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"os"
	"path/filepath"

	"quantumdeck/internal/render"
	"quantumdeck/internal/storage"
)

// PNGOptions controls single-slide raster export.
type PNGOptions struct {
	// Scale overrides the raster supersampling factor when > 0.
	Scale float64
}

// ExportSlidePNG writes one slide as a PNG at outPath. Relative paths
// resolve under the workspace exports directory.
func ExportSlidePNG(h *storage.DeckHandle, slideID, outPath string, opt PNGOptions) error {
	if h == nil {
		return fmt.Errorf("deck handle is nil")
	}
	i, ok := h.Deck.SlideByID(slideID)
	if !ok {
		return fmt.Errorf("unknown slide %s", slideID)
	}
	scale := opt.Scale
	if scale <= 0 {
		scale = RasterScale
	}
	img, err := render.RenderSlide(h.Deck.Slides[i], scale)
	if err != nil {
		return fmt.Errorf("render slide: %w", err)
	}
	raw, err := render.EncodePNG(img)
	if err != nil {
		return fmt.Errorf("encode slide: %w", err)
	}

	outPath = resolveOutPath(h, outPath)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	tmp := outPath + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write png: %w", err)
	}
	if err := os.Rename(tmp, outPath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("finalize png: %w", err)
	}
	return nil
}
