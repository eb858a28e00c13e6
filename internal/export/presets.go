/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"quantumdeck/internal/storage"
)

// PresetName represents a named export preset.
type PresetName string

const (
	// PresetShare produces the handoff formats: PPTX plus PDF.
	PresetShare PresetName = "share"
	// PresetWeb produces per-slide PNGs.
	PresetWeb PresetName = "web"
)

// BatchOptions controls batch export across multiple formats.
//
// Path semantics:
//   - If OutDir is empty or relative, it is created under
//     <workspace>/exports/<preset>/.
//   - PDF and PPTX are single-file outputs named with a timestamp.
//   - PNGs land in a png/ subfolder, one file per selected slide.
type BatchOptions struct {
	Preset  PresetName
	Formats []string // allowed: pdf, pptx, png; empty means preset defaults
	Slides  []int    // zero-based deck indices; empty means all
	OutDir  string
}

// BatchExport runs exports according to the given preset.
func BatchExport(h *storage.DeckHandle, opt BatchOptions) error {
	if h == nil {
		return fmt.Errorf("deck handle is nil")
	}
	if len(h.Deck.Slides) == 0 {
		return fmt.Errorf("deck has no slides")
	}

	formats := opt.Formats
	if len(formats) == 0 {
		formats = presetDefaultFormats(opt.Preset)
	}
	for i := range formats {
		formats[i] = strings.ToLower(strings.TrimSpace(formats[i]))
	}

	baseOut := opt.OutDir
	if baseOut == "" {
		baseOut = string(opt.Preset)
	}
	if !filepath.IsAbs(baseOut) {
		baseOut = filepath.Join(h.Root, "exports", baseOut)
	}

	for _, f := range formats {
		switch f {
		case "pdf":
			out := filepath.Join(baseOut, TimestampedName("deck", "pdf"))
			if err := ExportDeckPDF(h, out, PDFOptions{Slides: opt.Slides}); err != nil {
				return fmt.Errorf("pdf: %w", err)
			}
		case "pptx":
			out := filepath.Join(baseOut, TimestampedName("deck", "pptx"))
			if err := ExportDeckPPTX(h, out, PPTXOptions{Slides: opt.Slides}); err != nil {
				return fmt.Errorf("pptx: %w", err)
			}
		case "png":
			indexes := slideIndexes(len(h.Deck.Slides), opt.Slides)
			for n, i := range indexes {
				out := filepath.Join(baseOut, "png", fmt.Sprintf("slide-%d.png", n+1))
				if err := ExportSlidePNG(h, h.Deck.Slides[i].ID, out, PNGOptions{}); err != nil {
					return fmt.Errorf("png slide %d: %w", i+1, err)
				}
			}
		default:
			return fmt.Errorf("unknown format: %s", f)
		}
	}
	return nil
}

func presetDefaultFormats(p PresetName) []string {
	switch p {
	case PresetShare:
		return []string{"pptx", "pdf"}
	case PresetWeb:
		return []string{"png"}
	default:
		return []string{"pdf"}
	}
}
