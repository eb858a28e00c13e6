/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"quantumdeck/internal/crash"
	"quantumdeck/internal/domain"
	"quantumdeck/internal/export"
	"quantumdeck/internal/freeform"
	"quantumdeck/internal/importer"
	applog "quantumdeck/internal/log"
	"quantumdeck/internal/storage"
	"quantumdeck/internal/ui"
	"quantumdeck/internal/version"
)

func usage() {
	fmt.Println("QuantumDeck — slide deck editor")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  quantumdeck version|-v|--version           Show version")
	fmt.Println("  quantumdeck init <dir>                      Create a new deck workspace at <dir>")
	fmt.Println("  quantumdeck open <dir>                      Open workspace at <dir> and print summary")
	fmt.Println("  quantumdeck save <dir>                      Save the deck at <dir> (creates backup)")
	fmt.Println("  quantumdeck import <dir> <file>             Import delimited text or JSON into the deck")
	fmt.Println("  quantumdeck export <dir> pdf|pptx|png       Export the deck (png exports the active slide)")
	fmt.Println("  quantumdeck freeform <dir> <file> [theme]   Build a free-form deck from delimited text and export PPTX")
	fmt.Println("  quantumdeck ui [<dir>]                      Launch desktop UI (build with -tags fyne for full UI)")
}

func main() {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	var h *storage.DeckHandle
	defer func() { crash.Recover(h) }()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("QuantumDeck — slide deck editor")
			fmt.Println(version.String())
			return
		case "init":
			if len(args) < 3 {
				fmt.Println("init requires <dir>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			l.Info("init workspace", slog.String("root", abs))
			nh, err := storage.InitWorkspace(abs, domain.NewDefaultDeck())
			if err != nil {
				l.Error("init failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			h = nh
			fmt.Println("Created deck workspace at", abs)
			return
		case "open":
			if len(args) < 3 {
				fmt.Println("open requires <dir>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			l.Info("open workspace", slog.String("root", abs))
			nh, err := storage.Open(abs)
			if err != nil {
				l.Error("open failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			h = nh
			fmt.Printf("Opened deck with %d slides\n", len(h.Deck.Slides))
			fmt.Println("Root:", h.Root)
			return
		case "save":
			if len(args) < 3 {
				fmt.Println("save requires <dir>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			nh, err := storage.Open(abs)
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			h = nh
			if err := storage.Save(h); err != nil {
				l.Error("save failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Saved deck at", abs)
			return
		case "import":
			if len(args) < 4 {
				fmt.Println("import requires <dir> and <file>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			nh, err := storage.Open(abs)
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			h = nh
			raw, err := os.ReadFile(args[3])
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			descs := importer.ParseJSON(raw)
			if len(descs) == 0 {
				fmt.Println("Nothing to import; deck unchanged.")
				return
			}
			h.Deck.Slides = domain.BuildSlides(descs)
			h.Deck.ActiveSlideID = ""
			h.Deck.Normalize()
			if err := storage.Save(h); err != nil {
				l.Error("save after import failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Printf("Imported %d slides\n", len(descs))
			return
		case "export":
			if len(args) < 4 {
				fmt.Println("export requires <dir> and a format (pdf, pptx, png)")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			nh, err := storage.Open(abs)
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			h = nh
			var out string
			switch args[3] {
			case "pdf":
				out = export.TimestampedName("deck", "pdf")
				err = export.ExportDeckPDF(h, out, export.PDFOptions{})
			case "pptx":
				out = export.TimestampedName("deck", "pptx")
				err = export.ExportDeckPPTX(h, out, export.PPTXOptions{})
			case "png":
				out = export.TimestampedName("slide", "png")
				err = export.ExportSlidePNG(h, h.Deck.ActiveSlideID, out, export.PNGOptions{})
			default:
				fmt.Println("unknown format:", args[3])
				os.Exit(2)
			}
			if err != nil {
				l.Error("export failed", slog.String("format", args[3]), slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Exported", filepath.Join(h.Root, "exports", out))
			return
		case "freeform":
			if len(args) < 4 {
				fmt.Println("freeform requires <dir> and <file>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			nh, err := storage.Open(abs)
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			h = nh
			raw, err := os.ReadFile(args[3])
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fed := freeform.NewEditor(freeform.ParseSlides(string(raw)))
			if len(args) >= 5 {
				fed.SetTheme(args[4])
			}
			out := filepath.Join(h.Root, "exports", export.TimestampedName("freeform", "pptx"))
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if err := fed.ExportPPTX(out); err != nil {
				l.Error("freeform export failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Printf("Exported %d free-form slides to %s\n", len(fed.Slides()), out)
			return
		case "ui":
			var dir string
			if len(args) >= 3 {
				dir = args[2]
			}
			if err := ui.Run(dir); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		}
	}

	usage()
}
