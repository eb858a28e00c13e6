/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package freeform

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func TestParseSlidesDelimited(t *testing.T) {
	slides := ParseSlides("Slide 1:\nFirst body\nSlide 2:\nSecond body")
	if len(slides) != 2 {
		t.Fatalf("slides: %d", len(slides))
	}
	s := slides[0]
	if len(s.Elements) != 2 {
		t.Fatalf("elements: %d", len(s.Elements))
	}
	title := s.Elements[0]
	if title.Content != "Slide 1" || !title.Bold || title.FontSize != 48 {
		t.Fatalf("title element: %+v", title)
	}
	if slides[1].Elements[1].Content != "Second body" {
		t.Fatalf("body: %+v", slides[1].Elements[1])
	}
}

func TestParseSlidesEmptyGivesDefault(t *testing.T) {
	slides := ParseSlides("  ")
	if len(slides) != 1 || len(slides[0].Elements) != 1 {
		t.Fatalf("default slide: %+v", slides)
	}
}

func TestEightThemePresets(t *testing.T) {
	if len(Themes) != 8 {
		t.Fatalf("theme count: %d", len(Themes))
	}
	if Themes[0].Name != "Corporate Blue" || Themes[0].Bg != "#1e3a5f" {
		t.Fatalf("first theme: %+v", Themes[0])
	}
}

func TestSetThemeUnknownIgnored(t *testing.T) {
	e := NewEditor(nil)
	e.SetTheme("Ocean Teal")
	if e.Theme().Bg != "#083344" {
		t.Fatalf("theme: %+v", e.Theme())
	}
	e.SetTheme("No Such Theme")
	if e.Theme().Name != "Ocean Teal" {
		t.Fatal("unknown theme changed selection")
	}
}

func TestUndoRedoFullArray(t *testing.T) {
	e := NewEditor(nil)
	e.AddSlide()
	e.AddSlide()
	if got := len(e.Slides()); got != 3 {
		t.Fatalf("slides: %d", got)
	}
	if !e.Undo() {
		t.Fatal("undo failed")
	}
	if got := len(e.Slides()); got != 2 {
		t.Fatalf("after undo: %d", got)
	}
	if !e.Redo() {
		t.Fatal("redo failed")
	}
	if got := len(e.Slides()); got != 3 {
		t.Fatalf("after redo: %d", got)
	}
	if e.Redo() {
		t.Fatal("redo past end succeeded")
	}
}

func TestCommitTruncatesRedoTail(t *testing.T) {
	e := NewEditor(nil)
	e.AddSlide()
	e.Undo()
	e.AddSlide() // new edit after undo
	if e.Redo() {
		t.Fatal("redo survived a new commit")
	}
}

func TestHistoryCap(t *testing.T) {
	e := NewEditor(nil)
	for i := 0; i < HistoryDepth+20; i++ {
		e.AddElement(NewTextElement("x", 0, 0))
	}
	undos := 0
	for e.Undo() {
		undos++
	}
	if undos != HistoryDepth-1 {
		t.Fatalf("undo steps: %d want %d", undos, HistoryDepth-1)
	}
}

func TestDeckNeverEmpties(t *testing.T) {
	e := NewEditor(nil)
	e.DeleteActiveSlide()
	if got := len(e.Slides()); got != 1 {
		t.Fatalf("slides after last delete: %d", got)
	}
}

func TestElementUpdateAndRemove(t *testing.T) {
	e := NewEditor(nil)
	el := NewTextElement("hello", 10, 10)
	e.AddElement(el)
	el.Content = "edited"
	e.UpdateElement(el)

	s := e.Slides()[0]
	found := false
	for _, got := range s.Elements {
		if got.ID == el.ID && got.Content == "edited" {
			found = true
		}
	}
	if !found {
		t.Fatal("update not applied")
	}
	e.RemoveElement(el.ID)
	for _, got := range e.Slides()[0].Elements {
		if got.ID == el.ID {
			t.Fatal("element not removed")
		}
	}
}

func TestExportPPTXUsesThemeColors(t *testing.T) {
	e := NewEditor(ParseSlides("Slide 1:\nBody"))
	e.SetTheme("Crimson")
	out := filepath.Join(t.TempDir(), "free.pptx")
	if err := e.ExportPPTX(out); err != nil {
		t.Fatal(err)
	}
	zr, err := zip.OpenReader(out)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()
	found := false
	for _, f := range zr.File {
		if f.Name == "ppt/slides/slide1.xml" {
			found = true
		}
	}
	if !found {
		t.Fatal("slide part missing")
	}
}

func TestTextFileToWorkspaceExport(t *testing.T) {
	ws := t.TempDir()
	src := filepath.Join(ws, "deck.txt")
	if err := os.WriteFile(src, []byte("Slide 1:\nIntro\nBody\nSlide 2:\nSecond"), 0o644); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	e := NewEditor(ParseSlides(string(raw)))
	e.SetTheme("Ocean Teal")

	out := filepath.Join(ws, "exports", "freeform.pptx")
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := e.ExportPPTX(out); err != nil {
		t.Fatal(err)
	}
	zr, err := zip.OpenReader(out)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()
	parts := map[string]bool{}
	for _, f := range zr.File {
		parts[f.Name] = true
	}
	for _, want := range []string{"ppt/slides/slide1.xml", "ppt/slides/slide2.xml"} {
		if !parts[want] {
			t.Fatalf("missing part %s", want)
		}
	}
}
