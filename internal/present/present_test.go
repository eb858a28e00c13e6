/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package present

import (
	"testing"

	"quantumdeck/internal/domain"
	"quantumdeck/internal/storage"
)

func testStore(t *testing.T, slides int) *storage.Store {
	t.Helper()
	deck := domain.Deck{}
	for i := 0; i < slides; i++ {
		deck.Slides = append(deck.Slides, domain.Slide{ID: domain.NewID(), Background: "#ffffff"})
	}
	deck.Normalize()
	h, err := storage.InitWorkspace(t.TempDir(), deck)
	if err != nil {
		t.Fatal(err)
	}
	return storage.NewStore(h)
}

func TestNavigationClamps(t *testing.T) {
	ov := NewOverlay(testStore(t, 3))
	ov.Prev()
	if ov.Index() != 0 {
		t.Fatalf("prev at start: %d", ov.Index())
	}
	ov.Next()
	ov.Next()
	ov.Next() // clamped
	if ov.Index() != 2 {
		t.Fatalf("next at end: %d", ov.Index())
	}
	ov.Goto(99)
	if ov.Index() != 2 {
		t.Fatalf("goto clamp: %d", ov.Index())
	}
	ov.Goto(-5)
	if ov.Index() != 0 {
		t.Fatalf("goto clamp low: %d", ov.Index())
	}
}

func TestPenStrokePaintsLayer(t *testing.T) {
	ov := NewOverlay(testStore(t, 1))
	ov.SetTool(ToolPen)
	ov.Stroke(100, 100, 140, 100)
	if ov.Layer().RGBAAt(120, 100).A == 0 {
		t.Fatal("pen stroke left no pixels")
	}
}

func TestEraserClearsStroke(t *testing.T) {
	ov := NewOverlay(testStore(t, 1))
	ov.SetTool(ToolPen)
	ov.Stroke(100, 100, 140, 100)
	ov.SetTool(ToolEraser)
	ov.Stroke(100, 100, 140, 100)
	if ov.Layer().RGBAAt(120, 100).A != 0 {
		t.Fatal("eraser did not clear")
	}
}

func TestLaserIsTransient(t *testing.T) {
	ov := NewOverlay(testStore(t, 1))
	ov.SetTool(ToolLaser)
	ov.Stroke(0, 0, 300, 200)
	x, y, ok := ov.Laser()
	if !ok || x != 300 || y != 200 {
		t.Fatalf("laser position: %v %v %v", x, y, ok)
	}
	if !layerBlank(ov.Layer()) {
		t.Fatal("laser painted the layer")
	}
	ov.SetTool(ToolNone)
	if _, _, ok := ov.Laser(); ok {
		t.Fatal("laser visible after tool switch")
	}
}

func TestNavigationClearsAnnotations(t *testing.T) {
	ov := NewOverlay(testStore(t, 2))
	ov.SetTool(ToolPen)
	ov.Stroke(50, 50, 60, 50)
	ov.Next()
	if !layerBlank(ov.Layer()) {
		t.Fatal("annotations carried across slides")
	}
}

func TestSaveDrawingBlankIsNoop(t *testing.T) {
	st := testStore(t, 1)
	ov := NewOverlay(st)
	before := len(st.ActiveSlide().Objects)
	if err := ov.SaveDrawing(); err != nil {
		t.Fatal(err)
	}
	if got := len(st.ActiveSlide().Objects); got != before {
		t.Fatalf("blank save added object: %d", got)
	}
}

func TestSaveDrawingPersistsFullCanvasObject(t *testing.T) {
	st := testStore(t, 1)
	ov := NewOverlay(st)
	ov.SetTool(ToolPen)
	ov.Stroke(10, 10, 50, 50)
	if err := ov.SaveDrawing(); err != nil {
		t.Fatal(err)
	}
	s := st.ActiveSlide()
	if len(s.Objects) != 1 {
		t.Fatalf("objects after save: %d", len(s.Objects))
	}
	o := s.Objects[0]
	if o.Kind != domain.KindDrawing {
		t.Fatalf("kind: %s", o.Kind)
	}
	if o.Width != domain.CanvasWidth || o.Height != domain.CanvasHeight {
		t.Fatalf("drawing not full canvas: %vx%v", o.Width, o.Height)
	}
}

func TestSaveDrawingClearsLayer(t *testing.T) {
	st := testStore(t, 1)
	ov := NewOverlay(st)
	ov.SetTool(ToolPen)
	ov.Stroke(10, 10, 50, 50)
	if err := ov.SaveDrawing(); err != nil {
		t.Fatal(err)
	}
	if !layerBlank(ov.Layer()) {
		t.Fatal("layer not cleared after save")
	}
	// A follow-up save with no new strokes must not duplicate the drawing.
	if err := ov.SaveDrawing(); err != nil {
		t.Fatal(err)
	}
	if got := len(st.ActiveSlide().Objects); got != 1 {
		t.Fatalf("objects after repeated save: %d", got)
	}
}

func TestExitCallback(t *testing.T) {
	ov := NewOverlay(testStore(t, 1))
	fired := false
	ov.SetOnExit(func() { fired = true })
	ov.Exit()
	if !fired {
		t.Fatal("exit callback not fired")
	}
}
