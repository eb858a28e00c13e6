/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import (
	"context"
	"testing"
	"time"

	"quantumdeck/internal/domain"
	"quantumdeck/internal/storage"
)

func newTestEngine(t *testing.T) (*Engine, *storage.Store) {
	t.Helper()
	h, err := storage.InitWorkspace(t.TempDir(), domain.NewDefaultDeck())
	if err != nil {
		t.Fatal(err)
	}
	st := storage.NewStore(h)
	e := NewEngine(st, Options{CommitDelay: 5 * time.Millisecond})
	return e, st
}

func TestAddRectCommitsToStore(t *testing.T) {
	e, st := newTestEngine(t)
	id := e.AddRect(10, 20, 100, 50, "#ff0000")
	e.Flush()

	s := st.ActiveSlide()
	found := false
	for _, o := range s.Objects {
		if o.ID == id && o.Kind == domain.KindRect {
			found = true
		}
	}
	if !found {
		t.Fatal("committed rect not in store slide")
	}
	if s.Thumbnail == "" {
		t.Fatal("commit did not refresh thumbnail")
	}
}

func TestRapidEditsCollapseToOneCommit(t *testing.T) {
	e, _ := newTestEngine(t)
	for i := 0; i < 5; i++ {
		e.MoveObject(float64(i), float64(i))
	}
	time.Sleep(50 * time.Millisecond)
	undo, _ := e.HistoryDepths()
	// seed entry plus one collapsed commit
	if undo != 2 {
		t.Fatalf("undo depth: got %d want 2", undo)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	e, st := newTestEngine(t)
	before := len(e.Slide().Objects)
	e.AddEllipse(0, 0, 40, 40, "#00ff00")
	e.Flush()

	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if got := len(st.ActiveSlide().Objects); got != before {
		t.Fatalf("after undo: %d objects want %d", got, before)
	}
	if err := e.Redo(); err != nil {
		t.Fatal(err)
	}
	if got := len(st.ActiveSlide().Objects); got != before+1 {
		t.Fatalf("after redo: %d objects want %d", got, before+1)
	}
}

func TestCommitPersistsSnapshotAndPreview(t *testing.T) {
	e, st := newTestEngine(t)
	slideID := st.ActiveSlide().ID
	e.AddRect(10, 10, 30, 30, "#336699")
	e.Flush()

	// Index writes happen off the edit path; poll briefly.
	h := st.Handle()
	ctx := context.Background()
	deadline := time.Now().Add(3 * time.Second)
	for {
		blob, _, err := storage.GetLatestSnapshot(ctx, h, slideID)
		if err == nil && len(blob) > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("snapshot never reached the workspace index")
		}
		time.Sleep(20 * time.Millisecond)
	}
	for {
		png, w, _, err := storage.GetPreview(ctx, h, slideID)
		if err == nil && len(png) > 0 && w > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("preview never reached the workspace index")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestLoadSlideFlushesPendingEdit(t *testing.T) {
	e, st := newTestEngine(t)
	first := st.ActiveSlide().ID
	e.AddRect(5, 5, 10, 10, "#000000")
	// Switch before the debounce window elapses.
	second := st.AddSlide()
	e.LoadSlide(second)

	deck := st.Deck()
	i, ok := deck.SlideByID(first)
	if !ok {
		t.Fatal("first slide missing")
	}
	if len(deck.Slides[i].Objects) != 2 {
		t.Fatalf("pending edit lost on switch: %d objects", len(deck.Slides[i].Objects))
	}
}

func TestLoadSlideSeedsFreshHistory(t *testing.T) {
	e, st := newTestEngine(t)
	e.AddRect(0, 0, 10, 10, "#000000")
	e.Flush()
	e.LoadSlide(st.AddSlide())
	undo, redo := e.HistoryDepths()
	if undo != 1 || redo != 0 {
		t.Fatalf("history after load: undo=%d redo=%d", undo, redo)
	}
	if err := e.Undo(); err == nil {
		t.Fatal("undo crossed a slide switch")
	}
}

func TestCopyPasteOffsetAndRepeat(t *testing.T) {
	e, _ := newTestEngine(t)
	id := e.AddRect(100, 100, 30, 30, "#123456")
	e.Select(id)
	e.Copy()
	e.Paste()
	e.Paste()

	s := e.Slide()
	var xs []float64
	for _, o := range s.Objects {
		if o.Kind == domain.KindRect && o.ID != id {
			xs = append(xs, o.X)
		}
	}
	if len(xs) != 2 {
		t.Fatalf("pasted copies: %d", len(xs))
	}
	for _, x := range xs {
		if x != 100+PasteOffset {
			t.Fatalf("paste offset: %v", x)
		}
	}
}

func TestClipboardSurvivesSlideSwitch(t *testing.T) {
	e, st := newTestEngine(t)
	id := e.AddText("keep me", 10, 10, 20)
	e.Select(id)
	e.Copy()

	e.LoadSlide(st.AddSlide())
	before := len(e.Slide().Objects)
	e.Paste()
	if got := len(e.Slide().Objects); got != before+1 {
		t.Fatal("clipboard did not survive slide switch")
	}
}

func TestMoveLayerBoundaryNoop(t *testing.T) {
	e, _ := newTestEngine(t)
	a := e.AddRect(0, 0, 10, 10, "#000000")
	b := e.AddRect(0, 0, 10, 10, "#ffffff")

	e.Select(b)
	e.MoveLayer(1) // already on top
	s := e.Slide()
	if s.Objects[len(s.Objects)-1].ID != b {
		t.Fatal("top object moved on boundary no-op")
	}

	e.MoveLayer(-1)
	s = e.Slide()
	n := len(s.Objects)
	if s.Objects[n-1].ID != a || s.Objects[n-2].ID != b {
		t.Fatal("move toward bottom did not swap")
	}
}

func TestMoveObjectSnappedAligns(t *testing.T) {
	e, _ := newTestEngine(t)
	e.AddRect(100, 10, 80, 40, "#000000")
	id := e.AddRect(300, 300, 50, 50, "#ffffff")
	e.Select(id)
	guides := e.MoveObjectSnapped(102, 300)
	o, _ := e.ActiveObject()
	if o.X != 100 {
		t.Fatalf("snapped X: %v", o.X)
	}
	if len(guides) == 0 {
		t.Fatal("no guides returned")
	}
}

func TestDeleteSelectedEmptyIsNoop(t *testing.T) {
	e, _ := newTestEngine(t)
	before := len(e.Slide().Objects)
	e.Select("no-such-id")
	e.DeleteSelected()
	if got := len(e.Slide().Objects); got != before {
		t.Fatalf("empty delete changed objects: %d", got)
	}
}

func TestUpdatePropertyOpacityClamp(t *testing.T) {
	e, _ := newTestEngine(t)
	id := e.AddRect(0, 0, 10, 10, "#000000")
	e.Select(id)
	if err := e.UpdateProperty("opacity", 1.4); err != nil {
		t.Fatal(err)
	}
	if o, _ := e.ActiveObject(); o.Opacity != 1 {
		t.Fatalf("opacity above range: %v", o.Opacity)
	}
	if err := e.UpdateProperty("opacity", -0.2); err != nil {
		t.Fatal(err)
	}
	if o, _ := e.ActiveObject(); o.Opacity != 0 {
		t.Fatalf("opacity below range: %v", o.Opacity)
	}
}

func TestUpdatePropertyUnknownRejected(t *testing.T) {
	e, _ := newTestEngine(t)
	id := e.AddRect(0, 0, 10, 10, "#000000")
	e.Select(id)
	if err := e.UpdateProperty("wobble", 3); err == nil {
		t.Fatal("unknown property accepted")
	}
	if err := e.UpdateProperty("align", "justified"); err == nil {
		t.Fatal("bad align accepted")
	}
}

func TestClearRequiresConfirmation(t *testing.T) {
	e, _ := newTestEngine(t)
	e.AddRect(0, 0, 10, 10, "#000000")
	before := len(e.Slide().Objects)

	e.Clear(func() bool { return false })
	if got := len(e.Slide().Objects); got != before {
		t.Fatal("declined clear still ran")
	}

	e.SetBackground("#222222")
	e.Clear(func() bool { return true })
	s := e.Slide()
	if len(s.Objects) != 0 || s.Background != domain.DefaultBackground {
		t.Fatalf("confirmed clear incomplete: %+v", s)
	}
}

func TestAddEquationCarriesSource(t *testing.T) {
	e, _ := newTestEngine(t)
	id, err := e.AddEquation(`x^2`, 50, 50)
	if err != nil {
		t.Fatal(err)
	}
	e.Select(id)
	o, ok := e.ActiveObject()
	if !ok || o.Kind != domain.KindImage {
		t.Fatalf("equation object: %+v", o)
	}
	if o.LatexSource != `x^2` {
		t.Fatalf("source not retained: %q", o.LatexSource)
	}
}

func TestAddEquationEmptyFails(t *testing.T) {
	e, _ := newTestEngine(t)
	before := len(e.Slide().Objects)
	if _, err := e.AddEquation("  ", 0, 0); err == nil {
		t.Fatal("empty equation accepted")
	}
	if got := len(e.Slide().Objects); got != before {
		t.Fatal("failed equation still inserted")
	}
}
