/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package snap

import (
	"testing"

	"quantumdeck/internal/domain"
)

func TestEdgeSnapLeftToLeft(t *testing.T) {
	moving := Rect{X: 102, Y: 300, W: 50, H: 50}
	anchors := []Rect{{X: 100, Y: 10, W: 80, H: 40}}
	snapped, guides := Compute(moving, anchors, Options{Threshold: 6, SnapToEdges: true})
	if snapped.X != 100 {
		t.Fatalf("snapped X: %v", snapped.X)
	}
	if len(guides) != 1 || guides[0].Orientation != "vertical" || guides[0].Kind != "edge" {
		t.Fatalf("guides: %+v", guides)
	}
	if guides[0].Position != 100 {
		t.Fatalf("guide position: %v", guides[0].Position)
	}
}

func TestCenterSnapBothAxes(t *testing.T) {
	moving := Rect{X: 98, Y: 197, W: 100, H: 100}
	anchors := []Rect{{X: 100, Y: 200, W: 100, H: 100}}
	snapped, guides := Compute(moving, anchors, Options{Threshold: 6, SnapToCenters: true})
	if snapped.X != 100 || snapped.Y != 200 {
		t.Fatalf("snapped: %+v", snapped)
	}
	if len(guides) != 2 {
		t.Fatalf("guides: %d", len(guides))
	}
}

func TestNoSnapBeyondThreshold(t *testing.T) {
	moving := Rect{X: 120, Y: 300, W: 50, H: 50}
	anchors := []Rect{{X: 100, Y: 10, W: 80, H: 40}}
	snapped, guides := Compute(moving, anchors, Options{Threshold: 6, SnapToEdges: true, SnapToCenters: true})
	if snapped != moving || len(guides) != 0 {
		t.Fatalf("unexpected snap: %+v %v", snapped, guides)
	}
}

func TestNearestCandidateWins(t *testing.T) {
	moving := Rect{X: 104, Y: 0, W: 50, H: 50}
	anchors := []Rect{
		{X: 100, Y: 100, W: 10, H: 10}, // left edge at 100, distance 4
		{X: 103, Y: 200, W: 10, H: 10}, // left edge at 103, distance 1
	}
	snapped, _ := Compute(moving, anchors, Options{Threshold: 6, SnapToEdges: true})
	if snapped.X != 103 {
		t.Fatalf("snapped to wrong anchor: %v", snapped.X)
	}
}

func TestSlideAnchorsIncludeCanvasAndSkipMover(t *testing.T) {
	s := domain.Slide{ID: "s", Objects: []domain.SceneObject{
		{ID: "a", X: 10, Y: 10, Width: 40, Height: 40},
		{ID: "b", X: 200, Y: 200, Width: 40, Height: 40, ScaleX: 2},
	}}
	anchors := SlideAnchors(s, "a")
	if len(anchors) != 2 {
		t.Fatalf("anchors: %d", len(anchors))
	}
	if anchors[0].W != domain.CanvasWidth || anchors[0].H != domain.CanvasHeight {
		t.Fatalf("canvas anchor: %+v", anchors[0])
	}
	if anchors[1].W != 80 {
		t.Fatalf("scale not applied: %+v", anchors[1])
	}
}

func TestCanvasCenterSnapViaSlideAnchors(t *testing.T) {
	s := domain.Slide{ID: "s", Objects: []domain.SceneObject{
		{ID: "m", X: 428, Y: 218, Width: 100, Height: 100},
	}}
	anchors := SlideAnchors(s, "m")
	snapped, _ := Compute(ObjectRect(&s.Objects[0]), anchors, Options{Threshold: 6, SnapToCenters: true})
	if snapped.X != 430 || snapped.Y != 220 {
		t.Fatalf("not centered on canvas: %+v", snapped)
	}
}
