/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package snap computes smart alignment guides for interactive object moves.
// The helpers are UI-agnostic and deterministic to enable unit testing and
// reuse across frontends. Snapping happens independently in X and Y.
package snap

import (
	"math"

	"quantumdeck/internal/domain"
)

// Pt is a 2D point.
type Pt struct{ X, Y float64 }

// Rect is an axis-aligned rectangle defined by min corner and size.
type Rect struct {
	X, Y float64
	W, H float64
}

// Options controls which guide candidates are considered and the threshold.
type Options struct {
	// Threshold is the maximum distance in canvas pixels at which snapping
	// occurs. Typical UI values are 6 to 8.
	Threshold float64
	// Snap to edges (left, right, top, bottom)
	SnapToEdges bool
	// Snap to centers (cx, cy)
	SnapToCenters bool
}

// GuideLine describes a visual guide generated during a snap alignment.
// Orientation is "vertical" or "horizontal"; Kind is "edge" or "center".
// Position is the x (vertical) or y (horizontal) coordinate; From and To
// denote the guide extents for rendering. Values are rounded to 3 decimal
// places for determinism.
type GuideLine struct {
	Orientation string
	Kind        string
	Position    float64
	From        Pt
	To          Pt
}

// ObjectRect returns an object's bounding box with scale factors applied.
func ObjectRect(o *domain.SceneObject) Rect {
	sx, sy := o.ScaleX, o.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return Rect{X: o.X, Y: o.Y, W: o.Width * sx, H: o.Height * sy}
}

// SlideAnchors collects snap anchors for moving one object: every other
// object on the slide plus the canvas bounds, so objects align to each other
// and to the slide edges and center.
func SlideAnchors(s domain.Slide, movingID string) []Rect {
	anchors := []Rect{{X: 0, Y: 0, W: domain.CanvasWidth, H: domain.CanvasHeight}}
	for i := range s.Objects {
		if s.Objects[i].ID == movingID {
			continue
		}
		anchors = append(anchors, ObjectRect(&s.Objects[i]))
	}
	return anchors
}

// Compute returns the snapped rectangle for a moving rect against a set of
// anchors, plus any guide lines to render for visual feedback.
func Compute(moving Rect, anchors []Rect, opts Options) (Rect, []GuideLine) {
	if opts.Threshold <= 0 {
		opts.Threshold = 6
	}
	var guides []GuideLine

	// Best candidate per axis: delta to subtract and its distance.
	bestDX, bestDXDist, bestDXGuide := 0.0, math.Inf(1), GuideLine{}
	bestDY, bestDYDist, bestDYGuide := 0.0, math.Inf(1), GuideLine{}

	mL, mR := moving.X, moving.X+moving.W
	mT, mB := moving.Y, moving.Y+moving.H
	mCX, mCY := moving.X+moving.W/2, moving.Y+moving.H/2

	for _, a := range anchors {
		aL, aR, aT, aB := a.X, a.X+a.W, a.Y, a.Y+a.H
		aCX, aCY := a.X+a.W/2, a.Y+a.H/2

		if opts.SnapToEdges {
			considerAxis(&bestDX, &bestDXDist, &bestDXGuide, mL-aL, opts.Threshold, verticalGuide(aL, moving, a, "edge"))
			considerAxis(&bestDX, &bestDXDist, &bestDXGuide, mR-aR, opts.Threshold, verticalGuide(aR, moving, a, "edge"))
			considerAxis(&bestDX, &bestDXDist, &bestDXGuide, mL-aR, opts.Threshold, verticalGuide(aR, moving, a, "edge"))
			considerAxis(&bestDX, &bestDXDist, &bestDXGuide, mR-aL, opts.Threshold, verticalGuide(aL, moving, a, "edge"))

			considerAxis(&bestDY, &bestDYDist, &bestDYGuide, mT-aT, opts.Threshold, horizontalGuide(aT, moving, a, "edge"))
			considerAxis(&bestDY, &bestDYDist, &bestDYGuide, mB-aB, opts.Threshold, horizontalGuide(aB, moving, a, "edge"))
			considerAxis(&bestDY, &bestDYDist, &bestDYGuide, mT-aB, opts.Threshold, horizontalGuide(aB, moving, a, "edge"))
			considerAxis(&bestDY, &bestDYDist, &bestDYGuide, mB-aT, opts.Threshold, horizontalGuide(aT, moving, a, "edge"))
		}
		if opts.SnapToCenters {
			considerAxis(&bestDX, &bestDXDist, &bestDXGuide, mCX-aCX, opts.Threshold, verticalGuide(aCX, moving, a, "center"))
			considerAxis(&bestDY, &bestDYDist, &bestDYGuide, mCY-aCY, opts.Threshold, horizontalGuide(aCY, moving, a, "center"))
		}
	}

	snapped := moving
	if bestDXDist <= opts.Threshold {
		snapped.X = round3(moving.X - bestDX)
		guides = append(guides, bestDXGuide)
	}
	if bestDYDist <= opts.Threshold {
		snapped.Y = round3(moving.Y - bestDY)
		guides = append(guides, bestDYGuide)
	}
	return snapped, guides
}

func considerAxis(bestDelta, bestDist *float64, bestGuide *GuideLine, delta, threshold float64, g GuideLine) {
	dist := math.Abs(delta)
	if dist > threshold || dist >= *bestDist {
		return
	}
	*bestDist = dist
	*bestDelta = delta
	*bestGuide = g
}

func verticalGuide(x float64, a, b Rect, kind string) GuideLine {
	minY := math.Min(a.Y, b.Y)
	maxY := math.Max(a.Y+a.H, b.Y+b.H)
	x = round3(x)
	return GuideLine{
		Orientation: "vertical",
		Kind:        kind,
		Position:    x,
		From:        Pt{x, minY},
		To:          Pt{x, maxY},
	}
}

func horizontalGuide(y float64, a, b Rect, kind string) GuideLine {
	minX := math.Min(a.X, b.X)
	maxX := math.Max(a.X+a.W, b.X+b.W)
	y = round3(y)
	return GuideLine{
		Orientation: "horizontal",
		Kind:        kind,
		Position:    y,
		From:        Pt{minX, y},
		To:          Pt{maxX, y},
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
