/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"log/slog"
	"sync"

	"quantumdeck/internal/domain"
	applog "quantumdeck/internal/log"
)

// Store is the single writer of the Deck. Consumers read snapshots via
// Deck()/ActiveSlide() and observe changes through Subscribe; the canvas
// engine holds a provisional working copy and writes back through
// UpdateSlideData on debounced commits.
type Store struct {
	mu     sync.Mutex
	deck   domain.Deck
	handle *DeckHandle

	subMu  sync.Mutex
	nextID int
	subs   map[int]func()

	log *slog.Logger
}

// NewStore wraps a deck handle. The handle's deck is normalized on entry.
func NewStore(h *DeckHandle) *Store {
	h.Deck.Normalize()
	return &Store{
		deck:   h.Deck,
		handle: h,
		subs:   make(map[int]func()),
		log:    applog.WithComponent("store"),
	}
}

// Subscribe registers an observer called after every completed mutation.
// The returned function unsubscribes.
func (s *Store) Subscribe(fn func()) func() {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Deck returns a deep copy of the current deck.
func (s *Store) Deck() domain.Deck {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deck.Clone()
}

// ActiveSlide returns a copy of the active slide.
func (s *Store) ActiveSlide() domain.Slide {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, _ := s.deck.SlideByID(s.deck.ActiveSlideID)
	if i < 0 {
		i = 0
	}
	return s.deck.Slides[i].Clone()
}

// AddSlide inserts a new default slide after the active one and makes it
// active. Returns the new slide's id.
func (s *Store) AddSlide() string {
	s.mu.Lock()
	ns := domain.NewDefaultSlide()
	pos := len(s.deck.Slides)
	if i, ok := s.deck.SlideByID(s.deck.ActiveSlideID); ok {
		pos = i + 1
	}
	s.deck.Slides = append(s.deck.Slides, domain.Slide{})
	copy(s.deck.Slides[pos+1:], s.deck.Slides[pos:])
	s.deck.Slides[pos] = ns
	s.deck.ActiveSlideID = ns.ID
	s.mu.Unlock()
	s.notify()
	return ns.ID
}

// SetActiveSlide switches the active pointer. Unknown ids are a silent no-op;
// the store never mutates slide content here, the canvas observes the pointer
// and reloads.
func (s *Store) SetActiveSlide(id string) {
	s.mu.Lock()
	_, ok := s.deck.SlideByID(id)
	if ok {
		s.deck.ActiveSlideID = id
	}
	s.mu.Unlock()
	if ok {
		s.notify()
	}
}

// SetSlides atomically replaces the whole slide set, used by bulk import.
// The first new slide becomes active. An empty replacement leaves the deck
// untouched.
func (s *Store) SetSlides(slides []domain.Slide) {
	if len(slides) == 0 {
		s.log.Warn("bulk replace with empty slide set ignored")
		return
	}
	s.mu.Lock()
	s.deck.Slides = make([]domain.Slide, len(slides))
	for i := range slides {
		s.deck.Slides[i] = slides[i].Clone()
		s.deck.Slides[i].Normalize()
	}
	s.deck.ActiveSlideID = s.deck.Slides[0].ID
	s.mu.Unlock()
	s.notify()
}

// UpdateSlideData replaces one slide's scene payload and thumbnail without
// touching any other slide. Called by the canvas after a debounced commit.
func (s *Store) UpdateSlideData(id string, objects []domain.SceneObject, background, thumbnail string) {
	s.mu.Lock()
	i, ok := s.deck.SlideByID(id)
	if ok {
		s.deck.Slides[i].Objects = append([]domain.SceneObject(nil), objects...)
		if background != "" {
			s.deck.Slides[i].Background = background
		}
		s.deck.Slides[i].Thumbnail = thumbnail
		s.deck.Slides[i].Normalize()
	}
	s.mu.Unlock()
	if ok {
		s.notify()
	}
}

// DeleteSlide removes a slide. Deleting the active slide activates the
// previous sibling (or the first remaining); deleting the only slide
// replaces the deck with one fresh default slide. The deck never empties.
func (s *Store) DeleteSlide(id string) {
	s.mu.Lock()
	i, ok := s.deck.SlideByID(id)
	if !ok {
		s.mu.Unlock()
		return
	}
	if len(s.deck.Slides) == 1 {
		s.deck = domain.NewDefaultDeck()
		s.mu.Unlock()
		s.notify()
		return
	}
	wasActive := s.deck.ActiveSlideID == id
	s.deck.Slides = append(s.deck.Slides[:i], s.deck.Slides[i+1:]...)
	if wasActive {
		prev := i - 1
		if prev < 0 {
			prev = 0
		}
		s.deck.ActiveSlideID = s.deck.Slides[prev].ID
	}
	s.mu.Unlock()
	go func() { _ = DeletePreview(context.Background(), s.handle, id) }()
	s.notify()
}

// Persist writes the current deck to disk through the workspace handle.
func (s *Store) Persist() error {
	s.mu.Lock()
	s.handle.Deck = s.deck.Clone()
	s.mu.Unlock()
	return Save(s.handle)
}

// Handle exposes the underlying workspace handle for snapshot/preview IO.
func (s *Store) Handle() *DeckHandle { return s.handle }
