/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package history provides bounded undo/redo stacks of serialized slide
// snapshots, one Recorder per canvas instance, plus the debounce timer that
// schedules commits.
package history

import (
	"errors"
	"sync"
)

// DefaultMaxDepth bounds the undo stack; pushing past it evicts the oldest
// snapshot.
const DefaultMaxDepth = 50

var (
	// ErrNothingToUndo is returned when only the initial state remains.
	ErrNothingToUndo = errors.New("history: nothing to undo")
	// ErrNothingToRedo is returned when the redo stack is empty.
	ErrNothingToRedo = errors.New("history: nothing to redo")
)

// Config controls stack depth.
type Config struct {
	// MaxDepth limits snapshots kept (0 means DefaultMaxDepth).
	MaxDepth int
}

// Recorder keeps a strict linear history with a single branch: the top of
// the undo stack is always the current state, and any new commit clears the
// redo stack. It is safe for concurrent use.
type Recorder struct {
	cfg  Config
	mu   sync.Mutex
	undo [][]byte
	redo [][]byte
}

func NewRecorder(cfg Config) *Recorder {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return &Recorder{cfg: cfg}
}

// Reset discards all history and seeds the stack with the initial state.
// The initial state is never undoable past.
func (r *Recorder) Reset(initial []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.undo = [][]byte{cloneBlob(initial)}
	r.redo = nil
}

// Push records a committed edit as the new current state and clears redo.
func (r *Recorder) Push(blob []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.undo = append(r.undo, cloneBlob(blob))
	r.redo = nil
	if len(r.undo) > r.cfg.MaxDepth {
		drop := len(r.undo) - r.cfg.MaxDepth
		r.undo = append([][]byte{}, r.undo[drop:]...)
	}
}

// Undo steps back one commit: apply is called with the previous state, and
// only if it succeeds does the current state move onto the redo stack. A
// failing apply (corrupt snapshot) leaves both stacks unchanged.
func (r *Recorder) Undo(apply func(blob []byte) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.undo)
	if n <= 1 {
		return ErrNothingToUndo
	}
	if err := apply(cloneBlob(r.undo[n-2])); err != nil {
		return err
	}
	r.redo = append(r.redo, r.undo[n-1])
	r.undo = r.undo[:n-1]
	return nil
}

// Redo re-applies the most recently undone commit.
func (r *Recorder) Redo(apply func(blob []byte) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.redo)
	if n == 0 {
		return ErrNothingToRedo
	}
	if err := apply(cloneBlob(r.redo[n-1])); err != nil {
		return err
	}
	r.undo = append(r.undo, r.redo[n-1])
	r.redo = r.redo[:n-1]
	return nil
}

// Current returns a copy of the current state blob, if any.
func (r *Recorder) Current() ([]byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.undo) == 0 {
		return nil, false
	}
	return cloneBlob(r.undo[len(r.undo)-1]), true
}

// Depths reports stack sizes for diagnostics.
func (r *Recorder) Depths() (undo, redo int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.undo), len(r.redo)
}

func cloneBlob(b []byte) []byte { return append([]byte(nil), b...) }
