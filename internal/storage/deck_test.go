/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"quantumdeck/internal/domain"
)

func TestInitWorkspaceScaffoldsAndSaves(t *testing.T) {
	root := filepath.Join(t.TempDir(), "deck")
	h, err := InitWorkspace(root, domain.NewDefaultDeck())
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range []string{"assets", "exports", "backups"} {
		if fi, err := os.Stat(filepath.Join(root, d)); err != nil || !fi.IsDir() {
			t.Fatalf("missing subdir %s: %v", d, err)
		}
	}
	if _, err := os.Stat(h.ManifestPath); err != nil {
		t.Fatalf("manifest not written: %v", err)
	}
}

func TestOpenRoundTrip(t *testing.T) {
	root := filepath.Join(t.TempDir(), "deck")
	deck := domain.NewDefaultDeck()
	deck.Slides[0].Background = "#123456"
	if _, err := InitWorkspace(root, deck); err != nil {
		t.Fatal(err)
	}
	h, err := Open(root)
	if err != nil {
		t.Fatal(err)
	}
	if h.Deck.Slides[0].Background != "#123456" {
		t.Fatalf("background lost: %q", h.Deck.Slides[0].Background)
	}
	if _, ok := h.Deck.SlideByID(h.Deck.ActiveSlideID); !ok {
		t.Fatal("active pointer does not resolve after open")
	}
}

func TestSaveCreatesBackupAndOpenFallsBack(t *testing.T) {
	root := filepath.Join(t.TempDir(), "deck")
	deck := domain.NewDefaultDeck()
	h, err := InitWorkspace(root, deck)
	if err != nil {
		t.Fatal(err)
	}
	// Second save produces a backup of the first manifest.
	time.Sleep(10 * time.Millisecond)
	h.Deck.Slides[0].Background = "#abcdef"
	if err := Save(h); err != nil {
		t.Fatal(err)
	}
	ents, err := os.ReadDir(filepath.Join(root, BackupsDirName))
	if err != nil || len(ents) == 0 {
		t.Fatalf("expected a backup, got %d (%v)", len(ents), err)
	}
	// Corrupt the manifest; Open must recover from the backup.
	if err := os.WriteFile(h.ManifestPath, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	h2, err := Open(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(h2.Deck.Slides) != 1 {
		t.Fatalf("backup recovery slide count: %d", len(h2.Deck.Slides))
	}
}

func TestOpenMissingEverythingFallsBackToDefault(t *testing.T) {
	root := filepath.Join(t.TempDir(), "empty")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	h, err := Open(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(h.Deck.Slides) != 1 {
		t.Fatalf("default fallback: got %d slides", len(h.Deck.Slides))
	}
	if h.Deck.ActiveSlideID != h.Deck.Slides[0].ID {
		t.Fatal("default fallback active pointer wrong")
	}
}

func TestOpenRejectsSchemaViolation(t *testing.T) {
	root := filepath.Join(t.TempDir(), "deck")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	// Valid JSON, invalid shape: slides must be an array.
	bad := []byte(`{"slides": "nope", "activeSlideId": "x"}`)
	if err := os.WriteFile(filepath.Join(root, ManifestFileName), bad, 0o644); err != nil {
		t.Fatal(err)
	}
	h, err := Open(root)
	if err != nil {
		t.Fatal(err)
	}
	// Falls back to the default deck rather than loading garbage.
	if len(h.Deck.Slides) != 1 || h.Deck.Slides[0].Background != domain.DefaultBackground {
		t.Fatalf("schema violation not rejected: %+v", h.Deck)
	}
}

func TestValidateManifest(t *testing.T) {
	good := []byte(`{"slides":[{"id":"a","background":"#fff","objects":[]}],"activeSlideId":"a"}`)
	if err := ValidateManifest(good); err != nil {
		t.Fatalf("valid manifest rejected: %v", err)
	}
	bad := []byte(`{"activeSlideId":"a"}`)
	if err := ValidateManifest(bad); err == nil {
		t.Fatal("manifest without slides accepted")
	}
}
