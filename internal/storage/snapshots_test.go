/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"quantumdeck/internal/domain"
)

func newTestHandle(t *testing.T) *DeckHandle {
	t.Helper()
	h, err := InitWorkspace(filepath.Join(t.TempDir(), "deck"), domain.NewDefaultDeck())
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func TestSaveAndGetLatestSnapshot(t *testing.T) {
	h := newTestHandle(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Minute)
	for i := 0; i < 3; i++ {
		blob := []byte(fmt.Sprintf("scene-%d", i))
		if err := SaveSnapshot(ctx, h, "slide-a", blob, base.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatal(err)
		}
	}
	blob, ts, err := GetLatestSnapshot(ctx, h, "slide-a")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(blob, []byte("scene-2")) {
		t.Fatalf("latest blob: %q", blob)
	}
	if ts.IsZero() {
		t.Fatal("timestamp not parsed")
	}
}

func TestGetLatestSnapshotNone(t *testing.T) {
	h := newTestHandle(t)
	blob, _, err := GetLatestSnapshot(context.Background(), h, "nothing")
	if err != nil {
		t.Fatal(err)
	}
	if blob != nil {
		t.Fatalf("expected nil blob, got %q", blob)
	}
}

func TestListAndPruneSnapshots(t *testing.T) {
	h := newTestHandle(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 10; i++ {
		if err := SaveSnapshot(ctx, h, "s1", []byte{byte(i)}, base.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatal(err)
		}
	}
	list, err := ListSnapshots(ctx, h, "s1", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 5 {
		t.Fatalf("list limit: %d", len(list))
	}
	if list[0].Blob[0] != 9 {
		t.Fatalf("list not newest-first: %v", list[0].Blob)
	}
	n, err := PruneOldSnapshots(ctx, h, "s1", 3)
	if err != nil {
		t.Fatal(err)
	}
	if n != 7 {
		t.Fatalf("pruned %d want 7", n)
	}
	remaining, err := ListSnapshots(ctx, h, "s1", 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 3 {
		t.Fatalf("remaining: %d", len(remaining))
	}
}

func TestPreviewCacheRoundTrip(t *testing.T) {
	h := newTestHandle(t)
	ctx := context.Background()
	png := []byte{0x89, 'P', 'N', 'G'}
	if err := SavePreview(ctx, h, "s1", 240, 135, png); err != nil {
		t.Fatal(err)
	}
	got, w, hh, err := GetPreview(ctx, h, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, png) || w != 240 || hh != 135 {
		t.Fatalf("preview mismatch: %v %dx%d", got, w, hh)
	}
	// Upsert replaces.
	if err := SavePreview(ctx, h, "s1", 480, 270, append(png, 0xff)); err != nil {
		t.Fatal(err)
	}
	got2, w2, _, err := GetPreview(ctx, h, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got2) != len(png)+1 || w2 != 480 {
		t.Fatal("preview upsert did not replace")
	}
	if err := DeletePreview(ctx, h, "s1"); err != nil {
		t.Fatal(err)
	}
	got3, _, _, err := GetPreview(ctx, h, "s1")
	if err != nil || got3 != nil {
		t.Fatalf("preview not deleted: %v %v", got3, err)
	}
}
