/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// language=SQL
// dialect=SQLite
const upsertPreviewSQL = `INSERT INTO previews(slide_id, w, h, thumb_blob, updated_at) VALUES(?,?,?,?,?)
	ON CONFLICT(slide_id) DO UPDATE SET w=excluded.w, h=excluded.h, thumb_blob=excluded.thumb_blob, updated_at=excluded.updated_at`

// language=SQL
// dialect=SQLite
const selectPreviewSQL = `SELECT w, h, thumb_blob FROM previews WHERE slide_id = ?`

// language=SQL
// dialect=SQLite
const deletePreviewSQL = `DELETE FROM previews WHERE slide_id = ?`

// SavePreview stores or refreshes a slide's thumbnail PNG in the cache.
func SavePreview(ctx context.Context, h *DeckHandle, slideID string, w, hpx int, png []byte) error {
	if h == nil {
		return errors.New("nil DeckHandle")
	}
	db, err := InitOrOpenIndex(h.Root)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	_, err = db.ExecContext(ctx, upsertPreviewSQL, slideID, w, hpx, png, time.Now().UTC().Format(time.RFC3339))
	return err
}

// GetPreview returns a cached thumbnail or nil if none exists.
func GetPreview(ctx context.Context, h *DeckHandle, slideID string) (png []byte, w, hpx int, err error) {
	if h == nil {
		return nil, 0, 0, errors.New("nil DeckHandle")
	}
	db, err := InitOrOpenIndex(h.Root)
	if err != nil {
		return nil, 0, 0, err
	}
	defer func() { _ = db.Close() }()
	err = db.QueryRowContext(ctx, selectPreviewSQL, slideID).Scan(&w, &hpx, &png)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, 0, nil
	}
	if err != nil {
		return nil, 0, 0, err
	}
	return png, w, hpx, nil
}

// DeletePreview drops the cached thumbnail for a slide, e.g. after deletion.
func DeletePreview(ctx context.Context, h *DeckHandle, slideID string) error {
	if h == nil {
		return errors.New("nil DeckHandle")
	}
	db, err := InitOrOpenIndex(h.Root)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	_, err = db.ExecContext(ctx, deletePreviewSQL, slideID)
	return err
}
