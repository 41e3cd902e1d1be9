package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mikey-austin/mu_browse/internal/media"
)

// SaveQueue replaces the persisted queue.
func (s *Store) SaveQueue(ctx context.Context, queue media.SavedQueue) error {
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM queue_items`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO queue_state (id, position_ms) VALUES (1, ?)
			ON CONFLICT(id) DO UPDATE SET position_ms = excluded.position_ms
		`, queue.PositionMS)
		if err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO queue_items (position, node_id, song_id, title, artist_name, album_title,
				duration_ms, thumbnail_url, video, episode, resume_point)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, e := range queue.Entries {
			_, err := stmt.ExecContext(ctx, i, e.NodeID, e.Song.ID, e.Song.Title,
				nullString(e.Song.ArtistName), nullString(e.Song.AlbumTitle), e.Song.DurationMS,
				nullString(e.Song.ThumbnailURL), e.Song.Video, e.Song.Episode, e.ResumePoint)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadQueue returns the persisted queue, or ErrNotFound when none was saved.
func (s *Store) LoadQueue(ctx context.Context) (media.SavedQueue, error) {
	var queue media.SavedQueue
	err := s.db.QueryRowContext(ctx, `SELECT position_ms FROM queue_state WHERE id = 1`).Scan(&queue.PositionMS)
	if errors.Is(err, sql.ErrNoRows) {
		return media.SavedQueue{}, ErrNotFound
	}
	if err != nil {
		return media.SavedQueue{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT node_id, song_id, title, artist_name, album_title, duration_ms, thumbnail_url,
			video, episode, resume_point
		FROM queue_items
		ORDER BY position
	`)
	if err != nil {
		return media.SavedQueue{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var e media.QueueEntry
		var artist, album, thumb sql.NullString
		var duration sql.NullInt64
		if err := rows.Scan(&e.NodeID, &e.Song.ID, &e.Song.Title, &artist, &album, &duration, &thumb,
			&e.Song.Video, &e.Song.Episode, &e.ResumePoint); err != nil {
			return media.SavedQueue{}, err
		}
		e.Song.ArtistName = nullStringValue(artist)
		e.Song.AlbumTitle = nullStringValue(album)
		e.Song.DurationMS = nullInt64Value(duration)
		e.Song.ThumbnailURL = nullStringValue(thumb)
		queue.Entries = append(queue.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return media.SavedQueue{}, err
	}
	if len(queue.Entries) == 0 {
		return media.SavedQueue{}, ErrNotFound
	}
	return queue, nil
}
