package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/mikey-austin/mu_browse/internal/media"
)

// SongFlags carries the library state of a song.
type SongFlags struct {
	InLibrary bool
	OnDevice  bool
	Hidden    bool
	AddedAt   time.Time
}

// PutSong inserts or replaces a song's metadata and flags. Likes and play time
// survive a replace.
func (s *Store) PutSong(ctx context.Context, song media.Song, flags SongFlags) error {
	added := flags.AddedAt
	if added.IsZero() {
		added = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO songs (id, title, artist_id, artist_name, album_id, album_title, track_number,
			duration_ms, thumbnail_url, stream_url, video, episode, in_library, on_device, hidden, date_added)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			artist_id = excluded.artist_id,
			artist_name = excluded.artist_name,
			album_id = excluded.album_id,
			album_title = excluded.album_title,
			track_number = excluded.track_number,
			duration_ms = excluded.duration_ms,
			thumbnail_url = excluded.thumbnail_url,
			stream_url = excluded.stream_url,
			video = excluded.video,
			episode = excluded.episode,
			in_library = excluded.in_library,
			on_device = excluded.on_device,
			hidden = excluded.hidden
	`, song.ID, song.Title, nullString(song.ArtistID), nullString(song.ArtistName),
		nullString(song.AlbumID), nullString(song.AlbumTitle), song.TrackNumber, song.DurationMS,
		nullString(song.ThumbnailURL), nullString(song.StreamURL), song.Video, song.Episode,
		flags.InLibrary, flags.OnDevice, flags.Hidden, added.UnixMilli())
	return err
}

// SetLiked likes or unlikes a song.
func (s *Store) SetLiked(ctx context.Context, songID string, liked bool, at time.Time) error {
	var likedAt any
	if liked {
		likedAt = at.UnixMilli()
	}
	return s.exec(ctx, "song", songID, `UPDATE songs SET liked_at = ? WHERE id = ?`, likedAt, songID)
}

// AddPlayTime accumulates listening time for a song.
func (s *Store) AddPlayTime(ctx context.Context, songID string, played time.Duration) error {
	return s.exec(ctx, "song", songID, `UPDATE songs SET play_time_ms = play_time_ms + ? WHERE id = ?`, played.Milliseconds(), songID)
}

// PutArtist inserts or replaces an artist.
func (s *Store) PutArtist(ctx context.Context, a media.Artist, inLibrary bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO artists (id, name, thumbnail_url, in_library) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			thumbnail_url = excluded.thumbnail_url,
			in_library = excluded.in_library
	`, a.ID, a.Name, nullString(a.ThumbnailURL), inLibrary)
	return err
}

// BookmarkArtist marks or unmarks an artist as favorite.
func (s *Store) BookmarkArtist(ctx context.Context, id string, on bool, at time.Time) error {
	return s.exec(ctx, "artist", id, `UPDATE artists SET bookmarked_at = ? WHERE id = ?`, bookmark(on, at), id)
}

// PutAlbum inserts or replaces an album.
func (s *Store) PutAlbum(ctx context.Context, a media.Album, inLibrary bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO albums (id, title, artist_id, artist_name, year, thumbnail_url, in_library)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			artist_id = excluded.artist_id,
			artist_name = excluded.artist_name,
			year = excluded.year,
			thumbnail_url = excluded.thumbnail_url,
			in_library = excluded.in_library
	`, a.ID, a.Title, nullString(a.ArtistID), nullString(a.ArtistName), a.Year, nullString(a.ThumbnailURL), inLibrary)
	return err
}

// BookmarkAlbum marks or unmarks an album as favorite.
func (s *Store) BookmarkAlbum(ctx context.Context, id string, on bool, at time.Time) error {
	return s.exec(ctx, "album", id, `UPDATE albums SET bookmarked_at = ? WHERE id = ?`, bookmark(on, at), id)
}

// PutPlaylist inserts or replaces a playlist and its song order.
func (s *Store) PutPlaylist(ctx context.Context, p media.Playlist, editable bool, songIDs []string) error {
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO playlists (id, name, author, remote_id, thumbnail_url, podcast, editable, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				author = excluded.author,
				remote_id = excluded.remote_id,
				thumbnail_url = excluded.thumbnail_url,
				podcast = excluded.podcast,
				editable = excluded.editable
		`, p.ID, p.Name, nullString(p.Author), nullString(p.RemoteID), nullString(p.ThumbnailURL),
			p.Podcast, editable, time.Now().UnixMilli())
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM playlist_songs WHERE playlist_id = ?`, p.ID); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO playlist_songs (playlist_id, position, song_id) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, id := range songIDs {
			if _, err := stmt.ExecContext(ctx, p.ID, i, id); err != nil {
				return err
			}
		}
		return nil
	})
}

// BookmarkPlaylist marks or unmarks a playlist as favorite.
func (s *Store) BookmarkPlaylist(ctx context.Context, id string, on bool, at time.Time) error {
	return s.exec(ctx, "playlist", id, `UPDATE playlists SET bookmarked_at = ? WHERE id = ?`, bookmark(on, at), id)
}

func (s *Store) exec(ctx context.Context, what, id, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(sql.ErrNoRows, what, id)
	}
	return nil
}

func bookmark(on bool, at time.Time) any {
	if !on {
		return nil
	}
	return at.UnixMilli()
}
