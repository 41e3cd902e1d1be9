package sqlstore

import (
	"context"
	"database/sql"

	"github.com/mikey-austin/mu_browse/internal/media"
)

const songColumns = `s.id, s.title, s.artist_id, s.artist_name, s.album_id, s.album_title,
	s.track_number, s.duration_ms, s.thumbnail_url, s.stream_url, s.video, s.episode`

type scanner interface {
	Scan(dest ...any) error
}

func scanSong(row scanner) (media.Song, error) {
	var s media.Song
	var artistID, artistName, albumID, albumTitle, thumb, stream sql.NullString
	var trackNumber, duration sql.NullInt64
	if err := row.Scan(&s.ID, &s.Title, &artistID, &artistName, &albumID, &albumTitle,
		&trackNumber, &duration, &thumb, &stream, &s.Video, &s.Episode); err != nil {
		return media.Song{}, err
	}
	s.ArtistID = nullStringValue(artistID)
	s.ArtistName = nullStringValue(artistName)
	s.AlbumID = nullStringValue(albumID)
	s.AlbumTitle = nullStringValue(albumTitle)
	s.TrackNumber = int(nullInt64Value(trackNumber))
	s.DurationMS = nullInt64Value(duration)
	s.ThumbnailURL = nullStringValue(thumb)
	s.StreamURL = nullStringValue(stream)
	return s, nil
}

func (s *Store) querySongs(ctx context.Context, query string, args ...any) ([]media.Song, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []media.Song
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

// AllSongs returns library songs, newest first, excluding hidden ones.
func (s *Store) AllSongs(ctx context.Context) ([]media.Song, error) {
	return s.querySongs(ctx, `
		SELECT `+songColumns+` FROM songs s
		WHERE s.in_library = 1 AND s.hidden = 0
		ORDER BY s.date_added DESC, s.id
	`)
}

// LikedSongs returns liked songs, most recently liked first.
func (s *Store) LikedSongs(ctx context.Context) ([]media.Song, error) {
	return s.querySongs(ctx, `
		SELECT `+songColumns+` FROM songs s
		WHERE s.liked_at IS NOT NULL AND s.hidden = 0
		ORDER BY s.liked_at DESC, s.id
	`)
}

// KnownSongs returns every visible song.
func (s *Store) KnownSongs(ctx context.Context) ([]media.Song, error) {
	return s.querySongs(ctx, `
		SELECT `+songColumns+` FROM songs s
		WHERE s.hidden = 0
		ORDER BY s.date_added DESC, s.id
	`)
}

// DeviceSongs returns songs stored on the device.
func (s *Store) DeviceSongs(ctx context.Context) ([]media.Song, error) {
	return s.querySongs(ctx, `
		SELECT `+songColumns+` FROM songs s
		WHERE s.on_device = 1 AND s.hidden = 0
		ORDER BY s.date_added DESC, s.id
	`)
}

// TopSongs returns the most played songs.
func (s *Store) TopSongs(ctx context.Context, limit int) ([]media.Song, error) {
	return s.querySongs(ctx, `
		SELECT `+songColumns+` FROM songs s
		WHERE s.play_time_ms > 0 AND s.hidden = 0
		ORDER BY s.play_time_ms DESC, s.id
		LIMIT ?
	`, limit)
}

// ArtistSongs returns an artist's visible songs in album order.
func (s *Store) ArtistSongs(ctx context.Context, artistID string) ([]media.Song, error) {
	return s.querySongs(ctx, `
		SELECT `+songColumns+` FROM songs s
		WHERE s.artist_id = ? AND s.hidden = 0
		ORDER BY s.album_title COLLATE NOCASE, s.track_number, s.title COLLATE NOCASE
	`, artistID)
}

// AlbumSongs returns an album's visible songs by track number.
func (s *Store) AlbumSongs(ctx context.Context, albumID string) ([]media.Song, error) {
	return s.querySongs(ctx, `
		SELECT `+songColumns+` FROM songs s
		WHERE s.album_id = ? AND s.hidden = 0
		ORDER BY s.track_number, s.title COLLATE NOCASE
	`, albumID)
}

// PlaylistSongs returns a playlist's visible songs in playlist order.
func (s *Store) PlaylistSongs(ctx context.Context, playlistID string) ([]media.Song, error) {
	return s.querySongs(ctx, `
		SELECT `+songColumns+` FROM playlist_songs ps
		JOIN songs s ON s.id = ps.song_id
		WHERE ps.playlist_id = ? AND s.hidden = 0
		ORDER BY ps.position
	`, playlistID)
}

// Song returns a single song by id.
func (s *Store) Song(ctx context.Context, id string) (media.Song, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+songColumns+` FROM songs s WHERE s.id = ?`, id)
	song, err := scanSong(row)
	if err != nil {
		return media.Song{}, notFound(err, "song", id)
	}
	return song, nil
}

const artistQuery = `
	SELECT a.id, a.name, a.thumbnail_url,
		(SELECT COUNT(*) FROM songs s WHERE s.artist_id = a.id AND s.hidden = 0)
	FROM artists a
`

func (s *Store) queryArtists(ctx context.Context, query string, args ...any) ([]media.Artist, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artists []media.Artist
	for rows.Next() {
		var a media.Artist
		var thumb sql.NullString
		if err := rows.Scan(&a.ID, &a.Name, &thumb, &a.SongCount); err != nil {
			return nil, err
		}
		a.ThumbnailURL = nullStringValue(thumb)
		artists = append(artists, a)
	}
	return artists, rows.Err()
}

// LibraryArtists returns artists in the library by name.
func (s *Store) LibraryArtists(ctx context.Context) ([]media.Artist, error) {
	return s.queryArtists(ctx, artistQuery+` WHERE a.in_library = 1 ORDER BY a.name COLLATE NOCASE`)
}

// FavoriteArtists returns bookmarked artists, most recent first.
func (s *Store) FavoriteArtists(ctx context.Context) ([]media.Artist, error) {
	return s.queryArtists(ctx, artistQuery+` WHERE a.bookmarked_at IS NOT NULL ORDER BY a.bookmarked_at DESC`)
}

const albumQuery = `
	SELECT a.id, a.title, a.artist_id, a.artist_name, a.year, a.thumbnail_url,
		(SELECT COUNT(*) FROM songs s WHERE s.album_id = a.id AND s.hidden = 0)
	FROM albums a
`

func (s *Store) queryAlbums(ctx context.Context, query string, args ...any) ([]media.Album, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var albums []media.Album
	for rows.Next() {
		var a media.Album
		var artistID, artistName, thumb sql.NullString
		var year sql.NullInt64
		if err := rows.Scan(&a.ID, &a.Title, &artistID, &artistName, &year, &thumb, &a.SongCount); err != nil {
			return nil, err
		}
		a.ArtistID = nullStringValue(artistID)
		a.ArtistName = nullStringValue(artistName)
		a.Year = int(nullInt64Value(year))
		a.ThumbnailURL = nullStringValue(thumb)
		albums = append(albums, a)
	}
	return albums, rows.Err()
}

// LibraryAlbums returns albums in the library by title.
func (s *Store) LibraryAlbums(ctx context.Context) ([]media.Album, error) {
	return s.queryAlbums(ctx, albumQuery+` WHERE a.in_library = 1 ORDER BY a.title COLLATE NOCASE`)
}

// FavoriteAlbums returns bookmarked albums, most recent first.
func (s *Store) FavoriteAlbums(ctx context.Context) ([]media.Album, error) {
	return s.queryAlbums(ctx, albumQuery+` WHERE a.bookmarked_at IS NOT NULL ORDER BY a.bookmarked_at DESC`)
}

// ArtistAlbums returns an artist's albums, newest first.
func (s *Store) ArtistAlbums(ctx context.Context, artistID string) ([]media.Album, error) {
	return s.queryAlbums(ctx, albumQuery+` WHERE a.artist_id = ? ORDER BY (a.year IS NULL OR a.year = 0), a.year DESC, a.title COLLATE NOCASE`, artistID)
}

// Playlists returns playlists of the given kind. Created playlists are the
// editable ones; saved playlists mirror a remote playlist.
func (s *Store) Playlists(ctx context.Context, kind media.PlaylistKind) ([]media.Playlist, error) {
	where := ""
	order := "p.name COLLATE NOCASE"
	switch kind {
	case media.PlaylistsFavorites:
		where = "WHERE p.bookmarked_at IS NOT NULL"
		order = "p.bookmarked_at DESC"
	case media.PlaylistsCreated:
		where = "WHERE p.editable = 1"
		order = "p.created_at DESC"
	case media.PlaylistsSaved:
		where = "WHERE p.editable = 0 AND p.remote_id IS NOT NULL"
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.author, p.remote_id, p.thumbnail_url, p.podcast,
			(SELECT COUNT(*) FROM playlist_songs ps WHERE ps.playlist_id = p.id)
		FROM playlists p `+where+` ORDER BY `+order)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var playlists []media.Playlist
	for rows.Next() {
		var p media.Playlist
		var author, remoteID, thumb sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &author, &remoteID, &thumb, &p.Podcast, &p.SongCount); err != nil {
			return nil, err
		}
		p.Author = nullStringValue(author)
		p.RemoteID = nullStringValue(remoteID)
		p.ThumbnailURL = nullStringValue(thumb)
		playlists = append(playlists, p)
	}
	return playlists, rows.Err()
}
