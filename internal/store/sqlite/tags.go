package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/choosyapp/choosy-server/internal/domain"
	"github.com/choosyapp/choosy-server/internal/id"
	"github.com/choosyapp/choosy-server/internal/store"
)

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag.
const tagColumns = `id, user_id, name, created_at`

// scanTag scans a sql.Row (or sql.Rows via its Scan method) into a domain.Tag.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag

	var createdAt string

	err := scanner.Scan(
		&t.ID,
		&t.UserID,
		&t.Name,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// TagGif attaches a tag to a user's starred gif, creating the tag on first
// use. Everything runs in a single transaction: if the gif is not starred
// the whole operation fails with store.ErrNotFound and nothing is written.
// Re-tagging with the same name is a no-op (composite PK on tag_stars).
func (s *Store) TagGif(ctx context.Context, userID, name, gifID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var starID string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM stars WHERE user_id = ? AND gif_id = ?`,
		userID, gifID).Scan(&starID)
	if err == sql.ErrNoRows {
		return store.ErrNotFound.WithMessage("gif is not starred")
	}
	if err != nil {
		return fmt.Errorf("resolve star: %w", err)
	}

	tagID, err := id.Generate("tag")
	if err != nil {
		return fmt.Errorf("generate tag id: %w", err)
	}

	now := formatTime(time.Now())

	// First use of the name creates the tag; later uses hit the
	// UNIQUE(user_id, name) constraint and are ignored.
	if _, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO tags (id, user_id, name, created_at)
		VALUES (?, ?, ?, ?)`,
		tagID, userID, name, now); err != nil {
		return fmt.Errorf("insert tag: %w", err)
	}

	// Resolve the surviving tag row, which may predate this call.
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM tags WHERE user_id = ? AND name = ?`,
		userID, name).Scan(&tagID)
	if err != nil {
		return fmt.Errorf("resolve tag: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO tag_stars (tag_id, star_id, created_at)
		VALUES (?, ?, ?)`,
		tagID, starID, now); err != nil {
		return fmt.Errorf("insert tag link: %w", err)
	}

	return tx.Commit()
}

// GetTagByName retrieves one of the user's tags by name.
// Returns store.ErrNotFound if the user has no such tag.
func (s *Store) GetTagByName(ctx context.Context, userID, name string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE user_id = ? AND name = ?`,
		userID, name)

	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTags returns all of the user's tags ordered by name.
func (s *Store) ListTags(ctx context.Context, userID string) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE user_id = ? ORDER BY name ASC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}

// GetTagsForStar returns the names of the user's tags on a gif, ordered by
// name. An unstarred or untagged gif yields an empty slice, not an error.
func (s *Store) GetTagsForStar(ctx context.Context, userID, gifID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.name
		FROM tags t
		JOIN tag_stars ts ON ts.tag_id = t.id
		JOIN stars st ON st.id = ts.star_id
		WHERE st.user_id = ? AND st.gif_id = ?
		ORDER BY t.name ASC`,
		userID, gifID)
	if err != nil {
		return nil, fmt.Errorf("query tags for star: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan tag name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return names, nil
}

// GetGifsForTag returns a page of gif IDs carrying the named tag for this
// user, in the order the links were created. A tag the user never made
// yields an empty page, not an error.
func (s *Store) GetGifsForTag(ctx context.Context, userID, name string, p store.PaginationParams) ([]string, error) {
	p.Validate()

	rows, err := s.db.QueryContext(ctx, `
		SELECT st.gif_id
		FROM stars st
		JOIN tag_stars ts ON ts.star_id = st.id
		JOIN tags t ON t.id = ts.tag_id
		WHERE t.user_id = ? AND t.name = ?
		ORDER BY ts.created_at ASC, st.id ASC
		LIMIT ? OFFSET ?`,
		userID, name, p.Limit, p.Offset)
	if err != nil {
		return nil, fmt.Errorf("query gifs for tag: %w", err)
	}
	defer rows.Close()

	gifIDs := []string{}
	for rows.Next() {
		var gifID string
		if err := rows.Scan(&gifID); err != nil {
			return nil, fmt.Errorf("scan gif id: %w", err)
		}
		gifIDs = append(gifIDs, gifID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return gifIDs, nil
}
