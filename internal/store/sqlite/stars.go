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

// starColumns is the ordered list of columns selected in star queries.
// Must match the scan order in scanStar.
const starColumns = `id, user_id, gif_id, created_at`

// scanStar scans a sql.Row (or sql.Rows via its Scan method) into a domain.Star.
func scanStar(scanner interface{ Scan(dest ...any) error }) (*domain.Star, error) {
	var st domain.Star

	var createdAt string

	err := scanner.Scan(
		&st.ID,
		&st.UserID,
		&st.GifID,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	st.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &st, nil
}

// AddStar records that a user starred a gif. Starring an already-starred
// gif is a no-op; the UNIQUE(user_id, gif_id) constraint plus INSERT OR
// IGNORE make repeats safe even under concurrent requests.
func (s *Store) AddStar(ctx context.Context, userID, gifID string) error {
	starID, err := id.Generate("star")
	if err != nil {
		return fmt.Errorf("generate star id: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO stars (id, user_id, gif_id, created_at)
		VALUES (?, ?, ?, ?)`,
		starID,
		userID,
		gifID,
		formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("insert star: %w", err)
	}
	return nil
}

// RemoveStar deletes a user's star on a gif along with every tag link
// attached to it, in one transaction. Tag rows themselves survive.
// Removing a star that does not exist is a no-op.
func (s *Store) RemoveStar(ctx context.Context, userID, gifID string) error {
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
		return nil
	}
	if err != nil {
		return fmt.Errorf("resolve star: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM tag_stars WHERE star_id = ?`, starID); err != nil {
		return fmt.Errorf("delete tag links: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM stars WHERE id = ?`, starID); err != nil {
		return fmt.Errorf("delete star: %w", err)
	}

	return tx.Commit()
}

// GetStar retrieves a user's star on a gif.
// Returns store.ErrNotFound if the gif is not starred by this user.
func (s *Store) GetStar(ctx context.Context, userID, gifID string) (*domain.Star, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+starColumns+` FROM stars WHERE user_id = ? AND gif_id = ?`,
		userID, gifID)

	st, err := scanStar(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

// IsStarred reports whether the user has starred the gif.
func (s *Store) IsStarred(ctx context.Context, userID, gifID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM stars WHERE user_id = ? AND gif_id = ?`,
		userID, gifID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListStarredGifs returns a page of the user's starred gif IDs in the
// order they were starred. The id tiebreak keeps pages stable when two
// stars share a timestamp.
func (s *Store) ListStarredGifs(ctx context.Context, userID string, p store.PaginationParams) ([]string, error) {
	p.Validate()

	rows, err := s.db.QueryContext(ctx, `
		SELECT gif_id FROM stars
		WHERE user_id = ?
		ORDER BY created_at ASC, id ASC
		LIMIT ? OFFSET ?`,
		userID, p.Limit, p.Offset)
	if err != nil {
		return nil, fmt.Errorf("query stars: %w", err)
	}
	defer rows.Close()

	gifIDs := []string{}
	for rows.Next() {
		var gifID string
		if err := rows.Scan(&gifID); err != nil {
			return nil, fmt.Errorf("scan star: %w", err)
		}
		gifIDs = append(gifIDs, gifID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return gifIDs, nil
}

// CountStars returns how many gifs the user has starred.
func (s *Store) CountStars(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM stars WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}
