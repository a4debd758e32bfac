package store

import (
	"context"

	"github.com/choosyapp/choosy-server/internal/domain"
)

// Store is the persistence interface the service layer depends on.
// The SQLite implementation lives in store/sqlite.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error

	// Stars
	AddStar(ctx context.Context, userID, gifID string) error
	RemoveStar(ctx context.Context, userID, gifID string) error
	GetStar(ctx context.Context, userID, gifID string) (*domain.Star, error)
	IsStarred(ctx context.Context, userID, gifID string) (bool, error)
	ListStarredGifs(ctx context.Context, userID string, p PaginationParams) ([]string, error)
	CountStars(ctx context.Context, userID string) (int, error)

	// Tags
	TagGif(ctx context.Context, userID, name, gifID string) error
	GetTagByName(ctx context.Context, userID, name string) (*domain.Tag, error)
	ListTags(ctx context.Context, userID string) ([]*domain.Tag, error)
	GetTagsForStar(ctx context.Context, userID, gifID string) ([]string, error)
	GetGifsForTag(ctx context.Context, userID, name string, p PaginationParams) ([]string, error)

	// Sessions
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	GetSessionByRefreshTokenHash(ctx context.Context, hash string) (*domain.Session, error)
	GetSessionsByUser(ctx context.Context, userID string) ([]*domain.Session, error)
	UpdateSession(ctx context.Context, session *domain.Session) error
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context) (int, error)

	Close() error
}
