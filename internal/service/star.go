package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/choosyapp/choosy-server/internal/giphy"
	"github.com/choosyapp/choosy-server/internal/store"
)

// StarService handles starring, unstarring, and browsing starred gifs.
type StarService struct {
	store    store.Store
	provider GifProvider
	logger   *slog.Logger
}

// NewStarService creates a new star service.
func NewStarService(store store.Store, provider GifProvider, logger *slog.Logger) *StarService {
	return &StarService{
		store:    store,
		provider: provider,
		logger:   logger,
	}
}

// Star records that the user starred a gif. Safe to repeat.
func (s *StarService) Star(ctx context.Context, userID, gifID string) error {
	if err := s.store.AddStar(ctx, userID, gifID); err != nil {
		return fmt.Errorf("add star: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("Gif starred", "user_id", userID, "gif_id", gifID)
	}
	return nil
}

// Unstar removes the user's star and all its tag links. Unstarring a gif
// that was never starred succeeds quietly.
func (s *StarService) Unstar(ctx context.Context, userID, gifID string) error {
	if err := s.store.RemoveStar(ctx, userID, gifID); err != nil {
		return fmt.Errorf("remove star: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("Gif unstarred", "user_id", userID, "gif_id", gifID)
	}
	return nil
}

// IsStarred reports whether the user has starred the gif.
func (s *StarService) IsStarred(ctx context.Context, userID, gifID string) (bool, error) {
	return s.store.IsStarred(ctx, userID, gifID)
}

// ListStarred returns one page of the user's starred gifs with display
// metadata. One extra row is fetched beyond the requested limit to learn
// whether another page exists, then dropped from the result.
func (s *StarService) ListStarred(ctx context.Context, userID string, p store.PaginationParams) (*GifPage, error) {
	p.Validate()

	probe := store.PaginationParams{Limit: p.Limit + 1, Offset: p.Offset}
	gifIDs, err := s.store.ListStarredGifs(ctx, userID, probe)
	if err != nil {
		return nil, fmt.Errorf("list starred gifs: %w", err)
	}

	hasMore := len(gifIDs) > p.Limit
	if hasMore {
		gifIDs = gifIDs[:p.Limit]
	}

	gifs, err := hydrateGifs(ctx, s.provider, gifIDs)
	if err != nil {
		return nil, err
	}

	return &GifPage{
		Gifs:    gifs,
		Offset:  p.Offset,
		HasMore: hasMore,
	}, nil
}

// GifDetail is a gif's display data plus the user's relationship to it.
type GifDetail struct {
	Gif     giphy.Gif `json:"gif"`
	Starred bool      `json:"starred"`
	Tags    []string  `json:"tags"`
}

// GetGif returns the detail view for one gif: provider metadata, whether
// the user starred it, and the user's tags on it.
func (s *StarService) GetGif(ctx context.Context, userID, gifID string) (*GifDetail, error) {
	starred, err := s.store.IsStarred(ctx, userID, gifID)
	if err != nil {
		return nil, fmt.Errorf("check star: %w", err)
	}

	tags, err := s.store.GetTagsForStar(ctx, userID, gifID)
	if err != nil {
		return nil, fmt.Errorf("get tags: %w", err)
	}

	gif, err := s.provider.GetByID(ctx, gifID)
	if err != nil {
		return nil, err
	}

	return &GifDetail{
		Gif:     *gif,
		Starred: starred,
		Tags:    tags,
	}, nil
}
