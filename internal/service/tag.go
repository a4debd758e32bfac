package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/choosyapp/choosy-server/internal/domain"
	domainerrors "github.com/choosyapp/choosy-server/internal/errors"
	"github.com/choosyapp/choosy-server/internal/store"
)

// Tag names are free-form but bounded; the limit only guards storage abuse.
const maxTagNameLength = 64

// TagService handles tagging starred gifs and browsing by tag.
type TagService struct {
	store    store.Store
	provider GifProvider
	logger   *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, provider GifProvider, logger *slog.Logger) *TagService {
	return &TagService{
		store:    store,
		provider: provider,
		logger:   logger,
	}
}

// TagGif attaches a tag to one of the user's starred gifs, creating the
// tag on first use. Tagging an unstarred gif fails; re-tagging with the
// same name is a quiet no-op.
func (s *TagService) TagGif(ctx context.Context, userID, gifID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domainerrors.Validation("tag name is required")
	}
	if len(name) > maxTagNameLength {
		return domainerrors.Validationf("tag name exceeds maximum length of %d characters", maxTagNameLength)
	}

	if err := s.store.TagGif(ctx, userID, name, gifID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("gif must be starred to add a tag")
		}
		return fmt.Errorf("tag gif: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("Gif tagged",
			"user_id", userID,
			"gif_id", gifID,
			"tag", name,
		)
	}
	return nil
}

// TagsForGif returns the names of the user's tags on a gif. An unstarred
// or untagged gif yields an empty list.
func (s *TagService) TagsForGif(ctx context.Context, userID, gifID string) ([]string, error) {
	tags, err := s.store.GetTagsForStar(ctx, userID, gifID)
	if err != nil {
		return nil, fmt.Errorf("get tags for gif: %w", err)
	}
	return tags, nil
}

// ListTags returns all of the user's tags.
func (s *TagService) ListTags(ctx context.Context, userID string) ([]*domain.Tag, error) {
	tags, err := s.store.ListTags(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// GifsForTag returns one page of the user's gifs carrying the named tag,
// hydrated with display metadata. A tag the user never made yields an
// empty page. The extra probe row works the same as in ListStarred.
func (s *TagService) GifsForTag(ctx context.Context, userID, name string, p store.PaginationParams) (*GifPage, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerrors.Validation("tag name is required")
	}

	p.Validate()

	probe := store.PaginationParams{Limit: p.Limit + 1, Offset: p.Offset}
	gifIDs, err := s.store.GetGifsForTag(ctx, userID, name, probe)
	if err != nil {
		return nil, fmt.Errorf("get gifs for tag: %w", err)
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
