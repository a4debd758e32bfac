package service

import (
	"context"

	"github.com/choosyapp/choosy-server/internal/giphy"
)

// GifProvider is the slice of the Giphy client the services need.
// Kept as an interface so tests can substitute a fake.
type GifProvider interface {
	Search(ctx context.Context, query string, limit, offset int) ([]giphy.Gif, error)
	GetByID(ctx context.Context, gifID string) (*giphy.Gif, error)
}

// GifPage is one page of hydrated gifs with a continuation flag.
type GifPage struct {
	Gifs    []giphy.Gif `json:"gifs"`
	Offset  int         `json:"offset"`
	HasMore bool        `json:"has_more"`
}

// SearchService runs provider searches for the browse surface.
type SearchService struct {
	provider GifProvider
}

// NewSearchService creates a new search service.
func NewSearchService(provider GifProvider) *SearchService {
	return &SearchService{provider: provider}
}

// Search queries the gif provider. One extra result is requested beyond
// the limit to learn whether another page exists, then dropped.
func (s *SearchService) Search(ctx context.Context, query string, limit, offset int) (*GifPage, error) {
	if limit <= 0 {
		limit = 6
	}
	if offset < 0 {
		offset = 0
	}

	gifs, err := s.provider.Search(ctx, query, limit+1, offset)
	if err != nil {
		return nil, err
	}

	hasMore := len(gifs) > limit
	if hasMore {
		gifs = gifs[:limit]
	}

	return &GifPage{
		Gifs:    gifs,
		Offset:  offset,
		HasMore: hasMore,
	}, nil
}

// hydrateGifs fetches display metadata for a list of gif IDs.
// Provider calls only happen after all database reads are done, never
// inside a transaction.
func hydrateGifs(ctx context.Context, provider GifProvider, gifIDs []string) ([]giphy.Gif, error) {
	gifs := make([]giphy.Gif, 0, len(gifIDs))
	for _, gifID := range gifIDs {
		gif, err := provider.GetByID(ctx, gifID)
		if err != nil {
			return nil, err
		}
		gifs = append(gifs, *gif)
	}
	return gifs, nil
}
