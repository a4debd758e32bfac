package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/choosyapp/choosy-server/internal/giphy"
	"github.com/choosyapp/choosy-server/internal/service"
)

func (s *Server) registerGifRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchGifs",
		Method:      http.MethodGet,
		Path:        "/api/v1/gifs/search",
		Summary:     "Search gifs",
		Description: "Searches the gif provider and returns one page of results",
		Tags:        []string{"Gifs"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSearchGifs)

	huma.Register(s.api, huma.Operation{
		OperationID: "getGif",
		Method:      http.MethodGet,
		Path:        "/api/v1/gifs/{gifID}",
		Summary:     "Get gif",
		Description: "Returns display data for one gif plus whether the current user starred it and their tags on it",
		Tags:        []string{"Gifs"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetGif)
}

// === DTOs ===

// SearchGifsInput contains parameters for gif search.
type SearchGifsInput struct {
	Authorization string `header:"Authorization"`
	Query         string `query:"q" required:"true" doc:"Search query"`
	Limit         int    `query:"limit" doc:"Page size (default 6)"`
	Offset        int    `query:"offset" doc:"Result offset"`
}

// GifPageResponse contains one page of gifs.
type GifPageResponse struct {
	Gifs    []giphy.Gif `json:"gifs" doc:"Gifs on this page"`
	Offset  int         `json:"offset" doc:"Offset of this page"`
	HasMore bool        `json:"has_more" doc:"Whether another page exists"`
}

// GifPageOutput wraps the gif page response for Huma.
type GifPageOutput struct {
	Body GifPageResponse
}

// GetGifInput contains parameters for the gif detail view.
type GetGifInput struct {
	Authorization string `header:"Authorization"`
	GifID         string `path:"gifID" doc:"Provider gif ID"`
}

// GifDetailResponse contains a gif's display data and the user's relationship to it.
type GifDetailResponse struct {
	Gif     giphy.Gif `json:"gif" doc:"Gif display data"`
	Starred bool      `json:"starred" doc:"Whether the current user starred this gif"`
	Tags    []string  `json:"tags" doc:"The current user's tags on this gif"`
}

// GifDetailOutput wraps the gif detail response for Huma.
type GifDetailOutput struct {
	Body GifDetailResponse
}

// === Handlers ===

func (s *Server) handleSearchGifs(ctx context.Context, input *SearchGifsInput) (*GifPageOutput, error) {
	// Search results are not user-specific; auth only gates access.
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	page, err := s.services.Search.Search(ctx, input.Query, input.Limit, input.Offset)
	if err != nil {
		return nil, err
	}

	return &GifPageOutput{Body: mapGifPage(page)}, nil
}

func (s *Server) handleGetGif(ctx context.Context, input *GetGifInput) (*GifDetailOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	detail, err := s.services.Star.GetGif(ctx, userID, input.GifID)
	if err != nil {
		return nil, err
	}

	return &GifDetailOutput{
		Body: GifDetailResponse{
			Gif:     detail.Gif,
			Starred: detail.Starred,
			Tags:    detail.Tags,
		},
	}, nil
}

// === Helpers ===

func mapGifPage(page *service.GifPage) GifPageResponse {
	return GifPageResponse{
		Gifs:    page.Gifs,
		Offset:  page.Offset,
		HasMore: page.HasMore,
	}
}
