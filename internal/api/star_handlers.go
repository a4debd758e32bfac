package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/choosyapp/choosy-server/internal/store"
)

func (s *Server) registerStarRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listStars",
		Method:      http.MethodGet,
		Path:        "/api/v1/stars",
		Summary:     "List starred gifs",
		Description: "Returns one page of the current user's starred gifs, oldest first",
		Tags:        []string{"Stars"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListStars)

	huma.Register(s.api, huma.Operation{
		OperationID: "starGif",
		Method:      http.MethodPut,
		Path:        "/api/v1/stars/{gifID}",
		Summary:     "Star gif",
		Description: "Stars a gif for the current user. Starring an already-starred gif is a no-op.",
		Tags:        []string{"Stars"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleStarGif)

	huma.Register(s.api, huma.Operation{
		OperationID: "unstarGif",
		Method:      http.MethodDelete,
		Path:        "/api/v1/stars/{gifID}",
		Summary:     "Unstar gif",
		Description: "Removes the current user's star and all its tag links. Unstarring an unstarred gif is a no-op.",
		Tags:        []string{"Stars"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUnstarGif)

	huma.Register(s.api, huma.Operation{
		OperationID: "tagStarredGif",
		Method:      http.MethodPost,
		Path:        "/api/v1/stars/{gifID}/tags",
		Summary:     "Tag starred gif",
		Description: "Attaches a tag to a starred gif, creating the tag on first use",
		Tags:        []string{"Stars"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleTagStarredGif)

	huma.Register(s.api, huma.Operation{
		OperationID: "getStarTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/stars/{gifID}/tags",
		Summary:     "Get star tags",
		Description: "Returns the current user's tag names on a gif",
		Tags:        []string{"Stars"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetStarTags)
}

// === DTOs ===

// ListStarsInput contains parameters for listing starred gifs.
type ListStarsInput struct {
	Authorization string `header:"Authorization"`
	Limit         int    `query:"limit" doc:"Page size (default 20)"`
	Offset        int    `query:"offset" doc:"Result offset"`
}

// StarInput identifies a gif to star or unstar.
type StarInput struct {
	Authorization string `header:"Authorization"`
	GifID         string `path:"gifID" doc:"Provider gif ID"`
}

// TagGifRequest is the request body for tagging a starred gif.
type TagGifRequest struct {
	Name string `json:"name" validate:"required,max=64" doc:"Tag name"`
}

// TagGifInput wraps the tag request for Huma.
type TagGifInput struct {
	Authorization string `header:"Authorization"`
	GifID         string `path:"gifID" doc:"Provider gif ID"`
	Body          TagGifRequest
}

// StarTagsResponse contains the user's tag names on a gif.
type StarTagsResponse struct {
	Tags []string `json:"tags" doc:"Tag names on this gif"`
}

// StarTagsOutput wraps the star tags response for Huma.
type StarTagsOutput struct {
	Body StarTagsResponse
}

// === Handlers ===

func (s *Server) handleListStars(ctx context.Context, input *ListStarsInput) (*GifPageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	page, err := s.services.Star.ListStarred(ctx, userID, store.PaginationParams{
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return nil, err
	}

	return &GifPageOutput{Body: mapGifPage(page)}, nil
}

func (s *Server) handleStarGif(ctx context.Context, input *StarInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Star.Star(ctx, userID, input.GifID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Gif starred"}}, nil
}

func (s *Server) handleUnstarGif(ctx context.Context, input *StarInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Star.Unstar(ctx, userID, input.GifID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Gif unstarred"}}, nil
}

func (s *Server) handleTagStarredGif(ctx context.Context, input *TagGifInput) (*StarTagsOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Tag.TagGif(ctx, userID, input.GifID, input.Body.Name); err != nil {
		return nil, err
	}

	tags, err := s.services.Tag.TagsForGif(ctx, userID, input.GifID)
	if err != nil {
		return nil, err
	}

	return &StarTagsOutput{Body: StarTagsResponse{Tags: tags}}, nil
}

func (s *Server) handleGetStarTags(ctx context.Context, input *StarInput) (*StarTagsOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	tags, err := s.services.Tag.TagsForGif(ctx, userID, input.GifID)
	if err != nil {
		return nil, err
	}

	return &StarTagsOutput{Body: StarTagsResponse{Tags: tags}}, nil
}
