package giphy

// Gif is the display metadata we keep from a Giphy response. The API
// returns far more; only what the UI renders is retained.
type Gif struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	EmbedURL string `json:"embed_url"`
	Images   Images `json:"images"`
}

// Images holds the renditions the UI uses.
type Images struct {
	Original        Rendition `json:"original"`
	FixedWidth      Rendition `json:"fixed_width"`
	FixedWidthStill Rendition `json:"fixed_width_still"`
	PreviewGif      Rendition `json:"preview_gif"`
}

// Rendition is one sized variant of a gif.
type Rendition struct {
	URL    string `json:"url"`
	Width  string `json:"width"`
	Height string `json:"height"`
}

// searchResponse mirrors the Giphy search endpoint payload.
type searchResponse struct {
	Data       []Gif      `json:"data"`
	Pagination pagination `json:"pagination"`
}

// getResponse mirrors the Giphy get-by-id endpoint payload.
type getResponse struct {
	Data Gif `json:"data"`
}

type pagination struct {
	TotalCount int `json:"total_count"`
	Count      int `json:"count"`
	Offset     int `json:"offset"`
}
