package unsplash

// SearchResponse represents the response from Unsplash's /search/photos endpoint
type SearchResponse struct {
	Total      int     `json:"total"`
	TotalPages int     `json:"total_pages"`
	Results    []Photo `json:"results"`
}

// Photo represents a photo record in a search response
type Photo struct {
	ID             string `json:"id"`
	Description    string `json:"description,omitempty"`
	AltDescription string `json:"alt_description,omitempty"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	Color          string `json:"color,omitempty"`
	Likes          int    `json:"likes"`
	URLs           URLs   `json:"urls"`
	Links          Links  `json:"links"`
	User           User   `json:"user"`
	Tags           []Tag  `json:"tags,omitempty"`
}

// URLs contains the renditions of a photo
type URLs struct {
	Raw     string `json:"raw"`
	Full    string `json:"full"`
	Regular string `json:"regular"`
	Small   string `json:"small"`
	Thumb   string `json:"thumb"`
}

// Links contains related pages for a photo
type Links struct {
	Self     string `json:"self"`
	HTML     string `json:"html"`
	Download string `json:"download"`
}

// User represents the photographer
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Tag is a label attached to a photo
type Tag struct {
	Type  string `json:"type,omitempty"`
	Title string `json:"title"`
}

// ErrorResponse is the body Unsplash returns on failures
type ErrorResponse struct {
	Errors []string `json:"errors"`
}
