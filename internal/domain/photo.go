package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// PageSize is the number of photos requested per page
const PageSize = 20

// Photo represents a single image returned by the photo-search API
type Photo struct {
	ID          string   // Unique identifier
	Description string   // Free-form description (may be empty)
	Author      string   // Owning user's display name
	Username    string   // Owning user's handle
	Tags        []string // Tag labels (may be empty)

	// Dimensions and presentation
	Width  int
	Height int
	Color  string // Dominant color as hex, e.g. "#0c2626"
	Likes  int

	// Image URLs
	SmallURL   string // Card-sized rendition
	RegularURL string // Detail-sized rendition
	FullURL    string // Full resolution
	HTMLURL    string // Photo page on the provider's site
}

// DisplayDescription returns the description or a placeholder when empty
func (p Photo) DisplayDescription() string {
	if strings.TrimSpace(p.Description) == "" {
		return "Untitled"
	}
	return p.Description
}

// DisplayAuthor returns the author name with the handle when both are known
func (p Photo) DisplayAuthor() string {
	switch {
	case p.Author != "" && p.Username != "":
		return fmt.Sprintf("%s (@%s)", p.Author, p.Username)
	case p.Author != "":
		return p.Author
	case p.Username != "":
		return "@" + p.Username
	default:
		return "Unknown"
	}
}

// Dimensions returns "W×H" or an empty string when unknown
func (p Photo) Dimensions() string {
	if p.Width <= 0 || p.Height <= 0 {
		return ""
	}
	return fmt.Sprintf("%d×%d", p.Width, p.Height)
}

// Orientation classifies the photo by aspect ratio
func (p Photo) Orientation() string {
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return ""
	case p.Width > p.Height:
		return "landscape"
	case p.Width < p.Height:
		return "portrait"
	default:
		return "square"
	}
}

// HasTags reports whether the photo carries any tag labels
func (p Photo) HasTags() bool {
	return len(p.Tags) > 0
}

// Host returns the host serving the small rendition, used on cards
func (p Photo) Host() string {
	u, err := url.Parse(p.SmallURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Host
}

// SearchPage is one page of search results
type SearchPage struct {
	Photos     []Photo
	Total      int // Total matching photos across all pages
	TotalPages int
}

// Category is a quick-pick search shortcut
type Category string

const (
	CategoryNature Category = "nature"
	CategoryBirds  Category = "birds"
	CategoryCats   Category = "cats"
	CategoryShoes  Category = "shoes"
)

// Categories lists the shortcuts in display order
var Categories = []Category{
	CategoryNature,
	CategoryBirds,
	CategoryCats,
	CategoryShoes,
}

// String returns the label sent as the search query
func (c Category) String() string {
	return string(c)
}

// Title returns the capitalized label for display
func (c Category) Title() string {
	s := string(c)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
