package unsplash

import (
	"strings"

	"github.com/mmcdole/darkroom/internal/domain"
)

// MapPhoto converts an Unsplash photo to a domain Photo
func MapPhoto(p Photo) domain.Photo {
	desc := strings.TrimSpace(p.Description)
	if desc == "" {
		desc = strings.TrimSpace(p.AltDescription)
	}

	return domain.Photo{
		ID:          p.ID,
		Description: desc,
		Author:      p.User.Name,
		Username:    p.User.Username,
		Tags:        mapTags(p.Tags),
		Width:       p.Width,
		Height:      p.Height,
		Color:       p.Color,
		Likes:       p.Likes,
		SmallURL:    p.URLs.Small,
		RegularURL:  p.URLs.Regular,
		FullURL:     p.URLs.Full,
		HTMLURL:     p.Links.HTML,
	}
}

// MapPhotos converts a slice of Unsplash photos, dropping records without an ID
func MapPhotos(photos []Photo) []domain.Photo {
	out := make([]domain.Photo, 0, len(photos))
	for _, p := range photos {
		if p.ID == "" {
			continue
		}
		out = append(out, MapPhoto(p))
	}
	return out
}

// MapSearchResponse converts a full search response to a domain SearchPage
func MapSearchResponse(resp SearchResponse) domain.SearchPage {
	return domain.SearchPage{
		Photos:     MapPhotos(resp.Results),
		Total:      resp.Total,
		TotalPages: resp.TotalPages,
	}
}

func mapTags(tags []Tag) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		title := strings.TrimSpace(t.Title)
		key := strings.ToLower(title)
		if title == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, title)
	}
	return out
}
