package user

import "fmt"

// Link is a navigation link attached to list and single-user responses.
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// Page is one page of a user listing.
type Page struct {
	Items []User `json:"items"`
	Total int64  `json:"total"`
	Page  int    `json:"page"`
	Size  int    `json:"size"`
	Links []Link `json:"links"`
}

// PageNumber computes the 1-based page number for an offset/limit pair.
func PageNumber(skip, limit int) int {
	return skip/limit + 1
}

// PaginationLinks derives first/prev/next/last navigation links from the
// offset, limit and total count.
func PaginationLinks(path string, skip, limit int, total int64) []Link {
	href := func(skip int) string {
		return fmt.Sprintf("%s?skip=%d&limit=%d", path, skip, limit)
	}

	lastSkip := 0
	if total > 0 {
		lastSkip = int((total - 1) / int64(limit)) * limit
	}

	links := []Link{
		{Rel: "first", Href: href(0)},
		{Rel: "last", Href: href(lastSkip)},
	}

	if skip > 0 {
		prev := skip - limit
		if prev < 0 {
			prev = 0
		}
		links = append(links, Link{Rel: "prev", Href: href(prev)})
	}

	if int64(skip+limit) < total {
		links = append(links, Link{Rel: "next", Href: href(skip + limit)})
	}

	return links
}

// UserLinks returns the self/update/delete links for a single user resource.
func UserLinks(path string, id string) []Link {
	href := fmt.Sprintf("%s/%s", path, id)
	return []Link{
		{Rel: "self", Href: href},
		{Rel: "update", Href: href},
		{Rel: "delete", Href: href},
	}
}
