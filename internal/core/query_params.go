// internal/core/query_params.go
package core

import (
	"net/url"
	"strconv"
	"strings"
)

// Pagination describes one page of the home listing.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}

// ParsePage extracts the 1-based page number from query parameters.
// Missing, non-numeric or non-positive values yield page 1.
func ParsePage(queryParams url.Values) int {
	pageStr := strings.TrimSpace(queryParams.Get("page"))
	if pageStr == "" {
		return 1
	}
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// NewPagination computes the page count for total items split into pages of perPage.
func NewPagination(page, perPage, total int) Pagination {
	if perPage < 1 {
		perPage = 1
	}
	pages := 0
	if total > 0 {
		pages = (total + perPage - 1) / perPage
	}
	return Pagination{Page: page, PerPage: perPage, Total: total, Pages: pages}
}

// Offset is the number of rows skipped before this page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// OutOfRange reports a page past the last one. Page 1 of an empty table is in range.
func (p Pagination) OutOfRange() bool {
	return p.Page > 1 && p.Page > p.Pages
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }

func (p Pagination) HasNext() bool { return p.Page < p.Pages }

func (p Pagination) PrevNum() int { return p.Page - 1 }

func (p Pagination) NextNum() int { return p.Page + 1 }
