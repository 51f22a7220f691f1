package pagination

import (
	"fmt"
	"strconv"
	"strings"
)

// cursorPrefix marks synthetic page cursors. Tokens carry no engine-side
// state; they only encode the zero-based page number to request next.
const cursorPrefix = "page_"

// Cursor encodes a zero-based page number as a synthetic cursor token.
func Cursor(page int) string {
	return cursorPrefix + strconv.Itoa(page)
}

// ParseCursor decodes a synthetic cursor token back into a zero-based page
// number. An empty token means the first page.
func ParseCursor(token string) (int, error) {
	if token == "" {
		return 0, nil
	}
	raw, ok := strings.CutPrefix(token, cursorPrefix)
	if !ok {
		return 0, fmt.Errorf("malformed cursor %q", token)
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 0 {
		return 0, fmt.Errorf("malformed cursor %q", token)
	}
	return page, nil
}

// PageInfo describes the position of a page within a result set.
type PageInfo struct {
	StartCursor     string `json:"startCursor,omitempty"`
	EndCursor       string `json:"endCursor,omitempty"`
	HasNextPage     bool   `json:"hasNextPage"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
	TotalPages      int    `json:"totalPages"`
}

// NewPageInfo computes pagination cursors for a zero-based page given the
// total hit count and page size. EndCursor points at the next page and
// StartCursor at the previous one; each is empty when no such page exists.
func NewPageInfo(page, perPage, total int) PageInfo {
	if perPage <= 0 {
		perPage = 1
	}

	totalPages := total / perPage
	if total%perPage > 0 {
		totalPages++
	}

	info := PageInfo{
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages-1,
		HasPreviousPage: page > 0,
	}
	if info.HasNextPage {
		info.EndCursor = Cursor(page + 1)
	}
	if info.HasPreviousPage {
		info.StartCursor = Cursor(page - 1)
	}
	return info
}
