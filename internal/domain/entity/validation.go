package entity

import (
	"strconv"
	"strings"
)

// PageMessage is shown to users who submit a page value that is not a
// non-negative integer.
const PageMessage = "page must be a non-negative integer"

// maxPageLength bounds the raw form value before parsing.
const maxPageLength = 9

// ParsePage converts the raw page form value into a result page number.
// An empty or blank value means the first page (0).
func ParsePage(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	if len(raw) > maxPageLength {
		return 0, &ValidationError{Field: "page", Message: PageMessage}
	}

	page, err := strconv.Atoi(raw)
	if err != nil || page < 0 {
		return 0, &ValidationError{Field: "page", Message: PageMessage}
	}
	return page, nil
}
