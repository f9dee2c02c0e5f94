package shared

import (
	"net/http"
	"strconv"
)

type Page struct {
	Page  int
	Limit int
}

// ParsePage reads page/limit query parameters, clamping to sane bounds.
func ParsePage(r *http.Request, defaultLimit, maxLimit int) Page {
	page := 1
	limit := defaultLimit
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return Page{Page: page, Limit: limit}
}
