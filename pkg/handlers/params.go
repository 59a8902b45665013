package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ParseScopeID extracts and validates the scope ID from the request path.
// Returns the ID and true on success, or 0 and false after writing an error response.
// Expects path parameter: id
func ParseScopeID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, logger, http.StatusBadRequest, "invalid_scope_id", "Invalid scope ID")
		return 0, false
	}
	return id, true
}

// ParseDocumentID extracts the document ID from the request path.
// Document IDs are opaque upstream strings; only emptiness is rejected.
// Expects path parameter: id
func ParseDocumentID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (string, bool) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, logger, http.StatusBadRequest, "invalid_document_id", "Invalid document ID")
		return "", false
	}
	return id, true
}

// ParsePaging reads page and size query parameters. Missing or invalid values fall
// back to page 0 and defaultSize; page is capped at maxPage and size at maxPageSize.
func ParsePaging(r *http.Request, defaultSize int) (page, size int) {
	q := r.URL.Query()
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 0 {
		page = 0
	}
	if page > maxPage {
		page = maxPage
	}
	size, err = strconv.Atoi(q.Get("size"))
	if err != nil || size <= 0 {
		size = defaultSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

const (
	maxPageSize = 100
	maxPage     = 1 << 20
)
