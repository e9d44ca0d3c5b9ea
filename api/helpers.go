package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"log/slog"
)

// pagedResponse is the envelope of every listing endpoint.
type pagedResponse struct {
	Data       any `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

func newPagedResponse(data any, total, page, pageSize int) pagedResponse {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return pagedResponse{Data: data, Total: total, Page: page, PageSize: pageSize, TotalPages: totalPages}
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, map[string]string{"error": msg}, status)
}

// pageParams reads page/pageSize query values with a per-resource default
// page size.
func pageParams(r *http.Request, defaultSize int) (page, pageSize int) {
	page, pageSize = 1, defaultSize
	q := r.URL.Query()
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(q.Get("pageSize")); err == nil && v > 0 && v <= 500 {
		pageSize = v
	}
	return page, pageSize
}
