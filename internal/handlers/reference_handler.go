package handlers

import (
	"io"
	"net/http"

	"vibe-frontend/internal/cache"
	"vibe-frontend/internal/middleware"
	"vibe-frontend/internal/upstream"
	"vibe-frontend/pkg/utils"
)

// referenceCacheKey names the cached picker dataset. Batch saves invalidate
// it so pickers never serve rows a mutation just changed.
const referenceCacheKey = "hri"

// ReferenceHandler serves the bulk employee/department picker dataset through
// an explicit TTL cache. ?force=true bypasses the cache and refreshes it.
type ReferenceHandler struct {
	api   *upstream.Client
	cache *cache.ReferenceCache
}

func NewReferenceHandler(api *upstream.Client, refCache *cache.ReferenceCache) *ReferenceHandler {
	return &ReferenceHandler{api: api, cache: refCache}
}

func (h *ReferenceHandler) GetReferenceData(w http.ResponseWriter, r *http.Request) {
	token, _ := middleware.TokenFromContext(r.Context())
	force := r.URL.Query().Get("force") == "true"

	if data, ok := h.cache.Get(r.Context(), referenceCacheKey, force); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	resp, err := h.api.Do(r.Context(), http.MethodGet, "/api/v1/hri/reference", token, nil)
	if err != nil {
		utils.Detail(w, http.StatusBadGateway, "upstream unreachable")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		upstream.Relay(w, resp)
		return
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		utils.Detail(w, http.StatusBadGateway, "upstream response unreadable")
		return
	}

	h.cache.Set(r.Context(), referenceCacheKey, data)
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
