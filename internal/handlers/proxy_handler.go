package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"vibe-frontend/internal/cache"
	"vibe-frontend/internal/grid"
	"vibe-frontend/internal/metrics"
	"vibe-frontend/internal/middleware"
	"vibe-frontend/internal/upstream"
	"vibe-frontend/pkg/utils"
)

// ProxyRoute maps one browser-facing resource prefix onto its upstream path.
// Routes with a schema additionally expose a batch mutation endpoint whose
// payload is validated against the schema before forwarding.
type ProxyRoute struct {
	LocalPrefix    string
	UpstreamPrefix string
	Schema         *grid.Schema
}

// ProxyHandler relays resource CRUD to the backend API. It is deliberately
// stateless: cookie in, bearer header out, response relayed verbatim. The
// reference cache is dropped after a successful batch save.
type ProxyHandler struct {
	api      *upstream.Client
	refCache *cache.ReferenceCache
}

func NewProxyHandler(api *upstream.Client, refCache *cache.ReferenceCache) *ProxyHandler {
	return &ProxyHandler{api: api, refCache: refCache}
}

// Forward returns the pass-through handler for one route. The request path
// under the local prefix (including sub-paths like /{id}/reject) and the
// query string are preserved.
func (h *ProxyHandler) Forward(route ProxyRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, _ := middleware.TokenFromContext(r.Context())

		path := route.UpstreamPrefix + strings.TrimPrefix(r.URL.Path, route.LocalPrefix)
		if r.URL.RawQuery != "" {
			path += "?" + r.URL.RawQuery
		}

		var body io.Reader
		if r.Body != nil && r.Method != http.MethodGet && r.Method != http.MethodDelete {
			body = r.Body
		}

		resp, err := h.api.Do(r.Context(), r.Method, path, token, body)
		if err != nil {
			metrics.UpstreamRequestsTotal.WithLabelValues(r.Method, "error").Inc()
			utils.Detail(w, http.StatusBadGateway, "upstream unreachable")
			return
		}
		defer resp.Body.Close()

		metrics.UpstreamRequestsTotal.WithLabelValues(r.Method, strconv.Itoa(resp.StatusCode)).Inc()
		upstream.Relay(w, resp)
	}
}

// Batch validates and forwards a grid batch mutation for one route. A
// malformed body or a row that fails the resource schema is rejected with 400
// before anything reaches the backend.
func (h *ProxyHandler) Batch(route ProxyRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, _ := middleware.TokenFromContext(r.Context())

		var req grid.BatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Detail(w, http.StatusBadRequest, "invalid batch payload")
			return
		}
		if err := validateBatch(*route.Schema, &req); err != nil {
			utils.Detail(w, http.StatusBadRequest, err.Error())
			return
		}

		buf, err := json.Marshal(req)
		if err != nil {
			utils.Detail(w, http.StatusBadRequest, "invalid batch payload")
			return
		}

		resp, err := h.api.Do(r.Context(), http.MethodPost, route.UpstreamPrefix+"/batch", token, bytes.NewReader(buf))
		if err != nil {
			metrics.UpstreamRequestsTotal.WithLabelValues(http.MethodPost, "error").Inc()
			utils.Detail(w, http.StatusBadGateway, "upstream unreachable")
			return
		}
		defer resp.Body.Close()

		metrics.UpstreamRequestsTotal.WithLabelValues(http.MethodPost, strconv.Itoa(resp.StatusCode)).Inc()
		if resp.StatusCode < http.StatusMultipleChoices {
			// the save may have touched the picker datasets
			h.refCache.Invalidate(r.Context(), referenceCacheKey)
		}
		upstream.Relay(w, resp)
	}
}

// validateBatch checks every item against the resource schema and stamps an
// idempotency token when the client did not supply one.
func validateBatch(schema grid.Schema, req *grid.BatchRequest) error {
	for i, item := range req.Items {
		fields := make(map[string]any, len(item))
		for k, v := range item {
			if k == "id" {
				continue
			}
			fields[k] = v
		}
		if err := schema.Validate(fields); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	if req.DeleteIDs == nil {
		req.DeleteIDs = []int64{}
	}
	if req.Token == "" {
		req.Token = grid.NewBatchToken()
	}
	return nil
}
