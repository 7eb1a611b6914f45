package handlers

import (
	"net/http"

	"vibe-frontend/internal/middleware"
	"vibe-frontend/internal/services"
	"vibe-frontend/pkg/utils"
)

type MenuHandler struct {
	Service *services.MenuService
}

func NewMenuHandler(service *services.MenuService) *MenuHandler {
	return &MenuHandler{Service: service}
}

// GetMenuTree returns the session's permission-filtered menu tree.
func (h *MenuHandler) GetMenuTree(w http.ResponseWriter, r *http.Request) {
	token, _ := middleware.TokenFromContext(r.Context())

	tree, err := h.Service.MenuTree(r.Context(), token)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, tree)
}
