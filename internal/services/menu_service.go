package services

import (
	"context"
	"net/http"

	"vibe-frontend/internal/menu"
	"vibe-frontend/internal/upstream"
)

// MenuService resolves the session's permission-filtered menu tree from the
// backend. No caching across requests: the guard depends on a fresh answer to
// stay fail-closed.
type MenuService struct {
	api *upstream.Client
}

func NewMenuService(api *upstream.Client) *MenuService {
	return &MenuService{api: api}
}

// MenuTree fetches the tree for the given session token.
func (s *MenuService) MenuTree(ctx context.Context, token string) ([]*menu.Node, error) {
	var tree []*menu.Node
	if err := s.api.JSON(ctx, http.MethodGet, "/api/v1/menus/me", token, nil, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}
