package guard

import (
	"context"
	"log"
	"net/http"

	"vibe-frontend/internal/menu"
	"vibe-frontend/internal/session"
)

// Decision is the outcome of the page access check.
type Decision int

const (
	Render Decision = iota
	RedirectLogin
	RedirectUnauthorized
)

const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// Decide applies the access decision table: no session goes to login; an
// empty tree or a path absent from the tree goes to unauthorized; a path
// present anywhere in the tree renders.
func Decide(hasToken bool, tree []*menu.Node, path string) Decision {
	if !hasToken {
		return RedirectLogin
	}
	if len(tree) == 0 {
		return RedirectUnauthorized
	}
	if !menu.ContainsPath(tree, path) {
		return RedirectUnauthorized
	}
	return Render
}

// MenuFetcher resolves the session's permission-filtered menu tree.
type MenuFetcher interface {
	MenuTree(ctx context.Context, token string) ([]*menu.Node, error)
}

// Guard gates page rendering on the menu tree. The tree is fetched once per
// request and never cached across requests; a fetch failure is treated as an
// empty tree so the guard fails closed.
type Guard struct {
	sessions *session.Manager
	menus    MenuFetcher
}

func New(sessions *session.Manager, menus MenuFetcher) *Guard {
	return &Guard{sessions: sessions, menus: menus}
}

// RequireMenuAccess checks whether the session may render the given page path
// and performs the redirect when it may not. It reports whether the caller
// should render.
func (g *Guard) RequireMenuAccess(w http.ResponseWriter, r *http.Request, path string) bool {
	token := g.sessions.Token(r)

	var tree []*menu.Node
	if token != "" {
		var err error
		tree, err = g.menus.MenuTree(r.Context(), token)
		if err != nil {
			log.Printf("[Guard] menu tree fetch failed, treating as empty: %v", err)
			tree = nil
		}
	}

	switch Decide(token != "", tree, path) {
	case RedirectLogin:
		http.Redirect(w, r, LoginPath, http.StatusFound)
		return false
	case RedirectUnauthorized:
		http.Redirect(w, r, UnauthorizedPath, http.StatusFound)
		return false
	default:
		return true
	}
}
