package menu

// Node is one entry of the permission-filtered menu tree returned by the
// backend for the current session.
type Node struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Path     string  `json:"path"`
	Icon     string  `json:"icon,omitempty"`
	Sort     int     `json:"sort"`
	Children []*Node `json:"children"`
}

// Walk visits every node depth-first. The visit function returns true to stop
// the walk; Walk reports whether it was stopped.
func Walk(nodes []*Node, visit func(*Node) bool) bool {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if visit(n) {
			return true
		}
		if Walk(n.Children, visit) {
			return true
		}
	}
	return false
}

// Fold accumulates a value over the whole tree depth-first. Every ad hoc tree
// walk (path search, flattening, descendant collection) goes through Walk or
// Fold instead of re-deriving the recursion per screen.
func Fold[T any](nodes []*Node, acc T, fn func(T, *Node) T) T {
	Walk(nodes, func(n *Node) bool {
		acc = fn(acc, n)
		return false
	})
	return acc
}

// ContainsPath reports whether any node at any depth carries the given path.
func ContainsPath(nodes []*Node, path string) bool {
	return FindByPath(nodes, path) != nil
}

// FindByPath returns the first node whose path matches, or nil.
func FindByPath(nodes []*Node, path string) *Node {
	var found *Node
	Walk(nodes, func(n *Node) bool {
		if n.Path == path {
			found = n
			return true
		}
		return false
	})
	return found
}

// Flatten returns every node in depth-first order.
func Flatten(nodes []*Node) []*Node {
	return Fold(nodes, make([]*Node, 0), func(acc []*Node, n *Node) []*Node {
		return append(acc, n)
	})
}

// CollectPaths returns every non-empty path in depth-first order.
func CollectPaths(nodes []*Node) []string {
	return Fold(nodes, make([]string, 0), func(acc []string, n *Node) []string {
		if n.Path != "" {
			acc = append(acc, n.Path)
		}
		return acc
	})
}

// CollectDescendantIDs returns the ids of the node with the given id and all
// of its descendants. Used by the permission matrix to apply a grant down a
// subtree.
func CollectDescendantIDs(nodes []*Node, id int64) []int64 {
	root := findByID(nodes, id)
	if root == nil {
		return nil
	}
	return Fold([]*Node{root}, make([]int64, 0), func(acc []int64, n *Node) []int64 {
		return append(acc, n.ID)
	})
}

func findByID(nodes []*Node, id int64) *Node {
	var found *Node
	Walk(nodes, func(n *Node) bool {
		if n.ID == id {
			found = n
			return true
		}
		return false
	})
	return found
}
