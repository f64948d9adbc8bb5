package catalog

import "github.com/CATyPH67/shop-api/internal/domain/shop"

// Node is one category in the returned forest. Children keeps input order.
type Node struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	ParentID *uint   `json:"parent_id"`
	Children []*Node `json:"subcategories"`
}

// BuildForest turns a flat id-ordered category slice into a forest without
// cyclic references: an arena of nodes indexed by id with explicit child
// lists. A row whose parent is absent from the input becomes a root, never
// dropped; with paginated input this can detach a subtree from a parent
// that lives on another page.
func BuildForest(rows []shop.Category) []*Node {
	arena := make(map[uint]*Node, len(rows))
	for _, c := range rows {
		arena[c.ID] = &Node{
			ID:       c.ID,
			Name:     c.Name,
			ParentID: c.ParentID,
			Children: []*Node{},
		}
	}

	roots := make([]*Node, 0, len(rows))
	for _, c := range rows {
		node := arena[c.ID]
		if c.ParentID != nil {
			if parent, ok := arena[*c.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}
