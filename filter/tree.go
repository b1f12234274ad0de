// Package filter holds the hierarchical filter tree and the rules for
// selecting a single active path through it.
package filter

import (
	"sort"
	"strings"

	"github.com/DaUnderlord/monday-sippin-sub000/model"
)

// BuildTree assembles stored rows into sorted root nodes. Levels are derived
// from the parent chain; a row whose parent is missing becomes a root.
func BuildTree(records []model.FilterRecord) []*model.FilterNode {
	nodes := make(map[string]*model.FilterNode, len(records))
	for _, rec := range records {
		nodes[rec.ID] = &model.FilterNode{
			ID:           rec.ID,
			Name:         rec.Name,
			Slug:         rec.Slug,
			ParentID:     rec.ParentID,
			Level:        rec.Level,
			OrderIndex:   rec.OrderIndex,
			Description:  rec.Description,
			ArticleCount: rec.ArticleCount,
			Children:     []*model.FilterNode{},
		}
	}

	roots := make([]*model.FilterNode, 0)
	for _, rec := range records {
		node := nodes[rec.ID]
		parent, ok := nodes[rec.ParentID]
		if rec.ParentID == "" || !ok || parent == node {
			node.ParentID = ""
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	setLevels(roots, 0)
	Sort(roots)
	return roots
}

func setLevels(nodes []*model.FilterNode, level int) {
	for _, n := range nodes {
		n.Level = level
		setLevels(n.Children, level+1)
	}
}

// Flatten lists every node depth first, parents before children.
func Flatten(roots []*model.FilterNode) []*model.FilterNode {
	flat := make([]*model.FilterNode, 0)
	var walk func(nodes []*model.FilterNode)
	walk = func(nodes []*model.FilterNode) {
		for _, n := range nodes {
			flat = append(flat, n)
			walk(n.Children)
		}
	}
	walk(roots)
	return flat
}

// Index maps node ids to nodes.
func Index(roots []*model.FilterNode) map[string]*model.FilterNode {
	flat := Flatten(roots)
	index := make(map[string]*model.FilterNode, len(flat))
	for _, n := range flat {
		index[n.ID] = n
	}
	return index
}

// DescendantIDs returns the ids of every node below node.
func DescendantIDs(node *model.FilterNode) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, n := range Flatten(node.Children) {
		ids[n.ID] = struct{}{}
	}
	return ids
}

// Sort orders siblings by order_index then name, recursively.
func Sort(nodes []*model.FilterNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].OrderIndex != nodes[j].OrderIndex {
			return nodes[i].OrderIndex < nodes[j].OrderIndex
		}
		return nodes[i].Name < nodes[j].Name
	})
	for _, n := range nodes {
		Sort(n.Children)
	}
}

// Prune keeps nodes whose name contains query, plus their ancestors. The
// input tree is left untouched.
func Prune(nodes []*model.FilterNode, query string) []*model.FilterNode {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nodes
	}
	return prune(nodes, q)
}

func prune(nodes []*model.FilterNode, q string) []*model.FilterNode {
	kept := make([]*model.FilterNode, 0)
	for _, n := range nodes {
		children := prune(n.Children, q)
		if !strings.Contains(strings.ToLower(n.Name), q) && len(children) == 0 {
			continue
		}
		clone := *n
		clone.Children = children
		kept = append(kept, &clone)
	}
	return kept
}

// SelectedCount counts the selected nodes in the subtree rooted at node.
func SelectedCount(node *model.FilterNode, selected map[string]struct{}) int {
	count := 0
	if _, ok := selected[node.ID]; ok {
		count = 1
	}
	for _, child := range node.Children {
		count += SelectedCount(child, selected)
	}
	return count
}

// Height is the number of levels in the subtree rooted at node, 1 for a leaf.
func Height(node *model.FilterNode) int {
	h := 0
	for _, child := range node.Children {
		if ch := Height(child); ch > h {
			h = ch
		}
	}
	return h + 1
}

// CandidateParents lists the nodes id may be moved under: not itself, none
// of its descendants, and deep enough room for its subtree.
func CandidateParents(roots []*model.FilterNode, id string) []*model.FilterNode {
	index := Index(roots)
	node, ok := index[id]
	if !ok {
		return []*model.FilterNode{}
	}

	excluded := DescendantIDs(node)
	excluded[id] = struct{}{}
	height := Height(node)

	candidates := make([]*model.FilterNode, 0)
	for _, n := range Flatten(roots) {
		if _, skip := excluded[n.ID]; skip {
			continue
		}
		if n.Level+height > model.MaxFilterLevel {
			continue
		}
		candidates = append(candidates, n)
	}
	return candidates
}
