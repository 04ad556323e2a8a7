package graph

import (
	"context"

	"github.com/siherrmann/tagforge/model"
)

// HierarchyDB defines the node lookups traversal needs
type HierarchyDB interface {
	SelectNodeByPath(parentPath string, name string) (*model.HierarchyNode, error)
	SelectNodesByParent(parentPath string) ([]*model.HierarchyNode, error)
}

// TraversalResult contains a node and its depth below the traversal source
type TraversalResult struct {
	Node  *model.HierarchyNode
	Depth int
	Path  []string // Full path segments from the hierarchy root to this node
}

// BFS walks the stored hierarchy breadth-first from a source node, bounded by
// maxDepth. The source itself is the first result.
func BFS(ctx context.Context, db HierarchyDB, parentPath string, name string, maxDepth int) ([]*TraversalResult, error) {
	sourceNode, err := db.SelectNodeByPath(parentPath, name)
	if err != nil {
		return nil, err
	}

	visited := make(map[string]bool)
	queue := []TraversalResult{{
		Node:  sourceNode,
		Depth: 0,
		Path:  append(model.SplitPath(parentPath), sourceNode.Name),
	}}

	var results []*TraversalResult
	visited[sourceNode.Path()] = true

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		results = append(results, &current)

		// Stop if we've reached max depth
		if current.Depth >= maxDepth {
			continue
		}

		// Get children of the current node
		children, err := db.SelectNodesByParent(current.Node.Path())
		if err != nil {
			return nil, err
		}

		for _, child := range children {
			// Skip if already visited
			if visited[child.Path()] {
				continue
			}
			visited[child.Path()] = true

			// Create new path
			newPath := make([]string, len(current.Path))
			copy(newPath, current.Path)
			newPath = append(newPath, child.Name)

			queue = append(queue, TraversalResult{
				Node:  child,
				Depth: current.Depth + 1,
				Path:  newPath,
			})
		}
	}

	return results, nil
}

// DFS walks the stored hierarchy depth-first from a source node, bounded by
// maxDepth. Siblings are visited in their stored order.
func DFS(ctx context.Context, db HierarchyDB, parentPath string, name string, maxDepth int) ([]*TraversalResult, error) {
	sourceNode, err := db.SelectNodeByPath(parentPath, name)
	if err != nil {
		return nil, err
	}

	visited := make(map[string]bool)
	var results []*TraversalResult

	// Start recursive DFS
	dfsRecursive(ctx, db, sourceNode, 0, maxDepth, append(model.SplitPath(parentPath), sourceNode.Name), visited, &results)

	return results, nil
}

// dfsRecursive is the recursive helper for DFS
func dfsRecursive(
	ctx context.Context,
	db HierarchyDB,
	current *model.HierarchyNode,
	depth int,
	maxDepth int,
	path []string,
	visited map[string]bool,
	results *[]*TraversalResult,
) {
	// Mark as visited
	visited[current.Path()] = true

	// Add to results
	pathCopy := make([]string, len(path))
	copy(pathCopy, path)
	*results = append(*results, &TraversalResult{
		Node:  current,
		Depth: depth,
		Path:  pathCopy,
	})

	// Stop if we've reached max depth
	if depth >= maxDepth {
		return
	}

	// Get children of the current node
	children, err := db.SelectNodesByParent(current.Path())
	if err != nil {
		return
	}

	for _, child := range children {
		// Skip if already visited
		if visited[child.Path()] {
			continue
		}

		// Create new path
		newPath := make([]string, len(path))
		copy(newPath, path)
		newPath = append(newPath, child.Name)

		// Recurse
		dfsRecursive(ctx, db, child, depth+1, maxDepth, newPath, visited, results)
	}
}

// Children retrieves the immediate children of a node
func Children(ctx context.Context, db HierarchyDB, parentPath string, name string) ([]*model.HierarchyNode, error) {
	results, err := BFS(ctx, db, parentPath, name, 1)
	if err != nil {
		return nil, err
	}

	// Skip the source node itself (first result)
	children := make([]*model.HierarchyNode, 0, len(results)-1)
	for i := 1; i < len(results); i++ {
		children = append(children, results[i].Node)
	}

	return children, nil
}
