package keywords

// Node is one level of a keyword hierarchy as served by a keyword endpoint.
type Node struct {
	Value    string `json:"value"`
	Children []Node `json:"children,omitempty"`
}

// Flatten expands a keyword tree into root-to-leaf paths. Nodes with empty
// values are skipped along with their subtrees.
func Flatten(nodes []Node) []Path {
	var paths []Path
	for _, node := range nodes {
		paths = append(paths, flattenNode(node, nil)...)
	}
	return paths
}

func flattenNode(node Node, prefix Path) []Path {
	if node.Value == "" {
		return nil
	}
	current := append(append(Path(nil), prefix...), node.Value)
	if len(node.Children) == 0 {
		return []Path{current}
	}
	var paths []Path
	for _, child := range node.Children {
		childPaths := flattenNode(child, current)
		paths = append(paths, childPaths...)
	}
	if len(paths) == 0 {
		return []Path{current}
	}
	return paths
}
