package keywords

import "context"

// Path is one hierarchical keyword path, root first.
type Path []string

// Service resolves controlled-vocabulary names to hierarchical keyword paths.
// Implementations are read-only collaborators; the editor never writes back.
type Service interface {
	FetchKeywords(ctx context.Context, vocabulary string) ([]Path, error)
}

// FirstSegments extracts the first segment of each path, deduplicated in
// order. These are the candidate values for a controlled field's top-level
// control name.
func FirstSegments(paths []Path) []string {
	if len(paths) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		if len(path) == 0 || path[0] == "" {
			continue
		}
		if _, ok := seen[path[0]]; ok {
			continue
		}
		seen[path[0]] = struct{}{}
		out = append(out, path[0])
	}
	return out
}
