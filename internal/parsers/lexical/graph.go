package lexical

import (
	"path"
	"regexp"
	"slices"

	"github.com/custodia-labs/codelens/internal/core/domain"
)

var callPattern = regexp.MustCompile(`(\w+)\s*\(`)

// BuildDependencyGraph emits a node per file (sorted by path), a node per
// function (input order) and a "calls" edge from a file to every function
// whose name appears in it followed by "(". Functions sharing a name all
// receive an edge; repeated calls produce a single edge.
func (p *Parser) BuildDependencyGraph(files map[string]string, functions []domain.CodeFunction) domain.DependencyGraph {
	paths := sortedPaths(files)

	graph := domain.DependencyGraph{
		Nodes: make([]domain.DependencyNode, 0, len(paths)+len(functions)),
		Edges: make([]domain.DependencyEdge, 0),
	}

	for _, fp := range paths {
		graph.Nodes = append(graph.Nodes, domain.DependencyNode{
			ID:    fp,
			Label: path.Base(fp),
			Kind:  domain.NodeFile,
		})
	}

	byName := make(map[string][]string)
	for _, fn := range functions {
		graph.Nodes = append(graph.Nodes, domain.DependencyNode{
			ID:    fn.ID,
			Label: fn.Name,
			Kind:  domain.NodeFunction,
			File:  fn.File,
		})
		if !slices.Contains(byName[fn.Name], fn.ID) {
			byName[fn.Name] = append(byName[fn.Name], fn.ID)
		}
	}

	type edgeKey struct{ source, target string }
	seen := make(map[edgeKey]struct{})

	for _, fp := range paths {
		for _, m := range callPattern.FindAllStringSubmatch(files[fp], -1) {
			for _, target := range byName[m[1]] {
				k := edgeKey{fp, target}
				if _, dup := seen[k]; dup {
					continue
				}
				seen[k] = struct{}{}
				graph.Edges = append(graph.Edges, domain.DependencyEdge{
					Source: fp,
					Target: target,
					Label:  domain.EdgeCalls,
				})
			}
		}
	}

	return graph
}

func sortedPaths(files map[string]string) []string {
	paths := make([]string, 0, len(files))
	for fp := range files {
		paths = append(paths, fp)
	}
	slices.Sort(paths)
	return paths
}
