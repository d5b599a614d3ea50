package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/codelens/internal/core/domain"
)

func TestBuildDependencyGraph(t *testing.T) {
	files := map[string]string{
		"src/b.ts": "export function helper(x) { return x }",
		"src/a.ts": "import { helper } from './b'\nhelper(1)\nhelper(2)\nconsole.log(format())",
	}
	p := New(Config{})
	var fns []domain.CodeFunction
	for _, fp := range []string{"src/a.ts", "src/b.ts"} {
		fns = append(fns, p.ExtractFunctions(files[fp], fp)...)
	}

	graph := p.BuildDependencyGraph(files, fns)

	require.Len(t, graph.Nodes, 3)
	assert.Equal(t, domain.DependencyNode{ID: "src/a.ts", Label: "a.ts", Kind: domain.NodeFile}, graph.Nodes[0])
	assert.Equal(t, domain.DependencyNode{ID: "src/b.ts", Label: "b.ts", Kind: domain.NodeFile}, graph.Nodes[1])
	assert.Equal(t, domain.DependencyNode{ID: "src/b.ts:helper", Label: "helper", Kind: domain.NodeFunction, File: "src/b.ts"}, graph.Nodes[2])

	assert.Equal(t, []domain.DependencyEdge{
		{Source: "src/a.ts", Target: "src/b.ts:helper", Label: domain.EdgeCalls},
		{Source: "src/b.ts", Target: "src/b.ts:helper", Label: domain.EdgeCalls},
	}, graph.Edges)
}

func TestBuildDependencyGraph_NameCollisions(t *testing.T) {
	files := map[string]string{
		"x.ts":    "function init() {}",
		"y.ts":    "function init() {}",
		"main.ts": "init ()",
	}
	p := New(Config{})
	fns := []domain.CodeFunction{
		{ID: "x.ts:init", Name: "init", File: "x.ts"},
		{ID: "y.ts:init", Name: "init", File: "y.ts"},
	}

	graph := p.BuildDependencyGraph(files, fns)

	var fromMain []string
	for _, e := range graph.Edges {
		if e.Source == "main.ts" {
			fromMain = append(fromMain, e.Target)
		}
	}
	assert.Equal(t, []string{"x.ts:init", "y.ts:init"}, fromMain)
}

func TestBuildDependencyGraph_Empty(t *testing.T) {
	graph := New(Config{}).BuildDependencyGraph(nil, nil)
	assert.Empty(t, graph.Nodes)
	assert.Empty(t, graph.Edges)
	assert.NotNil(t, graph.Edges)
}
