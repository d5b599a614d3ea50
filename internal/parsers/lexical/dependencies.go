package lexical

import (
	"regexp"

	"github.com/custodia-labs/codelens/internal/core/domain"
)

var (
	// import X from '...', import { a, b } from '...', import * as ns from '...',
	// import X, { a } from '...' and their "import type" forms.
	importPattern = regexp.MustCompile(
		`import\s+(?:type\s+)?(?:\w+\s*,\s*)?(?:\{[^}]*\}|\*\s+as\s+\w+|\w+)\s+from\s+['"]([^'"]+)['"]`)

	exportPattern = regexp.MustCompile(
		`export\s+(?:default\s+)?(?:async\s+)?(?:function\*?|const|let|var|class|interface|type|enum)\s+(\w+)`)
)

// ExtractDependencies returns import sources and exported names in source order.
func (p *Parser) ExtractDependencies(text string) domain.FileDependencies {
	deps := domain.FileDependencies{
		Imports: make([]string, 0),
		Exports: make([]string, 0),
	}
	for _, m := range importPattern.FindAllStringSubmatch(text, -1) {
		deps.Imports = append(deps.Imports, m[1])
	}
	for _, m := range exportPattern.FindAllStringSubmatch(text, -1) {
		deps.Exports = append(deps.Exports, m[1])
	}
	return deps
}
