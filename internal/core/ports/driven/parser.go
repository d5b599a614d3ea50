package driven

import "github.com/custodia-labs/codelens/internal/core/domain"

// CodeParser extracts code entities from raw source text.
// Implementations never fail: input they do not understand yields empty results.
type CodeParser interface {
	// ExtractFunctions returns functions declared in text, in discovery order.
	ExtractFunctions(text, filePath string) []domain.CodeFunction

	// ExtractDependencies returns the module specifiers imported by text
	// and the identifiers it exports.
	ExtractDependencies(text string) domain.FileDependencies

	// BuildDependencyGraph links files to the functions they appear to call.
	BuildDependencyGraph(files map[string]string, functions []domain.CodeFunction) domain.DependencyGraph

	// MapFeatures groups files into features by directory. Functions may be
	// nil; when given, each mapping lists the functions of its files.
	MapFeatures(files map[string]string, functions []domain.CodeFunction) []domain.FeatureMapping
}
