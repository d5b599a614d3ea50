package lexical

import (
	"slices"
	"strings"

	"github.com/custodia-labs/codelens/internal/core/domain"
)

// MapFeatures buckets files by directory. The bucket is the first path
// segment, or the second when the first is a container directory, so
// app/page.tsx lands in "page.tsx". Top-level files and bare container
// paths go to domain.DefaultFeature. Mappings are sorted by feature name.
func (p *Parser) MapFeatures(files map[string]string, functions []domain.CodeFunction) []domain.FeatureMapping {
	buckets := make(map[string][]string)
	for _, fp := range sortedPaths(files) {
		feature := p.featureOf(fp)
		buckets[feature] = append(buckets[feature], fp)
	}

	byFile := make(map[string][]string)
	for _, fn := range functions {
		byFile[fn.File] = append(byFile[fn.File], fn.ID)
	}

	mappings := make([]domain.FeatureMapping, 0, len(buckets))
	for feature, members := range buckets {
		fns := make([]string, 0)
		for _, fp := range members {
			fns = append(fns, byFile[fp]...)
		}
		mappings = append(mappings, domain.FeatureMapping{
			Feature:     feature,
			Files:       members,
			Functions:   fns,
			Description: feature + " feature",
		})
	}

	slices.SortFunc(mappings, func(a, b domain.FeatureMapping) int {
		return strings.Compare(a.Feature, b.Feature)
	})
	return mappings
}

func (p *Parser) featureOf(filePath string) string {
	parts := strings.Split(strings.TrimPrefix(filePath, "/"), "/")
	if _, ok := p.containers[parts[0]]; ok {
		if len(parts) > 1 && parts[1] != "" {
			return parts[1]
		}
		return domain.DefaultFeature
	}
	if len(parts) > 1 && parts[0] != "" {
		return parts[0]
	}
	return domain.DefaultFeature
}
