package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/codelens/internal/core/domain"
)

func TestMapFeatures_ContainerDirectory(t *testing.T) {
	files := map[string]string{
		"src/utils/a.ts": "",
		"src/utils/b.ts": "",
	}

	got := New(Config{}).MapFeatures(files, nil)

	require.Len(t, got, 1)
	assert.Equal(t, "utils", got[0].Feature)
	assert.Equal(t, []string{"src/utils/a.ts", "src/utils/b.ts"}, got[0].Files)
	assert.Equal(t, "utils feature", got[0].Description)
	assert.Empty(t, got[0].Functions)
}

func TestMapFeatures_Buckets(t *testing.T) {
	files := map[string]string{
		"app/page.tsx":           "",
		"app/dashboard/page.tsx": "",
		"components/Nav.tsx":     "",
		"lib/api.ts":             "",
		"index.ts":               "",
	}
	fns := []domain.CodeFunction{
		{ID: "lib/api.ts:fetchRepos", File: "lib/api.ts"},
		{ID: "components/Nav.tsx:Nav", File: "components/Nav.tsx"},
		{ID: "other.ts:unused", File: "other.ts"},
	}

	got := New(Config{}).MapFeatures(files, fns)

	byFeature := make(map[string]domain.FeatureMapping)
	var order []string
	for _, m := range got {
		byFeature[m.Feature] = m
		order = append(order, m.Feature)
	}

	assert.Equal(t, []string{"components", "dashboard", "lib", "page.tsx", "root"}, order)
	assert.Equal(t, []string{"index.ts"}, byFeature["root"].Files)
	assert.Equal(t, []string{"app/page.tsx"}, byFeature["page.tsx"].Files)
	assert.Equal(t, []string{"lib/api.ts:fetchRepos"}, byFeature["lib"].Functions)
	assert.Equal(t, []string{"components/Nav.tsx:Nav"}, byFeature["components"].Functions)
}

func TestMapFeatures_CustomContainers(t *testing.T) {
	files := map[string]string{
		"packages/core/index.ts": "",
		"src/utils/a.ts":         "",
	}

	got := New(Config{ContainerDirs: []string{"packages"}}).MapFeatures(files, nil)

	require.Len(t, got, 2)
	assert.Equal(t, "core", got[0].Feature)
	assert.Equal(t, "src", got[1].Feature)
}

func TestMapFeatures_Empty(t *testing.T) {
	got := New(Config{}).MapFeatures(map[string]string{}, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
