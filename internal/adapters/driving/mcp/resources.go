package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for codelens resources.
	uriScheme = "codelens://"

	cacheStatsURI = uriScheme + "cache/stats"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         cacheStatsURI,
		Name:        "cache-stats",
		Description: "Size and keys of the explanation cache",
		MIMEType:    "application/json",
	}, s.handleCacheStatsResource)
}

// handleCacheStatsResource returns a snapshot of the explanation cache.
func (s *Server) handleCacheStatsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(s.ports.Explain.CacheStats(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling cache stats: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
