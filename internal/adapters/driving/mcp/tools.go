package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/codelens/internal/core/domain"
)

// ExplainInput is the input schema for the explain_function tool.
type ExplainInput struct {
	FunctionName string `json:"function_name" jsonschema:"name of the function to explain"`
	Code         string `json:"code" jsonschema:"source code of the function"`
	Context      string `json:"context,omitempty" jsonschema:"optional surrounding context such as the file path"`
}

// ExplainOutput is the output schema for the explain_function tool.
type ExplainOutput struct {
	FunctionName string `json:"function_name"`
	How          string `json:"how"`
	Provider     string `json:"provider,omitempty"`
	Cached       bool   `json:"cached"`
}

// SourceFile is one file handed to the parser.
type SourceFile struct {
	Path    string `json:"path" jsonschema:"repository-relative file path, e.g. src/utils/math.ts"`
	Content string `json:"content" jsonschema:"full source text of the file"`
}

// ExtractInput is the input schema for the extract_functions tool.
type ExtractInput SourceFile

// ExtractOutput is the output schema for the extract_functions tool.
type ExtractOutput struct {
	Functions    []domain.CodeFunction   `json:"functions"`
	Dependencies domain.FileDependencies `json:"dependencies"`
	Count        int                     `json:"count"`
}

// AnalyzeInput is the input schema for the analyze_files tool.
type AnalyzeInput struct {
	Files []SourceFile `json:"files" jsonschema:"source files to analyse together"`
}

// AnalyzeOutput is the output schema for the analyze_files tool.
type AnalyzeOutput struct {
	Files     []string                `json:"files"`
	Functions []domain.CodeFunction   `json:"functions"`
	Graph     domain.DependencyGraph  `json:"graph"`
	Features  []domain.FeatureMapping `json:"features"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "explain_function",
		Description: "Explain what a function does in two or three sentences. Results are cached.",
	}, s.handleExplain)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_functions",
		Description: "List the functions, imports and exports declared in a JavaScript or TypeScript file",
	}, s.handleExtract)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_files",
		Description: "Extract functions from several files and build their call graph and feature map",
	}, s.handleAnalyze)
}

func (s *Server) handleExplain(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExplainInput,
) (*mcp.CallToolResult, ExplainOutput, error) {
	if s.toolClient != "" {
		if err := s.allow(s.toolClient); err != nil {
			return nil, ExplainOutput{}, err
		}
	}

	exp, err := s.ports.Explain.Explain(ctx, domain.ExplanationRequest{
		FunctionName: input.FunctionName,
		Code:         input.Code,
		Context:      input.Context,
	})
	if err != nil {
		return nil, ExplainOutput{}, err
	}

	return nil, ExplainOutput{
		FunctionName: exp.FunctionName,
		How:          exp.How,
		Provider:     exp.Provider,
		Cached:       exp.Cached,
	}, nil
}

func (s *Server) handleExtract(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ExtractInput,
) (*mcp.CallToolResult, ExtractOutput, error) {
	if input.Path == "" {
		return nil, ExtractOutput{}, domain.ErrMissingFields("path")
	}

	fns := s.ports.Parser.ExtractFunctions(input.Content, input.Path)
	if fns == nil {
		fns = []domain.CodeFunction{}
	}
	return nil, ExtractOutput{
		Functions:    fns,
		Dependencies: s.ports.Parser.ExtractDependencies(input.Content),
		Count:        len(fns),
	}, nil
}

func (s *Server) handleAnalyze(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, AnalyzeOutput, error) {
	if len(input.Files) == 0 {
		return nil, AnalyzeOutput{}, domain.ErrMissingFields("files")
	}

	files := make(map[string]string, len(input.Files))
	for _, f := range input.Files {
		if f.Path == "" {
			return nil, AnalyzeOutput{}, fmt.Errorf("%w: every file needs a path", domain.ErrInvalidInput)
		}
		files[f.Path] = f.Content
	}

	analysis := s.ports.Analyzer.AnalyzeFiles(files)
	return nil, AnalyzeOutput{
		Files:     analysis.Files,
		Functions: analysis.Functions,
		Graph:     analysis.Graph,
		Features:  analysis.Features,
	}, nil
}
