package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/codelens/internal/core/domain"
	"github.com/custodia-labs/codelens/internal/parsers/lexical"
)

// explainSnippetLines caps how much of the file, starting at the
// declaration, is sent as the function body.
const explainSnippetLines = 80

var explainJSON bool

var explainCmd = &cobra.Command{
	Use:   "explain <file> <function>",
	Short: "Explain a function in a local file",
	Long: `Find a function in a JavaScript or TypeScript file and ask the configured
LLM providers to explain it. Providers are tried in order until one
answers.

At least one provider key must be set, e.g. via ROUTEWAY_API_KEY,
OPENAI_API_KEY or ANTHROPIC_API_KEY.`,
	Args: cobra.ExactArgs(2),
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().BoolVar(&explainJSON, "json", false, "print the explanation as JSON")
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	filePath, name := args[0], args[1]

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filePath, err)
	}
	text := string(data)
	displayPath := filepath.ToSlash(filePath)

	a := newApp(settingsService.Get())
	defer a.Close()

	fn, ok := findFunction(a.parser.ExtractFunctions(text, displayPath), name)
	if !ok {
		return fmt.Errorf("%w: function %q not found in %s", domain.ErrNotFound, name, displayPath)
	}

	explanation, err := a.explain.Explain(cmd.Context(), domain.ExplanationRequest{
		FunctionName: fn.Name,
		Code:         lexical.Snippet(text, fn.Line, explainSnippetLines),
		Context:      "File: " + displayPath,
	})
	if err != nil {
		return err
	}

	if explainJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(explanation)
	}
	cmd.Printf("%s (%s:%d)\n\n%s\n", fn.Signature, fn.File, fn.Line, explanation.How)
	return nil
}

func findFunction(functions []domain.CodeFunction, name string) (domain.CodeFunction, bool) {
	for _, fn := range functions {
		if fn.Name == name {
			return fn, true
		}
	}
	return domain.CodeFunction{}, false
}
